// Package content proxies third-party inspiration content: a random
// quote and a random background image. Upstream credentials stay
// server-side; clients only ever talk to this service.
package content

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	authapi "todo/cmd/internal/auth/api"
)

// maxUpstreamBytes bounds proxied upstream bodies.
const maxUpstreamBytes = 1 << 20

// DefaultQuoteURL is the quote upstream endpoint.
const DefaultQuoteURL = "https://api.quotable.io/random"

// DefaultImageURL is the random-photo upstream endpoint.
const DefaultImageURL = "https://api.unsplash.com/photos/random"

// Config holds the upstream endpoints and credentials.
type Config struct {
	QuoteURL          string
	ImageURL          string
	UnsplashAccessKey string
	Timeout           time.Duration
}

// Handler serves the content proxy routes.
type Handler struct {
	log    *slog.Logger
	client *http.Client
	cfg    Config
}

// NewHandler constructs a Handler, filling in endpoint and timeout defaults.
func NewHandler(log *slog.Logger, cfg Config) *Handler {
	if cfg.QuoteURL == "" {
		cfg.QuoteURL = DefaultQuoteURL
	}
	if cfg.ImageURL == "" {
		cfg.ImageURL = DefaultImageURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &Handler{
		log:    log,
		client: &http.Client{Timeout: cfg.Timeout},
		cfg:    cfg,
	}
}

// Register wires the content routes onto mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /get-quote", h.handleQuote)
	mux.HandleFunc("GET /get-background-image", h.handleImage)
}

func (h *Handler) handleQuote(w http.ResponseWriter, r *http.Request) {
	req, err := http.NewRequestWithContext(r.Context(), http.MethodGet, h.cfg.QuoteURL, nil)
	if err != nil {
		h.log.Error("content.quote.fail", slog.String("error", err.Error()))
		authapi.WriteMessage(w, http.StatusBadGateway, "failed to fetch quote")
		return
	}

	resp, err := h.client.Do(req)
	if err != nil {
		h.log.Warn("content.quote.upstream", slog.String("error", err.Error()))
		authapi.WriteMessage(w, http.StatusBadGateway, "failed to fetch quote")
		return
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		h.log.Warn("content.quote.upstream", slog.Int("status", resp.StatusCode))
		authapi.WriteMessage(w, http.StatusBadGateway, "failed to fetch quote")
		return
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxUpstreamBytes))
	if err != nil || !json.Valid(body) {
		h.log.Warn("content.quote.upstream", slog.String("error", "unreadable body"))
		authapi.WriteMessage(w, http.StatusBadGateway, "failed to fetch quote")
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

// unsplashPhoto is the slice of the upstream response this service uses.
type unsplashPhoto struct {
	URLs struct {
		Full    string `json:"full"`
		Regular string `json:"regular"`
	} `json:"urls"`
}

func (h *Handler) handleImage(w http.ResponseWriter, r *http.Request) {
	if h.cfg.UnsplashAccessKey == "" {
		h.log.Warn("content.image.unconfigured")
		authapi.WriteMessage(w, http.StatusBadGateway, "failed to fetch background image")
		return
	}

	u, err := url.Parse(h.cfg.ImageURL)
	if err != nil {
		h.log.Error("content.image.fail", slog.String("error", err.Error()))
		authapi.WriteMessage(w, http.StatusBadGateway, "failed to fetch background image")
		return
	}
	q := u.Query()
	q.Set("query", "nature")
	q.Set("orientation", "landscape")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(r.Context(), http.MethodGet, u.String(), nil)
	if err != nil {
		h.log.Error("content.image.fail", slog.String("error", err.Error()))
		authapi.WriteMessage(w, http.StatusBadGateway, "failed to fetch background image")
		return
	}
	req.Header.Set("Authorization", "Client-ID "+h.cfg.UnsplashAccessKey)

	resp, err := h.client.Do(req)
	if err != nil {
		h.log.Warn("content.image.upstream", slog.String("error", err.Error()))
		authapi.WriteMessage(w, http.StatusBadGateway, "failed to fetch background image")
		return
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		h.log.Warn("content.image.upstream", slog.Int("status", resp.StatusCode))
		authapi.WriteMessage(w, http.StatusBadGateway, "failed to fetch background image")
		return
	}

	var photo unsplashPhoto
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxUpstreamBytes)).Decode(&photo); err != nil {
		h.log.Warn("content.image.upstream", slog.String("error", err.Error()))
		authapi.WriteMessage(w, http.StatusBadGateway, "failed to fetch background image")
		return
	}
	imageURL := photo.URLs.Full
	if imageURL == "" {
		imageURL = photo.URLs.Regular
	}
	if imageURL == "" {
		h.log.Warn("content.image.upstream", slog.String("error", "no url in response"))
		authapi.WriteMessage(w, http.StatusBadGateway, "failed to fetch background image")
		return
	}

	authapi.WriteJSON(w, http.StatusOK, map[string]string{"url": imageURL})
}
