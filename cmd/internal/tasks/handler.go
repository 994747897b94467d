// Package tasks serves the per-user todo list: create, list, update,
// toggle, and delete. Every storage call is scoped to the identifier the
// authorization gate attached to the request.
package tasks

import (
	"errors"
	"log/slog"
	"net/http"

	authapi "todo/cmd/internal/auth/api"
	"todo/cmd/internal/docstore"
)

// Handler serves the task routes.
type Handler struct {
	log          *slog.Logger
	store        docstore.Store
	maxBodyBytes int64
}

// NewHandler constructs a Handler over the given docstore.
func NewHandler(log *slog.Logger, store docstore.Store, maxBodyBytes int64) *Handler {
	return &Handler{
		log:          log,
		store:        store,
		maxBodyBytes: maxBodyBytes,
	}
}

// Register wires the task routes onto mux, each wrapped by gate.
func (h *Handler) Register(mux *http.ServeMux, gate func(http.Handler) http.Handler) {
	mux.Handle("POST /add-task", gate(http.HandlerFunc(h.handleAdd)))
	mux.Handle("GET /get-todos", gate(http.HandlerFunc(h.handleList)))
	mux.Handle("PUT /update-task/{id}", gate(http.HandlerFunc(h.handleUpdate)))
	mux.Handle("PUT /toggle-complete/{id}", gate(http.HandlerFunc(h.handleToggle)))
	mux.Handle("DELETE /delete-task/{id}", gate(http.HandlerFunc(h.handleDelete)))
}

type taskRequest struct {
	Task     string `json:"task"`
	DueDate  string `json:"dueDate"`
	Priority string `json:"priority"`
}

type toggleRequest struct {
	Completed bool `json:"completed"`
}

func (h *Handler) handleAdd(w http.ResponseWriter, r *http.Request) {
	owner, ok := authapi.Identity(r.Context())
	if !ok {
		authapi.WriteMessage(w, http.StatusUnauthorized, "missing bearer token")
		return
	}

	var req taskRequest
	if err := authapi.DecodeJSON(w, r, h.maxBodyBytes, &req); err != nil {
		authapi.WriteMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Task == "" {
		authapi.WriteMessage(w, http.StatusBadRequest, "task is required")
		return
	}

	doc := docstore.Document{
		"task":      req.Task,
		"dueDate":   req.DueDate,
		"priority":  req.Priority,
		"completed": false,
		"owner":     owner,
	}
	id, err := h.store.InsertOne(r.Context(), docstore.Todos, doc)
	if err != nil {
		h.log.Error("tasks.add.fail", slog.String("error", err.Error()))
		authapi.WriteMessage(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.log.Info("tasks.add.ok", slog.String("owner", owner), slog.String("id", id))
	doc["id"] = id
	authapi.WriteJSON(w, http.StatusCreated, doc)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	owner, ok := authapi.Identity(r.Context())
	if !ok {
		authapi.WriteMessage(w, http.StatusUnauthorized, "missing bearer token")
		return
	}

	docs, err := h.store.FindAll(r.Context(), docstore.Todos, docstore.Filter{"owner": owner})
	if err != nil {
		h.log.Error("tasks.list.fail", slog.String("error", err.Error()))
		authapi.WriteMessage(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if docs == nil {
		docs = []docstore.Document{}
	}
	authapi.WriteJSON(w, http.StatusOK, docs)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	owner, ok := authapi.Identity(r.Context())
	if !ok {
		authapi.WriteMessage(w, http.StatusUnauthorized, "missing bearer token")
		return
	}

	var req taskRequest
	if err := authapi.DecodeJSON(w, r, h.maxBodyBytes, &req); err != nil {
		authapi.WriteMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Task == "" {
		authapi.WriteMessage(w, http.StatusBadRequest, "task is required")
		return
	}

	patch := docstore.Document{
		"task":     req.Task,
		"dueDate":  req.DueDate,
		"priority": req.Priority,
	}
	h.patchOwned(w, r, owner, patch, "tasks.update")
}

func (h *Handler) handleToggle(w http.ResponseWriter, r *http.Request) {
	owner, ok := authapi.Identity(r.Context())
	if !ok {
		authapi.WriteMessage(w, http.StatusUnauthorized, "missing bearer token")
		return
	}

	var req toggleRequest
	if err := authapi.DecodeJSON(w, r, h.maxBodyBytes, &req); err != nil {
		authapi.WriteMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	h.patchOwned(w, r, owner, docstore.Document{"completed": req.Completed}, "tasks.toggle")
}

// patchOwned applies patch to the path's task if and only if owner holds it.
// A missing or foreign id is indistinguishable to the caller.
func (h *Handler) patchOwned(w http.ResponseWriter, r *http.Request, owner string, patch docstore.Document, event string) {
	id := r.PathValue("id")
	filter := docstore.Filter{"id": id, "owner": owner}

	err := h.store.UpdateOne(r.Context(), docstore.Todos, filter, patch)
	switch {
	case err == nil:
		h.log.Info(event+".ok", slog.String("owner", owner), slog.String("id", id))
		authapi.WriteMessage(w, http.StatusOK, "task updated")
	case errors.Is(err, docstore.ErrNoDocuments):
		authapi.WriteMessage(w, http.StatusNotFound, "task not found")
	default:
		h.log.Error(event+".fail", slog.String("error", err.Error()))
		authapi.WriteMessage(w, http.StatusInternalServerError, "internal server error")
	}
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	owner, ok := authapi.Identity(r.Context())
	if !ok {
		authapi.WriteMessage(w, http.StatusUnauthorized, "missing bearer token")
		return
	}

	id := r.PathValue("id")
	err := h.store.DeleteOne(r.Context(), docstore.Todos, docstore.Filter{"id": id, "owner": owner})
	switch {
	case err == nil:
		h.log.Info("tasks.delete.ok", slog.String("owner", owner), slog.String("id", id))
		authapi.WriteMessage(w, http.StatusOK, "task deleted")
	case errors.Is(err, docstore.ErrNoDocuments):
		authapi.WriteMessage(w, http.StatusNotFound, "task not found")
	default:
		h.log.Error("tasks.delete.fail", slog.String("error", err.Error()))
		authapi.WriteMessage(w, http.StatusInternalServerError, "internal server error")
	}
}
