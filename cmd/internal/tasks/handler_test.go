package tasks

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	authapi "todo/cmd/internal/auth/api"
	"todo/cmd/internal/docstore"
)

// stubGate injects a fixed identity the way the real bearer gate would.
func stubGate(owner string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(authapi.WithIdentity(r.Context(), owner)))
		})
	}
}

func newTestMux(t *testing.T, owner string) (*http.ServeMux, docstore.Store) {
	t.Helper()
	store := docstore.NewMemoryStore()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	mux := http.NewServeMux()
	NewHandler(log, store, 1<<20).Register(mux, stubGate(owner))
	return mux, store
}

func doJSON(t *testing.T, mux *http.ServeMux, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func addTask(t *testing.T, mux *http.ServeMux, task string) string {
	t.Helper()
	rec := doJSON(t, mux, http.MethodPost, "/add-task",
		`{"task":"`+task+`","dueDate":"2026-09-01","priority":"high"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("add-task status=%d body=%s", rec.Code, rec.Body)
	}
	var doc map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&doc); err != nil {
		t.Fatalf("decode add-task response: %v", err)
	}
	id, _ := doc["id"].(string)
	if id == "" {
		t.Fatalf("add-task response missing id: %v", doc)
	}
	return id
}

func TestAddAndList(t *testing.T) {
	mux, _ := newTestMux(t, "alice@x.com")

	addTask(t, mux, "water the plants")
	addTask(t, mux, "file taxes")

	rec := doJSON(t, mux, http.MethodGet, "/get-todos", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get-todos status=%d body=%s", rec.Code, rec.Body)
	}
	var docs []map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&docs); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(docs))
	}
	for _, doc := range docs {
		if doc["owner"] != "alice@x.com" {
			t.Fatalf("wrong owner in %v", doc)
		}
		if doc["completed"] != false {
			t.Fatalf("new task must start incomplete: %v", doc)
		}
	}
}

func TestList_EmptyIsArray(t *testing.T) {
	mux, _ := newTestMux(t, "alice@x.com")

	rec := doJSON(t, mux, http.MethodGet, "/get-todos", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Fatalf("empty list must encode as [], got %q", got)
	}
}

func TestAdd_MissingTask(t *testing.T) {
	mux, _ := newTestMux(t, "alice@x.com")

	rec := doJSON(t, mux, http.MethodPost, "/add-task", `{"dueDate":"2026-09-01"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body)
	}
}

func TestUpdate(t *testing.T) {
	mux, store := newTestMux(t, "alice@x.com")
	id := addTask(t, mux, "water the plants")

	rec := doJSON(t, mux, http.MethodPut, "/update-task/"+id,
		`{"task":"water the garden","dueDate":"2026-09-02","priority":"low"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body)
	}

	doc, err := store.FindOne(context.Background(), docstore.Todos, docstore.Filter{"id": id})
	if err != nil {
		t.Fatalf("FindOne: %v", err)
	}
	if doc["task"] != "water the garden" || doc["priority"] != "low" {
		t.Fatalf("patch not applied: %v", doc)
	}
	if doc["owner"] != "alice@x.com" {
		t.Fatalf("patch must not change ownership: %v", doc)
	}
}

func TestToggle(t *testing.T) {
	mux, store := newTestMux(t, "alice@x.com")
	id := addTask(t, mux, "water the plants")

	rec := doJSON(t, mux, http.MethodPut, "/toggle-complete/"+id, `{"completed":true}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body)
	}

	doc, err := store.FindOne(context.Background(), docstore.Todos, docstore.Filter{"id": id})
	if err != nil {
		t.Fatalf("FindOne: %v", err)
	}
	if doc["completed"] != true {
		t.Fatalf("completed not set: %v", doc)
	}
	if doc["task"] != "water the plants" {
		t.Fatalf("toggle must leave other fields alone: %v", doc)
	}
}

func TestDelete(t *testing.T) {
	mux, store := newTestMux(t, "alice@x.com")
	id := addTask(t, mux, "water the plants")

	rec := doJSON(t, mux, http.MethodDelete, "/delete-task/"+id, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body)
	}

	_, err := store.FindOne(context.Background(), docstore.Todos, docstore.Filter{"id": id})
	if err == nil {
		t.Fatalf("task still present after delete")
	}

	// Deleting again reports not found.
	rec = doJSON(t, mux, http.MethodDelete, "/delete-task/"+id, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("second delete status=%d", rec.Code)
	}
}

func TestUnknownID(t *testing.T) {
	mux, _ := newTestMux(t, "alice@x.com")

	cases := []struct {
		method, path, body string
	}{
		{http.MethodPut, "/update-task/no-such-id", `{"task":"x"}`},
		{http.MethodPut, "/toggle-complete/no-such-id", `{"completed":true}`},
		{http.MethodDelete, "/delete-task/no-such-id", ""},
	}
	for _, tc := range cases {
		rec := doJSON(t, mux, tc.method, tc.path, tc.body)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("%s %s: status=%d body=%s", tc.method, tc.path, rec.Code, rec.Body)
		}
	}
}

func TestOwnershipIsolation(t *testing.T) {
	store := docstore.NewMemoryStore()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	aliceMux := http.NewServeMux()
	NewHandler(log, store, 1<<20).Register(aliceMux, stubGate("alice@x.com"))
	bobMux := http.NewServeMux()
	NewHandler(log, store, 1<<20).Register(bobMux, stubGate("bob@x.com"))

	id := addTask(t, aliceMux, "secret plans")

	// Bob cannot see, change, or remove Alice's task.
	rec := doJSON(t, bobMux, http.MethodGet, "/get-todos", "")
	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Fatalf("bob sees alice's tasks: %s", got)
	}
	for _, tc := range []struct {
		method, path, body string
	}{
		{http.MethodPut, "/update-task/" + id, `{"task":"hijacked"}`},
		{http.MethodPut, "/toggle-complete/" + id, `{"completed":true}`},
		{http.MethodDelete, "/delete-task/" + id, ""},
	} {
		rec := doJSON(t, bobMux, tc.method, tc.path, tc.body)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("%s %s: status=%d, foreign tasks must look absent", tc.method, tc.path, rec.Code)
		}
	}

	// Alice still owns the untouched task.
	doc, err := store.FindOne(context.Background(), docstore.Todos, docstore.Filter{"id": id})
	if err != nil {
		t.Fatalf("FindOne: %v", err)
	}
	if doc["task"] != "secret plans" || doc["completed"] != false {
		t.Fatalf("task was modified across owners: %v", doc)
	}
}
