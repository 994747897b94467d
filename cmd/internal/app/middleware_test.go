package app

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestWithRequestLogging_PreservesStatusAndBody(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	h := WithRequestLogging(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = io.WriteString(w, "short and stout")
	}), log)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/get-todos", nil))

	if rec.Code != http.StatusTeapot {
		t.Fatalf("status=%d", rec.Code)
	}
	if rec.Body.String() != "short and stout" {
		t.Fatalf("body=%q", rec.Body)
	}
}

func TestMetricRoute(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"/", "/"},
		{"/get-todos", "/get-todos"},
		{"/delete-task/01ABCDEF", "/delete-task"},
		{"/toggle-complete/01ABCDEF", "/toggle-complete"},
	}
	for _, tc := range cases {
		if got := metricRoute(tc.in); got != tc.want {
			t.Fatalf("metricRoute(%q)=%q want=%q", tc.in, got, tc.want)
		}
	}
}
