package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"resume-builder/internal/shared/config"
)

func TestAddr(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ":8080"},
		{"9090", ":9090"},
		{":7000", ":7000"},
	}
	for _, tt := range tests {
		if got := Addr(tt.in); got != tt.want {
			t.Fatalf("Addr(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRouterCoreRoutes(t *testing.T) {
	r := NewRouter(RouterDeps{Config: config.Config{Env: "dev"}})

	tests := []struct {
		path     string
		contains string
	}{
		{"/api/v1/health", `"ok":true`},
		{"/metrics", "generation_started_total"},
		{"/", "Resume Builder"},
	}
	for _, tt := range tests {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, tt.path, nil)
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("GET %s status = %d", tt.path, w.Code)
		}
		if !strings.Contains(w.Body.String(), tt.contains) {
			t.Fatalf("GET %s body missing %q", tt.path, tt.contains)
		}
	}
}
