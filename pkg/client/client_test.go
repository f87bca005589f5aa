package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestDoRequestUnwrapsEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-Actor"); got != "alice" {
			t.Errorf("X-Actor = %q, want alice", got)
		}
		if r.URL.Path != "/devices/1/baseline" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"data":{"device_id":1,"content_hash":"abc","text":"hostname r1\n"}}`))
	}))
	defer srv.Close()

	c, err := New(Config{BaseURL: srv.URL, Actor: "alice"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	b, err := c.Baselines.Get(context.Background(), 1)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if b.DeviceID != 1 || b.ContentHash != "abc" || b.Text != "hostname r1\n" {
		t.Errorf("baseline = %+v", b)
	}
}

func TestDoRequestMapsErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		check  func(error) bool
	}{
		{"not found", http.StatusNotFound, `{"success":false,"error":{"code":"NOT_FOUND","message":"baseline not found"}}`, IsNotFound},
		{"conflict", http.StatusConflict, `{"success":false,"error":{"code":"CONFLICT","message":"duplicate"}}`, IsConflict},
		{"forbidden", http.StatusForbidden, `{"success":false,"error":{"code":"FORBIDDEN","message":"own proposal"}}`, IsForbidden},
		{"busy", http.StatusServiceUnavailable, `{"success":false,"error":{"code":"BUSY","message":"try again"}}`, IsBusy},
		{"invalid state", http.StatusBadRequest, `{"success":false,"error":{"code":"INVALID_STATE","message":"already decided"}}`, IsInvalidState},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c, _ := New(Config{BaseURL: srv.URL})
			_, err := c.Baselines.Get(context.Background(), 1)
			if err == nil {
				t.Fatal("Get() succeeded, want error")
			}
			if !tt.check(err) {
				t.Errorf("predicate rejected error %v", err)
			}
		})
	}
}

func TestNewRequiresBaseURL(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Fatal("New() without BaseURL succeeded")
	}
}
