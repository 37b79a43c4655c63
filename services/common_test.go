package services

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRound(t *testing.T) {
	cases := []struct {
		in   float64
		want int
	}{
		{0, 0},
		{1.49, 1},
		{1.5, 2},
		{2.5, 3},
		{620.4999, 620},
		{620.5, 621},
	}
	for _, c := range cases {
		if got := Round(c.in); got != c.want {
			t.Errorf("Round(%v) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestRoundTo(t *testing.T) {
	if got := RoundTo(22.857, 1); got != 22.9 {
		t.Errorf("RoundTo(22.857, 1) = %v, want 22.9", got)
	}
	if got := RoundTo(18.25, 1); got != 18.3 {
		t.Errorf("RoundTo(18.25, 1) = %v, want 18.3", got)
	}
}

func TestHttpRequest(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Content-Type") != "application/json" {
				t.Errorf("Expected JSON content type, got %q", r.Header.Get("Content-Type"))
			}
			if r.Header.Get("X-Task") != "1" {
				t.Errorf("Expected custom header to be forwarded")
			}
			w.Write([]byte(`{"ok":true}`))
		}))
		defer server.Close()

		body, err := HttpRequest(http.MethodPost, server.URL, map[string]string{"X-Task": "1"}, map[string]int{"task_id": 1})
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if string(body) != `{"ok":true}` {
			t.Errorf("unexpected body %s", body)
		}
	})

	t.Run("Non2xx", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		if _, err := HttpRequest(http.MethodGet, server.URL, nil, nil); err == nil {
			t.Fatal("Expected an error for 502 response, got nil")
		}
	})
}
