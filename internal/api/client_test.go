package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

type staticTokens struct {
	token string
	err   error
}

func (s staticTokens) Get() (string, error) { return s.token, s.err }

func TestDo_AttachesBearerTokenWhenPresent(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, staticTokens{token: "tok-123"})
	if _, err := c.Profile(context.Background()); err != nil {
		t.Fatalf("request failed: %v", err)
	}

	if gotAuth != "Bearer tok-123" {
		t.Errorf("Authorization = %q, want %q", gotAuth, "Bearer tok-123")
	}
}

func TestDo_NoTokenNoHeader(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"access_token":"abc"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, staticTokens{err: errors.New("no stored session token")})
	tok, err := c.Login(context.Background(), "a@b.c", "pw")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if tok != "abc" {
		t.Errorf("token = %q, want abc", tok)
	}
	if gotAuth != "" {
		t.Errorf("unauthenticated request carried Authorization %q", gotAuth)
	}
}

func TestDo_SurfacesDetailThenMessage(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"detail field", `{"detail":"device not found"}`, "device not found"},
		{"message field", `{"message":"bad input"}`, "bad input"},
		{"no usable field", `{"oops":true}`, "Request failed"},
		{"non-JSON body", `<html>boom</html>`, "Request failed"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			c := NewClient(srv.URL, staticTokens{})
			_, err := c.Profile(context.Background())
			if err == nil {
				t.Fatal("expected an error")
			}
			if err.Error() != tc.want {
				t.Errorf("error = %q, want %q", err.Error(), tc.want)
			}
		})
	}
}

func TestDo_401MapsToErrUnauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":"token expired"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, staticTokens{token: "stale"})
	_, err := c.Profile(context.Background())

	if !errors.Is(err, ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized in chain, got %v", err)
	}
	var apiErr *Error
	if !errors.As(err, &apiErr) || apiErr.Detail != "token expired" {
		t.Errorf("expected backend detail to survive, got %v", err)
	}
}

func TestDeviceHistory_AcceptsBareAndWrappedArrays(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"wrapped", `{"data":[{"device_id":"esp32-001","ieq_score":80,"timestamp":"2026-03-02T10:00:00Z"}]}`},
		{"bare", `[{"device_id":"esp32-001","ieq_score":80,"timestamp":"2026-03-02T10:00:00Z"}]`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Query().Get("limit") != "50" || r.URL.Query().Get("hours") != "720" {
					t.Errorf("unexpected query %q", r.URL.RawQuery)
				}
				w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			c := NewClient(srv.URL, staticTokens{token: "t"})
			recs, err := c.DeviceHistory(context.Background(), "esp32-001", 50, 720)
			if err != nil {
				t.Fatalf("DeviceHistory failed: %v", err)
			}
			if len(recs) != 1 || recs[0].DeviceID != "esp32-001" {
				t.Errorf("unexpected records: %+v", recs)
			}
		})
	}
}

func TestExercises_FilterQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("category"); got != "breathing" {
			t.Errorf("category = %q", got)
		}
		if got := r.URL.Query().Get("difficulty"); got != "beginner" {
			t.Errorf("difficulty = %q", got)
		}
		w.Write([]byte(`{"exercises":[{"exercise_id":"ex-1","name":"Box Breathing"}]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, staticTokens{token: "t"})
	exs, err := c.Exercises(context.Background(), "breathing", "beginner")
	if err != nil {
		t.Fatalf("Exercises failed: %v", err)
	}
	if len(exs) != 1 || exs[0].ExerciseID != "ex-1" {
		t.Errorf("unexpected exercises: %+v", exs)
	}
}
