package crud_test

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"shelter-services/internal/domain/crud"
)

func newNoteServer(t *testing.T) *httptest.Server {
	t.Helper()

	svc, _ := newNoteService()
	r := chi.NewRouter()
	crud.RegisterRoutes(r, svc, nil)

	ts := httptest.NewServer(r)
	t.Cleanup(ts.Close)
	return ts
}

func send(t *testing.T, method, url, body string) (*http.Response, string) {
	t.Helper()

	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	b, _ := io.ReadAll(res.Body)
	return res, string(b)
}

func TestHandlers_CreateSetsLocationAndConfirms(t *testing.T) {
	ts := newNoteServer(t)

	res, body := send(t, http.MethodPost, ts.URL+"/notes", `{"title":"hello"}`)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", res.StatusCode, body)
	}
	if body != "note saved" {
		t.Fatalf("unexpected confirmation %q", body)
	}
	if loc := res.Header.Get("Location"); loc != "/notes/1" {
		t.Fatalf("expected Location /notes/1, got %q", loc)
	}
}

func TestHandlers_BadInput(t *testing.T) {
	ts := newNoteServer(t)

	cases := []struct {
		name, method, path, body string
		want                     int
	}{
		{"malformed json", http.MethodPost, "/notes", `{"title":`, http.StatusBadRequest},
		{"missing required", http.MethodPost, "/notes", `{"body":"x"}`, http.StatusBadRequest},
		{"wrong type", http.MethodPost, "/notes", `{"title":"x","stars":"3"}`, http.StatusBadRequest},
		{"non numeric id", http.MethodGet, "/notes/abc", "", http.StatusNotFound},
		{"unknown id", http.MethodGet, "/notes/7", "", http.StatusNotFound},
		{"put unknown id", http.MethodPut, "/notes/7", `{"title":"x"}`, http.StatusNotFound},
		{"put non object", http.MethodPut, "/notes/7", `[1,2]`, http.StatusBadRequest},
		{"delete unknown id", http.MethodDelete, "/notes/7", "", http.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, body := send(t, tc.method, ts.URL+tc.path, tc.body)
			if res.StatusCode != tc.want {
				t.Fatalf("expected %d, got %d body=%s", tc.want, res.StatusCode, body)
			}
		})
	}
}

func TestHandlers_MissingFieldMessageNamesField(t *testing.T) {
	ts := newNoteServer(t)

	_, body := send(t, http.MethodPost, ts.URL+"/notes", `{}`)
	if !strings.Contains(body, "missing required fields: title") {
		t.Fatalf("expected human readable message, got %q", body)
	}
}

func TestWriteError_StorageExposesMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	crud.WriteError(rec, &crud.StorageError{Resource: "note", Op: "list", Err: errors.New("connection reset")})

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "connection reset") {
		t.Fatalf("expected underlying message, got %q", rec.Body.String())
	}
}
