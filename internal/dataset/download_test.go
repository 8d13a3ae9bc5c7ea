package dataset

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("workbook-bytes"))
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "data", "disclosure.xlsx")
	d := NewDownloader(zap.NewNop())

	if err := d.Fetch(context.Background(), srv.URL, path); err != nil {
		t.Fatalf("fetch: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(got) != "workbook-bytes" {
		t.Errorf("content = %q", got)
	}
}

func TestFetchSkipsExisting(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits++
		_, _ = w.Write([]byte("fresh"))
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "disclosure.xlsx")
	if err := os.WriteFile(path, []byte("cached"), 0o640); err != nil {
		t.Fatal(err)
	}

	d := NewDownloader(zap.NewNop())
	if err := d.Fetch(context.Background(), srv.URL, path); err != nil {
		t.Fatalf("fetch: %v", err)
	}

	if hits != 0 {
		t.Errorf("expected no HTTP request for an existing file, got %d", hits)
	}
	got, _ := os.ReadFile(path)
	if string(got) != "cached" {
		t.Errorf("existing file was overwritten: %q", got)
	}
}

func TestFetchBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	d := NewDownloader(zap.NewNop())
	err := d.Fetch(context.Background(), srv.URL, filepath.Join(t.TempDir(), "x.xlsx"))
	if err == nil {
		t.Fatal("expected error for non-200 status")
	}
}
