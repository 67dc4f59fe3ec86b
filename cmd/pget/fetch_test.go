package main

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mosamuhana/node-progress/internal/testutil"
)

func TestUrlBaseName(t *testing.T) {
	name, err := urlBaseName("https://example.com/files/data.bin?sig=abc")
	if err != nil {
		t.Fatalf("expected base name, got %v", err)
	}
	if name != "data.bin" {
		t.Fatalf("expected data.bin, got %q", name)
	}

	name, err = urlBaseName("https://example.com/")
	if err != nil {
		t.Fatalf("expected base name, got %v", err)
	}
	if name != "index.html" {
		t.Fatalf("expected fallback name for a bare host, got %q", name)
	}
}

func TestOutputPath(t *testing.T) {
	if got := outputPath("", "data.bin"); got != "data.bin" {
		t.Fatalf("expected bare base name, got %q", got)
	}

	dir := t.TempDir()
	if got := outputPath(dir, "data.bin"); got != filepath.Join(dir, "data.bin") {
		t.Fatalf("expected file inside directory, got %q", got)
	}

	if got := outputPath("renamed.bin", "data.bin"); got != "renamed.bin" {
		t.Fatalf("expected explicit file name, got %q", got)
	}
}

func TestStripQuery(t *testing.T) {
	if got := stripQuery("https://e.com/a.ts?x=1#y"); got != "https://e.com/a.ts" {
		t.Fatalf("expected query stripped, got %q", got)
	}
	if got := stripQuery("https://e.com/a.ts"); got != "https://e.com/a.ts" {
		t.Fatalf("expected untouched URL, got %q", got)
	}
}

func TestFetchFile_DownloadsIntoDirectory(t *testing.T) {
	payload := strings.Repeat("pget", 1024)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(payload))
	}))
	defer srv.Close()

	dir := t.TempDir()
	args := &Args{Out: dir, Quiet: true, Throttle: 16}
	out := testutil.CaptureStdout(t, func() {
		if err := fetchFile(args, srv.URL+"/files/sample.bin"); err != nil {
			t.Fatalf("expected download to succeed, got %v", err)
		}
	})

	data, err := os.ReadFile(filepath.Join(dir, "sample.bin"))
	if err != nil {
		t.Fatalf("expected output file, got %v", err)
	}
	if string(data) != payload {
		t.Fatalf("expected %d payload bytes, got %d", len(payload), len(data))
	}
	if !strings.Contains(out, "sample.bin") {
		t.Fatalf("expected file name in output, got %q", out)
	}
}

func TestFetchFile_UnknownSizeWarnsAndCompletes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.(http.Flusher).Flush()
		w.Write([]byte("stream-of-unknown-length"))
	}))
	defer srv.Close()

	dir := t.TempDir()
	args := &Args{Out: dir, Quiet: true, Throttle: 16}
	out := testutil.CaptureStdout(t, func() {
		if err := fetchFile(args, srv.URL+"/live.bin"); err != nil {
			t.Fatalf("expected download to succeed, got %v", err)
		}
	})

	if !strings.Contains(out, "size unknown") {
		t.Fatalf("expected a size warning, got %q", out)
	}
	data, err := os.ReadFile(filepath.Join(dir, "live.bin"))
	if err != nil {
		t.Fatalf("expected output file, got %v", err)
	}
	if string(data) != "stream-of-unknown-length" {
		t.Fatalf("expected full payload, got %q", data)
	}
}

func TestFetchFile_ReportsHttpErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	args := &Args{Out: t.TempDir(), Quiet: true, Throttle: 16}
	if err := fetchFile(args, srv.URL+"/missing.bin"); err == nil {
		t.Fatal("expected an error for a 404 response")
	}
}
