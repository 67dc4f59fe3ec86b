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

func TestManifestBase(t *testing.T) {
	base, q, err := manifestBase("https://cdn.example.com/vod/720p/index.m3u8?token=abc")
	if err != nil {
		t.Fatalf("expected manifest base, got %v", err)
	}
	if base != "https://cdn.example.com/vod/720p/" {
		t.Fatalf("expected directory base, got %q", base)
	}
	if q != "?token=abc" {
		t.Fatalf("expected inherited query, got %q", q)
	}

	base, q, err = manifestBase("https://cdn.example.com/vod/index.m3u8")
	if err != nil {
		t.Fatalf("expected manifest base, got %v", err)
	}
	if base != "https://cdn.example.com/vod/" {
		t.Fatalf("expected directory base, got %q", base)
	}
	if q != "" {
		t.Fatalf("expected no query suffix, got %q", q)
	}
}

func TestSegmentOutputName(t *testing.T) {
	if got := segmentOutputName("https://cdn.example.com/vod/master.m3u8?sig=1"); got != "master.ts" {
		t.Fatalf("expected master.ts, got %q", got)
	}
	if got := segmentOutputName("https://cdn.example.com/stream"); got != "stream.ts" {
		t.Fatalf("expected stream.ts, got %q", got)
	}
}

func TestFetchPlaylist_ConcatenatesSegments(t *testing.T) {
	manifest := "#EXTM3U\n" +
		"#EXT-X-VERSION:3\n" +
		"#EXT-X-TARGETDURATION:4\n" +
		"#EXTINF:4.000,\n" +
		"seg0.ts\n" +
		"#EXTINF:4.000,\n" +
		"seg1.ts\n" +
		"#EXT-X-ENDLIST\n"

	mux := http.NewServeMux()
	mux.HandleFunc("/vod/index.m3u8", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(manifest))
	})
	mux.HandleFunc("/vod/seg0.ts", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("AAAA"))
	})
	mux.HandleFunc("/vod/seg1.ts", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("BBBB"))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	dir := t.TempDir()
	args := &Args{Out: dir, Quiet: true, Throttle: 16}
	testutil.CaptureStdout(t, func() {
		if err := fetchPlaylist(args, srv.URL+"/vod/index.m3u8"); err != nil {
			t.Fatalf("expected playlist download to succeed, got %v", err)
		}
	})

	data, err := os.ReadFile(filepath.Join(dir, "index.ts"))
	if err != nil {
		t.Fatalf("expected concatenated output, got %v", err)
	}
	if string(data) != "AAAABBBB" {
		t.Fatalf("expected segments in order, got %q", data)
	}
}

func TestFetchPlaylist_MasterPicksHighestBandwidth(t *testing.T) {
	master := "#EXTM3U\n" +
		"#EXT-X-VERSION:3\n" +
		"#EXT-X-STREAM-INF:PROGRAM-ID=1,BANDWIDTH=1280000,RESOLUTION=640x360\n" +
		"low/index.m3u8\n" +
		"#EXT-X-STREAM-INF:PROGRAM-ID=1,BANDWIDTH=2560000,RESOLUTION=1280x720\n" +
		"hi/index.m3u8\n"
	manifest := "#EXTM3U\n" +
		"#EXT-X-VERSION:3\n" +
		"#EXT-X-TARGETDURATION:4\n" +
		"#EXTINF:4.000,\n" +
		"seg0.ts\n" +
		"#EXT-X-ENDLIST\n"

	mux := http.NewServeMux()
	mux.HandleFunc("/vod/master.m3u8", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(master))
	})
	mux.HandleFunc("/vod/hi/index.m3u8", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(manifest))
	})
	mux.HandleFunc("/vod/hi/seg0.ts", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("HI"))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	dir := t.TempDir()
	args := &Args{Out: dir, Quiet: true, Throttle: 16}
	out := testutil.CaptureStdout(t, func() {
		if err := fetchPlaylist(args, srv.URL+"/vod/master.m3u8"); err != nil {
			t.Fatalf("expected master playlist download to succeed, got %v", err)
		}
	})

	if !strings.Contains(out, "1280x720") {
		t.Fatalf("expected the highest bandwidth variant to be picked, got %q", out)
	}
	data, err := os.ReadFile(filepath.Join(dir, "index.ts"))
	if err != nil {
		t.Fatalf("expected variant output, got %v", err)
	}
	if string(data) != "HI" {
		t.Fatalf("expected the chosen variant's segment, got %q", data)
	}
}
