package main

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"

	progress "github.com/mosamuhana/node-progress"
)

// outputPath resolves where a download lands: an explicit file, inside an
// explicit directory, or the derived base name in the working directory.
func outputPath(out, base string) string {
	if out == "" {
		return base
	}
	if info, err := os.Stat(out); err == nil && info.IsDir() {
		return filepath.Join(out, base)
	}
	return out
}

// urlBaseName extracts a usable file name from a URL.
func urlBaseName(rawUrl string) (string, error) {
	u, err := url.Parse(rawUrl)
	if err != nil {
		return "", err
	}
	base := path.Base(u.Path)
	if base == "/" || base == "." || base == "" {
		base = "index.html"
	}
	return base, nil
}

// fetchFile downloads one URL to disk, rendering progress while the body
// streams through the bar's reader.
func fetchFile(args *Args, rawUrl string) error {
	base, err := urlBaseName(rawUrl)
	if err != nil {
		return err
	}
	outPath := outputPath(args.Out, base)

	resp, err := httpGet(rawUrl)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusPartialContent {
		return errors.New(resp.Status)
	}

	template := pickTemplate(args, byteTemplate, coloredByteTemplate)
	if resp.ContentLength <= 0 {
		printWarning(outPath + ": size unknown")
		template = pickTemplate(args, unknownSizeTemplate, coloredUnknownSizeTemplate)
	}
	bar, err := buildBar(args, 0, template, progress.FormatBytes)
	if err != nil {
		return err
	}

	src := progress.NewResponseReader(resp, bar)
	src.OnTotal(func(total int64) {
		printDownload(fmt.Sprintf("%s (%s)", outPath, humanize.Bytes(uint64(total))))
	})

	f, err := os.OpenFile(outPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0755)
	if err != nil {
		return err
	}
	defer f.Close()

	written, err := io.Copy(f, src)
	if err != nil {
		return err
	}

	printSuccess(fmt.Sprintf("%s (%s)", outPath, humanize.Bytes(uint64(written))))
	return nil
}

// stripQuery drops the query and fragment from a URL for display.
func stripQuery(rawUrl string) string {
	if i := strings.IndexAny(rawUrl, "?#"); i >= 0 {
		return rawUrl[:i]
	}
	return rawUrl
}
