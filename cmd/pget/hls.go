package main

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/grafov/m3u8"

	progress "github.com/mosamuhana/node-progress"
)

// fetchPlaylist downloads an HLS playlist. Master playlists resolve to
// their highest-bandwidth variant; media playlists are fetched segment by
// segment into one output file, the bar counting segments instead of
// bytes.
func fetchPlaylist(args *Args, manUrl string) error {
	resp, err := httpGet(manUrl)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return errors.New(resp.Status)
	}

	playlist, _, err := m3u8.DecodeFrom(resp.Body, true)
	if err != nil {
		return err
	}

	switch pl := playlist.(type) {
	case *m3u8.MasterPlaylist:
		sort.Slice(pl.Variants, func(x, y int) bool {
			return pl.Variants[x].Bandwidth > pl.Variants[y].Bandwidth
		})
		if len(pl.Variants) == 0 {
			return errors.New("master playlist has no variants")
		}
		best := pl.Variants[0]
		printInfo(fmt.Sprintf("%d variants, using %s", len(pl.Variants), variantLabel(best)))
		base, q, err := manifestBase(manUrl)
		if err != nil {
			return err
		}
		return fetchPlaylist(args, base+best.URI+q)
	case *m3u8.MediaPlaylist:
		return fetchSegments(args, manUrl, pl)
	}
	return errors.New("unsupported playlist type")
}

func fetchSegments(args *Args, manUrl string, media *m3u8.MediaPlaylist) error {
	base, q, err := manifestBase(manUrl)
	if err != nil {
		return err
	}

	var segs []*m3u8.MediaSegment
	for _, seg := range media.Segments {
		if seg == nil {
			break
		}
		segs = append(segs, seg)
	}
	if len(segs) == 0 {
		return errors.New("media playlist has no segments")
	}

	outPath := outputPath(args.Out, segmentOutputName(manUrl))
	f, err := os.OpenFile(outPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0755)
	if err != nil {
		return err
	}
	defer f.Close()

	printDownload(fmt.Sprintf("%s (%d segments)", outPath, len(segs)))

	template := pickTemplate(args, segmentTemplate, coloredSegmentTemplate)
	bar, err := buildBar(args, int64(len(segs)), template, progress.FormatDecimal)
	if err != nil {
		return err
	}

	for _, seg := range segs {
		if err := fetchSegment(f, base+seg.URI+q); err != nil {
			return err
		}
		bar.Tick(map[string]string{"name": path.Base(stripQuery(seg.URI))})
	}

	printSuccess(outPath)
	return nil
}

func fetchSegment(f *os.File, segUrl string) error {
	resp, err := httpGet(segUrl)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return errors.New(resp.Status)
	}
	_, err = io.Copy(f, resp.Body)
	return err
}

// variantLabel names a master playlist variant for status output.
func variantLabel(v *m3u8.Variant) string {
	rate := humanize.SI(float64(v.Bandwidth), "bps")
	if v.Resolution == "" {
		return rate
	}
	return fmt.Sprintf("%s @ %s", v.Resolution, rate)
}

// segmentOutputName derives a default output file for a playlist URL,
// swapping the manifest extension for the stream container's.
func segmentOutputName(manUrl string) string {
	name := path.Base(stripQuery(manUrl))
	return strings.TrimSuffix(name, ".m3u8") + ".ts"
}

// manifestBase splits a manifest URL into the directory half segment URIs
// are resolved against and the query string they inherit.
func manifestBase(manifestUrl string) (string, string, error) {
	u, err := url.Parse(manifestUrl)
	if err != nil {
		return "", "", err
	}
	lastPathIdx := strings.LastIndex(u.Path, "/")
	base := u.Scheme + "://" + u.Host + u.Path[:lastPathIdx+1]
	if u.RawQuery == "" {
		return base, "", nil
	}
	return base, "?" + u.RawQuery, nil
}
