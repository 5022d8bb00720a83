// Package ytdlp implements [media.Searcher] and [media.Fetcher] on top of the
// yt-dlp command line tool via github.com/lrstanley/go-ytdlp.
package ytdlp

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/lrstanley/go-ytdlp"

	"github.com/ultraxas/musicbot/pkg/provider/media"
)

// Provider runs yt-dlp for flattened search and for audio extraction.
// The zero value is usable; all methods are safe for concurrent use because
// every call builds a fresh yt-dlp command.
type Provider struct {
	// Proxy is an optional proxy URL passed to yt-dlp.
	Proxy string
}

// New creates a Provider. proxy may be empty.
func New(proxy string) *Provider {
	return &Provider{Proxy: proxy}
}

func (p *Provider) newCommand() *ytdlp.Command {
	cmd := ytdlp.New().
		Quiet().
		NoWarnings().
		IgnoreConfig().
		NoCheckCertificates()
	if p.Proxy != "" {
		cmd.Proxy(p.Proxy)
	}
	return cmd
}

// Search runs a flat-playlist "ytsearchN:" query and parses the tab-separated
// print output. Entries without a usable video ID are dropped.
func (p *Provider) Search(ctx context.Context, query string, limit int) ([]media.Candidate, error) {
	if limit <= 0 {
		return nil, nil
	}

	res, err := p.newCommand().
		FlatPlaylist().
		Print("%(id)s\t%(title)s\t%(uploader)s\t%(duration)s").
		PlaylistItems(fmt.Sprintf("1-%d", limit)).
		Run(ctx, fmt.Sprintf("ytsearch%d:%s", limit, query))
	if err != nil {
		return nil, fmt.Errorf("ytdlp: search %q: %w", query, err)
	}

	lines := strings.Split(strings.TrimSpace(res.Stdout), "\n")
	out := make([]media.Candidate, 0, len(lines))
	for _, line := range lines {
		fields := strings.Split(line, "\t")
		if len(fields) < 4 || fields[0] == "" || fields[0] == "NA" {
			continue
		}
		c := media.Candidate{
			ID:       fields[0],
			Title:    cleanField(fields[1]),
			Uploader: cleanField(fields[2]),
		}
		if secs, err := strconv.ParseFloat(fields[3], 64); err == nil {
			c.Duration = time.Duration(secs * float64(time.Second))
		}
		out = append(out, c)
	}
	return out, nil
}

// Fetch downloads the best available audio for id, extracts the audio stream
// and transcodes it to the requested codec/bitrate inside dir. The caller
// provides a dir that is private to this fetch, so the produced file is the
// only regular file in it.
func (p *Provider) Fetch(ctx context.Context, id string, dir string, opts media.FetchOptions) (media.Download, error) {
	url := "https://www.youtube.com/watch?v=" + id

	res, err := p.newCommand().
		Format("bestaudio/best").
		ExtractAudio().
		AudioFormat(opts.Codec).
		AudioQuality(fmt.Sprintf("%dK", opts.BitrateKbps)).
		NoPlaylist().
		NoPart().
		Output(filepath.Join(dir, "%(title)s.%(ext)s")).
		Print("%(title)s\t%(uploader)s").
		NoSimulate().
		Run(ctx, url)
	if err != nil {
		if strings.Contains(strings.ToLower(stderrOf(res)), "video unavailable") {
			return media.Download{}, fmt.Errorf("ytdlp: fetch %s: %w", id, media.ErrNotFound)
		}
		return media.Download{}, fmt.Errorf("ytdlp: fetch %s: %w", id, err)
	}

	dl := media.Download{}
	if line := strings.TrimSpace(res.Stdout); line != "" {
		fields := strings.Split(strings.Split(line, "\n")[0], "\t")
		if len(fields) >= 1 {
			dl.Title = cleanField(fields[0])
		}
		if len(fields) >= 2 {
			dl.Uploader = cleanField(fields[1])
		}
	}

	path, err := producedFile(dir)
	if err != nil {
		return media.Download{}, fmt.Errorf("ytdlp: fetch %s: %w", id, err)
	}
	dl.Path = path
	return dl, nil
}

// producedFile returns the single regular file yt-dlp left in dir.
func producedFile(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}
	var newest string
	var newestMod time.Time
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if newest == "" || info.ModTime().After(newestMod) {
			newest = filepath.Join(dir, e.Name())
			newestMod = info.ModTime()
		}
	}
	if newest == "" {
		return "", fmt.Errorf("no output file produced")
	}
	return newest, nil
}

// cleanField maps yt-dlp's "NA" placeholder to the empty string.
func cleanField(s string) string {
	if s == "NA" {
		return ""
	}
	return s
}

func stderrOf(res *ytdlp.Result) string {
	if res == nil {
		return ""
	}
	return res.Stderr
}
