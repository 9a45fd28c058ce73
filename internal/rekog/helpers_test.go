package rekog

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var (
	white = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	black = color.RGBA{A: 0xFF}
	red   = color.RGBA{R: 0xFF, A: 0xFF}
)

func solid(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func encodeJPEG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}))
	return buf.Bytes()
}

func encodeGIF(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, gif.Encode(&buf, img, nil))
	return buf.Bytes()
}

func writeFile(t *testing.T, dir, name string, data []byte) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0o644))
}

type fakeResponse struct {
	body []byte
	err  error
}

type fakeFetcher struct {
	mu        sync.Mutex
	responses map[string]fakeResponse
	calls     []string
	onFetch   func(url string)
}

func (f *fakeFetcher) Fetch(_ context.Context, url string) ([]byte, error) {
	f.mu.Lock()
	f.calls = append(f.calls, url)
	f.mu.Unlock()
	if f.onFetch != nil {
		f.onFetch(url)
	}
	resp, ok := f.responses[url]
	if !ok {
		return nil, &FetchError{Kind: FetchNetwork, URL: url, Reason: "no such host"}
	}
	return resp.body, resp.err
}

type lineSink struct {
	mu    sync.Mutex
	lines []string
}

func (s *lineSink) Debug(line string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = append(s.lines, line)
}

func (s *lineSink) joined() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var buf bytes.Buffer
	for _, l := range s.lines {
		buf.WriteString(l)
		buf.WriteByte('\n')
	}
	return buf.String()
}

type countingRecorder struct {
	mu       sync.Mutex
	urls     map[string]int
	rewrites map[string]int
	fetches  int
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{urls: map[string]int{}, rewrites: map[string]int{}}
}

func (c *countingRecorder) ObserveURL(outcome string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.urls[outcome]++
}

func (c *countingRecorder) ObserveRewrite(result string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rewrites[result]++
}

func (c *countingRecorder) ObserveFetch(_ time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fetches++
}
