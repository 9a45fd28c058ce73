package rekogbot

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naseer2426/rekog/internal/logging"
	"github.com/naseer2426/rekog/internal/rekog"
	"github.com/naseer2426/rekog/internal/settings"
)

type staticFetcher map[string][]byte

func (f staticFetcher) Fetch(_ context.Context, url string) ([]byte, error) {
	if body, ok := f[url]; ok {
		return body, nil
	}
	return nil, &rekog.FetchError{Kind: rekog.FetchNetwork, URL: url, Reason: "unknown"}
}

func whitePNG(t *testing.T) []byte {
	img := image.NewGray(image.Rect(0, 0, 8, 8))
	for i := range img.Pix {
		img.Pix[i] = 0xFF
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func newBot(t *testing.T, sink rekog.DebugSink, store settings.Store) *Bot {
	t.Helper()
	white := image.NewGray(image.Rect(0, 0, 8, 8))
	for i := range white.Pix {
		white.Pix[i] = 0xFF
	}
	db := rekog.NewDatabaseFromImages(rekog.Reference{
		ReferenceEntry: rekog.ReferenceEntry{Name: "white", Replacement: ":white:", Threshold: 0},
		Image:          rekog.NewImage(white),
	})
	fetcher := staticFetcher{"http://img.example/w.png": whitePNG(t)}
	logger, _ := test.NewNullLogger()
	return NewBot(rekog.NewRewriter(db, fetcher, rekog.Decoder{}, sink, rekog.Options{}), store, logger)
}

func TestHandleMessage(t *testing.T) {
	store := settings.NewMemoryStore()
	bot := newBot(t, logging.NopSink{}, store)

	out, changed := bot.HandleMessage(context.Background(), "req", &Message{Text: "see http://img.example/w.png"})
	assert.True(t, changed)
	assert.Equal(t, "see :white:", out)

	out, changed = bot.HandleMessage(context.Background(), "req", &Message{Text: "see http://other.example/x.png"})
	assert.False(t, changed)
	assert.Equal(t, "see http://other.example/x.png", out)

	_, changed = bot.HandleMessage(context.Background(), "req", nil)
	assert.False(t, changed)
}

func TestHandleMessageFollowsDebugMode(t *testing.T) {
	store := settings.NewMemoryStore()
	require.NoError(t, settings.Register(store, settings.Options))
	sink := &logging.RecorderSink{}
	bot := newBot(t, sink, store)

	bot.HandleMessage(context.Background(), "req", &Message{Text: "http://img.example/w.png"})
	assert.Empty(t, sink.Lines())

	require.NoError(t, store.Set(settings.DebugMode, "on"))
	bot.HandleMessage(context.Background(), "req", &Message{Text: "http://img.example/w.png"})
	assert.Contains(t, sink.Lines(), "Handling <http://img.example/w.png>:")
}
