package rekog

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"strings"
	"time"
)

// DebugSink receives diagnostic lines.
type DebugSink interface {
	Debug(line string)
}

type nopSink struct{}

func (nopSink) Debug(string) {}

// URL outcomes and rewrite results reported to a Recorder.
const (
	OutcomeFetchError  = "fetch_error"
	OutcomeNotImage    = "not_image"
	OutcomeDecodeError = "decode_error"
	OutcomeNoMatch     = "no_match"
	OutcomeMatched     = "matched"

	ResultUnchanged = "unchanged"
	ResultRewritten = "rewritten"
	ResultFailed    = "failed"
)

// Recorder collects pipeline counters.
type Recorder interface {
	ObserveURL(outcome string)
	ObserveRewrite(result string)
	ObserveFetch(d time.Duration)
}

type Options struct {
	// Debug enables per-step diagnostics on the sink.
	Debug    bool
	Recorder Recorder
}

// Rewriter replaces URLs of known images in chat messages.
type Rewriter struct {
	db       *Database
	fetcher  Fetcher
	decoder  Decoder
	sink     DebugSink
	recorder Recorder
	debug    bool
}

func NewRewriter(db *Database, fetcher Fetcher, decoder Decoder, sink DebugSink, opts Options) *Rewriter {
	if db == nil {
		db = &Database{}
	}
	if sink == nil {
		sink = nopSink{}
	}
	return &Rewriter{
		db:       db,
		fetcher:  fetcher,
		decoder:  decoder,
		sink:     sink,
		recorder: opts.Recorder,
		debug:    opts.Debug,
	}
}

// WithDebug returns a copy of r with debug diagnostics switched on or off.
func (r *Rewriter) WithDebug(on bool) *Rewriter {
	cp := *r
	cp.debug = on
	return &cp
}

// Rewrite returns message with every URL whose image matches a reference
// replaced by that reference's token. It never fails: on any internal error the
// original message is returned unchanged.
func (r *Rewriter) Rewrite(ctx context.Context, message string) string {
	out, err := r.rewrite(ctx, message)
	if err != nil {
		r.sink.Debug(err.Error())
		r.observeRewrite(ResultFailed)
		return message
	}
	if out == message {
		r.observeRewrite(ResultUnchanged)
	} else {
		r.observeRewrite(ResultRewritten)
	}
	return out
}

func (r *Rewriter) rewrite(ctx context.Context, message string) (out string, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("rewrite panicked: %v\n%s", p, debug.Stack())
		}
	}()
	if r.fetcher == nil {
		return message, errors.New("rewriter has no fetcher")
	}

	out = message
	for url := range FindURLs(message) {
		if err := ctx.Err(); err != nil {
			return message, fmt.Errorf("rewrite aborted: %w", err)
		}
		replacement, ok := r.findReplacement(ctx, url)
		if !ok {
			continue
		}
		out = strings.ReplaceAll(out, url, replacement)
		r.debugf("Replaced '%s' by '%s'. New message:\n  %s", url, replacement, out)
	}
	return out, nil
}

func (r *Rewriter) findReplacement(ctx context.Context, url string) (string, bool) {
	r.debugf("Handling <%s>:", url)

	start := time.Now()
	data, err := r.fetcher.Fetch(ctx, url)
	if r.recorder != nil {
		r.recorder.ObserveFetch(time.Since(start))
	}
	if err != nil {
		r.debugf("%v", err)
		r.observeURL(OutcomeFetchError)
		return "", false
	}

	img, err := r.decoder.Decode(data)
	if err != nil {
		if errors.Is(err, ErrNotAnImage) {
			r.debugf("It is not an image.")
			r.observeURL(OutcomeNotImage)
		} else {
			r.debugf("Could not decode image: %v", err)
			r.observeURL(OutcomeDecodeError)
		}
		return "", false
	}

	for _, ref := range r.db.Entries() {
		r.debugf("- Matching against %q", ref.Name)
		result, err := Compare(ref.Image, img, ref.Threshold)
		if err != nil {
			r.debugf("  %v", err)
			continue
		}
		r.debugf("  RMS = %v\n  threshold = %v", result.RMS, result.Threshold)
		if r.debug {
			if dist, err := HashDistance(ref.Image, img); err == nil {
				r.debugf("  dHash distance = %d", dist)
			}
		}
		if result.Match {
			r.observeURL(OutcomeMatched)
			return ref.Replacement, true
		}
	}
	r.observeURL(OutcomeNoMatch)
	return "", false
}

func (r *Rewriter) debugf(format string, args ...any) {
	if !r.debug {
		return
	}
	r.sink.Debug(fmt.Sprintf(format, args...))
}

func (r *Rewriter) observeURL(outcome string) {
	if r.recorder != nil {
		r.recorder.ObserveURL(outcome)
	}
}

func (r *Rewriter) observeRewrite(result string) {
	if r.recorder != nil {
		r.recorder.ObserveRewrite(result)
	}
}
