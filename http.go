package pagecraft

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// Emit renders the page and writes it to the sink. When the sink is an
// http.ResponseWriter the Content-Type header is set first. Write failures
// come back as a *SinkError; the write is best-effort and never retried.
// The page is returned for chaining.
func (p *Page) Emit(w io.Writer) (*Page, error) {
	doc, err := p.Fetch()
	if err != nil {
		return p, err
	}

	if rw, ok := w.(http.ResponseWriter); ok {
		rw.Header().Set("Content-Type", "text/html; charset=utf-8")
	}

	if _, err := io.WriteString(w, doc); err != nil {
		return p, &SinkError{Err: err}
	}

	return p, nil
}

// SetCacheHeaders sets the Cache-Control header and, when maxAge is
// positive, an Expires header computed from the renderer's clock in GMT.
//
// Transport headers can only be set before the response body starts. When w
// reports (via HeaderWritten, see TrackWriter) that the header block already
// went out, the call logs a warning and does nothing — it is never fatal.
func (r *Renderer) SetCacheHeaders(w http.ResponseWriter, directive string, maxAge time.Duration) {
	if hw, ok := w.(interface{ HeaderWritten() bool }); ok && hw.HeaderWritten() {
		r.logger.LogAttrs(
			context.Background(), slog.LevelWarn,
			"cache headers skipped, response headers already sent",
			slog.String("directive", directive),
		)
		return
	}

	w.Header().Set("Cache-Control", directive)
	if maxAge > 0 {
		w.Header().Set("Expires", r.clock().Add(maxAge).UTC().Format(http.TimeFormat))
	}
}

// TrackWriter wraps an http.ResponseWriter and records whether the header
// block was flushed, which is what SetCacheHeaders keys its no-op on.
type TrackWriter struct {
	http.ResponseWriter
	wroteHeader bool
}

func NewTrackWriter(w http.ResponseWriter) *TrackWriter {
	return &TrackWriter{ResponseWriter: w}
}

func (t *TrackWriter) WriteHeader(statusCode int) {
	t.wroteHeader = true
	t.ResponseWriter.WriteHeader(statusCode)
}

func (t *TrackWriter) Write(b []byte) (int, error) {
	// An implicit 200 flushes headers too.
	t.wroteHeader = true
	return t.ResponseWriter.Write(b)
}

func (t *TrackWriter) HeaderWritten() bool {
	return t.wroteHeader
}
