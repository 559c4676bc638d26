package router

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/danargo/sitegate/internal/pkg/config"
	"github.com/danargo/sitegate/internal/pkg/instrument"
	"github.com/julienschmidt/httprouter"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

// bodyLogLimit caps how much of a request or response body ends up in logs.
const bodyLogLimit = 32 * 1024

// redactFields reads the list of field names whose values must never appear
// in logs. Matching is case-insensitive for both headers and body keys.
func redactFields(cfg config.Config) map[string]struct{} {
	fields := make(map[string]struct{})
	if cfg == nil {
		return fields
	}

	for _, f := range cfg.GetArray("instrument.log_mask_fields") {
		f = strings.TrimSpace(strings.ToLower(f))
		if f != "" {
			fields[f] = struct{}{}
		}
	}
	return fields
}

func redactHeaders(h http.Header, fields map[string]struct{}) http.Header {
	if len(fields) == 0 {
		return h
	}

	out := h.Clone()
	for key := range out {
		if _, hit := fields[strings.ToLower(key)]; hit {
			out.Set(key, "***")
		}
	}
	return out
}

// redactValue walks decoded JSON and replaces sensitive values.
func redactValue(v any, fields map[string]struct{}) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, inner := range val {
			if _, hit := fields[strings.ToLower(k)]; hit {
				out[k] = "***"
				continue
			}
			out[k] = redactValue(inner, fields)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, inner := range val {
			out[i] = redactValue(inner, fields)
		}
		return out
	default:
		return v
	}
}

// captureWriter records status, byte count and a bounded copy of the
// response body while passing everything through to the real writer.
type captureWriter struct {
	http.ResponseWriter
	status  int
	written int
	body    *bytes.Buffer
	capped  bool
	err     error
}

func (w *captureWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *captureWriter) Write(p []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	w.capture(p)

	n, err := w.ResponseWriter.Write(p)
	w.written += n
	return n, err
}

func (w *captureWriter) capture(p []byte) {
	if w.body == nil || w.capped || len(p) == 0 {
		return
	}

	room := bodyLogLimit - w.body.Len()
	if room <= 0 {
		w.capped = true
		return
	}
	if len(p) > room {
		w.body.Write(p[:room])
		w.capped = true
		return
	}
	w.body.Write(p)
}

func (w *captureWriter) statusCode() int {
	if w.status == 0 {
		return http.StatusOK
	}
	return w.status
}

// SetError lets handlers attach the error behind a 5xx so the span and
// log line carry it.
func (w *captureWriter) SetError(err error) {
	w.err = err
}

func (w *captureWriter) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

//nolint:err113 // it use dynamic error
func (w *captureWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("hijack not supported")
	}
	return h.Hijack()
}

func (w *captureWriter) Push(target string, opts *http.PushOptions) error {
	if p, ok := w.ResponseWriter.(http.Pusher); ok {
		return p.Push(target, opts)
	}
	return http.ErrNotSupported
}

// routePattern returns the registered route pattern when the request was
// matched by httprouter, falling back to the raw path.
func routePattern(r *http.Request) string {
	if p := httprouter.ParamsFromContext(r.Context()).MatchedRoutePath(); p != "" {
		return p
	}
	return r.URL.Path
}

// peekRequestBody reads up to bodyLogLimit bytes for logging and rewinds
// the body so the handler still sees the full stream.
func peekRequestBody(r *http.Request) []byte {
	if r.Body == nil {
		return nil
	}

	limited := io.LimitReader(r.Body, bodyLogLimit+1)
	//nolint:errcheck // best effort for logging only
	peeked, _ := io.ReadAll(limited)
	r.Body = io.NopCloser(io.MultiReader(bytes.NewReader(peeked), r.Body))
	if len(peeked) > bodyLogLimit {
		return peeked[:bodyLogLimit]
	}
	return peeked
}

func redactBody(contentType string, body []byte, fields map[string]struct{}) any {
	if len(body) == 0 {
		return nil
	}

	var decoded any
	if err := json.Unmarshal(body, &decoded); err == nil {
		return redactValue(decoded, fields)
	}

	if strings.HasPrefix(strings.ToLower(contentType), "application/x-www-form-urlencoded") {
		if values, err := url.ParseQuery(string(body)); err == nil {
			out := make(map[string]any, len(values))
			for k, v := range values {
				if _, hit := fields[strings.ToLower(k)]; hit {
					out[k] = "***"
					continue
				}
				if len(v) == 1 {
					out[k] = v[0]
				} else {
					out[k] = v
				}
			}
			return out
		}
	}

	if !utf8.Valid(body) {
		return "<binary body omitted>"
	}
	if len(body) > bodyLogLimit {
		return string(body[:bodyLogLimit]) + "...(truncated)"
	}
	return string(body)
}

func (w *captureWriter) loggedBody(fields map[string]struct{}) any {
	if w.body == nil {
		return nil
	}

	var logged any
	var decoded any
	if err := json.Unmarshal(w.body.Bytes(), &decoded); err == nil {
		logged = redactValue(decoded, fields)
	} else if utf8.Valid(w.body.Bytes()) {
		logged = w.body.String()
	} else if w.body.Len() > 0 {
		logged = "<binary body omitted>"
	}

	if w.capped {
		logged = map[string]any{
			"body":      logged,
			"truncated": true,
		}
	}
	return logged
}

func logRequest(ctx context.Context, r *http.Request, route string, body []byte, fields map[string]struct{}) {
	slog.InfoContext(
		ctx,
		"request received",
		"method", r.Method,
		"path", route,
		"uri", r.RequestURI,
		"headers", redactHeaders(r.Header, fields),
		"body", redactBody(r.Header.Get("Content-Type"), body, fields),
	)
}

func middlewareObservability(cfg config.Config, ins instrument.Instrumentation) Middleware {
	fields := redactFields(cfg)
	tracer := ins.Tracer("http.server")
	meter := ins.Meter("http.server")

	requestCounter, err := meter.Int64Counter("http.server.requests", metric.WithDescription("Number of HTTP requests received"))
	if err != nil {
		slog.Error("failed to create http request counter", "error", err)
	}

	durationHistogram, err := meter.Float64Histogram("http.server.duration", metric.WithDescription("HTTP request duration in milliseconds"))
	if err != nil {
		slog.Error("failed to create http duration histogram", "error", err)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			route := routePattern(r)
			start := time.Now()

			ctx, span := tracer.Start(
				r.Context(),
				r.Method+" "+route,
				trace.WithAttributes(
					semconv.HTTPRequestMethodKey.String(r.Method),
					semconv.HTTPRouteKey.String(route),
				),
			)
			defer span.End()

			logRequest(ctx, r, route, peekRequestBody(r), fields)

			rec := &captureWriter{ResponseWriter: w, body: &bytes.Buffer{}}
			next.ServeHTTP(rec, r.WithContext(ctx))

			status := rec.statusCode()
			elapsedMs := float64(time.Since(start).Milliseconds())

			attrs := []attribute.KeyValue{
				semconv.HTTPRequestMethodKey.String(r.Method),
				semconv.HTTPRouteKey.String(route),
				semconv.HTTPResponseStatusCodeKey.Int(status),
			}

			if rec.err != nil {
				span.RecordError(rec.err)
			}

			switch {
			case status >= 500 && rec.err != nil:
				span.SetStatus(codes.Error, rec.err.Error())
			case status >= 500:
				span.SetStatus(codes.Error, http.StatusText(status))
			default:
				span.SetStatus(codes.Ok, "")
			}

			span.SetAttributes(attrs...)
			span.SetAttributes(
				semconv.NetworkProtocolVersionKey.String(r.Proto),
				semconv.ServerAddressKey.String(r.Host),
				attribute.String("http.target", r.URL.Path),
				attribute.String("http.user_agent", r.UserAgent()),
				attribute.Int("http.response_content_length", rec.written),
			)

			if requestCounter != nil {
				requestCounter.Add(ctx, 1, metric.WithAttributes(attrs...))
			}
			if durationHistogram != nil {
				durationHistogram.Record(ctx, elapsedMs, metric.WithAttributes(attrs...))
			}

			slog.InfoContext(
				ctx,
				"response sent",
				"method", r.Method,
				"path", route,
				"uri", r.RequestURI,
				"status", status,
				"bytes", rec.written,
				"latency_ms", time.Since(start).Milliseconds(),
				"body", rec.loggedBody(fields),
			)
		})
	}
}
