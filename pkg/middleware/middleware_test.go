package middleware

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

func newRouter(mw ...func(http.Handler) http.Handler) *chi.Mux {
	r := chi.NewRouter()
	r.Use(mw...)
	r.Get("/items/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("item " + chi.URLParam(r, "id")))
	})
	r.Get("/boom", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	return r
}

func serve(h http.Handler, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

// findMetric returns the metric in family name whose labels include all of
// labels.
func findMetric(t *testing.T, reg *prometheus.Registry, name string, labels map[string]string) *dto.Metric {
	t.Helper()
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
	next:
		for _, m := range mf.GetMetric() {
			got := make(map[string]string)
			for _, lp := range m.GetLabel() {
				got[lp.GetName()] = lp.GetValue()
			}
			for k, v := range labels {
				if got[k] != v {
					continue next
				}
			}
			return m
		}
	}
	t.Fatalf("metric %s%v not found", name, labels)
	return nil
}

func TestPrometheusRecordsRoutePattern(t *testing.T) {
	reg := prometheus.NewRegistry()
	h := newRouter(Prometheus(WithRegistry(reg), WithNamespace("test")))

	serve(h, "/items/1")
	serve(h, "/items/2")
	serve(h, "/boom")
	serve(h, "/nowhere")

	m := findMetric(t, reg, "test_http_requests_total", map[string]string{
		"route": "/items/{id}", "method": "GET", "status": "200",
	})
	if got := m.GetCounter().GetValue(); got != 2 {
		t.Errorf("requests for /items/{id} = %v, want 2", got)
	}
	m = findMetric(t, reg, "test_http_requests_total", map[string]string{"route": "/boom", "status": "500"})
	if got := m.GetCounter().GetValue(); got != 1 {
		t.Errorf("requests for /boom = %v, want 1", got)
	}
	findMetric(t, reg, "test_http_requests_total", map[string]string{"route": "unmatched", "status": "404"})

	h2 := findMetric(t, reg, "test_http_request_duration_seconds", map[string]string{"route": "/items/{id}"})
	if got := h2.GetHistogram().GetSampleCount(); got != 2 {
		t.Errorf("duration samples = %d, want 2", got)
	}
	if got := findMetric(t, reg, "test_http_requests_in_flight", nil).GetGauge().GetValue(); got != 0 {
		t.Errorf("in flight = %v, want 0", got)
	}
}

type recordedSpan struct {
	trace.Span
	name   string
	attrs  map[string]any
	failed bool
}

func (s *recordedSpan) SetName(name string) { s.name = name }

func (s *recordedSpan) SetAttributes(kv ...attribute.KeyValue) {
	for _, a := range kv {
		s.attrs[string(a.Key)] = a.Value.AsInterface()
	}
}

func (s *recordedSpan) SetStatus(code codes.Code, _ string) {
	s.failed = code == codes.Error
}

type recordingTracer struct {
	noop.Tracer
	spans []*recordedSpan
}

func (t *recordingTracer) Start(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	ctx, base := t.Tracer.Start(ctx, name, opts...)
	s := &recordedSpan{Span: base, name: name, attrs: make(map[string]any)}
	cfg := trace.NewSpanStartConfig(opts...)
	for _, a := range cfg.Attributes() {
		s.attrs[string(a.Key)] = a.Value.AsInterface()
	}
	t.spans = append(t.spans, s)
	return trace.ContextWithSpan(ctx, s), s
}

func TestTracingNamesSpanAfterRoute(t *testing.T) {
	tracer := &recordingTracer{}
	var inside trace.Span
	r := chi.NewRouter()
	r.Use(Tracing(WithTracer(tracer)))
	r.Get("/items/{id}", func(w http.ResponseWriter, r *http.Request) {
		inside = trace.SpanFromContext(r.Context())
	})
	r.Get("/boom", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	serve(r, "/items/7")
	serve(r, "/boom")

	if len(tracer.spans) != 2 {
		t.Fatalf("recorded %d spans, want 2", len(tracer.spans))
	}
	s := tracer.spans[0]
	if s.name != "HTTP GET /items/{id}" {
		t.Errorf("span name = %q", s.name)
	}
	if s.attrs["http.target"] != "/items/7" || s.attrs["http.status_code"] != int64(200) {
		t.Errorf("span attributes = %v", s.attrs)
	}
	if inside != trace.Span(s) {
		t.Error("handler should see the request span in its context")
	}
	if s.failed {
		t.Error("200 response should not fail the span")
	}
	if !tracer.spans[1].failed {
		t.Error("502 response should fail the span")
	}
}

func TestTracingFilter(t *testing.T) {
	tracer := &recordingTracer{}
	h := newRouter(Tracing(WithTracer(tracer), WithRequestFilter(func(r *http.Request) bool {
		return !strings.HasPrefix(r.URL.Path, "/items")
	})))

	serve(h, "/items/1")
	serve(h, "/boom")

	if len(tracer.spans) != 1 || tracer.spans[0].name != "HTTP GET /boom" {
		t.Errorf("spans = %d, want only /boom", len(tracer.spans))
	}
}

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	h := newRouter(chimw.RequestID, Logging(logger))

	serve(h, "/items/3")
	serve(h, "/boom")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("logged %d lines, want 2:\n%s", len(lines), buf.String())
	}
	for _, want := range []string{"level=INFO", `route=/items/{id}`, "status=200", "bytes=6", "request_id="} {
		if !strings.Contains(lines[0], want) {
			t.Errorf("first line missing %q: %s", want, lines[0])
		}
	}
	if !strings.Contains(lines[1], "level=ERROR") || !strings.Contains(lines[1], "status=500") {
		t.Errorf("second line = %s, want an error-level 500", lines[1])
	}
}
