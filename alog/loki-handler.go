package alog

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/afiskon/promtail-client/promtail"
)

// NewLokiHandler use this handler only for local development!
//
// It ships your logs to a local loki instance, so you can use the same setup as in production.
// It does not care about performance: in production log to `stdout` and let the
// container runtime ship your logs to loki.
// If loki is not reachable, records are dropped until a connection could be established.
func NewLokiHandler(opt *LokiHandlerOptions) *LokiHandler {
	conf := getPromtailConfig(opt)

	buf := &bytes.Buffer{}
	renderer := slog.NewJSONHandler(buf, &slog.HandlerOptions{
		Level:       LevelDebug, // allow all records, the level is controlled by the parent handler.
		AddSource:   false,
		ReplaceAttr: MapLogLevelsToName,
	})

	h := &LokiHandler{
		state:    &lokiState{mu: sync.Mutex{}, client: getClient(conf), output: buf},
		renderer: renderer,
	}

	if h.state.client == nil {
		go h.state.retry(conf)
	}

	return h
}

type (
	LokiHandlerOptions struct {
		Labels  map[string]string
		PushURL string
	}

	// LokiHandler pushes each record as a JSON line to loki.
	LokiHandler struct {
		state    *lokiState
		renderer slog.Handler
	}

	// lokiState is shared by all copies created via WithAttrs and WithGroup.
	lokiState struct {
		mu     sync.Mutex
		client promtail.Client
		output *bytes.Buffer
	}
)

var _ slog.Handler = (*LokiHandler)(nil)

func getPromtailConfig(opt *LokiHandlerOptions) promtail.ClientConfig {
	if opt == nil {
		opt = &LokiHandlerOptions{} //nolint:exhaustruct // defaults are set below
	}

	if opt.PushURL == "" {
		opt.PushURL = "http://localhost:3100/api/prom/push"
	}

	if len(opt.Labels) == 0 {
		opt.Labels = map[string]string{"app": "records"}
	}

	return promtail.ClientConfig{
		PushURL:            opt.PushURL,
		BatchWait:          1 * time.Second,
		BatchEntriesNumber: 1,
		SendLevel:          promtail.DEBUG,
		PrintLevel:         promtail.DISABLE,
		Labels:             lokiLabels(opt.Labels),
	}
}

// lokiLabels renders labels as a stream selector, e.g. {app="records"}.
func lokiLabels(labels map[string]string) string {
	keys := make([]string, 0, len(labels))
	for k := range labels {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, fmt.Sprintf("%s=%q", k, labels[k]))
	}

	return "{" + strings.Join(pairs, ",") + "}"
}

func (s *lokiState) retry(conf promtail.ClientConfig) {
	const lokiRetryInterval = 15 * time.Second

	t := time.NewTicker(lokiRetryInterval)
	defer t.Stop()

	for range t.C {
		client := getClient(conf)
		if client == nil {
			continue
		}

		s.mu.Lock()
		s.client = client
		s.mu.Unlock()

		return
	}
}

func getClient(conf promtail.ClientConfig) promtail.Client { //nolint:ireturn // promtail.NewClientX() only returns interface.
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, conf.PushURL, nil)
	if err != nil {
		return nil
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil
	}

	_ = res.Body.Close()

	client, _ := promtail.NewClientJson(conf) // promtail always returns a nil error

	return client
}

func (l *LokiHandler) Enabled(_ context.Context, _ slog.Level) bool {
	return true
}

func (l *LokiHandler) Handle(ctx context.Context, record slog.Record) error {
	l.state.mu.Lock()
	defer l.state.mu.Unlock()

	if l.state.client == nil {
		return nil
	}

	err := l.renderer.Handle(ctx, record)
	if err != nil {
		return fmt.Errorf("could not render record: %w", err)
	}

	line := strings.TrimSpace(l.state.output.String())
	l.state.output.Reset()

	// attributes are part of the line and not labels: they are high cardinality and can kill loki
	if record.Level >= slog.LevelError {
		l.state.client.Errorf("%s", line)
	} else {
		l.state.client.Infof("%s", line)
	}

	return nil
}

func (l *LokiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &LokiHandler{state: l.state, renderer: l.renderer.WithAttrs(attrs)}
}

func (l *LokiHandler) WithGroup(name string) slog.Handler {
	return &LokiHandler{state: l.state, renderer: l.renderer.WithGroup(name)}
}
