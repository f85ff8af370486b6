// Package daemon provides the long-running background dashboard poller.
package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/theirongolddev/paydash/internal/model"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/exp/slog"
)

const (
	minInterval         = 2 * time.Second
	defaultInterval     = 15 * time.Second
	defaultEventsBuffer = 200
	defaultAddr         = "127.0.0.1:8788"
)

// Fetcher loads one complete dashboard snapshot. Failures are expected to
// be masked as empty collections.
type Fetcher interface {
	FetchAll(ctx context.Context) model.Dashboard
}

// Recorder persists poll summaries.
type Recorder interface {
	Record(s model.Summary) error
}

// Config controls the daemon runtime behavior.
type Config struct {
	BaseURL      string
	Interval     time.Duration
	Addr         string
	EventsBuffer int

	// Recorder is optional; nil disables history.
	Recorder Recorder
	Logger   *slog.Logger
}

// Delta captures summary changes between polls.
type Delta struct {
	Cardholders  int     `json:"cardholders"`
	Transactions int     `json:"transactions"`
	Failed       int     `json:"failed"`
	Merchants    int     `json:"merchants"`
	Volume       float64 `json:"volume"`
}

func (d Delta) isZero() bool {
	return d.Cardholders == 0 &&
		d.Transactions == 0 &&
		d.Failed == 0 &&
		d.Merchants == 0 &&
		d.Volume == 0
}

// Event types.
const (
	EventSnapshot     = "snapshot"
	EventSummaryDelta = "summary_delta"
)

// Event is emitted whenever the dashboard summary changes.
type Event struct {
	ID        int64         `json:"id"`
	Type      string        `json:"type"`
	Timestamp time.Time     `json:"timestamp"`
	Summary   model.Summary `json:"summary"`
	Delta     Delta         `json:"delta"`
}

// Status is served at /v1/status.
type Status struct {
	StartedAt       time.Time     `json:"started_at"`
	LastPollAt      time.Time     `json:"last_poll_at"`
	PollIntervalSec int           `json:"poll_interval_sec"`
	PollCount       int64         `json:"poll_count"`
	BaseURL         string        `json:"base_url"`
	HistoryEnabled  bool          `json:"history_enabled"`
	Summary         model.Summary `json:"summary"`
	LastError       string        `json:"last_error,omitempty"`
	EventCount      int           `json:"event_count"`
	SubscriberCount int           `json:"subscriber_count"`
}

// DashboardResponse is served at /v1/dashboard.
type DashboardResponse struct {
	model.Dashboard
	Failed      []json.RawMessage  `json:"failed_transactions"`
	FailedTotal int                `json:"failed_count"`
	Trend       []model.TrendPoint `json:"trend"`
}

// Service provides the daemon runtime and HTTP API.
type Service struct {
	cfg     Config
	fetcher Fetcher
	log     *slog.Logger

	mu          sync.RWMutex
	startedAt   time.Time
	lastPollAt  time.Time
	pollCount   int64
	lastError   string
	hasSnapshot bool
	dashboard   model.Dashboard
	summary     model.Summary
	nextEventID int64
	events      []Event

	nextSubID int
	subs      map[int]chan Event
}

// New returns a new daemon service polling fetcher.
func New(cfg Config, fetcher Fetcher) *Service {
	if cfg.Interval == 0 {
		cfg.Interval = defaultInterval
	}
	if cfg.Interval < minInterval {
		cfg.Interval = minInterval
	}
	if cfg.EventsBuffer < 1 {
		cfg.EventsBuffer = defaultEventsBuffer
	}
	if cfg.Addr == "" {
		cfg.Addr = defaultAddr
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Service{
		cfg:       cfg,
		fetcher:   fetcher,
		log:       logger.With(slog.String("component", "daemon")),
		startedAt: time.Now(),
		subs:      make(map[int]chan Event),
	}
}

// Handler returns the HTTP API.
func (s *Service) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(NewStructuredLogger(s.log))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/status", s.handleStatus)
		r.Get("/dashboard", s.handleDashboard)
		r.Get("/events", s.handleEvents)
		r.Get("/stream", s.handleStream)
	})
	return r
}

// Run starts HTTP endpoints and polling until ctx is canceled.
func (s *Service) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	s.log.Info("listening",
		slog.String("addr", s.cfg.Addr),
		slog.String("base_url", s.cfg.BaseURL),
		slog.Duration("interval", s.cfg.Interval))

	// Seed initial snapshot so status is useful immediately.
	s.pollOnce(ctx)

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		case <-ticker.C:
			s.pollOnce(ctx)
		case err := <-errCh:
			return fmt.Errorf("daemon http server: %w", err)
		}
	}
}

func (s *Service) pollOnce(ctx context.Context) {
	dash := s.fetcher.FetchAll(ctx)
	now := time.Now()
	if dash.FetchedAt.IsZero() {
		dash.FetchedAt = now
	}
	summary := model.Summarize(dash)

	var recordErr error
	if s.cfg.Recorder != nil {
		if recordErr = s.cfg.Recorder.Record(summary); recordErr != nil {
			s.log.Error("recording snapshot", slog.String("error", recordErr.Error()))
		}
	}

	var (
		ev      Event
		publish bool
	)

	s.mu.Lock()
	prev := s.summary
	prevExists := s.hasSnapshot

	s.hasSnapshot = true
	s.dashboard = dash
	s.summary = summary
	s.lastPollAt = now
	s.pollCount++
	s.lastError = ""
	if recordErr != nil {
		s.lastError = recordErr.Error()
	}

	if !prevExists {
		s.nextEventID++
		ev = Event{
			ID:        s.nextEventID,
			Type:      EventSnapshot,
			Timestamp: now,
			Summary:   summary,
		}
		publish = true
	} else if delta := diffSummaries(prev, summary); !delta.isZero() {
		s.nextEventID++
		ev = Event{
			ID:        s.nextEventID,
			Type:      EventSummaryDelta,
			Timestamp: now,
			Summary:   summary,
			Delta:     delta,
		}
		publish = true
	}
	s.mu.Unlock()

	s.log.Debug("poll",
		slog.Int("cardholders", summary.Cardholders),
		slog.Int("transactions", summary.Transactions),
		slog.Int("failed", summary.Failed),
		slog.Bool("changed", publish))

	if publish {
		s.publishEvent(ev)
	}
}

func diffSummaries(prev, curr model.Summary) Delta {
	return Delta{
		Cardholders:  curr.Cardholders - prev.Cardholders,
		Transactions: curr.Transactions - prev.Transactions,
		Failed:       curr.Failed - prev.Failed,
		Merchants:    curr.Merchants - prev.Merchants,
		Volume:       curr.Volume - prev.Volume,
	}
}

func (s *Service) publishEvent(ev Event) {
	s.mu.Lock()
	s.events = append(s.events, ev)
	if len(s.events) > s.cfg.EventsBuffer {
		s.events = s.events[len(s.events)-s.cfg.EventsBuffer:]
	}

	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
	s.mu.Unlock()
}

func (s *Service) snapshotStatus() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Status{
		StartedAt:       s.startedAt,
		LastPollAt:      s.lastPollAt,
		PollIntervalSec: int(s.cfg.Interval.Seconds()),
		PollCount:       s.pollCount,
		BaseURL:         s.cfg.BaseURL,
		HistoryEnabled:  s.cfg.Recorder != nil,
		Summary:         s.summary,
		LastError:       s.lastError,
		EventCount:      len(s.events),
		SubscriberCount: len(s.subs),
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Service) handleStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, s.snapshotStatus())
}

func (s *Service) handleDashboard(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	dash := s.dashboard
	ready := s.hasSnapshot
	s.mu.RUnlock()

	if !ready {
		http.Error(w, "no snapshot yet", http.StatusServiceUnavailable)
		return
	}

	failed := dash.Failed
	if failed == nil {
		failed = []json.RawMessage{}
	}
	writeJSON(w, DashboardResponse{
		Dashboard:   dash,
		Failed:      failed,
		FailedTotal: dash.FailedCount(),
		Trend:       model.TrendSeries(dash.Transactions),
	})
}

func (s *Service) handleEvents(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	events := make([]Event, len(s.events))
	copy(events, s.events)
	s.mu.RUnlock()

	writeJSON(w, events)
}

func (s *Service) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := make(chan Event, 16)
	id := s.addSubscriber(ch)
	defer s.removeSubscriber(id)

	// Send current summary immediately.
	writeSSE(w, Event{
		Type:      EventSnapshot,
		Timestamp: time.Now(),
		Summary:   s.snapshotStatus().Summary,
	})
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev := <-ch:
			writeSSE(w, ev)
			flusher.Flush()
		}
	}
}

func writeSSE(w io.Writer, ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		return
	}
	_, _ = fmt.Fprintf(w, "event: %s\n", ev.Type)
	_, _ = fmt.Fprintf(w, "data: %s\n\n", data)
}

func (s *Service) addSubscriber(ch chan Event) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSubID++
	id := s.nextSubID
	s.subs[id] = ch
	return id
}

func (s *Service) removeSubscriber(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs, id)
}
