package daemon

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/theirongolddev/paydash/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubFetcher returns queued dashboards, repeating the last one.
type stubFetcher struct {
	mu    sync.Mutex
	dashs []model.Dashboard
}

func (f *stubFetcher) FetchAll(context.Context) model.Dashboard {
	f.mu.Lock()
	defer f.mu.Unlock()
	d := f.dashs[0]
	if len(f.dashs) > 1 {
		f.dashs = f.dashs[1:]
	}
	return d
}

type recorderFunc func(model.Summary) error

func (f recorderFunc) Record(s model.Summary) error { return f(s) }

func dashboardWith(cardholders, transactions, failed int) model.Dashboard {
	d := model.Dashboard{
		Cardholders:  make([]model.Cardholder, cardholders),
		Transactions: make([]model.Transaction, transactions),
		TopMerchants: []model.MerchantSummary{},
		Failed:       make([]json.RawMessage, failed),
	}
	for i := range d.Transactions {
		d.Transactions[i].Amount = 10
	}
	for i := range d.Failed {
		d.Failed[i] = json.RawMessage(`{}`)
	}
	return d
}

func TestDiffSummaries(t *testing.T) {
	prev := model.Summary{Cardholders: 10, Transactions: 100, Failed: 3, Merchants: 5, Volume: 10.5}
	curr := model.Summary{Cardholders: 12, Transactions: 112, Failed: 2, Merchants: 5, Volume: 13.1}

	delta := diffSummaries(prev, curr)
	assert.Equal(t, 2, delta.Cardholders)
	assert.Equal(t, 12, delta.Transactions)
	assert.Equal(t, -1, delta.Failed)
	assert.Zero(t, delta.Merchants)
	assert.True(t, math.Abs(delta.Volume-2.6) < 1e-9)
	assert.False(t, delta.isZero())
	assert.True(t, diffSummaries(curr, curr).isZero())
}

func TestPublishEventRingBuffer(t *testing.T) {
	s := New(Config{EventsBuffer: 2}, &stubFetcher{})

	s.publishEvent(Event{ID: 1})
	s.publishEvent(Event{ID: 2})
	s.publishEvent(Event{ID: 3})

	s.mu.RLock()
	defer s.mu.RUnlock()

	require.Len(t, s.events, 2)
	assert.Equal(t, int64(2), s.events[0].ID)
	assert.Equal(t, int64(3), s.events[1].ID)
}

func TestNewClampsInterval(t *testing.T) {
	assert.Equal(t, defaultInterval, New(Config{}, &stubFetcher{}).cfg.Interval)
	assert.Equal(t, minInterval, New(Config{Interval: time.Second}, &stubFetcher{}).cfg.Interval)
	assert.Equal(t, defaultEventsBuffer, New(Config{}, &stubFetcher{}).cfg.EventsBuffer)
}

func TestPollEmitsSnapshotThenDeltas(t *testing.T) {
	f := &stubFetcher{dashs: []model.Dashboard{
		dashboardWith(2, 3, 1),
		dashboardWith(2, 3, 1), // unchanged: no event
		dashboardWith(3, 5, 0),
	}}
	s := New(Config{}, f)
	ctx := context.Background()

	s.pollOnce(ctx)
	s.pollOnce(ctx)
	s.pollOnce(ctx)

	s.mu.RLock()
	events := append([]Event(nil), s.events...)
	polls := s.pollCount
	s.mu.RUnlock()

	assert.Equal(t, int64(3), polls)
	require.Len(t, events, 2)
	assert.Equal(t, EventSnapshot, events[0].Type)
	assert.Equal(t, 3, events[0].Summary.Transactions)
	assert.Equal(t, EventSummaryDelta, events[1].Type)
	assert.Equal(t, Delta{Cardholders: 1, Transactions: 2, Failed: -1, Volume: 20}, events[1].Delta)
}

func TestPollRecordsHistoryAndSurfacesErrors(t *testing.T) {
	var recorded []model.Summary
	fail := false
	rec := recorderFunc(func(s model.Summary) error {
		if fail {
			return errors.New("disk full")
		}
		recorded = append(recorded, s)
		return nil
	})

	s := New(Config{Recorder: rec}, &stubFetcher{dashs: []model.Dashboard{dashboardWith(1, 1, 0)}})
	s.pollOnce(context.Background())
	require.Len(t, recorded, 1)
	assert.Empty(t, s.snapshotStatus().LastError)

	fail = true
	s.pollOnce(context.Background())
	st := s.snapshotStatus()
	assert.Equal(t, "disk full", st.LastError)
	assert.True(t, st.HistoryEnabled)
}

func TestHTTPHandlers(t *testing.T) {
	s := New(Config{BaseURL: "http://backend/api"}, &stubFetcher{dashs: []model.Dashboard{dashboardWith(4, 2, 1)}})
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/v1/dashboard")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode, "no snapshot before first poll")

	s.pollOnce(context.Background())

	resp, err = http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/v1/status")
	require.NoError(t, err)
	var st Status
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&st))
	_ = resp.Body.Close()
	assert.Equal(t, 4, st.Summary.Cardholders)
	assert.Equal(t, 1, st.Summary.Failed)
	assert.Equal(t, "http://backend/api", st.BaseURL)
	assert.Equal(t, 1, st.EventCount)
	assert.False(t, st.HistoryEnabled)

	resp, err = http.Get(srv.URL + "/v1/dashboard")
	require.NoError(t, err)
	var body struct {
		Cardholders []json.RawMessage  `json:"cardholders"`
		Failed      []json.RawMessage  `json:"failed_transactions"`
		FailedCount int                `json:"failed_count"`
		Trend       []model.TrendPoint `json:"trend"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	_ = resp.Body.Close()
	assert.Len(t, body.Cardholders, 4)
	assert.Len(t, body.Failed, 1)
	assert.Equal(t, 1, body.FailedCount)
	assert.Equal(t, []model.TrendPoint{{Name: "Tx 1", Amount: 10}, {Name: "Tx 2", Amount: 10}}, body.Trend)

	resp, err = http.Get(srv.URL + "/v1/events")
	require.NoError(t, err)
	var events []Event
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&events))
	_ = resp.Body.Close()
	require.Len(t, events, 1)
	assert.Equal(t, EventSnapshot, events[0].Type)

	resp, err = http.Get(srv.URL + "/v1/nope")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestStreamSendsCurrentSummaryThenEvents(t *testing.T) {
	s := New(Config{}, &stubFetcher{dashs: []model.Dashboard{dashboardWith(1, 1, 0), dashboardWith(1, 2, 0)}})
	s.pollOnce(context.Background())

	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/v1/stream", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	reader := bufio.NewReader(resp.Body)
	readEvent := func() (string, Event) {
		var typ string
		var ev Event
		for {
			line, err := reader.ReadString('\n')
			require.NoError(t, err)
			line = strings.TrimSpace(line)
			switch {
			case strings.HasPrefix(line, "event: "):
				typ = strings.TrimPrefix(line, "event: ")
			case strings.HasPrefix(line, "data: "):
				require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &ev))
			case line == "" && typ != "":
				return typ, ev
			}
		}
	}

	typ, ev := readEvent()
	assert.Equal(t, EventSnapshot, typ)
	assert.Equal(t, 1, ev.Summary.Transactions)

	// The subscriber is registered before the first write, so this poll's
	// delta reaches the stream.
	s.pollOnce(context.Background())
	typ, ev = readEvent()
	assert.Equal(t, EventSummaryDelta, typ)
	assert.Equal(t, 1, ev.Delta.Transactions)
}
