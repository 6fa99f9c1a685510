package poller

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"

	"github.com/atac-data/gtfsrt-ingest/config"
	"github.com/atac-data/gtfsrt-ingest/flatten"
	"github.com/atac-data/gtfsrt-ingest/store"
)

var testDay = time.Date(2023, 11, 14, 22, 0, 0, 0, time.UTC)

func serveFeed(t *testing.T, fm *gtfsrtpb.FeedMessage) *httptest.Server {
	t.Helper()
	payload, err := proto.Marshal(fm)
	if err != nil {
		t.Fatalf("marshal fixture: %v", err)
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(payload)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func serveStatus(t *testing.T, code int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(code)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func vehicleFeed(ids ...string) *gtfsrtpb.FeedMessage {
	fm := &gtfsrtpb.FeedMessage{
		Header: &gtfsrtpb.FeedHeader{
			GtfsRealtimeVersion: proto.String("2.0"),
			Timestamp:           proto.Uint64(1700000000),
		},
	}
	for _, id := range ids {
		fm.Entity = append(fm.Entity, &gtfsrtpb.FeedEntity{
			Id: proto.String(id),
			Vehicle: &gtfsrtpb.VehiclePosition{
				Position: &gtfsrtpb.Position{
					Latitude:  proto.Float32(41.9),
					Longitude: proto.Float32(12.5),
				},
			},
		})
	}
	return fm
}

func alertFeed() *gtfsrtpb.FeedMessage {
	return &gtfsrtpb.FeedMessage{
		Header: &gtfsrtpb.FeedHeader{
			GtfsRealtimeVersion: proto.String("2.0"),
			Timestamp:           proto.Uint64(1700000000),
		},
		Entity: []*gtfsrtpb.FeedEntity{
			{Id: proto.String("al1"), Alert: &gtfsrtpb.Alert{}},
		},
	}
}

func newTestPoller(t *testing.T, feeds config.FeedsConfig) *Poller {
	t.Helper()
	cfg := config.Default()
	cfg.Feeds = feeds
	cfg.Ingest.StorageRoot = t.TempDir()
	cfg.Ingest.FetchTimeoutSeconds = 1
	p := New(cfg)
	p.now = func() time.Time { return testDay }
	return p
}

func TestRunOnce_FailedFeedDoesNotBlockOthers(t *testing.T) {
	vp := serveFeed(t, vehicleFeed("v1", "v2"))
	tu := serveStatus(t, http.StatusInternalServerError)
	sa := serveFeed(t, alertFeed())

	p := newTestPoller(t, config.FeedsConfig{
		VehiclePositionsURL: vp.URL,
		TripUpdatesURL:      tu.URL,
		ServiceAlertsURL:    sa.URL,
	})
	p.RunOnce(context.Background())

	vpRows, err := store.Read[flatten.VehiclePositionRow](p.store, store.VehiclePositions, testDay)
	if err != nil {
		t.Fatalf("read vehicle positions: %v", err)
	}
	if len(vpRows) != 2 {
		t.Errorf("vehicle position rows = %d, want 2", len(vpRows))
	}

	// The alerts feed comes after the failing trip updates feed and must
	// still have been ingested.
	saRows, err := store.Read[flatten.AlertRow](p.store, store.Alerts, testDay)
	if err != nil {
		t.Fatalf("read alerts: %v", err)
	}
	if len(saRows) != 1 {
		t.Errorf("alert rows = %d, want 1", len(saRows))
	}

	// The failed feed left no partition behind.
	if _, err := store.Read[flatten.TripUpdateRow](p.store, store.TripUpdates, testDay); err == nil {
		t.Error("trip updates partition should not exist after a failed fetch")
	}
}

func TestRunOnce_SecondCycleAppends(t *testing.T) {
	vp := serveFeed(t, vehicleFeed("v1", "v2", "v3"))

	p := newTestPoller(t, config.FeedsConfig{VehiclePositionsURL: vp.URL})
	p.RunOnce(context.Background())
	p.RunOnce(context.Background())

	rows, err := store.Read[flatten.VehiclePositionRow](p.store, store.VehiclePositions, testDay)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(rows) != 6 {
		t.Errorf("rows after two cycles = %d, want 6", len(rows))
	}
}

func TestRunOnce_SkipsDisabledFeeds(t *testing.T) {
	p := newTestPoller(t, config.FeedsConfig{})
	// No URLs configured: the cycle is a no-op and must not panic.
	p.RunOnce(context.Background())
}

func TestRun_StopsOnCancel(t *testing.T) {
	vp := serveFeed(t, vehicleFeed("v1"))
	p := newTestPoller(t, config.FeedsConfig{VehiclePositionsURL: vp.URL})
	p.interval = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx)
		close(done)
	}()

	time.Sleep(30 * time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop after cancellation")
	}
}
