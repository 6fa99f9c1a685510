package poller

import (
	"context"
	"log"
	"time"

	"github.com/atac-data/gtfsrt-ingest/config"
	"github.com/atac-data/gtfsrt-ingest/flatten"
	"github.com/atac-data/gtfsrt-ingest/gtfsrt"
	"github.com/atac-data/gtfsrt-ingest/metrics"
	"github.com/atac-data/gtfsrt-ingest/store"
)

// Poller runs fetch → flatten → append for every configured feed kind.
type Poller struct {
	client   *gtfsrt.Client
	store    *store.Store
	feeds    config.FeedsConfig
	interval time.Duration
	now      func() time.Time
}

// New builds a poller from the loaded configuration.
func New(cfg config.Config) *Poller {
	return &Poller{
		client:   gtfsrt.NewClient(time.Duration(cfg.Ingest.FetchTimeoutSeconds) * time.Second),
		store:    store.New(cfg.Ingest.StorageRoot),
		feeds:    cfg.Feeds,
		interval: time.Duration(cfg.Ingest.PollIntervalSeconds) * time.Second,
		now:      time.Now,
	}
}

// RunOnce performs exactly one poll cycle. Feed kinds are attempted in a
// fixed order; a failure in one is logged and counted, and the cycle
// moves on to the next kind.
func (p *Poller) RunOnce(ctx context.Context) {
	day := p.now().UTC()

	if url := p.feeds.VehiclePositionsURL; url != "" {
		n, err := p.ingestVehiclePositions(ctx, url, day)
		p.report(store.VehiclePositions, n, err)
	}
	if url := p.feeds.TripUpdatesURL; url != "" {
		n, err := p.ingestTripUpdates(ctx, url, day)
		p.report(store.TripUpdates, n, err)
	}
	if url := p.feeds.ServiceAlertsURL; url != "" {
		n, err := p.ingestAlerts(ctx, url, day)
		p.report(store.Alerts, n, err)
	}
}

// Run polls until ctx is cancelled. The first cycle starts immediately.
func (p *Poller) Run(ctx context.Context) {
	log.Printf("starting GTFS-RT ingestion (polling every %v)", p.interval)
	p.RunOnce(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			p.RunOnce(ctx)
		case <-ctx.Done():
			log.Println("polling loop stopped")
			return
		}
	}
}

func (p *Poller) ingestVehiclePositions(ctx context.Context, url string, day time.Time) (int, error) {
	fm, err := p.client.Fetch(ctx, url)
	if err != nil {
		return 0, err
	}
	rows := flatten.VehiclePositions(fm)
	if err := store.Append(p.store, store.VehiclePositions, day, rows); err != nil {
		return 0, err
	}
	p.observe(store.VehiclePositions, flatten.HeaderTimestamp(fm))
	return len(rows), nil
}

func (p *Poller) ingestTripUpdates(ctx context.Context, url string, day time.Time) (int, error) {
	fm, err := p.client.Fetch(ctx, url)
	if err != nil {
		return 0, err
	}
	rows := flatten.TripUpdates(fm)
	if err := store.Append(p.store, store.TripUpdates, day, rows); err != nil {
		return 0, err
	}
	p.observe(store.TripUpdates, flatten.HeaderTimestamp(fm))
	return len(rows), nil
}

func (p *Poller) ingestAlerts(ctx context.Context, url string, day time.Time) (int, error) {
	fm, err := p.client.Fetch(ctx, url)
	if err != nil {
		return 0, err
	}
	rows := flatten.Alerts(fm)
	if err := store.Append(p.store, store.Alerts, day, rows); err != nil {
		return 0, err
	}
	p.observe(store.Alerts, flatten.HeaderTimestamp(fm))
	return len(rows), nil
}

func (p *Poller) observe(kind store.FeedKind, headerTS int64) {
	metrics.FeedTimestamp.WithLabelValues(string(kind)).Set(float64(headerTS))
	metrics.SetLatestFeedEpoch(headerTS)
}

func (p *Poller) report(kind store.FeedKind, n int, err error) {
	if err != nil {
		log.Printf("%s: %v", kind, err)
		metrics.FeedErrors.WithLabelValues(string(kind)).Inc()
		return
	}
	log.Printf("%s: %d rows", kind, n)
	metrics.RowsAppended.WithLabelValues(string(kind)).Add(float64(n))
}
