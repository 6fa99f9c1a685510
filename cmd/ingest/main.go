// Command ingest polls the ATAC GTFS-RT feeds and appends flattened rows
// to daily Parquet partitions. With -once it performs exactly one poll
// cycle and exits, which suits external schedulers like cron.
package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"

	"github.com/atac-data/gtfsrt-ingest/config"
	"github.com/atac-data/gtfsrt-ingest/internal"
	"github.com/atac-data/gtfsrt-ingest/metrics"
	"github.com/atac-data/gtfsrt-ingest/poller"
)

func main() {
	configPath := flag.String("config", "config.yml", "path to config file")
	once := flag.Bool("once", false, "run exactly one poll cycle and exit")
	flag.Parse()

	internal.InitLogging()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	p := poller.New(cfg)

	if *once {
		p.RunOnce(context.Background())
		return
	}

	if cfg.Metrics.Port > 0 {
		go func() {
			if err := metrics.Serve(cfg.Metrics.Port); err != nil {
				log.Printf("metrics server: %v", err)
			}
		}()
	}

	log.Printf("raw data dir: %s", cfg.Ingest.StorageRoot)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	p.Run(ctx)
}
