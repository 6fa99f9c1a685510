// Command upload-partitions pushes every daily partition file to the
// configured GCS bucket and exits. It is meant to be run by an external
// scheduler after ingestion has accumulated data.
package main

import (
	"context"
	"flag"
	"log"

	"github.com/atac-data/gtfsrt-ingest/config"
	"github.com/atac-data/gtfsrt-ingest/internal"
	"github.com/atac-data/gtfsrt-ingest/upload"
)

func main() {
	configPath := flag.String("config", "config.yml", "path to config file")
	flag.Parse()

	internal.InitLogging()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if cfg.Upload.Bucket == "" {
		log.Fatal("no upload bucket configured")
	}

	ctx := context.Background()
	u, err := upload.NewGCSUploader(ctx, cfg.Upload.Bucket, cfg.Upload.Prefix)
	if err != nil {
		log.Fatalf("create uploader: %v", err)
	}
	defer u.Close()

	if err := upload.Partitions(ctx, u, cfg.Ingest.StorageRoot); err != nil {
		log.Fatalf("upload partitions: %v", err)
	}
	log.Println("upload complete")
}
