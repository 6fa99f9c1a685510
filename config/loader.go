package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Default returns the configuration matching the production ATAC deployment.
// Load overlays the YAML file on top of these values, so a minimal config
// file only needs to name what it changes.
func Default() Config {
	return Config{
		Feeds: FeedsConfig{
			VehiclePositionsURL: "https://romamobilita.it/sites/default/files/rome_rtgtfs_vehicle_positions_feed.pb",
			TripUpdatesURL:      "https://romamobilita.it/sites/default/files/rome_rtgtfs_trip_updates_feed.pb",
			ServiceAlertsURL:    "https://romamobilita.it/sites/default/files/rome_rtgtfs_service_alerts_feed.pb",
		},
		Ingest: IngestConfig{
			StorageRoot:         "raw",
			PollIntervalSeconds: 60,
			FetchTimeoutSeconds: 30,
		},
		Warehouse: WarehouseConfig{
			DatabasePath: "atac.duckdb",
			StaticDir:    "static",
		},
	}
}

// Load reads and validates the configuration file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
