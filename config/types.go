package config

// FeedsConfig holds the GTFS-RT feed endpoints. An empty URL disables that feed.
type FeedsConfig struct {
	VehiclePositionsURL string `yaml:"vehiclePositionsURL" validate:"omitempty,url"`
	TripUpdatesURL      string `yaml:"tripUpdatesURL" validate:"omitempty,url"`
	ServiceAlertsURL    string `yaml:"serviceAlertsURL" validate:"omitempty,url"`
}

// IngestConfig controls the poll loop and the partition store.
type IngestConfig struct {
	StorageRoot         string `yaml:"storageRoot" validate:"required"`
	PollIntervalSeconds int    `yaml:"pollIntervalSeconds" validate:"gte=0"`
	FetchTimeoutSeconds int    `yaml:"fetchTimeoutSeconds" validate:"gte=0"`
}

// MetricsConfig configures the /metrics and /healthz listener. Port 0 disables it.
type MetricsConfig struct {
	Port int `yaml:"port" validate:"gte=0,lte=65535"`
}

// UploadConfig configures partition uploads to object storage.
// An empty bucket disables uploads.
type UploadConfig struct {
	Bucket string `yaml:"bucket"`
	Prefix string `yaml:"prefix"`
}

// WarehouseConfig configures the DuckDB warehouse bootstrap command.
type WarehouseConfig struct {
	DatabasePath string `yaml:"databasePath"`
	StaticDir    string `yaml:"staticDir"`
}

// Config is the root configuration structure. It is loaded once in main and
// passed explicitly to constructors.
type Config struct {
	Feeds     FeedsConfig     `yaml:"feeds"`
	Ingest    IngestConfig    `yaml:"ingest"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	Upload    UploadConfig    `yaml:"upload"`
	Warehouse WarehouseConfig `yaml:"warehouse"`
}
