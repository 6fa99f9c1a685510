// Command load-duckdb bootstraps the analytical warehouse: it loads the
// static GTFS text files and the raw real-time Parquet partitions into a
// DuckDB database. Run it after some data has been collected.
package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	_ "github.com/marcboeker/go-duckdb"

	"github.com/atac-data/gtfsrt-ingest/config"
	"github.com/atac-data/gtfsrt-ingest/internal"
	"github.com/atac-data/gtfsrt-ingest/store"
)

// staticTables maps warehouse table names to static GTFS files.
// shapes.txt is large and rarely needed, so it is not loaded.
var staticTables = map[string]string{
	"stops":          "stops.txt",
	"routes":         "routes.txt",
	"trips":          "trips.txt",
	"stop_times":     "stop_times.txt",
	"calendar_dates": "calendar_dates.txt",
	"agency":         "agency.txt",
}

func main() {
	configPath := flag.String("config", "config.yml", "path to config file")
	rtOnly := flag.Bool("rt-only", false, "only reload the real-time tables")
	flag.Parse()

	internal.InitLogging()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	db, err := sql.Open("duckdb", cfg.Warehouse.DatabasePath)
	if err != nil {
		log.Fatalf("open %s: %v", cfg.Warehouse.DatabasePath, err)
	}
	defer db.Close()

	if !*rtOnly {
		log.Println("loading static GTFS...")
		if err := loadStatic(db, cfg.Warehouse.StaticDir); err != nil {
			log.Fatalf("load static: %v", err)
		}
	}

	log.Println("loading real-time feeds...")
	if err := loadRealtime(db, cfg.Ingest.StorageRoot); err != nil {
		log.Fatalf("load realtime: %v", err)
	}

	printSummary(db, cfg.Warehouse.DatabasePath)
}

// loadStatic creates one table per static GTFS file, replacing any
// previous version. Missing files are skipped.
func loadStatic(db *sql.DB, staticDir string) error {
	for table, filename := range staticTables {
		path := filepath.Join(staticDir, filename)
		if _, err := os.Stat(path); err != nil {
			log.Printf("  SKIP %s (%s not found)", table, filename)
			continue
		}
		if _, err := db.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %s", table)); err != nil {
			return fmt.Errorf("drop %s: %w", table, err)
		}
		stmt := fmt.Sprintf(
			"CREATE TABLE %s AS SELECT * FROM read_csv('%s', all_varchar=true, auto_detect=true)",
			table, path,
		)
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("create %s: %w", table, err)
		}
		log.Printf("  %s: %d rows", table, countRows(db, table))
	}
	return nil
}

// loadRealtime creates one raw_<kind> table per feed kind from the
// partition files. Feed kinds with no partitions yet are skipped.
func loadRealtime(db *sql.DB, storageRoot string) error {
	for _, kind := range store.Kinds() {
		glob := filepath.Join(storageRoot, string(kind), "*.parquet")
		matches, err := filepath.Glob(glob)
		if err != nil {
			return fmt.Errorf("glob %s: %w", glob, err)
		}
		table := "raw_" + string(kind)
		if len(matches) == 0 {
			log.Printf("  SKIP %s (no parquet files)", table)
			continue
		}
		if _, err := db.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %s", table)); err != nil {
			return fmt.Errorf("drop %s: %w", table, err)
		}
		stmt := fmt.Sprintf("CREATE TABLE %s AS SELECT * FROM read_parquet('%s')", table, glob)
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("create %s: %w", table, err)
		}
		log.Printf("  %s: %d rows (%d day(s))", table, countRows(db, table), len(matches))
	}
	return nil
}

func countRows(db *sql.DB, table string) int64 {
	var n int64
	if err := db.QueryRow(fmt.Sprintf("SELECT count(*) FROM %s", table)).Scan(&n); err != nil {
		return 0
	}
	return n
}

func printSummary(db *sql.DB, dbPath string) {
	log.Printf("database: %s", dbPath)

	var first, last string
	var days, total int64
	err := db.QueryRow(`
		SELECT
			min(to_timestamp(feed_timestamp)),
			max(to_timestamp(feed_timestamp)),
			count(DISTINCT date_trunc('day', to_timestamp(feed_timestamp))),
			count(*)
		FROM raw_vehicle_positions
	`).Scan(&first, &last, &days, &total)
	if err == nil {
		log.Printf("vehicle positions: %d rows, %d day(s), from %s to %s", total, days, first, last)
	}

	var tuRows, tuRoutes int64
	err = db.QueryRow("SELECT count(*), count(DISTINCT route_id) FROM raw_trip_updates").
		Scan(&tuRows, &tuRoutes)
	if err == nil {
		log.Printf("trip updates: %d rows, %d routes", tuRows, tuRoutes)
	}
}
