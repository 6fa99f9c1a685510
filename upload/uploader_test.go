package upload

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writePartition(t *testing.T, root, kind, name string) {
	t.Helper()
	dir := filepath.Join(root, kind)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), []byte("PAR1"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestPartitions_UploadsEveryPartition(t *testing.T) {
	root := t.TempDir()
	writePartition(t, root, "vehicle_positions", "2023-11-14.parquet")
	writePartition(t, root, "vehicle_positions", "2023-11-15.parquet")
	writePartition(t, root, "trip_updates", "2023-11-14.parquet")

	fake := NewFakeUploader()
	if err := Partitions(context.Background(), fake, root); err != nil {
		t.Fatalf("partitions: %v", err)
	}

	for _, name := range []string{
		"vehicle_positions/2023-11-14.parquet",
		"vehicle_positions/2023-11-15.parquet",
		"trip_updates/2023-11-14.parquet",
	} {
		if !fake.Has(name) {
			t.Errorf("object %q was not uploaded", name)
		}
	}
}

func TestPartitions_IgnoresNonParquetFiles(t *testing.T) {
	root := t.TempDir()
	writePartition(t, root, "vehicle_positions", "2023-11-14.parquet")
	if err := os.WriteFile(filepath.Join(root, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	fake := NewFakeUploader()
	if err := Partitions(context.Background(), fake, root); err != nil {
		t.Fatalf("partitions: %v", err)
	}
	if fake.Has("notes.txt") {
		t.Error("notes.txt should not have been uploaded")
	}
	if !fake.Has("vehicle_positions/2023-11-14.parquet") {
		t.Error("partition file was not uploaded")
	}
}

func TestPartitions_EmptyRoot(t *testing.T) {
	fake := NewFakeUploader()
	if err := Partitions(context.Background(), fake, t.TempDir()); err != nil {
		t.Fatalf("partitions on empty root: %v", err)
	}
}
