// Package store appends flat rows into daily Parquet partitions.
//
// A partition is one file per (feed kind, UTC calendar date), laid out as
// <root>/<kind>/YYYY-MM-DD.parquet. Appending is read-modify-rewrite:
// existing rows are loaded, new rows concatenated at the end, and the file
// rewritten through a temporary path plus rename so a crash mid-write
// leaves either the old or the new complete content. Rows are never
// removed and never deduplicated; re-appending the same batch doubles it.
//
// A per-kind mutex keeps at most one writer per partition within a
// process. There is no cross-process locking: run one ingester per
// storage root.
package store
