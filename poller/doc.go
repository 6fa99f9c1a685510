// Package poller drives the ingestion cycle: for each configured feed
// kind, fetch the feed, flatten it, and append the rows to the daily
// partition. Feed kinds run sequentially in a fixed order and a failure
// in one kind never aborts the others; the failed kind is simply retried
// on the next cycle. There is no persisted checkpoint — a restart resumes
// polling and re-fetches current state.
package poller
