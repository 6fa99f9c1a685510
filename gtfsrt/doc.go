// Package gtfsrt handles fetching and decoding GTFS-Realtime protobuf feeds.
//
// It supports three feed types:
//   - Vehicle Positions: current vehicle locations
//   - Trip Updates: real-time arrival/departure predictions
//   - Service Alerts: disruptions and service changes
//
// The main type is Client, which fetches a feed endpoint with a bounded
// timeout and returns the decoded FeedMessage. Failures are typed:
// *TransportError for network/HTTP problems, *DecodeError for malformed
// payloads.
package gtfsrt
