// Package flatten turns decoded GTFS-RT feed messages into flat,
// fixed-schema rows ready for columnar storage.
//
// Each feed kind has one pure function: VehiclePositions (one row per
// entity), TripUpdates (one row per stop time update) and Alerts (one row
// per informed entity). Optional proto sub-messages are branched on
// presence before any field is read; a missing sub-message leaves every
// field it would have supplied as a nil pointer, which the store encodes
// as a null. The field set of a row never varies between rows of the same
// kind.
package flatten
