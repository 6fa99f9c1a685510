package flatten

import (
	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
)

// VehiclePositionRow is the fixed schema for the vehicle_positions feed.
// Pointer fields are nullable; they are nil exactly when the proto
// sub-message that carries them (trip, vehicle, position) is absent.
// Enum fields keep their raw integer codes.
type VehiclePositionRow struct {
	FeedTimestamp       int64    `parquet:"feed_timestamp"`
	EntityID            string   `parquet:"entity_id"`
	TripID              *string  `parquet:"trip_id,optional"`
	RouteID             *string  `parquet:"route_id,optional"`
	DirectionID         *int32   `parquet:"direction_id,optional"`
	StartDate           *string  `parquet:"start_date,optional"`
	VehicleID           *string  `parquet:"vehicle_id,optional"`
	VehicleLabel        *string  `parquet:"vehicle_label,optional"`
	Latitude            *float32 `parquet:"latitude,optional"`
	Longitude           *float32 `parquet:"longitude,optional"`
	Bearing             *float32 `parquet:"bearing,optional"`
	Speed               *float32 `parquet:"speed,optional"`
	CurrentStopSequence int64    `parquet:"current_stop_sequence"`
	StopID              *string  `parquet:"stop_id,optional"`
	CurrentStatus       int32    `parquet:"current_status"`
	VehicleTimestamp    int64    `parquet:"vehicle_timestamp"`
}

// TripUpdateRow is the fixed schema for the trip_updates feed. Trip- and
// vehicle-level fields are broadcast to every stop time update row.
type TripUpdateRow struct {
	FeedTimestamp        int64   `parquet:"feed_timestamp"`
	EntityID             string  `parquet:"entity_id"`
	TripID               *string `parquet:"trip_id,optional"`
	RouteID              *string `parquet:"route_id,optional"`
	StartDate            *string `parquet:"start_date,optional"`
	VehicleID            *string `parquet:"vehicle_id,optional"`
	StopSequence         int64   `parquet:"stop_sequence"`
	StopID               *string `parquet:"stop_id,optional"`
	ArrivalDelay         *int32  `parquet:"arrival_delay,optional"`
	ArrivalTime          *int64  `parquet:"arrival_time,optional"`
	DepartureDelay       *int32  `parquet:"departure_delay,optional"`
	DepartureTime        *int64  `parquet:"departure_time,optional"`
	ScheduleRelationship int32   `parquet:"schedule_relationship"`
}

// AlertRow is the fixed schema for the alerts feed. The location columns
// come from one informed entity; an alert without informed entities still
// produces one row with all four left null.
type AlertRow struct {
	FeedTimestamp   int64   `parquet:"feed_timestamp"`
	EntityID        string  `parquet:"entity_id"`
	Cause           int32   `parquet:"cause"`
	Effect          int32   `parquet:"effect"`
	HeaderText      string  `parquet:"header_text"`
	DescriptionText string  `parquet:"description_text"`
	RouteID         *string `parquet:"route_id,optional"`
	TripID          *string `parquet:"trip_id,optional"`
	StopID          *string `parquet:"stop_id,optional"`
	AgencyID        *string `parquet:"agency_id,optional"`
}

// HeaderTimestamp returns the feed header timestamp in epoch seconds,
// or zero when the header or its timestamp is absent.
func HeaderTimestamp(fm *gtfsrtpb.FeedMessage) int64 {
	if fm.Header != nil && fm.Header.Timestamp != nil {
		return int64(*fm.Header.Timestamp)
	}
	return 0
}

func ptr[T any](v T) *T { return &v }

// nonEmpty maps the empty string to nil; empty identifiers are not
// meaningful downstream.
func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
