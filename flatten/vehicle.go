package flatten

import (
	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
)

// VehiclePositions flattens vehicle position entities, one row per entity.
// Entities without a vehicle payload are skipped.
func VehiclePositions(fm *gtfsrtpb.FeedMessage) []VehiclePositionRow {
	ts := HeaderTimestamp(fm)
	rows := make([]VehiclePositionRow, 0, len(fm.Entity))
	for _, e := range fm.Entity {
		vp := e.Vehicle
		if vp == nil {
			continue
		}
		row := VehiclePositionRow{
			FeedTimestamp:       ts,
			EntityID:            e.GetId(),
			CurrentStopSequence: int64(vp.GetCurrentStopSequence()),
			StopID:              nonEmpty(vp.GetStopId()),
			VehicleTimestamp:    int64(vp.GetTimestamp()),
		}
		// Raw enum code; unset stays 0 rather than the proto default.
		if vp.CurrentStatus != nil {
			row.CurrentStatus = int32(*vp.CurrentStatus)
		}
		if t := vp.Trip; t != nil {
			row.TripID = ptr(t.GetTripId())
			row.RouteID = ptr(t.GetRouteId())
			row.DirectionID = ptr(int32(t.GetDirectionId()))
			row.StartDate = ptr(t.GetStartDate())
		}
		if v := vp.Vehicle; v != nil {
			row.VehicleID = ptr(v.GetId())
			row.VehicleLabel = ptr(v.GetLabel())
		}
		if p := vp.Position; p != nil {
			row.Latitude = ptr(p.GetLatitude())
			row.Longitude = ptr(p.GetLongitude())
			row.Bearing = ptr(p.GetBearing())
			row.Speed = ptr(p.GetSpeed())
		}
		rows = append(rows, row)
	}
	return rows
}
