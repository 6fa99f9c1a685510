package flatten

import (
	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
)

// TripUpdates flattens trip update entities, one row per stop time update.
// Trip- and vehicle-level fields repeat on every row of the same entity.
// A stop time update with neither arrival nor departure is still emitted,
// with all four prediction fields null.
func TripUpdates(fm *gtfsrtpb.FeedMessage) []TripUpdateRow {
	ts := HeaderTimestamp(fm)
	var rows []TripUpdateRow
	for _, e := range fm.Entity {
		tu := e.TripUpdate
		if tu == nil {
			continue
		}
		var tripID, routeID, startDate, vehicleID *string
		if t := tu.Trip; t != nil {
			tripID = ptr(t.GetTripId())
			routeID = ptr(t.GetRouteId())
			startDate = ptr(t.GetStartDate())
		}
		if v := tu.Vehicle; v != nil {
			vehicleID = ptr(v.GetId())
		}
		for _, stu := range tu.StopTimeUpdate {
			row := TripUpdateRow{
				FeedTimestamp:        ts,
				EntityID:             e.GetId(),
				TripID:               tripID,
				RouteID:              routeID,
				StartDate:            startDate,
				VehicleID:            vehicleID,
				StopSequence:         int64(stu.GetStopSequence()),
				StopID:               nonEmpty(stu.GetStopId()),
				ScheduleRelationship: int32(stu.GetScheduleRelationship()),
			}
			if a := stu.Arrival; a != nil {
				row.ArrivalDelay = ptr(a.GetDelay())
				row.ArrivalTime = ptr(a.GetTime())
			}
			if d := stu.Departure; d != nil {
				row.DepartureDelay = ptr(d.GetDelay())
				row.DepartureTime = ptr(d.GetTime())
			}
			rows = append(rows, row)
		}
	}
	return rows
}
