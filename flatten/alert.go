package flatten

import (
	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
)

// Alerts flattens service alert entities, one row per informed entity.
// An alert with zero informed entities emits exactly one row with the
// location columns null, so the alert itself is never lost. Cause and
// effect keep the GTFS-RT semantic defaults when unset.
func Alerts(fm *gtfsrtpb.FeedMessage) []AlertRow {
	ts := HeaderTimestamp(fm)
	var rows []AlertRow
	for _, e := range fm.Entity {
		a := e.Alert
		if a == nil {
			continue
		}
		base := AlertRow{
			FeedTimestamp:   ts,
			EntityID:        e.GetId(),
			Cause:           int32(a.GetCause()),
			Effect:          int32(a.GetEffect()),
			HeaderText:      firstTranslation(a.HeaderText),
			DescriptionText: firstTranslation(a.DescriptionText),
		}
		if len(a.InformedEntity) == 0 {
			rows = append(rows, base)
			continue
		}
		for _, ie := range a.InformedEntity {
			row := base
			row.RouteID = nonEmpty(ie.GetRouteId())
			row.StopID = nonEmpty(ie.GetStopId())
			row.AgencyID = nonEmpty(ie.GetAgencyId())
			if t := ie.Trip; t != nil {
				row.TripID = ptr(t.GetTripId())
			}
			rows = append(rows, row)
		}
	}
	return rows
}

// firstTranslation takes the first available translation, or "".
// Multi-language alerts keep only their first entry.
func firstTranslation(ts *gtfsrtpb.TranslatedString) string {
	if ts == nil || len(ts.Translation) == 0 {
		return ""
	}
	return ts.Translation[0].GetText()
}
