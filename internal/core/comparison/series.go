// Package comparison derives the cross-COA comparison series shown at the
// selection stage.
// This is part of the Functional Core - no I/O, only pure functions.
package comparison

import "github.com/example/aerobridge/internal/core/recommendation"

// Point is one recommendation's entry in the comparison series.
type Point struct {
	Label   string
	Payload float64 // kg delivered
	Fuel    float64 // kg burned
	Time    float64 // minutes
}

// DeriveComparisonSeries maps each recommendation to its comparison point.
// Output order matches input order. An empty input yields an empty, non-nil
// series; callers disable comparison display in that case.
func DeriveComparisonSeries(recs []recommendation.Recommendation) []Point {
	series := make([]Point, 0, len(recs))
	for _, r := range recs {
		series = append(series, Point{
			Label:   r.ShortLabel(),
			Payload: r.SummaryGlobal.TotalPayloadDeliveredKg,
			Fuel:    r.SummaryGlobal.TotalFuelBurnKg,
			Time:    r.SummaryGlobal.TotalMissionTimeMin,
		})
	}
	return series
}

// Comparable reports whether a comparison is meaningful for the set.
func Comparable(recs []recommendation.Recommendation) bool {
	return len(recs) > 1
}

// Extent holds the maximum of each series, used to scale bar renderings.
type Extent struct {
	Payload float64
	Fuel    float64
	Time    float64
}

// MaxExtent returns the per-metric maxima of a series.
func MaxExtent(series []Point) Extent {
	var e Extent
	for _, p := range series {
		e.Payload = max(e.Payload, p.Payload)
		e.Fuel = max(e.Fuel, p.Fuel)
		e.Time = max(e.Time, p.Time)
	}
	return e
}
