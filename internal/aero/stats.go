package aero

import "math"

// ColumnStats are simple summary measures for one output column.
type ColumnStats struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"stdDev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// Summary aggregates per-column statistics over a coefficient series.
type Summary struct {
	CL              ColumnStats `json:"cl"`
	CD              ColumnStats `json:"cd"`
	Velocity        ColumnStats `json:"velocity"`
	DynamicPressure ColumnStats `json:"dynamicPressure"`
}

// Summarize computes mean, standard deviation and range for each column of
// the series. An empty series yields zero-valued stats.
func Summarize(series Series) Summary {
	n := len(series)
	if n == 0 {
		return Summary{}
	}

	return Summary{
		CL:              columnStats(series, func(c Coefficient) float64 { return c.CL }),
		CD:              columnStats(series, func(c Coefficient) float64 { return c.CD }),
		Velocity:        columnStats(series, func(c Coefficient) float64 { return c.Velocity }),
		DynamicPressure: columnStats(series, func(c Coefficient) float64 { return c.DynamicPressure }),
	}
}

func columnStats(series Series, get func(Coefficient) float64) ColumnStats {
	stats := ColumnStats{
		Count: len(series),
		Min:   math.MaxFloat64,
		Max:   -math.MaxFloat64,
	}

	var sum float64
	for _, c := range series {
		v := get(c)
		sum += v
		stats.Min = math.Min(stats.Min, v)
		stats.Max = math.Max(stats.Max, v)
	}
	stats.Mean = sum / float64(stats.Count)

	var sq float64
	for _, c := range series {
		d := get(c) - stats.Mean
		sq += d * d
	}
	stats.StdDev = math.Sqrt(sq / float64(stats.Count))
	return stats
}
