package spatial

import "math"

// Mode is the level of detail chosen for a viewport.
type Mode int

const (
	ModeClustered Mode = iota
	ModeIndividual
)

func (m Mode) String() string {
	if m == ModeIndividual {
		return "individual"
	}
	return "clustered"
}

const (
	// IndividualZoomThreshold is the lowest zoom that returns raw incidents.
	IndividualZoomThreshold = 15
	// MaxIndividualRows caps point payloads; clustered queries are bounded by grouping.
	MaxIndividualRows = 10000
	// MaxHeatmapPoints caps heatmap payloads.
	MaxHeatmapPoints = 10000

	clusterBaseZoom   = 10
	baseClusterFactor = 0.05
	minClusterFactor  = 0.001
)

// Filter restricts incidents by category and area. Empty Categories and nil
// BBox mean no restriction.
type Filter struct {
	Categories []string
	BBox       *BBox
}

// Plan is a fully specified store request. The store executes it; nothing in
// this package touches the database.
type Plan struct {
	Mode   Mode
	Filter Filter
	// Limit is zero for clustered plans.
	Limit int
	// ClusterFactor is the grid cell size in degrees, clustered plans only.
	ClusterFactor float64
}

// SelectMode is the single branch point between raw points and aggregates.
func SelectMode(zoom int) Mode {
	if zoom >= IndividualZoomThreshold {
		return ModeIndividual
	}
	return ModeClustered
}

// ClusterFactor halves the grid cell per zoom level above 10 and never goes
// below 0.001 degrees.
func ClusterFactor(zoom int) float64 {
	if zoom <= clusterBaseZoom {
		return baseClusterFactor
	}
	return math.Max(minClusterFactor, baseClusterFactor/math.Pow(2, float64(zoom-clusterBaseZoom)))
}

// PlanQuery builds the store request for the /crimes endpoint.
func PlanQuery(q ViewportQuery) Plan {
	filter := Filter{Categories: q.Categories, BBox: q.BBox}
	if SelectMode(q.Zoom) == ModeIndividual {
		return Plan{Mode: ModeIndividual, Filter: filter, Limit: MaxIndividualRows}
	}
	return Plan{Mode: ModeClustered, Filter: filter, ClusterFactor: ClusterFactor(q.Zoom)}
}

// PlanHeatmap ignores zoom: the heatmap always wants individual points.
func PlanHeatmap(q ViewportQuery) Plan {
	return Plan{
		Mode:   ModeIndividual,
		Filter: Filter{Categories: q.Categories, BBox: q.BBox},
		Limit:  MaxHeatmapPoints,
	}
}
