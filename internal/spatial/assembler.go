package spatial

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
)

const isoDateLayout = "2006-01-02T15:04:05"

var errEmptyGeometry = errors.New("empty geometry")

// Row is one result row of a plan. Individual rows carry ID and Date,
// clustered rows carry Count. Geometry is the GeoJSON text produced by the store.
// ID comes from an int4 serial column, so it stays exact after a cached
// collection is decoded with float64 numbers.
type Row struct {
	ID       int64
	Category string
	Date     *time.Time
	Count    int64
	Geometry []byte
}

// FeatureCollection is the response envelope shared by both modes.
type FeatureCollection struct {
	Type     string             `json:"type"`
	Features []*geojson.Feature `json:"features"`
	// Truncated is set when an individual query returned exactly its row cap.
	Truncated bool   `json:"truncated,omitempty"`
	Error     string `json:"error,omitempty"`
}

// NewFeatureCollection never returns a nil Features slice so it always encodes as [].
func NewFeatureCollection(features []*geojson.Feature) *FeatureCollection {
	if features == nil {
		features = []*geojson.Feature{}
	}
	return &FeatureCollection{Type: "FeatureCollection", Features: features}
}

// ErrorCollection is what clients get when the whole query failed: an empty,
// still renderable layer.
func ErrorCollection(message string) *FeatureCollection {
	fc := NewFeatureCollection(nil)
	fc.Error = message
	return fc
}

// HeatPoint is a [lat, lng, intensity] triple as expected by Leaflet.heat.
type HeatPoint [3]float64

// Heatmap is a heatmap answer together with its truncation flag.
type Heatmap struct {
	Points    []HeatPoint `json:"points"`
	Truncated bool        `json:"truncated"`
}

// Assembler converts store rows into features. A bad row is logged and
// skipped, it never fails the batch.
type Assembler struct {
	logger logrus.FieldLogger
}

func NewAssembler(logger logrus.FieldLogger) *Assembler {
	return &Assembler{logger: logger}
}

// Assemble returns the collection and the number of rows dropped.
func (a *Assembler) Assemble(plan Plan, rows []Row) (*FeatureCollection, int) {
	features := make([]*geojson.Feature, 0, len(rows))
	dropped := 0

	for i := range rows {
		row := &rows[i]
		g, err := decodeGeometry(row.Geometry)
		if err != nil {
			dropped++
			a.rowLogger(plan.Mode, row).WithError(err).Warn("Skipping row with unreadable geometry")
			continue
		}

		var props map[string]interface{}
		if plan.Mode == ModeIndividual {
			props = map[string]interface{}{
				"id":        row.ID,
				"category":  row.Category,
				"date":      a.formatDate(row),
				"clustered": false,
			}
		} else {
			props = map[string]interface{}{
				"category":  row.Category,
				"count":     row.Count,
				"clustered": true,
			}
		}
		features = append(features, &geojson.Feature{Geometry: g, Properties: props})
	}

	fc := NewFeatureCollection(features)
	fc.Truncated = plan.Mode == ModeIndividual && plan.Limit > 0 && len(rows) >= plan.Limit
	return fc, dropped
}

// AssembleHeatmap keeps only point geometries; anything else counts as dropped.
func (a *Assembler) AssembleHeatmap(rows []Row) ([]HeatPoint, int) {
	points := make([]HeatPoint, 0, len(rows))
	dropped := 0

	for i := range rows {
		row := &rows[i]
		g, err := decodeGeometry(row.Geometry)
		if err == nil {
			if p, ok := g.(*geom.Point); ok {
				points = append(points, HeatPoint{p.Y(), p.X(), 1})
				continue
			}
			err = fmt.Errorf("unexpected geometry type %T", g)
		}
		dropped++
		a.rowLogger(ModeIndividual, row).WithError(err).Warn("Skipping heatmap point")
	}
	return points, dropped
}

// formatDate degrades to nil instead of dropping the row.
func (a *Assembler) formatDate(row *Row) interface{} {
	if row.Date == nil || row.Date.IsZero() {
		return nil
	}
	t := *row.Date
	if y := t.Year(); y < 1 || y > 9999 {
		a.logger.WithField("id", row.ID).WithField("year", y).Warn("Date outside ISO-8601 range, emitting null")
		return nil
	}
	if t.Nanosecond()/1000 != 0 {
		return t.Format(isoDateLayout + ".000000")
	}
	return t.Format(isoDateLayout)
}

func (a *Assembler) rowLogger(mode Mode, row *Row) logrus.FieldLogger {
	log := a.logger.WithField("mode", mode.String()).WithField("category", row.Category)
	if mode == ModeIndividual {
		log = log.WithField("id", row.ID)
	}
	return log
}

func decodeGeometry(data []byte) (geom.T, error) {
	if len(data) == 0 {
		return nil, errEmptyGeometry
	}
	var g geom.T
	if err := geojson.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("decode geojson: %w", err)
	}
	if isEmpty(g) {
		return nil, errEmptyGeometry
	}
	return g, nil
}

// isEmpty catches geometries that decode fine but have nothing to draw,
// e.g. PostGIS renders POINT EMPTY as {"type":"Point","coordinates":[]}.
func isEmpty(g geom.T) bool {
	switch g := g.(type) {
	case nil:
		return true
	case *geom.GeometryCollection:
		return g.NumGeoms() == 0
	default:
		n := len(g.FlatCoords())
		return n == 0 || n < g.Stride()
	}
}
