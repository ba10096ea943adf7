// Package areas imports preset search polygons from shapefiles so users
// can pick a named boundary instead of drawing one.
package areas

import (
	"context"
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"go.uber.org/zap"

	"github.com/lasosearch/lasso/internal/geo"
	"github.com/lasosearch/lasso/internal/store"
)

// Loader reads polygon shapefiles into the store.
type Loader struct {
	store store.Store
}

// NewLoader creates a Loader backed by the given store.
func NewLoader(st store.Store) *Loader {
	return &Loader{store: st}
}

// Load imports every polygon record from shpPath, naming each area from
// the given DBF attribute field. Records without a usable name or polygon
// are skipped. Returns the number of areas imported.
func (l *Loader) Load(ctx context.Context, shpPath, nameField string) (int, error) {
	reader, err := shp.Open(shpPath)
	if err != nil {
		return 0, eris.Wrapf(err, "areas: open shapefile %s", shpPath)
	}
	defer func() { _ = reader.Close() }()

	nameIdx := -1
	for i, f := range reader.Fields() {
		name := strings.TrimRight(f.String(), "\x00")
		if strings.EqualFold(name, nameField) {
			nameIdx = i
			break
		}
	}
	if nameIdx < 0 {
		return 0, eris.Errorf("areas: shapefile has no %q field", nameField)
	}

	var imported, skipped int
	for reader.Next() {
		_, shape := reader.Shape()

		name := strings.TrimSpace(strings.TrimRight(reader.Attribute(nameIdx), "\x00"))
		poly, ok := shape.(*shp.Polygon)
		if !ok || name == "" {
			skipped++
			continue
		}

		ring, err := exteriorRing(poly)
		if err != nil {
			zap.L().Debug("areas: skipping record",
				zap.String("name", name), zap.Error(err))
			skipped++
			continue
		}

		if _, err := l.store.UpsertArea(ctx, name, ring); err != nil {
			return imported, err
		}
		imported++
	}

	zap.L().Info("areas: shapefile import complete",
		zap.String("path", shpPath),
		zap.Int("imported", imported),
		zap.Int("skipped", skipped))
	return imported, nil
}

// exteriorRing extracts the first (outer) part of a shapefile polygon as a
// closed search ring. Interior holes are ignored: the search UI treats a
// preset area as a single boundary.
func exteriorRing(p *shp.Polygon) (geo.Ring, error) {
	if p == nil || p.NumParts == 0 || len(p.Points) == 0 {
		return nil, eris.New("areas: empty polygon")
	}

	start := p.Parts[0]
	end := int32(len(p.Points))
	if p.NumParts > 1 {
		end = p.Parts[1]
	}

	// Round-trip through go-geom to validate the ring as real geometry
	// (shapefile X is longitude, Y latitude).
	coords := make([]geom.Coord, 0, end-start)
	for i := start; i < end; i++ {
		coords = append(coords, geom.Coord{p.Points[i].X, p.Points[i].Y})
	}
	lr, err := geom.NewLinearRing(geom.XY).SetCoords(coords)
	if err != nil {
		return nil, eris.Wrap(err, "areas: invalid ring")
	}

	ring := make(geo.Ring, 0, lr.NumCoords())
	for i := 0; i < lr.NumCoords(); i++ {
		c := lr.Coord(i)
		ring = append(ring, geo.Point{Lat: c.Y(), Lng: c.X()})
	}
	if !ring.Valid() {
		return nil, eris.New("areas: fewer than 3 distinct vertices")
	}
	return ring.Closed(), nil
}
