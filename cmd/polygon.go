package main

import (
	"io"
	"os"

	"github.com/rotisserie/eris"

	"github.com/lasosearch/lasso/internal/geo"
)

// readRing loads a GeoJSON Polygon from path, or stdin when path is "-".
func readRing(path string) (geo.Ring, error) {
	var (
		raw []byte
		err error
	)
	if path == "-" {
		raw, err = io.ReadAll(os.Stdin)
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, eris.Wrapf(err, "read polygon %s", path)
	}

	ring, err := geo.ParsePolygon(raw)
	if err != nil {
		return nil, err
	}
	if !ring.Valid() {
		return nil, eris.New("polygon needs at least 3 distinct vertices")
	}
	return ring, nil
}
