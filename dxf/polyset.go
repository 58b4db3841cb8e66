package dxf

import (
	"github.com/gopenscad/scad/geom"
)

// ToPolySet converts the closed paths of a parsed DXF file into a 2-D
// PolySet, the shape import_dxf()/linear_extrude(file=...) consume. Open
// paths are ignored — they don't bound a region.
func (d *Data) ToPolySet() *geom.PolySet {
	ps := geom.New(true)
	for _, path := range d.Paths {
		if !path.Closed {
			continue
		}
		// A traced closed loop repeats its first point at the end; a
		// geom.Polygon keeps its first and last vertices distinct.
		pts := path.Points
		if len(pts) > 1 && sameGridCell(pts[0], pts[len(pts)-1]) {
			pts = pts[:len(pts)-1]
		}
		if len(pts) < 3 {
			continue
		}
		poly := make(geom.Polygon, 0, len(pts))
		for _, p := range pts {
			poly = append(poly, geom.Point{X: p.X, Y: p.Y, Z: 0})
		}
		ps.AppendPolygon(poly)
		ps.Borders = append(ps.Borders, poly)
	}
	return ps
}
