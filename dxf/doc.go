// Package dxf reads the subset of the DXF entity format the geometry
// kernel needs for import_dxf()/linear_extrude(file=...)/rotate_extrude(file=...):
// LINE, LWPOLYLINE, CIRCLE, ARC and INSERT entities reduced to a flat set of
// line segments, then reassembled into closed/open polylines.
package dxf
