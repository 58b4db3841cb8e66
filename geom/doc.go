// Package geom implements the polygon-soup geometry kernel support:
// PolySet (§3.9), the tessellator, the linear/rotate extrude builders
// (§4.7), and STL/surface encode-decode (§6.2/§6.3).
package geom
