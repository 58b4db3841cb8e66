// Package kernel defines the boundary-rep Polyhedron contract (§6.4) a
// normalized CSG term is ultimately reduced to for STL export, and ships
// MeshKernel, a pure-Go approximate boundary rep that keeps its facets as a
// flat polygon list, which implements it. Any
// substitution (e.g. a CGo binding to an exact-arithmetic library) must
// preserve the Polyhedron contract; the rest of the pipeline only calls
// through it.
package kernel
