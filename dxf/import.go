package dxf

import (
	"os"

	"github.com/gopenscad/scad/geom"
)

// TessellatePrimitive2D reads a DXF file's named layer and converts its
// closed paths into the PolySet an import_dxf() leaf tessellates to. A
// missing or unreadable file yields an empty PolySet rather than an error,
// matching the original's "WARNING: Can't open" + continue behavior.
func TessellatePrimitive2D(path, layer string, fn, fs, fa float64) *geom.PolySet {
	data, err := ReadFile(path, Options{Fn: fn, Fs: fs, Fa: fa, Layer: layer})
	if err != nil {
		return geom.New(true)
	}
	return data.ToPolySet()
}

// ReadFile opens path and parses it per opts, the file-handle-owning
// counterpart to Read used by every DXF-consuming builtin (import_dxf,
// linear_extrude/rotate_extrude(file=...), dxf_dim, dxf_cross).
func ReadFile(path string, opts Options) (*Data, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f, opts)
}
