package dxf

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// Point is a 2-D DXF coordinate, already origin-shifted and scaled.
type Point struct{ X, Y float64 }

// Dim captures a DIMENSION entity, consumed by the dxf_dim()/dxf_cross()
// builtins rather than by the geometry pipeline itself.
type Dim struct {
	Type   int
	Coords [7][2]float64
	Angle  float64
	Name   string
}

// Path is a polyline assembled from the file's line segments: either a
// closed loop (a candidate outer boundary or hole) or an open chain.
type Path struct {
	Points []Point
	Closed bool
	Inner  bool
}

// Data is the parsed, path-assembled content of one DXF file, restricted to
// a single named layer when Options.Layer is non-empty.
type Data struct {
	Paths []Path
	Dims  []Dim
}

// Options controls how a DXF file is read: the fragment-count knobs used to
// tessellate CIRCLE/ARC entities (ELLIPSE entities are not read), the layer filter, and the
// coordinate origin/scale shift (mirrors import_dxf()'s own parameters).
type Options struct {
	Fn, Fs, Fa       float64
	Layer            string
	XOrigin, YOrigin float64
	Scale            float64
}

func (o Options) fragments(radius float64) int {
	if o.Fn >= 3 {
		return int(o.Fn)
	}
	if o.Scale == 0 {
		o.Scale = 1
	}
	r := radius
	fs := o.Fs
	if fs <= 0 {
		fs = 2
	}
	fa := o.Fa
	if fa <= 0 {
		fa = 12
	}
	n := int(math.Ceil(math.Max(math.Min(360.0/fa, r*2*math.Pi/fs), 5)))
	if n < 3 {
		n = 3
	}
	return n
}

type line struct {
	p0, p1   Point
	disabled bool
}

// gridKey quantizes a coordinate to merge endpoints that differ only by
// floating-point noise, the same role Grid2d::align plays in the original.
const gridEpsilon = 1e-6

func gridKey(x, y float64) [2]int64 {
	return [2]int64{int64(math.Round(x / gridEpsilon)), int64(math.Round(y / gridEpsilon))}
}

// scanner holds parser state for one group-code-pair pass over the file.
type scanner struct {
	lines []line
	grid  map[[2]int64][]int
	opts  Options

	blocks map[string][]line
}

func newScanner(opts Options) *scanner {
	return &scanner{grid: make(map[[2]int64][]int), opts: opts, blocks: make(map[string][]line)}
}

func (s *scanner) addLine(dest *[]line, x1, y1, x2, y2 float64) {
	l := line{p0: Point{x1, y1}, p1: Point{x2, y2}}
	*dest = append(*dest, l)
	if dest == &s.lines {
		idx := len(s.lines) - 1
		s.grid[gridKey(x1, y1)] = append(s.grid[gridKey(x1, y1)], idx)
		s.grid[gridKey(x2, y2)] = append(s.grid[gridKey(x2, y2)], idx)
	}
}

// Read parses a DXF file's ENTITIES and BLOCKS sections, keeping entities on
// the requested layer (every layer, when Options.Layer is empty), and
// reassembles the resulting line soup into open and closed Paths.
func Read(r io.Reader, opts Options) (*Data, error) {
	if opts.Scale == 0 {
		opts.Scale = 1
	}
	s := newScanner(opts)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)

	var mode, layer, name, iddata string
	var xverts, yverts []float64
	var radius, startAngle, stopAngle float64
	var dimtype int
	var coords [7][2]float64
	inEntities, inBlocks := false, false
	currentBlock := ""
	var dims []Dim

	resetRecord := func(newMode string) {
		mode, layer, name, iddata = newMode, "", "", ""
		dimtype = 0
		coords = [7][2]float64{}
		xverts, yverts = nil, nil
		radius, startAngle, stopAngle = 0, 0, 0
	}

	flush := func() {
		switch mode {
		case "SECTION":
			inEntities = iddata == "ENTITIES"
			inBlocks = iddata == "BLOCKS"
		case "LINE":
			if len(xverts) >= 2 && len(yverts) >= 2 {
				s.emit(inEntities, inBlocks, layer, currentBlock, xverts[0], yverts[0], xverts[1], yverts[1])
			}
		case "LWPOLYLINE", "POLYLINE":
			n := len(xverts)
			for i := 1; i < n; i++ {
				s.emit(inEntities, inBlocks, layer, currentBlock, xverts[i-1], yverts[i-1], xverts[i], yverts[i])
			}
			if n > 0 && dimtype&0x01 != 0 {
				s.emit(inEntities, inBlocks, layer, currentBlock, xverts[n-1], yverts[n-1], xverts[0], yverts[0])
			}
		case "CIRCLE":
			if len(xverts) > 0 && len(yverts) > 0 {
				n := opts.fragments(radius)
				cx, cy := xverts[0], yverts[0]
				for i := 0; i < n; i++ {
					a1 := 2 * math.Pi * float64(i) / float64(n)
					a2 := 2 * math.Pi * float64(i+1) / float64(n)
					s.emit(inEntities, inBlocks, layer, currentBlock,
						math.Cos(a1)*radius+cx, math.Sin(a1)*radius+cy,
						math.Cos(a2)*radius+cx, math.Sin(a2)*radius+cy)
				}
			}
		case "ARC":
			if len(xverts) > 0 && len(yverts) > 0 {
				cx, cy := xverts[0], yverts[0]
				for stopAngle < startAngle {
					stopAngle += 360
				}
				n := int(math.Ceil(float64(opts.fragments(radius)) * (stopAngle - startAngle) / 360))
				if n < 1 {
					n = 1
				}
				for i := 0; i < n; i++ {
					a1 := (startAngle + (stopAngle-startAngle)*float64(i)/float64(n)) * math.Pi / 180
					a2 := (startAngle + (stopAngle-startAngle)*float64(i+1)/float64(n)) * math.Pi / 180
					s.emit(inEntities, inBlocks, layer, currentBlock,
						math.Cos(a1)*radius+cx, math.Sin(a1)*radius+cy,
						math.Cos(a2)*radius+cx, math.Sin(a2)*radius+cy)
				}
			}
		case "INSERT":
			a := -startAngle * math.Pi / 180
			ox, oy := 0.0, 0.0
			if len(xverts) > 0 {
				ox, oy = xverts[0], yverts[0]
			}
			for _, bl := range s.blocks[iddata] {
				px1 := math.Cos(a)*bl.p0.X + math.Sin(a)*bl.p0.Y + ox
				py1 := math.Sin(a)*bl.p0.X + math.Cos(a)*bl.p0.Y + oy
				px2 := math.Cos(a)*bl.p1.X + math.Sin(a)*bl.p1.Y + ox
				py2 := math.Sin(a)*bl.p1.X + math.Cos(a)*bl.p1.Y + oy
				s.emit(inEntities, inBlocks, layer, currentBlock, px1, py1, px2, py2)
			}
		case "DIMENSION":
			if opts.Layer == "" || opts.Layer == layer {
				dims = append(dims, Dim{Type: dimtype, Coords: coords, Angle: startAngle, Name: name})
			}
		case "BLOCK":
			currentBlock = iddata
		case "ENDBLK":
			currentBlock = ""
		}
	}

	for sc.Scan() {
		idLine := sc.Text()
		if !sc.Scan() {
			break
		}
		data := strings.TrimSpace(sc.Text())
		idLine = strings.TrimSpace(idLine)

		id, err := strconv.Atoi(idLine)
		if err != nil {
			return nil, fmt.Errorf("dxf: illegal group code %q", idLine)
		}

		switch {
		case id >= 10 && id <= 16:
			v, _ := strconv.ParseFloat(data, 64)
			if id == 11 || id == 12 || id == 16 {
				coords[id-10][0] = v * opts.Scale
			} else {
				coords[id-10][0] = (v - opts.XOrigin) * opts.Scale
			}
		case id >= 20 && id <= 26:
			v, _ := strconv.ParseFloat(data, 64)
			if id == 21 || id == 22 || id == 26 {
				coords[id-20][1] = v * opts.Scale
			} else {
				coords[id-20][1] = (v - opts.YOrigin) * opts.Scale
			}
		}

		switch id {
		case 0:
			flush()
			resetRecord(data)
			continue
		case 1:
			name = data
		case 2:
			iddata = data
		case 8:
			layer = data
		case 10, 11:
			v, _ := strconv.ParseFloat(data, 64)
			xverts = append(xverts, (v-opts.XOrigin)*opts.Scale)
		case 20, 21:
			v, _ := strconv.ParseFloat(data, 64)
			yverts = append(yverts, (v-opts.YOrigin)*opts.Scale)
		case 40:
			radius, _ = strconv.ParseFloat(data, 64)
			radius *= opts.Scale
		case 41, 50:
			startAngle, _ = strconv.ParseFloat(data, 64)
		case 42, 51:
			stopAngle, _ = strconv.ParseFloat(data, 64)
		case 70:
			dimtype, _ = strconv.Atoi(data)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	flush()

	paths := assemblePaths(s.lines, s.grid)
	fixupPathDirection(paths)
	return &Data{Paths: paths, Dims: dims}, nil
}

// emit routes a line segment either to the entities accumulator (subject to
// the layer filter) or to the current block's definition, mirroring the
// original's ADD_LINE macro.
func (s *scanner) emit(inEntities, inBlocks bool, layer, currentBlock string, x1, y1, x2, y2 float64) {
	if !inEntities && !inBlocks {
		return
	}
	if inEntities && s.opts.Layer != "" && s.opts.Layer != layer {
		return
	}
	if inEntities {
		s.addLine(&s.lines, x1, y1, x2, y2)
	}
	if inBlocks && currentBlock != "" {
		bl := s.blocks[currentBlock]
		s.addLine(&bl, x1, y1, x2, y2)
		s.blocks[currentBlock] = bl
	}
}

// assemblePaths walks the undirected line graph, first draining every open
// chain (an endpoint with no partner) and then consuming whatever loops
// remain as closed paths — the same two-pass strategy as the original.
func assemblePaths(lines []line, grid map[[2]int64][]int) []Path {
	ls := make([]line, len(lines))
	copy(ls, lines)
	remaining := len(ls)

	neighbors := func(p Point, exclude int) (int, int, bool) {
		for _, k := range grid[gridKey(p.X, p.Y)] {
			if k == exclude || ls[k].disabled {
				continue
			}
			if sameGridCell(ls[k].p0, p) {
				return k, 0, true
			}
			if sameGridCell(ls[k].p1, p) {
				return k, 1, true
			}
		}
		return 0, 0, false
	}

	var paths []Path

	hasOpenEnd := func(i int) (int, bool) {
		for j := 0; j < 2; j++ {
			p := endpoint(ls[i], j)
			if _, _, ok := neighbors(p, i); !ok {
				return j, true
			}
		}
		return 0, false
	}

	for remaining > 0 {
		found := -1
		var startPt int
		for i := range ls {
			if ls[i].disabled {
				continue
			}
			if j, ok := hasOpenEnd(i); ok {
				found, startPt = i, j
				break
			}
		}
		if found == -1 {
			break
		}
		path := Path{}
		cur, curPt := found, startPt
		path.Points = append(path.Points, endpoint(ls[cur], curPt))
		for {
			other := 1 - curPt
			refPt := endpoint(ls[cur], other)
			path.Points = append(path.Points, refPt)
			ls[cur].disabled = true
			remaining--
			nextLine, nextPt, ok := neighbors(refPt, cur)
			if !ok {
				break
			}
			cur, curPt = nextLine, nextPt
		}
		paths = append(paths, path)
	}

	for remaining > 0 {
		start := -1
		for i := range ls {
			if !ls[i].disabled {
				start = i
				break
			}
		}
		if start == -1 {
			break
		}
		path := Path{Closed: true}
		cur, curPt := start, 0
		path.Points = append(path.Points, endpoint(ls[cur], curPt))
		for {
			other := 1 - curPt
			refPt := endpoint(ls[cur], other)
			path.Points = append(path.Points, refPt)
			ls[cur].disabled = true
			remaining--
			nextLine, nextPt, ok := neighbors(refPt, cur)
			if !ok {
				break
			}
			cur, curPt = nextLine, nextPt
		}
		paths = append(paths, path)
	}

	return paths
}

func endpoint(l line, j int) Point {
	if j == 0 {
		return l.p0
	}
	return l.p1
}

func sameGridCell(a, b Point) bool {
	return gridKey(a.X, a.Y) == gridKey(b.X, b.Y)
}

// fixupPathDirection marks every closed path Inner and reverses it when
// needed so that it winds clockwise, judged at its minimum-x vertex from the
// directions to that vertex's two neighbours; the start point is not moved.
// This is the same normalization the original applies before handing paths
// to the tessellator.
func fixupPathDirection(paths []Path) {
	for i := range paths {
		if !paths[i].Closed {
			continue
		}
		paths[i].Inner = true
		pts := paths[i].Points
		if len(pts) < 3 {
			continue
		}
		minX, minIdx := pts[0].X, 0
		for j, p := range pts {
			if p.X < minX {
				minX, minIdx = p.X, j
			}
		}
		b := minIdx
		a := b - 1
		if a < 0 {
			a = len(pts) - 2
		}
		c := b + 1
		if c >= len(pts) {
			c = 1
		}
		ax, ay := pts[a].X-pts[b].X, pts[a].Y-pts[b].Y
		cx, cy := pts[c].X-pts[b].X, pts[c].Y-pts[b].Y
		if math.Atan2(ax, ay) < math.Atan2(cx, cy) {
			for j, k := 0, len(pts)-1; j < k; j, k = j+1, k-1 {
				pts[j], pts[k] = pts[k], pts[j]
			}
		}
	}
}
