package motion

import "math"

// gridThreshold is the particle count above which connection pairs are
// found through a uniform grid instead of checking every pair.
const gridThreshold = 150

// pair is one connection candidate within the link distance.
type pair struct {
	i, j int
	dist float64
}

// collectPairs appends every unordered pair closer than the link distance.
func (f *ParticleField) collectPairs(dst []pair) []pair {
	if len(f.particles) > gridThreshold {
		return f.grid.pairs(dst, f.particles, f.config.LinkDistance, f.width, f.height)
	}
	return bruteForcePairs(dst, f.particles, f.config.LinkDistance)
}

// bruteForcePairs checks all n(n-1)/2 pairs.
func bruteForcePairs(dst []pair, ps []particle, radius float64) []pair {
	if radius <= 0 {
		return dst
	}
	r2 := radius * radius
	for i := 0; i < len(ps); i++ {
		for j := i + 1; j < len(ps); j++ {
			dx := ps[i].x - ps[j].x
			dy := ps[i].y - ps[j].y
			d2 := dx*dx + dy*dy
			if d2 < r2 {
				dst = append(dst, pair{i: i, j: j, dist: math.Sqrt(d2)})
			}
		}
	}
	return dst
}

// proximityGrid buckets particles into square cells of the link distance so
// each particle is only compared against its own and adjacent cells.
type proximityGrid struct {
	cols, rows int
	heads      []int // first particle index per cell, -1 if empty
	next       []int // next particle index in the same cell
}

// forward neighbours: each unordered cell pair is visited exactly once.
var forwardCells = [4][2]int{{1, 0}, {-1, 1}, {0, 1}, {1, 1}}

func (g *proximityGrid) pairs(dst []pair, ps []particle, radius, width, height float64) []pair {
	if radius <= 0 || width <= 0 || height <= 0 {
		return dst
	}
	g.cols = max(1, int(math.Ceil(width/radius)))
	g.rows = max(1, int(math.Ceil(height/radius)))
	cells := g.cols * g.rows
	if cap(g.heads) < cells {
		g.heads = make([]int, cells)
	}
	g.heads = g.heads[:cells]
	for i := range g.heads {
		g.heads[i] = -1
	}
	if cap(g.next) < len(ps) {
		g.next = make([]int, len(ps))
	}
	g.next = g.next[:len(ps)]

	for i := range ps {
		c := g.cell(ps[i].x, ps[i].y, radius)
		g.next[i] = g.heads[c]
		g.heads[c] = i
	}

	r2 := radius * radius
	check := func(a, b int) {
		dx := ps[a].x - ps[b].x
		dy := ps[a].y - ps[b].y
		d2 := dx*dx + dy*dy
		if d2 < r2 {
			if a > b {
				a, b = b, a
			}
			dst = append(dst, pair{i: a, j: b, dist: math.Sqrt(d2)})
		}
	}

	for cy := 0; cy < g.rows; cy++ {
		for cx := 0; cx < g.cols; cx++ {
			c := cy*g.cols + cx
			for a := g.heads[c]; a >= 0; a = g.next[a] {
				for b := g.next[a]; b >= 0; b = g.next[b] {
					check(a, b)
				}
				for _, off := range forwardCells {
					nx, ny := cx+off[0], cy+off[1]
					if nx < 0 || nx >= g.cols || ny >= g.rows {
						continue
					}
					for b := g.heads[ny*g.cols+nx]; b >= 0; b = g.next[b] {
						check(a, b)
					}
				}
			}
		}
	}
	return dst
}

func (g *proximityGrid) cell(x, y, size float64) int {
	cx := min(g.cols-1, max(0, int(x/size)))
	cy := min(g.rows-1, max(0, int(y/size)))
	return cy*g.cols + cx
}
