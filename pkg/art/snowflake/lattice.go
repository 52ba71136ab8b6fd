package snowflake

import (
	"context"
	"math"
	"math/rand/v2"

	"github.com/inkplot/inkplot/pkg/errors"
)

// Cell is one site on the hexagonal lattice. Mass moves between the
// three reservoirs as the automaton steps; once a cell attaches it is
// frozen for good.
type Cell struct {
	DiffusiveMass float64
	BoundaryMass  float64
	CrystalMass   float64
	Attached      bool
	Boundary      bool
	Age           int

	nextDM            float64
	attachFlag        bool
	attachedNeighbors int
}

// Lattice is the square grid the automaton runs on. Cells are stored
// row-major; the six hexagonal neighbors of (x, y) are the four
// orthogonal cells plus (x-1, y-1) and (x+1, y+1).
type Lattice struct {
	size      int
	env       *Environment
	cells     []Cell
	iteration int
	maxSteps  int
	margin    float64
	rng       *rand.Rand
}

// NewLattice creates a lattice with every cell holding gamma diffusive
// mass and a single attached seed cell at the center.
func NewLattice(size int, env *Environment, maxSteps int, margin float64, rng *rand.Rand) *Lattice {
	l := &Lattice{
		size:      size,
		env:       env,
		cells:     make([]Cell, size*size),
		iteration: 1,
		maxSteps:  maxSteps,
		margin:    margin,
		rng:       rng,
	}
	for i := range l.cells {
		l.cells[i].DiffusiveMass = env.Gamma
	}
	center := &l.cells[l.index(size/2, size/2)]
	center.CrystalMass = 1
	center.Attached = true
	return l
}

// Size returns the lattice edge length in cells.
func (l *Lattice) Size() int { return l.size }

// Iteration returns the current step count, starting at 1.
func (l *Lattice) Iteration() int { return l.iteration }

// Cell returns the cell at (x, y).
func (l *Lattice) Cell(x, y int) *Cell { return &l.cells[l.index(x, y)] }

func (l *Lattice) index(x, y int) int { return y*l.size + x }

var hexOffsets = [6][2]int{{0, 1}, {0, -1}, {-1, 0}, {1, 0}, {-1, -1}, {1, 1}}

// forEachNeighbor calls fn for every in-bounds hexagonal neighbor.
func (l *Lattice) forEachNeighbor(x, y int, fn func(*Cell)) {
	for _, off := range hexOffsets {
		nx, ny := x+off[0], y+off[1]
		if nx < 0 || nx >= l.size || ny < 0 || ny >= l.size {
			continue
		}
		fn(&l.cells[l.index(nx, ny)])
	}
}

// Grow steps the automaton until the crystal runs out of headroom or
// the context is cancelled.
func (l *Lattice) Grow(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return errors.Wrap(errors.ErrCodeCancelled, err, "growth interrupted at step %d", l.iteration)
		}
		l.Step()
		if !l.headroom() {
			return nil
		}
	}
}

// Step advances the automaton by one iteration: diffusion first, then
// freezing/attachment/melting, then the attachment commit and vapor
// noise. Attached cells never change again.
func (l *Lattice) Step() {
	for y := 0; y < l.size; y++ {
		for x := 0; x < l.size; x++ {
			c := &l.cells[l.index(x, y)]
			if c.Attached {
				continue
			}
			l.stepDiffusion(c, x, y)
		}
	}
	for y := 0; y < l.size; y++ {
		for x := 0; x < l.size; x++ {
			c := &l.cells[l.index(x, y)]
			if c.Attached {
				continue
			}
			l.stepMass(c, x, y)
		}
	}
	for i := range l.cells {
		c := &l.cells[i]
		if c.Attached {
			continue
		}
		l.stepCommit(c)
	}
	l.iteration++
	l.env.Step(l.iteration)
}

// stepDiffusion refreshes the boundary flag and computes next step's
// diffusive mass. Attached neighbors reflect vapor back instead of
// contributing their own.
func (l *Lattice) stepDiffusion(c *Cell, x, y int) {
	c.Boundary = false
	c.attachedNeighbors = 0
	next := c.DiffusiveMass
	n := 0
	l.forEachNeighbor(x, y, func(nb *Cell) {
		n++
		if nb.Attached {
			c.Boundary = true
			c.attachedNeighbors++
			next += c.DiffusiveMass
		} else {
			next += nb.DiffusiveMass
		}
	})
	c.Age++
	c.nextDM = next / float64(n+1)
}

// stepMass commits the diffused mass and runs freezing, the attachment
// decision, and melting for boundary cells.
func (l *Lattice) stepMass(c *Cell, x, y int) {
	c.DiffusiveMass = c.nextDM
	c.attachFlag = false
	if !c.Boundary {
		return
	}

	// Freezing: a kappa fraction of the vapor goes straight to crystal,
	// the rest to the quasi-liquid boundary layer.
	c.BoundaryMass += (1 - l.env.Kappa) * c.DiffusiveMass
	c.CrystalMass += l.env.Kappa * c.DiffusiveMass
	c.DiffusiveMass = 0

	c.attachFlag = l.attachmentDecision(c, x, y)

	// Melting: some boundary and crystal mass evaporates back to vapor.
	c.DiffusiveMass += l.env.Mu*c.BoundaryMass + l.env.Upsilon*c.CrystalMass
	c.BoundaryMass *= 1 - l.env.Mu
	c.CrystalMass *= 1 - l.env.Upsilon
}

// attachmentDecision applies the Gravner-Griffeath attachment rules
// based on how many frozen neighbors the boundary cell has.
func (l *Lattice) attachmentDecision(c *Cell, x, y int) bool {
	switch n := c.attachedNeighbors; {
	case n <= 2:
		return c.BoundaryMass > l.env.Beta
	case n == 3:
		if c.BoundaryMass >= 1 {
			return true
		}
		vapor := c.DiffusiveMass
		l.forEachNeighbor(x, y, func(nb *Cell) {
			vapor += nb.DiffusiveMass
		})
		return vapor < l.env.Theta && c.BoundaryMass >= l.env.Alpha
	default:
		return true
	}
}

// stepCommit attaches cells flagged this step and perturbs the vapor of
// everything else.
func (l *Lattice) stepCommit(c *Cell) {
	if c.Boundary && c.attachFlag {
		c.CrystalMass += c.BoundaryMass
		c.BoundaryMass = 0
		c.Attached = true
		return
	}
	if c.Boundary {
		return
	}
	if l.rng.Float64() >= 0.5 {
		c.DiffusiveMass *= 1 - l.env.Sigma
	} else {
		c.DiffusiveMass *= 1 + l.env.Sigma
	}
}

// headroom reports whether the crystal still has room to grow.
func (l *Lattice) headroom() bool {
	if l.maxSteps > 0 && l.iteration >= l.maxSteps {
		return false
	}
	cutoff := int(math.Round(l.margin * float64(l.size) / 2))
	return l.Radius() <= cutoff
}

// radiusAngle is the ray the radius probe walks along. It points into a
// quadrant the hexagonal skew does not distort.
const radiusAngle = 135

// Radius probes outward from the center along a fixed ray and returns
// the distance to the first cell that is neither attached nor boundary.
func (l *Lattice) Radius() int {
	half := float64(l.size) / 2
	rad := radiusAngle * math.Pi / 180
	for r := 1; float64(r) < half; r++ {
		x := int(math.Round(half + math.Cos(rad)*float64(r)))
		y := int(math.Round(half - math.Sin(rad)*float64(r)))
		c := &l.cells[l.index(x, y)]
		if !c.Attached && !c.Boundary {
			return r
		}
	}
	return int(math.Round(half))
}
