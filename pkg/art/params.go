package art

import (
	"github.com/inkplot/inkplot/pkg/errors"
)

// Default parameter values shared by algorithms.
const (
	// DefaultSize is the default frame size (and lattice resolution) in cells.
	DefaultSize = 500

	// DefaultSteps is the default simulation step budget.
	DefaultSteps = 500

	// DefaultMargin is the fraction of the half-frame the artwork may fill
	// before growth stops.
	DefaultMargin = 0.85

	// DefaultSeed is the default random seed for reproducibility.
	DefaultSeed = uint64(42)

	// DefaultStrokeWidth is the default pen width in drawing units.
	DefaultStrokeWidth = 1.5
)

// Params carries every knob an algorithm can read. Algorithm-specific
// values live in Extra under names the algorithm documents; presets map
// directly onto this struct.
type Params struct {
	Size        int                `json:"size,omitempty" toml:"size"`
	Steps       int                `json:"steps,omitempty" toml:"steps"`
	Seed        uint64             `json:"seed,omitempty" toml:"seed"`
	Margin      float64            `json:"margin,omitempty" toml:"margin"`
	StrokeWidth float64            `json:"stroke_width,omitempty" toml:"stroke_width"`
	Extra       map[string]float64 `json:"extra,omitempty" toml:"extra"`
}

// SetDefaults fills zero-valued fields with the package defaults.
// It is idempotent.
func (p *Params) SetDefaults() {
	if p.Size == 0 {
		p.Size = DefaultSize
	}
	if p.Steps == 0 {
		p.Steps = DefaultSteps
	}
	if p.Seed == 0 {
		p.Seed = DefaultSeed
	}
	if p.Margin == 0 {
		p.Margin = DefaultMargin
	}
	if p.StrokeWidth == 0 {
		p.StrokeWidth = DefaultStrokeWidth
	}
}

// Validate checks that the parameters are usable.
func (p *Params) Validate() error {
	if p.Size < 16 {
		return errors.New(errors.ErrCodeInvalidParam, "size must be at least 16, got %d", p.Size)
	}
	if p.Steps < 1 {
		return errors.New(errors.ErrCodeInvalidParam, "steps must be positive, got %d", p.Steps)
	}
	if p.Margin <= 0 || p.Margin > 1 {
		return errors.New(errors.ErrCodeInvalidParam, "margin must be in (0, 1], got %g", p.Margin)
	}
	if p.StrokeWidth <= 0 {
		return errors.New(errors.ErrCodeInvalidParam, "stroke width must be positive, got %g", p.StrokeWidth)
	}
	return nil
}

// ExtraOr returns the named extra parameter, or def when absent.
func (p *Params) ExtraOr(name string, def float64) float64 {
	if v, ok := p.Extra[name]; ok {
		return v
	}
	return def
}

// Merge overlays non-zero fields of o onto a copy of p and returns it.
// Extra maps are merged key-wise, with o winning on conflicts.
func (p Params) Merge(o Params) Params {
	if o.Size != 0 {
		p.Size = o.Size
	}
	if o.Steps != 0 {
		p.Steps = o.Steps
	}
	if o.Seed != 0 {
		p.Seed = o.Seed
	}
	if o.Margin != 0 {
		p.Margin = o.Margin
	}
	if o.StrokeWidth != 0 {
		p.StrokeWidth = o.StrokeWidth
	}
	if len(o.Extra) > 0 {
		merged := make(map[string]float64, len(p.Extra)+len(o.Extra))
		for k, v := range p.Extra {
			merged[k] = v
		}
		for k, v := range o.Extra {
			merged[k] = v
		}
		p.Extra = merged
	}
	return p
}
