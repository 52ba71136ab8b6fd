// Package cache provides the caching layer for generated drawings and
// rendered artifacts.
//
// Generation is deterministic per seed, so cached entries never go
// stale; TTLs exist only to bound disk usage. Two backends are
// provided: [FileCache] for CLI usage and [RedisCache] for a shared
// gallery deployment, plus [NullCache] to disable caching entirely.
//
// Keys are produced by a [Keyer] so that every component derives them
// the same way. [ScopedKeyer] prefixes keys for namespace isolation.
package cache

import (
	"context"
	"time"
)

// TTLs per entry kind. Entries are content-addressed and never stale;
// expiry only reclaims disk space.
const (
	// TTLDrawing applies to generated drawings (JSON-encoded).
	TTLDrawing = 30 * 24 * time.Hour

	// TTLArtifact applies to rendered output bytes (SVG, PNG, JSON).
	TTLArtifact = 30 * 24 * time.Hour

	// TTLTrace applies to traced drawings derived from input images.
	TTLTrace = 7 * 24 * time.Hour
)

// Cache stores opaque bytes under string keys.
//
// Get returns (data, true, nil) on a hit and (nil, false, nil) on a
// miss; errors are reserved for backend failures. Implementations must
// be safe for concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Keyer derives cache keys for the pipeline stages. Centralizing key
// derivation keeps the CLI and the gallery server cache-compatible.
type Keyer interface {
	// DrawingKey identifies a generated drawing.
	DrawingKey(algorithm string, opts DrawingKeyOpts) string

	// ArtifactKey identifies a rendered artifact of a painted drawing.
	ArtifactKey(drawingHash string, opts ArtifactKeyOpts) string

	// TraceKey identifies a drawing traced from an input image.
	TraceKey(imageHash string, opts TraceKeyOpts) string
}

// DrawingKeyOpts carries everything that changes a generated drawing.
// StrokeWidth is included because algorithms bake it into each path.
type DrawingKeyOpts struct {
	Size        int
	Steps       int
	Seed        uint64
	Margin      float64
	StrokeWidth float64
	Extra       map[string]float64
}

// ArtifactKeyOpts carries everything that changes a rendered artifact
// beyond the drawing itself.
type ArtifactKeyOpts struct {
	Format      string
	Scheme      string
	StrokeWidth float64
}

// TraceKeyOpts carries every knob that changes a traced drawing.
type TraceKeyOpts struct {
	Mode             string // "contour" or "line"
	Sigma            float64
	LowThreshold     float64
	HighThreshold    float64
	Invert           bool
	RemoveBackground bool
	Epsilon          float64
	Density          int
	StrokeWidth      float64
	MaxSide          int
}

// DefaultKeyer hashes key components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer { return &DefaultKeyer{} }

func (*DefaultKeyer) DrawingKey(algorithm string, opts DrawingKeyOpts) string {
	return hashKey("drawing", algorithm, opts)
}

func (*DefaultKeyer) ArtifactKey(drawingHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", drawingHash, opts)
}

func (*DefaultKeyer) TraceKey(imageHash string, opts TraceKeyOpts) string {
	return hashKey("trace", imageHash, opts)
}
