// Package gallery persists generated artworks and serves them over HTTP.
//
// An artwork is a pipeline run that was kept: its metadata (algorithm,
// seed, scheme, parameters) plus the rendered artifact files. Metadata
// lives in a Store; artifact bytes live on disk next to it.
//
// Two store backends exist:
//   - file: JSON documents in a local directory, for single-machine use
//   - mongo: MongoDB collection, for shared deployments
//
// # Usage
//
//	store, err := gallery.NewFileStore("")
//	if err != nil {
//	    return err
//	}
//	g, err := gallery.New(store, runner, "")
//
//	artwork, err := g.Add(ctx, opts)   // run the pipeline and keep the result
//	data, err := g.Artifact(ctx, artwork.ID, "svg")
//
// The HTTP server exposes the gallery as a small JSON API plus an HTML
// index page:
//
//	srv := gallery.NewServer(g, logger)
//	http.ListenAndServe(":8080", srv)
package gallery

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/inkplot/inkplot/pkg/art"
	"github.com/inkplot/inkplot/pkg/errors"
	"github.com/inkplot/inkplot/pkg/pipeline"
)

// Artwork is a stored pipeline result.
type Artwork struct {
	ID          string     `json:"id" bson:"_id"`
	Algorithm   string     `json:"algorithm" bson:"algorithm"`
	Preset      string     `json:"preset,omitempty" bson:"preset,omitempty"`
	Scheme      string     `json:"scheme" bson:"scheme"`
	Params      art.Params `json:"params" bson:"params"`
	DrawingHash string     `json:"drawing_hash" bson:"drawing_hash"`
	CreatedAt   time.Time  `json:"created_at" bson:"created_at"`

	// Formats lists the artifact formats stored for this artwork.
	Formats []string `json:"formats" bson:"formats"`
}

// Store is the metadata storage backend. Artifact bytes are stored
// separately by the Gallery.
type Store interface {
	// Put stores or replaces an artwork record.
	Put(ctx context.Context, a *Artwork) error

	// Get retrieves an artwork by ID. Returns ErrCodeArtworkNotFound
	// for unknown IDs.
	Get(ctx context.Context, id string) (*Artwork, error)

	// List returns all artworks, newest first.
	List(ctx context.Context) ([]*Artwork, error)

	// Delete removes an artwork record. Deleting a missing artwork is
	// not an error.
	Delete(ctx context.Context, id string) error

	// Close releases store resources.
	Close(ctx context.Context) error
}

// Gallery ties a metadata store, an artifact directory, and a pipeline
// runner together.
type Gallery struct {
	store  Store
	files  *artifactDir
	runner *pipeline.Runner
}

// New creates a gallery backed by store, keeping artifact files in dir.
// An empty dir selects the default data directory. A nil runner
// disables Add; Get, List, Artifact and Delete still work.
func New(store Store, runner *pipeline.Runner, dir string) (*Gallery, error) {
	files, err := newArtifactDir(dir)
	if err != nil {
		return nil, err
	}
	return &Gallery{store: store, files: files, runner: runner}, nil
}

// Add runs the pipeline with the given options and stores the result.
func (g *Gallery) Add(ctx context.Context, opts pipeline.Options) (*Artwork, error) {
	if g.runner == nil {
		return nil, errors.New(errors.ErrCodeInternal, "gallery has no pipeline runner")
	}
	result, err := g.runner.Execute(ctx, opts)
	if err != nil {
		return nil, err
	}
	return g.AddResult(ctx, opts, result)
}

// AddResult stores an already-computed pipeline result.
func (g *Gallery) AddResult(ctx context.Context, opts pipeline.Options, result *pipeline.Result) (*Artwork, error) {
	a := &Artwork{
		ID:          uuid.NewString(),
		Algorithm:   opts.Algorithm,
		Preset:      opts.Preset,
		Scheme:      opts.Scheme,
		Params:      opts.Params,
		DrawingHash: result.DrawingHash,
		CreatedAt:   time.Now().UTC(),
	}
	for format := range result.Artifacts {
		a.Formats = append(a.Formats, format)
	}
	sort.Strings(a.Formats)

	for format, data := range result.Artifacts {
		if err := g.files.write(a.ID, format, data); err != nil {
			return nil, err
		}
	}
	if err := g.store.Put(ctx, a); err != nil {
		g.files.remove(a.ID, a.Formats)
		return nil, err
	}
	return a, nil
}

// Get retrieves an artwork record by ID.
func (g *Gallery) Get(ctx context.Context, id string) (*Artwork, error) {
	return g.store.Get(ctx, id)
}

// List returns all stored artworks, newest first.
func (g *Gallery) List(ctx context.Context) ([]*Artwork, error) {
	return g.store.List(ctx)
}

// Artifact returns the rendered bytes for one format of an artwork.
func (g *Gallery) Artifact(ctx context.Context, id, format string) ([]byte, error) {
	a, err := g.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	for _, f := range a.Formats {
		if f == format {
			return g.files.read(id, format)
		}
	}
	return nil, errors.New(errors.ErrCodeNotFound, "artwork %s has no %s artifact", id, format)
}

// Delete removes an artwork and its artifact files.
func (g *Gallery) Delete(ctx context.Context, id string) error {
	a, err := g.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, errors.ErrCodeArtworkNotFound) {
			return nil
		}
		return err
	}
	if err := g.store.Delete(ctx, id); err != nil {
		return err
	}
	g.files.remove(id, a.Formats)
	return nil
}

// Close releases the metadata store.
func (g *Gallery) Close(ctx context.Context) error {
	return g.store.Close(ctx)
}
