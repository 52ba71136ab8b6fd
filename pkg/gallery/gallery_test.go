package gallery

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/inkplot/inkplot/pkg/art"
	"github.com/inkplot/inkplot/pkg/errors"
	"github.com/inkplot/inkplot/pkg/pipeline"

	_ "github.com/inkplot/inkplot/pkg/art/scribble"
)

func testArtwork(id string, created time.Time) *Artwork {
	return &Artwork{
		ID:        id,
		Algorithm: "scribble",
		Scheme:    "grayscale",
		Params:    art.Params{Size: 120, Seed: 7},
		CreatedAt: created,
		Formats:   []string{"svg"},
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore() error: %v", err)
	}
	ctx := context.Background()

	want := testArtwork("a1", time.Now().UTC().Truncate(time.Second))
	if err := store.Put(ctx, want); err != nil {
		t.Fatalf("Put() error: %v", err)
	}

	got, err := store.Get(ctx, "a1")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got.Algorithm != want.Algorithm || got.Params.Seed != want.Params.Seed {
		t.Errorf("Get() = %+v, want %+v", got, want)
	}
	if !got.CreatedAt.Equal(want.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, want.CreatedAt)
	}
}

func TestFileStoreGetMissing(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	_, err = store.Get(context.Background(), "nope")
	if !errors.Is(err, errors.ErrCodeArtworkNotFound) {
		t.Errorf("error = %v, want ARTWORK_NOT_FOUND", err)
	}
}

func TestFileStoreListNewestFirst(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	base := time.Now().UTC()

	for i, id := range []string{"old", "mid", "new"} {
		if err := store.Put(ctx, testArtwork(id, base.Add(time.Duration(i)*time.Hour))); err != nil {
			t.Fatal(err)
		}
	}

	artworks, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(artworks) != 3 {
		t.Fatalf("len(List()) = %d, want 3", len(artworks))
	}
	if artworks[0].ID != "new" || artworks[2].ID != "old" {
		t.Errorf("List() order = [%s %s %s], want newest first",
			artworks[0].ID, artworks[1].ID, artworks[2].ID)
	}
}

func TestFileStoreDelete(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	if err := store.Put(ctx, testArtwork("a1", time.Now())); err != nil {
		t.Fatal(err)
	}
	if err := store.Delete(ctx, "a1"); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if _, err := store.Get(ctx, "a1"); !errors.Is(err, errors.ErrCodeArtworkNotFound) {
		t.Errorf("Get() after delete error = %v", err)
	}
	if err := store.Delete(ctx, "a1"); err != nil {
		t.Errorf("Delete() of missing artwork error = %v, want nil", err)
	}
}

func testGallery(t *testing.T) *Gallery {
	t.Helper()
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := pipeline.NewRunner(nil, nil, log.New(io.Discard))
	g, err := New(store, runner, t.TempDir())
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return g
}

func testPipelineOptions() pipeline.Options {
	return pipeline.Options{
		Algorithm: "scribble",
		Params:    art.Params{Size: 120, Seed: 7},
		Formats:   []string{pipeline.FormatSVG},
	}
}

func TestGalleryAdd(t *testing.T) {
	g := testGallery(t)
	ctx := context.Background()

	a, err := g.Add(ctx, testPipelineOptions())
	if err != nil {
		t.Fatalf("Add() error: %v", err)
	}
	if a.ID == "" || a.DrawingHash == "" {
		t.Errorf("artwork missing identity: %+v", a)
	}
	if len(a.Formats) != 1 || a.Formats[0] != "svg" {
		t.Errorf("Formats = %v, want [svg]", a.Formats)
	}

	data, err := g.Artifact(ctx, a.ID, "svg")
	if err != nil {
		t.Fatalf("Artifact() error: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("<svg")) {
		t.Error("stored artifact should be an SVG document")
	}
}

func TestGalleryArtifactUnknownFormat(t *testing.T) {
	g := testGallery(t)
	ctx := context.Background()

	a, err := g.Add(ctx, testPipelineOptions())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := g.Artifact(ctx, a.ID, "png"); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("error = %v, want NOT_FOUND", err)
	}
}

func TestGalleryDelete(t *testing.T) {
	g := testGallery(t)
	ctx := context.Background()

	a, err := g.Add(ctx, testPipelineOptions())
	if err != nil {
		t.Fatal(err)
	}
	if err := g.Delete(ctx, a.ID); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if _, err := g.Get(ctx, a.ID); !errors.Is(err, errors.ErrCodeArtworkNotFound) {
		t.Errorf("Get() after delete error = %v", err)
	}
	if err := g.Delete(ctx, a.ID); err != nil {
		t.Errorf("Delete() of missing artwork error = %v, want nil", err)
	}
}

func testServer(t *testing.T) (*Server, *Gallery) {
	t.Helper()
	g := testGallery(t)
	return NewServer(g, log.New(io.Discard)), g
}

func TestServerListEmpty(t *testing.T) {
	srv, _ := testServer(t)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/artworks", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Errorf("body = %q, want []", got)
	}
}

func TestServerCreateAndGet(t *testing.T) {
	srv, _ := testServer(t)

	body, _ := json.Marshal(testPipelineOptions())
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/artworks", bytes.NewReader(body)))
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", rec.Code, rec.Body.String())
	}

	var created Artwork
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/artworks/"+created.ID, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/artworks/"+created.ID+"/svg", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("artifact status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("artifact content type = %q", ct)
	}
}

func TestServerCreateInvalid(t *testing.T) {
	srv, _ := testServer(t)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/artworks",
		strings.NewReader(`{"algorithm":"nope"}`)))
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown algorithm status = %d, want 404", rec.Code)
	}

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/artworks",
		strings.NewReader("not json")))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad body status = %d, want 400", rec.Code)
	}
}

func TestServerGetMissing(t *testing.T) {
	srv, _ := testServer(t)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/artworks/nope", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	if resp["code"] != string(errors.ErrCodeArtworkNotFound) {
		t.Errorf("error code = %q", resp["code"])
	}
}

func TestServerDelete(t *testing.T) {
	srv, g := testServer(t)
	a, err := g.Add(context.Background(), testPipelineOptions())
	if err != nil {
		t.Fatal(err)
	}

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/artworks/"+a.ID, nil))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d, want 204", rec.Code)
	}
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/artworks/"+a.ID, nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status after delete = %d, want 404", rec.Code)
	}
}

func TestServerIndex(t *testing.T) {
	srv, g := testServer(t)
	if _, err := g.Add(context.Background(), testPipelineOptions()); err != nil {
		t.Fatal(err)
	}

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "scribble") || !strings.Contains(body, "/svg") {
		t.Error("index page should list the stored artwork")
	}
}

func TestServerArtifactBadFormat(t *testing.T) {
	srv, _ := testServer(t)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/artworks/x/gif", nil))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
