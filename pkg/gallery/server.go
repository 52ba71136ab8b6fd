package gallery

import (
	"encoding/json"
	"html/template"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/inkplot/inkplot/pkg/errors"
	"github.com/inkplot/inkplot/pkg/pipeline"
)

// Server exposes a gallery over HTTP: a JSON API under /api plus an
// HTML index page with inline previews.
type Server struct {
	gallery *Gallery
	logger  *log.Logger
	router  chi.Router
}

// NewServer creates the HTTP server. A nil logger selects log.Default().
func NewServer(g *Gallery, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{gallery: g, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/", s.handleIndex)
	r.Get("/artworks/{id}/{format}", s.handleArtifact)

	r.Route("/api", func(r chi.Router) {
		r.Get("/artworks", s.handleList)
		r.Post("/artworks", s.handleCreate)
		r.Get("/artworks/{id}", s.handleGet)
		r.Delete("/artworks/{id}", s.handleDelete)
	})

	s.router = r
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start))
	})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	artworks, err := s.gallery.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	if artworks == nil {
		artworks = []*Artwork{}
	}
	s.writeJSON(w, http.StatusOK, artworks)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	a, err := s.gallery.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, a)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var opts pipeline.Options
	if err := json.NewDecoder(r.Body).Decode(&opts); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidParam, err, "parse request body"))
		return
	}
	a, err := s.gallery.Add(r.Context(), opts)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, a)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.gallery.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

var artifactContentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatJSON: "application/json",
}

func (s *Server) handleArtifact(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	format := chi.URLParam(r, "format")

	contentType, ok := artifactContentTypes[format]
	if !ok {
		s.writeError(w, errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q", format))
		return
	}
	data, err := s.gallery.Artifact(r.Context(), id, format)
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.Write(data)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	artworks, err := s.gallery.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, artworks); err != nil {
		s.logger.Error("render index", "error", err)
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	status := http.StatusInternalServerError
	switch code {
	case errors.ErrCodeInvalidParam, errors.ErrCodeInvalidFormat,
		errors.ErrCodeInvalidScheme, errors.ErrCodeInvalidPreset,
		errors.ErrCodeInvalidImage:
		status = http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeArtworkNotFound,
		errors.ErrCodeAlgorithmNotFound, errors.ErrCodePresetNotFound,
		errors.ErrCodeFileNotFound:
		status = http.StatusNotFound
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
	}
	s.writeJSON(w, status, map[string]string{
		"error": errors.UserMessage(err),
		"code":  string(code),
	})
}

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>inkplot gallery</title>
<style>
  body { font-family: sans-serif; margin: 2rem; background: #111; color: #eee; }
  h1 { font-weight: normal; }
  .grid { display: grid; grid-template-columns: repeat(auto-fill, minmax(240px, 1fr)); gap: 1rem; }
  .card { background: #1b1b1b; border-radius: 6px; padding: 0.75rem; }
  .card img { width: 100%; border-radius: 4px; background: #000; }
  .meta { font-size: 0.8rem; color: #999; margin-top: 0.5rem; }
</style>
</head>
<body>
<h1>inkplot gallery</h1>
{{if not .}}<p>No artworks yet.</p>{{end}}
<div class="grid">
{{range .}}
  <div class="card">
    <a href="/artworks/{{.ID}}/svg"><img src="/artworks/{{.ID}}/svg" alt="{{.Algorithm}}"></a>
    <div class="meta">{{.Algorithm}} · seed {{.Params.Seed}} · {{.Scheme}}<br>{{.CreatedAt.Format "2006-01-02 15:04"}}</div>
  </div>
{{end}}
</div>
</body>
</html>
`))
