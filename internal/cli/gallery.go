package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/inkplot/inkplot/pkg/gallery"
)

// galleryOpts holds the command-line flags for the gallery command.
type galleryOpts struct {
	addr     string // listen address for serve
	dir      string // gallery data directory
	mongoURI string // MongoDB connection string; empty selects file storage
	mongoDB  string // MongoDB database name
	noCache  bool   // disable pipeline caching
}

// galleryCommand creates the gallery command group.
func (c *CLI) galleryCommand() *cobra.Command {
	var opts galleryOpts

	cmd := &cobra.Command{
		Use:   "gallery",
		Short: "Browse and serve stored artworks",
	}

	cmd.PersistentFlags().StringVar(&opts.dir, "dir", "", "gallery data directory (default ~/.local/share/inkplot/gallery)")
	cmd.PersistentFlags().StringVar(&opts.mongoURI, "mongo-uri", "", "MongoDB connection string (default: local file storage)")
	cmd.PersistentFlags().StringVar(&opts.mongoDB, "mongo-db", "", "MongoDB database name (default inkplot)")
	cmd.PersistentFlags().BoolVar(&opts.noCache, "no-cache", false, "disable pipeline caching")

	cmd.AddCommand(c.galleryServeCommand(&opts))
	cmd.AddCommand(c.galleryListCommand(&opts))

	return cmd
}

// galleryServeCommand creates the "gallery serve" subcommand.
func (c *CLI) galleryServeCommand(opts *galleryOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the gallery over HTTP",
		Long: `Serve the gallery over HTTP.

Serves an HTML index with previews at /, raw artifacts at
/artworks/{id}/{format}, and a JSON API under /api/artworks. New
artworks can be generated remotely with POST /api/artworks.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGalleryServe(cmd.Context(), opts)
		},
	}
	cmd.Flags().StringVar(&opts.addr, "addr", ":8080", "listen address")
	return cmd
}

func (c *CLI) runGalleryServe(ctx context.Context, opts *galleryOpts) error {
	g, err := c.openGallery(ctx, opts)
	if err != nil {
		return err
	}
	defer g.Close(context.Background())

	srv := &http.Server{
		Addr:              opts.addr,
		Handler:           gallery.NewServer(g, c.Logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	printInfo("Serving gallery on %s", opts.addr)
	c.Logger.Info("gallery listening", "addr", opts.addr)
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// galleryListCommand creates the "gallery list" subcommand.
func (c *CLI) galleryListCommand(opts *galleryOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored artworks",
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := c.openGallery(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer g.Close(context.Background())

			artworks, err := g.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(artworks) == 0 {
				printInfo("Gallery is empty")
				printNextStep("Generate and save an artwork", "inkplot generate snowflake --save")
				return nil
			}
			for _, a := range artworks {
				fmt.Printf("%s %s\n",
					StyleHighlight.Render(a.ID),
					StyleDim.Render(fmt.Sprintf("%s · seed %d · %s · %s",
						a.Algorithm, a.Params.Seed, a.Scheme,
						a.CreatedAt.Format("2006-01-02 15:04"))))
			}
			return nil
		},
	}
}

// openGallery builds a gallery from flags. The pipeline runner is
// attached so the HTTP API can generate new artworks.
func (c *CLI) openGallery(ctx context.Context, opts *galleryOpts) (*gallery.Gallery, error) {
	var store gallery.Store
	if opts.mongoURI != "" {
		mongoStore, err := gallery.NewMongoStore(ctx, opts.mongoURI, opts.mongoDB)
		if err != nil {
			return nil, err
		}
		store = mongoStore
	} else {
		fileStore, err := gallery.NewFileStore(opts.dir)
		if err != nil {
			return nil, err
		}
		store = fileStore
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return nil, err
	}
	return gallery.New(store, runner, opts.dir)
}
