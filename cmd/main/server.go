package main

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/syzygy-tables/tablesinfo/pkg/assets"
	"github.com/syzygy-tables/tablesinfo/pkg/markup"
	"github.com/syzygy-tables/tablesinfo/pkg/pages"
	"github.com/syzygy-tables/tablesinfo/pkg/tablebase"
)

// sitemap lists the pages served by this binary.
var sitemap = []string{"/legal", "/metrics", "/stats", "/endgames"}

type Server struct {
	config    *Config
	db        *sql.DB
	logger    *slog.Logger
	assets    *assets.Resolver
	store     *tablebase.Store
	metrics   *RenderMetrics
	statsAPI  *StatsAPI
	serverAPI *ServerAPI
	siteMux   chi.Router
	adminMux  chi.Router
}

func NewServer(config *Config, logger *slog.Logger, db *sql.DB, actionChan chan string) (*Server, error) {
	store := tablebase.NewStore(db)

	if config.StatsFile != "" {
		n, err := importStats(store, config.StatsFile)
		if err != nil {
			return nil, err
		}
		logger.Info("Imported endgame stats", "file", config.StatsFile, "endgames", n)
	}

	server := &Server{
		config:    config,
		db:        db,
		logger:    logger,
		assets:    assets.NewResolver(config.StaticDir),
		store:     store,
		metrics:   NewRenderMetrics(),
		statsAPI:  NewStatsAPI(db, logger, store),
		serverAPI: NewServerAPI(config, actionChan, logger),
		siteMux:   chi.NewRouter(),
		adminMux:  chi.NewRouter(),
	}

	site := server.siteMux
	site.Use(middleware.RealIP, requestLogger(logger), middleware.Recoverer)
	site.Get("/legal", server.page("legal", pages.Legal))
	site.Get("/metrics", server.page("metrics", pages.Metrics))
	site.Get("/stats", server.page("stats", pages.Stats))
	site.Get("/endgames", server.page("endgames", func(c pages.Context) (markup.Node, error) {
		return pages.Endgames(c, config.EndgamesArchiveKiB)
	}))
	site.Get("/stats.json", server.handleAllStats)
	site.Get("/stats/{file}", server.handleEndgameStats)
	site.Get("/endgames.pgn", server.handleEndgamesArchive)
	site.Get("/sitemap.txt", handleSitemap)
	staticFs := http.FileServer(http.Dir(config.StaticDir))
	site.Handle(assets.Prefix+"*", http.StripPrefix(assets.Prefix, staticFs))

	admin := server.adminMux
	admin.Use(requestLogger(logger), middleware.Recoverer)
	// Unauthenticated so that container health checks and scrapers work.
	admin.Get("/api/health", server.serverAPI.handleHealthCheck)
	admin.Handle("/metrics", server.metrics.Handler())
	admin.Group(func(r chi.Router) {
		r.Use(server.serverAPI.Authenticate)
		server.serverAPI.RegisterRoutes(r)
		server.statsAPI.RegisterRoutes(r)
	})

	return server, nil
}

func importStats(store *tablebase.Store, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open stats file: %w", err)
	}
	defer func(f *os.File) {
		_ = f.Close()
	}(f)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	n, err := store.Import(ctx, f)
	if err != nil {
		return 0, fmt.Errorf("failed to import stats: %w", err)
	}
	return n, nil
}

// page adapts a page builder to an HTTP handler. The document is rendered
// into a buffer first so that a failed build still yields a clean 500.
func (s *Server) page(name string, build func(pages.Context) (markup.Node, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		var buf bytes.Buffer
		node, err := build(pages.Context{Development: s.config.Development, Assets: s.assets})
		if err == nil {
			err = markup.Render(&buf, node)
		}
		s.metrics.ObserveRender(name, time.Since(start), err)
		if err != nil {
			s.logger.Error("Failed to render page", "page", name, "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		s.logger.Debug("Rendered page", "page", name, "duration", time.Since(start))

		if err = s.statsAPI.RecordHit(r.Context(), r.URL.Path); err != nil {
			s.logger.Warn("Failed to record page hit", "page", name, "error", err)
		}
		setPageHeaders(w)
		_, _ = buf.WriteTo(w)
	}
}

func setPageHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=600")
}

func (s *Server) handleAllStats(w http.ResponseWriter, r *http.Request) {
	all, err := s.store.All(r.Context())
	if err != nil {
		s.logger.Error("Failed to load endgame stats", "error", err)
		respondWithError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	writeRawJSON(w, all)
}

// handleEndgameStats serves /stats/<signature>.json, redirecting to the
// normalized signature when needed.
func (s *Server) handleEndgameStats(w http.ResponseWriter, r *http.Request) {
	name, ok := strings.CutSuffix(chi.URLParam(r, "file"), ".json")
	if !ok {
		http.NotFound(w, r)
		return
	}
	signature, err := tablebase.NormalizeSignature(name)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	if signature != name {
		http.Redirect(w, r, "/stats/"+signature+".json", http.StatusMovedPermanently)
		return
	}

	stats, err := s.store.Get(r.Context(), signature)
	if errors.Is(err, tablebase.ErrNotFound) {
		respondWithError(w, http.StatusNotFound, "Endgame not found")
		return
	}
	if err != nil {
		s.logger.Error("Failed to load endgame stats", "signature", signature, "error", err)
		respondWithError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	writeRawJSON(w, stats)
}

func (s *Server) handleEndgamesArchive(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/x-chess-pgn")
	http.ServeFile(w, r, filepath.Join(s.config.StaticDir, "endgames.pgn"))
}

func handleSitemap(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	base := "https://" + r.Host
	for _, p := range sitemap {
		_, _ = fmt.Fprintln(w, base+p)
	}
}

func writeRawJSON(w http.ResponseWriter, data []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	_, _ = w.Write(data)
}
