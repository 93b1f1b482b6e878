// Package api exposes the two analysis workflows over HTTP. The
// pipelines themselves know nothing about uploads or rendering; this
// layer parses multipart files into tables, runs a pipeline, and
// serializes the result (JSON envelope or CSV attachment).
package api

import (
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/klauspost/compress/zstd"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/openprocure/procdash/internal/fx"
	"github.com/openprocure/procdash/internal/infra"
	"github.com/openprocure/procdash/internal/wwp"
)

// NewRouter wires all dependencies and returns the chi router.
func NewRouter(cfg *infra.Config) http.Handler {
	r := chi.NewRouter()

	r.Use(zerologMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(2 * time.Minute))

	compressor := middleware.NewCompressor(5, "application/json", "text/csv")
	compressor.SetEncoder("zstd", func(w io.Writer, level int) io.Writer {
		zw, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(level)))
		if err != nil {
			return nil
		}
		return zw
	})
	r.Use(compressor.Handler)

	h := &handler{
		conv:          fx.New(cfg.Rates),
		rules:         rulesFromConfig(cfg.WWP),
		maxUploadByte: cfg.Server.MaxUploadMB << 20,
	}

	r.Get("/healthz", handleHealthz)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/wwp", func(r chi.Router) {
		r.Post("/analyze", h.wwpAnalyze)
		r.Post("/export", h.wwpExport)
	})
	r.Route("/api/opo", func(r chi.Router) {
		r.Post("/analyze", h.opoAnalyze)
		r.Post("/export", h.opoExport)
	})

	return r
}

func handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func rulesFromConfig(cfg infra.WWPConfig) wwp.Rules {
	return wwp.Rules{
		Sites:            cfg.Sites,
		CategoryPrefixes: cfg.CategoryPrefixes,
		MinSpend:         cfg.MinSpend,
		ExcludedRegion:   cfg.ExcludedRegion,
		MaxOpportunity:   cfg.MaxOpportunity,
		MinQtyProjection: cfg.MinQtyProjection,
	}
}
