package cmd

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/joetifa2003/pagecraft"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve a rendered demo page with metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Optional .env for local overrides; absence is fine.
		_ = godotenv.Load()

		if addr := os.Getenv("PAGECRAFT_ADDR"); addr != "" && !cmd.Flags().Changed("addr") {
			serveAddr = addr
		}

		logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

		renderer, err := pagecraft.New(
			pagecraft.WithLogger(logger),
			pagecraft.WithFallbackTitle(func() string {
				return filepath.Base(os.Args[0])
			}),
			pagecraft.WithDefaults(map[string]any{
				"meta": map[string]any{
					"generator": "pagecraft",
				},
			}),
		)
		if err != nil {
			return err
		}

		reg := prom.NewRegistry()
		renders := prom.NewCounterVec(prom.CounterOpts{
			Namespace: "pagecraft",
			Name:      "renders_total",
			Help:      "Rendered documents by outcome",
		}, []string{"outcome"})
		renderDuration := prom.NewHistogram(prom.HistogramOpts{
			Namespace: "pagecraft",
			Name:      "render_duration_seconds",
			Help:      "Document render duration",
			Buckets:   prom.DefBuckets,
		})
		reg.MustRegister(renders, renderDuration)

		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
			tw := pagecraft.NewTrackWriter(w)
			renderer.SetCacheHeaders(tw, "public, max-age=60", time.Minute)

			page := renderer.NewPage().
				SetTitle("Pagecraft").
				SetTitleSuffix("demo").
				SetBodyID("demo").
				SetMetaTag("description", "pagecraft demo page").
				SetOpenGraph("title", "Pagecraft").
				AddMarkdown("# Pagecraft\n\nRendered at request time from " + r.URL.Path + ".\n")

			t1 := time.Now()
			_, err := page.Emit(tw)
			renderDuration.Observe(time.Since(t1).Seconds())
			if err != nil {
				renders.WithLabelValues("error").Inc()
				logger.Error("emit failed", slog.String("err", err.Error()))
				http.Error(w, "internal server error", http.StatusInternalServerError)
				return
			}
			renders.WithLabelValues("ok").Inc()
		})

		logger.Info("serving demo page", slog.String("addr", serveAddr))
		return http.ListenAndServe(serveAddr, mux)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "listen address")
	rootCmd.AddCommand(serveCmd)
}
