package cmd

import (
	"log"

	"stegochat-backend/handlers"
	"stegochat-backend/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the steganography HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if port, _ := cmd.Flags().GetInt("port"); port != 0 {
			cfg.Server.Port = port
		}

		var m *metrics.Metrics
		var gatherer prometheus.Gatherer
		if cfg.Metrics.Enabled {
			reg := prometheus.NewRegistry()
			reg.MustRegister(prometheus.NewGoCollector(), prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}))
			m = metrics.NewMetrics(reg)
			gatherer = reg
		}

		router := handlers.NewRouter(cfg, m, gatherer)

		log.Printf("Server starting on %s", cfg.Addr())
		log.Printf("API endpoints:")
		log.Printf("  POST /api/v1/stego/embed   - Embed a message into an image (returns stego PNG)")
		log.Printf("  POST /api/v1/stego/extract - Extract a message from a stego image")
		log.Printf("  POST /api/v1/stego/inspect - Report image format and capacity")
		log.Printf("  GET  /api/v1/health        - Health check")
		if cfg.Metrics.Enabled {
			log.Printf("  GET  %-22s - Prometheus metrics", cfg.Metrics.Path)
		}
		if cfg.Stego.AllowTruncation {
			log.Printf("Extraction truncates payloads that overrun the image instead of failing")
		}

		return router.Run(cfg.Addr())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 0, "Port to listen on (overrides config and PORT)")
}
