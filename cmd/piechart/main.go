// Command piechart renders pie charts described by URL paths, either as an
// HTTP service or one chart at a time from the command line.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/gogpu/piechart"
	"github.com/gogpu/piechart/internal/config"
	"github.com/gogpu/piechart/internal/request"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

var (
	cfg    *config.Config
	logger *slog.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "piechart",
	Short:         "Render pie charts from URL paths",
	SilenceUsage:  true,
	SilenceErrors: true,
	Long: `piechart draws PNG pie charts from paths such as

  300x200/sales.png/north:12;south:7.5;east:3/legend=on;sort=on

Run "piechart serve" to answer such paths over HTTP, or
"piechart render" to write a single chart to a file.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// A .env file is optional.
		_ = godotenv.Load()

		var err error
		configFile, _ := cmd.Flags().GetString("config")
		if configFile != "" {
			cfg, err = config.LoadFromFile(configFile)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if level, _ := cmd.Flags().GetString("log-level"); level != "" {
			cfg.Logging.Level = level
		}

		logger = cfg.Logging.NewLogger(os.Stderr)
		slog.SetDefault(logger)
		piechart.SetLogger(logger)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file path (default: ./config/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level override (debug, info, warn, error)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(renderCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "piechart %s\n", version)
		fmt.Fprintf(out, "  commit:  %s\n", commit)
		fmt.Fprintf(out, "  built:   %s\n", date)
	},
}

// newParser builds a chart path parser from the loaded configuration.
func newParser(c config.ChartConfig) *request.Parser {
	return request.NewParser(request.Defaults{
		Width:     c.DefaultWidth,
		Height:    c.DefaultHeight,
		MaxWidth:  c.MaxWidth,
		MaxHeight: c.MaxHeight,
	})
}

// newRenderer builds a renderer using the configured palette, if any.
func newRenderer(c config.ChartConfig) (*piechart.Renderer, error) {
	var opts []piechart.Option
	if len(c.Palette) > 0 {
		p, err := piechart.NewPalette(c.Palette...)
		if err != nil {
			return nil, fmt.Errorf("invalid chart palette: %w", err)
		}
		opts = append(opts, piechart.WithPalette(p))
	}
	return piechart.NewRenderer(opts...), nil
}
