package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"pygraph/internal/config"
	"pygraph/internal/graph"
	"pygraph/internal/loader"
	"pygraph/internal/logging"
	"pygraph/internal/version"
)

var (
	// outputPath is the CLI -o/--output flag value
	outputPath string
	// filenameRegex is the CLI -r/--regex flag value
	filenameRegex string
	// directoryMode is the CLI -d/--directory flag value
	directoryMode bool
	// renderFormat is the CLI --format flag value
	renderFormat string
	// searchPaths is the CLI --search-path flag value
	searchPaths []string
	// logLevel and logFormat are the CLI logging flags
	logLevel  string
	logFormat string
)

var rootCmd = &cobra.Command{
	Use:   "pygraph [flags] module...",
	Short: "Build an import graph for Python modules",
	Long: `pygraph loads one or more Python modules, records which modules import
which other modules, and renders the result as a directed graph.

Module arguments are dotted names resolved against the current directory
and any configured search paths. With --directory, arguments are
directories expanded into module lists (honoring __init__.py package
markers).

Examples:
  pygraph mypackage
  pygraph mypackage.core mypackage.cli -o imports.dot
  pygraph -d src/ -r '.*/src/.*'
  pygraph mypackage --format=json`,
	Version:       version.Version,
	Args:          cobra.MinimumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runTrace,
}

func init() {
	rootCmd.SetVersionTemplate("pygraph version {{.Version}}\n")

	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "",
		"Write the graph to this file instead of stdout (.zst compresses)")
	rootCmd.Flags().StringVarP(&filenameRegex, "regex", "r", "",
		"Keep only edges whose endpoints' source files fully match this pattern")
	rootCmd.Flags().BoolVarP(&directoryMode, "directory", "d", false,
		"Treat arguments as directories to scan for modules")
	rootCmd.Flags().StringVar(&renderFormat, "format", "",
		"Output format (dot, json, yaml)")
	rootCmd.Flags().StringArrayVar(&searchPaths, "search-path", nil,
		"Additional module search root (repeatable)")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "",
		"Log level (debug, info, warn, error)")
	rootCmd.Flags().StringVar(&logFormat, "log-format", "",
		"Log format (human, json)")
}

func runTrace(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return err
	}
	applyFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	format, err := graph.ParseFormat(cfg.Output.Format)
	if err != nil {
		return err
	}

	logger := logging.NewLogger(logging.Config{
		Format: logging.Format(cfg.Logging.Format),
		Level:  logging.LogLevel(cfg.Logging.Level),
	}).With(map[string]interface{}{
		"run": uuid.NewString()[:8],
	})

	g, err := loader.Trace(cmd.Context(), args, loader.Options{
		DirectoryMode:    directoryMode,
		FilenameRegex:    cfg.Filter.FilenameRegex,
		SearchPaths:      cfg.Loader.SearchPaths,
		IgnoreDirs:       cfg.Loader.IgnoreDirs,
		MaxFileSizeBytes: int64(cfg.Loader.MaxFileSizeBytes),
		Logger:           logger,
	})
	if err != nil {
		return err
	}

	if outputPath != "" {
		return g.Save(outputPath, format)
	}

	text, err := g.Render(format)
	if err != nil {
		return err
	}
	fmt.Print(text)

	return nil
}

// applyFlags overlays explicitly set CLI flags onto the loaded config.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("regex") {
		cfg.Filter.FilenameRegex = filenameRegex
	}
	if cmd.Flags().Changed("format") {
		cfg.Output.Format = renderFormat
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Logging.Level = logLevel
	}
	if cmd.Flags().Changed("log-format") {
		cfg.Logging.Format = logFormat
	}
	if len(searchPaths) > 0 {
		cfg.Loader.SearchPaths = append(cfg.Loader.SearchPaths, searchPaths...)
	}
}
