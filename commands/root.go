package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/penwyp/go-eld-log/internal/config"
	"github.com/penwyp/go-eld-log/internal/presentation/formatter"
	"github.com/penwyp/go-eld-log/internal/util"
	"github.com/penwyp/go-eld-log/internal/viewer"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	// Logging related
	debug bool

	// Input and configuration
	dataDir    string
	configPath string

	// Output related
	outputFormat string
	outFile      string
	width        int
	periodEvery  int
	noColor      bool

	// Filtering
	since string
	until string

	concurrency int

	rootCmd = &cobra.Command{
		Use:   "go-eld-log [flags] [FILE...]",
		Short: "Driver daily log (ELD) sheet renderer",
		Long: `go-eld-log draws FMCSA-style driver daily logs from the duty status entries
produced by a trip planner.

Each log is placed on a 24-hour grid with one row per duty status, with
midnight-crossing entries split across the day boundary. Input files may hold
a single daily log, an array of logs, a trip object with a "daily_logs" array,
or (with a .jsonl extension) one log per line.

Examples:
  go-eld-log trip.json                                 # Draw every log in the terminal
  go-eld-log --dir ./logs --since 2024-03-01           # Draw logs found under a directory
  go-eld-log trip.json -o svg --out trip.svg           # Write an SVG with one sheet per log
  go-eld-log trip.json -o json                         # Dump segments and draw commands
  go-eld-log trip.json -o xlsx --out trip.xlsx         # Export entries to a workbook`,
		Args: cobra.ArbitraryArgs,
		RunE: runRender,
	}
)

const (
	defaultLogFile = "~/.go-eld-log/logs/app.log"
)

func init() {
	// Input data configuration
	rootCmd.PersistentFlags().StringVar(&dataDir, "dir", "",
		"Directory to scan for .json and .jsonl log files")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Config file path (default ~/.go-eld-log/config.yaml)")

	// Date filtering
	rootCmd.PersistentFlags().StringVar(&since, "since", "",
		"Only include logs on or after this date (YYYY-MM-DD)")
	rootCmd.PersistentFlags().StringVar(&until, "until", "",
		"Only include logs on or before this date (YYYY-MM-DD)")

	// Output configuration
	rootCmd.Flags().StringVarP(&outputFormat, "output", "o", "text",
		"Output format ("+strings.Join(formatter.Formats, ", ")+")")
	rootCmd.Flags().StringVar(&outFile, "out", "",
		"Write output to this file instead of stdout")
	rootCmd.PersistentFlags().IntVar(&width, "width", 0,
		"Terminal width for the text grid (0 = detect)")
	rootCmd.Flags().IntVar(&periodEvery, "period-every", 6,
		"Draw an AM/PM label every n hours (0 = none)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false,
		"Disable colored output")

	// System and debugging
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"Enable debug mode")
	rootCmd.PersistentFlags().IntVar(&concurrency, "concurrency", 0,
		"Number of files parsed and logs rendered in parallel (0 = config or CPU count)")
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := setup(cmd, args)
	if err != nil {
		return err
	}
	defer util.CloseLogger()

	v, err := viewer.New(cfg)
	if err != nil {
		return err
	}

	if outFile == "" {
		w := cmd.OutOrStdout()
		if cfg.OutputFormat == "xlsx" && isTerminal(w) {
			return fmt.Errorf("xlsx output is binary; use --out or redirect stdout")
		}
		return v.Run(w)
	}

	color.NoColor = true
	path := expandPath(outFile)
	if err := writeOutput(path, v.Run); err != nil {
		return err
	}
	util.LogInfof("Wrote %s output to %s", cfg.OutputFormat, path)
	return nil
}

// writeOutput runs render against a temporary file next to path and moves it
// into place once it is complete. A failed run leaves any existing file at
// path untouched.
func writeOutput(path string, render func(io.Writer) error) (err error) {
	dir := filepath.Dir(path)
	if err := ensureDir(dir); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if err != nil {
			os.Remove(f.Name())
		}
	}()

	if err := render(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Chmod(0644); err != nil {
		f.Close()
		return fmt.Errorf("failed to set output file mode: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}
	if err := os.Rename(f.Name(), path); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// setup loads the config file, starts logging and builds the viewer
// configuration. Flags that were set explicitly win over the config file.
func setup(cmd *cobra.Command, args []string) (*viewer.Config, error) {
	path := config.DefaultPath()
	if configPath != "" {
		path = expandPath(configPath)
	}
	appConfig, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if err := initLogging(appConfig); err != nil {
		return nil, err
	}
	util.LogDebugf("Configuration loaded from %s", path)

	if noColor {
		color.NoColor = true
	}

	opts := appConfig.RenderOptions()
	if flag := cmd.Flags().Lookup("period-every"); flag != nil && flag.Changed {
		if periodEvery < 0 {
			return nil, fmt.Errorf("period-every must not be negative: %d", periodEvery)
		}
		opts.PeriodLabelEvery = periodEvery
	}

	workers := appConfig.Render.Concurrency
	if concurrency > 0 {
		workers = concurrency
	}

	files := make([]string, 0, len(args))
	for _, arg := range args {
		files = append(files, expandPath(arg))
	}
	dir := ""
	if dataDir != "" {
		dir = expandPath(dataDir)
	}

	// Subcommands pick their own output; only the root command has --output.
	format := "text"
	if cmd.Flags().Lookup("output") != nil {
		format = outputFormat
	}

	return &viewer.Config{
		Files:         files,
		DataDir:       dir,
		OutputFormat:  format,
		Since:         since,
		Until:         until,
		Concurrency:   workers,
		CacheSize:     appConfig.Render.CacheSize,
		Width:         width,
		Geometry:      appConfig.GridGeometry(),
		Options:       opts,
		StatusAliases: appConfig.StatusAliases,
	}, nil
}

func initLogging(appConfig *config.Config) error {
	logLevel := appConfig.Logging.Level
	if debug {
		logLevel = "debug"
	}

	logFile := appConfig.Logging.File
	if logFile == "" {
		logFile = defaultLogFile
	}
	logFile = expandPath(logFile)
	if err := ensureDir(filepath.Dir(logFile)); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	opts := util.LoggerOptions{
		Level:  logLevel,
		File:   logFile,
		Format: util.LogFormat(appConfig.Logging.Format),
	}
	if debug {
		opts.Console = os.Stderr
	}
	return util.InitLogger(opts)
}

func Execute() error {
	return rootCmd.Execute()
}

// Helper functions

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return absPath
}

func ensureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}
