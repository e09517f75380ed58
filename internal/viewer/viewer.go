package viewer

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/penwyp/go-eld-log/internal/core/grid"
	"github.com/penwyp/go-eld-log/internal/core/model"
	"github.com/penwyp/go-eld-log/internal/core/timeline"
	"github.com/penwyp/go-eld-log/internal/core/totals"
	"github.com/penwyp/go-eld-log/internal/data/cache"
	"github.com/penwyp/go-eld-log/internal/data/parser"
	"github.com/penwyp/go-eld-log/internal/data/scanner"
	"github.com/penwyp/go-eld-log/internal/presentation/formatter"
	"github.com/penwyp/go-eld-log/internal/util"
)

type Config struct {
	Files        []string
	DataDir      string
	OutputFormat string
	// Since and Until bound log dates (YYYY-MM-DD, inclusive). Logs whose
	// date does not parse are always kept.
	Since         string
	Until         string
	Concurrency   int
	CacheSize     int
	Width         int
	Geometry      grid.Geometry
	Options       grid.Options
	StatusAliases map[string]string
}

// Viewer loads daily logs and renders them into sheets.
type Viewer struct {
	config  *Config
	parser  *parser.Parser
	builder *timeline.Builder
	cache   *cache.RenderCache[formatter.Sheet]
}

func New(config *Config) (*Viewer, error) {
	if config.Concurrency <= 0 {
		config.Concurrency = runtime.NumCPU()
	}
	if err := config.Geometry.Validate(); err != nil {
		return nil, fmt.Errorf("invalid geometry: %w", err)
	}

	renderCache, err := cache.New[formatter.Sheet](config.CacheSize)
	if err != nil {
		return nil, err
	}

	return &Viewer{
		config:  config,
		parser:  parser.NewParser(config.Concurrency),
		builder: timeline.NewBuilder(config.StatusAliases),
		cache:   renderCache,
	}, nil
}

// Run loads, renders and writes every log in the configured sources.
func (v *Viewer) Run(w io.Writer) error {
	startTime := time.Now()

	sheets, err := v.Sheets()
	if err != nil {
		return err
	}

	// Phase 5: Format and output
	outputStart := time.Now()
	err = v.Output(w, sheets)
	util.LogDebugf("Phase 5 - Formatting and output duration: %v", time.Since(outputStart))

	v.cache.LogStats()
	util.LogDebugf("Total duration: %v", time.Since(startTime))

	return err
}

// Sheets collects, parses, filters and renders the configured logs.
func (v *Viewer) Sheets() ([]formatter.Sheet, error) {
	startTime := time.Now()
	util.LogDebug("Starting daily log rendering")

	// Phase 1: Collect files
	scanStart := time.Now()
	files, err := v.Files()
	if err != nil {
		return nil, err
	}
	scanDuration := time.Since(scanStart)
	util.LogDebugf("Phase 1 - File collection duration: %v, found %d files", scanDuration, len(files))

	// Phase 2: Parse logs
	parseStart := time.Now()
	logs, err := v.Load(files)
	if err != nil {
		return nil, err
	}
	parseDuration := time.Since(parseStart)
	util.LogDebugf("Phase 2 - Parsing duration: %v, logs: %d", parseDuration, len(logs))

	// Phase 3: Filter by date range
	filterStart := time.Now()
	logs = v.filterByDateRange(logs)
	filterDuration := time.Since(filterStart)
	util.LogDebugf("Phase 3 - Date filtering duration: %v, logs after filtering: %d", filterDuration, len(logs))

	// Phase 4: Render
	renderStart := time.Now()
	sheets := v.RenderAll(logs)
	renderDuration := time.Since(renderStart)
	util.LogDebugf("Phase 4 - Render duration: %v", renderDuration)

	util.LogDebugf("Sheets ready in %v (collect:%v parse:%v filter:%v render:%v)",
		time.Since(startTime), scanDuration, parseDuration, filterDuration, renderDuration)
	return sheets, nil
}

// Files returns the explicit files followed by those found under DataDir.
func (v *Viewer) Files() ([]string, error) {
	files := append([]string(nil), v.config.Files...)
	if v.config.DataDir != "" {
		found, err := scanner.NewFileScanner(v.config.DataDir).Scan()
		if err != nil {
			return nil, fmt.Errorf("failed to scan files: %w", err)
		}
		files = append(files, found...)
	}
	files = dedupeFiles(files)
	if len(files) == 0 {
		return nil, fmt.Errorf("no log files found")
	}
	return files, nil
}

// dedupeFiles drops later mentions of a file already listed, comparing
// absolute paths, so a file named explicitly and found under DataDir is
// parsed once.
func dedupeFiles(files []string) []string {
	seen := make(map[string]struct{}, len(files))
	unique := files[:0]
	for _, f := range files {
		key := f
		if abs, err := filepath.Abs(f); err == nil {
			key = abs
		}
		if _, ok := seen[key]; ok {
			util.LogDebugf("Skip duplicate file: %s", f)
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, f)
	}
	return unique
}

// Load parses files concurrently and returns their logs in file order. A file
// that fails is logged and skipped; Load fails only when every file does.
func (v *Viewer) Load(files []string) ([]model.DailyLog, error) {
	logs, errs := v.parser.ParseAll(files)
	failed := 0
	for _, err := range errs {
		if errors.Is(err, parser.ErrPartial) {
			util.LogWarnf("Skipped logs that failed to decode: %v", err)
			continue
		}
		util.LogWarnf("Failed to parse file: %v", err)
		failed++
	}
	if failed > 0 && failed == len(files) {
		return nil, fmt.Errorf("failed to parse %d of %d files: %w", failed, len(files), errs[0])
	}
	return logs, nil
}

// RenderLog turns one log into a sheet. Results are cached by the log's
// content and the render settings.
func (v *Viewer) RenderLog(log model.DailyLog) formatter.Sheet {
	key, err := cache.Key(log, v.config.Geometry, v.config.Options, v.config.StatusAliases)
	if err != nil {
		util.LogDebugf("Failed to fingerprint log %s: %v", log.Date, err)
		key = ""
	}
	if key != "" {
		if sheet, ok := v.cache.Get(key); ok {
			return sheet
		}
	}

	result := v.builder.Build(log.Entries)
	sheet := formatter.Sheet{
		Log:      log,
		Segments: result.Segments,
		Issues:   result.Issues,
		Commands: grid.Render(result.Segments, v.config.Geometry, v.config.Options),
		Recorded: totals.FromLog(log),
		Drawn:    totals.FromSegments(result.Segments),
	}
	if len(result.Issues) > 0 {
		util.LogDebugf("Log %s: %d entries with issues", log.Date, len(result.Issues))
	}

	if key != "" {
		v.cache.Add(key, sheet)
	}
	return sheet
}

// RenderAll renders logs in parallel; the result keeps the input order.
func (v *Viewer) RenderAll(logs []model.DailyLog) []formatter.Sheet {
	sheets := make([]formatter.Sheet, len(logs))
	semaphore := make(chan struct{}, v.config.Concurrency)
	var wg sync.WaitGroup

	for i, log := range logs {
		wg.Add(1)
		go func(i int, log model.DailyLog) {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			sheets[i] = v.RenderLog(log)
		}(i, log)
	}

	wg.Wait()
	return sheets
}

// Output writes sheets in the configured format.
func (v *Viewer) Output(w io.Writer, sheets []formatter.Sheet) error {
	f, err := formatter.New(v.config.OutputFormat, formatter.Options{
		Geometry: v.config.Geometry,
		Width:    v.config.Width,
	})
	if err != nil {
		return err
	}
	return f.Format(w, sheets)
}

// CacheStats exposes render cache hits and misses.
func (v *Viewer) CacheStats() (hits, misses int64) {
	hits, misses, _ = v.cache.Stats()
	return hits, misses
}

func (v *Viewer) filterByDateRange(logs []model.DailyLog) []model.DailyLog {
	if v.config.Since == "" && v.config.Until == "" {
		return logs
	}

	since, until, err := parseDateRange(v.config.Since, v.config.Until)
	if err != nil {
		util.LogErrorf("Failed to parse date range: %v", err)
		return logs
	}

	var filtered []model.DailyLog
	for _, log := range logs {
		date, err := util.ParseDate(log.Date)
		if err != nil {
			filtered = append(filtered, log)
			continue
		}
		if !since.IsZero() && date.Before(since) {
			continue
		}
		if !until.IsZero() && date.After(until) {
			continue
		}
		filtered = append(filtered, log)
	}
	return filtered
}

func parseDateRange(sinceStr, untilStr string) (since, until time.Time, err error) {
	if sinceStr != "" {
		if since, err = util.ParseDate(sinceStr); err != nil {
			return since, until, fmt.Errorf("invalid since date: %s", sinceStr)
		}
	}
	if untilStr != "" {
		if until, err = util.ParseDate(untilStr); err != nil {
			return since, until, fmt.Errorf("invalid until date: %s", untilStr)
		}
	}
	if !since.IsZero() && !until.IsZero() && until.Before(since) {
		return since, until, fmt.Errorf("until %s is before since %s", untilStr, sinceStr)
	}
	return since, until, nil
}
