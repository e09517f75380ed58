package parser

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/penwyp/go-eld-log/internal/core/model"
	"github.com/penwyp/go-eld-log/internal/util"
)

// Parser reads daily logs from files written by the trip planner.
//
// A .json file may hold a single log, an array of logs, or a trip object with
// a "daily_logs" array. A .jsonl file holds one log per line.
type Parser struct {
	concurrency int
	mu          sync.Mutex
	cache       map[string]cachedFile
}

type cachedFile struct {
	info *util.FileInfo
	logs []model.DailyLog
	err  error
}

// ErrPartial marks a file in which some logs decoded and others did not. The
// logs that decoded are returned alongside an error wrapping ErrPartial.
var ErrPartial = errors.New("some daily logs failed to decode")

// ParseResult represents the result of parsing a single file.
type ParseResult struct {
	File  string
	Logs  []model.DailyLog
	Error error
}

// tripEnvelope is the planner's trip response; only the logs matter here.
type tripEnvelope struct {
	DailyLogs json.RawMessage `json:"daily_logs"`
}

// NewParser creates a new Parser instance.
func NewParser(concurrency int) *Parser {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Parser{
		concurrency: concurrency,
		cache:       make(map[string]cachedFile),
	}
}

// ParseFile parses the file at path. Results are reused until the file
// changes on disk. When only some logs decode, they are returned together with
// an error wrapping ErrPartial.
func (p *Parser) ParseFile(path string) ([]model.DailyLog, error) {
	info, err := util.GetFileInfo(path)
	if err != nil {
		util.LogDebugf("Failed to stat file: %s - %v", path, err)
		return nil, err
	}

	p.mu.Lock()
	if cached, ok := p.cache[path]; ok && cached.info.Same(info) {
		p.mu.Unlock()
		return cached.logs, cached.err
	}
	p.mu.Unlock()

	util.LogDebugf("Start parsing file: %s", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var logs []model.DailyLog
	if strings.EqualFold(filepath.Ext(path), ".jsonl") {
		logs, err = ParseLines(data, path)
	} else {
		logs, err = ParseBytes(data)
	}
	if err != nil {
		err = fmt.Errorf("%s: %w", path, err)
		if !errors.Is(err, ErrPartial) {
			return nil, err
		}
	}

	p.mu.Lock()
	p.cache[path] = cachedFile{info: info, logs: logs, err: err}
	p.mu.Unlock()

	return logs, err
}

// ParseBytes decodes a JSON document holding one log, an array of logs or a
// trip envelope. Logs in an array or envelope decode independently: a bad log
// is reported in an error wrapping ErrPartial while the others are kept.
func ParseBytes(data []byte) ([]model.DailyLog, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty document")
	}

	switch trimmed[0] {
	case '[':
		return decodeLogArray(trimmed)
	case '{':
		var trip tripEnvelope
		if err := sonic.Unmarshal(trimmed, &trip); err != nil {
			return nil, fmt.Errorf("failed to decode document: %w", err)
		}
		if len(trip.DailyLogs) > 0 {
			if string(bytes.TrimSpace(trip.DailyLogs)) == "null" {
				return []model.DailyLog{}, nil
			}
			return decodeLogArray(trip.DailyLogs)
		}
		var log model.DailyLog
		if err := sonic.Unmarshal(trimmed, &log); err != nil {
			return nil, fmt.Errorf("failed to decode daily log: %w", err)
		}
		return []model.DailyLog{log}, nil
	default:
		return nil, fmt.Errorf("expected a JSON object or array")
	}
}

func decodeLogArray(data []byte) ([]model.DailyLog, error) {
	var items []json.RawMessage
	if err := sonic.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to decode log array: %w", err)
	}

	logs := make([]model.DailyLog, 0, len(items))
	var errs []error
	for i, item := range items {
		var log model.DailyLog
		if err := sonic.Unmarshal(item, &log); err != nil {
			errs = append(errs, fmt.Errorf("daily log %d: %w", i, err))
			continue
		}
		logs = append(logs, log)
	}

	if len(errs) == 0 {
		return logs, nil
	}
	err := fmt.Errorf("%d of %d daily logs failed to decode: %w", len(errs), len(items), errors.Join(errs...))
	if len(logs) == 0 {
		return nil, err
	}
	return logs, fmt.Errorf("%w: %w", ErrPartial, err)
}

// ParseLines decodes one log per line, skipping lines that do not decode.
func ParseLines(data []byte, name string) ([]model.DailyLog, error) {
	var logs []model.DailyLog
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 10*1024*1024)

	lineCount := 0
	for scanner.Scan() {
		lineCount++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var log model.DailyLog
		if err := sonic.Unmarshal(line, &log); err != nil {
			util.LogDebugf("Skip invalid JSON line %s:%d - %v", name, lineCount, err)
			continue
		}
		logs = append(logs, log)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return logs, nil
}

// ParseFiles parses multiple files concurrently and returns a channel of ParseResult.
func (p *Parser) ParseFiles(files []string) <-chan ParseResult {
	start := time.Now()
	results := make(chan ParseResult, len(files))
	var wg sync.WaitGroup

	util.LogDebugf("Start concurrent parsing of %d files, concurrency: %d", len(files), p.concurrency)

	semaphore := make(chan struct{}, p.concurrency)

	for _, file := range files {
		wg.Add(1)
		go func(f string) {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			logs, err := p.ParseFile(f)
			if err != nil {
				util.LogDebugf("File parsing failed: %s - %v", f, err)
			}

			results <- ParseResult{File: f, Logs: logs, Error: err}
		}(file)
	}

	go func() {
		wg.Wait()
		close(results)
		util.LogDebugf("Concurrent parsing finished, total duration: %v", time.Since(start))
	}()

	return results
}

// ParseAll parses files concurrently and returns the logs in file order.
// Every failure is reported in the error slice; files that decoded only in
// part still contribute the logs that did decode.
func (p *Parser) ParseAll(files []string) ([]model.DailyLog, []error) {
	byFile := make(map[string][]model.DailyLog, len(files))
	var errs []error

	for result := range p.ParseFiles(files) {
		if result.Error != nil {
			errs = append(errs, result.Error)
		}
		byFile[result.File] = result.Logs
	}

	var logs []model.DailyLog
	for _, f := range files {
		logs = append(logs, byFile[f]...)
	}
	return logs, errs
}
