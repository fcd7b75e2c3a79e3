// Package defog folds constant expressions in obfuscated JavaScript
// back into plain literals: hex and binary numbers become decimal,
// escaped strings become readable text, and constant arithmetic
// collapses to its value.
package defog

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"github.com/defogjs/defog/internal"
	tt "github.com/defogjs/defog/internal/types"
)

// FoldEngine is the folding surface the batch processors work against.
type FoldEngine interface {
	Evaluate(source string) (*tt.Report, error)
	IgnoreRule(rule string)
}

// EngineFactory supplies a fresh engine per processed file. Engines own
// their tree and counters for the duration of one Evaluate call, so one
// instance must never serve two files concurrently.
type EngineFactory func() FoldEngine

// New builds an engine from the configuration file at the given path
// (or defaults when the path is empty and no .defog.yaml exists).
func New(configurationPath string) (*internal.Engine, error) {
	config, err := LoadConfig(configurationPath)
	if err != nil {
		return nil, err
	}
	return NewFromConfig(config), nil
}

// NewFromConfig builds an engine directly from a parsed configuration.
func NewFromConfig(config *Config) *internal.Engine {
	return internal.NewEngine(config.Rules, config.MaxPasses)
}

// Evaluate folds a single source fragment with default settings. This
// is the one-call library entry point.
func Evaluate(source string) (string, error) {
	report, err := NewFromConfig(DefaultConfig()).Evaluate(source)
	if err != nil {
		return "", err
	}
	return report.Output, nil
}

// ProcessFile reads and folds one file.
func ProcessFile(engine FoldEngine, filePath string) (*tt.Report, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", filePath, err)
	}
	report, err := engine.Evaluate(string(content))
	if err != nil {
		return nil, fmt.Errorf("error folding %s: %w", filePath, err)
	}
	report.Filename = filePath
	return report, nil
}

// ProcessSource folds an in-memory source fragment.
func ProcessSource(engine FoldEngine, source []byte) (*tt.Report, error) {
	return engine.Evaluate(string(source))
}

// ProcessFiles folds every given path, descending into directories.
func ProcessFiles(ctx context.Context, logger *zap.Logger, factory EngineFactory, paths []string) ([]*tt.Report, error) {
	var allReports []*tt.Report
	for _, path := range paths {
		reports, err := ProcessPath(ctx, logger, factory, path)
		if err != nil {
			if logger != nil {
				logger.Error("Error processing path", zap.String("path", path), zap.Error(err))
			}
			return nil, err
		}
		allReports = append(allReports, reports...)
	}
	return allReports, nil
}

// ProcessPath folds one file, or every script file under one directory.
// Directory runs fan out over a bounded worker pool with a progress
// bar; each worker folds with its own engine.
func ProcessPath(ctx context.Context, logger *zap.Logger, factory EngineFactory, path string) ([]*tt.Report, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing %s: %w", path, err)
	}

	if !info.IsDir() {
		report, err := ProcessFile(factory(), path)
		if err != nil {
			return nil, err
		}
		return []*tt.Report{report}, nil
	}

	var files []string
	filepath.Walk(path, func(filePath string, fileInfo os.FileInfo, err error) error {
		if err == nil && !fileInfo.IsDir() && internal.HasScriptExtension(filePath) {
			files = append(files, filePath)
		}
		return nil
	})
	if len(files) == 0 {
		return nil, nil
	}

	bar := progressbar.NewOptions(len(files),
		progressbar.OptionSetDescription(path),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))

	resultChan := make(chan *tt.Report, len(files))
	errorChan := make(chan error, len(files))

	maxWorkers := runtime.NumCPU()
	sem := make(chan struct{}, maxWorkers)
	var wg sync.WaitGroup

	for _, filePath := range files {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		sem <- struct{}{}
		wg.Add(1)
		go func(fp string) {
			defer wg.Done()
			defer func() { <-sem }()

			report, err := ProcessFile(factory(), fp)
			if err != nil {
				if logger != nil {
					logger.Error("Error processing file", zap.String("file", fp), zap.Error(err))
				}
				errorChan <- err
			} else {
				resultChan <- report
			}
			bar.Add(1)
		}(filePath)
	}

	wg.Wait()
	close(resultChan)
	close(errorChan)

	var reports []*tt.Report
	for report := range resultChan {
		reports = append(reports, report)
	}
	// folding failures in a batch are reported, not fatal
	for err := range errorChan {
		if logger != nil {
			logger.Warn("Skipped file", zap.Error(err))
		}
	}

	return reports, nil
}
