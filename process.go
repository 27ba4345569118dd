package stylecore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"github.com/obinexus/stylecore/automaton"
	"github.com/obinexus/stylecore/diag"
	"github.com/obinexus/stylecore/internal/cache"
)

// FileReport is the per-file outcome of a batch run.
type FileReport struct {
	Filename string
	Errors   []diag.Diagnostic
	Metrics  *automaton.Metrics // nil when minimization is disabled
}

// ProcessSource runs the pipeline over in-memory source.
func ProcessSource(config Config, filename string, source []byte) (FileReport, error) {
	report := FileReport{Filename: filename}
	res := Parse(string(source))
	report.Errors = res.Errors
	if config.MaxErrors > 0 && len(report.Errors) > config.MaxErrors {
		report.Errors = report.Errors[:config.MaxErrors]
	}
	if config.Minimize {
		min, err := Minimize(res.Tree)
		if err != nil {
			return report, fmt.Errorf("minimize %s: %w", filename, err)
		}
		report.Metrics = &min.Metrics
	}
	return report, nil
}

// ProcessFile runs the pipeline over one stylesheet on disk.
func ProcessFile(config Config, path string) (FileReport, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return FileReport{Filename: path}, fmt.Errorf("read %s: %w", path, err)
	}
	return ProcessSource(config, path, source)
}

// ProcessFiles runs the pipeline over every stylesheet under the given
// paths. Directories are walked for *.css files and processed by a bounded
// worker pool with a progress bar; single files are processed inline.
// Reports come back sorted by filename.
func ProcessFiles(ctx context.Context, logger *zap.Logger, config Config, paths []string) ([]FileReport, error) {
	var store *cache.Cache
	if config.CacheDir != "" {
		var err error
		store, err = cache.New(config.CacheDir)
		if err != nil {
			return nil, fmt.Errorf("open report cache: %w", err)
		}
	}

	var reports []FileReport
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("error accessing %s: %w", path, err)
		}

		if !info.IsDir() {
			if !hasStylesheetExtension(path) {
				continue
			}
			report, err := processFileCached(config, store, path)
			if err != nil {
				if logger != nil {
					logger.Error("Error processing file", zap.String("file", path), zap.Error(err))
				}
				return nil, err
			}
			reports = append(reports, report)
			continue
		}

		dirReports, err := processDir(ctx, logger, config, store, path)
		if err != nil {
			return nil, err
		}
		reports = append(reports, dirReports...)
	}

	sort.Slice(reports, func(i, j int) bool { return reports[i].Filename < reports[j].Filename })
	return reports, nil
}

// processFileCached consults the report cache before running the pipeline and
// records the fresh report afterwards. A nil store runs uncached.
func processFileCached(config Config, store *cache.Cache, path string) (FileReport, error) {
	if store != nil {
		if hit, ok := store.Get(path); ok {
			return FileReport{Filename: path, Errors: hit.Errors, Metrics: hit.Metrics}, nil
		}
	}
	report, err := ProcessFile(config, path)
	if err == nil && store != nil {
		// cache write failures are not worth failing the run over
		_ = store.Set(path, cache.Report{Errors: report.Errors, Metrics: report.Metrics})
	}
	return report, err
}

func processDir(ctx context.Context, logger *zap.Logger, config Config, store *cache.Cache, dir string) ([]FileReport, error) {
	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && hasStylesheetExtension(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking directory %s: %w", dir, err)
	}
	if len(files) == 0 {
		return nil, nil
	}

	bar := progressbar.NewOptions(len(files),
		progressbar.OptionSetDescription(dir),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
	)

	resultChan := make(chan FileReport, len(files))
	errorChan := make(chan error, len(files))

	maxWorkers := runtime.NumCPU()
	sem := make(chan struct{}, maxWorkers)

	for _, path := range files {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
			sem <- struct{}{}
			go func(fp string) {
				defer func() { <-sem }()

				report, err := processFileCached(config, store, fp)
				if err != nil {
					if logger != nil {
						logger.Error("Error processing file", zap.String("file", fp), zap.Error(err))
					}
					errorChan <- err
					resultChan <- FileReport{}
				} else {
					resultChan <- report
					errorChan <- nil
				}
				_ = bar.Add(1)
			}(path)
		}
	}

	var reports []FileReport
	for range files {
		if err := <-errorChan; err != nil {
			<-resultChan
			continue
		}
		if report := <-resultChan; report.Filename != "" {
			reports = append(reports, report)
		}
	}
	fmt.Println()
	return reports, nil
}

var stylesheetExtensions = map[string]bool{
	".css": true,
}

func hasStylesheetExtension(path string) bool {
	return stylesheetExtensions[filepath.Ext(path)]
}
