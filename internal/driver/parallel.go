package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"canon/internal/diag"
	"canon/internal/source"
	"canon/internal/trace"
)

// SourceExt is the extension of the files a directory run picks up.
const SourceExt = ".roc"

// ListSourceFiles returns every *.roc file under dir, sorted.
func ListSourceFiles(dir string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() && path != dir && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if !d.IsDir() && strings.HasSuffix(path, SourceExt) {
			files = append(files, path)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// CanonicalizeDir runs every *.roc file under dir through the pipeline in
// parallel. Results come back in path order whatever the scheduling.
func CanonicalizeDir(ctx context.Context, dir string, opts Options, jobs int) (*source.FileSet, []Result, error) {
	ctx, span := trace.Start(ctx, trace.ScopeDriver, "canonicalize_dir")
	defer span.End("")

	files, err := ListSourceFiles(dir)
	if err != nil {
		return nil, nil, err
	}
	span.WithExtra("files", strconv.Itoa(len(files)))

	fileSet := source.NewFileSetWithBase(dir)
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	// Предзагружаем все файлы последовательно: FileSet не потокобезопасен на запись
	fileIDs := make([]source.FileID, len(files))
	loadErrors := make(map[int]error)
	for i, path := range files {
		id, err := fileSet.Load(path)
		if err != nil {
			// пустой виртуальный файл держит путь и собственный ID
			loadErrors[i] = err
			id = fileSet.AddVirtual(path, nil)
		}
		fileIDs[i] = id
		emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusQueued})
	}

	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// индексы уникальны для каждой горутины, мьютекс не нужен
	results := make([]Result, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			if loadErr, failed := loadErrors[i]; failed {
				list := diag.NewDiagnostics(opts.MaxDiagnostics)
				list.Add(diag.Diagnostic{
					Severity: diag.SevError,
					Code:     diag.IOLoadFileError,
					Message:  "failed to load file: " + loadErr.Error(),
					File:     fileIDs[i],
				})
				results[i] = Result{Path: path, FileID: fileIDs[i], Diagnostics: list}
				emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusError})
				return nil
			}

			results[i] = processFile(gctx, fileSet.Get(fileIDs[i]), opts)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}
