package source

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"
)

// DefaultExtensions are the rule file extensions used when none are given.
var DefaultExtensions = []string{".yaml", ".yml"}

// FileOptions configures a FileSource.
type FileOptions struct {
	// Extensions filters directory entries; matching ignores case.
	Extensions []string
	Logger     *slog.Logger
}

// FileSource loads rule documents from a file or a directory tree.
type FileSource struct {
	path       string
	extensions []string
	logger     *slog.Logger
}

// NewFileSource creates a source for path, which may be a single rule
// file or a directory.
func NewFileSource(path string, opts FileOptions) *FileSource {
	exts := opts.Extensions
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	lower := make([]string, len(exts))
	for i, e := range exts {
		lower[i] = strings.ToLower(e)
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &FileSource{
		path:       path,
		extensions: lower,
		logger:     logger.With("component", "source.file"),
	}
}

// Path returns the configured path.
func (s *FileSource) Path() string { return s.path }

func (s *FileSource) String() string { return "file:" + s.path }

// Load reads every rule file below the path. Documents are named by their
// slash-separated path relative to the root and returned sorted by name.
// A single file is returned as one document named by its base name.
func (s *FileSource) Load(ctx context.Context) ([]Document, error) {
	info, err := os.Stat(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat path %q: %w", s.path, err)
	}

	if !info.IsDir() {
		data, err := os.ReadFile(s.path)
		if err != nil {
			return nil, fmt.Errorf("failed to read file %q: %w", s.path, err)
		}
		return []Document{{Name: filepath.Base(s.path), Path: s.path, Data: data}}, nil
	}

	paths, err := s.list()
	if err != nil {
		return nil, err
	}

	docs := make([]Document, 0, len(paths))
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := os.ReadFile(p.abs)
		if err != nil {
			return nil, fmt.Errorf("failed to read file %q: %w", p.abs, err)
		}
		docs = append(docs, Document{Name: p.rel, Path: p.abs, Data: data})
	}

	s.logger.Debug("loaded rule documents", "path", s.path, "documents", len(docs))
	return docs, nil
}

type rulePath struct {
	rel string
	abs string
}

// list returns the rule files below the root in lexicographic order of
// their relative slash paths. Hidden files and directories are skipped.
func (s *FileSource) list() ([]rulePath, error) {
	var paths []rulePath
	err := filepath.WalkDir(s.path, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path != s.path && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !s.Matches(path) {
			return nil
		}

		rel, err := filepath.Rel(s.path, path)
		if err != nil {
			return err
		}
		paths = append(paths, rulePath{rel: filepath.ToSlash(rel), abs: path})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory %q: %w", s.path, err)
	}

	sort.Slice(paths, func(i, j int) bool { return paths[i].rel < paths[j].rel })
	return paths, nil
}

// Matches reports whether path has one of the configured extensions.
func (s *FileSource) Matches(path string) bool {
	return slices.Contains(s.extensions, strings.ToLower(filepath.Ext(path)))
}
