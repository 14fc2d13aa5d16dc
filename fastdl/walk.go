package fastdl

import (
	"fmt"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"strings"

	"github.com/dendrascience/fastdl/util"
	"github.com/rs/zerolog"
)

// SourceFile is a regular file found below one of the content categories.
type SourceFile struct {
	Root     string // effective content root
	Category string // canonical lowercase category
	Dir      string // category directory name as found on disk, if it differs
	Rel      string // path below the category directory
}

// CategoryDir returns the name of the category directory on disk.
func (f SourceFile) CategoryDir() string {
	if f.Dir != "" {
		return f.Dir
	}
	return f.Category
}

// Path returns the on-disk location of the file.
func (f SourceFile) Path() string {
	return filepath.Join(f.Root, f.CategoryDir(), f.Rel)
}

// Walker enumerates the files of every category present under a content root.
type Walker struct {
	Categories     []string
	FollowSymlinks bool
	Logger         zerolog.Logger
}

// NewWalker returns a walker for cfg.
func NewWalker(cfg Config) *Walker {
	return &Walker{
		Categories:     cfg.Categories,
		FollowSymlinks: cfg.FollowSymlinks,
		Logger:         cfg.Logger,
	}
}

type frame struct {
	dir     string
	rel     string
	info    os.FileInfo
	entries []os.DirEntry
	next    int
}

type entryKind int

const (
	kindOther entryKind = iota
	kindFile
	kindDir
)

// Walk yields the files under root depth-first, in directory-entry order.
// Category directories match case-insensitively, so Models/ is walked as
// models. A missing category is logged and skipped. The first error ends
// the walk.
func (w *Walker) Walk(root string) iter.Seq2[SourceFile, error] {
	return func(yield func(SourceFile, error) bool) {
		entries, err := os.ReadDir(root)
		if err != nil {
			yield(SourceFile{}, fmt.Errorf("%w: read directory %s: %w", util.ErrIOFailure, root, err))
			return
		}

		for _, category := range w.Categories {
			dirs, err := w.categoryDirs(root, category, entries)
			if err != nil {
				yield(SourceFile{}, err)
				return
			}
			if len(dirs) == 0 {
				w.Logger.Info().Str("category", category).Str("dir", filepath.Join(root, category)).Msg("category not present")
				continue
			}
			for _, dir := range dirs {
				if !w.walkCategory(root, category, dir, yield) {
					return
				}
			}
		}
	}
}

// categoryDirs returns the names in entries that spell category in any case
// and resolve to a directory under the symlink policy.
func (w *Walker) categoryDirs(root, category string, entries []os.DirEntry) ([]string, error) {
	var dirs []string
	for _, entry := range entries {
		if !strings.EqualFold(entry.Name(), category) {
			continue
		}
		kind, err := w.classifyEntry(filepath.Join(root, entry.Name()), entry)
		if err != nil {
			return nil, err
		}
		if kind == kindDir {
			dirs = append(dirs, entry.Name())
		} else {
			w.Logger.Debug().Str("path", filepath.Join(root, entry.Name())).Msg("category entry is not a directory, skipping")
		}
	}
	return dirs, nil
}

func (w *Walker) walkCategory(root, category, dirName string, yield func(SourceFile, error) bool) bool {
	var stack []*frame

	push := func(dir, rel string) error {
		info, err := os.Stat(dir)
		if err != nil {
			return fmt.Errorf("%w: stat %s: %w", util.ErrIOFailure, dir, err)
		}
		for _, f := range stack {
			if os.SameFile(f.info, info) {
				w.Logger.Warn().Str("dir", dir).Str("target", f.dir).Msg("symlink cycle, skipping")
				return nil
			}
		}
		entries, err := os.ReadDir(dir)
		if err != nil {
			return fmt.Errorf("%w: read directory %s: %w", util.ErrIOFailure, dir, err)
		}
		w.Logger.Info().Str("dir", dir).Msg("entering")
		stack = append(stack, &frame{dir: dir, rel: rel, info: info, entries: entries})
		return nil
	}

	if err := push(filepath.Join(root, dirName), ""); err != nil {
		yield(SourceFile{}, err)
		return false
	}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		if top.next == len(top.entries) {
			w.Logger.Info().Str("dir", top.dir).Msg("exiting")
			stack = stack[:len(stack)-1]
			continue
		}
		entry := top.entries[top.next]
		top.next++

		path := filepath.Join(top.dir, entry.Name())
		rel := filepath.Join(top.rel, entry.Name())
		kind, err := w.classifyEntry(path, entry)
		if err != nil {
			yield(SourceFile{}, err)
			return false
		}
		switch kind {
		case kindFile:
			if util.IsTempArtifact(entry.Name()) {
				w.Logger.Debug().Str("path", path).Msg("unfinished artifact, skipping")
				continue
			}
			f := SourceFile{Root: root, Category: category, Rel: rel}
			if dirName != category {
				f.Dir = dirName
			}
			if !yield(f, nil) {
				return false
			}
		case kindDir:
			if err := push(path, rel); err != nil {
				yield(SourceFile{}, err)
				return false
			}
		default:
			w.Logger.Debug().Str("path", path).Msg("not a regular file or directory, skipping")
		}
	}
	return true
}

func (w *Walker) classifyEntry(path string, entry os.DirEntry) (entryKind, error) {
	mode := entry.Type()
	switch {
	case mode.IsRegular():
		return kindFile, nil
	case mode.IsDir():
		return kindDir, nil
	case mode&fs.ModeSymlink == 0 || !w.FollowSymlinks:
		return kindOther, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			w.Logger.Warn().Str("path", path).Msg("dangling symlink, skipping")
			return kindOther, nil
		}
		return kindOther, fmt.Errorf("%w: stat %s: %w", util.ErrIOFailure, path, err)
	}
	switch {
	case info.Mode().IsRegular():
		return kindFile, nil
	case info.IsDir():
		return kindDir, nil
	default:
		return kindOther, nil
	}
}
