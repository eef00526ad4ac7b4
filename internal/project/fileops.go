// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Contained, atomic file operations inside the project root

package project

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrOutsideRoot indicates a path that would escape the project root
type ErrOutsideRoot struct {
	Path string
}

func (e *ErrOutsideRoot) Error() string {
	return fmt.Sprintf("path escapes project root: %s", e.Path)
}

// Resolve converts a project-relative path to an absolute path,
// refusing anything that would land outside the project root.
func (p *Project) Resolve(rel string) (string, error) {
	if rel == "" {
		return "", fmt.Errorf("empty path")
	}
	if filepath.IsAbs(rel) {
		return "", &ErrOutsideRoot{Path: rel}
	}

	abs := filepath.Join(p.Root, filepath.FromSlash(rel))
	abs = filepath.Clean(abs)

	if abs != p.Root && !strings.HasPrefix(abs, p.Root+string(filepath.Separator)) {
		return "", &ErrOutsideRoot{Path: rel}
	}
	return abs, nil
}

// WriteFile writes a single file atomically inside the project root.
// Content lands in a temp file first, then renames into place, so a
// crash mid-write never leaves a truncated file.
func (p *Project) WriteFile(rel string, content []byte) error {
	abs, err := p.Resolve(rel)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(abs), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", rel, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(abs), ".lamport-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", rel, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", rel, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file for %s: %w", rel, err)
	}

	if err := os.Rename(tmpName, abs); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to rename temp file into %s: %w", rel, err)
	}
	return nil
}

// WriteFiles writes a set of project-relative files atomically.
// Paths are checked before any write happens, so a single bad path
// rejects the whole set instead of leaving a partial tree.
func (p *Project) WriteFiles(files map[string]string) ([]string, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("no files to write")
	}

	paths := make([]string, 0, len(files))
	for rel := range files {
		if _, err := p.Resolve(rel); err != nil {
			return nil, err
		}
		paths = append(paths, rel)
	}
	sort.Strings(paths)

	written := make([]string, 0, len(paths))
	for _, rel := range paths {
		if err := p.WriteFile(rel, []byte(files[rel])); err != nil {
			return written, err
		}
		written = append(written, rel)
	}
	return written, nil
}

// ReadFile reads a project-relative file
func (p *Project) ReadFile(rel string) ([]byte, error) {
	abs, err := p.Resolve(rel)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", rel, err)
	}
	return data, nil
}

// ReadAll collects every source file in the project tree that matches
// the readable extensions, keyed by slash-separated relative path.
// Build output directories are skipped.
func (p *Project) ReadAll() (map[string]string, error) {
	files := make(map[string]string)

	err := filepath.Walk(p.Root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			name := info.Name()
			if name == "target" || name == "node_modules" || name == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		if !matchesReadPattern(path) {
			return nil
		}
		rel, err := filepath.Rel(p.Root, path)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", rel, err)
		}
		files[filepath.ToSlash(rel)] = string(data)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk project tree: %w", err)
	}
	return files, nil
}

func matchesReadPattern(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, p := range readPatterns {
		if ext == p {
			return true
		}
	}
	return false
}
