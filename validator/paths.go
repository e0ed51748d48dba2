package validator

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// enumerate collects Markdown files under root, skipping excluded and
// hidden directories and README files. Results are sorted so output is
// stable across runs.
func (v *Validator) enumerate(root string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		base := d.Name()
		if d.IsDir() {
			if path == root {
				return nil
			}
			if v.excludes[base] || strings.HasPrefix(base, ".") {
				return filepath.SkipDir
			}
			return nil
		}

		if !strings.EqualFold(filepath.Ext(base), ".md") {
			return nil
		}
		// README files are category indexes, not steering documents.
		if strings.EqualFold(base, "README.md") {
			return nil
		}

		if v.pattern != "" {
			rel, relErr := filepath.Rel(root, path)
			if relErr != nil {
				rel = path
			}
			matched, matchErr := doublestar.Match(v.pattern, filepath.ToSlash(rel))
			if matchErr != nil {
				return matchErr
			}
			if !matched {
				return nil
			}
		}

		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

// findRepoRoot walks up from start until a directory containing .git is
// found. Returns "" when no repository root exists above start.
func findRepoRoot(start string) string {
	dir, err := filepath.Abs(start)
	if err != nil {
		return ""
	}

	for {
		if fileExists(filepath.Join(dir, ".git")) {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
