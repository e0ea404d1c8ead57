package suite

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"grun/internal/source"
)

// Case is one input of a suite.
type Case struct {
	Path   string // as passed to the harness
	Rel    string // slash-separated, relative to the suite dir
	Golden string // Path + GoldenExt
	Expect int    // expected exit code
}

// Discover walks dir and returns every file whose base name matches the
// manifest pattern, sorted by relative path. Golden files and hidden
// directories are skipped.
func Discover(dir string, m Manifest) ([]Case, error) {
	var cases []Case
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if d.IsDir() {
			if path != dir && strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(name, GoldenExt) || name == ManifestName {
			return nil
		}
		ok, err := filepath.Match(m.Pattern, name)
		if err != nil || !ok {
			return err
		}
		rel, err := source.RelativePath(path, dir)
		if err != nil {
			return err
		}
		cases = append(cases, Case{
			Path:   path,
			Rel:    rel,
			Golden: path + GoldenExt,
			Expect: m.Expected(rel),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Сортируем для детерминированного порядка
	sort.Slice(cases, func(i, j int) bool { return cases[i].Rel < cases[j].Rel })
	return cases, nil
}
