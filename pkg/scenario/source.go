package scenario

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vango-dev/vreconcile/internal/errors"
)

// Source lists and loads scenarios by name. A name is the file name
// without its .yaml or .yml extension.
type Source interface {
	List(ctx context.Context) ([]string, error)
	Load(ctx context.Context, name string) (*Scenario, error)
}

var extensions = []string{".yaml", ".yml"}

// trimExt returns name without a scenario extension and whether it had one.
func trimExt(name string) (string, bool) {
	for _, ext := range extensions {
		if strings.HasSuffix(name, ext) {
			return strings.TrimSuffix(name, ext), true
		}
	}
	return "", false
}

// validName rejects names that would escape the source's root.
func validName(name string) bool {
	return name != "" && name != "." && name != ".." && !strings.ContainsAny(name, `/\`)
}

// DirSource reads scenarios from a directory. Subdirectories are ignored.
type DirSource struct {
	Dir string
}

// NewDirSource creates a source over dir.
func NewDirSource(dir string) *DirSource {
	return &DirSource{Dir: dir}
}

// List returns the scenario names in dir, sorted.
func (s *DirSource) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E504").WithDetailf("directory %s", s.Dir)
		}
		return nil, errors.New("E503").WithDetail(s.Dir).Wrap(err)
	}
	var names []string
	seen := make(map[string]bool)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name, ok := trimExt(entry.Name())
		if !ok || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Load reads and parses the named scenario. A scenario without a name takes
// the file's.
func (s *DirSource) Load(ctx context.Context, name string) (*Scenario, error) {
	if !validName(name) {
		return nil, errors.New("E504").WithDetailf("invalid name %q", name)
	}
	for _, ext := range extensions {
		path := filepath.Join(s.Dir, name+ext)
		data, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, errors.New("E503").WithDetail(path).Wrap(err)
		}
		sc, err := Parse(data)
		if err != nil {
			return nil, loadError(path, err)
		}
		if sc.Name == "" {
			sc.Name = name
		}
		return sc, nil
	}
	return nil, errors.New("E504").WithDetailf("%s in %s", name, s.Dir)
}

// loadError tags a parse failure with where the document came from.
func loadError(where string, err error) error {
	if e, ok := err.(*errors.Error); ok {
		if e.Detail == "" {
			return e.WithDetail(where)
		}
		return e.WithDetailf("%s: %s", where, e.Detail)
	}
	return errors.New("E503").WithDetail(where).Wrap(err)
}
