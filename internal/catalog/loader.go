package catalog

import (
	_ "embed"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/xtding233/pricing-backend/internal/metrics"
)

//go:embed data/default.yaml
var defaultYAML []byte

// Paths helper for catalog/override files.
type Paths struct {
	BaseDir string // base directory, e.g., /etc/pricing; empty means embedded defaults only
}

func (p Paths) CatalogPath() string {
	return filepath.Join(p.BaseDir, "catalog.yaml")
}
func (p Paths) OverridesDir() string {
	return filepath.Join(p.BaseDir, "overrides")
}

// OverridePaths lists overrides/*.yaml in lexical order.
func (p Paths) OverridePaths() []string {
	matches, _ := filepath.Glob(filepath.Join(p.OverridesDir(), "*.yaml"))
	sort.Strings(matches)
	return matches
}

// Watched returns every file whose change should trigger a reload.
func (p Paths) Watched() []string {
	if p.BaseDir == "" {
		return nil
	}
	return append([]string{p.CatalogPath()}, p.OverridePaths()...)
}

// Loader reads YAML reference data and merges embedded default → catalog.yaml → overrides.
type Loader struct {
	paths Paths

	mu      sync.Mutex // serializes reloads
	current atomic.Pointer[Catalog]
}

// NewLoader creates a catalog loader for the given base directory.
func NewLoader(baseDir string) *Loader {
	return &Loader{paths: Paths{BaseDir: baseDir}}
}

func (l *Loader) Paths() Paths { return l.paths }

// Catalog returns the last successfully loaded snapshot, or nil before the first Load.
func (l *Loader) Catalog() *Catalog {
	return l.current.Load()
}

// Load reads, merges and validates all layers and publishes the result.
func (l *Loader) Load() (*Catalog, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	raw, err := l.LoadMerged()
	if err != nil {
		return nil, err
	}
	c, err := Build(raw)
	if err != nil {
		return nil, err
	}
	l.current.Store(c)
	return c, nil
}

// Reload re-reads the files. On failure the previous snapshot stays in place.
func (l *Loader) Reload() error {
	c, err := l.Load()
	metrics.IncCatalogReload(err == nil)
	if err != nil {
		glog.Errorf("catalog reload failed, keeping previous snapshot: %v", err)
		return err
	}
	glog.Infof("catalog reloaded: version=%s plans=%d models=%d options=%d", c.Version, len(c.Plans), len(c.Models), len(c.Options))
	return nil
}

// LoadMerged returns the merged RawCatalog without validation.
func (l *Loader) LoadMerged() (RawCatalog, error) {
	merged, err := parseYAML(defaultYAML)
	if err != nil {
		return RawCatalog{}, errors.Wrap(err, "parse embedded catalog")
	}
	if l.paths.BaseDir == "" {
		return merged, nil
	}

	base, err := readYAML(l.paths.CatalogPath()) // catalog file may not exist
	if err != nil {
		return RawCatalog{}, errors.Wrapf(err, "read %s", l.paths.CatalogPath())
	}
	merged = mergeRaw(merged, base)

	for _, path := range l.paths.OverridePaths() {
		over, err := readYAML(path)
		if err != nil {
			return RawCatalog{}, errors.Wrapf(err, "read %s", path)
		}
		glog.V(2).Infof("applying catalog override %s", path)
		merged = mergeRaw(merged, over)
	}
	return merged, nil
}

// Default builds the embedded catalog.
func Default() (*Catalog, error) {
	raw, err := parseYAML(defaultYAML)
	if err != nil {
		return nil, errors.Wrap(err, "parse embedded catalog")
	}
	return Build(raw)
}

// MustDefault is Default for callers that cannot continue without reference data.
func MustDefault() *Catalog {
	c, err := Default()
	if err != nil {
		panic(err)
	}
	return c
}

// readYAML loads a YAML file into RawCatalog. Missing files return zero cfg, no error.
func readYAML(path string) (RawCatalog, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return RawCatalog{}, nil
		}
		return RawCatalog{}, err
	}
	return parseYAML(b)
}

func parseYAML(b []byte) (RawCatalog, error) {
	var cfg RawCatalog
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return RawCatalog{}, err
	}
	return cfg, nil
}

// mergeRaw overlays 'b' on 'a'. Scalars in 'b' win when set; list entries
// replace entries of 'a' with the same key and new keys are appended.
func mergeRaw(a, b RawCatalog) RawCatalog {
	out := a

	if b.Version != "" {
		out.Version = b.Version
	}
	if b.Currency != "" {
		out.Currency = b.Currency
	}
	if b.AdditionalRequestPrice != nil {
		v := *b.AdditionalRequestPrice
		out.AdditionalRequestPrice = &v
	}

	out.Plans = mergeByKey(a.Plans, b.Plans, func(p RawPlan) string { return p.Key })
	out.Models = mergeByKey(a.Models, b.Models, func(m RawModel) string { return m.Name })
	out.Options = mergeByKey(a.Options, b.Options, func(o RawOption) string { return o.Key })
	out.Security = mergeByKey(a.Security, b.Security, func(s RawSecurity) string { return s.Key })
	out.FeatureCategories = mergeByKey(a.FeatureCategories, b.FeatureCategories, func(c RawCategory) string { return c.Name })

	return out
}

func mergeByKey[T any](base, over []T, key func(T) string) []T {
	if len(over) == 0 {
		return base
	}
	out := append([]T(nil), base...)
	idx := make(map[string]int, len(out))
	for i, v := range out {
		idx[key(v)] = i
	}
	for _, v := range over {
		if i, ok := idx[key(v)]; ok {
			out[i] = v
			continue
		}
		idx[key(v)] = len(out)
		out = append(out, v)
	}
	return out
}
