package preset

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/xtding233/wishsim-backend/internal/wish"
)

// defaultName is the preset every other file merges over.
const defaultName = "default"

// Loader reads banner preset YAML files and merges default → named. Results
// are cached until Invalidate is called (the file watcher does that on
// change).
type Loader struct {
	baseDir  string
	validate *validator.Validate

	mu    sync.RWMutex
	cache map[string]wish.Banner
}

// NewLoader creates a preset loader rooted at baseDir (the directory holding
// the *.yaml preset files).
func NewLoader(baseDir string) *Loader {
	return &Loader{
		baseDir:  baseDir,
		validate: validator.New(),
		cache:    make(map[string]wish.Banner),
	}
}

func (l *Loader) path(name string) string {
	return filepath.Join(l.baseDir, name+".yaml")
}

// Banner loads the named preset merged over the defaults and returns the
// validated engine banner.
func (l *Loader) Banner(name string) (wish.Banner, error) {
	if name == "" {
		name = defaultName
	}

	l.mu.RLock()
	if b, ok := l.cache[name]; ok {
		l.mu.RUnlock()
		return b, nil
	}
	l.mu.RUnlock()

	def, err := l.readFile(l.path(defaultName))
	if err != nil {
		return wish.Banner{}, fmt.Errorf("read default preset: %w", err)
	}
	merged := def
	if name != defaultName {
		named, err := l.readFile(l.path(name))
		if err != nil {
			return wish.Banner{}, fmt.Errorf("read preset %q: %w", name, err)
		}
		merged = mergeRaw(def, named)
	}

	if merged.Banner != nil {
		if err := l.validate.Struct(merged.Banner); err != nil {
			return wish.Banner{}, fmt.Errorf("preset %q schema: %w", name, err)
		}
	}
	b, err := merged.ToBanner()
	if err != nil {
		return wish.Banner{}, fmt.Errorf("preset %q: %w", name, err)
	}
	if err := b.Validate(); err != nil {
		return wish.Banner{}, fmt.Errorf("preset %q: %w", name, err)
	}

	l.mu.Lock()
	l.cache[name] = b
	l.mu.Unlock()
	return b, nil
}

// List returns the preset names found on disk, sorted, defaults first.
func (l *Loader) List() ([]string, error) {
	entries, err := os.ReadDir(l.baseDir)
	if err != nil {
		return nil, fmt.Errorf("list presets: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	sort.Slice(names, func(i, j int) bool {
		if names[i] == defaultName {
			return true
		}
		if names[j] == defaultName {
			return false
		}
		return names[i] < names[j]
	})
	return names, nil
}

// Paths returns the files the hot-reload watcher should poll.
func (l *Loader) Paths() ([]string, error) {
	names, err := l.List()
	if err != nil {
		return nil, err
	}
	paths := make([]string, len(names))
	for i, n := range names {
		paths[i] = l.path(n)
	}
	return paths, nil
}

// Invalidate clears the cache. Called after the watcher sees a change.
func (l *Loader) Invalidate() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cache = make(map[string]wish.Banner)
}

// readFile loads one preset file. A missing named file is an error; presets
// are explicit, unlike overrides.
func (l *Loader) readFile(path string) (RawPreset, error) {
	var p RawPreset
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return RawPreset{}, fmt.Errorf("no such preset file %s: %w", filepath.Base(path), os.ErrNotExist)
		}
		return RawPreset{}, err
	}
	if err := yaml.Unmarshal(b, &p); err != nil {
		return RawPreset{}, err
	}
	return p, nil
}
