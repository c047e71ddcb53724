// Package recipe reads and writes YAML files describing a cleaning run.
package recipe

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/KaramelBytes/datatidy-cli/internal/analysis"
	"github.com/KaramelBytes/datatidy-cli/internal/cleaning"
	"github.com/KaramelBytes/datatidy-cli/internal/utils"
)

// Recipe is the on-disk form of a cleaning plan plus an optional split.
type Recipe struct {
	Source    string            `yaml:"source,omitempty"`
	CreatedAt time.Time         `yaml:"created_at,omitempty"`
	Drop      []string          `yaml:"drop,omitempty"`
	Fill      map[string]string `yaml:"fill,omitempty"`
	Target    string            `yaml:"target,omitempty"`
	Features  []string          `yaml:"features,omitempty"`
}

// Load reads a recipe file.
func Load(path string) (*Recipe, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("recipe not found at %s: %w", path, err)
		}
		return nil, fmt.Errorf("read recipe: %w", err)
	}
	var r Recipe
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&r); err != nil {
		if errors.Is(err, io.EOF) {
			return &r, nil
		}
		return nil, fmt.Errorf("parse recipe: %w", err)
	}
	return &r, nil
}

// Save writes the recipe using atomic write.
func (r *Recipe) Save(path string) error {
	b, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal recipe: %w", err)
	}
	return utils.SafeWriteFile(path, b)
}

// ParseFill parses one fill strategy. Bare "unknown" and "constant" use
// defaultConstant when it is set.
func ParseFill(s, defaultConstant string) (cleaning.Directive, error) {
	d, err := cleaning.ParseStrategy(s)
	if err != nil {
		return d, err
	}
	explicit := strings.HasPrefix(strings.ToLower(strings.TrimSpace(s)), "constant:")
	if d.Strategy == cleaning.FillConstant && !explicit && defaultConstant != "" {
		d.Value = defaultConstant
	}
	return d, nil
}

// Plan converts the recipe into a cleaning plan.
func (r *Recipe) Plan(defaultConstant string) (cleaning.Plan, error) {
	p := cleaning.Plan{Drop: append([]string(nil), r.Drop...), Directives: map[string]cleaning.Directive{}}
	names := make([]string, 0, len(r.Fill))
	for name := range r.Fill {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		d, err := ParseFill(r.Fill[name], defaultConstant)
		if err != nil {
			return cleaning.Plan{}, fmt.Errorf("fill %s: %w", name, err)
		}
		p.Directives[name] = d
	}
	return p, nil
}

// FromReport builds a skeleton recipe with every column that needs
// attention set to "none".
func FromReport(rep *analysis.Report, source string) *Recipe {
	r := &Recipe{Source: source, CreatedAt: time.Now().UTC().Truncate(time.Second), Fill: map[string]string{}}
	for _, name := range rep.NeedsAttention() {
		r.Fill[name] = cleaning.DoNothing.String()
	}
	return r
}
