package patgen

import (
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v2"
)

// Catalog is a named set of patterns sharing one Generator, typically loaded
// from a YAML fixture description:
//
//	limits:
//	  quantifier_limit: 20
//	patterns:
//	  zip: '\d{5}'
//	  email: '[\w.]+@[\w]+\.(com|net|org)'
type Catalog struct {
	patterns map[string]string
	gen      *Generator
}

type catalogFile struct {
	Limits   *Config           `yaml:"limits"`
	Patterns map[string]string `yaml:"patterns"`
}

// ParseCatalog parses a YAML catalog. Limits missing from the document keep
// their DefaultConfig value. A nil src means CryptoSource().
func ParseCatalog(data []byte, src Source) (*Catalog, error) {
	cfg := DefaultConfig()
	file := catalogFile{Limits: &cfg}
	if err := yaml.UnmarshalStrict(data, &file); err != nil {
		return nil, fmt.Errorf("patgen: parsing catalog: %w", err)
	}
	if file.Limits != nil {
		cfg = *file.Limits
	}
	cfg.Source = src
	gen, err := New(cfg)
	if err != nil {
		return nil, err
	}
	if file.Patterns == nil {
		file.Patterns = map[string]string{}
	}
	return &Catalog{patterns: file.Patterns, gen: gen}, nil
}

// LoadCatalog reads and parses the catalog at path.
func LoadCatalog(path string, src Source) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseCatalog(data, src)
}

// Names returns the pattern names in sorted order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.patterns))
	for name := range c.patterns {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Pattern returns the pattern registered under name.
func (c *Catalog) Pattern(name string) (string, bool) {
	p, ok := c.patterns[name]
	return p, ok
}

// Get generates one string from the pattern registered under name.
func (c *Catalog) Get(name string) (string, error) {
	p, ok := c.patterns[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownPattern, name)
	}
	return c.gen.Get(p)
}

// Some generates max(qty, 1) strings from the pattern registered under name.
func (c *Catalog) Some(name string, qty int) ([]string, error) {
	p, ok := c.patterns[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPattern, name)
	}
	return c.gen.Some(p, qty)
}
