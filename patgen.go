// Package patgen generates random strings from regular-expression-like
// patterns. Instead of matching input against a pattern it produces strings
// the pattern would plausibly match, which makes it a compact way to describe
// fixture data:
//
//	email, err := patgen.Get(`[\w.]+@[\w]+\.(com|net|org)`)
//
// Supported syntax: literals, "." and character classes with ranges, negation
// and POSIX names ([:alpha:], [[:digit:]], [:umlaut+:], ...), escapes (\d \w \s and their
// negations, \xHH, \uXXXX, \u{X...}, \#N), the quantifiers ? * + {n} {m,n}
// {,n} {n,} and choice lists {2|4-6|8}, alternation, capturing, named,
// non-capturing, comment and shuffle groups, backreferences (\1, \k{name})
// and subroutine calls (\g1, \g{name}).
//
// Unbounded quantifiers are capped at InfiniteQuantifierMax repetitions.
// Malformed syntax never fails: it is rendered literally or ignored.
package patgen

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig is returned by Config.Validate.
	ErrInvalidConfig = errors.New("patgen: invalid config")

	// ErrUnknownPattern is returned when a catalog has no pattern of the
	// requested name.
	ErrUnknownPattern = errors.New("patgen: unknown pattern")
)

// EntropyError reports a failure of the Source.
type EntropyError struct {
	Err error
}

func (e *EntropyError) Error() string {
	return "patgen: reading randomness: " + e.Err.Error()
}

func (e *EntropyError) Unwrap() error {
	return e.Err
}

// Config controls the limits of a Generator.
//
// Example:
//
//	config := patgen.DefaultConfig()
//	config.QuantifierLimit = 8
//	config.Source = patgen.NewSeededSource(42)
//	gen, err := patgen.New(config)
type Config struct {
	// QuantifierLimit caps every repetition count, whatever the pattern
	// declares.
	// Default: 100
	QuantifierLimit int `yaml:"quantifier_limit"`

	// ResultLimit is the number of runes after which no further tokens are
	// rendered. A token already being rendered completes its current
	// repetition, so results may exceed it slightly.
	// Default: 10000
	ResultLimit int `yaml:"result_limit"`

	// MaxDepth limits how deeply subroutine calls may nest during one
	// render. Calls beyond it render nothing.
	// Default: 32
	MaxDepth int `yaml:"max_depth"`

	// WorkLimit bounds the number of render steps (group bodies entered and
	// single tokens rendered) of one render, counting steps that emit
	// nothing. Rendering stops quietly once it is spent.
	// Default: 1000000
	WorkLimit int `yaml:"work_limit"`

	// Source supplies randomness. Nil means CryptoSource().
	Source Source `yaml:"-"`
}

// DefaultConfig returns the default limits with a crypto/rand source.
func DefaultConfig() Config {
	return Config{
		QuantifierLimit: 100,
		ResultLimit:     10000,
		MaxDepth:        32,
		WorkLimit:       1000000,
	}
}

// Validate checks that every limit is usable.
func (c *Config) Validate() error {
	if c.QuantifierLimit < 0 {
		return fmt.Errorf("%w: QuantifierLimit must be >= 0, got %d", ErrInvalidConfig, c.QuantifierLimit)
	}
	if c.ResultLimit < 0 {
		return fmt.Errorf("%w: ResultLimit must be >= 0, got %d", ErrInvalidConfig, c.ResultLimit)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("%w: MaxDepth must be >= 0, got %d", ErrInvalidConfig, c.MaxDepth)
	}
	if c.WorkLimit < 0 {
		return fmt.Errorf("%w: WorkLimit must be >= 0, got %d", ErrInvalidConfig, c.WorkLimit)
	}
	return nil
}

// Generator renders patterns. It holds no per-call state and is safe for
// concurrent use as long as its Source is.
type Generator struct {
	cfg Config
}

// New returns a Generator using config.
func New(config Config) (*Generator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if config.Source == nil {
		config.Source = CryptoSource()
	}
	return &Generator{cfg: config}, nil
}

// MustNew is like [New] but panics if the config is invalid.
func MustNew(config Config) *Generator {
	g, err := New(config)
	if err != nil {
		panic("patgen: MustNew: " + err.Error())
	}
	return g
}

// Get returns one string generated from pattern. The only error it returns
// is an *EntropyError.
func (g *Generator) Get(pattern string) (string, error) {
	if pattern == "" {
		return "", nil
	}
	root, err := tokenize(pattern, g.cfg.Source)
	if err != nil {
		return "", err
	}
	return newRenderState(&g.cfg, g.cfg.Source).render(root)
}

// Some returns max(qty, 1) strings, each tokenized and rendered
// independently.
func (g *Generator) Some(pattern string, qty int) ([]string, error) {
	out := make([]string, max(qty, 1))
	for i := range out {
		s, err := g.Get(pattern)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}

// Tokenize returns the parse of pattern: group 0 wrapping the whole pattern.
// Choice-list quantifiers are resolved with the generator's Source, so only
// patterns without them parse identically every time.
func (g *Generator) Tokenize(pattern string) (*Group, error) {
	return tokenize(pattern, g.cfg.Source)
}

var defaultGenerator = MustNew(DefaultConfig())

// Get generates one string from pattern with the default configuration.
func Get(pattern string) (string, error) {
	return defaultGenerator.Get(pattern)
}

// Some generates max(qty, 1) strings from pattern with the default
// configuration.
func Some(pattern string, qty int) ([]string, error) {
	return defaultGenerator.Some(pattern, qty)
}

// MustGet is like [Get] but panics if randomness cannot be read.
func MustGet(pattern string) string {
	s, err := Get(pattern)
	if err != nil {
		panic("patgen: MustGet: " + err.Error())
	}
	return s
}
