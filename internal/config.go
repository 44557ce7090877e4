package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"
)

// DefaultFilePatterns are tried in order when looking up the export for a month.
// {month} is replaced with the YYYY-MM month key.
var DefaultFilePatterns = []string{
	"Kategorien-{month}.csv",
	"Kategorien-{month}.xlsx",
	"Kategorien-{month}.json",
}

const (
	DefaultDelimiter = ";"
	DefaultEncoding  = "utf-8"
)

// ExcludeRule drops categories matching a pattern before they are merged
type ExcludeRule struct {
	Pattern string `yaml:"pattern"`

	regex *regexp.Regexp `yaml:"-"`
}

// Group merges every category matching one of its patterns into a single row
type Group struct {
	Name     string   `yaml:"name"`
	Patterns []string `yaml:"patterns"`

	regexes []*regexp.Regexp `yaml:"-"`
}

type Config struct {
	// Delimiter separates the fields of a csv export (default ";")
	Delimiter string `yaml:"delimiter,omitempty"`

	// Encoding of the csv exports, e.g. "utf-8" or "windows-1252"
	Encoding string `yaml:"encoding,omitempty"`

	// FilePatterns overrides DefaultFilePatterns
	FilePatterns []string `yaml:"file_patterns,omitempty"`

	// StrictCoverage rejects files whose range is not exactly the first to the last day of the month
	StrictCoverage bool `yaml:"strict_coverage,omitempty"`

	// DecimalComma writes csv amounts with a decimal comma
	DecimalComma bool `yaml:"decimal_comma,omitempty"`

	// Currency is used for display when the exports carry none
	Currency string `yaml:"currency,omitempty"`

	Groups []Group `yaml:"groups,omitempty"`

	// Exclude is a list of exclusion rules (can be strings or objects)
	Exclude []yaml.Node `yaml:"exclude,omitempty"`

	excludeRules []ExcludeRule `yaml:"-"`
}

// DefaultConfigPath returns the default config file path (~/.spending-combiner/config.yaml)
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".spending-combiner", "config.yaml")
}

// NewDefaultConfig creates a config with every default filled in.
// Use this when no config file exists.
func NewDefaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	for i := range cfg.Groups {
		if cfg.Groups[i].Name == "" {
			return nil, fmt.Errorf("group %d has no name", i+1)
		}
		for _, pattern := range cfg.Groups[i].Patterns {
			re, err := regexp.Compile(pattern)
			if err != nil {
				return nil, fmt.Errorf("invalid group pattern %q: %w", pattern, err)
			}
			cfg.Groups[i].regexes = append(cfg.Groups[i].regexes, re)
		}
	}

	// Parse exclude rules (supports both strings and objects)
	for _, node := range cfg.Exclude {
		var rule ExcludeRule

		if node.Kind == yaml.ScalarNode {
			rule.Pattern = node.Value
		} else if node.Kind == yaml.MappingNode {
			if err := node.Decode(&rule); err != nil {
				return nil, fmt.Errorf("parsing exclude rule: %w", err)
			}
		} else {
			return nil, fmt.Errorf("invalid exclude rule format")
		}

		re, err := regexp.Compile(rule.Pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", rule.Pattern, err)
		}
		rule.regex = re
		cfg.excludeRules = append(cfg.excludeRules, rule)
	}

	if len([]rune(cfg.Delimiter)) > 1 {
		return nil, fmt.Errorf("delimiter must be a single character, got %q", cfg.Delimiter)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Delimiter == "" {
		c.Delimiter = DefaultDelimiter
	}
	if c.Encoding == "" {
		c.Encoding = DefaultEncoding
	}
	if len(c.FilePatterns) == 0 {
		c.FilePatterns = append([]string(nil), DefaultFilePatterns...)
	}
}

func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	// Create parent directories if they don't exist
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// ShouldExclude returns true if the category matches any exclude rule
func (c *Config) ShouldExclude(category CategoryPath) bool {
	if c == nil {
		return false
	}
	for _, rule := range c.excludeRules {
		if rule.regex.MatchString(string(category)) {
			return true
		}
	}
	return false
}

// Resolve returns the row a category is merged into: the name of the first matching group,
// or the category itself.
func (c *Config) Resolve(category CategoryPath) CategoryPath {
	if c == nil {
		return category
	}
	for _, group := range c.Groups {
		for _, re := range group.regexes {
			if re.MatchString(string(category)) {
				return CategoryPath(group.Name)
			}
		}
	}
	return category
}

// Delim returns the csv delimiter as a rune.
func (c *Config) Delim() rune {
	if c == nil || c.Delimiter == "" {
		return []rune(DefaultDelimiter)[0]
	}
	return []rune(c.Delimiter)[0]
}
