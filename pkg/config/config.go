// Package config loads the YAML configuration and applies environment
// overrides.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/japaniel/alifba/pkg/questions"
	"github.com/japaniel/alifba/pkg/selection"
)

// Environment variables that override the file.
const (
	EnvDB      = "ALIFBA_DB"
	EnvContent = "ALIFBA_CONTENT"
	EnvLogMode = "ALIFBA_LOG_MODE"
	EnvWorkers = "ALIFBA_WORKERS"
)

//go:embed default.yaml
var defaultYAML []byte

type Config struct {
	Database     Database     `yaml:"database"`
	Content      Content      `yaml:"content"`
	Logging      Logging      `yaml:"logging"`
	Segmentation Segmentation `yaml:"segmentation"`
	Ingest       Ingest       `yaml:"ingest"`
	Teacher      Teacher      `yaml:"teacher"`
}

type Database struct {
	Path string `yaml:"path"`
}

type Content struct {
	// Path is a pack file or a directory of per-table files.
	Path string `yaml:"path"`
	// URL of a .tar.gz pack downloaded when Path is missing.
	URL string `yaml:"url"`
}

type Logging struct {
	Mode string `yaml:"mode"`
}

type Segmentation struct {
	LamID           string   `yaml:"lam_id"`
	CollapseSymbols []string `yaml:"collapse_symbols"`
}

type Ingest struct {
	Workers       int           `yaml:"workers"`
	BatchSize     int           `yaml:"batch_size"`
	FlushInterval time.Duration `yaml:"flush_interval"`
	StripTashkeel bool          `yaml:"strip_tashkeel"`
	// Counted combos and ligatures stay whole unless separated here.
	SeparateDiacritics bool `yaml:"separate_diacritics"`
	SeparateVariations bool `yaml:"separate_variations"`
}

// Teacher holds the defaults every question builder starts from.
type Teacher struct {
	VerbosePacks          bool   `yaml:"verbose_packs"`
	CorrectSeverity       string `yaml:"correct_severity"`
	WrongSeverity         string `yaml:"wrong_severity"`
	CorrectHistory        string `yaml:"correct_history"`
	WrongHistory          string `yaml:"wrong_history"`
	SortPacksByDifficulty bool   `yaml:"sort_packs_by_difficulty"`
}

// Default returns the embedded configuration.
func Default() (*Config, error) {
	var c Config
	if err := yaml.Unmarshal(defaultYAML, &c); err != nil {
		return nil, fmt.Errorf("embedded config: %w", err)
	}
	return &c, nil
}

// Load reads the file at path over the embedded defaults, then applies the
// environment. An empty path uses the defaults alone.
func Load(path string) (*Config, error) {
	c, err := Default()
	if err != nil {
		return nil, err
	}
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(b, c); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}
	c.applyEnv(os.Getenv)
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) applyEnv(getenv func(string) string) {
	if v := strings.TrimSpace(getenv(EnvDB)); v != "" {
		c.Database.Path = v
	}
	if v := strings.TrimSpace(getenv(EnvContent)); v != "" {
		c.Content.Path = v
	}
	if v := strings.TrimSpace(getenv(EnvLogMode)); v != "" {
		c.Logging.Mode = v
	}
	if v := strings.TrimSpace(getenv(EnvWorkers)); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Ingest.Workers = n
		}
	}
}

// Validate checks the values that would otherwise fail late.
func (c *Config) Validate() error {
	if c.Ingest.Workers < 1 {
		return fmt.Errorf("ingest.workers must be positive, got %d", c.Ingest.Workers)
	}
	if c.Ingest.BatchSize < 1 {
		return fmt.Errorf("ingest.batch_size must be positive, got %d", c.Ingest.BatchSize)
	}
	_, err := c.Teacher.Parameters()
	return err
}

// Parameters turns the teacher section into builder defaults.
func (t Teacher) Parameters() (questions.Parameters, error) {
	p := questions.DefaultParameters()
	var err error
	if p.CorrectSeverity, err = selection.ParseSeverity(t.CorrectSeverity); err != nil {
		return p, fmt.Errorf("teacher.correct_severity: %w", err)
	}
	if p.WrongSeverity, err = selection.ParseSeverity(t.WrongSeverity); err != nil {
		return p, fmt.Errorf("teacher.wrong_severity: %w", err)
	}
	if p.CorrectHistory, err = selection.ParseHistoryPolicy(t.CorrectHistory); err != nil {
		return p, fmt.Errorf("teacher.correct_history: %w", err)
	}
	if p.WrongHistory, err = selection.ParseHistoryPolicy(t.WrongHistory); err != nil {
		return p, fmt.Errorf("teacher.wrong_history: %w", err)
	}
	p.SortPacksByDifficulty = t.SortPacksByDifficulty
	return p, nil
}
