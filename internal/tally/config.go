package tally

import (
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-yaml"
)

// BreakLevel selects how ballots are decomposed before merging.
type BreakLevel int

// BreakLevel values.
const (
	BreakWhole  BreakLevel = iota // entire ballots
	BreakBlocks                   // indentation delimited blocks
	BreakLines                    // individual lines
)

func (lvl BreakLevel) String() string {
	switch lvl {
	case BreakWhole:
		return "whole"
	case BreakBlocks:
		return "blocks"
	case BreakLines:
		return "lines"
	default:
		return fmt.Sprintf("BreakLevel(%d)", int(lvl))
	}
}

// Config holds tally options, as carried by a request or loaded from a file.
// Integer switches use 0 for off and 1 for on.
type Config struct {
	// SimCutoff is a similarity threshold for fuzzy ballot matching; it is
	// accepted and kept, but not used.
	SimCutoff float64 `json:"sim_cutoff" yaml:"sim_cutoff"`

	BreakLevel BreakLevel `json:"break_level" yaml:"break_level"`
	ReferDir   int        `json:"refer_dir" yaml:"refer_dir"`

	// VoteMarker is a regular expression matching the ballot symbol that
	// starts a vote line, after any run of non-word characters.
	VoteMarker string `json:"vote_marker" yaml:"vote_marker"`

	// InstantRunoff is reserved; only 0 is valid.
	InstantRunoff int `json:"instant_runoff" yaml:"instant_runoff"`

	SortHighest int `json:"sort_highest" yaml:"sort_highest"`

	// Timeout is the tally deadline in seconds; 0 disables it.
	Timeout float64 `json:"timeout" yaml:"timeout"`

	// Workers bounds parallel per-post extraction; 1 extracts serially.
	Workers int `json:"workers" yaml:"workers"`
}

// DefaultConfig returns the configuration used when a request specifies none.
func DefaultConfig() Config {
	return Config{
		SimCutoff:  0.95,
		BreakLevel: BreakWhole,
		VoteMarker: DefaultVoteMarker,
		Timeout:    10,
		Workers:    1,
	}
}

// Deadline returns Timeout as a duration.
func (cfg Config) Deadline() time.Duration {
	return time.Duration(cfg.Timeout * float64(time.Second))
}

// Validate checks every option, returning a *ConfigError for the first one
// found invalid.
func (cfg Config) Validate() error {
	if cfg.SimCutoff < 0 {
		return &ConfigError{"sim_cutoff", fmt.Errorf("%v may not be negative", cfg.SimCutoff)}
	}
	if cfg.BreakLevel < BreakWhole || cfg.BreakLevel > BreakLines {
		return &ConfigError{"break_level", fmt.Errorf("%d not in 0..2", int(cfg.BreakLevel))}
	}
	if err := checkSwitch("refer_dir", cfg.ReferDir); err != nil {
		return err
	}
	if cfg.InstantRunoff != 0 {
		return &ConfigError{"instant_runoff", fmt.Errorf("%w mode %d", ErrUnsupported, cfg.InstantRunoff)}
	}
	if err := checkSwitch("sort_highest", cfg.SortHighest); err != nil {
		return err
	}
	if cfg.Timeout < 0 {
		return &ConfigError{"timeout", fmt.Errorf("%v may not be negative", cfg.Timeout)}
	}
	if cfg.Workers < 0 {
		return &ConfigError{"workers", fmt.Errorf("%d may not be negative", cfg.Workers)}
	}
	if _, err := CompileMarker(cfg.VoteMarker); err != nil {
		return err
	}
	return nil
}

func checkSwitch(field string, n int) error {
	if n != 0 && n != 1 {
		return &ConfigError{field, fmt.Errorf("%d not in 0..1", n)}
	}
	return nil
}

// ParseConfig decodes YAML over the given base configuration and validates
// the result. Unknown fields are an error.
func ParseConfig(data []byte, base Config) (Config, error) {
	cfg := base
	if err := yaml.UnmarshalWithOptions(data, &cfg, yaml.DisallowUnknownField()); err != nil {
		return base, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return base, err
	}
	return cfg, nil
}

// LoadConfig reads a YAML configuration file over DefaultConfig.
func LoadConfig(name string) (Config, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return DefaultConfig(), err
	}
	cfg, err := ParseConfig(data, DefaultConfig())
	if err != nil {
		return cfg, fmt.Errorf("loading %v: %w", name, err)
	}
	return cfg, nil
}
