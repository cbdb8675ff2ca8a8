// Package config holds the settings used to build an automaton world, loaded
// from defaults, a YAML file, flag-style key/value pairs and command-line flags.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"voxel-ca/internal/automaton"
)

// Triple is three integers written as "x,y,z" on the command line and as a
// three-element sequence in YAML.
type Triple [3]int

func (t Triple) String() string { return fmt.Sprintf("%d,%d,%d", t[0], t[1], t[2]) }

// Set implements flag.Value.
func (t *Triple) Set(s string) error {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return fmt.Errorf("expected x,y,z, got %q", s)
	}
	var out Triple
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return fmt.Errorf("component %d of %q: %w", i, s, err)
		}
		out[i] = v
	}
	*t = out
	return nil
}

// UnmarshalYAML accepts a sequence of exactly three integers.
func (t *Triple) UnmarshalYAML(node *yaml.Node) error {
	var vals []int
	if err := node.Decode(&vals); err != nil {
		return err
	}
	if len(vals) != 3 {
		return fmt.Errorf("line %d: expected 3 values, got %d", node.Line, len(vals))
	}
	copy(t[:], vals)
	return nil
}

// MarshalYAML writes the triple as a flow sequence.
func (t Triple) MarshalYAML() (any, error) {
	return &yaml.Node{
		Kind:  yaml.SequenceNode,
		Style: yaml.FlowStyle,
		Content: []*yaml.Node{
			{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(t[0])},
			{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(t[1])},
			{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(t[2])},
		},
	}, nil
}

// Config controls the automaton world.
type Config struct {
	Sim              string  `yaml:"sim"`
	Size             Triple  `yaml:"size"`
	Origin           Triple  `yaml:"origin"`
	DeathProbability float64 `yaml:"death_probability"`
	Seed             int64   `yaml:"seed"`
	Rule             string  `yaml:"rule"`
	Strategy         string  `yaml:"strategy"`
	Workers          int     `yaml:"workers"`
	History          int     `yaml:"history"`
}

// DefaultConfig returns the standard configuration: a 10x10x10 block offset
// to (5,0,0) with 30% of cells killed at seeding.
func DefaultConfig() Config {
	return Config{
		Sim:              "moore3d",
		Size:             Triple{10, 10, 10},
		Origin:           Triple{5, 0, 0},
		DeathProbability: 0.3,
		Seed:             42,
		Rule:             automaton.DefaultRule.String(),
		Strategy:         automaton.StrategyLocal.String(),
		Workers:          1,
		History:          automaton.DefaultHistory,
	}
}

// Load reads a YAML file on top of the defaults. Unknown keys are rejected.
func Load(path string) (Config, error) {
	c := DefaultConfig()
	f, err := os.Open(path)
	if err != nil {
		return c, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return c, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return c, fmt.Errorf("config %s: %w", path, err)
	}
	return c, nil
}

// FromMap populates the config from a string map (flag-style key/value pairs).
func FromMap(cfg map[string]string) (Config, error) {
	c := DefaultConfig()
	if err := c.Apply(cfg); err != nil {
		return c, err
	}
	return c, nil
}

// Apply overrides fields from key/value pairs. Keys: w, h, d, size, ox, oy,
// oz, origin, death, seed, rule, strategy, workers, history.
func (c *Config) Apply(cfg map[string]string) error {
	for key, v := range cfg {
		var err error
		switch key {
		case "w":
			c.Size[0], err = strconv.Atoi(v)
		case "h":
			c.Size[1], err = strconv.Atoi(v)
		case "d":
			c.Size[2], err = strconv.Atoi(v)
		case "size":
			err = c.Size.Set(v)
		case "ox":
			c.Origin[0], err = strconv.Atoi(v)
		case "oy":
			c.Origin[1], err = strconv.Atoi(v)
		case "oz":
			c.Origin[2], err = strconv.Atoi(v)
		case "origin":
			err = c.Origin.Set(v)
		case "death":
			c.DeathProbability, err = strconv.ParseFloat(v, 64)
		case "seed":
			c.Seed, err = strconv.ParseInt(v, 10, 64)
		case "rule":
			c.Rule = v
		case "strategy":
			c.Strategy = v
		case "workers":
			c.Workers, err = strconv.Atoi(v)
		case "history":
			c.History, err = strconv.Atoi(v)
		default:
			err = errors.New("unknown key")
		}
		if err != nil {
			return fmt.Errorf("config %s=%q: %w", key, v, err)
		}
	}
	return nil
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Sim, "sim", c.Sim, "simulation to run")
	fs.Var(&c.Size, "size", "grid size as w,h,d")
	fs.Var(&c.Origin, "origin", "grid origin as x,y,z")
	fs.Float64Var(&c.DeathProbability, "death", c.DeathProbability, "probability that a cell starts dead")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for simulation reset")
	fs.StringVar(&c.Rule, "rule", c.Rule, "rule as survive/birth/states/neighborhood")
	fs.StringVar(&c.Strategy, "strategy", c.Strategy, "neighbor counting strategy: local or scan")
	fs.IntVar(&c.Workers, "workers", c.Workers, "goroutines counting neighbors per generation")
	fs.IntVar(&c.History, "history", c.History, "generation fingerprints kept for cycle detection")
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	_, err := c.Options()
	return err
}

// Options converts the config into automaton world options.
func (c Config) Options() (automaton.Options, error) {
	size := automaton.Size{W: c.Size[0], H: c.Size[1], D: c.Size[2]}
	if size.W <= 0 || size.H <= 0 || size.D <= 0 {
		return automaton.Options{}, &automaton.InvalidSizeError{Size: size}
	}
	if !(c.DeathProbability >= 0 && c.DeathProbability <= 1) {
		return automaton.Options{}, &automaton.InvalidProbabilityError{P: c.DeathProbability}
	}
	rule, err := automaton.ParseRule(c.Rule)
	if err != nil {
		return automaton.Options{}, err
	}
	strategy, err := automaton.ParseStrategy(c.Strategy)
	if err != nil {
		return automaton.Options{}, err
	}
	if c.Workers < 1 {
		return automaton.Options{}, fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.History < 0 {
		return automaton.Options{}, fmt.Errorf("history must not be negative, got %d", c.History)
	}
	return automaton.Options{
		Size:             size,
		Origin:           automaton.Vec3{X: c.Origin[0], Y: c.Origin[1], Z: c.Origin[2]},
		DeathProbability: c.DeathProbability,
		Rule:             rule,
		Strategy:         strategy,
		Workers:          c.Workers,
		History:          c.History,
	}, nil
}

// Map renders the world settings as key/value pairs accepted by Apply.
func (c Config) Map() map[string]string {
	return map[string]string{
		"size":     c.Size.String(),
		"origin":   c.Origin.String(),
		"death":    strconv.FormatFloat(c.DeathProbability, 'g', -1, 64),
		"seed":     strconv.FormatInt(c.Seed, 10),
		"rule":     c.Rule,
		"strategy": c.Strategy,
		"workers":  strconv.Itoa(c.Workers),
		"history":  strconv.Itoa(c.History),
	}
}
