package config

import (
	"flag"
	"fmt"
	"strings"
)

type kvList []string

func (l *kvList) String() string {
	return strings.Join(*l, ",")
}

func (l *kvList) Set(value string) error {
	*l = append(*l, value)
	return nil
}

// Parse binds the config flags plus -config (YAML file) and -set key=value
// (repeatable) to fs and parses args. Precedence, lowest first: defaults,
// the YAML file, explicit flags, -set overrides.
func Parse(fs *flag.FlagSet, args []string) (Config, error) {
	c := DefaultConfig()
	c.Bind(fs)
	path := fs.String("config", "", "YAML config file")
	var overrides kvList
	fs.Var(&overrides, "set", "override in key=value form (repeatable)")
	if err := fs.Parse(args); err != nil {
		return c, err
	}

	if *path != "" {
		explicit := map[string]string{}
		fs.Visit(func(f *flag.Flag) {
			if f.Name != "config" && f.Name != "set" {
				explicit[f.Name] = f.Value.String()
			}
		})
		loaded, err := Load(*path)
		if err != nil {
			return c, err
		}
		// The bound flags point into c, so re-setting them layers the
		// explicit values over the file.
		c = loaded
		for name, v := range explicit {
			if err := fs.Set(name, v); err != nil {
				return c, fmt.Errorf("flag -%s: %w", name, err)
			}
		}
	}

	kv := make(map[string]string, len(overrides))
	for _, o := range overrides {
		key, value, ok := strings.Cut(o, "=")
		if !ok {
			return c, fmt.Errorf("-set %q: expected key=value", o)
		}
		kv[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	if err := c.Apply(kv); err != nil {
		return c, err
	}
	return c, c.Validate()
}
