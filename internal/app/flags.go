package app

import "flag"

// Config represents the command-line parameters for the GUI front-end.
type Config struct {
	Scale    int
	TPS      int
	HUDWidth int
	Layer    int
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{Scale: 32, TPS: 4, HUDWidth: 240}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "generations per second while auto-advancing")
	fs.IntVar(&c.HUDWidth, "hud", c.HUDWidth, "HUD panel width in pixels (0 hides it)")
	fs.IntVar(&c.Layer, "layer", c.Layer, "depth layer shown at startup")
}
