package compositor

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config configures a Compositor at construction, directly modeled on
// gogpu.Config/DefaultConfig/With*: a plain struct with a constructor
// and fluent setters, no framework beneath it.
type Config struct {
	// SeatName is the logical seat this compositor drives. Defaults to
	// DefaultSeatName ("seat0"), per the original's default_seat and
	// spec.md §6.
	SeatName string

	// DefaultVT is the virtual terminal acquired at startup if none is
	// already active, per spec.md §6 ("Default VT: 2 on init").
	DefaultVT uint8

	// Terminate is invoked by the built-in CTRL+ALT+BackSpace binding.
	// The original calls wl_display_terminate directly; since this
	// module owns no display loop itself, the host supplies the hook.
	Terminate func()
}

// DefaultSeatName is the seat name used when Config.SeatName is empty,
// matching the original's static default_seat string.
const DefaultSeatName = "seat0"

// DefaultVT is the virtual terminal acquired at startup unless
// Config.DefaultVT overrides it (spec.md §6).
const DefaultVT uint8 = 2

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		SeatName:  DefaultSeatName,
		DefaultVT: DefaultVT,
	}
}

// WithSeatName returns a copy with SeatName set.
func (c Config) WithSeatName(name string) Config {
	c.SeatName = name
	return c
}

// WithDefaultVT returns a copy with DefaultVT set.
func (c Config) WithDefaultVT(vt uint8) Config {
	c.DefaultVT = vt
	return c
}

// WithTerminate returns a copy with the terminate hook set.
func (c Config) WithTerminate(fn func()) Config {
	c.Terminate = fn
	return c
}

// yamlConfig is the on-disk shape of a Config file; Terminate is a
// callback and cannot be represented in YAML, so LoadConfig always
// starts from DefaultConfig() and only overrides the serializable
// fields.
type yamlConfig struct {
	SeatName  string `yaml:"seat_name"`
	DefaultVT uint8  `yaml:"default_vt"`
}

// LoadConfig reads a Config from a YAML file at path, falling back to
// DefaultConfig() for any field the file omits. Grounded on gazed-vu's
// use of gopkg.in/yaml.v3 for its own resource/config loading.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("compositor: read config %s: %w", path, err)
	}

	cfg := DefaultConfig()
	var y yamlConfig
	if err := yaml.Unmarshal(data, &y); err != nil {
		return Config{}, fmt.Errorf("compositor: parse config %s: %w", path, err)
	}
	if y.SeatName != "" {
		cfg.SeatName = y.SeatName
	}
	if y.DefaultVT != 0 {
		cfg.DefaultVT = y.DefaultVT
	}
	return cfg, nil
}
