package location

import (
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the file-backed subset of the component configuration. Zero
// values mean "keep the default".
type Config struct {
	AccessToken string `yaml:"access_token"`
	DelayMS     int    `yaml:"delay_ms"`
	BlurGraceMS int    `yaml:"blur_grace_ms"`
	Limit       int    `yaml:"limit"`

	RoutePath    string `yaml:"route_path"`
	SearchParam  string `yaml:"search_param"`
	LimitParam   string `yaml:"limit_param"`
	DefaultLimit int    `yaml:"default_limit"`
	MaxLimit     int    `yaml:"max_limit"`
}

func LoadConfig(r io.Reader) (Config, error) {
	var cfg Config
	if r == nil {
		return cfg, fmt.Errorf("location: missing config reader")
	}
	decoder := yaml.NewDecoder(r)
	if err := decoder.Decode(&cfg); err != nil {
		if err == io.EOF {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("location: decode config: %w", err)
	}
	return cfg, nil
}

// Options converts the loaded values into option setters, skipping zeros.
func (c Config) Options() []OptionFn {
	var fns []OptionFn
	if c.AccessToken != "" {
		fns = append(fns, WithAccessToken(c.AccessToken))
	}
	if c.DelayMS > 0 {
		fns = append(fns, WithDelay(time.Duration(c.DelayMS)*time.Millisecond))
	}
	if c.BlurGraceMS > 0 {
		fns = append(fns, WithBlurGrace(time.Duration(c.BlurGraceMS)*time.Millisecond))
	}
	if c.Limit > 0 {
		fns = append(fns, WithLimit(c.Limit))
	}
	if c.RoutePath != "" {
		fns = append(fns, WithRoutePath(c.RoutePath))
	}
	if c.SearchParam != "" {
		fns = append(fns, WithSearchParam(c.SearchParam))
	}
	if c.LimitParam != "" {
		fns = append(fns, WithLimitParam(c.LimitParam))
	}
	if c.DefaultLimit > 0 {
		fns = append(fns, WithDefaultLimit(c.DefaultLimit))
	}
	if c.MaxLimit > 0 {
		fns = append(fns, WithMaxLimit(c.MaxLimit))
	}
	return fns
}
