package config

import "time"

// Config is the top-level gateway configuration.
type Config struct {
	Listener  ListenerConfig   `yaml:"listener"`
	Log       LogConfig        `yaml:"log"`
	Cache     CacheConfig      `yaml:"cache"`
	Routes    []RouteConfig    `yaml:"routes"`
	Fallbacks []FallbackConfig `yaml:"fallbacks"`
}

// ListenerConfig configures the HTTP listener.
type ListenerConfig struct {
	Address           string   `yaml:"address"`
	MetricsAddress    string   `yaml:"metricsAddress"`
	ReadTimeout       Duration `yaml:"readTimeout"`
	ReadHeaderTimeout Duration `yaml:"readHeaderTimeout"`
	WriteTimeout      Duration `yaml:"writeTimeout"`
	ShutdownTimeout   Duration `yaml:"shutdownTimeout"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// CacheConfig configures the match cache.
type CacheConfig struct {
	Capacity int `yaml:"capacity"`
}

// RouteConfig is one route table entry. Exactly one of Exact, Pattern,
// Prefix, or Contains must be set; the field used determines the route
// kind at registration time.
type RouteConfig struct {
	Name     string         `yaml:"name"`
	Exact    string         `yaml:"exact"`
	Pattern  string         `yaml:"pattern"`
	Prefix   string         `yaml:"prefix"`
	Contains string         `yaml:"contains"`
	Methods  []string       `yaml:"methods"`
	Response ResponseConfig `yaml:"response"`
}

// FallbackConfig is the catch-all handler for the listed methods.
type FallbackConfig struct {
	Methods  []string       `yaml:"methods"`
	Response ResponseConfig `yaml:"response"`
}

// ResponseConfig describes the static response the built-in handler
// serves for a matched route.
type ResponseConfig struct {
	Status      int    `yaml:"status"`
	ContentType string `yaml:"contentType"`
	Body        string `yaml:"body"`
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Listener: ListenerConfig{
			Address:           ":8080",
			MetricsAddress:    ":9090",
			ReadTimeout:       Duration(10 * time.Second),
			ReadHeaderTimeout: Duration(5 * time.Second),
			WriteTimeout:      Duration(10 * time.Second),
			ShutdownTimeout:   Duration(30 * time.Second),
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
		Cache: CacheConfig{},
	}
}

// applyDefaults fills zero-valued fields from DefaultConfig.
func (c *Config) applyDefaults() {
	def := DefaultConfig()

	if c.Listener.Address == "" {
		c.Listener.Address = def.Listener.Address
	}
	if c.Listener.MetricsAddress == "" {
		c.Listener.MetricsAddress = def.Listener.MetricsAddress
	}
	if c.Listener.ReadTimeout == 0 {
		c.Listener.ReadTimeout = def.Listener.ReadTimeout
	}
	if c.Listener.ReadHeaderTimeout == 0 {
		c.Listener.ReadHeaderTimeout = def.Listener.ReadHeaderTimeout
	}
	if c.Listener.WriteTimeout == 0 {
		c.Listener.WriteTimeout = def.Listener.WriteTimeout
	}
	if c.Listener.ShutdownTimeout == 0 {
		c.Listener.ShutdownTimeout = def.Listener.ShutdownTimeout
	}
	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}
	if c.Log.Format == "" {
		c.Log.Format = def.Log.Format
	}
	if c.Log.Output == "" {
		c.Log.Output = def.Log.Output
	}
}
