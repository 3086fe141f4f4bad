package config

import (
	"fmt"

	"github.com/vyrodovalexey/avrouter/internal/router"
	"github.com/vyrodovalexey/avrouter/internal/util"
)

// validLogLevels are the accepted log level strings.
var validLogLevels = map[string]struct{}{
	"debug": {}, "info": {}, "warn": {}, "error": {},
}

// ValidateConfig validates a loaded configuration. Defects are
// reported synchronously, before the serving phase begins.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return util.NewConfigError("", "nil configuration")
	}

	if cfg.Listener.Address == "" {
		return util.NewConfigError("listener.address", "must not be empty")
	}

	if _, ok := validLogLevels[cfg.Log.Level]; !ok {
		return util.NewConfigError("log.level",
			fmt.Sprintf("unknown level %q", cfg.Log.Level))
	}

	if cfg.Cache.Capacity < 0 {
		return util.NewConfigError("cache.capacity", "must not be negative")
	}

	names := make(map[string]struct{}, len(cfg.Routes))
	for i, route := range cfg.Routes {
		field := fmt.Sprintf("routes[%d]", i)

		if route.Name == "" {
			return util.NewConfigError(field+".name", "must not be empty")
		}
		if _, dup := names[route.Name]; dup {
			return util.NewConfigError(field+".name",
				fmt.Sprintf("duplicate route name %q", route.Name))
		}
		names[route.Name] = struct{}{}

		if err := validateRouteMatch(field, route); err != nil {
			return err
		}
		if err := validateMethods(field+".methods", route.Methods); err != nil {
			return err
		}
		if err := validateResponse(field+".response", route.Response); err != nil {
			return err
		}
	}

	fallbackMethods := make(map[string]struct{})
	for i, fb := range cfg.Fallbacks {
		field := fmt.Sprintf("fallbacks[%d]", i)

		if err := validateMethods(field+".methods", fb.Methods); err != nil {
			return err
		}
		for _, m := range fb.Methods {
			if _, dup := fallbackMethods[m]; dup {
				return util.NewConfigError(field+".methods",
					fmt.Sprintf("fallback already registered for %s", m))
			}
			fallbackMethods[m] = struct{}{}
		}
		if err := validateResponse(field+".response", fb.Response); err != nil {
			return err
		}
	}

	return nil
}

// validateRouteMatch checks that exactly one match field is set.
func validateRouteMatch(field string, route RouteConfig) error {
	set := 0
	for _, v := range []string{route.Exact, route.Pattern, route.Prefix, route.Contains} {
		if v != "" {
			set++
		}
	}
	if set != 1 {
		return util.NewConfigError(field,
			"exactly one of exact, pattern, prefix, or contains must be set")
	}
	return nil
}

// validateMethods checks that the method list is non-empty and known.
func validateMethods(field string, methods []string) error {
	if len(methods) == 0 {
		return util.NewConfigError(field, "must list at least one HTTP method")
	}
	for _, m := range methods {
		if !router.IsValidMethod(m) {
			return util.NewConfigError(field,
				fmt.Sprintf("unknown HTTP method %q", m))
		}
	}
	return nil
}

// validateResponse checks the static response definition.
func validateResponse(field string, resp ResponseConfig) error {
	if resp.Status != 0 && (resp.Status < 100 || resp.Status > 599) {
		return util.NewConfigError(field+".status",
			fmt.Sprintf("invalid HTTP status %d", resp.Status))
	}
	return nil
}
