package config

import (
	"fmt"
	"strings"
)

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true, "": true,
}

// Validate checks the configuration for errors.
// Returns a slice of error messages (empty if valid).
func (c *Config) Validate() []string {
	var errs []string

	if c.Server.URL != "" &&
		!strings.HasPrefix(c.Server.URL, "http://") &&
		!strings.HasPrefix(c.Server.URL, "https://") {
		errs = append(errs, fmt.Sprintf("server.url: must start with http:// or https://, got %q", c.Server.URL))
	}
	if c.Server.Timeout < 0 {
		errs = append(errs, "server.timeout: must not be negative")
	}

	if c.Import.Delay < 0 {
		errs = append(errs, "import.delay: must not be negative")
	}
	if c.Import.MaxAdd < 0 {
		errs = append(errs, "import.max_add: must not be negative (0 means unlimited)")
	}

	if c.Match.MaxChoices < 1 {
		errs = append(errs, fmt.Sprintf("match.max_choices: must be at least 1, got %d", c.Match.MaxChoices))
	}

	if !validLogLevels[c.Log.Level] {
		errs = append(errs, fmt.Sprintf("log.level: must be one of debug, info, warn, error; got %q", c.Log.Level))
	}

	return errs
}
