// Package config handles TOML configuration loading with environment variable substitution.
package config

import (
	"fmt"
	"os"
	"regexp"
	"time"

	"github.com/BurntSushi/toml"
)

// Duration decodes TOML values like "30s" or "250ms".
type Duration time.Duration

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Config is the root configuration structure.
type Config struct {
	Server Server `toml:"server"`
	Import Import `toml:"import"`
	Match  Match  `toml:"match"`
	Add    Add    `toml:"add"`
	Log    Log    `toml:"log"`
	Files  Files  `toml:"files"`
}

type Server struct {
	URL     string   `toml:"url"`
	APIKey  string   `toml:"api_key"`
	Timeout Duration `toml:"timeout"`
}

type Import struct {
	InputFile string   `toml:"input_file"`
	Delay     Duration `toml:"delay"`
	MaxAdd    int      `toml:"max_add"` // 0 = unlimited
}

type Match struct {
	StrictYear  bool `toml:"strict_year"`
	Interactive bool `toml:"interactive"`
	MaxChoices  int  `toml:"max_choices"`
}

type Add struct {
	Monitored   bool `toml:"monitored"`
	SearchOnAdd bool `toml:"search_on_add"`
	ConfirmEach bool `toml:"confirm_each"`
}

type Log struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type Files struct {
	State    string `toml:"state"`
	Settings string `toml:"settings"`
	Report   string `toml:"report"`
	History  string `toml:"history"`
}

// Default returns a Config populated with defaults. Decoding a config file
// into it overrides only the keys the file sets.
func Default() *Config {
	return &Config{
		Server: Server{
			URL:     "http://127.0.0.1:7878",
			Timeout: Duration(30 * time.Second),
		},
		Import: Import{
			InputFile: "movies.txt",
			Delay:     Duration(250 * time.Millisecond),
		},
		Match: Match{
			StrictYear:  true,
			Interactive: true,
			MaxChoices:  8,
		},
		Add: Add{
			Monitored:   true,
			SearchOnAdd: true,
			ConfirmEach: true,
		},
		Log: Log{
			Level: "info",
			File:  "arrimport.log",
		},
		Files: Files{
			State:    "arrimport.state.json",
			Settings: "arrimport.settings.json",
			Report:   "arrimport.dryrun.txt",
			History:  "arrimport.db",
		},
	}
}

// Load reads and parses the configuration file. A missing file yields the
// defaults; a present file must parse, resolve all ${VAR} references, and
// validate.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	content, missing := substituteEnvVars(string(data))
	if len(missing) > 0 {
		return nil, &Error{Path: path, Missing: missing}
	}

	if _, err := toml.Decode(content, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, &Error{Path: path, Errors: errs}
	}

	return cfg, nil
}

// substituteEnvVars replaces ${VAR_NAME} with environment variable values
// and reports the names that were not set.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

func substituteEnvVars(content string) (string, []string) {
	var missing []string
	out := envVarPattern.ReplaceAllStringFunc(content, func(match string) string {
		varName := match[2 : len(match)-1]
		if value, ok := os.LookupEnv(varName); ok {
			return value
		}
		missing = append(missing, varName)
		return match
	})
	return out, missing
}
