// Package config loads analysis, ingestion and server settings from a YAML
// file with RESILIENCE_* environment overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dd0wney/cluso-resilience/pkg/algorithms"
	"github.com/dd0wney/cluso-resilience/pkg/edgelist"
	"github.com/dd0wney/cluso-resilience/pkg/logging"
	"github.com/dd0wney/cluso-resilience/pkg/validation"
)

// EnvPrefix prefixes every environment override
const EnvPrefix = "RESILIENCE_"

// MaxLineBytesLimit caps input.max_line_bytes
const MaxLineBytesLimit = 64 << 20

// Config is the full runtime configuration
type Config struct {
	LogLevel string         `yaml:"log_level"`
	Analysis AnalysisConfig `yaml:"analysis"`
	Input    InputConfig    `yaml:"input"`
	Server   ServerConfig   `yaml:"server"`
}

// AnalysisConfig tunes the impact analyzer
type AnalysisConfig struct {
	// Workers <= 0 means one per CPU
	Workers    int    `yaml:"workers" validate:"min=0,max=4096"`
	Trials     int    `yaml:"trials" validate:"min=0,max=100000"`
	SampleSize int    `yaml:"sample_size" validate:"min=0"`
	Seed       uint64 `yaml:"seed"`
	TopN       int    `yaml:"top_n" validate:"min=0,max=1000"`
}

// InputConfig tunes edge-list parsing
type InputConfig struct {
	CommentMarkers []string `yaml:"comment_markers" validate:"dive,required"`
	MaxLineBytes   int      `yaml:"max_line_bytes" validate:"min=64"`
}

// ServerConfig configures the HTTP service
type ServerConfig struct {
	Addr         string        `yaml:"addr" validate:"required"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		LogLevel: "info",
		Analysis: AnalysisConfig{
			Trials:     100,
			SampleSize: 3,
			Seed:       1,
			TopN:       10,
		},
		Input: InputConfig{
			CommentMarkers: []string{"#", "%"},
			MaxLineBytes:   edgelist.DefaultMaxLineBytes,
		},
		Server: ServerConfig{
			Addr:         ":8080",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 5 * time.Minute,
		},
	}
}

// Load reads path over the defaults, applies environment overrides and
// validates the result. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := cfg.decode(data); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// decode rejects unknown keys so typos surface instead of silently keeping
// a default
func (c *Config) decode(data []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// ApplyEnv overlays RESILIENCE_* variables found through lookup
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	var errs []error
	str := func(key string, dst *string) {
		if v, ok := lookup(EnvPrefix + key); ok {
			*dst = v
		}
	}
	num := func(key string, dst *int) {
		if v, ok := lookup(EnvPrefix + key); ok {
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, key, err))
				return
			}
			*dst = n
		}
	}
	dur := func(key string, dst *time.Duration) {
		if v, ok := lookup(EnvPrefix + key); ok {
			d, err := time.ParseDuration(strings.TrimSpace(v))
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, key, err))
				return
			}
			*dst = d
		}
	}

	str("LOG_LEVEL", &c.LogLevel)
	num("WORKERS", &c.Analysis.Workers)
	num("TRIALS", &c.Analysis.Trials)
	num("SAMPLE_SIZE", &c.Analysis.SampleSize)
	num("TOP_N", &c.Analysis.TopN)
	if v, ok := lookup(EnvPrefix + "SEED"); ok {
		seed, err := strconv.ParseUint(strings.TrimSpace(v), 10, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("%sSEED: %w", EnvPrefix, err))
		} else {
			c.Analysis.Seed = seed
		}
	}
	if v, ok := lookup(EnvPrefix + "COMMENT_MARKERS"); ok {
		c.Input.CommentMarkers = splitAndTrim(v, ",")
	}
	num("MAX_LINE_BYTES", &c.Input.MaxLineBytes)
	str("ADDR", &c.Server.Addr)
	dur("READ_TIMEOUT", &c.Server.ReadTimeout)
	dur("WRITE_TIMEOUT", &c.Server.WriteTimeout)

	return errors.Join(errs...)
}

// Validate checks field ranges and cross-field constraints
func (c *Config) Validate() error {
	if err := validation.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	cv := validation.NewConfigValidator("Config")
	cv.OneOf("LogLevel", strings.ToLower(c.LogLevel), "debug", "info", "warn", "warning", "error").
		MinDuration("Server.ReadTimeout", c.Server.ReadTimeout, time.Second).
		MinDuration("Server.WriteTimeout", c.Server.WriteTimeout, time.Second).
		AtMost("Input.MaxLineBytes", c.Input.MaxLineBytes, MaxLineBytesLimit).
		When(len(c.Input.CommentMarkers) > 0, func(v *validation.ConfigValidator) {
			v.Distinct("Input.CommentMarkers", c.Input.CommentMarkers)
			v.Custom("Input.CommentMarkers", func() error {
				for _, m := range c.Input.CommentMarkers {
					if strings.ContainsAny(m, " \t") {
						return fmt.Errorf("marker %q contains whitespace", m)
					}
				}
				return nil
			})
		})
	return cv.Validate()
}

// AnalysisOptions converts the analysis section for algorithms.NewAnalyzer
func (c *Config) AnalysisOptions() algorithms.Options {
	return algorithms.Options{
		Workers:    c.Analysis.Workers,
		Trials:     c.Analysis.Trials,
		SampleSize: c.Analysis.SampleSize,
		Seed:       c.Analysis.Seed,
	}
}

// EdgeListOptions converts the input section for edgelist.Load
func (c *Config) EdgeListOptions(logger logging.Logger) edgelist.Options {
	return edgelist.Options{
		CommentMarkers: c.Input.CommentMarkers,
		MaxLineBytes:   c.Input.MaxLineBytes,
		Logger:         logger,
	}
}

// Logger builds a JSON logger on stderr at the configured level
func (c *Config) Logger() logging.Logger {
	return logging.NewJSONLogger(os.Stderr, logging.ParseLevel(c.LogLevel))
}

func splitAndTrim(s, sep string) []string {
	parts := strings.Split(s, sep)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
