// Package config loads the optional hrc configuration file.
//
// The file is taken from the --config flag or, when the flag is empty, from
// the HRC_CONFIG environment variable. There is no automatic discovery: with
// neither set the built-in defaults apply.
//
// Example:
//
//	compression: brotli
//	lenient_json: true
//	limits:
//	  max_source_size: 67108864
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/logicossoftware/go-hrc"
	"gopkg.in/yaml.v3"
)

// EnvVar names the environment variable consulted when no path is given.
const EnvVar = "HRC_CONFIG"

// Config holds the settings the CLI passes to the codec.
type Config struct {
	// Compression is the default method for compress. Empty means zlib.
	Compression string `yaml:"compression"`

	// LenientJSON allows comments and trailing commas in .json sources.
	LenientJSON bool `yaml:"lenient_json"`

	// Limits caps the sizes handled while compressing and decompressing.
	// Zero fields keep the library defaults.
	Limits LimitsConfig `yaml:"limits"`
}

// LimitsConfig mirrors hrc.Limits.
type LimitsConfig struct {
	MaxSourceSize   uint64 `yaml:"max_source_size"`
	MaxPayloadSize  uint64 `yaml:"max_payload_size"`
	MaxUncompressed uint64 `yaml:"max_uncompressed"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{Compression: hrc.DefaultCompression.String()}
}

// Load reads the file at path, falling back to $HRC_CONFIG. With neither set
// it returns Default().
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvVar)
	}
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile reads and validates the configuration at path. Unknown keys are
// rejected so typos do not silently fall back to defaults.
func LoadFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	defer f.Close()

	cfg := Default()
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that the configured compression method is known.
func (c *Config) Validate() error {
	if c.Compression == "" {
		return nil
	}
	_, err := hrc.ParseCompression(c.Compression)
	return err
}

// CompressionMethod returns the configured method, or the library default.
func (c *Config) CompressionMethod() (hrc.Compression, error) {
	if c.Compression == "" {
		return hrc.DefaultCompression, nil
	}
	return hrc.ParseCompression(c.Compression)
}

func (c *Config) limits() hrc.Limits {
	return hrc.Limits{
		MaxSourceSize:   c.Limits.MaxSourceSize,
		MaxPayloadSize:  c.Limits.MaxPayloadSize,
		MaxUncompressed: c.Limits.MaxUncompressed,
	}
}

// WriteOptions converts the configuration into options for CompressFile.
// Options appended after these by the caller take precedence.
func (c *Config) WriteOptions() ([]hrc.WriteOption, error) {
	comp, err := c.CompressionMethod()
	if err != nil {
		return nil, err
	}
	return []hrc.WriteOption{
		hrc.WithCompression(comp),
		hrc.WithLenientJSON(c.LenientJSON),
		hrc.WithWriteLimits(c.limits()),
	}, nil
}

// ReadOptions converts the configuration into options for DecompressFile
// and Inspect.
func (c *Config) ReadOptions() []hrc.ReadOption {
	return []hrc.ReadOption{hrc.WithReadLimits(c.limits())}
}
