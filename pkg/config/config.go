// Package config loads fattree configuration files.
//
// A configuration file is TOML or YAML, chosen by extension. Missing keys keep
// their [Default] values, so a file only needs the settings it changes:
//
//	[topology]
//	depth = 4
//	width = 6
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//
// After decoding, [Config.Validate] checks struct tags with
// go-playground/validator and the topology with [fattree.Params.Validate].
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/fattree/pkg/cache"
	errs "github.com/matzehuels/fattree/pkg/errors"
	"github.com/matzehuels/fattree/pkg/fattree"
	"github.com/matzehuels/fattree/pkg/session"
)

// Config is the full application configuration.
type Config struct {
	Topology TopologyConfig `toml:"topology" yaml:"topology"`
	Cache    CacheConfig    `toml:"cache" yaml:"cache"`
	Session  SessionConfig  `toml:"session" yaml:"session"`
	Server   ServerConfig   `toml:"server" yaml:"server"`
}

// TopologyConfig is the fat tree shown when no parameters are given.
type TopologyConfig struct {
	Depth int `toml:"depth" yaml:"depth" validate:"min=1"`
	Width int `toml:"width" yaml:"width" validate:"min=2"`
}

// Params converts the section to layout parameters.
func (t TopologyConfig) Params() fattree.Params {
	return fattree.Params{Depth: t.Depth, Width: t.Width}
}

// Cache backends.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// CacheConfig selects where layouts and artifacts are cached.
type CacheConfig struct {
	Backend   string        `toml:"backend" yaml:"backend" validate:"oneof=file redis none"`
	Dir       string        `toml:"dir" yaml:"dir"`
	RedisAddr string        `toml:"redis_addr" yaml:"redis_addr" validate:"required_if=Backend redis"`
	RedisDB   int           `toml:"redis_db" yaml:"redis_db" validate:"min=0"`
	TTL       time.Duration `toml:"ttl" yaml:"ttl"`
}

// Session backends.
const (
	SessionMemory = "memory"
	SessionFile   = "file"
	SessionRedis  = "redis"
	SessionMongo  = "mongo"
)

// SessionConfig selects where HTTP selection sessions are kept.
type SessionConfig struct {
	Backend       string        `toml:"backend" yaml:"backend" validate:"oneof=memory file redis mongo"`
	Dir           string        `toml:"dir" yaml:"dir"`
	RedisAddr     string        `toml:"redis_addr" yaml:"redis_addr" validate:"required_if=Backend redis"`
	MongoURI      string        `toml:"mongo_uri" yaml:"mongo_uri" validate:"required_if=Backend mongo"`
	MongoDatabase string        `toml:"mongo_database" yaml:"mongo_database" validate:"required_if=Backend mongo"`
	TTL           time.Duration `toml:"ttl" yaml:"ttl"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr         string        `toml:"addr" yaml:"addr" validate:"required"`
	ReadTimeout  time.Duration `toml:"read_timeout" yaml:"read_timeout"`
	WriteTimeout time.Duration `toml:"write_timeout" yaml:"write_timeout"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Topology: TopologyConfig{Depth: fattree.DefaultDepth, Width: fattree.DefaultWidth},
		Cache: CacheConfig{
			Backend: CacheFile,
			TTL:     cache.LayoutTTL,
		},
		Session: SessionConfig{
			Backend:       SessionMemory,
			MongoDatabase: "fattree",
			TTL:           session.DefaultTTL,
		},
		Server: ServerConfig{
			Addr:         ":8080",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
	}
}

// Load reads path on top of [Default] and validates the result.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errs.Wrap(errs.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	return Parse(data, filepath.Ext(path))
}

// Parse decodes data in the format named by ext (".toml", ".yaml" or ".yml")
// on top of [Default] and validates the result.
func Parse(data []byte, ext string) (Config, error) {
	cfg := Default()
	switch strings.ToLower(ext) {
	case ".toml":
		md, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&cfg)
		if err != nil {
			return Config{}, errs.Wrap(errs.ErrCodeInvalidConfig, err, "decode toml")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return Config{}, errs.New(errs.ErrCodeInvalidConfig, "unknown key %q", undecoded[0].String())
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return Config{}, errs.Wrap(errs.ErrCodeInvalidConfig, err, "decode yaml")
		}
	default:
		return Config{}, errs.New(errs.ErrCodeInvalidConfig, "unsupported config format %q (use .toml, .yaml or .yml)", ext)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

var validate = newValidator()

// newValidator reports fields by their file key, e.g. "cache.redis_addr".
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return strings.SplitN(f.Tag.Get("toml"), ",", 2)[0]
	})
	return v
}

// Validate checks field constraints and that the default topology can be
// laid out.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return formatValidationError(err)
	}
	if err := c.Topology.Params().Validate(); err != nil {
		return errs.Wrap(errs.ErrCodeInvalidConfig, err, "topology")
	}
	for name, d := range map[string]time.Duration{
		"cache.ttl":            c.Cache.TTL,
		"session.ttl":          c.Session.TTL,
		"server.read_timeout":  c.Server.ReadTimeout,
		"server.write_timeout": c.Server.WriteTimeout,
	} {
		if d < 0 {
			return errs.New(errs.ErrCodeInvalidConfig, "%s must not be negative, got %s", name, d)
		}
	}
	return nil
}

// formatValidationError reports the first failed constraint.
func formatValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return errs.Wrap(errs.ErrCodeInvalidConfig, err, "invalid config")
	}
	e := verrs[0]
	field := strings.TrimPrefix(e.Namespace(), "Config.")
	switch e.Tag() {
	case "required", "required_if":
		return errs.New(errs.ErrCodeInvalidConfig, "%s: field is required", field)
	case "min":
		return errs.New(errs.ErrCodeInvalidConfig, "%s: must be at least %s", field, e.Param())
	case "oneof":
		return errs.New(errs.ErrCodeInvalidConfig, "%s: must be one of [%s], got %q", field, e.Param(), fmt.Sprint(e.Value()))
	default:
		return errs.New(errs.ErrCodeInvalidConfig, "%s: validation failed (%s)", field, e.Tag())
	}
}
