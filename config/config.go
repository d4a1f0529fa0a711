package config

import (
	"flag"
	"io"
	"os"
	"strconv"

	"github.com/pkg/errors"
)

/*
Configuration comes from command-line flags; every flag that has an
environment variable falls back to it when the flag is not given:

	--data-dir     BTREEDB_DATA_DIR     where <table>.tbl / <table>.idx live
	--log-level    BTREEDB_LOG_LEVEL    debug | info | warn | error
	--cache-bytes  BTREEDB_CACHE_BYTES  page cache per open file, 0 disables
	--leaf-cap                          entries per leaf, 0 = fill the page
	--internal-cap                      entries per internal node, 0 = fill the page
*/

const (
	EnvDataDir    = "BTREEDB_DATA_DIR"
	EnvLogLevel   = "BTREEDB_LOG_LEVEL"
	EnvCacheBytes = "BTREEDB_CACHE_BYTES"
)

type Config struct {
	DataDir          string
	LogLevel         string
	CacheBytes       int64
	LeafCapacity     int
	InternalCapacity int
	// Args holds the positional arguments left after the flags.
	Args []string
}

func Default() Config {
	return Config{
		DataDir:    ".",
		LogLevel:   "warn",
		CacheBytes: 256 * 1024,
	}
}

// Load parses args (without the program name). getenv is usually os.Getenv.
func Load(name string, args []string, getenv func(string) string, output io.Writer) (*Config, error) {
	cfg := Default()
	if getenv == nil {
		getenv = os.Getenv
	}

	if v := getenv(EnvDataDir); v != "" {
		cfg.DataDir = v
	}
	if v := getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
	if v := getenv(EnvCacheBytes); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "%s=%q", EnvCacheBytes, v)
		}
		cfg.CacheBytes = n
	}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	if output != nil {
		fs.SetOutput(output)
	}
	fs.StringVar(&cfg.DataDir, "data-dir", cfg.DataDir, "directory holding table and index files")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn, error")
	fs.Int64Var(&cfg.CacheBytes, "cache-bytes", cfg.CacheBytes, "page cache size per open file in bytes, 0 disables")
	fs.IntVar(&cfg.LeafCapacity, "leaf-cap", cfg.LeafCapacity, "max entries per leaf node, 0 fills the page")
	fs.IntVar(&cfg.InternalCapacity, "internal-cap", cfg.InternalCapacity, "max entries per internal node, 0 fills the page")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	cfg.Args = fs.Args()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.DataDir == "" {
		return errors.New("data dir must not be empty")
	}
	if c.CacheBytes < 0 {
		return errors.Errorf("cache bytes must be >= 0, got %d", c.CacheBytes)
	}
	if c.LeafCapacity < 0 || c.InternalCapacity < 0 {
		return errors.Errorf("node capacities must be >= 0, got leaf %d internal %d", c.LeafCapacity, c.InternalCapacity)
	}
	return nil
}
