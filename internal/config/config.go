package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/KaramelBytes/dasbor/internal/utils"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// DefaultDataPath is the dataset read when nothing else is configured,
// relative to the working directory.
const DefaultDataPath = "data lastminute bersih.csv"

// Global configuration structure.
type Global struct {
	DataPath  string `mapstructure:"data_path" yaml:"data_path"`
	PageTitle string `mapstructure:"page_title" yaml:"page_title"`
	HeadRows  int    `mapstructure:"head_rows" yaml:"head_rows"`

	// HTTP server
	ListenAddr      string `mapstructure:"listen_addr" yaml:"listen_addr"`
	ReadTimeoutSec  int    `mapstructure:"read_timeout_sec" yaml:"read_timeout_sec"`
	WriteTimeoutSec int    `mapstructure:"write_timeout_sec" yaml:"write_timeout_sec"`

	// Charts
	ChartWidth  int `mapstructure:"chart_width" yaml:"chart_width"`
	ChartHeight int `mapstructure:"chart_height" yaml:"chart_height"`

	// Logging
	LogLevel  string `mapstructure:"log_level" yaml:"log_level"`
	LogFormat string `mapstructure:"log_format" yaml:"log_format"`
}

// Keys lists the settable configuration keys in display order.
var Keys = []string{
	"data_path", "page_title", "head_rows",
	"listen_addr", "read_timeout_sec", "write_timeout_sec",
	"chart_width", "chart_height",
	"log_level", "log_format",
}

// Default returns the built-in configuration.
func Default() *Global {
	return &Global{
		DataPath:        DefaultDataPath,
		PageTitle:       "Student Last-Minute Behaviour Dashboard",
		HeadRows:        10,
		ListenAddr:      "127.0.0.1:8501",
		ReadTimeoutSec:  15,
		WriteTimeoutSec: 30,
		ChartWidth:      640,
		ChartHeight:     420,
		LogLevel:        "info",
		LogFormat:       "text",
	}
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.dasbor/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		dir, err := configDir()
		if err != nil {
			return err
		}
		if err := utils.EnsureDir(dir); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := utils.SafeWriteFile(path, b); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: env > config file > defaults. Flags are applied by the caller.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("DASBOR")
	v.AutomaticEnv()

	d := Default()
	v.SetDefault("data_path", d.DataPath)
	v.SetDefault("page_title", d.PageTitle)
	v.SetDefault("head_rows", d.HeadRows)
	// HTTP defaults
	v.SetDefault("listen_addr", d.ListenAddr)
	v.SetDefault("read_timeout_sec", d.ReadTimeoutSec)
	v.SetDefault("write_timeout_sec", d.WriteTimeoutSec)
	// Chart defaults
	v.SetDefault("chart_width", d.ChartWidth)
	v.SetDefault("chart_height", d.ChartHeight)
	// Logging defaults
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_format", d.LogFormat)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		dir, err := configDir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		var nf viper.ConfigFileNotFoundError
		if !errors.As(err, &nf) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate rejects settings the server cannot run with.
func (c *Global) Validate() error {
	if c.DataPath == "" {
		return fmt.Errorf("data_path must not be empty")
	}
	if c.HeadRows < 0 {
		return fmt.Errorf("head_rows must be >= 0, got %d", c.HeadRows)
	}
	if c.ChartWidth < 100 || c.ChartHeight < 100 {
		return fmt.Errorf("chart size %dx%d is too small", c.ChartWidth, c.ChartHeight)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("log_format must be text or json, got %q", c.LogFormat)
	}
	return nil
}

func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".dasbor"), nil
}
