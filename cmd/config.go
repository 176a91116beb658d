package cmd

import (
	"fmt"
	"strconv"
	"strings"

	cfgpkg "github.com/KaramelBytes/dasbor/internal/config"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set dasbor configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "No config loaded")
			return nil
		}
		vals := configValues(cfg)
		for _, k := range cfgpkg.Keys {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", k, vals[k])
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		atoi := func() (int, error) {
			i, err := strconv.Atoi(val)
			if err != nil || i < 0 {
				return 0, fmt.Errorf("invalid non-negative int for %s: %v", key, val)
			}
			return i, nil
		}
		var err error
		switch key {
		case "data_path":
			cfg.DataPath = val
		case "page_title":
			cfg.PageTitle = val
		case "head_rows":
			cfg.HeadRows, err = atoi()
		case "listen_addr":
			cfg.ListenAddr = val
		case "read_timeout_sec":
			cfg.ReadTimeoutSec, err = atoi()
		case "write_timeout_sec":
			cfg.WriteTimeoutSec, err = atoi()
		case "chart_width":
			cfg.ChartWidth, err = atoi()
		case "chart_height":
			cfg.ChartHeight, err = atoi()
		case "log_level":
			if _, perr := logrus.ParseLevel(val); perr != nil {
				return fmt.Errorf("invalid log_level: %s", val)
			}
			cfg.LogLevel = strings.ToLower(val)
		case "log_format":
			cfg.LogFormat = strings.ToLower(val)
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Saved config")
		return nil
	},
}

func configValues(c *cfgpkg.Global) map[string]string {
	return map[string]string{
		"data_path":         c.DataPath,
		"page_title":        c.PageTitle,
		"head_rows":         strconv.Itoa(c.HeadRows),
		"listen_addr":       c.ListenAddr,
		"read_timeout_sec":  strconv.Itoa(c.ReadTimeoutSec),
		"write_timeout_sec": strconv.Itoa(c.WriteTimeoutSec),
		"chart_width":       strconv.Itoa(c.ChartWidth),
		"chart_height":      strconv.Itoa(c.ChartHeight),
		"log_level":         c.LogLevel,
		"log_format":        c.LogFormat,
	}
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
