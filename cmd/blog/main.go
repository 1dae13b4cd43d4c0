package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/d60-Lab/gin-blog/config"
	"github.com/d60-Lab/gin-blog/pkg/logger"
)

var configFile string

func main() {
	root := &cobra.Command{
		Use:           "blog",
		Short:         "Blog and shop HTTP service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (default ./config.yaml or ./config/config.yaml)")
	root.AddCommand(serveCmd(), migrateCmd(), seedCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig 读配置并初始化日志
func loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if configFile != "" {
		cfg, err = config.LoadFile(configFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}
	if err := logger.Init(cfg.Log.Level, cfg.Log.Format); err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return cfg, nil
}
