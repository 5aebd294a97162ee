package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/BinLe1988/reply-assist/configs"
	"github.com/BinLe1988/reply-assist/pkg/logger"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "replyassist",
	Short:         "AI reply assistant for social media",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ./configs/config.yaml)")
}

func main() {
	// .env不存在时忽略
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// loadConfig 加载配置并创建日志
func loadConfig() (*configs.Config, *logger.Logger, error) {
	var (
		cfg *configs.Config
		err error
	)
	if configPath != "" {
		cfg, err = configs.LoadFile(configPath)
	} else {
		cfg, err = configs.Load()
	}
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(cfg.Log.Mode)
	if err != nil {
		return nil, nil, fmt.Errorf("create logger: %w", err)
	}
	return cfg, log, nil
}
