package cmd

import (
	"fmt"
	"os"

	"resource-manager/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// configPath is the directory holding the optional .env file.
var configPath string

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "resource-manager",
	Short: "Resource Manager Service",
	Long: `Resource Manager keeps a reference-counted cache of textures, shaders and sounds.
Raw assets are read from S3 storage through the asset catalog, compressed assets
from an expansion pack, and every cached resource follows the driver lifecycle.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console encoding with the development config reads better in a terminal
		l, logErr := logger.New(&logger.Config{Level: "debug", Format: "console"})
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().StringVar(&configPath, "config", ".", "Directory holding the .env file")
}
