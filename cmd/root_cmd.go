package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/storefront-tools/bcproxy/conf"
)

var configFile = ""

// rootCmd will run the proxy server
var rootCmd = cobra.Command{
	Use:  "bcproxy",
	Long: "A proxy that exposes allow-listed product custom fields of a BigCommerce store to the storefront.",
	Run: func(cmd *cobra.Command, args []string) {
		execWithConfig(cmd, serve)
	},
}

// RootCmd will add flags and subcommands to the different commands
func RootCmd() *cobra.Command {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "The configuration file")
	rootCmd.AddCommand(&serveCmd, &tokenCmd, &channelsCmd, &versionCmd)
	return &rootCmd
}

func execWithConfig(cmd *cobra.Command, fn func(config *conf.Configuration)) {
	config, err := conf.Load(configFile)
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %+v", err)
	}

	if _, err := conf.ConfigureLogging(&config.LoggingConfig); err != nil {
		logrus.Fatalf("Failed to configure logging: %+v", err)
	}

	if err := conf.AddBugSnagHook(config.BugSnag, Version); err != nil {
		logrus.Fatalf("Failed to configure bugsnag: %+v", err)
	}

	fn(config)
}
