package cmd

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/storefront-tools/bcproxy/api"
	"github.com/storefront-tools/bcproxy/bigcommerce"
	"github.com/storefront-tools/bcproxy/conf"
	"github.com/storefront-tools/bcproxy/telemetry"
)

var serveCmd = cobra.Command{
	Use:  "serve",
	Long: "Start the custom field proxy",
	Run: func(cmd *cobra.Command, args []string) {
		execWithConfig(cmd, serve)
	},
}

func serve(config *conf.Configuration) {
	log := logrus.WithField("component", "serve")

	client := bigcommerce.NewClient(&config.BigCommerceConfiguration)
	if err := client.CheckCredentials(); err != nil {
		log.WithError(err).Warn("Store credentials are incomplete, upstream calls will fail")
	}
	if config.Key == "" {
		log.Warn("PROXY_KEY is not set, the proxy accepts unauthenticated requests")
	}

	tracer, err := telemetry.InitTracer(context.Background(), &config.Tracing, Version, log)
	if err != nil {
		log.Fatalf("Error initializing tracing: %+v", err)
	}

	api := api.NewAPIWithVersion(config, client, Version)
	api.OnShutdown("tracer", tracer, config.ShutdownTimeout)

	l := fmt.Sprintf("%v:%v", config.Host, config.Port)
	log.Infof("Custom field proxy started on: %s", l)

	if err := api.ListenAndServe(l); err != nil {
		log.Fatalf("Server failed: %+v", err)
	}
}
