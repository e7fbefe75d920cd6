package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/storefront-tools/bcproxy/bigcommerce"
	"github.com/storefront-tools/bcproxy/conf"
	"github.com/storefront-tools/bcproxy/graceful"
)

var (
	tokenChannelIDs []int64
	tokenOrigins    []string
	tokenExpiresIn  time.Duration
)

var tokenCmd = cobra.Command{
	Use:   "token",
	Short: "Manage storefront API tokens",
}

var tokenCreateCmd = cobra.Command{
	Use:   "create",
	Short: "Create a storefront API token",
	Long:  "Create a storefront API token for the given channels and CORS origins and print it.",
	Run: func(cmd *cobra.Command, args []string) {
		execWithConfig(cmd, createToken)
	},
}

func init() {
	tokenCreateCmd.Flags().Int64SliceVar(&tokenChannelIDs, "channel-id", []int64{1}, "Channel the token is valid for, may be repeated")
	tokenCreateCmd.Flags().StringSliceVar(&tokenOrigins, "origin", nil, "Allowed CORS origin, may be repeated")
	tokenCreateCmd.Flags().DurationVar(&tokenExpiresIn, "expires-in", 30*24*time.Hour, "Token lifetime")
	tokenCmd.AddCommand(&tokenCreateCmd)
}

func createToken(config *conf.Configuration) {
	log := logrus.WithField("component", "token")

	client := bigcommerce.NewClient(&config.BigCommerceConfiguration)
	if err := client.CheckCredentials(); err != nil {
		log.Fatalf("Missing store credentials: %v", err)
	}
	if tokenExpiresIn <= 0 {
		log.Fatal("--expires-in must be positive")
	}

	ctx, shut := graceful.ShutdownContext(context.Background(), log)
	defer shut()

	params := bigcommerce.NewTokenRequest(tokenChannelIDs, tokenOrigins, tokenExpiresIn, time.Now())
	token, err := client.CreateStorefrontToken(ctx, params)
	if err != nil {
		log.Fatalf("Failed to create storefront token: %+v", err)
	}

	log.WithFields(logrus.Fields{
		"channel_ids": params.ChannelIDs,
		"expires_at":  time.Unix(params.ExpiresAt, 0).UTC().Format(time.RFC3339),
	}).Info("Created storefront token")
	fmt.Println(token.Token)
}
