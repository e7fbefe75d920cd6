package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/storefront-tools/bcproxy/bigcommerce"
	"github.com/storefront-tools/bcproxy/conf"
	"github.com/storefront-tools/bcproxy/graceful"
)

var channelsJSON bool

var channelsCmd = cobra.Command{
	Use:   "channels",
	Short: "Inspect the sales channels of the store",
}

var channelsListCmd = cobra.Command{
	Use:   "list",
	Short: "List sales channels",
	Run: func(cmd *cobra.Command, args []string) {
		execWithConfig(cmd, listChannels)
	},
}

func init() {
	channelsListCmd.Flags().BoolVar(&channelsJSON, "json", false, "Print the channels as JSON")
	channelsCmd.AddCommand(&channelsListCmd)
}

func listChannels(config *conf.Configuration) {
	log := logrus.WithField("component", "channels")

	client := bigcommerce.NewClient(&config.BigCommerceConfiguration)
	if err := client.CheckCredentials(); err != nil {
		log.Fatalf("Missing store credentials: %v", err)
	}

	ctx, shut := graceful.ShutdownContext(context.Background(), log)
	defer shut()

	channels, err := client.Channels(ctx)
	if err != nil {
		log.Fatalf("Failed to list channels: %+v", err)
	}

	if err := printChannels(os.Stdout, channels, channelsJSON); err != nil {
		log.Fatalf("Failed to print channels: %+v", err)
	}
}

func printChannels(out io.Writer, channels []bigcommerce.Channel, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(channels)
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTYPE\tPLATFORM\tSTATUS")
	for _, ch := range channels {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", ch.ID, ch.Name, ch.Type, ch.Platform, ch.Status)
	}
	return w.Flush()
}
