package conf

import (
	"github.com/bugsnag/bugsnag-go"
	logrus_bugsnag "github.com/shopify/logrus-bugsnag"
	"github.com/sirupsen/logrus"
)

// BugSnagConfig is read from BUGSNAG_API_KEY and BUGSNAG_ENVIRONMENT.
type BugSnagConfig struct {
	Environment string
	APIKey      string `envconfig:"api_key"`
}

// AddBugSnagHook forwards error level log entries to bugsnag. It is a no-op
// without an API key.
func AddBugSnagHook(config *BugSnagConfig, version string) error {
	if config == nil || config.APIKey == "" {
		return nil
	}

	bugsnag.Configure(bugsnag.Configuration{
		APIKey:       config.APIKey,
		ReleaseStage: config.Environment,
		AppVersion:   version,
		ProjectPackages: []string{
			"main",
			"github.com/storefront-tools/bcproxy*",
		},
		PanicHandler: func() {}, // this is to disable panic handling. The lib was forking and restarting the process (causing races)
	})
	hook, err := logrus_bugsnag.NewBugsnagHook()
	if err != nil {
		return err
	}
	logrus.AddHook(hook)
	logrus.Debug("Added bugsnag hook")
	return nil
}
