package conf

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const defaultAPIURL = "https://api.bigcommerce.com"

// BigCommerceConfiguration holds the upstream store credentials.
type BigCommerceConfiguration struct {
	StoreHash   string        `envconfig:"STORE_HASH" json:"store_hash"`
	AccessToken string        `envconfig:"ADMIN_API_TOKEN" json:"admin_api_token"`
	APIURL      string        `envconfig:"BIGCOMMERCE_API_URL" json:"api_url"`
	Timeout     time.Duration `envconfig:"BIGCOMMERCE_TIMEOUT" default:"30s" json:"timeout"`
}

// ProxyConfiguration controls what the custom field proxy accepts and returns.
type ProxyConfiguration struct {
	Key          string   `envconfig:"PROXY_KEY" json:"proxy_key"`
	AllowOrigin  []string `envconfig:"ALLOW_ORIGIN" default:"*" json:"allow_origin"`
	CustomFields []string `envconfig:"CUSTOM_FIELDS" default:"status,wms_available_inventory,expected_in_stock,current_inventory,current_inventory_cap24,imported" json:"custom_fields"`
	CacheControl string   `envconfig:"CACHE_CONTROL" default:"private, max-age=60" json:"cache_control"`
}

// APIConfiguration holds the listening address of the HTTP server.
// Embedded groups are read without a prefix, e.g. PORT.
type APIConfiguration struct {
	Host            string        `envconfig:"HOST" json:"host"`
	Port            int           `envconfig:"PORT" default:"8080" json:"port"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s" json:"shutdown_timeout"`
}

// LoggingConfig configures the global logrus logger.
type LoggingConfig struct {
	Level  string `envconfig:"LOG_LEVEL" default:"info" json:"level"`
	Format string `envconfig:"LOG_FORMAT" default:"text" json:"format"`
}

// TracingConfig enables the OTLP trace exporter.
type TracingConfig struct {
	Enabled     bool   `default:"false"`
	Endpoint    string `default:"http://localhost:4318/v1/traces"`
	ServiceName string `split_words:"true" default:"bcproxy"`
}

// Configuration holds all the configuration of the proxy.
type Configuration struct {
	BigCommerceConfiguration
	ProxyConfiguration
	APIConfiguration
	LoggingConfig

	BugSnag *BugSnagConfig
	Tracing TracingConfig
}

func loadEnvironment(filename string) error {
	var err error
	if filename != "" {
		err = godotenv.Load(filename)
	} else {
		err = godotenv.Load()
		// handle if .env file does not exist, this is OK
		if os.IsNotExist(err) {
			return nil
		}
	}
	return err
}

// Load reads the configuration from the environment, after loading the
// optional env file.
func Load(filename string) (*Configuration, error) {
	if err := loadEnvironment(filename); err != nil {
		return nil, errors.Wrap(err, "loading env file")
	}

	config := new(Configuration)
	if err := envconfig.Process("", config); err != nil {
		return nil, errors.Wrap(err, "processing environment")
	}
	config.ApplyDefaults()

	return config, nil
}

// ApplyDefaults normalizes values envconfig leaves raw.
func (config *Configuration) ApplyDefaults() {
	if config.APIURL == "" {
		config.APIURL = defaultAPIURL
	}
	config.APIURL = strings.TrimRight(config.APIURL, "/")
	config.CustomFields = normalizeList(config.CustomFields, true)
	config.AllowOrigin = normalizeList(config.AllowOrigin, false)
	if len(config.AllowOrigin) == 0 {
		config.AllowOrigin = []string{"*"}
	}
}

// AllowsAnyOrigin reports whether CORS is open to every origin.
func (config *Configuration) AllowsAnyOrigin() bool {
	for _, o := range config.AllowOrigin {
		if o == "*" {
			return true
		}
	}
	return false
}

func normalizeList(values []string, lower bool) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if lower {
			v = strings.ToLower(v)
		}
		out = append(out, v)
	}
	return out
}

// ConfigureLogging sets up the standard logrus logger.
func ConfigureLogging(config *LoggingConfig) (*logrus.Entry, error) {
	logger := logrus.StandardLogger()

	switch strings.ToLower(config.Format) {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	case "", "text":
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		return nil, errors.Errorf("unknown log format %q", config.Format)
	}

	if config.Level != "" {
		level, err := logrus.ParseLevel(config.Level)
		if err != nil {
			return nil, err
		}
		logger.SetLevel(level)
	}

	return logrus.NewEntry(logger), nil
}
