package traffic

import (
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/njiago/njiago/pkg/util"
	iso8601 "github.com/senseyeio/duration"
	"gopkg.in/yaml.v3"
)

// Config is resolved once at startup and handed to the resolver. Resolution
// behavior never depends on ambient environment reads at call time.
type Config struct {
	Provider ProviderConfig `yaml:"provider"`

	// ISO 8601 duration of report history the fallback counts
	ReportFallbackWindow string `yaml:"reportFallbackWindow" validate:"omitempty"`

	// How long resolved statuses stay hot in Redis
	CacheExpiry string `yaml:"cacheExpiry" validate:"omitempty"`
}

type ProviderConfig struct {
	Name     string `yaml:"name"`
	Endpoint string `yaml:"endpoint" validate:"omitempty,url"`
	APIKey   string `yaml:"apiKey"`
}

const defaultReportFallbackWindow = "PT2H"
const defaultCacheExpiry = "PT15M"

// Configured reports whether an external flow provider can be queried.
func (p ProviderConfig) Configured() bool {
	return p.Endpoint != "" && p.APIKey != ""
}

func (c Config) FallbackWindow() iso8601.Duration {
	return util.ParseLookback(c.ReportFallbackWindow, defaultReportFallbackWindow)
}

func (c Config) CacheExpiryDuration() time.Duration {
	parsed := util.ParseLookback(c.CacheExpiry, defaultCacheExpiry)

	now := time.Now()
	return parsed.Shift(now).Sub(now)
}

// LoadConfig reads the optional traffic config file and applies environment
// overrides for the provider credentials.
func LoadConfig() (Config, error) {
	var config Config

	env := util.GetEnvironmentVariables()

	configPath := env["NJIAGO_TRAFFIC_CONFIG"]
	if configPath == "" {
		configPath = "traffic.yml"
	}

	data, err := os.ReadFile(configPath)
	if err == nil {
		if err := yaml.Unmarshal(data, &config); err != nil {
			return Config{}, err
		}
	}

	if env["NJIAGO_TRAFFIC_PROVIDER_NAME"] != "" {
		config.Provider.Name = env["NJIAGO_TRAFFIC_PROVIDER_NAME"]
	}
	if env["NJIAGO_TRAFFIC_PROVIDER_ENDPOINT"] != "" {
		config.Provider.Endpoint = env["NJIAGO_TRAFFIC_PROVIDER_ENDPOINT"]
	}
	if env["NJIAGO_TRAFFIC_PROVIDER_KEY"] != "" {
		config.Provider.APIKey = env["NJIAGO_TRAFFIC_PROVIDER_KEY"]
	}

	validate := validator.New()
	if err := validate.Struct(config); err != nil {
		return Config{}, err
	}

	return config, nil
}
