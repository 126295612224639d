package config

import (
	"os"
	"strings"

	"github.com/spf13/viper"
)

const (
	ProviderS3    = "s3"
	ProviderMinio = "minio"
)

// Config holds the ambient settings of a seeding run. What is generated and where it is stored
// (record count, bucket, key, file name) are constants and deliberately absent here.
type Config struct {
	Env     string        `yaml:"env"`     // Env is the current environment: local, development, production.
	Seed    uint64        `yaml:"seed"`    // Seed makes generation reproducible; 0 means random.
	Storage StorageConfig `yaml:"storage"` // Storage holds the object store connection settings.
	Metrics MetricsConfig `yaml:"metrics"` // Metrics holds the Pushgateway settings.
}

// StorageConfig struct holds the connection details of the object store.
type StorageConfig struct {
	Provider  string `yaml:"provider"`   // Provider is either "s3" or "minio".
	Region    string `yaml:"region"`     // Region is the bucket region.
	Endpoint  string `yaml:"endpoint"`   // Endpoint overrides the provider endpoint (LocalStack, MinIO host:port).
	AccessKey string `yaml:"access_key"` // AccessKey overrides the default credential chain.
	SecretKey string `yaml:"secret_key"` // SecretKey pairs with AccessKey.
	UseSSL    bool   `yaml:"use_ssl"`    // UseSSL enables TLS towards MinIO.
}

// MetricsConfig struct holds the Prometheus Pushgateway settings.
type MetricsConfig struct {
	PushgatewayURL string `yaml:"pushgateway_url"` // PushgatewayURL disables pushing when empty.
	Job            string `yaml:"job"`             // Job is the Pushgateway job label.
}

// MustLoad loads the configuration from an optional YAML file at CONFIG_PATH and
// DAEDALUS_* environment variables, and returns a Config struct.
func MustLoad() *Config {
	vpr := viper.New()

	vpr.SetEnvPrefix("DAEDALUS")
	vpr.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	vpr.AutomaticEnv()

	vpr.SetDefault("env", "local")
	vpr.SetDefault("seed", 0)
	vpr.SetDefault("storage.provider", ProviderS3)
	vpr.SetDefault("storage.region", "us-east-1")
	vpr.SetDefault("storage.endpoint", "")
	vpr.SetDefault("storage.access_key", "")
	vpr.SetDefault("storage.secret_key", "")
	vpr.SetDefault("storage.use_ssl", true)
	vpr.SetDefault("metrics.pushgateway_url", "")
	vpr.SetDefault("metrics.job", "daedalus")

	if configPath := os.Getenv("CONFIG_PATH"); configPath != "" {
		// check if file exists
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			panic("config file does not exist: " + configPath)
		}

		vpr.SetConfigFile(configPath)
		if err := vpr.ReadInConfig(); err != nil {
			panic("config error: " + err.Error())
		}
	}

	cfg := &Config{
		Env:  vpr.GetString("env"),
		Seed: vpr.GetUint64("seed"),
		Storage: StorageConfig{
			Provider:  strings.ToLower(vpr.GetString("storage.provider")),
			Region:    vpr.GetString("storage.region"),
			Endpoint:  vpr.GetString("storage.endpoint"),
			AccessKey: vpr.GetString("storage.access_key"),
			SecretKey: vpr.GetString("storage.secret_key"),
			UseSSL:    vpr.GetBool("storage.use_ssl"),
		},
		Metrics: MetricsConfig{
			PushgatewayURL: vpr.GetString("metrics.pushgateway_url"),
			Job:            vpr.GetString("metrics.job"),
		},
	}

	if cfg.Storage.Provider != ProviderS3 && cfg.Storage.Provider != ProviderMinio {
		panic("unknown storage provider: " + cfg.Storage.Provider)
	}
	if cfg.Storage.Provider == ProviderMinio && cfg.Storage.Endpoint == "" {
		panic("storage endpoint is required for the minio provider")
	}

	return cfg
}
