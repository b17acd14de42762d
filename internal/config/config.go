package config

import (
	"github.com/kelseyhightower/envconfig"
)

var singleConfig *Config = nil

type Config struct {
	Database *dbConfig
	Service  *svcConfig
}

type dbConfig struct {
	Type     string `envconfig:"DB_TYPE" default:"pgsql"`
	Hostname string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	Name     string `envconfig:"DB_NAME" default:"testlane"`
	User     string `envconfig:"DB_USER" default:"admin"`
	Password string `envconfig:"DB_PASS" default:"adminpass"`
}

type svcConfig struct {
	Address         string `envconfig:"TESTLANE_ADDRESS" default:":3443"`
	MetricsAddress  string `envconfig:"TESTLANE_METRICS_ADDRESS" default:":8080"`
	BaseUrl         string `envconfig:"TESTLANE_BASE_URL" default:"https://localhost:3443"`
	LogLevel        string `envconfig:"TESTLANE_LOG_LEVEL" default:"info"`
	MigrationFolder string `envconfig:"TESTLANE_MIGRATIONS_FOLDER" default:""`
	Auth            Auth
}

// Auth carries the token and password hashing settings. The signing secret has
// no default on purpose: the process refuses to issue tokens without one.
type Auth struct {
	TokenSigningSecret string `envconfig:"TESTLANE_TOKEN_SECRET" default:""`
	TokenTTL           string `envconfig:"TESTLANE_TOKEN_TTL" default:"15m"`
	TokenIssuer        string `envconfig:"TESTLANE_TOKEN_ISSUER" default:"testlane"`
	HashMemory         uint32 `envconfig:"TESTLANE_HASH_MEMORY_KB" default:"65536"`
	HashIterations     uint32 `envconfig:"TESTLANE_HASH_ITERATIONS" default:"3"`
	HashParallelism    uint8  `envconfig:"TESTLANE_HASH_PARALLELISM" default:"2"`
}

func New() (*Config, error) {
	if singleConfig == nil {
		singleConfig = new(Config)
		if err := envconfig.Process("", singleConfig); err != nil {
			return nil, err
		}
	}
	return singleConfig, nil
}

// NewDefault returns a configuration suitable for tests: an in-memory sqlite
// database and a static signing secret.
func NewDefault() *Config {
	return &Config{
		Database: &dbConfig{
			Type: "sqlite",
			Name: "file::memory:?cache=shared",
		},
		Service: &svcConfig{
			Address:  ":3443",
			LogLevel: "info",
			Auth: Auth{
				TokenSigningSecret: "testlane-test-secret",
				TokenTTL:           "15m",
				TokenIssuer:        "testlane",
				HashMemory:         8 * 1024,
				HashIterations:     1,
				HashParallelism:    1,
			},
		},
	}
}
