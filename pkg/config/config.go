package config

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is the envconfig prefix shared by every binary.
const EnvPrefix = ""

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

type Config struct {
	App     AppConfig
	Storage StorageConfig
	Support SupportConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"MEDIASTASH_APP_ENV" default:"development"`
	Port         string `envconfig:"MEDIASTASH_APP_PORT" default:"4000"`
	LogLevel     string `envconfig:"MEDIASTASH_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"MEDIASTASH_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type StorageConfig struct {
	// Root holds the videos/, audios/, thumbnails/ and tmp/ subtrees.
	Root           string `envconfig:"MEDIASTASH_STORAGE_ROOT" default:"uploads"`
	MetadataFile   string `envconfig:"MEDIASTASH_METADATA_FILE" default:"uploads/media.json"`
	SupportersFile string `envconfig:"MEDIASTASH_SUPPORTERS_FILE" default:"data/supporters.json"`
}

type SupportConfig struct {
	Phone   string `envconfig:"MEDIASTASH_SUPPORT_PHONE" default:"+1-800-555-0199"`
	Message string `envconfig:"MEDIASTASH_SUPPORT_MESSAGE" default:"Reach out any time, we are happy to help."`
}
