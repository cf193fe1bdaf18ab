package core

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Set at link time: -ldflags "-X github.com/jogaaurora/aurora/core.DefaultAPIURL=https://..."
var (
	Build         = "dev"
	DefaultAPIURL = "http://localhost:8080"
)

type (
	APIConfig struct {
		URL     string
		Timeout time.Duration
	}

	HealthConfig struct {
		Timeout time.Duration
		Retries int
		Delay   time.Duration
	}

	DevServerConfig struct {
		Address        string
		SecretKey      string
		SessionTTL     time.Duration
		FrontendOrigin string
		Seed           bool
	}

	Config struct {
		Env          string // DEV (local; default), TEST, QA, PROD
		Debug        bool
		TestMode     bool
		AppName      string
		Version      string
		Build        string
		StateFile    string
		ReportDir    string
		RollbarToken string
		API          APIConfig
		Health       HealthConfig
		DevServer    DevServerConfig
	}
)

// NewConfig reads the configuration of the current ENV.
// Variables are prefixed with the env name, eg: DEV_API_URL, PROD_ROLLBAR_TOKEN.
func NewConfig() (*Config, error) {
	conf := viper.New()

	env := strings.ToUpper(os.Getenv("ENV"))
	if env == "" {
		env = "DEV"
	}

	// defaults
	conf.SetTypeByDefaultValue(true)
	conf.SetDefault("debug", env == "DEV")
	conf.SetDefault("testMode", env == "TEST")
	conf.SetDefault("appName", "Joga Aurora")
	conf.SetDefault("version", "1.0.0")
	conf.SetDefault("stateFile", defaultStateFile())
	conf.SetDefault("reportDir", ".")
	conf.SetDefault("rollbarToken", "")
	conf.SetDefault("api.url", DefaultAPIURL)
	conf.SetDefault("api.timeout", 30*time.Second)
	conf.SetDefault("health.timeout", 5*time.Second)
	conf.SetDefault("health.retries", 6)
	conf.SetDefault("health.delay", time.Second)
	conf.SetDefault("devserver.address", ":8080")
	conf.SetDefault("devserver.secretKey", "j0ga-aur0ra$dev-only-secret#7c1e")
	conf.SetDefault("devserver.sessionTTL", 8*time.Hour)
	conf.SetDefault("devserver.frontendOrigin", "http://localhost:5173")
	conf.SetDefault("devserver.seed", true)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join("config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			return nil, errors.Wrapf(err, "loading %s", dotEnvPath)
		}
	} else if !os.IsNotExist(err) {
		return nil, errors.Wrapf(err, "checking %s", dotEnvPath)
	}

	conf.SetEnvPrefix(env)
	conf.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	conf.AutomaticEnv()

	cfg := &Config{
		Env:          env,
		Debug:        conf.GetBool("debug"),
		TestMode:     conf.GetBool("testMode"),
		AppName:      conf.GetString("appName"),
		Version:      conf.GetString("version"),
		Build:        Build,
		StateFile:    conf.GetString("stateFile"),
		ReportDir:    conf.GetString("reportDir"),
		RollbarToken: conf.GetString("rollbarToken"),
		API: APIConfig{
			URL:     strings.TrimRight(conf.GetString("api.url"), "/"),
			Timeout: conf.GetDuration("api.timeout"),
		},
		Health: HealthConfig{
			Timeout: conf.GetDuration("health.timeout"),
			Retries: conf.GetInt("health.retries"),
			Delay:   conf.GetDuration("health.delay"),
		},
		DevServer: DevServerConfig{
			Address:        conf.GetString("devserver.address"),
			SecretKey:      conf.GetString("devserver.secretKey"),
			SessionTTL:     conf.GetDuration("devserver.sessionTTL"),
			FrontendOrigin: conf.GetString("devserver.frontendOrigin"),
			Seed:           conf.GetBool("devserver.seed"),
		},
	}
	if cfg.API.URL == "" {
		return nil, errors.New("api.url must not be empty")
	}
	return cfg, nil
}

func defaultStateFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".aurora", "state.yaml")
	}
	return filepath.Join(home, ".aurora", "state.yaml")
}
