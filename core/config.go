package core

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	apiConfig struct {
		BaseURL   string
		Token     string
		Timeout   time.Duration // 0: rely on the transport
		UserAgent string
	}

	serverConfig struct {
		Address            string
		DebugHost          string
		DisableReqLogs     bool
		JWTExpirationDelta time.Duration
		ShutdownTimeout    time.Duration
	}

	mailConfig struct {
		SendgridAPIKey string
		From           string
		AlertTo        string
	}

	Config struct {
		AppName      string
		Env          string
		Build        string
		Debug        bool
		TestMode     bool
		SecretKey    string
		RollbarToken string
		API          apiConfig
		Server       serverConfig
		Mail         mailConfig
	}
)

// NewConfig loads the configuration from `config/.env.<env>` (if any) and the environment.
func NewConfig() *Config {
	conf := viper.New()

	// defaults
	conf.SetTypeByDefaultValue(true)
	conf.SetDefault("debug", true)
	conf.SetDefault("testMode", false)
	conf.SetDefault("appName", "Spring Reviewer Admin")
	conf.SetDefault("build", "develop")
	conf.SetDefault("secretKey", "x8#n2c$-q0l@v!r7s(e^v1m&t4w)e9i_u3y%ke)z6o*pa+b=")
	conf.SetDefault("rollbarToken", "")
	conf.SetDefault("apiBaseURL", "http://localhost:8080")
	conf.SetDefault("apiToken", "")
	conf.SetDefault("apiTimeout", time.Duration(0))
	conf.SetDefault("apiUserAgent", "springreviewer-admin")
	conf.SetDefault("serverAddress", ":8000")
	conf.SetDefault("serverDebugHost", ":4000")
	conf.SetDefault("serverDisableReqLogs", false)
	conf.SetDefault("serverJWTExpirationDelta", 8*time.Hour)
	conf.SetDefault("serverShutdownTimeout", 5*time.Second)
	conf.SetDefault("sendgridApiKey", "")
	conf.SetDefault("mailFrom", "noreply@localhost")
	conf.SetDefault("mailAlertTo", "")

	env := strings.ToUpper(os.Getenv("ENV")) // DEV (local; default), TEST, QA, PROD
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		conf.SetDefault("testMode", true)
	}
	conf.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(Getwd(), "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	conf.AutomaticEnv()

	return &Config{
		AppName:      conf.GetString("appName"),
		Env:          env,
		Build:        conf.GetString("build"),
		Debug:        conf.GetBool("debug"),
		TestMode:     conf.GetBool("testMode"),
		SecretKey:    conf.GetString("secretKey"),
		RollbarToken: conf.GetString("rollbarToken"),
		API: apiConfig{
			BaseURL:   strings.TrimRight(conf.GetString("apiBaseURL"), "/"),
			Token:     conf.GetString("apiToken"),
			Timeout:   conf.GetDuration("apiTimeout"),
			UserAgent: conf.GetString("apiUserAgent"),
		},
		Server: serverConfig{
			Address:            conf.GetString("serverAddress"),
			DebugHost:          conf.GetString("serverDebugHost"),
			DisableReqLogs:     conf.GetBool("serverDisableReqLogs"),
			JWTExpirationDelta: conf.GetDuration("serverJWTExpirationDelta"),
			ShutdownTimeout:    conf.GetDuration("serverShutdownTimeout"),
		},
		Mail: mailConfig{
			SendgridAPIKey: conf.GetString("sendgridApiKey"),
			From:           conf.GetString("mailFrom"),
			AlertTo:        conf.GetString("mailAlertTo"),
		},
	}
}
