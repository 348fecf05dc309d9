package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Debug                    bool   `envconfig:"debug"`
	Port                     int    `envconfig:"port" default:"8080"`
	Env                      string `envconfig:"env"`
	BaseUrl                  string `envconfig:"base_url"`
	PostgresHost             string `envconfig:"postgres_host"`
	PostgresPort             int    `envconfig:"postgres_port"`
	PostgresUser             string `envconfig:"postgres_user"`
	PostgresPassword         string `envconfig:"postgres_password"`
	PostgresDB               string `envconfig:"postgres_db"`
	JWTSecret                string `envconfig:"jwt_secret"`
	MailgunApiKey            string `envconfig:"mg_public_api_key"`
	MgDomain                 string `envconfig:"mg_domain"`
	MgEmailFrom              string `envconfig:"email_from"`
	GoogleClientID           string `envconfig:"google_client_id"`
	GoogleClientSecret       string `envconfig:"google_client_secret"`
	GoogleRedirectURL        string `envconfig:"google_redirect_url"`
	LineChannelID            string `envconfig:"line_channel_id"`
	LineChannelSecret        string `envconfig:"line_channel_secret"`
	AccessControlAllowOrigin string `envconfig:"access_control_allow_origin"`
	// DemoMode serves the seeded local data path instead of Postgres-backed
	// reports. The two stores are never mixed.
	DemoMode bool   `envconfig:"demo_mode"`
	DataDir  string `envconfig:"data_dir" default:"./data"`
}

func Load() (*Config, error) {
	env := os.Getenv("GIN_MODE")
	if env != "release" {
		if err := godotenv.Load("./.env"); err != nil {
			log.Printf("couldn't load env vars: %v", err)
		}
	}

	c := &Config{}
	err := envconfig.Process("rodhai", c)
	if err != nil {
		return nil, err
	}
	return c, nil
}
