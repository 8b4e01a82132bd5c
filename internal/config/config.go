package config

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type S3Config struct {
	Region    string `yaml:"region"`
	Bucket    string `yaml:"bucket"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Endpoint  string `yaml:"endpoint"`   // пусто — обычный AWS
	PublicURL string `yaml:"public_url"` // base for returned object URLs
}

type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`
	JWT struct {
		Secret string `yaml:"secret"`
	} `yaml:"jwt"`
	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUser     string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
	} `yaml:"email"`
	S3  S3Config `yaml:"s3"`
	App struct {
		Name        string `yaml:"name"`
		FrontendURL string `yaml:"frontend_url"`
	} `yaml:"app"`
}

// LoadConfig reads config/config.yaml when present, then applies environment
// overrides. Secrets are expected to arrive via env in deployments.
func LoadConfig() *Config {
	var cfg Config

	if f, err := os.Open("config/config.yaml"); err == nil {
		defer f.Close()
		if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
			panic("Failed to parse config.yaml: " + err.Error())
		}
	}

	overrideString(&cfg.Database.DSN, "DATABASE_URL")
	overrideString(&cfg.JWT.Secret, "JWT_SECRET")
	overrideString(&cfg.Email.SMTPHost, "SMTP_HOST")
	overrideInt(&cfg.Email.SMTPPort, "SMTP_PORT")
	overrideString(&cfg.Email.SMTPUser, "SMTP_USER")
	overrideString(&cfg.Email.SMTPPassword, "SMTP_PASSWORD")
	overrideString(&cfg.Email.FromEmail, "EMAIL_FROM")
	overrideString(&cfg.S3.Region, "S3_REGION")
	overrideString(&cfg.S3.Bucket, "S3_BUCKET")
	overrideString(&cfg.S3.AccessKey, "S3_ACCESS_KEY")
	overrideString(&cfg.S3.SecretKey, "S3_SECRET_KEY")
	overrideString(&cfg.S3.Endpoint, "S3_ENDPOINT")
	overrideString(&cfg.S3.PublicURL, "S3_PUBLIC_URL")
	overrideString(&cfg.App.Name, "APP_NAME")
	overrideString(&cfg.App.FrontendURL, "FRONTEND_URL")
	overrideInt(&cfg.Server.Port, "PORT")

	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.App.Name == "" {
		cfg.App.Name = "LinkUp"
	}
	if cfg.JWT.Secret == "" {
		panic("JWT_SECRET is not configured")
	}
	return &cfg
}

func overrideString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func overrideInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}
