package config

import "github.com/caarlos0/env/v9"

type Config struct {
	Port              string `env:"PORT" envDefault:"8080"`
	FirebaseProjectID string `env:"FIREBASE_PROJECT_ID,required"`
	StorageBucket     string `env:"STORAGE_BUCKET,required"`
	CredentialsFile   string `env:"GOOGLE_APPLICATION_CREDENTIALS"` // empty -> application default credentials
	UploadDir         string `env:"UPLOAD_DIR" envDefault:"uploads"`
	DefaultUserID     string `env:"DEFAULT_USER_ID" envDefault:"admin_user"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
