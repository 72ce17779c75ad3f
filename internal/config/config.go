package config

import "github.com/caarlos0/env/v11"

// Config holds the admin app configuration, loaded from environment
// variables.
type Config struct {
	ListenAddr string `env:"LISTEN_ADDR" envDefault:":8080"`

	// BackendURL is the base URL of the hosted menu backend. Empty means no
	// backend is configured and the app serves an in-memory demo menu.
	BackendURL    string `env:"BACKEND_URL"`
	BackendAPIKey string `env:"BACKEND_API_KEY"`
	BackendToken  string `env:"BACKEND_TOKEN"`

	// StateDir holds local app state, currently just the development
	// authentication flag file.
	StateDir string `env:"STATE_DIR" envDefault:"/data/menuadmin"`

	Locale   string `env:"LOCALE" envDefault:"en"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile  string `env:"LOG_FILE"`
}

// StubConfig holds the local stub backend configuration.
type StubConfig struct {
	ListenAddr    string `env:"LISTEN_ADDR" envDefault:":9090"`
	DBPath        string `env:"DB_PATH" envDefault:"/data/menustub.db"`
	APIKey        string `env:"API_KEY" envDefault:"dev-local-key"`
	JWTSecret     string `env:"JWT_SECRET" envDefault:"menustub-dev-secret"`
	AdminEmail    string `env:"ADMIN_EMAIL" envDefault:"admin@example.com"`
	AdminPassword string `env:"ADMIN_PASSWORD" envDefault:"admin"`
	LogLevel      string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile       string `env:"LOG_FILE"`
}

// Load parses the admin app configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadStub parses the stub backend configuration from the environment.
func LoadStub() (*StubConfig, error) {
	cfg := &StubConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
