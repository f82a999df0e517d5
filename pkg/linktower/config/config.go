package config

import "github.com/spf13/viper"

// Config holds all configuration for the server. Values come from
// LINKTOWER_* environment variables, with development defaults.
type Config struct {
	Port    string `mapstructure:"PORT"`
	DBPath  string `mapstructure:"DB_PATH"`
	BaseURL string `mapstructure:"BASE_URL"`
}

// Load reads configuration from the environment.
// BaseURL is the public root of the site; doors are detected by
// matching stored link URLs against "<BaseURL>/rooms/<slug>".
func Load() (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("LINKTOWER")
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("DB_PATH", "linktower.db")
	v.SetDefault("BASE_URL", "http://localhost:8080")

	// AutomaticEnv alone does not populate Unmarshal, so bind each key.
	for _, key := range []string{"PORT", "DB_PATH", "BASE_URL"} {
		if err := v.BindEnv(key); err != nil {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
