package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads env files from dir with priority: .env.<APP_ENV> > .env.local > .env
// godotenv.Load does NOT overwrite already-set env vars, so OS env vars always win
// and earlier files win over later ones. Returns list of files actually loaded.
func LoadDotEnv(dir string) []string {
	var candidates []string
	if env := os.Getenv("APP_ENV"); env != "" {
		candidates = append(candidates, ".env."+env)
	}
	candidates = append(candidates, ".env.local", ".env")

	var loaded []string
	for _, f := range candidates {
		path := filepath.Join(dir, f)
		if _, err := os.Stat(path); err == nil {
			loaded = append(loaded, path)
		}
	}
	if len(loaded) > 0 {
		_ = godotenv.Load(loaded...)
	}
	return loaded
}

// ConfigPath returns the YAML config path for the current APP_ENV
func ConfigPath() string {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "local"
	}
	return filepath.Join("configs", "config."+env+".yaml")
}
