package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	mysqldriver "github.com/go-sql-driver/mysql"
	"gopkg.in/yaml.v3"
)

// Supported database drivers
const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

// DefaultAllowOrigin is the dev server origin of the browser client
const DefaultAllowOrigin = "http://localhost:5173"

// ErrMissingDatabase is returned when datastore credentials are absent
var ErrMissingDatabase = errors.New("missing database configuration")

// Config application configuration
type Config struct {
	Env      string         `yaml:"env"`
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	CORS     CORSConfig     `yaml:"cors"`
	Log      LogConfig      `yaml:"log"`
}

// ServerConfig HTTP server settings
type ServerConfig struct {
	Port         int    `yaml:"port"`
	Mode         string `yaml:"mode"` // gin mode: debug, release, test
	ReadTimeout  int    `yaml:"read_timeout"`
	WriteTimeout int    `yaml:"write_timeout"`
}

// DatabaseConfig datastore settings
type DatabaseConfig struct {
	Driver          string `yaml:"driver"`
	DSN             string `yaml:"dsn"`
	Host            string `yaml:"host"`
	Port            int    `yaml:"port"`
	User            string `yaml:"user"`
	Password        string `yaml:"password"`
	Name            string `yaml:"name"`
	MaxIdleConns    int    `yaml:"max_idle_conns"`
	MaxOpenConns    int    `yaml:"max_open_conns"`
	ConnMaxLifetime int    `yaml:"conn_max_lifetime"` // seconds
	AutoMigrate     bool   `yaml:"auto_migrate"`
}

// CORSConfig cross-origin settings
type CORSConfig struct {
	AllowOrigin string `yaml:"allow_origin"`
}

// LogConfig logging settings
type LogConfig struct {
	Level string `yaml:"level"`
}

// Load reads the YAML file at path, applies environment overrides and defaults, and validates
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return Parse(data)
}

// Parse builds a Config from YAML bytes plus environment overrides
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	setString(&c.Env, "APP_ENV")
	setInt(&c.Server.Port, "PORT")
	setString(&c.Database.Driver, "DB_DRIVER")
	setString(&c.Database.DSN, "DB_DSN")
	setString(&c.Database.Host, "DB_HOST")
	setInt(&c.Database.Port, "DB_PORT")
	setString(&c.Database.User, "DB_USER")
	setString(&c.Database.Password, "DB_PASSWORD")
	setString(&c.Database.Name, "DB_NAME")
	setString(&c.CORS.AllowOrigin, "CORS_ALLOW_ORIGIN")
	setString(&c.Log.Level, "LOG_LEVEL")
}

func (c *Config) applyDefaults() {
	if c.Env == "" {
		c.Env = "local"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 3001
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 15
	}
	if c.Database.Driver == "" {
		c.Database.Driver = DriverMySQL
	}
	if c.Database.Driver == DriverMySQL && c.Database.Port == 0 {
		c.Database.Port = 3306
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 20
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 300
	}
	if c.CORS.AllowOrigin == "" {
		c.CORS.AllowOrigin = DefaultAllowOrigin
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// Validate checks that the datastore can be reached with the given settings
func (c *Config) Validate() error {
	if !strings.HasPrefix(c.CORS.AllowOrigin, "http://") && !strings.HasPrefix(c.CORS.AllowOrigin, "https://") {
		return fmt.Errorf("cors.allow_origin must start with http:// or https://, got %q", c.CORS.AllowOrigin)
	}

	switch c.Database.Driver {
	case DriverSQLite:
		if c.Database.DSN == "" {
			return fmt.Errorf("%w: database.dsn (sqlite file path) is required", ErrMissingDatabase)
		}
	case DriverMySQL:
		if c.Database.DSN != "" {
			if _, err := mysqldriver.ParseDSN(c.Database.DSN); err != nil {
				return fmt.Errorf("invalid database.dsn: %w", err)
			}
			break
		}
		var missing []string
		if c.Database.Host == "" {
			missing = append(missing, "host")
		}
		if c.Database.User == "" {
			missing = append(missing, "user")
		}
		if c.Database.Name == "" {
			missing = append(missing, "name")
		}
		if len(missing) > 0 {
			return fmt.Errorf("%w: database.%s", ErrMissingDatabase, strings.Join(missing, ", database."))
		}
	default:
		return fmt.Errorf("unsupported database.driver %q", c.Database.Driver)
	}
	return nil
}

// GetDSN returns the driver DSN. For MySQL, clientFoundRows makes an update that
// rewrites identical values still count as a matched row.
func (d *DatabaseConfig) GetDSN() string {
	if d.Driver == DriverSQLite {
		return d.DSN
	}

	var mc *mysqldriver.Config
	if d.DSN != "" {
		parsed, err := mysqldriver.ParseDSN(d.DSN)
		if err != nil {
			return d.DSN
		}
		mc = parsed
	} else {
		mc = mysqldriver.NewConfig()
		mc.User = d.User
		mc.Passwd = d.Password
		mc.Net = "tcp"
		mc.Addr = fmt.Sprintf("%s:%d", d.Host, d.Port)
		mc.DBName = d.Name
	}
	mc.ParseTime = true
	mc.ClientFoundRows = true
	if mc.Params == nil {
		mc.Params = map[string]string{}
	}
	mc.Params["charset"] = "utf8mb4"
	return mc.FormatDSN()
}

// ConnMaxLifetimeDuration returns the pool connection lifetime
func (d *DatabaseConfig) ConnMaxLifetimeDuration() time.Duration {
	return time.Duration(d.ConnMaxLifetime) * time.Second
}

// IsDevelopment reports whether the process runs in a local/dev environment
func (c *Config) IsDevelopment() bool {
	switch c.Env {
	case "local", "dev", "development":
		return true
	}
	return false
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}
