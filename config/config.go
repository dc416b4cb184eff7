package config

import (
	"fmt"
	"os"
)

type Config struct {
	Server    ServerConfig
	Artifacts ArtifactsConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	CORS      CORSConfig
}

type ServerConfig struct {
	Port int
}

type ArtifactSourceConfig struct {
	Path string
	URL  string
}

type ArtifactsConfig struct {
	CacheDir     string
	ModelVersion string
	Pipeline     ArtifactSourceConfig
	Selector     ArtifactSourceConfig
	Model        ArtifactSourceConfig
}

// DatabaseConfig is resolved for collaborators that need the order database.
// The prediction path does not use it.
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
}

func (d DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true", d.User, d.Password, d.Host, d.Port, d.Name)
}

func (d DatabaseConfig) Configured() bool {
	return d.User != "" && d.Name != ""
}

type RedisConfig struct {
	URL          string
	Channel      string
	PingAttempts int
}

type CORSConfig struct {
	AllowedOrigins string
}

// DefaultSecretsFile is read when SECRETS_FILE is unset.
const DefaultSecretsFile = "secrets.toml"

var defaults = Values{
	"server.port":          "8080",
	"artifacts.cache_dir":  "artifacts",
	"model.version":        "reduced-v1",
	"db.host":              "localhost",
	"db.port":              "3306",
	"redis.channel":        "atlas:predictions",
	"redis.ping_attempts":  "3",
	"cors.allowed_origins": "*",
}

// NewDefaultResolver chains the secrets file, the environment and the
// built-in defaults, in that order.
func NewDefaultResolver() (*Resolver, error) {
	path := os.Getenv("SECRETS_FILE")
	if path == "" {
		path = DefaultSecretsFile
	}
	secrets, err := LoadSecretsFile(path)
	if err != nil {
		return nil, err
	}
	return NewResolver(secrets, Env{}, defaults), nil
}

func LoadConfig() (*Config, error) {
	r, err := NewDefaultResolver()
	if err != nil {
		return nil, err
	}
	return LoadConfigFrom(r)
}

func LoadConfigFrom(r *Resolver) (*Config, error) {
	serverPort, err := r.Int("server.port")
	if err != nil {
		return nil, err
	}
	dbPort, err := r.Int("db.port")
	if err != nil {
		return nil, err
	}
	pingAttempts, err := r.Int("redis.ping_attempts")
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: serverPort,
		},
		Artifacts: ArtifactsConfig{
			CacheDir:     r.Get("artifacts.cache_dir"),
			ModelVersion: r.Get("model.version"),
			Pipeline:     ArtifactSourceConfig{Path: r.Get("pipeline.path"), URL: r.Get("pipeline.url")},
			Selector:     ArtifactSourceConfig{Path: r.Get("selector.path"), URL: r.Get("selector.url")},
			Model:        ArtifactSourceConfig{Path: r.Get("model.path"), URL: r.Get("model.url")},
		},
		Database: DatabaseConfig{
			Host:     r.Get("db.host"),
			Port:     dbPort,
			User:     r.Get("db.user"),
			Password: r.Get("db.password"),
			Name:     r.Get("db.name"),
		},
		Redis: RedisConfig{
			URL:          r.Get("redis.url"),
			Channel:      r.Get("redis.channel"),
			PingAttempts: pingAttempts,
		},
		CORS: CORSConfig{
			AllowedOrigins: r.Get("cors.allowed_origins"),
		},
	}

	return cfg, nil
}
