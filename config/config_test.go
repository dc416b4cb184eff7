package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

var configEnvKeys = []string{
	"SECRETS_FILE", "SERVER_PORT", "ARTIFACTS_CACHE_DIR", "MODEL_VERSION",
	"PIPELINE_PATH", "PIPELINE_URL", "SELECTOR_PATH", "SELECTOR_URL", "MODEL_PATH", "MODEL_URL",
	"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME",
	"REDIS_URL", "REDIS_CHANNEL", "REDIS_PING_ATTEMPTS", "CORS_ALLOWED_ORIGINS",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configEnvKeys {
		t.Setenv(key, "")
	}
}

func writeSecrets(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "secrets.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write secrets: %v", err)
	}
	return path
}

func TestGetDSN(t *testing.T) {
	db := DatabaseConfig{
		Host:     "localhost",
		Port:     3306,
		User:     "atlas",
		Password: "secret",
		Name:     "orders",
	}
	dsn := db.GetDSN()

	expected := "atlas:secret@tcp(localhost:3306)/orders?parseTime=true"
	if dsn != expected {
		t.Errorf("GetDSN() = %q, want %q", dsn, expected)
	}
}

func TestGetDSNCustomValues(t *testing.T) {
	db := DatabaseConfig{
		Host:     "db.example.com",
		Port:     3307,
		User:     "admin",
		Password: "p@ss",
		Name:     "mydb",
	}
	dsn := db.GetDSN()

	if !strings.Contains(dsn, "tcp(db.example.com:3307)") {
		t.Errorf("DSN missing host and port, got: %s", dsn)
	}
	if !strings.HasPrefix(dsn, "admin:p@ss@") {
		t.Errorf("DSN missing credentials, got: %s", dsn)
	}
}

func TestEnvKey(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"db.host", "DB_HOST"},
		{"artifacts.cache_dir", "ARTIFACTS_CACHE_DIR"},
		{"cors.allowed-origins", "CORS_ALLOWED_ORIGINS"},
		{"REDIS_URL", "REDIS_URL"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := EnvKey(tt.key); got != tt.want {
				t.Errorf("EnvKey(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestEnvProvider(t *testing.T) {
	t.Setenv("TEST_CONFIG_VAR", "")
	if _, ok := (Env{}).Lookup("test.config.var"); ok {
		t.Error("empty env var should not be present")
	}

	t.Setenv("TEST_CONFIG_VAR", "custom")
	if got, ok := (Env{}).Lookup("test.config.var"); !ok || got != "custom" {
		t.Errorf("Lookup() = %q, %v, want %q, true", got, ok, "custom")
	}
}

func TestResolverPrecedence(t *testing.T) {
	first := Values{"db.host": "from-secrets"}
	second := Values{"db.host": "from-env", "db.user": "env-user"}
	third := Values{"db.host": "localhost", "db.user": "default-user", "db.port": "3306"}
	r := NewResolver(first, second, third)

	tests := []struct {
		key  string
		want string
	}{
		{"db.host", "from-secrets"},
		{"db.user", "env-user"},
		{"db.port", "3306"},
		{"db.name", ""},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := r.Get(tt.key); got != tt.want {
				t.Errorf("Get(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestResolverSkipsEmptyValues(t *testing.T) {
	r := NewResolver(Values{"db.host": ""}, Values{"db.host": "fallback"})
	if got := r.Get("db.host"); got != "fallback" {
		t.Errorf("Get() = %q, want %q", got, "fallback")
	}
}

func TestResolverInt(t *testing.T) {
	t.Run("absent key is zero", func(t *testing.T) {
		got, err := NewResolver().Int("server.port")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != 0 {
			t.Errorf("Int() = %d, want 0", got)
		}
	})

	t.Run("parses valid int", func(t *testing.T) {
		got, err := NewResolver(Values{"server.port": "9090"}).Int("server.port")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != 9090 {
			t.Errorf("Int() = %d, want %d", got, 9090)
		}
	})

	t.Run("error on invalid int", func(t *testing.T) {
		_, err := NewResolver(Values{"server.port": "not_int"}).Int("server.port")
		if err == nil {
			t.Fatal("expected error for invalid int value")
		}
		if !strings.Contains(err.Error(), "SERVER_PORT") {
			t.Errorf("error should name the env key, got: %v", err)
		}
	})
}

func TestLoadSecretsFile(t *testing.T) {
	path := writeSecrets(t, `
api_key = "abc"

[db]
user = "atlas"
password = "s3cret"
port = 3307
`)
	secrets, err := LoadSecretsFile(path)
	if err != nil {
		t.Fatalf("LoadSecretsFile() error: %v", err)
	}

	want := map[string]string{
		"api_key":     "abc",
		"db.user":     "atlas",
		"db.password": "s3cret",
		"db.port":     "3307",
	}
	for key, value := range want {
		if got, _ := secrets.Lookup(key); got != value {
			t.Errorf("secrets[%q] = %q, want %q", key, got, value)
		}
	}
}

func TestLoadSecretsFileMissing(t *testing.T) {
	secrets, err := LoadSecretsFile(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("missing file should not be an error: %v", err)
	}
	if len(secrets) != 0 {
		t.Errorf("expected empty secrets, got %v", secrets)
	}
}

func TestLoadSecretsFileInvalid(t *testing.T) {
	path := writeSecrets(t, "[db\nuser = ")
	if _, err := LoadSecretsFile(path); err == nil {
		t.Error("expected error for malformed TOML")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("SECRETS_FILE", filepath.Join(t.TempDir(), "absent.toml"))

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Database.Host != "localhost" {
		t.Errorf("Database.Host = %q, want %q", cfg.Database.Host, "localhost")
	}
	if cfg.Database.Port != 3306 {
		t.Errorf("Database.Port = %d, want 3306", cfg.Database.Port)
	}
	if cfg.Database.Configured() {
		t.Error("Database should not be configured without user and name")
	}
	if cfg.Artifacts.CacheDir != "artifacts" {
		t.Errorf("Artifacts.CacheDir = %q, want %q", cfg.Artifacts.CacheDir, "artifacts")
	}
	if cfg.Redis.URL != "" {
		t.Errorf("Redis.URL = %q, want empty", cfg.Redis.URL)
	}
	if cfg.Redis.PingAttempts != 3 {
		t.Errorf("Redis.PingAttempts = %d, want 3", cfg.Redis.PingAttempts)
	}
	if cfg.CORS.AllowedOrigins != "*" {
		t.Errorf("CORS.AllowedOrigins = %q, want %q", cfg.CORS.AllowedOrigins, "*")
	}
}

func TestLoadConfigCustom(t *testing.T) {
	clearEnv(t)
	t.Setenv("SECRETS_FILE", writeSecrets(t, `
[db]
host = "db.secrets"
user = "atlas"
name = "orders"

[model]
url = "https://models.example.com/model.json"
`))
	t.Setenv("SERVER_PORT", "3000")
	t.Setenv("DB_HOST", "db.env")
	t.Setenv("DB_PORT", "3307")
	t.Setenv("PIPELINE_URL", "https://models.example.com/pipeline.json")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}

	if cfg.Server.Port != 3000 {
		t.Errorf("Server.Port = %d, want 3000", cfg.Server.Port)
	}
	if cfg.Database.Host != "db.secrets" {
		t.Errorf("Database.Host = %q, want secrets value %q", cfg.Database.Host, "db.secrets")
	}
	if cfg.Database.Port != 3307 {
		t.Errorf("Database.Port = %d, want 3307", cfg.Database.Port)
	}
	if !cfg.Database.Configured() {
		t.Error("Database should be configured")
	}
	if cfg.Artifacts.Pipeline.URL != "https://models.example.com/pipeline.json" {
		t.Errorf("Pipeline.URL = %q", cfg.Artifacts.Pipeline.URL)
	}
	if cfg.Artifacts.Model.URL != "https://models.example.com/model.json" {
		t.Errorf("Model.URL = %q", cfg.Artifacts.Model.URL)
	}
}

func TestLoadConfigInvalidPort(t *testing.T) {
	clearEnv(t)
	t.Setenv("SECRETS_FILE", filepath.Join(t.TempDir(), "absent.toml"))
	t.Setenv("SERVER_PORT", "invalid")

	_, err := LoadConfig()
	if err == nil {
		t.Error("expected error for invalid SERVER_PORT")
	}
}
