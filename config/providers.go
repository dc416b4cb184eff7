package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Provider resolves a dotted configuration key such as "db.host".
type Provider interface {
	Lookup(key string) (string, bool)
}

// Env reads process environment variables: "db.host" becomes DB_HOST.
type Env struct{}

func EnvKey(key string) string {
	return strings.ToUpper(strings.NewReplacer(".", "_", "-", "_").Replace(key))
}

func (Env) Lookup(key string) (string, bool) {
	value := os.Getenv(EnvKey(key))
	if value == "" {
		return "", false
	}
	return value, true
}

// Values is a fixed key/value provider, used for secrets and defaults.
type Values map[string]string

func (v Values) Lookup(key string) (string, bool) {
	value, ok := v[key]
	if !ok || value == "" {
		return "", false
	}
	return value, true
}

// LoadSecretsFile reads a TOML secrets file. Nested tables flatten into
// dotted keys, so [db] host = "x" is available as "db.host". A missing file
// yields an empty provider.
func LoadSecretsFile(path string) (Values, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Values{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read secrets file: %w", err)
	}
	var tree map[string]any
	if err := toml.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("parse secrets file %s: %w", path, err)
	}
	out := Values{}
	flatten("", tree, out)
	return out, nil
}

func flatten(prefix string, tree map[string]any, out Values) {
	for k, v := range tree {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch val := v.(type) {
		case map[string]any:
			flatten(key, val, out)
		case string:
			out[key] = val
		case int64:
			out[key] = strconv.FormatInt(val, 10)
		case float64:
			out[key] = strconv.FormatFloat(val, 'f', -1, 64)
		case bool:
			out[key] = strconv.FormatBool(val)
		default:
			out[key] = fmt.Sprint(val)
		}
	}
}

// Resolver asks each provider in order and returns the first present value.
type Resolver struct {
	providers []Provider
}

func NewResolver(providers ...Provider) *Resolver {
	return &Resolver{providers: providers}
}

func (r *Resolver) Lookup(key string) (string, bool) {
	for _, p := range r.providers {
		if value, ok := p.Lookup(key); ok {
			return value, true
		}
	}
	return "", false
}

func (r *Resolver) Get(key string) string {
	value, _ := r.Lookup(key)
	return value
}

func (r *Resolver) Int(key string) (int, error) {
	value, ok := r.Lookup(key)
	if !ok {
		return 0, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", EnvKey(key), err)
	}
	return n, nil
}
