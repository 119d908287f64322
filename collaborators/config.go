package collaborators

import (
	"os"
	"strconv"
	"strings"
)

// EnvConfigSource resolves configuration from environment variables,
// upper-casing and dash-to-underscore-normalizing the key so callers can
// use either "http.port" or "HTTP_PORT" consistently.
type EnvConfigSource struct{}

// NewEnvConfigSource builds a ConfigSource backed by os.Getenv.
func NewEnvConfigSource() *EnvConfigSource {
	return &EnvConfigSource{}
}

func (EnvConfigSource) envKey(key string) string {
	key = strings.ReplaceAll(key, ".", "_")
	key = strings.ReplaceAll(key, "-", "_")
	return strings.ToUpper(key)
}

func (c EnvConfigSource) String(key, fallback string) string {
	if v, ok := os.LookupEnv(c.envKey(key)); ok {
		return v
	}
	return fallback
}

func (c EnvConfigSource) Int(key string, fallback int) int {
	v, ok := os.LookupEnv(c.envKey(key))
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func (c EnvConfigSource) Bool(key string, fallback bool) bool {
	v, ok := os.LookupEnv(c.envKey(key))
	if !ok {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
