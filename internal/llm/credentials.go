package llm

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// ErrMissingAPIKey is returned when no credential is configured.
var ErrMissingAPIKey = errors.New("API key not configured")

// Credentials resolves the API key each time a request is made, so a key
// rotated in the environment or the env file applies to the next conversion.
type Credentials struct {
	EnvVar     string
	DotEnvPath string
}

// APIKey returns the key from the process environment, falling back to the
// env file.
func (c Credentials) APIKey() (string, error) {
	if c.EnvVar == "" {
		return "", ErrMissingAPIKey
	}
	if v := strings.TrimSpace(os.Getenv(c.EnvVar)); v != "" {
		return v, nil
	}
	if c.DotEnvPath == "" {
		return "", fmt.Errorf("%w: %s is unset", ErrMissingAPIKey, c.EnvVar)
	}

	envs, err := godotenv.Read(c.DotEnvPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s is unset", ErrMissingAPIKey, c.EnvVar)
		}
		return "", fmt.Errorf("reading %s: %w", c.DotEnvPath, err)
	}
	if v := strings.TrimSpace(envs[c.EnvVar]); v != "" {
		return v, nil
	}
	return "", fmt.Errorf("%w: %s is unset", ErrMissingAPIKey, c.EnvVar)
}
