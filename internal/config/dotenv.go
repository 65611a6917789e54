package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// EnvFileVar names the variable that points at the env file.
const EnvFileVar = "CODEMASH_ENV_FILE"

// DefaultEnvFile is read when EnvFileVar is unset.
const DefaultEnvFile = ".env.codemash"

// LoadEnvFile applies the env file on top of the process environment and
// returns its path. A missing file is not an error.
func LoadEnvFile() (string, error) {
	path := os.Getenv(EnvFileVar)
	if path == "" {
		path = DefaultEnvFile
	}

	if err := godotenv.Overload(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return path, fmt.Errorf("load env file %s: %w", path, err)
	}
	return path, nil
}
