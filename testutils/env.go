// Package testutils loads credentials for the optional live tests.
package testutils

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/bodrovis/taxjar/utils"
)

// FindProjectRoot walks up from start until it finds a directory with go.mod.
func FindProjectRoot(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("go.mod not found")
		}
		dir = parent
	}
}

// LoadDotEnv loads the given files, or else .env from the working directory,
// or else .env from the project root. Existing variables are not overridden.
func LoadDotEnv(paths ...string) error {
	if len(paths) > 0 {
		return godotenv.Load(paths...)
	}
	if err := godotenv.Load(); err == nil {
		return nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	root, err := FindProjectRoot(wd)
	if err != nil {
		return err
	}
	return godotenv.Load(filepath.Join(root, ".env"))
}

func GetEnv(key, def string) string { return utils.GetEnv(key, def) }

// LiveToken returns the sandbox token for live tests, or "" when none is configured.
func LiveToken() string {
	_ = LoadDotEnv()
	return GetEnv("TAXJAR_API_TOKEN", "")
}
