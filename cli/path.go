package cli

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/ardnew/constx/pkg"
)

// baseConfig is the base name of the configuration file in [configDir].
const baseConfig = "config"

var defaultDirMode os.FileMode = 0o700

// appDir returns the constx directory under the platform directory reported
// by userDir. If userDir fails, the directory is placed under fallback in the
// user's home directory, or under fallback in the working directory if there
// is no home directory either.
func appDir(userDir func() (string, error), fallback string) string {
	if dir, err := userDir(); err == nil {
		return filepath.Join(dir, pkg.Name)
	}

	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, fallback, pkg.Name)
	}

	return filepath.Join(fallback, pkg.Name)
}

// configDir holds the configuration file.
var configDir = sync.OnceValue(func() string {
	return appDir(os.UserConfigDir, ".config")
})

// cacheDir holds REPL history and profiles.
var cacheDir = sync.OnceValue(func() string {
	return appDir(os.UserCacheDir, ".cache")
})

// configPath returns the path of the file name in [configDir].
func configPath(name string) string {
	return filepath.Join(configDir(), name)
}

// mkdirAllRequired creates the configuration and cache directories.
func mkdirAllRequired() error {
	for _, dir := range []string{configDir(), cacheDir()} {
		if err := os.MkdirAll(dir, defaultDirMode); err != nil {
			return err
		}
	}

	return nil
}
