package persist

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// FileName is the name of the store file inside the data directory.
const FileName = "kvs-store"

// LocalDataDir returns the per-user, non-roaming data directory for the
// current platform.
func LocalDataDir() (string, error) {
	return localDataDir(runtime.GOOS, os.Getenv)
}

func localDataDir(goos string, getenv func(string) string) (string, error) {
	switch goos {
	case "windows":
		dir := getenv("LocalAppData")
		if dir == "" {
			return "", errors.New("%LocalAppData% is not defined")
		}
		return dir, nil

	case "darwin", "ios":
		home := getenv("HOME")
		if home == "" {
			return "", errors.New("$HOME is not defined")
		}
		return filepath.Join(home, "Library", "Application Support"), nil

	case "plan9", "js", "wasip1":
		return "", fmt.Errorf("no local data directory on %s", goos)

	default:
		if dir := getenv("XDG_DATA_HOME"); dir != "" && filepath.IsAbs(dir) {
			return dir, nil
		}
		home := getenv("HOME")
		if home == "" {
			return "", errors.New("neither $XDG_DATA_HOME nor $HOME are defined")
		}
		return filepath.Join(home, ".local", "share"), nil
	}
}

// ResolvePath returns the location of the store file in the local data directory.
func ResolvePath() (string, error) {
	dir, err := LocalDataDir()
	if err != nil {
		return "", newError(KindPathResolution, "resolve", "", err)
	}
	return filepath.Join(dir, FileName), nil
}
