package configloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/samber/lo"
)

// appName names the config directories and files.
const appName = "mdedit"

// ConfigPaths represents discovered configuration file paths.
type ConfigPaths struct {
	// System is the system-wide config path (e.g., /etc/mdedit/config.yaml).
	System string

	// User is the user-level config path (e.g., ~/.config/mdedit/config.yaml).
	User string

	// Project is the project-level config path (e.g., ./.mdedit.yml).
	Project string

	// Explicit is a config path provided via --config flag.
	Explicit string
}

// projectConfigFiles are the project config names, in order of preference.
//
//nolint:gochecknoglobals // Read-only lookup table.
var projectConfigFiles = []string{
	"." + appName + ".yml",
	"." + appName + ".yaml",
	appName + ".yml",
	appName + ".yaml",
}

// vcsRootMarkers are directories that indicate a VCS root.
//
//nolint:gochecknoglobals // Read-only lookup table.
var vcsRootMarkers = []string{".git", ".hg", ".svn"}

// DiscoverPaths finds configuration files in standard locations.
// Missing files are represented as empty strings (not errors).
func DiscoverPaths(ctx context.Context, workDir string) (*ConfigPaths, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context cancelled: %w", err)
	}

	project, err := FindProjectConfig(ctx, workDir)
	if err != nil {
		return nil, err
	}

	return &ConfigPaths{
		System:  findConfigInDir(systemConfigDir()),
		User:    findConfigInDir(userConfigDir()),
		Project: project,
	}, nil
}

func systemConfigDir() string {
	if runtime.GOOS == "windows" {
		programData := os.Getenv("ProgramData")
		if programData == "" {
			programData = `C:\ProgramData`
		}
		return filepath.Join(programData, appName)
	}
	return filepath.Join("/etc", appName)
}

// userConfigDir honors XDG_CONFIG_HOME, falling back to ~/.config.
func userConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, appName)
}

// UserConfigPath is where `mdedit init --user` writes.
func UserConfigPath() string {
	dir := userConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// findConfigInDir returns the first config file in dir, or "".
func findConfigInDir(dir string) string {
	if dir == "" {
		return ""
	}
	return firstFile(dir, []string{"config.yaml", "config.yml"})
}

// FindProjectConfig searches upward from startDir for a project config file.
// Returns the path to the first config file found, or empty string if none.
// Stops at VCS roots, the home directory, or the filesystem root.
func FindProjectConfig(ctx context.Context, startDir string) (string, error) {
	var found string
	err := walkUp(ctx, startDir, func(dir string) bool {
		found = firstFile(dir, projectConfigFiles)
		return found != ""
	})
	return found, err
}

// ProjectRoot returns the nearest ancestor of startDir holding a project
// config or a VCS root marker, or startDir itself when there is none.
func ProjectRoot(ctx context.Context, startDir string) (string, error) {
	absDir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	root := absDir
	err = walkUp(ctx, absDir, func(dir string) bool {
		if firstFile(dir, projectConfigFiles) != "" || isVCSRoot(dir) {
			root = dir
			return true
		}
		return false
	})
	return root, err
}

// walkUp calls visit for startDir and each parent until visit returns true
// or a boundary is reached. VCS roots are visited but not crossed.
func walkUp(ctx context.Context, startDir string, visit func(dir string) bool) error {
	if startDir == "" {
		var err error
		startDir, err = os.Getwd()
		if err != nil {
			return fmt.Errorf("get working directory: %w", err)
		}
	}

	currentDir, err := filepath.Abs(startDir)
	if err != nil {
		return fmt.Errorf("resolve absolute path: %w", err)
	}

	homeDir, homeErr := os.UserHomeDir()
	if homeErr != nil {
		homeDir = ""
	}

	for {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("context cancelled: %w", err)
		}
		if visit(currentDir) || isVCSRoot(currentDir) {
			return nil
		}
		if homeDir != "" && currentDir == homeDir {
			return nil
		}
		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return nil
		}
		currentDir = parentDir
	}
}

func firstFile(dir string, names []string) string {
	name, ok := lo.Find(names, func(name string) bool {
		return fileExists(filepath.Join(dir, name))
	})
	if !ok {
		return ""
	}
	return filepath.Join(dir, name)
}

// isVCSRoot returns true if the directory contains a VCS root marker.
func isVCSRoot(dir string) bool {
	return lo.SomeBy(vcsRootMarkers, func(marker string) bool {
		info, err := os.Stat(filepath.Join(dir, marker))
		return err == nil && info.IsDir()
	})
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
