package storage

import (
	"fmt"
	"hash/fnv"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// projectMarkers are the files/directories whose presence identifies a
// project root, walked from the working directory toward the filesystem
// root (spec §4.3), grounded on glint/src/storage/db_path.rs detect_project_root.
var projectMarkers = []string{
	".git",
	"Cargo.toml",
	"package.json",
	"go.mod",
	"pom.xml",
	"build.gradle",
	"pyproject.toml",
	"composer.json",
}

// DetectProjectRoot walks up from dir looking for the first ancestor
// containing one of projectMarkers. Returns dir unchanged if none is found.
func DetectProjectRoot(dir string) string {
	cur := dir
	for {
		for _, marker := range projectMarkers {
			if _, err := os.Stat(filepath.Join(cur, marker)); err == nil {
				return cur
			}
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			break
		}
		cur = parent
	}
	return dir
}

// ProjectPathToDBName normalizes an absolute project path into a safe
// filename stem: lowercase, replace `/ \ : space` with `_`, trim leading
// and trailing `_`. Names over 100 characters are replaced by
// `project_<hex>`, a stable FNV-1a hash of the original path, so the
// result always stays short.
func ProjectPathToDBName(projectPath string) string {
	replacer := strings.NewReplacer("/", "_", "\\", "_", ":", "_", " ", "_")
	name := strings.ToLower(strings.Trim(replacer.Replace(projectPath), "_"))

	if len(name) > 100 {
		h := fnv.New64a()
		_, _ = h.Write([]byte(projectPath))
		return fmt.Sprintf("project_%x", h.Sum64())
	}
	if name == "" {
		return "default"
	}
	return name
}

// ConfigDir resolves glint's configuration directory: $XDG_CONFIG_HOME/glint
// or $HOME/.config/glint on Unix, %APPDATA%\glint on Windows.
func ConfigDir() string {
	if runtime.GOOS == "windows" {
		base := os.Getenv("APPDATA")
		if base == "" {
			base = "."
		}
		return filepath.Join(base, "glint")
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "glint")
	}
	home := os.Getenv("HOME")
	if home == "" {
		home = "."
	}
	return filepath.Join(home, ".config", "glint")
}

// DataDir resolves glint's data directory: $XDG_DATA_HOME/glint or
// $HOME/.local/share/glint on Unix, %LOCALAPPDATA%\glint on Windows. The
// directory is created if it doesn't exist yet, so callers can always
// os.ReadDir it without a missing-directory error.
func DataDir() string {
	var dir string
	switch {
	case runtime.GOOS == "windows":
		base := os.Getenv("LOCALAPPDATA")
		if base == "" {
			base = os.Getenv("APPDATA")
		}
		if base == "" {
			base = "."
		}
		dir = filepath.Join(base, "glint")
	case os.Getenv("XDG_DATA_HOME") != "":
		dir = filepath.Join(os.Getenv("XDG_DATA_HOME"), "glint")
	default:
		home := os.Getenv("HOME")
		if home == "" {
			home = "."
		}
		dir = filepath.Join(home, ".local", "share", "glint")
	}

	_ = os.MkdirAll(dir, 0o755)
	return dir
}

// ResolveDBPath determines the database file path to open. override, when
// non-empty, always wins (spec §9: "the override is the authoritative path
// and must take precedence when present"). Otherwise it resolves the
// current project's database under DataDir, creating the data directory if
// missing.
func ResolveDBPath(override string) (string, error) {
	if override != "" {
		return override, nil
	}

	dataDir := DataDir()

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("resolve working directory: %w", err)
	}
	root := DetectProjectRoot(cwd)
	name := ProjectPathToDBName(root)
	return filepath.Join(dataDir, name+".db"), nil
}
