package logconf

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// DefaultConfigFile is the logging document looked up when Options.ConfigFile
// is empty.
const DefaultConfigFile = "logger.yml"

// TimestampLayout is the time layout used in derived log file names.
const TimestampLayout = "2006-01-02_150405"

// ResolvePath locates the logging document.
//
// It checks searchDir joined with configFile first (skipped when searchDir is
// empty or configFile is absolute), then configFile as given, which is
// relative to the current working directory.
// When neither exists it returns a *ConfigNotFoundError naming every path
// tried.
func ResolvePath(searchDir, configFile string) (string, error) {
	var tried []string
	if searchDir != "" && !filepath.IsAbs(configFile) {
		path := filepath.Join(searchDir, configFile)
		tried = append(tried, path)
		if isFile(path) {
			return path, nil
		}
	}
	tried = append(tried, configFile)
	if isFile(configFile) {
		return configFile, nil
	}
	return "", &ConfigNotFoundError{
		Name:  configFile,
		Tried: tried,
	}
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// ExecutableDir returns the directory of the running executable,
// or an empty string when it cannot be determined.
func ExecutableDir() string {
	exe, err := os.Executable()
	if err != nil {
		return ""
	}
	return filepath.Dir(exe)
}

var (
	programNameOnce sync.Once
	programName     string
)

// ProgramName returns the name of the process entry point without extension.
//
// It's resolved once per process from os.Args[0],
// falling back to os.Executable.
func ProgramName() string {
	programNameOnce.Do(func() {
		path := ""
		if len(os.Args) > 0 {
			path = os.Args[0]
		}
		if path == "" {
			path, _ = os.Executable()
		}
		programName = stripExt(filepath.Base(path))
	})
	return programName
}

func stripExt(name string) string {
	if i := strings.Index(name, "."); i > 0 {
		return name[:i]
	}
	return name
}

// LogFileName derives the log file name
//
//	<prefix>_<YYYY-MM-DD_HHMMSS>.log
//
// prefix defaults to program stripped of directories and extension.
// When dir is non-empty the prefix is joined to it.
func LogFileName(prefix, dir, program string, now time.Time) string {
	if prefix == "" {
		prefix = stripExt(filepath.Base(program))
	}
	if dir != "" {
		prefix = filepath.Join(dir, prefix)
	}
	return prefix + "_" + now.Format(TimestampLayout) + ".log"
}
