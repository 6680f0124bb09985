package kiroku

import (
	"bufio"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Config struct
type Config struct {
	Values map[string]string
}

// Load /etc/kiroku.conf and apply defaults
func loadConfig(path string) (*Config, error) {
	cfg := &Config{Values: make(map[string]string)}

	// Attempt to read the file; a missing config file is not an error,
	// defaults and env overrides still apply.
	file, err := os.Open(path)
	if err == nil {
		defer file.Close()
		scanner := bufio.NewScanner(file)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			parts := strings.SplitN(line, "=", 2)
			if len(parts) != 2 {
				continue
			}
			key := strings.TrimSpace(parts[0])
			val := strings.TrimSpace(parts[1])
			val = strings.Trim(val, `"'`)
			cfg.Values[key] = val
		}
		if err := scanner.Err(); err != nil {
			return cfg, err
		}
	}

	mergeEnvOverrides(cfg)

	return cfg, nil
}

// Merge KIROKU_* env overrides
func mergeEnvOverrides(cfg *Config) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "KIROKU_") {
			parts := strings.SplitN(env, "=", 2)
			if len(parts) == 2 {
				cfg.Values[parts[0]] = parts[1]
			}
		}
	}
}

func initConfig(cfg *Config) {
	packageDir = cfg.Values["KIROKU_PACKAGE_DIR"]
	if packageDir == "" {
		packageDir = defaultPackageDir
	}

	scriptPath = cfg.Values["KIROKU_SCRIPT"]
	if scriptPath == "" {
		scriptPath = filepath.Join(packageDir, defaultScriptName)
	}

	buildCmdStr := cfg.Values["KIROKU_BUILD_CMD"]
	if buildCmdStr == "" {
		buildCmdStr = defaultBuildCommand
	}
	buildCommand = strings.Fields(buildCmdStr)

	compilePrefix = cfg.Values["KIROKU_COMPILE_PREFIX"]
	if compilePrefix == "" {
		compilePrefix = defaultCompilePrefix
	}

	linkPrefix = cfg.Values["KIROKU_LINK_PREFIX"]
	if linkPrefix == "" {
		linkPrefix = defaultLinkPrefix
	}

	suppressFlag = defaultSuppressFlag
	addSuppress = true
	if cfg.Values["KIROKU_SUPPRESS_WARNINGS"] == "0" {
		addSuppress = false
	}

	// Script mode defaults to owner-executable; the historical behavior of
	// the original recorder (world-writable 0777) stays available via config.
	scriptMode = 0o755
	if m := cfg.Values["KIROKU_SCRIPT_MODE"]; m != "" {
		if parsed, err := strconv.ParseUint(strings.TrimPrefix(m, "0o"), 8, 32); err == nil {
			scriptMode = os.FileMode(parsed)
		} else {
			colWarn.Printf("Ignoring invalid KIROKU_SCRIPT_MODE %q\n", m)
		}
	}

	cacheDir = cfg.Values["KIROKU_CACHE_DIR"]
	if cacheDir == "" {
		cacheDir = defaultCacheDir
	}
	tracesDir = filepath.Join(cacheDir, "traces")

	Debug = cfg.Values["KIROKU_DEBUG"] == "1"
}
