package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// Config holds application configuration.
type Config struct {
	// CourseTitle appears in generated document headers
	CourseTitle string `json:"course_title,omitempty"`

	// DefaultDuration is the class period length in minutes, applied to
	// days that don't set their own duration
	DefaultDuration string `json:"default_duration,omitempty"`

	// OutputDir is where generated week folders are written.
	// Defaults to <baseDir>/output.
	OutputDir string `json:"output_dir,omitempty"`

	// PexelsAPIKey authorizes stock-image lookups during generation.
	// The PEXELS_API_KEY environment variable takes precedence.
	PexelsAPIKey string `json:"pexels_api_key,omitempty"`

	// AllowedPaths lists extra directories import/export may touch beyond
	// ~/.chalk/exports. Entries must be absolute; relative ones are ignored.
	AllowedPaths []string `json:"allowed_paths,omitempty"`

	// AllowUnsafePaths lifts the directory allowlist for import/export.
	// Symlink and extension checks still apply.
	AllowUnsafePaths bool `json:"allow_unsafe_paths,omitempty"`

	// DBMaxOpenConns caps open database connections. 1 serializes all
	// access, which avoids "database is locked" under contention. 0 keeps
	// the sql.DB default.
	DBMaxOpenConns int `json:"db_max_open_conns,omitempty"`

	// DBMaxIdleConns caps idle database connections. 0 keeps the sql.DB
	// default.
	DBMaxIdleConns int `json:"db_max_idle_conns,omitempty"`

	// DisabledTools names MCP tools to leave unregistered. Unknown names
	// produce a startup warning.
	DisabledTools []string `json:"disabled_tools,omitempty"`

	// DisabledTypes disables every tool under a type prefix at once.
	// The only known type is "plan".
	DisabledTypes []string `json:"disabled_types,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		CourseTitle:     "Media Foundations",
		DefaultDuration: "90",
	}
}

// Load loads configuration from baseDir/config.json.
// Returns default config if the file doesn't exist.
// The baseDir parameter allows tests to use t.TempDir() instead of ~/.chalk.
func Load(baseDir string) (*Config, error) {
	cfg, err := loadFile(filepath.Join(baseDir, "config.json"))
	if err != nil {
		return nil, err
	}
	return finalize(cfg, baseDir), nil
}

// LoadWithCourse loads configuration from both global (~/.chalk) and course
// (.chalk) directories. Course config is found by walking upward from
// startDir to find the nearest .chalk/config.json.
// Course config takes precedence for scalar values; arrays are merged
// (deduplicated). Either or both configs may be missing.
func LoadWithCourse(globalDir, startDir string) (*Config, error) {
	global, err := loadFileRaw(filepath.Join(globalDir, "config.json"))
	if err != nil {
		return nil, err
	}

	// Walk upward from startDir to find course config
	courseConfigPath := FindCourseConfig(startDir)
	course, err := loadFileRaw(courseConfigPath)
	if err != nil {
		return nil, err
	}

	// Apply defaults, then global, then course
	return finalize(Merge(Merge(DefaultConfig(), global), course), globalDir), nil
}

// FindCourseConfig walks upward from startDir to find the nearest .chalk/config.json.
// Returns the path if found, or empty string if not found.
func FindCourseConfig(startDir string) string {
	dir := startDir
	for {
		configPath := filepath.Join(dir, ".chalk", "config.json")
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root, not found
			return ""
		}
		dir = parent
	}
}

// finalize resolves derived values: the output directory falls back to
// baseDir/output, and the PEXELS_API_KEY environment variable overrides
// the configured key.
func finalize(cfg *Config, baseDir string) *Config {
	if cfg.OutputDir == "" {
		cfg.OutputDir = filepath.Join(baseDir, "output")
	}
	if key := os.Getenv("PEXELS_API_KEY"); key != "" {
		cfg.PexelsAPIKey = key
	}
	return cfg
}

// loadFileRaw reads one config file. A missing file yields a zero config,
// not defaults, so Merge can distinguish "unset" from "set to default".
func loadFileRaw(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if errors.Is(err, os.ErrNotExist) {
		return &Config{}, nil
	}
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadFile reads one config file layered over the defaults.
func loadFile(configPath string) (*Config, error) {
	cfg, err := loadFileRaw(configPath)
	if err != nil {
		return nil, err
	}
	return Merge(DefaultConfig(), cfg), nil
}

// Merge layers overlay on top of base. Non-zero overlay scalars win, a
// true in either config keeps AllowUnsafePaths on, and slices combine
// with duplicates removed.
func Merge(base, overlay *Config) *Config {
	return &Config{
		CourseTitle:      pick(overlay.CourseTitle, base.CourseTitle),
		DefaultDuration:  pick(overlay.DefaultDuration, base.DefaultDuration),
		OutputDir:        pick(overlay.OutputDir, base.OutputDir),
		PexelsAPIKey:     pick(overlay.PexelsAPIKey, base.PexelsAPIKey),
		DBMaxOpenConns:   pick(overlay.DBMaxOpenConns, base.DBMaxOpenConns),
		DBMaxIdleConns:   pick(overlay.DBMaxIdleConns, base.DBMaxIdleConns),
		AllowUnsafePaths: base.AllowUnsafePaths || overlay.AllowUnsafePaths,
		AllowedPaths:     mergeStringSlice(base.AllowedPaths, overlay.AllowedPaths),
		DisabledTools:    mergeStringSlice(base.DisabledTools, overlay.DisabledTools),
		DisabledTypes:    mergeStringSlice(base.DisabledTypes, overlay.DisabledTypes),
	}
}

func pick[T comparable](overlay, base T) T {
	var zero T
	if overlay != zero {
		return overlay
	}
	return base
}

// mergeStringSlice concatenates both slices, trimming whitespace and
// dropping empties and duplicates. An empty result stays nil so it
// serializes with omitempty.
func mergeStringSlice(a, b []string) []string {
	seen := make(map[string]bool)
	var result []string
	for _, s := range append(append([]string{}, a...), b...) {
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		result = append(result, s)
	}
	return result
}
