package ops

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"chalk/internal/config"
	"chalk/internal/errors"
)

// PathCheckMode indicates whether the path check is for reading or writing.
type PathCheckMode int

const (
	PathCheckRead  PathCheckMode = iota // import reads the file
	PathCheckWrite                      // export writes the file
)

// ValidatePath vets a user-supplied import/export path. A path passes when
// it has no ".." components, carries the .jsonl extension, sits DIRECTLY in
// an allowed directory (no subdirectories), and neither the file nor its
// parent directory is a symlink. The flat-directory rule means no
// intermediate component can be swapped for a symlink between this check
// and the O_NOFOLLOW open.
//
// AllowUnsafePaths lifts the directory restriction only; symlink refusal
// always applies.
func ValidatePath(path string, mode PathCheckMode, cfg *config.Config) error {
	absPath, err := checkPathSyntax(path)
	if err != nil {
		return err
	}

	if cfg == nil || !cfg.AllowUnsafePaths {
		if err := checkDirPolicy(absPath, cfg); err != nil {
			return err
		}
	}

	// A missing import file is a user error, not an internal one
	if mode == PathCheckRead {
		if _, err := os.Stat(absPath); os.IsNotExist(err) {
			return errors.NewFileNotFound(path)
		}
	}

	if pathIsSymlink(absPath) {
		return errors.NewInvalidRequest("path must not be a symlink")
	}
	return nil
}

// checkPathSyntax runs the checks that need no filesystem or config state
// and returns the absolute form of the path.
func checkPathSyntax(path string) (string, error) {
	switch {
	case path == "":
		return "", errors.NewInvalidRequest("path is required")
	case containsTraversal(path):
		return "", errors.NewInvalidRequest("path must not contain directory traversal (..)")
	}

	cleaned := filepath.Clean(path)
	if filepath.Ext(cleaned) != ".jsonl" {
		return "", errors.NewInvalidRequest("path must have .jsonl extension")
	}

	abs, err := filepath.Abs(cleaned)
	if err != nil {
		return "", errors.NewInvalidRequest(fmt.Sprintf("invalid path: %v", err))
	}
	return abs, nil
}

// checkDirPolicy enforces the allowed-directory rule for absPath.
func checkDirPolicy(absPath string, cfg *config.Config) error {
	allowed, err := allowedExportDirs(cfg)
	if err != nil {
		return err
	}

	parent := filepath.Dir(absPath)
	if !parentIsAllowed(parent, allowed) {
		return errors.NewInvalidRequest(
			fmt.Sprintf("file must be directly in an allowed directory (no subdirectories); allowed: %v",
				allowed))
	}
	if pathIsSymlink(parent) {
		return errors.NewInvalidRequest("parent directory must not be a symlink")
	}
	return nil
}

// pathIsSymlink reports whether the path exists and is a symlink.
func pathIsSymlink(path string) bool {
	info, err := os.Lstat(path)
	return err == nil && info.Mode()&os.ModeSymlink != 0
}

// allowedExportDirs returns the absolute allowed directories: the default
// exports dir plus any absolute entries from config allowed_paths. Symlinked
// entries resolve to their target so matching happens on real paths.
func allowedExportDirs(cfg *config.Config) ([]string, error) {
	defaultDir, err := DefaultExportsDir()
	if err != nil {
		return nil, err
	}

	candidates := []string{defaultDir}
	if cfg != nil {
		for _, p := range cfg.AllowedPaths {
			if filepath.IsAbs(p) {
				candidates = append(candidates, p)
			}
		}
	}

	dirs := make([]string, 0, len(candidates))
	for _, c := range candidates {
		dir, err := normalizeAllowedDir(c)
		if err != nil {
			return nil, err
		}
		dirs = append(dirs, dir)
	}
	return dirs, nil
}

func normalizeAllowedDir(dir string) (string, error) {
	abs, err := filepath.Abs(filepath.Clean(dir))
	if err != nil {
		return "", errors.NewInvalidRequest(fmt.Sprintf("invalid allowed path: %v", err))
	}
	if !pathIsSymlink(abs) {
		return abs, nil
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", errors.NewInvalidRequest(fmt.Sprintf("cannot resolve symlink in allowed path: %v", err))
	}
	return resolved, nil
}

// parentIsAllowed reports whether parent exactly matches an allowed
// directory. Exact match, not prefix: a file in a subdirectory of an
// allowed dir does not pass.
func parentIsAllowed(parent string, allowed []string) bool {
	parent = filepath.Clean(parent)
	for _, dir := range allowed {
		if parent == filepath.Clean(dir) {
			return true
		}
	}
	return false
}

// DefaultExportsDir returns the default exports directory (~/.chalk/exports).
func DefaultExportsDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", errors.NewInternal(fmt.Errorf("failed to get home directory: %w", err))
	}
	return filepath.Join(homeDir, ".chalk", "exports"), nil
}

// containsTraversal reports whether any path component is "..". Forward
// slashes count as separators on every platform since the path is user input.
func containsTraversal(path string) bool {
	isSep := func(r rune) bool { return r == '/' || r == filepath.Separator }
	for _, part := range strings.FieldsFunc(path, isSep) {
		if part == ".." {
			return true
		}
	}
	return false
}

// SanitizeForFilename reduces a string to a form safe for use as a filename
// segment: path separators and ".." become dashes, control characters are
// dropped, runs of dashes collapse, and an empty result becomes "unnamed".
func SanitizeForFilename(s string) string {
	s = strings.NewReplacer("/", "-", "\\", "-", "..", "-").Replace(s)
	s = strings.Map(func(r rune) rune {
		if r < 32 || r == 127 {
			return -1
		}
		return r
	}, s)

	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "-")
	}
	if s = strings.Trim(s, "-"); s == "" {
		return "unnamed"
	}
	return s
}
