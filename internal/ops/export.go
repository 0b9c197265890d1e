package ops

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"chalk/internal/config"
	"chalk/internal/db"
	"chalk/internal/errors"
	"chalk/internal/lesson"
)

// ExportInput contains parameters for the Export operation.
type ExportInput struct {
	Path           string // optional, default: ~/.chalk/exports/<name>-<timestamp>.jsonl
	Name           string // base name for the default path, default: "plans"
	IncludeDeleted bool
}

// ExportOutput contains the result of the Export operation.
type ExportOutput struct {
	Path       string `json:"path"`
	Count      int    `json:"count"`
	ExportedAt int64  `json:"exported_at"`
}

// ExportHeader is the first line of a JSONL export file. Import checks it
// before touching any records.
type ExportHeader struct {
	ChalkExport   bool   `json:"_chalk_export"`
	SchemaVersion string `json:"schema_version"`
	ExportedAt    int64  `json:"exported_at"`
}

// Export writes stored plans to a JSONL file, one record per line after a
// header line. The file appears atomically: records go to a temp file that
// is renamed over the destination only after a successful sync.
func Export(ctx context.Context, database *sql.DB, cfg *config.Config, input ExportInput) (*ExportOutput, error) {
	now := time.Now()

	dest := input.Path
	if dest == "" {
		var err error
		dest, err = defaultExportPath(input.Name, now)
		if err != nil {
			return nil, err
		}
	}

	// Default paths go through the same validation as user-supplied ones.
	if err := ValidatePath(dest, PathCheckWrite, cfg); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0700); err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to create export directory: %w", err))
	}

	tempPath, err := tempExportPath(dest)
	if err != nil {
		return nil, err
	}
	file, err := openFileNoFollow(tempPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to create export file: %w", err))
	}

	// Until the rename lands, any failure removes only the temp file and
	// leaves an existing destination untouched.
	renamed := false
	defer func() {
		if file != nil {
			file.Close()
		}
		if !renamed {
			os.Remove(tempPath)
		}
	}()

	count, err := writeExportBody(ctx, file, database, input.IncludeDeleted, now.Unix())
	if err != nil {
		return nil, err
	}

	if err := file.Sync(); err != nil {
		return nil, errors.NewInternal(err)
	}
	// Windows cannot rename an open file.
	if err := file.Close(); err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to close export file: %w", err))
	}
	file = nil

	// os.Rename follows a symlink at the destination.
	if info, err := os.Lstat(dest); err == nil && info.Mode()&os.ModeSymlink != 0 {
		return nil, errors.NewInternal(fmt.Errorf("export path is a symlink"))
	}

	if err := os.Rename(tempPath, dest); err != nil {
		// Windows refuses to rename over an existing file. Failing here
		// keeps the original instead of a delete+rename that could lose
		// it when the second step fails.
		if runtime.GOOS == "windows" {
			if _, statErr := os.Stat(dest); statErr == nil {
				return nil, errors.NewInvalidRequest("export destination already exists; overwriting is not supported on Windows yet (choose a new path or delete the existing file)")
			}
		}
		return nil, errors.NewInternal(fmt.Errorf("failed to finalize export: %w", err))
	}
	renamed = true

	return &ExportOutput{
		Path:       dest,
		Count:      count,
		ExportedAt: now.Unix(),
	}, nil
}

// writeExportBody streams the header and all plan records into file,
// returning the record count.
func writeExportBody(ctx context.Context, file *os.File, database *sql.DB, includeDeleted bool, exportedAt int64) (int, error) {
	header := ExportHeader{
		ChalkExport:   true,
		SchemaVersion: "1.0",
		ExportedAt:    exportedAt,
	}
	if err := writeJSONLine(file, header); err != nil {
		return 0, err
	}

	rows, err := db.StreamForExport(database, includeDeleted)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	count := 0
	for rows.Next() {
		select {
		case <-ctx.Done():
			return 0, errors.NewCancelled("export")
		default:
		}

		p, err := db.ScanPlanFromRows(rows)
		if err != nil {
			return 0, errors.NewInternal(err)
		}
		if err := writeJSONLine(file, lesson.PlanToExportRecord(p)); err != nil {
			return 0, err
		}
		count++
	}
	if err := rows.Err(); err != nil {
		return 0, errors.NewInternal(err)
	}
	return count, nil
}

func writeJSONLine(file *os.File, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return errors.NewInternal(err)
	}
	if _, err := file.Write(append(data, '\n')); err != nil {
		return errors.NewInternal(err)
	}
	return nil
}

// tempExportPath derives a randomized sibling name for the temp file so
// concurrent exports to the same destination cannot collide.
func tempExportPath(dest string) (string, error) {
	suffix := make([]byte, 8)
	if _, err := rand.Read(suffix); err != nil {
		return "", errors.NewInternal(fmt.Errorf("failed to generate temp file name: %w", err))
	}
	return dest + "." + hex.EncodeToString(suffix) + ".tmp", nil
}

// defaultExportPath builds ~/.chalk/exports/<name>-<timestamp>.jsonl.
func defaultExportPath(name string, now time.Time) (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", errors.NewInternal(fmt.Errorf("failed to get home directory: %w", err))
	}

	if name == "" {
		name = "plans"
	}
	// The name can come straight from a tool argument.
	filename := fmt.Sprintf("%s-%s.jsonl", SanitizeForFilename(name), now.Format("2006-01-02T150405"))
	return filepath.Join(homeDir, ".chalk", "exports", filename), nil
}
