package store

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/google/uuid"
)

// snapshotDatabase copies the live database at dbPath into the system
// temp directory and returns the copy's path. It prefers the sqlite3
// CLI's .backup command, which takes a consistent snapshot including
// WAL-resident pages; when the CLI is not installed it falls back to a
// raw copy of the database file and its -wal/-shm sidecars.
func snapshotDatabase(dbPath string) (string, error) {
	if _, err := os.Stat(dbPath); err != nil {
		return "", fmt.Errorf("locating things database at %s: %w", dbPath, err)
	}

	snap := filepath.Join(os.TempDir(), fmt.Sprintf("things-mcp-%s.sqlite", uuid.New().String()))

	if sqlite3, err := exec.LookPath("sqlite3"); err == nil {
		cmd := exec.Command(sqlite3, dbPath, fmt.Sprintf(".backup '%s'", snap))
		if err := cmd.Run(); err == nil {
			return snap, nil
		}
		// A failed backup may leave a partial file behind.
		removeSnapshot(snap)
	}

	if err := copyFile(dbPath, snap); err != nil {
		removeSnapshot(snap)
		return "", fmt.Errorf("copying things database: %w", err)
	}
	for _, suffix := range []string{"-wal", "-shm"} {
		src := dbPath + suffix
		if _, err := os.Stat(src); err != nil {
			continue
		}
		if err := copyFile(src, snap+suffix); err != nil {
			removeSnapshot(snap)
			return "", fmt.Errorf("copying %s sidecar: %w", suffix, err)
		}
	}

	return snap, nil
}

// removeSnapshot deletes a snapshot and its sidecar files.
func removeSnapshot(snap string) {
	os.Remove(snap)
	os.Remove(snap + "-wal")
	os.Remove(snap + "-shm")
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}
