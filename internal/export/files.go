package export

import (
	"context"
	"os"
	"path/filepath"
)

const defaultFileMode os.FileMode = 0o644

func readDocument(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// writeDocument creates or truncates path and writes text to it. When atomic is set the
// text goes to a temp file in the same directory which is renamed over path, so readers
// never observe a partial document. A symlinked path is written through: the link is kept
// and its target replaced. The parent directory must already exist.
func writeDocument(ctx context.Context, path, text string, atomic bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		path = resolved
	}

	mode := defaultFileMode
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	if !atomic {
		return os.WriteFile(path, []byte(text), mode)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".exportreadme-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	cleanup := func() {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
	}

	if _, err := tmp.WriteString(text); err != nil {
		cleanup()
		return err
	}
	if err := tmp.Sync(); err != nil {
		cleanup()
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	if err := os.Chmod(tmpPath, mode); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return nil
}
