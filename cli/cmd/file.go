package cmd

import (
	"os"
	"path/filepath"
)

// defaultFileMode is the permission mode of files written by commands.
const defaultFileMode os.FileMode = 0o644

// writeFileAtomic replaces the file at path with data.
//
// The data is written to a temporary file in the same directory, which is
// then renamed over path. If any step fails, the temporary file is removed
// and path is left untouched.
func writeFileAtomic(path string, data []byte, perm os.FileMode) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}

	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return err
	}

	if err = tmp.Chmod(perm); err != nil {
		return err
	}

	if err = tmp.Sync(); err != nil {
		return err
	}

	if err = tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), path)
}
