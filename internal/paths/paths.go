package paths

import (
	"io"
	"os"
	"path/filepath"
)

const (
	AppDirName     = "dotgrid-assets"
	ConfigBaseName = "assets-config"
	LogFileName    = "assets.log"
	DBFileName     = "assets.db"
	DirPerm        = 0755
	FilePerm       = 0644
)

// ConfigFileNames lists the config file names tried in each search
// directory, in order.
var ConfigFileNames = []string{
	ConfigBaseName + ".json",
	ConfigBaseName + ".yaml",
	ConfigBaseName + ".yml",
}

// AtomicWrite writes data to path via a temporary file + rename to avoid
// partial writes. The parent directory is created if needed.
func AtomicWrite(path string, data []byte) error {
	return AtomicWriteFunc(path, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}

// AtomicWriteFunc is AtomicWrite for streamed output: fn writes into a
// temporary file next to path, which is renamed over path only if fn and
// the close both succeed. On failure the temporary file is removed and
// path is left untouched.
func AtomicWriteFunc(path string, fn func(w io.Writer) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, DirPerm); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmp := f.Name()
	if err := fn(f); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Chmod(tmp, FilePerm); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

// DataDir returns the platform-specific data directory:
//   - Windows: %APPDATA%\dotgrid-assets
//   - Unix:    ~/.config/dotgrid-assets
//
// Falls back to os.TempDir()/dotgrid-assets if neither is available.
func DataDir() string {
	if appdata := os.Getenv("APPDATA"); appdata != "" {
		return filepath.Join(appdata, AppDirName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), AppDirName)
	}
	return filepath.Join(home, ".config", AppDirName)
}
