package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/axiome/firstprinciples/pkg/store"
)

// cacheDir is $XDG_CACHE_HOME/firstprinciples, ~/.cache/firstprinciples on
// Linux when unset.
func cacheDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, appName), nil
}

// documentsDir is where `doc` saves documents, under the user config
// directory.
func documentsDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, appName, "documents"), nil
}

func openStore() (*store.FileStore, error) {
	dir, err := documentsDir()
	if err != nil {
		return nil, fmt.Errorf("locate documents: %w", err)
	}
	return store.NewFileStore(dir)
}
