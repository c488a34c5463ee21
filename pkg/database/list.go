package database

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/nexusfab/tiletopo/pkg/errors"
)

// Families lists the families under the root: directories holding a
// tiletypes directory.
func (db *DB) Families() ([]string, error) {
	return db.listDirs(db.root, func(dir string) bool {
		info, err := os.Stat(filepath.Join(dir, "tiletypes"))
		return err == nil && info.IsDir()
	})
}

// Devices lists the devices of a family: directories holding a
// tilegrid.json.
func (db *DB) Devices(family string) ([]string, error) {
	if err := errors.ValidateFamily(family); err != nil {
		return nil, err
	}
	return db.listDirs(filepath.Join(db.root, family), func(dir string) bool {
		info, err := os.Stat(filepath.Join(dir, "tilegrid.json"))
		return err == nil && !info.IsDir()
	})
}

func (db *DB) listDirs(parent string, keep func(dir string) bool) ([]string, error) {
	entries, err := os.ReadDir(parent)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "%s", parent)
	}
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() && keep(filepath.Join(parent, e.Name())) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}
