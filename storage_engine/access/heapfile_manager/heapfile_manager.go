package heapfile

import (
	"BTreeDB/types"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

/*
This file is the start of the heapfile manager.
A table is one heap file, <table>.tbl, inside the manager's base directory.
Every open gets its own page file; when a cache size is configured the file
is wrapped in a buffer pool like index files are.
*/

// NewHeapFileManager creates a new heap file manager
func NewHeapFileManager(baseDir string, cacheBytes int64) (*HeapFileManager, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, errors.Wrap(err, "failed to create heap directory")
	}
	return &HeapFileManager{
		baseDir:    baseDir,
		cacheBytes: cacheBytes,
	}, nil
}

func (hfm *HeapFileManager) TablePath(tableName string) string {
	return filepath.Join(hfm.baseDir, tableName+".tbl")
}

// OpenHeapFile opens tableName's heap file. ModeWrite creates it when missing,
// ModeRead fails with ErrTableNotFound.
func (hfm *HeapFileManager) OpenHeapFile(tableName string, mode types.OpenMode) (*HeapFile, error) {
	path := hfm.TablePath(tableName)
	if mode == types.ModeRead {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return nil, errors.Wrapf(ErrTableNotFound, "table %s", tableName)
		}
	}

	hf, err := Open(path, mode, hfm.cacheBytes)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open heap file for table '%s'", tableName)
	}
	return hf, nil
}
