package indexfile

import (
	bplus "BTreeDB/storage_engine/access/indexfile_manager/bplustree"
	"BTreeDB/types"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

/*
This file is the main file for Index File Manager that deals with the index files.
Each table has at most one index, stored next to its heap file as <table>.idx.

Trees opened for writing are cached per table until CloseIndex / CloseAll,
because only Close persists the root and height. Read-only trees are handed
out uncached and owned by the caller.
*/

func NewIndexFileManager(baseDir string, opts ...bplus.Option) (*IndexFileManager, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, errors.Wrap(err, "failed to create data directory")
	}

	return &IndexFileManager{
		baseDir: baseDir,
		indexes: make(map[string]*bplus.BTreeIndex),
		opts:    opts,
	}, nil
}

// IndexPath returns the index file path for tableName.
func (ifm *IndexFileManager) IndexPath(tableName string) string {
	return filepath.Join(ifm.baseDir, tableName+".idx")
}

// Exists reports whether tableName has an index file.
func (ifm *IndexFileManager) Exists(tableName string) bool {
	_, err := os.Stat(ifm.IndexPath(tableName))
	return err == nil
}

// GetOrCreateIndex returns the writable index for tableName, creating the
// file on first use. The tree stays cached until CloseIndex.
func (ifm *IndexFileManager) GetOrCreateIndex(tableName string) (*bplus.BTreeIndex, error) {
	ifm.mu.RLock()
	btree, exists := ifm.indexes[tableName]
	ifm.mu.RUnlock()

	if exists && btree != nil {
		return btree, nil
	}

	ifm.mu.Lock()
	defer ifm.mu.Unlock()

	if btree, exists := ifm.indexes[tableName]; exists && btree != nil {
		return btree, nil
	}

	btree, err := bplus.Open(ifm.IndexPath(tableName), types.ModeWrite, ifm.opts...)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open index for table '%s'", tableName)
	}

	ifm.indexes[tableName] = btree
	return btree, nil
}

// OpenIndexForRead opens tableName's index read-only. The caller closes it.
func (ifm *IndexFileManager) OpenIndexForRead(tableName string) (*bplus.BTreeIndex, error) {
	if !ifm.Exists(tableName) {
		return nil, errors.Wrapf(ErrIndexNotFound, "table '%s'", tableName)
	}

	btree, err := bplus.Open(ifm.IndexPath(tableName), types.ModeRead, ifm.opts...)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load index for table '%s'", tableName)
	}
	return btree, nil
}

// CloseIndex closes the cached writable tree for tableName, persisting its header.
func (ifm *IndexFileManager) CloseIndex(tableName string) error {
	ifm.mu.Lock()
	defer ifm.mu.Unlock()

	btree, exists := ifm.indexes[tableName]
	if !exists {
		return nil // not open, nothing to do
	}
	delete(ifm.indexes, tableName)

	if err := btree.Close(); err != nil {
		return errors.Wrapf(err, "failed to close index for table '%s'", tableName)
	}
	return nil
}

// CloseAll closes every cached index. Called when the engine shuts down.
func (ifm *IndexFileManager) CloseAll() error {
	ifm.mu.Lock()
	defer ifm.mu.Unlock()

	var lastErr error
	for tableName, btree := range ifm.indexes {
		if err := btree.Close(); err != nil {
			lastErr = errors.Wrapf(err, "failed to close index for table '%s'", tableName)
		}
		delete(ifm.indexes, tableName)
	}

	return lastErr
}
