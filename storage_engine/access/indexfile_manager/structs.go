package indexfile

import (
	bplus "BTreeDB/storage_engine/access/indexfile_manager/bplustree"
	"sync"

	"github.com/pkg/errors"
)

// ErrIndexNotFound is returned when a table has no index file yet.
var ErrIndexNotFound = errors.New("index file not found")

type IndexFileManager struct {
	baseDir string                       // e.g., ./data
	indexes map[string]*bplus.BTreeIndex // tableName → tree opened for writing
	opts    []bplus.Option               // logger, capacities, page cache
	mu      sync.RWMutex
}
