package storageengine

import (
	heapfile "BTreeDB/storage_engine/access/heapfile_manager"
	indexfile "BTreeDB/storage_engine/access/indexfile_manager"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// ErrQuit is returned by Execute for QUIT / EXIT.
var ErrQuit = errors.New("quit")

type StorageEngine struct {
	IndexManager *indexfile.IndexFileManager
	HeapManager  *heapfile.HeapFileManager

	DataDir string
	logger  *zap.Logger
}

// Options configures NewStorageEngine. Zero capacities mean "fill the page",
// zero CacheBytes disables page caching.
type Options struct {
	DataDir          string
	CacheBytes       int64
	LeafCapacity     int
	InternalCapacity int
	Logger           *zap.Logger
}

// SelectStats describes how a SELECT was answered.
type SelectStats struct {
	UsedIndex bool
	Matched   int
	PageReads uint64
	Elapsed   time.Duration
}

// LoadStats summarises a LOAD. Loaded counts tuples appended to the table,
// Unindexed the subset of those missing from the index.
type LoadStats struct {
	Lines     int
	Loaded    int
	Skipped   int
	Unindexed int
}
