package storageengine

import (
	"BTreeDB/query_parser/parser"
	heapfile "BTreeDB/storage_engine/access/heapfile_manager"
	indexfile "BTreeDB/storage_engine/access/indexfile_manager"
	bplus "BTreeDB/storage_engine/access/indexfile_manager/bplustree"
	"io"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

/*
The main file of storage engine. It wires the heap file manager (<table>.tbl)
and the index file manager (<table>.idx) to one data directory and runs
parsed statements against them.

	LOAD   -> exec_load.go   : heap append, optional index insert
	SELECT -> exec_select.go : index-assisted scan or full table scan
*/

func NewStorageEngine(opts Options) (*StorageEngine, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.DataDir == "" {
		opts.DataDir = "."
	}

	heapManager, err := heapfile.NewHeapFileManager(opts.DataDir, opts.CacheBytes)
	if err != nil {
		return nil, errors.Wrap(err, "failed to init heap file manager")
	}

	indexOpts := []bplus.Option{
		bplus.WithLogger(logger.Named("bplus")),
		bplus.WithLeafCapacity(opts.LeafCapacity),
		bplus.WithInternalCapacity(opts.InternalCapacity),
	}
	if opts.CacheBytes > 0 {
		indexOpts = append(indexOpts, bplus.WithPageCache(opts.CacheBytes))
	}
	indexManager, err := indexfile.NewIndexFileManager(opts.DataDir, indexOpts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to init index file manager")
	}

	return &StorageEngine{
		IndexManager: indexManager,
		HeapManager:  heapManager,
		DataDir:      opts.DataDir,
		logger:       logger,
	}, nil
}

// Execute runs one parsed statement, writing query output to w.
func (se *StorageEngine) Execute(stmt parser.Statement, w io.Writer) error {
	switch s := stmt.(type) {
	case *parser.SelectStmt:
		_, err := se.Select(s, w)
		return err
	case *parser.LoadStmt:
		_, err := se.Load(s.Table, s.File, s.WithIndex)
		return err
	case *parser.QuitStmt:
		return ErrQuit
	default:
		return errors.Errorf("unsupported statement %T", stmt)
	}
}

// Close closes any index still open for writing.
func (se *StorageEngine) Close() error {
	return se.IndexManager.CloseAll()
}
