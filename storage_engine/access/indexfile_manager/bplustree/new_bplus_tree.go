package bplus

import (
	"BTreeDB/storage_engine/bufferpool"
	diskmanager "BTreeDB/storage_engine/disk_manager"
	"BTreeDB/storage_engine/page"
	"BTreeDB/types"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// maxHeight bounds what a sane header may claim; 127-way fan-out reaches
// every int32 key long before this.
const maxHeight = 32

// Open opens the index file name. Under ModeWrite the file is created when
// missing and a placeholder header (empty tree) is written to page 0; the
// real root/height are only persisted by Close.
func Open(name string, mode types.OpenMode, opts ...Option) (*BTreeIndex, error) {
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	if err := checkCapacity(o.leafCapacity, MaxLeafEntries); err != nil {
		return nil, errors.Wrapf(err, "Open: leaf capacity %d (allowed %d..%d)", o.leafCapacity, MinCapacity, MaxLeafEntries)
	}
	if err := checkCapacity(o.internalCapacity, MaxInternalEntries); err != nil {
		return nil, errors.Wrapf(err, "Open: internal capacity %d (allowed %d..%d)", o.internalCapacity, MinCapacity, MaxInternalEntries)
	}

	pf, err := diskmanager.Open(name, mode)
	if err != nil {
		return nil, errors.Wrapf(err, "Open: failed to open index file %s", name)
	}

	t := &BTreeIndex{
		store:       pf,
		pageFile:    pf,
		mode:        mode,
		rootPid:     types.InvalidPageID,
		height:      0,
		leafCap:     o.leafCapacity,
		internalCap: o.internalCapacity,
		logger:      o.logger.With(zap.String("index", name)),
	}

	if o.cacheBytes > 0 {
		pool, err := bufferpool.NewBufferPool(pf, o.cacheBytes)
		if err != nil {
			pf.Close()
			return nil, errors.Wrap(err, "Open")
		}
		t.pool = pool
		t.store = pool
	}

	if err := t.loadHeader(); err != nil {
		t.store.Close()
		return nil, err
	}

	t.logger.Debug("opened index",
		zap.String("mode", string(rune(mode))),
		zap.Int32("root", int32(t.rootPid)),
		zap.Int32("height", t.height),
		zap.Int32("pages", int32(t.store.EndPageID())))
	return t, nil
}

func (t *BTreeIndex) loadHeader() error {
	if t.store.EndPageID() == 0 {
		// fresh file: empty tree
		if t.mode != types.ModeWrite {
			return nil
		}
		return t.writeHeader()
	}

	hdr, err := page.Read(t.store, HeaderPageID)
	if err != nil {
		return errors.Wrap(err, "Open: failed to read header page")
	}
	root, height := decodeHeader(hdr.Data)

	end := t.store.EndPageID()
	switch {
	case height < 0 || height > maxHeight:
		return errors.Wrapf(ErrInvalidFileFormat, "height %d", height)
	case height == 0 && root != types.InvalidPageID:
		return errors.Wrapf(ErrInvalidFileFormat, "empty tree with root %d", root)
	case height > 0 && (root <= HeaderPageID || root >= end):
		return errors.Wrapf(ErrInvalidFileFormat, "root %d outside [1, %d)", root, end)
	}

	t.rootPid = root
	t.height = height
	return nil
}

func (t *BTreeIndex) writeHeader() error {
	hdr := page.New(HeaderPageID)
	encodeHeader(hdr.Data, t.rootPid, t.height)
	if err := hdr.Write(t.store); err != nil {
		return errors.Wrap(err, "failed to write header page")
	}
	return nil
}

// Close persists root/height (write mode) and closes the file.
func (t *BTreeIndex) Close() error {
	if t.store == nil {
		return nil
	}

	var err error
	if t.mode == types.ModeWrite {
		err = t.writeHeader()
	}
	if cerr := t.store.Close(); err == nil && cerr != nil {
		err = errors.Wrap(cerr, "Close: failed to close index file")
	}
	t.logger.Debug("closed index", zap.Int32("root", int32(t.rootPid)), zap.Int32("height", t.height))
	t.store = nil
	return err
}

// RootPageID returns the root page, InvalidPageID for an empty tree.
func (t *BTreeIndex) RootPageID() types.PageID {
	return t.rootPid
}

func (t *BTreeIndex) Height() int32 {
	return t.height
}

// PageCount is the number of pages in the file, header included.
func (t *BTreeIndex) PageCount() types.PageID {
	if t.store == nil {
		return 0
	}
	return t.store.EndPageID()
}

// CacheStats reports page cache metrics; ok is false when caching is off.
func (t *BTreeIndex) CacheStats() (bufferpool.BufferPoolStats, bool) {
	if t.pool == nil {
		return bufferpool.BufferPoolStats{}, false
	}
	return t.pool.Stats(), true
}

// PageReads is the number of pages actually read from disk.
func (t *BTreeIndex) PageReads() uint64 {
	return t.pageFile.Reads()
}

func (t *BTreeIndex) checkOpen() error {
	if t.store == nil {
		return ErrClosed
	}
	return nil
}
