package bufferpool

import (
	"BTreeDB/storage_engine/page"
	"BTreeDB/types"

	"github.com/dgraph-io/ristretto/v2"
	"github.com/pkg/errors"
)

/*
This file is the main file of the bufferpool
Caching is delegated to ristretto (TinyLFU admission + sampled LFU eviction),
the pool only decides what goes in and keeps it consistent with the store:

	ReadPage  -> cache hit: copy out of the cached image
	          -> miss: read from the store, cache a private copy
	WritePage -> write to the store first, then refresh the cached image

Cached slices are never handed to callers, so a caller mutating its buffer
after a write cannot corrupt the cache.
*/

// NewBufferPool wraps store with a cache holding roughly maxBytes of pages.
func NewBufferPool(store page.Store, maxBytes int64) (*BufferPool, error) {
	if store == nil {
		return nil, errors.New("bufferpool: store is nil")
	}
	if maxBytes < types.PageSize {
		maxBytes = types.PageSize
	}

	pages := maxBytes / types.PageSize
	cache, err := ristretto.NewCache(&ristretto.Config[int32, []byte]{
		NumCounters:        pages * 10, // ristretto recommends 10x the expected item count
		MaxCost:            maxBytes,
		BufferItems:        64,
		Metrics:            true,
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, errors.Wrap(err, "bufferpool: failed to create page cache")
	}

	return &BufferPool{
		store:   store,
		cache:   cache,
		maxCost: maxBytes,
	}, nil
}

// ReadPage copies page pid into buf, loading it from the store on a miss.
func (bp *BufferPool) ReadPage(pid types.PageID, buf []byte) error {
	if len(buf) != types.PageSize {
		return errors.Errorf("bufferpool: read page %d: buffer is %d bytes, want %d", pid, len(buf), types.PageSize)
	}

	if data, ok := bp.cache.Get(int32(pid)); ok {
		copy(buf, data)
		return nil
	}

	if err := bp.store.ReadPage(pid, buf); err != nil {
		return err
	}
	bp.put(pid, buf)
	return nil
}

// WritePage writes through to the store and refreshes the cached image.
func (bp *BufferPool) WritePage(pid types.PageID, buf []byte) error {
	if err := bp.store.WritePage(pid, buf); err != nil {
		// the store may have half-applied the write; never serve a stale image
		bp.cache.Del(int32(pid))
		return err
	}
	bp.put(pid, buf)
	return nil
}

func (bp *BufferPool) put(pid types.PageID, buf []byte) {
	img := make([]byte, len(buf))
	copy(img, buf)
	bp.cache.Set(int32(pid), img, int64(len(img)))
	// Set is asynchronous; the engine is single threaded, so wait for it to
	// land rather than let a following read miss on our own write.
	bp.cache.Wait()
}

func (bp *BufferPool) EndPageID() types.PageID {
	return bp.store.EndPageID()
}

// Close releases the cache and closes the underlying store.
func (bp *BufferPool) Close() error {
	bp.cache.Close()
	return bp.store.Close()
}

func (bp *BufferPool) Stats() BufferPoolStats {
	m := bp.cache.Metrics
	return BufferPoolStats{
		Hits:     m.Hits(),
		Misses:   m.Misses(),
		HitRatio: m.Ratio(),
		Capacity: bp.maxCost,
	}
}
