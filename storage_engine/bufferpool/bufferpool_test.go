package bufferpool

import (
	diskmanager "BTreeDB/storage_engine/disk_manager"
	"BTreeDB/types"
	"bytes"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
)

func newTestPool(t *testing.T, maxBytes int64) (*BufferPool, *diskmanager.PageFile) {
	t.Helper()
	pf, err := diskmanager.Open(filepath.Join(t.TempDir(), "bp.idx"), types.ModeWrite)
	if err != nil {
		t.Fatalf("Failed to open page file: %v", err)
	}
	bp, err := NewBufferPool(pf, maxBytes)
	if err != nil {
		t.Fatalf("Failed to create buffer pool: %v", err)
	}
	t.Cleanup(func() { bp.Close() })
	return bp, pf
}

// TestBufferPoolReadWrite tests write-through and cached reads
func TestBufferPoolReadWrite(t *testing.T) {
	bp, pf := newTestPool(t, 64*types.PageSize)

	data := make([]byte, types.PageSize)
	copy(data, []byte("cached page"))
	if err := bp.WritePage(0, data); err != nil {
		t.Fatalf("WritePage: %v", err)
	}

	// caller scribbling over its buffer must not leak into the cache
	data[0] = 'X'

	got := make([]byte, types.PageSize)
	if err := bp.ReadPage(0, got); err != nil {
		t.Fatalf("ReadPage: %v", err)
	}
	if !bytes.HasPrefix(got, []byte("cached page")) {
		t.Errorf("expected cached image, got %q", got[:11])
	}

	// write-through: the file already has the page
	onDisk := make([]byte, types.PageSize)
	if err := pf.ReadPage(0, onDisk); err != nil {
		t.Fatalf("direct ReadPage: %v", err)
	}
	if !bytes.Equal(onDisk, got) {
		t.Errorf("store and cache disagree")
	}

	if bp.EndPageID() != 1 {
		t.Errorf("expected EndPageID 1, got %d", bp.EndPageID())
	}
}

func TestBufferPoolHitsAvoidStoreReads(t *testing.T) {
	bp, pf := newTestPool(t, 64*types.PageSize)

	buf := make([]byte, types.PageSize)
	for i := 0; i < 4; i++ {
		buf[0] = byte(i + 1)
		if err := bp.WritePage(types.PageID(i), buf); err != nil {
			t.Fatalf("WritePage %d: %v", i, err)
		}
	}

	for round := 0; round < 3; round++ {
		for i := 0; i < 4; i++ {
			if err := bp.ReadPage(types.PageID(i), buf); err != nil {
				t.Fatalf("ReadPage %d: %v", i, err)
			}
			if buf[0] != byte(i+1) {
				t.Fatalf("page %d: expected marker %d, got %d", i, i+1, buf[0])
			}
		}
	}

	if pf.Reads() >= 12 {
		t.Errorf("expected cache to absorb some reads, store saw %d", pf.Reads())
	}
	if st := bp.Stats(); st.Hits == 0 {
		t.Errorf("expected cache hits, got %+v", st)
	}
}

func TestBufferPoolPropagatesStoreErrors(t *testing.T) {
	bp, _ := newTestPool(t, 16*types.PageSize)

	buf := make([]byte, types.PageSize)
	if err := bp.ReadPage(5, buf); !errors.Is(err, diskmanager.ErrInvalidPageID) {
		t.Errorf("expected ErrInvalidPageID, got %v", err)
	}
	if err := bp.WritePage(3, buf); !errors.Is(err, diskmanager.ErrInvalidPageID) {
		t.Errorf("expected ErrInvalidPageID, got %v", err)
	}
	if err := bp.ReadPage(0, make([]byte, 10)); err == nil {
		t.Error("expected error for short buffer")
	}
}
