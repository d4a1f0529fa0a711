package indexfile

import (
	bplus "BTreeDB/storage_engine/access/indexfile_manager/bplustree"
	"BTreeDB/types"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
)

func TestIndexFileManagerLifecycle(t *testing.T) {
	dir := t.TempDir()
	ifm, err := NewIndexFileManager(dir, bplus.WithLeafCapacity(4))
	if err != nil {
		t.Fatalf("NewIndexFileManager failed: %v", err)
	}

	if ifm.Exists("people") {
		t.Fatal("Expected no index before first use")
	}
	if _, err := ifm.OpenIndexForRead("people"); !errors.Is(err, ErrIndexNotFound) {
		t.Fatalf("Expected ErrIndexNotFound, got %v", err)
	}

	tree, err := ifm.GetOrCreateIndex("people")
	if err != nil {
		t.Fatalf("GetOrCreateIndex failed: %v", err)
	}
	again, _ := ifm.GetOrCreateIndex("people")
	if again != tree {
		t.Error("Expected the cached tree on the second call")
	}
	if got := ifm.IndexPath("people"); got != filepath.Join(dir, "people.idx") {
		t.Errorf("IndexPath = %s", got)
	}

	for k := int32(1); k <= 20; k++ {
		if err := tree.Insert(k, types.RecordID{PageID: 1, SlotID: k}); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
	}
	if err := ifm.CloseIndex("people"); err != nil {
		t.Fatalf("CloseIndex failed: %v", err)
	}

	ro, err := ifm.OpenIndexForRead("people")
	if err != nil {
		t.Fatalf("OpenIndexForRead failed: %v", err)
	}
	defer ro.Close()

	r, err := ro.Search(20)
	if err != nil || r.SlotID != 20 {
		t.Fatalf("Search(20) = %s, %v", r, err)
	}
}

func TestCloseAll(t *testing.T) {
	ifm, err := NewIndexFileManager(t.TempDir())
	if err != nil {
		t.Fatalf("NewIndexFileManager failed: %v", err)
	}
	for _, name := range []string{"a", "b"} {
		tree, err := ifm.GetOrCreateIndex(name)
		if err != nil {
			t.Fatalf("GetOrCreateIndex(%s) failed: %v", name, err)
		}
		tree.Insert(1, types.RecordID{PageID: 1})
	}
	if err := ifm.CloseAll(); err != nil {
		t.Fatalf("CloseAll failed: %v", err)
	}
	if len(ifm.indexes) != 0 {
		t.Errorf("Expected an empty cache, %d left", len(ifm.indexes))
	}
	if err := ifm.CloseIndex("a"); err != nil {
		t.Errorf("CloseIndex on a closed table should be a no-op, got %v", err)
	}
}
