package heapfile

import (
	diskmanager "BTreeDB/storage_engine/disk_manager"
	"BTreeDB/types"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
)

func TestHeapFileAppendRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "movies.tbl")
	hf, err := Open(path, types.ModeWrite, 0)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer hf.Close()

	if hf.EndRecordID() != (types.RecordID{}) {
		t.Fatalf("Expected empty file to end at (0,0), got %s", hf.EndRecordID())
	}

	n := types.RecordsPerPage*3 + 2
	rids := make([]types.RecordID, n)
	for i := 0; i < n; i++ {
		rid, err := hf.Append(int32(i+1), fmt.Sprintf("value %d", i+1))
		if err != nil {
			t.Fatalf("Append %d failed: %v", i, err)
		}
		rids[i] = rid
	}

	if rids[0] != (types.RecordID{PageID: 0, SlotID: 0}) {
		t.Errorf("First rid = %s", rids[0])
	}
	if rids[types.RecordsPerPage] != (types.RecordID{PageID: 1, SlotID: 0}) {
		t.Errorf("Expected a new page after %d records, got %s", types.RecordsPerPage, rids[types.RecordsPerPage])
	}
	want := types.RecordID{PageID: 3, SlotID: 2}
	if hf.EndRecordID() != want {
		t.Errorf("Expected end %s, got %s", want, hf.EndRecordID())
	}

	for i, rid := range rids {
		key, value, err := hf.Read(rid)
		if err != nil {
			t.Fatalf("Read %s failed: %v", rid, err)
		}
		if key != int32(i+1) || value != fmt.Sprintf("value %d", i+1) {
			t.Fatalf("Read %s = (%d, %q)", rid, key, value)
		}
	}

	if _, _, err := hf.Read(want); !errors.Is(err, ErrInvalidRecordID) {
		t.Errorf("Expected ErrInvalidRecordID at the end, got %v", err)
	}
}

func TestHeapFileReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.tbl")

	hf, err := Open(path, types.ModeWrite, 0)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	for i := 0; i < types.RecordsPerPage; i++ {
		hf.Append(int32(i+1), "x")
	}
	hf.Close()

	// a full last page means the next append starts a new page
	hf, err = Open(path, types.ModeWrite, 0)
	if err != nil {
		t.Fatalf("Reopen failed: %v", err)
	}
	if hf.EndRecordID() != (types.RecordID{PageID: 1, SlotID: 0}) {
		t.Fatalf("Expected end (1,0), got %s", hf.EndRecordID())
	}
	rid, err := hf.Append(100, "after reopen")
	if err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	hf.Close()

	ro, err := Open(path, types.ModeRead, 64*types.PageSize)
	if err != nil {
		t.Fatalf("Read-only open failed: %v", err)
	}
	defer ro.Close()

	key, value, err := ro.Read(rid)
	if err != nil || key != 100 || value != "after reopen" {
		t.Fatalf("Read = (%d, %q, %v)", key, value, err)
	}
	if _, err := ro.Append(1, "nope"); !errors.Is(err, diskmanager.ErrReadOnly) {
		t.Errorf("Expected ErrReadOnly, got %v", err)
	}
}

func TestHeapFileTruncatesLongValues(t *testing.T) {
	hf, err := Open(filepath.Join(t.TempDir(), "long.tbl"), types.ModeWrite, 0)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer hf.Close()

	long := strings.Repeat("a", types.MaxValueLen+20)
	rid, err := hf.Append(1, long)
	if err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	_, value, err := hf.Read(rid)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if len(value) != types.MaxValueLen {
		t.Errorf("Expected value cut to %d bytes, got %d", types.MaxValueLen, len(value))
	}
}

func TestHeapFileManager(t *testing.T) {
	hfm, err := NewHeapFileManager(t.TempDir(), 0)
	if err != nil {
		t.Fatalf("NewHeapFileManager failed: %v", err)
	}

	if _, err := hfm.OpenHeapFile("missing", types.ModeRead); !errors.Is(err, ErrTableNotFound) {
		t.Fatalf("Expected ErrTableNotFound, got %v", err)
	}

	hf, err := hfm.OpenHeapFile("people", types.ModeWrite)
	if err != nil {
		t.Fatalf("OpenHeapFile failed: %v", err)
	}
	defer hf.Close()
	if !strings.HasSuffix(hf.Path(), "people.tbl") {
		t.Errorf("Unexpected path %s", hf.Path())
	}
}
