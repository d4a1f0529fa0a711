package storageengine

import (
	"BTreeDB/query_parser/parser"
	heapfile "BTreeDB/storage_engine/access/heapfile_manager"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
)

func newTestEngine(t *testing.T, opts Options) *StorageEngine {
	t.Helper()
	if opts.DataDir == "" {
		opts.DataDir = t.TempDir()
	}
	se, err := NewStorageEngine(opts)
	if err != nil {
		t.Fatalf("NewStorageEngine failed: %v", err)
	}
	t.Cleanup(func() { se.Close() })
	return se
}

func writeLoadFile(t *testing.T, lines []string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "load.del")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0644); err != nil {
		t.Fatalf("Failed to write load file: %v", err)
	}
	return path
}

// loadRange loads keys from..to (step) with value "v<key>".
func loadRange(t *testing.T, se *StorageEngine, table string, from, to, step int, withIndex bool) {
	t.Helper()
	var lines []string
	for k := from; k <= to; k += step {
		lines = append(lines, fmt.Sprintf("%d, 'v%d'", k, k))
	}
	if _, err := se.Load(table, writeLoadFile(t, lines), withIndex); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
}

func runSelect(t *testing.T, se *StorageEngine, sql string) (string, SelectStats) {
	t.Helper()
	stmt, err := parser.Parse(sql)
	if err != nil {
		t.Fatalf("Parse(%q) failed: %v", sql, err)
	}
	var out bytes.Buffer
	stats, err := se.Select(stmt.(*parser.SelectStmt), &out)
	if err != nil {
		t.Fatalf("Select(%q) failed: %v", sql, err)
	}
	return out.String(), stats
}

func TestParseLoadLine(t *testing.T) {
	tests := []struct {
		line  string
		key   int32
		value string
		ok    bool
	}{
		{"1, 'Die Hard'", 1, "Die Hard", true},
		{"  2,\t\"Heat\" trailing", 2, "Heat", true},
		{"3, plain text ", 3, "plain text ", true},
		{"-4,", -4, "", true},
		{"5, 'unterminated", 5, "unterminated", true},
		{"6, 'a', 'b'", 6, "a", true},
		{"7 no comma", 0, "", false},
		{"x, 'bad key'", 0, "", false},
		{"99999999999, 'too big'", 0, "", false},
	}
	for _, tt := range tests {
		key, value, err := parseLoadLine(tt.line)
		if (err == nil) != tt.ok {
			t.Errorf("parseLoadLine(%q) err = %v, want ok=%v", tt.line, err, tt.ok)
			continue
		}
		if tt.ok && (key != tt.key || value != tt.value) {
			t.Errorf("parseLoadLine(%q) = (%d, %q), want (%d, %q)", tt.line, key, value, tt.key, tt.value)
		}
	}
}

func TestLoadSkipsBadLines(t *testing.T) {
	se := newTestEngine(t, Options{})
	path := writeLoadFile(t, []string{
		"1, 'one'",
		"garbage",
		"0, 'reserved'",
		"",
		"2, 'two'",
	})

	stats, err := se.Load("t", path, true)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if stats.Loaded != 2 || stats.Skipped != 2 {
		t.Errorf("Unexpected load stats %+v", stats)
	}

	out, _ := runSelect(t, se, "SELECT * FROM t")
	if out != "1 'one'\n2 'two'\n" {
		t.Errorf("Unexpected table contents:\n%s", out)
	}
}

func TestLoadMissingFile(t *testing.T) {
	se := newTestEngine(t, Options{})
	if _, err := se.Load("t", filepath.Join(t.TempDir(), "nope.del"), false); err == nil {
		t.Fatal("Expected an error for a missing load file")
	}
}

func TestSelectWithIndex(t *testing.T) {
	se := newTestEngine(t, Options{LeafCapacity: 4, InternalCapacity: 4})
	loadRange(t, se, "movie", 1, 50, 1, true)

	tests := []struct {
		sql       string
		want      string
		usedIndex bool
	}{
		{"SELECT key FROM movie WHERE key > 10 AND key <= 15", "11\n12\n13\n14\n15\n", true},
		{"SELECT * FROM movie WHERE key = 7", "7 'v7'\n", true},
		{"SELECT value FROM movie WHERE key >= 49", "v49\nv50\n", true},
		{"SELECT COUNT(*) FROM movie", "50\n", true},
		{"SELECT COUNT(*) FROM movie WHERE key < 0", "0\n", true},
		{"SELECT COUNT(*) FROM movie WHERE key = 51", "0\n", true},
		{"SELECT key FROM movie WHERE key <> 2 AND key < 4", "1\n3\n", true},
		{"SELECT key FROM movie WHERE value = 'v3'", "3\n", false},
		{"SELECT COUNT(*) FROM movie WHERE key <> 3", "49\n", true},
		{"SELECT * FROM movie WHERE key <> 3 AND value = 'v3'", "", false},
	}
	for _, tt := range tests {
		out, stats := runSelect(t, se, tt.sql)
		if out != tt.want {
			t.Errorf("%s:\ngot  %q\nwant %q", tt.sql, out, tt.want)
		}
		if stats.UsedIndex != tt.usedIndex {
			t.Errorf("%s: UsedIndex = %v, want %v", tt.sql, stats.UsedIndex, tt.usedIndex)
		}
	}
}

func TestSelectWithoutIndex(t *testing.T) {
	se := newTestEngine(t, Options{})
	loadRange(t, se, "movie", 1, 30, 1, false)

	out, stats := runSelect(t, se, "SELECT key FROM movie WHERE key > 25")
	if out != "26\n27\n28\n29\n30\n" {
		t.Errorf("Unexpected output %q", out)
	}
	if stats.UsedIndex {
		t.Error("Expected a table scan when no index exists")
	}
	if stats.Matched != 5 {
		t.Errorf("Expected 5 matches, got %d", stats.Matched)
	}
}

func TestSelectStartsInGapBetweenLeaves(t *testing.T) {
	se := newTestEngine(t, Options{LeafCapacity: 4})
	// even keys only, so lower bounds can fall between a leaf's last key and its separator
	loadRange(t, se, "even", 2, 100, 2, true)

	for lo := 3; lo <= 21; lo += 2 {
		sql := fmt.Sprintf("SELECT key FROM even WHERE key >= %d AND key <= %d", lo, lo+5)
		want := fmt.Sprintf("%d\n%d\n%d\n", lo+1, lo+3, lo+5)
		out, stats := runSelect(t, se, sql)
		if out != want {
			t.Errorf("%s:\ngot  %q\nwant %q", sql, out, want)
		}
		if !stats.UsedIndex {
			t.Errorf("%s: expected an index scan", sql)
		}
	}
}

func TestSelectMatchesTableScan(t *testing.T) {
	se := newTestEngine(t, Options{LeafCapacity: 3, InternalCapacity: 3})
	loadRange(t, se, "idx", 1, 200, 3, true)
	loadRange(t, se, "noidx", 1, 200, 3, false)

	queries := []string{
		"SELECT * FROM %s WHERE key > 40 AND key < 90",
		"SELECT key FROM %s WHERE key = 100",
		"SELECT COUNT(*) FROM %s WHERE key >= 150",
		"SELECT value FROM %s WHERE key <= 10",
	}
	for _, q := range queries {
		withIdx, _ := runSelect(t, se, fmt.Sprintf(q, "idx"))
		scan, _ := runSelect(t, se, fmt.Sprintf(q, "noidx"))
		if withIdx != scan {
			t.Errorf("%s: index scan %q differs from table scan %q", q, withIdx, scan)
		}
	}
}

func TestSelectDuplicateKeysMatchesTableScan(t *testing.T) {
	se := newTestEngine(t, Options{LeafCapacity: 4, InternalCapacity: 3})
	lines := []string{"1, 'a'"}
	for i := 0; i < 6; i++ {
		lines = append(lines, fmt.Sprintf("5, 'five%d'", i))
	}
	lines = append(lines, "9, 'b'")
	for i := 0; i < 5; i++ {
		lines = append(lines, fmt.Sprintf("9, 'nine%d'", i))
	}
	path := writeLoadFile(t, lines)
	if _, err := se.Load("idx", path, true); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if _, err := se.Load("noidx", path, false); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	queries := []string{
		"SELECT COUNT(*) FROM %s WHERE key = 5",
		"SELECT COUNT(*) FROM %s WHERE key >= 5",
		"SELECT COUNT(*) FROM %s WHERE key > 1",
		"SELECT COUNT(*) FROM %s WHERE key = 9",
		"SELECT key FROM %s WHERE key >= 5 AND key <= 5",
	}
	for _, q := range queries {
		withIdx, stats := runSelect(t, se, fmt.Sprintf(q, "idx"))
		if !stats.UsedIndex {
			t.Fatalf("%s: expected the index to be used", q)
		}
		scan, _ := runSelect(t, se, fmt.Sprintf(q, "noidx"))
		if withIdx != scan {
			t.Errorf("%s: index scan %q differs from table scan %q", q, withIdx, scan)
		}
	}

	out, _ := runSelect(t, se, "SELECT COUNT(*) FROM idx WHERE key = 5")
	if out != "6\n" {
		t.Errorf("Expected 6 copies of key 5, got %q", out)
	}
}

func TestLoadWithoutIndexKeepsExistingIndex(t *testing.T) {
	se := newTestEngine(t, Options{LeafCapacity: 4})
	loadRange(t, se, "t", 1, 10, 1, true)
	loadRange(t, se, "t", 11, 20, 1, false)

	out, stats := runSelect(t, se, "SELECT COUNT(*) FROM t WHERE key > 0")
	if !stats.UsedIndex {
		t.Fatal("Expected the index to be used")
	}
	if out != "20\n" {
		t.Errorf("Index scan counted %q, expected 20", out)
	}
	out, _ = runSelect(t, se, "SELECT * FROM t WHERE key = 15")
	if out != "15 'v15'\n" {
		t.Errorf("Unexpected lookup result %q", out)
	}
}

func TestLoadWithoutIndexCreatesNone(t *testing.T) {
	se := newTestEngine(t, Options{})
	loadRange(t, se, "t", 1, 5, 1, false)
	if se.IndexManager.Exists("t") {
		t.Error("Load without an index created t.idx")
	}
}

func TestLoadCountsUnindexedTuples(t *testing.T) {
	se := newTestEngine(t, Options{})
	tree, err := se.IndexManager.GetOrCreateIndex("t")
	if err != nil {
		t.Fatalf("GetOrCreateIndex failed: %v", err)
	}
	// the cached tree is closed underneath the manager, so inserts fail
	if err := tree.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	stats, err := se.Load("t", writeLoadFile(t, []string{"1, 'a'", "2, 'b'"}), true)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if stats.Loaded != 2 || stats.Unindexed != 2 || stats.Skipped != 0 {
		t.Errorf("Unexpected load stats %+v", stats)
	}

	out, _ := runSelect(t, se, "SELECT COUNT(*) FROM t WHERE value <> 'x'")
	if out != "2\n" {
		t.Errorf("Expected both tuples in the table, got %q", out)
	}
}

func TestSelectMissingTable(t *testing.T) {
	se := newTestEngine(t, Options{})
	stmt := &parser.SelectStmt{Attr: parser.AttrStar, Table: "ghost"}
	if _, err := se.Select(stmt, &bytes.Buffer{}); !errors.Is(err, heapfile.ErrTableNotFound) {
		t.Fatalf("Expected ErrTableNotFound, got %v", err)
	}
}

func TestLoadAppendsAcrossCalls(t *testing.T) {
	se := newTestEngine(t, Options{LeafCapacity: 4, CacheBytes: 32 * 1024})
	loadRange(t, se, "t", 1, 10, 1, true)
	loadRange(t, se, "t", 11, 20, 1, true)

	out, _ := runSelect(t, se, "SELECT COUNT(*) FROM t")
	if out != "20\n" {
		t.Errorf("Expected 20 tuples, got %q", out)
	}
	out, _ = runSelect(t, se, "SELECT * FROM t WHERE key = 15")
	if out != "15 'v15'\n" {
		t.Errorf("Unexpected lookup result %q", out)
	}
}

func TestExecute(t *testing.T) {
	se := newTestEngine(t, Options{})
	path := writeLoadFile(t, []string{"1, 'a'", "2, 'b'"})

	stmt, err := parser.Parse(fmt.Sprintf("LOAD t FROM '%s' WITH INDEX", path))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	var out bytes.Buffer
	if err := se.Execute(stmt, &out); err != nil {
		t.Fatalf("Execute LOAD failed: %v", err)
	}

	stmt, _ = parser.Parse("SELECT value FROM t WHERE key = 2")
	if err := se.Execute(stmt, &out); err != nil {
		t.Fatalf("Execute SELECT failed: %v", err)
	}
	if out.String() != "b\n" {
		t.Errorf("Unexpected output %q", out.String())
	}

	if err := se.Execute(&parser.QuitStmt{}, &out); !errors.Is(err, ErrQuit) {
		t.Errorf("Expected ErrQuit, got %v", err)
	}
}
