package storageengine

import (
	"BTreeDB/query_parser/parser"
	heapfile "BTreeDB/storage_engine/access/heapfile_manager"
	indexfile "BTreeDB/storage_engine/access/indexfile_manager"
	bplus "BTreeDB/storage_engine/access/indexfile_manager/bplustree"
	"BTreeDB/types"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

/*
Select answers SELECT statements.

	SQL: SELECT * FROM movie WHERE key > 100 AND key <= 200
	     ↓
	StorageEngine.Select
	     ├── [index usable] → Locate(start) → ReadForward ... → HeapFile.Read (only if a value is needed)
	     │       └── stops at the first key that fails a key =, <, <= condition
	     └── [otherwise]    → HeapFile.Read for every rid below EndRecordID

The index is used when <table>.idx exists and either some key condition
other than <> narrows the range, or the query never looks at values.
*/

// matchOutcome is the result of checking one tuple.
type matchOutcome int

const (
	matchOK matchOutcome = iota
	matchSkip
	matchStop // no later key in index order can match
)

func (se *StorageEngine) Select(stmt *parser.SelectStmt, w io.Writer) (SelectStats, error) {
	var stats SelectStats
	start := time.Now()

	hf, err := se.HeapManager.OpenHeapFile(stmt.Table, types.ModeRead)
	if err != nil {
		return stats, err
	}
	defer hf.Close()

	var idx *bplus.BTreeIndex
	if useIndex(stmt) {
		idx, err = se.IndexManager.OpenIndexForRead(stmt.Table)
		switch {
		case err == nil:
			defer idx.Close()
		case errors.Is(err, indexfile.ErrIndexNotFound):
			idx = nil
		default:
			return stats, err
		}
	}

	out := &resultWriter{w: w, attr: stmt.Attr}
	if idx != nil {
		stats.UsedIndex = true
		err = se.indexScan(stmt, hf, idx, out)
	} else {
		err = se.tableScan(stmt, hf, out)
	}
	if err != nil {
		return stats, err
	}
	if stmt.Attr == parser.AttrCount {
		fmt.Fprintf(w, "%d\n", out.count)
	}

	stats.Matched = out.count
	stats.PageReads = hf.PageReads()
	if idx != nil {
		stats.PageReads += idx.PageReads()
	}
	stats.Elapsed = time.Since(start)

	se.logger.Info("select finished",
		zap.String("table", stmt.Table),
		zap.Bool("index", stats.UsedIndex),
		zap.Int("matched", stats.Matched),
		zap.Uint64("page_reads", stats.PageReads),
		zap.Duration("elapsed", stats.Elapsed))
	return stats, nil
}

// useIndex reports whether an index, if present, would help.
func useIndex(stmt *parser.SelectStmt) bool {
	for _, c := range stmt.Conds {
		if c.Column == parser.ColumnKey && c.Comp != parser.NE {
			return true
		}
	}
	return !needsValue(stmt)
}

// needsValue reports whether the tuple has to be read from the heap file.
func needsValue(stmt *parser.SelectStmt) bool {
	if stmt.Attr == parser.AttrValue || stmt.Attr == parser.AttrStar {
		return true
	}
	for _, c := range stmt.Conds {
		if c.Column == parser.ColumnValue {
			return true
		}
	}
	return false
}

// startKey picks where the index scan begins: the equality key if there is
// one, otherwise the tightest lower bound, otherwise the smallest key.
func startKey(conds []parser.SelCond) int32 {
	start := int32(math.MinInt32)
	for _, c := range conds {
		if c.Column != parser.ColumnKey {
			continue
		}
		switch c.Comp {
		case parser.EQ:
			return c.Key
		case parser.GT, parser.GE:
			if c.Key > start {
				start = c.Key
			}
		}
	}
	return start
}

func (se *StorageEngine) indexScan(stmt *parser.SelectStmt, hf *heapfile.HeapFile, idx *bplus.BTreeIndex, out *resultWriter) error {
	from := startKey(stmt.Conds)
	if from > math.MinInt32 {
		// a split can leave copies of `from` left of a separator equal to it
		from--
	}
	cursor, err := idx.Locate(from)
	if errors.Is(err, bplus.ErrNotFound) {
		return nil // empty index
	}
	if err != nil {
		return err
	}
	if cursor.Exhausted() {
		// the routed leaf ends below `from`, its right neighbours may not;
		// rescan from the smallest key and let the conditions filter
		if cursor, err = idx.Locate(math.MinInt32); err != nil {
			return err
		}
	}

	withValue := needsValue(stmt)
	for {
		key, rid, err := idx.ReadForward(&cursor)
		if errors.Is(err, bplus.ErrInvalidCursor) || errors.Is(err, bplus.ErrEndOfTree) {
			return nil
		}
		if err != nil {
			return err
		}

		var value string
		if withValue {
			if _, value, err = hf.Read(rid); err != nil {
				return errors.Wrapf(err, "while reading a tuple from table %s", stmt.Table)
			}
		}

		switch evalConds(stmt.Conds, key, value, true) {
		case matchStop:
			return nil
		case matchSkip:
			continue
		}
		out.emit(key, value)
	}
}

func (se *StorageEngine) tableScan(stmt *parser.SelectStmt, hf *heapfile.HeapFile, out *resultWriter) error {
	end := hf.EndRecordID()
	for rid := (types.RecordID{}); rid.Less(end); rid = rid.Next() {
		key, value, err := hf.Read(rid)
		if err != nil {
			return errors.Wrapf(err, "while reading a tuple from table %s", stmt.Table)
		}
		if evalConds(stmt.Conds, key, value, false) != matchOK {
			continue
		}
		out.emit(key, value)
	}
	return nil
}

// evalConds checks every condition against one tuple. With ordered set,
// tuples arrive in ascending key order and a failed key =, < or <= means
// nothing after this tuple can match.
func evalConds(conds []parser.SelCond, key int32, value string, ordered bool) matchOutcome {
	for _, c := range conds {
		var diff int
		switch c.Column {
		case parser.ColumnKey:
			diff = compareInt32(key, c.Key)
		case parser.ColumnValue:
			diff = strings.Compare(value, c.Value)
		}

		if satisfies(c.Comp, diff) {
			continue
		}
		if ordered && c.Column == parser.ColumnKey {
			switch c.Comp {
			case parser.EQ, parser.LT, parser.LE:
				if diff > 0 {
					return matchStop
				}
			}
		}
		return matchSkip
	}
	return matchOK
}

func satisfies(op parser.CompOp, diff int) bool {
	switch op {
	case parser.EQ:
		return diff == 0
	case parser.NE:
		return diff != 0
	case parser.LT:
		return diff < 0
	case parser.GT:
		return diff > 0
	case parser.LE:
		return diff <= 0
	case parser.GE:
		return diff >= 0
	}
	return false
}

func compareInt32(a, b int32) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// resultWriter prints matching tuples in the projection's format and counts them.
type resultWriter struct {
	w     io.Writer
	attr  parser.Attr
	count int
}

func (r *resultWriter) emit(key int32, value string) {
	r.count++
	switch r.attr {
	case parser.AttrKey:
		fmt.Fprintf(r.w, "%d\n", key)
	case parser.AttrValue:
		fmt.Fprintf(r.w, "%s\n", value)
	case parser.AttrStar:
		fmt.Fprintf(r.w, "%d '%s'\n", key, value)
	}
}
