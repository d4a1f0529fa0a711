package storageengine

import (
	bplus "BTreeDB/storage_engine/access/indexfile_manager/bplustree"
	"BTreeDB/types"
	"bufio"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

/*
LOAD <table> FROM <file> [WITH INDEX]

	for each line "key, value" of the load file
	     ├── HeapFile.Append(key, value) → rid
	     └── [WITH INDEX or <table>.idx exists] BTreeIndex.Insert(key, rid)

An existing index is always maintained, so later SELECTs never read a stale
one. Lines that do not parse are logged and skipped. Key 0 is skipped too, it
cannot be indexed and the table should not depend on whether an index exists.
A tuple whose index insert fails stays in the table and is counted as
Unindexed.
*/

var ErrBadLoadLine = errors.New("cannot parse load line")

func (se *StorageEngine) Load(table, loadFile string, withIndex bool) (LoadStats, error) {
	var stats LoadStats

	in, err := os.Open(loadFile)
	if err != nil {
		return stats, errors.Wrapf(err, "cannot open load file %s", loadFile)
	}
	defer in.Close()

	hf, err := se.HeapManager.OpenHeapFile(table, types.ModeWrite)
	if err != nil {
		return stats, errors.Wrapf(err, "cannot access/create table %s", table)
	}
	defer hf.Close()

	var idx *bplus.BTreeIndex
	if withIndex || se.IndexManager.Exists(table) {
		if idx, err = se.IndexManager.GetOrCreateIndex(table); err != nil {
			return stats, errors.Wrapf(err, "cannot access/create index for %s", table)
		}
		// the header is only persisted on close
		defer func() {
			if cerr := se.IndexManager.CloseIndex(table); cerr != nil {
				se.logger.Error("failed to close index", zap.String("table", table), zap.Error(cerr))
			}
		}()
	}

	log := se.logger.With(zap.String("table", table), zap.String("file", loadFile))

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		stats.Lines++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		key, value, err := parseLoadLine(line)
		if err != nil {
			log.Warn("could not parse line", zap.Int("line", stats.Lines), zap.Error(err))
			stats.Skipped++
			continue
		}
		if key == 0 {
			log.Warn("skipping reserved key 0", zap.Int("line", stats.Lines))
			stats.Skipped++
			continue
		}

		rid, err := hf.Append(key, value)
		if err != nil {
			log.Warn("could not insert tuple", zap.Int32("key", key), zap.Error(err))
			stats.Skipped++
			continue
		}

		if idx != nil {
			if err := idx.Insert(key, rid); err != nil {
				log.Warn("tuple loaded without index entry", zap.Int32("key", key), zap.Stringer("rid", rid), zap.Error(err))
				stats.Unindexed++
			}
		}
		stats.Loaded++
	}
	if err := scanner.Err(); err != nil {
		return stats, errors.Wrapf(err, "reading %s", loadFile)
	}

	log.Info("load finished",
		zap.Int("lines", stats.Lines),
		zap.Int("loaded", stats.Loaded),
		zap.Int("skipped", stats.Skipped),
		zap.Int("unindexed", stats.Unindexed),
		zap.Bool("index", idx != nil))
	return stats, nil
}

// parseLoadLine splits `key, value`. The value may be quoted with ' or ",
// in which case it ends at the matching quote; otherwise it runs to the end
// of the line. A missing value is the empty string.
func parseLoadLine(line string) (int32, string, error) {
	keyPart, rest, ok := strings.Cut(line, ",")
	if !ok {
		return 0, "", errors.Wrap(ErrBadLoadLine, "missing comma")
	}

	k, err := strconv.ParseInt(strings.TrimSpace(keyPart), 10, 64)
	if err != nil || k < math.MinInt32 || k > math.MaxInt32 {
		return 0, "", errors.Wrapf(ErrBadLoadLine, "key %q", strings.TrimSpace(keyPart))
	}

	rest = strings.TrimLeft(rest, " \t")
	rest = strings.TrimRight(rest, "\r")
	if rest == "" {
		return int32(k), "", nil
	}

	if q := rest[0]; q == '\'' || q == '"' {
		rest = rest[1:]
		if end := strings.IndexByte(rest, q); end >= 0 {
			rest = rest[:end]
		}
	}
	return int32(k), rest, nil
}
