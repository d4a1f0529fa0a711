package diskmanager

import (
	"BTreeDB/types"
	"os"

	"github.com/pkg/errors"
)

/*
This is main file for disk manager
It owns:
The file descriptor (os.File)
Reading/writing raw pages at specific offsets (ReadAt, WriteAt)
Page allocation (EndPageID is derived from the file size and grows on append)

There is no free list: pages are appended at EndPageID and never reused,
so the page count only grows.

Offset of page p is p * types.PageSize.
*/

// Open opens or creates the paged file at filePath.
// ModeRead requires the file to exist; ModeWrite creates it when missing.
func Open(filePath string, mode types.OpenMode) (*PageFile, error) {
	if !mode.Valid() {
		return nil, errors.Wrapf(ErrInvalidMode, "open %s: mode %q", filePath, byte(mode))
	}

	flags := os.O_RDONLY
	if mode == types.ModeWrite {
		flags = os.O_RDWR | os.O_CREATE
	}

	file, err := os.OpenFile(filePath, flags, 0644)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open page file %s", filePath)
	}

	stat, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, errors.Wrapf(err, "failed to stat page file %s", filePath)
	}

	return &PageFile{
		file:     file,
		filePath: filePath,
		mode:     mode,
		endPid:   types.PageID(stat.Size() / int64(types.PageSize)),
	}, nil
}

// ReadPage reads page pid into buf.
func (pf *PageFile) ReadPage(pid types.PageID, buf []byte) error {
	pf.mu.RLock()
	defer pf.mu.RUnlock()

	if pf.file == nil {
		return ErrFileClosed
	}
	if len(buf) != types.PageSize {
		return errors.Wrapf(ErrBufferSize, "read page %d: got %d bytes", pid, len(buf))
	}
	if pid < 0 || pid >= pf.endPid {
		return errors.Wrapf(ErrInvalidPageID, "read page %d (end %d)", pid, pf.endPid)
	}

	n, err := pf.file.ReadAt(buf, int64(pid)*int64(types.PageSize))
	if err != nil && n == 0 {
		return errors.Wrapf(err, "failed to read page %d", pid)
	}
	// Pad with zeros if partial read
	if n < types.PageSize {
		clear(buf[n:])
	}

	pf.reads++
	return nil
}

// WritePage writes buf to page pid. Writing at EndPageID appends a page.
func (pf *PageFile) WritePage(pid types.PageID, buf []byte) error {
	pf.mu.Lock()
	defer pf.mu.Unlock()

	if pf.file == nil {
		return ErrFileClosed
	}
	if pf.mode != types.ModeWrite {
		return errors.Wrapf(ErrReadOnly, "write page %d", pid)
	}
	if len(buf) != types.PageSize {
		return errors.Wrapf(ErrBufferSize, "write page %d: got %d bytes", pid, len(buf))
	}
	if pid < 0 || pid > pf.endPid {
		return errors.Wrapf(ErrInvalidPageID, "write page %d (end %d)", pid, pf.endPid)
	}

	if _, err := pf.file.WriteAt(buf, int64(pid)*int64(types.PageSize)); err != nil {
		return errors.Wrapf(err, "failed to write page %d", pid)
	}

	// Update end page ID if we wrote beyond current end
	if pid == pf.endPid {
		pf.endPid++
	}

	pf.writes++
	return nil
}

// EndPageID returns the next unused page id, which is also the page count.
func (pf *PageFile) EndPageID() types.PageID {
	pf.mu.RLock()
	defer pf.mu.RUnlock()
	return pf.endPid
}

// Reads and Writes count page I/O since open.
func (pf *PageFile) Reads() uint64 {
	pf.mu.RLock()
	defer pf.mu.RUnlock()
	return pf.reads
}

func (pf *PageFile) Writes() uint64 {
	pf.mu.RLock()
	defer pf.mu.RUnlock()
	return pf.writes
}

// Close closes the file. Calling it twice is fine.
func (pf *PageFile) Close() error {
	pf.mu.Lock()
	defer pf.mu.Unlock()

	if pf.file == nil {
		return nil // Already closed
	}

	if pf.mode == types.ModeWrite {
		if err := pf.file.Sync(); err != nil {
			pf.file.Close()
			pf.file = nil
			return errors.Wrap(err, "failed to sync before close")
		}
	}

	err := pf.file.Close()
	pf.file = nil // Mark as closed
	return err
}
