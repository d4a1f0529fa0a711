package diskmanager

import (
	"BTreeDB/types"
	"os"
	"sync"

	"github.com/pkg/errors"
)

var (
	ErrFileClosed    = errors.New("page file is closed")
	ErrReadOnly      = errors.New("page file is opened read-only")
	ErrInvalidPageID = errors.New("page id out of range")
	ErrBufferSize    = errors.New("buffer size does not match page size")
	ErrInvalidMode   = errors.New("open mode must be 'r' or 'w'")
)

// ############################################# PAGE FILE #############################################

// PageFile is a single OS file viewed as an array of fixed-size pages.
type PageFile struct {
	file     *os.File
	filePath string
	mode     types.OpenMode
	endPid   types.PageID // next unused page id == number of pages in the file

	reads  uint64
	writes uint64
	mu     sync.RWMutex
}
