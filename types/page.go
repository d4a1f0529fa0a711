package types

const (
	PageSize    = 1024 // 1KB page
	PointerSize = 4    // on-disk size of a PageID
	KeySize     = 4    // on-disk size of an index key
)

// PageID addresses a page inside a single paged file. Page 0 always holds
// file metadata, so a valid node or record page is >= 1 for index files.
type PageID int32

// InvalidPageID marks an absent page: empty tree root, end of the leaf chain.
const InvalidPageID PageID = -1

// PageType labels pages in debug output; it is not stored on disk.
type PageType uint8

const (
	PageTypeUnknown PageType = iota
	PageTypeMetadata
	PageTypeLeaf
	PageTypeInternal
)

func (pt PageType) String() string {
	switch pt {
	case PageTypeMetadata:
		return "META"
	case PageTypeLeaf:
		return "LEAF"
	case PageTypeInternal:
		return "INTERNAL"
	default:
		return "UNKNOWN"
	}
}

// OpenMode mirrors the classic 'r' / 'w' file open flags.
type OpenMode byte

const (
	ModeRead  OpenMode = 'r'
	ModeWrite OpenMode = 'w'
)

func (m OpenMode) Valid() bool {
	return m == ModeRead || m == ModeWrite
}
