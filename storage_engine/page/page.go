package page

import (
	"BTreeDB/types"
)

/*
This package holds the pieces shared by every layer that moves pages around.

Store is the page-store contract: the disk manager implements it directly and
the buffer pool implements it by wrapping another Store. The index and the heap
file only ever talk to a Store, so caching can be switched on or off without
either of them noticing.

Every page in a file has the same size (types.PageSize) and ids are handed out
sequentially: EndPageID is both "next unused id" and "current page count".
*/

type Store interface {
	ReadPage(pid types.PageID, buf []byte) error
	WritePage(pid types.PageID, buf []byte) error
	EndPageID() types.PageID
	Close() error
}

// Page is a page-sized working buffer tagged with the id it was read from.
type Page struct {
	ID   types.PageID
	Data []byte
}

func New(pid types.PageID) *Page {
	return &Page{
		ID:   pid,
		Data: make([]byte, types.PageSize),
	}
}

// Read fills a fresh Page from the store.
func Read(s Store, pid types.PageID) (*Page, error) {
	pg := New(pid)
	if err := s.ReadPage(pid, pg.Data); err != nil {
		return nil, err
	}
	return pg, nil
}

// Write flushes pg back to the page it was created for.
func (pg *Page) Write(s Store) error {
	return s.WritePage(pg.ID, pg.Data)
}
