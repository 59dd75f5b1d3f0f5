/*
Package picocart is a library for extracting the contents of PICO-8
cartridges that are stored inside PNG images.
*/
package picocart

import (
	"log"
	"sync"
)

// PicoCart loads cartridges, caching the extracted memory image both for
// the lifetime of the process and in a database.
type PicoCart struct {
	db     *CartDB
	logger *log.Logger

	mu    sync.Mutex
	cache map[string][]byte
}

// New returns a PicoCart using the database file for its persistent cache
func New(file string, logger *log.Logger) (*PicoCart, error) {
	db, err := NewCartDB(file)
	if err != nil {
		return nil, err
	}

	return &PicoCart{
		db:     db,
		logger: logger,
		cache:  make(map[string][]byte),
	}, nil
}

// Close closes the underlying database
func (p *PicoCart) Close() error {
	return p.db.Close()
}
