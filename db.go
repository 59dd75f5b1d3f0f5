package picocart

import (
	"database/sql"
	"fmt"

	"github.com/klauspost/compress/zstd"
	_ "github.com/mattn/go-sqlite3"
)

// CartDB persists extracted cartridge memory images keyed by the location
// of the carrier image
type CartDB struct {
	db *sql.DB

	// Both are safe for concurrent use with EncodeAll and DecodeAll
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

// NewCartDB opens or creates the sqlite database file
func NewCartDB(file string) (*CartDB, error) {
	encoder, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, err
	}

	decoder, err := zstd.NewReader(nil)
	if err != nil {
		encoder.Close()
		return nil, err
	}

	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_busy_timeout=5000", file))
	if err != nil {
		encoder.Close()
		decoder.Close()
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS cartridge (id INTEGER PRIMARY KEY NOT NULL, locator TEXT NOT NULL UNIQUE, sha1 TEXT NOT NULL, data BLOB NOT NULL)"); err != nil {
		db.Close()
		encoder.Close()
		decoder.Close()
		return nil, err
	}

	return &CartDB{
		db:      db,
		encoder: encoder,
		decoder: decoder,
	}, nil
}

// Close closes the database and releases the compressors
func (db *CartDB) Close() error {
	db.decoder.Close()
	if err := db.encoder.Close(); err != nil {
		db.db.Close()
		return err
	}
	return db.db.Close()
}

// FindCartridge returns the memory image stored for locator, or nil if there
// isn't one or the carrier has since changed
func (db *CartDB) FindCartridge(locator, sha string) ([]byte, error) {
	var stored string
	var data []byte
	switch err := db.db.QueryRow("SELECT sha1, data FROM cartridge WHERE locator = ?", locator).Scan(&stored, &data); err {
	case sql.ErrNoRows:
		return nil, nil
	case nil:
		if stored != sha {
			return nil, nil
		}
		return db.decoder.DecodeAll(data, nil)
	default:
		return nil, err
	}
}

// StoreCartridge stores the memory image b for locator, replacing any
// previous entry
func (db *CartDB) StoreCartridge(locator, sha string, b []byte) error {
	if _, err := db.db.Exec("INSERT OR REPLACE INTO cartridge (locator, sha1, data) VALUES (?, ?, ?)", locator, sha, db.encoder.EncodeAll(b, nil)); err != nil {
		return err
	}
	return nil
}

// Forget removes any entry for locator
func (db *CartDB) Forget(locator string) error {
	_, err := db.db.Exec("DELETE FROM cartridge WHERE locator = ?", locator)
	return err
}

// Length returns the number of stored cartridges
func (db *CartDB) Length() (int, error) {
	var n int
	if err := db.db.QueryRow("SELECT COUNT(*) FROM cartridge").Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
