package store

import (
	"github.com/jmoiron/sqlx"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

type Store struct {
	DB *sqlx.DB
}

func NewStore(dataSourceName string) (*Store, error) {
	db, err := sqlx.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, err
	}

	// SQLite allows one writer; a single pooled connection also guarantees
	// the foreign_keys pragma below applies to every statement.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		return nil, err
	}

	// Cart and review rows hang off accounts and inventory; enforce it.
	if _, err := db.Exec(`PRAGMA foreign_keys = ON`); err != nil {
		return nil, err
	}

	return &Store{DB: db}, nil
}

func (s *Store) Close() error {
	return s.DB.Close()
}
