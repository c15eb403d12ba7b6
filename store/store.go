package store // import "github.com/openleaf/openleaf/store"

import (
	"database/sql"
	"sync"
)

type Store struct {
	db                 *sql.DB
	dbLock             sync.Mutex // serializes writes, sqlite allows one writer
	UserCache          sync.Map   // map[int32]*model.User
	SystemSettingCache sync.Map   // map[string]*model.SystemSetting
	BookCache          sync.Map   // map[int]*model.Book
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db: db,
	}
}

func (s *Store) DBStats() sql.DBStats {
	return s.db.Stats()
}

func (s *Store) Ping() error {
	return s.db.Ping()
}

func (s *Store) Close() {
	//
}
