// Package sqlstore holds the queries shared by the SQLite and PostgreSQL
// stores. Statements are written with "?" placeholders and rebound for the
// driver behind the sqlx handle.
package sqlstore

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	apperrors "github.com/julianstephens/habitrack/internal/errors"
)

// Store runs habit, completion and settings queries against an open database
type Store struct {
	db           *sqlx.DB
	isForeignKey func(error) bool
}

// New wraps db. isForeignKey reports whether a driver error is a foreign key
// violation; those surface as ErrIntegrity.
func New(db *sqlx.DB, isForeignKey func(error) bool) *Store {
	if isForeignKey == nil {
		isForeignKey = func(error) bool { return false }
	}
	return &Store{db: db, isForeignKey: isForeignKey}
}

// DB returns the underlying handle
func (s *Store) DB() *sqlx.DB {
	return s.db
}

func (s *Store) q(query string) string {
	return s.db.Rebind(query)
}

// classify maps a driver error onto the error taxonomy
func (s *Store) classify(op string, err error) error {
	if err == nil {
		return nil
	}
	if s.isForeignKey(err) {
		return apperrors.Integrity(op, err)
	}
	return apperrors.Storage(op, err)
}

// notFoundOr turns sql.ErrNoRows into a not-found error for the named entity
func (s *Store) notFoundOr(op string, err error, entity string, id int64) error {
	if errors.Is(err, sql.ErrNoRows) {
		return apperrors.NotFoundf("%s %d", entity, id)
	}
	return s.classify(op, err)
}

// requireAffected reports a not-found error when a write matched no rows
func (s *Store) requireAffected(op string, res sql.Result, entity string, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return s.classify(op, err)
	}
	if n == 0 {
		return apperrors.NotFoundf("%s %d", entity, id)
	}
	return nil
}
