// Package postgres implements storage.Store on top of the database.DB pool.
package postgres

import (
	"encoding/json"
	"errors"
	"fmt"

	"career-compass/internal/database"
	"career-compass/internal/storage"

	"github.com/jackc/pgx/v5/pgconn"
)

type Store struct {
	db database.DB
}

var _ storage.Store = (*Store)(nil)

func NewStore(db database.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Close() error {
	return s.db.Close()
}

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

func marshalJSON(v any) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal jsonb: %w", err)
	}
	return b, nil
}

func unmarshalStrings(b []byte, out *[]string) error {
	*out = []string{}
	if len(b) == 0 {
		return nil
	}
	return json.Unmarshal(b, out)
}

// stringsArg encodes an optional []string patch field as a jsonb parameter;
// nil means "leave unchanged" and becomes SQL NULL for COALESCE.
func stringsArg(p *[]string) (any, error) {
	if p == nil {
		return nil, nil
	}
	v := *p
	if v == nil {
		v = []string{}
	}
	return marshalJSON(v)
}
