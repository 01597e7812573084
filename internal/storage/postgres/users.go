package postgres

import (
	"context"
	"errors"

	"career-compass/internal/domain/user"
	"career-compass/internal/storage"

	"github.com/jackc/pgx/v5"
)

const userColumns = `id, username, email, password_hash, first_name, last_name, user_type, phone, bio, created_at`

func (s *Store) GetUser(ctx context.Context, id int64) (user.User, error) {
	row := s.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (user.User, error) {
	row := s.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = $1`, username)
	return scanUser(row)
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (user.User, error) {
	row := s.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

func (s *Store) CreateUser(ctx context.Context, in storage.NewUser) (user.User, error) {
	row := s.db.QueryRow(ctx,
		`INSERT INTO users (username, email, password_hash, first_name, last_name, user_type, phone, bio)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING `+userColumns,
		in.Username, in.Email, in.PasswordHash, in.FirstName, in.LastName, string(in.UserType), in.Phone, in.Bio)

	u, err := scanUser(row)
	if err != nil {
		if isUniqueViolation(err) {
			return user.User{}, storage.ErrConflict
		}
		return user.User{}, err
	}
	return u, nil
}

func (s *Store) UpdateUser(ctx context.Context, id int64, patch storage.UserPatch) (user.User, error) {
	var userType *string
	if patch.UserType != nil {
		t := string(*patch.UserType)
		userType = &t
	}

	row := s.db.QueryRow(ctx,
		`UPDATE users SET
			email = COALESCE($2, email),
			password_hash = COALESCE($3, password_hash),
			first_name = COALESCE($4, first_name),
			last_name = COALESCE($5, last_name),
			user_type = COALESCE($6, user_type),
			phone = COALESCE($7, phone),
			bio = COALESCE($8, bio)
		 WHERE id = $1
		 RETURNING `+userColumns,
		id, patch.Email, patch.PasswordHash, patch.FirstName, patch.LastName, userType, patch.Phone, patch.Bio)
	return scanUser(row)
}

func (s *Store) CountUsersByType(ctx context.Context) (map[user.Type]int64, error) {
	rows, err := s.db.Query(ctx,
		`SELECT user_type, COUNT(*) FROM users GROUP BY user_type`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[user.Type]int64)
	for rows.Next() {
		var (
			t string
			n int64
		)
		if err := rows.Scan(&t, &n); err != nil {
			return nil, err
		}
		out[user.Type(t)] = n
	}
	return out, rows.Err()
}

type scannable interface {
	Scan(dest ...any) error
}

func scanUser(row scannable) (user.User, error) {
	var (
		u        user.User
		userType string
	)
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash,
		&u.FirstName, &u.LastName, &userType, &u.Phone, &u.Bio, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, storage.ErrNotFound
		}
		return user.User{}, err
	}
	u.UserType = user.Type(userType)
	return u, nil
}
