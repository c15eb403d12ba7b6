package store

import (
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/openleaf/openleaf/log"
	"github.com/openleaf/openleaf/model"
)

func (s *Store) GetUser(find *model.FindUser) (*model.User, error) {
	if find.ID != nil {
		if cache, ok := s.UserCache.Load(*find.ID); ok {
			return cache.(*model.User), nil
		}
	}

	list, err := s.ListUsers(find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}

	user := list[0]
	s.UserCache.Store(user.ID, user)
	return user, nil
}

func (s *Store) ListUsers(find *model.FindUser) ([]*model.User, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.ID; v != nil {
		where, args = append(where, "id = ?"), append(args, *v)
	}
	if v := find.Username; v != nil {
		where, args = append(where, "username = ?"), append(args, *v)
	}
	if v := find.Email; v != nil {
		where, args = append(where, "email = ?"), append(args, *v)
	}
	if v := find.Role; v != nil {
		where, args = append(where, "role = ?"), append(args, *v)
	}

	// Here will return password_hash, so need to be careful
	// If need to response to client, need to remove password_hash
	// Use response.UserResponse to remove password_hash
	query := `
		SELECT
			id,
			username,
			role,
			email,
			password_hash,
			created_ts,
			updated_ts,
			last_login_ts
		FROM users
		WHERE ` + strings.Join(where, " AND ") + ` ORDER BY created_ts DESC`
	if v := find.Limit; v != nil {
		query += fmt.Sprintf(" LIMIT %d", *v)
	}

	// zap not support escape character, so need to fallback.
	// https://github.com/uber-go/zap/issues/963
	log.Debug("SQL query and args:")
	log.Fallback("Debug", fmt.Sprintf("query: %s\nargs: %v\n", query, args))

	rows, err := s.db.Query(query, args...)
	if err != nil {
		log.Debug("Error querying users", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	list := make([]*model.User, 0)
	for rows.Next() {
		var user model.User
		if err := rows.Scan(
			&user.ID,
			&user.Username,
			&user.Role,
			&user.Email,
			&user.PasswordHash,
			&user.CreatedTs,
			&user.UpdatedTs,
			&user.LastLoginTs,
		); err != nil {
			return nil, err
		}
		list = append(list, &user)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return list, nil
}

func (s *Store) CreateUser(create *model.User) (*model.User, error) {
	fields := []string{"`username`", "`role`", "`email`", "`password_hash`"}
	placeholder := []string{"?", "?", "?", "?"}
	args := []any{create.Username, create.Role, create.Email, create.PasswordHash}
	stmt := "INSERT INTO users (" + strings.Join(fields, ", ") + ") VALUES (" + strings.Join(placeholder, ", ") + ") RETURNING id, created_ts, updated_ts, last_login_ts, username, role, email"

	log.Fallback("Debug", fmt.Sprintf("CreateUser\nstmt: %s\nargs: %v\n", stmt, args))

	s.dbLock.Lock()
	defer s.dbLock.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var user model.User
	if err := tx.QueryRow(stmt, args...).Scan(
		&user.ID,
		&user.CreatedTs,
		&user.UpdatedTs,
		&user.LastLoginTs,
		&user.Username,
		&user.Role,
		&user.Email,
	); err != nil {
		return nil, err
	}
	user.PasswordHash = create.PasswordHash

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &user, nil
}

func (s *Store) SetLastLogin(userID int32) error {
	query := `UPDATE users SET last_login_ts = ? WHERE id = ?`
	if _, err := s.db.Exec(query, time.Now().Unix(), userID); err != nil {
		return errors.Wrap(err, "store: unable to update last login date")
	}
	s.UserCache.Delete(userID)
	return nil
}
