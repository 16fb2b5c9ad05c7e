package db

import (
	"context"

	"github.com/servizo/servizo/internal/notification/entity"
)

const listAudienceUsersQuery = `
SELECT id, full_name, email, COALESCE(phone, ''), role, COALESCE(district, ''), COALESCE(state, ''),
       is_verified, is_active, last_login_at, created_at
FROM users
WHERE deleted_at IS NULL
ORDER BY id`

// ListAudienceUsers streams the user population projection that audience
// filters match against. The users table is owned by the external user
// collaborator and is read-only here.
func (s *DB) ListAudienceUsers(ctx context.Context) (_ []entity.AudienceUser, err error) {
	ctx, span := s.startSpan(ctx, "ListAudienceUsers")
	defer func() { s.endSpan(span, err) }()

	rows, err := s.conn.Query(ctx, listAudienceUsersQuery)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer rows.Close()

	users := make([]entity.AudienceUser, 0)
	for rows.Next() {
		var u entity.AudienceUser
		if err = rows.Scan(&u.ID, &u.FullName, &u.Email, &u.Phone, &u.Role, &u.District, &u.State,
			&u.IsVerified, &u.IsActive, &u.LastLoginAt, &u.CreatedAt); err != nil {
			return nil, s.mapError(err)
		}
		users = append(users, u)
	}
	if err = rows.Err(); err != nil {
		return nil, s.mapError(err)
	}

	return users, nil
}

const getAudienceUserQuery = `
SELECT id, full_name, email, COALESCE(phone, ''), role, COALESCE(district, ''), COALESCE(state, ''),
       is_verified, is_active, last_login_at, created_at
FROM users
WHERE id = $1 AND deleted_at IS NULL`

func (s *DB) GetAudienceUser(ctx context.Context, id int64) (_ *entity.AudienceUser, err error) {
	ctx, span := s.startSpan(ctx, "GetAudienceUser")
	defer func() { s.endSpan(span, err) }()

	var u entity.AudienceUser
	err = s.conn.QueryRow(ctx, getAudienceUserQuery, id).Scan(
		&u.ID, &u.FullName, &u.Email, &u.Phone, &u.Role, &u.District, &u.State,
		&u.IsVerified, &u.IsActive, &u.LastLoginAt, &u.CreatedAt,
	)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &u, nil
}
