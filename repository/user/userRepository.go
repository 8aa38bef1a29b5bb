package userrepo

import (
	"context"
	"database/sql"

	"github.com/LakshyaVerma123kl/Clone-Linkendin/model"
)

type Repo interface {
	Create(ctx context.Context, u *model.User) error
	ByEmail(ctx context.Context, email string) (*model.User, error)
	ByID(ctx context.Context, id int64) (*model.User, error)
	TouchPresence(ctx context.Context, id int64, online bool) error
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) Create(ctx context.Context, u *model.User) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO users(name, email, password_hash, bio, profile_image)
		VALUES ($1, lower($2), $3, $4, $5)
		RETURNING id, created_at, updated_at`,
		u.Name, u.Email, u.PasswordHash, u.Bio, u.ProfileImage,
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
}

const userCols = `id, name, email, password_hash, bio, profile_image, is_online, last_seen, created_at, updated_at`

func scanUser(row *sql.Row) (*model.User, error) {
	u := &model.User{}
	err := row.Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Bio,
		&u.ProfileImage, &u.IsOnline, &u.LastSeen, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *repo) ByEmail(ctx context.Context, email string) (*model.User, error) {
	return scanUser(r.db.QueryRowContext(ctx, `
		SELECT `+userCols+`
		FROM users
		WHERE lower(email) = lower($1)`,
		email,
	))
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.User, error) {
	return scanUser(r.db.QueryRowContext(ctx, `
		SELECT `+userCols+`
		FROM users
		WHERE id = $1`,
		id,
	))
}

func (r *repo) TouchPresence(ctx context.Context, id int64, online bool) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET is_online = $2,
		    last_seen = NOW(),
		    updated_at = NOW()
		WHERE id = $1`,
		id, online,
	)
	return err
}
