package postrepo

import (
	"context"
	"database/sql"

	"github.com/LakshyaVerma123kl/Clone-Linkendin/model"
)

type Repo interface {
	Insert(ctx context.Context, authorID int64, content string, images []string) (int64, error)
	ByID(ctx context.Context, id int64) (*model.Post, error)
	// List returns one page of posts, newest first, plus the total count.
	// authorID 0 means no author filter.
	List(ctx context.Context, authorID int64, limit, offset int) ([]model.Post, int64, error)
	AuthorID(ctx context.Context, postID int64) (int64, error)
	Delete(ctx context.Context, postID int64) error

	// AddLike and RemoveLike are single atomic statements; concurrent
	// toggles on the same post cannot lose updates.
	AddLike(ctx context.Context, postID, userID int64) (bool, error)
	RemoveLike(ctx context.Context, postID, userID int64) (bool, error)
	LikeCount(ctx context.Context, postID int64) (int64, error)

	InsertComment(ctx context.Context, postID, userID int64, content string) (int64, error)
	CommentAuthor(ctx context.Context, postID, commentID int64) (int64, error)
	DeleteComment(ctx context.Context, commentID int64) error

	StatsByAuthor(ctx context.Context, userID int64) (model.UserStats, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) Insert(ctx context.Context, authorID int64, content string, images []string) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var id int64
	err = tx.QueryRowContext(ctx, `
		INSERT INTO posts (author_id, content)
		VALUES ($1, $2)
		RETURNING id`,
		authorID, content,
	).Scan(&id)
	if err != nil {
		return 0, err
	}

	const ins = `INSERT INTO post_images (post_id, position, url) VALUES ($1, $2, $3)`
	for i, url := range images {
		if _, err = tx.ExecContext(ctx, ins, id, i, url); err != nil {
			return 0, err
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

const postSelect = `
	SELECT p.id, p.content, p.created_at, p.updated_at,
	       u.id, u.name, u.email, u.bio, u.profile_image, u.is_online, u.last_seen, u.created_at,
	       COUNT(*) OVER() AS total
	FROM posts p
	JOIN users u ON u.id = p.author_id`

func scanPostRow(rows *sql.Rows) (model.Post, int64, error) {
	var p model.Post
	var total int64
	err := rows.Scan(
		&p.ID, &p.Content, &p.CreatedAt, &p.UpdatedAt,
		&p.Author.ID, &p.Author.Name, &p.Author.Email, &p.Author.Bio,
		&p.Author.ProfileImage, &p.Author.IsOnline, &p.Author.LastSeen, &p.Author.CreatedAt,
		&total,
	)
	return p, total, err
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.Post, error) {
	rows, err := r.db.QueryContext(ctx, postSelect+` WHERE p.id = $1`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, sql.ErrNoRows
	}
	p, _, err := scanPostRow(rows)
	if err != nil {
		return nil, err
	}

	posts := []model.Post{p}
	if err := r.populate(ctx, posts); err != nil {
		return nil, err
	}
	return &posts[0], nil
}

func (r *repo) List(ctx context.Context, authorID int64, limit, offset int) ([]model.Post, int64, error) {
	rows, err := r.db.QueryContext(ctx, postSelect+`
		WHERE ($1 = 0 OR p.author_id = $1)
		ORDER BY p.created_at DESC, p.id DESC
		LIMIT $2 OFFSET $3`,
		authorID, limit, offset,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var posts []model.Post
	var total int64
	for rows.Next() {
		p, t, err := scanPostRow(rows)
		if err != nil {
			return nil, 0, err
		}
		total = t
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	// an OFFSET past the last row yields no rows, so the windowed total
	// was never scanned; count it directly
	if len(posts) == 0 {
		err := r.db.QueryRowContext(ctx, `
			SELECT COUNT(*) FROM posts
			WHERE ($1 = 0 OR author_id = $1)`,
			authorID,
		).Scan(&total)
		if err != nil {
			return nil, 0, err
		}
	}

	if err := r.populate(ctx, posts); err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// populate fills images, likes and comments for the given posts with one
// query per collection.
func (r *repo) populate(ctx context.Context, posts []model.Post) error {
	if len(posts) == 0 {
		return nil
	}
	ids := make([]int64, len(posts))
	byID := make(map[int64]*model.Post, len(posts))
	for i := range posts {
		ids[i] = posts[i].ID
		posts[i].Images = nil
		posts[i].Likes = []int64{}
		posts[i].Comments = []model.Comment{}
		byID[posts[i].ID] = &posts[i]
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT post_id, url
		FROM post_images
		WHERE post_id = ANY($1)
		ORDER BY post_id, position`,
		ids,
	)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var postID int64
		var url string
		if err := rows.Scan(&postID, &url); err != nil {
			return err
		}
		p := byID[postID]
		p.Images = append(p.Images, url)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	rows, err = r.db.QueryContext(ctx, `
		SELECT post_id, user_id
		FROM post_likes
		WHERE post_id = ANY($1)
		ORDER BY post_id, created_at`,
		ids,
	)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var postID, userID int64
		if err := rows.Scan(&postID, &userID); err != nil {
			return err
		}
		p := byID[postID]
		p.Likes = append(p.Likes, userID)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	rows, err = r.db.QueryContext(ctx, `
		SELECT c.post_id, c.id, c.content, c.created_at,
		       u.id, u.name, u.email, u.bio, u.profile_image, u.is_online, u.last_seen, u.created_at
		FROM comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.post_id = ANY($1)
		ORDER BY c.post_id, c.created_at, c.id`,
		ids,
	)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var postID int64
		var cm model.Comment
		if err := rows.Scan(
			&postID, &cm.ID, &cm.Content, &cm.CreatedAt,
			&cm.User.ID, &cm.User.Name, &cm.User.Email, &cm.User.Bio,
			&cm.User.ProfileImage, &cm.User.IsOnline, &cm.User.LastSeen, &cm.User.CreatedAt,
		); err != nil {
			return err
		}
		p := byID[postID]
		p.Comments = append(p.Comments, cm)
	}
	return rows.Err()
}

func (r *repo) AuthorID(ctx context.Context, postID int64) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, `
		SELECT author_id FROM posts WHERE id = $1`,
		postID,
	).Scan(&id)
	return id, err
}

func (r *repo) Delete(ctx context.Context, postID int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, postID)
	return err
}

func (r *repo) AddLike(ctx context.Context, postID, userID int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO post_likes (post_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (post_id, user_id) DO NOTHING`,
		postID, userID,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *repo) RemoveLike(ctx context.Context, postID, userID int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM post_likes
		WHERE post_id = $1 AND user_id = $2`,
		postID, userID,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *repo) LikeCount(ctx context.Context, postID int64) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM post_likes WHERE post_id = $1`,
		postID,
	).Scan(&n)
	return n, err
}

func (r *repo) InsertComment(ctx context.Context, postID, userID int64, content string) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO comments (post_id, user_id, content)
		VALUES ($1, $2, $3)
		RETURNING id`,
		postID, userID, content,
	).Scan(&id)
	return id, err
}

func (r *repo) CommentAuthor(ctx context.Context, postID, commentID int64) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, `
		SELECT user_id
		FROM comments
		WHERE id = $1 AND post_id = $2`,
		commentID, postID,
	).Scan(&id)
	return id, err
}

func (r *repo) DeleteComment(ctx context.Context, commentID int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE id = $1`, commentID)
	return err
}

func (r *repo) StatsByAuthor(ctx context.Context, userID int64) (model.UserStats, error) {
	var s model.UserStats
	err := r.db.QueryRowContext(ctx, `
		SELECT
		  (SELECT COUNT(*) FROM posts WHERE author_id = $1),
		  (SELECT COUNT(*) FROM post_likes l JOIN posts p ON p.id = l.post_id WHERE p.author_id = $1),
		  (SELECT COUNT(*) FROM comments c JOIN posts p ON p.id = c.post_id WHERE p.author_id = $1)`,
		userID,
	).Scan(&s.PostsCount, &s.TotalLikes, &s.TotalComments)
	return s, err
}
