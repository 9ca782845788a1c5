package blogservice

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

var (
	ErrRecordNotFound    = errors.New("record not found")
	ErrDuplicateTitle    = errors.New("duplicate blog title")
	ErrDuplicateImageURL = errors.New("duplicate image url")
	ErrUserForeignKey    = errors.New("user_id does not exist")
)

func newBlogModel(db *sql.DB) *blogModel {
	return &blogModel{db: db}
}

// foreignKeyError reports whether err is a Postgres foreign key violation on
// the named constraint.
func foreignKeyError(err error, name string) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23503" && pqErr.Constraint == name
	}

	return false
}

func uniqueViolation(err error, name string) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505" && pqErr.Constraint == name
	}

	return false
}

func (m *blogModel) insert(ctx context.Context, b *Blog) error {
	query := `
		INSERT INTO blogs (date, title, body, image_url, status, user_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	args := []any{
		b.Date,
		b.Title,
		b.Body,
		b.ImageURL,
		b.Status,
		b.UserID,
	}

	err := m.db.QueryRowContext(ctx, query, args...).Scan(&b.ID, &b.CreatedAt)
	if err != nil {
		switch {
		case uniqueViolation(err, "blogs_title_key"):
			return ErrDuplicateTitle
		case uniqueViolation(err, "blogs_image_url_key"):
			return ErrDuplicateImageURL
		case foreignKeyError(err, "blogs_user_id_fkey"):
			return ErrUserForeignKey
		default:
			return err
		}
	}

	return nil
}

func (m *blogModel) titleExists(ctx context.Context, title string) (bool, error) {
	query := `
		SELECT EXISTS (SELECT 1 FROM blogs WHERE title = $1)`

	var exists bool
	err := m.db.QueryRowContext(ctx, query, title).Scan(&exists)
	if err != nil {
		return false, err
	}

	return exists, nil
}

func (m *blogModel) getByID(ctx context.Context, id int) (*Blog, error) {
	query := `
		SELECT id, date, title, body, image_url, status, user_id, created_at
		FROM blogs
		WHERE id = $1`

	var b Blog
	err := m.db.QueryRowContext(ctx, query, id).Scan(&b.ID, &b.Date, &b.Title, &b.Body, &b.ImageURL, &b.Status, &b.UserID, &b.CreatedAt)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return &b, nil
}

func (m *blogModel) collect(rows *sql.Rows) ([]Blog, error) {
	defer rows.Close()

	var blogs []Blog
	for rows.Next() {
		var b Blog
		err := rows.Scan(&b.ID, &b.Date, &b.Title, &b.Body, &b.ImageURL, &b.Status, &b.UserID, &b.CreatedAt)
		if err != nil {
			return nil, err
		}
		blogs = append(blogs, b)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return blogs, nil
}

func (m *blogModel) getAll(ctx context.Context) ([]Blog, error) {
	query := `
		SELECT id, date, title, body, image_url, status, user_id, created_at
		FROM blogs
		ORDER BY id`

	rows, err := m.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}

	return m.collect(rows)
}

func (m *blogModel) getByStatus(ctx context.Context, status string) ([]Blog, error) {
	query := `
		SELECT id, date, title, body, image_url, status, user_id, created_at
		FROM blogs
		WHERE status = $1
		ORDER BY id`

	rows, err := m.db.QueryContext(ctx, query, status)
	if err != nil {
		return nil, err
	}

	return m.collect(rows)
}

func (m *blogModel) getByUserID(ctx context.Context, userID int) ([]Blog, error) {
	query := `
		SELECT id, date, title, body, image_url, status, user_id, created_at
		FROM blogs
		WHERE user_id = $1
		ORDER BY id`

	rows, err := m.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}

	return m.collect(rows)
}

func (m *blogModel) update(ctx context.Context, b *Blog) error {
	query := `
		UPDATE blogs
		SET title = $1, body = $2, image_url = $3
		WHERE id = $4`

	res, err := m.db.ExecContext(ctx, query, b.Title, b.Body, b.ImageURL, b.ID)
	if err != nil {
		switch {
		case uniqueViolation(err, "blogs_title_key"):
			return ErrDuplicateTitle
		case uniqueViolation(err, "blogs_image_url_key"):
			return ErrDuplicateImageURL
		default:
			return err
		}
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrRecordNotFound
	}

	return nil
}

func (m *blogModel) delete(ctx context.Context, id int) error {
	query := `
		DELETE FROM blogs
		WHERE id = $1`

	res, err := m.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrRecordNotFound
	}

	return nil
}
