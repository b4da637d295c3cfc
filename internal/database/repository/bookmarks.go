package repository

import (
	"context"
	"database/sql"
	"time"
)

// BookmarkRepo handles bookmarks.
type BookmarkRepo struct {
	db *sql.DB
}

func NewBookmarkRepo(db *sql.DB) *BookmarkRepo { return &BookmarkRepo{db: db} }

// Insert stores a new bookmark. Location is UNIQUE; duplicates fail.
func (r *BookmarkRepo) Insert(ctx context.Context, name, location string, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO bookmarks(name, location, created_at) VALUES(?, ?, ?)`,
		name, location, now.Unix())
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *BookmarkRepo) Update(ctx context.Context, id int64, name, location string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE bookmarks SET name = ?, location = ? WHERE id = ?`, name, location, id)
	return err
}

func (r *BookmarkRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM bookmarks WHERE id = ?`, id)
	return err
}

func (r *BookmarkRepo) Get(ctx context.Context, id int64) (Bookmark, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, location, created_at FROM bookmarks WHERE id = ?`, id)
	return scanBookmark(row)
}

// List returns all bookmarks ordered by name.
func (r *BookmarkRepo) List(ctx context.Context) ([]Bookmark, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, location, created_at FROM bookmarks ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Bookmark
	for rows.Next() {
		b, err := scanBookmark(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func scanBookmark(row rowScanner) (Bookmark, error) {
	var b Bookmark
	var created int64
	if err := row.Scan(&b.ID, &b.Name, &b.Location, &created); err != nil {
		return Bookmark{}, err
	}
	b.CreatedAt = time.Unix(created, 0).UTC()
	return b, nil
}
