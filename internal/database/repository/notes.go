package repository

import (
	"context"
	"database/sql"
	"time"
)

// NoteRepo handles notes.
type NoteRepo struct {
	db *sql.DB
}

func NewNoteRepo(db *sql.DB) *NoteRepo { return &NoteRepo{db: db} }

// Insert stores a new note and returns its id.
func (r *NoteRepo) Insert(ctx context.Context, title, details string, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO notes(title, details, created_at) VALUES(?, ?, ?)`,
		title, details, now.Unix())
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// Update rewrites title and details and stamps updated_at.
func (r *NoteRepo) Update(ctx context.Context, id int64, title, details string, now time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE notes SET title = ?, details = ?, updated_at = ? WHERE id = ?`,
		title, details, now.Unix(), id)
	return err
}

func (r *NoteRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM notes WHERE id = ?`, id)
	return err
}

func (r *NoteRepo) Get(ctx context.Context, id int64) (Note, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, title, details, created_at, updated_at FROM notes WHERE id = ?`, id)
	return scanNote(row)
}

// List returns all notes, newest first.
func (r *NoteRepo) List(ctx context.Context) ([]Note, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, details, created_at, updated_at FROM notes ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Note
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanNote(row rowScanner) (Note, error) {
	var n Note
	var created int64
	var updated sql.NullInt64
	if err := row.Scan(&n.ID, &n.Title, &n.Details, &created, &updated); err != nil {
		return Note{}, err
	}
	n.CreatedAt = time.Unix(created, 0).UTC()
	if updated.Valid {
		t := time.Unix(updated.Int64, 0).UTC()
		n.UpdatedAt = &t
	}
	return n, nil
}
