package repository

import (
	"context"
	"database/sql"
	"time"
)

// FeedRepo handles feed subscriptions.
type FeedRepo struct {
	db *sql.DB
}

func NewFeedRepo(db *sql.DB) *FeedRepo { return &FeedRepo{db: db} }

// Insert stores a new feed. URL is UNIQUE; duplicates fail.
func (r *FeedRepo) Insert(ctx context.Context, title, url string, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO feeds(title, url, created_at) VALUES(?, ?, ?)`,
		title, url, now.Unix())
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// Delete removes a feed; its items go with it via the FK cascade.
func (r *FeedRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM feeds WHERE id = ?`, id)
	return err
}

func (r *FeedRepo) Get(ctx context.Context, id int64) (Feed, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, title, url, last_updated, created_at FROM feeds WHERE id = ?`, id)
	return scanFeed(row)
}

func (r *FeedRepo) List(ctx context.Context) ([]Feed, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, url, last_updated, created_at FROM feeds ORDER BY title ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Feed
	for rows.Next() {
		f, err := scanFeed(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// TouchLastUpdated records a successful fetch time.
func (r *FeedRepo) TouchLastUpdated(ctx context.Context, id int64, at time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE feeds SET last_updated = ? WHERE id = ?`, at.Unix(), id)
	return err
}

func scanFeed(row rowScanner) (Feed, error) {
	var f Feed
	var created int64
	var updated sql.NullInt64
	if err := row.Scan(&f.ID, &f.Title, &f.URL, &updated, &created); err != nil {
		return Feed{}, err
	}
	f.CreatedAt = time.Unix(created, 0).UTC()
	if updated.Valid {
		t := time.Unix(updated.Int64, 0).UTC()
		f.LastUpdated = &t
	}
	return f, nil
}

// FeedItemRepo handles fetched feed entries.
type FeedItemRepo struct {
	db *sql.DB
}

func NewFeedItemRepo(db *sql.DB) *FeedItemRepo { return &FeedItemRepo{db: db} }

// InsertOrIgnore stores an item unless its GUID is already present.
// Reports whether a row was actually inserted.
func (r *FeedItemRepo) InsertOrIgnore(ctx context.Context, item FeedItem, now time.Time) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
	INSERT OR IGNORE INTO feed_items(feed_id, title, link, description, pub_date, guid, created_at)
	VALUES(?, ?, ?, ?, ?, ?, ?)`,
		item.FeedID, item.Title, item.Link, item.Description, item.PubDate.Unix(), item.GUID, now.Unix())
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// Latest returns up to limit items across all feeds, newest first.
func (r *FeedItemRepo) Latest(ctx context.Context, limit int) ([]FeedItem, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, feed_id, title, link, description, pub_date, guid, created_at
	FROM feed_items ORDER BY pub_date DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectItems(rows)
}

// ListForFeed returns a single feed's items, newest first.
func (r *FeedItemRepo) ListForFeed(ctx context.Context, feedID int64, limit int) ([]FeedItem, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, feed_id, title, link, description, pub_date, guid, created_at
	FROM feed_items WHERE feed_id = ? ORDER BY pub_date DESC, id DESC LIMIT ?`, feedID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectItems(rows)
}

func (r *FeedItemRepo) DeleteForFeed(ctx context.Context, feedID int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM feed_items WHERE feed_id = ?`, feedID)
	return err
}

func collectItems(rows *sql.Rows) ([]FeedItem, error) {
	var out []FeedItem
	for rows.Next() {
		var it FeedItem
		var pub, created int64
		var link, desc, guid sql.NullString
		if err := rows.Scan(&it.ID, &it.FeedID, &it.Title, &link, &desc, &pub, &guid, &created); err != nil {
			return nil, err
		}
		it.Link = link.String
		it.Description = desc.String
		it.GUID = guid.String
		it.PubDate = time.Unix(pub, 0).UTC()
		it.CreatedAt = time.Unix(created, 0).UTC()
		out = append(out, it)
	}
	return out, rows.Err()
}
