package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"
)

// Log levels stored in the logs table.
const (
	LevelInfo    = "INFO"
	LevelWarning = "WARNING"
	LevelError   = "ERROR"
)

// LogRepo handles the persistent application log.
type LogRepo struct {
	db *sql.DB
}

func NewLogRepo(db *sql.DB) *LogRepo { return &LogRepo{db: db} }

// Insert stores a log entry. Unknown levels are stored as INFO.
func (r *LogRepo) Insert(ctx context.Context, level, message string, now time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO logs(level, message, timestamp) VALUES(?, ?, ?)`,
		NormalizeLevel(level), message, now.Unix())
	return err
}

// Recent returns up to limit entries, newest first.
func (r *LogRepo) Recent(ctx context.Context, limit int) ([]LogEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, level, message, timestamp FROM logs ORDER BY timestamp DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []LogEntry
	for rows.Next() {
		var e LogEntry
		var ts int64
		if err := rows.Scan(&e.ID, &e.Level, &e.Message, &ts); err != nil {
			return nil, err
		}
		e.Timestamp = time.Unix(ts, 0).UTC()
		out = append(out, e)
	}
	return out, rows.Err()
}

// Purge deletes entries older than the cutoff. Returns rows removed.
func (r *LogRepo) Purge(ctx context.Context, olderThan time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM logs WHERE timestamp < ?`, olderThan.Unix())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// NormalizeLevel maps free-form level names onto the stored set.
func NormalizeLevel(level string) string {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "WARN", "WARNING":
		return LevelWarning
	case "ERROR", "FATAL", "PANIC":
		return LevelError
	default:
		return LevelInfo
	}
}
