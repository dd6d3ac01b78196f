// Package storage persists and retrieves Review records. It exposes only
// create and read operations; reviews are never updated or deleted by the
// application.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/mpetrov/code-critic/internal/core"
)

// ErrReviewNotFound is returned when a review id does not exist.
var ErrReviewNotFound = errors.New("review not found")

// Store defines the interface for all database operations.
type Store interface {
	SaveReview(ctx context.Context, review *core.Review) error
	GetReview(ctx context.Context, id int64) (*core.Review, error)
	ListRecentReviews(ctx context.Context, limit int) ([]core.Review, error)
	SaveChatMessage(ctx context.Context, msg *core.ChatMessage) error
	ListChatMessages(ctx context.Context, limit int) ([]core.ChatMessage, error)
}

type sqliteStore struct {
	db *sqlx.DB
}

// NewStore creates a new Store backed by the given connection pool.
func NewStore(db *sqlx.DB) Store {
	return &sqliteStore{db: db}
}

// SaveReview inserts a new review row and fills in its assigned ID and
// creation timestamp. Reviews are immutable after this point.
func (s *sqliteStore) SaveReview(ctx context.Context, review *core.Review) error {
	if review.CreatedAt.IsZero() {
		review.CreatedAt = time.Now().UTC()
	}

	query := `INSERT INTO reviews (file_name, language, source_code, quality_feedback, security_feedback, created_at)
	          VALUES (?, ?, ?, ?, ?, ?)`
	res, err := s.db.ExecContext(ctx, query,
		review.FileName, review.Language, review.SourceCode,
		review.QualityFeedback, review.SecurityFeedback, review.CreatedAt)
	if err != nil {
		return &core.PersistenceError{Op: "save review", Err: err}
	}

	id, err := res.LastInsertId()
	if err != nil {
		return &core.PersistenceError{Op: "save review", Err: err}
	}
	review.ID = id
	return nil
}

// GetReview retrieves a single review by id.
func (s *sqliteStore) GetReview(ctx context.Context, id int64) (*core.Review, error) {
	var r core.Review
	query := `SELECT id, file_name, language, source_code, quality_feedback, security_feedback, created_at
	          FROM reviews WHERE id = ?`
	if err := s.db.GetContext(ctx, &r, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReviewNotFound
		}
		return nil, &core.PersistenceError{Op: "get review", Err: err}
	}
	return &r, nil
}

// ListRecentReviews returns the most recent reviews, newest first. The id is
// a tiebreaker so that reviews created within the same timestamp still come
// back in insertion order. A non-positive limit returns an empty slice.
func (s *sqliteStore) ListRecentReviews(ctx context.Context, limit int) ([]core.Review, error) {
	if limit <= 0 {
		return []core.Review{}, nil
	}

	var reviews []core.Review
	query := `SELECT id, file_name, language, source_code, quality_feedback, security_feedback, created_at
	          FROM reviews ORDER BY created_at DESC, id DESC LIMIT ?`
	if err := s.db.SelectContext(ctx, &reviews, query, limit); err != nil {
		return nil, &core.PersistenceError{Op: "list recent reviews", Err: err}
	}
	return reviews, nil
}

// SaveChatMessage appends one turn of the assistant conversation.
func (s *sqliteStore) SaveChatMessage(ctx context.Context, msg *core.ChatMessage) error {
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now().UTC()
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO chat_messages (role, content, created_at) VALUES (?, ?, ?)`,
		msg.Role, msg.Content, msg.CreatedAt)
	if err != nil {
		return &core.PersistenceError{Op: "save chat message", Err: err}
	}

	id, err := res.LastInsertId()
	if err != nil {
		return &core.PersistenceError{Op: "save chat message", Err: err}
	}
	msg.ID = id
	return nil
}

// ListChatMessages returns the last limit messages in chronological order.
func (s *sqliteStore) ListChatMessages(ctx context.Context, limit int) ([]core.ChatMessage, error) {
	if limit <= 0 {
		return []core.ChatMessage{}, nil
	}

	var msgs []core.ChatMessage
	query := `SELECT id, role, content, created_at FROM
	          (SELECT id, role, content, created_at FROM chat_messages ORDER BY created_at DESC, id DESC LIMIT ?)
	          ORDER BY created_at ASC, id ASC`
	if err := s.db.SelectContext(ctx, &msgs, query, limit); err != nil {
		return nil, &core.PersistenceError{Op: "list chat messages", Err: err}
	}
	return msgs, nil
}
