// Package core defines the essential interfaces and data structures that form
// the backbone of the application. These components are designed to be
// abstract, allowing for flexible and decoupled implementations of the
// application's logic.
package core

import "time"

// Review represents a single code review stored in the database. A review is
// immutable once created: the application exposes no update or delete path.
type Review struct {
	ID               int64     `db:"id"`
	FileName         string    `db:"file_name"`
	Language         string    `db:"language"`
	SourceCode       string    `db:"source_code"`
	QualityFeedback  string    `db:"quality_feedback"`
	SecurityFeedback string    `db:"security_feedback"`
	CreatedAt        time.Time `db:"created_at"`
}

// Feedback is the parsed result of a single model reply, split into the two
// sections the review prompt asks for. Either field may be empty when the
// model omits a section.
type Feedback struct {
	Quality  string
	Security string
}

// ChatMessage is one turn of the assistant conversation.
type ChatMessage struct {
	ID        int64     `db:"id"`
	Role      string    `db:"role"`
	Content   string    `db:"content"`
	CreatedAt time.Time `db:"created_at"`
}

// Chat message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)
