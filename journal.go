package stockstudy

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// JournalType classifies a trading journal entry.
type JournalType string

const (
	Buy  JournalType = "buy"
	Sell JournalType = "sell"
	Hold JournalType = "hold"
)

// ParseJournalType returns the journal type matching s, or an error.
func ParseJournalType(s string) (JournalType, error) {
	switch JournalType(strings.ToLower(strings.TrimSpace(s))) {
	case Buy:
		return Buy, nil
	case Sell:
		return Sell, nil
	case Hold:
		return Hold, nil
	}
	return "", fmt.Errorf("unknown journal type %q (valid: buy, sell, hold)", s)
}

// JournalEntry records a single trading decision and its reasoning.
type JournalEntry struct {
	ID        string      `json:"id"`
	Date      time.Time   `json:"date"`
	Type      JournalType `json:"type"`
	Stock     string      `json:"stock"`
	Content   string      `json:"content"`
	CreatedAt time.Time   `json:"createdAt"`
}

// NewJournalEntry creates a journal entry dated now.
func NewJournalEntry(typ JournalType, stock, content string) JournalEntry {
	now := time.Now()
	return JournalEntry{
		ID:        "journal-" + uuid.NewString(),
		Date:      now,
		Type:      typ,
		Stock:     stock,
		Content:   content,
		CreatedAt: now,
	}
}

// StudyNote is a study item, either written by the user or pulled from the
// remote study feed.
type StudyNote struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content,omitempty"`
	Tags      []string  `json:"tags,omitempty"`
	Category  string    `json:"category,omitempty"`
	Link      string    `json:"link,omitempty"`
	Source    string    `json:"source,omitempty"`
	Date      time.Time `json:"date,omitempty"`
	Completed bool      `json:"isCompleted"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewStudyNote creates a user-authored study note.
func NewStudyNote(title, content string, tags []string) StudyNote {
	return StudyNote{
		ID:        "study-" + uuid.NewString(),
		Title:     title,
		Content:   content,
		Tags:      tags,
		CreatedAt: time.Now(),
	}
}
