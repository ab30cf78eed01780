package events

import (
	"time"

	"github.com/google/uuid"
)

// Source identifies this service on the event bus.
const Source = "library.catalog"

// DomainEvent is implemented by everything published to the event bus.
type DomainEvent interface {
	GetEventID() string
	GetEventType() string
	GetAggregateID() string
	GetTimestamp() time.Time
}

// BaseEvent carries the fields shared by all domain events.
type BaseEvent struct {
	EventID     string    `json:"event_id"`
	EventType   string    `json:"event_type"`
	AggregateID string    `json:"aggregate_id"`
	Timestamp   time.Time `json:"timestamp"`
}

func (e BaseEvent) GetEventID() string       { return e.EventID }
func (e BaseEvent) GetEventType() string     { return e.EventType }
func (e BaseEvent) GetAggregateID() string   { return e.AggregateID }
func (e BaseEvent) GetTimestamp() time.Time  { return e.Timestamp }

func newBase(eventType, aggregateID string) BaseEvent {
	return BaseEvent{
		EventID:     uuid.New().String(),
		EventType:   eventType,
		AggregateID: aggregateID,
		Timestamp:   time.Now().UTC(),
	}
}

// BookUploaded is published when a new book lands in the catalog.
type BookUploaded struct {
	BaseEvent
	BookID   string `json:"book_id"`
	Filename string `json:"filename"`
	Title    string `json:"title"`
	Author   string `json:"author"`
}

// NewBookUploaded builds a BookUploaded event.
func NewBookUploaded(bookID, filename, title, author string) BookUploaded {
	return BookUploaded{
		BaseEvent: newBase("BookUploaded", bookID),
		BookID:    bookID,
		Filename:  filename,
		Title:     title,
		Author:    author,
	}
}

// BookUpdated is published when catalog metadata changes.
type BookUpdated struct {
	BaseEvent
	BookID string `json:"book_id"`
	Title  string `json:"title"`
}

// NewBookUpdated builds a BookUpdated event.
func NewBookUpdated(bookID, title string) BookUpdated {
	return BookUpdated{
		BaseEvent: newBase("BookUpdated", bookID),
		BookID:    bookID,
		Title:     title,
	}
}

// BookRated is published when a user rates a book.
type BookRated struct {
	BaseEvent
	BookID string `json:"book_id"`
	UserID string `json:"user_id"`
	Rating int    `json:"rating"`
}

// NewBookRated builds a BookRated event.
func NewBookRated(bookID, userID string, rating int) BookRated {
	return BookRated{
		BaseEvent: newBase("BookRated", bookID),
		BookID:    bookID,
		UserID:    userID,
		Rating:    rating,
	}
}

// CoverExtracted is published after a cover image is stored, whether it was
// rendered from the PDF or generated as a placeholder.
type CoverExtracted struct {
	BaseEvent
	Filename    string `json:"filename"`
	CoverKey    string `json:"cover_key"`
	Placeholder bool   `json:"placeholder"`
}

// NewCoverExtracted builds a CoverExtracted event.
func NewCoverExtracted(filename, coverKey string, placeholder bool) CoverExtracted {
	return CoverExtracted{
		BaseEvent:   newBase("CoverExtracted", filename),
		Filename:    filename,
		CoverKey:    coverKey,
		Placeholder: placeholder,
	}
}
