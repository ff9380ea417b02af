package domain

import (
	"fmt"
	"time"
)

// Visibility levels for entries. DELETED is a tombstone: the row stays, but
// every standard read path treats the entry as missing, owner included.
type Visibility string

const (
	VisibilityPublic  Visibility = "PUBLIC"
	VisibilityFriends Visibility = "FRIENDS"
	VisibilityDeleted Visibility = "DELETED"
)

// ContentType tags the encoding of entry and comment bodies. Only the four
// listed encodings are accepted anywhere.
type ContentType string

const (
	ContentTypePlain    ContentType = "text/plain"
	ContentTypeMarkdown ContentType = "text/markdown"
	ContentTypePNG      ContentType = "image/png;base64"
	ContentTypeJPEG     ContentType = "image/jpeg;base64"
)

// ParseContentType validates a content-type tag against the recognized set.
func ParseContentType(s string) (ContentType, error) {
	switch ContentType(s) {
	case ContentTypePlain, ContentTypeMarkdown, ContentTypePNG, ContentTypeJPEG:
		return ContentType(s), nil
	case "":
		return ContentTypePlain, nil
	}
	return "", fmt.Errorf("unsupported content type %q: %w", s, ErrInvalidInput)
}

// ParseVisibility validates a visibility tag. DELETED is not settable
// through creation; it is reached only via the soft-delete path.
func ParseVisibility(s string) (Visibility, error) {
	switch Visibility(s) {
	case VisibilityPublic, VisibilityFriends:
		return Visibility(s), nil
	case "":
		return VisibilityPublic, nil
	}
	return "", fmt.Errorf("unsupported visibility %q: %w", s, ErrInvalidInput)
}

// Entry is a published content item owned by one author.
type Entry struct {
	ID          string      `gorm:"primaryKey;type:varchar(36)"`
	Title       string      `gorm:"type:varchar(255)"`
	Description string      `gorm:"type:varchar(255)"`
	Content     string      `gorm:"type:text"`
	ContentType ContentType `gorm:"type:varchar(32)"`
	Visibility  Visibility  `gorm:"type:varchar(16);index"`
	Published   time.Time   `gorm:"index:idx_entry_published"`
	AuthorID    string      `gorm:"type:varchar(255);index:idx_entry_author;not null"`
	Author      Author
	LikedBy     []Author `gorm:"many2many:entry_likes"`
	UpdatedAt   time.Time
}

func (Entry) TableName() string { return "entries" }

// Comment on an entry. Immutable once created.
type Comment struct {
	ID          string      `gorm:"primaryKey;type:varchar(36)"`
	EntryID     string      `gorm:"type:varchar(36);index:idx_comment_entry;not null"`
	Entry       Entry
	AuthorID    string      `gorm:"type:varchar(255);index;not null"`
	Author      Author
	Content     string      `gorm:"type:text"`
	ContentType ContentType `gorm:"type:varchar(32)"`
	CreatedAt   time.Time   `gorm:"index"`
	LikedBy     []Author    `gorm:"many2many:comment_likes"`
}

func (Comment) TableName() string { return "comments" }
