package db

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/quillhost/quill/domain"
	"gorm.io/gorm"
)

// CreateComment stores a new comment under an entry. The caller is expected
// to have checked entry visibility already.
func (s *Store) CreateComment(entry *domain.Entry, author *domain.Author, content, contentType string) (*domain.Comment, error) {
	if content == "" {
		return nil, domain.ErrInvalidInput
	}
	ct, err := domain.ParseContentType(contentType)
	if err != nil {
		return nil, err
	}

	comment := domain.Comment{
		ID:          uuid.NewString(),
		EntryID:     entry.ID,
		AuthorID:    author.ID,
		Content:     content,
		ContentType: ct,
		CreatedAt:   time.Now(),
	}
	if err := s.db.Create(&comment).Error; err != nil {
		return nil, err
	}
	comment.Entry = *entry
	comment.Author = *author
	return &comment, nil
}

// CommentByID loads a comment with its author and parent entry.
func (s *Store) CommentByID(id string) (*domain.Comment, error) {
	var comment domain.Comment
	err := s.db.
		Preload("Author").
		Preload("Entry").
		Preload("Entry.Author").
		First(&comment, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// CommentsForEntry lists an entry's comments oldest first. Listing narrows
// further than single-item visibility: on a FRIENDS entry an authenticated
// requester who is not the entry author only sees their own comments and
// the entry author's.
func (s *Store) CommentsForEntry(entry *domain.Entry, requester *domain.Author) ([]domain.Comment, error) {
	q := s.db.
		Where("entry_id = ?", entry.ID).
		Preload("Author").
		Order("created_at ASC")

	if entry.Visibility == domain.VisibilityFriends && requester != nil && requester.ID != entry.AuthorID {
		q = q.Where("author_id IN ?", []string{requester.ID, entry.AuthorID})
	}

	var comments []domain.Comment
	err := q.Find(&comments).Error
	return comments, err
}
