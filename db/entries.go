package db

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/quillhost/quill/domain"
	"gorm.io/gorm"
)

// CreateEntry validates and stores a new entry for its author.
func (s *Store) CreateEntry(author *domain.Author, title, description, content, contentType, visibility string) (*domain.Entry, error) {
	ct, err := domain.ParseContentType(contentType)
	if err != nil {
		return nil, err
	}
	vis, err := domain.ParseVisibility(visibility)
	if err != nil {
		return nil, err
	}

	entry := domain.Entry{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		Content:     content,
		ContentType: ct,
		Visibility:  vis,
		Published:   time.Now(),
		AuthorID:    author.ID,
	}
	if err := s.db.Create(&entry).Error; err != nil {
		return nil, err
	}
	entry.Author = *author
	return &entry, nil
}

// EntryByID loads an entry with its author. DELETED entries are reported as
// missing to every caller, the owner included; the tombstone row is only
// reachable through internal paths.
func (s *Store) EntryByID(id string) (*domain.Entry, error) {
	var entry domain.Entry
	err := s.db.Preload("Author").First(&entry, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if entry.Visibility == domain.VisibilityDeleted {
		return nil, domain.ErrNotFound
	}
	return &entry, nil
}

// CanViewEntry decides whether requester may see the entry. Rules, first
// match wins:
//  1. DELETED is visible to nobody.
//  2. PUBLIC is visible to anybody, anonymous included.
//  3. FRIENDS is visible to the owner, and to a requester the owner has an
//     APPROVED outbound follow toward.
//
// A nil requester is an anonymous caller.
func (s *Store) CanViewEntry(entry *domain.Entry, requester *domain.Author) bool {
	switch entry.Visibility {
	case domain.VisibilityDeleted:
		return false
	case domain.VisibilityPublic:
		return true
	case domain.VisibilityFriends:
		if requester == nil {
			return false
		}
		if requester.ID == entry.AuthorID {
			return true
		}
		return s.HasApprovedFollow(entry.AuthorID, requester.ID)
	}
	return false
}

// VisibleEntry loads an entry and applies the visibility rules, collapsing
// "denied" and "missing" into the same ErrNotFound.
func (s *Store) VisibleEntry(id string, requester *domain.Author) (*domain.Entry, error) {
	entry, err := s.EntryByID(id)
	if err != nil {
		return nil, err
	}
	if !s.CanViewEntry(entry, requester) {
		return nil, domain.ErrNotFound
	}
	return entry, nil
}

// ListPublicEntries returns all PUBLIC entries, newest first.
func (s *Store) ListPublicEntries() ([]domain.Entry, error) {
	var entries []domain.Entry
	err := s.db.
		Where("visibility = ?", domain.VisibilityPublic).
		Preload("Author").
		Order("published DESC").
		Find(&entries).Error
	return entries, err
}

// ListEntriesByAuthor returns an author's non-deleted entries, newest first.
func (s *Store) ListEntriesByAuthor(authorID string) ([]domain.Entry, error) {
	var entries []domain.Entry
	err := s.db.
		Where("author_id = ? AND visibility <> ?", authorID, domain.VisibilityDeleted).
		Preload("Author").
		Order("published DESC").
		Find(&entries).Error
	return entries, err
}

// SoftDeleteEntry tombstones an entry. The row is kept; every standard read
// path stops returning it.
func (s *Store) SoftDeleteEntry(id string) error {
	res := s.db.Model(&domain.Entry{}).
		Where("id = ? AND visibility <> ?", id, domain.VisibilityDeleted).
		Update("visibility", domain.VisibilityDeleted)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
