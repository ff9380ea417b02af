package db

import (
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/quillhost/quill/domain"
	"github.com/quillhost/quill/util"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// CreateAuthor registers a local author with a freshly minted UUID id and a
// bcrypt-hashed password.
func (s *Store) CreateAuthor(username, password, displayName, host string) (*domain.Author, error) {
	if username == "" {
		return nil, domain.ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	author := domain.Author{
		ID:           uuid.NewString(),
		Username:     username,
		DisplayName:  displayName,
		Host:         host,
		PasswordHash: string(hash),
		Active:       true,
	}
	if err := s.db.Create(&author).Error; err != nil {
		return nil, err
	}
	return &author, nil
}

// resolveCandidates builds the ordered list of primary-key candidates for an
// author identifier: the decoded string as-is, the same without a trailing
// slash, and the final path segment when the string contains one. Remote
// author ids are full URLs stored verbatim, so every candidate form has to
// be tried before giving up.
func resolveCandidates(identifier string) []string {
	decoded, err := url.PathUnescape(identifier)
	if err != nil {
		decoded = identifier
	}
	decoded = strings.TrimSpace(decoded)

	var candidates []string
	add := func(c string) {
		if c == "" {
			return
		}
		for _, existing := range candidates {
			if existing == c {
				return
			}
		}
		candidates = append(candidates, c)
	}

	add(decoded)

	trimmed := strings.TrimRight(decoded, "/")
	add(trimmed)

	if strings.Contains(trimmed, "/") {
		segments := strings.Split(trimmed, "/")
		add(segments[len(segments)-1])
	}

	return candidates
}

// AuthorByRef resolves any identifier form a caller may hold — bare UUID,
// local URL, remote URL, URL-encoded variants of each — to the matching
// author. Fails with ErrNotFound when nothing matches.
func (s *Store) AuthorByRef(identifier string) (*domain.Author, error) {
	for _, candidate := range resolveCandidates(identifier) {
		var author domain.Author
		err := s.db.First(&author, "id = ?", candidate).Error
		if err == nil {
			return &author, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			// A key the storage layer cannot handle is just another miss.
			continue
		}
	}
	return nil, domain.ErrNotFound
}

// AuthorByUsername looks up a local author by unique username.
func (s *Store) AuthorByUsername(username string) (*domain.Author, error) {
	var author domain.Author
	err := s.db.First(&author, "username = ?", username).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &author, nil
}

// ListLocalAuthors returns the active, approved authors hosted on this node.
func (s *Store) ListLocalAuthors() ([]domain.Author, error) {
	var authors []domain.Author
	err := s.db.
		Where("active = ? AND approved = ?", true, true).
		Order("username ASC").
		Find(&authors).Error
	return authors, err
}

// UpsertRemoteAuthor records a shadow row for a remote author keyed by its
// full URL id, so that follow edges toward remote targets have a stable
// local endpoint. Existing rows are returned untouched.
func (s *Store) UpsertRemoteAuthor(fqid, host string) (*domain.Author, error) {
	author := domain.Author{}
	res := s.db.
		Where(&domain.Author{ID: fqid}).
		Attrs(domain.Author{
			Username:    util.TruncateSlug(fqid, 32),
			DisplayName: "Remote Author",
			Host:        host,
			Active:      false,
			Approved:    true,
			CreatedAt:   time.Now(),
		}).
		FirstOrCreate(&author)
	if res.Error != nil {
		return nil, res.Error
	}
	return &author, nil
}

// CheckPassword verifies a local author's credentials.
func (s *Store) CheckPassword(username, password string) (*domain.Author, error) {
	author, err := s.AuthorByUsername(username)
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(author.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrNotFound
	}
	return author, nil
}

// ApproveAuthor flips the approval flag, normally an admin action.
func (s *Store) ApproveAuthor(id string) error {
	return s.db.Model(&domain.Author{}).Where("id = ?", id).Update("approved", true).Error
}
