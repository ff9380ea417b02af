package db

import (
	"errors"

	"github.com/google/uuid"
	"github.com/quillhost/quill/domain"
	"gorm.io/gorm"
)

// GetOrCreateFollowRequest records the edge follower -> followee, or finds
// the existing one. Creation rides on the unique pair index, so two
// concurrent requests for the same pair cannot both insert; the loser of
// the race is handed the winner's row and reported as "existing".
// The second return value is true when a new edge was created.
func (s *Store) GetOrCreateFollowRequest(followerID, followeeID string) (*domain.FollowRequest, bool, error) {
	var fr domain.FollowRequest
	res := s.db.
		Where(&domain.FollowRequest{FollowerID: followerID, FolloweeID: followeeID}).
		Attrs(domain.FollowRequest{ID: uuid.NewString(), Status: domain.FollowPending}).
		FirstOrCreate(&fr)
	if res.Error != nil {
		// Unique-pair collision: another request inserted first. Re-read.
		var existing domain.FollowRequest
		err := s.db.
			Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
			First(&existing).Error
		if err == nil {
			return &existing, false, nil
		}
		return nil, false, res.Error
	}
	return &fr, res.RowsAffected > 0, nil
}

// FollowRequestFor fetches the edge for a pair, if any.
func (s *Store) FollowRequestFor(followerID, followeeID string) (*domain.FollowRequest, error) {
	var fr domain.FollowRequest
	err := s.db.
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		First(&fr).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &fr, nil
}

// SetFollowStatus moves an edge to APPROVED or DENIED.
func (s *Store) SetFollowStatus(followerID, followeeID string, status domain.FollowStatus) error {
	res := s.db.Model(&domain.FollowRequest{}).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// RemoveFollow deletes the edge follower -> followee, whatever its status.
func (s *Store) RemoveFollow(followerID, followeeID string) error {
	res := s.db.
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Delete(&domain.FollowRequest{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// HasApprovedFollow reports whether follower holds an APPROVED edge toward
// followee. Note the direction: the FRIENDS visibility rule asks whether
// the content owner follows the requester.
func (s *Store) HasApprovedFollow(followerID, followeeID string) bool {
	var n int64
	s.db.Model(&domain.FollowRequest{}).
		Where("follower_id = ? AND followee_id = ? AND status = ?", followerID, followeeID, domain.FollowApproved).
		Count(&n)
	return n > 0
}

// ListFollowers returns authors with an APPROVED edge toward the given author.
func (s *Store) ListFollowers(authorID string) ([]domain.Author, error) {
	var authors []domain.Author
	err := s.db.
		Joins("JOIN follow_requests ON follow_requests.follower_id = authors.id").
		Where("follow_requests.followee_id = ? AND follow_requests.status = ?", authorID, domain.FollowApproved).
		Find(&authors).Error
	return authors, err
}

// ListFollowing returns authors the given author has an APPROVED edge toward.
func (s *Store) ListFollowing(authorID string) ([]domain.Author, error) {
	var authors []domain.Author
	err := s.db.
		Joins("JOIN follow_requests ON follow_requests.followee_id = authors.id").
		Where("follow_requests.follower_id = ? AND follow_requests.status = ?", authorID, domain.FollowApproved).
		Find(&authors).Error
	return authors, err
}
