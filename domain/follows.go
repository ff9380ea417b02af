package domain

import "time"

// FollowStatus of a follow request edge.
type FollowStatus string

const (
	FollowPending  FollowStatus = "PENDING"
	FollowApproved FollowStatus = "APPROVED"
	FollowDenied   FollowStatus = "DENIED"
)

// FollowRequest is a directed edge follower -> followee. The composite
// unique index on the pair makes creation an atomic check-and-insert: a
// second request for the same pair finds the existing row instead of
// inserting a duplicate.
// idx_follow_pair = (follower_id, followee_id)
type FollowRequest struct {
	ID         string       `gorm:"primaryKey;type:varchar(36)"`
	FollowerID string       `gorm:"type:varchar(255);index:idx_follow_follower;index:idx_follow_pair,unique;not null"`
	FolloweeID string       `gorm:"type:varchar(255);not null;index:idx_follow_pair,unique"`
	Follower   Author       `gorm:"foreignKey:FollowerID"`
	Followee   Author       `gorm:"foreignKey:FolloweeID"`
	Status     FollowStatus `gorm:"type:varchar(16)"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (FollowRequest) TableName() string { return "follow_requests" }
