package db

import (
	"github.com/quillhost/quill/domain"
)

// Likes are set membership in a join table, not rows with their own
// lifecycle. Appending an existing member is a no-op, which makes liking
// idempotent for free.

// AddEntryLike records that liker likes the entry.
func (s *Store) AddEntryLike(entryID string, liker *domain.Author) error {
	return s.db.Model(&domain.Entry{ID: entryID}).Association("LikedBy").Append(liker)
}

// AddCommentLike records that liker likes the comment.
func (s *Store) AddCommentLike(commentID string, liker *domain.Author) error {
	return s.db.Model(&domain.Comment{ID: commentID}).Association("LikedBy").Append(liker)
}

// EntryLikers lists the authors who liked an entry.
func (s *Store) EntryLikers(entryID string) ([]domain.Author, error) {
	var likers []domain.Author
	err := s.db.Model(&domain.Entry{ID: entryID}).Association("LikedBy").Find(&likers)
	return likers, err
}

// CommentLikers lists the authors who liked a comment.
func (s *Store) CommentLikers(commentID string) ([]domain.Author, error) {
	var likers []domain.Author
	err := s.db.Model(&domain.Comment{ID: commentID}).Association("LikedBy").Find(&likers)
	return likers, err
}

// HasLikedEntry reports membership in an entry's liked-by set.
func (s *Store) HasLikedEntry(entryID, authorID string) bool {
	var n int64
	s.db.Table("entry_likes").
		Where("entry_id = ? AND author_id = ?", entryID, authorID).
		Count(&n)
	return n > 0
}

// HasLikedComment reports membership in a comment's liked-by set.
func (s *Store) HasLikedComment(commentID, authorID string) bool {
	var n int64
	s.db.Table("comment_likes").
		Where("comment_id = ? AND author_id = ?", commentID, authorID).
		Count(&n)
	return n > 0
}

// EntriesLikedBy lists the non-deleted entries an author has liked, newest
// published first.
func (s *Store) EntriesLikedBy(authorID string) ([]domain.Entry, error) {
	var entries []domain.Entry
	err := s.db.
		Joins("JOIN entry_likes ON entry_likes.entry_id = entries.id").
		Where("entry_likes.author_id = ?", authorID).
		Where("entries.visibility <> ?", domain.VisibilityDeleted).
		Preload("Author").
		Order("entries.published DESC").
		Find(&entries).Error
	return entries, err
}

// CommentsLikedBy lists the comments an author has liked, newest first.
func (s *Store) CommentsLikedBy(authorID string) ([]domain.Comment, error) {
	var comments []domain.Comment
	err := s.db.
		Joins("JOIN comment_likes ON comment_likes.comment_id = comments.id").
		Where("comment_likes.author_id = ?", authorID).
		Preload("Author").
		Preload("Entry").
		Preload("Entry.Author").
		Order("comments.created_at DESC").
		Find(&comments).Error
	return comments, err
}
