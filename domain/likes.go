package domain

import (
	"encoding/base64"
	"strings"
	"unicode/utf8"
)

// A like is not a stored row: it is membership of an author in an entry's
// or comment's liked-by set. Its external identity is a reversible token
// over (kind, object id, liking author id).

// LikeKind is the vocabulary of likeable objects.
type LikeKind string

const (
	LikeKindEntry   LikeKind = "entry"
	LikeKindComment LikeKind = "comment"
)

// The separator never appears in UUIDs or in the kind vocabulary, so the
// decoded payload splits unambiguously.
const likeIDSeparator = "|"

// LikeRef identifies one like as a pure value.
type LikeRef struct {
	Kind     LikeKind
	ObjectID string
	AuthorID string
}

// Encode packs the ref into a URL-safe token with padding stripped.
func (r LikeRef) Encode() string {
	raw := string(r.Kind) + likeIDSeparator + r.ObjectID + likeIDSeparator + r.AuthorID
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

// DecodeLikeID reverses Encode. Every malformed token, whatever the defect,
// maps to ErrNotFound: a bad token is indistinguishable from a like that
// does not exist.
func DecodeLikeID(token string) (LikeRef, error) {
	if token == "" {
		return LikeRef{}, ErrNotFound
	}

	// Accept tokens with or without padding.
	data, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(token, "="))
	if err != nil {
		return LikeRef{}, ErrNotFound
	}

	if !utf8.Valid(data) {
		return LikeRef{}, ErrNotFound
	}

	parts := strings.Split(string(data), likeIDSeparator)
	if len(parts) != 3 {
		return LikeRef{}, ErrNotFound
	}

	ref := LikeRef{Kind: LikeKind(parts[0]), ObjectID: parts[1], AuthorID: parts[2]}
	if ref.ObjectID == "" || ref.AuthorID == "" {
		return LikeRef{}, ErrNotFound
	}

	switch ref.Kind {
	case LikeKindEntry, LikeKindComment:
		return ref, nil
	}
	return LikeRef{}, ErrNotFound
}
