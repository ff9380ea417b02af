package domain

import (
	"encoding/base64"
	"errors"
	"testing"
)

func TestLikeIDRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		ref  LikeRef
	}{
		{"entry like", LikeRef{LikeKindEntry, "0d3edc80-3b25-4d6d-8a7e-94f0a92b5a10", "a7c8f3b1-4e2d-4f6a-9c1b-2d3e4f5a6b7c"}},
		{"comment like", LikeRef{LikeKindComment, "11111111-2222-3333-4444-555555555555", "66666666-7777-8888-9999-aaaaaaaaaaaa"}},
		{"remote author id", LikeRef{LikeKindEntry, "0d3edc80-3b25-4d6d-8a7e-94f0a92b5a10", "https://other.example.com/api/authors/abc"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token := tt.ref.Encode()

			decoded, err := DecodeLikeID(token)
			if err != nil {
				t.Fatalf("DecodeLikeID failed: %v", err)
			}

			if decoded != tt.ref {
				t.Errorf("round trip mismatch: got %+v, want %+v", decoded, tt.ref)
			}
		})
	}
}

func TestEncodeLikeIDIsURLSafe(t *testing.T) {
	ref := LikeRef{LikeKindEntry, "0d3edc80-3b25-4d6d-8a7e-94f0a92b5a10", "a7c8f3b1-4e2d-4f6a-9c1b-2d3e4f5a6b7c"}
	token := ref.Encode()

	for _, c := range token {
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case c == '-' || c == '_':
		default:
			t.Errorf("token contains non-URL-safe character %q", c)
		}
	}
}

func TestDecodeLikeIDAcceptsPadding(t *testing.T) {
	ref := LikeRef{LikeKindComment, "11111111-2222-3333-4444-555555555555", "66666666-7777-8888-9999-aaaaaaaaaaaa"}
	token := ref.Encode()

	// Re-pad the token the way a strict base64 encoder would
	padded := token
	for len(padded)%4 != 0 {
		padded += "="
	}

	decoded, err := DecodeLikeID(padded)
	if err != nil {
		t.Fatalf("DecodeLikeID with padding failed: %v", err)
	}
	if decoded != ref {
		t.Errorf("got %+v, want %+v", decoded, ref)
	}
}

func TestDecodeLikeIDMalformed(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"random text", "definitely-not-a-token"},
		{"bad base64", "!!!%%%"},
		{"non-utf8 payload", base64.RawURLEncoding.EncodeToString([]byte{0xff, 0xfe, 0xfd})},
		{"wrong field count low", base64.RawURLEncoding.EncodeToString([]byte("entry|only-one-sep"))},
		{"wrong field count high", base64.RawURLEncoding.EncodeToString([]byte("entry|a|b|c"))},
		{"unknown kind", base64.RawURLEncoding.EncodeToString([]byte("post|a|b"))},
		{"empty object id", base64.RawURLEncoding.EncodeToString([]byte("entry||b"))},
		{"empty author id", base64.RawURLEncoding.EncodeToString([]byte("entry|a|"))},
		{"truncated token", LikeRef{LikeKindEntry, "0d3edc80", "a7c8f3b1"}.Encode()[:3]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeLikeID(tt.token)
			if !errors.Is(err, ErrNotFound) {
				t.Errorf("DecodeLikeID(%q) error = %v, want ErrNotFound", tt.token, err)
			}
		})
	}
}
