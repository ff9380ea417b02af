package domain

import (
	"errors"
	"testing"
)

func TestParseContentType(t *testing.T) {
	valid := []string{"text/plain", "text/markdown", "image/png;base64", "image/jpeg;base64"}
	for _, s := range valid {
		t.Run(s, func(t *testing.T) {
			ct, err := ParseContentType(s)
			if err != nil {
				t.Fatalf("ParseContentType(%q) failed: %v", s, err)
			}
			if string(ct) != s {
				t.Errorf("got %q, want %q", ct, s)
			}
		})
	}

	invalid := []string{"image/invalid;base64", "text/html", "application/json", "image/png"}
	for _, s := range invalid {
		t.Run(s, func(t *testing.T) {
			_, err := ParseContentType(s)
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("ParseContentType(%q) error = %v, want ErrInvalidInput", s, err)
			}
		})
	}
}

func TestParseContentTypeDefault(t *testing.T) {
	ct, err := ParseContentType("")
	if err != nil {
		t.Fatalf("ParseContentType(\"\") failed: %v", err)
	}
	if ct != ContentTypePlain {
		t.Errorf("got %q, want text/plain", ct)
	}
}

func TestParseVisibility(t *testing.T) {
	if v, err := ParseVisibility("PUBLIC"); err != nil || v != VisibilityPublic {
		t.Errorf("ParseVisibility(PUBLIC) = %v, %v", v, err)
	}
	if v, err := ParseVisibility("FRIENDS"); err != nil || v != VisibilityFriends {
		t.Errorf("ParseVisibility(FRIENDS) = %v, %v", v, err)
	}
	if v, err := ParseVisibility(""); err != nil || v != VisibilityPublic {
		t.Errorf("ParseVisibility(\"\") = %v, %v", v, err)
	}

	// DELETED is only reachable through soft delete, never via input
	if _, err := ParseVisibility("DELETED"); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("ParseVisibility(DELETED) error = %v, want ErrInvalidInput", err)
	}
	if _, err := ParseVisibility("UNLISTED"); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("ParseVisibility(UNLISTED) error = %v, want ErrInvalidInput", err)
	}
}
