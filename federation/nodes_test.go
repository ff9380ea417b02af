package federation

import (
	"testing"

	"github.com/quillhost/quill/domain"
)

func TestFindOwningNode(t *testing.T) {
	nodes := []domain.RemoteNode{
		{Name: "alpha", BaseURL: "https://alpha.example.com/api/", Active: true},
		{Name: "beta", BaseURL: "https://beta.example.com/api", Active: true},
		{Name: "asleep", BaseURL: "https://asleep.example.com/api/", Active: false},
	}

	tests := []struct {
		name     string
		url      string
		wantNode string
	}{
		{"alpha author url", "https://alpha.example.com/api/authors/abc", "alpha"},
		{"beta author url", "https://beta.example.com/api/authors/xyz/", "beta"},
		{"base url itself", "https://alpha.example.com/api", "alpha"},
		{"unknown host", "https://gamma.example.com/api/authors/abc", ""},
		{"inactive node", "https://asleep.example.com/api/authors/abc", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindOwningNode(nodes, tt.url)
			if tt.wantNode == "" {
				if got != nil {
					t.Errorf("expected no owning node, got %s", got.Name)
				}
				return
			}
			if got == nil {
				t.Fatalf("expected node %s, got nil", tt.wantNode)
			}
			if got.Name != tt.wantNode {
				t.Errorf("expected node %s, got %s", tt.wantNode, got.Name)
			}
		})
	}
}

func TestFindOwningNodeFirstMatchWins(t *testing.T) {
	// Overlapping prefixes are a configuration error; the lookup just takes
	// the first match in iteration order.
	nodes := []domain.RemoteNode{
		{Name: "broad", BaseURL: "https://shared.example.com/", Active: true},
		{Name: "narrow", BaseURL: "https://shared.example.com/api/", Active: true},
	}

	got := FindOwningNode(nodes, "https://shared.example.com/api/authors/abc")
	if got == nil || got.Name != "broad" {
		t.Errorf("expected first configured node to win, got %v", got)
	}
}
