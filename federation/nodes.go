package federation

import (
	"strings"

	"github.com/quillhost/quill/domain"
)

// FindOwningNode returns the first configured node whose base URL is a
// prefix of the given URL, or nil when no node owns it. Overlapping base
// URLs are a configuration error; the lookup takes the first match in
// iteration order and does not try to disambiguate.
func FindOwningNode(nodes []domain.RemoteNode, rawURL string) *domain.RemoteNode {
	for i := range nodes {
		node := &nodes[i]
		if !node.Active {
			continue
		}
		base := strings.TrimRight(node.BaseURL, "/")
		if base == "" {
			continue
		}
		if strings.HasPrefix(rawURL, base) {
			return node
		}
	}
	return nil
}
