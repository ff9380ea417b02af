package federation

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/quillhost/quill/domain"
)

// RemoteAuthor is the author representation peers serve from their
// authors-list endpoint.
type RemoteAuthor struct {
	Type         string `json:"type"`
	ID           string `json:"id"`
	DisplayName  string `json:"displayName"`
	Host         string `json:"host"`
	Github       string `json:"github"`
	ProfileImage string `json:"profileImage"`
	Web          string `json:"web"`
}

type remoteAuthorsDoc struct {
	Type    string         `json:"type"`
	Authors []RemoteAuthor `json:"authors"`
}

// ExploreRemoteAuthors fans out to every active peer and collects their
// authors. A slow or broken peer is skipped and logged; the others still
// contribute, so a partial federation never blanks the whole listing.
func (r *Router) ExploreRemoteAuthors() []RemoteAuthor {
	nodes, err := r.store.ActiveRemoteNodes()
	if err != nil {
		r.log.Errorw("could not load remote nodes", "err", err)
		return nil
	}

	client := &http.Client{Timeout: exploreTimeout}
	var collected []RemoteAuthor

	for _, node := range nodes {
		authors, err := fetchAuthors(client, &node)
		if err != nil {
			r.log.Warnw("skipping peer during explore", "node", node.Name, "err", err)
			continue
		}
		collected = append(collected, authors...)
	}

	return collected
}

func fetchAuthors(client *http.Client, node *domain.RemoteNode) ([]RemoteAuthor, error) {
	endpoint := strings.TrimRight(node.BaseURL, "/") + "/authors/"

	req, err := http.NewRequest(http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if node.Username != "" {
		req.SetBasicAuth(node.Username, node.Password)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("peer returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, err
	}

	var doc remoteAuthorsDoc
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, err
	}

	return doc.Authors, nil
}
