package federation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/quillhost/quill/db"
	"github.com/quillhost/quill/domain"
	"github.com/quillhost/quill/util"
	"go.uber.org/zap"
)

// Outcome of a follow request routed through RequestFollow.
type Outcome int

const (
	OutcomeInvalidTarget Outcome = iota
	OutcomeLocalCreated
	OutcomeLocalExisting
	OutcomeRemoteAccepted
	OutcomeRemoteRejected
	OutcomeRemoteUnreachable
)

func (o Outcome) String() string {
	switch o {
	case OutcomeLocalCreated:
		return "local-created"
	case OutcomeLocalExisting:
		return "local-existing"
	case OutcomeRemoteAccepted:
		return "remote-accepted"
	case OutcomeRemoteRejected:
		return "remote-rejected"
	case OutcomeRemoteUnreachable:
		return "remote-unreachable"
	}
	return "invalid-target"
}

// FollowResult carries the outcome plus the edge that was created or found,
// and a reason string for the failure outcomes.
type FollowResult struct {
	Outcome Outcome
	Reason  string
	Request *domain.FollowRequest
}

const (
	followDeliveryTimeout = 10 * time.Second
	exploreTimeout        = 5 * time.Second
	maxRejectBody         = 256
)

// Router decides whether a follow request stays local or is transmitted to
// a peer node's inbox. The node registry is read through the store; the
// router itself never mutates it.
type Router struct {
	store  *db.Store
	conf   *util.AppConfig
	log    *zap.SugaredLogger
	client *http.Client
}

func NewRouter(store *db.Store, conf *util.AppConfig, log *zap.SugaredLogger) *Router {
	return &Router{
		store:  store,
		conf:   conf,
		log:    log,
		client: &http.Client{Timeout: followDeliveryTimeout},
	}
}

// followActivity is the payload posted to a remote inbox.
type followActivity struct {
	Type    string       `json:"type"`
	Summary string       `json:"summary"`
	Actor   actorPayload `json:"actor"`
	Object  objectRef    `json:"object"`
}

type actorPayload struct {
	Type         string `json:"type"`
	ID           string `json:"id"`
	DisplayName  string `json:"displayName"`
	Host         string `json:"host"`
	Github       string `json:"github"`
	ProfileImage string `json:"profileImage"`
}

type objectRef struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

// RequestFollow routes a follow from actor toward target, which may be a
// bare local UUID, a full local URL or a full remote URL. The same
// affordance has to work from a UI that only holds a UUID and from a
// protocol payload that only holds a fully-qualified identifier.
func (r *Router) RequestFollow(actor *domain.Author, target string) FollowResult {
	target = util.TrimTrailingSlash(strings.TrimSpace(target))
	if target == "" {
		return FollowResult{Outcome: OutcomeInvalidTarget, Reason: "empty follow target"}
	}

	if !isAbsoluteURL(target) {
		return r.followLocal(actor, target)
	}

	if r.conf.IsOwnURL(target) {
		segments := strings.Split(target, "/")
		return r.followLocal(actor, segments[len(segments)-1])
	}

	return r.followRemote(actor, target)
}

func (r *Router) followLocal(actor *domain.Author, identifier string) FollowResult {
	followee, err := r.store.AuthorByRef(identifier)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return FollowResult{Outcome: OutcomeInvalidTarget, Reason: "author not found"}
		}
		return FollowResult{Outcome: OutcomeInvalidTarget, Reason: err.Error()}
	}
	if followee.ID == actor.ID {
		return FollowResult{Outcome: OutcomeInvalidTarget, Reason: "cannot follow yourself"}
	}
	return r.createEdge(actor, followee, OutcomeLocalCreated, OutcomeLocalExisting)
}

func (r *Router) followRemote(actor *domain.Author, target string) FollowResult {
	nodes, err := r.store.ActiveRemoteNodes()
	if err != nil {
		return FollowResult{Outcome: OutcomeRemoteUnreachable, Reason: err.Error()}
	}

	node := FindOwningNode(nodes, target)
	if node == nil {
		return FollowResult{Outcome: OutcomeInvalidTarget, Reason: "remote node not configured"}
	}

	activity := followActivity{
		Type:    "follow",
		Summary: fmt.Sprintf("%s wants to follow %s", actor.Name(), target),
		Actor: actorPayload{
			Type:         "author",
			ID:           fmt.Sprintf("%s/authors/%s/", r.conf.APIBase(), actor.ID),
			DisplayName:  actor.Name(),
			Host:         r.conf.APIBase() + "/",
			Github:       actor.Github,
			ProfileImage: actor.ProfileImage,
		},
		Object: objectRef{Type: "author", ID: target},
	}

	body, err := json.Marshal(activity)
	if err != nil {
		return FollowResult{Outcome: OutcomeRemoteUnreachable, Reason: err.Error()}
	}

	req, err := http.NewRequest(http.MethodPost, target+"/inbox/", bytes.NewReader(body))
	if err != nil {
		return FollowResult{Outcome: OutcomeInvalidTarget, Reason: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", util.GetNameAndVersion())
	if node.Username != "" {
		req.SetBasicAuth(node.Username, node.Password)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		r.log.Warnw("follow delivery failed", "target", target, "node", node.Name, "err", err)
		return FollowResult{Outcome: OutcomeRemoteUnreachable, Reason: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxRejectBody))
		r.log.Warnw("follow rejected by peer", "target", target, "node", node.Name, "status", resp.StatusCode)
		return FollowResult{
			Outcome: OutcomeRemoteRejected,
			Reason:  fmt.Sprintf("remote node returned %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet))),
		}
	}

	// The peer accepted: keep a shadow row for the remote author so the
	// edge has a stable local endpoint.
	shadow, err := r.store.UpsertRemoteAuthor(target, hostOf(target))
	if err != nil {
		return FollowResult{Outcome: OutcomeRemoteUnreachable, Reason: err.Error()}
	}

	result := r.createEdge(actor, shadow, OutcomeRemoteAccepted, OutcomeRemoteAccepted)
	r.log.Infow("follow delivered", "target", target, "node", node.Name)
	return result
}

func (r *Router) createEdge(actor, followee *domain.Author, created, existing Outcome) FollowResult {
	fr, wasCreated, err := r.store.GetOrCreateFollowRequest(actor.ID, followee.ID)
	if err != nil {
		return FollowResult{Outcome: OutcomeInvalidTarget, Reason: err.Error()}
	}
	outcome := existing
	if wasCreated {
		outcome = created
	}
	return FollowResult{Outcome: outcome, Request: fr}
}

func isAbsoluteURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%s://%s", u.Scheme, u.Host)
}
