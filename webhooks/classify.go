package webhooks

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/goliatone/go-repo-activity/core"
)

const (
	EventTypePush        = "push"
	EventTypePullRequest = "pull_request"

	actionOpened = "opened"
	actionClosed = "closed"
)

type rawPushPayload struct {
	Ref    *string `json:"ref"`
	Pusher *struct {
		Name *string `json:"name"`
	} `json:"pusher"`
	HeadCommit *struct {
		Timestamp *string `json:"timestamp"`
	} `json:"head_commit"`
}

type rawPullRequestPayload struct {
	Action      *string `json:"action"`
	PullRequest *struct {
		Merged *bool `json:"merged"`
		User   *struct {
			Login *string `json:"login"`
		} `json:"user"`
		Head *struct {
			Ref *string `json:"ref"`
		} `json:"head"`
		Base *struct {
			Ref *string `json:"ref"`
		} `json:"base"`
		CreatedAt *string `json:"created_at"`
		MergedAt  *string `json:"merged_at"`
	} `json:"pull_request"`
}

// Classify inspects the event-type header and payload shape and produces the
// tagged event union. Only push, pull_request/opened, and merged
// pull_request/closed deliveries are actionable; everything else classifies
// as IgnoredEvent. A matched case with a missing required field is a
// malformed-payload error, never a silent ignore.
func Classify(eventType string, payload []byte) (core.Event, error) {
	switch strings.TrimSpace(eventType) {
	case EventTypePush:
		return classifyPush(payload)
	case EventTypePullRequest:
		return classifyPullRequest(payload)
	default:
		return core.IgnoredEvent{EventType: strings.TrimSpace(eventType)}, nil
	}
}

func classifyPush(payload []byte) (core.Event, error) {
	var raw rawPushPayload
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, wrapMalformedPayload(err, "webhooks: parse push payload")
	}

	var pusherName *string
	if raw.Pusher != nil {
		pusherName = raw.Pusher.Name
	}
	name, err := requireField(pusherName, "pusher.name")
	if err != nil {
		return nil, err
	}
	ref, err := requireField(raw.Ref, "ref")
	if err != nil {
		return nil, err
	}
	var commitTimestamp *string
	if raw.HeadCommit != nil {
		commitTimestamp = raw.HeadCommit.Timestamp
	}
	timestamp, err := requireField(commitTimestamp, "head_commit.timestamp")
	if err != nil {
		return nil, err
	}

	return core.PushEvent{
		PusherName:      name,
		RefName:         branchFromRef(ref),
		CommitTimestamp: timestamp,
	}, nil
}

func classifyPullRequest(payload []byte) (core.Event, error) {
	var raw rawPullRequestPayload
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, wrapMalformedPayload(err, "webhooks: parse pull_request payload")
	}

	action, err := requireField(raw.Action, "action")
	if err != nil {
		return nil, err
	}

	merged := raw.PullRequest != nil && raw.PullRequest.Merged != nil && *raw.PullRequest.Merged
	opened := action == actionOpened
	mergedClose := action == actionClosed && merged
	if !opened && !mergedClose {
		return core.IgnoredEvent{EventType: EventTypePullRequest, Action: action}, nil
	}

	if raw.PullRequest == nil {
		return nil, malformedPayloadError(
			"webhooks: pull_request payload is missing the pull_request object",
			map[string]any{"field": "pull_request"},
		)
	}
	var login, headRef, baseRef *string
	if raw.PullRequest.User != nil {
		login = raw.PullRequest.User.Login
	}
	if raw.PullRequest.Head != nil {
		headRef = raw.PullRequest.Head.Ref
	}
	if raw.PullRequest.Base != nil {
		baseRef = raw.PullRequest.Base.Ref
	}

	author, err := requireField(login, "pull_request.user.login")
	if err != nil {
		return nil, err
	}
	head, err := requireField(headRef, "pull_request.head.ref")
	if err != nil {
		return nil, err
	}
	base, err := requireField(baseRef, "pull_request.base.ref")
	if err != nil {
		return nil, err
	}

	if opened {
		createdAt, err := requireField(raw.PullRequest.CreatedAt, "pull_request.created_at")
		if err != nil {
			return nil, err
		}
		return core.PullRequestOpenedEvent{
			AuthorLogin: author,
			HeadRef:     head,
			BaseRef:     base,
			CreatedAt:   createdAt,
		}, nil
	}

	mergedAt, err := requireField(raw.PullRequest.MergedAt, "pull_request.merged_at")
	if err != nil {
		return nil, err
	}
	return core.PullRequestMergedEvent{
		AuthorLogin: author,
		HeadRef:     head,
		BaseRef:     base,
		MergedAt:    mergedAt,
	}, nil
}

func requireField(value *string, path string) (string, error) {
	if value == nil || strings.TrimSpace(*value) == "" {
		return "", malformedPayloadError(
			fmt.Sprintf("webhooks: required field %s is missing", path),
			map[string]any{"field": path},
		)
	}
	return *value, nil
}

// branchFromRef reduces "refs/heads/main" to "main".
func branchFromRef(ref string) string {
	segments := strings.Split(ref, "/")
	return segments[len(segments)-1]
}
