package webhooks

import (
	"fmt"

	"github.com/goliatone/go-repo-activity/core"
)

// FormatEvent renders the single human-readable summary for an actionable
// event. The second return is false for IgnoredEvent, which produces no
// summary. The switch is exhaustive over the core.Event union; an unknown
// variant is a programming error surfaced loudly.
func FormatEvent(event core.Event) (string, bool, error) {
	switch typed := event.(type) {
	case core.PushEvent:
		timestamp, err := FormatTimestamp(typed.CommitTimestamp)
		if err != nil {
			return "", false, err
		}
		return fmt.Sprintf(
			"%q pushed to %q on %s",
			typed.PusherName, typed.RefName, timestamp,
		), true, nil
	case core.PullRequestOpenedEvent:
		timestamp, err := FormatTimestamp(typed.CreatedAt)
		if err != nil {
			return "", false, err
		}
		return fmt.Sprintf(
			"%q submitted a pull request from %q to %q on %s",
			typed.AuthorLogin, typed.HeadRef, typed.BaseRef, timestamp,
		), true, nil
	case core.PullRequestMergedEvent:
		timestamp, err := FormatTimestamp(typed.MergedAt)
		if err != nil {
			return "", false, err
		}
		return fmt.Sprintf(
			"%q merged branch %q to %q on %s",
			typed.AuthorLogin, typed.HeadRef, typed.BaseRef, timestamp,
		), true, nil
	case core.IgnoredEvent:
		return "", false, nil
	default:
		return "", false, fmt.Errorf("webhooks: unhandled event variant %T", event)
	}
}
