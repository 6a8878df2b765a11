// Package transport exposes the activity feed over HTTP: the webhook intake
// endpoint, the recent-events read endpoint, and the embedded feed page.
package transport
