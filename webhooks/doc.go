// Package webhooks implements the GitHub ingestion pipeline: signature
// verification, event classification, summary formatting, and the processor
// that drives one delivery from raw request to stored entry.
package webhooks
