// Package core contains the canonical repo-activity domain contracts and
// entities. Lower-level adapters (store, transport, command, query) depend on
// this package; core must not depend on any of them.
package core
