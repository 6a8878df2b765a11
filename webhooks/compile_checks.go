package webhooks

import (
	"github.com/goliatone/go-repo-activity/core"
)

var _ core.SignatureVerifier = HubSignatureVerifier{}
