package webhooks

import (
	"net/http"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repo-activity/core"
)

func badSignatureError(message string) error {
	return goerrors.New(message, goerrors.CategoryAuthz).
		WithCode(http.StatusForbidden).
		WithTextCode(core.ErrorCodeBadSignature)
}

func malformedPayloadError(message string, metadata map[string]any) error {
	err := goerrors.New(message, goerrors.CategoryBadInput).
		WithCode(http.StatusBadRequest).
		WithTextCode(core.ErrorCodeBadInput)
	if len(metadata) > 0 {
		err.WithMetadata(metadata)
	}
	return err
}

func wrapMalformedPayload(source error, message string) error {
	if source == nil {
		return malformedPayloadError(message, nil)
	}
	return goerrors.Wrap(source, goerrors.CategoryBadInput, message).
		WithCode(http.StatusBadRequest).
		WithTextCode(core.ErrorCodeBadInput)
}

func storeUnavailableError(source error, message string) error {
	if source == nil {
		return goerrors.New(message, goerrors.CategoryExternal).
			WithCode(http.StatusServiceUnavailable).
			WithTextCode(core.ErrorCodeUnavailable)
	}
	return goerrors.Wrap(source, goerrors.CategoryExternal, message).
		WithCode(http.StatusServiceUnavailable).
		WithTextCode(core.ErrorCodeUnavailable)
}
