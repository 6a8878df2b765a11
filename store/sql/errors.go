package sqlstore

import (
	"net/http"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repo-activity/core"
)

func storeConfigError(message string) error {
	return goerrors.New(message, goerrors.CategoryInternal).
		WithCode(http.StatusInternalServerError).
		WithTextCode(core.ErrorCodeInternal)
}

func storeUnavailable(source error, message string) error {
	if source == nil {
		return goerrors.New(message, goerrors.CategoryExternal).
			WithCode(http.StatusServiceUnavailable).
			WithTextCode(core.ErrorCodeUnavailable)
	}
	return goerrors.Wrap(source, goerrors.CategoryExternal, message).
		WithCode(http.StatusServiceUnavailable).
		WithTextCode(core.ErrorCodeUnavailable)
}
