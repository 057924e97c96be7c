package httpadapter

import (
	"net/http"

	"github.com/maestrofurniture/docgen/internal/core/domain"
)

func mapErrorToHTTPStatus(err error) int {
	switch {
	case domain.IsKind(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case domain.IsKind(err, domain.ErrNotFound):
		return http.StatusNotFound
	case domain.IsKind(err, domain.ErrRecordFrozen):
		return http.StatusConflict
	case domain.IsKind(err, domain.ErrRenderInProgress):
		return http.StatusConflict
	case domain.IsKind(err, domain.ErrNoTemplate):
		return http.StatusPreconditionFailed
	case domain.IsKind(err, domain.ErrTemporary):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
