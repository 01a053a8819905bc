package httpadapter

import (
	"net/http"

	"github.com/mkoval/legal-clause-analysis/internal/core/domain"
)

// mapError translates semantic error kinds into the exact status codes and
// response messages of the upload contract.
func mapError(err error) (int, string) {
	switch {
	case domain.IsKind(err, domain.ErrNoFile):
		return http.StatusBadRequest, "No file provided"
	case domain.IsKind(err, domain.ErrInvalidFileType):
		return http.StatusBadRequest, "Invalid file type"
	case domain.IsKind(err, domain.ErrNoReadableText):
		return http.StatusUnprocessableEntity, "No readable text found."
	case domain.IsKind(err, domain.ErrNoClauses):
		return http.StatusUnprocessableEntity, "No clauses detected."
	case domain.IsKind(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, "invalid input"
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

func rejectionOutcome(err error) string {
	switch {
	case domain.IsKind(err, domain.ErrInvalidFileType):
		return "invalid_type"
	case domain.IsKind(err, domain.ErrNoReadableText):
		return "no_text"
	case domain.IsKind(err, domain.ErrNoClauses):
		return "no_clauses"
	default:
		return "error"
	}
}
