package changelogerrors

import (
	"net/http"

	"github.com/yonginsolar/erp/internal/shared/apperror"
)

var (
	ErrEntryNotFound = apperror.New(
		apperror.CodeNotFound,
		"Changelog entry not found",
		http.StatusNotFound,
	)

	ErrVersionAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"A changelog entry with this version already exists",
		http.StatusConflict,
	)

	ErrInvalidReleaseDate = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid release_date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
)
