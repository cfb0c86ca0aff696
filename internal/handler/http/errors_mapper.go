package http

import (
	"errors"
	"net/http"

	"github.com/mpetrenko/shroud/internal/service"
	"github.com/mpetrenko/shroud/internal/store"
	"github.com/mpetrenko/shroud/internal/validators"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided: http.StatusBadRequest,
	service.ErrWeakPassword:        http.StatusBadRequest,
	service.ErrAlertIDRequired:     http.StatusBadRequest,
	service.ErrNoProtectedApps:     http.StatusBadRequest,
	service.ErrTokenRequired:       http.StatusBadRequest,

	service.ErrWrongPassword:  http.StatusUnauthorized,
	service.ErrTokenIsExpired: http.StatusUnauthorized,

	service.ErrPinsNotConfigured: http.StatusNotFound,

	service.ErrChallengeExpired: http.StatusGone,
	service.ErrChallengeLocked:  http.StatusTooManyRequests,
	service.ErrCodeMismatch:     http.StatusBadRequest,

	service.ErrPushUnavailable: http.StatusServiceUnavailable,

	validators.ErrBothPinsRequired: http.StatusBadRequest,
	validators.ErrPinLength:        http.StatusBadRequest,
	validators.ErrPinNotDigits:     http.StatusBadRequest,
	validators.ErrPinsMustDiffer:   http.StatusBadRequest,

	store.ErrEmailAlreadyExists:  http.StatusConflict,
	store.ErrNoUserWasFound:      http.StatusNotFound,
	store.ErrAlertNotFound:       http.StatusNotFound,
	store.ErrNoChallengeWasFound: http.StatusNotFound,

	store.ErrBuildingSQLQuery:     http.StatusInternalServerError,
	store.ErrExecutingQuery:       http.StatusInternalServerError,
	store.ErrExecutingStatement:   http.StatusInternalServerError,
	store.ErrBeginningTransaction: http.StatusInternalServerError,
	store.ErrCommitingTransaction: http.StatusInternalServerError,
	store.ErrScanningRow:          http.StatusInternalServerError,
	store.ErrScanningRows:         http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
