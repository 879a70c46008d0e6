package api

import (
	"errors"
	"net/http"

	"github.com/AbdelrahmanAhmad99/Asiaporeair-sub002/internal/domain"
)

// statusFromError maps the domain error kinds onto HTTP statuses.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrSeatAlreadyAssigned),
		errors.Is(err, domain.ErrAircraftConflict),
		errors.Is(err, domain.ErrCrewConflict),
		errors.Is(err, domain.ErrStorageConflict):
		return http.StatusConflict
	case errors.Is(err, domain.ErrSeatNotOnAircraft),
		errors.Is(err, domain.ErrInvalidFlightState),
		errors.Is(err, domain.ErrAircraftNotOperational),
		errors.Is(err, domain.ErrNotQualified):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
