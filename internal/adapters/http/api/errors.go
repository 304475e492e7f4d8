package api

import (
	"errors"
	"net/http"

	"github.com/okian/futsal/internal/adapters/repository"
	service "github.com/okian/futsal/internal/app"
	"github.com/okian/futsal/internal/domain/allocation"
	"github.com/okian/futsal/internal/domain/scoreboard"
	"github.com/okian/futsal/internal/domain/swap"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest          = errors.New("bad request")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrInsufficientPlayers = errors.New("insufficient players")
	ErrUnavailable         = errors.New("allocation unavailable")
	ErrInternal            = errors.New("internal error")
)

// Error carries the failing operation, the API kind that decides the HTTP
// status, and the underlying cause.
type Error struct {
	Op   string
	Kind error
	Err  error
}

func (e *Error) Error() string {
	switch {
	case e.Err != nil:
		return e.Op + ": " + e.Err.Error()
	case e.Kind != nil:
		return e.Op + ": " + e.Kind.Error()
	default:
		return e.Op
	}
}

// Unwrap exposes both the kind and the cause to errors.Is.
func (e *Error) Unwrap() []error {
	out := make([]error, 0, 2)
	if e.Kind != nil {
		out = append(out, e.Kind)
	}
	if e.Err != nil {
		out = append(out, e.Err)
	}
	return out
}

// NewKind returns an Error with no underlying cause.
func NewKind(op string, kind error) error {
	return &Error{Op: op, Kind: kind}
}

// Wrap classifies err by the domain sentinels it matches.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Kind: classify(err), Err: err}
}

// WrapKind wraps err with an explicit kind.
func WrapKind(op string, kind, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Kind: kind, Err: err}
}

func classify(err error) error {
	switch {
	case errors.Is(err, service.ErrInvalidPlayer),
		errors.Is(err, service.ErrUnknownAction),
		errors.Is(err, allocation.ErrInvalidTeamCount),
		errors.Is(err, allocation.ErrUnknownStrategy),
		errors.Is(err, allocation.ErrUnknownMode),
		errors.Is(err, scoreboard.ErrUnknownSide):
		return ErrBadRequest
	case errors.Is(err, repository.ErrNotFound),
		errors.Is(err, service.ErrSessionNotFound),
		errors.Is(err, service.ErrNoAllocation),
		errors.Is(err, swap.ErrSwapTargetNotFound):
		return ErrNotFound
	case errors.Is(err, repository.ErrDuplicateName),
		errors.Is(err, scoreboard.ErrScoreboardNotStarted),
		errors.Is(err, scoreboard.ErrRotationUnavailable):
		return ErrConflict
	case errors.Is(err, allocation.ErrInsufficientPlayers):
		return ErrInsufficientPlayers
	case errors.Is(err, service.ErrAllocationUnavailable):
		return ErrUnavailable
	default:
		return ErrInternal
	}
}

// statusOf maps an error to its HTTP status and wire code.
func statusOf(err error) (int, string) {
	var apiErr *Error
	kind := ErrInternal
	if errors.As(err, &apiErr) && apiErr.Kind != nil {
		kind = apiErr.Kind
	} else if err != nil {
		kind = classify(err)
	}
	switch kind {
	case ErrBadRequest:
		return http.StatusBadRequest, "bad_request"
	case ErrNotFound:
		return http.StatusNotFound, "not_found"
	case ErrConflict:
		return http.StatusConflict, "conflict"
	case ErrInsufficientPlayers:
		return http.StatusUnprocessableEntity, "insufficient_players"
	case ErrUnavailable:
		return http.StatusServiceUnavailable, "allocation_unavailable"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}
