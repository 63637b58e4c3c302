// Package transfer holds the pure lifecycle and aggregation logic for money
// transfers: the status state machine, dashboard statistics, and the
// calendar-bucketed report reductions. Nothing here touches the database.
package transfer

import (
	apperrors "tramex/internal/errors"
	"tramex/internal/models"
)

// allowedTransitions is the full transition table. Cancellation is only
// permitted before validation; completed and cancelled are terminal.
var allowedTransitions = map[models.TransferStatus][]models.TransferStatus{
	models.StatusPending:   {models.StatusValidated, models.StatusCancelled},
	models.StatusValidated: {models.StatusCompleted},
	models.StatusCompleted: {},
	models.StatusCancelled: {},
}

// CanTransition reports whether a transfer may move from one status to
// another.
func CanTransition(from, to models.TransferStatus) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// CheckTransition returns ErrInvalidTransition (with the offending pair in
// the message) when the requested move is not in the transition table.
func CheckTransition(from, to models.TransferStatus) error {
	if !CanTransition(from, to) {
		return apperrors.WithMessage(apperrors.ErrInvalidTransition,
			"cannot change status from "+string(from)+" to "+string(to))
	}
	return nil
}

// NextStatuses returns the statuses reachable from the given one. Handlers
// use it to expose only legal actions; role checks stay with the caller.
func NextStatuses(from models.TransferStatus) []models.TransferStatus {
	return allowedTransitions[from]
}
