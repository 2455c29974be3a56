package attendance

import "errors"

var (
	ErrAttendanceNotFound  = errors.New("attendance record not found")
	ErrAlreadyRequested    = errors.New("participant already requested to join this event")
	ErrJoinDeadlinePassed  = errors.New("join deadline has passed")
	ErrEventFull           = errors.New("event has no seats left")
	ErrAlreadyReviewed     = errors.New("attendance request has already been reviewed")
	ErrApprovalNotRequired = errors.New("event does not require join approval")
)
