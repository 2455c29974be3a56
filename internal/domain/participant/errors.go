package participant

import "errors"

var (
	ErrParticipantNotFound = errors.New("participant not found")
	ErrAlreadyParticipant  = errors.New("user is already a participant of this company")
)
