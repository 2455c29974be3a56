package event

import "time"

// LoadZone resolves the event's declared IANA zone.
func LoadZone(name string) (*time.Location, error) {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, ErrInvalidTimezone
	}
	return loc, nil
}

// InZone re-expresses t in loc without changing the instant. Inputs may arrive
// with any offset; conversion is applied identically on create and update so
// re-validation is consistent. Pure, no storage access.
func InZone(t time.Time, loc *time.Location) time.Time {
	return t.In(loc)
}

// ValidateWindow checks the temporal and capacity constraints of an event
// window. Rules apply in order, first failure wins:
//
//  1. startAt strictly before endAt
//  2. joinDeadline (when set) not after startAt
//  3. attendeeLimit (when set) at least 1
//  4. every agenda item contained in [startAt, endAt] and not inverted
//
// Callers must have converted all instants with InZone first.
func ValidateWindow(startAt, endAt time.Time, joinDeadline *time.Time, attendeeLimit *int, items []AgendaItem) error {
	if !startAt.Before(endAt) {
		return ErrInvalidWindow
	}

	if joinDeadline != nil && joinDeadline.After(startAt) {
		return ErrInvalidJoinDeadline
	}

	if attendeeLimit != nil && *attendeeLimit < 1 {
		return ErrInvalidCapacity
	}

	for _, item := range items {
		if item.StartTime.Before(startAt) || item.EndTime.After(endAt) {
			return ErrAgendaOutOfBounds
		}
		if item.StartTime.After(item.EndTime) {
			return ErrAgendaInverted
		}
	}

	return nil
}

// Normalize converts the event's own instants and its agenda items into the
// event zone, returning the zone for further use.
func Normalize(ev *Event, items []AgendaItem) (*time.Location, error) {
	loc, err := LoadZone(ev.Timezone)
	if err != nil {
		return nil, err
	}

	ev.StartAt = InZone(ev.StartAt, loc)
	ev.EndAt = InZone(ev.EndAt, loc)
	if ev.JoinDeadline != nil {
		d := InZone(*ev.JoinDeadline, loc)
		ev.JoinDeadline = &d
	}
	for i := range items {
		items[i].StartTime = InZone(items[i].StartTime, loc)
		items[i].EndTime = InZone(items[i].EndTime, loc)
	}

	return loc, nil
}
