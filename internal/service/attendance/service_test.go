package attendance

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/gatherly/events-backend-go/internal/domain/attendance"
	"github.com/gatherly/events-backend-go/internal/domain/event"
	"github.com/gatherly/events-backend-go/internal/pkg/clock"
	"github.com/gatherly/events-backend-go/internal/service/capacity"
	"github.com/gatherly/events-backend-go/internal/service/servicetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	service        attendance.AttendanceService
	eventRepo      *servicetest.EventRepo
	attendanceRepo *servicetest.AttendanceRepo
	clock          *clock.Fixed
}

func newFixture() *fixture {
	eventRepo := servicetest.NewEventRepo()
	attendanceRepo := servicetest.NewAttendanceRepo()
	ledger := capacity.NewLedger(attendanceRepo)
	clk := &clock.Fixed{T: time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)}

	return &fixture{
		service:        NewAttendanceService(attendanceRepo, eventRepo, ledger, &servicetest.TxManager{}, clk),
		eventRepo:      eventRepo,
		attendanceRepo: attendanceRepo,
		clock:          clk,
	}
}

func (f *fixture) seedEvent(joinApproval bool, limit *int, deadline *time.Time) string {
	start := f.clock.T.Add(24 * time.Hour)
	return f.eventRepo.Seed(event.Event{
		Name:          "Quarterly All-Hands",
		Timezone:      "UTC",
		StartAt:       start,
		EndAt:         start.Add(2 * time.Hour),
		JoinDeadline:  deadline,
		AttendeeLimit: limit,
		JoinApproval:  joinApproval,
		OrganizerID:   "organizer-1",
		CompanyID:     "cmp-1",
	})
}

func TestRequestJoin_DirectAdmission(t *testing.T) {
	f := newFixture()
	eventID := f.seedEvent(false, nil, nil)

	resp, err := f.service.RequestJoin(context.Background(), eventID, "prt-1")

	require.NoError(t, err)
	assert.Equal(t, string(attendance.StatusAccepted), resp.Status)
	assert.Equal(t, eventID, resp.EventID)
}

func TestRequestJoin_ApprovalQueuesPending(t *testing.T) {
	f := newFixture()
	limit := 1
	eventID := f.seedEvent(true, &limit, nil)

	resp, err := f.service.RequestJoin(context.Background(), eventID, "prt-1")

	require.NoError(t, err)
	assert.Equal(t, string(attendance.StatusPending), resp.Status)

	// A pending request does not consume the seat.
	another, err := f.service.RequestJoin(context.Background(), eventID, "prt-2")
	require.NoError(t, err)
	assert.Equal(t, string(attendance.StatusPending), another.Status)
}

func TestRequestJoin_EventNotFound(t *testing.T) {
	f := newFixture()

	_, err := f.service.RequestJoin(context.Background(), "missing", "prt-1")

	assert.ErrorIs(t, err, event.ErrEventNotFound)
}

func TestRequestJoin_Duplicate(t *testing.T) {
	f := newFixture()
	eventID := f.seedEvent(false, nil, nil)

	_, err := f.service.RequestJoin(context.Background(), eventID, "prt-1")
	require.NoError(t, err)

	_, err = f.service.RequestJoin(context.Background(), eventID, "prt-1")
	assert.ErrorIs(t, err, attendance.ErrAlreadyRequested)
}

func TestRequestJoin_DeadlinePassed(t *testing.T) {
	f := newFixture()
	deadline := f.clock.T.Add(time.Hour)
	eventID := f.seedEvent(false, nil, &deadline)

	f.clock.Advance(2 * time.Hour)

	_, err := f.service.RequestJoin(context.Background(), eventID, "prt-1")
	assert.ErrorIs(t, err, attendance.ErrJoinDeadlinePassed)
}

func TestRequestJoin_NoDeadlineStaysOpenAfterStart(t *testing.T) {
	f := newFixture()
	eventID := f.seedEvent(false, nil, nil)

	f.clock.Advance(25 * time.Hour) // past the event start

	resp, err := f.service.RequestJoin(context.Background(), eventID, "prt-1")
	require.NoError(t, err)
	assert.Equal(t, string(attendance.StatusAccepted), resp.Status)
}

func TestRequestJoin_EventFull(t *testing.T) {
	f := newFixture()
	limit := 1
	eventID := f.seedEvent(false, &limit, nil)

	_, err := f.service.RequestJoin(context.Background(), eventID, "prt-1")
	require.NoError(t, err)

	_, err = f.service.RequestJoin(context.Background(), eventID, "prt-2")
	assert.ErrorIs(t, err, attendance.ErrEventFull)
}

func TestRequestJoin_ConcurrentSingleSeat(t *testing.T) {
	f := newFixture()
	limit := 1
	eventID := f.seedEvent(false, &limit, nil)

	const joiners = 16
	var wg sync.WaitGroup
	errs := make([]error, joiners)

	for i := 0; i < joiners; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			participantID := "prt-" + string(rune('a'+i))
			_, errs[i] = f.service.RequestJoin(context.Background(), eventID, participantID)
		}(i)
	}
	wg.Wait()

	admitted := 0
	full := 0
	for _, err := range errs {
		switch {
		case err == nil:
			admitted++
		case assert.ErrorIs(t, err, attendance.ErrEventFull):
			full++
		}
	}

	assert.Equal(t, 1, admitted, "exactly one joiner gets the seat")
	assert.Equal(t, joiners-1, full)

	accepted, err := f.attendanceRepo.CountByStatus(context.Background(), eventID, attendance.StatusAccepted)
	require.NoError(t, err)
	assert.Equal(t, 1, accepted)
}

func TestReview_Accept(t *testing.T) {
	f := newFixture()
	limit := 5
	eventID := f.seedEvent(true, &limit, nil)

	_, err := f.service.RequestJoin(context.Background(), eventID, "prt-1")
	require.NoError(t, err)

	resp, err := f.service.Review(context.Background(), attendance.ReviewRequest{
		Decision:      string(attendance.DecisionAccept),
		EventID:       eventID,
		ParticipantID: "prt-1",
		ReviewerID:    "organizer-1",
	})

	require.NoError(t, err)
	assert.Equal(t, string(attendance.StatusAccepted), resp.Status)
	require.NotNil(t, resp.ReviewedBy)
	assert.Equal(t, "organizer-1", *resp.ReviewedBy)
	assert.NotNil(t, resp.ReviewedAt)
}

func TestReview_Reject(t *testing.T) {
	f := newFixture()
	eventID := f.seedEvent(true, nil, nil)

	_, err := f.service.RequestJoin(context.Background(), eventID, "prt-1")
	require.NoError(t, err)

	resp, err := f.service.Review(context.Background(), attendance.ReviewRequest{
		Decision:      string(attendance.DecisionReject),
		EventID:       eventID,
		ParticipantID: "prt-1",
		ReviewerID:    "organizer-1",
	})

	require.NoError(t, err)
	assert.Equal(t, string(attendance.StatusRejected), resp.Status)
}

func TestReview_InvalidDecision(t *testing.T) {
	f := newFixture()

	_, err := f.service.Review(context.Background(), attendance.ReviewRequest{
		Decision:      "maybe",
		EventID:       "evt-1",
		ParticipantID: "prt-1",
		ReviewerID:    "organizer-1",
	})

	assert.Error(t, err)
}

func TestReview_NotOrganizer(t *testing.T) {
	f := newFixture()
	eventID := f.seedEvent(true, nil, nil)

	_, err := f.service.RequestJoin(context.Background(), eventID, "prt-1")
	require.NoError(t, err)

	_, err = f.service.Review(context.Background(), attendance.ReviewRequest{
		Decision:      string(attendance.DecisionAccept),
		EventID:       eventID,
		ParticipantID: "prt-1",
		ReviewerID:    "someone-else",
	})

	assert.ErrorIs(t, err, event.ErrNotEventOrganizer)
}

func TestReview_ApprovalNotRequired(t *testing.T) {
	f := newFixture()
	eventID := f.seedEvent(false, nil, nil)

	_, err := f.service.Review(context.Background(), attendance.ReviewRequest{
		Decision:      string(attendance.DecisionAccept),
		EventID:       eventID,
		ParticipantID: "prt-1",
		ReviewerID:    "organizer-1",
	})

	assert.ErrorIs(t, err, attendance.ErrApprovalNotRequired)
}

func TestReview_AlreadyReviewed(t *testing.T) {
	f := newFixture()
	eventID := f.seedEvent(true, nil, nil)

	_, err := f.service.RequestJoin(context.Background(), eventID, "prt-1")
	require.NoError(t, err)

	req := attendance.ReviewRequest{
		Decision:      string(attendance.DecisionReject),
		EventID:       eventID,
		ParticipantID: "prt-1",
		ReviewerID:    "organizer-1",
	}
	_, err = f.service.Review(context.Background(), req)
	require.NoError(t, err)

	_, err = f.service.Review(context.Background(), req)
	assert.ErrorIs(t, err, attendance.ErrAlreadyReviewed)
}

func TestReview_AcceptOnFullEventLeavesPending(t *testing.T) {
	f := newFixture()
	limit := 1
	eventID := f.seedEvent(true, &limit, nil)

	_, err := f.service.RequestJoin(context.Background(), eventID, "prt-1")
	require.NoError(t, err)
	_, err = f.service.RequestJoin(context.Background(), eventID, "prt-2")
	require.NoError(t, err)

	_, err = f.service.Review(context.Background(), attendance.ReviewRequest{
		Decision:      string(attendance.DecisionAccept),
		EventID:       eventID,
		ParticipantID: "prt-1",
		ReviewerID:    "organizer-1",
	})
	require.NoError(t, err)

	_, err = f.service.Review(context.Background(), attendance.ReviewRequest{
		Decision:      string(attendance.DecisionAccept),
		EventID:       eventID,
		ParticipantID: "prt-2",
		ReviewerID:    "organizer-1",
	})
	assert.ErrorIs(t, err, attendance.ErrEventFull)

	// The losing request stays pending and can still be rejected.
	rec, err := f.attendanceRepo.GetByEventAndParticipant(context.Background(), eventID, "prt-2")
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusPending, rec.Status)
}

func TestListByEvent_OrganizerOnly(t *testing.T) {
	f := newFixture()
	eventID := f.seedEvent(false, nil, nil)

	_, err := f.service.ListByEvent(context.Background(), eventID, "not-the-organizer")
	assert.ErrorIs(t, err, event.ErrNotEventOrganizer)
}

func TestListByEvent_IncludesParticipantFields(t *testing.T) {
	f := newFixture()
	eventID := f.seedEvent(false, nil, nil)
	f.attendanceRepo.Participants["prt-1"] = servicetest.ParticipantInfo{
		Name:  "Dina Maharani",
		Email: "dina@example.com",
	}

	_, err := f.service.RequestJoin(context.Background(), eventID, "prt-1")
	require.NoError(t, err)

	records, err := f.service.ListByEvent(context.Background(), eventID, "organizer-1")

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Dina Maharani", records[0].ParticipantName)
	assert.Equal(t, "dina@example.com", records[0].ParticipantEmail)
}
