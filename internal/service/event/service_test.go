package event

import (
	"context"
	"testing"

	"github.com/gatherly/events-backend-go/internal/domain/attendance"
	"github.com/gatherly/events-backend-go/internal/domain/event"
	"github.com/gatherly/events-backend-go/internal/service/capacity"
	"github.com/gatherly/events-backend-go/internal/service/servicetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	service        event.EventService
	eventRepo      *servicetest.EventRepo
	attendanceRepo *servicetest.AttendanceRepo
}

func newFixture() *fixture {
	eventRepo := servicetest.NewEventRepo()
	attendanceRepo := servicetest.NewAttendanceRepo()
	ledger := capacity.NewLedger(attendanceRepo)

	return &fixture{
		service:        NewEventService(eventRepo, attendanceRepo, ledger, &servicetest.TxManager{}),
		eventRepo:      eventRepo,
		attendanceRepo: attendanceRepo,
	}
}

func validCreateRequest() event.CreateRequest {
	return event.CreateRequest{
		Name:     "Tech Summit",
		Location: "Jakarta Convention Center",
		Timezone: "Asia/Jakarta",
		StartAt:  "2026-06-10T09:00:00+07:00",
		EndAt:    "2026-06-10T17:00:00+07:00",
	}
}

func TestCreate_Success(t *testing.T) {
	f := newFixture()

	resp, err := f.service.Create(context.Background(), "org-1", "cmp-1", validCreateRequest())

	require.NoError(t, err)
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "org-1", resp.OrganizerID)
	assert.Equal(t, "cmp-1", resp.CompanyID)
	assert.Equal(t, "2026-06-10T09:00:00+07:00", resp.StartAt)
}

func TestCreate_NormalizesMixedOffsets(t *testing.T) {
	f := newFixture()
	req := validCreateRequest()
	// Same instants written in UTC; the stored window must be identical.
	req.StartAt = "2026-06-10T02:00:00Z"
	req.EndAt = "2026-06-10T10:00:00Z"

	resp, err := f.service.Create(context.Background(), "org-1", "cmp-1", req)

	require.NoError(t, err)
	assert.Equal(t, "2026-06-10T09:00:00+07:00", resp.StartAt)
	assert.Equal(t, "2026-06-10T17:00:00+07:00", resp.EndAt)
}

func TestCreate_InvertedWindow(t *testing.T) {
	f := newFixture()
	req := validCreateRequest()
	req.StartAt, req.EndAt = req.EndAt, req.StartAt

	_, err := f.service.Create(context.Background(), "org-1", "cmp-1", req)

	assert.ErrorIs(t, err, event.ErrInvalidWindow)
}

func TestCreate_ZeroAttendeeLimit(t *testing.T) {
	f := newFixture()
	req := validCreateRequest()
	limit := 0
	req.AttendeeLimit = &limit

	_, err := f.service.Create(context.Background(), "org-1", "cmp-1", req)

	assert.ErrorIs(t, err, event.ErrInvalidCapacity)
}

func TestCreate_AgendaOutOfBounds(t *testing.T) {
	f := newFixture()
	req := validCreateRequest()
	req.Agenda = []event.AgendaItemRequest{{
		Title:     "Early bird session",
		StartTime: "2026-06-10T07:00:00+07:00", // before the event starts
		EndTime:   "2026-06-10T10:00:00+07:00",
	}}

	_, err := f.service.Create(context.Background(), "org-1", "cmp-1", req)

	assert.ErrorIs(t, err, event.ErrAgendaOutOfBounds)
}

func TestCreate_MissingName(t *testing.T) {
	f := newFixture()
	req := validCreateRequest()
	req.Name = ""

	_, err := f.service.Create(context.Background(), "org-1", "cmp-1", req)

	assert.Error(t, err)
}

func TestUpdate_Success(t *testing.T) {
	f := newFixture()
	created, err := f.service.Create(context.Background(), "org-1", "cmp-1", validCreateRequest())
	require.NoError(t, err)

	req := event.UpdateRequest(validCreateRequest())
	req.Name = "Tech Summit 2026"

	resp, err := f.service.Update(context.Background(), created.ID, "org-1", req)

	require.NoError(t, err)
	assert.Equal(t, "Tech Summit 2026", resp.Name)
	assert.Equal(t, "cmp-1", resp.CompanyID)
}

func TestUpdate_NotOrganizer(t *testing.T) {
	f := newFixture()
	created, err := f.service.Create(context.Background(), "org-1", "cmp-1", validCreateRequest())
	require.NoError(t, err)

	_, err = f.service.Update(context.Background(), created.ID, "org-2", event.UpdateRequest(validCreateRequest()))

	assert.ErrorIs(t, err, event.ErrNotEventOrganizer)
}

func TestUpdate_NotFound(t *testing.T) {
	f := newFixture()

	_, err := f.service.Update(context.Background(), "missing", "org-1", event.UpdateRequest(validCreateRequest()))

	assert.ErrorIs(t, err, event.ErrEventNotFound)
}

func TestUpdate_ShrinkBelowAcceptedRejected(t *testing.T) {
	f := newFixture()
	created, err := f.service.Create(context.Background(), "org-1", "cmp-1", validCreateRequest())
	require.NoError(t, err)

	for _, pid := range []string{"prt-1", "prt-2", "prt-3"} {
		f.attendanceRepo.Seed(attendance.Attendance{
			EventID:       created.ID,
			ParticipantID: pid,
			Status:        attendance.StatusAccepted,
		})
	}

	req := event.UpdateRequest(validCreateRequest())
	limit := 2
	req.AttendeeLimit = &limit

	_, err = f.service.Update(context.Background(), created.ID, "org-1", req)

	assert.ErrorIs(t, err, event.ErrCapacityBelowCurrentLoad)
}

func TestUpdate_ShrinkIgnoresPending(t *testing.T) {
	f := newFixture()
	created, err := f.service.Create(context.Background(), "org-1", "cmp-1", validCreateRequest())
	require.NoError(t, err)

	f.attendanceRepo.Seed(attendance.Attendance{
		EventID:       created.ID,
		ParticipantID: "prt-1",
		Status:        attendance.StatusAccepted,
	})
	f.attendanceRepo.Seed(attendance.Attendance{
		EventID:       created.ID,
		ParticipantID: "prt-2",
		Status:        attendance.StatusPending,
	})

	req := event.UpdateRequest(validCreateRequest())
	limit := 1
	req.AttendeeLimit = &limit

	resp, err := f.service.Update(context.Background(), created.ID, "org-1", req)

	require.NoError(t, err)
	require.NotNil(t, resp.AttendeeLimit)
	assert.Equal(t, 1, *resp.AttendeeLimit)
}

func TestDelete_NotOrganizer(t *testing.T) {
	f := newFixture()
	created, err := f.service.Create(context.Background(), "org-1", "cmp-1", validCreateRequest())
	require.NoError(t, err)

	err = f.service.Delete(context.Background(), created.ID, "org-2")

	assert.ErrorIs(t, err, event.ErrNotEventOrganizer)
}

func TestDelete_RemovesAttendanceRecords(t *testing.T) {
	f := newFixture()
	created, err := f.service.Create(context.Background(), "org-1", "cmp-1", validCreateRequest())
	require.NoError(t, err)
	f.attendanceRepo.Seed(attendance.Attendance{
		EventID:       created.ID,
		ParticipantID: "prt-1",
		Status:        attendance.StatusAccepted,
	})
	f.attendanceRepo.Seed(attendance.Attendance{
		EventID:       created.ID,
		ParticipantID: "prt-2",
		Status:        attendance.StatusPending,
	})

	err = f.service.Delete(context.Background(), created.ID, "org-1")

	require.NoError(t, err)
	_, err = f.service.Get(context.Background(), created.ID)
	assert.ErrorIs(t, err, event.ErrEventNotFound)
	records, err := f.attendanceRepo.ListByEvent(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestGet_CountsAndSeats(t *testing.T) {
	f := newFixture()
	req := validCreateRequest()
	limit := 10
	req.AttendeeLimit = &limit

	created, err := f.service.Create(context.Background(), "org-1", "cmp-1", req)
	require.NoError(t, err)

	f.attendanceRepo.Seed(attendance.Attendance{
		EventID:       created.ID,
		ParticipantID: "prt-1",
		Status:        attendance.StatusAccepted,
	})
	f.attendanceRepo.Seed(attendance.Attendance{
		EventID:       created.ID,
		ParticipantID: "prt-2",
		Status:        attendance.StatusPending,
	})

	resp, err := f.service.Get(context.Background(), created.ID)

	require.NoError(t, err)
	assert.Equal(t, 1, resp.AcceptedCount)
	assert.Equal(t, 1, resp.PendingCount)
	require.NotNil(t, resp.AvailableSeats)
	assert.Equal(t, 9, *resp.AvailableSeats)
}

func TestAvailableSeats_UnlimitedIsNil(t *testing.T) {
	f := newFixture()
	created, err := f.service.Create(context.Background(), "org-1", "cmp-1", validCreateRequest())
	require.NoError(t, err)

	seats, err := f.service.AvailableSeats(context.Background(), created.ID)

	require.NoError(t, err)
	assert.Nil(t, seats)
}

func TestListByOrganizer(t *testing.T) {
	f := newFixture()
	_, err := f.service.Create(context.Background(), "org-1", "cmp-1", validCreateRequest())
	require.NoError(t, err)
	_, err = f.service.Create(context.Background(), "org-2", "cmp-1", validCreateRequest())
	require.NoError(t, err)

	events, err := f.service.ListByOrganizer(context.Background(), "org-1")

	require.NoError(t, err)
	assert.Len(t, events, 1)
}
