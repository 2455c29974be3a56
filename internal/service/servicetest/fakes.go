// Package servicetest provides in-memory fakes for the service tests. The
// transaction fake serializes callbacks with a mutex, which gives the tests
// the same mutual exclusion the row lock gives the real repositories.
package servicetest

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gatherly/events-backend-go/internal/domain/attendance"
	"github.com/gatherly/events-backend-go/internal/domain/auth"
	"github.com/gatherly/events-backend-go/internal/domain/company"
	"github.com/gatherly/events-backend-go/internal/domain/event"
	"github.com/gatherly/events-backend-go/internal/domain/invitation"
	"github.com/gatherly/events-backend-go/internal/domain/participant"
	"github.com/gatherly/events-backend-go/internal/domain/user"
	"github.com/gatherly/events-backend-go/internal/pkg/database"
	"github.com/gatherly/events-backend-go/internal/pkg/email"
)

var (
	_ database.TxManager                = (*TxManager)(nil)
	_ event.EventRepository             = (*EventRepo)(nil)
	_ attendance.AttendanceRepository   = (*AttendanceRepo)(nil)
	_ invitation.InvitationRepository   = (*InvitationRepo)(nil)
	_ user.UserRepository               = (*UserRepo)(nil)
	_ participant.ParticipantRepository = (*ParticipantRepo)(nil)
	_ company.CompanyRepository         = (*CompanyRepo)(nil)
	_ auth.RefreshTokenRepository       = (*RefreshTokenRepo)(nil)
	_ email.EmailService                = (*EmailRecorder)(nil)
)

// TxManager serializes transactional callbacks
type TxManager struct {
	mu sync.Mutex
}

func (m *TxManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
}

// EventRepo is an in-memory event.EventRepository
type EventRepo struct {
	mu     sync.Mutex
	seq    int
	events map[string]event.Event
	agenda map[string][]event.AgendaItem
}

func NewEventRepo() *EventRepo {
	return &EventRepo{
		events: make(map[string]event.Event),
		agenda: make(map[string][]event.AgendaItem),
	}
}

// Seed inserts an event directly, returning its id
func (r *EventRepo) Seed(ev event.Event) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ev.ID == "" {
		r.seq++
		ev.ID = fmt.Sprintf("evt-%d", r.seq)
	}
	r.events[ev.ID] = ev
	return ev.ID
}

func (r *EventRepo) Create(ctx context.Context, ev event.Event, items []event.AgendaItem) (event.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	ev.ID = fmt.Sprintf("evt-%d", r.seq)
	ev.CreatedAt = time.Now()
	ev.UpdatedAt = ev.CreatedAt
	r.events[ev.ID] = ev
	r.agenda[ev.ID] = storeAgenda(ev.ID, items)
	return ev, nil
}

func (r *EventRepo) GetByID(ctx context.Context, id string) (event.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ev, ok := r.events[id]
	if !ok {
		return event.Event{}, event.ErrEventNotFound
	}
	return ev, nil
}

func (r *EventRepo) GetByIDForUpdate(ctx context.Context, id string) (event.Event, error) {
	// The serializing TxManager stands in for the row lock.
	return r.GetByID(ctx, id)
}

func (r *EventRepo) Update(ctx context.Context, ev event.Event, items []event.AgendaItem) (event.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.events[ev.ID]
	if !ok {
		return event.Event{}, event.ErrEventNotFound
	}
	ev.CreatedAt = stored.CreatedAt
	ev.UpdatedAt = time.Now()
	r.events[ev.ID] = ev
	r.agenda[ev.ID] = storeAgenda(ev.ID, items)
	return ev, nil
}

func (r *EventRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.events[id]; !ok {
		return event.ErrEventNotFound
	}
	delete(r.events, id)
	delete(r.agenda, id)
	return nil
}

func (r *EventRepo) ListByOrganizer(ctx context.Context, organizerID string) ([]event.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []event.Event
	for _, ev := range r.events {
		if ev.OrganizerID == organizerID {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (r *EventRepo) ListAgenda(ctx context.Context, eventID string) ([]event.AgendaItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.agenda[eventID], nil
}

func storeAgenda(eventID string, items []event.AgendaItem) []event.AgendaItem {
	out := make([]event.AgendaItem, 0, len(items))
	for i, it := range items {
		it.ID = fmt.Sprintf("%s-agenda-%d", eventID, i+1)
		it.EventID = eventID
		out = append(out, it)
	}
	return out
}

// ParticipantInfo supplies display fields for ListByEvent
type ParticipantInfo struct {
	Name  string
	Email string
}

// AttendanceRepo is an in-memory attendance.AttendanceRepository
type AttendanceRepo struct {
	mu           sync.Mutex
	seq          int
	records      map[string]attendance.Attendance
	Participants map[string]ParticipantInfo // participant id -> display fields
}

func NewAttendanceRepo() *AttendanceRepo {
	return &AttendanceRepo{
		records:      make(map[string]attendance.Attendance),
		Participants: make(map[string]ParticipantInfo),
	}
}

// Seed inserts a record directly, returning its id
func (r *AttendanceRepo) Seed(rec attendance.Attendance) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if rec.ID == "" {
		r.seq++
		rec.ID = fmt.Sprintf("att-%d", r.seq)
	}
	r.records[rec.ID] = rec
	return rec.ID
}

func (r *AttendanceRepo) Create(ctx context.Context, rec attendance.Attendance) (attendance.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.records {
		if existing.EventID == rec.EventID && existing.ParticipantID == rec.ParticipantID {
			return attendance.Attendance{}, attendance.ErrAlreadyRequested
		}
	}
	r.seq++
	rec.ID = fmt.Sprintf("att-%d", r.seq)
	rec.CreatedAt = time.Now()
	rec.UpdatedAt = rec.CreatedAt
	r.records[rec.ID] = rec
	return rec, nil
}

func (r *AttendanceRepo) GetByEventAndParticipant(ctx context.Context, eventID, participantID string) (attendance.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rec := range r.records {
		if rec.EventID == eventID && rec.ParticipantID == participantID {
			return rec, nil
		}
	}
	return attendance.Attendance{}, attendance.ErrAttendanceNotFound
}

func (r *AttendanceRepo) UpdateStatus(ctx context.Context, id string, from, to attendance.Status, reviewerID *string) (attendance.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[id]
	if !ok || rec.Status != from {
		return attendance.Attendance{}, attendance.ErrAlreadyReviewed
	}
	now := time.Now()
	rec.Status = to
	rec.ReviewedBy = reviewerID
	rec.ReviewedAt = &now
	rec.UpdatedAt = now
	r.records[id] = rec
	return rec, nil
}

func (r *AttendanceRepo) ListByEvent(ctx context.Context, eventID string) ([]attendance.AttendanceWithParticipant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []attendance.AttendanceWithParticipant
	for _, rec := range r.records {
		if rec.EventID != eventID {
			continue
		}
		info := r.Participants[rec.ParticipantID]
		out = append(out, attendance.AttendanceWithParticipant{
			Attendance:       rec,
			ParticipantName:  info.Name,
			ParticipantEmail: info.Email,
		})
	}
	return out, nil
}

func (r *AttendanceRepo) CountByStatus(ctx context.Context, eventID string, status attendance.Status) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, rec := range r.records {
		if rec.EventID == eventID && rec.Status == status {
			count++
		}
	}
	return count, nil
}

func (r *AttendanceRepo) DeleteByIDs(ctx context.Context, ids []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range ids {
		delete(r.records, id)
	}
	return nil
}

// InvitationRepo is an in-memory invitation.InvitationRepository
type InvitationRepo struct {
	mu          sync.Mutex
	seq         int
	invitations map[string]invitation.Invitation
	now         func() time.Time
}

func NewInvitationRepo(now func() time.Time) *InvitationRepo {
	return &InvitationRepo{
		invitations: make(map[string]invitation.Invitation),
		now:         now,
	}
}

// Seed inserts an invitation directly, returning its id
func (r *InvitationRepo) Seed(inv invitation.Invitation) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if inv.ID == "" {
		r.seq++
		inv.ID = fmt.Sprintf("inv-%d", r.seq)
	}
	r.invitations[inv.ID] = inv
	return inv.ID
}

func (r *InvitationRepo) Create(ctx context.Context, inv invitation.Invitation) (invitation.Invitation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	inv.ID = fmt.Sprintf("inv-%d", r.seq)
	inv.CreatedAt = r.now()
	inv.UpdatedAt = inv.CreatedAt
	r.invitations[inv.ID] = inv
	return inv, nil
}

func (r *InvitationRepo) GetByToken(ctx context.Context, token string) (invitation.Invitation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, inv := range r.invitations {
		if inv.Token == token {
			return inv, nil
		}
	}
	return invitation.Invitation{}, invitation.ErrInvitationNotFound
}

func (r *InvitationRepo) GetByID(ctx context.Context, id string) (invitation.Invitation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	inv, ok := r.invitations[id]
	if !ok {
		return invitation.Invitation{}, invitation.ErrInvitationNotFound
	}
	return inv, nil
}

func (r *InvitationRepo) FindLiveByEmailAndCompany(ctx context.Context, email, companyID string) (invitation.Invitation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var newest *invitation.Invitation
	for id := range r.invitations {
		inv := r.invitations[id]
		if inv.Email != email || inv.CompanyID != companyID || !inv.IsLive(r.now()) {
			continue
		}
		if newest == nil || inv.CreatedAt.After(newest.CreatedAt) {
			newest = &inv
		}
	}
	if newest == nil {
		return invitation.Invitation{}, invitation.ErrInvitationNotFound
	}
	return *newest, nil
}

func (r *InvitationRepo) MarkAccepted(ctx context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, inv := range r.invitations {
		if inv.Token != token {
			continue
		}
		if inv.Status != invitation.StatusPending {
			return invitation.ErrInvitationAlreadyUsed
		}
		now := r.now()
		inv.Status = invitation.StatusAccepted
		inv.AcceptedAt = &now
		inv.UpdatedAt = now
		r.invitations[id] = inv
		return nil
	}
	return invitation.ErrInvitationAlreadyUsed
}

func (r *InvitationRepo) MarkRevoked(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	inv, ok := r.invitations[id]
	if !ok || inv.Status != invitation.StatusPending {
		return invitation.ErrInvitationNotFound
	}
	now := r.now()
	inv.Status = invitation.StatusRevoked
	inv.RevokedAt = &now
	inv.UpdatedAt = now
	r.invitations[id] = inv
	return nil
}

func (r *InvitationRepo) UpdateToken(ctx context.Context, id, newToken string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	inv, ok := r.invitations[id]
	if !ok {
		return invitation.ErrInvitationNotFound
	}
	inv.Token = newToken
	inv.ExpiresAt = expiresAt
	inv.UpdatedAt = r.now()
	r.invitations[id] = inv
	return nil
}

// UserRepo is an in-memory user.UserRepository
type UserRepo struct {
	mu    sync.Mutex
	seq   int
	users map[string]user.User
}

func NewUserRepo() *UserRepo {
	return &UserRepo{users: make(map[string]user.User)}
}

// Seed inserts a user directly, returning its id
func (r *UserRepo) Seed(u user.User) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u.ID == "" {
		r.seq++
		u.ID = fmt.Sprintf("usr-%d", r.seq)
	}
	r.users[u.ID] = u
	return u.ID
}

func (r *UserRepo) Create(ctx context.Context, u user.User) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return user.User{}, user.ErrEmailAlreadyExists
		}
	}
	r.seq++
	u.ID = fmt.Sprintf("usr-%d", r.seq)
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	r.users[u.ID] = u
	return u, nil
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (r *UserRepo) LinkCompany(ctx context.Context, id, companyID string, role user.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return user.ErrUserNotFound
	}
	u.CompanyID = &companyID
	u.Role = role
	r.users[id] = u
	return nil
}

func (r *UserRepo) LinkGoogleAccount(ctx context.Context, googleID, email string) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	provider := "google"
	for id, u := range r.users {
		if u.Email == email {
			u.OAuthProvider = &provider
			u.OAuthProviderID = &googleID
			u.EmailVerified = true
			r.users[id] = u
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (r *UserRepo) SetVerificationToken(ctx context.Context, id, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return user.ErrUserNotFound
	}
	now := time.Now()
	u.EmailVerificationToken = &token
	u.EmailVerificationSentAt = &now
	r.users[id] = u
	return nil
}

func (r *UserRepo) VerifyEmail(ctx context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, u := range r.users {
		if u.EmailVerificationToken != nil && *u.EmailVerificationToken == token {
			u.EmailVerified = true
			u.EmailVerificationToken = nil
			r.users[id] = u
			return nil
		}
	}
	return user.ErrUserNotFound
}

// ParticipantRepo is an in-memory participant.ParticipantRepository
type ParticipantRepo struct {
	mu           sync.Mutex
	seq          int
	participants map[string]participant.Participant
}

func NewParticipantRepo() *ParticipantRepo {
	return &ParticipantRepo{participants: make(map[string]participant.Participant)}
}

// Seed inserts a participant directly, returning its id
func (r *ParticipantRepo) Seed(p participant.Participant) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == "" {
		r.seq++
		p.ID = fmt.Sprintf("prt-%d", r.seq)
	}
	r.participants[p.ID] = p
	return p.ID
}

func (r *ParticipantRepo) Create(ctx context.Context, p participant.Participant) (participant.Participant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.participants {
		if existing.UserID == p.UserID && existing.CompanyID == p.CompanyID {
			return participant.Participant{}, participant.ErrAlreadyParticipant
		}
	}
	r.seq++
	p.ID = fmt.Sprintf("prt-%d", r.seq)
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	r.participants[p.ID] = p
	return p, nil
}

func (r *ParticipantRepo) GetByID(ctx context.Context, id string) (participant.Participant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.participants[id]
	if !ok {
		return participant.Participant{}, participant.ErrParticipantNotFound
	}
	return p, nil
}

func (r *ParticipantRepo) GetByUserAndCompany(ctx context.Context, userID, companyID string) (participant.Participant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.participants {
		if p.UserID == userID && p.CompanyID == companyID {
			return p, nil
		}
	}
	return participant.Participant{}, participant.ErrParticipantNotFound
}

// CompanyRepo is an in-memory company.CompanyRepository
type CompanyRepo struct {
	mu        sync.Mutex
	seq       int
	companies map[string]company.Company
}

func NewCompanyRepo() *CompanyRepo {
	return &CompanyRepo{companies: make(map[string]company.Company)}
}

// Seed inserts a company directly, returning its id
func (r *CompanyRepo) Seed(c company.Company) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c.ID == "" {
		r.seq++
		c.ID = fmt.Sprintf("cmp-%d", r.seq)
	}
	r.companies[c.ID] = c
	return c.ID
}

func (r *CompanyRepo) Create(ctx context.Context, c company.Company) (company.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	c.ID = fmt.Sprintf("cmp-%d", r.seq)
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	r.companies[c.ID] = c
	return c, nil
}

func (r *CompanyRepo) GetByID(ctx context.Context, id string) (company.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.companies[id]
	if !ok {
		return company.Company{}, company.ErrCompanyNotFound
	}
	return c, nil
}

// RefreshTokenRepo is an in-memory auth.RefreshTokenRepository
type RefreshTokenRepo struct {
	mu     sync.Mutex
	tokens map[string]refreshTokenRecord
}

type refreshTokenRecord struct {
	userID    string
	expiresAt time.Time
	revoked   bool
}

func NewRefreshTokenRepo() *RefreshTokenRepo {
	return &RefreshTokenRepo{tokens: make(map[string]refreshTokenRecord)}
}

func (r *RefreshTokenRepo) Create(ctx context.Context, token, userID string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens[token] = refreshTokenRecord{userID: userID, expiresAt: expiresAt}
	return nil
}

func (r *RefreshTokenRepo) IsRevoked(ctx context.Context, token string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.tokens[token]
	if !ok {
		return true, nil
	}
	return rec.revoked, nil
}

func (r *RefreshTokenRepo) Revoke(ctx context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if rec, ok := r.tokens[token]; ok {
		rec.revoked = true
		r.tokens[token] = rec
	}
	return nil
}

// Has reports whether a token row still exists, revoked or not
func (r *RefreshTokenRepo) Has(token string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.tokens[token]
	return ok
}

func (r *RefreshTokenRepo) DeleteExpired(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	for token, rec := range r.tokens {
		if rec.expiresAt.Before(now) {
			delete(r.tokens, token)
		}
	}
	return nil
}

// EmailRecorder captures outbound mail instead of sending it
type EmailRecorder struct {
	mu            sync.Mutex
	Invitations   []RecordedInvitationEmail
	Verifications []RecordedVerificationEmail
	FailWith      error // when set, every send returns this error
}

type RecordedInvitationEmail struct {
	To             string
	InviterName    string
	CompanyName    string
	InvitationLink string
	ExpiresAt      string
}

type RecordedVerificationEmail struct {
	To               string
	VerificationLink string
}

func (r *EmailRecorder) SendInvitation(to, inviterName, companyName, invitationLink, expiresAt string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailWith != nil {
		return r.FailWith
	}
	r.Invitations = append(r.Invitations, RecordedInvitationEmail{
		To:             to,
		InviterName:    inviterName,
		CompanyName:    companyName,
		InvitationLink: invitationLink,
		ExpiresAt:      expiresAt,
	})
	return nil
}

func (r *EmailRecorder) SendVerification(to, verificationLink string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailWith != nil {
		return r.FailWith
	}
	r.Verifications = append(r.Verifications, RecordedVerificationEmail{
		To:               to,
		VerificationLink: verificationLink,
	})
	return nil
}
