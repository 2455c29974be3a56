package auth

import (
	"context"
	"testing"
	"time"

	"github.com/gatherly/events-backend-go/internal/domain/auth"
	"github.com/gatherly/events-backend-go/internal/domain/invitation"
	"github.com/gatherly/events-backend-go/internal/domain/user"
	"github.com/gatherly/events-backend-go/internal/pkg/clock"
	"github.com/gatherly/events-backend-go/internal/pkg/jwt"
	invitationservice "github.com/gatherly/events-backend-go/internal/service/invitation"
	"github.com/gatherly/events-backend-go/internal/service/servicetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	service         auth.AuthService
	userRepo        *servicetest.UserRepo
	companyRepo     *servicetest.CompanyRepo
	participantRepo *servicetest.ParticipantRepo
	invitationRepo  *servicetest.InvitationRepo
	refreshRepo     *servicetest.RefreshTokenRepo
	email           *servicetest.EmailRecorder
	clock           *clock.Fixed
}

func newFixture() *fixture {
	clk := &clock.Fixed{T: time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)}
	userRepo := servicetest.NewUserRepo()
	companyRepo := servicetest.NewCompanyRepo()
	participantRepo := servicetest.NewParticipantRepo()
	invitationRepo := servicetest.NewInvitationRepo(clk.Now)
	refreshRepo := servicetest.NewRefreshTokenRepo()
	recorder := &servicetest.EmailRecorder{}
	txManager := &servicetest.TxManager{}

	invitationSvc := invitationservice.NewInvitationService(
		invitationRepo, userRepo, participantRepo, companyRepo, recorder,
		txManager, clk, 7*24*time.Hour, "http://localhost:3000",
	)

	jwtService := jwt.NewJWTService("test-secret-key", "1h", "168h")

	return &fixture{
		service: NewAuthService(
			userRepo, companyRepo, participantRepo, refreshRepo,
			invitationSvc, jwtService, recorder, txManager, "http://localhost:3000",
		),
		userRepo:        userRepo,
		companyRepo:     companyRepo,
		participantRepo: participantRepo,
		invitationRepo:  invitationRepo,
		refreshRepo:     refreshRepo,
		email:           recorder,
		clock:           clk,
	}
}

func (f *fixture) seedInvitation(email string) invitation.Invitation {
	token := "6ba7b810-9dad-41d1-80b4-00c04fd430c8"
	id := f.invitationRepo.Seed(invitation.Invitation{
		Email:     email,
		CompanyID: "cmp-1",
		Token:     token,
		Status:    invitation.StatusPending,
		ExpiresAt: f.clock.T.Add(7 * 24 * time.Hour),
	})
	inv, _ := f.invitationRepo.GetByID(context.Background(), id)
	return inv
}

func TestRegisterOrganizer_CreatesCompanyAndUser(t *testing.T) {
	f := newFixture()

	resp, err := f.service.RegisterOrganizer(context.Background(), auth.RegisterOrganizerRequest{
		CompanyName: "Acme",
		FullName:    "Rizky Pratama",
		Email:       "Rizky@Acme.io",
		Password:    "s3cret-pass",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)

	u, err := f.userRepo.GetByEmail(context.Background(), "rizky@acme.io")
	require.NoError(t, err)
	assert.Equal(t, user.RoleOrganizer, u.Role)
	require.NotNil(t, u.CompanyID)

	_, err = f.companyRepo.GetByID(context.Background(), *u.CompanyID)
	assert.NoError(t, err)

	require.Len(t, f.email.Verifications, 1)
	assert.Equal(t, "rizky@acme.io", f.email.Verifications[0].To)
}

func TestRegisterOrganizer_ShortPassword(t *testing.T) {
	f := newFixture()

	_, err := f.service.RegisterOrganizer(context.Background(), auth.RegisterOrganizerRequest{
		CompanyName: "Acme",
		FullName:    "Rizky Pratama",
		Email:       "rizky@acme.io",
		Password:    "short",
	})

	assert.Error(t, err)
}

func TestRegisterParticipant_ConsumesInvitation(t *testing.T) {
	f := newFixture()
	inv := f.seedInvitation("dina@example.com")

	resp, err := f.service.RegisterParticipant(context.Background(), auth.RegisterParticipantRequest{
		InvitationToken: inv.Token,
		FullName:        "Dina Maharani",
		Email:           "dina@example.com",
		Password:        "s3cret-pass",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)

	u, err := f.userRepo.GetByEmail(context.Background(), "dina@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.RoleParticipant, u.Role)
	require.NotNil(t, u.CompanyID)
	assert.Equal(t, "cmp-1", *u.CompanyID)

	_, err = f.participantRepo.GetByUserAndCompany(context.Background(), u.ID, "cmp-1")
	assert.NoError(t, err)

	stored, err := f.invitationRepo.GetByID(context.Background(), inv.ID)
	require.NoError(t, err)
	assert.Equal(t, invitation.StatusAccepted, stored.Status)
}

func TestRegisterParticipant_EmailMismatch(t *testing.T) {
	f := newFixture()
	inv := f.seedInvitation("dina@example.com")

	_, err := f.service.RegisterParticipant(context.Background(), auth.RegisterParticipantRequest{
		InvitationToken: inv.Token,
		FullName:        "Someone Else",
		Email:           "other@example.com",
		Password:        "s3cret-pass",
	})

	assert.ErrorIs(t, err, invitation.ErrEmailMismatch)

	stored, err := f.invitationRepo.GetByID(context.Background(), inv.ID)
	require.NoError(t, err)
	assert.Equal(t, invitation.StatusPending, stored.Status, "token survives the failed registration")
}

func TestRegisterParticipant_ExpiredInvitation(t *testing.T) {
	f := newFixture()
	inv := f.seedInvitation("dina@example.com")

	f.clock.Advance(8 * 24 * time.Hour)

	_, err := f.service.RegisterParticipant(context.Background(), auth.RegisterParticipantRequest{
		InvitationToken: inv.Token,
		FullName:        "Dina Maharani",
		Email:           "dina@example.com",
		Password:        "s3cret-pass",
	})

	assert.ErrorIs(t, err, invitation.ErrInvitationExpired)
}

func TestRegisterParticipant_UsedInvitation(t *testing.T) {
	f := newFixture()
	inv := f.seedInvitation("dina@example.com")

	req := auth.RegisterParticipantRequest{
		InvitationToken: inv.Token,
		FullName:        "Dina Maharani",
		Email:           "dina@example.com",
		Password:        "s3cret-pass",
	}
	_, err := f.service.RegisterParticipant(context.Background(), req)
	require.NoError(t, err)

	req.Email = "dina@example.com"
	_, err = f.service.RegisterParticipant(context.Background(), req)
	assert.ErrorIs(t, err, invitation.ErrInvitationAlreadyUsed)
}

func TestLogin_Success(t *testing.T) {
	f := newFixture()
	_, err := f.service.RegisterOrganizer(context.Background(), auth.RegisterOrganizerRequest{
		CompanyName: "Acme",
		FullName:    "Rizky Pratama",
		Email:       "rizky@acme.io",
		Password:    "s3cret-pass",
	})
	require.NoError(t, err)

	resp, err := f.service.Login(context.Background(), auth.LoginRequest{
		Email:    "rizky@acme.io",
		Password: "s3cret-pass",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
}

func TestLogin_WrongPassword(t *testing.T) {
	f := newFixture()
	_, err := f.service.RegisterOrganizer(context.Background(), auth.RegisterOrganizerRequest{
		CompanyName: "Acme",
		FullName:    "Rizky Pratama",
		Email:       "rizky@acme.io",
		Password:    "s3cret-pass",
	})
	require.NoError(t, err)

	_, err = f.service.Login(context.Background(), auth.LoginRequest{
		Email:    "rizky@acme.io",
		Password: "wrong-pass",
	})

	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	f := newFixture()

	_, err := f.service.Login(context.Background(), auth.LoginRequest{
		Email:    "nobody@acme.io",
		Password: "whatever-pass",
	})

	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLoginWithGoogle_CreatesPendingUser(t *testing.T) {
	f := newFixture()

	resp, err := f.service.LoginWithGoogle(context.Background(), "new@gmail.com", "google-uid-1")

	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)

	u, err := f.userRepo.GetByEmail(context.Background(), "new@gmail.com")
	require.NoError(t, err)
	assert.Equal(t, user.RolePending, u.Role)
	assert.True(t, u.EmailVerified)
}

func TestLoginWithGoogle_LinksExistingAccount(t *testing.T) {
	f := newFixture()
	_, err := f.service.RegisterOrganizer(context.Background(), auth.RegisterOrganizerRequest{
		CompanyName: "Acme",
		FullName:    "Rizky Pratama",
		Email:       "rizky@acme.io",
		Password:    "s3cret-pass",
	})
	require.NoError(t, err)

	_, err = f.service.LoginWithGoogle(context.Background(), "rizky@acme.io", "google-uid-2")
	require.NoError(t, err)

	u, err := f.userRepo.GetByEmail(context.Background(), "rizky@acme.io")
	require.NoError(t, err)
	require.NotNil(t, u.OAuthProviderID)
	assert.Equal(t, "google-uid-2", *u.OAuthProviderID)
	assert.Equal(t, user.RoleOrganizer, u.Role, "role is unchanged by linking")
}

func TestRefreshToken_IssuesNewAccessToken(t *testing.T) {
	f := newFixture()
	registered, err := f.service.RegisterOrganizer(context.Background(), auth.RegisterOrganizerRequest{
		CompanyName: "Acme",
		FullName:    "Rizky Pratama",
		Email:       "rizky@acme.io",
		Password:    "s3cret-pass",
	})
	require.NoError(t, err)

	resp, err := f.service.RefreshToken(context.Background(), auth.RefreshTokenRequest{
		RefreshToken: registered.RefreshToken,
	})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
}

func TestRefreshToken_Garbage(t *testing.T) {
	f := newFixture()

	_, err := f.service.RefreshToken(context.Background(), auth.RefreshTokenRequest{
		RefreshToken: "not-a-jwt",
	})

	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestRefreshToken_AccessTokenRejected(t *testing.T) {
	f := newFixture()
	registered, err := f.service.RegisterOrganizer(context.Background(), auth.RegisterOrganizerRequest{
		CompanyName: "Acme",
		FullName:    "Rizky Pratama",
		Email:       "rizky@acme.io",
		Password:    "s3cret-pass",
	})
	require.NoError(t, err)

	_, err = f.service.RefreshToken(context.Background(), auth.RefreshTokenRequest{
		RefreshToken: registered.AccessToken,
	})

	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestLogout_RevokesRefreshToken(t *testing.T) {
	f := newFixture()
	registered, err := f.service.RegisterOrganizer(context.Background(), auth.RegisterOrganizerRequest{
		CompanyName: "Acme",
		FullName:    "Rizky Pratama",
		Email:       "rizky@acme.io",
		Password:    "s3cret-pass",
	})
	require.NoError(t, err)

	require.NoError(t, f.service.Logout(context.Background(), registered.RefreshToken))

	_, err = f.service.RefreshToken(context.Background(), auth.RefreshTokenRequest{
		RefreshToken: registered.RefreshToken,
	})
	assert.ErrorIs(t, err, auth.ErrRefreshTokenRevoked)
}

func TestLogout_PrunesExpiredTokens(t *testing.T) {
	f := newFixture()
	registered, err := f.service.RegisterOrganizer(context.Background(), auth.RegisterOrganizerRequest{
		CompanyName: "Acme",
		FullName:    "Rizky Pratama",
		Email:       "rizky@acme.io",
		Password:    "s3cret-pass",
	})
	require.NoError(t, err)

	stale := "stale-refresh-token"
	require.NoError(t, f.refreshRepo.Create(context.Background(), stale, "usr-gone", time.Now().Add(-time.Hour)))

	require.NoError(t, f.service.Logout(context.Background(), registered.RefreshToken))

	assert.False(t, f.refreshRepo.Has(stale), "expired token row is pruned")
	assert.True(t, f.refreshRepo.Has(registered.RefreshToken), "revoked but unexpired token is kept")
}

func TestVerifyEmail(t *testing.T) {
	f := newFixture()
	userID := f.userRepo.Seed(user.User{
		Email:    "dina@example.com",
		FullName: "Dina Maharani",
		Role:     user.RolePending,
	})
	require.NoError(t, f.userRepo.SetVerificationToken(context.Background(), userID, "verify-token-1"))

	err := f.service.VerifyEmail(context.Background(), auth.VerifyEmailRequest{Token: "verify-token-1"})
	require.NoError(t, err)

	u, err := f.userRepo.GetByID(context.Background(), userID)
	require.NoError(t, err)
	assert.True(t, u.EmailVerified)
}

func TestVerifyEmail_UnknownToken(t *testing.T) {
	f := newFixture()

	err := f.service.VerifyEmail(context.Background(), auth.VerifyEmailRequest{Token: "nope"})

	assert.ErrorIs(t, err, auth.ErrVerificationNotFound)
}
