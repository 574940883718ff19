package services

import (
	"testing"

	"github.com/clinichub/clinic-backend/internal/dto"
	"github.com/clinichub/clinic-backend/internal/identity"
	"github.com/clinichub/clinic-backend/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRegister() *dto.RegisterRequest {
	return &dto.RegisterRequest{
		Name:        "Ada Lovelace",
		Email:       "ADA@CLINIC.COM",
		Phone:       "+905551112233",
		Address:     "Kadıköy, İstanbul",
		Password:    "correct-horse",
		KVKKConsent: true,
	}
}

func TestRegisterNormalizesAndEncrypts(t *testing.T) {
	svc, db := newAuthService(t)

	resp, err := svc.Register(validRegister())
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.Token)

	// The profile reflects what was stored, not what was sent.
	assert.Equal(t, "ada@clinic.com", resp.User.Email)
	assert.Equal(t, "+905551112233", resp.User.Phone)
	assert.Equal(t, "patient", resp.User.Role)
	assert.True(t, resp.User.KVKKConsent)

	var stored models.User
	require.NoError(t, db.First(&stored, "id = ?", resp.User.ID).Error)
	assert.NotEqual(t, "ada@clinic.com", stored.Email)
	assert.NotEqual(t, "+905551112233", stored.Phone)
	assert.NotEqual(t, "correct-horse", stored.PasswordHash)
	assert.NotNil(t, stored.KVKKAcceptedAt)
}

func TestRegisterDuplicateEmailCaseInsensitive(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.Register(validRegister())
	require.NoError(t, err)

	second := validRegister()
	second.Email = "ada@clinic.com"
	_, err = svc.Register(second)
	assert.ErrorIs(t, err, ErrDuplicateAccount)
}

func TestRegisterConsentGateWritesNothing(t *testing.T) {
	svc, db := newAuthService(t)

	req := validRegister()
	req.KVKKConsent = false
	_, err := svc.Register(req)
	assert.ErrorIs(t, err, ErrConsentRequired)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newAuthService(t)

	req := validRegister()
	req.Email = ""
	_, err := svc.Register(req)
	assert.ErrorIs(t, err, ErrValidation)

	req = validRegister()
	req.Password = "short"
	_, err = svc.Register(req)
	assert.ErrorIs(t, err, ErrWeakPassword)
}

func TestLoginSuccessAndTokenClaims(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.Register(validRegister())
	require.NoError(t, err)

	resp, err := svc.Login(&dto.LoginRequest{Email: "Ada@Clinic.com", Password: "correct-horse"})
	require.NoError(t, err)
	assert.NotNil(t, resp.User.LastLoginAt)

	token, err := jwt.Parse(resp.Token, func(tok *jwt.Token) (interface{}, error) {
		return []byte("test-jwt-secret"), nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, resp.User.ID.String(), claims["sub"])
	assert.Equal(t, "ada@clinic.com", claims["email"])
	assert.Equal(t, "patient", claims["role"])
}

func TestLoginFailureParity(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.Register(validRegister())
	require.NoError(t, err)

	_, unknownErr := svc.Login(&dto.LoginRequest{Email: "nobody@clinic.com", Password: "correct-horse"})
	_, wrongErr := svc.Login(&dto.LoginRequest{Email: "ada@clinic.com", Password: "wrong-password"})

	assert.ErrorIs(t, unknownErr, ErrInvalidCredentials)
	assert.ErrorIs(t, wrongErr, ErrInvalidCredentials)
	assert.Equal(t, unknownErr.Error(), wrongErr.Error())
}

func TestSyncExternalUserCreatesOnFirstContact(t *testing.T) {
	svc, db := newAuthService(t)

	claim := &identity.Claim{
		Subject:   "sub-abc-123",
		Email:     "Grace@Clinic.com",
		Name:      "Grace Hopper",
		AvatarURL: "https://cdn.example.com/grace.png",
		Provider:  "google",
	}

	user, err := svc.SyncExternalUser(claim)
	require.NoError(t, err)
	assert.Equal(t, "Grace Hopper", user.FullName)
	assert.Equal(t, "google", user.AuthProvider)
	require.NotNil(t, user.SupabaseID)
	assert.Equal(t, "sub-abc-123", *user.SupabaseID)
	assert.True(t, user.KVKKConsent)
	assert.NotNil(t, user.LastLoginAt)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestSyncExternalUserIsIdempotent(t *testing.T) {
	svc, db := newAuthService(t)

	claim := &identity.Claim{Subject: "sub-1", Email: "grace@clinic.com", Name: "Grace", Provider: "google"}

	first, err := svc.SyncExternalUser(claim)
	require.NoError(t, err)
	second, err := svc.SyncExternalUser(claim)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestSyncExternalUserEmailCaseInsensitive(t *testing.T) {
	svc, _ := newAuthService(t)

	first, err := svc.SyncExternalUser(&identity.Claim{Subject: "s-1", Email: "grace@clinic.com", Provider: "google"})
	require.NoError(t, err)
	second, err := svc.SyncExternalUser(&identity.Claim{Subject: "s-1", Email: "GRACE@CLINIC.COM", Provider: "google"})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}

func TestSyncExternalUserBindsExistingLocalAccount(t *testing.T) {
	svc, _ := newAuthService(t)

	reg, err := svc.Register(validRegister())
	require.NoError(t, err)

	user, err := svc.SyncExternalUser(&identity.Claim{
		Subject:  "sub-ada",
		Email:    "ada@clinic.com",
		Provider: "google",
	})
	require.NoError(t, err)

	assert.Equal(t, reg.User.ID, user.ID)
	require.NotNil(t, user.SupabaseID)
	assert.Equal(t, "sub-ada", *user.SupabaseID)
	assert.Equal(t, "google", user.AuthProvider)
}

func TestSyncExternalUserSubjectFallback(t *testing.T) {
	svc, _ := newAuthService(t)

	first, err := svc.SyncExternalUser(&identity.Claim{Subject: "stable-sub", Email: "old@clinic.com", Provider: "google"})
	require.NoError(t, err)

	// Provider email changed; the subject id still maps to the same account.
	second, err := svc.SyncExternalUser(&identity.Claim{Subject: "stable-sub", Email: "new@clinic.com", Provider: "google"})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}

func TestSyncExternalUserIncompleteClaim(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.SyncExternalUser(&identity.Claim{})
	assert.ErrorIs(t, err, ErrIncompleteIdentity)

	_, err = svc.SyncExternalUser(nil)
	assert.ErrorIs(t, err, ErrIncompleteIdentity)
}

func TestSyncExternalUserNameFallback(t *testing.T) {
	svc, _ := newAuthService(t)

	user, err := svc.SyncExternalUser(&identity.Claim{Subject: "s-2", Email: "lonnie@clinic.com", Provider: "google"})
	require.NoError(t, err)
	assert.Equal(t, "lonnie", user.FullName)
}

func TestChangePassword(t *testing.T) {
	svc, _ := newAuthService(t)

	reg, err := svc.Register(validRegister())
	require.NoError(t, err)

	err = svc.ChangePassword(reg.User.ID, &dto.ChangePasswordRequest{
		CurrentPassword: "wrong", NewPassword: "brand-new-pass",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	err = svc.ChangePassword(reg.User.ID, &dto.ChangePasswordRequest{
		CurrentPassword: "correct-horse", NewPassword: "brand-new-pass",
	})
	require.NoError(t, err)

	_, err = svc.Login(&dto.LoginRequest{Email: "ada@clinic.com", Password: "correct-horse"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(&dto.LoginRequest{Email: "ada@clinic.com", Password: "brand-new-pass"})
	assert.NoError(t, err)
}

func TestUpdateProfileReEncrypts(t *testing.T) {
	svc, db := newAuthService(t)

	reg, err := svc.Register(validRegister())
	require.NoError(t, err)

	profile, err := svc.UpdateProfile(reg.User.ID, &dto.UpdateProfileRequest{Phone: "+905559998877"})
	require.NoError(t, err)
	assert.Equal(t, "+905559998877", profile.Phone)
	assert.Equal(t, "Ada Lovelace", profile.FullName)

	var stored models.User
	require.NoError(t, db.First(&stored, "id = ?", reg.User.ID).Error)
	assert.NotEqual(t, "+905559998877", stored.Phone)
}
