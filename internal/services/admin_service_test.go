package services

import (
	"testing"

	"github.com/clinichub/clinic-backend/internal/dto"
	"github.com/clinichub/clinic-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAdminEnv(t *testing.T) (*AdminService, *AuthService) {
	t.Helper()
	db := newTestDB(t)
	cfg := newTestConfig()
	cipher := newTestCipher(t, cfg)
	return NewAdminService(db, cipher), NewAuthService(db, cfg, cipher)
}

func TestAdminListUsersDecryptsPII(t *testing.T) {
	admin, auth := newAdminEnv(t)

	_, err := auth.Register(validRegister())
	require.NoError(t, err)

	users, pagination, err := admin.ListUsers(&dto.UserListQuery{})
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "ada@clinic.com", users[0].Email)
	assert.Equal(t, "+905551112233", users[0].Phone)
	assert.EqualValues(t, 1, pagination.TotalItems)
}

func TestAdminSearchByExactEmail(t *testing.T) {
	admin, auth := newAdminEnv(t)

	_, err := auth.Register(validRegister())
	require.NoError(t, err)

	// Exact normalized email matches through the deterministic ciphertext.
	users, _, err := admin.ListUsers(&dto.UserListQuery{Search: "ADA@clinic.com"})
	require.NoError(t, err)
	assert.Len(t, users, 1)

	users, _, err = admin.ListUsers(&dto.UserListQuery{Search: "nobody@clinic.com"})
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestAdminRoleAndStatusManagement(t *testing.T) {
	admin, auth := newAdminEnv(t)

	reg, err := auth.Register(validRegister())
	require.NoError(t, err)

	promoted, err := admin.SetUserRole(reg.User.ID, "admin")
	require.NoError(t, err)
	assert.Equal(t, "admin", promoted.Role)

	_, err = admin.SetUserRole(reg.User.ID, "superuser")
	assert.ErrorIs(t, err, ErrInvalidRole)

	toggled, err := admin.ToggleUserStatus(reg.User.ID)
	require.NoError(t, err)
	assert.False(t, toggled.IsActive)

	// Deactivation never deletes the row.
	got, err := admin.GetUser(reg.User.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)
}

func TestAdminStatsCounts(t *testing.T) {
	admin, auth := newAdminEnv(t)

	_, err := auth.Register(validRegister())
	require.NoError(t, err)

	stats, err := admin.Stats()
	require.NoError(t, err)
	assert.EqualValues(t, 1, stats.TotalUsers)
	assert.EqualValues(t, 1, stats.ActiveUsers)
	assert.Zero(t, stats.TotalDoctors)
}

func TestAdminExport(t *testing.T) {
	admin, auth := newAdminEnv(t)

	_, err := auth.Register(validRegister())
	require.NoError(t, err)

	data, err := admin.Export("users")
	require.NoError(t, err)
	profiles, ok := data.([]dto.UserProfile)
	require.True(t, ok)
	require.Len(t, profiles, 1)
	assert.Equal(t, "ada@clinic.com", profiles[0].Email)

	_, err = admin.Export("invoices")
	assert.ErrorIs(t, err, ErrInvalidExport)
}

func TestClinicInfoSingleton(t *testing.T) {
	db := newTestDB(t)
	svc := NewClinicInfoService(db)

	_, err := svc.Get()
	assert.ErrorIs(t, err, ErrClinicInfoNotFound)

	first, err := svc.Upsert(&models.ClinicInfo{
		Name: "Smile Clinic", Address: "Bağdat Cad. 1", City: "İstanbul",
		PhonePrimary: "+902161112233", Email: "info@smile.example",
		WhatsApp: "+905551112233", MapsPlaceQuery: "Smile Clinic Istanbul",
	})
	require.NoError(t, err)

	second, err := svc.Upsert(&models.ClinicInfo{
		Name: "Smile Clinic Renamed", Address: "Bağdat Cad. 2", City: "İstanbul",
		PhonePrimary: "+902161112233", Email: "info@smile.example",
		WhatsApp: "+905551112233", MapsPlaceQuery: "Smile Clinic Istanbul",
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.Model(&models.ClinicInfo{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	got, err := svc.Get()
	require.NoError(t, err)
	assert.Equal(t, "Smile Clinic Renamed", got.Name)
}
