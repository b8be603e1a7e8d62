package services_test

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"smartserve-api/config"
	"smartserve-api/mailer"
	"smartserve-api/middleware"
	"smartserve-api/models"
	"smartserve-api/otp"
	"smartserve-api/services"
)

var testSecret = []byte("test-secret")

// newAuthService wires an AuthService with a disabled mailer (dev mode) so
// codes come back from SendOTP instead of going out over SMTP.
func newAuthService(t *testing.T) (*services.AuthService, *otp.Store, *gorm.DB) {
	return newAuthServiceWith(t, mailer.New(config.SMTP{}))
}

func newAuthServiceWith(t *testing.T, mail services.OTPMailer) (*services.AuthService, *otp.Store, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	store := otp.NewStore()
	svc := services.NewAuthService(db, store, mail, testSecret, time.Hour)
	return svc, store, db
}

// brokenMailer is configured but always fails to deliver.
type brokenMailer struct{}

func (brokenMailer) Enabled() bool                 { return true }
func (brokenMailer) SendOTP(to, code string) error { return errors.New("connection refused") }

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc, _, db := newAuthService(t)

	first := models.User{Name: "A", Email: "a@example.com", Phone: "9876543210", Role: models.RoleUser}
	require.NoError(t, svc.Register(&first))
	assert.NotEmpty(t, first.ID)

	dup := models.User{Name: "B", Email: "a@example.com", Phone: "9876543211", Role: models.RoleUser}
	err := svc.Register(&dup)
	var conflict *services.ConflictError
	require.ErrorAs(t, err, &conflict)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestSendOTPUnknownEmail(t *testing.T) {
	svc, _, _ := newAuthService(t)

	_, err := svc.SendOTP("nobody@example.com")
	var notFound *services.NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestOTPRoundTrip(t *testing.T) {
	svc, _, db := newAuthService(t)
	seedUser(t, db, "a@example.com", models.RoleAdmin)

	code, err := svc.SendOTP("a@example.com")
	require.NoError(t, err)
	require.Len(t, code, 6)

	// Wrong code fails and the right one still works afterwards.
	_, err = svc.VerifyOTP("a@example.com", "000000")
	var unauthorized *services.UnauthorizedError
	require.ErrorAs(t, err, &unauthorized)

	token, err := svc.VerifyOTP("a@example.com", code)
	require.NoError(t, err)

	claims := &middleware.Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return testSecret, nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)
	assert.Equal(t, "a@example.com", claims.Email)
	assert.Equal(t, models.RoleAdmin, claims.Role)
	assert.Equal(t, "Test User", claims.Name)
	assert.NotEmpty(t, claims.UserID)

	// A code verifies exactly once.
	_, err = svc.VerifyOTP("a@example.com", code)
	require.ErrorAs(t, err, &unauthorized)
	assert.Equal(t, "OTP not requested or expired", unauthorized.Message)
}

func TestVerifyOTPExpired(t *testing.T) {
	svc, store, db := newAuthService(t)
	seedUser(t, db, "a@example.com", models.RoleUser)

	store.Put("a@example.com", "123456", -time.Minute)

	_, err := svc.VerifyOTP("a@example.com", "123456")
	var unauthorized *services.UnauthorizedError
	require.ErrorAs(t, err, &unauthorized)
	assert.Equal(t, "OTP expired", unauthorized.Message)
}

func TestSendOTPReplacesPriorCode(t *testing.T) {
	svc, _, db := newAuthService(t)
	seedUser(t, db, "a@example.com", models.RoleUser)

	first, err := svc.SendOTP("a@example.com")
	require.NoError(t, err)
	second, err := svc.SendOTP("a@example.com")
	require.NoError(t, err)

	if first != second {
		_, err = svc.VerifyOTP("a@example.com", first)
		var unauthorized *services.UnauthorizedError
		require.ErrorAs(t, err, &unauthorized)
	}
	_, err = svc.VerifyOTP("a@example.com", second)
	assert.NoError(t, err)
}

func TestSendAdminOTPRestrictedToAdmins(t *testing.T) {
	svc, _, db := newAuthService(t)
	seedUser(t, db, "user@example.com", models.RoleUser)
	admin := seedUser(t, db, "admin@example.com", models.RoleAdmin)

	var notFound *services.NotFoundError

	// Unknown email and non-admin email are indistinguishable.
	_, err := svc.SendAdminOTP("nobody@example.com")
	require.ErrorAs(t, err, &notFound)

	_, err = svc.SendAdminOTP("user@example.com")
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "Admin account not found", notFound.Message)

	code, err := svc.SendAdminOTP(admin.Email)
	require.NoError(t, err)
	require.Len(t, code, 6)

	token, err := svc.VerifyOTP(admin.Email, code)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestSendOTPMailerTransportFailure(t *testing.T) {
	svc, _, db := newAuthServiceWith(t, brokenMailer{})
	seedUser(t, db, "a@example.com", models.RoleUser)

	_, err := svc.SendOTP("a@example.com")
	var unavailable *services.ServiceUnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.Equal(t, "Could not send OTP email. Please try again later.", unavailable.Message)
	assert.Error(t, errors.Unwrap(unavailable))
}

func TestVerifyOTPUserRemovedAfterIssue(t *testing.T) {
	svc, _, db := newAuthService(t)
	user := seedUser(t, db, "a@example.com", models.RoleUser)

	code, err := svc.SendOTP("a@example.com")
	require.NoError(t, err)

	require.NoError(t, db.Delete(&user).Error)

	_, err = svc.VerifyOTP("a@example.com", code)
	var notFound *services.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "User not found", notFound.Message)
}
