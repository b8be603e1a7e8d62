package services

import (
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"math/big"
	"time"

	"gorm.io/gorm"

	"smartserve-api/middleware"
	"smartserve-api/models"
	"smartserve-api/otp"
)

const otpExpiry = 5 * time.Minute

// OTPMailer delivers login codes. *mailer.Mailer satisfies it; tests inject
// fakes.
type OTPMailer interface {
	Enabled() bool
	SendOTP(to, code string) error
}

// AuthService handles registration, OTP issuance/verification and token
// minting. The OTP store and mailer are injected so tests can substitute
// them.
type AuthService struct {
	db        *gorm.DB
	otps      *otp.Store
	mail      OTPMailer
	jwtSecret []byte
	jwtExpiry time.Duration
}

func NewAuthService(db *gorm.DB, otps *otp.Store, mail OTPMailer, jwtSecret []byte, jwtExpiry time.Duration) *AuthService {
	return &AuthService{
		db:        db,
		otps:      otps,
		mail:      mail,
		jwtSecret: jwtSecret,
		jwtExpiry: jwtExpiry,
	}
}

// Register creates a new user, rejecting duplicate emails.
func (s *AuthService) Register(user *models.User) error {
	var existing models.User
	err := s.db.Where("email = ?", user.Email).First(&existing).Error
	if err == nil {
		return &ConflictError{Message: "Email already registered"}
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return s.db.Create(user).Error
}

// SendOTP generates a fresh login code for the given email, replacing any
// code issued earlier, and dispatches it by mail. When the mailer is not
// configured the code is returned so the handler can echo it (dev mode).
func (s *AuthService) SendOTP(email string) (devCode string, err error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", &NotFoundError{Message: "User not found"}
		}
		return "", err
	}
	return s.issueOTP(email)
}

// SendAdminOTP is the admin login variant: it only issues a code when the
// email belongs to an admin-role account. A matching non-admin account is
// reported exactly like an unknown email.
func (s *AuthService) SendAdminOTP(email string) (devCode string, err error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", &NotFoundError{Message: "Admin account not found"}
		}
		return "", err
	}
	if user.Role != models.RoleAdmin {
		return "", &NotFoundError{Message: "Admin account not found"}
	}
	return s.issueOTP(email)
}

func (s *AuthService) issueOTP(email string) (devCode string, err error) {
	code := generateOTP()
	s.otps.Put(email, code, otpExpiry)

	if !s.mail.Enabled() {
		log.Printf("SMTP not configured — dev OTP for %s: %s", email, code)
		return code, nil
	}

	if err := s.mail.SendOTP(email, code); err != nil {
		log.Printf("Failed to send OTP email to %s: %v", email, err)
		return "", &ServiceUnavailableError{
			Message: "Could not send OTP email. Please try again later.",
			Err:     err,
		}
	}
	return "", nil
}

// VerifyOTP consumes the pending code for email and mints a signed token
// carrying the user's identity claims.
func (s *AuthService) VerifyOTP(email, code string) (string, error) {
	if err := s.otps.Consume(email, code); err != nil {
		switch {
		case errors.Is(err, otp.ErrExpired):
			return "", &UnauthorizedError{Message: "OTP expired"}
		case errors.Is(err, otp.ErrMismatch):
			return "", &UnauthorizedError{Message: "Invalid OTP"}
		default:
			return "", &UnauthorizedError{Message: "OTP not requested or expired"}
		}
	}

	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", &NotFoundError{Message: "User not found"}
		}
		return "", err
	}

	return middleware.GenerateToken(&user, s.jwtSecret, s.jwtExpiry)
}

func generateOTP() string {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		// crypto/rand failing means the process is in serious trouble
		panic(err)
	}
	return fmt.Sprintf("%06d", n.Int64())
}
