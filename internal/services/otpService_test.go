package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"andhrawala/internal/repositories"
)

type recordingEmailService struct {
	to      []string
	sendErr error
}

func (e *recordingEmailService) SendEmail(to, subject, msg string) error {
	if e.sendErr != nil {
		return e.sendErr
	}
	e.to = append(e.to, to)
	return nil
}

func newTestOTPService(ttl time.Duration) (OTPService, repositories.OTPRepository, *recordingEmailService) {
	otpRepo := repositories.NewOTPRepository()
	email := &recordingEmailService{}
	return NewOTPService(otpRepo, email, ttl), otpRepo, email
}

func TestRequestOTPRejectsInvalidContact(t *testing.T) {
	svc, _, email := newTestOTPService(5 * time.Minute)

	for _, contact := range []string{"", "not-a-contact", "12345", "1234567890", "5876543210"} {
		assert.ErrorIs(t, svc.RequestOTP(contact), ErrInvalidContact, "contact %q", contact)
	}
	assert.Empty(t, email.to)
}

func TestRequestOTPDispatchesEmail(t *testing.T) {
	svc, otpRepo, email := newTestOTPService(5 * time.Minute)

	require.NoError(t, svc.RequestOTP("alice@example.com"))
	assert.Equal(t, []string{"alice@example.com"}, email.to)

	otp, ok := otpRepo.Get("alice@example.com")
	require.True(t, ok)
	assert.Regexp(t, `^[1-9]\d{5}$`, otp.Code)
	assert.True(t, otp.ExpiresAt.After(time.Now()))
}

func TestRequestOTPMobileOnlyLogs(t *testing.T) {
	svc, otpRepo, email := newTestOTPService(5 * time.Minute)

	require.NoError(t, svc.RequestOTP("9876543210"))
	assert.Empty(t, email.to, "mobile contacts must not trigger email dispatch")

	_, ok := otpRepo.Get("9876543210")
	assert.True(t, ok)
}

func TestRequestOTPOverwritesPendingCode(t *testing.T) {
	svc, otpRepo, _ := newTestOTPService(5 * time.Minute)

	require.NoError(t, svc.RequestOTP("alice@example.com"))
	first, _ := otpRepo.Get("alice@example.com")

	require.NoError(t, svc.RequestOTP("alice@example.com"))
	second, _ := otpRepo.Get("alice@example.com")

	if first.Code != second.Code {
		assert.ErrorIs(t, svc.VerifyOTP("alice@example.com", first.Code), ErrOTPMismatch)
	}
	assert.NoError(t, svc.VerifyOTP("alice@example.com", second.Code))
}

func TestRequestOTPDispatchFailure(t *testing.T) {
	svc, _, email := newTestOTPService(5 * time.Minute)
	email.sendErr = assert.AnError

	err := svc.RequestOTP("alice@example.com")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidContact)
}

func TestVerifyOTPConsumesCode(t *testing.T) {
	svc, otpRepo, _ := newTestOTPService(5 * time.Minute)

	require.NoError(t, svc.RequestOTP("alice@example.com"))
	otp, _ := otpRepo.Get("alice@example.com")

	require.NoError(t, svc.VerifyOTP("alice@example.com", otp.Code))
	assert.ErrorIs(t, svc.VerifyOTP("alice@example.com", otp.Code), ErrNoOTP)
}

func TestVerifyOTPMismatch(t *testing.T) {
	svc, otpRepo, _ := newTestOTPService(5 * time.Minute)

	require.NoError(t, svc.RequestOTP("alice@example.com"))
	assert.ErrorIs(t, svc.VerifyOTP("alice@example.com", "000000"), ErrOTPMismatch)

	// A failed attempt must not consume the pending code.
	otp, ok := otpRepo.Get("alice@example.com")
	require.True(t, ok)
	assert.NoError(t, svc.VerifyOTP("alice@example.com", otp.Code))
}

func TestVerifyOTPExpired(t *testing.T) {
	svc, otpRepo, _ := newTestOTPService(-time.Minute)

	require.NoError(t, svc.RequestOTP("alice@example.com"))
	otp, _ := otpRepo.Get("alice@example.com")

	assert.ErrorIs(t, svc.VerifyOTP("alice@example.com", otp.Code), ErrOTPExpired)
}

func TestVerifyOTPWithoutPendingCode(t *testing.T) {
	svc, _, _ := newTestOTPService(5 * time.Minute)

	assert.ErrorIs(t, svc.VerifyOTP("alice@example.com", "123456"), ErrNoOTP)
}
