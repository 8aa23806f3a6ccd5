package services

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"andhrawala/internal/models"
	"andhrawala/internal/repositories"
	"andhrawala/internal/utils"
)

var (
	ErrInvalidContact = fmt.Errorf("invalid contact: expected an email address or a 10-digit mobile number")
	ErrNoOTP          = fmt.Errorf("no OTP pending for this contact")
	ErrOTPMismatch    = fmt.Errorf("incorrect OTP")
	ErrOTPExpired     = fmt.Errorf("OTP expired")
)

type OTPService interface {
	RequestOTP(contact string) error
	VerifyOTP(contact, code string) error
}

type otpService struct {
	otpRepo      repositories.OTPRepository
	emailService EmailService
	ttl          time.Duration
}

func NewOTPService(otpRepo repositories.OTPRepository, emailService EmailService, ttl time.Duration) OTPService {
	return &otpService{otpRepo: otpRepo, emailService: emailService, ttl: ttl}
}

// RequestOTP issues a fresh code for the contact, overwriting any pending one.
// Email contacts get the code by mail; mobile contacts only get it logged,
// as there is no SMS provider behind this service.
func (s *otpService) RequestOTP(contact string) error {
	contactType, ok := utils.ClassifyContact(contact)
	if !ok {
		log.Warn().Str("contact", contact).Msg("Invalid contact format for OTP request")
		return ErrInvalidContact
	}

	code, err := utils.GenerateSecureOTP()
	if err != nil {
		log.Error().Err(err).Msg("Failed to generate OTP code")
		return fmt.Errorf("failed to generate OTP")
	}

	s.otpRepo.Put(contact, models.OTP{
		Code:      code,
		ExpiresAt: time.Now().Add(s.ttl),
	})

	if contactType == models.ContactTypeEmail {
		subject := "Your One-Time Password"
		body := fmt.Sprintf("Your One-Time Password is: %s. It is valid for %d minutes.", code, int(s.ttl.Minutes()))
		if err := s.emailService.SendEmail(contact, subject, body); err != nil {
			log.Error().Err(err).Str("contact", contact).Msg("Failed to send OTP email")
			return fmt.Errorf("failed to dispatch OTP: %w", err)
		}
		log.Info().Str("contact", contact).Msg("OTP dispatched via email")
		return nil
	}

	// SMS delivery is not implemented. The code is logged so operators can
	// relay it manually during testing.
	log.Info().Str("contact", contact).Str("otp", code).Msg("OTP issued for mobile contact (no SMS delivery)")
	return nil
}

// VerifyOTP checks the pending code for the contact and consumes it on
// success. A second verification with the same code fails with ErrNoOTP.
func (s *otpService) VerifyOTP(contact, code string) error {
	otp, ok := s.otpRepo.Get(contact)
	if !ok {
		log.Warn().Str("contact", contact).Msg("OTP verification without a pending code")
		return ErrNoOTP
	}

	if otp.Code != code {
		log.Warn().Str("contact", contact).Msg("OTP verification failed (code mismatch)")
		return ErrOTPMismatch
	}

	if time.Now().After(otp.ExpiresAt) {
		log.Warn().Str("contact", contact).Msg("OTP verification failed (expired)")
		return ErrOTPExpired
	}

	s.otpRepo.Delete(contact)
	log.Info().Str("contact", contact).Msg("OTP verified successfully")
	return nil
}
