package repositories

import (
	"sync"

	"andhrawala/internal/models"
)

type OTPRepository interface {
	Put(contact string, otp models.OTP)
	Get(contact string) (models.OTP, bool)
	Delete(contact string)
}

// otpRepository keeps pending codes in process memory. A new Put for a
// contact overwrites the old entry; unconsumed entries are never swept.
type otpRepository struct {
	mu      sync.Mutex
	pending map[string]models.OTP
}

func NewOTPRepository() OTPRepository {
	return &otpRepository{pending: make(map[string]models.OTP)}
}

func (r *otpRepository) Put(contact string, otp models.OTP) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pending[contact] = otp
}

func (r *otpRepository) Get(contact string) (models.OTP, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	otp, ok := r.pending[contact]
	return otp, ok
}

func (r *otpRepository) Delete(contact string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.pending, contact)
}
