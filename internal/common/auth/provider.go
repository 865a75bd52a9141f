// internal/common/auth/provider.go
package auth

import (
	"context"
	"strings"
	"sync"

	"loan-assistant/internal/common/config"
	apperrors "loan-assistant/internal/common/errors"
	"loan-assistant/internal/models"
)

// DemoOTP is the one-time password accepted by OTPLogin.
const DemoOTP = "123456"

// Provider supplies the authenticated applicant, or an UNAUTHENTICATED error.
type Provider interface {
	CurrentUser(ctx context.Context) (*models.User, error)
}

// StaticProvider always returns the same user.
type StaticProvider struct {
	user models.User
}

func NewStaticProvider(user models.User) *StaticProvider {
	return &StaticProvider{user: user}
}

// FromConfig builds a StaticProvider for the configured demo identity.
func FromConfig(cfg config.IdentityConfig) *StaticProvider {
	return NewStaticProvider(models.User{
		ID:           cfg.UserID,
		Name:         cfg.Name,
		Email:        cfg.Email,
		Phone:        cfg.Phone,
		KYCCompleted: cfg.KYCCompleted,
	})
}

func (p *StaticProvider) CurrentUser(_ context.Context) (*models.User, error) {
	u := p.user
	return &u, nil
}

// OTPLogin is a session-scoped provider: nobody is signed in until Login
// succeeds with the registered phone number and DemoOTP.
type OTPLogin struct {
	mu      sync.RWMutex
	known   models.User
	current *models.User
}

func NewOTPLogin(known models.User) *OTPLogin {
	return &OTPLogin{known: known}
}

func (o *OTPLogin) Login(phone, otp string) (*models.User, error) {
	if normalizePhone(phone) != normalizePhone(o.known.Phone) {
		return nil, apperrors.NewUnauthenticatedError("unknown phone number")
	}
	if strings.TrimSpace(otp) != DemoOTP {
		return nil, apperrors.NewUnauthenticatedError("invalid OTP")
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	u := o.known
	o.current = &u
	out := u
	return &out, nil
}

func (o *OTPLogin) Logout() {
	o.mu.Lock()
	o.current = nil
	o.mu.Unlock()
}

func (o *OTPLogin) CurrentUser(_ context.Context) (*models.User, error) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	if o.current == nil {
		return nil, apperrors.NewUnauthenticatedError("no user signed in")
	}
	u := *o.current
	return &u, nil
}

func normalizePhone(p string) string {
	var b strings.Builder
	for _, r := range p {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	s := b.String()
	if len(s) > 10 {
		s = s[len(s)-10:]
	}
	return s
}
