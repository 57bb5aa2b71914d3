package account

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mystery-message/internal/config"
	"github.com/mystery-message/internal/domain"
	"github.com/mystery-message/internal/pkg/id"
	"github.com/mystery-message/internal/pkg/otp"
	"github.com/mystery-message/internal/pkg/validate"
	"golang.org/x/crypto/bcrypt"
)

// DynamoDB attribute names used in partial update maps.
const (
	fieldPasswordHash     = "password_hash"
	fieldIsVerified       = "is_verified"
	fieldVerifyCode       = "verify_code"
	fieldVerifyCodeExpiry = "verify_code_expiry"
)

const bcryptCost = 10

type Service interface {
	Register(ctx context.Context, req domain.SignUpRequest) (*domain.RegistrationResult, error)
	VerifyAccount(ctx context.Context, req domain.VerifyCodeRequest) error
	RequestPasswordReset(ctx context.Context, identifier string) error
	ResetPassword(ctx context.Context, req domain.ResetConfirmRequest) error
	CheckUsername(ctx context.Context, username string) error
	SignIn(ctx context.Context, req domain.SignInRequest) (string, *domain.User, error)
}

type userStore interface {
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByUsernameOrEmail(ctx context.Context, identifier string) (*domain.User, error)
	Put(ctx context.Context, u *domain.User) error
	Update(ctx context.Context, userID string, updates map[string]interface{}) error
}

type codeSender interface {
	SendVerificationCode(ctx context.Context, email, username, code string) error
	SendPasswordResetCode(ctx context.Context, email, username, code string) error
}

type tokenSigner interface {
	Sign(u *domain.User) (string, error)
}

type service struct {
	repo    userStore
	sender  codeSender
	signer  tokenSigner
	codeTTL time.Duration
	policy  config.VerificationPolicy
	now     func() time.Time
}

type ServiceDeps struct {
	UserRepo userStore
	Sender   codeSender
	Signer   tokenSigner
	CodeTTL  time.Duration
	Policy   config.VerificationPolicy
	// Now defaults to time.Now when nil.
	Now func() time.Time
}

func NewService(deps ServiceDeps) Service {
	s := &service{
		repo:    deps.UserRepo,
		sender:  deps.Sender,
		signer:  deps.Signer,
		codeTTL: deps.CodeTTL,
		policy:  deps.Policy,
		now:     deps.Now,
	}
	if s.codeTTL <= 0 {
		s.codeTTL = otp.DefaultTTL
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Register creates an unverified account, or reuses an unverified record
// already bound to the same email. In the reuse case the stored username is
// kept and the password and code are overwritten.
func (s *service) Register(ctx context.Context, req domain.SignUpRequest) (*domain.RegistrationResult, error) {
	byEmail, err := s.lookup(s.repo.GetByEmail(ctx, req.Email))
	if err != nil {
		return nil, err
	}
	if byEmail != nil && byEmail.IsVerified {
		return nil, fmt.Errorf("register %s: %w", req.Email, domain.ErrEmailTaken)
	}

	byName, err := s.lookup(s.repo.GetByUsername(ctx, req.Username))
	if err != nil {
		return nil, err
	}
	if byName != nil && (byEmail == nil || byName.UserID != byEmail.UserID) {
		// an unverified holder only blocks a brand-new record; a reused
		// record keeps its own username so the submitted one is discarded
		if byName.IsVerified || byEmail == nil {
			return nil, fmt.Errorf("register %s: %w", req.Username, domain.ErrUsernameTaken)
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	now := s.now().UTC()
	code, expiry, err := otp.Generate(now, s.codeTTL)
	if err != nil {
		return nil, err
	}

	res := &domain.RegistrationResult{Username: req.Username}
	var email string
	if byEmail != nil {
		err = s.repo.Update(ctx, byEmail.UserID, map[string]interface{}{
			fieldPasswordHash:     string(hash),
			fieldVerifyCode:       code,
			fieldVerifyCodeExpiry: expiry,
		})
		res.Username, res.Reused, email = byEmail.Username, true, byEmail.Email
	} else {
		err = s.repo.Put(ctx, &domain.User{
			UserID:              id.New(),
			Username:            req.Username,
			Email:               req.Email,
			PasswordHash:        string(hash),
			IsAcceptingMessages: true,
			VerifyCode:          code,
			VerifyCodeExpiry:    expiry,
			CreatedAt:           now,
			UpdatedAt:           now,
		})
		email = req.Email
	}
	if err != nil {
		return nil, fmt.Errorf("store registration: %w", err)
	}

	if err := s.sender.SendVerificationCode(ctx, email, res.Username, code); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDeliveryFailure, err)
	}
	return res, nil
}

// VerifyAccount consumes a registration code. The expiry window is not
// checked and the code stays stored unless the policy says otherwise.
func (s *service) VerifyAccount(ctx context.Context, req domain.VerifyCodeRequest) error {
	u, err := s.repo.GetByUsername(ctx, req.Username)
	if err != nil {
		return err
	}
	if !u.CodeMatches(req.Code) {
		return fmt.Errorf("verify %s: %w", req.Username, domain.ErrInvalidCode)
	}
	if s.policy.EnforceExpiryOnVerify && u.CodeExpired(s.now()) {
		return fmt.Errorf("verify %s: %w", req.Username, domain.ErrCodeExpired)
	}

	updates := map[string]interface{}{fieldIsVerified: true}
	if s.policy.ClearCodeOnVerify {
		clearCode(updates)
	} else if u.IsVerified {
		return nil
	}
	return s.repo.Update(ctx, u.UserID, updates)
}

// RequestPasswordReset issues a fresh code, overwriting any outstanding one,
// and emails it to the account owner.
func (s *service) RequestPasswordReset(ctx context.Context, identifier string) error {
	u, err := s.repo.GetByUsernameOrEmail(ctx, identifier)
	if err != nil {
		return err
	}
	code, expiry, err := otp.Generate(s.now().UTC(), s.codeTTL)
	if err != nil {
		return err
	}
	if err := s.repo.Update(ctx, u.UserID, map[string]interface{}{
		fieldVerifyCode:       code,
		fieldVerifyCodeExpiry: expiry,
	}); err != nil {
		return fmt.Errorf("store reset code: %w", err)
	}
	if err := s.sender.SendPasswordResetCode(ctx, u.Email, u.Username, code); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrDeliveryFailure, err)
	}
	return nil
}

// ResetPassword consumes a reset code. CodeExpired is reported only for a
// matching code whose window has elapsed; every other failure is InvalidCode.
func (s *service) ResetPassword(ctx context.Context, req domain.ResetConfirmRequest) error {
	u, err := s.findResetTarget(ctx, req)
	if err != nil {
		return err
	}

	codeValid := u.CodeMatches(req.Code)
	notExpired := !u.CodeExpired(s.now())
	switch {
	case codeValid && notExpired:
	case codeValid:
		return fmt.Errorf("reset %s: %w", u.Username, domain.ErrCodeExpired)
	default:
		return fmt.Errorf("reset %s: %w", u.Username, domain.ErrInvalidCode)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	updates := map[string]interface{}{fieldPasswordHash: string(hash)}
	if s.policy.InvalidateCodeOnReset {
		clearCode(updates)
	}
	return s.repo.Update(ctx, u.UserID, updates)
}

// CheckUsername reports whether username is well-formed and free for a new
// registration.
func (s *service) CheckUsername(ctx context.Context, username string) error {
	if err := validate.Username(username); err != nil {
		return fmt.Errorf("%v: %w", err, domain.ErrBadRequest)
	}
	u, err := s.lookup(s.repo.GetByUsername(ctx, username))
	if err != nil {
		return err
	}
	if u != nil {
		return fmt.Errorf("check %s: %w", username, domain.ErrUsernameTaken)
	}
	return nil
}

func (s *service) SignIn(ctx context.Context, req domain.SignInRequest) (string, *domain.User, error) {
	u, err := s.repo.GetByUsernameOrEmail(ctx, req.Identifier)
	if err != nil {
		return "", nil, err
	}
	if !u.IsVerified {
		return "", nil, fmt.Errorf("sign in %s: %w", u.Username, domain.ErrNotVerified)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return "", nil, fmt.Errorf("incorrect password: %w", domain.ErrUnauthorized)
	}
	token, err := s.signer.Sign(u)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	return token, u, nil
}

// findResetTarget matches the username first and falls back to the email, so
// either identifier alone locates the account.
func (s *service) findResetTarget(ctx context.Context, req domain.ResetConfirmRequest) (*domain.User, error) {
	if req.Username == "" && req.Email == "" {
		return nil, fmt.Errorf("username or email required: %w", domain.ErrBadRequest)
	}
	for _, identifier := range []string{req.Username, req.Email} {
		if identifier == "" {
			continue
		}
		u, err := s.lookup(s.repo.GetByUsernameOrEmail(ctx, identifier))
		if err != nil {
			return nil, err
		}
		if u != nil {
			return u, nil
		}
	}
	return nil, fmt.Errorf("reset target: %w", domain.ErrNotFound)
}

// lookup turns a NotFound result into a nil user.
func (s *service) lookup(u *domain.User, err error) (*domain.User, error) {
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func clearCode(updates map[string]interface{}) {
	updates[fieldVerifyCode] = ""
	updates[fieldVerifyCodeExpiry] = time.Time{}
}
