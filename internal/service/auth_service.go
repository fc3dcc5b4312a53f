package service

import (
	"context"
	"encoding/json"
	"strings"

	"taskboard/internal/entity"
	"taskboard/internal/repository"

	"gorm.io/datatypes"
)

type AuthService struct {
	users        repository.UserRepository
	securityLogs repository.SecurityLogRepository

	passwordHash PasswordHasher
	tokens       TokenIssuer
	totp         TOTPProvider
	config       AuthConfig
}

func NewAuthService(
	users repository.UserRepository,
	securityLogs repository.SecurityLogRepository,
	passwordHash PasswordHasher,
	tokens TokenIssuer,
	totp TOTPProvider,
	config AuthConfig,
) *AuthService {
	return &AuthService{
		users:        users,
		securityLogs: securityLogs,
		passwordHash: passwordHash,
		tokens:       tokens,
		totp:         totp,
		config:       config,
	}
}

type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

type LoginInput struct {
	Email    string
	Password string
	TOTPCode string
}

type AuthResult struct {
	Token       string
	Requires2FA bool
	QRCodeImage string
}

// Register creates a USER account and hands back a token right away. There is
// no email verification step. A duplicate email bubbles up as the store's
// unique-constraint error rather than a dedicated conflict path.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	if strings.TrimSpace(input.Email) == "" || strings.TrimSpace(input.Password) == "" {
		return nil, ErrInvalidInput
	}

	hash, err := s.passwordHash.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		FirstName:        input.FirstName,
		LastName:         input.LastName,
		Email:            input.Email,
		PasswordHash:     hash,
		Role:             entity.RoleUser,
		TwoFactorEnabled: false,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	token, _, err := s.tokens.Issue(user.Email, string(user.Role))
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token}, nil
}

// Login verifies the password, then branches on the account's 2FA state:
// disabled issues a token, enabled without a code asks the client to resubmit
// with one, enabled with a code validates it against the stored secret with
// one time-step of tolerance either way.
//
// The "user not found" vs "invalid password" distinction is kept from the
// original behavior even though it leaks which half was wrong.
func (s *AuthService) Login(ctx context.Context, input LoginInput, ipAddress *string) (*AuthResult, error) {
	if strings.TrimSpace(input.Email) == "" || strings.TrimSpace(input.Password) == "" {
		return nil, ErrInvalidInput
	}

	user, err := s.users.FindByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		_ = s.logSecurity(ctx, nil, ipAddress, entity.LoginFailed, map[string]any{"email": input.Email})
		return nil, ErrUserNotFound
	}

	if !s.passwordHash.Verify(user.PasswordHash, input.Password) {
		_ = s.logSecurity(ctx, &user.ID, ipAddress, entity.LoginFailed, map[string]any{"email": input.Email})
		return nil, ErrInvalidPassword
	}

	if user.TwoFactorEnabled {
		if strings.TrimSpace(input.TOTPCode) == "" {
			return &AuthResult{Requires2FA: true}, nil
		}
		if !s.validate2FACode(user, input.TOTPCode) {
			_ = s.logSecurity(ctx, &user.ID, ipAddress, entity.TwoFactorFail, nil)
			return nil, ErrInvalid2FACode
		}
	}

	token, _, err := s.tokens.Issue(user.Email, string(user.Role))
	if err != nil {
		return nil, err
	}

	_ = s.logSecurity(ctx, &user.ID, ipAddress, entity.LoginSuccess, nil)
	return &AuthResult{Token: token}, nil
}

// Enable2FA generates a fresh secret for the acting principal, replacing any
// previous one, and returns the enrollment QR as a PNG data URI. The enabled
// flag is set at generation time, before the user has proven possession of
// the authenticator: their next login is already gated behind 2FA. Kept as-is
// for compatibility with the original flow.
func (s *AuthService) Enable2FA(ctx context.Context, email string) (*AuthResult, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	secret, err := s.totp.GenerateSecret()
	if err != nil {
		return nil, err
	}

	user.TwoFactorSecret = &secret
	user.TwoFactorEnabled = true
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	qr, err := s.totp.QRCodeDataURI(secret, user.Email)
	if err != nil {
		return nil, err
	}

	_ = s.logSecurity(ctx, &user.ID, nil, entity.TwoFactorSet, nil)
	return &AuthResult{QRCodeImage: qr}, nil
}

// Verify2FA confirms enrollment (or completes a 2FA login) with email and
// code alone; no password, no prior session. The caller-trust assumption is
// inherited from the original flow. A failed verification leaves the account
// untouched.
func (s *AuthService) Verify2FA(ctx context.Context, email string, code string) (*AuthResult, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if !s.validate2FACode(user, code) {
		_ = s.logSecurity(ctx, &user.ID, nil, entity.TwoFactorFail, nil)
		return nil, ErrInvalid2FACode
	}

	if !user.TwoFactorEnabled {
		user.TwoFactorEnabled = true
		if err := s.users.Update(ctx, user); err != nil {
			return nil, err
		}
	}

	token, _, err := s.tokens.Issue(user.Email, string(user.Role))
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token}, nil
}

// RegisterAdmin seeds an ADMIN account at startup. A no-op when the email is
// already taken, so restarts are safe.
func (s *AuthService) RegisterAdmin(ctx context.Context, firstName, lastName, email, password string) error {
	if strings.TrimSpace(email) == "" || strings.TrimSpace(password) == "" {
		return ErrInvalidInput
	}

	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	hash, err := s.passwordHash.Hash(password)
	if err != nil {
		return err
	}

	admin := &entity.User{
		FirstName:        firstName,
		LastName:         lastName,
		Email:            email,
		PasswordHash:     hash,
		Role:             entity.RoleAdmin,
		TwoFactorEnabled: false,
	}
	return s.users.Create(ctx, admin)
}

func (s *AuthService) validate2FACode(user *entity.User, code string) bool {
	if user.TwoFactorSecret == nil {
		return false
	}
	return s.totp.ValidateCode(*user.TwoFactorSecret, code)
}

func (s *AuthService) logSecurity(
	ctx context.Context,
	userID *uint,
	ipAddress *string,
	action entity.SecurityAction,
	metadata map[string]any,
) error {
	if s.securityLogs == nil {
		return nil
	}
	var payload datatypes.JSON
	if metadata != nil {
		bytes, err := json.Marshal(metadata)
		if err != nil {
			return err
		}
		payload = datatypes.JSON(bytes)
	}

	log := &entity.SecurityLog{
		UserID:    userID,
		IPAddress: ipAddress,
		Action:    action,
		Metadata:  payload,
	}
	return s.securityLogs.Log(ctx, log)
}
