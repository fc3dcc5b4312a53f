package service

import (
	"context"
	"testing"
	"time"

	"taskboard/internal/entity"
	"taskboard/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserRepo struct {
	users  map[string]*entity.User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*entity.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	r.nextID++
	user.ID = r.nextID
	copied := *user
	r.users[user.Email] = &copied
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uint) (*entity.User, error) {
	for _, user := range r.users {
		if user.ID == id {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	user, ok := r.users[email]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	copied := *user
	r.users[user.Email] = &copied
	return nil
}

func (r *fakeUserRepo) List(_ context.Context) ([]entity.User, error) {
	users := make([]entity.User, 0, len(r.users))
	for _, user := range r.users {
		users = append(users, *user)
	}
	return users, nil
}

type fakeSecurityLog struct {
	entries []entity.SecurityLog
}

func (l *fakeSecurityLog) Log(_ context.Context, log *entity.SecurityLog) error {
	l.entries = append(l.entries, *log)
	return nil
}

func newTestAuthService(users *fakeUserRepo, logs *fakeSecurityLog) (*AuthService, utils.JWTManager) {
	manager := utils.JWTManager{Secret: []byte("test-secret"), Issuer: "taskboard", TokenTTL: time.Hour}
	svc := NewAuthService(
		users,
		logs,
		BcryptPasswordHasher{Cost: bcrypt.MinCost},
		manager,
		NewTOTP("TaskBoard"),
		AuthConfig{TokenTTL: time.Hour, TOTPIssuer: "TaskBoard"},
	)
	return svc, manager
}

func register(t *testing.T, svc *AuthService, email, password string) {
	t.Helper()
	_, err := svc.Register(context.Background(), RegisterInput{
		FirstName: "Alice",
		LastName:  "Smith",
		Email:     email,
		Password:  password,
	})
	require.NoError(t, err)
}

func TestRegister_IssuesTokenForNewUser(t *testing.T) {
	t.Parallel()

	users := newFakeUserRepo()
	svc, manager := newTestAuthService(users, &fakeSecurityLog{})

	result, err := svc.Register(context.Background(), RegisterInput{
		FirstName: "Alice",
		LastName:  "Smith",
		Email:     "alice@example.com",
		Password:  "secret123",
	})
	require.NoError(t, err)
	require.NotEmpty(t, result.Token)
	assert.False(t, result.Requires2FA)

	claims, err := manager.Parse(result.Token)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, string(entity.RoleUser), claims.Role)

	stored, err := users.FindByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, entity.RoleUser, stored.Role)
	assert.False(t, stored.TwoFactorEnabled)
	assert.NotEqual(t, "secret123", stored.PasswordHash)
}

func TestRegister_RejectsBlankFields(t *testing.T) {
	t.Parallel()

	svc, _ := newTestAuthService(newFakeUserRepo(), &fakeSecurityLog{})

	_, err := svc.Register(context.Background(), RegisterInput{Email: "", Password: "secret123"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Register(context.Background(), RegisterInput{Email: "alice@example.com", Password: "  "})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestLogin_RoundTripAfterRegister(t *testing.T) {
	t.Parallel()

	svc, manager := newTestAuthService(newFakeUserRepo(), &fakeSecurityLog{})
	register(t, svc, "alice@example.com", "secret1")

	result, err := svc.Login(context.Background(), LoginInput{Email: "alice@example.com", Password: "secret1"}, nil)
	require.NoError(t, err)
	require.NotEmpty(t, result.Token)
	assert.False(t, result.Requires2FA)

	claims, err := manager.Parse(result.Token)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, "USER", claims.Role)
}

func TestLogin_UnknownUser(t *testing.T) {
	t.Parallel()

	logs := &fakeSecurityLog{}
	svc, _ := newTestAuthService(newFakeUserRepo(), logs)

	_, err := svc.Login(context.Background(), LoginInput{Email: "ghost@example.com", Password: "whatever"}, nil)
	assert.ErrorIs(t, err, ErrUserNotFound)
	require.Len(t, logs.entries, 1)
	assert.Equal(t, entity.LoginFailed, logs.entries[0].Action)
	assert.Nil(t, logs.entries[0].UserID)
}

func TestLogin_WrongPassword(t *testing.T) {
	t.Parallel()

	logs := &fakeSecurityLog{}
	svc, _ := newTestAuthService(newFakeUserRepo(), logs)
	register(t, svc, "alice@example.com", "secret1")

	_, err := svc.Login(context.Background(), LoginInput{Email: "alice@example.com", Password: "wrongpass"}, nil)
	assert.ErrorIs(t, err, ErrInvalidPassword)
	require.Len(t, logs.entries, 1)
	assert.Equal(t, entity.LoginFailed, logs.entries[0].Action)
	require.NotNil(t, logs.entries[0].UserID)
}

func TestLogin_2FAEnabledWithoutCode(t *testing.T) {
	t.Parallel()

	users := newFakeUserRepo()
	svc, _ := newTestAuthService(users, &fakeSecurityLog{})
	register(t, svc, "alice@example.com", "secret1")

	_, err := svc.Enable2FA(context.Background(), "alice@example.com")
	require.NoError(t, err)

	result, err := svc.Login(context.Background(), LoginInput{Email: "alice@example.com", Password: "secret1"}, nil)
	require.NoError(t, err)
	assert.True(t, result.Requires2FA)
	assert.Empty(t, result.Token)
}

func TestLogin_2FACodeBranches(t *testing.T) {
	t.Parallel()

	users := newFakeUserRepo()
	svc, _ := newTestAuthService(users, &fakeSecurityLog{})
	register(t, svc, "alice@example.com", "secret1")

	_, err := svc.Enable2FA(context.Background(), "alice@example.com")
	require.NoError(t, err)

	stored, err := users.FindByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	require.NotNil(t, stored.TwoFactorSecret)

	provider := NewTOTP("TaskBoard")

	// A code from an unrelated secret must be rejected.
	unrelated, err := provider.GenerateSecret()
	require.NoError(t, err)
	wrongCode, err := provider.GenerateCode(unrelated, time.Now())
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), LoginInput{
		Email:    "alice@example.com",
		Password: "secret1",
		TOTPCode: wrongCode,
	}, nil)
	assert.ErrorIs(t, err, ErrInvalid2FACode)

	code, err := provider.GenerateCode(*stored.TwoFactorSecret, time.Now())
	require.NoError(t, err)

	result, err := svc.Login(context.Background(), LoginInput{
		Email:    "alice@example.com",
		Password: "secret1",
		TOTPCode: code,
	}, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.False(t, result.Requires2FA)
}

func TestEnable2FA_EagerFlagAndSecret(t *testing.T) {
	t.Parallel()

	users := newFakeUserRepo()
	svc, _ := newTestAuthService(users, &fakeSecurityLog{})
	register(t, svc, "alice@example.com", "secret1")

	result, err := svc.Enable2FA(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.Contains(t, result.QRCodeImage, "data:image/png;base64,")

	stored, err := users.FindByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	// The flag flips before the user has confirmed a code.
	assert.True(t, stored.TwoFactorEnabled)
	require.NotNil(t, stored.TwoFactorSecret)
}

func TestEnable2FA_ReplacesPreviousSecret(t *testing.T) {
	t.Parallel()

	users := newFakeUserRepo()
	svc, _ := newTestAuthService(users, &fakeSecurityLog{})
	register(t, svc, "alice@example.com", "secret1")

	_, err := svc.Enable2FA(context.Background(), "alice@example.com")
	require.NoError(t, err)
	first, err := users.FindByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	firstSecret := *first.TwoFactorSecret

	_, err = svc.Enable2FA(context.Background(), "alice@example.com")
	require.NoError(t, err)
	second, err := users.FindByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	secondSecret := *second.TwoFactorSecret

	require.NotEqual(t, firstSecret, secondSecret)

	provider := NewTOTP("TaskBoard")
	staleCode, err := provider.GenerateCode(firstSecret, time.Now())
	require.NoError(t, err)
	_, err = svc.Verify2FA(context.Background(), "alice@example.com", staleCode)
	assert.ErrorIs(t, err, ErrInvalid2FACode)

	freshCode, err := provider.GenerateCode(secondSecret, time.Now())
	require.NoError(t, err)
	result, err := svc.Verify2FA(context.Background(), "alice@example.com", freshCode)
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
}

func TestEnable2FA_UnknownUser(t *testing.T) {
	t.Parallel()

	svc, _ := newTestAuthService(newFakeUserRepo(), &fakeSecurityLog{})

	_, err := svc.Enable2FA(context.Background(), "ghost@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestVerify2FA_FailureLeavesStateUntouched(t *testing.T) {
	t.Parallel()

	users := newFakeUserRepo()
	svc, _ := newTestAuthService(users, &fakeSecurityLog{})

	secret := "JBSWY3DPEHPK3PXPJBSWY3DPEHPK3PXP"
	require.NoError(t, users.Create(context.Background(), &entity.User{
		Email:           "alice@example.com",
		PasswordHash:    "irrelevant",
		Role:            entity.RoleUser,
		TwoFactorSecret: &secret,
	}))

	_, err := svc.Verify2FA(context.Background(), "alice@example.com", "000000")
	assert.ErrorIs(t, err, ErrInvalid2FACode)

	stored, err := users.FindByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.False(t, stored.TwoFactorEnabled)
}

func TestVerify2FA_ConfirmsEnrollmentAndIssuesToken(t *testing.T) {
	t.Parallel()

	users := newFakeUserRepo()
	svc, manager := newTestAuthService(users, &fakeSecurityLog{})

	provider := NewTOTP("TaskBoard")
	secret, err := provider.GenerateSecret()
	require.NoError(t, err)
	require.NoError(t, users.Create(context.Background(), &entity.User{
		Email:           "alice@example.com",
		PasswordHash:    "irrelevant",
		Role:            entity.RoleUser,
		TwoFactorSecret: &secret,
	}))

	code, err := provider.GenerateCode(secret, time.Now())
	require.NoError(t, err)

	result, err := svc.Verify2FA(context.Background(), "alice@example.com", code)
	require.NoError(t, err)
	require.NotEmpty(t, result.Token)

	claims, err := manager.Parse(result.Token)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", claims.Email)

	stored, err := users.FindByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.True(t, stored.TwoFactorEnabled)
}

func TestRegisterAdmin_Idempotent(t *testing.T) {
	t.Parallel()

	users := newFakeUserRepo()
	svc, _ := newTestAuthService(users, &fakeSecurityLog{})

	require.NoError(t, svc.RegisterAdmin(context.Background(), "Root", "Admin", "admin@example.com", "adminpass"))
	require.NoError(t, svc.RegisterAdmin(context.Background(), "Root", "Admin", "admin@example.com", "adminpass"))

	stored, err := users.FindByEmail(context.Background(), "admin@example.com")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, entity.RoleAdmin, stored.Role)

	all, err := users.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
