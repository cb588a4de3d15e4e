package auth

import (
	"context"
	"testing"

	"github.com/Sum1ght/schand/pkg/config"
	"github.com/Sum1ght/schand/pkg/db/models"
	"github.com/Sum1ght/schand/pkg/enums"
	pkgerrors "github.com/Sum1ght/schand/pkg/errors"
	"github.com/Sum1ght/schand/pkg/security"
	"github.com/Sum1ght/schand/pkg/types"
	"gorm.io/gorm"
)

func TestRegisterCreatesUserRoleAccount(t *testing.T) {
	t.Parallel()

	store := &stubUserStore{}
	svc := newTestService(t, store)

	dto, err := svc.Register(context.Background(), RegisterInput{
		Username: " sam ",
		Password: "hunter22",
		Name:     "Sam",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dto.Username != "sam" {
		t.Fatalf("expected trimmed username, got %q", dto.Username)
	}
	if dto.Role != enums.RoleUser {
		t.Fatalf("expected user role, got %s", dto.Role)
	}
	if store.created == nil || store.created.PasswordHash == "hunter22" {
		t.Fatal("expected password to be hashed")
	}
}

func TestRegisterRejectsTakenUsername(t *testing.T) {
	t.Parallel()

	store := &stubUserStore{byUsername: &models.User{ID: 1, Username: "sam"}}
	svc := newTestService(t, store)

	_, err := svc.Register(context.Background(), RegisterInput{Username: "sam", Password: "hunter22"})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLoginMintsToken(t *testing.T) {
	t.Parallel()

	hash := mustHash(t, "hunter22")
	store := &stubUserStore{byUsername: &models.User{ID: 4, Username: "sam", Name: "Sam", PasswordHash: hash, Role: enums.RoleUser}}
	svc := newTestService(t, store)

	dto, err := svc.Login(context.Background(), LoginInput{Username: "sam", Password: "hunter22"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dto.Token == "" {
		t.Fatal("expected token")
	}
	if dto.User.ID != 4 {
		t.Fatalf("unexpected user: %+v", dto.User)
	}
}

func TestLoginHidesWhichCredentialFailed(t *testing.T) {
	t.Parallel()

	hash := mustHash(t, "hunter22")

	svc := newTestService(t, &stubUserStore{})
	_, unknownErr := svc.Login(context.Background(), LoginInput{Username: "ghost", Password: "hunter22"})

	svc = newTestService(t, &stubUserStore{byUsername: &models.User{ID: 4, Username: "sam", PasswordHash: hash}})
	_, wrongErr := svc.Login(context.Background(), LoginInput{Username: "sam", Password: "wrong"})

	for _, err := range []error{unknownErr, wrongErr} {
		typed := pkgerrors.As(err)
		if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
			t.Fatalf("unexpected error: %v", err)
		}
		if typed.Error() != unknownErr.Error() {
			t.Fatalf("credential failures should be indistinguishable: %v vs %v", unknownErr, err)
		}
	}
}

func TestUpdatePasswordChecksOldCredential(t *testing.T) {
	t.Parallel()

	hash := mustHash(t, "hunter22")
	store := &stubUserStore{byID: &models.User{ID: 4, PasswordHash: hash}}
	svc := newTestService(t, store)
	caller := types.Caller{ID: 4, Role: enums.RoleUser}

	err := svc.UpdatePassword(context.Background(), caller, UpdatePasswordInput{OldPassword: "wrong", NewPassword: "newpass99"})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := svc.UpdatePassword(context.Background(), caller, UpdatePasswordInput{OldPassword: "hunter22", NewPassword: "newpass99"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.newHash == "" || store.newHash == hash {
		t.Fatal("expected stored hash to change")
	}
}

func newTestService(t *testing.T, store userStore) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		Users:    store,
		JWT:      config.JWTConfig{Secret: "test-secret", Issuer: "schand-test", ExpirationMinutes: 60},
		Password: testPasswordConfig(),
	})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return svc
}

func testPasswordConfig() config.PasswordConfig {
	return config.PasswordConfig{
		ArgonMemoryKB:    8 * 1024,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	}
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := security.HashPassword(password, testPasswordConfig())
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return hash
}

type stubUserStore struct {
	byID       *models.User
	byUsername *models.User
	created    *models.User
	newHash    string
}

func (s *stubUserStore) FindByID(ctx context.Context, id int64) (*models.User, error) {
	if s.byID == nil {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *s.byID
	return &copied, nil
}

func (s *stubUserStore) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	if s.byUsername == nil {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *s.byUsername
	return &copied, nil
}

func (s *stubUserStore) Create(ctx context.Context, user *models.User) error {
	user.ID = 10
	s.created = user
	return nil
}

func (s *stubUserStore) UpdatePasswordHash(ctx context.Context, id int64, hash string) error {
	s.newHash = hash
	return nil
}
