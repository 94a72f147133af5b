package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"job-board/internal/apperr"
	"job-board/internal/auth"
	"job-board/internal/domain"
)

func newUserServiceForTest(t *testing.T) (UserService, *fakeUserRepo, *auth.TokenService) {
	t.Helper()
	repo := newFakeUserRepo()
	tokens := newTestTokens(t)
	log, _ := newTestLogger()
	return NewUserService(repo, newTestCredentials(), tokens, log), repo, tokens
}

func validRegister() RegisterInput {
	return RegisterInput{
		Name:     "Alice Seeker",
		Email:    "alice@example.com",
		Phone:    "+37120000000",
		Password: "password123",
		Role:     string(domain.RoleJobSeeker),
	}
}

func assertAppErr(t *testing.T, err error, kind apperr.Kind, msg string) {
	t.Helper()
	require.Error(t, err)
	var appErr *apperr.Error
	require.True(t, errors.As(err, &appErr), "expected *apperr.Error, got %T: %v", err, err)
	assert.Equal(t, kind, appErr.Kind)
	if msg != "" {
		assert.Equal(t, msg, appErr.Message)
	}
}

func TestRegisterIssuesVerifiableToken(t *testing.T) {
	svc, repo, tokens := newUserServiceForTest(t)

	session, err := svc.Register(context.Background(), validRegister())
	require.NoError(t, err)
	require.NotNil(t, session.User)
	assert.NotEmpty(t, session.User.ID)
	assert.Empty(t, session.User.PasswordHash)
	assert.Equal(t, domain.RoleJobSeeker, session.User.Role)

	userID, err := tokens.Verify(session.Token)
	require.NoError(t, err)
	assert.Equal(t, session.User.ID, userID)

	stored, err := repo.GetByID(context.Background(), userID)
	require.NoError(t, err)
	assert.NotEqual(t, "password123", stored.PasswordHash)
	assert.Empty(t, stored.Password)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, repo, _ := newUserServiceForTest(t)
	_, err := svc.Register(context.Background(), validRegister())
	require.NoError(t, err)

	again := validRegister()
	again.Email = "  ALICE@example.com "
	_, err = svc.Register(context.Background(), again)
	assertAppErr(t, err, apperr.KindDuplicate, "Email already registered!")
	assert.Equal(t, 1, repo.count())
}

func TestRegisterRaceOnCreate(t *testing.T) {
	svc, repo, _ := newUserServiceForTest(t)
	repo.createErr = func(u *domain.User) error {
		// another request inserted the same email between lookup and insert
		repo.byID["other"] = domain.User{ID: "other", Email: u.Email}
		return nil
	}

	_, err := svc.Register(context.Background(), validRegister())
	assertAppErr(t, err, apperr.KindDuplicate, "Email already registered!")
}

func TestRegisterValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*RegisterInput)
		msg    string
	}{
		{"missing name", func(in *RegisterInput) { in.Name = "  " }, "Please fill full form!"},
		{"missing role", func(in *RegisterInput) { in.Role = "" }, "Please fill full form!"},
		{"short name", func(in *RegisterInput) { in.Name = "Al" }, "Name must contain at least 3 Characters!"},
		{"bad email", func(in *RegisterInput) { in.Email = "not-an-email" }, "Please provide a valid Email!"},
		{"bad phone", func(in *RegisterInput) { in.Phone = "call me" }, "Please provide a valid Phone Number!"},
		{"short password", func(in *RegisterInput) { in.Password = "short" }, "Password must contain at least 8 characters!"},
		{"long password", func(in *RegisterInput) { in.Password = "0123456789012345678901234567890123" }, "Password cannot exceed 32 characters!"},
		{"unknown role", func(in *RegisterInput) { in.Role = "Admin" }, "Please select a role"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _ := newUserServiceForTest(t)
			in := validRegister()
			tt.mutate(&in)
			_, err := svc.Register(context.Background(), in)
			assertAppErr(t, err, apperr.KindValidation, tt.msg)
			assert.Zero(t, repo.count())
		})
	}
}

func TestLogin(t *testing.T) {
	svc, _, tokens := newUserServiceForTest(t)
	registered, err := svc.Register(context.Background(), validRegister())
	require.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		session, err := svc.Login(context.Background(), LoginInput{
			Email: "Alice@Example.com", Password: "password123", Role: string(domain.RoleJobSeeker),
		})
		require.NoError(t, err)
		userID, err := tokens.Verify(session.Token)
		require.NoError(t, err)
		assert.Equal(t, registered.User.ID, userID)
	})

	t.Run("wrong password", func(t *testing.T) {
		session, err := svc.Login(context.Background(), LoginInput{
			Email: "alice@example.com", Password: "password124", Role: string(domain.RoleJobSeeker),
		})
		assertAppErr(t, err, apperr.KindUnauthorized, "Invalid Email Or Password.")
		assert.Nil(t, session)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(context.Background(), LoginInput{
			Email: "bob@example.com", Password: "password123", Role: string(domain.RoleJobSeeker),
		})
		assertAppErr(t, err, apperr.KindUnauthorized, "Invalid Email Or Password.")
	})

	t.Run("wrong role", func(t *testing.T) {
		session, err := svc.Login(context.Background(), LoginInput{
			Email: "alice@example.com", Password: "password123", Role: string(domain.RoleEmployer),
		})
		assertAppErr(t, err, apperr.KindUnauthorized, "User with provided email and Employer not found!")
		assert.Nil(t, session)
	})

	t.Run("missing fields", func(t *testing.T) {
		_, err := svc.Login(context.Background(), LoginInput{Email: "alice@example.com"})
		assertAppErr(t, err, apperr.KindValidation, "Please provide email, password, and role.")
	})
}

func TestResolveSession(t *testing.T) {
	svc, repo, tokens := newUserServiceForTest(t)
	session, err := svc.Register(context.Background(), validRegister())
	require.NoError(t, err)

	user, err := svc.ResolveSession(context.Background(), session.Token)
	require.NoError(t, err)
	assert.Equal(t, session.User.ID, user.ID)
	assert.Empty(t, user.PasswordHash)

	_, err = svc.ResolveSession(context.Background(), "")
	assertAppErr(t, err, apperr.KindUnauthorized, "User Not Authorized")

	_, err = svc.ResolveSession(context.Background(), "garbage")
	assertAppErr(t, err, apperr.KindUnauthorized, "Json Web Token is invalid, Try again!")

	past := tokens.WithClock(func() time.Time { return time.Now().Add(-2 * time.Hour) })
	expired, err := past.Issue(session.User.ID)
	require.NoError(t, err)
	_, err = svc.ResolveSession(context.Background(), expired)
	assertAppErr(t, err, apperr.KindUnauthorized, "Json Web Token is expired, Try again!")
	assert.ErrorIs(t, err, auth.ErrExpired)

	orphan, err := tokens.Issue("deleted-user")
	require.NoError(t, err)
	_, err = svc.ResolveSession(context.Background(), orphan)
	assertAppErr(t, err, apperr.KindUnauthorized, "User Not Authorized")

	_, err = repo.GetByID(context.Background(), "deleted-user")
	require.Error(t, err)
}

func TestGetByID(t *testing.T) {
	svc, _, _ := newUserServiceForTest(t)
	_, err := svc.GetByID(context.Background(), "nope")
	assertAppErr(t, err, apperr.KindNotFound, "")
}
