package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/andreihelo/simple-login-api/internal/config"
	"github.com/andreihelo/simple-login-api/internal/domain"
	"github.com/andreihelo/simple-login-api/internal/repository"
	"github.com/andreihelo/simple-login-api/internal/service"
	"github.com/andreihelo/simple-login-api/internal/validation"
)

func newService(t *testing.T, cfg config.Config) (*service.AccountService, *memoryUserRepo) {
	t.Helper()
	repo := newMemoryUserRepo()
	return service.NewAccountService(repo, cfg, zap.NewNop()), repo
}

func signUpInput() service.SignUpInput {
	return service.SignUpInput{
		Username:             "validuser1",
		FirstName:            "A",
		LastName:             "B",
		Password:             "secret1",
		PasswordConfirmation: "secret1",
	}
}

func TestSignUpSucceeds(t *testing.T) {
	svc, _ := newService(t, config.Config{})

	created, err := svc.SignUp(context.Background(), signUpInput())
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	require.Equal(t, "validuser1", created.Username)
	require.Nil(t, created.Token, "signup leaves the user signed out by default")
}

func TestSignUpTokenOnSignupPolicy(t *testing.T) {
	svc, _ := newService(t, config.Config{TokenOnSignup: true})

	created, err := svc.SignUp(context.Background(), signUpInput())
	require.NoError(t, err)
	require.NotNil(t, created.Token)
	require.NotEmpty(t, *created.Token)
}

func TestSignUpCollectsViolations(t *testing.T) {
	svc, _ := newService(t, config.Config{})

	in := signUpInput()
	in.Username = "ab"
	in.PasswordConfirmation = "secret2"
	_, err := svc.SignUp(context.Background(), in)

	var verr *service.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Contains(t, verr.Fields[validation.FieldUsername], "Username must be between 6 and 15 characters long")
	require.Contains(t, verr.Fields[validation.FieldPassword], validation.MsgConfirmationMatch)
}

func TestSignUpDuplicateUsername(t *testing.T) {
	svc, _ := newService(t, config.Config{})
	ctx := context.Background()

	_, err := svc.SignUp(ctx, signUpInput())
	require.NoError(t, err)

	_, err = svc.SignUp(ctx, signUpInput())
	var verr *service.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, []string{validation.MsgUsernameTaken}, verr.Fields[validation.FieldUsername])
}

func TestSignInIssuesFreshToken(t *testing.T) {
	svc, _ := newService(t, config.Config{})
	ctx := context.Background()

	_, err := svc.SignUp(ctx, signUpInput())
	require.NoError(t, err)

	first, err := svc.SignIn(ctx, "validuser1", "secret1")
	require.NoError(t, err)
	require.NotNil(t, first.Token)

	second, err := svc.SignIn(ctx, "validuser1", "secret1")
	require.NoError(t, err)
	require.NotNil(t, second.Token)
	require.NotEqual(t, *first.Token, *second.Token)
}

func TestSignInRejectsBadCredentials(t *testing.T) {
	svc, _ := newService(t, config.Config{})
	ctx := context.Background()

	_, err := svc.SignUp(ctx, signUpInput())
	require.NoError(t, err)

	_, err = svc.SignIn(ctx, "validuser1", "wrongpass")
	require.ErrorIs(t, err, service.ErrInvalidCredentials)

	// Unknown username answers identically.
	_, err = svc.SignIn(ctx, "nosuchuser", "secret1")
	require.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestProfileByToken(t *testing.T) {
	svc, _ := newService(t, config.Config{})
	ctx := context.Background()

	_, err := svc.SignUp(ctx, signUpInput())
	require.NoError(t, err)
	signedIn, err := svc.SignIn(ctx, "validuser1", "secret1")
	require.NoError(t, err)

	user, err := svc.Profile(ctx, *signedIn.Token)
	require.NoError(t, err)
	require.Equal(t, "validuser1", user.Username)

	_, err = svc.Profile(ctx, "never-issued")
	require.ErrorIs(t, err, service.ErrNotFound)
}

func TestUpdateProfileMergesOnlySuppliedFields(t *testing.T) {
	svc, _ := newService(t, config.Config{})
	ctx := context.Background()

	_, err := svc.SignUp(ctx, signUpInput())
	require.NoError(t, err)
	signedIn, err := svc.SignIn(ctx, "validuser1", "secret1")
	require.NoError(t, err)

	first := "Carol"
	updated, err := svc.UpdateProfile(ctx, *signedIn.Token, service.UpdateInput{FirstName: &first})
	require.NoError(t, err)
	require.Equal(t, "Carol", updated.FirstName)
	require.Equal(t, "B", updated.LastName)
	require.Equal(t, "secret1", updated.Password)
}

func TestUpdateProfileRevalidates(t *testing.T) {
	svc, _ := newService(t, config.Config{})
	ctx := context.Background()

	_, err := svc.SignUp(ctx, signUpInput())
	require.NoError(t, err)
	signedIn, err := svc.SignIn(ctx, "validuser1", "secret1")
	require.NoError(t, err)

	short := "abc"
	_, err = svc.UpdateProfile(ctx, *signedIn.Token, service.UpdateInput{
		Password:             &short,
		PasswordConfirmation: &short,
	})
	var verr *service.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Contains(t, verr.Fields[validation.FieldPassword], "Password must be at least 6 characters long")
}

func TestUpdateProfileUnknownToken(t *testing.T) {
	svc, _ := newService(t, config.Config{})
	first := "X"
	_, err := svc.UpdateProfile(context.Background(), "never-issued", service.UpdateInput{FirstName: &first})
	require.ErrorIs(t, err, service.ErrNotFound)
}

func TestSignOutTwice(t *testing.T) {
	svc, _ := newService(t, config.Config{})
	ctx := context.Background()

	_, err := svc.SignUp(ctx, signUpInput())
	require.NoError(t, err)
	signedIn, err := svc.SignIn(ctx, "validuser1", "secret1")
	require.NoError(t, err)
	token := *signedIn.Token

	require.NoError(t, svc.SignOut(ctx, token))
	require.ErrorIs(t, svc.SignOut(ctx, token), service.ErrNotFound)
}

func TestDeleteThenFetch(t *testing.T) {
	svc, repo := newService(t, config.Config{})
	ctx := context.Background()

	_, err := svc.SignUp(ctx, signUpInput())
	require.NoError(t, err)
	signedIn, err := svc.SignIn(ctx, "validuser1", "secret1")
	require.NoError(t, err)
	token := *signedIn.Token

	require.NoError(t, svc.Delete(ctx, token))
	_, err = svc.Profile(ctx, token)
	require.ErrorIs(t, err, service.ErrNotFound)
	require.Empty(t, repo.users, "the record is gone for good")

	require.ErrorIs(t, svc.Delete(ctx, token), service.ErrNotFound)
}

// memoryUserRepo mirrors the store's atomic semantics: a username unique
// check on insert and single-operation token writes.
type memoryUserRepo struct {
	nextID int64
	users  map[int64]domain.User
}

var _ repository.UserRepository = (*memoryUserRepo)(nil)

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{nextID: 1, users: make(map[int64]domain.User)}
}

func (m *memoryUserRepo) Insert(ctx context.Context, user domain.User) (domain.User, error) {
	for _, existing := range m.users {
		if existing.Username == user.Username {
			return domain.User{}, repository.ErrDuplicateUsername
		}
	}
	user.ID = m.nextID
	m.nextID++
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	m.users[user.ID] = user
	return user, nil
}

func (m *memoryUserRepo) FindByToken(ctx context.Context, token string) (domain.User, error) {
	for _, u := range m.users {
		if u.Token != nil && *u.Token == token {
			return u, nil
		}
	}
	return domain.User{}, repository.ErrNotFound
}

func (m *memoryUserRepo) FindByCredentials(ctx context.Context, username, password string) (domain.User, error) {
	for _, u := range m.users {
		if u.Username == username && u.Password == password {
			return u, nil
		}
	}
	return domain.User{}, repository.ErrNotFound
}

func (m *memoryUserRepo) Update(ctx context.Context, user domain.User) (domain.User, error) {
	stored, ok := m.users[user.ID]
	if !ok {
		return domain.User{}, repository.ErrNotFound
	}
	stored.FirstName = user.FirstName
	stored.LastName = user.LastName
	stored.Password = user.Password
	stored.PasswordConfirmation = user.PasswordConfirmation
	stored.UpdatedAt = time.Now()
	m.users[user.ID] = stored
	return stored, nil
}

func (m *memoryUserRepo) SetToken(ctx context.Context, id int64, token *string) (domain.User, error) {
	stored, ok := m.users[id]
	if !ok {
		return domain.User{}, repository.ErrNotFound
	}
	stored.Token = token
	stored.UpdatedAt = time.Now()
	m.users[id] = stored
	return stored, nil
}

func (m *memoryUserRepo) ClearToken(ctx context.Context, token string) error {
	for id, u := range m.users {
		if u.Token != nil && *u.Token == token {
			u.Token = nil
			m.users[id] = u
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *memoryUserRepo) DeleteByToken(ctx context.Context, token string) error {
	for id, u := range m.users {
		if u.Token != nil && *u.Token == token {
			delete(m.users, id)
			return nil
		}
	}
	return repository.ErrNotFound
}
