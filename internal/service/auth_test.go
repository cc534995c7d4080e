package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/authgate/authgate-go/internal/crypto"
	"github.com/authgate/authgate-go/internal/model"
	"github.com/authgate/authgate-go/internal/testutil"
)

const testSecret = "test-secret"

// newTestService uses bcrypt's minimum cost to keep hashing fast in tests.
func newTestService() (*AuthService, *testutil.MemStore) {
	store := testutil.NewMemStore()
	svc := NewAuthService(store, bcrypt.MinCost, testSecret, time.Hour)
	return svc, store
}

func TestRegister(t *testing.T) {
	svc, store := newTestService()

	resp, err := svc.Register(context.Background(), model.RegisterRequest{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "s3cret",
	})
	require.NoError(t, err)

	assert.Equal(t, "Ada", resp.User.Name)
	assert.Equal(t, "ada@example.com", resp.User.Email)
	assert.NotZero(t, resp.User.ID)
	assert.Equal(t, 1, store.Count())

	// The returned token verifies back to the created account.
	claims, err := crypto.ValidateToken(resp.Token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, store := newTestService()

	req := model.RegisterRequest{Name: "Ada", Email: "ada@example.com", Password: "s3cret"}
	_, err := svc.Register(context.Background(), req)
	require.NoError(t, err)

	req.Name = "Adb"
	_, err = svc.Register(context.Background(), req)
	assert.ErrorIs(t, err, ErrEmailTaken)
	assert.Equal(t, 1, store.Count(), "failed registration must not persist an account")
}

func TestRegisterEmailCaseSensitive(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Register(context.Background(), model.RegisterRequest{
		Name: "Ada", Email: "ada@example.com", Password: "s3cret",
	})
	require.NoError(t, err)

	// Emails compare as given, so a different casing is a different account.
	_, err = svc.Register(context.Background(), model.RegisterRequest{
		Name: "Ada", Email: "Ada@example.com", Password: "s3cret",
	})
	assert.NoError(t, err)
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newTestService()

	tests := []struct {
		name    string
		req     model.RegisterRequest
		wantErr error
	}{
		{"empty name", model.RegisterRequest{Email: "a@b.c", Password: "pw"}, ErrNameRequired},
		{"empty email", model.RegisterRequest{Name: "Ada", Password: "pw"}, ErrEmailRequired},
		{"empty password", model.RegisterRequest{Name: "Ada", Email: "a@b.c"}, ErrPasswordRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLogin(t *testing.T) {
	svc, _ := newTestService()

	reg, err := svc.Register(context.Background(), model.RegisterRequest{
		Name: "Ada", Email: "ada@example.com", Password: "s3cret",
	})
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), model.LoginRequest{
		Email:    "ada@example.com",
		Password: "s3cret",
	})
	require.NoError(t, err)

	claims, err := crypto.ValidateToken(resp.Token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, claims.UserID)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Register(context.Background(), model.RegisterRequest{
		Name: "Ada", Email: "ada@example.com", Password: "s3cret",
	})
	require.NoError(t, err)

	_, wrongPassword := svc.Login(context.Background(), model.LoginRequest{
		Email: "ada@example.com", Password: "not-the-password",
	})
	_, unknownEmail := svc.Login(context.Background(), model.LoginRequest{
		Email: "nobody@example.com", Password: "s3cret",
	})

	assert.ErrorIs(t, wrongPassword, ErrInvalidCredentials)
	assert.ErrorIs(t, unknownEmail, ErrInvalidCredentials)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestLoginCorruptedHash(t *testing.T) {
	svc, store := newTestService()

	reg, err := svc.Register(context.Background(), model.RegisterRequest{
		Name: "Ada", Email: "ada@example.com", Password: "s3cret",
	})
	require.NoError(t, err)

	store.SetPasswordHash(reg.User.ID, "garbage-not-a-hash")

	_, err = svc.Login(context.Background(), model.LoginRequest{
		Email: "ada@example.com", Password: "s3cret",
	})
	// Data corruption is an internal error, not a credentials failure.
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
	assert.ErrorIs(t, err, crypto.ErrInvalidHash)
}

func TestRegisterConcurrentSameEmail(t *testing.T) {
	svc, store := newTestService()

	const workers = 8
	var wg sync.WaitGroup
	errs := make([]error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Register(context.Background(), model.RegisterRequest{
				Name: "Ada", Email: "ada@example.com", Password: "s3cret",
			})
		}(i)
	}
	wg.Wait()

	var succeeded int
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, ErrEmailTaken)
		}
	}
	assert.Equal(t, 1, succeeded, "exactly one concurrent registration must win")
	assert.Equal(t, 1, store.Count())
}

func TestGetAccount(t *testing.T) {
	svc, _ := newTestService()

	reg, err := svc.Register(context.Background(), model.RegisterRequest{
		Name: "Ada", Email: "ada@example.com", Password: "s3cret",
	})
	require.NoError(t, err)

	got, err := svc.GetAccount(context.Background(), reg.User.ID)
	require.NoError(t, err)
	assert.Equal(t, reg.User, got)
}
