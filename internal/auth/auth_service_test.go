package auth_test

import (
	"context"
	"errors"
	"testing"

	"tireops/internal/auth"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

type fakeAuthRepository struct {
	getByEmailFn func(ctx context.Context, email string) (*auth.User, error)
	getByIDFn    func(ctx context.Context, id uuid.UUID) (*auth.User, error)
}

func (f *fakeAuthRepository) GetByEmail(ctx context.Context, email string) (*auth.User, error) {
	if f.getByEmailFn != nil {
		return f.getByEmailFn(ctx, email)
	}
	return nil, errors.New("not found")
}

func (f *fakeAuthRepository) GetByID(ctx context.Context, id uuid.UUID) (*auth.User, error) {
	if f.getByIDFn != nil {
		return f.getByIDFn(ctx, id)
	}
	return nil, errors.New("not found")
}

func TestAuthService_Login(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.MinCost)
	assert.NoError(t, err)

	personnelID := uuid.New()
	user := &auth.User{
		ID:          uuid.New(),
		PersonnelID: &personnelID,
		Email:       "warehouse@tireops.local",
		Password:    string(hash),
		Name:        "Warehouse Admin",
		Role:        "ADMIN",
	}

	t.Run("success", func(t *testing.T) {
		repo := &fakeAuthRepository{
			getByEmailFn: func(ctx context.Context, email string) (*auth.User, error) {
				assert.Equal(t, user.Email, email)
				return user, nil
			},
		}
		svc := auth.NewService(repo)

		access, refresh, resp, err := svc.Login(ctx, user.Email, "correct-password")

		assert.NoError(t, err)
		assert.NotEmpty(t, access)
		assert.NotEmpty(t, refresh)
		assert.Equal(t, "ADMIN", resp.Role)
		assert.Equal(t, personnelID.String(), resp.PersonnelID)
	})

	t.Run("negative wrong password", func(t *testing.T) {
		repo := &fakeAuthRepository{
			getByEmailFn: func(ctx context.Context, email string) (*auth.User, error) {
				return user, nil
			},
		}
		svc := auth.NewService(repo)

		_, _, _, err := svc.Login(ctx, user.Email, "wrong-password")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid email or password")
	})

	t.Run("negative unknown email", func(t *testing.T) {
		repo := &fakeAuthRepository{
			getByEmailFn: func(ctx context.Context, email string) (*auth.User, error) {
				return nil, errors.New("record not found")
			},
		}
		svc := auth.NewService(repo)

		_, _, _, err := svc.Login(ctx, "nobody@tireops.local", "whatever")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid email or password")
	})
}

func TestAuthService_GetMe(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("success", func(t *testing.T) {
		repo := &fakeAuthRepository{
			getByIDFn: func(ctx context.Context, id uuid.UUID) (*auth.User, error) {
				assert.Equal(t, userID, id)
				return &auth.User{ID: id, Email: "me@tireops.local", Name: "Me", Role: "COACH"}, nil
			},
		}
		svc := auth.NewService(repo)

		resp, err := svc.GetMe(ctx, userID.String())

		assert.NoError(t, err)
		assert.Equal(t, "COACH", resp.Role)
	})

	t.Run("negative invalid user id", func(t *testing.T) {
		svc := auth.NewService(&fakeAuthRepository{})

		_, err := svc.GetMe(ctx, "not-a-uuid")

		assert.Error(t, err)
	})
}
