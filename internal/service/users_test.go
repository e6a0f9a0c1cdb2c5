package service

import (
	"context"
	"testing"

	apperrors "tasks/internal/domain/errors"
	"tasks/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) UserExists(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) CreateUser(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) DeleteUser(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestUserRegister(t *testing.T) {
	t.Run("successful registration", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("UserExists", mock.Anything, mock.AnythingOfType("string")).Return(false, nil)
		mockRepo.On("CreateUser", mock.Anything, mock.AnythingOfType("string")).Return(nil)

		svc := NewUserService(mockRepo)
		res, err := svc.Register(context.Background())

		assert.NoError(t, err)
		assert.False(t, res.Failed())
		user, ok := res.Data["user"].(models.User)
		assert.True(t, ok)
		assert.Len(t, user.ID, 6)
		mockRepo.AssertExpectations(t)
	})

	t.Run("retries on ID collision", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("UserExists", mock.Anything, mock.AnythingOfType("string")).Return(true, nil).Twice()
		mockRepo.On("UserExists", mock.Anything, mock.AnythingOfType("string")).Return(false, nil).Once()
		mockRepo.On("CreateUser", mock.Anything, mock.AnythingOfType("string")).Return(nil)

		svc := NewUserService(mockRepo)
		res, err := svc.Register(context.Background())

		assert.NoError(t, err)
		assert.False(t, res.Failed())
		mockRepo.AssertNumberOfCalls(t, "UserExists", 3)
		mockRepo.AssertNumberOfCalls(t, "CreateUser", 1)
	})

	t.Run("infrastructure error propagates", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("UserExists", mock.Anything, mock.AnythingOfType("string")).Return(false, apperrors.ErrDatabaseConnection)

		svc := NewUserService(mockRepo)
		_, err := svc.Register(context.Background())

		assert.Error(t, err)
	})
}

func TestUserFind(t *testing.T) {
	tests := []struct {
		name string
		id   string
		want struct {
			fails []string
		}
		mockSetup func(*MockUserRepository)
	}{
		{
			name: "existing user",
			id:   "A3F90Q",
			want: struct{ fails []string }{fails: nil},
			mockSetup: func(mockRepo *MockUserRepository) {
				mockRepo.On("UserExists", mock.Anything, "A3F90Q").Return(true, nil)
			},
		},
		{
			name: "malformed ID skips storage",
			id:   "bad",
			want: struct{ fails []string }{
				fails: []string{"ID is not a valid format"},
			},
			mockSetup: func(mockRepo *MockUserRepository) {},
		},
		{
			name: "unknown ID",
			id:   "ZZZZZ9",
			want: struct{ fails []string }{
				fails: []string{"Account does not exist with ID"},
			},
			mockSetup: func(mockRepo *MockUserRepository) {
				mockRepo.On("UserExists", mock.Anything, "ZZZZZ9").Return(false, nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.mockSetup(mockRepo)

			svc := NewUserService(mockRepo)
			res, err := svc.Find(context.Background(), tt.id)

			assert.NoError(t, err)
			assert.Equal(t, tt.want.fails, res.Fails)
			if len(tt.want.fails) == 0 {
				assert.Equal(t, models.User{ID: tt.id}, res.Data["user"])
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestUserRemove(t *testing.T) {
	tests := []struct {
		name string
		id   string
		want struct {
			fails   []string
			deleted bool
		}
	}{
		{
			name: "valid ID deletes and returns null data",
			id:   "A3F90Q",
			want: struct {
				fails   []string
				deleted bool
			}{fails: nil, deleted: true},
		},
		{
			name: "malformed ID fails without touching storage",
			id:   "no",
			want: struct {
				fails   []string
				deleted bool
			}{fails: []string{"ID is not a valid format"}, deleted: false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			if tt.want.deleted {
				mockRepo.On("DeleteUser", mock.Anything, tt.id).Return(nil)
			}

			svc := NewUserService(mockRepo)
			res, err := svc.Remove(context.Background(), tt.id)

			assert.NoError(t, err)
			assert.Equal(t, tt.want.fails, res.Fails)
			if tt.want.deleted {
				assert.Nil(t, res.Data, "delete success carries null data")
			}
			mockRepo.AssertExpectations(t)
		})
	}
}
