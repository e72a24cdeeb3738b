package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/bizledger/bizledger_app/internal/apperrors"
	"github.com/bizledger/bizledger_app/internal/core/domain"
	portssvc "github.com/bizledger/bizledger_app/internal/core/ports/services"
	"github.com/bizledger/bizledger_app/internal/core/services"
	"github.com/bizledger/bizledger_app/internal/dto"
	"github.com/bizledger/bizledger_app/internal/utils"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type UserServiceTestSuite struct {
	suite.Suite
	mockRepo *MockUserRepository
	service  portssvc.UserSvcFacade
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockUserRepository)
	suite.service = services.NewUserService(suite.mockRepo)
}

func (suite *UserServiceTestSuite) TestCreateUser_Success() {
	ctx := context.Background()
	suite.mockRepo.On("FindUserByUsername", ctx, "alice").Return(nil, "", apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.Name == "Alice" && u.UserID != ""
	}), "alice", mock.MatchedBy(func(hash string) bool {
		return utils.CheckPasswordHash("s3cret-pw", hash)
	})).Return(nil).Once()

	user, err := suite.service.CreateUser(ctx, dto.CreateUserRequest{
		Username: "alice",
		Password: "s3cret-pw",
		Name:     "Alice",
	})

	suite.Require().NoError(err)
	suite.Equal("Alice", user.Name)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestCreateUser_DuplicateUsername() {
	ctx := context.Background()
	existing := &domain.User{UserID: "user-1", Name: "Alice"}
	suite.mockRepo.On("FindUserByUsername", ctx, "alice").Return(existing, "hash", nil).Once()

	_, err := suite.service.CreateUser(ctx, dto.CreateUserRequest{
		Username: "alice",
		Password: "s3cret-pw",
		Name:     "Alice Again",
	})

	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.ErrorContains(err, services.ErrDuplicateUsername.Error())
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_Success() {
	ctx := context.Background()
	hash, err := utils.HashPassword("correct-horse")
	suite.Require().NoError(err)
	user := &domain.User{UserID: "user-1", Name: "Alice"}
	suite.mockRepo.On("FindUserByUsername", ctx, "alice").Return(user, hash, nil).Once()

	authed, err := suite.service.AuthenticateUser(ctx, "alice", "correct-horse")

	suite.Require().NoError(err)
	suite.Equal("user-1", authed.UserID)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_WrongPassword() {
	ctx := context.Background()
	hash, err := utils.HashPassword("correct-horse")
	suite.Require().NoError(err)
	user := &domain.User{UserID: "user-1"}
	suite.mockRepo.On("FindUserByUsername", ctx, "alice").Return(user, hash, nil).Once()

	_, err = suite.service.AuthenticateUser(ctx, "alice", "wrong-password")

	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_UnknownUsername() {
	ctx := context.Background()
	suite.mockRepo.On("FindUserByUsername", ctx, "ghost").Return(nil, "", apperrors.ErrNotFound).Once()

	_, err := suite.service.AuthenticateUser(ctx, "ghost", "whatever")

	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_DeletedUser() {
	ctx := context.Background()
	deletedAt := time.Now().UTC()
	user := &domain.User{UserID: "user-1", DeletedAt: &deletedAt}
	suite.mockRepo.On("FindUserByUsername", ctx, "alice").Return(user, "hash", nil).Once()

	_, err := suite.service.AuthenticateUser(ctx, "alice", "correct-horse")

	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *UserServiceTestSuite) TestFindOrCreateOAuthUser_ReturnsExisting() {
	ctx := context.Background()
	user := &domain.User{UserID: "user-1", Name: "Alice"}
	suite.mockRepo.On("FindUserByUsername", ctx, "alice@example.com").Return(user, "hash", nil).Once()

	found, err := suite.service.FindOrCreateOAuthUser(ctx, "alice@example.com", "Alice")

	suite.Require().NoError(err)
	suite.Equal("user-1", found.UserID)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestFindOrCreateOAuthUser_ProvisionsNewUser() {
	ctx := context.Background()
	// The lookup runs twice: once here and once inside CreateUser.
	suite.mockRepo.On("FindUserByUsername", ctx, "bob@example.com").Return(nil, "", apperrors.ErrNotFound).Twice()
	suite.mockRepo.On("SaveUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.Name == "Bob"
	}), "bob@example.com", mock.AnythingOfType("string")).Return(nil).Once()

	created, err := suite.service.FindOrCreateOAuthUser(ctx, "bob@example.com", "Bob")

	suite.Require().NoError(err)
	suite.Equal("Bob", created.Name)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestUpdateUser_SelfOnly() {
	ctx := context.Background()

	_, err := suite.service.UpdateUser(ctx, "user-2", dto.UpdateUserRequest{}, "user-1")

	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestDeleteUser_MarksDeleted() {
	ctx := context.Background()
	user := &domain.User{UserID: "user-1"}
	suite.mockRepo.On("FindUserByID", ctx, "user-1").Return(user, nil).Once()
	suite.mockRepo.On("MarkUserDeleted", ctx, "user-1", mock.AnythingOfType("time.Time"), "user-1").Return(nil).Once()

	err := suite.service.DeleteUser(ctx, "user-1", "user-1")

	suite.NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestGetUserByID_HidesDeletedUsers() {
	ctx := context.Background()
	deletedAt := time.Now().UTC()
	user := &domain.User{UserID: "user-1", DeletedAt: &deletedAt}
	suite.mockRepo.On("FindUserByID", ctx, "user-1").Return(user, nil).Once()

	_, err := suite.service.GetUserByID(ctx, "user-1")

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
