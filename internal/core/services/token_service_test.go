package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/bizledger/bizledger_app/internal/apperrors"
	"github.com/bizledger/bizledger_app/internal/core/domain"
	portssvc "github.com/bizledger/bizledger_app/internal/core/ports/services"
	"github.com/bizledger/bizledger_app/internal/core/services"
	"github.com/bizledger/bizledger_app/internal/platform/config"
	"github.com/bizledger/bizledger_app/internal/utils"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

const testJWTSecret = "test-secret-key"

type TokenServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockUserRepository
	service      portssvc.TokenSvcFacade
}

func (suite *TokenServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	cfg := &config.Config{
		JWTSecret:                  testJWTSecret,
		JWTIssuer:                  "bizledger-test",
		JWTExpiryDuration:          15 * time.Minute,
		RefreshTokenExpiryDuration: 24 * time.Hour,
	}
	suite.service = services.NewTokenService(cfg, suite.mockUserRepo)
}

func (suite *TokenServiceTestSuite) TestGenerateAccessToken_ProducesVerifiableJWT() {
	ctx := context.Background()
	user := &domain.User{UserID: "user-1"}

	token, expiresAt, err := suite.service.GenerateAccessToken(ctx, user)

	suite.Require().NoError(err)
	suite.True(expiresAt.After(time.Now()))

	claims := jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(testJWTSecret), nil
	})
	suite.Require().NoError(err)
	suite.True(parsed.Valid)
	suite.Equal("user-1", claims.Subject)
	suite.Equal("bizledger-test", claims.Issuer)
}

func (suite *TokenServiceTestSuite) TestGenerateRefreshToken_StoresOnlyTheHash() {
	ctx := context.Background()
	user := &domain.User{UserID: "user-1"}

	var storedHash string
	suite.mockUserRepo.On("UpdateRefreshToken", ctx, "user-1", mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).
		Run(func(args mock.Arguments) {
			storedHash = args.String(2)
		}).Return(nil).Once()

	token, expiry, err := suite.service.GenerateRefreshToken(ctx, user)

	suite.Require().NoError(err)
	suite.NotEmpty(token)
	suite.True(expiry.After(time.Now()))
	suite.NotEqual(token, storedHash)
	suite.Equal(utils.HashRefreshToken(token), storedHash)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *TokenServiceTestSuite) TestValidateAndParseRefreshToken_Success() {
	ctx := context.Background()
	user := &domain.User{UserID: "user-1"}
	expiry := time.Now().UTC().Add(time.Hour)
	suite.mockUserRepo.On("FindRefreshToken", ctx, "user-1").Return(utils.HashRefreshToken("the-token"), expiry, nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, "user-1").Return(user, nil).Once()

	result, err := suite.service.ValidateAndParseRefreshToken(ctx, "user-1", "the-token")

	suite.Require().NoError(err)
	suite.Equal("user-1", result.UserID)
}

func (suite *TokenServiceTestSuite) TestValidateAndParseRefreshToken_ExpiredTokenIsCleared() {
	ctx := context.Background()
	expiry := time.Now().UTC().Add(-time.Minute)
	suite.mockUserRepo.On("FindRefreshToken", ctx, "user-1").Return(utils.HashRefreshToken("the-token"), expiry, nil).Once()
	suite.mockUserRepo.On("ClearRefreshToken", ctx, "user-1").Return(nil).Once()

	_, err := suite.service.ValidateAndParseRefreshToken(ctx, "user-1", "the-token")

	suite.ErrorIs(err, apperrors.ErrRefreshTokenExpired)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *TokenServiceTestSuite) TestValidateAndParseRefreshToken_HashMismatch() {
	ctx := context.Background()
	expiry := time.Now().UTC().Add(time.Hour)
	suite.mockUserRepo.On("FindRefreshToken", ctx, "user-1").Return(utils.HashRefreshToken("the-token"), expiry, nil).Once()

	_, err := suite.service.ValidateAndParseRefreshToken(ctx, "user-1", "a-different-token")

	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "FindUserByID", mock.Anything, mock.Anything)
}

func (suite *TokenServiceTestSuite) TestValidateAndParseRefreshToken_NoStoredToken() {
	ctx := context.Background()
	suite.mockUserRepo.On("FindRefreshToken", ctx, "user-1").Return("", time.Time{}, apperrors.ErrNotFound).Once()

	_, err := suite.service.ValidateAndParseRefreshToken(ctx, "user-1", "the-token")

	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *TokenServiceTestSuite) TestValidateAndParseRefreshToken_DeletedUser() {
	ctx := context.Background()
	deletedAt := time.Now().UTC()
	user := &domain.User{UserID: "user-1", DeletedAt: &deletedAt}
	expiry := time.Now().UTC().Add(time.Hour)
	suite.mockUserRepo.On("FindRefreshToken", ctx, "user-1").Return(utils.HashRefreshToken("the-token"), expiry, nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, "user-1").Return(user, nil).Once()

	_, err := suite.service.ValidateAndParseRefreshToken(ctx, "user-1", "the-token")

	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func TestTokenServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TokenServiceTestSuite))
}
