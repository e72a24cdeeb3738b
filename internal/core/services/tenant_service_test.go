package services_test

import (
	"context"
	"testing"

	"github.com/bizledger/bizledger_app/internal/apperrors"
	"github.com/bizledger/bizledger_app/internal/core/domain"
	portssvc "github.com/bizledger/bizledger_app/internal/core/ports/services"
	"github.com/bizledger/bizledger_app/internal/core/services"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type TenantServiceTestSuite struct {
	suite.Suite
	mockRepo *MockTenantRepository
	service  portssvc.TenantSvcFacade
}

func (suite *TenantServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockTenantRepository)
	suite.service = services.NewTenantService(suite.mockRepo)
}

func (suite *TenantServiceTestSuite) membership(role domain.UserTenantRole) *domain.UserTenant {
	return &domain.UserTenant{UserID: "user-1", TenantID: "tenant-1", Role: role}
}

func (suite *TenantServiceTestSuite) TestAuthorizeUserAction_AdminMeetsMemberRequirement() {
	ctx := context.Background()
	suite.mockRepo.On("FindUserTenantRole", ctx, "user-1", "tenant-1").Return(suite.membership(domain.RoleAdmin), nil).Once()

	err := suite.service.AuthorizeUserAction(ctx, "user-1", "tenant-1", domain.RoleMember)

	suite.NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TenantServiceTestSuite) TestAuthorizeUserAction_ReadOnlyCannotWrite() {
	ctx := context.Background()
	suite.mockRepo.On("FindUserTenantRole", ctx, "user-1", "tenant-1").Return(suite.membership(domain.RoleReadOnly), nil).Once()

	err := suite.service.AuthorizeUserAction(ctx, "user-1", "tenant-1", domain.RoleMember)

	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *TenantServiceTestSuite) TestAuthorizeUserAction_RemovedMemberFailsEverything() {
	ctx := context.Background()
	suite.mockRepo.On("FindUserTenantRole", ctx, "user-1", "tenant-1").Return(suite.membership(domain.RoleRemoved), nil).Once()

	err := suite.service.AuthorizeUserAction(ctx, "user-1", "tenant-1", domain.RoleReadOnly)

	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *TenantServiceTestSuite) TestAuthorizeUserAction_NonMemberIsForbidden() {
	ctx := context.Background()
	suite.mockRepo.On("FindUserTenantRole", ctx, "user-1", "tenant-1").Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.AuthorizeUserAction(ctx, "user-1", "tenant-1", domain.RoleReadOnly)

	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *TenantServiceTestSuite) TestCreateTenant_MakesCreatorAdmin() {
	ctx := context.Background()
	suite.mockRepo.On("SaveTenant", ctx, mock.MatchedBy(func(t domain.Tenant) bool {
		return t.Name == "Acme" && t.IsActive && t.DefaultCurrencyCode != nil && *t.DefaultCurrencyCode == "EUR"
	})).Return(nil).Once()
	suite.mockRepo.On("AddUserToTenant", ctx, mock.MatchedBy(func(m domain.UserTenant) bool {
		return m.UserID == "user-1" && m.Role == domain.RoleAdmin
	})).Return(nil).Once()

	tenant, err := suite.service.CreateTenant(ctx, "Acme", "Main company", "EUR", "user-1")

	suite.Require().NoError(err)
	suite.Equal("Acme", tenant.Name)
	// Self-assignment skips the authorization lookup.
	suite.mockRepo.AssertNotCalled(suite.T(), "FindUserTenantRole", mock.Anything, mock.Anything, mock.Anything)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TenantServiceTestSuite) TestAddUserToTenant_RequiresAdminForOthers() {
	ctx := context.Background()
	suite.mockRepo.On("FindUserTenantRole", ctx, "user-1", "tenant-1").Return(suite.membership(domain.RoleMember), nil).Once()

	err := suite.service.AddUserToTenant(ctx, "user-1", "user-2", "tenant-1", domain.RoleMember)

	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockRepo.AssertNotCalled(suite.T(), "AddUserToTenant", mock.Anything, mock.Anything)
}

func (suite *TenantServiceTestSuite) TestRemoveUserFromTenant_MarksRoleRemoved() {
	ctx := context.Background()
	suite.mockRepo.On("FindUserTenantRole", ctx, "user-1", "tenant-1").Return(suite.membership(domain.RoleAdmin), nil).Once()
	suite.mockRepo.On("UpdateUserTenantRole", ctx, "user-2", "tenant-1", domain.RoleRemoved).Return(nil).Once()

	err := suite.service.RemoveUserFromTenant(ctx, "user-1", "user-2", "tenant-1")

	suite.NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TenantServiceTestSuite) TestRemoveUserFromTenant_RejectsSelfRemoval() {
	ctx := context.Background()
	suite.mockRepo.On("FindUserTenantRole", ctx, "user-1", "tenant-1").Return(suite.membership(domain.RoleAdmin), nil).Once()

	err := suite.service.RemoveUserFromTenant(ctx, "user-1", "user-1", "tenant-1")

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateUserTenantRole", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TenantServiceTestSuite) TestListUserTenants_FiltersInactiveByDefault() {
	ctx := context.Background()
	tenants := []domain.Tenant{
		{TenantID: "tenant-1", Name: "Active Co", IsActive: true},
		{TenantID: "tenant-2", Name: "Closed Co", IsActive: false},
	}
	suite.mockRepo.On("ListTenantsByUserID", ctx, "user-1").Return(tenants, nil).Once()

	result, err := suite.service.ListUserTenants(ctx, "user-1", false)

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.Equal("tenant-1", result[0].TenantID)
}

func (suite *TenantServiceTestSuite) TestListUserTenants_IncludeDisabledKeepsAll() {
	ctx := context.Background()
	tenants := []domain.Tenant{
		{TenantID: "tenant-1", IsActive: true},
		{TenantID: "tenant-2", IsActive: false},
	}
	suite.mockRepo.On("ListTenantsByUserID", ctx, "user-1").Return(tenants, nil).Once()

	result, err := suite.service.ListUserTenants(ctx, "user-1", true)

	suite.Require().NoError(err)
	suite.Len(result, 2)
}

func (suite *TenantServiceTestSuite) TestDeactivateTenant_NoopWhenAlreadyInactive() {
	ctx := context.Background()
	suite.mockRepo.On("FindUserTenantRole", ctx, "user-1", "tenant-1").Return(suite.membership(domain.RoleAdmin), nil).Once()
	suite.mockRepo.On("FindTenantByID", ctx, "tenant-1").Return(&domain.Tenant{TenantID: "tenant-1", IsActive: false}, nil).Once()

	err := suite.service.DeactivateTenant(ctx, "tenant-1", "user-1")

	suite.NoError(err)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateTenant", mock.Anything, mock.Anything)
}

func TestTenantServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TenantServiceTestSuite))
}
