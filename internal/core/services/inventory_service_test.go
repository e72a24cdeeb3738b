package services_test

import (
	"context"
	"testing"

	"github.com/bizledger/bizledger_app/internal/apperrors"
	"github.com/bizledger/bizledger_app/internal/core/domain"
	portssvc "github.com/bizledger/bizledger_app/internal/core/ports/services"
	"github.com/bizledger/bizledger_app/internal/core/services"
	"github.com/bizledger/bizledger_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type InventoryServiceTestSuite struct {
	suite.Suite
	mockRepo         *MockInventoryRepository
	mockWarehouseSvc *MockWarehouseService
	mockAuthorizer   *MockTenantAuthorizer
	service          portssvc.InventorySvcFacade
}

func (suite *InventoryServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockInventoryRepository)
	suite.mockWarehouseSvc = new(MockWarehouseService)
	suite.mockAuthorizer = new(MockTenantAuthorizer)
	suite.service = services.NewInventoryService(
		suite.mockRepo,
		suite.mockWarehouseSvc,
		suite.mockAuthorizer,
	)
}

func (suite *InventoryServiceTestSuite) trackedItem() *domain.InventoryItem {
	return &domain.InventoryItem{
		ItemID:     "item-1",
		TenantID:   "tenant-1",
		SKU:        "SKU-001",
		Name:       "Widget",
		Unit:       "pcs",
		TrackStock: true,
		IsActive:   true,
		OnHand:     decimal.NewFromInt(10),
	}
}

func (suite *InventoryServiceTestSuite) TestCreateItem_Success() {
	ctx := context.Background()

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, "user-1", "tenant-1", domain.RoleMember).Return(nil).Once()
	suite.mockRepo.On("FindItemBySKU", ctx, "tenant-1", "SKU-001").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveItem", ctx, mock.MatchedBy(func(item domain.InventoryItem) bool {
		return item.SKU == "SKU-001" && item.IsActive && item.OnHand.IsZero()
	})).Return(nil).Once()

	item, err := suite.service.CreateItem(ctx, "tenant-1", dto.CreateItemRequest{
		SKU:        "SKU-001",
		Name:       "Widget",
		Unit:       "pcs",
		SalePrice:  decimal.NewFromInt(10),
		TrackStock: true,
	}, "user-1")

	suite.Require().NoError(err)
	suite.Equal("SKU-001", item.SKU)
	suite.True(item.OnHand.IsZero())
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *InventoryServiceTestSuite) TestCreateItem_DuplicateSKU() {
	ctx := context.Background()

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, "user-1", "tenant-1", domain.RoleMember).Return(nil).Once()
	suite.mockRepo.On("FindItemBySKU", ctx, "tenant-1", "SKU-001").Return(suite.trackedItem(), nil).Once()

	_, err := suite.service.CreateItem(ctx, "tenant-1", dto.CreateItemRequest{
		SKU:  "SKU-001",
		Name: "Widget",
		Unit: "pcs",
	}, "user-1")

	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveItem", mock.Anything, mock.Anything)
}

func (suite *InventoryServiceTestSuite) TestRecordMovement_InIncreasesAggregates() {
	ctx := context.Background()
	locationID := "loc-1"
	stock := &domain.LocationStock{
		TenantID:       "tenant-1",
		LocationID:     locationID,
		ItemID:         "item-1",
		QuantityOnHand: decimal.NewFromInt(4),
	}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, "user-1", "tenant-1", domain.RoleMember).Return(nil).Once()
	suite.mockRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockRepo.On("FindItemByIDForUpdate", ctx, mock.Anything, "tenant-1", "item-1").Return(suite.trackedItem(), nil).Once()
	suite.mockRepo.On("GetLocationStockForUpdate", ctx, mock.Anything, "tenant-1", locationID, "item-1").Return(stock, nil).Once()
	suite.mockRepo.On("SaveMovementInTx", ctx, mock.Anything, mock.MatchedBy(func(mv domain.StockMovement) bool {
		return mv.Direction == domain.MovementIn && mv.Quantity.Equal(decimal.NewFromInt(6))
	})).Return(nil).Once()
	suite.mockRepo.On("UpsertLocationStockInTx", ctx, mock.Anything, "tenant-1", locationID, "item-1",
		mock.MatchedBy(func(delta decimal.Decimal) bool { return delta.Equal(decimal.NewFromInt(6)) }),
		mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockRepo.On("UpdateItemOnHandInTx", ctx, mock.Anything, "tenant-1", "item-1",
		mock.MatchedBy(func(delta decimal.Decimal) bool { return delta.Equal(decimal.NewFromInt(6)) }),
		"user-1", mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()
	suite.mockRepo.On("Rollback", ctx, mock.Anything).Return(nil)

	movement, err := suite.service.RecordMovement(ctx, "tenant-1", dto.RecordMovementRequest{
		ItemID:     "item-1",
		LocationID: &locationID,
		Direction:  "IN",
		Quantity:   decimal.NewFromInt(6),
	}, "user-1")

	suite.Require().NoError(err)
	suite.Equal(domain.MovementIn, movement.Direction)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *InventoryServiceTestSuite) TestRecordMovement_OutAppliesNegativeDelta() {
	ctx := context.Background()
	locationID := "loc-1"
	stock := &domain.LocationStock{QuantityOnHand: decimal.NewFromInt(10)}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, "user-1", "tenant-1", domain.RoleMember).Return(nil).Once()
	suite.mockRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockRepo.On("FindItemByIDForUpdate", ctx, mock.Anything, "tenant-1", "item-1").Return(suite.trackedItem(), nil).Once()
	suite.mockRepo.On("GetLocationStockForUpdate", ctx, mock.Anything, "tenant-1", locationID, "item-1").Return(stock, nil).Once()
	suite.mockRepo.On("SaveMovementInTx", ctx, mock.Anything, mock.AnythingOfType("domain.StockMovement")).Return(nil).Once()
	suite.mockRepo.On("UpsertLocationStockInTx", ctx, mock.Anything, "tenant-1", locationID, "item-1",
		mock.MatchedBy(func(delta decimal.Decimal) bool { return delta.Equal(decimal.NewFromInt(-3)) }),
		mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockRepo.On("UpdateItemOnHandInTx", ctx, mock.Anything, "tenant-1", "item-1",
		mock.MatchedBy(func(delta decimal.Decimal) bool { return delta.Equal(decimal.NewFromInt(-3)) }),
		"user-1", mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()
	suite.mockRepo.On("Rollback", ctx, mock.Anything).Return(nil)

	movement, err := suite.service.RecordMovement(ctx, "tenant-1", dto.RecordMovementRequest{
		ItemID:     "item-1",
		LocationID: &locationID,
		Direction:  "OUT",
		Quantity:   decimal.NewFromInt(3),
	}, "user-1")

	suite.Require().NoError(err)
	suite.Equal(domain.MovementOut, movement.Direction)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *InventoryServiceTestSuite) TestRecordMovement_InsufficientStock() {
	ctx := context.Background()
	locationID := "loc-1"
	stock := &domain.LocationStock{QuantityOnHand: decimal.NewFromInt(2)}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, "user-1", "tenant-1", domain.RoleMember).Return(nil).Once()
	suite.mockRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockRepo.On("FindItemByIDForUpdate", ctx, mock.Anything, "tenant-1", "item-1").Return(suite.trackedItem(), nil).Once()
	suite.mockRepo.On("GetLocationStockForUpdate", ctx, mock.Anything, "tenant-1", locationID, "item-1").Return(stock, nil).Once()
	suite.mockRepo.On("Rollback", ctx, mock.Anything).Return(nil)

	_, err := suite.service.RecordMovement(ctx, "tenant-1", dto.RecordMovementRequest{
		ItemID:     "item-1",
		LocationID: &locationID,
		Direction:  "OUT",
		Quantity:   decimal.NewFromInt(5),
	}, "user-1")

	suite.ErrorIs(err, apperrors.ErrInsufficientStock)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveMovementInTx", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InventoryServiceTestSuite) TestRecordMovement_UntrackedItem() {
	ctx := context.Background()
	locationID := "loc-1"
	untracked := suite.trackedItem()
	untracked.TrackStock = false

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, "user-1", "tenant-1", domain.RoleMember).Return(nil).Once()
	suite.mockRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockRepo.On("FindItemByIDForUpdate", ctx, mock.Anything, "tenant-1", "item-1").Return(untracked, nil).Once()
	suite.mockRepo.On("Rollback", ctx, mock.Anything).Return(nil)

	_, err := suite.service.RecordMovement(ctx, "tenant-1", dto.RecordMovementRequest{
		ItemID:     "item-1",
		LocationID: &locationID,
		Direction:  "IN",
		Quantity:   decimal.NewFromInt(1),
	}, "user-1")

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *InventoryServiceTestSuite) TestRecordMovement_FallsBackToDefaultLocation() {
	ctx := context.Background()
	defaultLocation := &domain.WarehouseLocation{LocationID: "loc-default"}
	stock := &domain.LocationStock{QuantityOnHand: decimal.Zero}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, "user-1", "tenant-1", domain.RoleMember).Return(nil).Once()
	suite.mockRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockRepo.On("FindItemByIDForUpdate", ctx, mock.Anything, "tenant-1", "item-1").Return(suite.trackedItem(), nil).Once()
	suite.mockWarehouseSvc.On("ResolveDefaultLocation", ctx, "tenant-1", "user-1").Return(defaultLocation, nil).Once()
	suite.mockRepo.On("GetLocationStockForUpdate", ctx, mock.Anything, "tenant-1", "loc-default", "item-1").Return(stock, nil).Once()
	suite.mockRepo.On("SaveMovementInTx", ctx, mock.Anything, mock.MatchedBy(func(mv domain.StockMovement) bool {
		return mv.LocationID == "loc-default"
	})).Return(nil).Once()
	suite.mockRepo.On("UpsertLocationStockInTx", ctx, mock.Anything, "tenant-1", "loc-default", "item-1",
		mock.Anything, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockRepo.On("UpdateItemOnHandInTx", ctx, mock.Anything, "tenant-1", "item-1",
		mock.Anything, "user-1", mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()
	suite.mockRepo.On("Rollback", ctx, mock.Anything).Return(nil)

	movement, err := suite.service.RecordMovement(ctx, "tenant-1", dto.RecordMovementRequest{
		ItemID:    "item-1",
		Direction: "IN",
		Quantity:  decimal.NewFromInt(2),
	}, "user-1")

	suite.Require().NoError(err)
	suite.Equal("loc-default", movement.LocationID)
	suite.mockWarehouseSvc.AssertExpectations(suite.T())
}

func TestInventoryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(InventoryServiceTestSuite))
}
