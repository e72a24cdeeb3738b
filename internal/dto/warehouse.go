package dto

import (
	"github.com/bizledger/bizledger_app/internal/core/domain"
)

// CreatePoolRequest defines the data needed to create a warehouse pool.
type CreatePoolRequest struct {
	Name      string `json:"name" binding:"required"`
	IsDefault bool   `json:"isDefault"`
}

// CreateLocationRequest defines the data needed to create a warehouse location.
type CreateLocationRequest struct {
	Name      string `json:"name" binding:"required"`
	Code      string `json:"code"`
	IsDefault bool   `json:"isDefault"`
}

// PoolResponse defines the data returned for a warehouse pool.
type PoolResponse struct {
	PoolID    string `json:"poolID"`
	Name      string `json:"name"`
	IsDefault bool   `json:"isDefault"`
}

// ToPoolResponse converts a domain.WarehousePool to PoolResponse DTO.
func ToPoolResponse(p *domain.WarehousePool) PoolResponse {
	return PoolResponse{
		PoolID:    p.PoolID,
		Name:      p.Name,
		IsDefault: p.IsDefault,
	}
}

// ToPoolResponses converts a slice of domain.WarehousePool to []PoolResponse.
func ToPoolResponses(pools []domain.WarehousePool) []PoolResponse {
	res := make([]PoolResponse, len(pools))
	for i, p := range pools {
		res[i] = ToPoolResponse(&p)
	}
	return res
}

// LocationResponse defines the data returned for a warehouse location.
type LocationResponse struct {
	LocationID string `json:"locationID"`
	PoolID     string `json:"poolID"`
	Name       string `json:"name"`
	Code       string `json:"code"`
	IsDefault  bool   `json:"isDefault"`
}

// ToLocationResponse converts a domain.WarehouseLocation to LocationResponse DTO.
func ToLocationResponse(l *domain.WarehouseLocation) LocationResponse {
	return LocationResponse{
		LocationID: l.LocationID,
		PoolID:     l.PoolID,
		Name:       l.Name,
		Code:       l.Code,
		IsDefault:  l.IsDefault,
	}
}

// ToLocationResponses converts a slice of domain.WarehouseLocation to []LocationResponse.
func ToLocationResponses(locations []domain.WarehouseLocation) []LocationResponse {
	res := make([]LocationResponse, len(locations))
	for i, l := range locations {
		res[i] = ToLocationResponse(&l)
	}
	return res
}
