// Package routerepo persists routes. Routes are owned by an account, or by
// the shared base owner when every account may run them.
package routerepo

import (
	"paperround/internal/core/domain/model/kernel"
	"paperround/internal/core/domain/model/route"

	"github.com/google/uuid"
)

// RouteDTO is the routes table row.
type RouteDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OwnerID     string    `gorm:"type:varchar(128);not null;index"`
	BaseName    string    `gorm:"type:varchar(255);not null"`
	DisplayName string    `gorm:"type:varchar(255);not null"`
}

func (RouteDTO) TableName() string {
	return "routes"
}

func fromDomain(r *route.Route) RouteDTO {
	return RouteDTO{
		ID:          r.ID().Bytes(),
		OwnerID:     r.OwnerID(),
		BaseName:    r.BaseName(),
		DisplayName: r.DisplayName(),
	}
}

func toDomain(dto RouteDTO) (*route.Route, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	return route.RestoreRoute(id, dto.OwnerID, dto.BaseName, dto.DisplayName)
}
