// Package userrepo persists user accounts and registration requests.
package userrepo

import (
	"time"

	"shipflow/internal/adapters/out/postgres/columns"
	"shipflow/internal/core/domain/model/kernel"
	"shipflow/internal/core/domain/model/user"

	"github.com/google/uuid"
)

type UserDTO struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Name            string     `gorm:"type:varchar(255);not null"`
	Email           string     `gorm:"type:varchar(320);not null;uniqueIndex"`
	PasswordHash    string     `gorm:"type:varchar(255);not null"`
	RequestedRole   string     `gorm:"type:varchar(16);not null"`
	Role            string     `gorm:"type:varchar(16)"`
	Status          string     `gorm:"type:varchar(16);not null;index"`
	DecidedBy       *uuid.UUID `gorm:"type:uuid"`
	DecidedAt       *time.Time
	RejectionReason string    `gorm:"type:text"`
	CreatedAt       time.Time `gorm:"not null"`
}

func (UserDTO) TableName() string {
	return "users"
}

func fromDomain(u *user.User) UserDTO {
	dto := UserDTO{
		ID:              columns.UUID(u.ID()),
		Name:            u.Name(),
		Email:           u.Email(),
		PasswordHash:    u.PasswordHash(),
		RequestedRole:   u.RequestedRole().String(),
		Status:          u.Status().String(),
		DecidedBy:       columns.NullableUUID(u.DecidedBy()),
		DecidedAt:       u.DecidedAt(),
		RejectionReason: u.RejectionReason(),
		CreatedAt:       u.CreatedAt(),
	}
	if u.Role() != kernel.RoleUnknown {
		dto.Role = u.Role().String()
	}
	return dto
}

func toDomain(dto UserDTO) (*user.User, error) {
	id, err := columns.UUIDValue(dto.ID)
	if err != nil {
		return nil, err
	}
	decidedBy, err := columns.NullableUUIDValue(dto.DecidedBy)
	if err != nil {
		return nil, err
	}
	requested, err := kernel.ParseRole(dto.RequestedRole)
	if err != nil {
		return nil, err
	}
	role := kernel.RoleUnknown
	if dto.Role != "" {
		if role, err = kernel.ParseRole(dto.Role); err != nil {
			return nil, err
		}
	}
	status, err := user.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	return user.RestoreUser(user.RestoreParams{
		ID:              id,
		Name:            dto.Name,
		Email:           dto.Email,
		PasswordHash:    dto.PasswordHash,
		RequestedRole:   requested,
		Role:            role,
		Status:          status,
		DecidedBy:       decidedBy,
		DecidedAt:       dto.DecidedAt,
		RejectionReason: dto.RejectionReason,
		CreatedAt:       dto.CreatedAt,
	})
}
