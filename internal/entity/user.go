package entity

import "github.com/squareblocks/backend/pkg/enum"

type UserRole string

var (
	RoleUser  = enum.New(UserRole("user"))
	RoleAdmin = enum.New(UserRole("admin"))
)

// SystemUserID is the reserved account owning feed-created games and the
// counterparty of forfeited prizes. Created by the migration.
const SystemUserID = "00000000-0000-0000-0000-000000000001"

type User struct {
	Base

	Name     string
	Email    string `gorm:"uniqueIndex"`
	Role     UserRole
	IsActive bool

	// Balance is maintained in the same transaction as every ledger entry
	// affecting it and must always equal the ledger projection.
	Balance float64
}
