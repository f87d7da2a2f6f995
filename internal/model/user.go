package model

import (
	"time"

	"github.com/google/uuid"
)

// Shop-floor roles. Each role resolves to exactly one dashboard route
// (see router.DashboardRoute).
const (
	RoleAssemblyEngineer = "assembly_engineer"
	RoleAssembler        = "assembler"
	RoleTester           = "tester"
	RolePaintingEngineer = "painting_engineer"
	RolePainter          = "painter"
	RoleBlaster          = "blaster"
	RoleNamePlatePrinter = "name_plate_printer"
	RoleFinisher         = "finisher"
	RoleQAEngineer       = "qa_engineer"
	RoleAdmin            = "admin"
)

// User stores system users with role-based access.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Username     string    `gorm:"uniqueIndex;not null"`
	FullName     string    `gorm:"not null"`
	Email        *string
	PasswordHash string `gorm:"not null"`
	Role         string `gorm:"type:varchar(30);not null"`
	Active       bool   `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
