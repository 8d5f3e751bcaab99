package db

import (
	"context"

	"gorm.io/gorm"

	"timberd/internal/models"
)

// Migrate performs schema migrations for the persistent models.
func Migrate(ctx context.Context, database *gorm.DB) error {
	if err := database.WithContext(ctx).SetupJoinTable(&models.Role{}, "Permissions", &models.RolePermission{}); err != nil {
		return err
	}

	return database.WithContext(ctx).AutoMigrate(
		&models.Role{},
		&models.Permission{},
		&models.RolePermission{},
		&models.Address{},
		&models.User{},
		&models.WoodSpecies{},
		&models.WoodLot{},
		&models.Transaction{},
		&models.TransactionDocument{},
		&models.ActivityLog{},
	)
}
