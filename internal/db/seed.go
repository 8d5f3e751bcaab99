package db

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"timberd/internal/models"
)

// SeedIDs threads generated identifiers between seeding steps. Steps receive
// and extend it explicitly; no package-level state is involved.
type SeedIDs struct {
	Roles       map[string]uuid.UUID
	Permissions map[string]uuid.UUID
	AdminUserID uuid.UUID
}

var defaultRoles = []string{"Admin", "Manager", "Trader", "Viewer"}

var defaultPermissions = []string{
	"users:manage",
	"species:manage",
	"woodlots:manage",
	"transactions:manage",
	"transactions:approve",
}

// Seed inserts baseline lookup data: default roles, permissions, the Admin
// role grants, and optionally a bootstrap admin account when adminPassword
// is non-empty.
func Seed(ctx context.Context, database *gorm.DB, adminEmail, adminPassword string) (*SeedIDs, error) {
	ids := &SeedIDs{
		Roles:       make(map[string]uuid.UUID, len(defaultRoles)),
		Permissions: make(map[string]uuid.UUID, len(defaultPermissions)),
	}

	if err := seedRoles(ctx, database, ids); err != nil {
		return nil, err
	}
	if err := seedPermissions(ctx, database, ids); err != nil {
		return nil, err
	}
	if err := seedAdminGrants(ctx, database, ids); err != nil {
		return nil, err
	}
	if adminPassword != "" {
		if err := seedAdminUser(ctx, database, ids, adminEmail, adminPassword); err != nil {
			return nil, err
		}
	}

	return ids, nil
}

func seedRoles(ctx context.Context, database *gorm.DB, ids *SeedIDs) error {
	for _, name := range defaultRoles {
		role := models.Role{Name: name}
		if err := database.WithContext(ctx).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&role).Error; err != nil {
			return err
		}
		// Re-read to resolve the id when the row already existed.
		var existing models.Role
		if err := database.WithContext(ctx).
			Where("name = ?", name).
			First(&existing).Error; err != nil {
			return err
		}
		ids.Roles[name] = existing.ID
	}
	return nil
}

func seedPermissions(ctx context.Context, database *gorm.DB, ids *SeedIDs) error {
	for _, name := range defaultPermissions {
		perm := models.Permission{Name: name}
		if err := database.WithContext(ctx).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&perm).Error; err != nil {
			return err
		}
		var existing models.Permission
		if err := database.WithContext(ctx).
			Where("name = ?", name).
			First(&existing).Error; err != nil {
			return err
		}
		ids.Permissions[name] = existing.ID
	}
	return nil
}

func seedAdminGrants(ctx context.Context, database *gorm.DB, ids *SeedIDs) error {
	adminID, ok := ids.Roles["Admin"]
	if !ok {
		return errors.New("seed: Admin role id missing")
	}
	for _, permID := range ids.Permissions {
		grant := models.RolePermission{RoleID: adminID, PermissionID: permID}
		if err := database.WithContext(ctx).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&grant).Error; err != nil {
			return err
		}
	}
	return nil
}

func seedAdminUser(ctx context.Context, database *gorm.DB, ids *SeedIDs, email, password string) error {
	var existing models.User
	err := database.WithContext(ctx).Where("email = ?", email).First(&existing).Error
	switch {
	case err == nil:
		ids.AdminUserID = existing.ID
		return nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	roleID := ids.Roles["Admin"]
	username := "admin"
	admin := models.User{
		Username:     &username,
		Email:        email,
		PasswordHash: string(hash),
		FullName:     "Administrator",
		Active:       true,
		RoleID:       &roleID,
	}
	if err := database.WithContext(ctx).Create(&admin).Error; err != nil {
		return err
	}
	ids.AdminUserID = admin.ID
	return nil
}
