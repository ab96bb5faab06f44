// Package seed bootstraps the default team and superadmin account so a
// fresh deployment is usable out of the box.
package seed

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	identitydomain "github.com/fieldscope/fieldscope/internal/identity/domain"
	identityservice "github.com/fieldscope/fieldscope/internal/identity/service"
	profiledomain "github.com/fieldscope/fieldscope/internal/profile/domain"
	teamdomain "github.com/fieldscope/fieldscope/internal/team/domain"
	"gorm.io/gorm"
)

const (
	defaultTeamName      = "Main"
	defaultTeamSlug      = "main"
	defaultAdminEmail    = "admin@fieldscope.local"
	defaultAdminPassword = "changeme-admin"
	defaultAdminName     = "Fieldscope Admin"
)

// EnsureDefaultTeam creates the Main team if no team exists yet.
func EnsureDefaultTeam(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		_, err := ensureTeamTx(ctx, tx, node)
		return err
	})
}

// EnsureSuperadmin creates the bootstrap superadmin account. The email can
// be overridden so operators don't ship the default address to production.
func EnsureSuperadmin(db *gorm.DB, email string) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	adminEmail := strings.TrimSpace(strings.ToLower(email))
	if adminEmail == "" {
		adminEmail = defaultAdminEmail
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return ensureSuperadminTx(ctx, tx, node, adminEmail)
	})
}

func ensureTeamTx(ctx context.Context, tx *gorm.DB, node *snowflake.Node) (*teamdomain.Team, error) {
	var team teamdomain.Team
	err := tx.WithContext(ctx).Where("slug = ?", defaultTeamSlug).First(&team).Error
	if err == nil {
		return &team, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	team = teamdomain.Team{
		ID:        node.Generate(),
		Name:      defaultTeamName,
		Slug:      defaultTeamSlug,
		Timezone:  "UTC",
		Currency:  "USD",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := tx.WithContext(ctx).Create(&team).Error; err != nil {
		return nil, err
	}
	return &team, nil
}

func ensureSuperadminTx(ctx context.Context, tx *gorm.DB, node *snowflake.Node, email string) error {
	var user identitydomain.User
	err := tx.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashed, err := identityservice.HashPassword(defaultAdminPassword)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	user = identitydomain.User{
		ID:           node.Generate(),
		Email:        email,
		PasswordHash: &hashed,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := tx.WithContext(ctx).Create(&user).Error; err != nil {
		return err
	}

	profile := profiledomain.Profile{
		ID:        node.Generate(),
		UserID:    user.ID,
		FullName:  defaultAdminName,
		Division:  profiledomain.DivisionManager,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := tx.WithContext(ctx).Create(&profile).Error; err != nil {
		return err
	}

	role := profiledomain.UserRole{
		ID:        node.Generate(),
		UserID:    user.ID,
		Role:      profiledomain.RoleSuperadmin,
		CreatedAt: now,
	}
	return tx.WithContext(ctx).Create(&role).Error
}
