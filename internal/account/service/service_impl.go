package service

import (
	"context"
	"errors"
	"strings"

	"github.com/bwmarrin/snowflake"
	accountdomain "github.com/fieldscope/fieldscope/internal/account/domain"
	activitydomain "github.com/fieldscope/fieldscope/internal/activity/domain"
	auditdomain "github.com/fieldscope/fieldscope/internal/audit/domain"
	"github.com/fieldscope/fieldscope/internal/authorization"
	identitydomain "github.com/fieldscope/fieldscope/internal/identity/domain"
	identityservice "github.com/fieldscope/fieldscope/internal/identity/service"
	messagedomain "github.com/fieldscope/fieldscope/internal/message/domain"
	notificationdomain "github.com/fieldscope/fieldscope/internal/notification/domain"
	profiledomain "github.com/fieldscope/fieldscope/internal/profile/domain"
	salesrecorddomain "github.com/fieldscope/fieldscope/internal/salesrecord/domain"
	salestargetdomain "github.com/fieldscope/fieldscope/internal/salestarget/domain"
	"github.com/fieldscope/fieldscope/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB               *gorm.DB
	Log              *zap.Logger
	Authz            authorization.Service
	Audit            auditdomain.Service
	IdentityRepo     identitydomain.Repository
	SessionRepo      identitydomain.SessionRepository
	ProfileRepo      profiledomain.Repository
	RoleRepo         profiledomain.RoleRepository
	ActivityRepo     activitydomain.Repository
	SalesRecordRepo  salesrecorddomain.Repository
	SalesTargetRepo  salestargetdomain.Repository
	MessageRepo      messagedomain.Repository
	MessageReadRepo  messagedomain.ReadRepository
	NotificationRepo notificationdomain.Repository
}

type Service struct {
	db               *gorm.DB
	log              *zap.Logger
	authz            authorization.Service
	audit            auditdomain.Service
	identityRepo     identitydomain.Repository
	sessionRepo      identitydomain.SessionRepository
	profileRepo      profiledomain.Repository
	roleRepo         profiledomain.RoleRepository
	activityRepo     activitydomain.Repository
	salesRecordRepo  salesrecorddomain.Repository
	salesTargetRepo  salestargetdomain.Repository
	messageRepo      messagedomain.Repository
	messageReadRepo  messagedomain.ReadRepository
	notificationRepo notificationdomain.Repository
}

func New(p Params) accountdomain.Service {
	return &Service{
		db:               p.DB,
		log:              p.Log.Named("account.service"),
		authz:            p.Authz,
		audit:            p.Audit,
		identityRepo:     p.IdentityRepo,
		sessionRepo:      p.SessionRepo,
		profileRepo:      p.ProfileRepo,
		roleRepo:         p.RoleRepo,
		activityRepo:     p.ActivityRepo,
		salesRecordRepo:  p.SalesRecordRepo,
		salesTargetRepo:  p.SalesTargetRepo,
		messageRepo:      p.MessageRepo,
		messageReadRepo:  p.MessageReadRepo,
		notificationRepo: p.NotificationRepo,
	}
}

type purgeStep struct {
	name string
	run  func(ctx context.Context, tx *gorm.DB, userID snowflake.ID) error
}

// purgeSteps returns the deletion sequence. Child records go first and the
// authentication identity is strictly last: a failure partway must never
// leave an identity that still authenticates without a profile.
func (s *Service) purgeSteps() []purgeStep {
	return []purgeStep{
		{name: "roles", run: func(ctx context.Context, tx *gorm.DB, userID snowflake.ID) error {
			return s.roleRepo.DeleteRolesByUser(ctx, tx, userID)
		}},
		{name: "activities", run: func(ctx context.Context, tx *gorm.DB, userID snowflake.ID) error {
			return s.activityRepo.DeleteByUser(ctx, tx, userID)
		}},
		{name: "sales_records", run: func(ctx context.Context, tx *gorm.DB, userID snowflake.ID) error {
			return s.salesRecordRepo.DeleteByUser(ctx, tx, userID)
		}},
		{name: "sales_targets", run: func(ctx context.Context, tx *gorm.DB, userID snowflake.ID) error {
			return s.salesTargetRepo.DeleteByUser(ctx, tx, userID)
		}},
		{name: "messages", run: func(ctx context.Context, tx *gorm.DB, userID snowflake.ID) error {
			return s.messageRepo.DeleteBySender(ctx, tx, userID)
		}},
		{name: "notifications", run: func(ctx context.Context, tx *gorm.DB, userID snowflake.ID) error {
			return s.notificationRepo.DeleteByUser(ctx, tx, userID)
		}},
		{name: "message_reads", run: func(ctx context.Context, tx *gorm.DB, userID snowflake.ID) error {
			return s.messageReadRepo.DeleteByUser(ctx, tx, userID)
		}},
		{name: "profile", run: func(ctx context.Context, tx *gorm.DB, userID snowflake.ID) error {
			return s.profileRepo.DeleteByUser(ctx, tx, userID)
		}},
		{name: "identity", run: func(ctx context.Context, tx *gorm.DB, userID snowflake.ID) error {
			if err := s.sessionRepo.DeleteByUser(ctx, tx, userID); err != nil {
				return err
			}
			return s.identityRepo.Delete(ctx, tx, userID)
		}},
	}
}

func (s *Service) DeleteAccount(ctx context.Context, callerID snowflake.ID, targetUserID string) error {
	targetID, err := s.authorizeTarget(ctx, callerID, authorization.ActionAccountDelete, targetUserID)
	if err != nil {
		return err
	}
	if targetID == callerID {
		return accountdomain.ErrCannotDeleteSelf
	}
	if err := s.ensureNotSuperadmin(ctx, targetID); err != nil {
		return err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, step := range s.purgeSteps() {
			if err := step.run(ctx, tx, targetID); err != nil {
				s.log.Error("cascade delete aborted",
					zap.String("step", step.name),
					zap.String("target_user_id", targetID.String()),
					zap.Error(err),
				)
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	callerIDStr := callerID.String()
	targetIDStr := targetID.String()
	_ = s.audit.Record(ctx, auditdomain.RecordRequest{
		ActorType:  "user",
		ActorID:    &callerIDStr,
		Action:     authorization.ActionAccountDelete,
		TargetType: "account",
		TargetID:   &targetIDStr,
	})

	s.log.Info("account deleted",
		zap.String("caller_id", callerIDStr),
		zap.String("target_user_id", targetIDStr),
	)
	return nil
}

func (s *Service) UpdateEmail(ctx context.Context, callerID snowflake.ID, targetUserID, newEmail string) (*identitydomain.User, error) {
	targetID, err := s.authorizeTarget(ctx, callerID, authorization.ActionAccountUpdateEmail, targetUserID)
	if err != nil {
		return nil, err
	}
	if err := s.ensureNotSuperadmin(ctx, targetID); err != nil {
		return nil, err
	}

	email, err := identityservice.NormalizeEmail(newEmail)
	if err != nil {
		return nil, accountdomain.ErrInvalidEmail
	}

	if _, err := s.identityRepo.FindByID(ctx, s.db, targetID); err != nil {
		if errors.Is(err, identitydomain.ErrUserNotFound) {
			return nil, accountdomain.ErrInvalidTarget
		}
		return nil, err
	}

	if err := s.identityRepo.UpdateFields(ctx, s.db, targetID, map[string]any{"email": email}); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, accountdomain.ErrEmailTaken
		}
		return nil, err
	}

	callerIDStr := callerID.String()
	targetIDStr := targetID.String()
	_ = s.audit.Record(ctx, auditdomain.RecordRequest{
		ActorType:  "user",
		ActorID:    &callerIDStr,
		Action:     authorization.ActionAccountUpdateEmail,
		TargetType: "account",
		TargetID:   &targetIDStr,
		Metadata:   map[string]any{"new_email": email},
	})

	return s.identityRepo.FindByID(ctx, s.db, targetID)
}

// authorizeTarget runs the shared preconditions: manager capability first,
// then target presence and shape. Order matters; the capability failure must
// win over a missing target.
func (s *Service) authorizeTarget(ctx context.Context, callerID snowflake.ID, action, targetUserID string) (snowflake.ID, error) {
	if callerID == 0 {
		return 0, accountdomain.ErrUnauthorized
	}

	actor := "user:" + callerID.String()
	if err := s.authz.Authorize(ctx, actor, authorization.ObjectAccount, action); err != nil {
		if errors.Is(err, authorization.ErrForbidden) {
			return 0, accountdomain.ErrManagerRequired
		}
		return 0, err
	}

	trimmed := strings.TrimSpace(targetUserID)
	if trimmed == "" {
		return 0, accountdomain.ErrTargetRequired
	}
	targetID, err := snowflake.ParseString(trimmed)
	if err != nil || targetID == 0 {
		return 0, accountdomain.ErrInvalidTarget
	}
	return targetID, nil
}

func (s *Service) ensureNotSuperadmin(ctx context.Context, targetID snowflake.ID) error {
	roles, err := s.roleRepo.ListByUser(ctx, s.db, targetID)
	if err != nil {
		return err
	}
	for _, role := range roles {
		if role.Role == profiledomain.RoleSuperadmin {
			return accountdomain.ErrSuperadminProtected
		}
	}
	return nil
}
