package authorization

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	auditdomain "github.com/fieldscope/fieldscope/internal/audit/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:embed model.conf
var modelText string

const (
	ObjectAccount     = "account"
	ObjectTeam        = "team"
	ObjectSalesTarget = "sales_target"
	ObjectDivision    = "division"
	ObjectAuditLog    = "audit_log"
)

const (
	ActionAccountDelete      = "account.delete"
	ActionAccountUpdateEmail = "account.update_email"

	ActionTeamUpdate = "team.update"

	ActionSalesTargetSet = "sales_target.set"

	ActionDivisionSet = "division.set"

	ActionAuditLogView = "audit_log.view"
)

// Service answers capability questions: may this actor perform this action
// on this object class.
type Service interface {
	Authorize(ctx context.Context, actor string, object string, action string) error
}

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	Enforcer *casbin.SyncedEnforcer
	AuditSvc auditdomain.Service `optional:"true"`
}

type ServiceImpl struct {
	db       *gorm.DB
	log      *zap.Logger
	enforcer *casbin.SyncedEnforcer
	auditSvc auditdomain.Service
}

func NewEnforcer(db *gorm.DB) (*casbin.SyncedEnforcer, error) {
	adapter, err := gormadapter.NewAdapterByDB(db)
	if err != nil {
		return nil, err
	}
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}
	enforcer, err := casbin.NewSyncedEnforcer(m, adapter)
	if err != nil {
		return nil, err
	}
	enforcer.EnableAutoSave(true)
	enforcer.EnableAutoBuildRoleLinks(true)
	if err := enforcer.LoadPolicy(); err != nil {
		return nil, err
	}
	if err := seedPolicies(enforcer); err != nil {
		return nil, err
	}
	enforcer.BuildRoleLinks()
	return enforcer, nil
}

func NewService(p Params) Service {
	return &ServiceImpl{
		db:       p.DB,
		log:      p.Log.Named("authorization.service"),
		enforcer: p.Enforcer,
		auditSvc: p.AuditSvc,
	}
}

func (s *ServiceImpl) Authorize(ctx context.Context, actor string, object string, action string) error {
	actor = strings.TrimSpace(actor)
	if actor == "" {
		return ErrInvalidActor
	}
	object = strings.TrimSpace(object)
	if object == "" {
		return ErrInvalidObject
	}
	action = strings.TrimSpace(action)
	if action == "" {
		return ErrInvalidAction
	}

	subject, roleName, actorType, actorID, err := s.resolveActor(ctx, actor)
	if err != nil {
		s.auditDenied(ctx, actorType, actorID, object, action)
		return err
	}

	if err := s.ensureGrouping(subject, roleName); err != nil {
		return err
	}

	allowed, err := s.enforcer.Enforce(subject, object, action)
	if err != nil {
		return err
	}
	if !allowed {
		s.auditDenied(ctx, actorType, actorID, object, action)
		return ErrForbidden
	}

	if shouldAuditGrant(action) {
		s.auditGranted(ctx, actorType, actorID, object, action)
	}
	return nil
}

func (s *ServiceImpl) resolveActor(ctx context.Context, actor string) (string, string, string, *string, error) {
	if actor == "system" {
		return actor, "role:system", "system", nil, nil
	}
	if strings.HasPrefix(actor, "user:") {
		userIDRaw := strings.TrimPrefix(actor, "user:")
		userID, err := snowflake.ParseString(userIDRaw)
		if err != nil || userID == 0 {
			return "", "", "", nil, ErrInvalidActor
		}
		userIDStr := userID.String()
		division, err := s.divisionForUser(ctx, userID)
		if err != nil {
			return actor, "", "user", &userIDStr, err
		}
		roleName := fmt.Sprintf("role:%s", strings.ToLower(division))
		return actor, roleName, "user", &userIDStr, nil
	}
	return "", "", "", nil, ErrInvalidActor
}

func (s *ServiceImpl) divisionForUser(ctx context.Context, userID snowflake.ID) (string, error) {
	var row struct {
		Division string `gorm:"column:division"`
	}
	if err := s.db.WithContext(ctx).Raw(
		`SELECT division
		 FROM profiles
		 WHERE user_id = ?
		 LIMIT 1`,
		userID,
	).Scan(&row).Error; err != nil {
		return "", err
	}

	division := strings.TrimSpace(row.Division)
	if division == "" {
		return "", ErrForbidden
	}
	return division, nil
}

func (s *ServiceImpl) ensureGrouping(subject string, roleName string) error {
	existing, err := s.enforcer.GetFilteredGroupingPolicy(0, subject)
	if err != nil {
		return err
	}
	for _, rule := range existing {
		if len(rule) < 2 {
			continue
		}
		if rule[1] != roleName {
			params := make([]interface{}, 0, len(rule))
			for _, value := range rule {
				params = append(params, value)
			}
			_, _ = s.enforcer.RemoveGroupingPolicy(params...)
		}
	}

	has, err := s.enforcer.HasGroupingPolicy(subject, roleName)
	if err != nil {
		return err
	}
	if has {
		return nil
	}
	_, err = s.enforcer.AddGroupingPolicy(subject, roleName)
	return err
}

func (s *ServiceImpl) auditDenied(ctx context.Context, actorType string, actorID *string, object string, action string) {
	if s.auditSvc == nil {
		return
	}
	targetID := "capability"
	_ = s.auditSvc.Record(ctx, auditdomain.RecordRequest{
		ActorType:  actorType,
		ActorID:    actorID,
		Action:     "authorization.denied",
		TargetType: "authorization",
		TargetID:   &targetID,
		Metadata: map[string]any{
			"object": object,
			"action": action,
		},
	})
}

func (s *ServiceImpl) auditGranted(ctx context.Context, actorType string, actorID *string, object string, action string) {
	if s.auditSvc == nil {
		return
	}
	targetID := "capability"
	_ = s.auditSvc.Record(ctx, auditdomain.RecordRequest{
		ActorType:  actorType,
		ActorID:    actorID,
		Action:     "authorization.granted",
		TargetType: "authorization",
		TargetID:   &targetID,
		Metadata: map[string]any{
			"object": object,
			"action": action,
		},
	})
}

func shouldAuditGrant(action string) bool {
	switch action {
	case ActionAccountDelete, ActionAccountUpdateEmail:
		return true
	default:
		return false
	}
}

// seedPolicies grants manager the privileged account operations. Sales and
// presales carry no standing capabilities; ownership checks in the services
// cover their own records.
func seedPolicies(enforcer *casbin.SyncedEnforcer) error {
	policies := [][]string{
		{"role:manager", ObjectAccount, ActionAccountDelete},
		{"role:manager", ObjectAccount, ActionAccountUpdateEmail},
		{"role:manager", ObjectTeam, ActionTeamUpdate},
		{"role:manager", ObjectSalesTarget, ActionSalesTargetSet},
		{"role:manager", ObjectDivision, ActionDivisionSet},
		{"role:manager", ObjectAuditLog, ActionAuditLogView},

		{"role:system", ObjectTeam, ActionTeamUpdate},
		{"role:system", ObjectSalesTarget, ActionSalesTargetSet},
	}

	for _, policy := range policies {
		has, err := enforcer.HasPolicy(policy[0], policy[1], policy[2])
		if err != nil {
			return err
		}
		if has {
			continue
		}
		if _, err := enforcer.AddPolicy(policy[0], policy[1], policy[2]); err != nil {
			return err
		}
	}
	return nil
}

var Module = fx.Module("authorization.service",
	fx.Provide(NewEnforcer),
	fx.Provide(NewService),
)
