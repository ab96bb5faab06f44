package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fieldscope/fieldscope/internal/account"
	accountdomain "github.com/fieldscope/fieldscope/internal/account/domain"
	"github.com/fieldscope/fieldscope/internal/activity"
	activitydomain "github.com/fieldscope/fieldscope/internal/activity/domain"
	"github.com/fieldscope/fieldscope/internal/audit"
	auditdomain "github.com/fieldscope/fieldscope/internal/audit/domain"
	"github.com/fieldscope/fieldscope/internal/authorization"
	"github.com/fieldscope/fieldscope/internal/bonus"
	bonusdomain "github.com/fieldscope/fieldscope/internal/bonus/domain"
	"github.com/fieldscope/fieldscope/internal/clock"
	"github.com/fieldscope/fieldscope/internal/config"
	"github.com/fieldscope/fieldscope/internal/identity"
	identitydomain "github.com/fieldscope/fieldscope/internal/identity/domain"
	"github.com/fieldscope/fieldscope/internal/message"
	messagedomain "github.com/fieldscope/fieldscope/internal/message/domain"
	"github.com/fieldscope/fieldscope/internal/notification"
	notificationdomain "github.com/fieldscope/fieldscope/internal/notification/domain"
	"github.com/fieldscope/fieldscope/internal/observability"
	obsmiddleware "github.com/fieldscope/fieldscope/internal/observability/logger"
	obsmetrics "github.com/fieldscope/fieldscope/internal/observability/metrics"
	obstracing "github.com/fieldscope/fieldscope/internal/observability/tracing"
	"github.com/fieldscope/fieldscope/internal/profile"
	profiledomain "github.com/fieldscope/fieldscope/internal/profile/domain"
	"github.com/fieldscope/fieldscope/internal/ratelimit"
	"github.com/fieldscope/fieldscope/internal/salesrecord"
	salesrecorddomain "github.com/fieldscope/fieldscope/internal/salesrecord/domain"
	"github.com/fieldscope/fieldscope/internal/salestarget"
	salestargetdomain "github.com/fieldscope/fieldscope/internal/salestarget/domain"
	"github.com/fieldscope/fieldscope/internal/schedule"
	scheduledomain "github.com/fieldscope/fieldscope/internal/schedule/domain"
	"github.com/fieldscope/fieldscope/internal/team"
	teamdomain "github.com/fieldscope/fieldscope/internal/team/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	authorization.Module,
	audit.Module,
	clock.Module,
	identity.Module,
	profile.Module,
	activity.Module,
	salesrecord.Module,
	salestarget.Module,
	bonus.Module,
	schedule.Module,
	message.Module,
	notification.Module,
	team.Module,
	account.Module,
	ratelimit.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(obsCfg, httpMetrics)
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine          *gin.Engine
	cfg             config.Config
	db              *gorm.DB
	genID           *snowflake.Node
	identitySvc     identitydomain.Service
	profileSvc      profiledomain.Service
	activitySvc     activitydomain.Service
	salesRecordSvc  salesrecorddomain.Service
	salesTargetSvc  salestargetdomain.Service
	bonusSvc        bonusdomain.Service
	scheduleSvc     scheduledomain.Service
	messageSvc      messagedomain.Service
	notificationSvc notificationdomain.Service
	teamSvc         teamdomain.Service
	accountSvc      accountdomain.Service
	auditSvc        auditdomain.Service
	authzSvc        authorization.Service
	adminLimiter    *ratelimit.TokenBucket
	metrics         *obsmetrics.Metrics
}

type ServerParams struct {
	fx.In

	Gin             *gin.Engine
	Cfg             config.Config
	DB              *gorm.DB
	GenID           *snowflake.Node
	IdentitySvc     identitydomain.Service
	ProfileSvc      profiledomain.Service
	ActivitySvc     activitydomain.Service
	SalesRecordSvc  salesrecorddomain.Service
	SalesTargetSvc  salestargetdomain.Service
	BonusSvc        bonusdomain.Service
	ScheduleSvc     scheduledomain.Service
	MessageSvc      messagedomain.Service
	NotificationSvc notificationdomain.Service
	TeamSvc         teamdomain.Service
	AccountSvc      accountdomain.Service
	AuditSvc        auditdomain.Service
	AuthzSvc        authorization.Service
	AdminLimiter    *ratelimit.TokenBucket `optional:"true"`
	Metrics         *obsmetrics.Metrics    `optional:"true"`
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:          p.Gin,
		cfg:             p.Cfg,
		db:              p.DB,
		genID:           p.GenID,
		identitySvc:     p.IdentitySvc,
		profileSvc:      p.ProfileSvc,
		activitySvc:     p.ActivitySvc,
		salesRecordSvc:  p.SalesRecordSvc,
		salesTargetSvc:  p.SalesTargetSvc,
		bonusSvc:        p.BonusSvc,
		scheduleSvc:     p.ScheduleSvc,
		messageSvc:      p.MessageSvc,
		notificationSvc: p.NotificationSvc,
		teamSvc:         p.TeamSvc,
		accountSvc:      p.AccountSvc,
		auditSvc:        p.AuditSvc,
		authzSvc:        p.AuthzSvc,
		adminLimiter:    p.AdminLimiter,
		metrics:         p.Metrics,
	}

	svc.registerAuthRoutes()
	svc.registerAPIRoutes()
	svc.registerAdminRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAuthRoutes() {
	auth := s.engine.Group("/auth")

	auth.POST("/signup", s.Signup)
	auth.POST("/login", s.Login)
	auth.POST("/logout", s.Logout)
	auth.POST("/change-password", s.AuthRequired(), s.ChangePassword)
	auth.GET("/me", s.AuthRequired(), s.Me)
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api", s.AuthRequired())

	api.GET("/profile", s.GetProfile)
	api.PATCH("/profile", s.UpdateProfile)
	api.PUT("/users/:userId/division", s.SetDivision)

	api.POST("/activities", s.CreateActivity)
	api.GET("/activities", s.ListActivities)
	api.GET("/activities/:id", s.GetActivity)
	api.PATCH("/activities/:id", s.UpdateActivity)
	api.DELETE("/activities/:id", s.DeleteActivity)

	api.POST("/sales-records", s.CreateSalesRecord)
	api.GET("/sales-records", s.ListSalesRecords)
	api.DELETE("/sales-records/:id", s.DeleteSalesRecord)

	api.PUT("/sales-targets", s.SetSalesTarget)
	api.GET("/sales-targets", s.ListSalesTargets)

	api.GET("/bonus/summary", s.BonusSummary)

	api.POST("/schedules", s.BookSchedule)
	api.GET("/schedules/availability", s.ScheduleAvailability)
	api.DELETE("/schedules/:id", s.CancelSchedule)

	api.POST("/messages", s.PostMessage)
	api.GET("/messages", s.ListMessages)
	api.POST("/messages/:id/read", s.MarkMessageRead)
	api.GET("/messages/unread-count", s.UnreadMessageCount)

	api.GET("/notifications", s.ListNotifications)
	api.POST("/notifications/:id/read", s.MarkNotificationRead)

	api.GET("/team", s.GetTeam)
	api.PATCH("/team", s.UpdateTeam)
	api.GET("/team/members", s.ListTeamMembers)

	api.GET("/audit-logs", s.ListAuditLogs)
}

// registerAdminRoutes wires the privileged account endpoints. They carry
// their own auth and CORS handling because their response contract is flat
// {"error": ...} rather than the API envelope.
func (s *Server) registerAdminRoutes() {
	admin := s.engine.Group("/api/admin", adminCORS())

	admin.OPTIONS("/delete-user", adminPreflight)
	admin.POST("/delete-user", s.adminRateLimited(), s.AdminDeleteUser)
	admin.OPTIONS("/update-user-email", adminPreflight)
	admin.POST("/update-user-email", s.adminRateLimited(), s.AdminUpdateUserEmail)
}
