package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	accountdomain "github.com/fieldscope/fieldscope/internal/account/domain"
	activitydomain "github.com/fieldscope/fieldscope/internal/activity/domain"
	activityrepository "github.com/fieldscope/fieldscope/internal/activity/repository"
	auditdomain "github.com/fieldscope/fieldscope/internal/audit/domain"
	"github.com/fieldscope/fieldscope/internal/authorization"
	identitydomain "github.com/fieldscope/fieldscope/internal/identity/domain"
	identityrepository "github.com/fieldscope/fieldscope/internal/identity/repository"
	messagedomain "github.com/fieldscope/fieldscope/internal/message/domain"
	messagerepository "github.com/fieldscope/fieldscope/internal/message/repository"
	notificationdomain "github.com/fieldscope/fieldscope/internal/notification/domain"
	notificationrepository "github.com/fieldscope/fieldscope/internal/notification/repository"
	profiledomain "github.com/fieldscope/fieldscope/internal/profile/domain"
	profilerepository "github.com/fieldscope/fieldscope/internal/profile/repository"
	salesrecorddomain "github.com/fieldscope/fieldscope/internal/salesrecord/domain"
	salesrecordrepository "github.com/fieldscope/fieldscope/internal/salesrecord/repository"
	salestargetdomain "github.com/fieldscope/fieldscope/internal/salestarget/domain"
	salestargetrepository "github.com/fieldscope/fieldscope/internal/salestarget/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fakeAuthz struct {
	managers map[string]bool
}

func (f *fakeAuthz) Authorize(ctx context.Context, actor, object, action string) error {
	if f.managers[actor] {
		return nil
	}
	return authorization.ErrForbidden
}

type fakeAudit struct {
	records []auditdomain.RecordRequest
}

func (f *fakeAudit) Record(ctx context.Context, req auditdomain.RecordRequest) error {
	f.records = append(f.records, req)
	return nil
}

func (f *fakeAudit) List(ctx context.Context, filter auditdomain.ListFilter) ([]*auditdomain.AuditLog, error) {
	return nil, nil
}

// stepRecorder logs which purge steps ran, optionally failing one of them.
type stepRecorder struct {
	steps  []string
	failOn string
}

var errInjected = errors.New("injected step failure")

func (r *stepRecorder) hit(name string) error {
	r.steps = append(r.steps, name)
	if name == r.failOn {
		return errInjected
	}
	return nil
}

type recordingRoleRepo struct {
	profiledomain.RoleRepository
	rec *stepRecorder
}

func (r *recordingRoleRepo) DeleteRolesByUser(ctx context.Context, db *gorm.DB, userID snowflake.ID) error {
	if err := r.rec.hit("roles"); err != nil {
		return err
	}
	return r.RoleRepository.DeleteRolesByUser(ctx, db, userID)
}

type recordingActivityRepo struct {
	activitydomain.Repository
	rec *stepRecorder
}

func (r *recordingActivityRepo) DeleteByUser(ctx context.Context, db *gorm.DB, userID snowflake.ID) error {
	if err := r.rec.hit("activities"); err != nil {
		return err
	}
	return r.Repository.DeleteByUser(ctx, db, userID)
}

type recordingSalesRecordRepo struct {
	salesrecorddomain.Repository
	rec *stepRecorder
}

func (r *recordingSalesRecordRepo) DeleteByUser(ctx context.Context, db *gorm.DB, userID snowflake.ID) error {
	if err := r.rec.hit("sales_records"); err != nil {
		return err
	}
	return r.Repository.DeleteByUser(ctx, db, userID)
}

type recordingSalesTargetRepo struct {
	salestargetdomain.Repository
	rec *stepRecorder
}

func (r *recordingSalesTargetRepo) DeleteByUser(ctx context.Context, db *gorm.DB, userID snowflake.ID) error {
	if err := r.rec.hit("sales_targets"); err != nil {
		return err
	}
	return r.Repository.DeleteByUser(ctx, db, userID)
}

type recordingMessageRepo struct {
	messagedomain.Repository
	rec *stepRecorder
}

func (r *recordingMessageRepo) DeleteBySender(ctx context.Context, db *gorm.DB, senderID snowflake.ID) error {
	if err := r.rec.hit("messages"); err != nil {
		return err
	}
	return r.Repository.DeleteBySender(ctx, db, senderID)
}

type recordingNotificationRepo struct {
	notificationdomain.Repository
	rec *stepRecorder
}

func (r *recordingNotificationRepo) DeleteByUser(ctx context.Context, db *gorm.DB, userID snowflake.ID) error {
	if err := r.rec.hit("notifications"); err != nil {
		return err
	}
	return r.Repository.DeleteByUser(ctx, db, userID)
}

type recordingMessageReadRepo struct {
	messagedomain.ReadRepository
	rec *stepRecorder
}

func (r *recordingMessageReadRepo) DeleteByUser(ctx context.Context, db *gorm.DB, userID snowflake.ID) error {
	if err := r.rec.hit("message_reads"); err != nil {
		return err
	}
	return r.ReadRepository.DeleteByUser(ctx, db, userID)
}

type recordingProfileRepo struct {
	profiledomain.Repository
	rec *stepRecorder
}

func (r *recordingProfileRepo) DeleteByUser(ctx context.Context, db *gorm.DB, userID snowflake.ID) error {
	if err := r.rec.hit("profile"); err != nil {
		return err
	}
	return r.Repository.DeleteByUser(ctx, db, userID)
}

type recordingIdentityRepo struct {
	identitydomain.Repository
	rec *stepRecorder
}

func (r *recordingIdentityRepo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	if err := r.rec.hit("identity"); err != nil {
		return err
	}
	return r.Repository.Delete(ctx, db, id)
}

var expectedPurgeOrder = []string{
	"roles",
	"activities",
	"sales_records",
	"sales_targets",
	"messages",
	"notifications",
	"message_reads",
	"profile",
	"identity",
}

type fixture struct {
	svc   accountdomain.Service
	db    *gorm.DB
	node  *snowflake.Node
	rec   *stepRecorder
	authz *fakeAuthz
	audit *fakeAudit
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, conn.AutoMigrate(
		&identitydomain.User{},
		&identitydomain.Session{},
		&profiledomain.Profile{},
		&profiledomain.UserRole{},
		&activitydomain.Activity{},
		&salesrecorddomain.SalesRecord{},
		&salestargetdomain.SalesTarget{},
		&messagedomain.Message{},
		&messagedomain.MessageRead{},
		&notificationdomain.Notification{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	identityRepo, sessionRepo := identityrepository.Provide()
	profileRepo, roleRepo := profilerepository.Provide()
	messageRepo, messageReadRepo := messagerepository.Provide()

	rec := &stepRecorder{}
	authz := &fakeAuthz{managers: map[string]bool{}}
	audit := &fakeAudit{}

	svc := New(Params{
		DB:               conn,
		Log:              zap.NewNop(),
		Authz:            authz,
		Audit:            audit,
		IdentityRepo:     &recordingIdentityRepo{Repository: identityRepo, rec: rec},
		SessionRepo:      sessionRepo,
		ProfileRepo:      &recordingProfileRepo{Repository: profileRepo, rec: rec},
		RoleRepo:         &recordingRoleRepo{RoleRepository: roleRepo, rec: rec},
		ActivityRepo:     &recordingActivityRepo{Repository: activityrepository.Provide(), rec: rec},
		SalesRecordRepo:  &recordingSalesRecordRepo{Repository: salesrecordrepository.Provide(), rec: rec},
		SalesTargetRepo:  &recordingSalesTargetRepo{Repository: salestargetrepository.Provide(), rec: rec},
		MessageRepo:      &recordingMessageRepo{Repository: messageRepo, rec: rec},
		MessageReadRepo:  &recordingMessageReadRepo{ReadRepository: messageReadRepo, rec: rec},
		NotificationRepo: &recordingNotificationRepo{Repository: notificationrepository.Provide(), rec: rec},
	})

	return &fixture{svc: svc, db: conn, node: node, rec: rec, authz: authz, audit: audit}
}

func (f *fixture) seedUser(t *testing.T, division profiledomain.Division, roles ...profiledomain.Role) snowflake.ID {
	t.Helper()

	id := f.node.Generate()
	now := time.Now().UTC()

	require.NoError(t, f.db.Create(&identitydomain.User{
		ID:        id,
		Email:     fmt.Sprintf("user-%s@example.com", id),
		CreatedAt: now,
		UpdatedAt: now,
	}).Error)
	require.NoError(t, f.db.Create(&profiledomain.Profile{
		ID:        f.node.Generate(),
		UserID:    id,
		FullName:  "Test User",
		Division:  division,
		CreatedAt: now,
		UpdatedAt: now,
	}).Error)

	for _, role := range roles {
		require.NoError(t, f.db.Create(&profiledomain.UserRole{
			ID:        f.node.Generate(),
			UserID:    id,
			Role:      role,
			CreatedAt: now,
		}).Error)
	}

	if division == profiledomain.DivisionManager {
		f.authz.managers["user:"+id.String()] = true
	}
	return id
}

// seedUserData attaches one row of every owned record type to the user.
func (f *fixture) seedUserData(t *testing.T, userID snowflake.ID) {
	t.Helper()
	now := time.Now().UTC()

	require.NoError(t, f.db.Create(&activitydomain.Activity{
		ID: f.node.Generate(), UserID: userID,
		CustomerName: "Acme", Type: activitydomain.TypeVisit, OccurredAt: now,
		CreatedAt: now, UpdatedAt: now,
	}).Error)
	require.NoError(t, f.db.Create(&salesrecorddomain.SalesRecord{
		ID: f.node.Generate(), UserID: userID,
		CustomerName: "Acme", Amount: decimal.NewFromInt(1000), Margin: decimal.NewFromInt(200),
		SoldAt: now, CreatedAt: now, UpdatedAt: now,
	}).Error)
	require.NoError(t, f.db.Create(&salestargetdomain.SalesTarget{
		ID: f.node.Generate(), UserID: userID,
		Year: now.Year(), Month: int(now.Month()), TargetAmount: decimal.NewFromInt(5000),
		CreatedAt: now, UpdatedAt: now,
	}).Error)

	msg := &messagedomain.Message{ID: f.node.Generate(), SenderID: userID, Body: "hello", CreatedAt: now}
	require.NoError(t, f.db.Create(msg).Error)
	require.NoError(t, f.db.Create(&messagedomain.MessageRead{
		ID: f.node.Generate(), MessageID: msg.ID, UserID: userID, ReadAt: now,
	}).Error)
	require.NoError(t, f.db.Create(&notificationdomain.Notification{
		ID: f.node.Generate(), UserID: userID, Title: "welcome",
		Metadata: map[string]any{}, CreatedAt: now,
	}).Error)
	require.NoError(t, f.db.Create(&identitydomain.Session{
		ID: f.node.Generate(), UserID: userID,
		SessionTokenHash: fmt.Sprintf("hash-%s", userID),
		ExpiresAt:        now.Add(time.Hour), CreatedAt: now, LastSeenAt: now,
	}).Error)
}

func (f *fixture) countRows(t *testing.T, model any, userColumn string, userID snowflake.ID) int64 {
	t.Helper()
	var count int64
	require.NoError(t, f.db.Model(model).Where(userColumn+" = ?", userID).Count(&count).Error)
	return count
}

func TestDeleteAccount_NonManagerForbidden(t *testing.T) {
	f := newFixture(t)
	caller := f.seedUser(t, profiledomain.DivisionSales)
	target := f.seedUser(t, profiledomain.DivisionSales)
	f.seedUserData(t, target)

	err := f.svc.DeleteAccount(context.Background(), caller, target.String())
	assert.ErrorIs(t, err, accountdomain.ErrManagerRequired)

	assert.Empty(t, f.rec.steps, "no purge step may run for a forbidden caller")
	assert.EqualValues(t, 1, f.countRows(t, &identitydomain.User{}, "id", target))
	assert.EqualValues(t, 1, f.countRows(t, &activitydomain.Activity{}, "user_id", target))
}

func TestDeleteAccount_MissingCaller(t *testing.T) {
	f := newFixture(t)
	target := f.seedUser(t, profiledomain.DivisionSales)

	err := f.svc.DeleteAccount(context.Background(), 0, target.String())
	assert.ErrorIs(t, err, accountdomain.ErrUnauthorized)
	assert.Empty(t, f.rec.steps)
}

func TestDeleteAccount_MissingTarget(t *testing.T) {
	f := newFixture(t)
	caller := f.seedUser(t, profiledomain.DivisionManager)

	err := f.svc.DeleteAccount(context.Background(), caller, "")
	assert.ErrorIs(t, err, accountdomain.ErrTargetRequired)

	err = f.svc.DeleteAccount(context.Background(), caller, "   ")
	assert.ErrorIs(t, err, accountdomain.ErrTargetRequired)

	err = f.svc.DeleteAccount(context.Background(), caller, "not-a-number")
	assert.ErrorIs(t, err, accountdomain.ErrInvalidTarget)
}

// The capability check outranks target validation: a non-manager with an
// empty target gets the forbidden answer, not the missing-target one.
func TestDeleteAccount_ForbiddenBeforeTargetValidation(t *testing.T) {
	f := newFixture(t)
	caller := f.seedUser(t, profiledomain.DivisionSales)

	err := f.svc.DeleteAccount(context.Background(), caller, "")
	assert.ErrorIs(t, err, accountdomain.ErrManagerRequired)
}

func TestDeleteAccount_SelfTarget(t *testing.T) {
	f := newFixture(t)
	caller := f.seedUser(t, profiledomain.DivisionManager)

	err := f.svc.DeleteAccount(context.Background(), caller, caller.String())
	assert.ErrorIs(t, err, accountdomain.ErrCannotDeleteSelf)
	assert.Empty(t, f.rec.steps)
	assert.EqualValues(t, 1, f.countRows(t, &identitydomain.User{}, "id", caller))
}

func TestDeleteAccount_SuperadminProtected(t *testing.T) {
	f := newFixture(t)
	caller := f.seedUser(t, profiledomain.DivisionManager)
	target := f.seedUser(t, profiledomain.DivisionManager, profiledomain.RoleSuperadmin)

	err := f.svc.DeleteAccount(context.Background(), caller, target.String())
	assert.ErrorIs(t, err, accountdomain.ErrSuperadminProtected)
	assert.Empty(t, f.rec.steps)
	assert.EqualValues(t, 1, f.countRows(t, &identitydomain.User{}, "id", target))
}

func TestDeleteAccount_CascadeOrder(t *testing.T) {
	f := newFixture(t)
	caller := f.seedUser(t, profiledomain.DivisionManager)
	target := f.seedUser(t, profiledomain.DivisionSales, profiledomain.RoleUser)
	f.seedUserData(t, target)

	err := f.svc.DeleteAccount(context.Background(), caller, target.String())
	require.NoError(t, err)

	assert.Equal(t, expectedPurgeOrder, f.rec.steps)

	assert.EqualValues(t, 0, f.countRows(t, &identitydomain.User{}, "id", target))
	assert.EqualValues(t, 0, f.countRows(t, &identitydomain.Session{}, "user_id", target))
	assert.EqualValues(t, 0, f.countRows(t, &profiledomain.Profile{}, "user_id", target))
	assert.EqualValues(t, 0, f.countRows(t, &profiledomain.UserRole{}, "user_id", target))
	assert.EqualValues(t, 0, f.countRows(t, &activitydomain.Activity{}, "user_id", target))
	assert.EqualValues(t, 0, f.countRows(t, &salesrecorddomain.SalesRecord{}, "user_id", target))
	assert.EqualValues(t, 0, f.countRows(t, &salestargetdomain.SalesTarget{}, "user_id", target))
	assert.EqualValues(t, 0, f.countRows(t, &messagedomain.Message{}, "sender_id", target))
	assert.EqualValues(t, 0, f.countRows(t, &messagedomain.MessageRead{}, "user_id", target))
	assert.EqualValues(t, 0, f.countRows(t, &notificationdomain.Notification{}, "user_id", target))

	// caller untouched
	assert.EqualValues(t, 1, f.countRows(t, &identitydomain.User{}, "id", caller))

	require.Len(t, f.audit.records, 1)
	assert.Equal(t, authorization.ActionAccountDelete, f.audit.records[0].Action)
}

func TestDeleteAccount_FailureRollsBack(t *testing.T) {
	f := newFixture(t)
	caller := f.seedUser(t, profiledomain.DivisionManager)
	target := f.seedUser(t, profiledomain.DivisionSales, profiledomain.RoleUser)
	f.seedUserData(t, target)

	f.rec.failOn = "profile"

	err := f.svc.DeleteAccount(context.Background(), caller, target.String())
	require.ErrorIs(t, err, errInjected)

	// every step up to and including the failed one ran, identity never
	assert.Equal(t, expectedPurgeOrder[:8], f.rec.steps)

	// the transaction rolled everything back
	assert.EqualValues(t, 1, f.countRows(t, &identitydomain.User{}, "id", target))
	assert.EqualValues(t, 1, f.countRows(t, &profiledomain.UserRole{}, "user_id", target))
	assert.EqualValues(t, 1, f.countRows(t, &activitydomain.Activity{}, "user_id", target))
	assert.EqualValues(t, 1, f.countRows(t, &salesrecorddomain.SalesRecord{}, "user_id", target))
	assert.EqualValues(t, 1, f.countRows(t, &messagedomain.Message{}, "sender_id", target))

	assert.Empty(t, f.audit.records)
}

func TestUpdateEmail_ManagerUpdatesTarget(t *testing.T) {
	f := newFixture(t)
	caller := f.seedUser(t, profiledomain.DivisionManager)
	target := f.seedUser(t, profiledomain.DivisionSales)

	user, err := f.svc.UpdateEmail(context.Background(), caller, target.String(), "New.Address@Example.COM")
	require.NoError(t, err)
	assert.Equal(t, "new.address@example.com", user.Email)

	require.Len(t, f.audit.records, 1)
	assert.Equal(t, authorization.ActionAccountUpdateEmail, f.audit.records[0].Action)
}

func TestUpdateEmail_NonManagerForbidden(t *testing.T) {
	f := newFixture(t)
	caller := f.seedUser(t, profiledomain.DivisionSales)
	target := f.seedUser(t, profiledomain.DivisionSales)

	_, err := f.svc.UpdateEmail(context.Background(), caller, target.String(), "new@example.com")
	assert.ErrorIs(t, err, accountdomain.ErrManagerRequired)
}

// Managers may update their own email; only delete refuses self-targeting.
func TestUpdateEmail_SelfAllowed(t *testing.T) {
	f := newFixture(t)
	caller := f.seedUser(t, profiledomain.DivisionManager)

	user, err := f.svc.UpdateEmail(context.Background(), caller, caller.String(), "me@example.com")
	require.NoError(t, err)
	assert.Equal(t, "me@example.com", user.Email)
}

func TestUpdateEmail_SuperadminProtected(t *testing.T) {
	f := newFixture(t)
	caller := f.seedUser(t, profiledomain.DivisionManager)
	target := f.seedUser(t, profiledomain.DivisionManager, profiledomain.RoleSuperadmin)

	_, err := f.svc.UpdateEmail(context.Background(), caller, target.String(), "new@example.com")
	assert.ErrorIs(t, err, accountdomain.ErrSuperadminProtected)
}

func TestUpdateEmail_InvalidEmail(t *testing.T) {
	f := newFixture(t)
	caller := f.seedUser(t, profiledomain.DivisionManager)
	target := f.seedUser(t, profiledomain.DivisionSales)

	overlong := strings.Repeat("x", 250) + "@example.com"
	for _, bad := range []string{"", "not-an-email", "@example.com", overlong} {
		_, err := f.svc.UpdateEmail(context.Background(), caller, target.String(), bad)
		assert.ErrorIs(t, err, accountdomain.ErrInvalidEmail, "email %q", bad)
	}
}

func TestUpdateEmail_UnknownTarget(t *testing.T) {
	f := newFixture(t)
	caller := f.seedUser(t, profiledomain.DivisionManager)

	_, err := f.svc.UpdateEmail(context.Background(), caller, f.node.Generate().String(), "new@example.com")
	assert.ErrorIs(t, err, accountdomain.ErrInvalidTarget)
}
