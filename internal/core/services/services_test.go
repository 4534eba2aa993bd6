package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"churchhub/internal/adapters/persistence/repositories"
	"churchhub/internal/adapters/persistence/testutil"
	"churchhub/internal/config"
	"churchhub/internal/core/domain"
	"churchhub/internal/core/domain/church"
	"churchhub/internal/core/domain/donation"
	"churchhub/internal/core/domain/review"
	"churchhub/internal/pkg/logger"
	"churchhub/internal/pkg/pagination"
	"churchhub/internal/pkg/password"

	"golang.org/x/crypto/bcrypt"
)

type fixture struct {
	churches  *ChurchService
	reviews   *ReviewService
	donations *DonationService
	auth      *AuthService
	users     *UserService
	dashboard *DashboardService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.DB(t)
	log := logger.Nop()
	churchRepo := repositories.NewChurchRepository(db)
	userRepo := repositories.NewUserRepository(db)
	cfg := &config.Config{AppMode: "dev", JWT: config.JWTConfig{Secret: "test", AccessTokenMins: 5}}
	return &fixture{
		churches:  NewChurchService(churchRepo, log),
		reviews:   NewReviewService(repositories.NewReviewRepository(db), churchRepo, log),
		donations: NewDonationService(repositories.NewDonationRepository(db), log),
		auth:      NewAuthService(userRepo, cfg, log),
		users:     NewUserService(userRepo, log),
		dashboard: NewDashboardService(db),
	}
}

var (
	owner    = Actor{UserID: "owner", Role: domain.RoleUser}
	stranger = Actor{UserID: "stranger", Role: domain.RoleUser}
	admin    = Actor{UserID: "admin", Role: domain.RoleAdmin}
)

func wantCode(t *testing.T, err error, code domain.Code) {
	t.Helper()
	if got := domain.CodeOf(err); got != code {
		t.Fatalf("err = %v (code %q), want %q", err, got, code)
	}
}

func (f *fixture) publishedChurch(t *testing.T, name string) church.Published {
	t.Helper()
	ctx := context.Background()
	d, err := f.churches.Create(ctx, owner, name)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	p, err := f.churches.Publish(ctx, owner, d.ID().String())
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	return p
}

func TestChurchLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	d, err := f.churches.Create(ctx, owner, "Tokyo Baptist Church")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	_, err = f.churches.Get(ctx, stranger, d.ID().String())
	wantCode(t, err, domain.CodeNotFound)
	if _, err := f.churches.Get(ctx, owner, d.ID().String()); err != nil {
		t.Fatalf("owner Get: %v", err)
	}

	_, err = f.churches.Publish(ctx, stranger, d.ID().String())
	wantCode(t, err, domain.CodeAuthorization)

	p, err := f.churches.Publish(ctx, owner, d.ID().String())
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if p.Slug().String() != "tokyo-baptist-church" {
		t.Fatalf("slug = %s", p.Slug())
	}

	_, err = f.churches.Publish(ctx, owner, d.ID().String())
	wantCode(t, err, domain.CodeValidation)

	_, err = f.churches.Verify(ctx, owner, d.ID().String())
	wantCode(t, err, domain.CodeAuthorization)

	v, err := f.churches.Verify(ctx, admin, d.ID().String())
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if v.VerifiedBy() != "admin" || v.Slug() != p.Slug() {
		t.Fatalf("verified = %+v", v)
	}

	_, err = f.churches.Verify(ctx, admin, d.ID().String())
	wantCode(t, err, domain.CodeValidation)

	bySlug, err := f.churches.GetBySlug(ctx, "tokyo-baptist-church")
	if err != nil || !church.IsVerified(bySlug) {
		t.Fatalf("GetBySlug = %v, %v", bySlug, err)
	}

	list, total, err := f.churches.ListPublic(ctx, pagination.New(1, 10))
	if err != nil || total != 1 || len(list) != 1 {
		t.Fatalf("ListPublic = %d/%d, %v", len(list), total, err)
	}
}

func TestPublishSlugCollision(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.publishedChurch(t, "Grace Chapel")
	d, _ := f.churches.Create(ctx, owner, "Grace  Chapel!")

	_, err := f.churches.Publish(ctx, owner, d.ID().String())
	wantCode(t, err, domain.CodeConflict)

	got, _ := f.churches.Get(ctx, owner, d.ID().String())
	if !church.IsDraft(got) {
		t.Fatalf("church should remain a draft, got %s", got.Tag())
	}
}

func TestUpdateProfileAndDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.publishedChurch(t, "Grace Chapel")
	id := p.ID().String()

	_, err := f.churches.UpdateProfile(ctx, stranger, id, ProfileInput{Email: "info@grace.jp"})
	wantCode(t, err, domain.CodeAuthorization)

	_, err = f.churches.UpdateProfile(ctx, owner, id, ProfileInput{PostalCode: "12-34"})
	wantCode(t, err, domain.CodeValidation)

	updated, err := f.churches.UpdateProfile(ctx, owner, id, ProfileInput{Email: "Info@Grace.jp", PostalCode: "1234567"})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if !church.IsPublished(updated) || updated.Profile().Email().String() != "info@grace.jp" || updated.Profile().PostalCode().String() != "123-4567" {
		t.Fatalf("updated = %+v", updated)
	}

	wantCode(t, f.churches.Delete(ctx, owner, id), domain.CodeAuthorization)
	if err := f.churches.Delete(ctx, admin, id); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	_, err = f.churches.Get(ctx, admin, id)
	wantCode(t, err, domain.CodeNotFound)
}

func TestReviewFlow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.publishedChurch(t, "Grace Chapel")
	churchID := p.ID().String()

	_, err := f.reviews.Submit(ctx, stranger, church.NewID().String(), SubmitReviewInput{Content: "A lovely community."})
	wantCode(t, err, domain.CodeNotFound)

	draft, _ := f.churches.Create(ctx, owner, "Hidden Chapel")
	_, err = f.reviews.Submit(ctx, stranger, draft.ID().String(), SubmitReviewInput{Content: "A lovely community."})
	wantCode(t, err, domain.CodeValidation)

	_, err = f.reviews.Submit(ctx, stranger, churchID, SubmitReviewInput{Content: "short"})
	wantCode(t, err, domain.CodeValidation)

	pending, err := f.reviews.Submit(ctx, stranger, churchID, SubmitReviewInput{Content: "A lovely community."})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	id := pending.ID().String()

	_, err = f.reviews.Respond(ctx, owner, id, "Thank you for visiting us.")
	wantCode(t, err, domain.CodeValidation)

	_, err = f.reviews.Moderate(ctx, stranger, id, ModerateInput{Decision: "APPROVE"})
	wantCode(t, err, domain.CodeAuthorization)

	_, err = f.reviews.Moderate(ctx, owner, id, ModerateInput{Decision: "MAYBE"})
	wantCode(t, err, domain.CodeValidation)

	m, err := f.reviews.Moderate(ctx, owner, id, ModerateInput{Decision: "APPROVE"})
	if err != nil {
		t.Fatalf("Moderate: %v", err)
	}
	if !review.IsApproved(m) || m.ModeratedBy() != "owner" {
		t.Fatalf("moderated = %+v", m)
	}

	_, err = f.reviews.Moderate(ctx, admin, id, ModerateInput{Decision: "REJECT"})
	wantCode(t, err, domain.CodeValidation)

	_, err = f.reviews.Respond(ctx, stranger, id, "Thank you for visiting us.")
	wantCode(t, err, domain.CodeAuthorization)

	r, err := f.reviews.Respond(ctx, owner, id, "Thank you for visiting us.")
	if err != nil {
		t.Fatalf("Respond: %v", err)
	}
	if r.BaseState() != review.TagApproved {
		t.Fatalf("base state = %s", r.BaseState())
	}

	_, err = f.reviews.Respond(ctx, owner, id, "Thank you again for visiting.")
	wantCode(t, err, domain.CodeValidation)

	list, total, err := f.reviews.ListByChurch(ctx, Actor{}, churchID, pagination.New(1, 10))
	if err != nil || total != 1 || len(list) != 1 || !review.IsResponded(list[0]) {
		t.Fatalf("ListByChurch = %v/%d, %v", list, total, err)
	}
}

func TestDonationFlow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	donor := Actor{UserID: "donor", Role: domain.RoleUser}

	_, err := f.donations.Create(ctx, donor, CreateDonationInput{Amount: 50})
	wantCode(t, err, domain.CodeValidation)

	intent := "pi_1"
	p, err := f.donations.Create(ctx, donor, CreateDonationInput{Amount: 3000, StripePaymentIntentID: &intent})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	_, err = f.donations.Create(ctx, donor, CreateDonationInput{Amount: 3000, StripePaymentIntentID: &intent})
	wantCode(t, err, domain.CodeConflict)

	_, err = f.donations.Get(ctx, stranger, p.ID().String())
	wantCode(t, err, domain.CodeNotFound)

	_, err = f.donations.Refund(ctx, p.ID().String(), RefundInput{StripeRefundID: "re_1"})
	wantCode(t, err, domain.CodeValidation)

	c, err := f.donations.CompleteByPaymentIntent(ctx, "pi_1")
	if err != nil {
		t.Fatalf("CompleteByPaymentIntent: %v", err)
	}
	if c.ID() != p.ID() {
		t.Fatalf("completed %s, want %s", c.ID(), p.ID())
	}

	_, err = f.donations.CompleteByPaymentIntent(ctx, "pi_missing")
	wantCode(t, err, domain.CodeNotFound)

	_, err = f.donations.Fail(ctx, p.ID().String(), FailInput{Reason: "card declined"})
	wantCode(t, err, domain.CodeValidation)

	_, err = f.donations.Refund(ctx, p.ID().String(), RefundInput{StripeRefundID: " "})
	wantCode(t, err, domain.CodeValidation)

	r, err := f.donations.Refund(ctx, p.ID().String(), RefundInput{StripeRefundID: "re_1"})
	if err != nil {
		t.Fatalf("Refund: %v", err)
	}
	if !r.CompletedAt().Equal(c.CompletedAt()) || r.RefundReason() != nil {
		t.Fatalf("refunded = %+v", r)
	}

	got, err := f.donations.Get(ctx, donor, p.ID().String())
	if err != nil || !donation.IsRefunded(got) || !donation.IsTerminal(got) {
		t.Fatalf("Get = %v, %v", got, err)
	}

	list, total, err := f.donations.ListByUser(ctx, "donor", pagination.New(1, 10))
	if err != nil || total != 1 || len(list) != 1 {
		t.Fatalf("ListByUser = %d/%d, %v", len(list), total, err)
	}
}

func TestDonationExpiryJob(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	donor := Actor{UserID: "donor", Role: domain.RoleUser}

	prev := domain.Now
	t.Cleanup(func() { domain.Now = prev })
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	domain.Now = func() time.Time { return now.Add(-30 * time.Hour) }
	stale, _ := f.donations.Create(ctx, donor, CreateDonationInput{Amount: 1000})
	paid, _ := f.donations.Create(ctx, donor, CreateDonationInput{Amount: 1000})
	if _, err := f.donations.Complete(ctx, paid.ID().String()); err != nil {
		t.Fatalf("Complete: %v", err)
	}

	domain.Now = func() time.Time { return now.Add(-time.Hour) }
	fresh, _ := f.donations.Create(ctx, donor, CreateDonationInput{Amount: 1000})

	domain.Now = func() time.Time { return now }
	job, err := NewDonationExpiryJob(f.donations, config.DonationConfig{ExpiryCron: "*/15 * * * *", PendingTTL: 24 * time.Hour}, logger.Nop())
	if err != nil {
		t.Fatalf("NewDonationExpiryJob: %v", err)
	}

	n, err := job.RunOnce(ctx)
	if err != nil || n != 1 {
		t.Fatalf("RunOnce = %d, %v", n, err)
	}

	got, _ := f.donations.Get(ctx, donor, stale.ID().String())
	failed, ok := got.(donation.Failed)
	if !ok || failed.FailureReason() != ExpiredFailureReason {
		t.Fatalf("stale donation = %+v", got)
	}
	if got, _ := f.donations.Get(ctx, donor, fresh.ID().String()); !donation.IsPending(got) {
		t.Fatalf("fresh donation = %s", got.Tag())
	}
	if got, _ := f.donations.Get(ctx, donor, paid.ID().String()); !donation.IsCompleted(got) {
		t.Fatalf("paid donation = %s", got.Tag())
	}
}

func TestNewDonationExpiryJobRejectsBadSpec(t *testing.T) {
	f := newFixture(t)
	_, err := NewDonationExpiryJob(f.donations, config.DonationConfig{ExpiryCron: "every now and then"}, logger.Nop())
	if err == nil {
		t.Fatal("expected a cron parse error")
	}
}

func TestAuthRegisterLogin(t *testing.T) {
	password.Cost = bcrypt.MinCost
	t.Cleanup(func() { password.Cost = password.DefaultCost })

	f := newFixture(t)
	ctx := context.Background()

	_, err := f.auth.Register(ctx, &RegisterInput{Email: "not-an-email", Name: "A", Password: "password1"})
	wantCode(t, err, domain.CodeValidation)

	_, err = f.auth.Register(ctx, &RegisterInput{Email: "a@example.com", Name: "A", Password: "short"})
	wantCode(t, err, domain.CodeValidation)

	res, err := f.auth.Register(ctx, &RegisterInput{Email: " A@Example.com ", Name: "Aiko", Password: "password1"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if res.User.Email != "a@example.com" || res.User.Role != "USER" || res.AccessToken == "" {
		t.Fatalf("register = %+v", res)
	}

	_, err = f.auth.Register(ctx, &RegisterInput{Email: "a@example.com", Name: "B", Password: "password1"})
	wantCode(t, err, domain.CodeConflict)

	if _, err := f.auth.Login(ctx, &LoginInput{Email: "a@example.com", Password: "wrong-pass"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("bad password err = %v", err)
	}
	if _, err := f.auth.Login(ctx, &LoginInput{Email: "nobody@example.com", Password: "password1"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown user err = %v", err)
	}

	login, err := f.auth.Login(ctx, &LoginInput{Email: "a@example.com", Password: "password1"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	claims, err := f.auth.ValidateAccessToken(login.AccessToken)
	if err != nil || claims.UserID != res.User.ID {
		t.Fatalf("claims = %+v, %v", claims, err)
	}

	me, err := f.auth.Me(ctx, claims.UserID)
	if err != nil || me.Name != "Aiko" {
		t.Fatalf("Me = %+v, %v", me, err)
	}
}

func TestUserManagement(t *testing.T) {
	password.Cost = bcrypt.MinCost
	t.Cleanup(func() { password.Cost = password.DefaultCost })

	f := newFixture(t)
	ctx := context.Background()

	res, err := f.auth.Register(ctx, &RegisterInput{Email: "pastor@example.com", Name: "Pastor", Password: "password1"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	id := res.User.ID

	users, total, err := f.users.ListUsers(ctx, pagination.New(1, 10))
	if err != nil || total != 1 || len(users) != 1 {
		t.Fatalf("ListUsers = %d/%d, %v", len(users), total, err)
	}

	bogus := "PASTOR"
	_, err = f.users.UpdateUserByAdmin(ctx, admin, id, &UpdateUserByAdminInput{Role: &bogus})
	wantCode(t, err, domain.CodeValidation)

	promoted := string(domain.RoleChurchAdmin)
	updated, err := f.users.UpdateUserByAdmin(ctx, admin, id, &UpdateUserByAdminInput{Role: &promoted})
	if err != nil || updated.Role != promoted {
		t.Fatalf("UpdateUserByAdmin = %+v, %v", updated, err)
	}

	_, err = f.users.UpdateUserByAdmin(ctx, Actor{UserID: id, Role: domain.RoleAdmin}, id, &UpdateUserByAdminInput{Role: &promoted})
	wantCode(t, err, domain.CodeValidation)

	inactive := false
	if _, err := f.users.UpdateUserByAdmin(ctx, admin, id, &UpdateUserByAdminInput{IsActive: &inactive}); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	if _, err := f.auth.Login(ctx, &LoginInput{Email: "pastor@example.com", Password: "password1"}); !errors.Is(err, ErrUserInactive) {
		t.Fatalf("inactive login err = %v", err)
	}

	_, err = f.users.UpdateUserByAdmin(ctx, admin, "missing", &UpdateUserByAdminInput{})
	wantCode(t, err, domain.CodeNotFound)

	wantCode(t, f.users.DeleteUser(ctx, admin, admin.UserID), domain.CodeValidation)
	if err := f.users.DeleteUser(ctx, admin, id); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}
	wantCode(t, f.users.DeleteUser(ctx, admin, id), domain.CodeNotFound)
}

func TestChangePassword(t *testing.T) {
	password.Cost = bcrypt.MinCost
	t.Cleanup(func() { password.Cost = password.DefaultCost })

	f := newFixture(t)
	ctx := context.Background()

	res, err := f.auth.Register(ctx, &RegisterInput{Email: "b@example.com", Name: "B", Password: "password1"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	err = f.users.ChangePassword(ctx, res.User.ID, &ChangePasswordInput{OldPassword: "nope-nope", NewPassword: "password2"})
	if !errors.Is(err, ErrOldPasswordWrong) {
		t.Fatalf("wrong old password err = %v", err)
	}
	err = f.users.ChangePassword(ctx, res.User.ID, &ChangePasswordInput{OldPassword: "password1", NewPassword: "short"})
	wantCode(t, err, domain.CodeValidation)

	if err := f.users.ChangePassword(ctx, res.User.ID, &ChangePasswordInput{OldPassword: "password1", NewPassword: "password2"}); err != nil {
		t.Fatalf("ChangePassword: %v", err)
	}
	if _, err := f.auth.Login(ctx, &LoginInput{Email: "b@example.com", Password: "password2"}); err != nil {
		t.Fatalf("login with new password: %v", err)
	}
}

func TestAdminDashboard(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	donor := Actor{UserID: "donor", Role: domain.RoleUser}

	if _, err := f.churches.Create(ctx, owner, "Draft Chapel"); err != nil {
		t.Fatalf("Create: %v", err)
	}
	f.publishedChurch(t, "Hope Church")
	verified := f.publishedChurch(t, "Grace Chapel")
	if _, err := f.churches.Verify(ctx, admin, verified.ID().String()); err != nil {
		t.Fatalf("Verify: %v", err)
	}

	if _, err := f.reviews.Submit(ctx, stranger, verified.ID().String(), SubmitReviewInput{Content: "Warm welcome."}); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	d, err := f.donations.Create(ctx, donor, CreateDonationInput{Amount: 2500})
	if err != nil {
		t.Fatalf("Create donation: %v", err)
	}
	if _, err := f.donations.Complete(ctx, d.ID().String()); err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if _, err := f.donations.Create(ctx, donor, CreateDonationInput{Amount: 1000}); err != nil {
		t.Fatalf("Create donation: %v", err)
	}

	data, err := f.dashboard.GetAdminDashboard(ctx)
	if err != nil {
		t.Fatalf("GetAdminDashboard: %v", err)
	}
	if data.DraftChurches != 1 || data.PublishedChurches != 1 || data.VerifiedChurches != 1 {
		t.Fatalf("church counts = %+v", data)
	}
	if data.ReviewsByStatus["PENDING"] != 1 {
		t.Fatalf("reviews = %v", data.ReviewsByStatus)
	}
	if data.DonationsByStatus["COMPLETED"] != 1 || data.DonationsByStatus["PENDING"] != 1 {
		t.Fatalf("donations = %v", data.DonationsByStatus)
	}
	if data.CompletedAmount != 2500 || data.CompletedAmountMonth != 2500 || data.DonationsThisMonth != 2 {
		t.Fatalf("amounts = %+v", data)
	}
}

func TestPromotedChurchAdminModerates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.publishedChurch(t, "Grace Chapel")

	pending, err := f.reviews.Submit(ctx, stranger, p.ID().String(), SubmitReviewInput{Content: "A lovely community."})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	moderator := Actor{UserID: "moderator", Role: domain.RoleChurchAdmin}
	m, err := f.reviews.Moderate(ctx, moderator, pending.ID().String(), ModerateInput{Decision: "REJECT"})
	if err != nil {
		t.Fatalf("Moderate: %v", err)
	}
	if !review.IsRejected(m) || m.ModeratedBy() != "moderator" {
		t.Fatalf("moderated = %+v", m)
	}

	// moderating does not make the church theirs to manage
	_, err = f.reviews.Respond(ctx, moderator, pending.ID().String(), "Thank you for visiting us.")
	wantCode(t, err, domain.CodeAuthorization)
	_, err = f.churches.UpdateProfile(ctx, moderator, p.ID().String(), ProfileInput{Email: "x@example.com"})
	wantCode(t, err, domain.CodeAuthorization)
}

func TestListByChurchVisibility(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.publishedChurch(t, "Grace Chapel")
	churchID := p.ID().String()

	submit := func(text string) string {
		t.Helper()
		r, err := f.reviews.Submit(ctx, stranger, churchID, SubmitReviewInput{Content: text})
		if err != nil {
			t.Fatalf("Submit: %v", err)
		}
		return r.ID().String()
	}
	moderate := func(id, decision string) {
		t.Helper()
		if _, err := f.reviews.Moderate(ctx, owner, id, ModerateInput{Decision: decision}); err != nil {
			t.Fatalf("Moderate: %v", err)
		}
	}
	respond := func(id string) {
		t.Helper()
		if _, err := f.reviews.Respond(ctx, owner, id, "Thank you for visiting us."); err != nil {
			t.Fatalf("Respond: %v", err)
		}
	}

	submit("Still waiting for moderation.")
	approved := submit("Approved and left alone.")
	moderate(approved, "APPROVE")
	rejected := submit("Rejected for its language.")
	moderate(rejected, "REJECT")
	answeredApproved := submit("Approved and then answered.")
	moderate(answeredApproved, "APPROVE")
	respond(answeredApproved)
	answeredRejected := submit("Rejected and then answered.")
	moderate(answeredRejected, "REJECT")
	respond(answeredRejected)

	page := pagination.New(1, 20)
	for _, visitor := range []Actor{{}, stranger} {
		list, total, err := f.reviews.ListByChurch(ctx, visitor, churchID, page)
		if err != nil {
			t.Fatalf("ListByChurch(%q): %v", visitor.UserID, err)
		}
		if total != 2 || len(list) != 2 {
			t.Fatalf("ListByChurch(%q) = %d/%d, want 2 public reviews", visitor.UserID, len(list), total)
		}
		for _, r := range list {
			if id := r.ID().String(); id != approved && id != answeredApproved {
				t.Fatalf("ListByChurch(%q) leaked %s review %s", visitor.UserID, r.Tag(), id)
			}
		}
	}

	for _, manager := range []Actor{owner, admin, {UserID: "moderator", Role: domain.RoleChurchAdmin}} {
		_, total, err := f.reviews.ListByChurch(ctx, manager, churchID, page)
		if err != nil || total != 5 {
			t.Fatalf("ListByChurch(%q) = %d, %v, want all 5", manager.UserID, total, err)
		}
	}

	draft, _ := f.churches.Create(ctx, owner, "Hidden Chapel")
	_, _, err := f.reviews.ListByChurch(ctx, Actor{}, draft.ID().String(), page)
	wantCode(t, err, domain.CodeNotFound)
	_, _, err = f.reviews.ListByChurch(ctx, stranger, draft.ID().String(), page)
	wantCode(t, err, domain.CodeNotFound)
	if _, _, err := f.reviews.ListByChurch(ctx, owner, draft.ID().String(), page); err != nil {
		t.Fatalf("owner lists draft reviews: %v", err)
	}
	_, _, err = f.reviews.ListByChurch(ctx, Actor{}, church.NewID().String(), page)
	wantCode(t, err, domain.CodeNotFound)
}
