package services

import (
	"context"
	"time"

	"churchhub/internal/adapters/persistence/models"
	"churchhub/internal/core/domain"

	"gorm.io/gorm"
)

// DashboardService handles dashboard operations
type DashboardService struct {
	db *gorm.DB
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db}
}

// ============================================================
// Admin Dashboard
// ============================================================

// AdminDashboardData represents admin dashboard data
type AdminDashboardData struct {
	// User Statistics
	TotalUsers        int64 `json:"totalUsers"`
	TotalAdmins       int64 `json:"totalAdmins"`
	TotalChurchAdmins int64 `json:"totalChurchAdmins"`

	// Church Statistics
	DraftChurches     int64 `json:"draftChurches"`
	PublishedChurches int64 `json:"publishedChurches"`
	VerifiedChurches  int64 `json:"verifiedChurches"`

	// Review Statistics
	ReviewsByStatus map[string]int64 `json:"reviewsByStatus"`

	// Donation Statistics
	DonationsByStatus    map[string]int64 `json:"donationsByStatus"`
	CompletedAmount      int64            `json:"completedAmount"`
	DonationsThisMonth   int64            `json:"donationsThisMonth"`
	CompletedAmountMonth int64            `json:"completedAmountThisMonth"`
}

type statusCount struct {
	Status string
	Count  int64
}

// GetAdminDashboard returns admin dashboard data
func (s *DashboardService) GetAdminDashboard(ctx context.Context) (*AdminDashboardData, error) {
	db := s.db.WithContext(ctx)
	data := &AdminDashboardData{}

	startOfMonth := domain.Now()
	startOfMonth = time.Date(startOfMonth.Year(), startOfMonth.Month(), 1, 0, 0, 0, 0, time.UTC)

	users := func() *gorm.DB { return db.Model(&models.User{}) }
	churches := func() *gorm.DB { return db.Model(&models.Church{}) }
	completed := func() *gorm.DB {
		return db.Model(&models.Donation{}).
			Where("status = ?", models.DonationStatusCompleted).
			Select("COALESCE(SUM(amount), 0)")
	}

	steps := []*gorm.DB{
		// User counts by role
		users().Count(&data.TotalUsers),
		users().Where("role = ?", string(domain.RoleAdmin)).Count(&data.TotalAdmins),
		users().Where("role = ?", string(domain.RoleChurchAdmin)).Count(&data.TotalChurchAdmins),

		// Church counts by lifecycle state
		churches().Where("is_published = ?", false).Count(&data.DraftChurches),
		churches().Where("is_published = ? AND verified_at IS NULL", true).Count(&data.PublishedChurches),
		churches().Where("verified_at IS NOT NULL").Count(&data.VerifiedChurches),

		// Donation amounts
		completed().Scan(&data.CompletedAmount),
		completed().Where("completed_at >= ?", startOfMonth).Scan(&data.CompletedAmountMonth),
		db.Model(&models.Donation{}).Where("created_at >= ?", startOfMonth).Count(&data.DonationsThisMonth),
	}
	for _, step := range steps {
		if step.Error != nil {
			return nil, domain.NewInfrastructureError("failed to load dashboard", step.Error)
		}
	}

	var err error
	if data.ReviewsByStatus, err = countByStatus(db.Model(&models.Review{})); err != nil {
		return nil, err
	}
	if data.DonationsByStatus, err = countByStatus(db.Model(&models.Donation{})); err != nil {
		return nil, err
	}
	return data, nil
}

func countByStatus(q *gorm.DB) (map[string]int64, error) {
	var rows []statusCount
	err := q.Select("status, COUNT(*) AS count").Group("status").Scan(&rows).Error
	if err != nil {
		return nil, domain.NewInfrastructureError("failed to count by status", err)
	}
	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.Status] = row.Count
	}
	return out, nil
}
