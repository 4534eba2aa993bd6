package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ============================================================
// Auth & User Tables
// ============================================================

// User represents users table
type User struct {
	ID        string         `gorm:"primaryKey;size:36" json:"id"`
	Email     string         `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Name      string         `gorm:"size:100;not null" json:"name"`
	Password  string         `gorm:"size:255;not null" json:"-"`
	Role      string         `gorm:"size:20;default:'USER'" json:"role"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// UserResponse DTO
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}

// ============================================================
// Church directory
// ============================================================

// Church represents churches table.
// The lifecycle state is implied by the publication and verification columns.
type Church struct {
	ID          string     `gorm:"primaryKey;size:64" json:"id"`
	Name        string     `gorm:"size:200;not null" json:"name"`
	AdminUserID string     `gorm:"size:64;index;not null" json:"admin_user_id"`
	Email       *string    `gorm:"size:255" json:"email,omitempty"`
	PostalCode  *string    `gorm:"size:8" json:"postal_code,omitempty"`
	IsPublished bool       `gorm:"default:false;index" json:"is_published"`
	Slug        *string    `gorm:"size:200;uniqueIndex" json:"slug,omitempty"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	VerifiedAt  *time.Time `json:"verified_at,omitempty"`
	VerifiedBy  *string    `gorm:"size:64" json:"verified_by,omitempty"`
	CreatedAt   time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Church) TableName() string {
	return "churches"
}

// Review status values
const (
	ReviewStatusPending   = "PENDING"
	ReviewStatusApproved  = "APPROVED"
	ReviewStatusRejected  = "REJECTED"
	ReviewStatusResponded = "RESPONDED"
)

// Review represents reviews table
type Review struct {
	ID              string     `gorm:"primaryKey;size:36" json:"id"`
	ChurchID        string     `gorm:"size:64;index;not null" json:"church_id"`
	UserID          string     `gorm:"size:64;index;not null" json:"user_id"`
	Content         string     `gorm:"type:text;not null" json:"content"`
	VisitDate       *time.Time `json:"visit_date,omitempty"`
	ExperienceType  *string    `gorm:"size:50" json:"experience_type,omitempty"`
	Status          string     `gorm:"size:20;index;not null" json:"status"`
	BaseStatus      *string    `gorm:"size:20" json:"base_status,omitempty"`
	ModeratedAt     *time.Time `json:"moderated_at,omitempty"`
	ModeratedBy     *string    `gorm:"size:64" json:"moderated_by,omitempty"`
	ModerationNote  *string    `gorm:"type:text" json:"moderation_note,omitempty"`
	ResponseContent *string    `gorm:"type:text" json:"response_content,omitempty"`
	RespondedBy     *string    `gorm:"size:64" json:"responded_by,omitempty"`
	RespondedAt     *time.Time `json:"responded_at,omitempty"`
	CreatedAt       time.Time  `gorm:"not null;index" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Review) TableName() string {
	return "reviews"
}

// Donation status values
const (
	DonationStatusPending   = "PENDING"
	DonationStatusCompleted = "COMPLETED"
	DonationStatusFailed    = "FAILED"
	DonationStatusRefunded  = "REFUNDED"
)

// Donation represents donations table.
// Metadata holds caller-supplied data only; state fields have their own columns.
type Donation struct {
	ID                    string            `gorm:"primaryKey;size:36" json:"id"`
	UserID                string            `gorm:"size:64;index;not null" json:"user_id"`
	Amount                int64             `gorm:"not null" json:"amount"`
	Status                string            `gorm:"size:20;index;not null" json:"status"`
	StripePaymentIntentID *string           `gorm:"size:255;uniqueIndex" json:"stripe_payment_intent_id,omitempty"`
	Metadata              datatypes.JSONMap `json:"metadata,omitempty"`
	CompletedAt           *time.Time        `json:"completed_at,omitempty"`
	FailedAt              *time.Time        `json:"failed_at,omitempty"`
	FailureReason         *string           `gorm:"type:text" json:"failure_reason,omitempty"`
	RefundedAt            *time.Time        `json:"refunded_at,omitempty"`
	RefundReason          *string           `gorm:"type:text" json:"refund_reason,omitempty"`
	StripeRefundID        *string           `gorm:"size:255" json:"stripe_refund_id,omitempty"`
	CreatedAt             time.Time         `gorm:"not null;index" json:"created_at"`
	UpdatedAt             time.Time         `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Donation) TableName() string {
	return "donations"
}

// AutoMigrate runs auto migration for all models
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Church{},
		&Review{},
		&Donation{},
	)
}
