package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ClientStatus enum constants
const (
	ClientStatusActive   = "Active"
	ClientStatusInactive = "Inactive"
)

// Client represents a company buying leads through the portal
type Client struct {
	ID            uuid.UUID          `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ClientNumber  string             `gorm:"type:varchar(30);uniqueIndex;not null" json:"client_number"`
	CompanyName   string             `gorm:"type:varchar(255);not null" json:"company_name"`
	ContactName   string             `gorm:"type:varchar(255);not null" json:"contact_name"`
	Email         string             `gorm:"type:varchar(255);not null" json:"email"`
	Status        string             `gorm:"type:varchar(20);not null;default:'Active';index" json:"status"` // Active, Inactive
	Phone         string             `gorm:"type:varchar(50)" json:"phone"`
	Address       string             `gorm:"type:text" json:"address"`
	Industry      string             `gorm:"type:varchar(255)" json:"industry"`
	SalesVertical string             `gorm:"type:varchar(255)" json:"sales_vertical"`
	Notes         string             `gorm:"type:text" json:"notes"`
	Marketing     *MarketingChannels `gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE" json:"marketing_channels,omitempty"`
	SalesTools    *SalesTools        `gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE" json:"sales_tools,omitempty"`
	Invoices      []Invoice          `gorm:"foreignKey:ClientID" json:"invoices,omitempty"`
	LeadBatches   []LeadBatch        `gorm:"foreignKey:ClientID" json:"lead_batches,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
	DeletedAt     gorm.DeletedAt     `gorm:"index" json:"-"`
}

// MarketingChannels is the per-client grid of marketing services in use.
// A row is created with all flags off when the client is created.
type MarketingChannels struct {
	ID                      uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ClientID                uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"client_id"`
	SocialMediaAds          bool      `gorm:"default:false" json:"social_media_ads"`
	PaidAds                 bool      `gorm:"default:false" json:"paid_ads"`
	SEO                     bool      `gorm:"column:seo;default:false" json:"seo"`
	AutomatedSalesSequences bool      `gorm:"default:false" json:"automated_sales_sequences"`
	SMSMarketing            bool      `gorm:"column:sms_marketing;default:false" json:"sms_marketing"`
	ContentMarketing        bool      `gorm:"default:false" json:"content_marketing"`
	AISalesAgents           bool      `gorm:"column:ai_sales_agents;default:false" json:"ai_sales_agents"`
	ColdEmail               bool      `gorm:"default:false" json:"cold_email"`
	CreatedAt               time.Time `json:"created_at"`
	UpdatedAt               time.Time `json:"updated_at"`
}

// SalesTools is the per-client grid of sales enablement deliverables.
type SalesTools struct {
	ID                     uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ClientID               uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"client_id"`
	SalesCollateral        bool      `gorm:"default:false" json:"sales_collateral"`
	AutomatedOutreach      bool      `gorm:"default:false" json:"automated_outreach"`
	InteractiveCalculators bool      `gorm:"default:false" json:"interactive_calculators"`
	EmailTemplates         bool      `gorm:"default:false" json:"email_templates"`
	ColdCallingScripts     bool      `gorm:"default:false" json:"cold_calling_scripts"`
	SalesProcess           bool      `gorm:"default:false" json:"sales_process"`
	CRMSystem              bool      `gorm:"column:crm_system;default:false" json:"crm_system"`
	CreatedAt              time.Time `json:"created_at"`
	UpdatedAt              time.Time `json:"updated_at"`
}
