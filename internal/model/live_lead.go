package model

import (
	"time"

	"github.com/google/uuid"
)

// LiveLead is a real-time lead routed to a client as it comes in,
// as opposed to batch-delivered Lead rows.
type LiveLead struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ClientID    *uuid.UUID `gorm:"type:uuid;index" json:"client_id"` // Unassigned until routed
	Client      *Client    `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	CompanyName string     `gorm:"type:varchar(255);not null" json:"company_name"`
	OwnerName   string     `gorm:"type:varchar(255);not null" json:"owner_name"`
	Email       *string    `gorm:"type:varchar(255)" json:"email"`
	Phone       *string    `gorm:"type:varchar(50)" json:"phone"`
	Mobile      *string    `gorm:"type:varchar(50)" json:"mobile"`
	Industry    *string    `gorm:"type:varchar(255)" json:"industry"`
	State       *string    `gorm:"type:varchar(50)" json:"state"`
	LeadType    *string    `gorm:"type:varchar(100)" json:"lead_type"`
	Date        time.Time  `gorm:"not null;index" json:"date"` // When the lead came in
	Notes       *string    `gorm:"type:text" json:"notes"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
