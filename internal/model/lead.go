package model

import (
	"time"

	"github.com/google/uuid"
)

// LeadBatch represents one uploaded file of leads delivered to a client
type LeadBatch struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	BatchID    string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"batch_id"`
	FileName   string    `gorm:"type:varchar(255);not null" json:"file_name"`
	ClientID   uuid.UUID `gorm:"type:uuid;not null;index" json:"client_id"`
	Client     *Client   `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	UploadDate time.Time `gorm:"not null" json:"upload_date"`
	Leads      []Lead    `gorm:"foreignKey:BatchID;references:ID;constraint:OnDelete:CASCADE" json:"leads,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// Lead is a single prospect row inside a batch
type Lead struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	BatchID      uuid.UUID `gorm:"type:uuid;not null;index" json:"batch_id"`
	Company      string    `gorm:"type:varchar(255);not null" json:"company"`
	Owner        string    `gorm:"type:varchar(255);not null" json:"owner"`
	Mobile       *string   `gorm:"type:varchar(50)" json:"mobile"`
	Email        *string   `gorm:"type:varchar(255)" json:"email"`
	Industry     *string   `gorm:"type:varchar(255)" json:"industry"`
	CompanyPhone *string   `gorm:"type:varchar(50)" json:"company_phone"`
	Address      *string   `gorm:"type:text" json:"address"`
	City         *string   `gorm:"type:varchar(100)" json:"city"`
	State        *string   `gorm:"type:varchar(50)" json:"state"`
	ZipCode      *string   `gorm:"type:varchar(20)" json:"zip_code"`
	Website      *string   `gorm:"type:varchar(255)" json:"website"`
	JobTitle     *string   `gorm:"type:varchar(255)" json:"job_title"`
	WorkPhone    *string   `gorm:"type:varchar(50)" json:"work_phone"`
	CreatedAt    time.Time `json:"created_at"`
}
