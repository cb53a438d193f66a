package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceStatus enum constants. An empty status is allowed on legacy rows and
// is folded into the unpaid bucket by the revenue aggregator.
const (
	InvoiceStatusPaid    = "Paid"
	InvoiceStatusUnpaid  = "Unpaid"
	InvoiceStatusOverdue = "Overdue"
)

// Invoice represents a billing record for leads or services sold to a client.
// ClientName is a denormalized hard copy used for reporting so that revenue
// summaries survive client renames and deletions.
type Invoice struct {
	ID               uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	InvoiceNumber    string          `gorm:"type:varchar(30);uniqueIndex;not null" json:"invoice_number"`
	ClientID         uuid.UUID       `gorm:"type:uuid;not null;index" json:"client_id"`
	Client           *Client         `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	ClientName       string          `gorm:"type:varchar(255)" json:"client_name"`
	DateIssued       time.Time       `gorm:"not null;index" json:"date_issued"`
	Quantity         int             `gorm:"not null;default:1" json:"quantity"`
	UnitPrice        decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"unit_price"`
	Amount           decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"amount"` // quantity * unit_price
	AmountPaid       decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"amount_paid"`
	Status           string          `gorm:"type:varchar(20);index" json:"status"` // Paid, Unpaid, Overdue or empty
	PaymentMethod    *string         `gorm:"type:varchar(50)" json:"payment_method"`
	DatePaid         *time.Time      `json:"date_paid"` // Only meaningful when status = Paid
	DueDate          *time.Time      `json:"due_date"`
	LeadType         *string         `gorm:"type:varchar(100);index" json:"lead_type"` // Free-form category of leads billed
	OrderDescription *string         `gorm:"type:text" json:"order_description"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}
