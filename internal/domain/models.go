package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// BeforeCreate assigns the primary key so rows get the same IDs on every driver
func (m *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// UserRole is the single role a user holds inside LabAid
type UserRole string

const (
	RoleSuperAdmin UserRole = "super_admin"
	RoleLabAdmin   UserRole = "lab_admin"
	RoleSupervisor UserRole = "supervisor"
	RoleTech       UserRole = "tech"
	RoleReadOnly   UserRole = "read_only"
)

// roleRank orders roles from least to most privileged
var roleRank = map[UserRole]int{
	RoleReadOnly:   1,
	RoleTech:       2,
	RoleSupervisor: 3,
	RoleLabAdmin:   4,
	RoleSuperAdmin: 5,
}

// IsValid reports whether the role is known
func (r UserRole) IsValid() bool {
	_, ok := roleRank[r]
	return ok
}

// AtLeast reports whether r is as privileged as min
func (r UserRole) AtLeast(min UserRole) bool {
	return roleRank[r] >= roleRank[min]
}

// LabSettings holds per-lab behaviour switches
type LabSettings struct {
	SealedCountsOnly bool `gorm:"not null;default:false;column:sealed_counts_only" json:"sealedCountsOnly"`
	ExpiryWarnDays   int  `gorm:"not null;default:30;column:expiry_warn_days" json:"expiryWarnDays"`
	QCDocRequired    bool `gorm:"not null;default:false;column:qc_doc_required" json:"qcDocRequired"`
	StorageEnabled   bool `gorm:"not null;default:true;column:storage_enabled" json:"storageEnabled"`
}

// DefaultLabSettings returns the settings a new lab starts with
func DefaultLabSettings() LabSettings {
	return LabSettings{
		ExpiryWarnDays: 30,
		StorageEnabled: true,
	}
}

// Lab is a tenant: every inventory row belongs to exactly one lab
type Lab struct {
	BaseModel
	Name     string      `gorm:"type:varchar(200);not null;uniqueIndex"`
	IsActive bool        `gorm:"not null;default:true;column:is_active"`
	Settings LabSettings `gorm:"embedded"`
}

// User is an account that can sign in to LabAid
type User struct {
	BaseModel
	Email              string     `gorm:"type:varchar(255);not null;uniqueIndex"`
	FullName           string     `gorm:"type:varchar(200);not null;column:full_name"`
	PasswordHash       string     `gorm:"type:varchar(255);not null;column:password_hash"`
	Role               UserRole   `gorm:"type:varchar(30);not null"`
	LabID              *uuid.UUID `gorm:"type:uuid;index;column:lab_id"`
	Lab                *Lab       `gorm:"foreignKey:LabID"`
	IsActive           bool       `gorm:"not null;default:true;column:is_active"`
	MustChangePassword bool       `gorm:"not null;default:false;column:must_change_password"`
	LastLoginAt        *time.Time `gorm:"column:last_login_at"`
}

// Fluorochrome is a dye that antibodies are conjugated with
type Fluorochrome struct {
	BaseModel
	LabID uuid.UUID `gorm:"type:uuid;not null;index;column:lab_id"`
	Name  string    `gorm:"type:varchar(100);not null"`
	Color string    `gorm:"type:varchar(7);not null"`
}

// AntibodyDesignation is the regulatory designation of a reagent
type AntibodyDesignation string

const (
	DesignationRUO AntibodyDesignation = "ruo"
	DesignationASR AntibodyDesignation = "asr"
	DesignationIVD AntibodyDesignation = "ivd"
)

func (d AntibodyDesignation) IsValid() bool {
	return d == DesignationRUO || d == DesignationASR || d == DesignationIVD
}

// Antibody is a reagent definition; physical stock is tracked in lots and vials
type Antibody struct {
	BaseModel
	LabID                uuid.UUID           `gorm:"type:uuid;not null;index;column:lab_id"`
	Target               string              `gorm:"type:varchar(100);not null"`
	Fluorochrome         string              `gorm:"type:varchar(100);not null"`
	Clone                string              `gorm:"type:varchar(100)"`
	Vendor               string              `gorm:"type:varchar(200)"`
	CatalogNumber        string              `gorm:"type:varchar(100);column:catalog_number"`
	Designation          AntibodyDesignation `gorm:"type:varchar(10);not null;default:'ruo'"`
	StabilityDays        *int                `gorm:"column:stability_days"`
	LowStockThreshold    *int                `gorm:"column:low_stock_threshold"`
	ApprovedLowThreshold *int                `gorm:"column:approved_low_threshold"`
	IsActive             bool                `gorm:"not null;default:true;column:is_active"`
}

// DisplayName renders the antibody the way it appears on labels
func (a *Antibody) DisplayName() string {
	return fmt.Sprintf("%s-%s", a.Target, a.Fluorochrome)
}

// QCStatus is the quality-control state of a lot
type QCStatus string

const (
	QCStatusPending  QCStatus = "pending"
	QCStatusApproved QCStatus = "approved"
	QCStatusFailed   QCStatus = "failed"
)

// IsValid reports whether the status is known
func (s QCStatus) IsValid() bool {
	switch s {
	case QCStatusPending, QCStatusApproved, QCStatusFailed:
		return true
	}
	return false
}

// Lot is a batch of vials sharing a vendor lot number
type Lot struct {
	BaseModel
	LabID          uuid.UUID  `gorm:"type:uuid;not null;index;column:lab_id"`
	AntibodyID     uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_lot_antibody_number;column:antibody_id"`
	Antibody       *Antibody  `gorm:"foreignKey:AntibodyID"`
	LotNumber      string     `gorm:"type:varchar(100);not null;uniqueIndex:idx_lot_antibody_number;column:lot_number"`
	VendorBarcode  string     `gorm:"type:varchar(200);index;column:vendor_barcode"`
	ExpirationDate *time.Time `gorm:"type:date;column:expiration_date"`
	QCStatus       QCStatus   `gorm:"type:varchar(20);not null;default:'pending';column:qc_status"`
	QCApprovedBy   *uuid.UUID `gorm:"type:uuid;column:qc_approved_by"`
	QCApprovedAt   *time.Time `gorm:"column:qc_approved_at"`
	IsArchived     bool       `gorm:"not null;default:false;column:is_archived"`
}

// IsExpired reports whether the lot expiration date is before the given day
func (l *Lot) IsExpired(now time.Time) bool {
	if l.ExpirationDate == nil {
		return false
	}
	return l.ExpirationDate.Before(startOfDay(now))
}

// ExpiresWithin reports whether the lot expires within the given number of days (and is not yet expired)
func (l *Lot) ExpiresWithin(now time.Time, days int) bool {
	if l.ExpirationDate == nil || l.IsExpired(now) {
		return false
	}
	return !l.ExpirationDate.After(startOfDay(now).AddDate(0, 0, days))
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// VialStatus is the lifecycle state of a single vial
type VialStatus string

const (
	VialStatusSealed   VialStatus = "sealed"
	VialStatusOpened   VialStatus = "opened"
	VialStatusDepleted VialStatus = "depleted"
	VialStatusArchived VialStatus = "archived"
)

// IsInUse reports whether the vial is still part of usable inventory
func (s VialStatus) IsInUse() bool {
	return s == VialStatusSealed || s == VialStatusOpened
}

func (s VialStatus) IsValid() bool {
	return s.IsInUse() || s == VialStatusDepleted || s == VialStatusArchived
}

// Vial is one physical unit of inventory
type Vial struct {
	BaseModel
	LabID          uuid.UUID    `gorm:"type:uuid;not null;index;column:lab_id"`
	LotID          uuid.UUID    `gorm:"type:uuid;not null;index;column:lot_id"`
	Lot            *Lot         `gorm:"foreignKey:LotID"`
	AntibodyID     uuid.UUID    `gorm:"type:uuid;not null;index;column:antibody_id"`
	Status         VialStatus   `gorm:"type:varchar(20);not null;default:'sealed';index"`
	LocationCellID *uuid.UUID   `gorm:"type:uuid;uniqueIndex;column:location_cell_id"`
	LocationCell   *StorageCell `gorm:"foreignKey:LocationCellID"`
	ReceivedAt     time.Time    `gorm:"not null;column:received_at"`
	OpenedAt       *time.Time   `gorm:"column:opened_at"`
	OpenedBy       *uuid.UUID   `gorm:"type:uuid;column:opened_by"`
	OpenExpiration *time.Time   `gorm:"column:open_expiration"`
	DepletedAt     *time.Time   `gorm:"column:depleted_at"`
	DepletedBy     *uuid.UUID   `gorm:"type:uuid;column:depleted_by"`
}

// IsOpenExpired reports whether an opened vial is past its stability window
func (v *Vial) IsOpenExpired(now time.Time) bool {
	return v.Status == VialStatusOpened && v.OpenExpiration != nil && now.After(*v.OpenExpiration)
}

// MaxGridDimension is the largest number of rows or columns a storage unit may have
const MaxGridDimension = 26

// StorageUnit is a physical rack, box or freezer shelf modelled as a grid
type StorageUnit struct {
	BaseModel
	LabID       uuid.UUID `gorm:"type:uuid;not null;index;column:lab_id"`
	Name        string    `gorm:"type:varchar(200);not null"`
	Rows        int       `gorm:"not null"`
	Cols        int       `gorm:"not null"`
	Temperature string    `gorm:"type:varchar(50)"`
	IsActive    bool      `gorm:"not null;default:true;column:is_active"`
	IsTemporary bool      `gorm:"not null;default:false;column:is_temporary"`
}

// StorageCell is one position in a storage unit
type StorageCell struct {
	BaseModel
	StorageUnitID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cell_position;column:storage_unit_id"`
	Row           int       `gorm:"not null;uniqueIndex:idx_cell_position;column:row_index"`
	Col           int       `gorm:"not null;uniqueIndex:idx_cell_position;column:col_index"`
	Label         string    `gorm:"type:varchar(10);not null"`
}

// CellLabel renders the label for a zero-based row and column ("A1", "C12")
func CellLabel(row, col int) string {
	return fmt.Sprintf("%c%d", rune('A'+row), col+1)
}

// AuditLog is an append-only record of a change made through LabAid
type AuditLog struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	LabID       *uuid.UUID `gorm:"type:uuid;index;column:lab_id"`
	UserID      *uuid.UUID `gorm:"type:uuid;index;column:user_id"`
	UserName    string     `gorm:"type:varchar(200);column:user_name"`
	Action      string     `gorm:"type:varchar(100);not null;index"`
	EntityType  string     `gorm:"type:varchar(50);not null;column:entity_type"`
	EntityID    *uuid.UUID `gorm:"type:uuid;index;column:entity_id"`
	Note        string     `gorm:"type:text"`
	BeforeState string     `gorm:"type:text;column:before_state"`
	AfterState  string     `gorm:"type:text;column:after_state"`
	IPAddress   string     `gorm:"type:varchar(64);column:ip_address"`
	UserAgent   string     `gorm:"type:text;column:user_agent"`
	RequestID   string     `gorm:"type:varchar(100);column:request_id"`
	CreatedAt   time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP;index"`
}

// BeforeCreate assigns the primary key
func (a *AuditLog) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// TicketStatus is the state of a support ticket
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "open"
	TicketStatusInProgress TicketStatus = "in_progress"
	TicketStatusResolved   TicketStatus = "resolved"
	TicketStatusClosed     TicketStatus = "closed"
)

func (s TicketStatus) IsValid() bool {
	switch s {
	case TicketStatusOpen, TicketStatusInProgress, TicketStatusResolved, TicketStatusClosed:
		return true
	}
	return false
}

// SupportTicket is a request for help raised by a lab user
type SupportTicket struct {
	BaseModel
	LabID    uuid.UUID       `gorm:"type:uuid;not null;index;column:lab_id"`
	UserID   uuid.UUID       `gorm:"type:uuid;not null;column:user_id"`
	UserName string          `gorm:"type:varchar(200);column:user_name"`
	Title    string          `gorm:"type:varchar(200);not null"`
	Message  string          `gorm:"type:text;not null"`
	Status   TicketStatus    `gorm:"type:varchar(20);not null;default:'open'"`
	Comments []TicketComment `gorm:"foreignKey:TicketID"`
}

// TicketComment is a reply on a support ticket
type TicketComment struct {
	BaseModel
	TicketID uuid.UUID `gorm:"type:uuid;not null;index;column:ticket_id"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;column:user_id"`
	UserName string    `gorm:"type:varchar(200);column:user_name"`
	Message  string    `gorm:"type:text;not null"`
}

// Document is a file attached to a lot, such as a certificate of analysis
type Document struct {
	BaseModel
	LabID        uuid.UUID `gorm:"type:uuid;not null;index;column:lab_id"`
	LotID        uuid.UUID `gorm:"type:uuid;not null;index;column:lot_id"`
	FileName     string    `gorm:"type:varchar(255);not null;column:file_name"`
	ContentType  string    `gorm:"type:varchar(100);not null;column:content_type"`
	Size         int64     `gorm:"not null"`
	StoragePath  string    `gorm:"type:varchar(500);not null;uniqueIndex;column:storage_path"`
	Description  string    `gorm:"type:text"`
	IsQCDocument bool      `gorm:"not null;default:false;column:is_qc_document"`
	UploadedBy   uuid.UUID `gorm:"type:uuid;not null;column:uploaded_by"`
}
