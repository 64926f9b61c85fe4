package domain

import (
	"encoding/json"

	"github.com/google/uuid"
)

// Timestamps are rendered as ISO 8601 strings; calendar dates as YYYY-MM-DD.

type UserDTO struct {
	ID                 uuid.UUID  `json:"id"`
	Email              string     `json:"email"`
	FullName           string     `json:"fullName"`
	Role               UserRole   `json:"role"`
	LabID              *uuid.UUID `json:"labId,omitempty"`
	LabName            string     `json:"labName,omitempty"`
	IsActive           bool       `json:"isActive"`
	MustChangePassword bool       `json:"mustChangePassword"`
	LastLoginAt        *string    `json:"lastLoginAt,omitempty"`
	CreatedAt          string     `json:"createdAt"`
}

// LoginResponse is returned by a successful sign-in
type LoginResponse struct {
	AccessToken string  `json:"accessToken"`
	TokenType   string  `json:"tokenType"`
	ExpiresIn   int64   `json:"expiresIn"` // seconds
	User        UserDTO `json:"user"`
}

// MeDTO is the signed-in user together with their lab and its settings
type MeDTO struct {
	User UserDTO `json:"user"`
	Lab  *LabDTO `json:"lab,omitempty"`
}

// UserWithPasswordDTO carries a one-time temporary password back to an admin
type UserWithPasswordDTO struct {
	User              UserDTO `json:"user"`
	TemporaryPassword string  `json:"temporaryPassword"`
}

type LabDTO struct {
	ID        uuid.UUID   `json:"id"`
	Name      string      `json:"name"`
	IsActive  bool        `json:"isActive"`
	Settings  LabSettings `json:"settings"`
	CreatedAt string      `json:"createdAt"`
}

type FluorochromeDTO struct {
	ID    uuid.UUID `json:"id"`
	LabID uuid.UUID `json:"labId"`
	Name  string    `json:"name"`
	Color string    `json:"color"`
}

// VialCountsDTO counts vials by status
type VialCountsDTO struct {
	Sealed   int64 `json:"sealed"`
	Opened   int64 `json:"opened"`
	Depleted int64 `json:"depleted"`
	Total    int64 `json:"total"`
}

type AntibodyDTO struct {
	ID                   uuid.UUID           `json:"id"`
	LabID                uuid.UUID           `json:"labId"`
	Target               string              `json:"target"`
	Fluorochrome         string              `json:"fluorochrome"`
	FluorochromeColor    string              `json:"fluorochromeColor,omitempty"`
	DisplayName          string              `json:"displayName"`
	Clone                string              `json:"clone,omitempty"`
	Vendor               string              `json:"vendor,omitempty"`
	CatalogNumber        string              `json:"catalogNumber,omitempty"`
	Designation          AntibodyDesignation `json:"designation"`
	StabilityDays        *int                `json:"stabilityDays,omitempty"`
	LowStockThreshold    *int                `json:"lowStockThreshold,omitempty"`
	ApprovedLowThreshold *int                `json:"approvedLowThreshold,omitempty"`
	IsActive             bool                `json:"isActive"`
	Counts               VialCountsDTO       `json:"counts"`
	StockCount           int64               `json:"stockCount"`
	ApprovedStockCount   int64               `json:"approvedStockCount"`
	IsLowStock           bool                `json:"isLowStock"`
	IsApprovedLow        bool                `json:"isApprovedLow"`
	CreatedAt            string              `json:"createdAt"`
}

type LotDTO struct {
	ID             uuid.UUID     `json:"id"`
	LabID          uuid.UUID     `json:"labId"`
	AntibodyID     uuid.UUID     `json:"antibodyId"`
	AntibodyName   string        `json:"antibodyName,omitempty"`
	LotNumber      string        `json:"lotNumber"`
	VendorBarcode  string        `json:"vendorBarcode,omitempty"`
	ExpirationDate *string       `json:"expirationDate,omitempty"`
	QCStatus       QCStatus      `json:"qcStatus"`
	QCApprovedBy   *uuid.UUID    `json:"qcApprovedBy,omitempty"`
	QCApprovedAt   *string       `json:"qcApprovedAt,omitempty"`
	IsArchived     bool          `json:"isArchived"`
	IsExpired      bool          `json:"isExpired"`
	Counts         VialCountsDTO `json:"counts"`
	DocumentCount  int64         `json:"documentCount"`
	HasQCDocument  bool          `json:"hasQcDocument"`
	CreatedAt      string        `json:"createdAt"`
}

type VialDTO struct {
	ID             uuid.UUID  `json:"id"`
	LabID          uuid.UUID  `json:"labId"`
	LotID          uuid.UUID  `json:"lotId"`
	LotNumber      string     `json:"lotNumber,omitempty"`
	AntibodyID     uuid.UUID  `json:"antibodyId"`
	Status         VialStatus `json:"status"`
	LocationCellID *uuid.UUID `json:"locationCellId,omitempty"`
	LocationLabel  string     `json:"locationLabel,omitempty"`
	StorageUnitID  *uuid.UUID `json:"storageUnitId,omitempty"`
	ReceivedAt     string     `json:"receivedAt"`
	OpenedAt       *string    `json:"openedAt,omitempty"`
	OpenedBy       *uuid.UUID `json:"openedBy,omitempty"`
	OpenExpiration *string    `json:"openExpiration,omitempty"`
	IsOpenExpired  bool       `json:"isOpenExpired"`
	DepletedAt     *string    `json:"depletedAt,omitempty"`
	DepletedBy     *uuid.UUID `json:"depletedBy,omitempty"`
}

// LotWithVialsDTO is returned when a lot is created or receives vials
type LotWithVialsDTO struct {
	Lot   LotDTO    `json:"lot"`
	Vials []VialDTO `json:"vials"`
}

type StorageUnitDTO struct {
	ID          uuid.UUID `json:"id"`
	LabID       uuid.UUID `json:"labId"`
	Name        string    `json:"name"`
	Rows        int       `json:"rows"`
	Cols        int       `json:"cols"`
	Temperature string    `json:"temperature,omitempty"`
	IsActive    bool      `json:"isActive"`
	IsTemporary bool      `json:"isTemporary"`
	Capacity    int       `json:"capacity"`
	Occupied    int64     `json:"occupied"`
	CreatedAt   string    `json:"createdAt"`
}

// GridVialDTO is the vial shown inside a storage grid cell
type GridVialDTO struct {
	ID                   uuid.UUID  `json:"id"`
	Status               VialStatus `json:"status"`
	AntibodyID           uuid.UUID  `json:"antibodyId"`
	AntibodyTarget       string     `json:"antibodyTarget"`
	AntibodyFluorochrome string     `json:"antibodyFluorochrome"`
	Color                string     `json:"color,omitempty"`
	LotID                uuid.UUID  `json:"lotId"`
	LotNumber            string     `json:"lotNumber"`
	QCStatus             QCStatus   `json:"qcStatus"`
	ExpirationDate       *string    `json:"expirationDate,omitempty"`
	OpenExpiration       *string    `json:"openExpiration,omitempty"`
}

type StorageCellDTO struct {
	ID    uuid.UUID    `json:"id"`
	Row   int          `json:"row"`
	Col   int          `json:"col"`
	Label string       `json:"label"`
	Vial  *GridVialDTO `json:"vial,omitempty"`
}

// StorageGridDTO lists every cell of a unit in row-major order
type StorageGridDTO struct {
	Unit  StorageUnitDTO   `json:"unit"`
	Cells []StorageCellDTO `json:"cells"`
}

// VialLocationDTO answers "where are the vials of this antibody"
type VialLocationDTO struct {
	VialID          uuid.UUID  `json:"vialId"`
	LotID           uuid.UUID  `json:"lotId"`
	LotNumber       string     `json:"lotNumber"`
	Status          VialStatus `json:"status"`
	StorageUnitID   uuid.UUID  `json:"storageUnitId"`
	StorageUnitName string     `json:"storageUnitName"`
	CellID          uuid.UUID  `json:"cellId"`
	CellLabel       string     `json:"cellLabel"`
}

type AuditLogDTO struct {
	ID          uuid.UUID       `json:"id"`
	LabID       *uuid.UUID      `json:"labId,omitempty"`
	UserID      *uuid.UUID      `json:"userId,omitempty"`
	UserName    string          `json:"userName,omitempty"`
	Action      string          `json:"action"`
	EntityType  string          `json:"entityType"`
	EntityID    *uuid.UUID      `json:"entityId,omitempty"`
	Note        string          `json:"note,omitempty"`
	BeforeState json.RawMessage `json:"beforeState,omitempty" swaggertype:"object"`
	AfterState  json.RawMessage `json:"afterState,omitempty" swaggertype:"object"`
	IPAddress   string          `json:"ipAddress,omitempty"`
	RequestID   string          `json:"requestId,omitempty"`
	CreatedAt   string          `json:"createdAt"`
}

// AuditRangeDTO bounds the months that have audit entries, as YYYY-MM
type AuditRangeDTO struct {
	MinMonth *string `json:"minMonth"`
	MaxMonth *string `json:"maxMonth"`
}

type TicketCommentDTO struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	UserName  string    `json:"userName"`
	Message   string    `json:"message"`
	CreatedAt string    `json:"createdAt"`
}

type TicketDTO struct {
	ID        uuid.UUID          `json:"id"`
	LabID     uuid.UUID          `json:"labId"`
	UserID    uuid.UUID          `json:"userId"`
	UserName  string             `json:"userName"`
	Title     string             `json:"title"`
	Message   string             `json:"message"`
	Status    TicketStatus       `json:"status"`
	Comments  []TicketCommentDTO `json:"comments"`
	CreatedAt string             `json:"createdAt"`
	UpdatedAt string             `json:"updatedAt"`
}

type DocumentDTO struct {
	ID           uuid.UUID `json:"id"`
	LotID        uuid.UUID `json:"lotId"`
	FileName     string    `json:"fileName"`
	ContentType  string    `json:"contentType"`
	Size         int64     `json:"size"`
	Description  string    `json:"description,omitempty"`
	IsQCDocument bool      `json:"isQcDocument"`
	UploadedBy   uuid.UUID `json:"uploadedBy"`
	CreatedAt    string    `json:"createdAt"`
}

// PriorityKind classifies a dashboard priority item
type PriorityKind string

const (
	PriorityExpiredLot      PriorityKind = "expired_lot"
	PriorityExpiredOpenVial PriorityKind = "expired_open_vial"
	PriorityPendingQC       PriorityKind = "pending_qc"
	PriorityLowStock        PriorityKind = "low_stock"
	PriorityApprovedLow     PriorityKind = "approved_low"
	PriorityExpiringLot     PriorityKind = "expiring_lot"
)

// PriorityItemDTO is one actionable line on the dashboard; lower severity sorts first
type PriorityItemDTO struct {
	Kind       PriorityKind `json:"kind"`
	Severity   int          `json:"severity"`
	EntityType string       `json:"entityType"`
	EntityID   uuid.UUID    `json:"entityId"`
	Title      string       `json:"title"`
	Detail     string       `json:"detail,omitempty"`
	DueDate    *string      `json:"dueDate,omitempty"`
}

// DashboardSummaryDTO holds the dashboard badge counts and priority list
type DashboardSummaryDTO struct {
	LabID            uuid.UUID         `json:"labId"`
	PendingQC        int               `json:"pendingQc"`
	LowStock         int               `json:"lowStock"`
	ApprovedLow      int               `json:"approvedLow"`
	ExpiringLots     int               `json:"expiringLots"`
	ExpiredLots      int               `json:"expiredLots"`
	ExpiredOpenVials int               `json:"expiredOpenVials"`
	ExpiryWarnDays   int               `json:"expiryWarnDays"`
	Priorities       []PriorityItemDTO `json:"priorities"`
	GeneratedAt      string            `json:"generatedAt"`
}

// HasAlerts reports whether the summary contains anything worth notifying about
func (s *DashboardSummaryDTO) HasAlerts() bool {
	return s.ExpiredLots+s.ExpiredOpenVials+s.ExpiringLots+s.LowStock+s.ApprovedLow > 0
}

// PaginatedResponse wraps a page of results
type PaginatedResponse struct {
	Data       interface{} `json:"data"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	PageSize   int         `json:"pageSize"`
	TotalPages int         `json:"totalPages"`
}

// Request DTOs

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,max=128"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8,max=128"`
}

type CreateUserRequest struct {
	Email    string     `json:"email" validate:"required,email,max=255"`
	FullName string     `json:"fullName" validate:"required,max=200"`
	Role     UserRole   `json:"role" validate:"required,oneof=super_admin lab_admin supervisor tech read_only"`
	LabID    *uuid.UUID `json:"labId,omitempty"`
}

type UpdateUserRequest struct {
	FullName *string   `json:"fullName,omitempty" validate:"omitempty,min=1,max=200"`
	Role     *UserRole `json:"role,omitempty" validate:"omitempty,oneof=super_admin lab_admin supervisor tech read_only"`
	IsActive *bool     `json:"isActive,omitempty"`
}

type CreateLabRequest struct {
	Name string `json:"name" validate:"required,max=200"`
}

type UpdateLabRequest struct {
	Name string `json:"name" validate:"required,max=200"`
}

type UpdateLabSettingsRequest struct {
	SealedCountsOnly *bool `json:"sealedCountsOnly,omitempty"`
	ExpiryWarnDays   *int  `json:"expiryWarnDays,omitempty" validate:"omitempty,min=0,max=365"`
	QCDocRequired    *bool `json:"qcDocRequired,omitempty"`
	StorageEnabled   *bool `json:"storageEnabled,omitempty"`
}

type CreateFluorochromeRequest struct {
	Name  string `json:"name" validate:"required,max=100"`
	Color string `json:"color" validate:"required,len=7,hexcolor"`
}

type UpdateFluorochromeRequest struct {
	Color string `json:"color" validate:"required,len=7,hexcolor"`
}

type CreateAntibodyRequest struct {
	Target               string              `json:"target" validate:"required,max=100"`
	Fluorochrome         string              `json:"fluorochrome" validate:"required,max=100"`
	Clone                string              `json:"clone,omitempty" validate:"max=100"`
	Vendor               string              `json:"vendor,omitempty" validate:"max=200"`
	CatalogNumber        string              `json:"catalogNumber,omitempty" validate:"max=100"`
	Designation          AntibodyDesignation `json:"designation,omitempty" validate:"omitempty,oneof=ruo asr ivd"`
	StabilityDays        *int                `json:"stabilityDays,omitempty" validate:"omitempty,min=1,max=3650"`
	LowStockThreshold    *int                `json:"lowStockThreshold,omitempty" validate:"omitempty,min=0,max=10000"`
	ApprovedLowThreshold *int                `json:"approvedLowThreshold,omitempty" validate:"omitempty,min=0,max=10000"`
}

type UpdateAntibodyRequest struct {
	Target        *string              `json:"target,omitempty" validate:"omitempty,min=1,max=100"`
	Fluorochrome  *string              `json:"fluorochrome,omitempty" validate:"omitempty,min=1,max=100"`
	Clone         *string              `json:"clone,omitempty" validate:"omitempty,max=100"`
	Vendor        *string              `json:"vendor,omitempty" validate:"omitempty,max=200"`
	CatalogNumber *string              `json:"catalogNumber,omitempty" validate:"omitempty,max=100"`
	Designation   *AntibodyDesignation `json:"designation,omitempty" validate:"omitempty,oneof=ruo asr ivd"`
	// zero or -1 clears stability
	StabilityDays *int `json:"stabilityDays,omitempty" validate:"omitempty,min=-1,max=3650"`
	// -1 clears a threshold; 0 is a real threshold
	LowStockThreshold    *int `json:"lowStockThreshold,omitempty" validate:"omitempty,min=-1,max=10000"`
	ApprovedLowThreshold *int `json:"approvedLowThreshold,omitempty" validate:"omitempty,min=-1,max=10000"`
}

// MaxVialsPerRequest caps how many vials one request may create or move
const MaxVialsPerRequest = 500

type CreateLotRequest struct {
	AntibodyID     uuid.UUID  `json:"antibodyId" validate:"required"`
	LotNumber      string     `json:"lotNumber" validate:"required,max=100"`
	VendorBarcode  string     `json:"vendorBarcode,omitempty" validate:"max=200"`
	ExpirationDate *string    `json:"expirationDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Quantity       int        `json:"quantity" validate:"required,min=1,max=500"`
	StorageUnitID  *uuid.UUID `json:"storageUnitId,omitempty"`
}

type UpdateLotRequest struct {
	LotNumber      *string `json:"lotNumber,omitempty" validate:"omitempty,min=1,max=100"`
	VendorBarcode  *string `json:"vendorBarcode,omitempty" validate:"omitempty,max=200"`
	ExpirationDate *string `json:"expirationDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

type UpdateQCStatusRequest struct {
	Status QCStatus `json:"status" validate:"required,oneof=pending approved failed"`
}

type ReceiveVialsRequest struct {
	Quantity      int        `json:"quantity" validate:"required,min=1,max=500"`
	StorageUnitID *uuid.UUID `json:"storageUnitId,omitempty"`
}

type OpenVialRequest struct {
	// CellID, when given, must be the cell the vial is in (scan confirmation)
	CellID *uuid.UUID `json:"cellId,omitempty"`
	// Force opens a vial of a lot that is not QC approved (supervisor and above)
	Force bool `json:"force,omitempty"`
}

// MoveMode selects how destination cells are chosen
type MoveMode string

const (
	MoveModeAuto  MoveMode = "auto"
	MoveModeStart MoveMode = "start"
	MoveModePick  MoveMode = "pick"
)

type MoveVialsRequest struct {
	VialIDs      []uuid.UUID `json:"vialIds" validate:"required,min=1,max=500,unique"`
	TargetUnitID uuid.UUID   `json:"targetUnitId" validate:"required"`
	Mode         MoveMode    `json:"mode" validate:"required,oneof=auto start pick"`
	StartCellID  *uuid.UUID  `json:"startCellId,omitempty" validate:"required_if=Mode start"`
	CellIDs      []uuid.UUID `json:"cellIds,omitempty" validate:"required_if=Mode pick,unique"`
}

type ReturnToStorageRequest struct {
	CellID uuid.UUID `json:"cellId" validate:"required"`
}

type CreateStorageUnitRequest struct {
	Name        string `json:"name" validate:"required,max=200"`
	Rows        int    `json:"rows" validate:"required,min=1,max=26"`
	Cols        int    `json:"cols" validate:"required,min=1,max=26"`
	Temperature string `json:"temperature,omitempty" validate:"max=50"`
	IsTemporary bool   `json:"isTemporary,omitempty"`
}

type UpdateStorageUnitRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Rows        *int    `json:"rows,omitempty" validate:"omitempty,min=1,max=26"`
	Cols        *int    `json:"cols,omitempty" validate:"omitempty,min=1,max=26"`
	Temperature *string `json:"temperature,omitempty" validate:"omitempty,max=50"`
	IsActive    *bool   `json:"isActive,omitempty"`
}

type CreateTicketRequest struct {
	Title   string `json:"title" validate:"required,max=200"`
	Message string `json:"message" validate:"required,max=5000"`
}

type UpdateTicketStatusRequest struct {
	Status TicketStatus `json:"status" validate:"required,oneof=open in_progress resolved closed"`
}

type CreateTicketCommentRequest struct {
	Message string `json:"message" validate:"required,max=5000"`
}
