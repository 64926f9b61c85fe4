package mapper

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/labaid/labaid-api/internal/domain"
)

const (
	timestampLayout = "2006-01-02T15:04:05Z"
	// DateLayout is the calendar date format used in requests and responses
	DateLayout = "2006-01-02"
)

func formatTime(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatTime(*t)
	return &s
}

// FormatTimestamp renders an optional instant in the API timestamp format
func FormatTimestamp(t *time.Time) *string {
	return formatTimePtr(t)
}

// FormatDate renders a calendar date, or nil when unset
func FormatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(DateLayout)
	return &s
}

// ParseDate parses an optional YYYY-MM-DD string into a UTC date
func ParseDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(DateLayout, *s, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", *s, err)
	}
	return &t, nil
}

// ToUserDTO converts User to UserDTO
func ToUserDTO(user *domain.User) domain.UserDTO {
	dto := domain.UserDTO{
		ID:                 user.ID,
		Email:              user.Email,
		FullName:           user.FullName,
		Role:               user.Role,
		LabID:              user.LabID,
		IsActive:           user.IsActive,
		MustChangePassword: user.MustChangePassword,
		LastLoginAt:        formatTimePtr(user.LastLoginAt),
		CreatedAt:          formatTime(user.CreatedAt),
	}
	if user.Lab != nil {
		dto.LabName = user.Lab.Name
	}
	return dto
}

// ToLabDTO converts Lab to LabDTO
func ToLabDTO(lab *domain.Lab) domain.LabDTO {
	return domain.LabDTO{
		ID:        lab.ID,
		Name:      lab.Name,
		IsActive:  lab.IsActive,
		Settings:  lab.Settings,
		CreatedAt: formatTime(lab.CreatedAt),
	}
}

// ToFluorochromeDTO converts Fluorochrome to FluorochromeDTO
func ToFluorochromeDTO(f *domain.Fluorochrome) domain.FluorochromeDTO {
	return domain.FluorochromeDTO{
		ID:    f.ID,
		LabID: f.LabID,
		Name:  f.Name,
		Color: f.Color,
	}
}

// ToAntibodyDTO converts Antibody to AntibodyDTO; stock fields are filled by the caller
func ToAntibodyDTO(antibody *domain.Antibody, color string) domain.AntibodyDTO {
	return domain.AntibodyDTO{
		ID:                   antibody.ID,
		LabID:                antibody.LabID,
		Target:               antibody.Target,
		Fluorochrome:         antibody.Fluorochrome,
		FluorochromeColor:    color,
		DisplayName:          antibody.DisplayName(),
		Clone:                antibody.Clone,
		Vendor:               antibody.Vendor,
		CatalogNumber:        antibody.CatalogNumber,
		Designation:          antibody.Designation,
		StabilityDays:        antibody.StabilityDays,
		LowStockThreshold:    antibody.LowStockThreshold,
		ApprovedLowThreshold: antibody.ApprovedLowThreshold,
		IsActive:             antibody.IsActive,
		CreatedAt:            formatTime(antibody.CreatedAt),
	}
}

// ToLotDTO converts Lot to LotDTO
func ToLotDTO(lot *domain.Lot, now time.Time) domain.LotDTO {
	dto := domain.LotDTO{
		ID:             lot.ID,
		LabID:          lot.LabID,
		AntibodyID:     lot.AntibodyID,
		LotNumber:      lot.LotNumber,
		VendorBarcode:  lot.VendorBarcode,
		ExpirationDate: FormatDate(lot.ExpirationDate),
		QCStatus:       lot.QCStatus,
		QCApprovedBy:   lot.QCApprovedBy,
		QCApprovedAt:   formatTimePtr(lot.QCApprovedAt),
		IsArchived:     lot.IsArchived,
		IsExpired:      lot.IsExpired(now),
		CreatedAt:      formatTime(lot.CreatedAt),
	}
	if lot.Antibody != nil {
		dto.AntibodyName = lot.Antibody.DisplayName()
	}
	return dto
}

// ToVialDTO converts Vial to VialDTO
func ToVialDTO(vial *domain.Vial, now time.Time) domain.VialDTO {
	dto := domain.VialDTO{
		ID:             vial.ID,
		LabID:          vial.LabID,
		LotID:          vial.LotID,
		AntibodyID:     vial.AntibodyID,
		Status:         vial.Status,
		LocationCellID: vial.LocationCellID,
		ReceivedAt:     formatTime(vial.ReceivedAt),
		OpenedAt:       formatTimePtr(vial.OpenedAt),
		OpenedBy:       vial.OpenedBy,
		OpenExpiration: formatTimePtr(vial.OpenExpiration),
		IsOpenExpired:  vial.IsOpenExpired(now),
		DepletedAt:     formatTimePtr(vial.DepletedAt),
		DepletedBy:     vial.DepletedBy,
	}
	if vial.Lot != nil {
		dto.LotNumber = vial.Lot.LotNumber
	}
	if vial.LocationCell != nil {
		dto.LocationLabel = vial.LocationCell.Label
		unitID := vial.LocationCell.StorageUnitID
		dto.StorageUnitID = &unitID
	}
	return dto
}

// ToVialDTOs converts a slice of vials
func ToVialDTOs(vials []domain.Vial, now time.Time) []domain.VialDTO {
	dtos := make([]domain.VialDTO, len(vials))
	for i := range vials {
		dtos[i] = ToVialDTO(&vials[i], now)
	}
	return dtos
}

// ToStorageUnitDTO converts StorageUnit to StorageUnitDTO
func ToStorageUnitDTO(unit *domain.StorageUnit, occupied int64) domain.StorageUnitDTO {
	return domain.StorageUnitDTO{
		ID:          unit.ID,
		LabID:       unit.LabID,
		Name:        unit.Name,
		Rows:        unit.Rows,
		Cols:        unit.Cols,
		Temperature: unit.Temperature,
		IsActive:    unit.IsActive,
		IsTemporary: unit.IsTemporary,
		Capacity:    unit.Rows * unit.Cols,
		Occupied:    occupied,
		CreatedAt:   formatTime(unit.CreatedAt),
	}
}

// ToAuditLogDTO converts AuditLog to AuditLogDTO
func ToAuditLogDTO(entry *domain.AuditLog) domain.AuditLogDTO {
	return domain.AuditLogDTO{
		ID:          entry.ID,
		LabID:       entry.LabID,
		UserID:      entry.UserID,
		UserName:    entry.UserName,
		Action:      entry.Action,
		EntityType:  entry.EntityType,
		EntityID:    entry.EntityID,
		Note:        entry.Note,
		BeforeState: rawState(entry.BeforeState),
		AfterState:  rawState(entry.AfterState),
		IPAddress:   entry.IPAddress,
		RequestID:   entry.RequestID,
		CreatedAt:   formatTime(entry.CreatedAt),
	}
}

func rawState(s string) json.RawMessage {
	if s == "" || !json.Valid([]byte(s)) {
		return nil
	}
	return json.RawMessage(s)
}

// ToTicketDTO converts SupportTicket to TicketDTO
func ToTicketDTO(ticket *domain.SupportTicket) domain.TicketDTO {
	comments := make([]domain.TicketCommentDTO, len(ticket.Comments))
	for i, c := range ticket.Comments {
		comments[i] = domain.TicketCommentDTO{
			ID:        c.ID,
			UserID:    c.UserID,
			UserName:  c.UserName,
			Message:   c.Message,
			CreatedAt: formatTime(c.CreatedAt),
		}
	}
	return domain.TicketDTO{
		ID:        ticket.ID,
		LabID:     ticket.LabID,
		UserID:    ticket.UserID,
		UserName:  ticket.UserName,
		Title:     ticket.Title,
		Message:   ticket.Message,
		Status:    ticket.Status,
		Comments:  comments,
		CreatedAt: formatTime(ticket.CreatedAt),
		UpdatedAt: formatTime(ticket.UpdatedAt),
	}
}

// ToDocumentDTO converts Document to DocumentDTO
func ToDocumentDTO(doc *domain.Document) domain.DocumentDTO {
	return domain.DocumentDTO{
		ID:           doc.ID,
		LotID:        doc.LotID,
		FileName:     doc.FileName,
		ContentType:  doc.ContentType,
		Size:         doc.Size,
		Description:  doc.Description,
		IsQCDocument: doc.IsQCDocument,
		UploadedBy:   doc.UploadedBy,
		CreatedAt:    formatTime(doc.CreatedAt),
	}
}
