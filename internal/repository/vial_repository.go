package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/labaid/labaid-api/internal/domain"
	"gorm.io/gorm"
)

// VialFilter narrows vial listings
type VialFilter struct {
	LotID         *uuid.UUID
	AntibodyID    *uuid.UUID
	StorageUnitID *uuid.UUID
	Status        *domain.VialStatus
}

// StockRow is one group of vial counts used to derive stock levels
type StockRow struct {
	AntibodyID uuid.UUID
	LotID      uuid.UUID
	Status     domain.VialStatus
	QCStatus   domain.QCStatus
	IsArchived bool
	Count      int64
}

// StatusCount is the number of vials in one status
type StatusCount struct {
	Status domain.VialStatus
	Count  int64
}

type VialRepository struct {
	db *gorm.DB
}

func NewVialRepository(db *gorm.DB) *VialRepository {
	return &VialRepository{db: db}
}

// WithTx returns a repository bound to a transaction
func (r *VialRepository) WithTx(tx *gorm.DB) *VialRepository {
	return &VialRepository{db: tx}
}

// CreateBatch inserts vials in one statement per batch
func (r *VialRepository) CreateBatch(ctx context.Context, vials []domain.Vial) error {
	if len(vials) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Omit("Lot", "LocationCell").CreateInBatches(vials, 100).Error
}

// GetByID loads a vial with its lot, the lot's antibody and its cell
func (r *VialRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Vial, error) {
	var vial domain.Vial
	query := ApplyLabFilterWithColumn(ctx, r.db.WithContext(ctx), "vials.lab_id").
		Preload("Lot.Antibody").
		Preload("LocationCell")
	if err := query.First(&vial, "vials.id = ?", id).Error; err != nil {
		return nil, err
	}
	return &vial, nil
}

// GetByIDs loads vials in the order of ids; missing ids are skipped
func (r *VialRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Vial, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var vials []domain.Vial
	query := ApplyLabFilter(ctx, r.db.WithContext(ctx)).Preload("LocationCell")
	if err := query.Where("id IN ?", ids).Find(&vials).Error; err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]domain.Vial, len(vials))
	for _, v := range vials {
		byID[v.ID] = v
	}
	ordered := make([]domain.Vial, 0, len(vials))
	for _, id := range ids {
		if v, ok := byID[id]; ok {
			ordered = append(ordered, v)
		}
	}
	return ordered, nil
}

func (r *VialRepository) List(ctx context.Context, filter *VialFilter) ([]domain.Vial, error) {
	var vials []domain.Vial
	query := ApplyLabFilterWithColumn(ctx, r.db.WithContext(ctx), "vials.lab_id").
		Preload("Lot").
		Preload("LocationCell")

	if filter != nil {
		if filter.LotID != nil {
			query = query.Where("vials.lot_id = ?", *filter.LotID)
		}
		if filter.AntibodyID != nil {
			query = query.Where("vials.antibody_id = ?", *filter.AntibodyID)
		}
		if filter.Status != nil {
			query = query.Where("vials.status = ?", *filter.Status)
		}
		if filter.StorageUnitID != nil {
			query = query.
				Joins("JOIN storage_cells ON storage_cells.id = vials.location_cell_id").
				Where("storage_cells.storage_unit_id = ?", *filter.StorageUnitID)
		}
	}

	err := query.Order("vials.received_at ASC, vials.id ASC").Find(&vials).Error
	return vials, err
}

// ListByLot returns the vials of a lot in any of the given statuses
func (r *VialRepository) ListByLot(ctx context.Context, lotID uuid.UUID, statuses ...domain.VialStatus) ([]domain.Vial, error) {
	var vials []domain.Vial
	query := r.db.WithContext(ctx).Where("lot_id = ?", lotID)
	if len(statuses) > 0 {
		query = query.Where("status IN ?", statuses)
	}
	err := query.Order("received_at ASC").Find(&vials).Error
	return vials, err
}

// ListOpenedByLab returns the opened vials of a lab with their lots and antibodies
func (r *VialRepository) ListOpenedByLab(ctx context.Context, labID uuid.UUID) ([]domain.Vial, error) {
	var vials []domain.Vial
	err := r.db.WithContext(ctx).
		Preload("Lot.Antibody").
		Preload("LocationCell").
		Where("lab_id = ? AND status = ?", labID, domain.VialStatusOpened).
		Order("open_expiration ASC").
		Find(&vials).Error
	return vials, err
}

// ListInCells returns the vials stored in any of the given cells
func (r *VialRepository) ListInCells(ctx context.Context, cellIDs []uuid.UUID) ([]domain.Vial, error) {
	if len(cellIDs) == 0 {
		return nil, nil
	}
	var vials []domain.Vial
	err := r.db.WithContext(ctx).
		Preload("Lot.Antibody").
		Where("location_cell_id IN ?", cellIDs).
		Find(&vials).Error
	return vials, err
}

// ListStored returns vials of an antibody that currently sit in a storage cell
func (r *VialRepository) ListStored(ctx context.Context, antibodyID uuid.UUID) ([]domain.Vial, error) {
	var vials []domain.Vial
	query := ApplyLabFilter(ctx, r.db.WithContext(ctx)).
		Preload("Lot").
		Preload("LocationCell").
		Where("antibody_id = ? AND location_cell_id IS NOT NULL", antibodyID)
	err := query.Order("received_at ASC").Find(&vials).Error
	return vials, err
}

func (r *VialRepository) Update(ctx context.Context, vial *domain.Vial) error {
	return r.db.WithContext(ctx).Omit("Lot", "LocationCell").Save(vial).Error
}

// ClearLocations detaches vials from their cells. It runs before vials are
// re-placed so the unique cell index is never violated mid-move.
func (r *VialRepository) ClearLocations(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&domain.Vial{}).
		Where("id IN ?", ids).
		Update("location_cell_id", nil).Error
}

// SetLocation places a vial in a cell
func (r *VialRepository) SetLocation(ctx context.Context, id uuid.UUID, cellID *uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&domain.Vial{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"location_cell_id": cellID,
			"updated_at":       time.Now().UTC(),
		}).Error
}

// StockRows groups the vials of a lab by antibody, lot, status and lot state
func (r *VialRepository) StockRows(ctx context.Context, labID uuid.UUID) ([]StockRow, error) {
	var rows []StockRow
	err := r.db.WithContext(ctx).Model(&domain.Vial{}).
		Select("vials.antibody_id, vials.lot_id, vials.status, lots.qc_status, lots.is_archived, COUNT(*) AS count").
		Joins("JOIN lots ON lots.id = vials.lot_id").
		Where("vials.lab_id = ?", labID).
		Group("vials.antibody_id, vials.lot_id, vials.status, lots.qc_status, lots.is_archived").
		Scan(&rows).Error
	return rows, err
}

// CountByStatus counts vials in every lab by status
func (r *VialRepository) CountByStatus(ctx context.Context) ([]StatusCount, error) {
	var rows []StatusCount
	err := r.db.WithContext(ctx).Model(&domain.Vial{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	return rows, err
}

// CountInUnit counts vials stored in a unit
func (r *VialRepository) CountInUnit(ctx context.Context, unitID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Vial{}).
		Joins("JOIN storage_cells ON storage_cells.id = vials.location_cell_id").
		Where("storage_cells.storage_unit_id = ?", unitID).
		Count(&count).Error
	return count, err
}

// CountOutsideBounds counts vials in cells that a resize to rows x cols would remove
func (r *VialRepository) CountOutsideBounds(ctx context.Context, unitID uuid.UUID, rows, cols int) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Vial{}).
		Joins("JOIN storage_cells ON storage_cells.id = vials.location_cell_id").
		Where("storage_cells.storage_unit_id = ? AND (storage_cells.row_index >= ? OR storage_cells.col_index >= ?)", unitID, rows, cols).
		Count(&count).Error
	return count, err
}

// OccupiedCounts maps unit ids to the number of vials stored in them
func (r *VialRepository) OccupiedCounts(ctx context.Context, unitIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	result := make(map[uuid.UUID]int64, len(unitIDs))
	if len(unitIDs) == 0 {
		return result, nil
	}
	var rows []struct {
		StorageUnitID uuid.UUID
		Count         int64
	}
	err := r.db.WithContext(ctx).Model(&domain.Vial{}).
		Select("storage_cells.storage_unit_id, COUNT(*) AS count").
		Joins("JOIN storage_cells ON storage_cells.id = vials.location_cell_id").
		Where("storage_cells.storage_unit_id IN ?", unitIDs).
		Group("storage_cells.storage_unit_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		result[row.StorageUnitID] = row.Count
	}
	return result, nil
}
