package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/labaid/labaid-api/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StorageRepository handles storage units and their cells
type StorageRepository struct {
	db *gorm.DB
}

func NewStorageRepository(db *gorm.DB) *StorageRepository {
	return &StorageRepository{db: db}
}

// WithTx returns a repository bound to a transaction
func (r *StorageRepository) WithTx(tx *gorm.DB) *StorageRepository {
	return &StorageRepository{db: tx}
}

// CreateUnit inserts a unit and one cell per grid position
func (r *StorageRepository) CreateUnit(ctx context.Context, unit *domain.StorageUnit) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(unit).Error; err != nil {
			return err
		}
		return createCells(tx, unit.ID, 0, unit.Rows, 0, unit.Cols, unit.Rows, unit.Cols)
	})
}

func (r *StorageRepository) GetUnit(ctx context.Context, id uuid.UUID) (*domain.StorageUnit, error) {
	var unit domain.StorageUnit
	query := ApplyLabFilter(ctx, r.db.WithContext(ctx))
	if err := query.First(&unit, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &unit, nil
}

// LockUnit takes a row lock on the unit until the surrounding transaction ends.
// Placement and resize both lock first, so they never interleave on one unit.
func (r *StorageRepository) LockUnit(ctx context.Context, id uuid.UUID) error {
	var unit domain.StorageUnit
	return r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		First(&unit, "id = ?", id).Error
}

// ListUnits returns the units of the request's lab
func (r *StorageRepository) ListUnits(ctx context.Context, includeInactive bool) ([]domain.StorageUnit, error) {
	var units []domain.StorageUnit
	query := ApplyLabFilter(ctx, r.db.WithContext(ctx))
	if !includeInactive {
		query = query.Where("is_active = ?", true)
	}
	err := query.Order("is_temporary ASC, name ASC").Find(&units).Error
	return units, err
}

func (r *StorageRepository) UpdateUnit(ctx context.Context, unit *domain.StorageUnit) error {
	return r.db.WithContext(ctx).Save(unit).Error
}

// ResizeUnit adds cells for new positions and removes cells outside the new bounds.
// Callers must ensure no vial sits in a removed cell.
func (r *StorageRepository) ResizeUnit(ctx context.Context, unit *domain.StorageUnit, oldRows, oldCols int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("storage_unit_id = ? AND (row_index >= ? OR col_index >= ?)", unit.ID, unit.Rows, unit.Cols).
			Delete(&domain.StorageCell{}).Error; err != nil {
			return err
		}
		// New rows across the full new width, then new columns within the old height
		if err := createCells(tx, unit.ID, oldRows, unit.Rows, 0, unit.Cols, unit.Rows, unit.Cols); err != nil {
			return err
		}
		return createCells(tx, unit.ID, 0, min(oldRows, unit.Rows), oldCols, unit.Cols, unit.Rows, unit.Cols)
	})
}

// DeleteUnit removes a unit and its cells
func (r *StorageRepository) DeleteUnit(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("storage_unit_id = ?", id).Delete(&domain.StorageCell{}).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.StorageUnit{}, "id = ?", id).Error
	})
}

// ListCells returns the cells of a unit in row-major order
func (r *StorageRepository) ListCells(ctx context.Context, unitID uuid.UUID) ([]domain.StorageCell, error) {
	var cells []domain.StorageCell
	err := r.db.WithContext(ctx).
		Where("storage_unit_id = ?", unitID).
		Order("row_index ASC, col_index ASC").
		Find(&cells).Error
	return cells, err
}

func (r *StorageRepository) GetCell(ctx context.Context, id uuid.UUID) (*domain.StorageCell, error) {
	var cell domain.StorageCell
	if err := r.db.WithContext(ctx).First(&cell, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &cell, nil
}

// GetUnitsByIDs maps unit ids to units, ignoring request scope
func (r *StorageRepository) GetUnitsByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.StorageUnit, error) {
	result := make(map[uuid.UUID]domain.StorageUnit, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	var units []domain.StorageUnit
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&units).Error; err != nil {
		return nil, err
	}
	for _, u := range units {
		result[u.ID] = u
	}
	return result, nil
}

func createCells(tx *gorm.DB, unitID uuid.UUID, rowFrom, rowTo, colFrom, colTo, maxRows, maxCols int) error {
	if rowFrom >= rowTo || colFrom >= colTo || rowFrom >= maxRows || colFrom >= maxCols {
		return nil
	}
	cells := make([]domain.StorageCell, 0, (rowTo-rowFrom)*(colTo-colFrom))
	for row := rowFrom; row < rowTo; row++ {
		for col := colFrom; col < colTo; col++ {
			cells = append(cells, domain.StorageCell{
				StorageUnitID: unitID,
				Row:           row,
				Col:           col,
				Label:         domain.CellLabel(row, col),
			})
		}
	}
	return tx.CreateInBatches(cells, 200).Error
}
