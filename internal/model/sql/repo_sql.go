package sql

import (
	"fmt"

	"sprachschule/internal/entity"

	"gorm.io/gorm"
)

// GormRepository implements Repository using GORM
type GormRepository struct {
	db *gorm.DB
}

// NewGormRepository creates a new repository instance
func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

// calculatePagination calculates pagination metrics
func (r *GormRepository) calculatePagination(totalCount int64, page, pageSize int) *entity.Meta {
	if pageSize <= 0 {
		pageSize = 20
	}
	if page <= 0 {
		page = 1
	}

	return &entity.Meta{
		Total:    totalCount,
		Page:     int64(page),
		PageSize: int64(pageSize),
	}
}

func pageWindow(params *entity.BaseParams) (page, pageSize, offset int) {
	page = 1
	pageSize = 20
	if params != nil {
		if params.Page > 0 {
			page = int(params.Page)
		}
		if params.PageSize > 0 {
			pageSize = int(params.PageSize)
		}
	}
	offset = (page - 1) * pageSize
	if offset < 0 {
		offset = 0
	}
	return page, pageSize, offset
}

// swapOrderIndex swaps order_index with the adjacent row inside a single
// transaction. Both rows are re-read by current position before writing, so
// two racing swaps serialize at the store instead of corrupting the ordering.
func swapOrderIndex(tx *gorm.DB, tableName string, id uint, direction string) error {
	type orderedRow struct {
		ID         uint
		OrderIndex int
	}

	var current orderedRow
	if err := tx.Table(tableName).Select("id", "order_index").Where("id = ?", id).Take(&current).Error; err != nil {
		return err
	}

	neighborQuery := tx.Table(tableName).Select("id", "order_index")
	switch direction {
	case "up":
		neighborQuery = neighborQuery.Where("order_index < ?", current.OrderIndex).Order("order_index DESC")
	case "down":
		neighborQuery = neighborQuery.Where("order_index > ?", current.OrderIndex).Order("order_index ASC")
	default:
		return fmt.Errorf("invalid move direction: %s", direction)
	}

	var neighbor orderedRow
	if err := neighborQuery.Limit(1).Take(&neighbor).Error; err != nil {
		// Already first/last: nothing to swap with.
		if err == gorm.ErrRecordNotFound {
			return nil
		}
		return err
	}

	if err := tx.Table(tableName).Where("id = ?", current.ID).Update("order_index", neighbor.OrderIndex).Error; err != nil {
		return err
	}
	return tx.Table(tableName).Where("id = ?", neighbor.ID).Update("order_index", current.OrderIndex).Error
}
