package sql

import (
	"context"
	"fmt"

	"sprachschule/internal/entity"

	"gorm.io/gorm"
)

// Hero slides

func (r *GormRepository) ListHeroSlides(ctx context.Context, activeOnly bool) ([]entity.DbHeroSlide, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	query := r.db.WithContext(ctx).Model(&entity.DbHeroSlide{})
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	var slides []entity.DbHeroSlide
	if err := query.Order("order_index ASC, id ASC").Find(&slides).Error; err != nil {
		return nil, err
	}
	return slides, nil
}

func (r *GormRepository) CreateHeroSlide(ctx context.Context, slide *entity.DbHeroSlide) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if slide == nil {
		return fmt.Errorf("slide is nil")
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if slide.OrderIndex == 0 {
			slide.OrderIndex = nextOrderIndex(tx, entity.DbHeroSlide{}.TableName())
		}
		return tx.Create(slide).Error
	})
}

func (r *GormRepository) UpdateHeroSlide(ctx context.Context, id uint, updates map[string]interface{}) error {
	return r.updateOrderedContent(ctx, &entity.DbHeroSlide{}, id, updates)
}

func (r *GormRepository) DeleteHeroSlide(ctx context.Context, id uint) error {
	return r.deleteOrderedContent(ctx, &entity.DbHeroSlide{}, id)
}

func (r *GormRepository) MoveHeroSlide(ctx context.Context, id uint, direction string) error {
	return r.moveOrderedContent(ctx, entity.DbHeroSlide{}.TableName(), id, direction)
}

// Feature items

func (r *GormRepository) ListFeatureItems(ctx context.Context, activeOnly bool) ([]entity.DbFeatureItem, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	query := r.db.WithContext(ctx).Model(&entity.DbFeatureItem{})
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	var items []entity.DbFeatureItem
	if err := query.Order("order_index ASC, id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepository) CreateFeatureItem(ctx context.Context, item *entity.DbFeatureItem) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if item == nil {
		return fmt.Errorf("item is nil")
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if item.OrderIndex == 0 {
			item.OrderIndex = nextOrderIndex(tx, entity.DbFeatureItem{}.TableName())
		}
		return tx.Create(item).Error
	})
}

func (r *GormRepository) UpdateFeatureItem(ctx context.Context, id uint, updates map[string]interface{}) error {
	return r.updateOrderedContent(ctx, &entity.DbFeatureItem{}, id, updates)
}

func (r *GormRepository) DeleteFeatureItem(ctx context.Context, id uint) error {
	return r.deleteOrderedContent(ctx, &entity.DbFeatureItem{}, id)
}

func (r *GormRepository) MoveFeatureItem(ctx context.Context, id uint, direction string) error {
	return r.moveOrderedContent(ctx, entity.DbFeatureItem{}.TableName(), id, direction)
}

// Statistics

func (r *GormRepository) ListStatistics(ctx context.Context, activeOnly bool) ([]entity.DbStatistic, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	query := r.db.WithContext(ctx).Model(&entity.DbStatistic{})
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	var stats []entity.DbStatistic
	if err := query.Order("order_index ASC, id ASC").Find(&stats).Error; err != nil {
		return nil, err
	}
	return stats, nil
}

func (r *GormRepository) CreateStatistic(ctx context.Context, stat *entity.DbStatistic) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if stat == nil {
		return fmt.Errorf("statistic is nil")
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if stat.OrderIndex == 0 {
			stat.OrderIndex = nextOrderIndex(tx, entity.DbStatistic{}.TableName())
		}
		return tx.Create(stat).Error
	})
}

func (r *GormRepository) UpdateStatistic(ctx context.Context, id uint, updates map[string]interface{}) error {
	return r.updateOrderedContent(ctx, &entity.DbStatistic{}, id, updates)
}

func (r *GormRepository) DeleteStatistic(ctx context.Context, id uint) error {
	return r.deleteOrderedContent(ctx, &entity.DbStatistic{}, id)
}

func (r *GormRepository) MoveStatistic(ctx context.Context, id uint, direction string) error {
	return r.moveOrderedContent(ctx, entity.DbStatistic{}.TableName(), id, direction)
}

// Charters

func (r *GormRepository) ListCharters(ctx context.Context, activeOnly bool) ([]entity.DbCharter, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	query := r.db.WithContext(ctx).Model(&entity.DbCharter{})
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	var charters []entity.DbCharter
	if err := query.Order("order_index ASC, id ASC").Find(&charters).Error; err != nil {
		return nil, err
	}
	return charters, nil
}

func (r *GormRepository) CreateCharter(ctx context.Context, charter *entity.DbCharter) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if charter == nil {
		return fmt.Errorf("charter is nil")
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if charter.OrderIndex == 0 {
			charter.OrderIndex = nextOrderIndex(tx, entity.DbCharter{}.TableName())
		}
		return tx.Create(charter).Error
	})
}

func (r *GormRepository) UpdateCharter(ctx context.Context, id uint, updates map[string]interface{}) error {
	return r.updateOrderedContent(ctx, &entity.DbCharter{}, id, updates)
}

func (r *GormRepository) DeleteCharter(ctx context.Context, id uint) error {
	return r.deleteOrderedContent(ctx, &entity.DbCharter{}, id)
}

func (r *GormRepository) MoveCharter(ctx context.Context, id uint, direction string) error {
	return r.moveOrderedContent(ctx, entity.DbCharter{}.TableName(), id, direction)
}

// Shared helpers

func nextOrderIndex(tx *gorm.DB, tableName string) int {
	var maxIndex int
	row := tx.Table(tableName).Select("COALESCE(MAX(order_index), 0)").Row()
	if err := row.Scan(&maxIndex); err != nil {
		return 1
	}
	return maxIndex + 1
}

func (r *GormRepository) updateOrderedContent(ctx context.Context, model interface{}, id uint, updates map[string]interface{}) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return fmt.Errorf("invalid id")
	}
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(model).Where("id = ?", id).Updates(updates).Error
}

func (r *GormRepository) deleteOrderedContent(ctx context.Context, model interface{}, id uint) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return fmt.Errorf("invalid id")
	}
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormRepository) moveOrderedContent(ctx context.Context, tableName string, id uint, direction string) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return fmt.Errorf("invalid id")
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return swapOrderIndex(tx, tableName, id, direction)
	})
}
