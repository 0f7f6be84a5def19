package sql

import (
	"context"
	"fmt"
	"strings"

	"sprachschule/internal/entity"

	"gorm.io/gorm"
)

// CreatePost persists a new blog post and attaches its categories in one
// transaction.
func (r *GormRepository) CreatePost(ctx context.Context, post *entity.DbBlogPost, categoryIDs []uint) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if post == nil {
		return fmt.Errorf("post is nil")
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(post).Error; err != nil {
			return err
		}
		if len(categoryIDs) == 0 {
			return nil
		}
		var categories []entity.DbBlogCategory
		if err := tx.Where("id IN ?", categoryIDs).Find(&categories).Error; err != nil {
			return err
		}
		return tx.Model(post).Association("Categories").Replace(categories)
	})
}

// GetPostByID loads a post with categories by ID.
func (r *GormRepository) GetPostByID(ctx context.Context, id uint) (*entity.DbBlogPost, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return nil, fmt.Errorf("invalid post id")
	}
	var post entity.DbBlogPost
	if err := r.db.WithContext(ctx).Preload("Categories").First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// GetPostBySlug loads a post with categories by slug.
func (r *GormRepository) GetPostBySlug(ctx context.Context, slug string) (*entity.DbBlogPost, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	trimmed := strings.TrimSpace(slug)
	if trimmed == "" {
		return nil, fmt.Errorf("slug is empty")
	}
	var post entity.DbBlogPost
	if err := r.db.WithContext(ctx).Preload("Categories").Where("slug = ?", trimmed).First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// ListPosts returns paginated posts, optionally published only and filtered
// by language or category slug.
func (r *GormRepository) ListPosts(ctx context.Context, params *entity.PostQuery, publishedOnly bool) ([]entity.DbBlogPost, *entity.Meta, error) {
	if r == nil || r.db == nil {
		return nil, nil, fmt.Errorf("repository not initialised")
	}

	query := r.db.WithContext(ctx).Model(&entity.DbBlogPost{})
	if publishedOnly {
		query = query.Where("is_published = ?", true)
	}
	if params != nil {
		if trimmed := strings.TrimSpace(params.Language); trimmed != "" {
			query = query.Where("language = ?", trimmed)
		}
		if trimmed := strings.TrimSpace(params.Category); trimmed != "" {
			query = query.
				Joins("JOIN blog_post_categories ON blog_post_categories.db_blog_post_id = blog_posts.id").
				Joins("JOIN blog_categories ON blog_categories.id = blog_post_categories.db_blog_category_id").
				Where("blog_categories.slug = ?", trimmed)
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, nil, err
	}

	var base *entity.BaseParams
	if params != nil {
		base = &params.BaseParams
	}
	page, pageSize, offset := pageWindow(base)

	var posts []entity.DbBlogPost
	if err := query.Preload("Categories").Order("blog_posts.id DESC").Offset(offset).Limit(pageSize).Find(&posts).Error; err != nil {
		return nil, nil, err
	}

	meta := r.calculatePagination(total, page, pageSize)
	return posts, meta, nil
}

// UpdatePost updates a post and optionally replaces its category set, in one
// transaction.
func (r *GormRepository) UpdatePost(ctx context.Context, id uint, updates map[string]interface{}, categoryIDs *[]uint) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return fmt.Errorf("invalid post id")
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post entity.DbBlogPost
		if err := tx.First(&post, id).Error; err != nil {
			return err
		}
		if len(updates) > 0 {
			if err := tx.Model(&post).Updates(updates).Error; err != nil {
				return err
			}
		}
		if categoryIDs != nil {
			var categories []entity.DbBlogCategory
			if len(*categoryIDs) > 0 {
				if err := tx.Where("id IN ?", *categoryIDs).Find(&categories).Error; err != nil {
					return err
				}
			}
			if err := tx.Model(&post).Association("Categories").Replace(categories); err != nil {
				return err
			}
		}
		return nil
	})
}

// DeletePost removes a post and clears its category associations in one
// transaction.
func (r *GormRepository) DeletePost(ctx context.Context, id uint) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return fmt.Errorf("invalid post id")
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post entity.DbBlogPost
		if err := tx.First(&post, id).Error; err != nil {
			return err
		}
		if err := tx.Model(&post).Association("Categories").Clear(); err != nil {
			return err
		}
		return tx.Delete(&post).Error
	})
}

// ListCategories returns all blog categories.
func (r *GormRepository) ListCategories(ctx context.Context) ([]entity.DbBlogCategory, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	var categories []entity.DbBlogCategory
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// CreateCategory persists a new blog category.
func (r *GormRepository) CreateCategory(ctx context.Context, category *entity.DbBlogCategory) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if category == nil {
		return fmt.Errorf("category is nil")
	}
	return r.db.WithContext(ctx).Create(category).Error
}

// DeleteCategory removes a category and detaches it from posts in one
// transaction.
func (r *GormRepository) DeleteCategory(ctx context.Context, id uint) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return fmt.Errorf("invalid category id")
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var category entity.DbBlogCategory
		if err := tx.First(&category, id).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM blog_post_categories WHERE db_blog_category_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&category).Error
	})
}

// FindCategoriesByIDs loads the categories matching the given IDs.
func (r *GormRepository) FindCategoriesByIDs(ctx context.Context, ids []uint) ([]entity.DbBlogCategory, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	if len(ids) == 0 {
		return []entity.DbBlogCategory{}, nil
	}
	var categories []entity.DbBlogCategory
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}
