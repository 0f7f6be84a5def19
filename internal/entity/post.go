package entity

import "time"

const (
	PostLanguageGerman = "de"
	PostLanguageFarsi  = "fa"
)

// DbBlogPost is the single blog content model. Categories attach through the
// blog_post_categories join table.
type DbBlogPost struct {
	ID            uint       `gorm:"primarykey" json:"id"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	Slug          string     `gorm:"column:slug;type:varchar(255);uniqueIndex;not null" json:"slug"`
	Title         string     `gorm:"column:title;type:varchar(255);not null" json:"title"`
	Excerpt       string     `gorm:"column:excerpt;type:text" json:"excerpt"`
	Content       string     `gorm:"column:content;type:text" json:"content"`
	CoverImageURL string     `gorm:"column:cover_image_url;type:varchar(512)" json:"cover_image_url"`
	Language      string     `gorm:"column:language;type:varchar(10);index;not null;default:de" json:"language"`
	AuthorUserID  uint       `gorm:"column:author_user_id;index;not null" json:"author_user_id"`
	IsPublished   bool       `gorm:"column:is_published;not null;default:false" json:"is_published"`
	PublishedAt   *time.Time `gorm:"column:published_at" json:"published_at"`

	Categories []DbBlogCategory `gorm:"many2many:blog_post_categories;" json:"categories"`
}

func (DbBlogPost) TableName() string {
	return "blog_posts"
}

// DbBlogCategory groups blog posts.
type DbBlogCategory struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Slug      string    `gorm:"column:slug;type:varchar(255);uniqueIndex;not null" json:"slug"`
	Name      string    `gorm:"column:name;type:varchar(255);not null" json:"name"`
}

func (DbBlogCategory) TableName() string {
	return "blog_categories"
}

type PostQuery struct {
	BaseParams
	Language string `json:"language" form:"language" query:"language"`
	Category string `json:"category" form:"category" query:"category"`
}

type PostCreateRequest struct {
	Slug          string `json:"slug" binding:"required"`
	Title         string `json:"title" binding:"required"`
	Excerpt       string `json:"excerpt"`
	Content       string `json:"content"`
	CoverImageURL string `json:"cover_image_url"`
	Language      string `json:"language"`
	IsPublished   *bool  `json:"is_published"`
	CategoryIDs   []uint `json:"category_ids"`
}

type PostUpdateRequest struct {
	Slug          *string `json:"slug,omitempty"`
	Title         *string `json:"title,omitempty"`
	Excerpt       *string `json:"excerpt,omitempty"`
	Content       *string `json:"content,omitempty"`
	CoverImageURL *string `json:"cover_image_url,omitempty"`
	Language      *string `json:"language,omitempty"`
	IsPublished   *bool   `json:"is_published,omitempty"`
	CategoryIDs   *[]uint `json:"category_ids,omitempty"`
}

type CategoryCreateRequest struct {
	Slug string `json:"slug" binding:"required"`
	Name string `json:"name" binding:"required"`
}

type PostListResponse struct {
	Posts []DbBlogPost `json:"posts"`
	Meta  *Meta        `json:"meta"`
}
