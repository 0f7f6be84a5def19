package entity

import "time"

// Content kinds addressable through the generic content endpoints.
const (
	ContentKindHeroSlide = "hero-slides"
	ContentKindFeature   = "features"
	ContentKindStatistic = "statistics"
	ContentKindCharter   = "charters"
)

// DbHeroSlide is a slide on the public landing page.
type DbHeroSlide struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	Title      string    `gorm:"column:title;type:varchar(255);not null" json:"title"`
	Subtitle   string    `gorm:"column:subtitle;type:varchar(512)" json:"subtitle"`
	ImageURL   string    `gorm:"column:image_url;type:varchar(512)" json:"image_url"`
	LinkURL    string    `gorm:"column:link_url;type:varchar(512)" json:"link_url"`
	OrderIndex int       `gorm:"column:order_index;not null;default:0" json:"order_index"`
	IsActive   bool      `gorm:"column:is_active;not null;default:true" json:"is_active"`
}

func (DbHeroSlide) TableName() string {
	return "hero_slides"
}

// DbFeatureItem is a "why us" marketing bullet.
type DbFeatureItem struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	Title      string    `gorm:"column:title;type:varchar(255);not null" json:"title"`
	Body       string    `gorm:"column:body;type:text" json:"body"`
	Icon       string    `gorm:"column:icon;type:varchar(100)" json:"icon"`
	OrderIndex int       `gorm:"column:order_index;not null;default:0" json:"order_index"`
	IsActive   bool      `gorm:"column:is_active;not null;default:true" json:"is_active"`
}

func (DbFeatureItem) TableName() string {
	return "feature_items"
}

// DbStatistic is a headline number shown on the landing page.
type DbStatistic struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	Label      string    `gorm:"column:label;type:varchar(255);not null" json:"label"`
	Value      string    `gorm:"column:value;type:varchar(100);not null" json:"value"`
	OrderIndex int       `gorm:"column:order_index;not null;default:0" json:"order_index"`
	IsActive   bool      `gorm:"column:is_active;not null;default:true" json:"is_active"`
}

func (DbStatistic) TableName() string {
	return "statistics"
}

// DbCharter is a school principle listed on the about page.
type DbCharter struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	Title      string    `gorm:"column:title;type:varchar(255);not null" json:"title"`
	Body       string    `gorm:"column:body;type:text" json:"body"`
	OrderIndex int       `gorm:"column:order_index;not null;default:0" json:"order_index"`
	IsActive   bool      `gorm:"column:is_active;not null;default:true" json:"is_active"`
}

func (DbCharter) TableName() string {
	return "charters"
}

type HeroSlideRequest struct {
	Title    string `json:"title" binding:"required"`
	Subtitle string `json:"subtitle"`
	ImageURL string `json:"image_url"`
	LinkURL  string `json:"link_url"`
	IsActive *bool  `json:"is_active"`
}

type FeatureItemRequest struct {
	Title    string `json:"title" binding:"required"`
	Body     string `json:"body"`
	Icon     string `json:"icon"`
	IsActive *bool  `json:"is_active"`
}

type StatisticRequest struct {
	Label    string `json:"label" binding:"required"`
	Value    string `json:"value" binding:"required"`
	IsActive *bool  `json:"is_active"`
}

type CharterRequest struct {
	Title    string `json:"title" binding:"required"`
	Body     string `json:"body"`
	IsActive *bool  `json:"is_active"`
}

type MoveRequest struct {
	Direction string `json:"direction" binding:"required,oneof=up down"`
}
