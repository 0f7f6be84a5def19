package entity

import "time"

// DbCourse is a course owned by a teacher.
type DbCourse struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	TeacherID   uint      `gorm:"column:teacher_id;index;not null" json:"teacher_id"`
	Title       string    `gorm:"column:title;type:varchar(255);not null" json:"title"`
	Description string    `gorm:"column:description;type:text" json:"description"`
	Language    string    `gorm:"column:language;type:varchar(10);index" json:"language"`
	Level       string    `gorm:"column:level;type:varchar(20);index" json:"level"`
	Capacity    int       `gorm:"column:capacity;not null;default:12" json:"capacity"`
	Schedule    string    `gorm:"column:schedule;type:varchar(255)" json:"schedule"`
	IsActive    bool      `gorm:"column:is_active;not null;default:true" json:"is_active"`
	IsFeatured  bool      `gorm:"column:is_featured;not null;default:false" json:"is_featured"`
}

func (DbCourse) TableName() string {
	return "courses"
}

// DbLesson is a unit of course content, displayed in order_index order.
type DbLesson struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	CourseID   uint      `gorm:"column:course_id;index;not null" json:"course_id"`
	Title      string    `gorm:"column:title;type:varchar(255);not null" json:"title"`
	Content    string    `gorm:"column:content;type:text" json:"content"`
	OrderIndex int       `gorm:"column:order_index;not null;default:0" json:"order_index"`
}

func (DbLesson) TableName() string {
	return "lessons"
}

type CourseQuery struct {
	BaseParams
	Language string `json:"language" form:"language" query:"language"`
	Level    string `json:"level" form:"level" query:"level"`
	Featured *bool  `json:"featured" form:"featured" query:"featured"`
}

type CourseCreateRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Language    string `json:"language" binding:"required"`
	Level       string `json:"level"`
	Capacity    int    `json:"capacity"`
	Schedule    string `json:"schedule"`
	IsActive    *bool  `json:"is_active"`
	IsFeatured  *bool  `json:"is_featured"`
}

type CourseUpdateRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Language    *string `json:"language,omitempty"`
	Level       *string `json:"level,omitempty"`
	Capacity    *int    `json:"capacity,omitempty"`
	Schedule    *string `json:"schedule,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
	IsFeatured  *bool   `json:"is_featured,omitempty"`
}

type LessonCreateRequest struct {
	Title      string `json:"title" binding:"required"`
	Content    string `json:"content"`
	OrderIndex *int   `json:"order_index"`
}

type LessonUpdateRequest struct {
	Title      *string `json:"title,omitempty"`
	Content    *string `json:"content,omitempty"`
	OrderIndex *int    `json:"order_index,omitempty"`
}

type CourseListResponse struct {
	Courses []DbCourse `json:"courses"`
	Meta    *Meta      `json:"meta"`
}

// CourseDetail is a course with its lessons attached.
type CourseDetail struct {
	DbCourse
	Lessons []DbLesson `json:"lessons"`
}
