package entity

import "time"

// DbAdminProfile extends a user with the admin role.
type DbAdminProfile struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	UserID    uint      `gorm:"column:user_id;uniqueIndex;not null" json:"user_id"`
}

func (DbAdminProfile) TableName() string {
	return "admin_profiles"
}

// DbTeacherProfile extends a user with the teacher role.
type DbTeacherProfile struct {
	ID          uint        `gorm:"primarykey" json:"id"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
	UserID      uint        `gorm:"column:user_id;uniqueIndex;not null" json:"user_id"`
	Bio         string      `gorm:"column:bio;type:text" json:"bio"`
	Specialties StringArray `gorm:"column:specialties;type:text" json:"specialties"`
	PhotoURL    string      `gorm:"column:photo_url;type:varchar(512)" json:"photo_url"`
}

func (DbTeacherProfile) TableName() string {
	return "teacher_profiles"
}

// DbStudentProfile extends a user with the student role.
type DbStudentProfile struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	UserID    uint      `gorm:"column:user_id;uniqueIndex;not null" json:"user_id"`
	Phone     string    `gorm:"column:phone;type:varchar(50)" json:"phone"`
	PhotoURL  string    `gorm:"column:photo_url;type:varchar(512)" json:"photo_url"`
}

func (DbStudentProfile) TableName() string {
	return "student_profiles"
}

// TeacherSummary combines a teacher profile with its user record.
type TeacherSummary struct {
	ID          uint      `json:"id"`
	UserID      uint      `json:"user_id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Bio         string    `json:"bio"`
	Specialties []string  `json:"specialties"`
	PhotoURL    string    `json:"photo_url"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

// StudentSummary combines a student profile with its user record.
type StudentSummary struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"user_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	PhotoURL  string    `json:"photo_url"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

type TeacherCreateRequest struct {
	Name        string   `json:"name" binding:"required"`
	Email       string   `json:"email" binding:"required,email"`
	Password    string   `json:"password" binding:"required,min=8"`
	Bio         string   `json:"bio"`
	Specialties []string `json:"specialties"`
	PhotoURL    string   `json:"photo_url"`
}

type TeacherUpdateRequest struct {
	Name        *string   `json:"name,omitempty"`
	Bio         *string   `json:"bio,omitempty"`
	Specialties *[]string `json:"specialties,omitempty"`
	PhotoURL    *string   `json:"photo_url,omitempty"`
	IsActive    *bool     `json:"is_active,omitempty"`
}

type StudentCreateRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Phone    string `json:"phone"`
	PhotoURL string `json:"photo_url"`
}

type StudentUpdateRequest struct {
	Name     *string `json:"name,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	PhotoURL *string `json:"photo_url,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}

type TeacherListResponse struct {
	Teachers []TeacherSummary `json:"teachers"`
	Meta     *Meta            `json:"meta"`
}

type StudentListResponse struct {
	Students []StudentSummary `json:"students"`
	Meta     *Meta            `json:"meta"`
}
