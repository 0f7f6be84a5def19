package entity

import "time"

const (
	EnrollmentStatusActive    = "active"
	EnrollmentStatusCompleted = "completed"
	EnrollmentStatusCancelled = "cancelled"
)

// DbEnrollment links a student to a course with a lifecycle status.
type DbEnrollment struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	StudentID uint      `gorm:"column:student_id;index;not null" json:"student_id"`
	CourseID  uint      `gorm:"column:course_id;index;not null" json:"course_id"`
	Status    string    `gorm:"column:status;type:varchar(20);index;not null;default:active" json:"status"`
}

func (DbEnrollment) TableName() string {
	return "enrollments"
}

type EnrollRequest struct {
	CourseID uint `json:"course_id" binding:"required"`
}

// EnrollmentDetail is an enrollment with its course attached.
type EnrollmentDetail struct {
	DbEnrollment
	Course DbCourse `json:"course"`
}
