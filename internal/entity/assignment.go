package entity

import "time"

// DbAssignment is homework attached to a course, owned by the course teacher.
type DbAssignment struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	TeacherID   uint      `gorm:"column:teacher_id;index;not null" json:"teacher_id"`
	CourseID    uint      `gorm:"column:course_id;index;not null" json:"course_id"`
	Title       string    `gorm:"column:title;type:varchar(255);not null" json:"title"`
	Description string    `gorm:"column:description;type:text" json:"description"`
	DueDate     time.Time `gorm:"column:due_date;not null" json:"due_date"`
}

func (DbAssignment) TableName() string {
	return "assignments"
}

// DbSubmission is a student's answer to an assignment. Once Grade is set the
// record becomes immutable for the owning student.
type DbSubmission struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	AssignmentID uint      `gorm:"column:assignment_id;index:idx_assignment_student,unique;not null" json:"assignment_id"`
	StudentID    uint      `gorm:"column:student_id;index:idx_assignment_student,unique;not null" json:"student_id"`
	Content      string    `gorm:"column:content;type:text;not null" json:"content"`
	IsLate       bool      `gorm:"column:is_late;not null;default:false" json:"is_late"`
	Grade        *string   `gorm:"column:grade;type:varchar(20)" json:"grade"`
	Feedback     string    `gorm:"column:feedback;type:text" json:"feedback"`
	SubmittedAt  time.Time `gorm:"column:submitted_at;not null" json:"submitted_at"`
}

func (DbSubmission) TableName() string {
	return "submissions"
}

// IsGraded reports whether a grade has been recorded.
func (s *DbSubmission) IsGraded() bool {
	return s != nil && s.Grade != nil
}

type AssignmentCreateRequest struct {
	CourseID    uint      `json:"course_id" binding:"required"`
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"due_date" binding:"required"`
}

type AssignmentUpdateRequest struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

type SubmissionCreateRequest struct {
	AssignmentID uint   `json:"assignment_id" binding:"required"`
	Content      string `json:"content" binding:"required"`
}

type SubmissionUpdateRequest struct {
	Content *string `json:"content,omitempty"`
}

type GradeRequest struct {
	Grade    string `json:"grade" binding:"required"`
	Feedback string `json:"feedback"`
}

// AssignmentDetail is an assignment with its submissions attached.
type AssignmentDetail struct {
	DbAssignment
	Submissions []DbSubmission `json:"submissions"`
}
