package entity

import "time"

const (
	ConsultationStatusPending   = "pending"
	ConsultationStatusScheduled = "scheduled"
	ConsultationStatusDone      = "done"
)

// DbContactMessage is a message sent through the public contact form.
type DbContactMessage struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Name      string    `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Email     string    `gorm:"column:email;type:varchar(255);not null" json:"email"`
	Subject   string    `gorm:"column:subject;type:varchar(255)" json:"subject"`
	Body      string    `gorm:"column:body;type:text;not null" json:"body"`
}

func (DbContactMessage) TableName() string {
	return "contact_messages"
}

// DbConsultationRequest is a request for a free placement consultation.
// Reference is a caller-facing code quoted in follow-up communication.
type DbConsultationRequest struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Reference string    `gorm:"column:reference;type:varchar(64);uniqueIndex;not null" json:"reference"`
	Name      string    `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Phone     string    `gorm:"column:phone;type:varchar(50);not null" json:"phone"`
	Language  string    `gorm:"column:language;type:varchar(10)" json:"language"`
	Level     string    `gorm:"column:level;type:varchar(20)" json:"level"`
	Note      string    `gorm:"column:note;type:text" json:"note"`
	Status    string    `gorm:"column:status;type:varchar(20);index;not null;default:pending" json:"status"`
}

func (DbConsultationRequest) TableName() string {
	return "consultation_requests"
}

type ContactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Subject string `json:"subject"`
	Body    string `json:"body" binding:"required"`
}

type ConsultationCreateRequest struct {
	Name     string `json:"name" binding:"required"`
	Phone    string `json:"phone" binding:"required"`
	Language string `json:"language"`
	Level    string `json:"level"`
	Note     string `json:"note"`
}

type ConsultationStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending scheduled done"`
}
