package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	SpecialistID uint        `gorm:"not null;index:idx_appointments_specialist_start,priority:1" json:"specialist_id"`
	Specialist   *Specialist `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"specialist,omitempty"`

	ServiceID uint     `gorm:"not null" json:"service_id"`
	Service   *Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"service,omitempty"`

	StartAt time.Time `gorm:"not null;index:idx_appointments_specialist_start,priority:2" json:"start_at"`
	EndAt   time.Time `gorm:"not null" json:"end_at"`

	Canceled   bool       `gorm:"not null;default:false" json:"canceled"`
	CanceledAt *time.Time `json:"canceled_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a Appointment) Active() bool {
	return !a.Canceled
}
