package dto

import (
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type AppointmentDTO struct {
	ID           uint       `json:"id"`
	SpecialistID uint       `json:"specialist_id"`
	ServiceID    uint       `json:"service_id"`
	StartAt      time.Time  `json:"start_at"`
	EndAt        time.Time  `json:"end_at"`
	Canceled     bool       `json:"canceled"`
	CanceledAt   *time.Time `json:"canceled_at,omitempty"`
}

func ToAppointment(ap *models.Appointment) AppointmentDTO {
	return AppointmentDTO{
		ID:           ap.ID,
		SpecialistID: ap.SpecialistID,
		ServiceID:    ap.ServiceID,
		StartAt:      ap.StartAt,
		EndAt:        ap.EndAt,
		Canceled:     ap.Canceled,
		CanceledAt:   ap.CanceledAt,
	}
}
