package dto

import (
	"time"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type AppointmentListDTO struct {
	ID          uint      `json:"id"`
	ServiceID   uint      `json:"service_id"`
	ServiceName string    `json:"service_name"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Status      string    `json:"status"`
}

func ToAppointmentList(aps []models.Appointment) []AppointmentListDTO {
	out := make([]AppointmentListDTO, 0, len(aps))
	for _, ap := range aps {
		item := AppointmentListDTO{
			ID:        ap.ID,
			ServiceID: ap.ServiceID,
			StartTime: ap.StartAt,
			EndTime:   ap.EndAt,
			Status:    string(domain.StatusOf(&ap)),
		}
		if ap.Service != nil {
			item.ServiceName = ap.Service.Name
		}
		out = append(out, item)
	}
	return out
}
