package dto

import (
	"time"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
)

type SlotDTO struct {
	SpecialistID uint      `json:"specialist_id"`
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`
}

func ToSlots(slots []domain.Slot) []SlotDTO {
	out := make([]SlotDTO, 0, len(slots))
	for _, s := range slots {
		out = append(out, SlotDTO{
			SpecialistID: s.SpecialistID,
			StartTime:    s.Start,
			EndTime:      s.End,
		})
	}
	return out
}
