package config

import (
	"sync"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
)

// Settings holds the working hours in force. Use cases read it on every call,
// so an Update is visible to the very next request.
type Settings struct {
	mu    sync.RWMutex
	hours appointment.WorkingHours
}

func NewSettings(hours appointment.WorkingHours) (*Settings, error) {
	if err := hours.Validate(); err != nil {
		return nil, err
	}
	return &Settings{hours: hours}, nil
}

func (s *Settings) Current() appointment.WorkingHours {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hours
}

func (s *Settings) Update(hours appointment.WorkingHours) error {
	if err := hours.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	s.hours = hours
	s.mu.Unlock()
	return nil
}

var _ appointment.HoursSource = (*Settings)(nil)
