package appointment

import "github.com/BruksfildServices01/salon-scheduler/internal/httperr"

var (
	ErrSpecialistNotFound = httperr.NotFoundError(
		"specialist_not_found",
		"Specialist not found",
	)
	ErrServiceNotFound = httperr.NotFoundError(
		"service_not_found",
		"Service not found",
	)
	ErrAppointmentNotFound = httperr.NotFoundError(
		"appointment_not_found",
		"Appointment not found",
	)

	ErrCapability = httperr.UnprocessableError(
		"specialist_cannot_provide_service",
		"Specialist does not provide this service",
	)
	ErrOutsideWorkingHours = httperr.UnprocessableError(
		"outside_working_hours",
		"Appointment time is outside working hours",
	)
	ErrSlotUnavailable = httperr.ConflictError(
		"slot_unavailable",
		"Slot is no longer available",
	)
	ErrAlreadyCanceled = httperr.ConflictError(
		"appointment_already_canceled",
		"Appointment is already canceled",
	)
)
