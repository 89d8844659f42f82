package domain

import "github.com/m04kA/Salon-BookingService/pkg/types"

// AvailableSlot represents a bookable start time for a service
type AvailableSlot struct {
	StartTime       types.TimeString
	DurationMinutes int
	AvailableSeats  int // Free seats at this start time
	TotalSeats      int // Total seats in the salon
}

// IsFull returns true if the slot has no free seats
func (s *AvailableSlot) IsFull() bool {
	return s.AvailableSeats <= 0
}

// IsPartiallyAvailable returns true if the slot has some but not all seats free
func (s *AvailableSlot) IsPartiallyAvailable() bool {
	return s.AvailableSeats > 0 && s.AvailableSeats < s.TotalSeats
}

// IsFullyAvailable returns true if all seats are free
func (s *AvailableSlot) IsFullyAvailable() bool {
	return s.AvailableSeats == s.TotalSeats
}

// OccupancyRate returns the occupancy rate as a percentage (0-100)
func (s *AvailableSlot) OccupancyRate() float64 {
	if s.TotalSeats == 0 {
		return 0
	}
	occupied := s.TotalSeats - s.AvailableSeats
	return float64(occupied) / float64(s.TotalSeats) * 100
}
