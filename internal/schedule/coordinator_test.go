package schedule

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/Salon-BookingService/internal/domain"
	"github.com/m04kA/Salon-BookingService/pkg/types"
)

func confirmRequest(start types.TimeString) ConfirmRequest {
	return ConfirmRequest{
		UserID:    100,
		SalonID:   1,
		ServiceID: 10,
		Date:      time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		StartTime: start,
	}
}

func TestCoordinator_Confirm_RemovesSlotFromAvailability(t *testing.T) {
	// Single seat, open 09:00-10:00, 30-minute grid: with reference on the
	// opening boundary the only offered start is 09:30
	catalog := testCatalog(30, 1, "09:00", "10:00")
	ledger := NewLedger(1)
	coordinator := NewCoordinator(catalog, ledger)
	engine := NewEngine()

	slots, err := engine.ListAvailableSlots(catalog, ledger, 10, "09:00", 0)
	require.NoError(t, err)
	require.Equal(t, []string{"09:30"}, slotStarts(slots))

	booking, err := coordinator.Confirm(confirmRequest("09:30"))
	require.NoError(t, err)
	assert.Equal(t, 0, booking.SeatIndex)
	assert.Equal(t, domain.StatusConfirmed, booking.Status)
	assert.Equal(t, "Haircut", booking.ServiceName)
	assert.Equal(t, float64(1500), booking.ServicePrice)

	slots, err = engine.ListAvailableSlots(catalog, ledger, 10, "09:00", 0)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestCoordinator_Confirm_PreferredSeat(t *testing.T) {
	catalog := testCatalog(30, 2, "09:00", "18:00")
	coordinator := NewCoordinator(catalog, NewLedger(2))

	req := confirmRequest("10:00")
	seat := 1
	req.PreferredSeat = &seat

	booking, err := coordinator.Confirm(req)
	require.NoError(t, err)
	assert.Equal(t, 1, booking.SeatIndex)

	// Same seat, same slot: rejected even though seat 0 is free
	_, err = coordinator.Confirm(req)
	assert.ErrorIs(t, err, ErrSeatUnavailable)

	// Automatic assignment still finds the free seat
	booking, err = coordinator.Confirm(confirmRequest("10:00"))
	require.NoError(t, err)
	assert.Equal(t, 0, booking.SeatIndex)
}

func TestCoordinator_Confirm_PreferredSeatOutOfRange(t *testing.T) {
	catalog := testCatalog(30, 2, "09:00", "18:00")
	coordinator := NewCoordinator(catalog, NewLedger(2))

	req := confirmRequest("10:00")
	seat := 2
	req.PreferredSeat = &seat
	_, err := coordinator.Confirm(req)
	assert.ErrorIs(t, err, ErrInvalidSeatIndex)

	seat = -1
	_, err = coordinator.Confirm(req)
	assert.ErrorIs(t, err, ErrInvalidSeatIndex)
}

func TestCoordinator_Confirm_NoSeatAvailable(t *testing.T) {
	catalog := testCatalog(30, 1, "09:00", "18:00")
	coordinator := NewCoordinator(catalog, NewLedger(1))

	_, err := coordinator.Confirm(confirmRequest("10:00"))
	require.NoError(t, err)

	_, err = coordinator.Confirm(confirmRequest("10:00"))
	assert.ErrorIs(t, err, ErrNoSeatAvailable)
}

func TestCoordinator_Confirm_RejectsInvalidStart(t *testing.T) {
	catalog := testCatalog(30, 1, "09:00", "18:00")
	coordinator := NewCoordinator(catalog, NewLedger(1))

	// Off-grid
	_, err := coordinator.Confirm(confirmRequest("10:10"))
	assert.ErrorIs(t, err, ErrInvalidSlot)

	// Would end after closing
	_, err = coordinator.Confirm(confirmRequest("17:45"))
	assert.ErrorIs(t, err, ErrInvalidSlot)

	// Unknown service
	req := confirmRequest("10:00")
	req.ServiceID = 999
	_, err = coordinator.Confirm(req)
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestCoordinator_AssignsMonotonicIDs(t *testing.T) {
	catalog := testCatalog(30, 1, "09:00", "18:00")

	// Restored ledger seeds the counter past the highest existing ID
	ledger := NewLedger(1)
	require.NoError(t, ledger.Insert(makeBooking(7, 0, "09:00", 30)))
	coordinator := NewCoordinator(catalog, ledger)

	first, err := coordinator.Confirm(confirmRequest("10:00"))
	require.NoError(t, err)
	assert.Equal(t, int64(8), first.ID)

	second, err := coordinator.Confirm(confirmRequest("10:30"))
	require.NoError(t, err)
	assert.Equal(t, int64(9), second.ID)
}

// assertSeatsNonOverlapping walks every seat of the ledger and checks that no
// two bookings on the same seat have intersecting [start, end) intervals.
func assertSeatsNonOverlapping(t *testing.T, ledger *Ledger) {
	t.Helper()

	for seat := 0; seat < ledger.SeatCount(); seat++ {
		bookings := ledger.BookingsForSeat(seat)
		for i := 1; i < len(bookings); i++ {
			prevEnd, err := bookings[i-1].EndTime()
			require.NoError(t, err)
			if prevEnd.IsAfter(bookings[i].StartTime) {
				t.Fatalf("seat %d: booking id=%d [%s+%dm) overlaps booking id=%d starting at %s",
					seat,
					bookings[i-1].ID, bookings[i-1].StartTime, bookings[i-1].DurationMinutes,
					bookings[i].ID, bookings[i].StartTime)
			}
		}
	}
}

func TestCoordinator_Confirm_RandomSequencesKeepSeatsNonOverlapping(t *testing.T) {
	// Random sequences of Confirm calls against varying seat counts:
	// whatever mix of successes and rejections comes out, no seat may ever
	// hold two intersecting intervals
	rng := rand.New(rand.NewSource(1))

	const (
		sequences      = 100
		callsPerSeq    = 40
		openMinutes    = 9 * 60
		closeMinutes   = 18 * 60
		intervalMinute = 30
	)

	for seq := 0; seq < sequences; seq++ {
		seatCount := 1 + rng.Intn(3)
		catalog := testCatalog(intervalMinute, seatCount, "09:00", "18:00")
		ledger := NewLedger(seatCount)
		coordinator := NewCoordinator(catalog, ledger)

		for call := 0; call < callsPerSeq; call++ {
			startMinutes := openMinutes + rng.Intn((closeMinutes-openMinutes)/intervalMinute)*intervalMinute
			start, err := types.FromMinutes(startMinutes)
			require.NoError(t, err)

			req := confirmRequest(start)
			// 30-minute haircut or 90-minute coloring
			if rng.Intn(2) == 0 {
				req.ServiceID = 20
			}
			if rng.Intn(2) == 0 {
				seat := rng.Intn(seatCount)
				req.PreferredSeat = &seat
			}

			_, err = coordinator.Confirm(req)
			if err != nil {
				// Occupied seats and slots spilling past closing are
				// expected outcomes of random input. ErrSeatConflict is not:
				// it would mean the pre-check and the insert disagreed.
				rejected := errors.Is(err, ErrSeatUnavailable) ||
					errors.Is(err, ErrNoSeatAvailable) ||
					errors.Is(err, ErrInvalidSlot)
				require.True(t, rejected, "unexpected confirm error: %v", err)
			}

			assertSeatsNonOverlapping(t, ledger)
		}
	}
}

func TestCoordinator_Cancel_FreesSlot(t *testing.T) {
	catalog := testCatalog(30, 1, "09:00", "18:00")
	ledger := NewLedger(1)
	coordinator := NewCoordinator(catalog, ledger)

	booking, err := coordinator.Confirm(confirmRequest("11:00"))
	require.NoError(t, err)

	_, err = coordinator.Confirm(confirmRequest("11:00"))
	require.ErrorIs(t, err, ErrNoSeatAvailable)

	require.NoError(t, coordinator.Cancel(booking.ID))

	rebooked, err := coordinator.Confirm(confirmRequest("11:00"))
	require.NoError(t, err)
	assert.Equal(t, 0, rebooked.SeatIndex)

	// Unknown ID
	assert.ErrorIs(t, coordinator.Cancel(999), ErrBookingNotFound)
}
