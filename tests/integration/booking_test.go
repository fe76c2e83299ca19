//go:build integration

package integration

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/campus-rooms/booking-service/internal/models"
	"github.com/campus-rooms/booking-service/internal/repository"
	"github.com/campus-rooms/booking-service/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService() service.BookingService {
	return service.NewBookingService(
		repository.NewBookingRepository(testDB),
		repository.NewRoomRepository(testDB),
		repository.NewOrganizationRepository(testDB),
		repository.NewRuleRepository(testDB),
		nil, // no RabbitMQ in integration tests
	)
}

func TestAdmission_PendingWithoutRules(t *testing.T) {
	cleanTables()
	org := createOrganization(t, "CS Department")
	room := createRoom(t, "Lab 202", 30)
	user := createUser(t, "student1", models.RoleUser, org)

	svc := newService()
	booking, err := svc.CreateBooking(context.Background(), user, service.CreateBookingInput{
		RoomID:         room.ID,
		OrganizationID: org.ID,
		Start:          tomorrowAt(14),
		End:            tomorrowAt(16),
		Purpose:        "seminar",
	})

	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, booking.Status)
	assert.Equal(t, "Lab 202", booking.Room.Name)
	assert.Equal(t, "CS Department", booking.Organization.Name)
}

func TestAdmission_AutoApprovedByRoomRule(t *testing.T) {
	cleanTables()
	org := createOrganization(t, "CS Department")
	room := createRoom(t, "Lab 202", 30)
	user := createUser(t, "student1", models.RoleUser, org)

	require.NoError(t, testDB.Create(&models.AutoApprovalRule{
		Name:   "lab priority",
		RoomID: &room.ID,
		Action: models.ActionApprove,
		Active: true,
	}).Error)

	svc := newService()
	booking, err := svc.CreateBooking(context.Background(), user, service.CreateBookingInput{
		RoomID:         room.ID,
		OrganizationID: org.ID,
		Start:          tomorrowAt(14),
		End:            tomorrowAt(16),
		Purpose:        "seminar",
	})

	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, booking.Status)
	assert.Contains(t, booking.Remark, "auto-approved")
}

func TestAdmission_ConflictWithExistingBooking(t *testing.T) {
	cleanTables()
	org := createOrganization(t, "CS Department")
	room := createRoom(t, "Lab 202", 30)
	first := createUser(t, "student1", models.RoleUser, org)
	second := createUser(t, "student2", models.RoleUser, org)

	svc := newService()
	_, err := svc.CreateBooking(context.Background(), first, service.CreateBookingInput{
		RoomID:         room.ID,
		OrganizationID: org.ID,
		Start:          tomorrowAt(14),
		End:            tomorrowAt(16),
		Purpose:        "seminar",
	})
	require.NoError(t, err)

	_, err = svc.CreateBooking(context.Background(), second, service.CreateBookingInput{
		RoomID:         room.ID,
		OrganizationID: org.ID,
		Start:          tomorrowAt(15),
		End:            tomorrowAt(17),
		Purpose:        "workshop",
	})
	assert.ErrorIs(t, err, service.ErrTimeConflict)
}

func TestAdmission_CancelledBookingFreesSlot(t *testing.T) {
	cleanTables()
	org := createOrganization(t, "CS Department")
	room := createRoom(t, "Lab 202", 30)
	user := createUser(t, "student1", models.RoleUser, org)

	svc := newService()
	booking, err := svc.CreateBooking(context.Background(), user, service.CreateBookingInput{
		RoomID:         room.ID,
		OrganizationID: org.ID,
		Start:          tomorrowAt(14),
		End:            tomorrowAt(16),
		Purpose:        "seminar",
	})
	require.NoError(t, err)

	_, err = svc.UpdateBookingStatus(context.Background(), user, booking.ID, models.StatusCancelled, nil)
	require.NoError(t, err)

	_, err = svc.CreateBooking(context.Background(), user, service.CreateBookingInput{
		RoomID:         room.ID,
		OrganizationID: org.ID,
		Start:          tomorrowAt(14),
		End:            tomorrowAt(16),
		Purpose:        "retry",
	})
	assert.NoError(t, err)
}

func TestAdmission_NonMemberForbidden(t *testing.T) {
	cleanTables()
	org := createOrganization(t, "CS Department")
	other := createOrganization(t, "Art Department")
	room := createRoom(t, "Lab 202", 30)
	user := createUser(t, "student1", models.RoleUser, other)

	svc := newService()
	_, err := svc.CreateBooking(context.Background(), user, service.CreateBookingInput{
		RoomID:         room.ID,
		OrganizationID: org.ID,
		Start:          tomorrowAt(14),
		End:            tomorrowAt(16),
		Purpose:        "seminar",
	})
	assert.ErrorIs(t, err, service.ErrNotMember)
}

// TestAdmission_ConcurrentRequestsOneWins drives overlapping requests through
// the engine at the same time. The room row lock serializes them, so exactly
// one may succeed; the rest must fail as conflicts, never as double-bookings.
func TestAdmission_ConcurrentRequestsOneWins(t *testing.T) {
	cleanTables()
	org := createOrganization(t, "CS Department")
	room := createRoom(t, "Lab 202", 30)

	const workers = 8
	users := make([]*models.User, workers)
	for i := range users {
		users[i] = createUser(t, fmt.Sprintf("student%d", i+1), models.RoleUser, org)
	}

	svc := newService()
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.CreateBooking(context.Background(), users[i], service.CreateBookingInput{
				RoomID:         room.ID,
				OrganizationID: org.ID,
				Start:          tomorrowAt(14),
				End:            tomorrowAt(16),
				Purpose:        "race",
			})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, service.ErrTimeConflict)
		}
	}
	assert.Equal(t, 1, succeeded)

	var count int64
	testDB.Model(&models.Booking{}).
		Where("room_id = ? AND status NOT IN ?", room.ID, models.InactiveStatuses).
		Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestConfirm_RevalidatesAgainstNewOverlap(t *testing.T) {
	cleanTables()
	org := createOrganization(t, "CS Department")
	room := createRoom(t, "Lab 202", 30)
	user := createUser(t, "student1", models.RoleUser, org)
	boss := createUser(t, "admin1", models.RoleAdmin, org)

	svc := newService()
	pending, err := svc.CreateBooking(context.Background(), user, service.CreateBookingInput{
		RoomID:         room.ID,
		OrganizationID: org.ID,
		Start:          tomorrowAt(14),
		End:            tomorrowAt(16),
		Purpose:        "seminar",
	})
	require.NoError(t, err)

	// A confirmed booking slips into the same slot after the first request
	// was rejected by a rule and then manually reset. Simulate the overlap
	// directly at the storage layer.
	require.NoError(t, testDB.Model(&models.Booking{}).
		Where("id = ?", pending.ID).
		Update("status", models.StatusRejected).Error)
	overlap, err := svc.CreateBooking(context.Background(), user, service.CreateBookingInput{
		RoomID:         room.ID,
		OrganizationID: org.ID,
		Start:          tomorrowAt(15),
		End:            tomorrowAt(17),
		Purpose:        "workshop",
	})
	require.NoError(t, err)
	require.Equal(t, models.StatusPending, overlap.Status)

	// Re-confirming the now-rejected first booking would overlap the new one.
	_, err = svc.UpdateBookingStatus(context.Background(), boss, pending.ID, models.StatusConfirmed, nil)
	assert.ErrorIs(t, err, service.ErrTimeConflict)
}
