package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/campus-rooms/booking-service/internal/models"
	"github.com/campus-rooms/booking-service/internal/repository"
	"github.com/campus-rooms/booking-service/internal/timerange"
	"github.com/campus-rooms/booking-service/pkg/rabbitmq"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrRoomNotFound     = errors.New("room not found")
	ErrRoomUnavailable  = errors.New("room is not available")
	ErrNotMember        = errors.New("user is not a member of the organization")
	ErrStartInPast      = errors.New("start time must be in the future")
	ErrInvalidTimeRange = errors.New("start time must be before end time")
	ErrTimeConflict     = errors.New("room is already booked for the requested time")
	ErrBookingNotFound  = errors.New("booking not found")
	ErrNotBookingOwner  = errors.New("booking belongs to another user")
	ErrCancelOnly       = errors.New("only cancellation is allowed for own bookings")
	ErrInvalidStatus    = errors.New("invalid booking status")
)

// pgExclusionViolation is the SQLSTATE raised when a write trips the
// (room_id, time range) exclusion constraint.
const pgExclusionViolation = "23P01"

// conflictOr maps an exclusion-constraint violation to ErrTimeConflict and
// passes every other error through.
func conflictOr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgExclusionViolation {
		return ErrTimeConflict
	}
	return err
}

type CreateBookingInput struct {
	RoomID         uint
	OrganizationID uint
	Start          time.Time
	End            time.Time
	Purpose        string
	Remark         string
}

type BookingService interface {
	CreateBooking(ctx context.Context, user *models.User, in CreateBookingInput) (*models.Booking, error)
	UpdateBookingStatus(ctx context.Context, user *models.User, bookingID uint, status models.BookingStatus, remark *string) (*models.Booking, error)
	GetBooking(ctx context.Context, user *models.User, id uint) (*models.Booking, error)
	ListUserBookings(ctx context.Context, userID uint) ([]models.Booking, error)
	ListRoomSchedule(ctx context.Context, roomID uint) ([]models.Booking, error)
}

type bookingService struct {
	bookingRepo repository.BookingRepository
	roomRepo    repository.RoomRepository
	orgRepo     repository.OrganizationRepository
	ruleRepo    repository.RuleRepository
	publisher   *rabbitmq.Publisher
}

func NewBookingService(
	bookingRepo repository.BookingRepository,
	roomRepo repository.RoomRepository,
	orgRepo repository.OrganizationRepository,
	ruleRepo repository.RuleRepository,
	publisher *rabbitmq.Publisher,
) BookingService {
	return &bookingService{
		bookingRepo: bookingRepo,
		roomRepo:    roomRepo,
		orgRepo:     orgRepo,
		ruleRepo:    ruleRepo,
		publisher:   publisher,
	}
}

// CreateBooking admits a booking request: it validates membership and timing,
// checks the requested slot against existing bookings, lets the auto-approval
// rules decide the initial status, and persists the result. The conflict
// check and the insert run in one transaction under a row lock on the room,
// so two concurrent requests for the same room cannot both pass the check.
func (s *bookingService) CreateBooking(ctx context.Context, user *models.User, in CreateBookingInput) (*models.Booking, error) {
	// Admins may book on behalf of any organization.
	if !user.Role.IsAdmin() {
		member, err := s.orgRepo.IsMember(ctx, user.ID, in.OrganizationID)
		if err != nil {
			return nil, err
		}
		if !member {
			return nil, ErrNotMember
		}
	}

	slot := timerange.New(in.Start, in.End)
	if !slot.IsValid() {
		return nil, ErrInvalidTimeRange
	}
	if !in.Start.After(time.Now()) {
		return nil, ErrStartInPast
	}

	var result *models.Booking

	err := s.bookingRepo.Transaction(ctx, func(tx *gorm.DB) error {
		// Lock the room row first; this serializes admission per room.
		room, err := s.roomRepo.FindByIDForUpdate(ctx, tx, in.RoomID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRoomNotFound
			}
			return err
		}
		if !room.Status {
			return ErrRoomUnavailable
		}

		overlapping, err := s.bookingRepo.FindOverlapping(ctx, tx, in.RoomID, in.Start, in.End, 0)
		if err != nil {
			return err
		}
		if len(overlapping) > 0 {
			return ErrTimeConflict
		}

		booking := &models.Booking{
			RoomID:         in.RoomID,
			OrganizationID: in.OrganizationID,
			UserID:         user.ID,
			StartTime:      in.Start,
			EndTime:        in.End,
			Purpose:        in.Purpose,
			Remark:         in.Remark,
			Status:         models.StatusPending,
		}

		rules, err := s.ruleRepo.FindActive(ctx, tx)
		if err != nil {
			return err
		}
		if rule, ok := matchRule(rules, ruleCandidate{
			OrganizationID: in.OrganizationID,
			RoomID:         in.RoomID,
			UserID:         user.ID,
			Duration:       slot.Minutes(),
			StartClock:     slot.StartClock(),
		}); ok {
			applyRule(booking, rule)
		}

		if err := s.bookingRepo.Create(ctx, tx, booking); err != nil {
			// The exclusion constraint is the backstop for writers that did
			// not go through the room lock. Report it as a plain conflict.
			return conflictOr(err)
		}

		result = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish("booking.created", result)

	// Reload with room/organization/user names for the response view.
	return s.bookingRepo.FindByID(ctx, result.ID)
}

// applyRule sets the booking's status from the matched rule's action and
// records the decision in the remark.
func applyRule(booking *models.Booking, rule *models.AutoApprovalRule) {
	var annotation string
	switch rule.Action {
	case models.ActionApprove:
		booking.Status = models.StatusConfirmed
		annotation = fmt.Sprintf("auto-approved: %s", rule.Name)
	case models.ActionReject:
		booking.Status = models.StatusRejected
		annotation = fmt.Sprintf("auto-rejected: %s", rule.Name)
	default:
		return
	}
	if booking.Remark != "" {
		booking.Remark = booking.Remark + " | " + annotation
	} else {
		booking.Remark = annotation
	}
}

// UpdateBookingStatus performs a manual transition. Admins may set any
// status; a regular user may only cancel their own booking. Confirming a
// booking re-runs the conflict check, so an admin approval cannot introduce
// an overlap that appeared while the booking sat pending.
func (s *bookingService) UpdateBookingStatus(ctx context.Context, user *models.User, bookingID uint, status models.BookingStatus, remark *string) (*models.Booking, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	booking, err := s.bookingRepo.FindByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	if !user.Role.IsAdmin() {
		if booking.UserID != user.ID {
			return nil, ErrNotBookingOwner
		}
		if status != models.StatusCancelled {
			return nil, ErrCancelOnly
		}
	}

	err = s.bookingRepo.Transaction(ctx, func(tx *gorm.DB) error {
		if status == models.StatusConfirmed && booking.Status != models.StatusConfirmed {
			if _, err := s.roomRepo.FindByIDForUpdate(ctx, tx, booking.RoomID); err != nil {
				return err
			}
			slot := booking.Interval()
			overlapping, err := s.bookingRepo.FindOverlapping(ctx, tx, booking.RoomID, slot.Start, slot.End, booking.ID)
			if err != nil {
				return err
			}
			if len(overlapping) > 0 {
				return ErrTimeConflict
			}
		}
		// Flipping a booking back into the active set may trip the
		// exclusion constraint just like an insert does.
		return conflictOr(s.bookingRepo.UpdateStatus(ctx, tx, bookingID, status, remark))
	})
	if err != nil {
		return nil, err
	}

	updated, err := s.bookingRepo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	s.publish("booking."+string(status), updated)

	return updated, nil
}

func (s *bookingService) GetBooking(ctx context.Context, user *models.User, id uint) (*models.Booking, error) {
	booking, err := s.bookingRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if !user.Role.IsAdmin() && booking.UserID != user.ID {
		return nil, ErrNotBookingOwner
	}
	return booking, nil
}

func (s *bookingService) ListUserBookings(ctx context.Context, userID uint) ([]models.Booking, error) {
	return s.bookingRepo.FindByUserID(ctx, userID)
}

func (s *bookingService) ListRoomSchedule(ctx context.Context, roomID uint) ([]models.Booking, error) {
	if _, err := s.roomRepo.FindByID(ctx, roomID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return s.bookingRepo.FindActiveByRoomID(ctx, roomID)
}

func (s *bookingService) publish(routingKey string, booking *models.Booking) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(routingKey, booking); err != nil {
		log.Printf("[BookingService] publish %s for booking %d: %v", routingKey, booking.ID, err)
	}
}
