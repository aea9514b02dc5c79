package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"volunteer-backend/internal/config"
	"volunteer-backend/internal/domain"
	"volunteer-backend/internal/logger"
	"volunteer-backend/internal/notify"
	"volunteer-backend/internal/repository"
)

var registrationCounter = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "volunteer",
	Subsystem: "registration",
	Name:      "requests_total",
	Help:      "The total number of register-for-shift calls by outcome",
}, []string{"outcome"})

// announceTimeout bounds the confirmation side effects of a new registration.
var announceTimeout = 5 * time.Second

type registrationService struct {
	regRepo   repository.RegistrationRepository
	shiftRepo repository.ShiftRepository
	orgRepo   repository.OrganizationRepository
	noteRepo  repository.NotificationRepository
	pusher    notify.Pusher
	mailer    notify.Mailer
	mode      string
}

func NewRegistrationService(
	regRepo repository.RegistrationRepository,
	shiftRepo repository.ShiftRepository,
	orgRepo repository.OrganizationRepository,
	noteRepo repository.NotificationRepository,
	pusher notify.Pusher,
	mailer notify.Mailer,
	mode string,
) RegistrationService {
	if mode == "" {
		mode = config.RegistrationModeCheckThenInsert
	}
	return &registrationService{
		regRepo:   regRepo,
		shiftRepo: shiftRepo,
		orgRepo:   orgRepo,
		noteRepo:  noteRepo,
		pusher:    pusher,
		mailer:    mailer,
		mode:      mode,
	}
}

func (s *registrationService) RegisterForShift(ctx context.Context, shiftID, userID int32) (*domain.ShiftRegistration, error) {
	logger.EnterMethod("registrationService.RegisterForShift", "shiftID", shiftID, "userID", userID, "mode", s.mode)

	if shiftID == 0 || userID == 0 {
		err := domain.NewValidationError("shiftId", "Shift ID and User ID are required")
		registrationCounter.WithLabelValues("invalid").Inc()
		logger.ExitMethodWithError("registrationService.RegisterForShift", err)
		return nil, err
	}

	var (
		reg     *domain.ShiftRegistration
		created bool
		err     error
	)
	if s.mode == config.RegistrationModeUpsert {
		reg, created, err = s.regRepo.Upsert(ctx, shiftID, userID, domain.RegistrationStatusConfirmed)
	} else {
		reg, created, err = s.checkThenInsert(ctx, shiftID, userID)
	}
	if err != nil {
		registrationCounter.WithLabelValues("error").Inc()
		logger.ExitMethodWithError("registrationService.RegisterForShift", err, "shiftID", shiftID, "userID", userID)
		return nil, &domain.RegistrationError{ShiftID: shiftID, UserID: userID, Err: err}
	}

	if created {
		registrationCounter.WithLabelValues("created").Inc()
		s.announce(ctx, reg, shiftID, userID)
	} else {
		registrationCounter.WithLabelValues("existing").Inc()
	}

	logger.ExitMethod("registrationService.RegisterForShift", "registrationID", reg.ID, "created", created)
	return reg, nil
}

// checkThenInsert looks for an existing row and inserts only when there is
// none. Two concurrent callers can both see no row and both insert.
func (s *registrationService) checkThenInsert(ctx context.Context, shiftID, userID int32) (*domain.ShiftRegistration, bool, error) {
	existing, err := s.findExisting(ctx, shiftID, userID)
	if err != nil || existing != nil {
		return existing, false, err
	}

	reg := &domain.ShiftRegistration{
		ShiftID: &shiftID,
		UserID:  &userID,
		Status:  domain.RegistrationStatusConfirmed,
	}
	if err := s.regRepo.Create(ctx, reg); err != nil {
		if !errors.Is(err, domain.ErrRegistrationConflict) {
			return nil, false, err
		}
		// A unique index is in place and a concurrent caller won.
		existing, ferr := s.findExisting(ctx, shiftID, userID)
		if ferr != nil {
			return nil, false, ferr
		}
		if existing == nil {
			return nil, false, err
		}
		return existing, false, nil
	}
	return reg, true, nil
}

func (s *registrationService) findExisting(ctx context.Context, shiftID, userID int32) (*domain.ShiftRegistration, error) {
	id, found, err := s.regRepo.FindID(ctx, shiftID, userID)
	if err != nil || !found {
		return nil, err
	}
	return s.regRepo.GetByID(ctx, id)
}

// announce records and delivers the confirmation for a new registration.
// Every step is best-effort and shares one announceTimeout budget, which a
// client disconnect does not cut short.
func (s *registrationService) announce(ctx context.Context, reg *domain.ShiftRegistration, shiftID, userID int32) {
	log := logger.FromContext(ctx)
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), announceTimeout)
	defer cancel()

	shift, err := s.shiftRepo.GetByID(ctx, shiftID)
	if err != nil || shift == nil {
		log.Warn("Skipping registration confirmation", "shiftID", shiftID, "error", err)
		return
	}

	note := &domain.Notification{
		UserID:  userID,
		Type:    domain.NotificationTypeReminder,
		Title:   "Registration Confirmed",
		Message: fmt.Sprintf("You're registered for %s on %s at %s.", shift.Title, shift.Date, shift.StartTime),
		Attributes: map[string]string{
			"registration_id": strconv.Itoa(int(reg.ID)),
			"shift_id":        strconv.Itoa(int(shiftID)),
		},
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		log.Warn("Failed to record registration notification", "registrationID", reg.ID, "error", err)
	}
	if err := s.pusher.Push(ctx, notify.UserTopic(userID), note.Title, note.Message, note.Attributes); err != nil {
		log.Warn("Failed to push registration notification", "registrationID", reg.ID, "error", err)
	}

	if shift.OrganizationID == nil {
		return
	}
	org, err := s.orgRepo.GetByID(ctx, *shift.OrganizationID)
	if err != nil || org == nil || org.ContactEmail == nil || *org.ContactEmail == "" {
		return
	}
	subject := fmt.Sprintf("New volunteer for %s", shift.Title)
	plainText := fmt.Sprintf("A volunteer (user %d) registered for %s on %s, %s-%s.",
		userID, shift.Title, shift.Date, shift.StartTime, shift.EndTime)
	html := fmt.Sprintf(`<p>A volunteer (user %d) registered for <strong>%s</strong> on %s, %s-%s.</p>`,
		userID, shift.Title, shift.Date, shift.StartTime, shift.EndTime)
	if err := s.mailer.Send(ctx, *org.ContactEmail, org.Name, subject, plainText, html); err != nil {
		log.Warn("Failed to email organization", "organizationID", org.ID, "error", err)
	}
}
