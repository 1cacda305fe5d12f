package dialog

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"bookline/database/repository/bookings"
	"bookline/models"
	"bookline/services/notification"
	"bookline/services/session"
	"bookline/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// selectableDateCount is how many upcoming dates the date menu offers.
const selectableDateCount = 5

// Service turns one inbound text message into a reply, advancing the
// sender's dialogue session as a side effect.
type Service interface {
	HandleMessage(ctx context.Context, sender, body string) (string, error)
}

type stepHandler func(ctx context.Context, sess *models.Session, input string) (string, error)

// DefaultDialogService implements the booking dialogue as an enum-keyed
// transition table: one handler per step, each validating its input,
// mutating the session, and producing the next prompt.
type DefaultDialogService struct {
	sessions session.Store
	bookings bookings.Repository
	notifier notification.Service

	// now is the clock the date menu is generated from; injectable for
	// deterministic tests.
	now func() time.Time

	steps map[models.Step]stepHandler
	locks senderLocks
}

func NewDialogService(sessions session.Store, repo bookings.Repository, notifier notification.Service) *DefaultDialogService {
	s := &DefaultDialogService{
		sessions: sessions,
		bookings: repo,
		notifier: notifier,
		now:      time.Now,
	}
	s.steps = map[models.Step]stepHandler{
		models.StepWelcome: s.handleWelcome,
		models.StepCity:    s.handleCity,
		models.StepDate:    s.handleDate,
		models.StepTime:    s.handleTime,
		models.StepName:    s.handleName,
		models.StepEmail:   s.handleEmail,
		models.StepComment: s.handleComment,
	}
	return s
}

func (s *DefaultDialogService) HandleMessage(ctx context.Context, sender, body string) (string, error) {
	unlock := s.locks.lock(sender)
	defer unlock()

	input := strings.TrimSpace(body)

	sess, err := s.sessions.GetOrCreate(ctx, sender)
	if err != nil {
		return "", fmt.Errorf("load session: %w", err)
	}

	// "restart" wins over every step; the reset session then falls through
	// to the welcome handler, which consumes the message and shows the
	// city menu.
	if strings.EqualFold(input, "restart") {
		if sess, err = s.sessions.Reset(ctx, sender); err != nil {
			return "", fmt.Errorf("reset session: %w", err)
		}
	}

	handler, ok := s.steps[sess.Step]
	if !ok {
		// A step this build doesn't know can only come from a session
		// serialized by an older build. Start the dialogue over.
		utils.GetLogger().Warn("Unknown dialogue step, restarting session",
			zap.String("sender", sender), zap.String("step", string(sess.Step)))
		if sess, err = s.sessions.Reset(ctx, sender); err != nil {
			return "", fmt.Errorf("reset session: %w", err)
		}
		handler = s.handleWelcome
	}

	return handler(ctx, sess, input)
}

// menuSelection parses input as a 1-based menu index and reports whether it
// lands in [1, max].
func menuSelection(input string, max int) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || n < 1 || n > max {
		return 0, false
	}
	return n, true
}

func (s *DefaultDialogService) handleWelcome(ctx context.Context, sess *models.Session, _ string) (string, error) {
	// The opening message is discarded whatever it says; it only starts
	// the dialogue.
	sess.Step = models.StepCity
	if err := s.sessions.Save(ctx, sess); err != nil {
		return "", fmt.Errorf("save session: %w", err)
	}
	return cityMenuReply(), nil
}

func (s *DefaultDialogService) handleCity(ctx context.Context, sess *models.Session, input string) (string, error) {
	idx, ok := menuSelection(input, len(Cities()))
	if !ok {
		return invalidCityReply, nil
	}
	sess.City = Cities()[idx-1]
	sess.Step = models.StepDate
	if err := s.sessions.Save(ctx, sess); err != nil {
		return "", fmt.Errorf("save session: %w", err)
	}
	return dateMenuReply(NextSelectableDates(s.now(), selectableDateCount)), nil
}

func (s *DefaultDialogService) handleDate(ctx context.Context, sess *models.Session, input string) (string, error) {
	// Recomputed fresh at input time, not cached from when the menu was
	// shown; around midnight the menu may have shifted by a day.
	dates := NextSelectableDates(s.now(), selectableDateCount)
	idx, ok := menuSelection(input, len(dates))
	if !ok {
		return invalidDateReply, nil
	}
	sess.Date = dates[idx-1]
	sess.Step = models.StepTime
	if err := s.sessions.Save(ctx, sess); err != nil {
		return "", fmt.Errorf("save session: %w", err)
	}
	return timeMenuReply(), nil
}

func (s *DefaultDialogService) handleTime(ctx context.Context, sess *models.Session, input string) (string, error) {
	idx, ok := menuSelection(input, len(TimeSlots()))
	if !ok {
		return invalidTimeReply, nil
	}
	selected := TimeSlots()[idx-1]

	booked, err := s.bookings.ListBookedTimes(ctx, sess.City, sess.Date)
	if err != nil {
		return "", fmt.Errorf("check availability: %w", err)
	}
	if slices.Contains(booked, selected) {
		return timeBookedReply, nil
	}

	sess.Time = selected
	sess.Step = models.StepName
	if err := s.sessions.Save(ctx, sess); err != nil {
		return "", fmt.Errorf("save session: %w", err)
	}
	return namePrompt, nil
}

func (s *DefaultDialogService) handleName(ctx context.Context, sess *models.Session, input string) (string, error) {
	if input == "" {
		return namePrompt, nil
	}
	sess.Name = input
	sess.Step = models.StepEmail
	if err := s.sessions.Save(ctx, sess); err != nil {
		return "", fmt.Errorf("save session: %w", err)
	}
	return emailPrompt, nil
}

func (s *DefaultDialogService) handleEmail(ctx context.Context, sess *models.Session, input string) (string, error) {
	sess.Email = input
	sess.Step = models.StepComment
	if err := s.sessions.Save(ctx, sess); err != nil {
		return "", fmt.Errorf("save session: %w", err)
	}
	return commentPrompt, nil
}

// handleComment closes the dialogue: it normalizes the comment, re-checks
// slot availability, appends the booking, sends the confirmation e-mail,
// and drops the session. Any adapter failure returns before the stored
// session is touched, so the user can resend the comment and retry.
func (s *DefaultDialogService) handleComment(ctx context.Context, sess *models.Session, input string) (string, error) {
	comment := input
	if strings.EqualFold(comment, "no") {
		comment = ""
	}

	booking := models.Booking{
		ID:        uuid.New().String(),
		Name:      sess.Name,
		Email:     sess.Email,
		City:      sess.City,
		Date:      sess.Date,
		Time:      sess.Time,
		Comment:   comment,
		CreatedAt: s.now().UTC(),
	}

	// The availability check at the time step happened several messages
	// ago; another sender may have committed the slot in between. Re-check
	// right before the write so a lost race re-prompts instead of
	// double-booking.
	booked, err := s.bookings.ListBookedTimes(ctx, sess.City, sess.Date)
	if err != nil {
		return "", fmt.Errorf("re-check availability: %w", err)
	}
	if slices.Contains(booked, sess.Time) {
		return s.rejectTakenSlot(ctx, sess)
	}

	if err := s.bookings.Append(ctx, booking); err != nil {
		if errors.Is(err, bookings.ErrSlotTaken) {
			return s.rejectTakenSlot(ctx, sess)
		}
		return "", fmt.Errorf("append booking: %w", err)
	}

	if err := s.notifier.SendBookingConfirmation(ctx, booking); err != nil {
		return "", fmt.Errorf("send confirmation: %w", err)
	}

	if err := s.sessions.Delete(ctx, sess.Sender); err != nil {
		// The booking is committed and the mail is out; a leftover session
		// only costs memory until eviction.
		utils.GetLogger().Warn("Failed to delete completed session",
			zap.String("sender", sess.Sender), zap.Error(err))
	}

	return confirmationReply(booking), nil
}

// rejectTakenSlot sends the session back to the time step after a lost
// booking race.
func (s *DefaultDialogService) rejectTakenSlot(ctx context.Context, sess *models.Session) (string, error) {
	sess.Time = ""
	sess.Step = models.StepTime
	if err := s.sessions.Save(ctx, sess); err != nil {
		return "", fmt.Errorf("save session: %w", err)
	}
	return slotRacedReply(), nil
}
