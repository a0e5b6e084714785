// Package focus runs per-user focus and pomodoro timers.
//
// Each user has at most one live session. A timer callback only acts after it
// has removed (or, for intermediate pomodoro phases, claimed) its own session
// record under the scheduler lock, compared by pointer. Stop removes the same
// record, so whichever side wins the lock decides the outcome and the loser
// becomes a no-op.
package focus

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/afterclass/commitgoblin/goblin/config"
	"github.com/afterclass/commitgoblin/goblin/economy/rewards"
	"github.com/afterclass/commitgoblin/goblin/errs"
	"github.com/afterclass/commitgoblin/goblin/logger"
	"github.com/afterclass/commitgoblin/goblin/metrics"
	"github.com/disgoorg/snowflake/v2"
)

//go:generate go run go.uber.org/mock/mockgen -destination=mock/scheduler.go -package=mock . Notifier,Granter

// Notifier posts a message to a channel. It reports delivery and never fails
// loudly.
type Notifier interface {
	Send(ctx context.Context, channelID snowflake.ID, text string) bool
}

// Granter evaluates the reward for one completed work interval.
type Granter interface {
	Grant(ctx context.Context, userID string, minutes int) (rewards.Grant, error)
}

// Timer is a pending callback that can be cancelled.
type Timer interface {
	Stop() bool
}

// AfterFunc arms f to run once after d on its own goroutine.
type AfterFunc func(d time.Duration, f func()) Timer

func realAfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

type Kind string

const (
	KindFocus    Kind = "focus"
	KindPomodoro Kind = "pomodoro"
)

// ActiveSession is a read-only view of a running session.
type ActiveSession struct {
	UserID    snowflake.ID
	GuildID   snowflake.ID
	ChannelID snowflake.ID
	Kind      Kind
	StartedAt time.Time
}

type session struct {
	ActiveSession

	timer Timer

	focusMinutes int

	workMinutes  int
	breakMinutes int
	rounds       int
	phase        int
}

func (s *session) totalPhases() int {
	return s.rounds*2 - 1
}

type Scheduler struct {
	mu       sync.Mutex
	sessions map[snowflake.ID]*session

	rewards   Granter
	notifier  Notifier
	afterFunc AfterFunc
	now       func() time.Time
}

type Option func(*Scheduler)

// WithAfterFunc replaces time.AfterFunc.
func WithAfterFunc(f AfterFunc) Option {
	return func(s *Scheduler) { s.afterFunc = f }
}

func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) { s.now = now }
}

func NewScheduler(granter Granter, notifier Notifier, opts ...Option) *Scheduler {
	s := &Scheduler{
		sessions:  make(map[snowflake.ID]*session),
		rewards:   granter,
		notifier:  notifier,
		afterFunc: realAfterFunc,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var errAlreadyActive = errs.New(errs.CodeAlreadyActive,
	"You already have an active focus or Pomodoro session. Use /focus-stop to end it first.")

// StartFocus arms a single focus timer. minutes must already be bounds-checked.
func (s *Scheduler) StartFocus(userID, guildID, channelID snowflake.ID, minutes int) error {
	sess := &session{
		ActiveSession: ActiveSession{
			UserID:    userID,
			GuildID:   guildID,
			ChannelID: channelID,
			Kind:      KindFocus,
			StartedAt: s.now(),
		},
		focusMinutes: minutes,
	}

	s.mu.Lock()
	if _, ok := s.sessions[userID]; ok {
		s.mu.Unlock()
		return errAlreadyActive
	}
	sess.timer = s.afterFunc(minutesDuration(minutes), func() { s.finishFocus(sess) })
	s.sessions[userID] = sess
	s.mu.Unlock()

	metrics.SessionStarted(string(KindFocus))
	logger.LogFocus("Focus session started",
		slog.String("user_id", userID.String()),
		slog.Int("minutes", minutes),
	)
	return nil
}

// StartPomodoro arms the first work phase and announces it. Durations and
// rounds must already be bounds-checked.
func (s *Scheduler) StartPomodoro(ctx context.Context, userID, guildID, channelID snowflake.ID, workMinutes, breakMinutes, rounds int) error {
	sess := &session{
		ActiveSession: ActiveSession{
			UserID:    userID,
			GuildID:   guildID,
			ChannelID: channelID,
			Kind:      KindPomodoro,
			StartedAt: s.now(),
		},
		workMinutes:  workMinutes,
		breakMinutes: breakMinutes,
		rounds:       rounds,
	}

	s.mu.Lock()
	if _, ok := s.sessions[userID]; ok {
		s.mu.Unlock()
		return errAlreadyActive
	}
	s.armPhaseLocked(sess)
	s.sessions[userID] = sess
	s.mu.Unlock()

	metrics.SessionStarted(string(KindPomodoro))
	logger.LogFocus("Pomodoro session started",
		slog.String("user_id", userID.String()),
		slog.Int("work_minutes", workMinutes),
		slog.Int("break_minutes", breakMinutes),
		slog.Int("rounds", rounds),
	)

	s.send(ctx, sess, phaseStartMessage(sess, 0))
	return nil
}

// Stop cancels the user's session. It returns false if none was running.
func (s *Scheduler) Stop(userID snowflake.ID) bool {
	s.mu.Lock()
	sess, ok := s.sessions[userID]
	if !ok {
		s.mu.Unlock()
		return false
	}
	delete(s.sessions, userID)
	if sess.timer != nil {
		sess.timer.Stop()
		sess.timer = nil
	}
	s.mu.Unlock()

	metrics.SessionEnded(string(sess.Kind))
	logger.LogFocus("Session stopped",
		slog.String("user_id", userID.String()),
		slog.String("kind", string(sess.Kind)),
	)
	return true
}

func (s *Scheduler) HasActive(userID snowflake.ID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.sessions[userID]
	return ok
}

// ListActive returns the sessions running in guildID, oldest first.
func (s *Scheduler) ListActive(guildID snowflake.ID) []ActiveSession {
	s.mu.Lock()
	out := make([]ActiveSession, 0, len(s.sessions))
	for _, sess := range s.sessions {
		if sess.GuildID == guildID {
			out = append(out, sess.ActiveSession)
		}
	}
	s.mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartedAt.Equal(out[j].StartedAt) {
			return out[i].StartedAt.Before(out[j].StartedAt)
		}
		return out[i].UserID < out[j].UserID
	})
	return out
}

// Shutdown cancels every pending timer and forgets all sessions.
func (s *Scheduler) Shutdown() {
	s.mu.Lock()
	stopped := len(s.sessions)
	for id, sess := range s.sessions {
		if sess.timer != nil {
			sess.timer.Stop()
		}
		metrics.SessionEnded(string(sess.Kind))
		delete(s.sessions, id)
	}
	s.mu.Unlock()

	logger.LogSystem("Focus scheduler shutdown completed", slog.Int("stopped_sessions", stopped))
}

func (s *Scheduler) finishFocus(sess *session) {
	if !s.remove(sess) {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), config.TimerCallbackTimeout)
	defer cancel()

	grant, err := s.rewards.Grant(ctx, sess.UserID.String(), sess.focusMinutes)
	if err != nil {
		logger.LogError("Failed to grant focus reward", err, slog.String("user_id", sess.UserID.String()))
	}
	metrics.RecordFocusInterval(string(KindFocus), string(grant.Reason))

	s.send(ctx, sess, focusEndMessage(sess, grant, err))
}

// onPhaseEnd runs when the timer for phase fires.
func (s *Scheduler) onPhaseEnd(sess *session, phase int) {
	s.mu.Lock()
	if s.sessions[sess.UserID] != sess || sess.phase != phase {
		s.mu.Unlock()
		return
	}
	last := phase == sess.totalPhases()-1
	if last {
		delete(s.sessions, sess.UserID)
	}
	sess.phase++
	sess.timer = nil
	s.mu.Unlock()

	if last {
		metrics.SessionEnded(string(KindPomodoro))
	}

	ctx, cancel := context.WithTimeout(context.Background(), config.TimerCallbackTimeout)
	defer cancel()

	if isWorkPhase(phase) {
		grant, err := s.rewards.Grant(ctx, sess.UserID.String(), sess.workMinutes)
		if err != nil {
			logger.LogError("Failed to grant pomodoro reward", err, slog.String("user_id", sess.UserID.String()))
		}
		metrics.RecordFocusInterval(string(KindPomodoro), string(grant.Reason))
		s.send(ctx, sess, workEndMessage(sess, phase, grant, err))
	} else {
		s.send(ctx, sess, breakEndMessage(sess))
	}

	if last {
		s.send(ctx, sess, pomodoroCompleteMessage(sess))
		logger.LogFocus("Pomodoro session completed", slog.String("user_id", sess.UserID.String()))
		return
	}

	// The phase-end send may have let a Stop in.
	s.mu.Lock()
	if s.sessions[sess.UserID] != sess {
		s.mu.Unlock()
		return
	}
	next := sess.phase
	s.armPhaseLocked(sess)
	s.mu.Unlock()

	s.send(ctx, sess, phaseStartMessage(sess, next))
}

// armPhaseLocked arms the timer for sess.phase. s.mu must be held.
func (s *Scheduler) armPhaseLocked(sess *session) {
	phase := sess.phase
	minutes := sess.breakMinutes
	if isWorkPhase(phase) {
		minutes = sess.workMinutes
	}
	sess.timer = s.afterFunc(minutesDuration(minutes), func() { s.onPhaseEnd(sess, phase) })
}

// remove deletes sess if it is still the registered session for its user.
func (s *Scheduler) remove(sess *session) bool {
	s.mu.Lock()
	if s.sessions[sess.UserID] != sess {
		s.mu.Unlock()
		return false
	}
	delete(s.sessions, sess.UserID)
	sess.timer = nil
	s.mu.Unlock()

	metrics.SessionEnded(string(sess.Kind))
	return true
}

// send posts text without a deadline. Under a burst of completions the
// notifier's rate limiter may queue a message for longer than any callback
// budget, and a late message beats a dropped one.
func (s *Scheduler) send(ctx context.Context, sess *session, text string) {
	if !s.notifier.Send(context.WithoutCancel(ctx), sess.ChannelID, text) {
		slog.Warn("Focus message could not be delivered",
			slog.String("type", "focus"),
			slog.String("user_id", sess.UserID.String()),
			slog.String("channel_id", sess.ChannelID.String()),
		)
	}
}

func isWorkPhase(phase int) bool {
	return phase%2 == 0
}

func minutesDuration(minutes int) time.Duration {
	return time.Duration(minutes) * time.Minute
}
