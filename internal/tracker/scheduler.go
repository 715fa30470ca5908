package tracker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lazypower/momentum/internal/gateway"
	"github.com/lazypower/momentum/internal/store"
)

// Default loop cadences. Habit and mood reminders poll every minute; goal
// deadline warnings and inactivity decay run hourly.
const (
	DefaultFastInterval = time.Minute
	DefaultSlowInterval = time.Hour
)

// Scheduler owns the three polling loops. Each loop holds only the store and
// gateway handles it needs, runs independently on its cadence, and shuts down
// cooperatively when the context is cancelled. Per-user failures are logged
// and skipped; nothing here is fatal to the process.
type Scheduler struct {
	db       *store.DB
	notifier gateway.Notifier
	log      *log.Logger

	FastInterval time.Duration
	SlowInterval time.Duration

	// now is replaceable in tests.
	now func() time.Time

	wg sync.WaitGroup
}

// New creates a Scheduler with default cadences.
func New(db *store.DB, notifier gateway.Notifier, logger *log.Logger) *Scheduler {
	return &Scheduler{
		db:           db,
		notifier:     notifier,
		log:          logger,
		FastInterval: DefaultFastInterval,
		SlowInterval: DefaultSlowInterval,
		now:          time.Now,
	}
}

// SetNow overrides the scheduler's clock. Tests only.
func (s *Scheduler) SetNow(now func() time.Time) {
	s.now = now
}

// Start launches the habit, mood, and goal loops. They stop when ctx is
// cancelled; Wait blocks until they have drained.
func (s *Scheduler) Start(ctx context.Context) {
	s.loop(ctx, "habits", s.FastInterval, s.HabitTick)
	s.loop(ctx, "moods", s.FastInterval, s.MoodTick)
	s.loop(ctx, "goals", s.SlowInterval, s.GoalTick)
}

// Wait blocks until all loops have exited.
func (s *Scheduler) Wait() {
	s.wg.Wait()
}

func (s *Scheduler) loop(ctx context.Context, name string, interval time.Duration, tick func(context.Context) error) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				s.log.Info("loop stopped", "loop", name)
				return
			case <-ticker.C:
				if err := tick(ctx); err != nil {
					s.log.Error("tick failed", "loop", name, "err", err)
				}
			}
		}
	}()
}

// HabitTick runs one pass of the fast habit-reminder loop: every habit with a
// reminder time is checked against its owner's local clock, and due habits
// get a DM. A due habit keeps re-notifying each tick until the user logs it.
func (s *Scheduler) HabitTick(ctx context.Context) error {
	now := s.now().UTC()

	cands, err := s.db.ListHabitReminderCandidates()
	if err != nil {
		return fmt.Errorf("list habit candidates: %w", err)
	}

	for _, c := range cands {
		local, err := Localize(now, c.Timezone)
		if err != nil {
			s.log.Warn("skipping user for tick", "loop", "habits", "user", c.UserID, "err", err)
			continue
		}
		today := local.Format(DateLayout)

		logged, err := s.db.HasHabitLog(c.ID, today)
		if err != nil {
			s.log.Warn("habit log check failed", "user", c.UserID, "habit", c.Name, "err", err)
			continue
		}

		state, err := EvaluateHabit(c.ReminderTime, logged, local)
		if err != nil {
			s.log.Warn("habit evaluation failed", "user", c.UserID, "habit", c.Name, "err", err)
			continue
		}
		if state != HabitDue {
			continue
		}

		text := fmt.Sprintf("Reminder: log your habit %q for today!", c.Name)
		if outcome, err := s.notifier.Notify(ctx, c.UserID, text); outcome != gateway.Delivered {
			s.log.Warn("habit reminder not delivered",
				"user", c.UserID, "habit", c.Name, "outcome", outcome, "err", err)
		}
	}
	return nil
}

// MoodTick runs one pass of the fast mood-reminder loop: exact-minute match
// between each user's configured time and their local clock.
func (s *Scheduler) MoodTick(ctx context.Context) error {
	now := s.now().UTC()

	profiles, err := s.db.ListMoodReminderProfiles()
	if err != nil {
		return fmt.Errorf("list mood reminder profiles: %w", err)
	}

	for _, p := range profiles {
		local, err := Localize(now, p.Timezone)
		if err != nil {
			s.log.Warn("skipping user for tick", "loop", "moods", "user", p.UserID, "err", err)
			continue
		}

		if !MoodDue(p.MoodReminderTime, local) {
			continue
		}

		if outcome, err := s.notifier.Notify(ctx, p.UserID, "Don't forget to log your mood for today!"); outcome != gateway.Delivered {
			s.log.Warn("mood reminder not delivered",
				"user", p.UserID, "outcome", outcome, "err", err)
		}
	}
	return nil
}

// GoalTick runs one pass of the slow goal loop. For each user with goals it
// evaluates every goal in one pass — deadline warnings and inactivity decay —
// then persists the whole result as a single batched write, so a tick never
// leaves a half-updated record behind.
func (s *Scheduler) GoalTick(ctx context.Context) error {
	now := s.now().UTC()

	userIDs, err := s.db.ListGoalUserIDs()
	if err != nil {
		return fmt.Errorf("list goal users: %w", err)
	}

	for _, userID := range userIDs {
		zone := ""
		profile, err := s.db.GetProfile(userID)
		if err != nil {
			s.log.Warn("profile lookup failed", "loop", "goals", "user", userID, "err", err)
			continue
		}
		if profile != nil {
			zone = profile.Timezone
		}

		local, err := Localize(now, zone)
		if err != nil {
			s.log.Warn("skipping user for tick", "loop", "goals", "user", userID, "err", err)
			continue
		}
		today := local.Format(DateLayout)

		goals, err := s.db.ListGoals(userID)
		if err != nil {
			s.log.Warn("goal listing failed", "user", userID, "err", err)
			continue
		}

		var remindedIDs []string
		decay := 0
		for _, g := range goals {
			// Completed goals neither warn nor decay.
			if g.Completed {
				continue
			}

			due, err := DeadlineDue(g.Deadline, g.Reminded, today)
			if err != nil {
				s.log.Warn("deadline evaluation failed", "user", userID, "goal", g.Name, "err", err)
			} else if due {
				text := fmt.Sprintf("Reminder: your goal %q has a deadline on %s!", g.Name, g.Deadline)
				outcome, err := s.notifier.Notify(ctx, userID, text)
				if outcome != gateway.Delivered {
					s.log.Warn("deadline warning not delivered",
						"user", userID, "goal", g.Name, "outcome", outcome, "err", err)
				}
				// The flag fires once per deadline regardless of
				// delivery outcome.
				remindedIDs = append(remindedIDs, g.ID)
			}

			hit, err := DecayApplies(g.LastUpdateDate, today)
			if err != nil {
				s.log.Warn("decay evaluation failed", "user", userID, "goal", g.Name, "err", err)
			} else if hit {
				decay++
			}
		}

		if err := s.db.ApplyGoalTick(userID, remindedIDs, decay); err != nil {
			// The state stays due and is re-evaluated next tick.
			s.log.Warn("goal tick write failed", "user", userID, "err", err)
		}
	}
	return nil
}
