package server

import (
	"fmt"
	"strings"
	"time"

	"github.com/lazypower/momentum/internal/tracker"
)

const menuText = `Here are the commands currently available:

/menu - this menu
/createprofile [zone] - create your profile, optionally with a timezone
/settimezone <zone> - set your IANA timezone (e.g. US/Pacific)
/viewprofile - view your profile

/addhabit <name> [HH:MM] - track a habit, optional daily reminder
/loghabit <name> - log a habit for today
/viewhabits - list your habits
/clearhabits - remove all habits

/creategoal <name> [YYYY-MM-DD] - track a goal, optional deadline
/loggoal <name> - log progress for today (+5 points)
/completegoal <name> - mark a goal completed
/viewgoals - list your goals
/deletegoal <name> - delete one goal
/cleargoals - remove completed goals
/points - view your points

/logmood <mood> - log your mood
/viewmoods - list logged moods
/setmoodreminder <HH:MM> - daily mood reminder
/stopmoodreminder - disable the mood reminder`

// dispatch parses one chat message and runs the matching command handler.
// The return value is the reply text; empty means no reply.
func (s *Server) dispatch(userID int64, username, text string) string {
	fields := strings.Fields(text)
	if len(fields) == 0 || !strings.HasPrefix(fields[0], "/") {
		return ""
	}

	// Telegram appends @botname in group chats.
	cmd := strings.ToLower(strings.SplitN(fields[0], "@", 2)[0])
	args := fields[1:]

	// Every command path runs against an existing profile row; users who
	// never ran /createprofile get one implicitly, with UTC resolution
	// until they set a timezone.
	profile, err := s.db.EnsureProfile(userID, username)
	if err != nil {
		s.log.Error("ensure profile failed", "user", userID, "err", err)
		return "Something went wrong. Please try again."
	}

	switch cmd {
	case "/start", "/menu", "/help":
		return menuText

	case "/createprofile":
		if profile.Timezone != "" {
			return fmt.Sprintf("You already have a profile:\n- Username: %s\n- Timezone: %s",
				profile.Username, profile.Timezone)
		}
		if len(args) == 0 {
			return fmt.Sprintf("Your profile has been created with the username %s.\n"+
				"Set your timezone with /settimezone <zone> (e.g. /settimezone US/Pacific).", profile.Username)
		}
		return s.cmdSetTimezone(userID, args[0])

	case "/settimezone":
		if len(args) != 1 {
			return "Usage: /settimezone <zone> (e.g. /settimezone US/Pacific)"
		}
		return s.cmdSetTimezone(userID, args[0])

	case "/viewprofile":
		zone := profile.Timezone
		if zone == "" {
			zone = "No timezone set (using UTC)."
		}
		return fmt.Sprintf("Your Profile\n- Username: %s\n- Timezone: %s\n- Points: %d",
			profile.Username, zone, profile.Points)

	case "/addhabit":
		return s.cmdAddHabit(userID, args)
	case "/loghabit":
		return s.cmdLogHabit(userID, profile.Timezone, args)
	case "/viewhabits":
		return s.cmdViewHabits(userID)
	case "/clearhabits":
		return s.cmdClearHabits(userID)

	case "/creategoal":
		return s.cmdCreateGoal(userID, args)
	case "/loggoal":
		return s.cmdLogGoal(userID, profile.Timezone, args)
	case "/completegoal":
		return s.cmdCompleteGoal(userID, args)
	case "/viewgoals":
		return s.cmdViewGoals(userID)
	case "/deletegoal":
		return s.cmdDeleteGoal(userID, args)
	case "/cleargoals":
		return s.cmdClearGoals(userID)
	case "/points":
		return fmt.Sprintf("You currently have %d points. Keep up the great work!", profile.Points)

	case "/logmood":
		return s.cmdLogMood(userID, profile.Timezone, args)
	case "/viewmoods":
		return s.cmdViewMoods(userID)
	case "/setmoodreminder":
		return s.cmdSetMoodReminder(userID, args)
	case "/stopmoodreminder":
		return s.cmdStopMoodReminder(userID)
	}

	return "Unknown command. Try /menu."
}

func (s *Server) cmdSetTimezone(userID int64, zone string) string {
	if !tracker.ValidZone(zone) {
		return fmt.Sprintf("Unknown timezone %q. Use an IANA zone name like US/Pacific or Europe/Berlin.", zone)
	}
	if err := s.db.SetTimezone(userID, zone); err != nil {
		s.log.Error("set timezone failed", "user", userID, "err", err)
		return "Something went wrong. Please try again."
	}
	return fmt.Sprintf("Your timezone has been set to %s.", zone)
}

// localToday resolves the user's current local date. Stored zones are
// validated at write time, so a resolution failure here is unexpected.
func (s *Server) localToday(userID int64, zone string) (string, bool) {
	local, err := tracker.Localize(time.Now().UTC(), zone)
	if err != nil {
		s.log.Error("timezone resolution failed", "user", userID, "zone", zone, "err", err)
		return "", false
	}
	return local.Format(tracker.DateLayout), true
}

// trailingArg splits off a trailing token matching the given layout, so
// multi-word names like "read a book 21:00" parse cleanly.
func trailingArg(args []string, layout string) (name, value string) {
	if len(args) > 1 {
		last := args[len(args)-1]
		if _, err := time.Parse(layout, last); err == nil {
			return strings.Join(args[:len(args)-1], " "), last
		}
	}
	return strings.Join(args, " "), ""
}

func (s *Server) cmdAddHabit(userID int64, args []string) string {
	if len(args) == 0 {
		return "Usage: /addhabit <name> [HH:MM]"
	}
	name, reminder := trailingArg(args, tracker.ClockLayout)

	// A last token that looks like a time attempt but doesn't parse is a
	// validation error, not part of the name.
	last := args[len(args)-1]
	if reminder == "" && len(args) > 1 && strings.Contains(last, ":") {
		return "Invalid reminder time format. Use HH:MM (24-hour clock)."
	}

	existing, err := s.db.GetHabitByName(userID, name)
	if err != nil {
		s.log.Error("habit lookup failed", "user", userID, "err", err)
		return "An error occurred while saving your habit. Please try again."
	}
	if existing != nil {
		return fmt.Sprintf("You already track a habit named %q.", name)
	}

	if _, err := s.db.AddHabit(userID, name, reminder); err != nil {
		s.log.Error("add habit failed", "user", userID, "err", err)
		return "An error occurred while saving your habit. Please try again."
	}
	if reminder != "" {
		return fmt.Sprintf("Habit %q added with reminder at %s.", name, reminder)
	}
	return fmt.Sprintf("Habit %q added without a reminder.", name)
}

func (s *Server) cmdLogHabit(userID int64, zone string, args []string) string {
	if len(args) == 0 {
		return "Usage: /loghabit <name>"
	}
	name := strings.Join(args, " ")

	habit, err := s.db.GetHabitByName(userID, name)
	if err != nil {
		s.log.Error("habit lookup failed", "user", userID, "err", err)
		return "Something went wrong. Please try again."
	}
	if habit == nil {
		return fmt.Sprintf("You don't track a habit named %q. See /viewhabits.", name)
	}

	today, ok := s.localToday(userID, zone)
	if !ok {
		return "Something went wrong. Please try again."
	}

	logged, err := s.db.LogHabit(habit.ID, today)
	if err != nil {
		s.log.Error("log habit failed", "user", userID, "err", err)
		return "Something went wrong. Please try again."
	}
	if !logged {
		return fmt.Sprintf("Habit %q already logged today.", name)
	}
	return fmt.Sprintf("Habit %q logged for today.", name)
}

func (s *Server) cmdViewHabits(userID int64) string {
	habits, err := s.db.ListHabits(userID)
	if err != nil {
		s.log.Error("list habits failed", "user", userID, "err", err)
		return "Something went wrong. Please try again."
	}
	if len(habits) == 0 {
		return "You don't have any tracked habits."
	}

	var b strings.Builder
	b.WriteString("Your Habits:\n")
	for _, h := range habits {
		reminder := h.ReminderTime
		if reminder == "" {
			reminder = "No reminder"
		}
		fmt.Fprintf(&b, "- %s | Reminder: %s | Days logged: %d\n", h.Name, reminder, h.LogCount)
	}
	return strings.TrimRight(b.String(), "\n")
}

func (s *Server) cmdClearHabits(userID int64) string {
	n, err := s.db.ClearHabits(userID)
	if err != nil {
		s.log.Error("clear habits failed", "user", userID, "err", err)
		return "An error occurred while clearing your habits."
	}
	if n == 0 {
		return "You don't have any tracked habits to clear."
	}
	return "All your tracked habits have been cleared."
}

func (s *Server) cmdCreateGoal(userID int64, args []string) string {
	if len(args) == 0 {
		return "Usage: /creategoal <name> [YYYY-MM-DD]"
	}
	name, deadline := trailingArg(args, tracker.DateLayout)

	last := args[len(args)-1]
	if deadline == "" && len(args) > 1 && strings.Count(last, "-") == 2 {
		return "Invalid deadline format. Use YYYY-MM-DD."
	}

	existing, err := s.db.GetGoalByName(userID, name)
	if err != nil {
		s.log.Error("goal lookup failed", "user", userID, "err", err)
		return "An error occurred while saving your goal. Please try again."
	}
	if existing != nil {
		return fmt.Sprintf("You already track a goal named %q.", name)
	}

	if _, err := s.db.AddGoal(userID, name, deadline); err != nil {
		s.log.Error("add goal failed", "user", userID, "err", err)
		return "An error occurred while saving your goal. Please try again."
	}
	if deadline != "" {
		return fmt.Sprintf("Goal %q added with a deadline on %s.", name, deadline)
	}
	return fmt.Sprintf("Goal %q added without a deadline.", name)
}

func (s *Server) cmdLogGoal(userID int64, zone string, args []string) string {
	if len(args) == 0 {
		return "Usage: /loggoal <name>"
	}
	name := strings.Join(args, " ")

	goal, err := s.db.GetGoalByName(userID, name)
	if err != nil {
		s.log.Error("goal lookup failed", "user", userID, "err", err)
		return "Something went wrong. Please try again."
	}
	if goal == nil {
		return fmt.Sprintf("You don't track a goal named %q. See /viewgoals.", name)
	}

	today, ok := s.localToday(userID, zone)
	if !ok {
		return "Something went wrong. Please try again."
	}

	awarded, points, err := s.db.LogGoalProgress(goal.ID, userID, today)
	if err != nil {
		s.log.Error("log goal progress failed", "user", userID, "err", err)
		return "Something went wrong. Please try again."
	}
	if !awarded {
		return fmt.Sprintf("Progress for goal %q already logged today.", name)
	}
	return fmt.Sprintf("Progress for goal %q logged for today. You earned 5 points!\nYour total points: %d", name, points)
}

func (s *Server) cmdCompleteGoal(userID int64, args []string) string {
	if len(args) == 0 {
		return "Usage: /completegoal <name>"
	}
	name := strings.Join(args, " ")

	done, err := s.db.CompleteGoal(userID, name)
	if err != nil {
		s.log.Error("complete goal failed", "user", userID, "err", err)
		return "Something went wrong. Please try again."
	}
	if !done {
		return fmt.Sprintf("Goal %q not found.", name)
	}
	return fmt.Sprintf("Goal %q marked as completed. Clear it with /cleargoals.", name)
}

func (s *Server) cmdViewGoals(userID int64) string {
	goals, err := s.db.ListGoals(userID)
	if err != nil {
		s.log.Error("list goals failed", "user", userID, "err", err)
		return "Something went wrong. Please try again."
	}
	if len(goals) == 0 {
		return "You don't have any tracked goals."
	}

	var b strings.Builder
	b.WriteString("Your Goals:\n")
	for _, g := range goals {
		deadline := g.Deadline
		if deadline == "" {
			deadline = "No deadline"
		}
		status := "in progress"
		if g.Completed {
			status = "completed"
		}
		fmt.Fprintf(&b, "- %s | Deadline: %s | Progress days: %d | %s\n",
			g.Name, deadline, g.ProgressCount, status)
	}

	points, err := s.db.Points(userID)
	if err == nil {
		fmt.Fprintf(&b, "Your Points: %d", points)
	}
	return strings.TrimRight(b.String(), "\n")
}

func (s *Server) cmdDeleteGoal(userID int64, args []string) string {
	if len(args) == 0 {
		return "Usage: /deletegoal <name>"
	}
	name := strings.Join(args, " ")

	deleted, err := s.db.DeleteGoal(userID, name)
	if err != nil {
		s.log.Error("delete goal failed", "user", userID, "err", err)
		return "An error occurred while deleting your goal."
	}
	if !deleted {
		return fmt.Sprintf("Goal %q not found.", name)
	}
	return fmt.Sprintf("Goal %q has been deleted.", name)
}

func (s *Server) cmdClearGoals(userID int64) string {
	n, err := s.db.ClearCompletedGoals(userID)
	if err != nil {
		s.log.Error("clear goals failed", "user", userID, "err", err)
		return "An error occurred while clearing your goals."
	}
	if n == 0 {
		return "You don't have any completed goals to clear."
	}
	return "All completed goals have been cleared."
}

func (s *Server) cmdLogMood(userID int64, zone string, args []string) string {
	if len(args) == 0 {
		return "Usage: /logmood <mood>"
	}
	mood := strings.Join(args, " ")

	local, err := tracker.Localize(time.Now().UTC(), zone)
	if err != nil {
		s.log.Error("timezone resolution failed", "user", userID, "zone", zone, "err", err)
		return "Something went wrong. Please try again."
	}
	loggedAt := local.Format("2006-01-02 15:04:05")

	if err := s.db.LogMood(userID, mood, loggedAt); err != nil {
		s.log.Error("log mood failed", "user", userID, "err", err)
		return "Something went wrong. Please try again."
	}

	zoneLabel := zone
	if zoneLabel == "" {
		zoneLabel = "UTC"
	}
	return fmt.Sprintf("Your mood %q has been logged at %s (%s).", mood, loggedAt, zoneLabel)
}

func (s *Server) cmdViewMoods(userID int64) string {
	moods, err := s.db.ListMoods(userID)
	if err != nil {
		s.log.Error("list moods failed", "user", userID, "err", err)
		return "Failed to retrieve your moods. Please try again later."
	}
	if len(moods) == 0 {
		return "You haven't logged any moods yet."
	}

	var b strings.Builder
	b.WriteString("Your logged moods:\n")
	for _, m := range moods {
		fmt.Fprintf(&b, "- %s (logged at %s)\n", m.Mood, m.LoggedAt)
	}
	return strings.TrimRight(b.String(), "\n")
}

func (s *Server) cmdSetMoodReminder(userID int64, args []string) string {
	if len(args) != 1 {
		return "Usage: /setmoodreminder <HH:MM> (24-hour clock)"
	}
	if _, err := time.Parse(tracker.ClockLayout, args[0]); err != nil {
		return "Invalid time format! Use HH:MM in 24-hour format."
	}

	if err := s.db.SetMoodReminder(userID, args[0]); err != nil {
		s.log.Error("set mood reminder failed", "user", userID, "err", err)
		return "Failed to set a reminder. Please try again later."
	}
	return fmt.Sprintf("Mood reminder set for %s daily. I'll message you at the specified time!", args[0])
}

func (s *Server) cmdStopMoodReminder(userID int64) string {
	if err := s.db.ClearMoodReminder(userID); err != nil {
		s.log.Error("stop mood reminder failed", "user", userID, "err", err)
		return "Failed to stop reminders. Please try again later."
	}
	return "Mood reminder disabled."
}
