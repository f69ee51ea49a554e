package scheduler

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/example/boilerbuddy/internal/database"
	"github.com/example/boilerbuddy/pkg/models"
	"github.com/go-co-op/gocron"
)

// Default window in which review reminders are posted
const (
	DefaultReminderStartHour = 8
	DefaultReminderEndHour   = 22
)

// Scheduler manages the background jobs of the application
type Scheduler struct {
	scheduler  *gocron.Scheduler
	users      *database.UserRepository
	progress   *database.ProgressRepository
	activity   *database.ActivityRepository
	challenges *database.ChallengeRepository
}

// New creates a scheduler instance
func New() *Scheduler {
	return &Scheduler{
		scheduler:  gocron.NewScheduler(time.UTC),
		users:      database.NewUserRepository(),
		progress:   database.NewProgressRepository(),
		activity:   database.NewActivityRepository(),
		challenges: database.NewChallengeRepository(),
	}
}

// Start begins running all scheduled tasks
func (s *Scheduler) Start() {
	// Hourly sweep for users with overdue reviews
	s.scheduler.Every(1).Hour().Do(s.postReviewReminders)

	// Daily pass over challenges nobody finished
	s.scheduler.Every(1).Day().At("03:00").Do(s.expireChallenges)

	s.scheduler.StartAsync()
}

// Stop terminates all scheduled tasks
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// postReviewReminders drops a reminder event into the feed of every user
// who has reviews due, inside the configured reminder window.
func (s *Scheduler) postReviewReminders() {
	currentHour := time.Now().Hour()

	startHour := DefaultReminderStartHour
	endHour := DefaultReminderEndHour

	if raw := os.Getenv("NOTIFICATION_START_HOUR"); raw != "" {
		if h, err := strconv.Atoi(raw); err == nil && h >= 0 && h <= 23 {
			startHour = h
		}
	}
	if raw := os.Getenv("NOTIFICATION_END_HOUR"); raw != "" {
		if h, err := strconv.Atoi(raw); err == nil && h >= 0 && h <= 23 {
			endHour = h
		}
	}

	if currentHour < startHour || currentHour > endHour {
		log.Printf("Current hour %d is outside reminder hours (%d-%d), skipping reminders",
			currentHour, startHour, endHour)
		return
	}

	users, err := s.users.GetAll()
	if err != nil {
		log.Printf("Error getting users for reminders: %v", err)
		return
	}

	now := time.Now()
	for _, user := range users {
		due, err := s.progress.CountDueForUser(user.ID, now)
		if err != nil {
			log.Printf("Error counting due reviews for user %d: %v", user.ID, err)
			continue
		}
		if due == 0 {
			continue
		}

		event := &models.ActivityEvent{
			UserID:    user.ID,
			EventType: models.ActivityReviewReminder,
			Message:   fmt.Sprintf("You have %d topics due for review", due),
		}
		if err := s.activity.Insert(event); err != nil {
			log.Printf("Error posting reminder for user %d: %v", user.ID, err)
		}
	}
}

// expireChallenges closes out challenges past their deadline
func (s *Scheduler) expireChallenges() {
	expired, err := s.challenges.ExpireStale(time.Now())
	if err != nil {
		log.Printf("Error expiring challenges: %v", err)
		return
	}
	if expired > 0 {
		log.Printf("Expired %d stale challenges", expired)
	}
}
