package service

import (
	"github.com/robfig/cron/v3"

	"smartparking/internal/auth"
	"smartparking/internal/logger"
)

// JobService runs the background maintenance of the frontend: sweeping
// sessions whose tokens have expired so their pollers stop.
type JobService struct {
	Sessions *SessionManager
}

func NewJobService(sessions *SessionManager) *JobService {
	return &JobService{Sessions: sessions}
}

// SweepExpiredSessions drops every session whose token is no longer usable.
func (j *JobService) SweepExpiredSessions() {
	removed := j.Sessions.Sweep(func(token string) bool {
		return !auth.TokenUsable(token)
	})
	if removed > 0 {
		logger.Log.WithField("sessions", removed).Info("swept expired sessions")
	}
}

// Schedule registers the sweep on the given cron runner every minute.
func (j *JobService) Schedule(c *cron.Cron) error {
	_, err := c.AddFunc("@every 1m", j.SweepExpiredSessions)
	return err
}
