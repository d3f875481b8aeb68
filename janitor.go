package restchain

import (
	"github.com/robfig/cron/v3"
)

// CacheJanitor sweeps expired cache entries on a cron schedule. It is a
// housekeeping supplement: without one, expired entries are dropped
// lazily when the same key is looked up again.
type CacheJanitor struct {
	cron   *cron.Cron
	target Sweeper
	logger Logger
}

// NewCacheJanitor creates a janitor sweeping target on the given cron
// specification, e.g. "@every 1m". Call Start to begin sweeping.
func NewCacheJanitor(target Sweeper, cronSpec string) (*CacheJanitor, error) {
	j := &CacheJanitor{
		cron:   cron.New(),
		target: target,
	}
	if _, err := j.cron.AddFunc(cronSpec, j.sweep); err != nil {
		return nil, &ClientError{
			Type:    ErrorTypeValidation,
			Message: "invalid cache janitor schedule",
			Cause:   err,
		}
	}
	return j, nil
}

// SetLogger attaches a logger for sweep reports.
func (j *CacheJanitor) SetLogger(logger Logger) {
	j.logger = logger
}

// Start begins sweeping on the configured schedule.
func (j *CacheJanitor) Start() {
	j.cron.Start()
}

// Stop halts the schedule. A sweep already in progress completes.
func (j *CacheJanitor) Stop() {
	j.cron.Stop()
}

func (j *CacheJanitor) sweep() {
	removed := j.target.SweepExpired()
	if j.logger != nil && removed > 0 {
		j.logger.Debug("cache sweep", "removed", removed)
	}
}
