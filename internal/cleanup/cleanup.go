package cleanup

import (
	"context"

	"github.com/dersplan/dersplan/pkg/schedule"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

// Job periodically sweeps malformed records out of the store. It runs the
// same validation pass that is applied once at startup.
type Job struct {
	schedule schedule.Service
	spec     string
	cron     *cron.Cron
}

func NewJob(scheduleService schedule.Service, spec string) *Job {
	return &Job{schedule: scheduleService, spec: spec}
}

// Start registers and starts the cron schedule. An empty spec disables the
// job.
func (j *Job) Start() error {
	if j.spec == "" {
		log.Debug("Cleanup schedule is empty, periodic cleanup disabled")
		return nil
	}

	j.cron = cron.New()
	_, err := j.cron.AddFunc(j.spec, j.run)
	if err != nil {
		return err
	}
	j.cron.Start()
	log.Infof("Scheduled periodic cleanup: %s", j.spec)
	return nil
}

// Stop halts the cron scheduler, waiting for a running sweep to finish.
func (j *Job) Stop() {
	if j.cron == nil {
		return
	}
	ctx := j.cron.Stop()
	<-ctx.Done()
}

func (j *Job) run() {
	removed, err := j.schedule.CleanupMalformed(context.Background())
	if err != nil {
		log.Errorf("periodic cleanup failed: %v", err)
		return
	}
	log.Debugf("Periodic cleanup finished, removed %d records", removed)
}
