package jobs

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// Job is a named task run on a cron schedule.
type Job struct {
	Name string
	Spec string
	Run  func(ctx context.Context)
}

// StartScheduler registers jobs on a cron running in loc and starts it.
// Every run receives ctx. Stop the returned cron on shutdown.
func StartScheduler(ctx context.Context, loc *time.Location, jobs ...Job) (*cron.Cron, error) {
	if loc == nil {
		loc = time.UTC
	}
	c := cron.New(cron.WithLocation(loc))

	for _, job := range jobs {
		job := job
		if _, err := c.AddFunc(job.Spec, func() {
			if ctx.Err() != nil {
				return
			}
			job.Run(ctx)
		}); err != nil {
			return nil, fmt.Errorf("schedule %s (%q): %w", job.Name, job.Spec, err)
		}
	}

	c.Start()
	log.Printf("[CRON] Scheduler started with %d job(s)", len(jobs))
	return c, nil
}
