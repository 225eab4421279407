// Package job runs periodic tasks on cron schedules.
//
// Tasks are registered by structural typing: anything with Name, Schedule and
// Handle methods can be scheduled.
//
//	type Backup struct{ ... }
//
//	func (b *Backup) Name() string     { return "backup_snapshots" }
//	func (b *Backup) Schedule() string { return "0 3 * * *" } // Daily at 03:00
//	func (b *Backup) Handle(ctx context.Context) error { ... }
//
//	s, err := job.New(job.WithScheduledTask(backup), job.WithLogger(log))
//	if err != nil { ... }
//	s.Start()
//	defer s.Stop(ctx)
//
// A run that is still going when its next tick arrives is skipped. Panics in a task
// are recovered and logged.
package job
