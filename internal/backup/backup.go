// Package backup copies content snapshots to object storage.
package backup

import (
	"bytes"
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"time"

	"github.com/dmitrymomot/b2bnews/internal/content"
	"github.com/dmitrymomot/b2bnews/pkg/logger"
	"github.com/dmitrymomot/b2bnews/pkg/snapshot"
	"github.com/dmitrymomot/b2bnews/pkg/storage"
)

// TaskName identifies the backup task in the job scheduler.
const TaskName = "backup_snapshots"

var (
	ErrDisabled = errors.New("backup: storage is not configured")
	ErrBackup   = errors.New("backup: failed")
)

// Keys lists the snapshots that are backed up, in order.
var Keys = []string{content.KeyNews, content.KeyProducts, content.KeyMedia, content.KeyCompany}

// Config controls scheduled backups.
type Config struct {
	// Cron expression. Empty disables scheduled backups.
	Schedule string        `env:"BACKUP_SCHEDULE" envDefault:""`
	Prefix   string        `env:"BACKUP_PREFIX" envDefault:"backups"`
	Timeout  time.Duration `env:"BACKUP_TIMEOUT" envDefault:"1m"`
}

// Enabled reports whether a schedule is set.
func (c Config) Enabled() bool { return c.Schedule != "" }

// Result describes one backup run.
type Result struct {
	Stamp   string
	Objects []storage.FileInfo
	Skipped []string
}

// Job copies every snapshot key to storage under {prefix}/{stamp}/{key}.json.
// It satisfies job.ScheduledTask.
type Job struct {
	cfg     Config
	backend snapshot.Backend
	store   storage.Storage
	log     *slog.Logger
	now     func() time.Time
}

// New creates a backup job. A nil store makes every run fail with ErrDisabled.
func New(cfg Config, backend snapshot.Backend, store storage.Storage, log *slog.Logger) *Job {
	return &Job{
		cfg:     cfg,
		backend: backend,
		store:   store,
		log:     cmp.Or(log, logger.NewNope()),
		now:     time.Now,
	}
}

func (j *Job) Name() string     { return TaskName }
func (j *Job) Schedule() string { return j.cfg.Schedule }

// Handle runs one backup.
func (j *Job) Handle(ctx context.Context) error {
	_, err := j.Run(ctx)
	return err
}

// Run copies all snapshots. Keys that have never been saved are skipped.
func (j *Job) Run(ctx context.Context) (*Result, error) {
	if j.store == nil {
		return nil, ErrDisabled
	}

	res := &Result{Stamp: j.now().UTC().Format(time.RFC3339)}
	prefix := cmp.Or(j.cfg.Prefix, "backups")

	for _, key := range Keys {
		if err := ctx.Err(); err != nil {
			return res, errors.Join(ErrBackup, err)
		}

		data, err := j.backend.Load(ctx, key)
		if errors.Is(err, snapshot.ErrNotFound) {
			res.Skipped = append(res.Skipped, key)
			continue
		}
		if err != nil {
			return res, errors.Join(ErrBackup, fmt.Errorf("load %s: %w", key, err))
		}

		info, err := j.store.Put(ctx, storage.Object{
			Body:        bytes.NewReader(data),
			Key:         path.Join(prefix, res.Stamp, key+".json"),
			ContentType: "application/json",
			Size:        int64(len(data)),
			ACL:         storage.ACLPrivate,
		})
		if err != nil {
			return res, errors.Join(ErrBackup, fmt.Errorf("put %s: %w", key, err))
		}
		res.Objects = append(res.Objects, *info)
	}

	j.log.InfoContext(ctx, "snapshots backed up",
		slog.String("stamp", res.Stamp),
		slog.Int("objects", len(res.Objects)),
		slog.Int("skipped", len(res.Skipped)),
	)
	return res, nil
}
