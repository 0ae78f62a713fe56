package service

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tracklab/pmt/internal/db"
	"github.com/tracklab/pmt/internal/repository"
)

type milestoneService struct {
	conn   db.DBTX
	uow    db.UnitOfWork
	logger *log.Logger
}

func NewMilestoneService(conn db.DBTX, uow db.UnitOfWork, logger *log.Logger) MilestoneService {
	return &milestoneService{conn: conn, uow: uow, logger: logger}
}

func (s *milestoneService) Close(ctx context.Context, mid int64) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		milestones := repository.NewSQLiteMilestoneRepo(tx)
		m, err := milestones.GetByID(ctx, mid)
		if err != nil {
			return err
		}
		if !m.Close() {
			return nil
		}
		return milestones.Update(ctx, m)
	})
}

// Sweep closes every open milestone whose target date is strictly in the
// past. One milestone per transaction: a failure on one does not undo the
// others.
func (s *milestoneService) Sweep(ctx context.Context, now time.Time) (int, error) {
	open, err := repository.NewSQLiteMilestoneRepo(s.conn).ListOpen(ctx)
	if err != nil {
		return 0, err
	}

	closed := 0
	for _, m := range open {
		if !m.ShouldBeClosed(now) {
			continue
		}
		changed := false
		err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
			milestones := repository.NewSQLiteMilestoneRepo(tx)
			fresh, err := milestones.GetByID(ctx, m.MID)
			if err != nil {
				return err
			}
			if !fresh.Update(now) {
				return nil
			}
			changed = true
			return milestones.Update(ctx, fresh)
		})
		if err != nil {
			return closed, err
		}
		if !changed {
			continue
		}
		closed++
		s.logger.Info("closed overdue milestone", "mid", m.MID, "name", m.Name, "target", m.TargetDate.Format("2006-01-02"))
	}
	return closed, nil
}
