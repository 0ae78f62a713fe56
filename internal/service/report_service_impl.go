package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tracklab/pmt/internal/db"
	"github.com/tracklab/pmt/internal/repository"
)

// lowHoursFloor is the weekly total below which the report nags instead of
// congratulating.
const lowHoursFloor = 10 * time.Hour

type reportService struct {
	conn     db.DBTX
	notifier Notifier
	logger   *log.Logger
}

func NewReportService(conn db.DBTX, notifier Notifier, logger *log.Logger) ReportService {
	return &reportService{conn: conn, notifier: notifier, logger: logger}
}

// weekStart returns the Monday of the week containing date, at midnight in
// the date's location.
func weekStart(date time.Time) time.Time {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	back := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -back)
}

func (s *reportService) WeeklyReport(ctx context.Context, username string, date time.Time) (*WeeklyReport, error) {
	if _, err := repository.NewSQLiteUserRepo(s.conn).GetByUsername(ctx, username); err != nil {
		return nil, err
	}

	start := weekStart(date)
	end := start.AddDate(0, 0, 7)

	projects, total, err := s.IntervalReport(ctx, username, start, end)
	if err != nil {
		return nil, err
	}

	return &WeeklyReport{
		Username:  username,
		WeekStart: start,
		WeekEnd:   end.AddDate(0, 0, -1),
		PrevWeek:  start.AddDate(0, 0, -7),
		NextWeek:  end,
		Projects:  projects,
		Total:     total,
	}, nil
}

func (s *reportService) IntervalReport(ctx context.Context, username string, start, end time.Time) ([]repository.ProjectHours, time.Duration, error) {
	times := repository.NewSQLiteActualTimeRepo(s.conn)
	projects, err := times.ProjectHoursForUserInterval(ctx, username, start, end)
	if err != nil {
		return nil, 0, err
	}
	total, err := times.TotalForUserInterval(ctx, username, start, end)
	if err != nil {
		return nil, 0, err
	}
	return projects, total, nil
}

func (s *reportService) SendWeeklyReport(ctx context.Context, username string, date time.Time) error {
	report, err := s.WeeklyReport(ctx, username, date)
	if err != nil {
		return err
	}
	user, err := repository.NewSQLiteUserRepo(s.conn).GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	if user.Email == "" {
		s.logger.Warn("skipping weekly report, user has no email", "username", username)
		return nil
	}
	body := weeklyReportBody(report.TotalHours(), report.Total < lowHoursFloor)
	return s.notifier.Send(ctx, user.Email, "PMT Weekly Report", body)
}

// SendWeeklyReports sends the weekly report to each named user; an empty
// list means every active user. A failed recipient is logged and does not
// stop the fan-out; the combined errors are returned at the end.
func (s *reportService) SendWeeklyReports(ctx context.Context, usernames []string, date time.Time) error {
	if len(usernames) == 0 {
		active, err := repository.NewSQLiteUserRepo(s.conn).List(ctx, true)
		if err != nil {
			return err
		}
		for _, u := range active {
			usernames = append(usernames, u.Username)
		}
	}

	var errs []error
	for _, username := range usernames {
		if err := s.SendWeeklyReport(ctx, username, date); err != nil {
			s.logger.Error("sending weekly report", "username", username, "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", username, err))
		}
	}
	return errors.Join(errs...)
}

func weeklyReportBody(hours float64, low bool) string {
	if low {
		return fmt.Sprintf("This week you have only logged %.1f hours.\n\nNow is a good time to take care of that.\n", hours)
	}
	return fmt.Sprintf("You've logged %.1f hours this week. Good job!\n", hours)
}
