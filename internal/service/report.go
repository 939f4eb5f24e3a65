package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/josh-kwaku/splitledger/internal/cache"
	"github.com/josh-kwaku/splitledger/internal/domain"
	"github.com/josh-kwaku/splitledger/internal/logging"
)

type ReportService struct {
	reports reportRepository
	cache   cache.ReportCache
}

func NewReportService(reports reportRepository, c cache.ReportCache) *ReportService {
	if c == nil {
		c = cache.Noop{}
	}
	return &ReportService{reports: reports, cache: c}
}

// OweDetails summarizes, from recorded expenses, what userID owes each
// creator and what each participant owes userID.
func (s *ReportService) OweDetails(ctx context.Context, userID uuid.UUID) (*domain.OweDetails, error) {
	log := logging.FromContext(ctx)

	cached, err := s.cache.GetOweDetails(ctx, userID)
	if err != nil {
		log.Warn("read owe-details cache", "user_id", userID, "error", err)
	}
	if cached != nil {
		return cached, nil
	}

	details := &domain.OweDetails{UserID: userID}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := s.reports.OwedByUser(gctx, userID)
		if err != nil {
			return err
		}
		details.OwedByUser = rows
		return nil
	})
	g.Go(func() error {
		rows, err := s.reports.OwedToUser(gctx, userID)
		if err != nil {
			return err
		}
		details.OwedToUser = rows
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("OweDetails: %w", err)
	}

	if details.OwedByUser == nil {
		details.OwedByUser = []domain.OwedByUser{}
	}
	if details.OwedToUser == nil {
		details.OwedToUser = []domain.OwedToUser{}
	}

	if err := s.cache.SetOweDetails(ctx, details); err != nil {
		log.Warn("write owe-details cache", "user_id", userID, "error", err)
	}
	return details, nil
}
