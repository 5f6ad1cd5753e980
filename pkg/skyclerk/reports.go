package skyclerk

import (
	"context"

	"github.com/pkg/errors"
)

// reportService implements the ReportService interface
type reportService struct {
	client *Client
}

// ProfitLossCurrentYear retrieves the current-year P&L figure
func (s *reportService) ProfitLossCurrentYear(ctx context.Context) (*ProfitLoss, error) {
	path, err := s.client.accountPath("reports/pnl-current-year")
	if err != nil {
		return nil, err
	}

	var report ProfitLoss
	if err := s.client.get(ctx, path, nil, &report); err != nil {
		return nil, errors.Wrap(err, "failed to get profit and loss report")
	}

	return &report, nil
}
