package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/founderflow/founderflow/internal/core/authz"
	"github.com/founderflow/founderflow/internal/core/domain"
	"github.com/founderflow/founderflow/internal/core/ports"
)

// FinanceService owns the admin-only finance ledger.
type FinanceService struct {
	repo ports.FinanceRepository
	log  zerolog.Logger
}

func NewFinanceService(repo ports.FinanceRepository, log zerolog.Logger) *FinanceService {
	return &FinanceService{repo: repo, log: log}
}

func (s *FinanceService) ListRecords(ctx context.Context, role domain.Role) ([]domain.FinanceRecord, error) {
	if !authz.Can(role, authz.CapViewFinancials) {
		return nil, domain.ErrForbidden
	}

	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list finance records: %w", err)
	}
	return records, nil
}

func (s *FinanceService) CreateRecord(ctx context.Context, role domain.Role, in ports.CreateFinanceRecordInput) (*domain.FinanceRecord, error) {
	if !authz.Can(role, authz.CapViewFinancials) {
		return nil, domain.ErrForbidden
	}

	recordType := domain.FinanceType(in.Type)
	if recordType != domain.FinanceIncome && recordType != domain.FinanceExpense {
		return nil, fmt.Errorf("create finance record: invalid type %q", in.Type)
	}

	amount, err := decimal.NewFromString(in.Amount)
	if err != nil {
		return nil, fmt.Errorf("create finance record: amount: %w", err)
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("create finance record: amount must be positive")
	}

	record := &domain.FinanceRecord{
		Type:        recordType,
		Amount:      amount,
		Description: in.Description,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, record); err != nil {
		s.log.Error().Err(err).Msg("failed to create finance record")
		return nil, err
	}

	s.log.Info().Str("type", in.Type).Str("amount", amount.StringFixed(2)).Msg("finance record created")
	return record, nil
}
