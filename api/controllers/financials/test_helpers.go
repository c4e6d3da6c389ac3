package financials

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/ssemujju/sokoyetu-backend/internal/finance"
)

type stubFinanceService struct {
	mu sync.Mutex

	statement  *finance.SellerStatement
	financials *finance.PlatformFinancials
	stats      *finance.AdminStats
	err        error

	lastSellerID uuid.UUID
	lastWindow   finance.Window
	calls        int
}

func (s *stubFinanceService) SellerStatement(_ context.Context, sellerID uuid.UUID, window finance.Window) (*finance.SellerStatement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.lastSellerID = sellerID
	s.lastWindow = window
	if s.err != nil {
		return nil, s.err
	}
	return s.statement, nil
}

func (s *stubFinanceService) PlatformFinancials(_ context.Context, window finance.Window) (*finance.PlatformFinancials, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.lastWindow = window
	if s.err != nil {
		return nil, s.err
	}
	return s.financials, nil
}

func (s *stubFinanceService) AdminStats(context.Context) (*finance.AdminStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.stats, nil
}

func (s *stubFinanceService) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}
