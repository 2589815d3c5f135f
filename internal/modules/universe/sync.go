package universe

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/aristath/prism/internal/domain"
)

// historyPeriod is the range requested per ticker; two years comfortably
// covers the 12-month behavior window plus the volume trend comparison.
const historyPeriod = "2y"

// MarketDataFetcher is the remote feed the sync service pulls from.
type MarketDataFetcher interface {
	GetFundamentals(ticker string) (*domain.FirmFundamentals, error)
	GetDailyHistory(ticker, period string) (domain.PriceSeries, error)
}

// SyncReport summarizes one sync pass.
type SyncReport struct {
	Synced int      `json:"synced"`
	Failed []string `json:"failed,omitempty"`
}

// SyncService refreshes fundamentals and price history for every active
// security plus the benchmark ticker.
type SyncService struct {
	securities      *SecurityRepository
	fundamentals    *FundamentalsRepository
	prices          *PriceRepository
	fetcher         MarketDataFetcher
	benchmarkTicker string
	log             zerolog.Logger
}

// NewSyncService creates a new sync service
func NewSyncService(
	securities *SecurityRepository,
	fundamentals *FundamentalsRepository,
	prices *PriceRepository,
	fetcher MarketDataFetcher,
	benchmarkTicker string,
	log zerolog.Logger,
) *SyncService {
	return &SyncService{
		securities:      securities,
		fundamentals:    fundamentals,
		prices:          prices,
		fetcher:         fetcher,
		benchmarkTicker: benchmarkTicker,
		log:             log.With().Str("service", "universe-sync").Logger(),
	}
}

// SyncAll refreshes every active security and the benchmark. One failing
// ticker never aborts the pass; failures are reported and the rest proceed.
func (s *SyncService) SyncAll() (SyncReport, error) {
	securities, err := s.securities.All()
	if err != nil {
		return SyncReport{}, fmt.Errorf("failed to list securities: %w", err)
	}

	report := SyncReport{}
	for _, security := range securities {
		if !security.Active {
			continue
		}
		if err := s.SyncTicker(security.Ticker); err != nil {
			s.log.Warn().Err(err).Str("ticker", security.Ticker).Msg("ticker sync failed")
			report.Failed = append(report.Failed, security.Ticker)
			continue
		}
		report.Synced++
	}

	// The benchmark usually is not part of the universe but behavior
	// scoring needs its history
	if s.benchmarkTicker != "" {
		if err := s.syncPrices(s.benchmarkTicker); err != nil {
			s.log.Warn().Err(err).Str("ticker", s.benchmarkTicker).Msg("benchmark sync failed")
			report.Failed = append(report.Failed, s.benchmarkTicker)
		} else {
			report.Synced++
		}
	}

	s.log.Info().Int("synced", report.Synced).Int("failed", len(report.Failed)).Msg("universe sync complete")
	return report, nil
}

// SyncTicker refreshes fundamentals and price history for one ticker.
func (s *SyncService) SyncTicker(ticker string) error {
	record, err := s.fetcher.GetFundamentals(ticker)
	if err != nil {
		return fmt.Errorf("fundamentals fetch failed: %w", err)
	}
	if record != nil {
		record.Ticker = ticker
		if err := s.fundamentals.Upsert(*record); err != nil {
			return err
		}
	}

	return s.syncPrices(ticker)
}

func (s *SyncService) syncPrices(ticker string) error {
	series, err := s.fetcher.GetDailyHistory(ticker, historyPeriod)
	if err != nil {
		return fmt.Errorf("history fetch failed: %w", err)
	}
	if len(series) == 0 {
		s.log.Debug().Str("ticker", ticker).Msg("no price history returned")
		return nil
	}
	return s.prices.SaveSeries(ticker, series)
}
