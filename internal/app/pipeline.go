package app

import (
	"context"
	"fmt"

	"super_sheets/internal/portal"
	"super_sheets/internal/recorder"

	"github.com/rs/zerolog/log"
)

// BalanceSource produces the three balances to record.
type BalanceSource interface {
	Balances(ctx context.Context) (portal.Balances, error)
}

// RowRecorder writes balances to the sheet and returns the computed row.
type RowRecorder interface {
	Record(ctx context.Context, transaction, shares, highGrowth string) (*recorder.Result, error)
}

// Notifier is told about each recorded row.
type Notifier interface {
	NotifyRecorded(ctx context.Context, result *recorder.Result)
}

// Pipeline scrapes, then records. The recorder is opened only after a
// successful scrape so authorization never runs for a failed login.
type Pipeline struct {
	Source       BalanceSource
	OpenRecorder func(ctx context.Context) (RowRecorder, error)
	Notifier     Notifier
}

func (p *Pipeline) Run(ctx context.Context) (*recorder.Result, error) {
	log.Debug().Msg("Scraping balances")
	balances, err := p.Source.Balances(ctx)
	if err != nil {
		return nil, fmt.Errorf("scrape: %w", err)
	}

	log.Debug().Msg("Opening recorder")
	rec, err := p.OpenRecorder(ctx)
	if err != nil {
		return nil, fmt.Errorf("open recorder: %w", err)
	}

	result, err := rec.Record(ctx, balances.Transaction, balances.Shares, balances.HighGrowth)
	if err != nil {
		return nil, fmt.Errorf("record: %w", err)
	}

	log.Info().
		Str("date", result.Date).
		Str("total", result.Total).
		Str("australian_super", result.AustralianSuper).
		Str("transaction", result.Transaction).
		Str("shares", result.Shares).
		Str("high_growth", result.HighGrowth).
		Msg("Pipeline complete")

	if p.Notifier != nil {
		p.Notifier.NotifyRecorded(ctx, result)
	}
	return result, nil
}
