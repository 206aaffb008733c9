package app

import (
	"context"
	"errors"
	"testing"

	"super_sheets/internal/portal"
	"super_sheets/internal/recorder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	balances portal.Balances
	err      error
}

func (s fakeSource) Balances(ctx context.Context) (portal.Balances, error) {
	return s.balances, s.err
}

type fakeRecorder struct {
	got []string
	err error
}

func (r *fakeRecorder) Record(ctx context.Context, transaction, shares, highGrowth string) (*recorder.Result, error) {
	r.got = []string{transaction, shares, highGrowth}
	if r.err != nil {
		return nil, r.err
	}
	return &recorder.Result{Date: "2017-9-8", Transaction: transaction, Shares: shares, HighGrowth: highGrowth}, nil
}

type fakeNotifier struct {
	results []*recorder.Result
}

func (n *fakeNotifier) NotifyRecorded(ctx context.Context, result *recorder.Result) {
	n.results = append(n.results, result)
}

func TestPipelineRun(t *testing.T) {
	rec := &fakeRecorder{}
	notifier := &fakeNotifier{}
	p := &Pipeline{
		Source:       fakeSource{balances: portal.Balances{Transaction: "100", Shares: "200", HighGrowth: "300"}},
		OpenRecorder: func(ctx context.Context) (RowRecorder, error) { return rec, nil },
		Notifier:     notifier,
	}

	result, err := p.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"100", "200", "300"}, rec.got)
	assert.Equal(t, "300", result.HighGrowth)
	require.Len(t, notifier.results, 1)
	assert.Same(t, result, notifier.results[0])
}

func TestPipelineScrapeFailureSkipsRecorder(t *testing.T) {
	scrapeErr := errors.New("login form missing")
	opened := false
	p := &Pipeline{
		Source: fakeSource{err: scrapeErr},
		OpenRecorder: func(ctx context.Context) (RowRecorder, error) {
			opened = true
			return &fakeRecorder{}, nil
		},
	}

	_, err := p.Run(context.Background())
	assert.ErrorIs(t, err, scrapeErr)
	assert.False(t, opened)
}

func TestPipelineRecordFailure(t *testing.T) {
	notifier := &fakeNotifier{}
	p := &Pipeline{
		Source:       fakeSource{balances: portal.Balances{Transaction: "1", Shares: "2", HighGrowth: "3"}},
		OpenRecorder: func(ctx context.Context) (RowRecorder, error) { return &fakeRecorder{err: recorder.ErrNoData}, nil },
		Notifier:     notifier,
	}

	_, err := p.Run(context.Background())
	assert.ErrorIs(t, err, recorder.ErrNoData)
	assert.Empty(t, notifier.results)
}
