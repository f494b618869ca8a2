// Package service runs the poll cycle: fetch both feeds, parse and classify
// their rows, derive the aggregates and publish the resulting snapshot.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"campusair-server/internal/metrics"
	"campusair-server/internal/modules/air/aggregate"
	"campusair-server/internal/modules/air/feed"
	"campusair-server/internal/modules/air/poller"
	"campusair-server/internal/modules/air/repository"
	"campusair-server/internal/modules/air/types"
)

// Fetcher downloads one feed's raw payload. Satisfied by feed.Client.
type Fetcher interface {
	Fetch(ctx context.Context, src feed.Source) (string, error)
}

// FeedSource pairs a remote feed with the parser for its column layout.
type FeedSource struct {
	Source feed.Source
	Parser *feed.Parser
}

type Service struct {
	logger    *slog.Logger
	fetcher   Fetcher
	sources   []FeedSource
	settings  repository.SettingsRepository
	stations  []types.StationInfo
	metrics   *metrics.Metrics
	scheduler *poller.Scheduler
}

func NewService(
	logger *slog.Logger,
	fetcher Fetcher,
	sources []FeedSource,
	settings repository.SettingsRepository,
	stations []types.StationInfo,
	m *metrics.Metrics,
) *Service {
	s := &Service{
		logger:   logger,
		fetcher:  fetcher,
		sources:  sources,
		settings: settings,
		stations: stations,
		metrics:  m,
	}
	s.scheduler = poller.New(s.pollInterval, s.Cycle)
	return s
}

// Run blocks polling the feeds until ctx is cancelled.
func (s *Service) Run(ctx context.Context) error {
	return s.scheduler.Run(ctx)
}

// Snapshot returns the most recently published snapshot, nil before the first
// cycle completes.
func (s *Service) Snapshot() *types.Snapshot {
	return s.scheduler.Current()
}

// Poll runs one cycle synchronously, outside the schedule.
func (s *Service) Poll(ctx context.Context) {
	s.scheduler.Poll(ctx)
}

func (s *Service) Stations() []types.StationInfo {
	return s.stations
}

func (s *Service) Settings() (repository.Settings, error) {
	return s.settings.Get()
}

func (s *Service) UpdateSettings(settings repository.Settings) error {
	return s.settings.Put(settings)
}

// pollInterval reads the configured interval before every wait, so a settings
// update takes effect on the next tick without a restart.
func (s *Service) pollInterval() time.Duration {
	settings, err := s.settings.Get()
	if err != nil {
		s.logger.Warn("reading poll interval, using default", slog.Any("error", err))
		settings = repository.DefaultSettings()
	}
	return settings.PollInterval()
}

type fetchResult struct {
	source   string
	readings []types.Reading
	err      error
}

// Cycle fetches every feed concurrently and builds the snapshot. One feed
// failing degrades its station but the cycle still publishes; the cycle fails
// only when every feed fails, in which case the previously published snapshot
// stays current.
func (s *Service) Cycle(ctx context.Context, now time.Time) (*types.Snapshot, error) {
	settings, err := s.settings.Get()
	if err != nil {
		s.logger.Warn("reading settings, using defaults", slog.Any("error", err))
		settings = repository.DefaultSettings()
	}

	results := make([]fetchResult, len(s.sources))
	var wg sync.WaitGroup
	for i, src := range s.sources {
		wg.Add(1)
		go func(i int, src FeedSource) {
			defer wg.Done()
			results[i] = s.fetchOne(ctx, src)
		}(i, src)
	}
	wg.Wait()

	var readings []types.Reading
	var feedErrs []error
	for _, res := range results {
		if res.err != nil {
			feedErrs = append(feedErrs, res.err)
			s.metrics.ObserveFeedFailure(res.source)
			s.logger.Error("feed fetch failed",
				slog.String("feed", res.source), slog.Any("error", res.err))
			continue
		}
		readings = append(readings, res.readings...)
	}
	if len(feedErrs) == len(s.sources) {
		s.metrics.ObserveCycle("failure")
		return nil, fmt.Errorf("all feeds failed: %w", errors.Join(feedErrs...))
	}

	sort.SliceStable(readings, func(i, j int) bool {
		return readings[i].Timestamp.Before(readings[j].Timestamp)
	})

	a, b := aggregate.SplitByStation(readings)
	snapA := deviceSnapshot(a, now, settings.AlertThreshold)
	snapB := deviceSnapshot(b, now, settings.AlertThreshold)

	snap := &types.Snapshot{
		StationA:     snapA,
		StationB:     snapB,
		DailyStats:   aggregate.DailyStats(a, b, settings.DailyWindowDays),
		TimeSeries:   aggregate.MergeSeries(a, b, aggregate.SeriesLimit),
		RawReadings:  readings,
		AveragePM25:  aggregate.AveragePM25(snapA, snapB),
		BestLocation: aggregate.Best(snapA, snapB),
	}
	if len(feedErrs) > 0 {
		snap.LastError = errors.Join(feedErrs...).Error()
		s.metrics.ObserveCycle("degraded")
	} else {
		s.metrics.ObserveCycle("success")
	}
	return snap, nil
}

func (s *Service) fetchOne(ctx context.Context, src FeedSource) fetchResult {
	raw, err := s.fetcher.Fetch(ctx, src.Source)
	if err != nil {
		return fetchResult{source: src.Source.Name, err: err}
	}
	readings, stats := src.Parser.Parse(raw)
	s.metrics.ObserveParse(stats.Rows, stats.Dropped, stats.MalformedFields, stats.UnknownDevices)
	if stats.Dropped > 0 || stats.UnknownDevices > 0 {
		s.logger.Debug("feed parsed with data-quality events",
			slog.String("feed", src.Source.Name),
			slog.Int("rows", stats.Rows),
			slog.Int("dropped", stats.Dropped),
			slog.Int("unknownDevices", stats.UnknownDevices))
	}
	return fetchResult{source: src.Source.Name, readings: readings}
}

// deviceSnapshot derives a station's published state from its readings. A
// station with no readings has no snapshot; clients treat that as offline.
func deviceSnapshot(readings []types.Reading, now time.Time, threshold float64) *types.DeviceSnapshot {
	latest := aggregate.Latest(readings)
	if latest == nil {
		return nil
	}
	return &types.DeviceSnapshot{
		Reading:       *latest,
		HourlyAverage: aggregate.HourlyAverage(readings, aggregate.HourlyWindow, aggregate.HourlyMaxGap),
		Offline:       aggregate.Offline(latest, now, aggregate.DefaultStaleness),
		AlertActive:   latest.PM25 != nil && *latest.PM25 > threshold,
	}
}
