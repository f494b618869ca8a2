// Package repository persists the dashboard settings in the SQLite key-value
// store. Settings are the only state that survives a restart.
package repository

import (
	"database/sql"
	_ "embed"
	"fmt"
	"log/slog"
	"strconv"
	"time"
)

//go:embed sql/get-settings.sql
var getSettingsSQL string

//go:embed sql/upsert-setting.sql
var upsertSettingSQL string

const (
	keyAlertThreshold  = "alert_threshold"
	keyPollIntervalMS  = "poll_interval_ms"
	keyDailyWindowDays = "daily_window_days"
)

// Settings is the externally supplied configuration surface consumed by the
// scheduler and aggregation calls.
type Settings struct {
	AlertThreshold  float64 `json:"alertThreshold"`  // µg/m³
	PollIntervalMS  int     `json:"pollIntervalMs"`  // 0 = manual polling only
	DailyWindowDays int     `json:"dailyWindowDays"` // 7 or 30
}

// DefaultSettings are applied until the first settings write.
func DefaultSettings() Settings {
	return Settings{
		AlertThreshold:  75,
		PollIntervalMS:  60000,
		DailyWindowDays: 7,
	}
}

// Validate rejects values the aggregation pipeline cannot work with.
func (s Settings) Validate() error {
	if s.AlertThreshold < 0 {
		return fmt.Errorf("alertThreshold must be >= 0, got %v", s.AlertThreshold)
	}
	if s.PollIntervalMS < 0 {
		return fmt.Errorf("pollIntervalMs must be >= 0, got %d", s.PollIntervalMS)
	}
	if s.DailyWindowDays != 7 && s.DailyWindowDays != 30 {
		return fmt.Errorf("dailyWindowDays must be 7 or 30, got %d", s.DailyWindowDays)
	}
	return nil
}

// PollInterval converts the stored millisecond value to a duration.
func (s Settings) PollInterval() time.Duration {
	return time.Duration(s.PollIntervalMS) * time.Millisecond
}

type SettingsRepository interface {
	Get() (Settings, error)
	Put(Settings) error
}

type repositoryImpl struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) SettingsRepository {
	return &repositoryImpl{db: db}
}

// Get loads settings, filling any missing or unreadable key with its default
// so a fresh database behaves identically to the original dashboard.
func (r *repositoryImpl) Get() (Settings, error) {
	out := DefaultSettings()

	rows, err := r.db.Query(getSettingsSQL)
	if err != nil {
		return out, fmt.Errorf("get settings: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("close settings rows", "error", err)
		}
	}()

	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return out, fmt.Errorf("scan setting: %w", err)
		}
		switch key {
		case keyAlertThreshold:
			if v, err := strconv.ParseFloat(value, 64); err == nil {
				out.AlertThreshold = v
			} else {
				slog.Warn("ignoring unreadable setting", "key", key, "value", value)
			}
		case keyPollIntervalMS:
			if v, err := strconv.Atoi(value); err == nil {
				out.PollIntervalMS = v
			} else {
				slog.Warn("ignoring unreadable setting", "key", key, "value", value)
			}
		case keyDailyWindowDays:
			if v, err := strconv.Atoi(value); err == nil {
				out.DailyWindowDays = v
			} else {
				slog.Warn("ignoring unreadable setting", "key", key, "value", value)
			}
		}
	}
	return out, rows.Err()
}

func (r *repositoryImpl) Put(s Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("put settings: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	pairs := []struct {
		key   string
		value string
	}{
		{keyAlertThreshold, strconv.FormatFloat(s.AlertThreshold, 'f', -1, 64)},
		{keyPollIntervalMS, strconv.Itoa(s.PollIntervalMS)},
		{keyDailyWindowDays, strconv.Itoa(s.DailyWindowDays)},
	}
	for _, p := range pairs {
		if _, err := tx.Exec(upsertSettingSQL, p.key, p.value); err != nil {
			return fmt.Errorf("upsert setting %s: %w", p.key, err)
		}
	}
	return tx.Commit()
}
