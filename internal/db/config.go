package db

import (
	"strconv"

	"gold-goblin/internal/config"
)

// LoadConfig reads config from SQLite. If empty, returns defaults.
func (d *DB) LoadConfig() *config.Config {
	cfg := config.Default()

	rows, err := d.sql.Query("SELECT key, value FROM config")
	if err != nil {
		return cfg
	}
	defer rows.Close()

	m := make(map[string]string)
	for rows.Next() {
		var k, v string
		rows.Scan(&k, &v)
		m[k] = v
	}

	if v, ok := m["realm"]; ok {
		cfg.Realm = v
	}
	if v, ok := m["period"]; ok {
		cfg.Period = v
	}
	if v, ok := m["data_dir"]; ok {
		cfg.DataDir = v
	}
	if v, ok := m["fetch_stale_hours"]; ok {
		cfg.FetchStaleHours, _ = strconv.Atoi(v)
	}
	if v, ok := m["signal_threshold_pct"]; ok {
		cfg.SignalThresholdPct, _ = strconv.ParseFloat(v, 64)
	}
	if v, ok := m["min_profit_pct"]; ok {
		cfg.MinProfitPct, _ = strconv.ParseFloat(v, 64)
	}
	if v, ok := m["max_display"]; ok {
		cfg.MaxDisplay, _ = strconv.Atoi(v)
	}
	return cfg
}

// SaveConfig writes config to SQLite as key/value rows.
func (d *DB) SaveConfig(cfg *config.Config) error {
	tx, err := d.sql.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	pairs := map[string]string{
		"realm":                cfg.Realm,
		"period":               cfg.Period,
		"data_dir":             cfg.DataDir,
		"fetch_stale_hours":    strconv.Itoa(cfg.FetchStaleHours),
		"signal_threshold_pct": strconv.FormatFloat(cfg.SignalThresholdPct, 'f', -1, 64),
		"min_profit_pct":       strconv.FormatFloat(cfg.MinProfitPct, 'f', -1, 64),
		"max_display":          strconv.Itoa(cfg.MaxDisplay),
	}
	for k, v := range pairs {
		if _, err := tx.Exec("INSERT OR REPLACE INTO config (key, value) VALUES (?,?)", k, v); err != nil {
			return err
		}
	}
	return tx.Commit()
}
