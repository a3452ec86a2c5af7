package config

import (
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"sync"
	"time"

	"cardhunter/internal/bot"
	"cardhunter/internal/domain"
)

// TuningOverrides replaces individual engine knobs. Unset fields keep the
// built-in values.
type TuningOverrides struct {
	SkillAccuracy        map[domain.SkillLevel]float64             `json:"skill_accuracy"`
	Selection            map[domain.SkillLevel]bot.SelectionTuning `json:"selection"`
	ContinuationBaseRate map[domain.Personality]float64            `json:"continuation_base_rate"`
	ContinuationCap      *float64                                  `json:"continuation_cap"`
	MinScoreRatio        *float64                                  `json:"min_score_ratio"`
}

type GameConfig struct {
	// SessionTTLSeconds is how long an idle engine session survives.
	SessionTTLSeconds int    `json:"session_ttl_seconds"`
	TokenTTLSeconds   int    `json:"token_ttl_seconds"`
	TokenIssuer       string `json:"token_issuer"`
	// IdentitiesPath points at a JSON list of computer seat presets.
	IdentitiesPath string          `json:"identities_path"`
	Tuning         TuningOverrides `json:"tuning"`
}

const (
	defaultSessionTTLSeconds = 30 * 60
	defaultTokenTTLSeconds   = 24 * 60 * 60
	defaultTokenIssuer       = "cardhunter"
)

var (
	cfg      *GameConfig
	loadOnce sync.Once
	loadErr  error
)

// Default returns the configuration used when no file is loaded.
func Default() *GameConfig {
	return &GameConfig{
		SessionTTLSeconds: defaultSessionTTLSeconds,
		TokenTTLSeconds:   defaultTokenTTLSeconds,
		TokenIssuer:       defaultTokenIssuer,
	}
}

// Parse decodes a configuration document on top of the defaults.
func Parse(data []byte) (*GameConfig, error) {
	c := Default()
	if err := json.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game config: %w", err)
	}
	if c.SessionTTLSeconds < 0 || c.TokenTTLSeconds <= 0 {
		return nil, fmt.Errorf("invalid ttl: session %d token %d", c.SessionTTLSeconds, c.TokenTTLSeconds)
	}
	if err := c.ApplyTuning(bot.DefaultTuning).Validate(); err != nil {
		return nil, fmt.Errorf("game config tuning: %w", err)
	}
	return c, nil
}

// LoadGameConfig loads the game configuration from the given path.
func LoadGameConfig(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read game config: %w", err)
			return
		}
		cfg, loadErr = Parse(data)
	})
	return loadErr
}

// GetGameConfig returns the global game configuration, or the defaults when
// none was loaded.
func GetGameConfig() *GameConfig {
	if cfg == nil {
		return Default()
	}
	return cfg
}

// SessionTTL is the idle lifetime of an engine session. Zero disables expiry.
func (c *GameConfig) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLSeconds) * time.Second
}

// TokenTTL is the lifetime of a session token.
func (c *GameConfig) TokenTTL() time.Duration {
	return time.Duration(c.TokenTTLSeconds) * time.Second
}

// ApplyTuning returns base with the configured overrides applied. base is not modified.
func (c *GameConfig) ApplyTuning(base bot.Tuning) bot.Tuning {
	out := base
	o := c.Tuning

	out.Model.SkillAccuracy = merged(base.Model.SkillAccuracy, o.SkillAccuracy)
	out.Selection = merged(base.Selection, o.Selection)
	out.Continuation.BaseRate = merged(base.Continuation.BaseRate, o.ContinuationBaseRate)

	if o.ContinuationCap != nil {
		out.Continuation.Cap = *o.ContinuationCap
	}
	if o.MinScoreRatio != nil {
		out.MinScoreRatio = *o.MinScoreRatio
	}
	return out
}

// merged returns a copy of base with overrides applied on top.
func merged[K comparable, V any](base, overrides map[K]V) map[K]V {
	out := make(map[K]V, len(base)+len(overrides))
	maps.Copy(out, base)
	maps.Copy(out, overrides)
	return out
}
