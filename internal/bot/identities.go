package bot

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"cardhunter/internal/domain"
)

// Identity is the seat preset of a computer player.
type Identity struct {
	Name        string             `json:"name"`
	SkillLevel  domain.SkillLevel  `json:"skill_level"`
	Personality domain.Personality `json:"personality"`
}

// DefaultIdentities are used when no identities file is loaded.
var DefaultIdentities = []Identity{
	{Name: "Computer 1", SkillLevel: domain.SkillBeginner, Personality: domain.PersonalityAggressive},
	{Name: "Computer 2", SkillLevel: domain.SkillIntermediate, Personality: domain.PersonalityBalanced},
	{Name: "Computer 3", SkillLevel: domain.SkillExpert, Personality: domain.PersonalityCautious},
}

var (
	identities []Identity
	loadOnce   sync.Once
	loadErr    error
)

// LoadIdentities loads the computer seat presets from the given path.
func LoadIdentities(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read computer identities: %w", err)
			return
		}

		var loaded []Identity
		if err := json.Unmarshal(data, &loaded); err != nil {
			loadErr = fmt.Errorf("failed to unmarshal computer identities: %w", err)
			return
		}
		for i, id := range loaded {
			if err := id.Validate(); err != nil {
				loadErr = fmt.Errorf("identity %d: %w", i, err)
				return
			}
		}
		identities = loaded
	})
	return loadErr
}

// Validate rejects unknown skill levels and personalities. Empty values are allowed.
func (id Identity) Validate() error {
	switch id.SkillLevel {
	case "", domain.SkillBeginner, domain.SkillIntermediate, domain.SkillExpert:
	default:
		return fmt.Errorf("unknown skill level %q", id.SkillLevel)
	}
	switch id.Personality {
	case "", domain.PersonalityAggressive, domain.PersonalityBalanced, domain.PersonalityCautious:
	default:
		return fmt.Errorf("unknown personality %q", id.Personality)
	}
	return nil
}

// GetIdentity returns a computer preset by index (mod pool size).
func GetIdentity(index int) Identity {
	pool := identities
	if len(pool) == 0 {
		pool = DefaultIdentities
	}
	return pool[index%len(pool)]
}

// Player builds the domain player for this identity at seat id.
func (id Identity) Player(seat int) *domain.Player {
	name := id.Name
	if name == "" {
		name = fmt.Sprintf("Computer %d", seat)
	}
	return &domain.Player{
		ID:          seat,
		Name:        name,
		IsComputer:  true,
		SkillLevel:  id.SkillLevel,
		Personality: id.Personality,
	}
}
