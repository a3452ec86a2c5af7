package simulation

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"runtime"
	"sync"

	"github.com/google/uuid"
	nkruntime "github.com/heroiclabs/nakama-common/runtime"

	"cardhunter/internal/app"
	"cardhunter/internal/bot"
	"cardhunter/internal/bot/brain"
	"cardhunter/internal/domain"
)

// maxTurns bounds one game; a consistent game needs at most one turn per card.
const maxTurns = domain.DeckSize * 2

// ErrInvalidGames is returned for a negative game count.
var ErrInvalidGames = errors.New("game count must not be negative")

// Config describes a batch of computer-only games.
type Config struct {
	Games   int
	Workers int
	Seed    int64
	// Seats holds the four computer presets in seat order.
	Seats  []bot.Identity
	Tuning bot.Tuning
}

// GameJob represents a single simulation job.
type GameJob struct {
	SimID int
	Seed  int64
}

// PlayerResult is one seat's outcome in one game.
type PlayerResult struct {
	ID          int
	Name        string
	Skill       domain.SkillLevel
	Personality domain.Personality
	Guesses     int
	Correct     int
	Continues   int
	Fallbacks   int
	// Place is 1 for the winner and 4 for the first player eliminated.
	Place int
}

// GameResult is the outcome of one simulated game.
type GameResult struct {
	SimID            int
	GameID           string
	Seed             int64
	Winner           int
	EliminationOrder []int
	Turns            int
	Players          []PlayerResult
	Err              error
}

// Run plays cfg.Games games on a worker pool and aggregates the results.
// Cancelling ctx stops handing out new games; finished games are still reported.
func Run(ctx context.Context, cfg Config, logger nkruntime.Logger) (Report, error) {
	if len(cfg.Seats) != domain.PlayerCount {
		return Report{}, fmt.Errorf("%d seats: %w", len(cfg.Seats), app.ErrWrongPlayerCount)
	}
	if cfg.Games < 0 {
		return Report{}, fmt.Errorf("%d games: %w", cfg.Games, ErrInvalidGames)
	}
	numWorkers := cfg.Workers
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	jobs := make(chan GameJob)
	results := make(chan GameResult, numWorkers)

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go worker(ctx, &wg, jobs, results, cfg)
	}

	// Seeds are drawn up front so results do not depend on worker scheduling.
	go func() {
		defer close(jobs)
		rng := rand.New(rand.NewSource(cfg.Seed))
		for i := 0; i < cfg.Games; i++ {
			job := GameJob{SimID: i, Seed: rng.Int63()}
			select {
			case jobs <- job:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	all := make([]GameResult, 0, cfg.Games)
	for res := range results {
		if res.Err != nil {
			logger.WithField("game_id", res.GameID).Error("simulation %d failed: %v", res.SimID, res.Err)
		} else {
			logger.Debug("simulation %d: winner %d after %d turns", res.SimID, res.Winner, res.Turns)
		}
		all = append(all, res)
	}

	report := Aggregate(all)
	logger.Info("simulated %d games, %d failed", report.Games, report.Failed)
	return report, ctx.Err()
}

func worker(ctx context.Context, wg *sync.WaitGroup, jobs <-chan GameJob, results chan<- GameResult, cfg Config) {
	defer wg.Done()
	for job := range jobs {
		results <- RunGame(ctx, job, cfg)
	}
}

// RunGame plays one computer-only game to completion.
func RunGame(ctx context.Context, job GameJob, cfg Config) GameResult {
	res := GameResult{SimID: job.SimID, GameID: uuid.NewString(), Seed: job.Seed, Winner: -1}

	seats := make([]*domain.Player, len(cfg.Seats))
	for i, id := range cfg.Seats {
		seats[i] = id.Player(i)
	}

	svc := app.NewService(rand.New(rand.NewSource(job.Seed)))
	history := brain.NewGuessHistory()
	state, _, err := svc.StartGame(seats, history)
	if err != nil {
		res.Err = err
		return res
	}
	agent := bot.NewAgent(rand.New(rand.NewSource(job.Seed^0x5eed)), cfg.Tuning)
	fallbacks := make(map[int]int)

	for state.Status == domain.StatusPlaying {
		if err := ctx.Err(); err != nil {
			res.Err = err
			return res
		}
		if res.Turns >= maxTurns {
			res.Err = fmt.Errorf("game exceeded %d turns: %w", maxTurns, bot.ErrInconsistentState)
			return res
		}
		turn, err := svc.PlayComputerTurn(state, history, agent)
		res.Turns++
		fallbacks[turn.PlayerID] += turn.Fallbacks
		if err != nil {
			res.Err = err
			return res
		}
	}

	if state.Winner != nil {
		res.Winner = *state.Winner
	}
	res.EliminationOrder = append([]int{}, state.EliminationOrder...)
	res.Players = playerResults(state, fallbacks)
	return res
}

func playerResults(state *domain.GameState, fallbacks map[int]int) []PlayerResult {
	place := make(map[int]int, len(state.Players))
	if state.Winner != nil {
		place[*state.Winner] = 1
	}
	for i, id := range state.EliminationOrder {
		place[id] = len(state.Players) - i
	}

	out := make([]PlayerResult, 0, len(state.Players))
	for _, p := range state.Players {
		pr := PlayerResult{
			ID:          p.ID,
			Name:        p.Name,
			Skill:       p.SkillLevel,
			Personality: p.Personality,
			Fallbacks:   fallbacks[p.ID],
			Place:       place[p.ID],
		}
		for _, l := range state.Logs {
			if l.GuessingPlayer != p.ID {
				continue
			}
			pr.Guesses++
			if l.WasCorrect {
				pr.Correct++
			}
			if l.WillContinue != nil && *l.WillContinue {
				pr.Continues++
			}
		}
		out = append(out, pr)
	}
	return out
}
