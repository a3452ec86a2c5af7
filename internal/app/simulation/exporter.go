package simulation

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"sync"

	"cardhunter/internal/domain"
)

// CSVExporter writes one row per simulated game.
type CSVExporter struct {
	writer *csv.Writer
	mu     sync.Mutex
}

// NewCSVExporter writes the header to w and returns an exporter for result rows.
func NewCSVExporter(w io.Writer) (*CSVExporter, error) {
	header := []string{"GameID", "Seed", "Winner", "Turns", "EliminationOrder"}
	playerColumns := []string{"Name", "Skill", "Personality", "Guesses", "Correct", "Continues", "Place"}
	for i := 1; i <= domain.PlayerCount; i++ {
		for _, col := range playerColumns {
			header = append(header, fmt.Sprintf("Player%d_%s", i, col))
		}
	}

	e := &CSVExporter{writer: csv.NewWriter(w)}
	if err := e.writer.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}
	e.writer.Flush()
	return e, e.writer.Error()
}

// WriteResult writes a single game result. Failed games are skipped.
func (e *CSVExporter) WriteResult(r GameResult) error {
	if r.Err != nil {
		return nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	order := ""
	for i, id := range r.EliminationOrder {
		if i > 0 {
			order += " "
		}
		order += strconv.Itoa(id)
	}
	record := []string{
		r.GameID,
		strconv.FormatInt(r.Seed, 10),
		strconv.Itoa(r.Winner),
		strconv.Itoa(r.Turns),
		order,
	}
	for i := 0; i < domain.PlayerCount; i++ {
		if i >= len(r.Players) {
			record = append(record, "", "", "", "0", "0", "0", "0")
			continue
		}
		p := r.Players[i]
		record = append(record,
			p.Name,
			string(p.Skill),
			string(p.Personality),
			strconv.Itoa(p.Guesses),
			strconv.Itoa(p.Correct),
			strconv.Itoa(p.Continues),
			strconv.Itoa(p.Place),
		)
	}

	if err := e.writer.Write(record); err != nil {
		return fmt.Errorf("failed to write CSV record: %w", err)
	}
	e.writer.Flush()
	return e.writer.Error()
}

// WriteReport writes every result in the report.
func (e *CSVExporter) WriteReport(r Report) error {
	for _, res := range r.Results {
		if err := e.WriteResult(res); err != nil {
			return err
		}
	}
	return nil
}
