// Package report renders leaderboards as XLSX workbooks and PNG charts and
// reads paper scorecards typed into a spreadsheet.
package report

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/padraicbc/golftrip/leaderboard"
	"github.com/padraicbc/golftrip/scoring"
)

const (
	teamsSheet   = "Teams"
	playersSheet = "Players"
	cardSheet    = "Scorecard"
	parLabel     = "Par"
)

var ErrMalformedScorecard = errors.New("malformed scorecard")

func roundDisplay(r scoring.RoundSummary, mode scoring.Mode) string {
	switch mode {
	case scoring.ModeNet:
		return scoring.FormatScore(r.Net, r.Par)
	case scoring.ModeStableford:
		return scoring.FormatPoints(r.Stableford)
	default:
		return scoring.FormatScore(r.Gross, r.Par)
	}
}

func boldRow(f *excelize.File, sheet string, row int) error {
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	return f.SetRowStyle(sheet, row, row, style)
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

// LeaderboardWorkbook writes a ranked leaderboard to an XLSX workbook with a
// team sheet and a player sheet that has one column per course in scope.
func LeaderboardWorkbook(board []leaderboard.TeamSummary, scope []scoring.Course, mode scoring.Mode) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), teamsSheet); err != nil {
		return nil, err
	}
	teamHeader := []interface{}{"Rank", "Team", "Captain", "Total", "Gross", "Net", "Stableford", "Courses", "Eagles", "Birdies", "Three putts", "Rings"}
	if err := setRow(f, teamsSheet, 1, teamHeader); err != nil {
		return nil, err
	}
	if err := boldRow(f, teamsSheet, 1); err != nil {
		return nil, err
	}
	for i, t := range board {
		row := []interface{}{
			t.Rank, t.Name, t.CaptainName, t.Display(mode),
			t.Gross, t.Net, t.Stableford, t.CoursesPlayed,
			t.Stats.Eagles, t.Stats.Birdies, t.Stats.ThreePutts, t.Stats.Rings,
		}
		if err := setRow(f, teamsSheet, i+2, row); err != nil {
			return nil, fmt.Errorf("writing team %q: %w", t.Name, err)
		}
	}

	if _, err := f.NewSheet(playersSheet); err != nil {
		return nil, err
	}
	playerHeader := []interface{}{"Team", "Player", "Handicap"}
	for _, c := range scope {
		playerHeader = append(playerHeader, c.Name)
	}
	playerHeader = append(playerHeader, "Total")
	if err := setRow(f, playersSheet, 1, playerHeader); err != nil {
		return nil, err
	}
	if err := boldRow(f, playersSheet, 1); err != nil {
		return nil, err
	}

	row := 2
	for _, t := range board {
		for _, m := range t.Members {
			values := []interface{}{t.Name, m.Name, m.HandicapIndex}
			for _, c := range scope {
				cell := "-"
				if r, ok := m.Round(c.Key); ok {
					cell = roundDisplay(r, mode)
				}
				values = append(values, cell)
			}
			values = append(values, m.Display(mode))
			if err := setRow(f, playersSheet, row, values); err != nil {
				return nil, fmt.Errorf("writing player %q: %w", m.Name, err)
			}
			row++
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("encoding workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// PlayerCard is one player's row of a typed-up scorecard. A zero stroke means
// the hole was not scored.
type PlayerCard struct {
	Username string
	Strokes  [scoring.HolesPerRound]int
}

// Scorecard is a parsed scorecard sheet.
type Scorecard struct {
	Pars    [scoring.HolesPerRound]int
	Players []PlayerCard
}

// Entries converts a player's row into score entries, skipping blank holes.
func (p PlayerCard) Entries(playerID, courseKey string) []scoring.ScoreEntry {
	var out []scoring.ScoreEntry
	for i, s := range p.Strokes {
		if s == 0 {
			continue
		}
		out = append(out, scoring.ScoreEntry{PlayerID: playerID, CourseKey: courseKey, Hole: i + 1, Strokes: s})
	}
	return out
}

// ScorecardTemplate writes an empty scorecard for a course: a header row, the
// par row and one row per username.
func ScorecardTemplate(course scoring.Course, usernames []string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), cardSheet); err != nil {
		return nil, err
	}
	header := []interface{}{"Player"}
	pars := []interface{}{parLabel}
	for _, h := range course.Holes {
		header = append(header, h.Number)
		pars = append(pars, h.Par)
	}
	if err := setRow(f, cardSheet, 1, header); err != nil {
		return nil, err
	}
	if err := setRow(f, cardSheet, 2, pars); err != nil {
		return nil, err
	}
	for i, u := range usernames {
		if err := setRow(f, cardSheet, i+3, []interface{}{u}); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("encoding scorecard: %w", err)
	}
	return buf.Bytes(), nil
}

// ParseScorecard reads the first sheet of an XLSX scorecard. Rows before the
// one labelled "Par" are ignored; every non-empty row after it is a player
// username followed by up to 18 strokes.
func ParseScorecard(r io.Reader) (*Scorecard, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: no sheets", ErrMalformedScorecard)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}

	parRow := -1
	for i, row := range rows {
		if len(row) > 0 && strings.EqualFold(strings.TrimSpace(row[0]), parLabel) {
			parRow = i
			break
		}
	}
	if parRow < 0 {
		return nil, fmt.Errorf("%w: no par row", ErrMalformedScorecard)
	}

	card := &Scorecard{}
	if err := parseHoles(rows[parRow][1:], card.Pars[:], 3, 5); err != nil {
		return nil, fmt.Errorf("%w: par row: %v", ErrMalformedScorecard, err)
	}
	for _, p := range card.Pars {
		if p == 0 {
			return nil, fmt.Errorf("%w: par row must list all %d holes", ErrMalformedScorecard, scoring.HolesPerRound)
		}
	}

	for i, row := range rows[parRow+1:] {
		if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
			continue
		}
		p := PlayerCard{Username: strings.TrimSpace(row[0])}
		if err := parseHoles(row[1:], p.Strokes[:], 1, 12); err != nil {
			return nil, fmt.Errorf("%w: row %d (%s): %v", ErrMalformedScorecard, parRow+i+2, p.Username, err)
		}
		card.Players = append(card.Players, p)
	}
	return card, nil
}

// parseHoles fills dst from cells; blank cells stay zero.
func parseHoles(cells []string, dst []int, lo, hi int) error {
	if len(cells) > len(dst) {
		for _, extra := range cells[len(dst):] {
			if strings.TrimSpace(extra) != "" {
				return fmt.Errorf("more than %d holes", len(dst))
			}
		}
		cells = cells[:len(dst)]
	}
	for i, cell := range cells {
		cell = strings.TrimSpace(cell)
		if cell == "" {
			continue
		}
		n, err := strconv.Atoi(cell)
		if err != nil {
			return fmt.Errorf("hole %d: %q is not a number", i+1, cell)
		}
		if n < lo || n > hi {
			return fmt.Errorf("hole %d: %d is outside %d-%d", i+1, n, lo, hi)
		}
		dst[i] = n
	}
	return nil
}
