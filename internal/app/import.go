package app

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"moviebase/internal/util"
	"moviebase/pkg/domain"
)

// ImportResult summarizes one bulk import.
type ImportResult struct {
	Added   int `json:"added"`
	Updated int `json:"updated"`
}

// ImportMoviesFromFile reads a spreadsheet and syncs its rows into the
// catalog by title: unknown titles are created, known titles are updated
// when any field differs. extraKeys names the columns to fold into each
// movie's additional info list, in the given order. Enrichment info on
// existing movies is never touched.
func (a *App) ImportMoviesFromFile(ctx context.Context, filename string, r io.Reader, extraKeys []string) (ImportResult, error) {
	var rows [][]string
	var err error
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
		rows, err = readXLSX(r)
	case ".csv":
		rows, err = readCSV(r)
	default:
		return ImportResult{}, ErrUnsupportedFileType
	}
	if err != nil {
		return ImportResult{}, err
	}
	if len(rows) < 2 {
		return ImportResult{}, validationf("file has no data rows")
	}

	incoming := recordsFromRows(rows, extraKeys)
	if len(incoming) == 0 {
		return ImportResult{}, validationf("file has no rows with a title")
	}

	existing, err := a.store.ListMovies()
	if err != nil {
		return ImportResult{}, err
	}
	// titles match exactly; "alien" and "Alien" are distinct movies
	byTitle := make(map[string]domain.Movie, len(existing))
	for _, m := range existing {
		byTitle[m.Title] = m
	}

	var result ImportResult
	now := time.Now().UTC()
	var toCreate []domain.Movie
	for _, rec := range incoming {
		current, ok := byTitle[rec.Title]
		if !ok {
			rec.ID = util.NewID()
			rec.CreatedAt = now
			rec.UpdatedAt = now
			toCreate = append(toCreate, rec)
			byTitle[rec.Title] = rec
			result.Added++
			continue
		}
		if !movieNeedsSync(current, rec) {
			continue
		}
		current.Director = rec.Director
		current.Year = rec.Year
		current.Country = rec.Country
		current.Length = rec.Length
		current.Genre = rec.Genre
		current.Colour = rec.Colour
		current.AdditionalInfo = rec.AdditionalInfo
		current.UpdatedAt = now
		if err := a.store.SaveMovie(current); err != nil {
			return ImportResult{}, fmt.Errorf("update movie %q: %w", current.Title, err)
		}
		result.Updated++
	}
	if len(toCreate) > 0 {
		if err := a.store.SaveMovies(toCreate); err != nil {
			return ImportResult{}, fmt.Errorf("create movies: %w", err)
		}
	}
	if result.Added > 0 || result.Updated > 0 {
		a.invalidateMovies(ctx)
	}
	return result, nil
}

// movieNeedsSync reports whether the stored movie differs from the imported
// record on any catalog field.
func movieNeedsSync(current, rec domain.Movie) bool {
	if current.Director != rec.Director ||
		current.Year != rec.Year ||
		current.Country != rec.Country ||
		current.Length != rec.Length ||
		current.Genre != rec.Genre ||
		current.Colour != rec.Colour {
		return true
	}
	if len(current.AdditionalInfo) != len(rec.AdditionalInfo) {
		return true
	}
	for i := range rec.AdditionalInfo {
		if current.AdditionalInfo[i] != rec.AdditionalInfo[i] {
			return true
		}
	}
	return false
}

func readXLSX(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, validationf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read xlsx rows: %w", err)
	}
	return rows, nil
}

func readCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return rows, nil
}

// recordsFromRows maps header names to movie fields. Rows without a title
// are skipped.
func recordsFromRows(rows [][]string, extraKeys []string) []domain.Movie {
	headers := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		headers[strings.ToLower(strings.TrimSpace(h))] = i
	}
	cell := func(row []string, name string) string {
		i, ok := headers[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var records []domain.Movie
	for _, row := range rows[1:] {
		title := cell(row, "title")
		if title == "" {
			continue
		}
		m := domain.Movie{
			Title:    title,
			Director: cell(row, "director"),
			Year:     cell(row, "year"),
			Country:  cell(row, "country"),
			Genre:    cell(row, "genre"),
			Colour:   cell(row, "colour"),
		}
		if v := cell(row, "length"); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				m.Length = n
			}
		}
		for _, key := range extraKeys {
			v := cell(row, strings.ToLower(strings.TrimSpace(key)))
			if v == "" {
				continue
			}
			m.AdditionalInfo = append(m.AdditionalInfo, domain.InfoPair{Type: key, Value: v})
		}
		records = append(records, m)
	}
	return records
}
