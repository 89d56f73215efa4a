// Package dataset loads the gazetteer and facility snapshots the
// server serves from. Snapshots are plain CSV files with a header row.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/carepoint/caresearch/internal/polish"
	"github.com/carepoint/caresearch/model"
)

// LoadGazetteer reads gazetteer locations from a CSV file with columns
// name, district, region. NormalizedName is derived on load.
func LoadGazetteer(path string) ([]model.GazetteerLocation, error) {
	rows, err := readCSV(path, 3)
	if err != nil {
		return nil, fmt.Errorf("failed to load gazetteer from %s: %w", path, err)
	}

	locations := make([]model.GazetteerLocation, 0, len(rows))
	for _, row := range rows {
		locations = append(locations, model.GazetteerLocation{
			Name:           row[0],
			NormalizedName: polish.Normalize(row[0]),
			District:       row[1],
			Region:         row[2],
		})
	}
	return locations, nil
}

// LoadFacilities reads facilities from a CSV file with columns
// id, name, type, city, commune, district, region, phone, cost.
func LoadFacilities(path string) ([]model.Facility, error) {
	rows, err := readCSV(path, 9)
	if err != nil {
		return nil, fmt.Errorf("failed to load facilities from %s: %w", path, err)
	}

	facilities := make([]model.Facility, 0, len(rows))
	for i, row := range rows {
		cost := 0.0
		if row[8] != "" {
			cost, err = strconv.ParseFloat(row[8], 64)
			if err != nil {
				return nil, fmt.Errorf("invalid cost %q on row %d of %s", row[8], i+2, path)
			}
		}
		facilities = append(facilities, model.Facility{
			ID:       row[0],
			Name:     row[1],
			Type:     ParseFacilityType(row[2]),
			City:     row[3],
			Commune:  row[4],
			District: row[5],
			Region:   row[6],
			Phone:    row[7],
			Cost:     cost,
		})
	}
	return facilities, nil
}

// ParseFacilityType canonicalizes imported type markers. Source data
// spells the day-care marker with a diacritic ("ŚDS") and joins
// dual registrations with various separators; the canonical form is
// ASCII with "+" between markers.
func ParseFacilityType(raw string) model.FacilityType {
	normalized := polish.Normalize(raw)

	hasResidential := strings.Contains(normalized, "dps")
	hasDayCare := strings.Contains(normalized, "sds")

	switch {
	case hasResidential && hasDayCare:
		return model.FacilityType("DPS+SDS")
	case hasResidential:
		return model.TypeResidential
	case hasDayCare:
		return model.TypeDayCare
	}
	return model.FacilityType(strings.ToUpper(strings.TrimSpace(raw)))
}

// readCSV reads all data rows of a headered CSV file, requiring at
// least minFields columns per row.
func readCSV(path string, minFields int) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // validated per row below

	if _, err := reader.Read(); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("file is empty")
		}
		return nil, err
	}

	var rows [][]string
	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}
		if len(row) < minFields {
			return nil, fmt.Errorf("row %d: expected at least %d fields, got %d", line, minFields, len(row))
		}
		rows = append(rows, row)
	}
	return rows, nil
}
