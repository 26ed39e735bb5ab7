// Package ingest reads course catalogs and selections from disk for the
// CLIs. The engine itself never touches files; it only sees the validated
// catalog this package produces.
package ingest

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"courseplan/internal/catalog"

	"github.com/gocarina/gocsv"
	"github.com/mitchellh/mapstructure"
	"github.com/samber/lo"
)

type SlotInput struct {
	Day    uint8
	Period int
}

type SectionInput struct {
	Code       string
	MainCode   string `mapstructure:"mainCode"`
	Name       string
	Credit     int
	Kind       string
	Instructor string
	Slots      []SlotInput
}

// Input is one catalog plus the student's selection.
type Input struct {
	Sections  []SectionInput
	Mandatory []string
	Optional  []string
}

// FromFile dispatches on the file extension: .csv rows or a .json document.
func FromFile(path string) (Input, error) {
	if strings.HasSuffix(strings.ToLower(path), ".csv") {
		return FromCSV(path)
	}
	return FromJSON(path)
}

// FromJSON decodes an input document of the shape
//
//	{"sections": [...], "mandatory": [...], "optional": [...]}
func FromJSON(path string) (Input, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return Input{}, err
	}

	var inputJson map[string]any
	if err := json.Unmarshal(bytes, &inputJson); err != nil {
		return Input{}, err
	}

	var input Input
	if err := mapstructure.Decode(inputJson, &input); err != nil {
		return Input{}, err
	}
	return input, nil
}

// sectionRow is the CSV shape: one section per row, slots encoded as
// "day:period" pairs joined by '|', selection marking the row's course as
// mandatory or optional.
type sectionRow struct {
	Code       string `csv:"code"`
	MainCode   string `csv:"main_code"`
	Name       string `csv:"name"`
	Credit     int    `csv:"credit"`
	Kind       string `csv:"kind"`
	Instructor string `csv:"instructor"`
	Slots      string `csv:"slots"`
	Selection  string `csv:"selection"`
}

// FromCSV reads a catalog of sectionRow records.
func FromCSV(path string) (Input, error) {
	file, err := os.Open(path)
	if err != nil {
		return Input{}, err
	}
	defer file.Close()

	var rows []sectionRow
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		return Input{}, fmt.Errorf("cannot parse %v: %w", path, err)
	}

	input := Input{}
	for i, row := range rows {
		slots, err := parseSlots(row.Slots)
		if err != nil {
			return Input{}, fmt.Errorf("row %d: %w", i, err)
		}
		input.Sections = append(input.Sections, SectionInput{
			Code:       row.Code,
			MainCode:   row.MainCode,
			Name:       row.Name,
			Credit:     row.Credit,
			Kind:       row.Kind,
			Instructor: row.Instructor,
			Slots:      slots,
		})
		switch row.Selection {
		case "mandatory":
			input.Mandatory = append(input.Mandatory, row.MainCode)
		case "optional":
			input.Optional = append(input.Optional, row.MainCode)
		case "":
		default:
			return Input{}, fmt.Errorf("row %d: %q is not a valid selection", i, row.Selection)
		}
	}
	input.Mandatory = lo.Uniq(input.Mandatory)
	input.Optional = lo.Uniq(input.Optional)
	return input, nil
}

func parseSlots(encoded string) ([]SlotInput, error) {
	if encoded == "" {
		return nil, nil
	}
	var slots []SlotInput
	for _, pair := range strings.Split(encoded, "|") {
		parts := strings.Split(pair, ":")
		if len(parts) != 2 {
			return nil, fmt.Errorf("%q is not a day:period slot", pair)
		}
		day, err := strconv.Atoi(parts[0])
		if err != nil {
			return nil, fmt.Errorf("invalid slot day %q: %w", parts[0], err)
		}
		period, err := strconv.Atoi(parts[1])
		if err != nil {
			return nil, fmt.Errorf("invalid slot period %q: %w", parts[1], err)
		}
		slots = append(slots, SlotInput{Day: uint8(day), Period: period})
	}
	return slots, nil
}

// Catalog validates and converts the raw sections into the engine's model.
func (in Input) Catalog() (*catalog.Catalog, error) {
	sections := make([]catalog.Section, len(in.Sections))
	for i, raw := range in.Sections {
		kind, err := catalog.ParseKind(raw.Kind)
		if err != nil {
			return nil, fmt.Errorf("section %q: %w", raw.Code, err)
		}
		sections[i] = catalog.Section{
			Code:       raw.Code,
			MainCode:   raw.MainCode,
			Name:       raw.Name,
			Credit:     raw.Credit,
			Kind:       kind,
			Instructor: raw.Instructor,
			Slots: lo.Map(raw.Slots, func(slot SlotInput, _ int) catalog.TimeSlot {
				return catalog.TimeSlot{Day: catalog.Day(slot.Day), Period: slot.Period}
			}),
		}
	}
	return catalog.New(sections)
}
