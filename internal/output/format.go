// Package output renders translation results as text, CSV or JSON.
package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/ralt/rpm2cpe/internal/cpe"
	"github.com/ralt/rpm2cpe/internal/models"
	"github.com/ralt/rpm2cpe/internal/translator"
)

// Entry is the JSON form of one filename's identifiers
type Entry struct {
	CPE []cpe.Record `json:"cpe"`
}

// ErrorEntry is the JSON form of a failed source
type ErrorEntry struct {
	Error string `json:"error"`
}

// ValidateFormat checks that format is one of text, json and csv
func ValidateFormat(format string) error {
	switch format {
	case models.FormatText, models.FormatJSON, models.FormatCSV:
		return nil
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// FormatRPMs renders the translation of individual filenames. order lists
// the result keys in the order they were requested; keys missing from the
// result are skipped.
func FormatRPMs(format string, order []string, result translator.Result) ([]byte, error) {
	names := make([]string, 0, len(order))
	for _, name := range order {
		if _, ok := result[name]; ok && !slices.Contains(names, name) {
			names = append(names, name)
		}
	}

	switch format {
	case models.FormatText:
		var lines []string
		for _, name := range names {
			lines = append(lines, cpe.MatchStrings(result[name])...)
		}
		return joinLines(lines), nil

	case models.FormatCSV:
		var rows [][]string
		for _, name := range names {
			for _, id := range cpe.MatchStrings(result[name]) {
				rows = append(rows, []string{name, id})
			}
		}
		return writeCSV(rows)

	case models.FormatJSON:
		return marshal(entries(result, names))

	default:
		return nil, ValidateFormat(format)
	}
}

// FormatReports renders the translation of whole package sources. Text and
// CSV output is sorted and deduplicated; failed sources are shown as
// labelled errors.
func FormatReports(format string, reports []translator.Report) ([]byte, error) {
	switch format {
	case models.FormatText:
		var out bytes.Buffer
		for _, r := range reports {
			if r.Err != nil {
				fmt.Fprintf(&out, "%s: %s\n", r.Name, r.Message())
				continue
			}
			out.Write(joinLines(r.Result.Identifiers()))
		}
		return out.Bytes(), nil

	case models.FormatCSV:
		var out bytes.Buffer
		for _, r := range reports {
			var rows [][]string
			if r.Err != nil {
				rows = append(rows, []string{r.Name, "error", r.Message()})
			}
			for name, cpes := range r.Result {
				for _, id := range cpe.MatchStrings(cpes) {
					rows = append(rows, []string{r.Name, name, id})
				}
			}
			data, err := writeCSV(sortedUnique(rows))
			if err != nil {
				return nil, err
			}
			out.Write(data)
		}
		return out.Bytes(), nil

	case models.FormatJSON:
		doc := make(map[string]any, len(reports))
		for _, r := range reports {
			if r.Err != nil {
				doc[r.Name] = ErrorEntry{Error: r.Message()}
				continue
			}
			doc[r.Name] = entries(r.Result, r.Result.Names())
		}
		return marshal(doc)

	default:
		return nil, ValidateFormat(format)
	}
}

func entries(result translator.Result, names []string) map[string]Entry {
	doc := make(map[string]Entry, len(names))
	for _, name := range names {
		records := make([]cpe.Record, 0, len(result[name]))
		for _, c := range result[name] {
			records = append(records, c.Record())
		}
		doc[name] = Entry{CPE: records}
	}
	return doc
}

// marshal renders pretty JSON; map keys come out sorted
func marshal(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return append(data, '\n'), nil
}

func writeCSV(rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(rows); err != nil {
		return nil, fmt.Errorf("failed to write CSV: %w", err)
	}
	return buf.Bytes(), nil
}

func sortedUnique(rows [][]string) [][]string {
	slices.SortFunc(rows, slices.Compare[[]string])
	return slices.CompactFunc(rows, slices.Equal[[]string])
}

func joinLines(lines []string) []byte {
	if len(lines) == 0 {
		return nil
	}
	return []byte(strings.Join(lines, "\n") + "\n")
}
