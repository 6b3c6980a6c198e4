// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"regexp"
	"strings"

	"github.com/poiesic/recommendit/core"
)

// Column names recognized in the catalog CSV header, lowercased.
// Several aliases are accepted because catalog exports are not consistent
// about their headers.
var columnAliases = map[string]string{
	"assessment name":        "name",
	"name":                   "name",
	"url":                    "url",
	"link":                   "url",
	"duration":               "duration",
	"duration (minutes)":     "duration",
	"remote testing support": "remote",
	"remote":                 "remote",
	"adaptive/irt":           "adaptive",
	"adaptive":               "adaptive",
	"test type":              "category",
	"category":               "category",
	"skills":                 "skills",
	"description":            "description",
}

// requiredColumns must all be present in the header for a load to succeed.
var requiredColumns = []string{"name", "category"}

var digitsPattern = regexp.MustCompile(`\d+`)

// Load reads the catalog CSV at path into typed assessment records.
// A missing or unreadable file is fatal: there is no partial catalog.
func Load(path string) ([]*core.Assessment, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalogUnreadable, err)
	}
	defer f.Close()

	records, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return records, nil
}

// Read parses catalog CSV rows into typed assessment records. The first row
// is the header. Recognized fields are type-coerced; unrecognized or missing
// fields resolve to the type's zero value. Returns one record per data row.
func Read(r io.Reader) ([]*core.Assessment, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // tolerate ragged rows; missing cells become zero values

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: reading header: %v", ErrCatalogUnreadable, err)
	}

	columns := make(map[string]int) // canonical field name -> column index
	for i, name := range header {
		canonical, ok := columnAliases[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			continue
		}
		if _, dup := columns[canonical]; !dup {
			columns[canonical] = i
		}
	}

	for _, required := range requiredColumns {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumns, required)
		}
	}

	var assessments []*core.Assessment
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCatalogUnreadable, err)
		}

		cell := func(field string) string {
			idx, ok := columns[field]
			if !ok || idx >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[idx])
		}

		a := &core.Assessment{
			Name:            cell("name"),
			URL:             cell("url"),
			DurationMinutes: parseDuration(cell("duration")),
			RemoteCapable:   parseYesNo(cell("remote")),
			Adaptive:        parseYesNo(cell("adaptive")),
			Category:        cell("category"),
			Skills:          cell("skills"),
			Description:     cell("description"),
		}

		if err := core.ValidateAssessment(a); err != nil {
			slog.Warn("skipping invalid catalog row", "name", a.Name, "err", err)
			continue
		}
		assessments = append(assessments, a)
	}

	return assessments, nil
}

// parseDuration extracts the first run of digits from a duration cell.
// Handles free-text forms like "30 mins" or "45 minutes"; anything without
// digits resolves to 0.
func parseDuration(s string) int {
	digits := digitsPattern.FindString(s)
	if digits == "" {
		return 0
	}
	n := 0
	for _, ch := range digits {
		n = n*10 + int(ch-'0')
	}
	return n
}

// parseYesNo coerces Yes/No-style cells to bool. Unrecognized values are false.
func parseYesNo(s string) bool {
	switch strings.ToLower(s) {
	case "yes", "y", "true", "1":
		return true
	default:
		return false
	}
}
