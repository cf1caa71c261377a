package stats

import (
	"sort"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/nao1215/pdfredact/internal/model"
)

// NoFindings is returned by Format when no category has a positive count.
const NoFindings = "No sensitive information detected"

// entrySeparator joins rendered entries.
const entrySeparator = ", "

// Entry is one category with a positive count, ready for display.
type Entry struct {
	// Category is the raw category key, e.g. "credit_card_number".
	Category string `json:"category"`

	// DisplayName is the human-readable name, e.g. "Credit Card Number".
	DisplayName string `json:"display_name"`

	// Count is the number of redactions. Always positive.
	Count int `json:"count"`
}

// String renders the entry as "<DisplayName>: <count>".
func (e Entry) String() string {
	return e.DisplayName + ": " + strconv.Itoa(e.Count)
}

// Entries returns the categories with a positive count, sorted by count
// descending. Equal counts are ordered by category key ascending.
func Entries(counts model.CategoryCounts) []Entry {
	entries := make([]Entry, 0, len(counts))
	for category, count := range counts {
		if count <= 0 {
			continue
		}
		entries = append(entries, Entry{
			Category:    category,
			DisplayName: DisplayName(category),
			Count:       count,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Category < entries[j].Category
	})

	return entries
}

// Format renders counts as a single summary line, for example
// "Phone Number: 5, Email Address: 3". Zero and negative counts are left out.
// When nothing remains, NoFindings is returned.
func Format(counts model.CategoryCounts) string {
	entries := Entries(counts)
	if len(entries) == 0 {
		return NoFindings
	}

	parts := make([]string, len(entries))
	for i, e := range entries {
		parts[i] = e.String()
	}
	return strings.Join(parts, entrySeparator)
}

// DisplayName converts a snake_case category key into display form:
// underscores become spaces and the first character of every word is
// upper-cased. A word starting with a digit keeps its letters as they are,
// so "2fa_code" becomes "2fa Code".
func DisplayName(category string) string {
	spaced := strings.ReplaceAll(category, "_", " ")
	// A Caser keeps state between calls, so a fresh one is built per call.
	upper := cases.Upper(language.English)

	var sb strings.Builder
	sb.Grow(len(spaced))
	inWord := false
	for _, r := range spaced {
		word := unicode.IsLetter(r) || unicode.IsDigit(r)
		if word && !inWord {
			sb.WriteString(upper.String(string(r)))
		} else {
			sb.WriteRune(r)
		}
		inWord = word
	}
	return sb.String()
}
