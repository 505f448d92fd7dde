// Package resolver finds a single menu item from a loosely typed identifier:
// a numeric id, a business id, a stored slug or a slug derived from the name.
package resolver

import (
	"errors"
	"strconv"
	"strings"

	"github.com/spec-kit/coffee-shop-service/internal/domain"
)

var (
	// ErrInvalidQuery is returned for empty or whitespace-only identifiers.
	ErrInvalidQuery = errors.New("resolver: identifier required")
	// ErrNotFound is returned when no item matches.
	ErrNotFound = errors.New("resolver: no matching item")
)

// Strategy names the rule that matched an item. Lower values take priority.
type Strategy int

const (
	MatchPrimaryExact Strategy = iota + 1
	MatchExternalExact
	MatchPrimaryFold
	MatchExternalFold
	MatchSlug
	MatchNameSlug
	MatchPrimaryNumeric
	MatchExternalNumeric
)

var strategyNames = map[Strategy]string{
	MatchPrimaryExact:    "primary_exact",
	MatchExternalExact:   "external_exact",
	MatchPrimaryFold:     "primary_fold",
	MatchExternalFold:    "external_fold",
	MatchSlug:            "slug",
	MatchNameSlug:        "name_slug",
	MatchPrimaryNumeric:  "primary_numeric",
	MatchExternalNumeric: "external_numeric",
}

func (s Strategy) String() string {
	if name, ok := strategyNames[s]; ok {
		return name
	}
	return "unknown"
}

// Candidate is an item that satisfied at least one strategy. Strategy holds the
// strongest one.
type Candidate struct {
	Item     domain.MenuItem
	Index    int
	Strategy Strategy
}

// Result is the outcome of a successful resolution.
type Result struct {
	Item       domain.MenuItem
	Strategy   Strategy
	Candidates []Candidate
}

// Ambiguous reports whether more than one item matched the query.
func (r Result) Ambiguous() bool {
	return len(r.Candidates) > 1
}

// Query is a normalized identifier. The numeric form is the leading integer
// prefix, when there is one.
type Query struct {
	Normalized string
	Lowered    string
	numeric    int64
	hasNumeric bool
}

// ParseQuery trims raw and prepares its lower-cased and numeric forms.
func ParseQuery(raw string) (Query, error) {
	normalized := strings.TrimSpace(raw)
	if normalized == "" {
		return Query{}, ErrInvalidQuery
	}
	q := Query{Normalized: normalized, Lowered: strings.ToLower(normalized)}
	if n, ok := leadingInt(normalized); ok {
		q.numeric = n
		q.hasNumeric = true
	}
	return q, nil
}

// leadingInt parses the optional sign and decimal digits at the start of s,
// ignoring whatever follows. "7-caramel-latte" and "7.0" both yield 7.
func leadingInt(s string) (int64, bool) {
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Match returns the strongest strategy satisfied by item, or false.
func (q Query) Match(item domain.MenuItem) (Strategy, bool) {
	idText := item.IDText()
	external := item.ExternalID()

	switch {
	case idText == q.Normalized:
		return MatchPrimaryExact, true
	case external != "" && external == q.Normalized:
		return MatchExternalExact, true
	case strings.ToLower(idText) == q.Lowered:
		return MatchPrimaryFold, true
	case external != "" && strings.ToLower(external) == q.Lowered:
		return MatchExternalFold, true
	case item.SlugText() != "" && item.SlugText() == q.Lowered:
		return MatchSlug, true
	case item.NameSlug() != "" && item.NameSlug() == q.Lowered:
		return MatchNameSlug, true
	}

	if !q.hasNumeric {
		return 0, false
	}
	if item.ID == q.numeric {
		return MatchPrimaryNumeric, true
	}
	if external != "" {
		if f, err := strconv.ParseFloat(external, 64); err == nil && f == float64(q.numeric) {
			return MatchExternalNumeric, true
		}
	}
	return 0, false
}

// Candidates returns every item matching raw, in catalog order.
func Candidates(raw string, catalog []domain.MenuItem) ([]Candidate, error) {
	q, err := ParseQuery(raw)
	if err != nil {
		return nil, err
	}
	var out []Candidate
	for i, item := range catalog {
		if s, ok := q.Match(item); ok {
			out = append(out, Candidate{Item: item, Index: i, Strategy: s})
		}
	}
	return out, nil
}

// Resolve picks one item for raw. A primary identifier exact match always
// wins, even over a candidate earlier in the catalog, so the choice departs
// from plain scan order; otherwise the first candidate in catalog order is
// chosen. All candidates are returned so callers can report collisions.
func Resolve(raw string, catalog []domain.MenuItem) (Result, error) {
	candidates, err := Candidates(raw, catalog)
	if err != nil {
		return Result{}, err
	}
	if len(candidates) == 0 {
		return Result{}, ErrNotFound
	}

	winner := candidates[0]
	for _, c := range candidates {
		if c.Strategy == MatchPrimaryExact {
			winner = c
			break
		}
	}
	return Result{Item: winner.Item, Strategy: winner.Strategy, Candidates: candidates}, nil
}
