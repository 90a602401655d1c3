package projects

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"folio.dev/internal/models"
)

// Policy selects the presentation order of a project list
type Policy int

const (
	// PolicyShowcase puts maintained projects first, each group ordered by name
	PolicyShowcase Policy = iota
	// PolicyRanked orders by stars, most first, keeping input order on ties
	PolicyRanked
)

// ErrUnknownPolicy is returned by ParsePolicy for unrecognised names
var ErrUnknownPolicy = errors.New("unknown sort policy")

func (p Policy) String() string {
	switch p {
	case PolicyShowcase:
		return "showcase"
	case PolicyRanked:
		return "ranked"
	}
	return fmt.Sprintf("Policy(%d)", int(p))
}

// ParsePolicy maps a query/flag value to a Policy. The empty string
// selects PolicyShowcase.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "showcase", "grid", "name":
		return PolicyShowcase, nil
	case "ranked", "stars", "popular":
		return PolicyRanked, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
}

// Buffer drains seq into a slice in the order the items were produced.
// An error that ended the sequence is returned unchanged, with no partial list.
func Buffer(seq *Sequence) ([]models.Project, error) {
	defer seq.Close()

	out := []models.Project{}
	for p := range seq.All() {
		out = append(out, p)
	}
	if err := seq.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Sort returns a copy of list ordered by policy. Both policies are stable.
func Sort(list []models.Project, policy Policy) []models.Project {
	out := slices.Clone(list)

	switch policy {
	case PolicyRanked:
		slices.SortStableFunc(out, func(a, b models.Project) int {
			return cmp.Compare(b.Stars, a.Stars)
		})
	default:
		// collators keep scratch buffers and are not safe to share
		coll := collate.New(language.English)
		slices.SortStableFunc(out, func(a, b models.Project) int {
			if a.Archived != b.Archived {
				if a.Archived {
					return 1
				}
				return -1
			}
			return coll.CompareString(a.Name, b.Name)
		})
	}
	return out
}

// Aggregate loads every project from src and orders it by policy
func Aggregate(ctx context.Context, src Source, policy Policy) ([]models.Project, error) {
	list, err := Buffer(Load(ctx, src))
	if err != nil {
		return nil, err
	}
	return Sort(list, policy), nil
}

// Payload converts list to records with every absent field removed,
// ready to cross a serialization boundary
func Payload(list []models.Project) []models.Record {
	records := make([]models.Record, len(list))
	for i, p := range list {
		records[i] = p.Record()
	}
	return DeleteUndefined(records)
}

// DeleteUndefined returns copies of records with every key whose value
// is absent (nil) removed, descending into nested maps and slices.
// Explicit zero values such as 0, false and "" are kept. The input is
// not modified.
func DeleteUndefined(records []models.Record) []models.Record {
	out := make([]models.Record, len(records))
	for i, r := range records {
		out[i] = models.Record(cleanMap(r))
	}
	return out
}

func cleanMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		if isAbsent(v) {
			continue
		}
		out[k] = cleanValue(v)
	}
	return out
}

func cleanValue(v any) any {
	switch t := v.(type) {
	case models.Record:
		return models.Record(cleanMap(t))
	case map[string]any:
		return cleanMap(t)
	case []models.Record:
		return DeleteUndefined(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			if isAbsent(e) {
				// list positions are kept; only keys can be omitted
				continue
			}
			out[i] = cleanValue(e)
		}
		return out
	}
	return v
}

func isAbsent(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
