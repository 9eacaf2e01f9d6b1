// Package urlstate maps a FilterState to and from URL query parameters, so a
// listing URL fully describes the view it shows.
package urlstate

import (
	"errors"
	"net/url"
	"strings"

	"doctor-directory/internal/domain/entity"
)

const (
	ParamSearch      = "search"
	ParamMode        = "mode"
	ParamSpecialties = "specialties"
	ParamSort        = "sort"
)

var ErrNotHydrated = errors.New("filter state has not been hydrated from the URL")

// Decode reads the four filter parameters. Missing or unrecognized values
// leave the corresponding field at its default.
func Decode(values url.Values) entity.FilterState {
	return entity.FilterState{
		Search:      values.Get(ParamSearch),
		Mode:        entity.ParseConsultationMode(values.Get(ParamMode)),
		Specialties: splitSpecialties(values.Get(ParamSpecialties)),
		Sort:        entity.ParseSortKey(values.Get(ParamSort)),
	}
}

// Encode writes state back, omitting every parameter that holds a default.
func Encode(state entity.FilterState) url.Values {
	values := url.Values{}
	if state.Search != "" {
		values.Set(ParamSearch, state.Search)
	}
	if state.Mode != entity.ModeNone {
		values.Set(ParamMode, string(state.Mode))
	}
	if len(state.Specialties) > 0 {
		values.Set(ParamSpecialties, strings.Join(state.Specialties, ","))
	}
	if state.Sort != entity.SortNone {
		values.Set(ParamSort, string(state.Sort))
	}
	return values
}

// Query is the canonical encoded query string for state, "" for the default.
func Query(state entity.FilterState) string {
	return Encode(state).Encode()
}

// Merge replaces the filter parameters in values with those of state and keeps
// every unrelated parameter.
func Merge(values url.Values, state entity.FilterState) url.Values {
	merged := url.Values{}
	for k, v := range values {
		switch k {
		case ParamSearch, ParamMode, ParamSpecialties, ParamSort:
			continue
		}
		merged[k] = append([]string(nil), v...)
	}
	for k, v := range Encode(state) {
		merged[k] = v
	}
	return merged
}

func splitSpecialties(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	var out []string
	seen := make(map[string]struct{})
	for _, part := range strings.Split(raw, ",") {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}
