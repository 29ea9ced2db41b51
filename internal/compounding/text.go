package compounding

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/guttosm/suppository-service/internal/domain/model"
)

// Labels never match across ';' or a line break, so each clause of a message
// such as "N=12; blank 1.8 g; base 0.95" is read on its own.
var (
	unitCountPattern = regexp.MustCompile(`(?i)\bN\b\s*[=:]?\s*(\d+)(\.\d+)?`)
	blankPattern     = regexp.MustCompile(`(?i)\bblank\b[^0-9;\n]*?(\d+(?:\.\d+)?)\s*(mg|g)\b`)
	basePattern      = regexp.MustCompile(`(?i)\bbase\b[^0-9;\n]*?(\d+(?:\.\d+)?)`)
	namedAPIPattern  = regexp.MustCompile(`(?i)(?:\bAPI\s*[:\-]\s*)?([A-Za-z][A-Za-z0-9 _\-]*?)\s*(\d+(?:\.\d+)?)\s*(mg|g)\b\s*,?\s*(?:rho|density|ρ)\s*[:=]?\s*(\d+(?:\.\d+)?)`)
	anonAPIPattern   = regexp.MustCompile(`(?i)\bAPI\s*[:\-]?\s*(\d+(?:\.\d+)?)\s*(mg|g)\b\s*,?\s*\(?\s*(?:rho|density|ρ)\s*[:=]?\s*(\d+(?:\.\d+)?)\s*\)?`)
	bareNumber       = regexp.MustCompile(`^\s*(\d+(?:\.\d+)?)\s*$`)
	wordPattern      = regexp.MustCompile(`\S+`)
)

// Words that open a field clause rather than an API name.
var labelWords = map[string]bool{"blank": true, "base": true, "n": true}

// Unit tokens end a field value, so a name never starts before one.
var unitWords = map[string]bool{"mg": true, "g": true, "ml": true}

var connectorWords = map[string]bool{"and": true, "with": true, "plus": true, "then": true}

// ParseResult is the outcome of reading one chat message.
type ParseResult struct {
	// State is the updated copy; the state passed in is never modified.
	State model.ChatState
	// Missing lists required fields still absent after this message.
	Missing []string
	// Updated lists the fields this message set, in the order they were read.
	Updated []string
	// Warnings describes values that were ignored or guessed.
	Warnings []string
}

// ParseText extracts batch fields and API clauses from free text and merges
// them into a copy of state. Scalars are last-write-wins; named components
// merge by case-insensitive name.
func ParseText(state model.ChatState, text string) ParseResult {
	next := state.Clone()
	res := ParseResult{}

	// API clauses are found first so a label word inside an API name
	// ("Vitamin N 150 mg") is not read as a field.
	clauses, skipped := apiClauses(text)
	res.Warnings = append(res.Warnings, skipped...)

	if m := lastFieldMatch(unitCountPattern, text, clauses); m != nil {
		if m[2] != "" {
			res.Warnings = append(res.Warnings, fmt.Sprintf("ignored non-integer unit count %s%s", m[1], m[2]))
		} else if n, err := strconv.Atoi(m[1]); err != nil || n < 1 {
			res.Warnings = append(res.Warnings, fmt.Sprintf("ignored unit count %s: must be at least 1", m[1]))
		} else {
			next.UnitCount = &n
			res.Updated = append(res.Updated, model.FieldUnitCount)
		}
	}

	if m := lastFieldMatch(blankPattern, text, clauses); m != nil {
		v, _ := strconv.ParseFloat(m[1], 64)
		grams, _ := ToGrams(v, m[2])
		next.BlankWeightPerUnitG = &grams
		res.Updated = append(res.Updated, model.FieldBlankWeightPerUnit)
	}

	if m := lastFieldMatch(basePattern, text, clauses); m != nil {
		v, _ := strconv.ParseFloat(m[1], 64)
		if v <= 0 {
			res.Warnings = append(res.Warnings, fmt.Sprintf("ignored base density %s: must be greater than zero", m[1]))
		} else {
			next.BaseDensityGPerML = &v
			res.Updated = append(res.Updated, model.FieldBaseDensity)
		}
	}

	for _, clause := range clauses {
		if clause.rejected {
			continue
		}
		if clause.density <= 0 {
			res.Warnings = append(res.Warnings, fmt.Sprintf("ignored %s: density must be greater than zero", clause.displayName()))
			continue
		}
		name := clause.name
		if name == "" {
			name = DefaultComponentName(len(next.Components) + 1)
		}
		next.Components = mergeComponent(next.Components, model.APIComponent{
			Name:           name,
			AmountPerUnitG: clause.grams,
			DensityGPerML:  clause.density,
		})
		res.Updated = append(res.Updated, model.FieldComponents+":"+name)
	}

	if len(res.Updated) == 0 && len(res.Warnings) == 0 {
		if m := bareNumber.FindStringSubmatch(text); m != nil && onlyBaseDensityMissing(next) {
			v, _ := strconv.ParseFloat(m[1], 64)
			if v > 0 {
				next.BaseDensityGPerML = &v
				res.Updated = append(res.Updated, model.FieldBaseDensity)
				res.Warnings = append(res.Warnings, fmt.Sprintf("read bare number %s as base density (g/mL); label it \"base\" to be sure", m[1]))
			}
		}
	}

	res.State = next
	res.Missing = next.Missing()
	return res
}

// FormatText writes density-mode inputs in the canonical chat form, for
// example "N=12; blank 1.8 g; base 0.95; API: Drug A 0.15 g, rho 1.2".
// Displacement-factor inputs have no chat form and are rejected.
func FormatText(in model.BatchInputs) (string, error) {
	if in.Mode() != model.ModeDensity {
		return "", fmt.Errorf("%w: only density mode can be written as text", ErrModeConflict)
	}
	parts := []string{
		"N=" + strconv.Itoa(in.UnitCount),
		"blank " + formatFloat(in.BlankWeightPerUnitG) + " g",
		"base " + formatFloat(in.BaseDensityGPerML),
	}
	for _, c := range in.Components {
		parts = append(parts, fmt.Sprintf("API: %s %s g, rho %s", c.Name, formatFloat(c.AmountPerUnitG), formatFloat(c.DensityGPerML)))
	}
	return strings.Join(parts, "; "), nil
}

type apiClause struct {
	start    int
	end      int
	name     string
	grams    float64
	density  float64
	// rejected clauses are reported and ignored, but still hide the
	// labels inside them.
	rejected bool
}

func (c apiClause) displayName() string {
	if c.name == "" {
		return "unnamed API"
	}
	return c.name
}

// apiClauses returns named and anonymous API clauses in order of appearance,
// plus a warning for every named clause that was rejected.
func apiClauses(text string) ([]apiClause, []string) {
	var clauses []apiClause
	var warnings []string

	for _, idx := range namedAPIPattern.FindAllStringSubmatchIndex(text, -1) {
		start, name, ok := clauseName(text, idx)
		if !ok {
			if name != "" {
				clauses = append(clauses, apiClause{start: idx[0], end: idx[1], name: name, rejected: true})
				warnings = append(warnings, fmt.Sprintf("ignored API clause %q: the name starts with a field label", strings.TrimSpace(text[idx[0]:idx[1]])))
			}
			continue
		}
		clauses = append(clauses, newClause(text, start, idx[1], name, idx[4:10]))
	}

	for _, idx := range anonAPIPattern.FindAllStringSubmatchIndex(text, -1) {
		if overlaps(clauses, idx[0], idx[1]) {
			continue
		}
		clauses = append(clauses, newClause(text, idx[0], idx[1], "", idx[2:8]))
	}

	sort.Slice(clauses, func(i, j int) bool { return clauses[i].start < clauses[j].start })
	return clauses, warnings
}

// clauseName reads the API name of a named match and the offset where the
// clause really starts. Words up to the last unit token belong to a preceding
// field ("blank 2 g Drug A" names "Drug A"). ok is false when no usable name
// remains; name is then the rejected text, or empty for a bare "API" prefix
// that the anonymous pattern handles.
func clauseName(text string, idx []int) (start int, name string, ok bool) {
	span := text[idx[2]:idx[3]]
	words := wordPattern.FindAllStringIndex(span, -1)
	if len(words) == 0 {
		return 0, "", false
	}
	word := func(i int) string { return span[words[i][0]:words[i][1]] }

	first := 0
	for i := range words {
		if unitWords[strings.ToLower(word(i))] {
			first = i + 1
		}
	}
	for first < len(words) && connectorWords[strings.ToLower(word(first))] {
		first++
	}
	if first == len(words) {
		return 0, strings.TrimSpace(span), false
	}

	start = idx[0]
	if first > 0 {
		start = idx[2] + words[first][0]
	}

	switch lead := strings.ToLower(word(first)); {
	case lead == "api":
		// A bare "API 150 mg" is left to the anonymous pattern; "API Drug A 150 mg" drops the prefix.
		if first+1 == len(words) {
			return 0, "", false
		}
		if r := word(first + 1)[0]; (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') {
			first++
		}
	case labelWords[lead]:
		return 0, strings.TrimSpace(span[words[first][0]:]), false
	}

	return start, strings.TrimSpace(span[words[first][0]:]), true
}

// newClause reads amount, unit and density from three submatch index pairs.
func newClause(text string, start, end int, name string, idx []int) apiClause {
	amount, _ := strconv.ParseFloat(text[idx[0]:idx[1]], 64)
	grams, _ := ToGrams(amount, text[idx[2]:idx[3]])
	density, _ := strconv.ParseFloat(text[idx[4]:idx[5]], 64)
	return apiClause{start: start, end: end, name: name, grams: grams, density: density}
}

func overlaps(clauses []apiClause, start, end int) bool {
	for _, c := range clauses {
		if start < c.end && c.start < end {
			return true
		}
	}
	return false
}

func mergeComponent(components []model.APIComponent, c model.APIComponent) []model.APIComponent {
	key := strings.TrimSpace(c.Name)
	for i := range components {
		if strings.EqualFold(strings.TrimSpace(components[i].Name), key) {
			components[i].AmountPerUnitG = c.AmountPerUnitG
			components[i].DensityGPerML = c.DensityGPerML
			components[i].DisplacementFactor = 0
			return components
		}
	}
	return append(components, c)
}

func onlyBaseDensityMissing(s model.ChatState) bool {
	return s.BaseDensityGPerML == nil && s.UnitCount != nil && s.BlankWeightPerUnitG != nil
}

// lastFieldMatch returns the submatches of the last occurrence outside any
// API clause, so a value repeated in one message follows the same
// last-write-wins rule as across messages.
func lastFieldMatch(re *regexp.Regexp, text string, clauses []apiClause) []string {
	all := re.FindAllStringSubmatchIndex(text, -1)
	for i := len(all) - 1; i >= 0; i-- {
		idx := all[i]
		if overlaps(clauses, idx[0], idx[1]) {
			continue
		}
		m := make([]string, len(idx)/2)
		for g := range m {
			if idx[2*g] >= 0 {
				m[g] = text[idx[2*g]:idx[2*g+1]]
			}
		}
		return m
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
