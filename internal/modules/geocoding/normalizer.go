package geocoding

import (
	"regexp"
	"strings"
)

// Shorthand tokens customers type into address fields, expanded to the full
// words the geocoding providers index. Matched case-insensitively after
// trailing punctuation is stripped. No expansion maps onto another key, which
// keeps Normalize idempotent.
var expansions = map[string]string{
	"brgy": "barangay",
	"bgy":  "barangay",
	"st":   "street",
	"ave":  "avenue",
	"av":   "avenue",
	"rd":   "road",
	"hwy":  "highway",
	"pob":  "poblacion",
	"subd": "subdivision",
	"sn":   "san",
	"sta":  "santa",
	"sto":  "santo",
}

// Known misspellings of municipalities in the delivery area.
var spellfixes = map[string]string{
	"bakolor":   "bacolor",
	"bacolour":  "bacolor",
	"guagwa":    "guagua",
	"lubaw":     "lubao",
	"pampangga": "pampanga",
	"mexiko":    "mexico",
}

// Open Location Code ("plus code") tokens are already precise and must pass
// through untouched.
var plusCodeRe = regexp.MustCompile(`(?i)^[23456789CFGHJMPQRVWX]{4,8}\+[23456789CFGHJMPQRVWX]{2,3}$`)

// Normalize applies the address heuristics run before every geocoding
// attempt: whitespace collapsing, shorthand expansion and municipality
// spelling fixes. It is pure and idempotent.
func Normalize(address string) string {
	fields := strings.Fields(address)
	out := make([]string, 0, len(fields))

	for _, tok := range fields {
		core := strings.TrimRight(tok, ".,")
		suffix := ""
		if strings.ContainsRune(tok[len(core):], ',') {
			suffix = ","
		}

		if plusCodeRe.MatchString(core) {
			out = append(out, core+suffix)
			continue
		}

		key := strings.ToLower(core)
		if full, ok := expansions[key]; ok {
			out = append(out, full+suffix)
			continue
		}
		if fixed, ok := spellfixes[key]; ok {
			out = append(out, fixed+suffix)
			continue
		}
		out = append(out, core+suffix)
	}

	return strings.Join(out, " ")
}
