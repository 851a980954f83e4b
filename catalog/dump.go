package catalog

import (
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/starcrest/shipadvisor/model"
)

// The game's design service can also be dumped as angle-bracketed records:
//
//	<RoomDesign RoomDesignId=1, RoomType=Wall, Capacity=2, ...>
//
// ParseRoomDesignDump converts such a dump into a RoomCatalog. Attribute
// values are split on commas outside [ ] / { } brackets and coerced to
// their natural types; entries without a RoomDesignId are skipped.

var dumpEntry = regexp.MustCompile(`<RoomDesign\s+([^>]+)>`)

// ParseRoomDesignDump parses raw room-design dump text.
func ParseRoomDesignDump(text string) *RoomCatalog {
	cat := &RoomCatalog{
		designs: make(map[string]model.RoomDesign),
		nested:  make(map[string]model.RoomDesign),
	}

	for _, m := range dumpEntry.FindAllStringSubmatch(text, -1) {
		attrs := parseAttributes(m[1])
		id, ok := attrs["RoomDesignId"]
		if !ok {
			slog.Warn("room design dump entry has no RoomDesignId, skipping")
			continue
		}
		cat.designs[attrText(id)] = designFromAttributes(attrs)
	}
	slog.Debug("room design dump parsed", "entries", len(cat.designs))
	return cat
}

// parseAttributes splits "key=value, key=value" pairs on commas that are
// not inside brackets.
func parseAttributes(s string) map[string]any {
	attrs := make(map[string]any)
	for _, part := range splitOutsideBrackets(s) {
		key, value, found := strings.Cut(part, "=")
		if !found {
			continue
		}
		attrs[strings.TrimSpace(key)] = convertValue(strings.TrimSpace(value))
	}
	return attrs
}

func splitOutsideBrackets(s string) []string {
	var parts []string
	depth := 0
	current := strings.Builder{}
	for _, ch := range s {
		switch ch {
		case '[', '{':
			depth++
			current.WriteRune(ch)
		case ']', '}':
			if depth > 0 {
				depth--
			}
			current.WriteRune(ch)
		case ',':
			if depth == 0 {
				parts = append(parts, strings.TrimSpace(current.String()))
				current.Reset()
				continue
			}
			current.WriteRune(ch)
		default:
			current.WriteRune(ch)
		}
	}
	if current.Len() > 0 {
		parts = append(parts, strings.TrimSpace(current.String()))
	}
	return parts
}

// convertValue coerces a dump value to nil, bool, int, float, or string.
func convertValue(val string) any {
	switch val {
	case "None":
		return nil
	case "True":
		return true
	case "False":
		return false
	}
	if n, err := strconv.Atoi(val); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(val, 64); err == nil {
		return f
	}
	return val
}

func designFromAttributes(attrs map[string]any) model.RoomDesign {
	return model.RoomDesign{
		RoomType:          attrText(attrs["RoomType"]),
		RoomShortName:     attrText(attrs["RoomShortName"]),
		Level:             attrInt(attrs["Level"]),
		Rows:              attrInt(attrs["Rows"]),
		Columns:           attrInt(attrs["Columns"]),
		Capacity:          attrInt(attrs["Capacity"]),
		MaxSystemPower:    attrInt(attrs["MaxSystemPower"]),
		MaxPowerGenerated: attrInt(attrs["MaxPowerGenerated"]),
	}
}

func attrText(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case int:
		return strconv.Itoa(s)
	case nil:
		return ""
	}
	return ""
}

func attrInt(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case float64:
		return int(n)
	}
	return 0
}
