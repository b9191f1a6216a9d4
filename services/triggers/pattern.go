package triggers

import (
	"fmt"
	"strings"

	"hoteltriggers/models"
)

// Pattern is a document path template such as "hotels/{hotelId}/rooms/{roomId}".
type Pattern struct {
	raw  string
	segs []string
}

// ParsePattern validates a document path template. Wildcard segments are
// written {name}; a template must name a document, not a collection.
func ParsePattern(raw string) (Pattern, error) {
	segs, err := models.SplitPath(raw)
	if err != nil {
		return Pattern{}, fmt.Errorf("pattern %q: %w", raw, err)
	}
	if len(segs)%2 != 0 {
		return Pattern{}, fmt.Errorf("pattern %q: %w: must address a document", raw, models.ErrInvalidPath)
	}
	seen := make(map[string]bool)
	for _, s := range segs {
		name, ok := wildcard(s)
		if !ok {
			if strings.ContainsAny(s, "{}") {
				return Pattern{}, fmt.Errorf("pattern %q: malformed segment %q", raw, s)
			}
			continue
		}
		if name == "" || seen[name] {
			return Pattern{}, fmt.Errorf("pattern %q: bad or duplicate wildcard %q", raw, s)
		}
		seen[name] = true
	}
	return Pattern{raw: strings.Trim(raw, "/"), segs: segs}, nil
}

func wildcard(seg string) (string, bool) {
	if len(seg) >= 2 && seg[0] == '{' && seg[len(seg)-1] == '}' {
		return seg[1 : len(seg)-1], true
	}
	return "", false
}

func (p Pattern) String() string { return p.raw }

// Match reports whether path fits the pattern and returns the wildcard values.
func (p Pattern) Match(path string) (map[string]string, bool) {
	segs, err := models.SplitPath(path)
	if err != nil || len(segs) != len(p.segs) {
		return nil, false
	}
	params := make(map[string]string)
	for i, s := range p.segs {
		if name, ok := wildcard(s); ok {
			params[name] = segs[i]
			continue
		}
		if s != segs[i] {
			return nil, false
		}
	}
	return params, true
}
