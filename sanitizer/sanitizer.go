// Package sanitizer rewrites console-bound log text according to rules built
// from bitwise filter and transform flags.
package sanitizer

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"unicode"
	"unicode/utf8"
)

// Filter flags for character matching
const (
	FilterNonPrintable uint64 = 1 << iota // Runes not printable per strconv.IsPrint
	FilterControl                         // unicode.IsControl
	FilterWhitespace                      // unicode.IsSpace
)

// Transform flags for character transformation
const (
	TransformStrip     uint64 = 1 << iota // Drop the rune
	TransformHexEncode                    // UTF-8 bytes as "<xxyy>"
	TransformEscape                       // Backslash escapes ('\n', '\u0000')
)

// PolicyPreset names a pre-configured rule set
type PolicyPreset string

const (
	PolicyRaw   PolicyPreset = "raw"   // passthrough
	PolicyTxt   PolicyPreset = "txt"   // hex-encode anything a terminal would not print
	PolicyStrip PolicyPreset = "strip" // drop control characters
)

type rule struct {
	filter    uint64
	transform uint64
}

var policyRules = map[PolicyPreset][]rule{
	PolicyRaw:   {},
	PolicyTxt:   {{filter: FilterNonPrintable, transform: TransformHexEncode}},
	PolicyStrip: {{filter: FilterControl, transform: TransformStrip}},
}

var filterCheckers = map[uint64]func(rune) bool{
	FilterNonPrintable: func(r rune) bool { return !strconv.IsPrint(r) },
	FilterControl:      unicode.IsControl,
	FilterWhitespace:   unicode.IsSpace,
}

// ValidPolicy reports whether name is a known preset
func ValidPolicy(name string) bool {
	_, ok := policyRules[PolicyPreset(name)]
	return ok
}

// Sanitizer holds an ordered rule list. Safe for concurrent use once built.
type Sanitizer struct {
	rules []rule
}

// New creates an empty (passthrough) Sanitizer
func New() *Sanitizer {
	return &Sanitizer{}
}

// Rule appends a custom rule; earlier rules win
func (s *Sanitizer) Rule(filter uint64, transform uint64) *Sanitizer {
	s.rules = append(s.rules, rule{filter: filter, transform: transform})
	return s
}

// Policy appends the rules of a preset
func (s *Sanitizer) Policy(preset PolicyPreset) *Sanitizer {
	if rules, ok := policyRules[preset]; ok {
		s.rules = append(s.rules, rules...)
	}
	return s
}

// Passthrough reports whether the sanitizer would never change its input
func (s *Sanitizer) Passthrough() bool {
	return s == nil || len(s.rules) == 0
}

// Sanitize applies all rules to a string
func (s *Sanitizer) Sanitize(data string) string {
	if s.Passthrough() {
		return data
	}
	return string(s.Append(make([]byte, 0, len(data)), []byte(data)))
}

// Append sanitizes src and appends the result to dst
func (s *Sanitizer) Append(dst, src []byte) []byte {
	if s.Passthrough() {
		return append(dst, src...)
	}
	for len(src) > 0 {
		r, size := utf8.DecodeRune(src)
		if r == utf8.RuneError && size == 1 {
			// Invalid byte, always hex-encoded so it never reaches a terminal raw
			dst = appendHex(dst, src[:1])
			src = src[1:]
			continue
		}
		matched := false
		for _, rl := range s.rules {
			if matchesFilter(r, rl.filter) {
				dst = applyTransform(dst, src[:size], r, rl.transform)
				matched = true
				break
			}
		}
		if !matched {
			dst = append(dst, src[:size]...)
		}
		src = src[size:]
	}
	return dst
}

func matchesFilter(r rune, filterMask uint64) bool {
	for flag, checker := range filterCheckers {
		if (filterMask&flag) != 0 && checker(r) {
			return true
		}
	}
	return false
}

func applyTransform(dst, raw []byte, r rune, transformMask uint64) []byte {
	switch {
	case (transformMask & TransformStrip) != 0:
		return dst

	case (transformMask & TransformHexEncode) != 0:
		return appendHex(dst, raw)

	case (transformMask & TransformEscape) != 0:
		switch r {
		case '\n':
			return append(dst, '\\', 'n')
		case '\r':
			return append(dst, '\\', 'r')
		case '\t':
			return append(dst, '\\', 't')
		case '\\':
			return append(dst, '\\', '\\')
		}
		if r < 0x20 || r == 0x7f {
			return fmt.Appendf(dst, "\\u%04x", r)
		}
	}
	return append(dst, raw...)
}

func appendHex(dst, raw []byte) []byte {
	dst = append(dst, '<')
	dst = hex.AppendEncode(dst, raw)
	return append(dst, '>')
}
