package svg

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	descPattern      = regexp.MustCompile(`(?s)<desc>.*?</desc>`)
	cdataDescPattern = regexp.MustCompile(`(?s)<desc><!\[CDATA\[(.*?)\]\]></desc>`)
)

// EmbedDescription stores data in the document's <desc> element as CDATA.
// An existing <desc> is replaced; otherwise one is inserted right after the
// opening <svg> tag. Documents without an <svg> tag are returned unchanged, as
// is everything when data is empty.
func EmbedDescription(svgText, data string) string {
	if svgText == "" || data == "" {
		return svgText
	}

	element := descElement(data)
	loc := cdataDescPattern.FindStringIndex(svgText)
	if loc == nil {
		loc = descPattern.FindStringIndex(svgText)
	}
	if loc != nil {
		return svgText[:loc[0]] + element + svgText[loc[1]:]
	}

	open := strings.Index(svgText, "<svg")
	if open == -1 {
		return svgText
	}
	end := strings.Index(svgText[open:], ">")
	if end == -1 {
		return svgText
	}
	insertAt := open + end + 1

	return svgText[:insertAt] + element + svgText[insertAt:]
}

// ExtractDescription returns the CDATA content of the document's <desc>
// element, or "" when there is none.
func ExtractDescription(svgText string) string {
	match := cdataDescPattern.FindStringSubmatch(svgText)
	if match == nil {
		return ""
	}

	return strings.ReplaceAll(match[1], "]]]]><![CDATA[>", "]]>")
}

// descElement wraps data in CDATA, splitting any "]]>" so it survives.
func descElement(data string) string {
	return "<desc><![CDATA[" + strings.ReplaceAll(data, "]]>", "]]]]><![CDATA[>") + "]]></desc>"
}

// IsDescribable reports whether data can be stored in a <desc> element of a
// well-formed document: it must be valid UTF-8 holding only characters XML 1.0
// allows.
func IsDescribable(data string) bool {
	if !utf8.ValidString(data) {
		return false
	}
	for _, r := range data {
		if !isXMLChar(r) {
			return false
		}
	}

	return true
}

func isXMLChar(r rune) bool {
	switch {
	case r == '\t', r == '\n', r == '\r':
		return true
	case r >= 0x20 && r <= 0xD7FF:
		return true
	case r >= 0xE000 && r <= 0xFFFD:
		return true
	default:
		return r >= 0x10000 && r <= 0x10FFFF
	}
}
