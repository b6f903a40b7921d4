package reels

import "strings"

// Extractor pulls raw URL strings out of a parsed import document. It returns
// nil when the document does not have the shape it understands.
type Extractor func(doc any) []string

// DefaultExtractors are tried in order; the first non-empty result wins.
var DefaultExtractors = []Extractor{
	ExtractArray,
	ExtractNamedList,
	ExtractFirstList,
}

var (
	entryURLKeys = []string{"url", "link", "href"}
	listKeys     = []string{"urls", "list", "items"}
)

// ExtractArray handles a top-level array of strings and/or objects carrying
// url, link, or href.
func ExtractArray(doc any) []string {
	items, ok := doc.([]any)
	if !ok {
		return nil
	}
	return entryStrings(items)
}

// ExtractNamedList handles an object with an array under urls, list, or
// items, checked in that order.
func ExtractNamedList(doc any) []string {
	obj, ok := doc.(*Object)
	if !ok {
		return nil
	}
	for _, key := range listKeys {
		value, ok := obj.Get(key)
		if !ok {
			continue
		}
		if items, ok := value.([]any); ok {
			return entryStrings(items)
		}
	}
	return nil
}

// ExtractFirstList handles an object whose first array-valued member, in
// document order, holds the URLs.
func ExtractFirstList(doc any) []string {
	obj, ok := doc.(*Object)
	if !ok {
		return nil
	}
	for _, key := range obj.Keys {
		if items, ok := obj.Values[key].([]any); ok {
			return entryStrings(items)
		}
	}
	return nil
}

// extractURLs runs extractors in order and returns the first non-empty
// result with blank entries dropped.
func extractURLs(doc any, extractors []Extractor) []string {
	for _, extract := range extractors {
		var urls []string
		for _, raw := range extract(doc) {
			if trimmed := strings.TrimSpace(raw); trimmed != "" {
				urls = append(urls, trimmed)
			}
		}
		if len(urls) > 0 {
			return urls
		}
	}
	return nil
}

func entryStrings(items []any) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, entryString(item))
	}
	return out
}

func entryString(item any) string {
	switch t := item.(type) {
	case string:
		return strings.TrimSpace(t)
	case *Object:
		for _, key := range entryURLKeys {
			if value, ok := t.Get(key); ok && truthy(value) {
				return strings.TrimSpace(stringify(value))
			}
		}
		return ""
	default:
		return strings.TrimSpace(stringify(item))
	}
}

// truthy reports whether an entry member counts as present: null, "", false
// and 0 do not.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case bool:
		return t
	default:
		if n, ok := v.(interface{ Float64() (float64, error) }); ok {
			f, err := n.Float64()
			return err != nil || f != 0
		}
		return true
	}
}
