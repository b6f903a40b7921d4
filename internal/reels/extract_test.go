package reels

import (
	"errors"
	"reflect"
	"testing"
)

func extractFrom(t *testing.T, raw string) []string {
	t.Helper()
	doc, err := parseDocument([]byte(raw))
	if err != nil {
		t.Fatalf("parseDocument(%s): %v", raw, err)
	}
	return extractURLs(doc, DefaultExtractors)
}

func TestExtractURLs(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want []string
	}{
		{"plain array", `["a.com", " b.com ", ""]`, []string{"a.com", "b.com"}},
		{"object entries", `[{"url": "u.com"}, {"link": "l.com"}, {"href": "h.com"}, {"title": "x"}]`, []string{"u.com", "l.com", "h.com"}},
		{"url wins over link", `[{"link": "l.com", "url": "u.com"}]`, []string{"u.com"}},
		{"falsy url falls through", `[{"url": "", "link": "l.com"}, {"url": null, "href": "h.com"}]`, []string{"l.com", "h.com"}},
		{"numbers kept as written", `[12, 1.50]`, []string{"12", "1.50"}},
		{"urls key", `{"items": ["i.com"], "urls": ["u.com"]}`, []string{"u.com"}},
		{"list over items", `{"items": ["i.com"], "list": ["l.com"]}`, []string{"l.com"}},
		{"items key", `{"name": "mine", "items": [{"url": "i.com"}]}`, []string{"i.com"}},
		{"named key not an array", `{"urls": "nope", "other": ["o.com"]}`, []string{"o.com"}},
		{"first array in document order", `{"zeta": ["z.com"], "alpha": ["a.com"]}`, []string{"z.com"}},
		{"skips non-array members", `{"title": "x", "n": 3, "reels": ["r.com"]}`, []string{"r.com"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := extractFrom(t, tc.raw)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("got %v want %v", got, tc.want)
			}
		})
	}
}

func TestExtractURLsNothingUsable(t *testing.T) {
	for _, raw := range []string{`[]`, `{}`, `"a.com"`, `42`, `null`, `{"urls": [""]}`, `{"urls": [], "more": ["m.com"]}`} {
		if got := extractFrom(t, raw); len(got) != 0 {
			t.Fatalf("%s: expected no urls, got %v", raw, got)
		}
	}
}

func TestParseDocumentKeepsMemberOrder(t *testing.T) {
	doc, err := parseDocument([]byte(`{"b": 1, "a": [true], "c": {"d": null}}`))
	if err != nil {
		t.Fatalf("parseDocument: %v", err)
	}
	obj, ok := doc.(*Object)
	if !ok {
		t.Fatalf("expected *Object, got %T", doc)
	}
	if !reflect.DeepEqual(obj.Keys, []string{"b", "a", "c"}) {
		t.Fatalf("unexpected key order: %v", obj.Keys)
	}
	if got := encodeCompact(obj); got != `{"b":1,"a":[true],"c":{"d":null}}` {
		t.Fatalf("unexpected compact form: %s", got)
	}
}

func TestParseDocumentIgnoresByteOrderMark(t *testing.T) {
	doc, err := parseDocument([]byte("\xef\xbb\xbf{\"urls\": [\"a.com\"]}"))
	if err != nil {
		t.Fatalf("parseDocument: %v", err)
	}
	if got := extractURLs(doc, DefaultExtractors); !reflect.DeepEqual(got, []string{"a.com"}) {
		t.Fatalf("got %v", got)
	}
	if _, err := parseDocument([]byte("\xef\xbb\xbf")); !errors.Is(err, ErrParse) {
		t.Fatalf("expected ErrParse for a bare byte order mark, got %v", err)
	}
}

func TestParseDocumentErrors(t *testing.T) {
	for _, raw := range []string{``, `{`, `{not json`, `[1,]`, `{"a":1}{"b":2}`} {
		if _, err := parseDocument([]byte(raw)); !errors.Is(err, ErrParse) {
			t.Fatalf("%q: expected ErrParse, got %v", raw, err)
		}
	}
}

func TestCustomExtractorChain(t *testing.T) {
	doc, err := parseDocument([]byte(`{"feed": {"entries": ["e.com"]}}`))
	if err != nil {
		t.Fatalf("parseDocument: %v", err)
	}
	nested := func(doc any) []string {
		obj, ok := doc.(*Object)
		if !ok {
			return nil
		}
		feed, _ := obj.Get("feed")
		return ExtractNamedList(renamed(feed, "entries", "urls"))
	}
	got := extractURLs(doc, []Extractor{ExtractArray, nested})
	if !reflect.DeepEqual(got, []string{"e.com"}) {
		t.Fatalf("got %v", got)
	}
}

func renamed(v any, from, to string) any {
	obj, ok := v.(*Object)
	if !ok {
		return v
	}
	out := &Object{Values: map[string]any{}}
	for _, key := range obj.Keys {
		name := key
		if key == from {
			name = to
		}
		out.Keys = append(out.Keys, name)
		out.Values[name] = obj.Values[key]
	}
	return out
}
