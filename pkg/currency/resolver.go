package currency

import "strings"

// Keyword maps a destination fragment to the currency used there.
type Keyword struct {
	Match string
	Code  string
}

// DefaultKeywords is checked in order; the first fragment contained in the
// destination wins, so more specific entries must come first.
func DefaultKeywords() []Keyword {
	return []Keyword{
		{"japan", JPY}, {"tokyo", JPY}, {"osaka", JPY},
		{"france", EUR}, {"paris", EUR},
		{"uk", GBP}, {"london", GBP},
		{"united kingdom", GBP},
		{"usa", USD}, {"united states", USD}, {"new york", USD}, {"los angeles", USD},
		{"india", INR}, {"delhi", INR}, {"mumbai", INR},
		{"china", CNY}, {"beijing", CNY}, {"shanghai", CNY},
		{"australia", AUD}, {"sydney", AUD},
		{"canada", CAD}, {"toronto", CAD},
	}
}

type Resolver struct {
	keywords []Keyword
	fallback string
}

func NewResolver(keywords []Keyword) *Resolver {
	kw := make([]Keyword, len(keywords))
	for i, k := range keywords {
		kw[i] = Keyword{Match: strings.ToLower(k.Match), Code: strings.ToUpper(k.Code)}
	}
	return &Resolver{keywords: kw, fallback: USD}
}

func NewDefaultResolver() *Resolver {
	return NewResolver(DefaultKeywords())
}

// Resolve matches by plain substring, not by word, so "Phuket"
// resolves through "uk" to GBP.
func (r *Resolver) Resolve(destination string) string {
	dest := strings.ToLower(strings.TrimSpace(destination))
	for _, k := range r.keywords {
		if k.Match != "" && strings.Contains(dest, k.Match) {
			return k.Code
		}
	}
	return r.fallback
}
