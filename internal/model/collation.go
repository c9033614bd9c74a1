package model

import (
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SameText reports whether a and b compare equal under the users collection
// collation (locale "en", primary strength): case and diacritics are ignored.
//
// A collate.Collator keeps internal buffers, so one is built per call.
func SameText(a, b string) bool {
	if a == b {
		return true
	}
	c := collate.New(language.English, collate.IgnoreCase, collate.IgnoreDiacritics, collate.IgnoreWidth)
	return c.CompareString(a, b) == 0
}
