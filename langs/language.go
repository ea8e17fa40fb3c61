// Copyright 2018 The Hugo Authors. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package langs

import (
	"strings"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Language is the language a site is authored in.
type Language struct {
	// The language code, e.g. "en" or "de".
	Lang string

	collator *Collator
}

// NewLanguage creates a Language for the given code. An unknown code falls
// back to the root collation order.
func NewLanguage(lang string) *Language {
	lang = strings.ToLower(lang)
	if lang == "" {
		lang = "en"
	}
	return &Language{
		Lang:     lang,
		collator: NewCollator(lang),
	}
}

// Collator returns the case-insensitive title collator for l.
func (l *Language) Collator() *Collator {
	return l.collator
}

func (l *Language) String() string {
	return l.Lang
}

// Collator compares strings in the collation order of a language, ignoring
// case. It is safe for concurrent use.
type Collator struct {
	mu sync.Mutex
	c  *collate.Collator
}

// NewCollator creates a case-insensitive Collator for lang.
func NewCollator(lang string) *Collator {
	tag, err := language.Parse(lang)
	if err != nil {
		tag = language.Und
	}
	return &Collator{c: collate.New(tag, collate.IgnoreCase)}
}

// CompareStrings compares a and b.
// It returns -1 if a < b, 1 if a > b and 0 if a == b.
func (c *Collator) CompareStrings(a, b string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.c.CompareString(a, b)
}
