package cashflow

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// CategoryRule assigns Name to transactions whose merchant contains one of the keywords.
type CategoryRule struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// Categorizer assigns categories to transactions the bank did not categorize.
type Categorizer struct {
	rules []CategoryRule
}

// NewCategorizer returns a categorizer applying rules in order. Keywords are
// matched case insensitively.
func NewCategorizer(rules []CategoryRule) *Categorizer {
	c := &Categorizer{rules: make([]CategoryRule, 0, len(rules))}
	for _, r := range rules {
		kw := make([]string, 0, len(r.Keywords))
		for _, k := range r.Keywords {
			if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
				kw = append(kw, k)
			}
		}
		c.rules = append(c.rules, CategoryRule{Name: r.Name, Keywords: kw})
	}
	return c
}

// needsCategory reports whether tx has no meaningful category. TravelWallet
// exports use the merchant as the category.
func needsCategory(tx Transaction) bool {
	switch {
	case tx.Category == "", tx.Category == CategoryOther, tx.Category == CategoryUncategorized:
		return true
	default:
		return tx.Category == tx.Merchant
	}
}

// Match returns the category of the first rule matching the merchant.
func (c *Categorizer) Match(merchant string) (string, bool) {
	m := strings.ToLower(merchant)
	for _, r := range c.rules {
		for _, k := range r.Keywords {
			if strings.Contains(m, k) {
				return r.Name, true
			}
		}
	}
	return "", false
}

// Categorize sets the category of uncategorized transactions in place and
// returns how many were changed.
func (c *Categorizer) Categorize(txs Transactions) int {
	n := 0
	for i, tx := range txs {
		if !needsCategory(tx) {
			continue
		}
		if name, ok := c.Match(tx.Merchant); ok {
			txs[i].Category = name
			n++
		}
	}
	return n
}

// DisplayName turns a category identifier like "eating_out" into "Eating Out".
func DisplayName(category string) string {
	return cases.Title(language.BritishEnglish).String(strings.ReplaceAll(category, "_", " "))
}
