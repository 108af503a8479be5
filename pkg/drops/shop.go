package drops

import "strings"

// Shop wraps the store attribute bag. Fields the preview cannot know are
// reported with fixed storefront defaults.
type Shop struct {
	attrs Attributes
}

// NewShop wraps attrs. A nil bag is treated as empty.
func NewShop(attrs Attributes) *Shop {
	if attrs == nil {
		attrs = Attributes{}
	}
	return &Shop{attrs: attrs}
}

var shopFields = newAccessors(
	accessor[*Shop]{"name", func(s *Shop) any { return s.Name() }},
	accessor[*Shop]{"email", func(s *Shop) any { return s.attrs.String("email") }},
	accessor[*Shop]{"domain", func(s *Shop) any { return s.attrs.String("domain") }},
	accessor[*Shop]{"url", func(s *Shop) any { return s.attrs.String("url") }},
	accessor[*Shop]{"secure_url", func(s *Shop) any { return s.SecureURL() }},
	accessor[*Shop]{"currency", func(s *Shop) any { return s.Currency() }},
	accessor[*Shop]{"money_format", func(s *Shop) any { return s.MoneyFormat() }},
	accessor[*Shop]{"money_with_currency_format", func(s *Shop) any { return s.MoneyWithCurrencyFormat() }},
	accessor[*Shop]{"description", func(s *Shop) any { return s.attrs.String("description") }},
	accessor[*Shop]{"taxes_included", func(*Shop) any { return false }},
	accessor[*Shop]{"customer_accounts_enabled", func(*Shop) any { return true }},
	accessor[*Shop]{"customer_accounts_optional", func(*Shop) any { return true }},
	accessor[*Shop]{"address", func(*Shop) any { return emptyAddress() }},
	accessor[*Shop]{"phone", func(*Shop) any { return "" }},
	accessor[*Shop]{"enabled_payment_types", func(*Shop) any {
		return []string{"visa", "mastercard", "american_express", "paypal"}
	}},
	accessor[*Shop]{"locale", func(*Shop) any { return "en" }},
)

func (s *Shop) Name() string        { return s.attrs.String("name") }
func (s *Shop) Currency() string    { return s.attrs.String("currency") }
func (s *Shop) MoneyFormat() string { return s.attrs.String("money_format") }

func (s *Shop) SecureURL() string {
	url := s.attrs.String("url")
	if strings.HasPrefix(url, "https://") {
		return url
	}
	return "https://" + url
}

func (s *Shop) MoneyWithCurrencyFormat() string {
	return s.MoneyFormat() + " " + s.Currency()
}

func emptyAddress() map[string]any {
	return map[string]any{
		"address1": "",
		"address2": "",
		"city":     "",
		"province": "",
		"country":  "",
		"zip":      "",
	}
}

func (s *Shop) Get(name string) (any, bool) { return shopFields.get(s, name) }
func (s *Shop) Raw(name string) (any, bool) { return s.attrs.Lookup(name) }
func (s *Shop) RawKeys() []string           { return s.attrs.Keys() }
func (s *Shop) Fields() []string            { return shopFields.fields() }

func (s *Shop) String() string { return s.Name() }
