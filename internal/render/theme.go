package render

import "regexp"

// Theme carries the two color tokens every layout draws with.
type Theme struct {
	Name      string `json:"name,omitempty" toml:"name"`
	Primary   string `json:"primaryColor" toml:"primary_color"`
	Secondary string `json:"secondaryColor" toml:"secondary_color"`
}

// DefaultTheme is used when a token is missing or not a CSS color.
var DefaultTheme = Theme{Name: "Blue", Primary: "#2563eb", Secondary: "#64748b"}

var themes = []Theme{
	DefaultTheme,
	{Name: "Indigo", Primary: "#4f46e5", Secondary: "#6b7280"},
	{Name: "Emerald", Primary: "#059669", Secondary: "#475569"},
	{Name: "Rose", Primary: "#e11d48", Secondary: "#57534e"},
	{Name: "Amber", Primary: "#d97706", Secondary: "#78716c"},
	{Name: "Slate", Primary: "#334155", Secondary: "#94a3b8"},
}

// Themes returns the named presets offered by the theme selector.
func Themes() []Theme {
	out := make([]Theme, len(themes))
	copy(out, themes)
	return out
}

// Colors are inlined into a style attribute, so only hex and bare color
// names are accepted.
var colorToken = regexp.MustCompile(`^(#[0-9a-fA-F]{3}|#[0-9a-fA-F]{4}|#[0-9a-fA-F]{6}|#[0-9a-fA-F]{8}|[a-zA-Z]{3,20})$`)

// ValidColor reports whether c is usable as a color token.
func ValidColor(c string) bool {
	return colorToken.MatchString(c)
}

// Normalize replaces unusable color tokens with the default theme's.
func (t Theme) Normalize() Theme {
	if !ValidColor(t.Primary) {
		t.Primary = DefaultTheme.Primary
	}
	if !ValidColor(t.Secondary) {
		t.Secondary = DefaultTheme.Secondary
	}
	return t
}

// Font is a font family token such as "sans" or "eb-garamond".
type Font string

const DefaultFont Font = "sans"

// FontFamily maps a token to its display family.
type FontFamily struct {
	Token Font   `json:"id"`
	Name  string `json:"name"`
	Serif bool   `json:"-"`
}

var fonts = []FontFamily{
	{Token: "sans", Name: "Inter"},
	{Token: "serif", Name: "Merriweather", Serif: true},
	{Token: "roboto", Name: "Roboto"},
	{Token: "lato", Name: "Lato"},
	{Token: "playfair", Name: "Playfair Display", Serif: true},
	{Token: "montserrat", Name: "Montserrat"},
	{Token: "open-sans", Name: "Open Sans"},
	{Token: "raleway", Name: "Raleway"},
	{Token: "oswald", Name: "Oswald"},
	{Token: "poppins", Name: "Poppins"},
	{Token: "nunito-sans", Name: "Nunito Sans"},
	{Token: "source-sans-pro", Name: "Source Sans Pro"},
	{Token: "lora", Name: "Lora", Serif: true},
	{Token: "pt-serif", Name: "PT Serif", Serif: true},
	{Token: "libre-baskerville", Name: "Libre Baskerville", Serif: true},
	{Token: "eb-garamond", Name: "EB Garamond", Serif: true},
	{Token: "arimo", Name: "Arimo"},
	{Token: "tinos", Name: "Tinos", Serif: true},
	{Token: "fira-sans", Name: "Fira Sans"},
	{Token: "cardo", Name: "Cardo", Serif: true},
}

// Fonts returns the supported families in selector order.
func Fonts() []FontFamily {
	out := make([]FontFamily, len(fonts))
	copy(out, fonts)
	return out
}

// LookupFont resolves a token. Unknown tokens resolve to the default family
// with ok=false.
func LookupFont(token Font) (FontFamily, bool) {
	for _, f := range fonts {
		if f.Token == token {
			return f, true
		}
	}
	return fonts[0], false
}

// CSSStack returns the font-family declaration value for f.
func (f FontFamily) CSSStack() string {
	generic := "sans-serif"
	if f.Serif {
		generic = "serif"
	}
	return "'" + f.Name + "', " + generic
}
