package classify

import (
	"fmt"
	"strings"
)

// Category is the family an environment is assigned to. Values are stable
// and travel in encoded results, so new categories are appended only.
type Category int

const (
	Microsoft Category = iota + 1
	Firefox
	Chrome
	Opera
	Safari
	Android
	SafariMobile
	OperaMini
	OperaAndroid
	ChromeMobile
	MicrosoftMobile
	FirefoxMobile
	BlackBerry
	Kindle
	Webview
	Unknown
	UnknownMobile
	Console
)

var categoryNames = map[Category]string{
	Microsoft:       "microsoft",
	Firefox:         "firefox",
	Chrome:          "chrome",
	Opera:           "opera",
	Safari:          "safari",
	Android:         "android",
	SafariMobile:    "safari_mobile",
	OperaMini:       "opera_mini",
	OperaAndroid:    "opera_android",
	ChromeMobile:    "chrome_mobile",
	MicrosoftMobile: "microsoft_mobile",
	FirefoxMobile:   "firefox_mobile",
	BlackBerry:      "blackberry",
	Kindle:          "kindle",
	Webview:         "webview",
	Unknown:         "unknown",
	UnknownMobile:   "unknown_mobile",
	Console:         "console",
}

// Categories lists every category in numeric order.
func Categories() []Category {
	out := make([]Category, 0, len(categoryNames))
	for c := Microsoft; c <= Console; c++ {
		out = append(out, c)
	}
	return out
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return fmt.Sprintf("category(%d)", int(c))
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	_, ok := categoryNames[c]
	return ok
}

// Mobile reports whether the category only exists on constrained devices.
func (c Category) Mobile() bool {
	switch c {
	case Android, SafariMobile, OperaMini, OperaAndroid, ChromeMobile,
		MicrosoftMobile, FirefoxMobile, BlackBerry, Webview, UnknownMobile:
		return true
	}
	return false
}

// ParseCategory resolves a category by its string name.
func ParseCategory(name string) (Category, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for c, n := range categoryNames {
		if n == name {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCategory, name)
}

func (c Category) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownCategory, int(c))
	}
	return []byte(c.String()), nil
}

func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
