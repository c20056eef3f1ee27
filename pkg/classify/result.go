package classify

import (
	"github.com/dmitrymomot/probekit/pkg/platform"
	"github.com/dmitrymomot/probekit/pkg/probe"
)

// MaxFlag tells whether the self-reported version went past what the
// probes could confirm.
type MaxFlag string

const (
	MaxOK       MaxFlag = "ok"
	MaxExceeded MaxFlag = "ex"
)

// Display names reported in Result.Category.
const (
	NameInternetExplorer = "Internet Explorer"
	NameEdge             = "Edge"
	NameFirefox          = "Firefox"
	NameChrome           = "Chrome"
	NameOpera            = "Opera"
	NameSafari           = "Safari"
	NameAndroid          = "Android"
	NameSafariMobile     = "Mobile Safari"
	NameChromeMobile     = "Chrome Android"
	NameFirefoxMobile    = "Firefox Android"
	NameMicrosoftMobile  = "Mobile IE"
	NameWebview          = "iOS Webview"
	NameOperaMini        = "Opera Mini"
	NameOperaAndroid     = "Opera Android"
	NameBlackBerry       = "BlackBerry"
	NameKindle           = "Kindle"
	NameLinuxBrowser     = "Linux Browser"
	NameConsole          = "Console"
	NameUnknown          = "Unknown"
)

// Platform is the operating system an environment runs on.
type Platform struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// Result is the outcome of one classification. It is returned by value and
// never changes afterwards.
type Result struct {
	// Category is the display name, e.g. "Edge" or "Mobile Safari".
	Category    string               `json:"category"`
	Family      Category             `json:"family"`
	Version     float64              `json:"version"`
	UAVersion   float64              `json:"ua_version"`
	Trustworthy bool                 `json:"trustworthy"`
	Device      platform.DeviceClass `json:"device"`
	Engine      platform.Engine      `json:"engine"`
	Platform    Platform             `json:"platform"`
	Max         MaxFlag              `json:"max"`
}

func newResult(family Category, info platform.Info) Result {
	return Result{
		Family:      family,
		Version:     probe.DefaultVersion,
		UAVersion:   info.UAVersion,
		Trustworthy: true,
		Device:      info.Device,
		Engine:      info.Engine,
		Platform:    Platform{Name: info.Name, Version: info.Version},
		Max:         MaxOK,
	}
}

func (r Result) Desktop() bool { return r.Device == platform.DeviceDesktop }
func (r Result) Mobile() bool  { return r.Device == platform.DeviceMobile }
func (r Result) Tablet() bool  { return r.Device == platform.DeviceTablet }
func (r Result) Console() bool { return r.Device == platform.DeviceConsole }
