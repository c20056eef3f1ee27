package platform

import (
	"regexp"

	"github.com/dmitrymomot/probekit/pkg/probe"
)

// Engine identifies a rendering engine.
type Engine struct {
	Name    string  `json:"name"`
	Version float64 `json:"version"`
}

// Info describes the platform an environment runs on, plus whatever the
// platform reveals about the browser on top of it.
type Info struct {
	// Name and Version of the operating system. Version is UnknownVersion
	// when the signature does not carry one.
	Name    string
	Version string
	// Device is DeviceUnknown when the platform alone cannot tell.
	Device DeviceClass
	Engine Engine
	// UAVersion is the browser version the platform branch extracted from
	// the signature, or DefaultVersion.
	UAVersion float64
	// Browser and BrowserVersion are set for platforms that pin the browser,
	// such as consoles and Kindle devices.
	Browser        string
	BrowserVersion float64
}

func newInfo() Info {
	return Info{
		Version:        UnknownVersion,
		Engine:         Engine{Version: probe.DefaultVersion},
		UAVersion:      probe.DefaultVersion,
		BrowserVersion: probe.DefaultVersion,
	}
}

var (
	microsoftPattern = regexp.MustCompile(`(?i)Win|IEMobile`)
	applePattern     = regexp.MustCompile(`(?i)Mac|iPhone|iPad|iPod`)
	androidPattern   = regexp.MustCompile(`(?i)Android`)

	// KindlePattern matches the signature tokens of Amazon Kindle and Fire devices.
	KindlePattern = regexp.MustCompile(`(?i)Kindle|Silk|KFTT|KFOT|KFJWA|KFJWI|KFSOWI|KFTHWA|KFTHWI|KFAPWA|KFAPWI`)
)

// Detect derives the platform from the signature, refined by probes.
// Branches are tried in order: Microsoft, Apple, Android, Kindle, other.
func Detect(o probe.Oracle, sig probe.Signature) Info {
	switch {
	case sig.Matches(microsoftPattern):
		return Microsoft(o, sig)
	case sig.Matches(applePattern):
		return Apple(o, sig)
	case sig.Matches(androidPattern):
		return Android(o, sig)
	case sig.Matches(KindlePattern):
		return Kindle(o, sig)
	}
	return Other(o, sig)
}

// navigatorPlatform returns navigator.platform, or "" when it is not a string.
func navigatorPlatform(o probe.Oracle) string {
	s, _ := o.Has("platform", o.Has("navigator", nil)).(string)
	return s
}
