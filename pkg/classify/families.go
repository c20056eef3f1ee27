package classify

import (
	"math"
	"regexp"

	"github.com/dmitrymomot/probekit/pkg/checkpoint"
	"github.com/dmitrymomot/probekit/pkg/platform"
	"github.com/dmitrymomot/probekit/pkg/probe"
)

var (
	edgeVersion         = regexp.MustCompile(`(?i)Edge/(\d+)`)
	msieVersion         = regexp.MustCompile(`(?i)MSIE\s?(\d+)`)
	tridentRevision     = regexp.MustCompile(`(?i)Trident/.*rv:(\d+)`)
	tridentVersion      = regexp.MustCompile(`(?i)Trident/(\d+)`)
	geckoRevision       = regexp.MustCompile(`(?i)rv:(\d+)`)
	firefoxVersion      = regexp.MustCompile(`(?i)Firefox/(\d+)`)
	chromeVersion       = regexp.MustCompile(`(?i)Chrome/(\d+)`)
	prestoVersion       = regexp.MustCompile(`(?i)Presto/(\d+\.\d+)`)
	webkitVersion       = regexp.MustCompile(`(?i)AppleWebKit/(\d+)`)
	releaseVersion      = regexp.MustCompile(`(?i)Version/(\d+\.\d+)`)
	oprVersion          = regexp.MustCompile(`(?i)OPR/(\d+\.\d+)`)
	oprMajor            = regexp.MustCompile(`(?i)OPR/(\d+)`)
	prestoOperaVersion  = regexp.MustCompile(`(?i)Opera[/ ](\d+\.\d+)`)
	ieMobileVersion     = regexp.MustCompile(`(?i)IEMobile/(\d+)`)
	operaMiniVersion    = regexp.MustCompile(`(?i)Opera Mini/(\d+)`)
	operaAndroidVersion = regexp.MustCompile(`(?i)Opera/(\d+)`)
	blackBerryVersion   = regexp.MustCompile(`(?i)BlackBerry\s?\d*/(\d+\.\d+)`)
	nintendoToken       = regexp.MustCompile(`(?i)Nintendo`)

	khtml = probe.Defined("document.documentElement.style", "KhtmlUserInput")
)

// Blink-based Opera follows Chrome's release train thirteen versions behind.
const (
	operaBlinkSince  = 28
	operaChromiumLag = 13
)

type resolver func(c *Classifier, o probe.Oracle, sig probe.Signature) Result

var resolvers = map[Category]resolver{
	Microsoft:       (*Classifier).microsoft,
	Firefox:         (*Classifier).firefox,
	Chrome:          (*Classifier).chrome,
	Opera:           (*Classifier).opera,
	Safari:          (*Classifier).safari,
	Android:         (*Classifier).android,
	SafariMobile:    (*Classifier).safariMobile,
	ChromeMobile:    (*Classifier).chromeMobile,
	FirefoxMobile:   (*Classifier).firefoxMobile,
	MicrosoftMobile: (*Classifier).microsoftMobile,
	Webview:         (*Classifier).webview,
	OperaMini:       (*Classifier).operaMini,
	OperaAndroid:    (*Classifier).operaAndroid,
	BlackBerry:      (*Classifier).blackBerry,
	Kindle:          (*Classifier).kindle,
}

func (c *Classifier) microsoft(o probe.Oracle, sig probe.Signature) Result {
	r := newResult(Microsoft, platform.Microsoft(o, sig))
	r.UAVersion = firstVersion(sig, edgeVersion, msieVersion, tridentRevision)
	r.Version = c.trident.Bound(o, r.UAVersion)
	r.Engine = platform.Engine{Name: platform.EngineTrident, Version: checkpoint.TridentEngine(r.Version)}
	r.Category = NameInternetExplorer
	if r.Version >= 12 {
		r.Category = NameEdge
	}
	return r
}

func (c *Classifier) firefox(o probe.Oracle, sig probe.Signature) Result {
	r := newResult(Firefox, platform.Detect(o, sig))
	r.Category = NameFirefox
	r.Engine = platform.Engine{Name: platform.EngineGecko, Version: sig.Int(geckoRevision)}
	r.UAVersion = sig.Int(firefoxVersion)
	r.Version = c.gecko.Bound(o, r.UAVersion)
	return r
}

func (c *Classifier) chrome(o probe.Oracle, sig probe.Signature) Result {
	r := newResult(Chrome, platform.Detect(o, sig))
	r.Category = NameChrome
	r.Engine = platform.Engine{Name: platform.EngineWebKit, Version: sig.Int(chromeVersion)}
	// Blink shipped CSS.supports from its first release
	if probe.Global("CSS").Eval(o) {
		r.Engine.Name = platform.EngineBlink
	}
	r.UAVersion = r.Engine.Version
	r.Version = c.chromium.Bound(o, r.UAVersion)
	return r
}

func (c *Classifier) opera(o probe.Oracle, sig probe.Signature) Result {
	r := newResult(Opera, platform.Detect(o, sig))
	r.Category = NameOpera
	switch {
	case sig.Matches(prestoVersion):
		r.Engine.Version = sig.Float(prestoVersion)
	case sig.Matches(webkitVersion):
		r.Engine.Version = sig.Int(webkitVersion)
	}

	switch {
	case sig.Matches(nintendoToken):
		r.Engine.Name = platform.EnginePresto
		r.Version = 9
		r.Device = platform.DeviceConsole
	case probe.Defined("opera", "version").Eval(o):
		// Presto reports its own version
		r.Engine.Name = platform.EnginePresto
		r.Version = versionOf(o.Run(o.Has("opera", nil), "version")())
		r.UAVersion = firstVersion(sig, releaseVersion, prestoOperaVersion)
	default:
		chromium := c.chromium.Bound(o, sig.Int(chromeVersion))
		r.Engine = platform.Engine{Name: platform.EngineBlink, Version: chromium}
		r.Version = chromium
		if v := sig.Float(oprVersion); v != probe.DefaultVersion {
			r.UAVersion = v
		}
		if chromium >= operaBlinkSince {
			floor := chromium - operaChromiumLag
			r.Version = checkpoint.Clamp(r.UAVersion, floor, math.Max(floor, c.ceilings.Opera))
		}
	}
	return r
}

func (c *Classifier) safari(o probe.Oracle, sig probe.Signature) Result {
	r := newResult(Safari, platform.Detect(o, sig))
	r.Category = NameSafari
	r.Engine = platform.Engine{Name: platform.EngineWebKit, Version: sig.Int(webkitVersion)}
	if v := sig.Float(releaseVersion); v != probe.DefaultVersion {
		r.UAVersion = v
	}
	r.Version = c.safariTable.Bound(o, r.UAVersion)
	if r.Device == platform.DeviceUnknown {
		r.Device = platform.DeviceDesktop
	}
	return r
}

func (c *Classifier) android(o probe.Oracle, sig probe.Signature) Result {
	r := newResult(Android, platform.Android(o, sig))
	r.Category = NameAndroid
	r.Version = c.androidTable.Bound(o, r.UAVersion)
	return r
}

func (c *Classifier) safariMobile(o probe.Oracle, sig probe.Signature) Result {
	r := newResult(SafariMobile, platform.Apple(o, sig))
	r.Category = NameSafariMobile
	r.Engine = platform.Engine{Name: platform.EngineWebKit, Version: sig.Int(webkitVersion)}
	if v := sig.Float(releaseVersion); v != probe.DefaultVersion {
		r.UAVersion = v
	}
	r.Version = c.safariTable.Bound(o, r.UAVersion)
	// iOS and Safari share release numbers
	r.Platform.Version = probe.FormatVersion(r.Version)
	return r
}

// Mobile families below are not probed for versions; the signature is
// trusted as is.

func (c *Classifier) chromeMobile(o probe.Oracle, sig probe.Signature) Result {
	r := newResult(ChromeMobile, platform.Detect(o, sig))
	r.Category = NameChromeMobile
	r.UAVersion = sig.Int(chromeVersion)
	r.Version = r.UAVersion
	return r
}

func (c *Classifier) firefoxMobile(o probe.Oracle, sig probe.Signature) Result {
	r := newResult(FirefoxMobile, platform.Detect(o, sig))
	r.Category = NameFirefoxMobile
	r.Engine = platform.Engine{Name: platform.EngineGecko, Version: sig.Int(geckoRevision)}
	r.UAVersion = sig.Int(firefoxVersion)
	r.Version = r.UAVersion
	return r
}

func (c *Classifier) microsoftMobile(o probe.Oracle, sig probe.Signature) Result {
	r := newResult(MicrosoftMobile, platform.Microsoft(o, sig))
	r.Category = NameMicrosoftMobile
	r.Engine = platform.Engine{Name: platform.EngineTrident, Version: sig.Int(tridentVersion)}
	r.UAVersion = sig.Int(ieMobileVersion)
	r.Version = r.UAVersion
	return r
}

func (c *Classifier) webview(o probe.Oracle, sig probe.Signature) Result {
	r := newResult(Webview, platform.Apple(o, sig))
	r.Category = NameWebview
	r.Engine = platform.Engine{Name: platform.EngineWebKit, Version: sig.Int(webkitVersion)}
	r.Version = c.safariTable.Bound(o, r.UAVersion)
	return r
}

func (c *Classifier) operaMini(o probe.Oracle, sig probe.Signature) Result {
	r := newResult(OperaMini, platform.Detect(o, sig))
	r.Category = NameOperaMini
	r.Engine = platform.Engine{Name: platform.EnginePresto, Version: sig.Float(prestoVersion)}
	r.UAVersion = sig.Int(operaMiniVersion)
	r.Version = r.UAVersion
	return r
}

func (c *Classifier) operaAndroid(o probe.Oracle, sig probe.Signature) Result {
	r := newResult(OperaAndroid, platform.Detect(o, sig))
	r.Category = NameOperaAndroid
	r.UAVersion = firstVersion(sig, operaAndroidVersion, oprMajor)
	r.Version = r.UAVersion
	return r
}

func (c *Classifier) blackBerry(o probe.Oracle, sig probe.Signature) Result {
	r := newResult(BlackBerry, platform.Detect(o, sig))
	r.Category = NameBlackBerry
	if sig.Matches(webkitVersion) {
		r.Engine = platform.Engine{Name: platform.EngineWebKit, Version: sig.Int(webkitVersion)}
	}
	r.UAVersion = firstVersion(sig, releaseVersion, blackBerryVersion)
	r.Version = r.UAVersion
	return r
}

// Kindle is identified by signature alone, so the platform branch already
// carries the bounded version.
func (c *Classifier) kindle(o probe.Oracle, sig probe.Signature) Result {
	info := platform.Kindle(o, sig)
	r := newResult(Kindle, info)
	r.Category = NameKindle
	r.Version = info.BrowserVersion
	return r
}

// unknown handles both unknown categories. KHTML browsers are recognised by
// their style prefix; consoles keep the browser their firmware ships.
func (c *Classifier) unknown(family Category, o probe.Oracle, sig probe.Signature) Result {
	if khtml.Eval(o) {
		r := newResult(family, platform.Info{
			Name:      platform.OSLinux,
			Version:   platform.UnknownVersion,
			Device:    platform.DeviceDesktop,
			UAVersion: probe.DefaultVersion,
		})
		r.Category = NameLinuxBrowser
		r.Engine = platform.Engine{Name: platform.EngineKHTML, Version: probe.DefaultVersion}
		return r
	}

	info := platform.Detect(o, sig)
	r := newResult(family, info)
	r.Engine = platform.Engine{Name: platform.EngineUnknown, Version: probe.DefaultVersion}
	r.UAVersion = probe.DefaultVersion

	if info.Device == platform.DeviceConsole {
		r.Family = Console
		r.Category = NameConsole
		if info.Browser != "" {
			r.Category = info.Browser
		}
		r.Version = info.BrowserVersion
		return r
	}

	r.Category = NameUnknown
	r.Platform.Name = platform.OSUnknown
	return r
}

// firstVersion returns the first version any of the patterns extracts.
func firstVersion(sig probe.Signature, patterns ...*regexp.Regexp) float64 {
	for _, re := range patterns {
		if v := sig.Float(re); v != probe.DefaultVersion {
			return v
		}
	}
	return probe.DefaultVersion
}

// versionOf reads a version from a value an environment returned.
func versionOf(v any) float64 {
	switch x := v.(type) {
	case string:
		return probe.ParseVersion(x)
	case float64:
		return x
	case int:
		return float64(x)
	}
	return probe.DefaultVersion
}
