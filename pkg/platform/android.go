package platform

import (
	"regexp"

	"github.com/dmitrymomot/probekit/pkg/checkpoint"
	"github.com/dmitrymomot/probekit/pkg/probe"
)

var (
	androidVersionPattern = regexp.MustCompile(`(?i)Android\s(\d+\.\d+)`)
	chromeVersionPattern  = regexp.MustCompile(`(?i)Chrome/(\d+)`)
	webkitVersionPattern  = regexp.MustCompile(`(?i)AppleWebKit/(\d+)`)
	silkVersionPattern    = regexp.MustCompile(`(?i)Silk/(\d+)`)
	kindleVersionPattern  = regexp.MustCompile(`(?i)Version/(\d+\.\d+)`)
	chromeToken           = regexp.MustCompile(`(?i)Chrome`)
	webkitToken           = regexp.MustCompile(`(?i)AppleWebKit`)
	silkToken             = regexp.MustCompile(`(?i)Silk`)
	versionToken          = regexp.MustCompile(`(?i)Version`)
)

// Android covers Android phones. The OS version is the self-reported one
// bounded by what the probes can confirm.
func Android(o probe.Oracle, sig probe.Signature) Info {
	info := newInfo()
	info.Name, info.Device = OSAndroid, DeviceMobile
	info.UAVersion = sig.Float(androidVersionPattern)

	switch {
	case sig.Matches(chromeToken):
		info.Engine = Engine{Name: EngineChrome, Version: sig.Int(chromeVersionPattern)}
	case sig.Matches(webkitToken):
		info.Engine = Engine{Name: EngineWebKit, Version: sig.Int(webkitVersionPattern)}
	default:
		info.Engine.Name = EngineUnknown
	}

	info.Version = probe.FormatVersion(checkpoint.Android().Bound(o, info.UAVersion))
	return info
}

// Kindle covers Amazon e-readers and Fire tablets. The browser version comes
// from the Silk token unless the signature carries an explicit Version.
func Kindle(o probe.Oracle, sig probe.Signature) Info {
	info := newInfo()
	info.Name, info.Device = OSKindle, DeviceTablet

	switch {
	case sig.Matches(silkToken):
		info.Engine = Engine{Name: EngineSilk, Version: sig.Int(silkVersionPattern)}
		info.UAVersion = info.Engine.Version
	case sig.Matches(webkitToken):
		// a Kindle without Silk is an old e-ink reader
		info.Engine = Engine{Name: EngineWebKit, Version: sig.Int(webkitVersionPattern)}
		info.UAVersion = 1
	}

	if sig.Matches(versionToken) {
		info.UAVersion = sig.Float(kindleVersionPattern)
	}

	info.BrowserVersion = checkpoint.Kindle().Bound(o, info.UAVersion)
	return info
}
