package platform

import (
	"regexp"

	"github.com/dmitrymomot/probekit/pkg/probe"
)

var (
	xboxOnePattern      = regexp.MustCompile(`(?i)XBox One`)
	xboxPattern         = regexp.MustCompile(`(?i)Xbox`)
	ieMobilePattern     = regexp.MustCompile(`(?i)IEMobile`)
	windowsPhonePattern = regexp.MustCompile(`(?i)Windows.Phone.(?:os)?\s?(\d\d?\.?\d?\d?)`)
	wpPattern           = regexp.MustCompile(`(?i)WP(\d\d?\.?\d?\d?)`)
	windowsNTPattern    = regexp.MustCompile(`(?i)Windows.NT.(\d\d?\.?\d?\d?)`)
	windows9xPattern    = regexp.MustCompile(`(?i)Windows.9(\d)`)
	windowsCEPattern    = regexp.MustCompile(`(?i)Windows.CE`)
	touchPattern        = regexp.MustCompile(`(?i)Touch`)
)

// windowsNT maps kernel versions onto marketing names.
var windowsNT = map[float64]string{
	10:   "10.0",
	6.3:  "8.1",
	6.2:  "8",
	6.1:  "7",
	6:    "Vista",
	5.2:  "2003",
	5.1:  "XP",
	5.01: "2000 SP1",
	5:    "2000",
	4:    "NT",
}

// Microsoft covers Windows desktops, phones, Surface tablets and Xbox consoles.
func Microsoft(_ probe.Oracle, sig probe.Signature) Info {
	info := newInfo()

	switch {
	case sig.Matches(xboxOnePattern):
		info.Name, info.Version = OSXbox, "One"
		info.Browser, info.BrowserVersion = BrowserInternetExplorer, 10
		info.Device = DeviceConsole
	case sig.Matches(xboxPattern):
		info.Name, info.Version = OSXbox, "360"
		info.Browser, info.BrowserVersion = BrowserInternetExplorer, 7
		info.Device = DeviceConsole
	case sig.Matches(ieMobilePattern):
		info.Name, info.Device = OSWindowsPhone, DeviceMobile
		if v, ok := sig.Submatch(windowsPhonePattern); ok {
			info.Version = v
		} else if v, ok := sig.Submatch(wpPattern); ok {
			info.Version = v
		}
	case sig.Matches(windowsNTPattern):
		info.Name, info.Device = OSWindows, DeviceDesktop
		if v, ok := windowsNT[sig.Float(windowsNTPattern)]; ok {
			info.Version = v
		}
	case sig.Matches(windows9xPattern):
		info.Name, info.Version, info.Device = OSWindows, "9x", DeviceDesktop
	case sig.Matches(windowsCEPattern):
		info.Name, info.Version, info.Device = OSWindows, "CE", DeviceMobile
	default:
		info.Name, info.Device = OSWindows, DeviceDesktop
	}

	// Surface tablets report touch without the phone token
	if sig.Matches(touchPattern) && !sig.Matches(ieMobilePattern) {
		info.Name = OSWindowsRT
	}

	return info
}
