package platform

import (
	"regexp"

	"github.com/dmitrymomot/probekit/pkg/probe"
)

var (
	wiiPattern          = regexp.MustCompile(`(?i)Wii`)
	playStation4Pattern = regexp.MustCompile(`(?i)PlayStation.4`)
	playStationPattern  = regexp.MustCompile(`(?i)PlayStation`)
	symbianPattern      = regexp.MustCompile(`(?i)Nokia|Symbian`)
	blackBerryPattern   = regexp.MustCompile(`(?i)BlackBerry|BB10|\bRIM\b`)
	linuxPattern        = regexp.MustCompile(`(?i)Linux`)
)

// Other covers consoles, legacy phones and Linux desktops.
func Other(o probe.Oracle, sig probe.Signature) Info {
	info := newInfo()

	switch {
	case probe.Global("wiiu").Eval(o):
		info.Name, info.Version = OSWii, "U"
		info.Browser, info.Device = BrowserNetFront, DeviceConsole
	case sig.Matches(wiiPattern):
		info.Name = OSWii
		info.Browser, info.Device = BrowserNetFront, DeviceConsole
	case sig.Matches(playStation4Pattern):
		info.Name, info.Version = OSPlayStation, "4"
		info.Browser, info.Device = BrowserNetFront, DeviceConsole
	case sig.Matches(playStationPattern):
		info.Name, info.Version = OSPlayStation, "3"
		info.Device = DeviceConsole
	case sig.Matches(symbianPattern):
		info.Name, info.Device = OSSymbian, DeviceMobile
	case sig.Matches(blackBerryPattern):
		info.Name, info.Device = OSBlackBerry, DeviceMobile
	case navigatorPlatform(o) == "X11" || sig.Matches(linuxPattern):
		info.Name, info.Device = OSLinux, DeviceDesktop
	default:
		info.Name = OSUnknown
	}

	return info
}
