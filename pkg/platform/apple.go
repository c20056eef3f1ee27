package platform

import (
	"regexp"
	"strconv"

	"github.com/dmitrymomot/probekit/pkg/probe"
)

var (
	iosDevicePattern   = regexp.MustCompile(`(?i)iPhone|iPad|iPod`)
	ipadPattern        = regexp.MustCompile(`(?i)iPad`)
	iphonePattern      = regexp.MustCompile(`(?i)iPhone|iPod`)
	macPattern         = regexp.MustCompile(`(?i)Mac`)
	namedBrowser       = regexp.MustCompile(`(?i)Safari|Firefox|Chrome`)
	iosVersionPattern  = regexp.MustCompile(`(?i).OS.(\d+[._]\d+)`)
	safariVersionToken = regexp.MustCompile(`(?i).Version/(\d+\.\d+)`)
	macVersionPattern  = regexp.MustCompile(`(?i)Mac.OS.X.10.(\d+)`)
)

// Apple covers iOS devices and Macs. A signature that names no browser at
// all is an iOS webview, whatever device it claims.
func Apple(o probe.Oracle, sig probe.Signature) Info {
	info := newInfo()
	platform := probe.NewSignature(navigatorPlatform(o))

	if sig.Matches(iosDevicePattern) || platform.Matches(iosDevicePattern) || !sig.Matches(namedBrowser) {
		info.Name = OSiOS
		if v, ok := sig.Submatch(iosVersionPattern); ok {
			info.UAVersion = probe.ParseVersion(v)
		} else if v, ok := sig.Submatch(safariVersionToken); ok {
			info.UAVersion = probe.ParseVersion(v)
		}
		if info.UAVersion != probe.DefaultVersion {
			info.Version = probe.FormatVersion(info.UAVersion)
		}
		info.Device = iosDevice(platform, sig)
		return info
	}

	if sig.Matches(macPattern) || platform.Matches(macPattern) {
		info.Name, info.Device = OSMac, DeviceDesktop
		if minor := sig.Int(macVersionPattern); minor > 0 {
			info.Version = "10." + strconv.Itoa(int(minor))
		}
		return info
	}

	info.Name = OSUnknown
	return info
}

// iosDevice trusts navigator.platform first and falls back to the signature.
func iosDevice(platform, sig probe.Signature) DeviceClass {
	for _, s := range []probe.Signature{platform, sig} {
		switch {
		case s.Matches(ipadPattern):
			return DeviceTablet
		case s.Matches(iphonePattern):
			return DeviceMobile
		}
	}
	return DeviceMobile
}
