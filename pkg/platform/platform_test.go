package platform_test

import (
	"testing"

	"github.com/dmitrymomot/probekit/pkg/platform"
	"github.com/dmitrymomot/probekit/pkg/probe"

	"github.com/stretchr/testify/assert"
)

func env(window map[string]any) probe.Oracle {
	return probe.Snapshot{Window: window}.Probe()
}

func TestDetect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		ua      string
		window  map[string]any
		os      string
		version string
		device  platform.DeviceClass
	}{
		{
			name:    "Windows 10",
			ua:      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/55.0.2883.87 Safari/537.36",
			os:      platform.OSWindows,
			version: "10.0",
			device:  platform.DeviceDesktop,
		},
		{
			name:    "Windows 7",
			ua:      "Mozilla/5.0 (Windows NT 6.1; WOW64; Trident/7.0; rv:11.0) like Gecko",
			os:      platform.OSWindows,
			version: "7",
			device:  platform.DeviceDesktop,
		},
		{
			name:    "Windows 2000 SP1",
			ua:      "Mozilla/4.0 (compatible; MSIE 6.0; Windows NT 5.01)",
			os:      platform.OSWindows,
			version: "2000 SP1",
			device:  platform.DeviceDesktop,
		},
		{
			name:    "unmapped NT version",
			ua:      "Mozilla/5.0 (Windows NT 11.5)",
			os:      platform.OSWindows,
			version: platform.UnknownVersion,
			device:  platform.DeviceDesktop,
		},
		{
			name:    "Windows 98",
			ua:      "Mozilla/4.0 (compatible; MSIE 5.5; Windows 98)",
			os:      platform.OSWindows,
			version: "9x",
			device:  platform.DeviceDesktop,
		},
		{
			name:    "Windows CE",
			ua:      "Mozilla/4.0 (compatible; MSIE 4.01; Windows CE; PPC; 240x320)",
			os:      platform.OSWindows,
			version: "CE",
			device:  platform.DeviceMobile,
		},
		{
			name:    "Windows Phone",
			ua:      "Mozilla/5.0 (compatible; MSIE 10.0; Windows Phone 8.0; Trident/6.0; IEMobile/10.0; ARM; Touch; NOKIA; Lumia 920)",
			os:      platform.OSWindowsPhone,
			version: "8.0",
			device:  platform.DeviceMobile,
		},
		{
			name:    "Windows Phone WP token",
			ua:      "Mozilla/4.0 (compatible; MSIE 7.0; WP7.5; IEMobile/9.0)",
			os:      platform.OSWindowsPhone,
			version: "7.5",
			device:  platform.DeviceMobile,
		},
		{
			name:    "Surface",
			ua:      "Mozilla/5.0 (compatible; MSIE 10.0; Windows NT 6.2; ARM; Trident/6.0; Touch)",
			os:      platform.OSWindowsRT,
			version: "8",
			device:  platform.DeviceDesktop,
		},
		{
			name:    "Xbox One",
			ua:      "Mozilla/5.0 (compatible; MSIE 10.0; Windows NT 6.2; Trident/6.0; Xbox; Xbox One)",
			os:      platform.OSXbox,
			version: "One",
			device:  platform.DeviceConsole,
		},
		{
			name:    "Xbox 360",
			ua:      "Mozilla/5.0 (compatible; MSIE 9.0; Windows NT 6.1; Trident/5.0; Xbox)",
			os:      platform.OSXbox,
			version: "360",
			device:  platform.DeviceConsole,
		},
		{
			name:    "iPhone",
			ua:      "Mozilla/5.0 (iPhone; CPU iPhone OS 9_3 like Mac OS X) AppleWebKit/601.1.46 (KHTML, like Gecko) Version/9.0 Mobile/13E188a Safari/601.1",
			window:  map[string]any{"navigator": map[string]any{"platform": "iPhone"}},
			os:      platform.OSiOS,
			version: "9.3",
			device:  platform.DeviceMobile,
		},
		{
			name:    "iOS 10 two-digit major",
			ua:      "Mozilla/5.0 (iPhone; CPU iPhone OS 10_3 like Mac OS X) AppleWebKit/603.1.30 (KHTML, like Gecko) Version/10.0 Mobile/14E277 Safari/602.1",
			os:      platform.OSiOS,
			version: "10.3",
			device:  platform.DeviceMobile,
		},
		{
			name:    "iPad by navigator.platform",
			ua:      "Mozilla/5.0 (iPad; CPU OS 8_1 like Mac OS X) AppleWebKit/600.1.4 (KHTML, like Gecko) Version/8.0 Mobile/12B410 Safari/600.1.4",
			window:  map[string]any{"navigator": map[string]any{"platform": "iPad"}},
			os:      platform.OSiOS,
			version: "8.1",
			device:  platform.DeviceTablet,
		},
		{
			name:    "webview names no browser",
			ua:      "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_11) AppleWebKit/601.1.46 (KHTML, like Gecko)",
			os:      platform.OSiOS,
			version: platform.UnknownVersion,
			device:  platform.DeviceMobile,
		},
		{
			name:    "Mac",
			ua:      "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_11_6) AppleWebKit/602.3.12 (KHTML, like Gecko) Version/10.0.2 Safari/602.3.12",
			os:      platform.OSMac,
			version: "10.11",
			device:  platform.DeviceDesktop,
		},
		{
			name:    "Mac without version",
			ua:      "Mozilla/5.0 (Macintosh) Firefox/50.0",
			os:      platform.OSMac,
			version: platform.UnknownVersion,
			device:  platform.DeviceDesktop,
		},
		{
			name:    "Android bounded by probes",
			ua:      "Mozilla/5.0 (Linux; Android 6.0.1; Nexus 5X) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/55.0.2883.91 Mobile Safari/537.36",
			window:  map[string]any{"navigator": map[string]any{"sendBeacon": map[string]any{"$fn": true}}},
			os:      platform.OSAndroid,
			version: "6",
			device:  platform.DeviceMobile,
		},
		{
			name:    "Android floor",
			ua:      "Mozilla/5.0 (Linux; U; Android 4.4; en-us) AppleWebKit/534.30 (KHTML, like Gecko) Version/4.0 Mobile Safari/534.30",
			os:      platform.OSAndroid,
			version: "4",
			device:  platform.DeviceMobile,
		},
		{
			name:    "Kindle",
			ua:      "Mozilla/4.0 (compatible; Linux 2.6.22) NetFront/3.4 Kindle/2.0 (screen 600x800)",
			os:      platform.OSKindle,
			version: platform.UnknownVersion,
			device:  platform.DeviceTablet,
		},
		{
			name:    "Wii U by probe",
			ua:      "Mozilla/5.0 (Nintendo WiiU) AppleWebKit/536.28 (KHTML, like Gecko) NX/3.0.3.12.12 NintendoBrowser/4.3.1.11264.US",
			window:  map[string]any{"wiiu": map[string]any{}},
			os:      platform.OSWii,
			version: "U",
			device:  platform.DeviceConsole,
		},
		{
			name:    "Wii",
			ua:      "Opera/9.30 (Nintendo Wii; U; ; 3642; en)",
			os:      platform.OSWii,
			version: platform.UnknownVersion,
			device:  platform.DeviceConsole,
		},
		{
			name:    "PlayStation 4",
			ua:      "Mozilla/5.0 (PlayStation 4 4.50) AppleWebKit/601.2 (KHTML, like Gecko)",
			os:      platform.OSPlayStation,
			version: "4",
			device:  platform.DeviceConsole,
		},
		{
			name:    "PlayStation 3",
			ua:      "Mozilla/5.0 (PLAYSTATION 3; 3.55)",
			os:      platform.OSPlayStation,
			version: "3",
			device:  platform.DeviceConsole,
		},
		{
			name:    "Symbian",
			ua:      "Mozilla/5.0 (SymbianOS/9.4; Series60/5.0 NokiaN97-1/12.0.024) AppleWebKit/525 (KHTML, like Gecko) BrowserNG/7.1.18124",
			os:      platform.OSSymbian,
			version: platform.UnknownVersion,
			device:  platform.DeviceMobile,
		},
		{
			name:    "BlackBerry",
			ua:      "BlackBerry9700/5.0.0.351 Profile/MIDP-2.1 Configuration/CLDC-1.1 VendorID/123",
			os:      platform.OSBlackBerry,
			version: platform.UnknownVersion,
			device:  platform.DeviceMobile,
		},
		{
			name:    "Linux",
			ua:      "Mozilla/5.0 (X11; Ubuntu; Linux x86_64; rv:50.0) Gecko/20100101 Firefox/50.0",
			os:      platform.OSLinux,
			version: platform.UnknownVersion,
			device:  platform.DeviceDesktop,
		},
		{
			name:    "Linux by navigator.platform",
			ua:      "Mozilla/5.0 Konqueror/4.14",
			window:  map[string]any{"navigator": map[string]any{"platform": "X11"}},
			os:      platform.OSLinux,
			version: platform.UnknownVersion,
			device:  platform.DeviceDesktop,
		},
		{
			name:    "empty signature",
			ua:      "",
			os:      platform.OSUnknown,
			version: platform.UnknownVersion,
			device:  platform.DeviceUnknown,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			info := platform.Detect(env(tc.window), probe.NewSignature(tc.ua))
			assert.Equal(t, tc.os, info.Name)
			assert.Equal(t, tc.version, info.Version)
			assert.Equal(t, tc.device, info.Device)
		})
	}
}

func TestMicrosoft_ConsoleBrowser(t *testing.T) {
	t.Parallel()

	info := platform.Microsoft(env(nil), probe.NewSignature("Mozilla/5.0 (compatible; MSIE 10.0; Xbox; Xbox One)"))
	assert.Equal(t, platform.BrowserInternetExplorer, info.Browser)
	assert.Equal(t, float64(10), info.BrowserVersion)
}

func TestAndroid_Engine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		ua      string
		engine  string
		version float64
		uaVer   float64
	}{
		{
			name:    "chrome",
			ua:      "Mozilla/5.0 (Linux; Android 5.1; XT1254) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/51.0.2704.81 Mobile Safari/537.36",
			engine:  platform.EngineChrome,
			version: 51,
			uaVer:   5.1,
		},
		{
			name:    "webkit",
			ua:      "Mozilla/5.0 (Linux; U; Android 2.3.6; en-us) AppleWebKit/533.1 (KHTML, like Gecko) Version/4.0 Mobile Safari/533.1",
			engine:  platform.EngineWebKit,
			version: 533,
			uaVer:   2.3,
		},
		{
			name:    "unknown",
			ua:      "Android",
			engine:  platform.EngineUnknown,
			version: probe.DefaultVersion,
			uaVer:   probe.DefaultVersion,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			info := platform.Android(env(nil), probe.NewSignature(tc.ua))
			assert.Equal(t, tc.engine, info.Engine.Name)
			assert.Equal(t, tc.version, info.Engine.Version)
			assert.Equal(t, tc.uaVer, info.UAVersion)
		})
	}
}

func TestKindle(t *testing.T) {
	t.Parallel()

	t.Run("silk", func(t *testing.T) {
		t.Parallel()
		sig := probe.NewSignature("Mozilla/5.0 (Linux; U; en-us; KFTHWI Build/JDQ39) AppleWebKit/535.19 (KHTML, like Gecko) Silk/3 Safari/535.19 Silk-Accelerated=true")
		o := env(map[string]any{"document": map[string]any{"pointerLockElement": nil, "hidden": false}, "PerformanceTiming": map[string]any{}})
		info := platform.Kindle(o, sig)
		assert.Equal(t, platform.EngineSilk, info.Engine.Name)
		assert.Equal(t, float64(3), info.Engine.Version)
		assert.Equal(t, float64(3), info.UAVersion)
		assert.Equal(t, float64(3), info.BrowserVersion)
		assert.Equal(t, platform.DeviceTablet, info.Device)
	})

	t.Run("e-ink", func(t *testing.T) {
		t.Parallel()
		sig := probe.NewSignature("Mozilla/5.0 (Linux; U; en-US) AppleWebKit/528.5+ (KHTML, like Gecko, Safari/528.5+) Kindle/3.0 (screen 600x800; rotate)")
		info := platform.Kindle(env(nil), sig)
		assert.Equal(t, platform.EngineWebKit, info.Engine.Name)
		assert.Equal(t, float64(1), info.UAVersion)
		assert.Equal(t, float64(1), info.BrowserVersion)
	})

	t.Run("explicit version", func(t *testing.T) {
		t.Parallel()
		sig := probe.NewSignature("Mozilla/5.0 (X11; U; Linux armv7l; en-us) AppleWebKit/531.2+ (KHTML, like Gecko) Version/5.0 Safari/531.2+ Kindle/3.0+")
		info := platform.Kindle(env(nil), sig)
		assert.Equal(t, 5.0, info.UAVersion)
		assert.Equal(t, 5.0, info.BrowserVersion)
	})
}

func TestDetect_Hostile(t *testing.T) {
	t.Parallel()

	o := probe.New(probe.NewObject(map[string]any{
		"navigator": probe.NewObject(map[string]any{"platform": 42}),
	}))
	assert.NotPanics(t, func() {
		info := platform.Detect(o, probe.NewSignature("Mozilla/5.0 (iPhone)"))
		assert.Equal(t, platform.OSiOS, info.Name)
	})
}
