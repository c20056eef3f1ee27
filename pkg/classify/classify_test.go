package classify_test

import (
	"testing"

	"github.com/dmitrymomot/probekit/pkg/classify"
	"github.com/dmitrymomot/probekit/pkg/platform"
	"github.com/dmitrymomot/probekit/pkg/probe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	uaChrome90      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/90.0.4430.93 Safari/537.36"
	uaChrome50      = "Mozilla/5.0 (Windows NT 6.1) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/50.0.2661.102 Safari/537.36"
	uaFirefox50     = "Mozilla/5.0 (Windows NT 10.0; WOW64; rv:50.0) Gecko/20100101 Firefox/50.0"
	uaEdge14        = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/51.0.2704.79 Safari/537.36 Edge/14.14393"
	uaIE9           = "Mozilla/5.0 (compatible; MSIE 9.0; Windows NT 6.1; Trident/5.0)"
	uaIE11          = "Mozilla/5.0 (Windows NT 6.1; WOW64; Trident/7.0; rv:11.0) like Gecko"
	uaSafari10      = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_11_6) AppleWebKit/602.3.12 (KHTML, like Gecko) Version/10.0.2 Safari/602.3.12"
	uaOpera42       = "Mozilla/5.0 (Windows NT 10.0; WOW64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/55.0.2883.87 Safari/537.36 OPR/42.0.2393.94"
	uaOpera12       = "Opera/9.80 (Windows NT 6.1; WOW64) Presto/2.12.388 Version/12.16"
	uaOperaWii      = "Opera/9.30 (Nintendo Wii; U; ; 3642; en)"
	uaChromeAndroid = "Mozilla/5.0 (Linux; Android 7.0; Nexus 5X) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/55.0.2883.91 Mobile Safari/537.36"
	uaFirefoxMobile = "Mozilla/5.0 (Android 6.0; Mobile; rv:50.0) Gecko/50.0 Firefox/50.0"
	uaIEMobile      = "Mozilla/5.0 (compatible; MSIE 10.0; Windows Phone 8.0; Trident/6.0; IEMobile/10.0; ARM; Touch; NOKIA; Lumia 920)"
	uaOperaMini     = "Opera/9.80 (J2ME/MIDP; Opera Mini/9.80 (S60; SymbOS; Opera Mobi/23.348; U; en) Presto/2.5.25 Version/10.54"
	uaIPhone        = "Mozilla/5.0 (iPhone; CPU iPhone OS 9_3 like Mac OS X) AppleWebKit/601.1.46 (KHTML, like Gecko) Version/9.0 Mobile/13E188a Safari/601.1"
	uaIOSWebview    = "Mozilla/5.0 (iPhone; CPU iPhone OS 9_3 like Mac OS X) AppleWebKit/601.1.46 (KHTML, like Gecko) Mobile/13E188a"
	uaAndroid44     = "Mozilla/5.0 (Linux; U; Android 4.4.2; en-us; SCH-I535 Build/KOT49H) AppleWebKit/534.30 (KHTML, like Gecko) Version/4.0 Mobile Safari/534.30"
	uaAndroid16     = "Mozilla/5.0 (Linux; U; Android 1.6; en-us; T-Mobile G1 Build/DRC83) AppleWebKit/528.5+ (KHTML, like Gecko) Version/3.1.2 Mobile Safari/525.20.1"
	uaBlackBerry    = "Mozilla/5.0 (BlackBerry; U; BlackBerry 9900; en) AppleWebKit/534.11+ (KHTML, like Gecko) Version/7.1.0.346 Mobile Safari/534.11+"
	uaOperaAndroid  = "Opera/9.80 (Android 2.3.3; Linux; Opera Mobi/ADR-1111101157; U; es-ES) Presto/2.9.201 Version/11.50"
	uaKindle        = "Mozilla/5.0 (Linux; U; en-us; KFTHWI Build/JDQ39) AppleWebKit/535.19 (KHTML, like Gecko) Silk/3.13 Safari/535.19 Silk-Accelerated=true"
	uaSurface       = "Mozilla/5.0 (compatible; MSIE 10.0; Windows NT 6.2; ARM; Trident/6.0; Touch)"
	uaPS4           = "Mozilla/5.0 (PlayStation 4 4.50) AppleWebKit/601.2 (KHTML, like Gecko)"
	uaKonqueror     = "Mozilla/5.0 (X11; Linux x86_64) KHTML/4.14.2 (like Gecko) Konqueror/4.14"
)

// The four reference scenarios of the classifier.
func TestClassify_Scenarios(t *testing.T) {
	t.Parallel()

	t.Run("modern chromium beyond the table", func(t *testing.T) {
		t.Parallel()
		o := oracle(desktopWindow(window{
			"chrome":       obj(),
			"Notification": fn,
			"Proxy":        fn,
			"CSS":          obj("supports", fn),
		}))
		r := classify.Classify(o, probe.NewSignature(uaChrome90))

		assert.Equal(t, classify.Chrome, r.Family)
		assert.Equal(t, classify.NameChrome, r.Category)
		assert.Equal(t, float64(classify.DefaultCeilings().Chrome), r.Version)
		assert.Equal(t, float64(90), r.UAVersion)
		assert.Equal(t, classify.MaxExceeded, r.Max)
		assert.True(t, r.Trustworthy)
		assert.Equal(t, platform.EngineBlink, r.Engine.Name)
	})

	t.Run("nothing to probe and no signature", func(t *testing.T) {
		t.Parallel()
		r := classify.Classify(probe.New(nil), probe.NewSignature(""))

		assert.Equal(t, classify.Unknown, r.Family)
		assert.Equal(t, classify.NameUnknown, r.Category)
		assert.False(t, r.Trustworthy)
		assert.Equal(t, classify.MaxOK, r.Max)
	})

	t.Run("gecko probe with a chromium signature", func(t *testing.T) {
		t.Parallel()
		o := oracle(desktopWindow(window{
			"navigator":    obj("mozGetUserMedia", fn),
			"Notification": fn,
		}))
		r := classify.Classify(o, probe.NewSignature(uaChrome50))

		assert.Equal(t, classify.Firefox, r.Family)
		assert.Equal(t, classify.NameFirefox, r.Category)
		assert.False(t, r.Trustworthy)
	})

	t.Run("old release below the floor", func(t *testing.T) {
		t.Parallel()
		o := oracle(mobileWindow(window{"isFinite": fn}))
		r := classify.Classify(o, probe.NewSignature(uaAndroid16))

		assert.Equal(t, classify.Android, r.Family)
		assert.Equal(t, 1.6, r.UAVersion)
		assert.Equal(t, 2.1, r.Version)
		assert.Equal(t, classify.MaxOK, r.Max)
		assert.True(t, r.Trustworthy)
	})
}

func TestClassify_Families(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		window   window
		events   []string
		ua       string
		family   classify.Category
		category string
		version  float64
		device   platform.DeviceClass
		trusted  bool
	}{
		{
			name:     "Edge",
			window:   desktopWindow(window{"navigator": obj("onLine", true), "document": obj("execCommand", fn, "pointerLockElement", false)}),
			ua:       uaEdge14,
			family:   classify.Microsoft,
			category: classify.NameEdge,
			version:  14,
			device:   platform.DeviceDesktop,
			trusted:  true,
		},
		{
			name:     "Internet Explorer 11",
			window:   desktopWindow(window{"navigator": obj("onLine", true), "MutationObserver": fn}),
			ua:       uaIE11,
			family:   classify.Microsoft,
			category: classify.NameInternetExplorer,
			version:  11,
			device:   platform.DeviceDesktop,
			trusted:  true,
		},
		{
			name:     "Internet Explorer 9",
			window:   desktopWindow(window{"navigator": obj("onLine", true), "addEventListener": fn}),
			ua:       uaIE9,
			family:   classify.Microsoft,
			category: classify.NameInternetExplorer,
			version:  9,
			device:   platform.DeviceDesktop,
			trusted:  true,
		},
		{
			name:     "Firefox",
			window:   desktopWindow(window{"InstallTrigger": obj(), "Notification": fn, "PushManager": fn}),
			ua:       uaFirefox50,
			family:   classify.Firefox,
			category: classify.NameFirefox,
			version:  50,
			device:   platform.DeviceDesktop,
			trusted:  true,
		},
		{
			name:     "Safari",
			window:   desktopWindow(window{"Notification": fn, "EventSource": fn, "CSS": obj("supports", fn)}),
			ua:       uaSafari10,
			family:   classify.Safari,
			category: classify.NameSafari,
			version:  10,
			device:   platform.DeviceDesktop,
			trusted:  true,
		},
		{
			name:     "Opera on Blink is untrusted without the Opera token",
			window:   desktopWindow(window{"chrome": obj(), "Notification": fn, "Proxy": fn, "Intl": obj()}),
			ua:       uaOpera42,
			family:   classify.Opera,
			category: classify.NameOpera,
			version:  42,
			device:   platform.DeviceDesktop,
			trusted:  false,
		},
		{
			name:     "Opera on Presto",
			window:   desktopWindow(window{"opera": obj("version", obj("$fn", "12.16")), "Notification": fn}),
			ua:       uaOpera12,
			family:   classify.Opera,
			category: classify.NameOpera,
			version:  12.16,
			device:   platform.DeviceDesktop,
			trusted:  true,
		},
		{
			name:     "Opera on a Wii",
			window:   desktopWindow(window{"opera": obj(), "Notification": fn}),
			ua:       uaOperaWii,
			family:   classify.Opera,
			category: classify.NameOpera,
			version:  9,
			device:   platform.DeviceConsole,
			trusted:  true,
		},
		{
			name:     "Chrome Android",
			window:   mobileWindow(window{"navigator": obj("permissions", obj())}),
			ua:       uaChromeAndroid,
			family:   classify.ChromeMobile,
			category: classify.NameChromeMobile,
			version:  55,
			device:   platform.DeviceMobile,
			trusted:  true,
		},
		{
			name:     "Firefox Android",
			window:   mobileWindow(window{"ondevicelight": obj()}),
			ua:       uaFirefoxMobile,
			family:   classify.FirefoxMobile,
			category: classify.NameFirefoxMobile,
			version:  50,
			device:   platform.DeviceMobile,
			trusted:  true,
		},
		{
			name:     "Mobile IE",
			window:   mobileWindow(window{"setImmediate": fn}),
			ua:       uaIEMobile,
			family:   classify.MicrosoftMobile,
			category: classify.NameMicrosoftMobile,
			version:  10,
			device:   platform.DeviceMobile,
			trusted:  true,
		},
		{
			name:     "Opera Mini",
			window:   window{"navigator": obj(), "document": obj()},
			ua:       uaOperaMini,
			family:   classify.OperaMini,
			category: classify.NameOperaMini,
			version:  9,
			device:   platform.DeviceMobile,
			trusted:  true,
		},
		{
			name: "Mobile Safari",
			window: mobileWindow(window{
				"navigator":       obj("platform", "iPhone"),
				"speechSynthesis": obj(),
				"Intl":            nil,
				"CSS":             obj("supports", fn),
			}),
			ua:       uaIPhone,
			family:   classify.SafariMobile,
			category: classify.NameSafariMobile,
			version:  9,
			device:   platform.DeviceMobile,
			trusted:  true,
		},
		{
			name:     "iOS webview",
			window:   mobileWindow(window{"isFinite": fn, "MathMLElement": fn, "CSS": obj("supports", fn)}),
			ua:       uaIOSWebview,
			family:   classify.Webview,
			category: classify.NameWebview,
			version:  9.3,
			device:   platform.DeviceMobile,
			trusted:  true,
		},
		{
			name:     "Android",
			window:   mobileWindow(window{"isFinite": fn, "performance": obj("now", fn)}),
			ua:       uaAndroid44,
			family:   classify.Android,
			category: classify.NameAndroid,
			version:  4.4,
			device:   platform.DeviceMobile,
			trusted:  true,
		},
		{
			name:     "BlackBerry",
			window:   mobileWindow(window{"Intl": nil}),
			ua:       uaBlackBerry,
			family:   classify.BlackBerry,
			category: classify.NameBlackBerry,
			version:  7.1,
			device:   platform.DeviceMobile,
			trusted:  true,
		},
		{
			name:     "Opera Android",
			window:   mobileWindow(window{"webkitRequestFileSystem": fn}),
			ua:       uaOperaAndroid,
			family:   classify.OperaAndroid,
			category: classify.NameOperaAndroid,
			version:  9,
			device:   platform.DeviceMobile,
			trusted:  true,
		},
		{
			name:     "Kindle",
			window:   mobileWindow(window{"PerformanceTiming": fn}),
			ua:       uaKindle,
			family:   classify.Kindle,
			category: classify.NameKindle,
			version:  3,
			device:   platform.DeviceTablet,
			trusted:  true,
		},
		{
			name:     "Surface",
			window:   window{"navigator": obj(), "document": obj("exitPointerLock", fn), "atob": fn},
			events:   []string{"TouchEvent"},
			ua:       uaSurface,
			family:   classify.Microsoft,
			category: classify.NameInternetExplorer,
			version:  10,
			device:   platform.DeviceDesktop,
			trusted:  true,
		},
		{
			name:     "unknown mobile",
			window:   mobileWindow(nil),
			ua:       "SomeBrowser/1.0 (Mobile)",
			family:   classify.UnknownMobile,
			category: classify.NameUnknown,
			version:  probe.DefaultVersion,
			device:   platform.DeviceMobile,
			trusted:  false,
		},
		{
			name:     "console",
			window:   desktopWindow(window{"Notification": fn, "Intl": obj(), "webkitRequestFileSystem": fn}),
			ua:       uaPS4,
			family:   classify.Console,
			category: platform.BrowserNetFront,
			version:  probe.DefaultVersion,
			device:   platform.DeviceConsole,
			trusted:  false,
		},
		{
			name: "KHTML",
			window: window{
				"navigator":               obj(),
				"document":                obj("execCommand", fn, "documentElement", obj("style", obj("KhtmlUserInput", ""))),
				"Notification":            fn,
				"Intl":                    obj(),
				"webkitRequestFileSystem": fn,
			},
			ua:       uaKonqueror,
			family:   classify.Unknown,
			category: classify.NameLinuxBrowser,
			version:  probe.DefaultVersion,
			device:   platform.DeviceDesktop,
			trusted:  false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			r := classify.Classify(oracle(tc.window, tc.events...), probe.NewSignature(tc.ua))

			assert.Equal(t, tc.family, r.Family, "family")
			assert.Equal(t, tc.category, r.Category, "category")
			assert.Equal(t, tc.version, r.Version, "version")
			assert.Equal(t, tc.device, r.Device, "device")
			assert.Equal(t, tc.trusted, r.Trustworthy, "trustworthy")
		})
	}
}

func TestClassify_Totality(t *testing.T) {
	t.Parallel()

	hostile := probe.New(probe.NewObject(map[string]any{
		"navigator": probe.NewObject(map[string]any{"platform": probe.Func(func(...any) any { panic("boom") })}),
		"document": probe.NewObject(map[string]any{
			"createEvent":   probe.Func(func(...any) any { panic("boom") }),
			"createElement": probe.Func(func(...any) any { panic("boom") }),
		}),
	}))

	oracles := []probe.Oracle{nil, probe.New(nil), probe.New(42), hostile}
	signatures := []string{"", "   ", uaChrome90, uaIPhone, "\x00\xff", uaKindle}

	for _, o := range oracles {
		for _, s := range signatures {
			assert.NotPanics(t, func() {
				r := classify.Classify(o, probe.NewSignature(s))
				assert.True(t, r.Family.Valid())
				assert.NotEmpty(t, r.Category)
				assert.Contains(t, []platform.DeviceClass{
					platform.DeviceDesktop, platform.DeviceMobile, platform.DeviceTablet, platform.DeviceConsole,
				}, r.Device)
				assert.Contains(t, []classify.MaxFlag{classify.MaxOK, classify.MaxExceeded}, r.Max)
			})
		}
	}
}

func TestClassify_Idempotent(t *testing.T) {
	t.Parallel()

	o := oracle(desktopWindow(window{"chrome": obj(), "Notification": fn, "PushManager": fn}))
	sig := probe.NewSignature(uaChrome50)

	first := classify.Classify(o, sig)
	second := classify.Classify(o, sig)
	require.Equal(t, first, second)
	assert.Equal(t, first.Encode(), second.Encode())
}

func TestClassify_DeviceIsExclusive(t *testing.T) {
	t.Parallel()

	r := classify.Classify(oracle(mobileWindow(window{"navigator": obj("permissions", obj())})), probe.NewSignature(uaChromeAndroid))
	flags := []bool{r.Desktop(), r.Mobile(), r.Tablet(), r.Console()}
	count := 0
	for _, f := range flags {
		if f {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestClassifier_WithCeilings(t *testing.T) {
	t.Parallel()

	c := classify.New(classify.WithCeilings(classify.Ceilings{Chrome: 100}))
	assert.Equal(t, float64(100), c.Ceilings().Chrome)
	assert.Equal(t, classify.DefaultCeilings().Firefox, c.Ceilings().Firefox)

	o := oracle(desktopWindow(window{"chrome": obj(), "Notification": fn, "Proxy": fn}))
	r := c.Classify(o, probe.NewSignature(uaChrome90))
	assert.Equal(t, float64(90), r.Version)
	assert.Equal(t, classify.MaxOK, r.Max)
}

func TestClassifier_Family(t *testing.T) {
	t.Parallel()

	c := classify.New()

	family, constrained := c.Family(probe.New(nil), probe.NewSignature(uaChrome90))
	assert.Equal(t, classify.Unknown, family)
	assert.False(t, constrained)

	family, constrained = c.Family(oracle(mobileWindow(window{"setImmediate": fn})), probe.NewSignature(uaIEMobile))
	assert.Equal(t, classify.MicrosoftMobile, family)
	assert.True(t, constrained)
}
