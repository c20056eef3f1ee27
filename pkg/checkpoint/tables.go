package checkpoint

import "github.com/dmitrymomot/probekit/pkg/probe"

// Newest release of each family the tables know about.
const (
	LatestChrome  = 55
	LatestFirefox = 51
	LatestEdge    = 14
	LatestOpera   = 40
)

// Table names.
const (
	NameChromium = "chromium"
	NameGecko    = "gecko"
	NameTrident  = "trident"
	NameSafari   = "safari"
	NameAndroid  = "android"
	NameKindle   = "kindle"
)

// Chromium covers Chrome and Blink-based Opera, capped at latest.
func Chromium(latest float64) Table {
	return Table{Name: NameChromium, Points: []Checkpoint{
		head(probe.Global("Proxy"), 49, latest),
		span(probe.Global("PushManager"), 44, 48),
		at(probe.Defined("navigator", "permissions"), 43),
		span(probe.Defined("navigator", "sendBeacon"), 39, 42),
		at(probe.Defined("navigator", "getBattery"), 38),
		at(probe.Defined("crypto", "subtle"), 37),
		span(probe.Element("img", "srcset"), 34, 36),
		at(probe.Defined("document", "visibilityState"), 33),
		at(probe.Global("Promise"), 32),
		span(probe.Defined("navigator", "vibrate"), 30, 31),
		span(probe.Global("MutationObserver"), 27, 29),
		at(probe.Element("template", "content"), 26),
		at(probe.Defined("performance", "mark"), 25),
		at(probe.Global("requestAnimationFrame"), 24),
		at(probe.Defined("URL", "createObjectURL"), 23),
		at(probe.Global("Notification"), 22),
		at(probe.Defined("navigator", "webkitGetUserMedia"), 21),
		at(probe.Global("Blob"), 20),
		span(probe.Defined("document", "webkitRequestFullscreen"), 15, 19),
		span(probe.Defined("performance", "timing"), 13, 14),
		at(probe.Element("details", "open"), 12),
		at(probe.Global("webkitIndexedDB"), 11),
		at(probe.Element("input", "checkValidity"), 10),
		at(probe.Global("matchMedia"), 9),
		at(probe.Element("_", "classList"), 8),
		at(probe.Global("Uint32Array"), 7),
		at(probe.Global("FileReader"), 6),
		at(probe.Global("webkitNotification"), 5),
		at(probe.Defined("history", "replaceState"), 4),
		span(probe.Always(), 0, 3),
	}}
}

// Gecko covers Firefox, capped at latest.
func Gecko(latest float64) Table {
	return Table{Name: NameGecko, Points: []Checkpoint{
		head(probe.Global("PushManager"), 44, latest),
		span(probe.Global("MessageChannel"), 41, 43),
		span(probe.Global("fetch"), 39, 40),
		at(probe.Defined("performance", "mark"), 38),
		span(probe.Defined("crypto", "subtle"), 34, 37),
		span(probe.Defined("navigator", "sendBeacon"), 31, 33),
		span(probe.Global("SharedWorker"), 29, 30),
		span(probe.Global("AudioContext"), 25, 28),
		span(probe.Global("requestAnimationFrame"), 23, 24),
		at(probe.Global("Notification"), 22),
		span(probe.Defined("document", "hidden"), 18, 21),
		at(probe.Defined("navigator", "mozGetUserMedia"), 17),
		at(probe.Global("indexedDB"), 16),
		at(probe.Defined("performance", "now"), 15),
		at(probe.Global("MutationObserver"), 14),
		at(probe.Global("Blob"), 13),
		span(probe.Global("WebSocket"), 11, 12),
		at(probe.Defined("navigator", "mozBattery"), 10),
		span(probe.Defined("performance", "timing"), 7, 9),
		at(probe.Global("matchMedia"), 6),
		span(probe.Global("Uint32Array"), 4, 5),
		at(probe.Global("FileReader"), 3.6),
		at(probe.Global("JSON"), 3.5),
		at(probe.Global("postMessage"), 3),
		span(probe.Always(), 0, 2.9),
	}}
}

// Trident covers Internet Explorer and EdgeHTML, capped at latestEdge.
// Releases older than IE6 cannot be told apart and resolve to DefaultVersion.
func Trident(latestEdge float64) Table {
	documentAll := probe.Defined("document", "all")
	return Table{Name: NameTrident, Points: []Checkpoint{
		head(probe.Defined("document", "pointerLockElement"), 13, latestEdge),
		at(probe.Global("Proxy"), 12),
		at(probe.Global("MutationObserver"), 11),
		at(probe.Global("atob"), 10),
		at(probe.Global("addEventListener"), 9),
		at(probe.Global("localStorage"), 8),
		at(probe.All(documentAll, probe.Global("XMLHttpRequest"), probe.Not(probe.Global("XDomainRequest")), probe.Not(probe.Global("opera"))), 7),
		at(probe.All(documentAll, probe.Not(probe.Global("XMLHttpRequest"))), 6),
		span(probe.Always(), probe.DefaultVersion, probe.DefaultVersion),
	}}
}

// Safari covers desktop and mobile Safari and iOS webviews.
func Safari() Table {
	return Table{Name: NameSafari, Points: []Checkpoint{
		at(probe.Defined("CSS", "supports"), 9.0),
		span(probe.Global("indexedDB"), 8.0, 8.4),
		span(probe.Present("document", "execCommand"), 7.0, 7.1),
		span(probe.Global("requestAnimationFrame"), 6.0, 6.1),
		at(probe.Global("Uint32Array"), 5.1),
		at(probe.Defined("navigator", "geolocation"), 5.0),
		span(probe.Defined("navigator", "onLine"), 4.2, 4.3),
		span(probe.Global("JSON"), 4.0, 4.1),
		at(probe.Global("postMessage"), 3.2),
		span(probe.Always(), 0, 3.1),
	}}
}

// Android covers the stock Android browser and the Android OS version.
func Android() Table {
	return Table{Name: NameAndroid, Points: []Checkpoint{
		at(probe.Defined("navigator", "sendBeacon"), 5.0),
		at(probe.Defined("performance", "now"), 4.4),
		span(probe.Global("FileList"), 4.0, 4.3),
		span(probe.Always(), 2.1, 4.0),
	}}
}

// Kindle covers the Silk and legacy Kindle browsers.
func Kindle() Table {
	return Table{Name: NameKindle, Points: []Checkpoint{
		at(probe.Defined("document", "pointerLockElement"), 3.0),
		at(probe.Global("PerformanceTiming"), 2.0),
		at(probe.Always(), 1.0),
	}}
}

// TridentEngine maps an Internet Explorer release onto its Trident version.
func TridentEngine(version float64) float64 {
	switch {
	case version >= 11:
		return 7
	case version == 10:
		return 6
	case version == 9:
		return 5
	case version == 8:
		return 4
	case version <= 7:
		return 3
	}
	return probe.DefaultVersion
}
