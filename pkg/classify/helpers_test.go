package classify_test

import (
	"maps"

	"github.com/dmitrymomot/probekit/pkg/probe"
)

type window map[string]any

var fn = map[string]any{"$fn": true}

func obj(kv ...any) map[string]any {
	m := map[string]any{}
	for i := 0; i+1 < len(kv); i += 2 {
		m[kv[i].(string)] = kv[i+1]
	}
	return m
}

// desktopWindow has the document of a desktop browser.
func desktopWindow(extra window) window {
	w := window{
		"navigator": obj(),
		"document":  obj("execCommand", fn),
	}
	maps.Copy(w, extra)
	return w
}

// mobileWindow lacks execCommand, the desktop marker.
func mobileWindow(extra window) window {
	w := window{
		"navigator":  obj(),
		"document":   obj(),
		"matchMedia": fn,
		"Intl":       obj(),
	}
	maps.Copy(w, extra)
	return w
}

func oracle(w window, events ...string) probe.Oracle {
	return probe.Snapshot{Window: w, Events: events}.Probe()
}
