// Package probe answers capability questions about a browser-like environment
// without ever failing.
//
// An Oracle exposes four primitives: Has returns the value of a name (or
// false), Can and Own distinguish defined from inherited properties, and Run
// hands back a function that is always safe to call. Probe is the default
// Oracle over an in-memory object model built from Object values, typically
// decoded from a client snapshot.
//
// Queries compose Oracle calls into named, reusable tests:
//
//	q := probe.All(
//	    probe.Global("chrome"),
//	    probe.Not(probe.Global("opera")),
//	)
//	if q.Eval(o) {
//	    // ...
//	}
//
// # Snapshots
//
// A snapshot is a JSON or YAML document with a window tree. A map holding only
// a "$fn" key is a function returning that value, and "$proto" holds the
// inherited properties of an object:
//
//	{
//	  "window": {
//	    "navigator": {"userAgent": "...", "$proto": {"sendBeacon": {"$fn": true}}},
//	    "document": {"execCommand": {"$fn": true}}
//	  },
//	  "elements": {"img": {"srcset": ""}},
//	  "events": ["TouchEvent"]
//	}
//
// Use ParseJSON, ParseYAML or LoadFile to turn a snapshot into a *Probe.
//
// # Signatures
//
// Signature wraps the self-reported identity string. Contains uses Unicode
// case folding; regex helpers extract version numbers, falling back to
// DefaultVersion.
package probe
