// Package classify assigns a browser-like environment to exactly one family
// by probing its capabilities, then bounds the self-reported version with the
// family's checkpoint table and checks the signature against the outcome.
//
// Classification runs in phases:
//
//  1. Environments with neither a navigator nor a document are Unknown.
//  2. Constrained environments (touch devices without both pointer lock
//     exits, or anything lacking execCommand) go through MobileCascade, the
//     rest through DesktopCascade. The first matching rule wins.
//  3. The family resolver derives the platform, engine and version.
//  4. Validate clears Trustworthy when the signature lacks the family's
//     fingerprint tokens.
//
// Usage:
//
//	o, err := probe.ParseJSON(body)
//	if err != nil {
//	    return err
//	}
//	r := classify.Classify(o, probe.NewSignature(userAgent))
//	fmt.Println(r.Category, r.Version, r.Trustworthy)
//
// Results flatten into a positional encoding with Result.Encode. Field
// positions are append-only.
package classify
