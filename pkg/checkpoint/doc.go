// Package checkpoint maps self-reported release numbers onto the intervals
// that capability probes can actually vouch for.
//
// A Table lists checkpoints newest first. Because capabilities accumulate,
// a modern environment passes the probes of older releases as well, so only
// the first matching checkpoint counts:
//
//	v := checkpoint.Chromium(checkpoint.LatestChrome).Bound(o, 90)
//	// Proxy present: v == 55, the newest release the table knows
//
// Clamp keeps the report when it falls inside the matched interval, raises it
// to the floor when it understates the probes and caps it at the ceiling
// otherwise. When no probe matches, the oldest floor is assumed.
package checkpoint
