// Package platform identifies the operating system and form factor of an
// environment from its self-reported signature, refined by a few probes.
//
// Detect picks one branch by signature tokens, in order: Microsoft, Apple,
// Android, Kindle and everything else. Each branch is exported so callers that
// already know the family can go straight to it:
//
//	info := platform.Detect(o, probe.NewSignature(ua))
//	fmt.Println(info.Name, info.Version, info.Device)
//
// Versions that cannot be read from the signature are reported as
// UnknownVersion. A device the platform cannot place is DeviceUnknown and is
// resolved by the caller.
package platform
