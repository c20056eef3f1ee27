package classify

import "github.com/dmitrymomot/probekit/pkg/probe"

// Token is one required element of a signature fingerprint. It is present
// when any of its alternatives occurs in the signature.
type Token struct {
	AnyOf []string
}

func anyOf(alternatives ...string) Token { return Token{AnyOf: alternatives} }

// Present reports whether the token occurs in sig.
func (t Token) Present(sig probe.Signature) bool {
	return sig.Contains(t.AnyOf...)
}

var fingerprints = map[Category][]Token{
	Firefox:         {anyOf("Firefox")},
	Chrome:          {anyOf("Chrome")},
	Opera:           {anyOf("Opera")},
	Safari:          {anyOf("Safari")},
	Android:         {anyOf("Android"), anyOf("Mobile")},
	SafariMobile:    {anyOf("Safari"), anyOf("iPhone", "iPad")},
	ChromeMobile:    {anyOf("Chrome"), anyOf("Mobile")},
	FirefoxMobile:   {anyOf("Firefox"), anyOf("Mobile")},
	MicrosoftMobile: {anyOf("MSIE"), anyOf("IEMobile")},
	Webview:         {anyOf("iPhone", "iPad", "iPod"), anyOf("Mobile")},
	OperaMini:       {anyOf("Opera"), anyOf("Mini")},
	OperaAndroid:    {anyOf("Opera"), anyOf("Android")},
	BlackBerry:      {anyOf("BlackBerry", "BB10")},
	Kindle:          {anyOf("Kindle", "Silk", "KFTT", "KFOT", "KFJWA", "KFJWI", "KFSOWI", "KFTHWA", "KFTHWI", "KFAPWA", "KFAPWI")},
}

var (
	edgeFingerprint = []Token{anyOf("Edge")}
	ieFingerprint   = []Token{anyOf("MSIE", "Trident")}
)

// Fingerprint returns the tokens an honest signature of r must contain.
// Unknown, UnknownMobile and Console have none.
func Fingerprint(r Result) []Token {
	if r.Family == Microsoft {
		if r.Category == NameEdge {
			return edgeFingerprint
		}
		return ieFingerprint
	}
	return fingerprints[r.Family]
}

// Validate cross-checks the signature against the assigned family and
// clears Trustworthy on mismatch. Nothing else in r changes.
func Validate(r Result, sig probe.Signature) Result {
	tokens := Fingerprint(r)
	if len(tokens) == 0 {
		r.Trustworthy = false
		return r
	}
	for _, t := range tokens {
		if !t.Present(sig) {
			r.Trustworthy = false
			return r
		}
	}
	return r
}
