package classify

import (
	"regexp"

	"github.com/dmitrymomot/probekit/pkg/platform"
	"github.com/dmitrymomot/probekit/pkg/probe"
)

// Rule assigns Category when Match holds and no earlier rule of the same
// cascade did.
type Rule struct {
	Category Category
	Name     string
	Match    func(o probe.Oracle, sig probe.Signature) bool
}

func (r Rule) eval(o probe.Oracle, sig probe.Signature) (ok bool) {
	if r.Match == nil {
		return false
	}
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	return r.Match(o, sig)
}

// Cascade is an ordered list of rules with a catch-all category.
type Cascade struct {
	Name     string
	Rules    []Rule
	Fallback Category
}

// Resolve returns the category of the first matching rule, or Fallback.
func (c Cascade) Resolve(o probe.Oracle, sig probe.Signature) Category {
	for _, r := range c.Rules {
		if r.eval(o, sig) {
			return r.Category
		}
	}
	return c.Fallback
}

// Fired returns every rule whose effective predicate holds. The effective
// predicate of a rule is its own condition with all earlier conditions
// negated, so a well-formed cascade always fires exactly one category.
func (c Cascade) Fired(o probe.Oracle, sig probe.Signature) []Category {
	var fired []Category
	earlier := false
	for _, r := range c.Rules {
		matched := r.eval(o, sig)
		if matched && !earlier {
			fired = append(fired, r.Category)
		}
		earlier = earlier || matched
	}
	if !earlier {
		fired = append(fired, c.Fallback)
	}
	return fired
}

// Matching returns the names of all rules whose own condition holds,
// ignoring precedence. It exposes probe overlap between siblings.
func (c Cascade) Matching(o probe.Oracle, sig probe.Signature) []string {
	var names []string
	for _, r := range c.Rules {
		if r.eval(o, sig) {
			names = append(names, r.Name)
		}
	}
	return names
}

func query(q probe.Query) func(probe.Oracle, probe.Signature) bool {
	return func(o probe.Oracle, _ probe.Signature) bool { return q.Eval(o) }
}

func token(re *regexp.Regexp) func(probe.Oracle, probe.Signature) bool {
	return func(_ probe.Oracle, sig probe.Signature) bool { return sig.Matches(re) }
}

var (
	winToken      = regexp.MustCompile(`(?i)Win`)
	touchToken    = regexp.MustCompile(`(?i)Touch`)
	ieMobileToken = regexp.MustCompile(`(?i)IEMobile`)
	oprToken      = regexp.MustCompile(`(?i)\sOPR/\d+`)

	// MathML rendering is the one capability iOS webviews have over the
	// Android stock browser.
	mathML = probe.Global("MathMLElement")
)

// Inspectable reports whether the environment exposes enough to be probed
// at all. Environments without a navigator or a document are unknown.
func Inspectable(o probe.Oracle) bool {
	return probe.Any(probe.Global("navigator"), probe.Global("document")).Eval(o)
}

// Constrained reports whether the environment is a mobile-like device.
// Touch devices are constrained unless they support both pointer lock exits,
// which only Surface-class hardware does. Without touch events, desktop
// browsers are the ones with execCommand.
func Constrained(o probe.Oracle) bool {
	doc := o.Has("document", nil)
	if probe.Truthy(probe.CreateEvent(o, "TouchEvent")) {
		return !o.Can(doc, "exitPointerLock") || !o.Can(doc, "mozExitPointerLock")
	}
	return !o.Can(doc, "execCommand")
}

// MobileCascade separates the families of constrained devices.
func MobileCascade() Cascade {
	android := probe.Any(probe.Global("isFinite"), probe.Defined("navigator.connection", "type"))
	return Cascade{
		Name: "mobile",
		Rules: []Rule{
			{
				Category: Microsoft,
				Name:     "surface",
				Match: func(_ probe.Oracle, sig probe.Signature) bool {
					return sig.Matches(winToken) && sig.Matches(touchToken) && !sig.Matches(ieMobileToken)
				},
			},
			// Kindle support varies too much to probe; trust the signature
			{Category: Kindle, Name: "kindle", Match: token(platform.KindlePattern)},
			{Category: ChromeMobile, Name: "permissions", Match: query(probe.Defined("navigator", "permissions"))},
			{Category: FirefoxMobile, Name: "ondevicelight", Match: query(probe.Global("ondevicelight"))},
			{Category: MicrosoftMobile, Name: "setImmediate", Match: query(probe.Global("setImmediate"))},
			{Category: OperaMini, Name: "no matchMedia", Match: query(probe.Not(probe.Global("matchMedia")))},
			{
				Category: SafariMobile,
				Name:     "speechSynthesis without Intl",
				Match:    query(probe.All(probe.Global("speechSynthesis"), probe.Not(probe.Global("Intl")))),
			},
			{Category: Webview, Name: "android-like with MathML", Match: query(probe.All(android, mathML))},
			{Category: Android, Name: "android-like", Match: query(probe.All(android, probe.Not(mathML)))},
			{Category: BlackBerry, Name: "no Intl", Match: query(probe.Not(probe.Global("Intl")))},
			{Category: OperaAndroid, Name: "webkitRequestFileSystem", Match: query(probe.Global("webkitRequestFileSystem"))},
		},
		Fallback: UnknownMobile,
	}
}

// DesktopCascade separates desktop families.
func DesktopCascade() Cascade {
	return Cascade{
		Name: "desktop",
		Rules: []Rule{
			{
				Category: Microsoft,
				Name:     "onLine without Notification or EventSource",
				Match: query(probe.All(
					probe.Not(probe.Global("Notification")),
					probe.Not(probe.Global("EventSource")),
					probe.Defined("navigator", "onLine"),
				)),
			},
			{
				Category: Firefox,
				Name:     "InstallTrigger or mozGetUserMedia",
				Match:    query(probe.Any(probe.Global("InstallTrigger"), probe.Defined("navigator", "mozGetUserMedia"))),
			},
			{
				Category: Chrome,
				Name:     "chrome",
				Match: func(o probe.Oracle, sig probe.Signature) bool {
					return probe.All(probe.Global("chrome"), probe.Not(probe.Global("opera"))).Eval(o) && !sig.Matches(oprToken)
				},
			},
			{
				Category: Opera,
				Name:     "opera",
				Match: func(o probe.Oracle, sig probe.Signature) bool {
					return probe.Global("opera").Eval(o) || sig.Matches(oprToken)
				},
			},
			{
				Category: Safari,
				Name:     "no file system or Intl",
				Match:    query(probe.All(probe.Not(probe.Global("webkitRequestFileSystem")), probe.Not(probe.Global("Intl")))),
			},
		},
		Fallback: Unknown,
	}
}
