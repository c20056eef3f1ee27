package platform

// DeviceClass is the form factor of an environment.
type DeviceClass string

// Device classes. After classification every environment is one of desktop,
// mobile, tablet or console.
const (
	// DeviceDesktop identifies desktop computers and laptops
	DeviceDesktop DeviceClass = "desktop"

	// DeviceMobile identifies phones
	DeviceMobile DeviceClass = "mobile"

	// DeviceTablet identifies tablets and e-readers
	DeviceTablet DeviceClass = "tablet"

	// DeviceConsole identifies game consoles
	DeviceConsole DeviceClass = "console"

	// DeviceUnknown is used when the platform alone cannot tell
	DeviceUnknown DeviceClass = ""
)

// Operating system names
const (
	OSWindows      = "Windows"
	OSWindowsPhone = "Windows Phone"
	OSWindowsRT    = "Windows RT"
	OSXbox         = "Xbox"
	OSiOS          = "iOS"
	OSMac          = "Mac"
	OSAndroid      = "Android"
	OSKindle       = "Kindle"
	OSWii          = "Wii"
	OSPlayStation  = "PlayStation"
	OSSymbian      = "Symbian"
	OSBlackBerry   = "Blackberry"
	OSLinux        = "Linux"
	OSUnknown      = "Unknown"
)

// Rendering engine names
const (
	EngineTrident = "trident"
	EngineGecko   = "gecko"
	EngineBlink   = "blink"
	EngineWebKit  = "webkit"
	EnginePresto  = "presto"
	EngineKHTML   = "khtml"
	EngineChrome  = "chrome"
	EngineSilk    = "silk"
	EngineUnknown = "unknown"
)

// Browsers that ship with a console firmware
const (
	BrowserNetFront         = "NetFront"
	BrowserInternetExplorer = "Internet Explorer"
)

// UnknownVersion is the OS version reported when none can be extracted.
const UnknownVersion = "-1"
