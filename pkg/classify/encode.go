package classify

import (
	"fmt"
	"maps"
	"strconv"
	"strings"

	"github.com/dmitrymomot/probekit/pkg/probe"
)

// Encoded field names. Positions are part of the wire format: new fields are
// appended, existing ones are never moved, reused or removed.
const (
	FieldTrustworthy    = "TRUSTWORTHY"
	FieldBrowserName    = "BROWSER_NAME"
	FieldBrowserVersion = "BROWSER_VERSION"
	FieldEngineName     = "ENGINE_NAME"
	FieldEngineVersion  = "ENGINE_VERSION"
	FieldOSName         = "OS_NAME"
	FieldOSVersion      = "OS_VERSION"
	FieldDesktop        = "DESKTOP"
	FieldMobile         = "MOBILE"
	FieldTablet         = "TABLET"
	FieldConsole        = "CONSOLE"
	FieldMax            = "MAX"
	FieldFamily         = "FAMILY"
	FieldUAVersion      = "UA_VERSION"
)

var fields = []string{
	FieldTrustworthy,
	FieldBrowserName,
	FieldBrowserVersion,
	FieldEngineName,
	FieldEngineVersion,
	FieldOSName,
	FieldOSVersion,
	FieldDesktop,
	FieldMobile,
	FieldTablet,
	FieldConsole,
	FieldMax,
	FieldFamily,
	FieldUAVersion,
}

var fieldIndex = func() map[string]int {
	m := make(map[string]int, len(fields))
	for i, f := range fields {
		m[f] = i
	}
	return m
}()

// Fields returns the encoded field names in position order.
func Fields() []string {
	out := make([]string, len(fields))
	copy(out, fields)
	return out
}

// Encoded is the positional form of a Result: primitive values as strings
// plus the name to position index.
type Encoded struct {
	Values []string       `json:"values"`
	Index  map[string]int `json:"index"`
}

// Param is one key/value pair of an encoded result.
type Param struct {
	Key   string
	Value string
}

// Encode flattens r. Booleans become "1" or "0", numbers their shortest
// decimal form.
func (r Result) Encode() Encoded {
	values := make([]string, len(fields))
	values[fieldIndex[FieldTrustworthy]] = encodeBool(r.Trustworthy)
	values[fieldIndex[FieldBrowserName]] = r.Category
	values[fieldIndex[FieldBrowserVersion]] = probe.FormatVersion(r.Version)
	values[fieldIndex[FieldEngineName]] = r.Engine.Name
	values[fieldIndex[FieldEngineVersion]] = probe.FormatVersion(r.Engine.Version)
	values[fieldIndex[FieldOSName]] = r.Platform.Name
	values[fieldIndex[FieldOSVersion]] = r.Platform.Version
	values[fieldIndex[FieldDesktop]] = encodeBool(r.Desktop())
	values[fieldIndex[FieldMobile]] = encodeBool(r.Mobile())
	values[fieldIndex[FieldTablet]] = encodeBool(r.Tablet())
	values[fieldIndex[FieldConsole]] = encodeBool(r.Console())
	values[fieldIndex[FieldMax]] = string(r.Max)
	values[fieldIndex[FieldFamily]] = strconv.Itoa(int(r.Family))
	values[fieldIndex[FieldUAVersion]] = probe.FormatVersion(r.UAVersion)

	return Encoded{Values: values, Index: maps.Clone(fieldIndex)}
}

// Lookup returns the value of the named field.
func (e Encoded) Lookup(name string) (string, bool) {
	i, ok := e.Index[name]
	if !ok || i < 0 || i >= len(e.Values) {
		return "", false
	}
	return e.Values[i], true
}

// Read returns the value of the named field, or "" when it does not exist.
func (e Encoded) Read(name string) string {
	v, _ := e.Lookup(name)
	return v
}

// Field is Lookup with an error for callers that report it.
func (e Encoded) Field(name string) (string, error) {
	v, ok := e.Lookup(name)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	return v, nil
}

// Params returns the fields in position order with lower-case keys, ready
// for a query string.
func (e Encoded) Params() []Param {
	params := make([]Param, 0, len(e.Values))
	for _, name := range fields {
		if v, ok := e.Lookup(name); ok {
			params = append(params, Param{Key: strings.ToLower(name), Value: v})
		}
	}
	return params
}

func encodeBool(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
