package asset

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Style is the export syntax of a generated module.
type Style int

const (
	// StyleESM exports with "export default".
	StyleESM Style = iota
	// StyleCommonJS exports with "module.exports =".
	StyleCommonJS
)

// StyleFor returns the style selected by the configured module mode.
func StyleFor(moduleMode bool) Style {
	if moduleMode {
		return StyleESM
	}
	return StyleCommonJS
}

func (s Style) String() string {
	if s == StyleCommonJS {
		return "CJS"
	}
	return "ESM"
}

func (s Style) exportStatement(identifier string) string {
	if s == StyleCommonJS {
		return "module.exports = " + identifier
	}
	return "export default " + identifier
}

// undefinedValue is emitted for a value that is absent from its source.
var undefinedValue = []byte("undefined")

// Render produces the module text: a constant declaration holding the
// serialized value, then the export of that constant.
func Render(identifier string, value []byte, style Style) []byte {
	return fmt.Appendf(nil, "const %s = %s;\n%s;\n", identifier, value, style.exportStatement(identifier))
}

// EncodeString serializes s as a JSON string literal. HTML characters are
// kept as is.
func EncodeString(s string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// EncodeRaw compacts an already serialized JSON value. A nil value is
// rendered as undefined.
func EncodeRaw(raw json.RawMessage) ([]byte, error) {
	if raw == nil {
		return undefinedValue, nil
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
