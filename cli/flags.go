package cli

const (
	FlagHome     = "home"
	FlagSchema   = "schema"
	FlagType     = "type"
	FlagFormat   = "format"
	FlagOutput   = "output"
	FlagLogLevel = "log-level"
	FlagLogJSON  = "log-json"
)

// Raw formats name how encoded bytes are read and written.
const (
	FormatHex    = "hex"
	FormatBinary = "binary"
)

// Outputs name how decoded values are rendered.
const (
	OutputJSON = "json"
	OutputYAML = "yaml"
	OutputCBOR = "cbor"
	OutputHex  = "hex"
)
