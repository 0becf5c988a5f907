package xml

// config collects the effect of every ParseOption applied to a Parse call.
type config struct {
	sourceURL        string
	trackPositions   bool
	suppressedErrors map[ErrorKind]bool
	errorSink        ErrorSink
}

// ParseOption configures a single Parse or ParseReader call.
//
// Grounded on dhamidi-sai's cmd/sai/cmd_parse.go parser.Option/WithFile()
// functional-options pattern.
type ParseOption func(*config)

// WithSourceURL records a caller-supplied identifier for the input (a file
// path or URL) in the returned Result's SessionID, instead of a generated
// one. Two parses of the same file with the same option produce the same
// SessionID, which WithPositions-free callers can use to correlate
// diagnostics across repeated parses without enabling position tracking.
func WithSourceURL(url string) ParseOption {
	return func(c *config) { c.sourceURL = url }
}

// WithPositions enables source-range and TextMap bookkeeping on the
// returned Element tree (Element.Start, Element.End, Element.TextMap).
// Diagnostics always carry a resolved line and column regardless of this
// option; it only affects the tree itself.
func WithPositions() ParseOption {
	return func(c *config) { c.trackPositions = true }
}

// WithErrorSink additionally delivers every diagnostic to sink as it is
// raised, in source order, before Parse returns. Unlike the returned
// Result's Diagnostics (which always accumulate, for every parse), sink
// is for callers that want to stream diagnostics — to a logger, a metrics
// counter, a progress bar — without waiting for the whole document to
// finish parsing. WithSuppressedErrors filters both destinations alike.
func WithErrorSink(sink ErrorSink) ParseOption {
	return func(c *config) { c.errorSink = sink }
}

// WithSuppressedErrors prevents the given diagnostic kinds from appearing
// in the returned Result's Diagnostics. The underlying recovery behavior
// is unaffected — suppression only filters what is reported.
func WithSuppressedErrors(kinds ...ErrorKind) ParseOption {
	return func(c *config) {
		if c.suppressedErrors == nil {
			c.suppressedErrors = make(map[ErrorKind]bool, len(kinds))
		}
		for _, k := range kinds {
			c.suppressedErrors[k] = true
		}
	}
}
