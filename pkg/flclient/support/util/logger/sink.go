package logger

// DefaultTag is the component-wide prefix added to every callback log line.
const DefaultTag = "<FLClient> "

// AddTag prefixes msg with DefaultTag.
func AddTag(msg string) string {
	return DefaultTag + msg
}

// NewTagger returns a tagging function that prefixes messages with tag.
// An empty tag yields AddTag.
func NewTagger(tag string) func(string) string {
	if tag == "" {
		return AddTag
	}
	return func(msg string) string {
		return tag + msg
	}
}

// Sink routes informational records to the package-level logger.
// It satisfies port.LogSink.
type Sink struct{}

// NewSink creates the default log sink.
func NewSink() *Sink {
	return &Sink{}
}

// Info writes msg as a single INFO record.
func (s *Sink) Info(msg string) {
	Infof("%s", msg)
}
