package log

// discard drops every entry. Components get it until a driver or the
// command line hands them a real logger.
type discard struct{}

func (discard) Debugf(string, ...interface{}) {}
func (discard) Infof(string, ...interface{})  {}
func (discard) Warnf(string, ...interface{})  {}
func (discard) Errorf(string, ...interface{}) {}

// NewNullLogger returns a Logger that drops every entry.
func NewNullLogger() Logger {
	return discard{}
}
