package scan

import "fmt"

// MalformedRecordError reports input that violates the
// station;temperature grammar. Offset is the absolute file offset of the
// byte where the violation was detected.
type MalformedRecordError struct {
	Offset int64
	Reason string
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed record near byte %d: %s", e.Offset, e.Reason)
}
