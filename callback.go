package fling

// Kind discriminates enrichment callback invocations.
type Kind int

const (
	// KindStart fires when the phase begins.
	KindStart Kind = iota
	// KindException fires when the phase captured an error. Only the
	// run phase can raise it.
	KindException
	// KindStop fires when the phase ends, success or failure.
	KindStop
)

// String returns the kind's name.
func (k Kind) String() string {
	switch k {
	case KindStart:
		return "start"
	case KindException:
		return "exception"
	case KindStop:
		return "stop"
	default:
		return "unknown"
	}
}

// Callback is an optional caller-supplied enrichment hook invoked
// around the create phase or the run phase of every task. The err
// argument is non-nil only for KindException.
//
// Callbacks run synchronously within the phase they observe. A
// callback that panics is recovered and logged by the dispatcher; it
// can never change a task's outcome or suppress a lifecycle event.
type Callback func(kind Kind, name string, err error)
