package provisioning

// INIT -> CONNECTED -> APPLYING(i)... -> COMMITTED -> CLOSED(SUCCESS)
// any state -> CLOSED(FAILED); CONNECTED -> CLOSED(SUCCESS) only with an empty tables list
type state int

const (
	stateInit state = iota
	stateConnected
	stateApplying
	stateCommitted
	stateClosedSuccess
	stateClosedFailed
)

var allowedTransitions = map[state][]state{
	stateInit:      {stateConnected, stateClosedFailed},
	stateConnected: {stateApplying, stateClosedSuccess, stateClosedFailed},
	stateApplying:  {stateApplying, stateCommitted, stateClosedFailed},
	stateCommitted: {stateClosedSuccess},
}

func (s state) String() string {
	switch s {
	case stateInit:
		return "INIT"
	case stateConnected:
		return "CONNECTED"
	case stateApplying:
		return "APPLYING"
	case stateCommitted:
		return "COMMITTED"
	case stateClosedSuccess:
		return "CLOSED(SUCCESS)"
	case stateClosedFailed:
		return "CLOSED(FAILED)"
	default:
		return "UNKNOWN"
	}
}

func (s state) canTransit(to state) bool {
	for _, allowed := range allowedTransitions[s] {
		if allowed == to {
			return true
		}
	}

	return false
}

func (s state) terminal() bool {
	return s == stateClosedSuccess || s == stateClosedFailed
}
