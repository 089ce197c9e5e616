package shell

import "github.com/DhanushS2309/LLM-enhanced-recommendation-system/internal/transport"

// friendlyError turns a transport failure into a user-facing line. The
// kinds get distinct wording; in particular a timeout reads differently
// from an unreachable backend.
func friendlyError(err error) string {
	kind, ok := transport.KindOf(err)
	if !ok {
		return "something went wrong: " + err.Error()
	}
	switch kind {
	case transport.KindTimeout:
		return "the backend is taking too long; your answer is kept, press enter to retry"
	case transport.KindUnreachable:
		return "can't reach the backend; your answer is kept, press enter to retry"
	case transport.KindStatus:
		return "the backend rejected the request; press enter to retry"
	case transport.KindMalformed:
		return "the backend sent an unreadable reply; press enter to retry"
	default:
		return err.Error()
	}
}
