package vo

import "errors"

var ErrEventCodeRequired = errors.New("event code is required")
var ErrInvalidSubmission = errors.New("invalid abstract submission")

// ErrAbstractNumberExhausted means the submission retried the allocation
// bound without finding a free abstract number. The client can simply try
// again; it is not a server fault.
var ErrAbstractNumberExhausted = errors.New("could not allocate a unique abstract number")
