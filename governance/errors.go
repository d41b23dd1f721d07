package governance

import (
	"github.com/spikeekips/confgov/util/errors"
)

// The error kinds a rejected transaction surfaces. All are non-fatal; the
// originating transaction is discarded without touching the fork and chain
// processing continues.
var (
	AlreadyScheduledError     = errors.NewError("another configuration change is already scheduled")
	UnknownSenderError        = errors.NewError("sender is not a validator of the relevant configuration")
	InvalidConfigError        = errors.NewError("configuration payload is not well-formed")
	InvalidConfigRefError     = errors.NewError("candidate does not supersede the actual configuration")
	ActivationInPastError     = errors.NewError("activation height is not in the future")
	InvalidMajorityCountError = errors.NewError("majority count out of the byzantine-safe range")
	AlreadyProposedError      = errors.NewError("a proposal already exists for this configuration")
	UnknownConfigRefError     = errors.NewError("no proposal for the referenced configuration")
	AlreadyVotedError         = errors.NewError("sender already voted for this configuration")
)
