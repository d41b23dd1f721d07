package isvalid

import "github.com/spikeekips/confgov/util/errors"

var InvalidError = errors.NewError("invalid")

type IsValider interface {
	IsValid([]byte) error
}
