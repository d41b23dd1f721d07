package base

import (
	"github.com/spikeekips/confgov/base/key"
	"github.com/spikeekips/confgov/util"
	"github.com/spikeekips/confgov/util/hint"
	"github.com/spikeekips/confgov/util/isvalid"
)

var (
	BaseValidatorType = hint.MustNewType(0x02, 0x30, "base-validator")
	BaseValidatorHint = hint.MustHint(BaseValidatorType, "0.0.1")
)

// Validator is the identity of one validating node; the publickey
// authenticates its proposals and votes.
type Validator interface {
	Address() Address
	Publickey() key.Publickey
}

type BaseValidator struct {
	address   Address
	publickey key.Publickey
}

func NewBaseValidator(address Address, publickey key.Publickey) BaseValidator {
	return BaseValidator{address: address, publickey: publickey}
}

func (va BaseValidator) String() string {
	return va.address.String()
}

func (va BaseValidator) Hint() hint.Hint {
	return BaseValidatorHint
}

func (va BaseValidator) IsValid([]byte) error {
	return isvalid.Check(nil, false, va.address, va.publickey)
}

func (va BaseValidator) Bytes() []byte {
	return util.ConcatBytesSlice(va.address.Bytes(), va.publickey.Bytes())
}

func (va BaseValidator) Address() Address {
	return va.address
}

func (va BaseValidator) Publickey() key.Publickey {
	return va.publickey
}

type baseValidatorJSON struct {
	AD string `json:"address"`
	PK string `json:"publickey"`
}

func (va BaseValidator) MarshalJSON() ([]byte, error) {
	return util.JSONMarshal(baseValidatorJSON{
		AD: va.address.String(),
		PK: va.publickey.String(),
	})
}

func (va *BaseValidator) UnmarshalJSON(b []byte) error {
	var uva baseValidatorJSON
	if err := util.JSONUnmarshal(b, &uva); err != nil {
		return err
	}

	ad, err := NewStringAddress(uva.AD)
	if err != nil {
		return err
	}

	pk, err := key.NewBTCPublickeyFromString(uva.PK)
	if err != nil {
		return err
	}

	va.address = ad
	va.publickey = pk

	return nil
}
