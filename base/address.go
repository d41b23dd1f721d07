package base

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/spikeekips/confgov/util"
	"github.com/spikeekips/confgov/util/hint"
	"github.com/spikeekips/confgov/util/isvalid"
)

var (
	StringAddressType = hint.MustNewType(0x02, 0x10, "string-address")
	StringAddressHint = hint.MustHint(StringAddressType, "0.0.1")
)

// Address represents the address of validator node.
type Address interface {
	fmt.Stringer
	isvalid.IsValider
	hint.Hinter
	util.Byter
	Equal(Address) bool
}

var (
	reBlankAddressString = regexp.MustCompile(`[\s][\s]*`)
	reAddressString      = regexp.MustCompile(`^[a-zA-Z0-9][\w\-]*[a-zA-Z0-9]$`)
)

var EmptyStringAddress = StringAddress("")

type StringAddress string

func NewStringAddress(s string) (StringAddress, error) {
	sa := StringAddress(s)

	return sa, sa.IsValid(nil)
}

func (sa StringAddress) String() string {
	return string(sa)
}

func (StringAddress) Hint() hint.Hint {
	return StringAddressHint
}

func (sa StringAddress) IsValid([]byte) error {
	if reBlankAddressString.Match([]byte(sa)) {
		return isvalid.InvalidError.Errorf("address string, %q has blank", sa)
	}

	if s := strings.TrimSpace(string(sa)); len(s) < 1 {
		return isvalid.InvalidError.Errorf("empty address")
	}

	if !reAddressString.Match([]byte(sa)) {
		return isvalid.InvalidError.Errorf("invalid address string, %q", sa)
	}

	return nil
}

func (sa StringAddress) Bytes() []byte {
	return []byte(sa)
}

func (sa StringAddress) Equal(a Address) bool {
	if a == nil {
		return false
	}

	if sa.Hint().Type() != a.Hint().Type() {
		return false
	}

	return string(sa) == a.String()
}

func (sa StringAddress) MarshalText() ([]byte, error) {
	return []byte(sa), nil
}

func (sa *StringAddress) UnmarshalText(b []byte) error {
	a, err := NewStringAddress(string(b))
	if err != nil {
		return err
	}

	*sa = a

	return nil
}

func SortAddresses(as []Address) {
	sort.Slice(as, func(i, j int) bool {
		return strings.Compare(
			as[i].String(),
			as[j].String(),
		) < 0
	})
}
