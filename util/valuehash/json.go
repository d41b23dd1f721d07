package valuehash

import "github.com/spikeekips/confgov/util"

func marshalJSON(h Hash) ([]byte, error) {
	return util.JSONMarshal(h.String())
}

func (hs Bytes) MarshalJSON() ([]byte, error) {
	return marshalJSON(hs)
}

func (hs *Bytes) UnmarshalJSON(b []byte) error {
	var s string
	if err := util.JSONUnmarshal(b, &s); err != nil {
		return err
	}
	*hs = NewBytes(fromString(s))

	return nil
}
