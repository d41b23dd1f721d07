package hint

import (
	"encoding/hex"

	"github.com/spikeekips/confgov/util"
)

type hintJSON struct {
	Type    Type         `json:"type"`
	Version util.Version `json:"version"`
}

func (ht Hint) MarshalJSON() ([]byte, error) {
	return util.JSONMarshal(hintJSON{
		Type:    ht.t,
		Version: ht.version,
	})
}

func (ht *Hint) UnmarshalJSON(b []byte) error {
	var h hintJSON
	if err := util.JSONUnmarshal(b, &h); err != nil {
		return err
	}

	ht.t = h.Type
	ht.version = h.Version

	return nil
}

func (ty Type) MarshalJSON() ([]byte, error) {
	return util.JSONMarshal(hex.EncodeToString(ty.Bytes()))
}

func (ty *Type) UnmarshalJSON(b []byte) error {
	var s string
	if err := util.JSONUnmarshal(b, &s); err != nil {
		return err
	}

	i, err := hex.DecodeString(s)
	if err != nil {
		return InvalidTypeError.Wrap(err)
	}
	if len(i) != 2 {
		return InvalidTypeError.Errorf("invalid hex of Type; %q", s)
	}

	ty[0] = i[0]
	ty[1] = i[1]

	return nil
}
