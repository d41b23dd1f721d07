package governance

import (
	"github.com/spikeekips/confgov/util"
	"github.com/spikeekips/confgov/util/errors"
	"github.com/spikeekips/confgov/util/hint"
)

var UnknownTransactionError = errors.NewError("unknown governance transaction")

type hintedHead struct {
	HT hint.Hint `json:"_hint"`
}

// DecodeTransaction decodes one of the three transaction kinds from its
// hinted JSON payload.
func DecodeTransaction(b []byte) (Transaction, error) {
	var head hintedHead
	if err := util.JSONUnmarshal(b, &head); err != nil {
		return nil, UnknownTransactionError.Wrap(err)
	}

	switch t := head.HT.Type(); {
	case t.Equal(ProposeType):
		var tx Propose
		if err := util.JSONUnmarshal(b, &tx); err != nil {
			return nil, err
		}

		return tx, nil
	case t.Equal(VoteType):
		var tx Vote
		if err := util.JSONUnmarshal(b, &tx); err != nil {
			return nil, err
		}

		return tx, nil
	case t.Equal(VoteAgainstType):
		var tx VoteAgainst
		if err := util.JSONUnmarshal(b, &tx); err != nil {
			return nil, err
		}

		return tx, nil
	default:
		return nil, UnknownTransactionError.Errorf("type=%s", t.Verbose())
	}
}
