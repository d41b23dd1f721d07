package governance

import (
	"encoding/json"

	"github.com/spikeekips/confgov/base/key"
	"github.com/spikeekips/confgov/util"
	"github.com/spikeekips/confgov/util/hint"
	"github.com/spikeekips/confgov/util/isvalid"
	"github.com/spikeekips/confgov/util/valuehash"
)

var (
	EnvelopeType = hint.MustNewType(0x04, 0x10, "transaction-envelope")
	EnvelopeHint = hint.MustHint(EnvelopeType, "0.0.1")
)

// Envelope is the generic signed wrapper the replication layer routes: a
// transaction, the signer's publickey and the signature over the
// transaction hash and network id.
type Envelope struct {
	tx        Transaction
	signer    key.Publickey
	signature key.Signature
}

func NewEnvelope(tx Transaction, priv key.Privatekey, networkID []byte) (Envelope, error) {
	if err := tx.IsValid(networkID); err != nil {
		return Envelope{}, err
	}

	sig, err := priv.Sign(util.ConcatBytesSlice(tx.GenerateHash().Bytes(), networkID))
	if err != nil {
		return Envelope{}, err
	}

	return Envelope{
		tx:        tx,
		signer:    priv.Publickey(),
		signature: sig,
	}, nil
}

func (Envelope) Hint() hint.Hint {
	return EnvelopeHint
}

func (ev Envelope) Transaction() Transaction {
	return ev.tx
}

func (ev Envelope) Signer() key.Publickey {
	return ev.signer
}

func (ev Envelope) Signature() key.Signature {
	return ev.signature
}

// Hash identifies the envelope; vote slots record it as the originating
// transaction hash.
func (ev Envelope) Hash() valuehash.Hash {
	return valuehash.NewBlake3256(util.ConcatBytesSlice(
		ev.tx.Bytes(),
		ev.signer.Bytes(),
		ev.signature.Bytes(),
	))
}

func (ev Envelope) IsValid(networkID []byte) error {
	if ev.tx == nil {
		return isvalid.InvalidError.Errorf("empty transaction")
	}
	if ev.signer == nil {
		return isvalid.InvalidError.Errorf("empty signer")
	}

	if err := isvalid.Check(networkID, false, ev.tx, ev.signature); err != nil {
		return err
	}

	return ev.signer.Verify(
		util.ConcatBytesSlice(ev.tx.GenerateHash().Bytes(), networkID),
		ev.signature,
	)
}

type envelopeJSON struct {
	HT hint.Hint       `json:"_hint"`
	TX json.RawMessage `json:"transaction"`
	SN string          `json:"signer"`
	SG key.Signature   `json:"signature"`
}

func (ev Envelope) MarshalJSON() ([]byte, error) {
	tb, err := util.JSONMarshal(ev.tx)
	if err != nil {
		return nil, err
	}

	return util.JSONMarshal(envelopeJSON{
		HT: ev.Hint(),
		TX: tb,
		SN: ev.signer.String(),
		SG: ev.signature,
	})
}

func (ev *Envelope) UnmarshalJSON(b []byte) error {
	var uev envelopeJSON
	if err := util.JSONUnmarshal(b, &uev); err != nil {
		return err
	}

	tx, err := DecodeTransaction(uev.TX)
	if err != nil {
		return err
	}

	pk, err := key.NewBTCPublickeyFromString(uev.SN)
	if err != nil {
		return err
	}

	ev.tx = tx
	ev.signer = pk
	ev.signature = uev.SG

	return nil
}
