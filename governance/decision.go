package governance

import (
	"github.com/spikeekips/confgov/util"
	"github.com/spikeekips/confgov/util/isvalid"
	"github.com/spikeekips/confgov/util/valuehash"
)

type Decision uint8

const (
	DecisionNone Decision = iota
	DecisionYea
	DecisionNay
)

func (de Decision) String() string {
	switch de {
	case DecisionYea:
		return "yea"
	case DecisionNay:
		return "nay"
	default:
		return ""
	}
}

func (de Decision) IsValid([]byte) error {
	switch de {
	case DecisionNone, DecisionYea, DecisionNay:
		return nil
	default:
		return isvalid.InvalidError.Errorf("unknown decision, %d", de)
	}
}

// VoteSlot is the tri-state vote of one validator ordinal: unset, or a
// decision together with the hash of the transaction that cast it.
type VoteSlot struct {
	decision Decision
	fact     valuehash.Hash
}

func EmptyVoteSlot() VoteSlot {
	return VoteSlot{decision: DecisionNone}
}

func NewVoteSlot(decision Decision, fact valuehash.Hash) VoteSlot {
	return VoteSlot{decision: decision, fact: fact}
}

func (sl VoteSlot) IsSet() bool {
	return sl.decision != DecisionNone
}

func (sl VoteSlot) Decision() Decision {
	return sl.decision
}

// Fact returns the hash of the originating transaction; nil for an unset
// slot.
func (sl VoteSlot) Fact() valuehash.Hash {
	return sl.fact
}

func (sl VoteSlot) IsValid([]byte) error {
	if err := sl.decision.IsValid(nil); err != nil {
		return err
	}

	if sl.decision == DecisionNone {
		if sl.fact != nil && !sl.fact.Empty() {
			return isvalid.InvalidError.Errorf("unset slot with fact hash")
		}

		return nil
	}

	if sl.fact == nil || sl.fact.Empty() {
		return isvalid.InvalidError.Errorf("%s slot without fact hash", sl.decision)
	}

	return nil
}

// Bytes is the merkle leaf key of the slot; never empty.
func (sl VoteSlot) Bytes() []byte {
	if !sl.IsSet() {
		return []byte{byte(DecisionNone)}
	}

	return util.ConcatBytesSlice([]byte{byte(sl.decision)}, sl.fact.Bytes())
}

type voteSlotJSON struct {
	DE string `json:"decision,omitempty"`
	FH string `json:"fact,omitempty"`
}

func (sl VoteSlot) MarshalJSON() ([]byte, error) {
	if !sl.IsSet() {
		return util.JSONMarshal(voteSlotJSON{})
	}

	return util.JSONMarshal(voteSlotJSON{
		DE: sl.decision.String(),
		FH: sl.fact.String(),
	})
}

func (sl *VoteSlot) UnmarshalJSON(b []byte) error {
	var usl voteSlotJSON
	if err := util.JSONUnmarshal(b, &usl); err != nil {
		return err
	}

	switch usl.DE {
	case "":
		*sl = EmptyVoteSlot()
	case "yea":
		*sl = NewVoteSlot(DecisionYea, valuehash.NewBytesFromString(usl.FH))
	case "nay":
		*sl = NewVoteSlot(DecisionNay, valuehash.NewBytesFromString(usl.FH))
	default:
		return isvalid.InvalidError.Errorf("unknown decision, %q", usl.DE)
	}

	return nil
}
