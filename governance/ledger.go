package governance

import (
	"github.com/spikeekips/confgov/util"
	"github.com/spikeekips/confgov/util/errors"
	"github.com/spikeekips/confgov/util/tree"
)

var (
	SlotOutOfRangeError  = errors.NewError("vote slot out of range")
	SlotAlreadySetError  = errors.NewError("vote slot already set")
	EmptyVoteLedgerError = errors.NewError("empty vote ledger")
)

// VoteLedger is the fixed-length, ordinal-addressed sequence of vote slots
// of one proposal; one slot per validator that existed when the proposal was
// submitted. The length never changes afterward.
type VoteLedger struct {
	slots []VoteSlot
}

func NewVoteLedger(size int) VoteLedger {
	slots := make([]VoteSlot, size)
	for i := range slots {
		slots[i] = EmptyVoteSlot()
	}

	return VoteLedger{slots: slots}
}

func (lg VoteLedger) Len() int {
	return len(lg.slots)
}

func (lg VoteLedger) Slot(ordinal int) (VoteSlot, error) {
	if ordinal < 0 || ordinal >= len(lg.slots) {
		return VoteSlot{}, SlotOutOfRangeError.Errorf("ordinal=%d len=%d", ordinal, len(lg.slots))
	}

	return lg.slots[ordinal], nil
}

// SetSlot writes the decision of one validator ordinal; a slot can be
// written once.
func (lg VoteLedger) SetSlot(ordinal int, sl VoteSlot) (VoteLedger, error) {
	if ordinal < 0 || ordinal >= len(lg.slots) {
		return VoteLedger{}, SlotOutOfRangeError.Errorf("ordinal=%d len=%d", ordinal, len(lg.slots))
	}

	if lg.slots[ordinal].IsSet() {
		return VoteLedger{}, SlotAlreadySetError.Errorf("ordinal=%d", ordinal)
	}

	if err := sl.IsValid(nil); err != nil {
		return VoteLedger{}, err
	}

	slots := make([]VoteSlot, len(lg.slots))
	copy(slots, lg.slots)
	slots[ordinal] = sl

	return VoteLedger{slots: slots}, nil
}

// Tally returns the counts of affirmative and negative slots.
func (lg VoteLedger) Tally() (yeas int, nays int) {
	for i := range lg.slots {
		switch lg.slots[i].Decision() {
		case DecisionYea:
			yeas++
		case DecisionNay:
			nays++
		}
	}

	return yeas, nays
}

func (lg VoteLedger) tree() (tree.FixedTree, error) {
	if len(lg.slots) < 1 {
		return tree.FixedTree{}, EmptyVoteLedgerError
	}

	trg := tree.NewFixedTreeGenerator(uint64(len(lg.slots)))
	for i := range lg.slots {
		if err := trg.Add(tree.NewBaseFixedTreeNode(uint64(i), lg.slots[i].Bytes())); err != nil {
			return tree.FixedTree{}, err
		}
	}

	return trg.Tree()
}

// Root is the merkle root over the slot sequence; it changes with every
// slot mutation.
func (lg VoteLedger) Root() ([]byte, error) {
	tr, err := lg.tree()
	if err != nil {
		return nil, err
	}

	return tr.Root(), nil
}

// Proof returns the merkle proof of one slot against Root.
func (lg VoteLedger) Proof(ordinal int) ([]tree.FixedTreeNode, error) {
	if ordinal < 0 || ordinal >= len(lg.slots) {
		return nil, SlotOutOfRangeError.Errorf("ordinal=%d len=%d", ordinal, len(lg.slots))
	}

	tr, err := lg.tree()
	if err != nil {
		return nil, err
	}

	return tr.Proof(uint64(ordinal))
}

type voteLedgerJSON struct {
	SL []VoteSlot `json:"slots"`
}

func (lg VoteLedger) MarshalJSON() ([]byte, error) {
	return util.JSONMarshal(voteLedgerJSON{SL: lg.slots})
}

func (lg *VoteLedger) UnmarshalJSON(b []byte) error {
	var ulg voteLedgerJSON
	if err := util.JSONUnmarshal(b, &ulg); err != nil {
		return err
	}

	lg.slots = ulg.SL

	return nil
}
