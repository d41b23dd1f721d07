package governance

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"golang.org/x/xerrors"

	"github.com/spikeekips/confgov/util"
	"github.com/spikeekips/confgov/util/tree"
	"github.com/spikeekips/confgov/util/valuehash"
)

type testVoteLedger struct {
	suite.Suite
}

func (t *testVoteLedger) TestNew() {
	lg := NewVoteLedger(4)
	t.Equal(4, lg.Len())

	for i := 0; i < 4; i++ {
		sl, err := lg.Slot(i)
		t.NoError(err)
		t.False(sl.IsSet())
	}

	yeas, nays := lg.Tally()
	t.Equal(0, yeas)
	t.Equal(0, nays)
}

func (t *testVoteLedger) TestSlotOutOfRange() {
	lg := NewVoteLedger(4)

	_, err := lg.Slot(4)
	t.True(xerrors.Is(err, SlotOutOfRangeError))

	_, err = lg.Slot(-1)
	t.True(xerrors.Is(err, SlotOutOfRangeError))

	_, err = lg.SetSlot(4, NewVoteSlot(DecisionYea, valuehash.RandomSHA256()))
	t.True(xerrors.Is(err, SlotOutOfRangeError))
}

func (t *testVoteLedger) TestSetSlotOnce() {
	lg := NewVoteLedger(4)

	updated, err := lg.SetSlot(1, NewVoteSlot(DecisionYea, valuehash.RandomSHA256()))
	t.NoError(err)

	sl, err := updated.Slot(1)
	t.NoError(err)
	t.True(sl.IsSet())
	t.Equal(DecisionYea, sl.Decision())

	// the original is untouched
	sl, err = lg.Slot(1)
	t.NoError(err)
	t.False(sl.IsSet())

	_, err = updated.SetSlot(1, NewVoteSlot(DecisionNay, valuehash.RandomSHA256()))
	t.True(xerrors.Is(err, SlotAlreadySetError))
}

func (t *testVoteLedger) TestSetSlotInvalid() {
	lg := NewVoteLedger(4)

	_, err := lg.SetSlot(0, NewVoteSlot(DecisionYea, nil))
	t.Error(err)
	t.Contains(err.Error(), "without fact hash")
}

func (t *testVoteLedger) TestTally() {
	lg := NewVoteLedger(5)

	var err error
	lg, err = lg.SetSlot(0, NewVoteSlot(DecisionYea, valuehash.RandomSHA256()))
	t.NoError(err)
	lg, err = lg.SetSlot(2, NewVoteSlot(DecisionNay, valuehash.RandomSHA256()))
	t.NoError(err)
	lg, err = lg.SetSlot(4, NewVoteSlot(DecisionYea, valuehash.RandomSHA256()))
	t.NoError(err)

	yeas, nays := lg.Tally()
	t.Equal(2, yeas)
	t.Equal(1, nays)
}

func (t *testVoteLedger) TestRootChangesPerVote() {
	lg := NewVoteLedger(4)

	empty, err := lg.Root()
	t.NoError(err)
	t.NotEmpty(empty)

	again, err := lg.Root()
	t.NoError(err)
	t.Equal(empty, again)

	lg, err = lg.SetSlot(2, NewVoteSlot(DecisionYea, valuehash.RandomSHA256()))
	t.NoError(err)

	voted, err := lg.Root()
	t.NoError(err)
	t.NotEqual(empty, voted)
}

func (t *testVoteLedger) TestRootEmptyLedger() {
	_, err := NewVoteLedger(0).Root()
	t.True(xerrors.Is(err, EmptyVoteLedgerError))
}

func (t *testVoteLedger) TestProof() {
	lg := NewVoteLedger(7)

	var err error
	lg, err = lg.SetSlot(3, NewVoteSlot(DecisionYea, valuehash.RandomSHA256()))
	t.NoError(err)

	for i := 0; i < 7; i++ {
		pr, err := lg.Proof(i)
		t.NoError(err)
		t.NoError(tree.ProveFixedTreeProof(pr))
	}

	_, err = lg.Proof(7)
	t.True(xerrors.Is(err, SlotOutOfRangeError))
}

func (t *testVoteLedger) TestEncodeJSON() {
	lg := NewVoteLedger(3)

	var err error
	lg, err = lg.SetSlot(0, NewVoteSlot(DecisionYea, valuehash.RandomSHA256()))
	t.NoError(err)
	lg, err = lg.SetSlot(2, NewVoteSlot(DecisionNay, valuehash.RandomSHA256()))
	t.NoError(err)

	b, err := util.JSONMarshal(lg)
	t.NoError(err)

	var ulg VoteLedger
	t.NoError(util.JSONUnmarshal(b, &ulg))

	t.Equal(lg.Len(), ulg.Len())

	root, err := lg.Root()
	t.NoError(err)
	uroot, err := ulg.Root()
	t.NoError(err)
	t.Equal(root, uroot)

	for i := 0; i < lg.Len(); i++ {
		a, err := lg.Slot(i)
		t.NoError(err)
		b, err := ulg.Slot(i)
		t.NoError(err)

		t.Equal(a.Decision(), b.Decision())
		if a.IsSet() {
			t.True(a.Fact().Equal(b.Fact()))
		}
	}
}

func TestVoteLedger(t *testing.T) {
	suite.Run(t, new(testVoteLedger))
}
