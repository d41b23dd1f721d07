package governance

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"golang.org/x/xerrors"

	"github.com/spikeekips/confgov/base"
	"github.com/spikeekips/confgov/base/key"
	"github.com/spikeekips/confgov/config"
)

type testBlockProcessor struct {
	baseTestGovernance
	networkID []byte
	pr        *BlockProcessor
}

func (t *testBlockProcessor) SetupTest() {
	t.baseTestGovernance.SetupTest()

	t.networkID = []byte("confgov-test-network")
	t.pr = NewBlockProcessor(t.db, t.networkID)
}

func (t *testBlockProcessor) envelope(tx Transaction, priv key.Privatekey) Envelope {
	ev, err := NewEnvelope(tx, priv, t.networkID)
	t.NoError(err)

	return ev
}

func (t *testBlockProcessor) TestEmptyBlock() {
	t.setupGenesis(4, nil)

	results, err := t.pr.Process(base.Height(1), nil)
	t.NoError(err)
	t.Empty(results)

	h, err := config.NewSchema(t.db).Height()
	t.NoError(err)
	t.Equal(base.Height(1), h)
}

func (t *testBlockProcessor) TestProposeAndVotes() {
	t.setupGenesis(4, nil)
	candidate, payload := t.candidate(base.Height(10), nil)

	results, err := t.pr.Process(base.Height(1), []Envelope{
		t.envelope(NewPropose(payload), t.privs[0]),
		t.envelope(NewVote(candidate.Hash()), t.privs[0]),
		t.envelope(NewVote(candidate.Hash()), t.privs[1]),
	})
	t.NoError(err)
	t.Equal(3, len(results))
	for i := range results {
		t.False(results[i].Rejected())
	}

	_, found := t.scheduled()
	t.False(found)

	results, err = t.pr.Process(base.Height(2), []Envelope{
		t.envelope(NewVote(candidate.Hash()), t.privs[2]),
	})
	t.NoError(err)
	t.False(results[0].Rejected())

	following, found := t.scheduled()
	t.True(found)
	t.True(candidate.Hash().Equal(following.Hash()))
}

func (t *testBlockProcessor) TestRejectionsDoNotAbortBlock() {
	t.setupGenesis(4, nil)
	candidate, payload := t.candidate(base.Height(10), nil)

	outsider, err := key.NewBTCPrivatekey()
	t.NoError(err)

	results, err := t.pr.Process(base.Height(1), []Envelope{
		t.envelope(NewPropose(payload), outsider),
		t.envelope(NewPropose(payload), t.privs[0]),
		t.envelope(NewVote(candidate.Hash()), t.privs[1]),
	})
	t.NoError(err)
	t.Equal(3, len(results))

	t.True(results[0].Rejected())
	t.True(xerrors.Is(results[0].Error, UnknownSenderError))
	t.False(results[1].Rejected())
	t.False(results[2].Rejected())

	lg, found, err := NewSchema(t.db).VoteLedger(candidate.Hash())
	t.NoError(err)
	t.True(found)

	yeas, _ := lg.Tally()
	t.Equal(1, yeas)
}

func (t *testBlockProcessor) TestBadSignatureRejected() {
	t.setupGenesis(4, nil)
	candidate, payload := t.candidate(base.Height(10), nil)

	ev, err := NewEnvelope(NewPropose(payload), t.privs[0], []byte("findme"))
	t.NoError(err)

	results, err := t.pr.Process(base.Height(1), []Envelope{ev})
	t.NoError(err)
	t.True(results[0].Rejected())
	t.True(xerrors.Is(results[0].Error, key.SignatureVerificationFailedError))

	_, found, err := NewSchema(t.db).ProposalRecord(candidate.Hash())
	t.NoError(err)
	t.False(found)
}

func (t *testBlockProcessor) TestVoteFactIsEnvelopeHash() {
	t.setupGenesis(4, nil)
	candidate, payload := t.candidate(base.Height(10), nil)

	vote := t.envelope(NewVote(candidate.Hash()), t.privs[1])

	_, err := t.pr.Process(base.Height(1), []Envelope{
		t.envelope(NewPropose(payload), t.privs[0]),
		vote,
	})
	t.NoError(err)

	lg, _, err := NewSchema(t.db).VoteLedger(candidate.Hash())
	t.NoError(err)

	sl, err := lg.Slot(1)
	t.NoError(err)
	t.True(sl.IsSet())
	t.True(vote.Hash().Equal(sl.Fact()))
}

func (t *testBlockProcessor) TestActivationAcrossBlocks() {
	t.setupGenesis(4, nil)
	candidate, payload := t.candidate(base.Height(3), nil)

	_, err := t.pr.Process(base.Height(1), []Envelope{
		t.envelope(NewPropose(payload), t.privs[0]),
		t.envelope(NewVote(candidate.Hash()), t.privs[0]),
		t.envelope(NewVote(candidate.Hash()), t.privs[1]),
		t.envelope(NewVote(candidate.Hash()), t.privs[2]),
	})
	t.NoError(err)

	_, found := t.scheduled()
	t.True(found)

	// height 2: not yet
	_, err = t.pr.Process(base.Height(2), nil)
	t.NoError(err)

	actual, err := config.NewSchema(t.db).ActualConfiguration()
	t.NoError(err)
	t.True(t.genesis.Hash().Equal(actual.Hash()))

	// height 3: the scheduled configuration takes over
	_, err = t.pr.Process(base.Height(3), nil)
	t.NoError(err)

	actual, err = config.NewSchema(t.db).ActualConfiguration()
	t.NoError(err)
	t.True(candidate.Hash().Equal(actual.Hash()))

	_, found = t.scheduled()
	t.False(found)
}

func (t *testBlockProcessor) TestInvalidHeight() {
	t.setupGenesis(4, nil)

	_, err := t.pr.Process(base.NilHeight, nil)
	t.Error(err)
}

func TestBlockProcessor(t *testing.T) {
	suite.Run(t, new(testBlockProcessor))
}
