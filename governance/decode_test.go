package governance

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"golang.org/x/xerrors"

	"github.com/spikeekips/confgov/util"
	"github.com/spikeekips/confgov/util/valuehash"
)

type testDecodeTransaction struct {
	suite.Suite
}

func (t *testDecodeTransaction) TestPropose() {
	tx := NewPropose([]byte(`{"validators":[]}`))

	b, err := util.JSONMarshal(tx)
	t.NoError(err)

	utx, err := DecodeTransaction(b)
	t.NoError(err)

	decoded, ok := utx.(Propose)
	t.True(ok)
	t.Equal(tx.Configuration(), decoded.Configuration())
	t.True(tx.GenerateHash().Equal(decoded.GenerateHash()))
}

func (t *testDecodeTransaction) TestVote() {
	tx := NewVote(valuehash.RandomSHA256())

	b, err := util.JSONMarshal(tx)
	t.NoError(err)

	utx, err := DecodeTransaction(b)
	t.NoError(err)

	decoded, ok := utx.(Vote)
	t.True(ok)
	t.True(tx.ConfigHash().Equal(decoded.ConfigHash()))
	t.True(tx.GenerateHash().Equal(decoded.GenerateHash()))
}

func (t *testDecodeTransaction) TestVoteAgainst() {
	tx := NewVoteAgainst(valuehash.RandomSHA256())

	b, err := util.JSONMarshal(tx)
	t.NoError(err)

	utx, err := DecodeTransaction(b)
	t.NoError(err)

	decoded, ok := utx.(VoteAgainst)
	t.True(ok)
	t.True(tx.ConfigHash().Equal(decoded.ConfigHash()))
	t.True(tx.GenerateHash().Equal(decoded.GenerateHash()))
}

func (t *testDecodeTransaction) TestVoteAndVoteAgainstDiffer() {
	h := valuehash.RandomSHA256()

	t.False(NewVote(h).GenerateHash().Equal(NewVoteAgainst(h).GenerateHash()))
}

func (t *testDecodeTransaction) TestUnknownHint() {
	_, err := DecodeTransaction([]byte(`{"_hint":{"type":"ff90","version":"0.0.1"}}`))
	t.True(xerrors.Is(err, UnknownTransactionError))
}

func (t *testDecodeTransaction) TestNotJSON() {
	_, err := DecodeTransaction([]byte("findme"))
	t.True(xerrors.Is(err, UnknownTransactionError))
}

func TestDecodeTransaction(t *testing.T) {
	suite.Run(t, new(testDecodeTransaction))
}
