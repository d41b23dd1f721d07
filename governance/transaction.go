package governance

import (
	"github.com/spikeekips/confgov/base/key"
	"github.com/spikeekips/confgov/storage"
	"github.com/spikeekips/confgov/util"
	"github.com/spikeekips/confgov/util/hint"
	"github.com/spikeekips/confgov/util/isvalid"
	"github.com/spikeekips/confgov/util/valuehash"
)

// Transaction is one governance transaction kind: Propose, Vote or
// VoteAgainst. Execute validates preconditions against the fork's current
// state and, only on success, mutates the same fork.
type Transaction interface {
	hint.Hinter
	isvalid.IsValider
	util.Byter
	GenerateHash() valuehash.Hash
	Execute(Context) error
}

// Context carries what a handler may depend on: the authenticated sender,
// the hash of the originating transaction and the fork. Nothing else; a
// handler must stay a pure function of state and payload.
type Context struct {
	author key.Publickey
	txHash valuehash.Hash
	fork   storage.Fork
}

func NewContext(author key.Publickey, txHash valuehash.Hash, fork storage.Fork) Context {
	return Context{author: author, txHash: txHash, fork: fork}
}

func (ctx Context) Author() key.Publickey {
	return ctx.author
}

func (ctx Context) TxHash() valuehash.Hash {
	return ctx.txHash
}

func (ctx Context) Fork() storage.Fork {
	return ctx.fork
}
