package governance

import (
	"github.com/spikeekips/confgov/base/key"
	"github.com/spikeekips/confgov/config"
	"github.com/spikeekips/confgov/storage"
	"github.com/spikeekips/confgov/util"
	"github.com/spikeekips/confgov/util/hint"
	"github.com/spikeekips/confgov/util/isvalid"
	"github.com/spikeekips/confgov/util/valuehash"
)

var (
	VoteType        = hint.MustNewType(0x04, 0x01, "vote-configuration")
	VoteHint        = hint.MustHint(VoteType, "0.0.1")
	VoteAgainstType = hint.MustNewType(0x04, 0x02, "vote-against-configuration")
	VoteAgainstHint = hint.MustHint(VoteAgainstType, "0.0.1")
)

// Vote casts one affirmative, binding vote for the referenced
// configuration hash.
type Vote struct {
	cfgHash valuehash.Hash
}

func NewVote(cfgHash valuehash.Hash) Vote {
	return Vote{cfgHash: cfgHash}
}

func (Vote) Hint() hint.Hint {
	return VoteHint
}

func (tx Vote) IsValid([]byte) error {
	if tx.cfgHash == nil || tx.cfgHash.Empty() {
		return isvalid.InvalidError.Errorf("empty configuration hash")
	}

	return nil
}

func (tx Vote) ConfigHash() valuehash.Hash {
	return tx.cfgHash
}

func (tx Vote) Bytes() []byte {
	return util.ConcatBytesSlice(tx.Hint().Bytes(), tx.cfgHash.Bytes())
}

func (tx Vote) GenerateHash() valuehash.Hash {
	return valuehash.NewBlake3256(tx.Bytes())
}

func (tx Vote) Execute(ctx Context) error {
	vc := newVotingContext(NewVoteSlot(DecisionYea, ctx.TxHash()), ctx.Author(), tx.cfgHash)

	candidate, err := vc.precheck(ctx.Fork())
	if err != nil {
		return err
	}

	if err := vc.save(ctx.Fork()); err != nil {
		return err
	}

	// Scheduling happens here and nowhere else.
	if enough, err := enoughVotesToCommit(ctx.Fork(), tx.cfgHash); err != nil {
		return err
	} else if enough {
		return config.CommitConfiguration(ctx.Fork(), candidate)
	}

	return nil
}

// VoteAgainst records one binding dissent for the referenced configuration
// hash. Dissent never schedules anything; a proposal dies only by going
// stale.
type VoteAgainst struct {
	cfgHash valuehash.Hash
}

func NewVoteAgainst(cfgHash valuehash.Hash) VoteAgainst {
	return VoteAgainst{cfgHash: cfgHash}
}

func (VoteAgainst) Hint() hint.Hint {
	return VoteAgainstHint
}

func (tx VoteAgainst) IsValid([]byte) error {
	if tx.cfgHash == nil || tx.cfgHash.Empty() {
		return isvalid.InvalidError.Errorf("empty configuration hash")
	}

	return nil
}

func (tx VoteAgainst) ConfigHash() valuehash.Hash {
	return tx.cfgHash
}

func (tx VoteAgainst) Bytes() []byte {
	return util.ConcatBytesSlice(tx.Hint().Bytes(), tx.cfgHash.Bytes())
}

func (tx VoteAgainst) GenerateHash() valuehash.Hash {
	return valuehash.NewBlake3256(tx.Bytes())
}

func (tx VoteAgainst) Execute(ctx Context) error {
	vc := newVotingContext(NewVoteSlot(DecisionNay, ctx.TxHash()), ctx.Author(), tx.cfgHash)

	if _, err := vc.precheck(ctx.Fork()); err != nil {
		return err
	}

	return vc.save(ctx.Fork())
}

// votingContext is the shared precheck/apply routine of Vote and
// VoteAgainst; the two kinds differ only in the polarity of the slot they
// write.
type votingContext struct {
	slot    VoteSlot
	author  key.Publickey
	cfgHash valuehash.Hash
}

func newVotingContext(slot VoteSlot, author key.Publickey, cfgHash valuehash.Hash) votingContext {
	return votingContext{slot: slot, author: author, cfgHash: cfgHash}
}

// ordinal resolves the author's validator ordinal in the validator set
// recorded for the proposal: the set of the configuration the proposal
// supersedes.
func (vc votingContext) ordinal(st storage.Reader, rc ProposalRecord) (int, error) {
	candidate, err := rc.ProposedConfiguration()
	if err != nil {
		return -1, InvalidConfigError.Wrap(err)
	}

	prev, found, err := config.NewSchema(st).Configuration(candidate.PreviousHash())
	switch {
	case err != nil:
		return -1, err
	case !found:
		return -1, InvalidConfigRefError.Errorf("superseded config, %s not committed", candidate.PreviousHash())
	}

	return prev.ValidatorIndex(vc.author), nil
}

func (vc votingContext) precheck(st storage.Reader) (config.Configuration, error) {
	csc := config.NewSchema(st)

	if following, found, err := csc.FollowingConfiguration(); err != nil {
		return config.Configuration{}, err
	} else if found {
		return config.Configuration{}, AlreadyScheduledError.Errorf("following=%s", following.Hash())
	}

	sc := NewSchema(st)

	rc, found, err := sc.ProposalRecord(vc.cfgHash)
	switch {
	case err != nil:
		return config.Configuration{}, err
	case !found:
		return config.Configuration{}, UnknownConfigRefError.Errorf("config=%s", vc.cfgHash)
	}

	ordinal, err := vc.ordinal(st, rc)
	if err != nil {
		return config.Configuration{}, err
	}
	if ordinal < 0 {
		return config.Configuration{}, UnknownSenderError.Errorf("sender=%s", vc.author)
	}

	ledger, found, err := sc.VoteLedger(vc.cfgHash)
	switch {
	case err != nil:
		return config.Configuration{}, err
	case !found:
		return config.Configuration{}, UnknownConfigRefError.Errorf("vote ledger, config=%s", vc.cfgHash)
	}

	sl, err := ledger.Slot(ordinal)
	if err != nil {
		return config.Configuration{}, err
	}
	if sl.IsSet() {
		return config.Configuration{}, AlreadyVotedError.Errorf("ordinal=%d config=%s", ordinal, vc.cfgHash)
	}

	// The chain may have moved since submission; a once-valid proposal can
	// be stale by now.
	candidate, err := rc.ProposedConfiguration()
	if err != nil {
		return config.Configuration{}, InvalidConfigError.Wrap(err)
	}

	if err := checkConfigCandidate(candidate, st); err != nil {
		return config.Configuration{}, err
	}

	return candidate, nil
}

func (vc votingContext) save(fk storage.Fork) error {
	sc := NewSchema(fk)

	rc, found, err := sc.ProposalRecord(vc.cfgHash)
	switch {
	case err != nil:
		return err
	case !found:
		return UnknownConfigRefError.Errorf("config=%s", vc.cfgHash)
	}

	ordinal, err := vc.ordinal(fk, rc)
	if err != nil {
		return err
	}

	ledger, _, err := sc.VoteLedger(vc.cfgHash)
	if err != nil {
		return err
	}

	ledger, err = ledger.SetSlot(ordinal, vc.slot)
	if err != nil {
		return err
	}

	root, err := ledger.Root()
	if err != nil {
		return err
	}

	if err := putVoteLedger(fk, vc.cfgHash, ledger); err != nil {
		return err
	}

	return putProposalRecord(fk, vc.cfgHash, rc.SetVotesRoot(root))
}

// enoughVotesToCommit tallies the affirmative slots of the proposal against
// the majority policy: the validator count recorded at submission time,
// overridden by the actual configuration's governance settings when set.
func enoughVotesToCommit(st storage.Reader, cfgHash valuehash.Hash) (bool, error) {
	sc := NewSchema(st)

	rc, found, err := sc.ProposalRecord(cfgHash)
	switch {
	case err != nil:
		return false, err
	case !found:
		return false, UnknownConfigRefError.Errorf("config=%s", cfgHash)
	}

	ledger, found, err := sc.VoteLedger(cfgHash)
	switch {
	case err != nil:
		return false, err
	case !found:
		return false, UnknownConfigRefError.Errorf("vote ledger, config=%s", cfgHash)
	}

	actual, err := config.NewSchema(st).ActualConfiguration()
	if err != nil {
		return false, err
	}

	gs, err := actual.GovernanceSettings()
	if err != nil {
		return false, err
	}

	majority := ByzantineMajority(int(rc.ValidatorCount()))
	if gs.MajorityCount != nil {
		majority = int(*gs.MajorityCount)
	}

	yeas, _ := ledger.Tally()

	return yeas >= majority, nil
}

type voteJSON struct {
	HT hint.Hint `json:"_hint"`
	CH string    `json:"config_hash"`
}

func (tx Vote) MarshalJSON() ([]byte, error) {
	return util.JSONMarshal(voteJSON{
		HT: tx.Hint(),
		CH: tx.cfgHash.String(),
	})
}

func (tx *Vote) UnmarshalJSON(b []byte) error {
	var utx voteJSON
	if err := util.JSONUnmarshal(b, &utx); err != nil {
		return err
	}

	tx.cfgHash = valuehash.NewBytesFromString(utx.CH)

	return nil
}

func (tx VoteAgainst) MarshalJSON() ([]byte, error) {
	return util.JSONMarshal(voteJSON{
		HT: tx.Hint(),
		CH: tx.cfgHash.String(),
	})
}

func (tx *VoteAgainst) UnmarshalJSON(b []byte) error {
	var utx voteJSON
	if err := util.JSONUnmarshal(b, &utx); err != nil {
		return err
	}

	tx.cfgHash = valuehash.NewBytesFromString(utx.CH)

	return nil
}
