package governance

import (
	"github.com/spikeekips/confgov/config"
	"github.com/spikeekips/confgov/storage"
	"github.com/spikeekips/confgov/util"
	"github.com/spikeekips/confgov/util/hint"
	"github.com/spikeekips/confgov/util/isvalid"
	"github.com/spikeekips/confgov/util/valuehash"
)

var (
	ProposeType = hint.MustNewType(0x04, 0x00, "propose-configuration")
	ProposeHint = hint.MustHint(ProposeType, "0.0.1")
)

// Propose submits a candidate configuration for voting. The payload is the
// configuration serialized as canonical JSON.
type Propose struct {
	cfg []byte
}

func NewPropose(cfg []byte) Propose {
	return Propose{cfg: util.CopyBytes(cfg)}
}

func (Propose) Hint() hint.Hint {
	return ProposeHint
}

func (tx Propose) IsValid([]byte) error {
	if len(tx.cfg) < 1 {
		return isvalid.InvalidError.Errorf("empty configuration payload")
	}

	return nil
}

func (tx Propose) Configuration() []byte {
	return tx.cfg
}

func (tx Propose) Bytes() []byte {
	return util.ConcatBytesSlice(tx.Hint().Bytes(), tx.cfg)
}

func (tx Propose) GenerateHash() valuehash.Hash {
	return valuehash.NewBlake3256(tx.Bytes())
}

func (tx Propose) Execute(ctx Context) error {
	candidate, cfgHash, err := tx.precheck(ctx)
	if err != nil {
		return err
	}

	return tx.save(ctx, candidate, cfgHash)
}

// precheck runs the context-dependent checks in order; the first failure
// wins and nothing is written.
func (tx Propose) precheck(ctx Context) (config.Configuration, valuehash.Hash, error) {
	sc := config.NewSchema(ctx.Fork())

	if following, found, err := sc.FollowingConfiguration(); err != nil {
		return config.Configuration{}, nil, err
	} else if found {
		return config.Configuration{}, nil, AlreadyScheduledError.Errorf("following=%s", following.Hash())
	}

	actual, err := sc.ActualConfiguration()
	if err != nil {
		return config.Configuration{}, nil, err
	}

	if actual.ValidatorIndex(ctx.Author()) < 0 {
		return config.Configuration{}, nil, UnknownSenderError.Errorf("sender=%s", ctx.Author())
	}

	candidate, err := config.DecodeConfiguration(tx.cfg)
	if err != nil {
		return config.Configuration{}, nil, InvalidConfigError.Wrap(err)
	}

	if err := checkConfigCandidate(candidate, ctx.Fork()); err != nil {
		return config.Configuration{}, nil, err
	}

	cfgHash := candidate.Hash()
	if _, found, err := NewSchema(ctx.Fork()).ProposalRecord(cfgHash); err != nil {
		return config.Configuration{}, nil, err
	} else if found {
		return config.Configuration{}, nil, AlreadyProposedError.Errorf("config=%s", cfgHash)
	}

	return candidate, cfgHash, nil
}

// save writes the vote ledger sized to the superseded configuration's
// validator count, the proposal record and the ordinal index entry.
func (tx Propose) save(ctx Context, candidate config.Configuration, cfgHash valuehash.Hash) error {
	prev, found, err := config.NewSchema(ctx.Fork()).Configuration(candidate.PreviousHash())
	switch {
	case err != nil:
		return err
	case !found:
		return InvalidConfigRefError.Errorf("superseded config, %s not committed", candidate.PreviousHash())
	}

	ledger := NewVoteLedger(len(prev.Validators()))
	root, err := ledger.Root()
	if err != nil {
		return err
	}

	if err := putVoteLedger(ctx.Fork(), cfgHash, ledger); err != nil {
		return err
	}

	rc := NewProposalRecord(
		NewProposal(tx.cfg, ctx.Author()),
		root,
		uint64(len(prev.Validators())),
	)
	if err := putProposalRecord(ctx.Fork(), cfgHash, rc); err != nil {
		return err
	}

	return appendProposalOrdinal(ctx.Fork(), cfgHash)
}

// checkConfigCandidate checks a candidate next configuration against the
// current chain state: it must supersede the actual configuration, activate
// strictly after the next height and carry a sane majority override. Votes
// repeat this check so a proposal goes stale once the chain moves past its
// predecessor.
func checkConfigCandidate(candidate config.Configuration, st storage.Reader) error {
	sc := config.NewSchema(st)

	actual, err := sc.ActualConfiguration()
	if err != nil {
		return err
	}

	if candidate.PreviousHash() == nil || !candidate.PreviousHash().Equal(actual.Hash()) {
		return InvalidConfigRefError.Errorf("actual=%s", actual.Hash())
	}

	next, err := sc.NextHeight()
	if err != nil {
		return err
	}

	if candidate.ActivatesAt() <= next {
		return ActivationInPastError.Errorf("next=%s activates_at=%s", next, candidate.ActivatesAt())
	}

	gs, err := candidate.GovernanceSettings()
	if err != nil {
		return InvalidConfigError.Wrap(err)
	}

	if gs.MajorityCount != nil {
		if err := ValidateMajorityCount(len(candidate.Validators()), int(*gs.MajorityCount)); err != nil {
			return err
		}
	}

	return nil
}

type proposeJSON struct {
	HT hint.Hint `json:"_hint"`
	CF []byte    `json:"configuration"`
}

func (tx Propose) MarshalJSON() ([]byte, error) {
	return util.JSONMarshal(proposeJSON{
		HT: tx.Hint(),
		CF: tx.cfg,
	})
}

func (tx *Propose) UnmarshalJSON(b []byte) error {
	var utx proposeJSON
	if err := util.JSONUnmarshal(b, &utx); err != nil {
		return err
	}

	tx.cfg = utx.CF

	return nil
}
