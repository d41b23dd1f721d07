package governance

import (
	"github.com/spikeekips/confgov/base/key"
	"github.com/spikeekips/confgov/config"
	"github.com/spikeekips/confgov/util"
	"github.com/spikeekips/confgov/util/isvalid"
	"github.com/spikeekips/confgov/util/valuehash"
)

// Proposal is the raw configuration payload as submitted, together with the
// proposing validator's publickey. Never mutated after submission.
type Proposal struct {
	cfg      []byte
	proposer key.Publickey
}

func NewProposal(cfg []byte, proposer key.Publickey) Proposal {
	return Proposal{cfg: util.CopyBytes(cfg), proposer: proposer}
}

func (pr Proposal) Configuration() []byte {
	return pr.cfg
}

func (pr Proposal) Proposer() key.Publickey {
	return pr.proposer
}

func (pr Proposal) IsValid([]byte) error {
	if len(pr.cfg) < 1 {
		return isvalid.InvalidError.Errorf("empty configuration payload")
	}
	if pr.proposer == nil {
		return isvalid.InvalidError.Errorf("empty proposer")
	}

	return nil
}

// ProposalRecord is the committed linkage between a proposal, the merkle
// root of its vote ledger and the count of eligible voters at submission
// time. The votes root field is rewritten after every vote; everything else
// is immutable.
type ProposalRecord struct {
	proposal       Proposal
	votesRoot      []byte
	validatorCount uint64
}

func NewProposalRecord(proposal Proposal, votesRoot []byte, validatorCount uint64) ProposalRecord {
	return ProposalRecord{
		proposal:       proposal,
		votesRoot:      util.CopyBytes(votesRoot),
		validatorCount: validatorCount,
	}
}

func (rc ProposalRecord) Proposal() Proposal {
	return rc.proposal
}

func (rc ProposalRecord) VotesRoot() []byte {
	return rc.votesRoot
}

func (rc ProposalRecord) ValidatorCount() uint64 {
	return rc.validatorCount
}

func (rc ProposalRecord) SetVotesRoot(root []byte) ProposalRecord {
	rc.votesRoot = util.CopyBytes(root)

	return rc
}

func (rc ProposalRecord) IsValid([]byte) error {
	if err := rc.proposal.IsValid(nil); err != nil {
		return err
	}
	if len(rc.votesRoot) < 1 {
		return isvalid.InvalidError.Errorf("empty votes root")
	}
	if rc.validatorCount < 1 {
		return isvalid.InvalidError.Errorf("zero validator count")
	}

	return nil
}

type proposalJSON struct {
	CF []byte `json:"configuration"`
	PR string `json:"proposer"`
}

func (pr Proposal) MarshalJSON() ([]byte, error) {
	return util.JSONMarshal(proposalJSON{
		CF: pr.cfg,
		PR: pr.proposer.String(),
	})
}

func (pr *Proposal) UnmarshalJSON(b []byte) error {
	var upr proposalJSON
	if err := util.JSONUnmarshal(b, &upr); err != nil {
		return err
	}

	pk, err := key.NewBTCPublickeyFromString(upr.PR)
	if err != nil {
		return err
	}

	pr.cfg = upr.CF
	pr.proposer = pk

	return nil
}

type proposalRecordJSON struct {
	PP Proposal `json:"proposal"`
	VR string   `json:"votes_root"`
	VC uint64   `json:"validator_count"`
}

func (rc ProposalRecord) MarshalJSON() ([]byte, error) {
	return util.JSONMarshal(proposalRecordJSON{
		PP: rc.proposal,
		VR: valuehash.NewBytes(rc.votesRoot).String(),
		VC: rc.validatorCount,
	})
}

func (rc *ProposalRecord) UnmarshalJSON(b []byte) error {
	var urc proposalRecordJSON
	if err := util.JSONUnmarshal(b, &urc); err != nil {
		return err
	}

	rc.proposal = urc.PP
	rc.votesRoot = valuehash.NewBytesFromString(urc.VR)
	rc.validatorCount = urc.VC

	return nil
}

// ProposedConfiguration parses the recorded payload back into a
// Configuration.
func (rc ProposalRecord) ProposedConfiguration() (config.Configuration, error) {
	return config.DecodeConfiguration(rc.proposal.cfg)
}
