package governance

import (
	"github.com/spikeekips/confgov/storage"
	"github.com/spikeekips/confgov/util"
	"github.com/spikeekips/confgov/util/valuehash"
)

var (
	keyPrefixProposalRecord  = []byte{0x01, 0x01}
	keyPrefixVoteLedger      = []byte{0x01, 0x02}
	keyPrefixProposalOrdinal = []byte{0x01, 0x03}
	keyProposalCount         = []byte{0x01, 0x04}
)

// Schema reads and writes the governance tables: proposal records and vote
// ledgers keyed by configuration hash, plus the append-only ordinal index of
// configuration hashes in submission order.
type Schema struct {
	st storage.Reader
}

func NewSchema(st storage.Reader) Schema {
	return Schema{st: st}
}

func proposalRecordKey(h valuehash.Hash) []byte {
	return util.ConcatBytesSlice(keyPrefixProposalRecord, h.Bytes())
}

func voteLedgerKey(h valuehash.Hash) []byte {
	return util.ConcatBytesSlice(keyPrefixVoteLedger, h.Bytes())
}

func proposalOrdinalKey(i uint64) []byte {
	return util.ConcatBytesSlice(keyPrefixProposalOrdinal, util.Uint64ToBytes(i))
}

func (sc Schema) ProposalRecord(h valuehash.Hash) (ProposalRecord, bool, error) {
	b, found, err := sc.st.Get(proposalRecordKey(h))
	switch {
	case err != nil:
		return ProposalRecord{}, false, err
	case !found:
		return ProposalRecord{}, false, nil
	}

	var rc ProposalRecord
	if err := util.JSONUnmarshal(b, &rc); err != nil {
		return ProposalRecord{}, false, err
	}

	return rc, true, nil
}

func (sc Schema) VoteLedger(h valuehash.Hash) (VoteLedger, bool, error) {
	b, found, err := sc.st.Get(voteLedgerKey(h))
	switch {
	case err != nil:
		return VoteLedger{}, false, err
	case !found:
		return VoteLedger{}, false, nil
	}

	var lg VoteLedger
	if err := util.JSONUnmarshal(b, &lg); err != nil {
		return VoteLedger{}, false, err
	}

	return lg, true, nil
}

// ProposalCount returns how many proposals were ever submitted.
func (sc Schema) ProposalCount() (uint64, error) {
	b, found, err := sc.st.Get(keyProposalCount)
	switch {
	case err != nil:
		return 0, err
	case !found:
		return 0, nil
	}

	return util.BytesToUint64(b)
}

// ProposalHashByOrdinal returns the configuration hash of the i'th
// submitted proposal.
func (sc Schema) ProposalHashByOrdinal(i uint64) (valuehash.Hash, bool, error) {
	b, found, err := sc.st.Get(proposalOrdinalKey(i))
	switch {
	case err != nil:
		return nil, false, err
	case !found:
		return nil, false, nil
	}

	return valuehash.NewBytes(b), true, nil
}

func putProposalRecord(fk storage.Fork, h valuehash.Hash, rc ProposalRecord) error {
	b, err := util.JSONMarshal(rc)
	if err != nil {
		return err
	}

	return fk.Put(proposalRecordKey(h), b)
}

func putVoteLedger(fk storage.Fork, h valuehash.Hash, lg VoteLedger) error {
	b, err := util.JSONMarshal(lg)
	if err != nil {
		return err
	}

	return fk.Put(voteLedgerKey(h), b)
}

func appendProposalOrdinal(fk storage.Fork, h valuehash.Hash) error {
	count, err := NewSchema(fk).ProposalCount()
	if err != nil {
		return err
	}

	if err := fk.Put(proposalOrdinalKey(count), h.Bytes()); err != nil {
		return err
	}

	return fk.Put(keyProposalCount, util.Uint64ToBytes(count+1))
}

// VoteStatus is the per-validator vote status of one proposal.
type VoteStatus struct {
	Ordinal  int            `json:"ordinal"`
	Decision string         `json:"decision,omitempty"`
	Fact     valuehash.Hash `json:"fact,omitempty"`
}

// ProposalDetail is the read model served to external consumers: the
// proposal, its tally and per-validator vote status.
type ProposalDetail struct {
	ConfigHash     valuehash.Hash `json:"config_hash"`
	Proposer       string         `json:"proposer"`
	Configuration  []byte         `json:"configuration"`
	VotesRoot      string         `json:"votes_root"`
	ValidatorCount uint64         `json:"validator_count"`
	Yeas           int            `json:"yeas"`
	Nays           int            `json:"nays"`
	Votes          []VoteStatus   `json:"votes"`
}

// ProposalDetail builds the detail view of one proposal.
func (sc Schema) ProposalDetail(h valuehash.Hash) (ProposalDetail, error) {
	rc, found, err := sc.ProposalRecord(h)
	switch {
	case err != nil:
		return ProposalDetail{}, err
	case !found:
		return ProposalDetail{}, UnknownConfigRefError.Errorf("config=%s", h)
	}

	lg, found, err := sc.VoteLedger(h)
	switch {
	case err != nil:
		return ProposalDetail{}, err
	case !found:
		return ProposalDetail{}, UnknownConfigRefError.Errorf("vote ledger, config=%s", h)
	}

	yeas, nays := lg.Tally()

	votes := make([]VoteStatus, lg.Len())
	for i := range votes {
		sl, err := lg.Slot(i)
		if err != nil {
			return ProposalDetail{}, err
		}

		votes[i] = VoteStatus{
			Ordinal:  i,
			Decision: sl.Decision().String(),
			Fact:     sl.Fact(),
		}
	}

	return ProposalDetail{
		ConfigHash:     h,
		Proposer:       rc.Proposal().Proposer().String(),
		Configuration:  rc.Proposal().Configuration(),
		VotesRoot:      valuehash.NewBytes(rc.VotesRoot()).String(),
		ValidatorCount: rc.ValidatorCount(),
		Yeas:           yeas,
		Nays:           nays,
		Votes:          votes,
	}, nil
}
