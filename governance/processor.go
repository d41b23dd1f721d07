package governance

import (
	"github.com/rs/zerolog"

	"github.com/spikeekips/confgov/base"
	"github.com/spikeekips/confgov/config"
	"github.com/spikeekips/confgov/storage"
	"github.com/spikeekips/confgov/util/logging"
	"github.com/spikeekips/confgov/util/valuehash"
)

// TxResult records how one transaction of a block fared. A rejected
// transaction does not abort the block; the block carries it with its
// rejection reason.
type TxResult struct {
	Hash  valuehash.Hash
	Error error
}

func (r TxResult) Rejected() bool {
	return r.Error != nil
}

// BlockProcessor applies a block of signed transactions against the
// database inside one fork: activation first, then every transaction in
// order, then the height marker, then a single atomic commit.
type BlockProcessor struct {
	*logging.Logging
	db        *storage.Database
	networkID []byte
}

func NewBlockProcessor(db *storage.Database, networkID []byte) *BlockProcessor {
	return &BlockProcessor{
		Logging: logging.NewLogging(func(c zerolog.Context) zerolog.Context {
			return c.Str("module", "block-processor")
		}),
		db:        db,
		networkID: networkID,
	}
}

func (pr *BlockProcessor) Process(height base.Height, evs []Envelope) ([]TxResult, error) {
	if err := height.IsValid(nil); err != nil {
		return nil, err
	}

	fork := pr.db.NewFork()
	defer fork.Discard()

	activated, err := config.ActivateFollowing(fork)
	if err != nil {
		return nil, err
	}
	if activated {
		pr.Log().Debug().Int64("height", height.Int64()).Msg("following configuration activated")
	}

	results := make([]TxResult, len(evs))
	for i := range evs {
		ev := evs[i]
		results[i] = TxResult{Hash: ev.Hash(), Error: pr.process(fork, ev)}

		if results[i].Rejected() {
			pr.Log().Debug().
				Stringer("tx", ev.Hash()).
				Err(results[i].Error).
				Msg("discarding transaction")
		}
	}

	if err := config.SetHeight(fork, height); err != nil {
		return nil, err
	}

	if err := pr.db.Commit(fork); err != nil {
		return nil, err
	}

	pr.Log().Debug().
		Int64("height", height.Int64()).
		Int("transactions", len(evs)).
		Msg("block processed")

	return results, nil
}

func (pr *BlockProcessor) process(fork storage.Fork, ev Envelope) error {
	if err := ev.IsValid(pr.networkID); err != nil {
		return err
	}

	return ev.Transaction().Execute(NewContext(ev.Signer(), ev.Hash(), fork))
}
