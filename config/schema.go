package config

import (
	"github.com/spikeekips/confgov/base"
	"github.com/spikeekips/confgov/storage"
	"github.com/spikeekips/confgov/util"
	"github.com/spikeekips/confgov/util/errors"
	"github.com/spikeekips/confgov/util/valuehash"
)

var (
	keyPrefixChainHeight     = []byte{0x00, 0x01}
	keyPrefixActualConfig    = []byte{0x00, 0x02}
	keyPrefixFollowingConfig = []byte{0x00, 0x03}
	keyPrefixConfigByHash    = []byte{0x00, 0x04}
)

var (
	NoActualConfigurationError = errors.NewError("actual configuration not found")
)

// Schema reads the chain-level state: last committed height, the actual
// (active) configuration and the following (scheduled) one.
type Schema struct {
	st storage.Reader
}

func NewSchema(st storage.Reader) Schema {
	return Schema{st: st}
}

// Height returns the height of the last committed block.
func (sc Schema) Height() (base.Height, error) {
	b, found, err := sc.st.Get(keyPrefixChainHeight)
	switch {
	case err != nil:
		return base.NilHeight, err
	case !found:
		return base.PreGenesisHeight, nil
	}

	return base.NewHeightFromBytes(b)
}

// NextHeight returns the height of the block being processed.
func (sc Schema) NextHeight() (base.Height, error) {
	h, err := sc.Height()
	if err != nil {
		return base.NilHeight, err
	}

	return h + 1, nil
}

// ActualConfiguration returns the configuration currently in force.
func (sc Schema) ActualConfiguration() (Configuration, error) {
	b, found, err := sc.st.Get(keyPrefixActualConfig)
	switch {
	case err != nil:
		return Configuration{}, err
	case !found:
		return Configuration{}, NoActualConfigurationError
	}

	return DecodeConfiguration(b)
}

// FollowingConfiguration returns the scheduled-but-not-yet-active
// configuration, if any. At most one exists at a time.
func (sc Schema) FollowingConfiguration() (Configuration, bool, error) {
	b, found, err := sc.st.Get(keyPrefixFollowingConfig)
	switch {
	case err != nil:
		return Configuration{}, false, err
	case !found:
		return Configuration{}, false, nil
	}

	cfg, err := DecodeConfiguration(b)
	if err != nil {
		return Configuration{}, false, err
	}

	return cfg, true, nil
}

// Configuration looks up a committed configuration by its content hash.
func (sc Schema) Configuration(h valuehash.Hash) (Configuration, bool, error) {
	b, found, err := sc.st.Get(configByHashKey(h))
	switch {
	case err != nil:
		return Configuration{}, false, err
	case !found:
		return Configuration{}, false, nil
	}

	cfg, err := DecodeConfiguration(b)
	if err != nil {
		return Configuration{}, false, err
	}

	return cfg, true, nil
}

func configByHashKey(h valuehash.Hash) []byte {
	return util.ConcatBytesSlice(keyPrefixConfigByHash, h.Bytes())
}

// SetHeight records the last committed block height.
func SetHeight(fk storage.Fork, h base.Height) error {
	return fk.Put(keyPrefixChainHeight, h.Bytes())
}

// SetGenesis installs the first actual configuration.
func SetGenesis(fk storage.Fork, cfg Configuration) error {
	if err := cfg.IsValid(nil); err != nil {
		return err
	}

	b, err := util.JSONMarshal(cfg)
	if err != nil {
		return err
	}

	if err := fk.Put(configByHashKey(cfg.Hash()), b); err != nil {
		return err
	}

	return fk.Put(keyPrefixActualConfig, b)
}

// CommitConfiguration schedules the validated candidate to activate at its
// activation height. No-op when another configuration is already scheduled.
func CommitConfiguration(fk storage.Fork, candidate Configuration) error {
	if _, found, err := NewSchema(fk).FollowingConfiguration(); err != nil {
		return err
	} else if found {
		return nil
	}

	b, err := util.JSONMarshal(candidate)
	if err != nil {
		return err
	}

	if err := fk.Put(configByHashKey(candidate.Hash()), b); err != nil {
		return err
	}

	return fk.Put(keyPrefixFollowingConfig, b)
}

// ActivateFollowing promotes the following configuration to actual once the
// chain reaches its activation height. Returns true when the promotion
// happened.
func ActivateFollowing(fk storage.Fork) (bool, error) {
	sc := NewSchema(fk)

	following, found, err := sc.FollowingConfiguration()
	switch {
	case err != nil:
		return false, err
	case !found:
		return false, nil
	}

	next, err := sc.NextHeight()
	if err != nil {
		return false, err
	}

	if next < following.ActivatesAt() {
		return false, nil
	}

	b, err := util.JSONMarshal(following)
	if err != nil {
		return false, err
	}

	if err := fk.Put(keyPrefixActualConfig, b); err != nil {
		return false, err
	}

	return true, fk.Delete(keyPrefixFollowingConfig)
}
