package config

import (
	"encoding/json"

	"github.com/spikeekips/confgov/base"
	"github.com/spikeekips/confgov/base/key"
	"github.com/spikeekips/confgov/util"
	"github.com/spikeekips/confgov/util/errors"
	"github.com/spikeekips/confgov/util/hint"
	"github.com/spikeekips/confgov/util/isvalid"
	"github.com/spikeekips/confgov/util/valuehash"
)

var (
	ConfigurationType = hint.MustNewType(0x03, 0x00, "network-configuration")
	ConfigurationHint = hint.MustHint(ConfigurationType, "0.0.1")
)

var (
	InvalidConfigurationError = errors.NewError("invalid network configuration")
)

// GovernanceServiceName is the key of the governance service entry inside
// the per-service settings map.
const GovernanceServiceName = "governance"

// Configuration is one network configuration: the ordered validator set,
// the height it activates at, the hash of the configuration it supersedes
// and opaque per-service settings. Immutable once hashed.
type Configuration struct {
	previousHash valuehash.Hash
	activatesAt  base.Height
	validators   []base.BaseValidator
	services     map[string]json.RawMessage
}

func NewConfiguration(
	previousHash valuehash.Hash,
	activatesAt base.Height,
	validators []base.BaseValidator,
	services map[string]json.RawMessage,
) Configuration {
	return Configuration{
		previousHash: previousHash,
		activatesAt:  activatesAt,
		validators:   validators,
		services:     services,
	}
}

// DecodeConfiguration parses the canonical JSON payload into a well-formed
// Configuration.
func DecodeConfiguration(b []byte) (Configuration, error) {
	var cfg Configuration
	if err := util.JSONUnmarshal(b, &cfg); err != nil {
		return Configuration{}, InvalidConfigurationError.Wrap(err)
	}

	if err := cfg.IsValid(nil); err != nil {
		return Configuration{}, err
	}

	return cfg, nil
}

func (cfg Configuration) Hint() hint.Hint {
	return ConfigurationHint
}

func (cfg Configuration) IsValid([]byte) error {
	if len(cfg.validators) < 1 {
		return InvalidConfigurationError.Errorf("empty validators")
	}

	if err := cfg.activatesAt.IsValid(nil); err != nil {
		return InvalidConfigurationError.Wrap(err)
	}

	vs := make([]isvalid.IsValider, len(cfg.validators))
	founds := map[string]struct{}{}
	for i := range cfg.validators {
		va := cfg.validators[i]
		vs[i] = va

		if _, found := founds[va.Publickey().String()]; found {
			return InvalidConfigurationError.Errorf("duplicated validator publickey, %q", va.Publickey())
		}
		founds[va.Publickey().String()] = struct{}{}

		if _, found := founds[va.Address().String()]; found {
			return InvalidConfigurationError.Errorf("duplicated validator address, %q", va.Address())
		}
		founds[va.Address().String()] = struct{}{}
	}

	return isvalid.Check(nil, false, vs...)
}

// Hash is the content hash over the canonical serialization.
func (cfg Configuration) Hash() valuehash.Hash {
	b, _ := util.JSONMarshal(cfg)

	return valuehash.NewSHA256(b)
}

func (cfg Configuration) PreviousHash() valuehash.Hash {
	return cfg.previousHash
}

func (cfg Configuration) ActivatesAt() base.Height {
	return cfg.activatesAt
}

func (cfg Configuration) Validators() []base.BaseValidator {
	return cfg.validators
}

func (cfg Configuration) Services() map[string]json.RawMessage {
	return cfg.services
}

// ValidatorIndex returns the ordinal of the validator owning the given
// publickey, or -1 when no validator matches.
func (cfg Configuration) ValidatorIndex(pub key.Publickey) int {
	for i := range cfg.validators {
		if cfg.validators[i].Publickey().Equal(pub) {
			return i
		}
	}

	return -1
}

// GovernanceSettings is the governance service entry of the per-service
// settings map; MajorityCount overrides the default byzantine majority when
// set.
type GovernanceSettings struct {
	MajorityCount *uint `json:"majority_count,omitempty"`
}

// GovernanceSettings returns the parsed governance service settings; the
// zero value when the configuration carries none.
func (cfg Configuration) GovernanceSettings() (GovernanceSettings, error) {
	raw, found := cfg.services[GovernanceServiceName]
	if !found {
		return GovernanceSettings{}, nil
	}

	var gs GovernanceSettings
	if err := util.JSONUnmarshal(raw, &gs); err != nil {
		return GovernanceSettings{}, InvalidConfigurationError.Wrap(err)
	}

	return gs, nil
}
