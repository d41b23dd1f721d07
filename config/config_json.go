package config

import (
	"encoding/json"

	"github.com/spikeekips/confgov/base"
	"github.com/spikeekips/confgov/util"
	"github.com/spikeekips/confgov/util/valuehash"
)

type configurationJSON struct {
	PH string                     `json:"previous_hash"`
	AT base.Height                `json:"activates_at"`
	VS []base.BaseValidator       `json:"validators"`
	SV map[string]json.RawMessage `json:"services,omitempty"`
}

func (cfg Configuration) MarshalJSON() ([]byte, error) {
	var ph string
	if cfg.previousHash != nil && !cfg.previousHash.Empty() {
		ph = cfg.previousHash.String()
	}

	return util.JSONMarshal(configurationJSON{
		PH: ph,
		AT: cfg.activatesAt,
		VS: cfg.validators,
		SV: cfg.services,
	})
}

func (cfg *Configuration) UnmarshalJSON(b []byte) error {
	var ucfg configurationJSON
	if err := util.JSONUnmarshal(b, &ucfg); err != nil {
		return err
	}

	var ph valuehash.Hash
	if len(ucfg.PH) > 0 {
		ph = valuehash.NewBytesFromString(ucfg.PH)
	}

	cfg.previousHash = ph
	cfg.activatesAt = ucfg.AT
	cfg.validators = ucfg.VS
	cfg.services = ucfg.SV

	return nil
}
