package config

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"
	"golang.org/x/xerrors"

	"github.com/spikeekips/confgov/base"
	"github.com/spikeekips/confgov/base/key"
	"github.com/spikeekips/confgov/storage"
	"github.com/spikeekips/confgov/util"
)

func newValidators(n int) ([]key.Privatekey, []base.BaseValidator) {
	privs := make([]key.Privatekey, n)
	vas := make([]base.BaseValidator, n)
	for i := 0; i < n; i++ {
		pk, err := key.NewBTCPrivatekey()
		if err != nil {
			panic(err)
		}

		ad, err := base.NewStringAddress(fmt.Sprintf("va%d", i))
		if err != nil {
			panic(err)
		}

		privs[i] = pk
		vas[i] = base.NewBaseValidator(ad, pk.Publickey())
	}

	return privs, vas
}

type testConfiguration struct {
	suite.Suite
}

func (t *testConfiguration) TestHashDeterminism() {
	_, vas := newValidators(3)

	services := map[string]json.RawMessage{
		"zebra":    json.RawMessage(`{"b":2,"a":1}`),
		"anchor":   json.RawMessage(`{"x":true}`),
		GovernanceServiceName: json.RawMessage(`{"majority_count":3}`),
	}

	cfg := NewConfiguration(nil, base.Height(0), vas, services)

	a, err := util.JSONMarshal(cfg)
	t.NoError(err)
	b, err := util.JSONMarshal(cfg)
	t.NoError(err)
	t.Equal(a, b)

	decoded, err := DecodeConfiguration(a)
	t.NoError(err)
	t.True(cfg.Hash().Equal(decoded.Hash()))
}

func (t *testConfiguration) TestHashChangesWithContent() {
	_, vas := newValidators(3)

	a := NewConfiguration(nil, base.Height(0), vas, nil)
	b := NewConfiguration(nil, base.Height(1), vas, nil)
	t.False(a.Hash().Equal(b.Hash()))
}

func (t *testConfiguration) TestEmptyValidators() {
	cfg := NewConfiguration(nil, base.Height(0), nil, nil)
	err := cfg.IsValid(nil)
	t.True(xerrors.Is(err, InvalidConfigurationError))
	t.Contains(err.Error(), "empty validators")
}

func (t *testConfiguration) TestDuplicatedPublickey() {
	privs, vas := newValidators(2)

	ad, err := base.NewStringAddress("va9")
	t.NoError(err)
	vas = append(vas, base.NewBaseValidator(ad, privs[0].Publickey()))

	err = NewConfiguration(nil, base.Height(0), vas, nil).IsValid(nil)
	t.True(xerrors.Is(err, InvalidConfigurationError))
	t.Contains(err.Error(), "duplicated validator publickey")
}

func (t *testConfiguration) TestDuplicatedAddress() {
	_, vas := newValidators(2)

	pk, err := key.NewBTCPrivatekey()
	t.NoError(err)
	vas = append(vas, base.NewBaseValidator(vas[0].Address().(base.StringAddress), pk.Publickey()))

	err = NewConfiguration(nil, base.Height(0), vas, nil).IsValid(nil)
	t.True(xerrors.Is(err, InvalidConfigurationError))
	t.Contains(err.Error(), "duplicated validator address")
}

func (t *testConfiguration) TestValidatorIndex() {
	privs, vas := newValidators(3)
	cfg := NewConfiguration(nil, base.Height(0), vas, nil)

	for i := range privs {
		t.Equal(i, cfg.ValidatorIndex(privs[i].Publickey()))
	}

	other, err := key.NewBTCPrivatekey()
	t.NoError(err)
	t.Equal(-1, cfg.ValidatorIndex(other.Publickey()))
}

func (t *testConfiguration) TestGovernanceSettings() {
	_, vas := newValidators(3)

	cfg := NewConfiguration(nil, base.Height(0), vas, nil)
	gs, err := cfg.GovernanceSettings()
	t.NoError(err)
	t.Nil(gs.MajorityCount)

	cfg = NewConfiguration(nil, base.Height(0), vas, map[string]json.RawMessage{
		GovernanceServiceName: json.RawMessage(`{"majority_count":3}`),
	})
	gs, err = cfg.GovernanceSettings()
	t.NoError(err)
	t.NotNil(gs.MajorityCount)
	t.Equal(uint(3), *gs.MajorityCount)
}

func (t *testConfiguration) TestEncodeJSON() {
	_, vas := newValidators(3)

	prev := NewConfiguration(nil, base.Height(0), vas, nil)
	cfg := NewConfiguration(prev.Hash(), base.Height(33), vas, map[string]json.RawMessage{
		GovernanceServiceName: json.RawMessage(`{"majority_count":3}`),
	})

	b, err := util.JSONMarshal(cfg)
	t.NoError(err)

	ucfg, err := DecodeConfiguration(b)
	t.NoError(err)

	t.True(cfg.PreviousHash().Equal(ucfg.PreviousHash()))
	t.Equal(cfg.ActivatesAt(), ucfg.ActivatesAt())
	t.Equal(len(cfg.Validators()), len(ucfg.Validators()))
	for i := range cfg.Validators() {
		t.True(cfg.Validators()[i].Address().Equal(ucfg.Validators()[i].Address()))
		t.True(cfg.Validators()[i].Publickey().Equal(ucfg.Validators()[i].Publickey()))
	}
	t.True(cfg.Hash().Equal(ucfg.Hash()))
}

func TestConfiguration(t *testing.T) {
	suite.Run(t, new(testConfiguration))
}

type testSchema struct {
	suite.Suite
	db *storage.Database
}

func (t *testSchema) SetupTest() {
	t.db = storage.NewMemDatabase()
}

func (t *testSchema) TearDownTest() {
	t.NoError(t.db.Close())
}

func (t *testSchema) genesis(vas []base.BaseValidator) Configuration {
	cfg := NewConfiguration(nil, base.Height(0), vas, nil)

	fk := t.db.NewFork()
	t.NoError(SetGenesis(fk, cfg))
	t.NoError(SetHeight(fk, base.Height(0)))
	t.NoError(t.db.Commit(fk))

	return cfg
}

func (t *testSchema) TestEmptyState() {
	sc := NewSchema(t.db)

	h, err := sc.Height()
	t.NoError(err)
	t.Equal(base.PreGenesisHeight, h)

	_, err = sc.ActualConfiguration()
	t.True(xerrors.Is(err, NoActualConfigurationError))

	_, found, err := sc.FollowingConfiguration()
	t.NoError(err)
	t.False(found)
}

func (t *testSchema) TestGenesis() {
	_, vas := newValidators(3)
	cfg := t.genesis(vas)

	sc := NewSchema(t.db)

	actual, err := sc.ActualConfiguration()
	t.NoError(err)
	t.True(cfg.Hash().Equal(actual.Hash()))

	h, err := sc.Height()
	t.NoError(err)
	t.Equal(base.Height(0), h)

	next, err := sc.NextHeight()
	t.NoError(err)
	t.Equal(base.Height(1), next)

	byHash, found, err := sc.Configuration(cfg.Hash())
	t.NoError(err)
	t.True(found)
	t.True(cfg.Hash().Equal(byHash.Hash()))
}

func (t *testSchema) TestCommitConfiguration() {
	_, vas := newValidators(3)
	cfg := t.genesis(vas)

	next := NewConfiguration(cfg.Hash(), base.Height(10), vas, nil)

	fk := t.db.NewFork()
	t.NoError(CommitConfiguration(fk, next))
	t.NoError(t.db.Commit(fk))

	following, found, err := NewSchema(t.db).FollowingConfiguration()
	t.NoError(err)
	t.True(found)
	t.True(next.Hash().Equal(following.Hash()))
}

func (t *testSchema) TestCommitConfigurationKeepsExisting() {
	_, vas := newValidators(3)
	cfg := t.genesis(vas)

	first := NewConfiguration(cfg.Hash(), base.Height(10), vas, nil)
	second := NewConfiguration(cfg.Hash(), base.Height(20), vas, nil)

	fk := t.db.NewFork()
	t.NoError(CommitConfiguration(fk, first))
	t.NoError(CommitConfiguration(fk, second))
	t.NoError(t.db.Commit(fk))

	following, found, err := NewSchema(t.db).FollowingConfiguration()
	t.NoError(err)
	t.True(found)
	t.True(first.Hash().Equal(following.Hash()))
}

func (t *testSchema) TestActivateFollowing() {
	_, vas := newValidators(3)
	cfg := t.genesis(vas)

	next := NewConfiguration(cfg.Hash(), base.Height(3), vas, nil)

	fk := t.db.NewFork()
	t.NoError(CommitConfiguration(fk, next))
	t.NoError(t.db.Commit(fk))

	// too early; next height is 1
	fk = t.db.NewFork()
	activated, err := ActivateFollowing(fk)
	t.NoError(err)
	t.False(activated)
	fk.Discard()

	fk = t.db.NewFork()
	t.NoError(SetHeight(fk, base.Height(2)))
	t.NoError(t.db.Commit(fk))

	fk = t.db.NewFork()
	activated, err = ActivateFollowing(fk)
	t.NoError(err)
	t.True(activated)
	t.NoError(t.db.Commit(fk))

	sc := NewSchema(t.db)

	actual, err := sc.ActualConfiguration()
	t.NoError(err)
	t.True(next.Hash().Equal(actual.Hash()))

	_, found, err := sc.FollowingConfiguration()
	t.NoError(err)
	t.False(found)
}

func (t *testSchema) TestActivateWithoutFollowing() {
	_, vas := newValidators(3)
	t.genesis(vas)

	fk := t.db.NewFork()
	activated, err := ActivateFollowing(fk)
	t.NoError(err)
	t.False(activated)
}

func TestSchema(t *testing.T) {
	suite.Run(t, new(testSchema))
}
