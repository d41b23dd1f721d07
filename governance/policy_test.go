package governance

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"golang.org/x/xerrors"
)

type testMajorityPolicy struct {
	suite.Suite
}

func (t *testMajorityPolicy) TestByzantineMajority() {
	cases := []struct {
		total    int
		expected int
	}{
		{1, 1},
		{2, 2},
		{3, 3},
		{4, 3},
		{5, 4},
		{6, 5},
		{7, 5},
		{10, 7},
		{100, 67},
	}

	for _, c := range cases {
		t.Equal(c.expected, ByzantineMajority(c.total), "total=%d", c.total)
	}
}

func (t *testMajorityPolicy) TestValidateMajorityCount() {
	t.NoError(ValidateMajorityCount(4, 3))
	t.NoError(ValidateMajorityCount(4, 4))
	t.NoError(ValidateMajorityCount(1, 1))

	err := ValidateMajorityCount(4, 2)
	t.True(xerrors.Is(err, InvalidMajorityCountError))
	t.Contains(err.Error(), "min=3 max=4 proposed=2")

	err = ValidateMajorityCount(4, 5)
	t.True(xerrors.Is(err, InvalidMajorityCountError))
	t.Contains(err.Error(), "min=3 max=4 proposed=5")
}

func TestMajorityPolicy(t *testing.T) {
	suite.Run(t, new(testMajorityPolicy))
}
