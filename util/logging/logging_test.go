package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/suite"
)

type testLogging struct {
	suite.Suite
}

func (t *testLogging) TestNopByDefault() {
	lg := NewLogging(nil)
	t.Equal(zerolog.Disabled, lg.Log().GetLevel())
	t.False(lg.IsTraceLog())
}

func (t *testLogging) TestSetup() {
	var buf bytes.Buffer
	lg := Setup(&buf, zerolog.InfoLevel, "json", false)

	lg.Log().Info().Str("showme", "findme").Msg("hello")

	t.Contains(buf.String(), `"showme":"findme"`)
	t.Contains(buf.String(), `"message":"hello"`)
}

func (t *testLogging) TestSetupTerminal() {
	var buf bytes.Buffer
	lg := Setup(&buf, zerolog.InfoLevel, "terminal", true)

	lg.Log().Info().Msg("hello")
	t.Contains(buf.String(), "hello")
}

func (t *testLogging) TestSetupLevel() {
	var buf bytes.Buffer
	lg := Setup(&buf, zerolog.WarnLevel, "json", false)

	lg.Log().Info().Msg("hidden")
	t.Empty(buf.String())

	lg.Log().Warn().Msg("shown")
	t.Contains(buf.String(), "shown")
}

func (t *testLogging) TestContextFunc() {
	var buf bytes.Buffer

	lg := NewLogging(func(c zerolog.Context) zerolog.Context {
		return c.Str("module", "showme")
	}).SetLogger(zerolog.New(&buf))

	lg.Log().Info().Msg("hello")
	t.Contains(buf.String(), `"module":"showme"`)
}

func (t *testLogging) TestSetLogging() {
	var buf bytes.Buffer
	root := NewLogging(nil).SetLogger(zerolog.New(&buf))

	child := NewLogging(func(c zerolog.Context) zerolog.Context {
		return c.Str("module", "child")
	})
	_ = child.SetLogging(root)

	child.Log().Info().Msg("hello")
	t.Contains(buf.String(), `"module":"child"`)
}

func TestLogging(t *testing.T) {
	suite.Run(t, new(testLogging))
}
