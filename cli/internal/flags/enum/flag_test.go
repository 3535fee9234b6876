package enum_test

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"ocm.software/open-component-model/webassets/cli/internal/flags/enum"
)

func TestEnumFlag(t *testing.T) {
	r := require.New(t)
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	enum.VarP(fs, "output", "o", []string{"table", "json", "yaml"}, "output format")

	value, err := enum.Get(fs, "output")
	r.NoError(err)
	r.Equal("table", value, "the first option is the default")

	r.NoError(fs.Parse([]string{"-o", "json"}))
	value, err = enum.Get(fs, "output")
	r.NoError(err)
	r.Equal("json", value)

	r.Error(fs.Parse([]string{"--output", "xml"}))
	r.Contains(fs.Lookup("output").Usage, "[table json yaml]")
}

func TestGet_WrongType(t *testing.T) {
	r := require.New(t)
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("output", "table", "")

	_, err := enum.Get(fs, "output")
	r.Error(err)
	_, err = enum.Get(fs, "missing")
	r.Error(err)
}
