// Package enum provides a string flag restricted to a fixed set of options.
// The first option is the default.
package enum

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/pflag"

	"ocm.software/open-component-model/webassets/cli/internal/flags"
)

const Type = "enum"

type Flag struct {
	value   *string
	options []string
}

func (f *Flag) String() string {
	return *f.value
}

func (f *Flag) Set(s string) error {
	if !slices.Contains(f.options, s) {
		return fmt.Errorf("invalid value %q, must be one of %s", s, strings.Join(f.options, ", "))
	}
	*f.value = s
	return nil
}

func (f *Flag) Type() string {
	return Type
}

func newFlag(options []string) *Flag {
	if len(options) == 0 {
		panic("enum flag requires at least one option")
	}
	value := options[0]
	return &Flag{value: &value, options: slices.Clone(options)}
}

func Var(f *pflag.FlagSet, name string, options []string, usage string) {
	f.Var(newFlag(options), name, withOptions(usage, options))
}

func VarP(f *pflag.FlagSet, name, shorthand string, options []string, usage string) {
	f.VarP(newFlag(options), name, shorthand, withOptions(usage, options))
}

func Get(f *pflag.FlagSet, name string) (string, error) {
	return flags.Get(f, name, Type, func(sval string) (string, error) {
		return sval, nil
	})
}

func withOptions(usage string, options []string) string {
	return fmt.Sprintf("%s (must be one of [%s])", usage, strings.Join(options, " "))
}
