// Package file provides a path flag that records whether the path exists.
// Existing paths must be regular files.
package file

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/pflag"
)

const Type = "path"

type Flag struct {
	path   string
	exists bool
}

func (f *Flag) String() string {
	return f.path
}

func (f *Flag) Exists() bool {
	return f.exists
}

func (f *Flag) Set(s string) error {
	f.path = s
	f.exists = false
	info, err := os.Stat(s)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil
	case err != nil:
		return fmt.Errorf("unable to stat path %q: %w", s, err)
	case !info.Mode().IsRegular():
		return fmt.Errorf("path %q is not a regular file", s)
	}
	f.exists = true
	return nil
}

func (f *Flag) Type() string {
	return Type
}

func Var(f *pflag.FlagSet, name string, value string, usage string) {
	f.Var(&Flag{path: value}, name, usage)
}

func VarP(f *pflag.FlagSet, name, shorthand string, value string, usage string) {
	f.VarP(&Flag{path: value}, name, shorthand, usage)
}

// Get returns the path flag name of f.
func Get(f *pflag.FlagSet, name string) (*Flag, error) {
	flag := f.Lookup(name)
	if flag == nil {
		return nil, fmt.Errorf("flag accessed but not defined: %s", name)
	}
	value, ok := flag.Value.(*Flag)
	if !ok {
		return nil, fmt.Errorf("flag %s is of type %s, expected %s", name, flag.Value.Type(), Type)
	}
	return value, nil
}
