// Package flagutil provides additional support around the standard flag package. At the moment
// that consists solely of StringValue, which conforms to flag.Value for multiple-occurrence flags
// holding string values.
//
// The reason for providing StringValue is so commands can offer a flag that can be repeated, such
// as:
//
// $command -a something -a somethingelse -a evenmore
//
// Usage is as documented by the flag package:
//
//	var args flagutil.StringValue
//	flagSet.Var(&args, "a", "Short description of opt")
//	vals := args.Args() // Return an array of strings, in the order supplied
package flagutil

import (
	"strings"
)

// StringValue is the type provided to flag.Var().
type StringValue struct {
	strings []string
}

// Set appends a string to the internal array - it is called by the flag package for each
// occurrence of the corresponding option on the command line. Part of the flag.Value interface.
func (t *StringValue) Set(s string) error {
	t.strings = append(t.strings, s)

	return nil
}

// String returns a space separated string of all the arguments provided by Set. Part of the
// flag.Value interface.
func (t *StringValue) String() string {
	return strings.Join(t.strings, " ")
}

// Args returns a copy of the array of strings accumulated by Set. Safe to modify without
// affecting the internal state.
func (t *StringValue) Args() []string {
	return append([]string{}, t.strings...)
}

// NArg returns the number of strings accumulated by Set.
func (t *StringValue) NArg() int {
	return len(t.strings)
}
