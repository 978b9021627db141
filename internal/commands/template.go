// Package commands parses and renders the command templates configured under `command[NAME]`
// directives: POSIX word-splitting plus `$WORD$` argument placeholder substitution.
package commands

import (
	"fmt"
	"regexp"

	"github.com/mattn/go-shellwords"
)

// argRE looks for an argument placeholder anywhere within an argv word, e.g. "$hostname$". A
// match replaces the entire word, not just the matched substring — a word containing a
// placeholder is never a literal plus a substitution, only ever a pure substitution.
var argRE = regexp.MustCompile(`\$(\w+)\$`)

// Template is an immutable, pre-split command line. Argv is the command name followed by its
// arguments, each either a literal word or a placeholder to be substituted at execution time.
type Template struct {
	Raw  string
	Argv []string
}

// Parse splits cmdline using POSIX shell word rules (no globbing, no variable expansion) and
// returns the resulting Template.
func Parse(cmdline string) (Template, error) {
	words, err := shellwords.Parse(cmdline)
	if err != nil {
		return Template{}, fmt.Errorf("command: %q: %w", cmdline, err)
	}
	if len(words) == 0 {
		return Template{}, fmt.Errorf("command: %q: empty command line", cmdline)
	}
	return Template{Raw: cmdline, Argv: words}, nil
}

// Render substitutes each `$NAME$` placeholder word in t.Argv with args[NAME], producing the
// final argv to execute. A placeholder with no matching entry in args renders as an empty
// string, matching a missing-key lookup on a plain map. commandPrefix, already word-split, is
// prepended verbatim.
func (t Template) Render(commandPrefix []string, args map[string]string) []string {
	out := make([]string, 0, len(commandPrefix)+len(t.Argv))
	out = append(out, commandPrefix...)

	for _, word := range t.Argv {
		if m := argRE.FindStringSubmatch(word); m != nil {
			out = append(out, args[m[1]])
			continue
		}
		out = append(out, word)
	}
	return out
}

// String renders the template back into a single display string, for logging.
func (t Template) String() string {
	return t.Raw
}
