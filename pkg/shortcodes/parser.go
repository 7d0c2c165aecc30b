// Package shortcodes expands bracketed shortcodes such as
// [button href="/docs"]Read more[/button] inside HTML or text.
//
// Supported forms: [name], [name /], [name a="1" b=2]content[/name]. Doubling
// the brackets escapes a tag: [[name]] renders as a literal [name]. Shortcodes
// no provider handles are left verbatim.
package shortcodes

import (
	"regexp"
	"strconv"
	"strings"
)

// Shortcode is one parsed tag.
type Shortcode struct {
	Name        string
	Args        Args
	Content     string
	Raw         string
	SelfClosing bool
}

// Args holds tag arguments. Named arguments use lower-cased keys; positional
// values are stored under "0", "1", and so on.
type Args map[string]string

// Get returns the named argument, or the positional one when name is absent.
func (a Args) Get(name string, index int) (string, bool) {
	if v, ok := a[strings.ToLower(name)]; ok {
		return v, true
	}
	v, ok := a[strconv.Itoa(index)]
	return v, ok
}

// GetOr returns the named argument or fallback.
func (a Args) GetOr(name, fallback string) string {
	if v, ok := a[strings.ToLower(name)]; ok {
		return v
	}
	return fallback
}

var (
	tagPattern = regexp.MustCompile(`\[(\[)?(/)?([A-Za-z][\w-]*)([^\[\]]*?)(/)?\](\])?`)
	argPattern = regexp.MustCompile(`(?:([\w-]+)\s*=\s*)?(?:"([^"]*)"|'([^']*)'|([^\s"'=]+))`)
)

// tag is a located opening, closing or escaped tag.
type tag struct {
	start, end  int
	name        string
	args        string
	closing     bool
	selfClosing bool
	escaped     bool
}

func nextTag(text string, from int) (tag, bool) {
	loc := tagPattern.FindStringSubmatchIndex(text[from:])
	if loc == nil {
		return tag{}, false
	}
	group := func(i int) string {
		if loc[2*i] < 0 {
			return ""
		}
		return text[from+loc[2*i] : from+loc[2*i+1]]
	}
	t := tag{
		start:       from + loc[0],
		end:         from + loc[1],
		closing:     group(2) != "",
		name:        group(3),
		args:        strings.TrimSpace(group(4)),
		selfClosing: group(5) != "",
	}
	open, close := group(1) != "", group(6) != ""
	switch {
	case open && close:
		t.escaped = true
	case open:
		// "[[name]" keeps the first bracket as text.
		t.start++
	case close:
		// "[name]]" keeps the trailing bracket as text.
		t.end--
	}
	return t, true
}

// closingTag finds "[/name]" after from, case-insensitively, returning the
// span of the closing tag.
func closingTag(text, name string, from int) (int, int, bool) {
	needle := "[/" + strings.ToLower(name) + "]"
	idx := strings.Index(strings.ToLower(text[from:]), needle)
	if idx < 0 {
		return 0, 0, false
	}
	start := from + idx
	return start, start + len(needle), true
}

// ParseArgs parses the argument list of a tag.
func ParseArgs(raw string) Args {
	args := Args{}
	position := 0
	for _, m := range argPattern.FindAllStringSubmatch(raw, -1) {
		value := m[2]
		switch {
		case m[3] != "":
			value = m[3]
		case m[4] != "":
			value = m[4]
		}
		if name := strings.ToLower(m[1]); name != "" {
			args[name] = value
			continue
		}
		args[strconv.Itoa(position)] = value
		position++
	}
	return args
}
