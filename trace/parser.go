package trace

import (
	"bufio"
	"regexp"
	"strconv"
	"strings"
)

var (
	beginRe = regexp.MustCompile(`^Trace begun at (.+) line (\d+)$`)
	frameRe = regexp.MustCompile(`^(\S+?)\((.*)\) called at (.+) line (\d+)$`)
)

var _ Parser = &LineParser{}

// LineParser parses the line-oriented dump format written by the diagnostic trace
// facility. A dump opens with a header line:
//
//	Trace begun at script.pl line 10
//
// followed by one frame per line:
//
//	Foo::bar('user', 'alice', 'password', 'hunter2') called at lib/Foo.pm line 20
//
// Lines that do not match either shape are skipped, since captured dumps frequently
// interleave unrelated log output.
type LineParser struct{}

// NewLineParser produces a ready-to-use LineParser.
func NewLineParser() *LineParser {
	return &LineParser{}
}

// Parse reads raw line by line and returns the call frames in dump order.
func (p *LineParser) Parse(raw string) ([]CallFrame, error) {
	frames := make([]CallFrame, 0)
	scanner := bufio.NewScanner(strings.NewReader(raw))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if m := beginRe.FindStringSubmatch(line); m != nil {
			n, err := strconv.Atoi(m[2])
			if err != nil {
				continue
			}
			frames = append(frames, CallFrame{File: m[1], Args: []*string{}, Line: n})
			continue
		}

		m := frameRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[4])
		if err != nil {
			continue
		}
		frames = append(frames, CallFrame{
			Func:       m[1],
			File:       m[3],
			ArgsString: m[2],
			Args:       parseArgs(m[2]),
			Line:       n,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return frames, nil
}

// parseArgs splits the raw argument text into ordered values. Quoted values are
// unquoted, a bare undef becomes a nil entry, and everything else is kept verbatim.
func parseArgs(s string) []*string {
	args := make([]*string, 0)
	for _, tok := range splitArgs(s) {
		args = append(args, convertArg(tok))
	}
	return args
}

// splitArgs splits s on top-level commas. Commas inside quoted values do not split,
// and a backslash escapes the following character within quotes.
func splitArgs(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var parts []string
	var cur strings.Builder
	var quote rune
	escaped := false
	for _, r := range s {
		switch {
		case escaped:
			cur.WriteRune(r)
			escaped = false
		case quote != 0 && r == '\\':
			cur.WriteRune(r)
			escaped = true
		case quote != 0:
			cur.WriteRune(r)
			if r == quote {
				quote = 0
			}
		case r == '\'' || r == '"':
			cur.WriteRune(r)
			quote = r
		case r == ',':
			parts = append(parts, strings.TrimSpace(cur.String()))
			cur.Reset()
		default:
			cur.WriteRune(r)
		}
	}
	parts = append(parts, strings.TrimSpace(cur.String()))
	return parts
}

func convertArg(tok string) *string {
	if tok == "undef" {
		return nil
	}
	if len(tok) >= 2 {
		if q := tok[0]; (q == '\'' || q == '"') && tok[len(tok)-1] == q {
			v := unescape(tok[1 : len(tok)-1])
			return &v
		}
	}
	return &tok
}

func unescape(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	var b strings.Builder
	escaped := false
	for _, r := range s {
		if escaped {
			b.WriteRune(r)
			escaped = false
			continue
		}
		if r == '\\' {
			escaped = true
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
