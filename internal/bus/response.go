package bus

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Response is one reply line: a kind (OK, STATUS, LAST, ERR) followed by
// key=value fields. Values containing spaces are Go-quoted.
type Response struct {
	Kind   string
	Fields map[string]string
}

// Format renders r as a reply line, fields sorted by key.
func (r Response) Format() string {
	var b strings.Builder
	b.WriteString(r.Kind)

	keys := make([]string, 0, len(r.Fields))
	for k := range r.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		v := r.Fields[k]
		if v == "" || strings.ContainsAny(v, " \t\n\"=") {
			v = strconv.Quote(v)
		}
		fmt.Fprintf(&b, " %s=%s", k, v)
	}
	b.WriteByte('\n')
	return b.String()
}

// ParseResponse reads a reply line produced by Format.
func ParseResponse(line string) (Response, error) {
	line = strings.TrimRight(line, "\r\n")
	kind, rest, _ := strings.Cut(line, " ")
	if kind == "" {
		return Response{}, fmt.Errorf("empty response")
	}
	resp := Response{Kind: kind, Fields: map[string]string{}}

	for rest = strings.TrimLeft(rest, " "); rest != ""; rest = strings.TrimLeft(rest, " ") {
		key, after, ok := strings.Cut(rest, "=")
		if !ok || key == "" || strings.Contains(key, " ") {
			return Response{}, fmt.Errorf("malformed field in %q", line)
		}

		var value string
		if strings.HasPrefix(after, `"`) {
			quoted, err := strconv.QuotedPrefix(after)
			if err != nil {
				return Response{}, fmt.Errorf("malformed value for %s: %w", key, err)
			}
			value, _ = strconv.Unquote(quoted)
			rest = after[len(quoted):]
		} else {
			value, rest, _ = strings.Cut(after, " ")
		}
		resp.Fields[key] = value
	}
	return resp, nil
}
