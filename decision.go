package docagent

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Action is the next step a model chooses in the agent loop.
type Action string

// Actions the agent loop understands.
const (
	ActionCompleteTask Action = "complete_task"
	ActionOpenPages    Action = "open_pages"
	ActionAskQuestion  Action = "ask_question"
)

// Decision is the structured reply a model gives on each agent iteration.
type Decision struct {
	// Reasoning is advisory only.
	Reasoning string         `json:"reasoning"`
	Action    Action         `json:"action"`
	Arguments map[string]any `json:"arguments"`
}

// Arg returns the string argument stored under key.
// Returns EMALFORMED if the argument is missing or not a string.
func (d *Decision) Arg(key string) (string, error) {
	v, ok := d.Arguments[key]
	if !ok {
		return "", Errorf(EMALFORMED, "action %q requires argument %q", d.Action, key)
	}
	s, ok := v.(string)
	if !ok {
		return "", Errorf(EMALFORMED, "argument %q of action %q must be a string", key, d.Action)
	}
	return s, nil
}

// URLs returns the pages an open_pages decision asks for. The url argument
// may be a single string or a list of strings.
func (d *Decision) URLs() ([]string, error) {
	v, ok := d.Arguments["url"]
	if !ok {
		return nil, Errorf(EMALFORMED, "action %q requires argument %q", d.Action, "url")
	}
	switch v := v.(type) {
	case string:
		if strings.TrimSpace(v) == "" {
			return nil, Errorf(EMALFORMED, "argument %q is empty", "url")
		}
		return []string{v}, nil
	case []any:
		urls := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok || strings.TrimSpace(s) == "" {
				return nil, Errorf(EMALFORMED, "argument %q must hold non-empty strings", "url")
			}
			urls = append(urls, s)
		}
		if len(urls) == 0 {
			return nil, Errorf(EMALFORMED, "argument %q is empty", "url")
		}
		return urls, nil
	default:
		return nil, Errorf(EMALFORMED, "argument %q must be a string or a list of strings", "url")
	}
}

// ExtractJSON returns the first balanced JSON object or array in text.
// Brackets are matched positionally, without regard to string literals.
//
// Returns ENOJSON if text holds no bracket, EUNBALANCED on a mismatched
// closing bracket and EINCOMPLETE if text ends before the structure closes.
func ExtractJSON(text string) (string, error) {
	start := strings.IndexAny(text, "{[")
	if start < 0 {
		return "", Errorf(ENOJSON, "no JSON object or array found")
	}

	var stack []byte
	for i := start; i < len(text); i++ {
		switch c := text[i]; c {
		case '{', '[':
			stack = append(stack, c)
		case '}', ']':
			if len(stack) == 0 || stack[len(stack)-1] != openerFor(c) {
				return "", Errorf(EUNBALANCED, "unexpected %q at offset %d", c, i)
			}
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				return text[start : i+1], nil
			}
		}
	}

	return "", Errorf(EINCOMPLETE, "JSON starting at offset %d is not closed", start)
}

func openerFor(c byte) byte {
	if c == '}' {
		return '{'
	}
	return '['
}

// ParseDecision extracts and decodes a Decision from free-form model output.
// Output that fails strict decoding is repaired with RepairAnswer and
// a lenient string pass before a second attempt.
//
// Returns the ExtractJSON error codes, or EMALFORMED if decoding fails
// or the decision names no action.
func ParseDecision(text string) (*Decision, error) {
	raw, err := ExtractJSON(text)
	if err != nil {
		return nil, err
	}

	var d Decision
	if err := json.Unmarshal([]byte(raw), &d); err != nil {
		d = Decision{}
		repaired := relaxJSON(RepairAnswer(raw))
		if err := json.Unmarshal([]byte(repaired), &d); err != nil {
			return nil, Errorf(EMALFORMED, "decoding decision: %v", err)
		}
	}

	if d.Action == "" {
		return nil, Errorf(EMALFORMED, "decision has no action")
	}
	return &d, nil
}

const answerMarker = `"answer": "`

// answerEnd matches a closing quote followed by a line holding only a brace.
var answerEnd = regexp.MustCompile(`"[ \t]*\r?\n[ \t]*}`)

// RepairAnswer escapes raw double quotes and line breaks inside the value
// of the "answer" field so that code pasted by a model stays parseable.
// The value must be the last field before a closing brace on its own line;
// any other shape leaves raw untouched.
func RepairAnswer(raw string) string {
	idx := strings.Index(raw, answerMarker)
	if idx < 0 {
		return raw
	}
	valStart := idx + len(answerMarker)

	matches := answerEnd.FindAllStringIndex(raw[valStart:], -1)
	if len(matches) == 0 {
		return raw
	}
	valEnd := valStart + matches[len(matches)-1][0]

	var sb strings.Builder
	sb.Grow(len(raw) + 16)
	sb.WriteString(raw[:valStart])

	value := raw[valStart:valEnd]
	for i := 0; i < len(value); i++ {
		switch c := value[i]; c {
		case '\\':
			sb.WriteByte(c)
			if i+1 < len(value) {
				i++
				sb.WriteByte(value[i])
			}
		case '"':
			sb.WriteString(`\"`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			sb.WriteByte(c)
		}
	}

	sb.WriteString(raw[valEnd:])
	return sb.String()
}

// relaxJSON escapes control characters inside string literals and drops
// trailing commas before a closing bracket.
func relaxJSON(raw string) string {
	var sb strings.Builder
	sb.Grow(len(raw))

	inString := false
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if inString {
			switch {
			case c == '\\':
				sb.WriteByte(c)
				if i+1 < len(raw) {
					i++
					sb.WriteByte(raw[i])
				}
			case c == '"':
				inString = false
				sb.WriteByte(c)
			case c == '\n':
				sb.WriteString(`\n`)
			case c == '\r':
				sb.WriteString(`\r`)
			case c == '\t':
				sb.WriteString(`\t`)
			case c < 0x20:
				// Other control characters carry no meaning in model output.
			default:
				sb.WriteByte(c)
			}
			continue
		}

		switch c {
		case '"':
			inString = true
			sb.WriteByte(c)
		case ',':
			j := i + 1
			for j < len(raw) && isJSONSpace(raw[j]) {
				j++
			}
			if j < len(raw) && (raw[j] == '}' || raw[j] == ']') {
				continue
			}
			sb.WriteByte(c)
		default:
			sb.WriteByte(c)
		}
	}

	return sb.String()
}

func isJSONSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
