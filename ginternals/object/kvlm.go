package object

import (
	"bytes"
	"fmt"
	"strings"
)

// kvlm implements the Key-Value List with Message format used by both
// commit and tag objects: an ordered list of "key value" lines, where
// a value may span multiple lines (continuation lines start with a
// single space), followed by a blank line and a free-form message.
//
// Keys may repeat (a commit can have several "parent" lines), so
// insertion order and duplicates are preserved.
type kvlm struct {
	entries []kvlmEntry
	message string
}

type kvlmEntry struct {
	key    string
	values []string
}

// get returns the first value associated with key, if any
func (l *kvlm) get(key string) (string, bool) {
	for _, e := range l.entries {
		if e.key == key {
			if len(e.values) == 0 {
				return "", false
			}
			return e.values[0], true
		}
	}
	return "", false
}

// getAll returns every value associated with key, in the order they
// were parsed
func (l *kvlm) getAll(key string) []string {
	for _, e := range l.entries {
		if e.key == key {
			return e.values
		}
	}
	return nil
}

// add appends a value to key, creating the entry if it doesn't exist
// yet. Order of first appearance is preserved.
func (l *kvlm) add(key, value string) {
	for i := range l.entries {
		if l.entries[i].key == key {
			l.entries[i].values = append(l.entries[i].values, value)
			return
		}
	}
	l.entries = append(l.entries, kvlmEntry{key: key, values: []string{value}})
}

// parseKVLM decodes a KVLM envelope.
//
// It walks the buffer line by line using a cursor, rather than
// recursing like the reference implementation this format comes from,
// since a commit/tag with enough parents or a long enough message
// would otherwise blow the stack.
func parseKVLM(raw []byte) (*kvlm, error) {
	l := &kvlm{}
	cursor := 0
	for {
		nlRel := bytes.IndexByte(raw[cursor:], '\n')
		if nlRel < 0 {
			return nil, fmt.Errorf("kvlm: missing blank line before message")
		}
		nl := cursor + nlRel
		if nl == cursor {
			// blank line: the rest of the buffer is the free-form message
			l.message = string(raw[cursor+1:])
			return l, nil
		}

		spRel := bytes.IndexByte(raw[cursor:nl], ' ')
		if spRel < 0 {
			return nil, fmt.Errorf("kvlm: line at offset %d has no key/value separator", cursor)
		}
		sp := cursor + spRel
		key := string(raw[cursor:sp])

		// a value continues onto the next line as long as that line
		// starts with a single space, which gets folded back into a
		// newline
		end := nl
		for end+1 < len(raw) && raw[end+1] == ' ' {
			nextRel := bytes.IndexByte(raw[end+1:], '\n')
			if nextRel < 0 {
				return nil, fmt.Errorf("kvlm: unterminated value for %q", key)
			}
			end += 1 + nextRel
		}
		value := strings.ReplaceAll(string(raw[sp+1:end]), "\n ", "\n")
		l.add(key, value)

		cursor = end + 1
	}
}

// serialize encodes the kvlm back to its on-disk representation
func (l *kvlm) serialize() []byte {
	buf := new(bytes.Buffer)
	for _, e := range l.entries {
		for _, v := range e.values {
			buf.WriteString(e.key)
			buf.WriteByte(' ')
			buf.WriteString(strings.ReplaceAll(v, "\n", "\n "))
			buf.WriteByte('\n')
		}
	}
	buf.WriteByte('\n')
	buf.WriteString(l.message)
	return buf.Bytes()
}
