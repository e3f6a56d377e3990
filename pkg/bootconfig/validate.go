package bootconfig

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// SyntaxError describes a configuration line starting with an unknown key.
type SyntaxError struct {
	Line int
	Key  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error on line %d: key %q is not valid", e.Line, e.Key)
}

func isKnownKey(key string) bool {
	for _, k := range KnownKeys {
		if k == key {
			return true
		}
	}
	return false
}

// Validate checks that every non-comment, non-blank line of data starts with
// a known key. All offending lines are reported, as *SyntaxError values
// inside a *multierror.Error.
func Validate(data []byte) error {
	var result *multierror.Error

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for n := 1; scanner.Scan(); n++ {
		line := strings.Trim(scanner.Text(), whitespace+"\r")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key := line
		if sep := strings.IndexAny(line, whitespace); sep >= 0 {
			key = line[:sep]
		}
		if !isKnownKey(key) {
			result = multierror.Append(result, &SyntaxError{Line: n, Key: key})
		}
	}
	if err := scanner.Err(); err != nil {
		result = multierror.Append(result, err)
	}

	return result.ErrorOrNil()
}
