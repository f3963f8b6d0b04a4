// Package ids implements the human-readable sequential identifier scheme
// shared by the three record families: a fixed three-letter prefix followed
// by a zero-padded sequence number (ENT001, REC014, DET120).
package ids

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	EntityPrefix     = "ENT"
	CollectionPrefix = "REC"
	DetailPrefix     = "DET"
)

// PrefixLen is the length of every family prefix.
const PrefixLen = 3

// Format renders prefix + seq, zero-padded to three digits. Sequences above
// 999 simply grow wider; identifiers are never reused or truncated.
func Format(prefix string, seq int) string {
	return fmt.Sprintf("%s%03d", prefix, seq)
}

// Seq parses the numeric suffix of an identifier in the given family.
func Seq(prefix, id string) (int, error) {
	if !strings.HasPrefix(id, prefix) {
		return 0, fmt.Errorf("identifier %q does not belong to family %q", id, prefix)
	}
	n, err := strconv.Atoi(id[len(prefix):])
	if err != nil {
		return 0, fmt.Errorf("identifier %q has a non-numeric suffix: %w", id, err)
	}
	return n, nil
}
