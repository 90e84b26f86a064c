// Package metadata signs generated text artifacts with a trailing comment
// block carrying a content hash, so edits made after generation are detectable.
package metadata

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

const (
	// TagStart is the start of the metadata block.
	TagStart = "<!-- METADATA_START"
	// TagEnd is the end of the metadata block.
	TagEnd = "METADATA_END -->"
)

// Metadata verification errors.
var (
	ErrNoMetadataBlock = errors.New("no metadata block found")
	ErrNoHashFound     = errors.New("no hash found in metadata")
	ErrHashMismatch    = errors.New("hash mismatch")
)

// Metadata describes the run that produced a signed artifact.
type Metadata struct {
	LastModify time.Time
	RunID      string
	Source     string
	Hash       string
}

var metadataRegex = regexp.MustCompile(`(?s)\n*<!--\s*METADATA_START\s*\n(.*?)\n\s*METADATA_END\s*-->\n*`)

// Extract removes the metadata block from content and returns both the
// metadata (nil when absent) and the cleaned content that is hashed.
func Extract(content string) (*Metadata, string) {
	match := metadataRegex.FindStringSubmatch(content)
	clean := strings.TrimRight(metadataRegex.ReplaceAllString(content, ""), "\n")

	if len(match) < 2 {
		return nil, clean
	}

	meta := &Metadata{}

	for line := range strings.SplitSeq(match[1], "\n") {
		key, val, ok := strings.Cut(strings.TrimSpace(line), ":")
		if !ok {
			continue
		}

		val = strings.TrimSpace(val)

		switch strings.TrimSpace(key) {
		case "LAST_MODIFY":
			if t, err := time.Parse(time.RFC3339, val); err == nil {
				meta.LastModify = t
			}
		case "RUN_ID":
			meta.RunID = val
		case "SOURCE":
			meta.Source = val
		case "HASH":
			meta.Hash = val
		}
	}

	return meta, clean
}

// CalculateHash computes the SHA-256 of content with any metadata block removed.
func CalculateHash(content string) string {
	_, clean := Extract(content)
	hash := sha256.Sum256([]byte(clean))

	return hex.EncodeToString(hash[:])
}

// Sign replaces any existing block with a fresh one for meta. Hash is always
// recomputed; a zero LastModify becomes the current time.
func Sign(content string, meta Metadata) string {
	_, clean := Extract(content)

	if meta.LastModify.IsZero() {
		meta.LastModify = time.Now()
	}

	var b strings.Builder

	b.WriteString(clean)
	b.WriteString("\n\n")
	b.WriteString(TagStart + "\n")

	if meta.RunID != "" {
		fmt.Fprintf(&b, "RUN_ID: %s\n", meta.RunID)
	}

	if meta.Source != "" {
		fmt.Fprintf(&b, "SOURCE: %s\n", meta.Source)
	}

	fmt.Fprintf(&b, "LAST_MODIFY: %s\n", meta.LastModify.UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, "HASH: %s\n", CalculateHash(clean))
	b.WriteString(TagEnd + "\n")

	return b.String()
}

// Verify checks if the content matches the hash in its metadata.
func Verify(content string) (bool, error) {
	meta, clean := Extract(content)
	if meta == nil {
		return false, ErrNoMetadataBlock
	}

	if meta.Hash == "" {
		return false, ErrNoHashFound
	}

	calculated := CalculateHash(clean)
	if calculated != meta.Hash {
		return false, fmt.Errorf("%w: expected %s, got %s", ErrHashMismatch, meta.Hash, calculated)
	}

	return true, nil
}
