package badger

import (
	"encoding/binary"
	"fmt"

	"github.com/gacetalabs/gaceta/core"
)

// Key prefixes for different data types
const (
	articleRecordPrefix = "artrec"
	articleURLPrefix    = "arturl"
	articleSourcePrefix = "artsrc"
	articleIDSeq        = "artrecseq"
)

// makeArticleKey generates a key for an article by ID.
func makeArticleKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", articleRecordPrefix, id))
}

// makeURLKey generates a key for the URL uniqueness index from a URL
// fingerprint.
func makeURLKey(fingerprint core.ID) []byte {
	prefix := articleURLPrefix + ":"
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(fingerprint))
	return buf
}

// makeSourceKey generates a composite key for the source index.
// Format: prefix:source\x00id. The NUL separator keeps one source name
// from matching another source's prefix during range scans, and the
// BigEndian ID makes lexicographic iteration order equal ID order.
func makeSourceKey(source string, id core.ID) []byte {
	partial := makePartialSourceKey(source)
	buf := make([]byte, len(partial)+8)
	offset := copy(buf, partial)
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makePartialSourceKey generates a partial key for source queries.
// Format: prefix:source\x00
func makePartialSourceKey(source string) []byte {
	prefix := articleSourcePrefix + ":"
	buf := make([]byte, len(prefix)+len(source)+1)
	offset := copy(buf, prefix)
	offset += copy(buf[offset:], source)
	buf[offset] = 0x00
	return buf
}
