package archimate

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// idNamespace seeds every derived identifier.
var idNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://specif.de/archimate"))

// deriveID returns prefix + "-" + a UUIDv5 over parts. Equal inputs always
// yield equal ids.
func deriveID(prefix string, parts ...string) string {
	return prefix + "-" + uuid.NewSHA1(idNamespace, []byte(strings.Join(parts, "\x1f"))).String()
}

// statementID derives the identifier of a statement without a source id.
func statementID(class, subject, object string) string {
	return deriveID("S", class, subject, object)
}

// nodeID derives a hierarchy node identifier from its position.
func nodeID(parent string, index int, resource string) string {
	return deriveID("N", parent, strconv.Itoa(index), resource)
}

// simpleHash is the 32-bit string hash used for short, stable salts
// (s[0]*31^(n-1) + ... + s[n-1]).
func simpleHash(s string) string {
	var h int32
	for _, r := range s {
		h = 31*h + int32(r)
	}
	return strconv.FormatUint(uint64(uint32(h)), 16)
}
