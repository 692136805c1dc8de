package idgen

import (
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Public id prefixes per resource.
const (
	PrefixDirectory   = "dir"
	PrefixMedia       = "med"
	PrefixTranslation = "tr"
	PrefixCatalogItem = "itm"
)

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0)
)

// New returns a "<prefix>_<ulid>" string. Ids minted by one process sort in creation order.
func New(prefix string) string {
	entropyMu.Lock()
	id := ulid.MustNew(ulid.Timestamp(time.Now()), entropy)
	entropyMu.Unlock()
	return prefix + "_" + strings.ToLower(id.String())
}

// IsValid reports whether value is a "<prefix>_<ulid>" id.
func IsValid(prefix, value string) bool {
	rest, ok := strings.CutPrefix(value, prefix+"_")
	if !ok {
		return false
	}
	_, err := ulid.ParseStrict(strings.ToUpper(rest))
	return err == nil
}
