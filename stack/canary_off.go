//go:build stacknocanary || stackunprotected

package stack

import (
	"strings"

	"github.com/stackguard/stackguard/stack/arena"
)

// canaries is compiled out: no metadata words, no in-buffer sentinels,
// and no region overhead.
type canaries struct{}

func canaryPrefix() int { return 0 }

func regionBytes(capacity int) int { return capacity * itemSize }

func (canaries) arm()   {}
func (canaries) reset() {}

func (canaries) seal(*arena.Region, int) {}

func (canaries) check(*Stack) Violations { return 0 }

func (canaries) emptyCheck() Violations { return 0 }

func (canaries) snapshot([]byte) {}

func (canaries) describe(*strings.Builder, *Stack, Violations, string) {}
