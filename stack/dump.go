package stack

import (
	"fmt"
	"strings"
)

const dumpRule = "----------------------------------------------"

func passFail(ok bool) string {
	if ok {
		return "ok"
	}
	return "FAIL"
}

func overall(v Violations) string {
	if v == 0 {
		return "ok"
	}
	return "FAIL (" + v.String() + ")"
}

// Dump renders a full diagnostic report to the configured sink and
// flushes it. It is read-only and safe on a corrupted container; every
// operation calls it automatically when a pre- or post-verification
// fails, and callers may invoke it directly at any time.
func (s *Stack) Dump() {
	var b strings.Builder

	if s.region == nil {
		v := s.verifyEmpty()
		fmt.Fprintf(&b, "%s\n", dumpRule)
		fmt.Fprintf(&b, " empty stack: %s\n", overall(v))
		fmt.Fprintf(&b, " size:     %10d %s\n", s.size, passFail(v&BadSize == 0))
		fmt.Fprintf(&b, " capacity: %10d %s\n", s.capacity, passFail(v&BadCapacity == 0))
		fmt.Fprintf(&b, " address:  <nil>\n")
		fmt.Fprintf(&b, "%s\n", dumpRule)
	} else {
		v := s.Verify()
		base := uint64(s.region.Base())
		fmt.Fprintf(&b, "%s\n", dumpRule)
		fmt.Fprintf(&b, " stack: %s\n", overall(v))
		fmt.Fprintf(&b, " size:     %10d %s\n", s.size, passFail(v&BadSize == 0))
		fmt.Fprintf(&b, " capacity: %10d %s\n", s.capacity, passFail(v&BadCapacity == 0))
		fmt.Fprintf(&b, " address start: 0x%x\n", base)
		fmt.Fprintf(&b, " address   end: 0x%x\n", base+uint64(s.region.Len()))
		fmt.Fprintf(&b, "%s\n", dumpRule)

		s.digest.describe(&b, s, v, dumpRule)
		s.canaries.describe(&b, s, v, dumpRule)

		s.describeSlots(&b, v)
	}

	diag.Block(b.String())
	_ = diag.Flush()
}

// describeSlots lists every slot across the full capacity, distinguishing
// the exact poison pattern from real stored values. Skipped when the
// capacity no longer describes the buffer.
func (s *Stack) describeSlots(b *strings.Builder, v Violations) {
	if v&BadCapacity != 0 || len(s.items) != s.capacity {
		fmt.Fprintf(b, " slots: unreadable (capacity not trusted)\n")
		fmt.Fprintf(b, "%s\n", dumpRule)
		return
	}
	for i, it := range s.items {
		if it == Poison {
			fmt.Fprintf(b, "| 0x%04x stack[%7d] = %18s |\n", i*itemSize, i, "poison")
		} else {
			fmt.Fprintf(b, "| 0x%04x stack[%7d] = %18d |\n", i*itemSize, i, it)
		}
	}
	fmt.Fprintf(b, "%s\n", dumpRule)
}
