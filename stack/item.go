package stack

// Item is the element type held by a Stack.
type Item int64

// itemSize is the width of one element slot in bytes.
const itemSize = 8

// Poison marks unused and just-vacated slots: every byte is 0x75 ('u').
// It is a diagnostic marker only. An Item that happens to equal Poison is
// a legal value and round-trips through Push and Pop like any other.
const Poison Item = 0x7575757575757575

func fillPoison(items []Item) {
	for i := range items {
		items[i] = Poison
	}
}
