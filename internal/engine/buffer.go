package engine

// Buffer holds the keys typed so far in the current attempt.
type Buffer struct {
	runes []rune
}

// Append adds r to the end of the buffer.
func (b *Buffer) Append(r rune) {
	b.runes = append(b.runes, r)
}

// DeleteLast removes the last rune. It reports false when the buffer is empty.
func (b *Buffer) DeleteLast() bool {
	if len(b.runes) == 0 {
		return false
	}
	b.runes = b.runes[:len(b.runes)-1]
	return true
}

func (b *Buffer) String() string {
	return string(b.runes)
}
