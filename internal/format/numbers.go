package format

import (
	"fmt"
	"strings"
)

// FormatNumberString inserts a comma every three digits of a decimal
// string, keeping a leading minus sign in place.
func FormatNumberString(s string) string {
	return GroupDigits(s, 3, ',')
}

// GroupDigits inserts sep every size digits, counting from the right.
// A leading '-' is preserved. Non-positive sizes return s unchanged.
func GroupDigits(s string, size int, sep byte) string {
	if size <= 0 {
		return s
	}
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	if len(s) <= size {
		return sign + s
	}
	var sb strings.Builder
	sb.Grow(len(sign) + len(s) + len(s)/size)
	sb.WriteString(sign)
	head := len(s) % size
	if head == 0 {
		head = size
	}
	sb.WriteString(s[:head])
	for i := head; i < len(s); i += size {
		sb.WriteByte(sep)
		sb.WriteString(s[i : i+size])
	}
	return sb.String()
}

// TruncateDigits shortens a long digit string to its first and last keep
// digits around an ellipsis. The sign is kept and excluded from the count.
func TruncateDigits(s string, keep int) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	if keep <= 0 || len(s) <= 2*keep {
		return sign + s
	}
	return sign + s[:keep] + "..." + s[len(s)-keep:]
}

// FormatBytes renders a byte count with binary units.
func FormatBytes(b uint64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := uint64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(b)/float64(div), "KMGTPE"[exp])
}
