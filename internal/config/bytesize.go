package config

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
)

// ByteSize is a size in bytes. It is decoded from integers or from human readable sizes such
// as "50mb" or "10m", where the units are binary (1mb = 1024 * 1024 bytes).
type ByteSize int64

func (b ByteSize) String() string {
	if b < 0 {
		return fmt.Sprintf("%d B", int64(b))
	}
	return humanize.IBytes(uint64(b))
}

func (b ByteSize) Bytes() int64 {
	return int64(b)
}

var binaryUnits = []struct {
	suffix string
	binary string
}{
	{"kb", "kib"},
	{"mb", "mib"},
	{"gb", "gib"},
	{"tb", "tib"},
	{"k", "ki"},
	{"m", "mi"},
	{"g", "gi"},
	{"t", "ti"},
}

// ParseByteSize parses a human readable size. Unit suffixes are case insensitive.
func ParseByteSize(s string) (ByteSize, error) {
	value := strings.ToLower(strings.TrimSpace(s))
	if value == "" {
		return 0, fmt.Errorf("empty values are not allowed for sizes")
	}
	for _, unit := range binaryUnits {
		if strings.HasSuffix(value, unit.suffix) {
			value = strings.TrimSuffix(value, unit.suffix) + unit.binary
			break
		}
	}
	size, err := humanize.ParseBytes(value)
	if err != nil {
		return 0, fmt.Errorf("cannot parse size %q: %w", s, err)
	}
	return ByteSize(size), nil
}
