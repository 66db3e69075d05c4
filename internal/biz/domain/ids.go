package domain

import (
	"fmt"
	"strconv"
)

// Snowflake is an opaque 64-bit platform ID (guild, channel, message, user, role)
type Snowflake uint64

// ParseSnowflake parses the decimal string form used by the platform API
func ParseSnowflake(s string) (Snowflake, error) {
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q: %w", s, err)
	}
	return Snowflake(v), nil
}

// String returns the decimal form, or "" for the zero ID
func (s Snowflake) String() string {
	if s == 0 {
		return ""
	}
	return strconv.FormatUint(uint64(s), 10)
}

// IsZero reports whether the ID is unset
func (s Snowflake) IsZero() bool {
	return s == 0
}
