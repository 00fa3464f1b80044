package salenumber

import (
	"regexp"
	"strconv"
	"strings"
	"testing"
	"time"
)

var pattern = regexp.MustCompile(`^SALE-\d{13,}-\d{1,4}$`)

func TestGenerateFormat(t *testing.T) {
	for i := 0; i < 100; i++ {
		n := Generate()
		if !pattern.MatchString(n) {
			t.Fatalf("sale number %q does not match expected format", n)
		}

		parts := strings.Split(n, "-")
		millis, err := strconv.ParseInt(parts[1], 10, 64)
		if err != nil {
			t.Fatalf("timestamp segment not numeric: %v", err)
		}

		now := time.Now().UnixMilli()
		if millis < now-1000 || millis > now+1000 {
			t.Errorf("timestamp segment %d too far from now %d", millis, now)
		}

		suffix, err := strconv.Atoi(parts[2])
		if err != nil || suffix < 0 || suffix >= 10000 {
			t.Errorf("suffix %q out of range", parts[2])
		}
	}
}
