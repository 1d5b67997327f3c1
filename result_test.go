package secagent_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/secagent"
)

func TestTruncate(t *testing.T) {
	t.Run("short text is kept", func(t *testing.T) {
		gt.Equal(t, secagent.Truncate("abc", 3), "abc")
	})

	t.Run("disabled", func(t *testing.T) {
		long := strings.Repeat("x", 100)
		gt.Equal(t, secagent.Truncate(long, 0), long)
		gt.Equal(t, secagent.Truncate(long, -1), long)
	})

	t.Run("cut with marker", func(t *testing.T) {
		gt.Equal(t, secagent.Truncate("abcdefghij", 4), "abcd\n... (truncated 6 bytes)")
	})

	t.Run("cut on rune boundary", func(t *testing.T) {
		// "é" is two bytes; a limit inside it backs off to the previous rune.
		gt.Equal(t, secagent.Truncate("aéb", 2), "a\n... (truncated 3 bytes)")
	})
}

func TestEntries(t *testing.T) {
	gt.Equal(t, secagent.ToolResultEntry("vul_vendor_product_cve", "CVE-2024-0001"),
		"System: result of tool vul_vendor_product_cve: CVE-2024-0001")
	gt.Equal(t, secagent.ToolErrorEntry(errors.New("timeout")),
		"System: error executing tool: timeout")
}
