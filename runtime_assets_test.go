package reactmount

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/goliatone/go-reactmount/pkg/widget"
)

func TestRuntimeAssetsFSContainsRuntime(t *testing.T) {
	data, err := fs.ReadFile(RuntimeAssetsFS(), RuntimeFile)
	if err != nil {
		t.Fatalf("expected runtime to be readable: %v", err)
	}
	global := strings.TrimPrefix(widget.DefaultRegistry, "window.")
	if !strings.Contains(string(data), "global."+global) {
		t.Fatalf("expected runtime to define %s", widget.DefaultRegistry)
	}
}
