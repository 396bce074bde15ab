package debug

import (
	"context"
	"testing"
)

func TestAttach(t *testing.T) {
	ctx := context.Background()
	if Enabled(ctx) {
		t.Error("debug should default to off")
	}
	if !Enabled(Attach(ctx, true)) {
		t.Error("debug should be on after Attach(true)")
	}
	if Enabled(Attach(ctx, false)) {
		t.Error("debug should stay off after Attach(false)")
	}
}
