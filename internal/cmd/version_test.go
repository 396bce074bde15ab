package cmd

import (
	"context"
	"strings"
	"testing"
)

func TestVersionCommand(t *testing.T) {
	setupTestEnvWithHandler(t, newRouteHandler())

	output := captureStdout(t, func() {
		if err := Execute(context.Background(), []string{"version"}); err != nil {
			t.Errorf("version failed: %v", err)
		}
	})

	if !strings.Contains(output, "shopctl version dev") {
		t.Errorf("output = %q, want version line", output)
	}
}
