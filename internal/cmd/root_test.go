package cmd

import (
	"context"
	"strings"
	"testing"
)

func TestRootRejectsInvalidOutput(t *testing.T) {
	setupTestEnvWithHandler(t, newRouteHandler())

	_ = captureStderr(t, func() {
		if err := Execute(context.Background(), []string{"schema", "list", "-o", "yaml"}); err == nil {
			t.Error("expected error for invalid output format")
		}
	})
}

func TestRootJSONConflictsWithTextOutput(t *testing.T) {
	setupTestEnvWithHandler(t, newRouteHandler())

	_ = captureStderr(t, func() {
		if err := Execute(context.Background(), []string{"schema", "list", "--json", "-o", "text"}); err == nil {
			t.Error("expected error for --json with --output text")
		}
	})
}

func TestRootJSONShorthand(t *testing.T) {
	setupTestEnvWithHandler(t, newRouteHandler())

	output := captureStdout(t, func() {
		if err := Execute(context.Background(), []string{"schema", "list", "--json"}); err != nil {
			t.Errorf("schema list --json failed: %v", err)
		}
	})

	if !strings.Contains(output, `"name"`) {
		t.Errorf("expected JSON output, got: %s", output)
	}
}

func TestRootJQImpliesJSONOutput(t *testing.T) {
	setupTestEnvWithHandler(t, newRouteHandler())

	output := captureStdout(t, func() {
		if err := Execute(context.Background(), []string{"schema", "list", "--jq", ".[0].name"}); err != nil {
			t.Errorf("schema list --jq failed: %v", err)
		}
	})

	if strings.TrimSpace(output) == "" {
		t.Error("expected filtered output")
	}
	if strings.Contains(output, "RESOURCE") {
		t.Errorf("expected JSON output, got table: %s", output)
	}
}

func TestRootOutputEnvDefault(t *testing.T) {
	setupTestEnvWithHandler(t, newRouteHandler())
	t.Setenv("SHOPCTL_OUTPUT", "json")

	output := captureStdout(t, func() {
		if err := Execute(context.Background(), []string{"schema", "list"}); err != nil {
			t.Errorf("schema list failed: %v", err)
		}
	})

	if !strings.Contains(output, `"name"`) {
		t.Errorf("expected JSON output from env default, got: %s", output)
	}
}

func TestRootRetriesValidation(t *testing.T) {
	setupTestEnvWithHandler(t, newRouteHandler())

	_ = captureStderr(t, func() {
		if err := Execute(context.Background(), []string{"schema", "list", "--retries", "0"}); err == nil {
			t.Error("expected error for --retries 0")
		}
	})
}

func TestRootUnknownCommand(t *testing.T) {
	setupTestEnvWithHandler(t, newRouteHandler())

	var execErr error
	_ = captureStderr(t, func() {
		execErr = Execute(context.Background(), []string{"bogus"})
	})
	if execErr == nil {
		t.Fatal("expected error for unknown command")
	}
	if ExitCode(execErr) != exitUsage {
		t.Errorf("exit code = %d, want %d", ExitCode(execErr), exitUsage)
	}
}
