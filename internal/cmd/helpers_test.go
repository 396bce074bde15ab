package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func newBufferedCommand() (*cobra.Command, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	cmd := &cobra.Command{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	return cmd, buf
}

func TestPrintJSONIndented(t *testing.T) {
	flags = rootFlags{Output: "json"}
	cmd, buf := newBufferedCommand()

	if err := printJSON(cmd, map[string]any{"id": 1}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "\n  \"id\": 1\n") {
		t.Errorf("expected indented JSON, got %q", buf.String())
	}
}

func TestPrintJSONCompact(t *testing.T) {
	flags = rootFlags{Output: "json", Compact: true}
	cmd, buf := newBufferedCommand()

	if err := printJSON(cmd, map[string]any{"id": 1}); err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(buf.String()) != `{"id":1}` {
		t.Errorf("expected compact JSON, got %q", buf.String())
	}
}

func TestPrintJSONWithFilter(t *testing.T) {
	flags = rootFlags{Output: "json", JQ: ".items[0].title"}
	cmd, buf := newBufferedCommand()

	payload := map[string]any{
		"items": []map[string]any{{"title": "Classic Tee"}, {"title": "Winter Jacket"}},
	}
	if err := printJSON(cmd, payload); err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(buf.String()) != `"Classic Tee"` {
		t.Errorf("filtered output = %q", buf.String())
	}
}

func TestPrintJSONInvalidFilter(t *testing.T) {
	flags = rootFlags{Output: "json", JQ: ".items["}
	cmd, _ := newBufferedCommand()

	if err := printJSON(cmd, map[string]any{}); err == nil {
		t.Error("expected error for invalid filter expression")
	}
}

func TestConfirmActionYes(t *testing.T) {
	flags = rootFlags{Yes: true}
	cmd, _ := newBufferedCommand()

	if err := confirmAction(cmd, "Delete?"); err != nil {
		t.Errorf("expected --yes to skip confirmation, got %v", err)
	}
}

func TestConfirmActionNoInput(t *testing.T) {
	flags = rootFlags{NoInput: true}
	cmd, _ := newBufferedCommand()

	if err := confirmAction(cmd, "Delete?"); err == nil {
		t.Error("expected refusal in non-interactive mode")
	}
}

func TestConfirmActionPrompt(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "yes", input: "y\n"},
		{name: "yes word", input: "yes\n"},
		{name: "no", input: "n\n", wantErr: true},
		{name: "empty defaults to no", input: "\n", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flags = rootFlags{}
			cmd, _ := newBufferedCommand()
			cmd.SetIn(strings.NewReader(tt.input))

			err := confirmAction(cmd, "Delete?")
			if tt.wantErr && err == nil {
				t.Error("expected refusal")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestRequestTries(t *testing.T) {
	flags = rootFlags{}
	if got := requestTries(); got != 0 {
		t.Errorf("default tries = %d, want 0", got)
	}

	flags = rootFlags{Retries: 5, RetriesSet: true}
	if got := requestTries(); got != 5 {
		t.Errorf("tries = %d, want 5", got)
	}
}
