package main

import (
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

// executeArgs runs the given root command with args and returns any error.
// It suppresses cobra's usage/error output so test output stays clean.
func executeArgs(t *testing.T, root *cobra.Command, args ...string) error {
	t.Helper()
	root.SetOut(&strings.Builder{})
	root.SetErr(&strings.Builder{})
	root.SetArgs(args)
	_, err := root.ExecuteC()
	return err
}

// newTestRoot builds a root command tree identical to main() but with
// PersistentPreRun stubbed out so the API client is never initialised.
func newTestRoot() *cobra.Command {
	root := &cobra.Command{
		Use:          "waylog",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Skip client initialisation in tests.
		},
	}
	root.PersistentFlags().StringVar(&flagURL, "url", defaultURL, "")
	root.PersistentFlags().StringVar(&flagKey, "api-key", "", "")
	root.PersistentFlags().StringVar(&flagFmt, "format", "json", "")

	root.AddCommand(newTripCmd())
	root.AddCommand(newTagCmd())
	root.AddCommand(newCompanionCmd())
	root.AddCommand(newBackupCmd())
	return root
}

// --- trip create ---

func TestTripCreateArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr bool
	}{
		{
			name:    "requires exactly one positional arg (title)",
			args:    []string{"trip", "create"},
			wantErr: true,
		},
		{
			name:    "rejects two positional args",
			args:    []string{"trip", "create", "Lisbon", "extra"},
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			root := newTestRoot()
			err := executeArgs(t, root, tc.args...)
			if tc.wantErr && err == nil {
				t.Errorf("expected error, got nil")
			}
		})
	}
}

// TestTripCreateArgCountOnly verifies ExactArgs(1) directly without invoking Run.
func TestTripCreateArgCountOnly(t *testing.T) {
	argsValidator := cobra.ExactArgs(1)

	if err := argsValidator(nil, []string{"Japan 2026"}); err != nil {
		t.Errorf("one arg should be valid, got: %v", err)
	}
	if err := argsValidator(nil, []string{}); err == nil {
		t.Error("zero args should fail ExactArgs(1)")
	}
	if err := argsValidator(nil, []string{"a", "b"}); err == nil {
		t.Error("two args should fail ExactArgs(1)")
	}
}

// --- trip get/update/delete ---

func TestTripExactArgs1Commands(t *testing.T) {
	subcommands := []string{"get", "update", "delete"}
	for _, sub := range subcommands {
		t.Run(sub, func(t *testing.T) {
			argsValidator := cobra.ExactArgs(1)
			if err := argsValidator(nil, []string{"42"}); err != nil {
				t.Errorf("%s: one arg should be accepted: %v", sub, err)
			}
			if err := argsValidator(nil, []string{}); err == nil {
				t.Errorf("%s: zero args should be rejected", sub)
			}
		})
	}
}

// --- backup restore ---

func TestBackupRestoreArgValidation(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr bool
	}{
		{"missing file arg", []string{"backup", "restore"}, true},
		{"too many args", []string{"backup", "restore", "a.json", "b.json"}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			root := newTestRoot()
			err := executeArgs(t, root, tc.args...)
			if tc.wantErr && err == nil {
				t.Errorf("expected error, got nil")
			}
		})
	}
}

// TestBackupRestoreFlagDefaults verifies the restore flags and their defaults.
func TestBackupRestoreFlagDefaults(t *testing.T) {
	cmd := backupRestoreCmd()

	cases := []struct {
		flag string
		want string
	}{
		{"clear", "false"},
		{"skip-photos", "false"},
	}
	for _, tc := range cases {
		f := cmd.Flags().Lookup(tc.flag)
		if f == nil {
			t.Errorf("--%s flag not found", tc.flag)
			continue
		}
		if f.DefValue != tc.want {
			t.Errorf("--%s default: got %q, want %q", tc.flag, f.DefValue, tc.want)
		}
	}
}

// TestBackupCreateOutputFlag verifies --output is registered with empty default.
func TestBackupCreateOutputFlag(t *testing.T) {
	cmd := backupCreateCmd()
	f := cmd.Flags().Lookup("output")
	if f == nil {
		t.Fatal("--output flag not found on backup create")
	}
	if f.DefValue != "" {
		t.Errorf("default output: got %q, want empty", f.DefValue)
	}
}

// --- trip list flag defaults ---

func TestTripListFlagDefaults(t *testing.T) {
	cmd := tripListCmd()

	cases := []struct {
		flag string
		want string
	}{
		{"status", ""},
		{"limit", "0"},
		{"offset", "0"},
	}
	for _, tc := range cases {
		f := cmd.Flags().Lookup(tc.flag)
		if f == nil {
			t.Errorf("--%s flag not found", tc.flag)
			continue
		}
		if f.DefValue != tc.want {
			t.Errorf("--%s default: got %q, want %q", tc.flag, f.DefValue, tc.want)
		}
	}
}

// --- tag/companion create flag registration ---

func TestTagCreateFlagRegistration(t *testing.T) {
	cmd := tagCreateCmd()
	for _, name := range []string{"color", "text-color"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("--%s flag not found on tag create", name)
		}
	}
}

func TestCompanionCreateFlagRegistration(t *testing.T) {
	cmd := companionCreateCmd()
	for _, name := range []string{"email", "phone", "relationship", "notes"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("--%s flag not found on companion create", name)
		}
	}
}

// --- global format flag ---

func TestFormatFlagDefault(t *testing.T) {
	root := newTestRoot()
	f := root.PersistentFlags().Lookup("format")
	if f == nil {
		t.Fatal("--format flag not found")
	}
	if f.DefValue != "json" {
		t.Errorf("default format: got %q, want %q", f.DefValue, "json")
	}
}

// TestFormatFlagValues verifies that accepted format values are "json", "table",
// and "quiet"; these are the only strings the output functions branch on.
func TestFormatFlagValues(t *testing.T) {
	validFormats := []string{"json", "table", "quiet"}
	for _, fmt := range validFormats {
		flagFmt = fmt
		// output() must not panic for any of these values.
		captureStdout(t, func() { output(map[string]string{"k": "v"}, "id") })
	}
}
