package cmd

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
)

// executeCmd is a helper to execute a cobra command in tests
func executeCmd(cmd *cobra.Command, args ...string) (stdout string, stderr string, err error) {
	bufOut := new(bytes.Buffer)
	bufErr := new(bytes.Buffer)

	cmd.SetOut(bufOut)
	cmd.SetErr(bufErr)
	cmd.SetArgs(args)

	err = cmd.Execute()
	return bufOut.String(), bufErr.String(), err
}

func TestRootCmd_Definition(t *testing.T) {
	if rootCmd == nil {
		t.Fatal("rootCmd should not be nil")
	}
	if rootCmd.Use != "pomotui" {
		t.Errorf("rootCmd.Use = %q, want %q", rootCmd.Use, "pomotui")
	}
}

func TestRootCmd_Help(t *testing.T) {
	stdout, _, err := executeCmd(rootCmd, "--help")
	if err != nil {
		t.Fatalf("help command failed: %v", err)
	}

	if !bytes.Contains([]byte(stdout), []byte("pomotui")) && !bytes.Contains([]byte(stdout), []byte("Pomotui")) {
		t.Error("help output should mention the command name")
	}
}

func TestRootCmd_Flags(t *testing.T) {
	if rootCmd.PersistentFlags().Lookup("db") == nil {
		t.Error("--db flag should be registered")
	}
	if rootCmd.PersistentFlags().Lookup("json") == nil {
		t.Error("--json flag should be registered")
	}
}

func TestRootCmd_Subcommands(t *testing.T) {
	want := []string{"add", "list", "complete", "delete", "start", "stats", "export", "config", "mcp"}

	registered := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		registered[c.Name()] = true
	}

	for _, name := range want {
		if !registered[name] {
			t.Errorf("subcommand %q is not registered", name)
		}
	}
}
