package commands_test

import (
	"testing"

	"github.com/stackplane-io/spapi/cmd/spctl/commands"
	"github.com/stretchr/testify/assert"
)

func TestNewRunsCommand(t *testing.T) {
	t.Parallel()

	cmd := commands.NewRunsCommand()
	assert.Equal(t, "runs", cmd.Use)
	assert.Equal(t, []string{"run"}, cmd.Aliases)
	assert.Equal(t, "Manage runs", cmd.Short)

	subcommands := cmd.Commands()
	assert.Len(t, subcommands, 6)

	commandNames := make([]string, 0, len(subcommands))
	for _, subcmd := range subcommands {
		commandNames = append(commandNames, subcmd.Name())
	}

	assert.Contains(t, commandNames, "list")
	assert.Contains(t, commandNames, "get")
	assert.Contains(t, commandNames, "create")
	assert.Contains(t, commandNames, "apply")
	assert.Contains(t, commandNames, "discard")
	assert.Contains(t, commandNames, "cancel")
}

func TestRunsListCommand(t *testing.T) {
	t.Parallel()

	root := commands.NewRunsCommand()
	cmd := findSubcommand(root, "list")
	assert.Equal(t, "list", cmd.Use)
	assert.NotNil(t, cmd.RunE)

	assert.NotNil(t, cmd.Flags().Lookup("workspace"))
	assert.NotNil(t, cmd.Flags().Lookup("all"))
	assert.NotNil(t, cmd.Flags().Lookup("page-size"))
}

func TestRunsCreateCommand(t *testing.T) {
	t.Parallel()

	root := commands.NewRunsCommand()
	cmd := findSubcommand(root, "create")
	assert.Equal(t, "create", cmd.Use)
	assert.NotNil(t, cmd.RunE)

	assert.NotNil(t, cmd.Flags().Lookup("workspace"))
	assert.NotNil(t, cmd.Flags().Lookup("message"))
	assert.NotNil(t, cmd.Flags().Lookup("destroy"))

	destroyFlag := cmd.Flags().Lookup("destroy")
	assert.Equal(t, "false", destroyFlag.DefValue)
}

func TestRunsActionCommands(t *testing.T) {
	t.Parallel()

	root := commands.NewRunsCommand()

	tests := []struct {
		name string
		use  string
	}{
		{name: "apply", use: "apply RUN_ID"},
		{name: "discard", use: "discard RUN_ID"},
		{name: "cancel", use: "cancel RUN_ID"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cmd := findSubcommand(root, tt.name)
			assert.Equal(t, tt.use, cmd.Use)
			assert.NotNil(t, cmd.RunE)
			assert.NotNil(t, cmd.Args)
			assert.NotNil(t, cmd.Flags().Lookup("comment"))
		})
	}
}
