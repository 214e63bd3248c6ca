package commands_test

import (
	"testing"

	"github.com/stackplane-io/spapi/cmd/spctl/commands"
	"github.com/stretchr/testify/assert"
)

func TestNewWorkspacesCommand(t *testing.T) {
	t.Parallel()

	cmd := commands.NewWorkspacesCommand()
	assert.Equal(t, "workspaces", cmd.Use)
	assert.Equal(t, []string{"workspace", "ws"}, cmd.Aliases)
	assert.Equal(t, "Manage workspaces", cmd.Short)

	subcommands := cmd.Commands()
	assert.Len(t, subcommands, 6)

	commandNames := make([]string, 0, len(subcommands))
	for _, subcmd := range subcommands {
		commandNames = append(commandNames, subcmd.Name())
	}

	assert.Contains(t, commandNames, "list")
	assert.Contains(t, commandNames, "get")
	assert.Contains(t, commandNames, "create")
	assert.Contains(t, commandNames, "delete")
	assert.Contains(t, commandNames, "lock")
	assert.Contains(t, commandNames, "unlock")
}

func TestWorkspacesListCommand(t *testing.T) {
	t.Parallel()

	root := commands.NewWorkspacesCommand()
	cmd := findSubcommand(root, "list")
	assert.Equal(t, "list", cmd.Use)
	assert.Equal(t, "List workspaces", cmd.Short)
	assert.NotNil(t, cmd.RunE)

	assert.NotNil(t, cmd.Flags().Lookup("org"))
	assert.NotNil(t, cmd.Flags().Lookup("search"))
	assert.NotNil(t, cmd.Flags().Lookup("all"))
	assert.NotNil(t, cmd.Flags().Lookup("page-size"))

	allFlag := cmd.Flags().Lookup("all")
	assert.Equal(t, "false", allFlag.DefValue)

	pageSizeFlag := cmd.Flags().Lookup("page-size")
	assert.Equal(t, "20", pageSizeFlag.DefValue)
}

func TestWorkspacesGetCommand(t *testing.T) {
	t.Parallel()

	root := commands.NewWorkspacesCommand()
	cmd := findSubcommand(root, "get")
	assert.Equal(t, "get WORKSPACE_ID_OR_NAME", cmd.Use)
	assert.NotNil(t, cmd.RunE)
	assert.NotNil(t, cmd.Args)
	assert.NotNil(t, cmd.Flags().Lookup("org"))
}

func TestWorkspacesCreateCommand(t *testing.T) {
	t.Parallel()

	root := commands.NewWorkspacesCommand()
	cmd := findSubcommand(root, "create")
	assert.Equal(t, "create WORKSPACE_NAME", cmd.Use)
	assert.NotNil(t, cmd.RunE)

	for _, flagName := range []string{"org", "description", "project", "auto-apply"} {
		assert.NotNil(t, cmd.Flags().Lookup(flagName), "Flag %s should exist", flagName)
	}
}

func TestWorkspacesLockCommand(t *testing.T) {
	t.Parallel()

	root := commands.NewWorkspacesCommand()
	cmd := findSubcommand(root, "lock")
	assert.Equal(t, "lock WORKSPACE_ID", cmd.Use)
	assert.NotNil(t, cmd.RunE)
	assert.NotNil(t, cmd.Flags().Lookup("reason"))

	unlock := findSubcommand(root, "unlock")
	assert.Equal(t, "unlock WORKSPACE_ID", unlock.Use)
	assert.NotNil(t, unlock.RunE)
}

func TestWorkspacesDeleteCommand(t *testing.T) {
	t.Parallel()

	root := commands.NewWorkspacesCommand()
	cmd := findSubcommand(root, "delete")
	assert.Equal(t, "delete WORKSPACE_ID", cmd.Use)
	assert.NotNil(t, cmd.RunE)

	forceFlag := cmd.Flags().Lookup("force")
	assert.NotNil(t, forceFlag)
	assert.Equal(t, "false", forceFlag.DefValue)
}
