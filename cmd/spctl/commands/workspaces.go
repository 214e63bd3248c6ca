package commands

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stackplane-io/spapi/pkg/spapi"
)

// NewWorkspacesCommand creates the workspaces command group.
func NewWorkspacesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "workspaces",
		Aliases: []string{"workspace", "ws"},
		Short:   "Manage workspaces",
		Long:    "List, create, lock, and unlock Stackplane workspaces",
	}

	cmd.AddCommand(newWorkspacesListCommand())
	cmd.AddCommand(newWorkspacesGetCommand())
	cmd.AddCommand(newWorkspacesCreateCommand())
	cmd.AddCommand(newWorkspacesDeleteCommand())
	cmd.AddCommand(newWorkspacesLockCommand())
	cmd.AddCommand(newWorkspacesUnlockCommand())

	return cmd
}

func newWorkspacesListCommand() *cobra.Command {
	var (
		organization string
		search       string
		allPages     bool
		pageSize     int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List workspaces",
		Long:  "List all workspaces in an organization",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd)
			if err != nil {
				return err
			}

			ctx := cmd.Context()

			params := spapi.NewQueryParams().WithPageSize(pageSize)
			if search != "" {
				params.WithSearch(search)
			}

			var workspaces []spapi.Workspace

			if allPages {
				workspaces, err = client.Workspaces().ListAll(ctx, organization, params)
			} else {
				var page *spapi.ListResponse[spapi.Workspace]

				page, err = client.Workspaces().List(ctx, organization, params)
				if page != nil {
					workspaces = page.Data
				}
			}

			if err != nil {
				return fmt.Errorf("failed to list workspaces: %w", err)
			}

			return outputWorkspaces(workspaces)
		},
	}

	cmd.Flags().StringVarP(&organization, "org", "o", "", "organization name (required)")
	cmd.Flags().StringVar(&search, "search", "", "filter workspaces by name")
	cmd.Flags().BoolVar(&allPages, "all", false, "fetch all pages")
	cmd.Flags().IntVar(&pageSize, "page-size", spapi.DefaultPageSize, "results per page")
	_ = cmd.MarkFlagRequired("org")

	return cmd
}

func outputWorkspaces(workspaces []spapi.Workspace) error {
	output := viper.GetString("output")
	switch output {
	case OutputFormatJSON:
		return StandardJSONRenderer(workspaces)
	case OutputFormatYAML:
		return StandardYAMLRenderer(workspaces)
	default:
		if len(workspaces) == 0 {
			_, _ = os.Stdout.WriteString("No workspaces found\n")

			return nil
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.Header("Name", "ID", "Locked", "Auto-Apply", "Updated")

		for _, workspace := range workspaces {
			locked := "no"
			if workspace.Attributes.Locked {
				locked = "yes"
			}

			autoApply := "no"
			if workspace.Attributes.AutoApply {
				autoApply = "yes"
			}

			_ = table.Append(workspace.Attributes.Name, workspace.ID, locked, autoApply,
				workspace.Attributes.UpdatedAt.Format("2006-01-02"))
		}

		_ = table.Render()

		return nil
	}
}

func newWorkspacesGetCommand() *cobra.Command {
	var organization string

	cmd := &cobra.Command{
		Use:   "get WORKSPACE_ID_OR_NAME",
		Short: "Get workspace details",
		Long:  "Display workspace details by ID, or by name when --org is given",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd)
			if err != nil {
				return err
			}

			var workspace *spapi.Workspace
			if organization != "" {
				workspace, err = client.Workspaces().GetByName(cmd.Context(), organization, args[0])
			} else {
				workspace, err = client.Workspaces().Get(cmd.Context(), args[0])
			}

			if err != nil {
				return fmt.Errorf("failed to get workspace: %w", err)
			}

			return outputWorkspace(workspace)
		},
	}

	cmd.Flags().StringVarP(&organization, "org", "o", "", "organization name (resolve by name)")

	return cmd
}

func outputWorkspace(workspace *spapi.Workspace) error {
	output := viper.GetString("output")
	switch output {
	case OutputFormatJSON:
		return StandardJSONRenderer(workspace)
	case OutputFormatYAML:
		return StandardYAMLRenderer(workspace)
	default:
		table := tablewriter.NewWriter(os.Stdout)
		table.Header("Property", "Value")
		_ = table.Append("Name", workspace.Attributes.Name)
		_ = table.Append("ID", workspace.ID)
		_ = table.Append("Description", workspace.Attributes.Description)
		_ = table.Append("Locked", fmt.Sprintf("%t", workspace.Attributes.Locked))
		_ = table.Append("Auto-Apply", fmt.Sprintf("%t", workspace.Attributes.AutoApply))
		_ = table.Append("Execution Mode", workspace.Attributes.ExecutionMode)
		_ = table.Append("Stack Version", workspace.Attributes.StackVersion)
		_ = table.Append("Working Directory", workspace.Attributes.WorkingDirectory)
		_ = table.Append("Created", workspace.Attributes.CreatedAt.Format("2006-01-02 15:04:05"))
		_ = table.Render()

		return nil
	}
}

func newWorkspacesCreateCommand() *cobra.Command {
	var (
		organization string
		description  string
		projectID    string
		autoApply    bool
	)

	cmd := &cobra.Command{
		Use:   "create WORKSPACE_NAME",
		Short: "Create a workspace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd)
			if err != nil {
				return err
			}

			request := &spapi.WorkspaceCreateRequest{
				Name:        args[0],
				Description: description,
			}

			if cmd.Flags().Changed("auto-apply") {
				request.AutoApply = &autoApply
			}

			if projectID != "" {
				request.ProjectID = &projectID
			}

			workspace, err := client.Workspaces().Create(cmd.Context(), organization, request)
			if err != nil {
				return fmt.Errorf("failed to create workspace: %w", err)
			}

			fmt.Printf("Created workspace %s (%s)\n", workspace.Attributes.Name, workspace.ID)

			return nil
		},
	}

	cmd.Flags().StringVarP(&organization, "org", "o", "", "organization name (required)")
	cmd.Flags().StringVar(&description, "description", "", "workspace description")
	cmd.Flags().StringVar(&projectID, "project", "", "project ID to place the workspace in")
	cmd.Flags().BoolVar(&autoApply, "auto-apply", false, "automatically apply successful plans")
	_ = cmd.MarkFlagRequired("org")

	return cmd
}

func newWorkspacesDeleteCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete WORKSPACE_ID",
		Short: "Delete a workspace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				fmt.Printf("Really delete workspace '%s'? (y/N): ", args[0])

				var response string

				_, _ = fmt.Scanln(&response)
				if response != "y" && response != "Y" {
					fmt.Println("Cancelled")

					return nil
				}
			}

			client, err := CreateClient(cmd)
			if err != nil {
				return err
			}

			if err := client.Workspaces().Delete(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("failed to delete workspace: %w", err)
			}

			fmt.Printf("Deleted workspace %s\n", args[0])

			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "delete without confirmation")

	return cmd
}

func newWorkspacesLockCommand() *cobra.Command {
	var reason string

	cmd := &cobra.Command{
		Use:   "lock WORKSPACE_ID",
		Short: "Lock a workspace",
		Long:  "Lock a workspace to prevent new runs from starting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd)
			if err != nil {
				return err
			}

			workspace, err := client.Workspaces().Lock(cmd.Context(), args[0], &spapi.WorkspaceLockRequest{
				Reason: reason,
			})
			if err != nil {
				return fmt.Errorf("failed to lock workspace: %w", err)
			}

			fmt.Printf("Locked workspace %s\n", workspace.Attributes.Name)

			return nil
		},
	}

	cmd.Flags().StringVar(&reason, "reason", "", "reason for locking")

	return cmd
}

func newWorkspacesUnlockCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unlock WORKSPACE_ID",
		Short: "Unlock a workspace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd)
			if err != nil {
				return err
			}

			workspace, err := client.Workspaces().Unlock(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to unlock workspace: %w", err)
			}

			fmt.Printf("Unlocked workspace %s\n", workspace.Attributes.Name)

			return nil
		},
	}
}
