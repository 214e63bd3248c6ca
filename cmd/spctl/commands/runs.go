package commands

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stackplane-io/spapi/pkg/spapi"
)

// NewRunsCommand creates the runs command group.
func NewRunsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "runs",
		Aliases: []string{"run"},
		Short:   "Manage runs",
		Long:    "List, create, apply, discard, and cancel Stackplane runs",
	}

	cmd.AddCommand(newRunsListCommand())
	cmd.AddCommand(newRunsGetCommand())
	cmd.AddCommand(newRunsCreateCommand())
	cmd.AddCommand(newRunsApplyCommand())
	cmd.AddCommand(newRunsDiscardCommand())
	cmd.AddCommand(newRunsCancelCommand())

	return cmd
}

func newRunsListCommand() *cobra.Command {
	var (
		workspaceID string
		allPages    bool
		pageSize    int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List runs",
		Long:  "List runs in a workspace, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			params := spapi.NewQueryParams().WithPageSize(pageSize).WithSort("-created-at")

			var runs []spapi.Run

			if allPages {
				runs, err = client.Runs().ListAll(ctx, workspaceID, params)
			} else {
				var page *spapi.ListResponse[spapi.Run]

				page, err = client.Runs().List(ctx, workspaceID, params)
				if page != nil {
					runs = page.Data
				}
			}

			if err != nil {
				return fmt.Errorf("failed to list runs: %w", err)
			}

			return outputRuns(runs)
		},
	}

	cmd.Flags().StringVarP(&workspaceID, "workspace", "w", "", "workspace ID (required)")
	cmd.Flags().BoolVar(&allPages, "all", false, "fetch all pages")
	cmd.Flags().IntVar(&pageSize, "page-size", spapi.DefaultPageSize, "results per page")
	_ = cmd.MarkFlagRequired("workspace")

	return cmd
}

func outputRuns(runs []spapi.Run) error {
	output := viper.GetString("output")
	switch output {
	case OutputFormatJSON:
		return StandardJSONRenderer(runs)
	case OutputFormatYAML:
		return StandardYAMLRenderer(runs)
	default:
		if len(runs) == 0 {
			_, _ = os.Stdout.WriteString("No runs found\n")

			return nil
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.Header("ID", "Status", "Message", "Changes", "Created")

		for _, run := range runs {
			message := run.Attributes.Message
			if message == "" {
				message = NotAvailable
			}

			changes := "no"
			if run.Attributes.HasChanges {
				changes = "yes"
			}

			_ = table.Append(run.ID, run.Attributes.Status, message, changes,
				run.Attributes.CreatedAt.Format("2006-01-02 15:04"))
		}

		_ = table.Render()

		return nil
	}
}

func newRunsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get RUN_ID",
		Short: "Get run details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd)
			if err != nil {
				return err
			}

			run, err := client.Runs().Get(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get run: %w", err)
			}

			output := viper.GetString("output")
			switch output {
			case OutputFormatJSON:
				return StandardJSONRenderer(run)
			case OutputFormatYAML:
				return StandardYAMLRenderer(run)
			default:
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Property", "Value")
				_ = table.Append("ID", run.ID)
				_ = table.Append("Status", run.Attributes.Status)
				_ = table.Append("Message", run.Attributes.Message)
				_ = table.Append("Destroy", fmt.Sprintf("%t", run.Attributes.IsDestroy))
				_ = table.Append("Has Changes", fmt.Sprintf("%t", run.Attributes.HasChanges))
				_ = table.Append("Created", run.Attributes.CreatedAt.Format("2006-01-02 15:04:05"))
				_ = table.Render()

				return nil
			}
		},
	}
}

func newRunsCreateCommand() *cobra.Command {
	var (
		workspaceID string
		message     string
		isDestroy   bool
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a run",
		Long:  "Start a new run in a workspace",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd)
			if err != nil {
				return err
			}

			run, err := client.Runs().Create(cmd.Context(), &spapi.RunCreateRequest{
				WorkspaceID: workspaceID,
				Message:     message,
				IsDestroy:   isDestroy,
			})
			if err != nil {
				return fmt.Errorf("failed to create run: %w", err)
			}

			fmt.Printf("Created run %s (%s)\n", run.ID, run.Attributes.Status)

			return nil
		},
	}

	cmd.Flags().StringVarP(&workspaceID, "workspace", "w", "", "workspace ID (required)")
	cmd.Flags().StringVarP(&message, "message", "m", "", "run message")
	cmd.Flags().BoolVar(&isDestroy, "destroy", false, "create a destroy run")
	_ = cmd.MarkFlagRequired("workspace")

	return cmd
}

func newRunsApplyCommand() *cobra.Command {
	var comment string

	cmd := &cobra.Command{
		Use:   "apply RUN_ID",
		Short: "Apply a run",
		Long:  "Confirm and apply a planned run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRunsActionCommand(cmd, args[0], "apply", comment)
		},
	}

	cmd.Flags().StringVar(&comment, "comment", "", "comment to record with the action")

	return cmd
}

func newRunsDiscardCommand() *cobra.Command {
	var comment string

	cmd := &cobra.Command{
		Use:   "discard RUN_ID",
		Short: "Discard a run",
		Long:  "Discard a planned run without applying it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRunsActionCommand(cmd, args[0], "discard", comment)
		},
	}

	cmd.Flags().StringVar(&comment, "comment", "", "comment to record with the action")

	return cmd
}

func newRunsCancelCommand() *cobra.Command {
	var comment string

	cmd := &cobra.Command{
		Use:   "cancel RUN_ID",
		Short: "Cancel a run",
		Long:  "Interrupt a run that is planning or applying",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRunsActionCommand(cmd, args[0], "cancel", comment)
		},
	}

	cmd.Flags().StringVar(&comment, "comment", "", "comment to record with the action")

	return cmd
}

func runRunsActionCommand(cmd *cobra.Command, runID, action, comment string) error {
	client, err := CreateClient(cmd)
	if err != nil {
		return err
	}

	request := &spapi.RunActionRequest{Comment: comment}

	switch action {
	case "apply":
		err = client.Runs().Apply(cmd.Context(), runID, request)
	case "discard":
		err = client.Runs().Discard(cmd.Context(), runID, request)
	case "cancel":
		err = client.Runs().Cancel(cmd.Context(), runID, request)
	}

	if err != nil {
		return fmt.Errorf("failed to %s run: %w", action, err)
	}

	fmt.Printf("Requested %s for run %s\n", action, runID)

	return nil
}
