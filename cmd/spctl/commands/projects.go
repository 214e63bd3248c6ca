package commands

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stackplane-io/spapi/pkg/spapi"
)

// NewProjectsCommand creates the projects command group.
func NewProjectsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "projects",
		Aliases: []string{"project"},
		Short:   "Manage projects",
		Long:    "List, create, update, and delete Stackplane projects",
	}

	cmd.AddCommand(newProjectsListCommand())
	cmd.AddCommand(newProjectsGetCommand())
	cmd.AddCommand(newProjectsCreateCommand())
	cmd.AddCommand(newProjectsDeleteCommand())

	return cmd
}

func newProjectsListCommand() *cobra.Command {
	var (
		organization string
		allPages     bool
		pageSize     int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects",
		Long:  "List all projects in an organization",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			params := spapi.NewQueryParams().WithPageSize(pageSize)

			var projects []spapi.Project

			if allPages {
				projects, err = client.Projects().ListAll(ctx, organization, params)
			} else {
				var page *spapi.ListResponse[spapi.Project]

				page, err = client.Projects().List(ctx, organization, params)
				if page != nil {
					projects = page.Data
				}
			}

			if err != nil {
				return fmt.Errorf("failed to list projects: %w", err)
			}

			return outputProjects(projects)
		},
	}

	cmd.Flags().StringVarP(&organization, "org", "o", "", "organization name (required)")
	cmd.Flags().BoolVar(&allPages, "all", false, "fetch all pages")
	cmd.Flags().IntVar(&pageSize, "page-size", spapi.DefaultPageSize, "results per page")
	_ = cmd.MarkFlagRequired("org")

	return cmd
}

func outputProjects(projects []spapi.Project) error {
	output := viper.GetString("output")
	switch output {
	case OutputFormatJSON:
		return StandardJSONRenderer(projects)
	case OutputFormatYAML:
		return StandardYAMLRenderer(projects)
	default:
		if len(projects) == 0 {
			_, _ = os.Stdout.WriteString("No projects found\n")

			return nil
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.Header("Name", "ID", "Description", "Created")

		for _, project := range projects {
			description := project.Attributes.Description
			if description == "" {
				description = NotAvailable
			}

			_ = table.Append(project.Attributes.Name, project.ID, description,
				project.Attributes.CreatedAt.Format("2006-01-02"))
		}

		_ = table.Render()

		return nil
	}
}

func newProjectsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get PROJECT_ID",
		Short: "Get project details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd)
			if err != nil {
				return err
			}

			project, err := client.Projects().Get(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get project: %w", err)
			}

			output := viper.GetString("output")
			switch output {
			case OutputFormatJSON:
				return StandardJSONRenderer(project)
			case OutputFormatYAML:
				return StandardYAMLRenderer(project)
			default:
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Property", "Value")
				_ = table.Append("Name", project.Attributes.Name)
				_ = table.Append("ID", project.ID)
				_ = table.Append("Description", project.Attributes.Description)
				_ = table.Append("Created", project.Attributes.CreatedAt.Format("2006-01-02 15:04:05"))
				_ = table.Render()

				return nil
			}
		},
	}
}

func newProjectsCreateCommand() *cobra.Command {
	var (
		organization string
		description  string
	)

	cmd := &cobra.Command{
		Use:   "create PROJECT_NAME",
		Short: "Create a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd)
			if err != nil {
				return err
			}

			project, err := client.Projects().Create(cmd.Context(), organization, &spapi.ProjectCreateRequest{
				Name:        args[0],
				Description: description,
			})
			if err != nil {
				return fmt.Errorf("failed to create project: %w", err)
			}

			fmt.Printf("Created project %s (%s)\n", project.Attributes.Name, project.ID)

			return nil
		},
	}

	cmd.Flags().StringVarP(&organization, "org", "o", "", "organization name (required)")
	cmd.Flags().StringVar(&description, "description", "", "project description")
	_ = cmd.MarkFlagRequired("org")

	return cmd
}

func newProjectsDeleteCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete PROJECT_ID",
		Short: "Delete a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				fmt.Printf("Really delete project '%s'? (y/N): ", args[0])

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

			if err := client.Projects().Delete(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("failed to delete project: %w", err)
			}

			fmt.Printf("Deleted project %s\n", args[0])

			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "delete without confirmation")

	return cmd
}
