package commands

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stackplane-io/spapi/pkg/spapi"
)

// NewOrgsCommand creates the organizations command group.
func NewOrgsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "orgs",
		Aliases: []string{"organizations", "org"},
		Short:   "Manage organizations",
		Long:    "List, create, update, and delete Stackplane organizations",
	}

	cmd.AddCommand(newOrgsListCommand())
	cmd.AddCommand(newOrgsGetCommand())
	cmd.AddCommand(newOrgsCreateCommand())
	cmd.AddCommand(newOrgsUpdateCommand())
	cmd.AddCommand(newOrgsDeleteCommand())

	return cmd
}

func newOrgsListCommand() *cobra.Command {
	var (
		allPages bool
		pageSize int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List organizations",
		Long:  "List all organizations the user has access to",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOrgsListCommand(cmd, allPages, pageSize)
		},
	}

	cmd.Flags().BoolVar(&allPages, "all", false, "fetch all pages")
	cmd.Flags().IntVar(&pageSize, "page-size", spapi.DefaultPageSize, "results per page")

	return cmd
}

func runOrgsListCommand(cmd *cobra.Command, allPages bool, pageSize int) error {
	client, err := CreateClient(cmd)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	params := spapi.NewQueryParams().WithPageSize(pageSize)

	var orgs []spapi.Organization

	if allPages {
		orgs, err = client.Organizations().ListAll(ctx, params)
	} else {
		var page *spapi.ListResponse[spapi.Organization]

		page, err = client.Organizations().List(ctx, params)
		if page != nil {
			orgs = page.Data
		}
	}

	if err != nil {
		return fmt.Errorf("failed to list organizations: %w", err)
	}

	return outputOrganizations(orgs)
}

func outputOrganizations(orgs []spapi.Organization) error {
	output := viper.GetString("output")
	switch output {
	case OutputFormatJSON:
		return StandardJSONRenderer(orgs)
	case OutputFormatYAML:
		return StandardYAMLRenderer(orgs)
	default:
		return renderOrganizationTable(orgs)
	}
}

func renderOrganizationTable(orgs []spapi.Organization) error {
	if len(orgs) == 0 {
		_, _ = os.Stdout.WriteString("No organizations found\n")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Name", "ID", "Email", "Created")

	for _, org := range orgs {
		email := org.Attributes.Email
		if email == "" {
			email = NotAvailable
		}

		_ = table.Append(org.Attributes.Name, org.ID, email,
			org.Attributes.CreatedAt.Format("2006-01-02"))
	}

	_ = table.Render()

	return nil
}

func newOrgsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get ORG_NAME",
		Short: "Get organization details",
		Long:  "Display detailed information about a specific organization",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd)
			if err != nil {
				return err
			}

			org, err := client.Organizations().Get(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get organization: %w", err)
			}

			return outputOrganization(org)
		},
	}
}

func outputOrganization(org *spapi.Organization) error {
	output := viper.GetString("output")
	switch output {
	case OutputFormatJSON:
		return StandardJSONRenderer(org)
	case OutputFormatYAML:
		return StandardYAMLRenderer(org)
	default:
		table := tablewriter.NewWriter(os.Stdout)
		table.Header("Property", "Value")
		_ = table.Append("Name", org.Attributes.Name)
		_ = table.Append("ID", org.ID)
		_ = table.Append("Email", org.Attributes.Email)
		_ = table.Append("Created", org.Attributes.CreatedAt.Format("2006-01-02 15:04:05"))
		_ = table.Render()

		return nil
	}
}

func newOrgsCreateCommand() *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "create ORG_NAME",
		Short: "Create an organization",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd)
			if err != nil {
				return err
			}

			org, err := client.Organizations().Create(cmd.Context(), &spapi.OrganizationCreateRequest{
				Name:  args[0],
				Email: email,
			})
			if err != nil {
				return fmt.Errorf("failed to create organization: %w", err)
			}

			fmt.Printf("Created organization %s\n", org.Attributes.Name)

			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "notification email address")

	return cmd
}

func newOrgsUpdateCommand() *cobra.Command {
	var (
		newName string
		email   string
	)

	cmd := &cobra.Command{
		Use:   "update ORG_NAME",
		Short: "Update an organization",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd)
			if err != nil {
				return err
			}

			request := &spapi.OrganizationUpdateRequest{}
			if cmd.Flags().Changed("name") {
				request.Name = &newName
			}

			if cmd.Flags().Changed("email") {
				request.Email = &email
			}

			org, err := client.Organizations().Update(cmd.Context(), args[0], request)
			if err != nil {
				return fmt.Errorf("failed to update organization: %w", err)
			}

			fmt.Printf("Updated organization %s\n", org.Attributes.Name)

			return nil
		},
	}

	cmd.Flags().StringVar(&newName, "name", "", "new organization name")
	cmd.Flags().StringVar(&email, "email", "", "notification email address")

	return cmd
}

func newOrgsDeleteCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete ORG_NAME",
		Short: "Delete an organization",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				fmt.Printf("Really delete organization '%s'? (y/N): ", args[0])

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

			if err := client.Organizations().Delete(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("failed to delete organization: %w", err)
			}

			fmt.Printf("Deleted organization %s\n", args[0])

			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "delete without confirmation")

	return cmd
}
