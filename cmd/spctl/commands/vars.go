package commands

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stackplane-io/spapi/pkg/spapi"
)

const maskedValue = "***"

// NewVarsCommand creates the variables command group.
func NewVarsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "vars",
		Aliases: []string{"variables", "var"},
		Short:   "Manage workspace variables",
		Long:    "List, set, and delete Stackplane workspace variables",
	}

	cmd.AddCommand(newVarsListCommand())
	cmd.AddCommand(newVarsSetCommand())
	cmd.AddCommand(newVarsDeleteCommand())

	return cmd
}

func newVarsListCommand() *cobra.Command {
	var workspaceID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List workspace variables",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd)
			if err != nil {
				return err
			}

			variables, err := client.Variables().List(cmd.Context(), workspaceID, nil)
			if err != nil {
				return fmt.Errorf("failed to list variables: %w", err)
			}

			return outputVariables(variables.Data)
		},
	}

	cmd.Flags().StringVarP(&workspaceID, "workspace", "w", "", "workspace ID (required)")
	_ = cmd.MarkFlagRequired("workspace")

	return cmd
}

func outputVariables(variables []spapi.Variable) error {
	output := viper.GetString("output")
	switch output {
	case OutputFormatJSON:
		return StandardJSONRenderer(variables)
	case OutputFormatYAML:
		return StandardYAMLRenderer(variables)
	default:
		if len(variables) == 0 {
			_, _ = os.Stdout.WriteString("No variables found\n")

			return nil
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.Header("Key", "Value", "Category", "Sensitive")

		for _, variable := range variables {
			value := variable.Attributes.Value
			if variable.Attributes.Sensitive {
				value = maskedValue
			}

			sensitive := "no"
			if variable.Attributes.Sensitive {
				sensitive = "yes"
			}

			_ = table.Append(variable.Attributes.Key, value, variable.Attributes.Category, sensitive)
		}

		_ = table.Render()

		return nil
	}
}

func newVarsSetCommand() *cobra.Command {
	var (
		workspaceID string
		category    string
		sensitive   bool
	)

	cmd := &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a workspace variable",
		Long:  "Create a workspace variable, or update it when the key already exists",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			key, value := args[0], args[1]

			// Update in place when the key already exists
			existing, err := client.Variables().List(ctx, workspaceID, nil)
			if err != nil {
				return fmt.Errorf("failed to list variables: %w", err)
			}

			for _, variable := range existing.Data {
				if variable.Attributes.Key == key {
					_, err = client.Variables().Update(ctx, workspaceID, variable.ID, &spapi.VariableUpdateRequest{
						Value: &value,
					})
					if err != nil {
						return fmt.Errorf("failed to update variable: %w", err)
					}

					fmt.Printf("Updated variable %s\n", key)

					return nil
				}
			}

			_, err = client.Variables().Create(ctx, workspaceID, &spapi.VariableCreateRequest{
				Key:       key,
				Value:     value,
				Category:  category,
				Sensitive: sensitive,
			})
			if err != nil {
				return fmt.Errorf("failed to create variable: %w", err)
			}

			fmt.Printf("Created variable %s\n", key)

			return nil
		},
	}

	cmd.Flags().StringVarP(&workspaceID, "workspace", "w", "", "workspace ID (required)")
	cmd.Flags().StringVar(&category, "category", spapi.VariableCategoryStack, "variable category (stack, env)")
	cmd.Flags().BoolVar(&sensitive, "sensitive", false, "mark the variable as sensitive")
	_ = cmd.MarkFlagRequired("workspace")

	return cmd
}

func newVarsDeleteCommand() *cobra.Command {
	var workspaceID string

	cmd := &cobra.Command{
		Use:   "delete VARIABLE_ID",
		Short: "Delete a workspace variable",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd)
			if err != nil {
				return err
			}

			if err := client.Variables().Delete(cmd.Context(), workspaceID, args[0]); err != nil {
				return fmt.Errorf("failed to delete variable: %w", err)
			}

			fmt.Printf("Deleted variable %s\n", args[0])

			return nil
		},
	}

	cmd.Flags().StringVarP(&workspaceID, "workspace", "w", "", "workspace ID (required)")
	_ = cmd.MarkFlagRequired("workspace")

	return cmd
}
