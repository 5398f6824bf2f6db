// Command formflow works with form definitions from the terminal: render a
// form through any built-in surface, inspect the visible field set for a
// given visitor, validate a submission, lint a definition, and import
// fields from an OpenAPI component schema.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	formflow "github.com/goliatone/go-formflow"
	"github.com/goliatone/go-formflow/pkg/formdef"
	"github.com/goliatone/go-formflow/pkg/model"
	"github.com/goliatone/go-formflow/pkg/openapi"
	"github.com/goliatone/go-formflow/pkg/render"
	"github.com/goliatone/go-formflow/pkg/widgets"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "formflow:", err)
		os.Exit(1)
	}
}

type flags struct {
	formPath    string
	dataPath    string
	contactPath string
	renderer    string
	maxFields   int
	formOrder   bool
	outPath     string
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "formflow",
		Short:         "Evaluate and render form definitions",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newRenderCmd(),
		newVisibleCmd(),
		newValidateCmd(),
		newLintCmd(),
		newImportCmd(),
	)
	return root
}

func newRenderCmd() *cobra.Command {
	var f flags
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a form through a built-in renderer",
		RunE: func(cmd *cobra.Command, args []string) error {
			form, options, err := loadRequest(&f)
			if err != nil {
				return err
			}
			if f.renderer == "builder" {
				widgets.NewRegistry().Decorate(&form)
			}

			out, err := formflow.Render(cmd.Context(), form, f.renderer, options)
			if err != nil {
				return err
			}
			return writeOutput(f.outPath, out)
		},
	}
	addCommonFlags(cmd, &f)
	cmd.Flags().StringVar(&f.renderer, "renderer", "classic", "renderer name (classic, builder, conversational)")
	cmd.Flags().StringVarP(&f.outPath, "out", "o", "", "write output to file instead of stdout")
	return cmd
}

func newVisibleCmd() *cobra.Command {
	var f flags
	cmd := &cobra.Command{
		Use:   "visible",
		Short: "Print the visible field set for a visitor",
		RunE: func(cmd *cobra.Command, args []string) error {
			form, options, err := loadRequest(&f)
			if err != nil {
				return err
			}

			fields := formflow.VisibleFields(form, options.Values, options.Contact, options.VisibilityOptions())
			type visibleField struct {
				ID    string `json:"id"`
				Label string `json:"label,omitempty"`
				Type  string `json:"type"`
			}
			out := make([]visibleField, 0, len(fields))
			for _, field := range fields {
				out = append(out, visibleField{ID: field.ID, Label: field.Label, Type: string(field.Type)})
			}
			return printJSON(cmd, out)
		},
	}
	addCommonFlags(cmd, &f)
	return cmd
}

func newValidateCmd() *cobra.Command {
	var f flags
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a submission against the visible field set",
		RunE: func(cmd *cobra.Command, args []string) error {
			form, options, err := loadRequest(&f)
			if err != nil {
				return err
			}

			result := formflow.Validate(form, options.Values, options.Contact, options.VisibilityOptions())
			if err := printJSON(cmd, result); err != nil {
				return err
			}
			if !result.Valid {
				return fmt.Errorf("%d required fields missing", len(result.Errors))
			}
			return nil
		},
	}
	addCommonFlags(cmd, &f)
	return cmd
}

func newLintCmd() *cobra.Command {
	var f flags
	cmd := &cobra.Command{
		Use:   "lint",
		Short: "Check a definition for wiring mistakes",
		RunE: func(cmd *cobra.Command, args []string) error {
			form, err := formdef.Load(f.formPath)
			if err != nil {
				return err
			}

			issues := formdef.Lint(form)
			errors := 0
			for _, issue := range issues {
				fmt.Fprintln(cmd.OutOrStdout(), issue.String())
				if issue.Severity == formdef.SeverityError {
					errors++
				}
			}
			if errors > 0 {
				return fmt.Errorf("%d errors", errors)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&f.formPath, "form", "f", "", "form definition file (json or yaml)")
	_ = cmd.MarkFlagRequired("form")
	return cmd
}

func newImportCmd() *cobra.Command {
	var specPath, component, outPath string
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Derive a form definition from an OpenAPI component schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(specPath)
			if err != nil {
				return err
			}

			form, err := openapi.New().ImportForm(cmd.Context(), data, component)
			if err != nil {
				return err
			}
			formdef.Normalize(&form)

			payload, err := json.MarshalIndent(form, "", "  ")
			if err != nil {
				return err
			}
			return writeOutput(outPath, append(payload, '\n'))
		},
	}
	cmd.Flags().StringVar(&specPath, "spec", "", "OpenAPI document")
	cmd.Flags().StringVar(&component, "component", "", "component schema name")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "write definition to file instead of stdout")
	_ = cmd.MarkFlagRequired("spec")
	_ = cmd.MarkFlagRequired("component")
	return cmd
}

func addCommonFlags(cmd *cobra.Command, f *flags) {
	cmd.Flags().StringVarP(&f.formPath, "form", "f", "", "form definition file (json or yaml)")
	cmd.Flags().StringVar(&f.dataPath, "data", "", "current form data as a JSON object")
	cmd.Flags().StringVar(&f.contactPath, "contact", "", "known contact record as a JSON object")
	cmd.Flags().IntVar(&f.maxFields, "max-progressive", 0, "cap on progressive fields shown at once")
	cmd.Flags().BoolVar(&f.formOrder, "form-order", false, "keep capped progressive fields in form order")
	_ = cmd.MarkFlagRequired("form")
}

func loadRequest(f *flags) (model.Form, render.RenderOptions, error) {
	form, err := formdef.Load(f.formPath)
	if err != nil {
		return model.Form{}, render.RenderOptions{}, err
	}
	if issues := formdef.Lint(form); len(issues) > 0 {
		for _, issue := range issues {
			if issue.Severity == formdef.SeverityError {
				return model.Form{}, render.RenderOptions{}, fmt.Errorf("definition: %s", issue)
			}
			fmt.Fprintln(os.Stderr, "formflow:", issue)
		}
	}

	options := render.RenderOptions{
		MaxProgressiveFields: f.maxFields,
		PreserveFormOrder:    f.formOrder,
	}
	if options.Values, err = readJSONMap(f.dataPath); err != nil {
		return model.Form{}, render.RenderOptions{}, err
	}
	if options.Contact, err = readJSONMap(f.contactPath); err != nil {
		return model.Form{}, render.RenderOptions{}, err
	}
	return form, options, nil
}

func readJSONMap(path string) (map[string]any, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return out, nil
}

func printJSON(cmd *cobra.Command, value any) error {
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(payload))
	return nil
}

func writeOutput(path string, data []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
