// Generates the sample lead-capture definition used by the README and the
// CLI walkthroughs. Run from the repo root:
//
//	go run ./scripts/generate-sample-form > testdata/lead-capture.json
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/goliatone/go-formflow/pkg/formdef"
	"github.com/goliatone/go-formflow/pkg/model"
	"github.com/goliatone/go-formflow/pkg/widgets"
)

func main() {
	form := model.Form{
		ID:       "lead-capture",
		TenantID: "acme",
		Name:     "Lead Capture",
		Endpoint: "/api/forms/lead-capture/submissions",
		Method:   "POST",
		Steps: []model.Step{
			{
				ID:    "about-you",
				Title: "About you",
				Fields: []model.Field{
					{ID: "email", Label: "Email", Type: model.FieldTypeEmail, Required: true,
						Progressive: &model.ProgressiveProfile{Enabled: true, HideIfKnown: true, Priority: 1}},
					{ID: "firstName", Label: "First name", Type: model.FieldTypeText,
						Progressive: &model.ProgressiveProfile{Enabled: true, HideIfKnown: true, Priority: 2}},
					{ID: "phone", Label: "Phone", Type: model.FieldTypePhone,
						Progressive: &model.ProgressiveProfile{Enabled: true, HideIfKnown: true, Priority: 3}},
				},
			},
			{
				ID:    "company",
				Title: "Your company",
				Fields: []model.Field{
					{ID: "hasCompany", Label: "Do you have a company?", Type: model.FieldTypeRadio,
						Options: []model.Option{{Label: "Yes", Value: "yes"}, {Label: "No", Value: "no"}}},
					{ID: "companyName", Label: "Company name", Type: model.FieldTypeText, Required: true,
						Conditional: &model.ConditionalLogic{
							Enabled:   true,
							Rules:     []model.Rule{{FieldID: "hasCompany", Operator: model.OperatorEquals, Value: "yes"}},
							LogicType: model.LogicAnd,
						}},
					{ID: "employees", Label: "Employees", Type: model.FieldTypeNumber,
						Conditional: &model.ConditionalLogic{
							Enabled:   true,
							Rules:     []model.Rule{{FieldID: "hasCompany", Operator: model.OperatorEquals, Value: "yes"}},
							LogicType: model.LogicAnd,
						}},
				},
			},
		},
	}

	formdef.Normalize(&form)
	widgets.NewRegistry().Decorate(&form)

	if issues := formdef.Lint(form); len(issues) > 0 {
		for _, issue := range issues {
			log.Println(issue)
		}
		log.Fatal("sample definition has lint findings")
	}

	payload, err := json.MarshalIndent(form, "", "  ")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Fprintln(os.Stdout, string(payload))
}
