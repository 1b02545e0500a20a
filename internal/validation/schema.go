// Package validation checks backend payloads against embedded JSON Schemas
// before they are allowed into the scoring pipeline. Malformed shapes are
// rejected at the boundary rather than surfacing as zero values downstream.
package validation

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// defaultPrinter is used to format schema validation error messages.
var defaultPrinter = message.NewPrinter(language.English)

//go:embed history.schema.json
var historySchemaJSON string

//go:embed besttimes.schema.json
var bestTimesSchemaJSON string

//go:embed stats.schema.json
var statsSchemaJSON string

var (
	historySchema   *jsonschema.Schema
	bestTimesSchema *jsonschema.Schema
	statsSchema     *jsonschema.Schema
)

func init() {
	historySchema = mustCompileSchema(historySchemaJSON, "history.schema.json")
	bestTimesSchema = mustCompileSchema(bestTimesSchemaJSON, "besttimes.schema.json")
	statsSchema = mustCompileSchema(statsSchemaJSON, "stats.schema.json")
}

func mustCompileSchema(raw string, name string) *jsonschema.Schema {
	var schemaDoc any
	if err := json.Unmarshal([]byte(raw), &schemaDoc); err != nil {
		panic(fmt.Sprintf("failed to parse embedded %s: %v", name, err))
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, schemaDoc); err != nil {
		panic(fmt.Sprintf("failed to add %s resource: %v", name, err))
	}

	sch, err := compiler.Compile(name)
	if err != nil {
		panic(fmt.Sprintf("failed to compile %s: %v", name, err))
	}
	return sch
}

// ValidateHistory validates a decoded history payload. Returns nil when the
// payload conforms.
func ValidateHistory(doc any) []string {
	return validateAgainstSchema(historySchema, doc)
}

// ValidateBestTimes validates a decoded best-times payload.
func ValidateBestTimes(doc any) []string {
	return validateAgainstSchema(bestTimesSchema, doc)
}

// ValidateStats validates a decoded channel stats payload.
func ValidateStats(doc any) []string {
	return validateAgainstSchema(statsSchema, doc)
}

func validateAgainstSchema(schema *jsonschema.Schema, instance any) []string {
	err := schema.Validate(instance)
	if err == nil {
		return nil
	}
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return []string{fmt.Sprintf("schema: %v", err)}
	}
	var errs []string
	collectSchemaErrors(ve, &errs)
	return errs
}

func collectSchemaErrors(ve *jsonschema.ValidationError, errs *[]string) {
	if len(ve.Causes) == 0 {
		loc := "/"
		if len(ve.InstanceLocation) > 0 {
			loc = "/" + strings.Join(ve.InstanceLocation, "/")
		}
		*errs = append(*errs, fmt.Sprintf("%s: %s", loc, ve.ErrorKind.LocalizedString(defaultPrinter)))
		return
	}
	for _, c := range ve.Causes {
		collectSchemaErrors(c, errs)
	}
}
