package schemas

import (
	"embed"
	"encoding/json"
	"fmt"
	"sort"
)

//go:embed definitions/*.json
var definitionFS embed.FS

// Record kinds with embedded schemas
const (
	KindCustomerProfile     = "customer_profile"
	KindConversation        = "conversation"
	KindStrategyAnalysis    = "strategy_analysis"
	KindPersonalityAnalysis = "personality_analysis"
	KindRunOutput           = "run_output"
)

// SchemaFor returns the embedded schema content for a record kind
func SchemaFor(kind string) (string, error) {
	data, err := definitionFS.ReadFile("definitions/" + kind + ".json")
	if err != nil {
		return "", &SchemaLoadError{
			Path:    kind,
			Message: "unknown record kind",
			Cause:   err,
		}
	}
	return string(data), nil
}

// Kinds lists the record kinds with embedded schemas, sorted
func Kinds() []string {
	entries, err := definitionFS.ReadDir("definitions")
	if err != nil {
		return nil
	}
	kinds := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		kinds = append(kinds, name[:len(name)-len(".json")])
	}
	sort.Strings(kinds)
	return kinds
}

// ValidateRecord checks a canonical record against its embedded schema.
func ValidateRecord(kind string, record any) error {
	schema, err := SchemaFor(kind)
	if err != nil {
		return err
	}
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal %s record: %w", kind, err)
	}
	return ValidateJSONString(schema, string(data))
}
