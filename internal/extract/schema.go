package extract

import (
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// TopicCount is the number of topics every curriculum must have.
const TopicCount = 10

// curriculumSchema is the shape a parsed topic list must satisfy.
var curriculumSchema = map[string]any{
	"type":     "array",
	"minItems": TopicCount,
	"maxItems": TopicCount,
	"items": map[string]any{
		"type":      "string",
		"minLength": 1,
		"pattern":   `\S`,
	},
	"uniqueItems": true,
}

var (
	compiledOnce sync.Once
	compiled     *jsonschema.Schema
	compileErr   error
)

// topicListSchema returns the compiled curriculum schema, compiling it on
// first use.
func topicListSchema() (*jsonschema.Schema, error) {
	compiledOnce.Do(func() {
		c := jsonschema.NewCompiler()
		const url = "schema://curriculum-topics.json"
		if err := c.AddResource(url, curriculumSchema); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile(url)
	})
	return compiled, compileErr
}

// validateTopics checks a parsed literal against the curriculum schema and
// returns it as a string slice.
func validateTopics(v any) ([]string, error) {
	items, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("expected a list, got %s", describe(v))
	}

	schema, err := topicListSchema()
	if err != nil {
		return nil, fmt.Errorf("compile curriculum schema: %w", err)
	}
	if err := schema.Validate(items); err != nil {
		return nil, fmt.Errorf("curriculum shape: %w", err)
	}

	topics := make([]string, len(items))
	for i, item := range items {
		topics[i] = item.(string)
	}
	return topics, nil
}

func describe(v any) string {
	switch v.(type) {
	case nil:
		return "None"
	case string:
		return "a string"
	case float64:
		return "a number"
	case bool:
		return "a boolean"
	default:
		return fmt.Sprintf("%T", v)
	}
}
