package questions

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// ErrInvalidQuestionSet is returned when a question-set document does not
// satisfy the schema or the item rules.
var ErrInvalidQuestionSet = errors.New("invalid question set")

//go:embed data/questions.json
var defaultDocument []byte

//go:embed data/schema.json
var schemaDocument []byte

const schemaURL = "schema://question-set.json"

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

// Default returns the built-in question set.
func Default() (*Set, error) {
	return Parse(defaultDocument)
}

// Load reads a question set from path. An empty path loads the built-in set.
func Load(path string) (*Set, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read question set %q: %w", path, err)
	}
	set, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("question set %q: %w", path, err)
	}
	return set, nil
}

// Parse decodes and validates a question-set document.
func Parse(data []byte) (*Set, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: invalid JSON: %w", ErrInvalidQuestionSet, err)
	}

	schema, err := questionSetSchema()
	if err != nil {
		return nil, fmt.Errorf("compile question-set schema: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidQuestionSet, err)
	}

	var set Set
	if err := json.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("%w: decode: %w", ErrInvalidQuestionSet, err)
	}
	if err := validate(&set); err != nil {
		return nil, err
	}
	return &set, nil
}

// validate checks the rules the schema cannot express. Every problem is
// reported, not just the first.
func validate(set *Set) error {
	var errs []error
	seen := make(map[string]bool, set.Len())

	check := func(section string, qs []Question, wantPrefix string) {
		for i, q := range qs {
			if seen[q.ItemID] {
				errs = append(errs, fmt.Errorf("%s[%d]: duplicate itemId %q", section, i, q.ItemID))
			}
			seen[q.ItemID] = true
			if !strings.HasPrefix(q.ItemID, wantPrefix) {
				slog.Warn("item id does not follow the naming convention",
					"section", section, "item_id", q.ItemID, "want_prefix", wantPrefix)
			}
		}
	}
	check("examples", set.Examples, PracticePrefix)
	check("main", set.Main, MainPrefix)

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidQuestionSet, errors.Join(errs...))
	}
	return nil
}

func questionSetSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaDocument))
		if err != nil {
			compileErr = fmt.Errorf("parse schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, doc); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile(schemaURL)
	})
	return compiled, compileErr
}
