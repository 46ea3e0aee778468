package quiz

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed questions.json schema.json
var bankFS embed.FS

// Question is a single multiple-choice entry in the bank.
type Question struct {
	ID      string            `json:"id"`
	Text    string            `json:"question"`
	Options map[string]string `json:"options"`
	Correct string            `json:"correct"`
}

// Bank holds the fixed question set. It is built once at startup and never
// mutated afterwards, so unsynchronized concurrent reads are safe.
type Bank struct {
	questions map[string]Question
	order     []string
}

type bankDocument struct {
	Questions []Question `json:"questions"`
}

// NewBank builds a bank from an ordered question slice. Duplicate IDs are
// rejected; structural soundness is reported separately by ValidateStructure.
func NewBank(questions []Question) (*Bank, error) {
	bank := &Bank{
		questions: make(map[string]Question, len(questions)),
		order:     make([]string, 0, len(questions)),
	}

	for _, question := range questions {
		if _, exists := bank.questions[question.ID]; exists {
			return nil, fmt.Errorf("duplicate question id %q", question.ID)
		}
		bank.questions[question.ID] = question
		bank.order = append(bank.order, question.ID)
	}

	return bank, nil
}

// LoadBank decodes the embedded question bank after checking it against the
// embedded JSON schema.
func LoadBank() (*Bank, error) {
	data, err := bankFS.ReadFile("questions.json")
	if err != nil {
		return nil, fmt.Errorf("failed to read question bank: %w", err)
	}

	schemaData, err := bankFS.ReadFile("schema.json")
	if err != nil {
		return nil, fmt.Errorf("failed to read question bank schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(schemaData)); err != nil {
		return nil, fmt.Errorf("failed to load question bank schema: %w", err)
	}

	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return nil, fmt.Errorf("failed to compile question bank schema: %w", err)
	}

	var document any
	if err := json.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("question bank is not valid JSON: %w", err)
	}

	if err := schema.Validate(document); err != nil {
		return nil, fmt.Errorf("question bank failed schema validation: %w", err)
	}

	var decoded bankDocument
	if err := json.Unmarshal(data, &decoded); err != nil {
		return nil, fmt.Errorf("failed to decode question bank: %w", err)
	}

	return NewBank(decoded.Questions)
}

// Questions returns the full question map. The returned map is a copy so
// callers cannot reshape the bank.
func (b *Bank) Questions() map[string]Question {
	questions := make(map[string]Question, len(b.questions))
	for id, question := range b.questions {
		questions[id] = question
	}
	return questions
}

// Order returns the question IDs in bank order.
func (b *Bank) Order() []string {
	order := make([]string, len(b.order))
	copy(order, b.order)
	return order
}

// Count returns the number of questions in the bank.
func (b *Bank) Count() int {
	return len(b.order)
}

// Question looks up a single entry by ID.
func (b *Bank) Question(id string) (Question, bool) {
	question, ok := b.questions[id]
	return question, ok
}

// ValidateStructure walks every question and collects human-readable
// violations. It reports rather than failing: the second return value lists
// one message per problem found.
func (b *Bank) ValidateStructure() (bool, []string) {
	var violations []string

	for _, id := range b.order {
		question := b.questions[id]

		if strings.TrimSpace(question.Text) == "" {
			violations = append(violations, fmt.Sprintf("%s: missing question text", id))
		}
		if question.Options == nil {
			violations = append(violations, fmt.Sprintf("%s: missing options", id))
		} else {
			if len(question.Options) != len(optionKeys) || !hasExactOptionKeys(question.Options) {
				violations = append(violations, fmt.Sprintf("%s: options must be exactly %s", id, strings.Join(optionKeys, ", ")))
			}
			for _, key := range optionKeys {
				if text, ok := question.Options[key]; ok && strings.TrimSpace(text) == "" {
					violations = append(violations, fmt.Sprintf("%s: option %s is empty", id, key))
				}
			}
		}
		if question.Correct == "" {
			violations = append(violations, fmt.Sprintf("%s: missing correct answer", id))
		} else if !isOptionKey(question.Correct) {
			violations = append(violations, fmt.Sprintf("%s: correct answer must be one of %s", id, strings.Join(optionKeys, ", ")))
		}
	}

	return len(violations) == 0, violations
}

func hasExactOptionKeys(options map[string]string) bool {
	for _, key := range optionKeys {
		if _, ok := options[key]; !ok {
			return false
		}
	}
	for key := range options {
		if !isOptionKey(key) {
			return false
		}
	}
	return true
}
