package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
)

// ErrSchemaValidation marks a model response that could not be parsed or
// validated against the declared output schema. Never retried at this layer.
var ErrSchemaValidation = errors.New("model response does not match schema")

// Validator is implemented by output types that carry schema invariants
// beyond what JSON decoding checks.
type Validator interface {
	Validate() error
}

// RenderTemplate substitutes {name} placeholders in a prompt template.
func RenderTemplate(template string, vars map[string]string) string {
	out := template
	for name, value := range vars {
		out = strings.ReplaceAll(out, "{"+name+"}", value)
	}
	return out
}

// JSONFormatInstructions builds the formatting block appended to structured
// prompts: a literal JSON shape the model must reproduce.
func JSONFormatInstructions(schema string) string {
	return "Return ONLY a raw JSON document with the following structure. " +
		"Do not include markdown formatting (like json code blocks). Do not include any other text.\n" + schema
}

// Generate renders a prompt template, invokes the provider and parses the
// response into out. The {format_instructions} placeholder is filled from
// schema. A response that fails to decode, or whose Validate() rejects it,
// returns an error wrapping ErrSchemaValidation.
func Generate(ctx context.Context, p Provider, template string, vars map[string]string, schema string, out any) error {
	rendered := map[string]string{"format_instructions": JSONFormatInstructions(schema)}
	for k, v := range vars {
		rendered[k] = v
	}

	raw, err := p.Complete(ctx, RenderTemplate(template, rendered))
	if err != nil {
		return err
	}

	cleaned := CleanJSON(raw)
	if err := json.Unmarshal([]byte(cleaned), out); err != nil {
		log.Printf("[Structured] Failed to parse response as JSON: %v", err)
		return fmt.Errorf("%w: %v", ErrSchemaValidation, err)
	}

	if v, ok := out.(Validator); ok {
		if err := v.Validate(); err != nil {
			log.Printf("[Structured] Response failed validation: %v", err)
			return fmt.Errorf("%w: %v", ErrSchemaValidation, err)
		}
	}
	return nil
}

// CleanJSON strips markdown fences and any prose surrounding the outermost
// JSON value. Models wrap JSON in code blocks no matter how firmly told not to.
func CleanJSON(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	s = strings.TrimSpace(s)

	objStart := strings.Index(s, "{")
	arrStart := strings.Index(s, "[")
	start := objStart
	end := strings.LastIndex(s, "}")
	if arrStart != -1 && (objStart == -1 || arrStart < objStart) {
		start = arrStart
		end = strings.LastIndex(s, "]")
	}
	if start == -1 || end == -1 || end < start {
		return s
	}
	return s[start : end+1]
}
