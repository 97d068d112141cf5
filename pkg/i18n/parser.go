package i18n

import (
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

// Parser decodes a translation file. The top-level keys are language codes,
// each holding a nested map of translation keys.
type Parser interface {
	Parse(content []byte) (map[string]map[string]any, error)
}

// ParserFunc adapts a function to Parser.
type ParserFunc func(content []byte) (map[string]map[string]any, error)

func (f ParserFunc) Parse(content []byte) (map[string]map[string]any, error) { return f(content) }

// YAMLParser parses YAML translation files.
var YAMLParser Parser = ParserFunc(parseYAML)

// JSONParser parses JSON translation files.
var JSONParser Parser = ParserFunc(parseJSON)

// ParserForFile picks a parser by file extension, or returns nil.
func ParserForFile(name string) Parser {
	switch strings.ToLower(path.Ext(name)) {
	case ".yaml", ".yml":
		return YAMLParser
	case ".json":
		return JSONParser
	default:
		return nil
	}
}

func parseYAML(content []byte) (map[string]map[string]any, error) {
	var data map[string]any
	if err := yaml.Unmarshal(content, &data); err != nil {
		return nil, errors.Join(ErrFailedToParseYAML, err)
	}
	return splitLanguages(data)
}

func parseJSON(content []byte) (map[string]map[string]any, error) {
	var data map[string]any
	if err := json.Unmarshal(content, &data); err != nil {
		return nil, errors.Join(ErrFailedToParseJSON, err)
	}
	return splitLanguages(data)
}

func splitLanguages(data map[string]any) (map[string]map[string]any, error) {
	result := make(map[string]map[string]any, len(data))
	for lang, val := range data {
		keys, ok := val.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: language %q holds %T", ErrInvalidStructure, lang, val)
		}
		result[lang] = keys
	}
	return result, nil
}
