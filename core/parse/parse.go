package parse

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"

	"github.com/kaptinlin/jsonrepair"
)

// StringAs parses a string into the specified type T. For primitive types
// (string, bool, int, uint, float) it performs direct conversion. For
// complex types (structs, maps, slices) it attempts JSON unmarshaling; if
// that fails, the content is repaired with jsonrepair and unmarshaling is
// retried, which recovers values assembled from truncated or sloppily
// quoted fragments.
//
// Example usage:
//
//	type Location struct {
//	    City string `json:"city"`
//	    Unit string `json:"unit"`
//	}
//
//	// Parse a valid JSON string.
//	loc, err := parse.StringAs[Location](`{"city":"Paris","unit":"celsius"}`)
//
//	// Parse a malformed JSON string (will be auto-repaired).
//	loc, err := parse.StringAs[Location](`{city: 'Paris', unit: 'celsius'`)
//
//	// Parse primitive types.
//	num, err := parse.StringAs[int]("42")
//	flag, err := parse.StringAs[bool]("true")
func StringAs[T any](content string) (T, error) {
	var result T

	switch reflect.TypeFor[T]().Kind() {
	case reflect.String:
		reflect.ValueOf(&result).Elem().SetString(content)
		return result, nil

	case reflect.Bool:
		val, err := strconv.ParseBool(content)
		if err != nil {
			return result, fmt.Errorf("failed to parse content as bool: %w", err)
		}
		reflect.ValueOf(&result).Elem().SetBool(val)
		return result, nil

	case reflect.Float32, reflect.Float64:
		val, err := strconv.ParseFloat(content, 64)
		if err != nil {
			return result, fmt.Errorf("failed to parse content as float: %w", err)
		}
		reflect.ValueOf(&result).Elem().SetFloat(val)
		return result, nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		val, err := strconv.ParseInt(content, 10, 64)
		if err != nil {
			return result, fmt.Errorf("failed to parse content as int: %w", err)
		}
		reflect.ValueOf(&result).Elem().SetInt(val)
		return result, nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		val, err := strconv.ParseUint(content, 10, 64)
		if err != nil {
			return result, fmt.Errorf("failed to parse content as uint: %w", err)
		}
		reflect.ValueOf(&result).Elem().SetUint(val)
		return result, nil

	default:
		err := json.Unmarshal([]byte(content), &result)
		if err == nil {
			return result, nil
		}

		repaired, repairErr := jsonrepair.JSONRepair(content)
		if repairErr != nil {
			return result, fmt.Errorf("failed to unmarshal content as %T and failed to repair JSON: unmarshal error: %w, repair error: %v", result, err, repairErr)
		}
		if err := json.Unmarshal([]byte(repaired), &result); err != nil {
			return result, fmt.Errorf("failed to unmarshal repaired JSON as %T: %w (original content: %s, repaired: %s)", result, err, content, repaired)
		}
		return result, nil
	}
}

// RepairJSON returns content unchanged when it already is valid JSON, and a
// repaired version otherwise. Streamed tool-call arguments are assembled
// from fragments and can end up missing closing braces or quotes when a
// stream ends early; RepairJSON restores well-formedness so downstream
// decoding does not have to deal with it.
func RepairJSON(content string) (string, error) {
	if json.Valid([]byte(content)) {
		return content, nil
	}
	repaired, err := jsonrepair.JSONRepair(content)
	if err != nil {
		return "", fmt.Errorf("failed to repair JSON: %w", err)
	}
	return repaired, nil
}
