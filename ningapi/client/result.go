package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Decoded success envelope of an API response.
type Result struct {
	// HTTP response status code
	StatusCode int

	Success bool

	// Resource payload: a single object, or an array for list endpoints. May be empty.
	Entry json.RawMessage

	// Related resources referenced from the entry, keyed by ID. May be empty.
	Resources json.RawMessage

	// Complete response body
	Raw []byte
}

// Unmarshals the envelope entry into out.
func (r *Result) DecodeEntry(out any) error {
	if len(r.Entry) == 0 {
		return fmt.Errorf("response envelope has no entry")
	}
	if err := json.Unmarshal(r.Entry, out); err != nil {
		return fmt.Errorf("failed decoding response entry: %w", err)
	}
	return nil
}

// Decodes a response body into a [Result], or an [*APIError] if the body is not a JSON envelope or reports failure.
func decodeResult(statusCode int, body []byte) (*Result, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, &APIError{
			StatusCode: statusCode,
			Body:       body,
			Err:        fmt.Errorf("decoding response envelope: %w", err),
		}
	}
	if fields == nil {
		return nil, &APIError{
			StatusCode: statusCode,
			Body:       body,
			Err:        fmt.Errorf("response envelope is null"),
		}
	}

	if !truthy(fields["success"]) {
		return nil, &APIError{
			StatusCode: statusCode,
			Status:     intField(fields["status"]),
			Code:       intField(fields["code"]),
			Subcode:    intField(fields["subcode"]),
			Reason:     stringField(fields["reason"]),
			Trace:      stringField(fields["trace"]),
			Body:       body,
		}
	}

	return &Result{
		StatusCode: statusCode,
		Success:    true,
		Entry:      fields["entry"],
		Resources:  fields["resources"],
		Raw:        body,
	}, nil
}

// Loose boolean evaluation of a JSON value: false, null, 0, "", "0", and empty arrays or objects are false.
func truthy(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return false
	}
	switch raw[0] {
	case 't':
		return string(raw) == "true"
	case 'f', 'n':
		return false
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return false
		}
		return s != "" && s != "0"
	case '[':
		var arr []json.RawMessage
		return json.Unmarshal(raw, &arr) == nil && len(arr) > 0
	case '{':
		var obj map[string]json.RawMessage
		return json.Unmarshal(raw, &obj) == nil && len(obj) > 0
	default:
		f, err := strconv.ParseFloat(string(raw), 64)
		return err == nil && f != 0
	}
}

// Reads a JSON number, or a string holding a number. Anything else is zero.
func intField(raw json.RawMessage) int {
	if len(raw) == 0 {
		return 0
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		if i, err := n.Int64(); err == nil {
			return int(i)
		}
		return 0
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if i, err := strconv.Atoi(s); err == nil {
			return i
		}
	}
	return 0
}

func stringField(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}
