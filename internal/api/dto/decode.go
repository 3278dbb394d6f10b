package dto

import (
	"bytes"
	"encoding/json"
	"sort"

	"github.com/google/uuid"

	"github.com/spec-kit/blog-service/pkg/optional"
	util "github.com/spec-kit/blog-service/pkg/util/errorutil"
)

// body is a decoded JSON object kept as raw fragments so each field can be
// typed and validated individually, with the offending fragment echoed back.
type body map[string]json.RawMessage

func parseBody(data []byte) (body, *util.Detail) {
	var b body
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, &util.Detail{
			Type:  "json_invalid",
			Loc:   []any{"body"},
			Msg:   "Invalid JSON",
			Input: string(data),
		}
	}
	return b, nil
}

// extras rejects unknown top-level fields: schemas are closed.
func (b body) extras(allowed ...string) []util.Detail {
	allowedSet := make(map[string]struct{}, len(allowed))
	for _, f := range allowed {
		allowedSet[f] = struct{}{}
	}
	var unknown []string
	for field := range b {
		if _, ok := allowedSet[field]; !ok {
			unknown = append(unknown, field)
		}
	}
	sort.Strings(unknown)

	var details []util.Detail
	for _, field := range unknown {
		details = append(details, util.Detail{
			Type:  "extra_forbidden",
			Loc:   bodyLoc(field),
			Msg:   "Extra inputs are not permitted",
			Input: rawInput(b[field]),
		})
	}
	return details
}

func bodyLoc(field string) []any {
	return []any{"body", field}
}

// rawInput re-decodes a fragment for echoing in error details.
func rawInput(raw json.RawMessage) any {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return string(raw)
	}
	return v
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// requireString decodes a mandatory string field, recording a detail when the
// field is missing, null, or not a string.
func (b body) requireString(field string, details *[]util.Detail) (string, bool) {
	raw, ok := b[field]
	if !ok {
		*details = append(*details, util.Detail{
			Type: "missing", Loc: bodyLoc(field), Msg: "Field required", Input: nil,
		})
		return "", false
	}
	return b.decodeString(field, raw, details)
}

// optionalString decodes a field that may be absent or null on a create
// payload. Absent and null both yield nil.
func (b body) optionalString(field string, details *[]util.Detail) *string {
	raw, ok := b[field]
	if !ok || isNull(raw) {
		return nil
	}
	s, ok := b.decodeString(field, raw, details)
	if !ok {
		return nil
	}
	return &s
}

func (b body) decodeString(field string, raw json.RawMessage, details *[]util.Detail) (string, bool) {
	var s string
	if isNull(raw) || json.Unmarshal(raw, &s) != nil {
		*details = append(*details, util.Detail{
			Type: "string_type", Loc: bodyLoc(field), Msg: "Input should be a valid string", Input: rawInput(raw),
		})
		return "", false
	}
	return s, true
}

// boolOr decodes an optional strict boolean with a default. Null and
// non-boolean inputs are rejected, matching the strict create schema.
func (b body) boolOr(field string, def bool, details *[]util.Detail) bool {
	raw, ok := b[field]
	if !ok {
		return def
	}
	var v bool
	if isNull(raw) || json.Unmarshal(raw, &v) != nil {
		*details = append(*details, util.Detail{
			Type: "bool_type", Loc: bodyLoc(field), Msg: "Input should be a valid boolean", Input: rawInput(raw),
		})
		return def
	}
	return v
}

// requireUUID decodes a mandatory UUID field.
func (b body) requireUUID(field string, details *[]util.Detail) (uuid.UUID, bool) {
	raw, ok := b[field]
	if !ok {
		*details = append(*details, util.Detail{
			Type: "missing", Loc: bodyLoc(field), Msg: "Field required", Input: nil,
		})
		return uuid.Nil, false
	}
	return b.decodeUUID(field, raw, details)
}

func (b body) decodeUUID(field string, raw json.RawMessage, details *[]util.Detail) (uuid.UUID, bool) {
	fail := func() (uuid.UUID, bool) {
		*details = append(*details, util.Detail{
			Type: "uuid_parsing", Loc: bodyLoc(field), Msg: "Input should be a valid UUID, invalid UUID format", Input: rawInput(raw),
		})
		return uuid.Nil, false
	}
	var s string
	if isNull(raw) || json.Unmarshal(raw, &s) != nil {
		return fail()
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return fail()
	}
	return id, true
}

// triString decodes a tri-state update field: absent, explicit null, or a
// string value.
func (b body) triString(field string, details *[]util.Detail) optional.Optional[string] {
	raw, ok := b[field]
	if !ok {
		return optional.Optional[string]{}
	}
	if isNull(raw) {
		return optional.Null[string]()
	}
	s, ok := b.decodeString(field, raw, details)
	if !ok {
		return optional.Optional[string]{}
	}
	return optional.Of(s)
}

// triBool decodes a tri-state strict boolean update field.
func (b body) triBool(field string, details *[]util.Detail) optional.Optional[bool] {
	raw, ok := b[field]
	if !ok {
		return optional.Optional[bool]{}
	}
	if isNull(raw) {
		return optional.Null[bool]()
	}
	var v bool
	if json.Unmarshal(raw, &v) != nil {
		*details = append(*details, util.Detail{
			Type: "bool_type", Loc: bodyLoc(field), Msg: "Input should be a valid boolean", Input: rawInput(raw),
		})
		return optional.Optional[bool]{}
	}
	return optional.Of(v)
}

// triUUID decodes a tri-state UUID update field.
func (b body) triUUID(field string, details *[]util.Detail) optional.Optional[uuid.UUID] {
	raw, ok := b[field]
	if !ok {
		return optional.Optional[uuid.UUID]{}
	}
	if isNull(raw) {
		return optional.Null[uuid.UUID]()
	}
	id, ok := b.decodeUUID(field, raw, details)
	if !ok {
		return optional.Optional[uuid.UUID]{}
	}
	return optional.Of(id)
}
