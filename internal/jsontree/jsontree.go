// Package jsontree models JSON documents as ordered trees.
//
// The host configuration file is hand-edited, so patching it must not
// reorder or re-type anything the user wrote. Values are a tagged variant
// (object/array/string/number/bool/null); object members keep insertion
// order through parse, patch, and encode, and numbers keep their source
// representation.
package jsontree

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/tailscale/hujson"
)

// Kind identifies the variant held by a Value.
type Kind int

// Value kinds.
const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

// Value is one node of a JSON document.
type Value struct {
	kind    Kind
	boolVal bool
	numVal  json.Number
	strVal  string
	arrVal  []*Value
	objVal  *Fields
}

// Fields holds the ordered members of a JSON object.
type Fields struct {
	keys []string
	vals map[string]*Value
}

// NewNull returns a null value.
func NewNull() *Value {
	return &Value{kind: KindNull}
}

// NewBool returns a boolean value.
func NewBool(b bool) *Value {
	return &Value{kind: KindBool, boolVal: b}
}

// NewNumber returns a numeric value preserving the given representation.
func NewNumber(n json.Number) *Value {
	return &Value{kind: KindNumber, numVal: n}
}

// NewString returns a string value.
func NewString(s string) *Value {
	return &Value{kind: KindString, strVal: s}
}

// NewArray returns an array value holding the given items.
func NewArray(items ...*Value) *Value {
	return &Value{kind: KindArray, arrVal: items}
}

// NewObject returns an empty object value.
func NewObject() *Value {
	return &Value{kind: KindObject, objVal: newFields()}
}

func newFields() *Fields {
	return &Fields{vals: make(map[string]*Value)}
}

// Kind returns the variant held by v.
func (v *Value) Kind() Kind {
	return v.kind
}

// BoolVal returns the boolean payload; false unless v is a bool.
func (v *Value) BoolVal() bool {
	return v.kind == KindBool && v.boolVal
}

// StringVal returns the string payload; empty unless v is a string.
func (v *Value) StringVal() string {
	if v.kind != KindString {
		return ""
	}
	return v.strVal
}

// NumberVal returns the numeric payload; empty unless v is a number.
func (v *Value) NumberVal() json.Number {
	if v.kind != KindNumber {
		return ""
	}
	return v.numVal
}

// Items returns the array payload; nil unless v is an array.
func (v *Value) Items() []*Value {
	if v.kind != KindArray {
		return nil
	}
	return v.arrVal
}

// Fields returns the object payload; nil unless v is an object.
func (v *Value) Fields() *Fields {
	if v.kind != KindObject {
		return nil
	}
	return v.objVal
}

// Len returns the number of members.
func (f *Fields) Len() int {
	return len(f.keys)
}

// Keys returns the member keys in insertion order.
func (f *Fields) Keys() []string {
	out := make([]string, len(f.keys))
	copy(out, f.keys)
	return out
}

// Get returns the member value for key and whether it exists.
func (f *Fields) Get(key string) (*Value, bool) {
	v, ok := f.vals[key]
	return v, ok
}

// Has reports whether key exists.
func (f *Fields) Has(key string) bool {
	_, ok := f.vals[key]
	return ok
}

// Set stores value under key. Existing keys keep their position; new keys
// are appended.
func (f *Fields) Set(key string, value *Value) {
	if _, ok := f.vals[key]; !ok {
		f.keys = append(f.keys, key)
	}
	f.vals[key] = value
}

// Delete removes key and reports whether it was present.
func (f *Fields) Delete(key string) bool {
	if _, ok := f.vals[key]; !ok {
		return false
	}
	delete(f.vals, key)
	for i, k := range f.keys {
		if k == key {
			f.keys = append(f.keys[:i], f.keys[i+1:]...)
			break
		}
	}
	return true
}

// EnsureObject returns the object stored under key, creating it when the
// key is absent. A present non-object member is replaced by an empty
// object ("expect object at path, else treat as empty").
func (f *Fields) EnsureObject(key string) *Fields {
	if v, ok := f.vals[key]; ok && v.kind == KindObject {
		return v.objVal
	}
	obj := NewObject()
	f.Set(key, obj)
	return obj.objVal
}

// Clone returns a deep copy of v.
func Clone(v *Value) *Value {
	if v == nil {
		return nil
	}
	out := &Value{kind: v.kind, boolVal: v.boolVal, numVal: v.numVal, strVal: v.strVal}
	switch v.kind {
	case KindArray:
		out.arrVal = make([]*Value, len(v.arrVal))
		for i, item := range v.arrVal {
			out.arrVal[i] = Clone(item)
		}
	case KindObject:
		out.objVal = newFields()
		for _, key := range v.objVal.keys {
			out.objVal.Set(key, Clone(v.objVal.vals[key]))
		}
	}
	return out
}

// Parse decodes a standard JSON document into a Value.
func Parse(data []byte) (*Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := parseValue(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("unexpected content after JSON document")
	}
	return v, nil
}

// ParseJSONC decodes a JSON document that may contain comments and
// trailing commas.
func ParseJSONC(data []byte) (*Value, error) {
	standard, err := hujson.Standardize(data)
	if err != nil {
		return nil, err
	}
	return Parse(standard)
}

func parseValue(dec *json.Decoder) (*Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return parseObject(dec)
		case '[':
			return parseArray(dec)
		default:
			return nil, fmt.Errorf("unexpected delimiter %q", t)
		}
	case string:
		return NewString(t), nil
	case json.Number:
		return NewNumber(t), nil
	case bool:
		return NewBool(t), nil
	case nil:
		return NewNull(), nil
	default:
		return nil, fmt.Errorf("unexpected token %v", tok)
	}
}

func parseObject(dec *json.Decoder) (*Value, error) {
	obj := NewObject()
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("object key is not a string: %v", keyTok)
		}
		val, err := parseValue(dec)
		if err != nil {
			return nil, err
		}
		obj.objVal.Set(key, val)
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return obj, nil
}

func parseArray(dec *json.Decoder) (*Value, error) {
	var items []*Value
	for dec.More() {
		item, err := parseValue(dec)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return NewArray(items...), nil
}

// Encode serializes v as 2-space-indented JSON with a trailing newline.
// Object members are emitted in insertion order, so encoding is stable.
func Encode(v *Value) []byte {
	var buf bytes.Buffer
	writeValue(&buf, v, 0)
	buf.WriteByte('\n')
	return buf.Bytes()
}

const indentUnit = "  "

func writeIndent(buf *bytes.Buffer, depth int) {
	for i := 0; i < depth; i++ {
		buf.WriteString(indentUnit)
	}
}

func writeValue(buf *bytes.Buffer, v *Value, depth int) {
	if v == nil {
		buf.WriteString("null")
		return
	}
	switch v.kind {
	case KindNull:
		buf.WriteString("null")
	case KindBool:
		if v.boolVal {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case KindNumber:
		buf.WriteString(string(v.numVal))
	case KindString:
		writeString(buf, v.strVal)
	case KindArray:
		if len(v.arrVal) == 0 {
			buf.WriteString("[]")
			return
		}
		buf.WriteString("[\n")
		for i, item := range v.arrVal {
			writeIndent(buf, depth+1)
			writeValue(buf, item, depth+1)
			if i < len(v.arrVal)-1 {
				buf.WriteByte(',')
			}
			buf.WriteByte('\n')
		}
		writeIndent(buf, depth)
		buf.WriteByte(']')
	case KindObject:
		if v.objVal.Len() == 0 {
			buf.WriteString("{}")
			return
		}
		buf.WriteString("{\n")
		for i, key := range v.objVal.keys {
			writeIndent(buf, depth+1)
			writeString(buf, key)
			buf.WriteString(": ")
			writeValue(buf, v.objVal.vals[key], depth+1)
			if i < len(v.objVal.keys)-1 {
				buf.WriteByte(',')
			}
			buf.WriteByte('\n')
		}
		writeIndent(buf, depth)
		buf.WriteByte('}')
	}
}

func writeString(buf *bytes.Buffer, s string) {
	// json.Marshal never fails for strings.
	encoded, _ := json.Marshal(s)
	buf.Write(encoded)
}
