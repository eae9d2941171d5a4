// Licensed to the Quarry project under one or more contributor
// license agreements. See the NOTICE file distributed with
// this work for additional information regarding copyright
// ownership. The Quarry project licenses this file to you under
// the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing,
// software distributed under the License is distributed on an
// "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
// KIND, either express or implied.  See the License for the
// specific language governing permissions and limitations
// under the License.

package logical

import (
	"fmt"
	"strings"
)

// DataType is the value type of an attribute or expression.
type DataType uint8

// Known data types.
const (
	DataTypeUnknown DataType = iota
	DataTypeInt
	DataTypeString
	DataTypeFloat
	DataTypeBool
)

func (d DataType) String() string {
	switch d {
	case DataTypeInt:
		return "int"
	case DataTypeString:
		return "string"
	case DataTypeFloat:
		return "float"
	case DataTypeBool:
		return "bool"
	default:
		return "unknown"
	}
}

// Attribute is one named, typed output column of a plan node.
type Attribute struct {
	Name string
	Type DataType
}

// NewAttribute creates an attribute with the given name and type.
func NewAttribute(name string, t DataType) *Attribute {
	return &Attribute{Name: name, Type: t}
}

// IntAttr creates an int attribute.
func IntAttr(name string) *Attribute { return NewAttribute(name, DataTypeInt) }

// StrAttr creates a string attribute.
func StrAttr(name string) *Attribute { return NewAttribute(name, DataTypeString) }

// Equal compares a and other by name and type.
func (a *Attribute) Equal(other *Attribute) bool {
	return a.Name == other.Name && a.Type == other.Type
}

func (a *Attribute) String() string {
	return fmt.Sprintf("%s<%s>", a.Name, a.Type)
}

// Schema is the ordered output attribute list of a plan node.
type Schema []*Attribute

// FindAttribute looks an attribute up by name under the given case policy.
// Under insensitive matching an exact match wins over a folded one.
func (s Schema) FindAttribute(name string, caseSensitive bool) *Attribute {
	for _, attr := range s {
		if attr.Name == name {
			return attr
		}
	}
	if caseSensitive {
		return nil
	}
	for _, attr := range s {
		if strings.EqualFold(attr.Name, name) {
			return attr
		}
	}
	return nil
}

// Equal compares the schemas attribute by attribute, order included.
func (s Schema) Equal(other Schema) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if !s[i].Equal(other[i]) {
			return false
		}
	}
	return true
}

func (s Schema) String() string {
	names := make([]string, 0, len(s))
	for _, attr := range s {
		names = append(names, attr.String())
	}
	return "[" + strings.Join(names, ", ") + "]"
}
