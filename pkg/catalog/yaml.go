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

package catalog

import (
	"github.com/pkg/errors"
	"sigs.k8s.io/yaml"

	"github.com/quarrydb/quarry/pkg/logical"
)

// ErrInvalidSchemaFile is raised when a YAML catalog description is malformed.
var ErrInvalidSchemaFile = errors.New("invalid schema file")

type schemaFile struct {
	Databases []databaseSpec `json:"databases"`
	Views     []viewSpec     `json:"views"`
}

type databaseSpec struct {
	Properties map[string]string `json:"properties"`
	Name       string            `json:"name"`
	Location   string            `json:"location"`
}

type viewSpec struct {
	Name    string       `json:"name"`
	Scope   string       `json:"scope"`
	Columns []columnSpec `json:"columns"`
}

type columnSpec struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

var columnTypes = map[string]logical.DataType{
	"int":    logical.DataTypeInt,
	"string": logical.DataTypeString,
	"float":  logical.DataTypeFloat,
	"bool":   logical.DataTypeBool,
}

// FromYAML builds a catalog from a YAML schema description. Views with scope
// "global" land in the given registry; everything else is session-scoped.
func FromYAML(data []byte, globals *GlobalRegistry) (*Catalog, error) {
	var sf schemaFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, errors.Wrap(ErrInvalidSchemaFile, err.Error())
	}
	c := New(globals)
	for i := range sf.Databases {
		db := sf.Databases[i]
		if db.Name == "" {
			return nil, errors.Wrap(ErrInvalidSchemaFile, "database without a name")
		}
		if err := c.CreateDatabase(&Database{Name: db.Name, Location: db.Location, Properties: db.Properties}, true); err != nil {
			return nil, err
		}
	}
	for _, v := range sf.Views {
		if v.Name == "" {
			return nil, errors.Wrap(ErrInvalidSchemaFile, "view without a name")
		}
		attrs := make([]*logical.Attribute, 0, len(v.Columns))
		for _, col := range v.Columns {
			t, ok := columnTypes[col.Type]
			if !ok {
				return nil, errors.Wrapf(ErrInvalidSchemaFile, "view %s: unknown column type %q", v.Name, col.Type)
			}
			attrs = append(attrs, logical.NewAttribute(col.Name, t))
		}
		body := logical.LocalRelation(attrs...)
		var err error
		if v.Scope == "global" {
			err = c.CreateGlobalTempView(v.Name, body, true)
		} else {
			err = c.CreateTempView(v.Name, body, true)
		}
		if err != nil {
			return nil, err
		}
	}
	return c, nil
}
