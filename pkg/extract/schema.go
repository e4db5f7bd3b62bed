package extract

import "fmt"

// Column is one entry of a built schema: the flat field name and the
// storage dtype it maps to.
type Column struct {
	Name  string
	DType string
}

// dtypes maps declared field kinds to storage dtypes. Date and datetime
// share a single temporal representation.
var dtypes = map[Kind]string{
	KindInt:      "bigint",
	KindFloat:    "double",
	KindString:   "varchar",
	KindBool:     "boolean",
	KindDate:     "timestamp",
	KindDateTime: "timestamp",
	KindList:     "json",
}

// StateColumn is the contextual column prepended to every schema.
var StateColumn = F(KindString, "state")

// BuildSchema turns a descriptor list into the ordered name -> dtype
// schema for a source's typed rows. Extra columns come first, then the
// descriptors in their declared order. An unrecognized kind is a
// configuration error.
func BuildSchema(fields []Field, extra ...Field) ([]Column, error) {
	all := make([]Field, 0, len(extra)+len(fields))
	all = append(all, extra...)
	all = append(all, fields...)

	schema := make([]Column, 0, len(all))
	for _, f := range all {
		if len(f.Path) == 0 {
			return nil, fmt.Errorf("field with empty path")
		}
		dt, ok := dtypes[f.Kind]
		if !ok {
			return nil, fmt.Errorf("field %s: unknown kind %q", f.Name(), f.Kind)
		}
		schema = append(schema, Column{Name: f.Name(), DType: dt})
	}
	return schema, nil
}
