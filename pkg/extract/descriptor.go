package extract

import (
	"fmt"
	"time"
)

// Kind is the declared primitive type of an extracted field.
type Kind string

const (
	KindInt      Kind = "int"
	KindFloat    Kind = "float"
	KindString   Kind = "str"
	KindBool     Kind = "bool"
	KindDate     Kind = "date"
	KindDateTime Kind = "datetime"
	KindList     Kind = "list"
)

// Field describes one value to pull out of a nested record: the key path
// into the record plus the declared type of the leaf.
type Field struct {
	Path []string
	Kind Kind
}

// F is a shorthand constructor for field descriptor tables.
func F(kind Kind, path ...string) Field {
	return Field{Path: path, Kind: kind}
}

// Name joins the path segments into the flat column name.
func (f Field) Name() string {
	name := ""
	for i, seg := range f.Path {
		if i > 0 {
			name += "_"
		}
		name += seg
	}
	return name
}

var epoch = time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC)

// DefaultFor returns the sentinel value a field of the given kind takes
// when its path does not resolve. Every recognized kind has an entry;
// an unknown kind is a configuration error.
func DefaultFor(kind Kind) (any, error) {
	switch kind {
	case KindInt:
		return -1, nil
	case KindFloat:
		return -1.0, nil
	case KindString:
		return "no_data", nil
	case KindBool:
		return false, nil
	case KindDate, KindDateTime:
		return epoch, nil
	case KindList:
		return []any{}, nil
	default:
		return nil, fmt.Errorf("no default for unknown kind %q", kind)
	}
}
