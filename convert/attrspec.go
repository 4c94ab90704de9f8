package convert

import (
	"fmt"
	"strconv"
)

// Type enumerates the value types an attribute spec can declare.
type Type int

const (
	TypeString Type = iota
	TypeInt
	TypeFloat
	TypeBool
	TypeChoice
)

// Def declares the expected type of one attribute, or for TypeChoice the
// closed set of accepted values.
type Def struct {
	Type    Type
	Choices []string
}

// AttrSpec maps attribute names to their declared types. Attributes absent
// from the spec are carried as raw strings.
type AttrSpec map[string]Def

func String() Def { return Def{Type: TypeString} }
func Int() Def    { return Def{Type: TypeInt} }
func Float() Def  { return Def{Type: TypeFloat} }
func Bool() Def   { return Def{Type: TypeBool} }

func Choice(vals ...string) Def {
	return Def{Type: TypeChoice, Choices: vals}
}

// Coerce converts a raw markup value to the declared type. Booleans follow
// the file format's convention: the explicit false spellings and "0" are
// false, any other non-empty value is true.
func (d Def) Coerce(raw string) (any, error) {
	switch d.Type {
	case TypeString:
		return raw, nil
	case TypeInt:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%q is not an integer", raw)
		}
		return int(n), nil
	case TypeFloat:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("%q is not a number", raw)
		}
		return f, nil
	case TypeBool:
		switch raw {
		case "false", "False", "FALSE", "0", "":
			return false, nil
		default:
			return true, nil
		}
	case TypeChoice:
		for _, c := range d.Choices {
			if raw == c {
				return raw, nil
			}
		}
		return nil, fmt.Errorf("%q is not one of %v", raw, d.Choices)
	default:
		return nil, fmt.Errorf("unknown attribute type %d", d.Type)
	}
}

// Format renders a typed attribute value back to its markup string form.
func Format(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case bool:
		if t {
			return "true"
		}
		return "false"
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}
