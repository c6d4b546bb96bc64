package models

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// RefOrLiteral models a field that is either a plain value or a pointer to
// another record. Older catalog records store the value inline; newer ones
// store `{"ref": "<id>"}`. Both forms occur for category, unit cost and
// material name, so every consumer has to handle both.
type RefOrLiteral struct {
	// Ref holds the referenced record id when the field is a reference.
	Ref string
	// Literal holds the inline value when the field is not a reference.
	// Numeric literals keep their decimal text form.
	Literal string
	// numeric remembers whether the literal arrived as a JSON number,
	// so marshaling round-trips the original representation.
	numeric bool
}

func NewLiteral(value string) RefOrLiteral {
	return RefOrLiteral{Literal: value}
}

func NewNumericLiteral(value decimal.Decimal) RefOrLiteral {
	return RefOrLiteral{Literal: value.String(), numeric: true}
}

func NewRef(id string) RefOrLiteral {
	return RefOrLiteral{Ref: id}
}

func (r RefOrLiteral) IsRef() bool {
	return r.Ref != ""
}

func (r RefOrLiteral) IsZero() bool {
	return r.Ref == "" && r.Literal == ""
}

// Decimal parses the literal as a decimal value. Empty literals are zero.
func (r RefOrLiteral) Decimal() (decimal.Decimal, error) {
	if r.IsRef() {
		return decimal.Zero, errors.New("unresolved reference has no literal value")
	}
	if r.Literal == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(r.Literal)
}

type refEnvelope struct {
	Ref string `json:"ref"`
}

func (r *RefOrLiteral) UnmarshalJSON(data []byte) error {
	var probe interface{}
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}
	switch v := probe.(type) {
	case nil:
		*r = RefOrLiteral{}
		return nil
	case string:
		*r = RefOrLiteral{Literal: v}
		return nil
	case float64:
		// re-decode through json.Number to keep the exact digits
		var num json.Number
		if err := json.Unmarshal(data, &num); err != nil {
			return err
		}
		*r = RefOrLiteral{Literal: num.String(), numeric: true}
		return nil
	case map[string]interface{}:
		var env refEnvelope
		if err := json.Unmarshal(data, &env); err != nil {
			return err
		}
		if env.Ref == "" {
			return errors.New("reference object missing ref id")
		}
		*r = RefOrLiteral{Ref: env.Ref}
		return nil
	default:
		return fmt.Errorf("unsupported value %s", string(data))
	}
}

func (r RefOrLiteral) MarshalJSON() ([]byte, error) {
	if r.IsRef() {
		return json.Marshal(refEnvelope{Ref: r.Ref})
	}
	if r.numeric {
		dec, err := r.Decimal()
		if err != nil {
			return nil, err
		}
		return []byte(dec.String()), nil
	}
	return json.Marshal(r.Literal)
}
