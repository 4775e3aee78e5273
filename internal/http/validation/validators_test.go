package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRules(t *testing.T) {
	tests := []struct {
		name  string
		rule  Rule
		value string
		want  string
	}{
		{name: "text ok", rule: Text("Name", 10), value: "valid"},
		{name: "text blank", rule: Text("Name", 10), value: "   ", want: "Name is required."},
		{name: "text too long", rule: Text("Name", 5), value: "toolong", want: "Name cannot exceed 5 characters."},
		{name: "text counts runes", rule: Text("Name", 5), value: "लड्डू"},
		{name: "text trims before counting", rule: Text("Name", 5), value: "  exact  "},

		{name: "email ok", rule: Email("Email"), value: "  jane@example.com "},
		{name: "email blank", rule: Email("Email"), value: "", want: "Email is required."},
		{name: "email missing at", rule: Email("Email"), value: "jane.example.com", want: "Enter a valid email address."},
		{name: "email display name", rule: Email("Email"), value: "Jane <jane@example.com>", want: "Enter a valid email address."},

		{name: "whole number ok", rule: WholeNumber("Quantity", 0, 100), value: "100"},
		{name: "whole number zero", rule: WholeNumber("Quantity", 0, 100), value: "0"},
		{name: "whole number below", rule: WholeNumber("Quantity", 0, 100), value: "-1", want: "Quantity must be between 0 and 100."},
		{name: "whole number above", rule: WholeNumber("Quantity", 0, 10), value: "20", want: "Quantity must be between 0 and 10."},
		{name: "whole number fraction", rule: WholeNumber("Quantity", 0, 100), value: "1.5", want: "Quantity must be a whole number."},
		{name: "whole number blank", rule: WholeNumber("Quantity", 0, 100), value: "", want: "Quantity must be a whole number."},

		{name: "amount ok", rule: Amount("Price"), value: "12.50"},
		{name: "amount zero", rule: Amount("Price"), value: "0"},
		{name: "amount negative", rule: Amount("Price"), value: "-0.5", want: "Price must be non-negative."},
		{name: "amount blank", rule: Amount("Price"), value: " ", want: "Price is required."},
		{name: "amount words", rule: Amount("Price"), value: "cheap", want: "Price must be a number."},
		{name: "amount inf", rule: Amount("Price"), value: "Inf", want: "Price must be a number."},
		{name: "amount nan", rule: Amount("Price"), value: "NaN", want: "Price must be a number."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.rule(tt.value))
		})
	}
}

func TestErrors_Check(t *testing.T) {
	var errs Errors
	errs = errs.Check("name", "Barfi", Text("Name", 10))
	assert.Nil(t, errs, "passing checks allocate nothing")

	errs = errs.
		Check("name", "", Text("Name", 10)).
		Check("quantity", "100", WholeNumber("Quantity", 0, 10)).
		Check("category", "Milk", Text("Category", 10))
	assert.Equal(t, Errors{
		"name":     "Name is required.",
		"quantity": "Quantity must be between 0 and 10.",
	}, errs)
}

func TestErrors_CheckStopsAtFirstFailure(t *testing.T) {
	assert.Equal(t, "Price is required.",
		Errors{}.Check("price", "", Text("Price", 10), Amount("Price"))["price"])
	assert.Equal(t, "Price must be non-negative.",
		Errors{}.Check("price", "-3", Text("Price", 10), Amount("Price"))["price"])
}
