package export_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/ledgerbridge/internal/export"
)

func TestEscapeDelimited(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "Plain", in: "Office Supplies", want: "Office Supplies"},
		{name: "Empty", in: "", want: ""},
		{name: "Comma", in: "Misc, supplies", want: `"Misc, supplies"`},
		{name: "Quote", in: `12" monitor`, want: `"12"" monitor"`},
		{name: "Newline", in: "line1\nline2", want: "\"line1\nline2\""},
		{name: "CarriageReturn", in: "a\rb", want: "\"a\rb\""},
		{name: "LeadingSpaceUntouched", in: " padded ", want: " padded "},
		{name: "TabUntouched", in: "a\tb", want: "a\tb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, export.EscapeDelimited(tt.in))
		})
	}
}

func TestEscapeTabbed(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "Plain", in: "Office Supplies", want: "Office Supplies"},
		{name: "Tab", in: "a\tb", want: "a b"},
		{name: "LineBreaks", in: "line1\r\nline2", want: "line1  line2"},
		{name: "Trimmed", in: "\t padded\n", want: "padded"},
		{name: "QuotesKept", in: `Misc, "supplies"`, want: `Misc, "supplies"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, export.EscapeTabbed(tt.in))
		})
	}
}
