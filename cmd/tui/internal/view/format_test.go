package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "299.99 USD", FormatMoney(29999, "usd"))
	assert.Equal(t, "0.00 EUR", FormatMoney(0, "EUR"))
}

func TestParseCents(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int64
		wantErr bool
	}{
		{name: "plain", input: "10000", want: 10000},
		{name: "surrounding whitespace", input: " 2500 ", want: 2500},
		{name: "zero", input: "0", wantErr: true},
		{name: "negative", input: "-100", wantErr: true},
		{name: "decimal point", input: "99.99", wantErr: true},
		{name: "not a number", input: "ten", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCents(tt.input)

			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
