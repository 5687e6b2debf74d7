package transfer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmelo/finledger/internal/domain/errors"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		raw     string
		want    string
		wantErr string
	}{
		{raw: "1", want: "1"},
		{raw: "0.01", want: "0.01"},
		{raw: "250.50", want: "250.5"},
		{raw: "00042", want: "42"},
		{raw: "-10", wantErr: "Expected positive numeric value, found: -10"},
		{raw: "0", wantErr: "Expected positive numeric value, found: 0"},
		{raw: "0.00", wantErr: "Expected positive numeric value, found: 0.00"},
		{raw: "ten", wantErr: "Invalid amount - ten. Expected a NUMERIC value"},
		{raw: "", wantErr: "Invalid amount - . Expected a NUMERIC value"},
		{raw: "1.2.3", wantErr: "Invalid amount - 1.2.3. Expected a NUMERIC value"},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			amount, err := ParseAmount(tt.raw)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.True(t, errors.IsInvalidArgument(err))
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, amount.String())
		})
	}
}
