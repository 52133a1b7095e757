package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     OrderRequest
		wantErr bool
	}{
		{
			name:    "valid",
			req:     OrderRequest{Amount: decimal.NewFromInt(250), Receipt: "r1"},
			wantErr: false,
		},
		{
			name:    "missing amount",
			req:     OrderRequest{Receipt: "r1"},
			wantErr: true,
		},
		{
			name:    "missing receipt",
			req:     OrderRequest{Amount: decimal.NewFromInt(250)},
			wantErr: true,
		},
		{
			name:    "missing both",
			req:     OrderRequest{},
			wantErr: true,
		},
		{
			// Presence-only validation: a negative amount passes and is the
			// gateway's problem.
			name:    "negative amount accepted",
			req:     OrderRequest{Amount: decimal.NewFromInt(-5), Receipt: "r1"},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				require.Error(t, err)
				var verr *ValidationError
				require.ErrorAs(t, err, &verr)
				assert.Equal(t, "Amount and receipt are required", verr.Message)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestOrderRequestMinorUnits(t *testing.T) {
	req := OrderRequest{Amount: decimal.NewFromInt(250)}
	assert.Equal(t, int64(25000), req.MinorUnits())

	req = OrderRequest{Amount: decimal.NewFromFloat(99.99)}
	assert.Equal(t, int64(9999), req.MinorUnits())
}

func TestAdminSignupRequestValidate(t *testing.T) {
	valid := AdminSignupRequest{
		Email:       "admin@example.com",
		Password:    "secret123",
		DisplayName: "Admin",
	}

	tests := []struct {
		name    string
		mutate  func(*AdminSignupRequest)
		wantErr bool
	}{
		{"valid", func(r *AdminSignupRequest) {}, false},
		{"missing email", func(r *AdminSignupRequest) { r.Email = "" }, true},
		{"missing password", func(r *AdminSignupRequest) { r.Password = "" }, true},
		{"missing display name", func(r *AdminSignupRequest) { r.DisplayName = "" }, true},
		{"address supplied is fine", func(r *AdminSignupRequest) { r.Address = "42 Hostel Road" }, false},
		{"address absent is fine", func(r *AdminSignupRequest) { r.Address = "" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			err := req.Validate()
			if tt.wantErr {
				var verr *ValidationError
				require.ErrorAs(t, err, &verr)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
