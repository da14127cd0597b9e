package gateway_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/skillforge/coursepay/internal/gateway"
)

func TestVerifySignature(t *testing.T) {
	secret := []byte("whsec_test")
	body := []byte(`{"id":"evt_1","type":"checkout.completed"}`)

	tests := []struct {
		name   string
		body   []byte
		header string
		secret []byte
		want   bool
	}{
		{
			name:   "valid signature",
			body:   body,
			header: gateway.Sign(body, secret),
			secret: secret,
			want:   true,
		},
		{
			name:   "tampered body",
			body:   []byte(`{"id":"evt_1","type":"payment.failed"}`),
			header: gateway.Sign(body, secret),
			secret: secret,
			want:   false,
		},
		{
			name:   "wrong secret",
			body:   body,
			header: gateway.Sign(body, []byte("whsec_other")),
			secret: secret,
			want:   false,
		},
		{
			name:   "missing version prefix",
			body:   body,
			header: "deadbeef",
			secret: secret,
			want:   false,
		},
		{
			name:   "not hex",
			body:   body,
			header: "v1=zzzz",
			secret: secret,
			want:   false,
		},
		{
			name:   "empty header",
			body:   body,
			header: "",
			secret: secret,
			want:   false,
		},
		{
			name:   "empty secret never verifies",
			body:   body,
			header: gateway.Sign(body, nil),
			secret: nil,
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, gateway.VerifySignature(tt.body, tt.header, tt.secret))
		})
	}
}
