// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package pfxtable

import (
	"net/netip"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		in      any
		want    string
		wantErr error
	}{
		{"v4 addr", mpa("10.1.2.3"), "10.1.2.3/32", nil},
		{"v6 addr", mpa("2001:db8::1"), "2001:db8::1/128", nil},
		{"prefix", mpp("10.0.0.0/8"), "10.0.0.0/8", nil},
		{"unmasked prefix", netip.MustParsePrefix("10.1.2.3/8"), "10.0.0.0/8", nil},
		{"subnet", Subnet{Addr: mpa("10.1.2.3"), Len: 24}, "10.1.2.0/24", nil},
		{"key", mk("10.0.0.0/8"), "10.0.0.0/8", nil},
		{"list of one addr", []any{mpa("10.1.2.3")}, "10.1.2.3/32", nil},
		{"list of one subnet", []any{Subnet{Addr: mpa("::"), Len: 0}}, "::/0", nil},

		{"subnet too wide", Subnet{Addr: mpa("10.0.0.0"), Len: 40}, "", ErrInvalidWidth},
		{"invalid prefix", netip.PrefixFrom(mpa("10.0.0.0"), 99), "", ErrInvalidWidth},
		{"zero addr", netip.Addr{}, "", ErrInvalidAddress},
		{"zero key", Key{}, "", ErrInvalidAddress},
		{"string", "10.0.0.0/8", "", ErrUnsupportedKeyType},
		{"nil", nil, "", ErrUnsupportedKeyType},
		{"empty list", []any{}, "", ErrUnsupportedKeyType},
		{"list of two", []any{mpa("10.0.0.1"), mpa("10.0.0.2")}, "", ErrUnsupportedKeyType},
		{"nested list", []any{[]any{mpa("10.0.0.1")}}, "", ErrUnsupportedKeyType},
		{"int", 42, "", ErrUnsupportedKeyType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var (
				k   Key
				err error
			)
			require.NotPanics(t, func() { k, err = KeyOf(tt.in) })

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr), "got %v, want %v", err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, k.String())
		})
	}
}

func TestKeyTypeError(t *testing.T) {
	t.Parallel()

	_, err := KeyOf(3.14)

	var kte *KeyTypeError
	require.True(t, errors.As(err, &kte))
	assert.Equal(t, "float64", kte.Type)
	assert.Equal(t, "unsupported key type float64", err.Error())
	assert.False(t, errors.Is(err, ErrInvalidWidth))
}

func TestErrReason(t *testing.T) {
	t.Parallel()

	_, err := MakeKey(mpa("10.0.0.0"), 33)
	assert.Equal(t, "invalid_width", errReason(err))

	_, err = KeyOf(netip.Addr{})
	assert.Equal(t, "invalid_address", errReason(err))

	_, err = KeyOf("x")
	assert.Equal(t, "unsupported_type", errReason(err))

	assert.Equal(t, "unknown", errReason(errors.New("boom")))
}
