package dashboard

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kardiachain/cryptoverse-backend/types"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		path   string
		kind   RouteKind
		coinID string
		err    bool
	}{
		{path: "/", kind: RouteHome},
		{path: "", kind: RouteHome},
		{path: "/cryptocurrencies", kind: RouteListing},
		{path: "/cryptocurrencies/?page=2", kind: RouteListing},
		{path: "/exchanges", kind: RouteExchanges},
		{path: "/news", kind: RouteNews},
		{path: "/crypto/bitcoin", kind: RouteDetail, coinID: "bitcoin"},
		{path: "/crypto/usd-coin/", kind: RouteDetail, coinID: "usd-coin"},
		{path: "/crypto/", kind: RouteNotFound, err: true},
		{path: "/crypto/a/b", kind: RouteNotFound, err: true},
		{path: "/crypto/Bad%20Id", kind: RouteNotFound, err: true},
		{path: "/portfolio", kind: RouteNotFound, err: true},
	}
	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			r, err := Resolve(tc.path)
			assert.Equal(t, tc.kind, r.Kind)
			assert.Equal(t, tc.coinID, r.CoinID)
			if tc.err {
				assert.True(t, errors.Is(err, types.ErrInvalidRoute))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
