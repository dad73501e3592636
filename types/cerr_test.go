// Package types
package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError(t *testing.T) {
	wrapErr := fmt.Errorf("%w", ErrInvalidParam)
	assert.True(t, errors.Is(wrapErr, ErrInvalidParam))
}

func TestFetchError_NotFound(t *testing.T) {
	err := fmt.Errorf("load coin: %w", &FetchError{Kind: FetchNotFound, Endpoint: "/coins/unknown", StatusCode: 404})
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.True(t, IsFetchKind(err, FetchNotFound))
	assert.False(t, IsFetchKind(err, FetchHTTP))
}

func TestFetchError_Message(t *testing.T) {
	cases := map[string]struct {
		err  *FetchError
		want string
	}{
		"HTTP": {
			err:  &FetchError{Kind: FetchHTTP, Endpoint: "/global", StatusCode: 429},
			want: "fetch /global: http status 429",
		},
		"Parse": {
			err:  &FetchError{Kind: FetchParse, Endpoint: "/exchanges", Err: errors.New("unexpected EOF")},
			want: "fetch /exchanges: parse error: unexpected EOF",
		},
		"Network": {
			err:  &FetchError{Kind: FetchNetwork, Endpoint: "/search"},
			want: "fetch /search: network error",
		},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, c.want, c.err.Error())
			assert.False(t, errors.Is(c.err, ErrNotFound))
		})
	}
}
