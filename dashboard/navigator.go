// Package dashboard
package dashboard

import (
	"fmt"
	"net/url"
)

// Navigator moves the session to another route. Controllers receive it
// explicitly instead of reaching for a global router.
type Navigator interface {
	Navigate(path string)
}

// NavigatorFunc adapts a plain function to Navigator.
type NavigatorFunc func(path string)

func (f NavigatorFunc) Navigate(path string) {
	f(path)
}

type nopNavigator struct{}

func (nopNavigator) Navigate(string) {}

// CoinPath is the detail route of a coin.
func CoinPath(id string) string {
	return fmt.Sprintf("/crypto/%s", url.PathEscape(id))
}
