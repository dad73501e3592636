// Package dashboard
package dashboard

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/kardiachain/cryptoverse-backend/types"
	"github.com/kardiachain/cryptoverse-backend/utils"
)

type RouteKind string

const (
	RouteHome      RouteKind = "home"
	RouteListing   RouteKind = "cryptocurrencies"
	RouteExchanges RouteKind = "exchanges"
	RouteNews      RouteKind = "news"
	RouteDetail    RouteKind = "detail"
	RouteNotFound  RouteKind = "not_found"
)

type Route struct {
	Kind   RouteKind `json:"kind"`
	Path   string    `json:"path"`
	CoinID string    `json:"coinId,omitempty"`
}

var staticRoutes = map[string]RouteKind{
	"/":                 RouteHome,
	"/cryptocurrencies": RouteListing,
	"/exchanges":        RouteExchanges,
	"/news":             RouteNews,
}

// Resolve maps a shell path to its route. Query strings and a trailing
// slash are ignored. Unknown paths resolve to RouteNotFound together with
// ErrInvalidRoute.
func Resolve(path string) (Route, error) {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
	}
	if path == "" {
		path = "/"
	}
	if kind, ok := staticRoutes[path]; ok {
		return Route{Kind: kind, Path: path}, nil
	}
	if rest := strings.TrimPrefix(path, "/crypto/"); rest != path && !strings.Contains(rest, "/") {
		id, err := url.PathUnescape(rest)
		if err == nil && utils.IsValidCoinID(id) {
			return Route{Kind: RouteDetail, Path: CoinPath(id), CoinID: id}, nil
		}
	}
	return Route{Kind: RouteNotFound, Path: path}, fmt.Errorf("%s: %w", path, types.ErrInvalidRoute)
}
