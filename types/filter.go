package types

const (
	defaultPerPage = 50
	MaximumPerPage = 250
)

// CoinOrder is the sort key accepted by the markets listing.
type CoinOrder string

const (
	OrderMarketCapDesc CoinOrder = "market_cap_desc"
	OrderMarketCapAsc  CoinOrder = "market_cap_asc"
	OrderVolumeDesc    CoinOrder = "volume_desc"
)

// CoinsFilter selects one page of the markets listing. Page is 1-based.
type CoinsFilter struct {
	Page    int       `json:"page"`
	PerPage int       `json:"perPage"`
	Order   CoinOrder `json:"order"`
}

func (f *CoinsFilter) Sanitize() {
	if f.PerPage <= 0 {
		f.PerPage = defaultPerPage
	} else if f.PerPage > MaximumPerPage {
		f.PerPage = MaximumPerPage
	}
	if f.Order == "" {
		f.Order = OrderMarketCapDesc
	}
}

func (f CoinsFilter) Validate() error {
	if f.Page < 1 {
		return ErrInvalidParam
	}
	return nil
}
