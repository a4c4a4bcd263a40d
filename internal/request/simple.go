// (c) 2023-2024, xcm-relay Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package request

import "github.com/sankar-boro/xcm-relay/internal/location"

// MapCurrencies is a static CurrencyConverter backed by a currency-handle ->
// location table, the common case for a topology-configured deployment.
type MapCurrencies map[string]location.Location

func (m MapCurrencies) Convert(currency string) (location.Location, bool) {
	loc, ok := m[currency]
	return loc, ok
}

// LocalAccounts is the default AccountLocator: it expresses a raw account id
// as a single Account junction at this chain's own root (Parents: 0),
// matching the common case where accounts are addressed directly rather
// than through an intermediate pallet instance.
type LocalAccounts struct{}

func (LocalAccounts) AccountToLocation(account []byte) location.Location {
	return location.NewLocation(0, location.Account(account))
}
