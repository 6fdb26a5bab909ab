// Package addressbook holds the checkout-side address selection rules.
// The server owns the address records and the single-default invariant;
// this is only the client's view over what it fetched.
package addressbook

import (
	domain "github.com/Shubhojit-pal/Flavour-s-garden-DevOps/internal/entity"
)

// DefaultOrFirst resolves the address to pre-select at checkout: the
// default if the backend returned one, otherwise the first address in
// returned order, otherwise none (ok=false).
func DefaultOrFirst(addresses []domain.Address) (domain.Address, bool) {
	for _, a := range addresses {
		if a.IsDefault {
			return a, true
		}
	}
	if len(addresses) > 0 {
		return addresses[0], true
	}
	return domain.Address{}, false
}

// Selection tracks the delivery address for one checkout session. It
// starts at the resolved default; an explicit user pick overrides it
// for this session only and is never written back as a new default.
type Selection struct {
	addresses []domain.Address
	chosen    domain.Address
	hasChosen bool
}

func NewSelection(addresses []domain.Address) *Selection {
	return &Selection{addresses: addresses}
}

// Choose records an explicit pick. Unknown ids are ignored so a stale
// UI can't select an address that was deleted underneath it.
func (s *Selection) Choose(addressID string) {
	for _, a := range s.addresses {
		if a.ID == addressID {
			s.chosen = a
			s.hasChosen = true
			return
		}
	}
}

// Current returns the effective delivery address.
func (s *Selection) Current() (domain.Address, bool) {
	if s.hasChosen {
		return s.chosen, true
	}
	return DefaultOrFirst(s.addresses)
}
