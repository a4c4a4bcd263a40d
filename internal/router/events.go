// (c) 2023-2024, xcm-relay Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package router

import (
	"github.com/ethereum/go-ethereum/event"

	"github.com/sankar-boro/xcm-relay/internal/asset"
	"github.com/sankar-boro/xcm-relay/internal/location"
)

// TransferredMultiAssets is emitted once per successful transfer (spec.md
// §6), after every leg has committed. No partial event is ever emitted.
type TransferredMultiAssets struct {
	Sender []byte
	Assets *asset.Bundle
	Fee    asset.Asset
	Dest   location.Location
}

// Subscribe registers sink to receive every TransferredMultiAssets this
// Router emits.
func (r *Router) Subscribe(sink chan<- TransferredMultiAssets) event.Subscription {
	return r.feed.Subscribe(sink)
}

func (r *Router) emit(e TransferredMultiAssets) {
	r.feed.Send(e)
}
