// (c) 2023-2024, xcm-relay Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package rpcserver

import (
	"net/http"

	"github.com/gorilla/rpc"
	"github.com/gorilla/rpc/json"

	"github.com/sankar-boro/xcm-relay/internal/router"
)

// New builds the JSON-RPC HTTP handler exposing r's entry points under
// the "xcmrelay" service namespace (e.g. "xcmrelay.Transfer").
func New(r *router.Router) (http.Handler, error) {
	server := rpc.NewServer()
	server.RegisterCodec(json.NewCodec(), "application/json")
	server.RegisterCodec(json.NewCodec(), "application/json;charset=UTF-8")
	if err := server.RegisterService(&Service{Router: r}, "xcmrelay"); err != nil {
		return nil, err
	}
	return server, nil
}
