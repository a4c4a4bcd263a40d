// (c) 2023-2024, xcm-relay Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package router implements the planner (spec.md §4.5 and the state
// machine of §4.5): it wires the validator, classifier, and program builder
// together, drives local execution under the caller's transactional
// boundary, hands Transact programs to the transport, and emits the
// success event. This is the "core" spec.md §2 describes.
package router

import (
	"fmt"

	"github.com/ethereum/go-ethereum/event"
	"github.com/ethereum/go-ethereum/log"
	"github.com/google/uuid"
	"github.com/holiman/uint256"

	"github.com/sankar-boro/xcm-relay/internal/asset"
	"github.com/sankar-boro/xcm-relay/internal/location"
	"github.com/sankar-boro/xcm-relay/internal/program"
	"github.com/sankar-boro/xcm-relay/internal/request"
	"github.com/sankar-boro/xcm-relay/internal/rerr"
	"github.com/sankar-boro/xcm-relay/internal/reserve"
	"github.com/sankar-boro/xcm-relay/internal/route"
)

// Router is the transfer planner. All configuration is injected at
// construction (spec.md §9, "No global mutable state") so tests can
// instantiate multiple routers with different topologies in the same
// process.
type Router struct {
	Params    request.Params
	Resolver  reserve.Resolver
	Weigher   Weigher
	Executor  Executor
	Transport Transport
	Barrier   NativeBarrier // optional; nil disables the native outflow limit

	metrics *metrics
	feed    event.Feed
}

// New constructs a Router. metrics may be nil to disable instrumentation;
// barrier may be nil to disable the native outflow limit.
func New(params request.Params, resolver reserve.Resolver, weigher Weigher, executor Executor, transport Transport, barrier NativeBarrier, m *metrics) *Router {
	return &Router{
		Params:    params,
		Resolver:  resolver,
		Weigher:   weigher,
		Executor:  executor,
		Transport: transport,
		Barrier:   barrier,
		metrics:   m,
	}
}

// dispatch runs the linear state machine of spec.md §4.5 for an
// already-validated request: classify, build, weigh, execute, emit. It is
// the synchronous core every entry point below funnels into; callers run it
// inside their own transactional boundary (spec.md §4, "Lifecycle") — on
// any returned error, the caller must roll back every balance effect
// dispatch performed via r.Executor.
func (r *Router) dispatch(req *request.TransferRequest) error {
	id := uuid.New()
	log.Debug("router: dispatch received", "id", id, "dest", req.Dest)

	if err := r.checkBarrier(req); err != nil {
		r.fail(id, "barrier", err)
		return err
	}

	plan, err := route.Classify(req, r.Resolver)
	if err != nil {
		r.fail(id, "classify", err)
		return err
	}
	log.Debug("router: classified", "id", id, "kind", plan.Kind, "split", plan.IsSplit())
	r.metrics.observeDispatch(plan.Kind.String())

	programs, err := program.Build(req, plan, r.Resolver.Ancestry())
	if err != nil {
		r.fail(id, "build", err)
		return err
	}

	if err := r.executeAll(id, req.Sender, programs); err != nil {
		return err
	}

	if req.Piggyback != nil {
		if err := r.dispatchTransact(id, req, plan); err != nil {
			return err
		}
	}

	r.commitBarrier(req)
	r.emit(TransferredMultiAssets{Sender: req.Sender, Assets: req.Assets, Fee: req.Fee, Dest: req.Dest})
	log.Debug("router: dispatch completed", "id", id)
	return nil
}

// executeAll weighs and locally executes, in order, every asset-transfer
// leg program (spec.md §4.5 steps 1-2; §5 ordering: leg A before leg B).
func (r *Router) executeAll(id uuid.UUID, sender []byte, programs []program.Program) error {
	for i, p := range programs {
		w, err := r.Weigher.Weight(p)
		if err != nil {
			r.fail(id, "weigh", rerr.ErrUnweighableMessage)
			return rerr.ErrUnweighableMessage
		}
		r.metrics.observeWeight(float64(w))
		if err := r.Executor.ExecuteInCredit(sender, p, w); err != nil {
			wrapped := fmt.Errorf("%w: leg %d: %s", rerr.ErrXcmExecutionFailed, i, err)
			r.fail(id, "execute", wrapped)
			return wrapped
		}
	}
	return nil
}

// dispatchTransact builds and hands off the Transact program directly to
// the transport, per spec.md §4.5 step 3 — it is not run through
// ExecuteInCredit like the transfer legs.
func (r *Router) dispatchTransact(id uuid.UUID, req *request.TransferRequest, plan *route.Plan) error {
	fee, err := transactFeeAsset(req)
	if err != nil {
		r.fail(id, "build", err)
		return err
	}
	p, err := program.BuildTransact(req.Piggyback, fee, req.OriginAsLocation.Interior, req.DestWeight, r.Resolver.Ancestry(), plan.DestChain)
	if err != nil {
		r.fail(id, "build", err)
		return err
	}
	if err := r.Transport.Send(plan.DestChain, p); err != nil {
		wrapped := fmt.Errorf("%w: %s", rerr.ErrSendFailure, err)
		r.fail(id, "send", wrapped)
		return wrapped
	}
	return nil
}

// transactFeeAsset identifies the asset that funds a piggybacked Transact:
// the request's own fee asset, unless the caller supplied a dedicated
// transact fee via Piggyback's refund beneficiary wiring (see
// TransferWithTransact), in which case the caller already set req.Fee to
// that amount before calling dispatch.
func transactFeeAsset(req *request.TransferRequest) (asset.Asset, error) {
	if req.Fee.Amount == nil || req.Fee.Amount.IsZero() {
		return asset.Asset{}, rerr.ErrZeroFee
	}
	return req.Fee, nil
}

func (r *Router) checkBarrier(req *request.TransferRequest) error {
	if r.Barrier == nil {
		return nil
	}
	native := nativeAmount(req, r.Resolver)
	if native.IsZero() {
		return nil
	}
	return r.Barrier.EnsureLimitNotExceeded(req.Sender, native)
}

func (r *Router) commitBarrier(req *request.TransferRequest) {
	if r.Barrier == nil {
		return
	}
	native := nativeAmount(req, r.Resolver)
	if native.IsZero() {
		return
	}
	r.Barrier.UpdateTransfers(req.Sender, native)
}

// nativeAmount sums the amounts of every asset in req whose reserve is this
// chain itself — the "native asset" the optional outflow limiter (spec.md
// §6) guards.
func nativeAmount(req *request.TransferRequest, resolver reserve.Resolver) *uint256.Int {
	self := resolver.SelfLocation()
	total := new(uint256.Int)
	for _, a := range req.Assets.Assets() {
		if r, ok := resolver.Reserve(a.ID); ok && r.Equal(self) {
			var overflow bool
			total, overflow = new(uint256.Int).AddOverflow(total, a.Amount)
			if overflow {
				total = new(uint256.Int).SetAllOne()
			}
		}
	}
	return total
}

func (r *Router) fail(id uuid.UUID, stage string, err error) {
	log.Error("router: dispatch failed", "id", id, "stage", stage, "err", err)
	r.metrics.observeError(errorCode(err))
}

// sovereignBeneficiary is self's own address, optionally extended with an
// origin's interior path: the account this chain controls on any remote
// chain on behalf of an origin held here (original_source's
// refund_recipient/override_recipient, xtokens/lib.rs do_transact and
// do_transfer_with_transact). Used as-is, with no reanchoring onto the
// remote chain's frame — the original passes it unreanchored into both
// send_transact's refund_recipient and do_transfer_multiassets' recipient
// override, and spec.md §8 scenario 6 names the same value.
func (r *Router) sovereignBeneficiary(interior ...location.Junction) location.Location {
	return r.Resolver.SelfLocation().Append(interior...)
}
