// (c) 2023-2024, xcm-relay Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package router

import (
	"encoding/hex"
	"errors"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sankar-boro/xcm-relay/internal/location"
	"github.com/sankar-boro/xcm-relay/internal/program"
	"github.com/sankar-boro/xcm-relay/internal/request"
	"github.com/sankar-boro/xcm-relay/internal/reserve"
)

var (
	routerSelf     = location.NewLocation(1, location.Parachain(2000))
	routerSibling3 = location.NewLocation(1, location.Parachain(3000))
)

type fakeWeigher struct{ weight program.Weight }

func (f *fakeWeigher) Weight(p program.Program) (program.Weight, error) { return f.weight, nil }

type fakeExecutor struct {
	calls int
	failOnCall int // 0 disables
	err   error
}

func (f *fakeExecutor) ExecuteInCredit(origin []byte, p program.Program, w program.Weight) error {
	f.calls++
	if f.failOnCall != 0 && f.calls == f.failOnCall {
		return f.err
	}
	return nil
}

type fakeTransport struct {
	sent int
	err  error
}

func (f *fakeTransport) Send(dest location.Location, p program.Program) error {
	f.sent++
	return f.err
}

type fakeBarrier struct {
	denyErr    error
	checked    []string
	committed  []string
}

func (f *fakeBarrier) EnsureLimitNotExceeded(sender []byte, amount *uint256.Int) error {
	f.checked = append(f.checked, string(sender))
	return f.denyErr
}

func (f *fakeBarrier) UpdateTransfers(sender []byte, amount *uint256.Int) {
	f.committed = append(f.committed, string(sender))
}

func newTestRouter(t *testing.T, weigher Weigher, executor Executor, transport Transport, barrier NativeBarrier) *Router {
	t.Helper()
	selfID := location.Here()
	resolver, err := reserve.NewTableResolver(
		routerSelf, routerSelf,
		map[string]location.Location{keyFor(selfID): routerSelf},
		nil, nil,
	)
	require.NoError(t, err)
	params := request.Params{
		Currencies:      request.MapCurrencies{"NATIVE": selfID},
		Accounts:        request.LocalAccounts{},
		MaxAssets:       4,
		MaxTransactSize: 256,
	}
	return New(params, resolver, weigher, executor, transport, barrier, nil)
}

func keyFor(l location.Location) string { return hex.EncodeToString(l.CanonicalBytes()) }

func TestTransferSelfReserveExecutesAndEmits(t *testing.T) {
	executor := &fakeExecutor{}
	transport := &fakeTransport{}
	r := newTestRouter(t, &fakeWeigher{weight: 1000}, executor, transport, nil)

	events := make(chan TransferredMultiAssets, 1)
	sub := r.Subscribe(events)
	defer sub.Unsubscribe()

	dest := location.NewLocation(1, location.Parachain(3000), location.Account([]byte("bob")))
	err := r.Transfer([]byte("alice"), "NATIVE", uint256.NewInt(100), dest, 1_000_000)
	require.NoError(t, err)

	assert.Equal(t, 1, executor.calls, "self-reserve is a single-leg program")
	assert.Equal(t, 0, transport.sent, "no Transact piggyback means no transport send")

	select {
	case e := <-events:
		assert.Equal(t, []byte("alice"), e.Sender)
		assert.True(t, e.Dest.Equal(dest))
	default:
		t.Fatal("expected exactly one TransferredMultiAssets event")
	}
}

func TestTransferRollbackOnExecutionFailureEmitsNoEvent(t *testing.T) {
	wantErr := errors.New("insufficient balance")
	executor := &fakeExecutor{failOnCall: 1, err: wantErr}
	transport := &fakeTransport{}
	r := newTestRouter(t, &fakeWeigher{weight: 1000}, executor, transport, nil)

	events := make(chan TransferredMultiAssets, 1)
	sub := r.Subscribe(events)
	defer sub.Unsubscribe()

	dest := location.NewLocation(1, location.Parachain(3000), location.Account([]byte("bob")))
	err := r.Transfer([]byte("alice"), "NATIVE", uint256.NewInt(100), dest, 1_000_000)
	require.Error(t, err)

	select {
	case <-events:
		t.Fatal("a failed dispatch must never emit TransferredMultiAssets")
	default:
	}
}

func TestTransferWithFeeSameCurrencyExecutesOneLeg(t *testing.T) {
	executor := &fakeExecutor{}
	r := newTestRouter(t, &fakeWeigher{weight: 1000}, executor, &fakeTransport{}, nil)

	dest := location.NewLocation(1, location.Parachain(3000), location.Account([]byte("bob")))
	err := r.TransferWithFee([]byte("alice"), "NATIVE", uint256.NewInt(100), uint256.NewInt(5), dest, 1_000_000)
	require.NoError(t, err)
	assert.Equal(t, 1, executor.calls)
}

func TestTransactSendsOneMessageNoEvent(t *testing.T) {
	transport := &fakeTransport{}
	r := newTestRouter(t, &fakeWeigher{weight: 1000}, &fakeExecutor{}, transport, nil)

	events := make(chan TransferredMultiAssets, 1)
	sub := r.Subscribe(events)
	defer sub.Unsubscribe()

	destChain := location.NewLocation(1, location.Parachain(3000))
	err := r.Transact([]byte("alice"), "NATIVE", destChain, 500_000, []byte{0x01, 0x02}, uint256.NewInt(10))
	require.NoError(t, err)
	assert.Equal(t, 1, transport.sent)

	select {
	case <-events:
		t.Fatal("a bare Transact moves nothing held here and must not emit TransferredMultiAssets")
	default:
	}
}

func TestTransferWithTransactSendsBothLegs(t *testing.T) {
	executor := &fakeExecutor{}
	transport := &fakeTransport{}
	r := newTestRouter(t, &fakeWeigher{weight: 1000}, executor, transport, nil)

	destChain := location.NewLocation(1, location.Parachain(3000))
	err := r.TransferWithTransact([]byte("alice"), "NATIVE", uint256.NewInt(100), destChain, 500_000, []byte{0xAA}, uint256.NewInt(10))
	require.NoError(t, err)

	assert.Equal(t, 1, executor.calls, "the funding transfer runs through local execution")
	assert.Equal(t, 1, transport.sent, "the Transact payload is handed to the transport")
}

func TestBarrierRejectsOverLimitTransfer(t *testing.T) {
	barrier := &fakeBarrier{denyErr: errors.New("rate limit exceeded")}
	r := newTestRouter(t, &fakeWeigher{weight: 1000}, &fakeExecutor{}, &fakeTransport{}, barrier)

	dest := location.NewLocation(1, location.Parachain(3000), location.Account([]byte("bob")))
	err := r.Transfer([]byte("alice"), "NATIVE", uint256.NewInt(100), dest, 1_000_000)
	assert.Error(t, err)
	assert.Len(t, barrier.checked, 1)
	assert.Empty(t, barrier.committed, "a denied transfer must not commit the barrier")
}

func TestBarrierCommitsOnSuccess(t *testing.T) {
	barrier := &fakeBarrier{}
	r := newTestRouter(t, &fakeWeigher{weight: 1000}, &fakeExecutor{}, &fakeTransport{}, barrier)

	dest := location.NewLocation(1, location.Parachain(3000), location.Account([]byte("bob")))
	err := r.Transfer([]byte("alice"), "NATIVE", uint256.NewInt(100), dest, 1_000_000)
	require.NoError(t, err)
	assert.Len(t, barrier.committed, 1)
}
