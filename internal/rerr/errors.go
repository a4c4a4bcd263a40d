// (c) 2023-2024, xcm-relay Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package rerr holds the flat error taxonomy surfaced to callers of the
// router (spec.md §7). Every error is fatal for the current request: the
// surrounding transactional boundary (internal/router) rolls back in full
// on any of these, with no partial commit and no retry.
package rerr

import "errors"

// Input/shape
var (
	ErrBadVersion           = errors.New("xcmrelay: bad version")
	ErrInvalidAsset         = errors.New("xcmrelay: invalid asset")
	ErrInvalidDest          = errors.New("xcmrelay: invalid destination")
	ErrAssetIndexNonExistent = errors.New("xcmrelay: asset index non-existent")
	ErrTransactTooLarge     = errors.New("xcmrelay: transact payload too large")
)

// Policy
var (
	ErrNotSupportedMultiLocation = errors.New("xcmrelay: location not supported")
	ErrNotCrossChainTransfer     = errors.New("xcmrelay: not a cross-chain transfer")
	ErrTooManyAssetsBeingSent    = errors.New("xcmrelay: too many assets being sent")
	ErrZeroAmount                = errors.New("xcmrelay: zero amount")
	ErrZeroFee                   = errors.New("xcmrelay: zero fee")
)

// Routing
var (
	ErrNotCrossChainTransferableCurrency = errors.New("xcmrelay: currency is not cross-chain transferable")
	ErrAssetHasNoReserve                 = errors.New("xcmrelay: asset has no reserve")
	ErrDistinctReserveForAssetAndFee     = errors.New("xcmrelay: distinct reserve for asset and fee")
	ErrMinXcmFeeNotDefined               = errors.New("xcmrelay: min xcm fee not defined for reserve")
	ErrFeeNotEnough                       = errors.New("xcmrelay: fee not enough to cover intermediate hop")
)

// Construction
var (
	ErrCannotReanchor          = errors.New("xcmrelay: cannot reanchor location")
	ErrInvalidAncestry         = errors.New("xcmrelay: invalid ancestry")
	ErrDestinationNotInvertible = errors.New("xcmrelay: destination not invertible")
	ErrUnweighableMessage      = errors.New("xcmrelay: unweighable message")
)

// Execution
var (
	ErrXcmExecutionFailed = errors.New("xcmrelay: xcm execution failed")
	ErrSendFailure        = errors.New("xcmrelay: send failure")
)
