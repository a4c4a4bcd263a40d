// (c) 2023-2024, xcm-relay Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package router

import (
	"errors"

	"github.com/sankar-boro/xcm-relay/internal/rerr"
)

// errorCode maps a returned error onto the short label used for metrics
// partitioning and CLI/RPC error codes, falling back to "other" for wrapped
// errors this table doesn't recognise (e.g. a collaborator's own error).
func errorCode(err error) string {
	switch {
	case errors.Is(err, rerr.ErrBadVersion):
		return "bad_version"
	case errors.Is(err, rerr.ErrInvalidAsset):
		return "invalid_asset"
	case errors.Is(err, rerr.ErrInvalidDest):
		return "invalid_dest"
	case errors.Is(err, rerr.ErrAssetIndexNonExistent):
		return "asset_index_non_existent"
	case errors.Is(err, rerr.ErrTransactTooLarge):
		return "transact_too_large"
	case errors.Is(err, rerr.ErrNotSupportedMultiLocation):
		return "location_not_supported"
	case errors.Is(err, rerr.ErrNotCrossChainTransfer):
		return "not_cross_chain_transfer"
	case errors.Is(err, rerr.ErrTooManyAssetsBeingSent):
		return "too_many_assets"
	case errors.Is(err, rerr.ErrZeroAmount):
		return "zero_amount"
	case errors.Is(err, rerr.ErrZeroFee):
		return "zero_fee"
	case errors.Is(err, rerr.ErrNotCrossChainTransferableCurrency):
		return "currency_not_transferable"
	case errors.Is(err, rerr.ErrAssetHasNoReserve):
		return "asset_has_no_reserve"
	case errors.Is(err, rerr.ErrDistinctReserveForAssetAndFee):
		return "distinct_reserve"
	case errors.Is(err, rerr.ErrMinXcmFeeNotDefined):
		return "min_xcm_fee_not_defined"
	case errors.Is(err, rerr.ErrFeeNotEnough):
		return "fee_not_enough"
	case errors.Is(err, rerr.ErrCannotReanchor):
		return "cannot_reanchor"
	case errors.Is(err, rerr.ErrInvalidAncestry):
		return "invalid_ancestry"
	case errors.Is(err, rerr.ErrDestinationNotInvertible):
		return "destination_not_invertible"
	case errors.Is(err, rerr.ErrUnweighableMessage):
		return "unweighable_message"
	case errors.Is(err, rerr.ErrXcmExecutionFailed):
		return "xcm_execution_failed"
	case errors.Is(err, rerr.ErrSendFailure):
		return "send_failure"
	default:
		return "other"
	}
}
