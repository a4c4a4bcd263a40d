// (c) 2023-2024, xcm-relay Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package topology

import (
	"encoding/hex"
	"fmt"

	"github.com/holiman/uint256"
	"github.com/spf13/viper"

	"github.com/sankar-boro/xcm-relay/internal/location"
	"github.com/sankar-boro/xcm-relay/internal/policy"
	"github.com/sankar-boro/xcm-relay/internal/request"
	"github.com/sankar-boro/xcm-relay/internal/reserve"
)

// Snapshot is an immutable point-in-time view of the router's topology
// configuration: self location, ancestry, the reserve and min-fee tables,
// destination policy, and the configured budgets (spec.md §5).
type Snapshot struct {
	Self            location.Location
	Ancestry        location.Location
	Reserves        map[string]location.Location
	MinFee          map[string]*uint256.Int
	Currencies      request.MapCurrencies
	Policy          *policy.Filter
	MaxAssets       int
	MaxTransactSize int
}

type rawJunction struct {
	Kind  string `mapstructure:"kind"`
	Index uint64 `mapstructure:"index"`
	Hex   string `mapstructure:"hex"`
}

type rawLocation struct {
	Parents  uint8         `mapstructure:"parents"`
	Interior []rawJunction `mapstructure:"interior"`
}

type rawReserveEntry struct {
	AssetID rawLocation `mapstructure:"asset_id"`
	Reserve rawLocation `mapstructure:"reserve"`
}

type rawMinFeeEntry struct {
	Reserve rawLocation `mapstructure:"reserve"`
	Amount  string      `mapstructure:"amount"`
}

type rawCurrencyEntry struct {
	Handle  string      `mapstructure:"handle"`
	AssetID rawLocation `mapstructure:"asset_id"`
}

type rawConfig struct {
	SelfLocation    rawLocation        `mapstructure:"self_location"`
	Ancestry        rawLocation        `mapstructure:"ancestry"`
	Reserves        []rawReserveEntry  `mapstructure:"reserves"`
	MinFees         []rawMinFeeEntry   `mapstructure:"min_fees"`
	Currencies      []rawCurrencyEntry `mapstructure:"currencies"`
	PolicyRules     []string           `mapstructure:"policy_rules"`
	MaxAssets       int                `mapstructure:"max_assets"`
	MaxTransactSize int               `mapstructure:"max_transact_size"`
}

func (j rawJunction) toJunction() (location.Junction, error) {
	switch j.Kind {
	case "parachain":
		return location.Parachain(uint32(j.Index)), nil
	case "pallet_instance":
		return location.PalletInstance(uint8(j.Index)), nil
	case "general_index":
		return location.GeneralIndex(j.Index), nil
	case "account":
		b, err := hex.DecodeString(j.Hex)
		if err != nil {
			return location.Junction{}, fmt.Errorf("topology: bad account hex: %w", err)
		}
		return location.Account(b), nil
	case "account_key_20":
		b, err := hex.DecodeString(j.Hex)
		if err != nil {
			return location.Junction{}, fmt.Errorf("topology: bad account_key_20 hex: %w", err)
		}
		return location.AccountKey20(b), nil
	case "general_key":
		b, err := hex.DecodeString(j.Hex)
		if err != nil {
			return location.Junction{}, fmt.Errorf("topology: bad general_key hex: %w", err)
		}
		return location.GeneralKey(b), nil
	default:
		return location.Junction{}, fmt.Errorf("topology: unknown junction kind %q", j.Kind)
	}
}

func (l rawLocation) toLocation() (location.Location, error) {
	out := location.Location{Parents: l.Parents}
	for _, rj := range l.Interior {
		j, err := rj.toJunction()
		if err != nil {
			return location.Location{}, err
		}
		out.Interior = append(out.Interior, j)
	}
	return out, nil
}

func keyOf(l location.Location) string { return hex.EncodeToString(l.CanonicalBytes()) }

// defaultMaxAssets and defaultMaxTransactSize match spec.md §5's suggested
// conservative default for the piggybacked call-payload ceiling.
const (
	defaultMaxAssets       = 32
	defaultMaxTransactSize = 256
)

// Load reads a topology config file (any format viper supports — yaml,
// json, toml) and converts it into a Snapshot.
func Load(path string) (*Snapshot, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("topology: reading config %s: %w", path, err)
	}
	return decode(v)
}

func decode(v *viper.Viper) (*Snapshot, error) {
	var raw rawConfig
	if err := v.Unmarshal(&raw); err != nil {
		return nil, fmt.Errorf("topology: decoding config: %w", err)
	}

	self, err := raw.SelfLocation.toLocation()
	if err != nil {
		return nil, err
	}
	ancestry, err := raw.Ancestry.toLocation()
	if err != nil {
		return nil, err
	}

	reserves := make(map[string]location.Location, len(raw.Reserves))
	for _, entry := range raw.Reserves {
		assetID, err := entry.AssetID.toLocation()
		if err != nil {
			return nil, err
		}
		reserveLoc, err := entry.Reserve.toLocation()
		if err != nil {
			return nil, err
		}
		reserves[keyOf(assetID)] = reserveLoc
	}

	minFee := make(map[string]*uint256.Int, len(raw.MinFees))
	for _, entry := range raw.MinFees {
		reserveLoc, err := entry.Reserve.toLocation()
		if err != nil {
			return nil, err
		}
		amount, err := uint256.FromDecimal(entry.Amount)
		if err != nil {
			return nil, fmt.Errorf("topology: bad min_fee amount %q: %w", entry.Amount, err)
		}
		minFee[keyOf(reserveLoc)] = amount
	}

	currencies := make(request.MapCurrencies, len(raw.Currencies))
	for _, entry := range raw.Currencies {
		id, err := entry.AssetID.toLocation()
		if err != nil {
			return nil, err
		}
		currencies[entry.Handle] = id
	}

	filter, err := policy.NewFilter(raw.PolicyRules...)
	if err != nil {
		return nil, err
	}

	maxAssets := raw.MaxAssets
	if maxAssets == 0 {
		maxAssets = defaultMaxAssets
	}
	maxTransact := raw.MaxTransactSize
	if maxTransact == 0 || maxTransact > defaultMaxTransactSize {
		maxTransact = defaultMaxTransactSize
	}

	return &Snapshot{
		Self:            self,
		Ancestry:        ancestry,
		Reserves:        reserves,
		MinFee:          minFee,
		Currencies:      currencies,
		Policy:          filter,
		MaxAssets:       maxAssets,
		MaxTransactSize: maxTransact,
	}, nil
}

// Resolver builds the reserve.Resolver this snapshot describes.
func (s *Snapshot) Resolver() (*reserve.TableResolver, error) {
	return reserve.NewTableResolver(s.Self, s.Ancestry, s.Reserves, s.MinFee, s.Policy)
}

// Params builds the request.Params this snapshot describes, using
// request.LocalAccounts as the default account locator.
func (s *Snapshot) Params() request.Params {
	return request.Params{
		Currencies:      s.Currencies,
		Accounts:        request.LocalAccounts{},
		MaxAssets:       s.MaxAssets,
		MaxTransactSize: s.MaxTransactSize,
	}
}
