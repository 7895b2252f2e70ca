package config

import (
	"errors"
	"log"
	"math"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// TaxSplitPolicy defines how the nominal tax rate is divided across the two
// local components when an order stays inside the seller's jurisdiction.
// Shares are fractions of the nominal rate and must sum to 1.
type TaxSplitPolicy struct {
	ShareA float64 `mapstructure:"shareA"`
	ShareB float64 `mapstructure:"shareB"`
}

// OrderPolicy is the commercial policy applied to every order. It lives in a
// config file so ops can adjust it without a deploy.
type OrderPolicy struct {
	SellerJurisdiction string         `mapstructure:"sellerJurisdiction"`
	TaxSplit           TaxSplitPolicy `mapstructure:"taxSplit"`
}

func DefaultOrderPolicy() OrderPolicy {
	return OrderPolicy{
		SellerJurisdiction: "MH",
		TaxSplit:           TaxSplitPolicy{ShareA: 0.5, ShareB: 0.5},
	}
}

// OrderPolicyHolder exposes the current policy and hot-reloads it on file
// change. Readers always see a complete, validated policy.
type OrderPolicyHolder struct {
	current atomic.Value // holds OrderPolicy
}

func NewOrderPolicyHolder() (*OrderPolicyHolder, error) {
	v := viper.New()

	v.SetConfigName("orderpolicy")
	v.SetConfigType("yml")
	v.AddConfigPath("/var/lib/orderdesk/config")
	v.AddConfigPath("/etc/orderdesk")
	v.AddConfigPath(".")

	v.SetEnvPrefix("ORDERDESK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		defaults := DefaultOrderPolicy()
		v.SetDefault("order.sellerJurisdiction", defaults.SellerJurisdiction)
		v.SetDefault("order.taxSplit", defaults.TaxSplit)
	}

	var policy OrderPolicy
	if err := v.UnmarshalKey("order", &policy); err != nil {
		return nil, err
	}
	if err := validateOrderPolicy(policy); err != nil {
		return nil, err
	}

	holder := &OrderPolicyHolder{}
	holder.current.Store(policy)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated OrderPolicy
		if err := v.UnmarshalKey("order", &updated); err != nil {
			log.Printf("[order-policy] reload failed: %v", err)
			return
		}
		if err := validateOrderPolicy(updated); err != nil {
			log.Printf("[order-policy] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
		log.Printf("[order-policy] reloaded from %s", e.Name)
	})

	return holder, nil
}

func (h *OrderPolicyHolder) Get() OrderPolicy {
	return h.current.Load().(OrderPolicy)
}

// NewStaticOrderPolicyHolder returns a holder pinned to the given policy.
// Test helper; never watches files.
func NewStaticOrderPolicyHolder(policy OrderPolicy) *OrderPolicyHolder {
	holder := &OrderPolicyHolder{}
	holder.current.Store(policy)
	return holder
}

func validateOrderPolicy(policy OrderPolicy) error {
	if strings.TrimSpace(policy.SellerJurisdiction) == "" {
		return errors.New("order.sellerJurisdiction cannot be empty")
	}
	split := policy.TaxSplit
	if split.ShareA <= 0 || split.ShareB <= 0 {
		return errors.New("order.taxSplit shares must be positive")
	}
	if math.Abs(split.ShareA+split.ShareB-1) > 1e-9 {
		return errors.New("order.taxSplit shares must sum to 1")
	}
	return nil
}
