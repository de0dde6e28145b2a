package pricing

// DefaultLoss applies when no loss configuration matches.
var DefaultLoss = LossConfig{LossRate: 0.03, MinLossQty: 10}

// ResolveLossConfig picks the most specific loss configuration: product
// scope, then category scope, then the global row, then DefaultLoss.
func ResolveLossConfig(configs []LossQuantityConfig, productID, categoryID int64) LossConfig {
	for _, scope := range []struct {
		kind LossScope
		id   int64
	}{
		{LossScopeProduct, productID},
		{LossScopeCategory, categoryID},
	} {
		for _, c := range configs {
			if c.ScopeType == scope.kind && c.ScopeID != nil && *c.ScopeID == scope.id {
				return LossConfig{LossRate: c.LossRate, MinLossQty: c.MinLossQty}
			}
		}
	}
	for _, c := range configs {
		if c.ScopeType == LossScopeGlobal {
			return LossConfig{LossRate: c.LossRate, MinLossQty: c.MinLossQty}
		}
	}
	return DefaultLoss
}

// LossQuantity is the spoilage allowance for a print run of quantity pieces.
func LossQuantity(quantity int, cfg LossConfig) int {
	loss := int(ceilInt(decInt(quantity).Mul(decF(cfg.LossRate))))
	if loss < cfg.MinLossQty {
		return cfg.MinLossQty
	}
	return loss
}
