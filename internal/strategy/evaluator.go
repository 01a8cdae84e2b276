package strategy

import "StockSentinel/internal/model"

// Evaluator applies alert rules to indicator snapshots under fixed thresholds.
// Construct it with NewEvaluator so the thresholds are known to be consistent.
type Evaluator struct {
	th model.AlertThresholds
}

// NewEvaluator validates the thresholds and returns an Evaluator.
func NewEvaluator(th model.AlertThresholds) (*Evaluator, error) {
	if err := ValidateThresholds(th); err != nil {
		return nil, err
	}
	return &Evaluator{th: th}, nil
}

// Thresholds returns the thresholds the evaluator was built with.
func (e *Evaluator) Thresholds() model.AlertThresholds { return e.th }

// Evaluate runs every rule against current, using previous for transition rules.
// previous is nil at the first point of a series.
// Results are returned in rule order: overbought, oversold, volume spike, MACD crossover.
func (e *Evaluator) Evaluate(current model.IndicatorSnapshot, previous *model.IndicatorSnapshot) model.Evaluation {
	return model.Evaluation{Results: []model.RuleResult{
		e.rsiOverbought(current),
		e.rsiOversold(current),
		e.volumeSpike(current),
		macdBullishCrossover(current, previous),
	}}
}

func (e *Evaluator) rsiOverbought(cur model.IndicatorSnapshot) model.RuleResult {
	r := model.RuleResult{Kind: model.AlertRSIOverbought, Value: cur.RSI}
	if !cur.Valid.RSI {
		return r
	}
	r.Status = outcome(cur.RSI > e.th.RSIUpper)
	return r
}

func (e *Evaluator) rsiOversold(cur model.IndicatorSnapshot) model.RuleResult {
	r := model.RuleResult{Kind: model.AlertRSIOversold, Value: cur.RSI}
	if !cur.Valid.RSI {
		return r
	}
	r.Status = outcome(cur.RSI < e.th.RSILower)
	return r
}

func (e *Evaluator) volumeSpike(cur model.IndicatorSnapshot) model.RuleResult {
	r := model.RuleResult{Kind: model.AlertVolumeSpike, Value: float64(cur.Volume)}
	if !cur.Valid.AvgVolume {
		return r
	}
	r.Status = outcome(float64(cur.Volume) > e.th.VolumeSpikeFactor*cur.AvgVolume5)
	return r
}

// macdBullishCrossover fires only on the point where MACD moves from below to above Signal.
func macdBullishCrossover(cur model.IndicatorSnapshot, prev *model.IndicatorSnapshot) model.RuleResult {
	r := model.RuleResult{Kind: model.AlertMACDBullishCrossover, Value: cur.MACD}
	if prev == nil || !cur.Valid.MACD || !prev.Valid.MACD {
		return r
	}
	r.Status = outcome(cur.MACD > cur.Signal && prev.MACD < prev.Signal)
	return r
}

func outcome(fired bool) model.RuleStatus {
	if fired {
		return model.RuleFired
	}
	return model.RuleNotFired
}
