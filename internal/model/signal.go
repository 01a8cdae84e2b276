package model

// AlertKind identifies which rule produced an alert.
type AlertKind string

const (
	AlertRSIOverbought        AlertKind = "RSI_OVERBOUGHT"
	AlertRSIOversold          AlertKind = "RSI_OVERSOLD"
	AlertVolumeSpike          AlertKind = "VOLUME_SPIKE"
	AlertMACDBullishCrossover AlertKind = "MACD_BULLISH_CROSSOVER"
)

// Label returns the human-readable label used in reports and notifications.
func (k AlertKind) Label() string {
	switch k {
	case AlertRSIOverbought:
		return "📈 RSI Overbought"
	case AlertRSIOversold:
		return "📉 RSI Oversold"
	case AlertVolumeSpike:
		return "🚨 Volume Spike"
	case AlertMACDBullishCrossover:
		return "✅ MACD Bullish Crossover"
	default:
		return string(k)
	}
}

// AlertThresholds is the caller-supplied rule configuration.
type AlertThresholds struct {
	RSIUpper          float64 `yaml:"rsi_upper" json:"rsi_upper" default:"70" validate:"gt=0,lt=100"`
	RSILower          float64 `yaml:"rsi_lower" json:"rsi_lower" default:"30" validate:"gt=0,ltfield=RSIUpper"`
	VolumeSpikeFactor float64 `yaml:"volume_spike_factor" json:"volume_spike_factor" default:"2.0" validate:"gt=0"`
}

// Alert is a fired rule together with the value that triggered it.
type Alert struct {
	Kind  AlertKind
	Value float64
}

// RuleStatus is the outcome of a single rule for a single point.
type RuleStatus int

const (
	// RuleInapplicable means the rule could not be checked, e.g. its indicator is still warming up.
	RuleInapplicable RuleStatus = iota
	RuleNotFired
	RuleFired
)

func (s RuleStatus) String() string {
	switch s {
	case RuleFired:
		return "fired"
	case RuleNotFired:
		return "not_fired"
	default:
		return "inapplicable"
	}
}

// RuleResult records what one rule decided.
type RuleResult struct {
	Kind   AlertKind
	Status RuleStatus
	Value  float64
}

// Evaluation is the per-point output of the rule evaluator, one result per rule in rule order.
type Evaluation struct {
	Results []RuleResult
}

// Alerts returns the fired rules in rule order.
func (e Evaluation) Alerts() []Alert {
	var out []Alert
	for _, r := range e.Results {
		if r.Status == RuleFired {
			out = append(out, Alert{Kind: r.Kind, Value: r.Value})
		}
	}
	return out
}

// Status returns the status of the given rule, or RuleInapplicable if it was not evaluated.
func (e Evaluation) Status(kind AlertKind) RuleStatus {
	for _, r := range e.Results {
		if r.Kind == kind {
			return r.Status
		}
	}
	return RuleInapplicable
}

// Fired reports whether the given rule fired.
func (e Evaluation) Fired(kind AlertKind) bool {
	return e.Status(kind) == RuleFired
}
