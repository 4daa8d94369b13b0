package comfort

import (
	"sync"

	"codeberg.org/mutker/comfortd/internal/errors"
	"codeberg.org/mutker/comfortd/internal/logger"
)

// State attribute keys published alongside computed values.
const (
	AttrTemperature          = "temperature"
	AttrHumidity             = "humidity"
	AttrDewPoint             = "dew_point"
	AttrHumidex              = "humidex"
	AttrFrostPoint           = "frost_point"
	AttrRelativeStrainIndex  = "relative_strain_index"
	AttrSummerScharlauIndex  = "summer_scharlau_index"
	AttrWinterScharlauIndex  = "winter_scharlau_index"
	AttrSummerSimmerIndex    = "summer_simmer_index"
	AttrThomsDiscomfortIndex = "thoms_discomfort_index"
)

// Result is the cached outcome of one metric computation. Numeric metrics
// carry Value; enum metrics carry Perception plus the numeric index that
// justified it in Attributes.
type Result struct {
	Metric     Metric
	Value      float64
	Perception string
	Attributes map[string]float64
}

// computeState guards one metric's cache. The mutex is scoped to the
// metric alone so that computing one metric never blocks another, and so
// that concurrent readers of a dirty metric trigger exactly one compute.
type computeState struct {
	mu          sync.Mutex
	needsUpdate bool
	result      Result
	computes    uint64
}

// Engine owns the current temperature/humidity pair of one device and a
// memoization entry per metric. Values are computed on demand: a new
// admitted reading only marks every metric dirty, the first Get after
// that recomputes.
//
// Invariant: a cached result is fresh iff its needsUpdate flag is false;
// the engine never returns a cache entry computed from a reading pair
// other than the currently stored one.
type Engine struct {
	mu          sync.RWMutex
	temperature *float64
	humidity    *float64
	rawTemp     float64

	states  map[Metric]*computeState
	updates chan struct{}
}

// NewEngine allocates an engine with one compute state per catalog metric.
func NewEngine() *Engine {
	states := make(map[Metric]*computeState, len(catalog))
	for m := range catalog {
		states[m] = &computeState{}
	}

	return &Engine{
		states:  states,
		updates: make(chan struct{}, 1),
	}
}

// SetTemperature stores a validated temperature reading and, once both
// inputs are present, marks every metric dirty and wakes subscribers.
func (e *Engine) SetTemperature(r Reading) {
	e.mu.Lock()
	v := r.Value
	e.temperature = &v
	e.rawTemp = r.Raw
	ready := e.humidity != nil
	e.mu.Unlock()

	if ready {
		e.invalidate()
	}
}

// SetHumidity stores a validated humidity reading and, once both inputs
// are present, marks every metric dirty and wakes subscribers.
func (e *Engine) SetHumidity(r Reading) {
	e.mu.Lock()
	v := r.Value
	e.humidity = &v
	ready := e.temperature != nil
	e.mu.Unlock()

	if ready {
		e.invalidate()
	}
}

func (e *Engine) invalidate() {
	for _, st := range e.states {
		st.mu.Lock()
		st.needsUpdate = true
		st.mu.Unlock()
	}

	// Fire and forget: the notification channel coalesces, nobody is
	// awaited.
	select {
	case e.updates <- struct{}{}:
	default:
	}
}

// Updates returns the notification channel. One (coalesced) token is sent
// whenever a new reading pair invalidates the caches.
func (e *Engine) Updates() <-chan struct{} {
	return e.updates
}

// Get returns the value of a metric, recomputing it under the metric's
// own lock if a new reading arrived since the last computation. Any
// number of concurrent callers trigger at most one compute; all of them
// observe the same result. Before both inputs have been seen a
// comfort_not_ready error is returned.
func (e *Engine) Get(m Metric) (Result, error) {
	errFactory := errors.New()

	st, ok := e.states[m]
	if !ok {
		return Result{}, errFactory.WithData(ErrUnknownMetric, string(m))
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	if st.needsUpdate {
		temperature, humidity, ready := e.snapshot()
		if !ready {
			return Result{}, errFactory.New(ErrNotReady)
		}

		result, err := e.compute(m, temperature, humidity)
		if err != nil {
			return Result{}, err
		}

		st.result = result
		st.needsUpdate = false
		st.computes++
		logger.Debug().
			Str("metric", string(m)).
			Uint64("computes", st.computes).
			Msg("Metric recomputed")
	}

	if st.result.Metric == "" {
		// Never computed and not dirty: inputs have not arrived yet.
		return Result{}, errFactory.New(ErrNotReady)
	}

	return st.result, nil
}

// NeedsUpdate reports whether a metric's cache is stale. Unknown metrics
// read as fresh.
func (e *Engine) NeedsUpdate(m Metric) bool {
	st, ok := e.states[m]
	if !ok {
		return false
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	return st.needsUpdate
}

// Ready reports whether both inputs have been admitted at least once.
func (e *Engine) Ready() bool {
	_, _, ready := e.snapshot()

	return ready
}

// StateAttributes returns the source values republished as attributes on
// every sensor of the device: the temperature as reported upstream and
// the relative humidity.
func (e *Engine) StateAttributes() map[string]float64 {
	e.mu.RLock()
	defer e.mu.RUnlock()

	attrs := make(map[string]float64, 2)
	if e.temperature != nil {
		attrs[AttrTemperature] = e.rawTemp
	}
	if e.humidity != nil {
		attrs[AttrHumidity] = *e.humidity
	}

	return attrs
}

// snapshot reads the current input pair. The pair is stable for the
// duration of one compute: setters replace the pointers, they never
// mutate through them.
func (e *Engine) snapshot() (temperature, humidity float64, ready bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.temperature == nil || e.humidity == nil {
		return 0, 0, false
	}

	return *e.temperature, *e.humidity, true
}

// compute dispatches to the metric's formula. Dependent metrics go
// through Get on their dependency so a fan-out of dependents evaluates
// the shared dependency exactly once per reading change.
func (e *Engine) compute(m Metric, temperature, humidity float64) (Result, error) {
	switch m {
	case MetricDewPoint:
		return numericResult(m, DewPoint(temperature, humidity)), nil
	case MetricHeatIndex:
		return numericResult(m, HeatIndex(temperature, humidity)), nil
	case MetricAbsoluteHumidity:
		return numericResult(m, AbsoluteHumidity(temperature, humidity)), nil
	case MetricSummerSimmerIndex:
		return numericResult(m, SummerSimmerIndex(temperature, humidity)), nil
	case MetricMoistAirEnthalpy:
		return numericResult(m, MoistAirEnthalpy(temperature, humidity)), nil
	case MetricHumidex:
		dewPoint, err := e.Get(MetricDewPoint)
		if err != nil {
			return Result{}, err
		}

		return numericResult(m, Humidex(temperature, dewPoint.Value)), nil
	case MetricFrostPoint:
		dewPoint, err := e.Get(MetricDewPoint)
		if err != nil {
			return Result{}, err
		}

		return numericResult(m, FrostPoint(temperature, dewPoint.Value)), nil
	case MetricDewPointPerception:
		dewPoint, err := e.Get(MetricDewPoint)
		if err != nil {
			return Result{}, err
		}

		return enumResult(m, string(PerceiveDewPoint(dewPoint.Value)),
			map[string]float64{AttrDewPoint: dewPoint.Value}), nil
	case MetricHumidexPerception:
		humidex, err := e.Get(MetricHumidex)
		if err != nil {
			return Result{}, err
		}

		return enumResult(m, string(PerceiveHumidex(humidex.Value)),
			map[string]float64{AttrHumidex: humidex.Value}), nil
	case MetricFrostRisk:
		absHumidity, err := e.Get(MetricAbsoluteHumidity)
		if err != nil {
			return Result{}, err
		}
		frostPoint, err := e.Get(MetricFrostPoint)
		if err != nil {
			return Result{}, err
		}

		risk := PerceiveFrostRisk(temperature, frostPoint.Value, absHumidity.Value)

		return enumResult(m, string(risk),
			map[string]float64{AttrFrostPoint: frostPoint.Value}), nil
	case MetricSummerSimmerPerception:
		si, err := e.Get(MetricSummerSimmerIndex)
		if err != nil {
			return Result{}, err
		}

		return enumResult(m, string(PerceiveSummerSimmer(si.Value)),
			map[string]float64{AttrSummerSimmerIndex: si.Value}), nil
	case MetricRelativeStrainPerception:
		rsi := RelativeStrainIndex(temperature, humidity)

		return enumResult(m, string(PerceiveRelativeStrain(temperature, rsi)),
			map[string]float64{AttrRelativeStrainIndex: rsi}), nil
	case MetricSummerScharlauPerception:
		index := SummerScharlauIndex(temperature, humidity)

		return enumResult(m, string(PerceiveSummerScharlau(temperature, humidity, index)),
			map[string]float64{AttrSummerScharlauIndex: round2(index)}), nil
	case MetricWinterScharlauPerception:
		index := WinterScharlauIndex(temperature, humidity)

		return enumResult(m, string(PerceiveWinterScharlau(temperature, humidity, index)),
			map[string]float64{AttrWinterScharlauIndex: round2(index)}), nil
	case MetricThomsDiscomfortPerception:
		tdi := ThomsDiscomfortIndex(temperature, humidity)

		return enumResult(m, string(PerceiveThomsDiscomfort(tdi)),
			map[string]float64{AttrThomsDiscomfortIndex: round2(tdi)}), nil
	default:
		return Result{}, errors.New().WithData(ErrUnknownMetric, string(m))
	}
}

func numericResult(m Metric, value float64) Result {
	return Result{Metric: m, Value: value}
}

func enumResult(m Metric, perception string, attrs map[string]float64) Result {
	return Result{Metric: m, Perception: perception, Attributes: attrs}
}
