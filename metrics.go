package qvm

import "sync"

type Metrics struct {
	mu              sync.RWMutex
	Promotions      int64
	NoOpPromotions  int64
	Measurements    int64
	MeasuredZeros   int64
	MeasuredOnes    int64
	GateApplication map[string]int64
}

func newMetrics() *Metrics {
	return &Metrics{
		GateApplication: make(map[string]int64),
	}
}

// recordPromotion counts a promote call; changed is false for the
// already-superposed result.
func (m *Metrics) recordPromotion(changed bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if changed {
		m.Promotions++
		return
	}
	m.NoOpPromotions++
}

func (m *Metrics) recordMeasurement(outcome uint8) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Measurements++
	if outcome == 0 {
		m.MeasuredZeros++
	} else {
		m.MeasuredOnes++
	}
}

func (m *Metrics) recordGate(gate Gate) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.GateApplication[gate.String()]++
}

func (m *Metrics) ExportMetrics() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	gates := make(map[string]int64, len(m.GateApplication))
	var total int64
	for name, count := range m.GateApplication {
		gates[name] = count
		total += count
	}

	return map[string]interface{}{
		"promotions":        m.Promotions,
		"noop_promotions":   m.NoOpPromotions,
		"measurements":      m.Measurements,
		"measured_zeros":    m.MeasuredZeros,
		"measured_ones":     m.MeasuredOnes,
		"gate_applications": total,
		"gates":             gates,
	}
}
