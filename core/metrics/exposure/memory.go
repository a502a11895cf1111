package exposure

import (
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

type bucketKey struct {
	port   string
	vessel string
	day    time.Time
}

// bucket sums in decimal so that totals over many cent-rounded costs stay
// exact.
type bucket struct {
	n     int
	delay decimal.Decimal
	cost  decimal.Decimal
}

func (b *bucket) merge(o *bucket) {
	b.n += o.n
	b.delay = b.delay.Add(o.delay)
	b.cost = b.cost.Add(o.cost)
}

func (b *bucket) summary(id string) Summary {
	s := Summary{ID: id, Predictions: b.n, TotalCost: money(b.cost)}
	if b.n > 0 {
		n := decimal.NewFromInt(int64(b.n))
		s.AvgCost = money(b.cost.Div(n))
		s.AvgDelay = b.delay.Div(n).RoundBank(1).InexactFloat64()
	}
	return s
}

func money(d decimal.Decimal) float64 { return d.RoundBank(2).InexactFloat64() }

// MemoryStore keeps buckets per port, vessel and day in memory.
type MemoryStore struct {
	mu   sync.Mutex
	data map[bucketKey]*bucket
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: map[bucketKey]*bucket{}}
}

// Add merges r into the bucket of its port, vessel and day.
func (s *MemoryStore) Add(r Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := bucketKey{port: r.PortID, vessel: r.VesselID, day: Day(r.Date)}
	b := s.data[k]
	if b == nil {
		b = &bucket{}
		s.data[k] = b
	}
	b.merge(&bucket{
		n:     r.Predictions,
		delay: decimal.NewFromFloat(r.DelayHours),
		cost:  decimal.NewFromFloat(r.Cost),
	})
	return nil
}

// fold merges the buckets within [start, end] under the key returned by
// group. Buckets for which group returns "" are skipped.
func (s *MemoryStore) fold(start, end time.Time, group func(bucketKey) string) map[string]*bucket {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !start.IsZero() {
		start = Day(start)
	}
	if !end.IsZero() {
		end = Day(end)
	}
	out := map[string]*bucket{}
	for k, b := range s.data {
		if (!start.IsZero() && k.day.Before(start)) || (!end.IsZero() && k.day.After(end)) {
			continue
		}
		g := group(k)
		if g == "" {
			continue
		}
		acc := out[g]
		if acc == nil {
			acc = &bucket{}
			out[g] = acc
		}
		acc.merge(b)
	}
	return out
}

// Query returns the port's daily records between start and end, oldest
// first. Vessels are merged.
func (s *MemoryStore) Query(portID string, start, end time.Time) ([]Record, error) {
	days := s.fold(start, end, func(k bucketKey) string {
		if k.port != portID {
			return ""
		}
		return k.day.Format(time.DateOnly)
	})
	res := make([]Record, 0, len(days))
	for d, b := range days {
		date, _ := time.Parse(time.DateOnly, d)
		res = append(res, Record{
			PortID:      portID,
			Date:        date,
			Predictions: b.n,
			DelayHours:  b.delay.InexactFloat64(),
			Cost:        b.cost.InexactFloat64(),
		})
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Date.Before(res[j].Date) })
	return res, nil
}

// ByPort summarizes each port, highest total cost first.
func (s *MemoryStore) ByPort(start, end time.Time) ([]Summary, error) {
	return ranked(s.fold(start, end, func(k bucketKey) string { return k.port })), nil
}

// ByVessel summarizes each vessel, highest total cost first. Predictions
// without a vessel are left out.
func (s *MemoryStore) ByVessel(start, end time.Time) ([]Summary, error) {
	return ranked(s.fold(start, end, func(k bucketKey) string { return k.vessel })), nil
}

// Monthly returns the predicted cost per UTC month, oldest first.
func (s *MemoryStore) Monthly(start, end time.Time) ([]Month, error) {
	months := s.fold(start, end, func(k bucketKey) string { return k.day.Format(MonthLayout) })
	res := make([]Month, 0, len(months))
	for m, b := range months {
		res = append(res, Month{Month: m, Predictions: b.n, TotalCost: money(b.cost)})
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Month < res[j].Month })
	return res, nil
}

// Totals summarizes every bucket in the range.
func (s *MemoryStore) Totals(start, end time.Time) (Summary, error) {
	all := s.fold(start, end, func(bucketKey) string { return "all" })
	if b, ok := all["all"]; ok {
		return b.summary(""), nil
	}
	return Summary{}, nil
}

// Ports lists the ports that have records, sorted.
func (s *MemoryStore) Ports() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	seen := map[string]struct{}{}
	for k := range s.data {
		seen[k.port] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for id := range seen {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

func ranked(groups map[string]*bucket) []Summary {
	out := make([]Summary, 0, len(groups))
	for id, b := range groups {
		out = append(out, b.summary(id))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalCost != out[j].TotalCost {
			return out[i].TotalCost > out[j].TotalCost
		}
		return out[i].ID < out[j].ID
	})
	return out
}
