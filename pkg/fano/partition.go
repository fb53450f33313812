package fano

import (
	"cmp"
	"context"
	"math"
	"runtime"
	"slices"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/shannonfano/pkg/alphabet"
	"github.com/matzehuels/shannonfano/pkg/errors"
)

// DefaultParallelThreshold is the smallest group size handed to another
// goroutine when parallel evaluation is enabled.
const DefaultParallelThreshold = 64

// Options configures a partition run. The zero value is sequential and
// strict.
type Options struct {
	// Parallel evaluates high groups of at least ParallelThreshold symbols
	// on separate goroutines, bounded by MaxWorkers.
	Parallel          bool
	ParallelThreshold int // 0 means DefaultParallelThreshold
	MaxWorkers        int // 0 means GOMAXPROCS

	// Lenient clamps degenerate splits instead of failing.
	Lenient bool

	// OnDegenerate is called for every clamped split in lenient mode.
	// It may be called from several goroutines at once.
	OnDegenerate func(Split)

	// Trace records every split in [Result].Steps.
	Trace bool
}

// Split describes one bipartition of a working set.
type Split struct {
	Prefix  string   `json:"prefix"` // bits shared by the whole working set
	Depth   int      `json:"depth"`
	High    []string `json:"high"` // names receiving a 1
	Low     []string `json:"low"`  // names receiving a 0
	HighSum float64  `json:"high_sum"`
	LowSum  float64  `json:"low_sum"`
	Clamped bool     `json:"clamped,omitempty"`
}

// Result holds the codes of a partition run.
type Result struct {
	Codes []Coded `json:"codes"`
	Steps []Split `json:"steps,omitempty"`
}

type node struct {
	name string
	p    float64
	code []byte
}

type engine struct {
	opts Options
	sem  chan struct{}

	mu    sync.Mutex
	steps []Split
}

// Assign runs the Fano partition over items and returns their codes.
// Items are assumed validated and non-zero; see [Build] for the checked
// entry point. A single item receives the empty code.
//
// Assign returns ctx.Err() if the context is cancelled before it finishes;
// no partial result is returned.
func Assign[W alphabet.Weighted](ctx context.Context, items []W, opts Options) (*Result, error) {
	nodes := make([]*node, len(items))
	for i, it := range items {
		nodes[i] = &node{name: it.SymbolName(), p: it.Weight()}
	}

	e := newEngine(opts)
	if err := e.partition(ctx, nodes, 0); err != nil {
		return nil, err
	}

	res := &Result{Codes: make([]Coded, len(nodes))}
	for i, n := range nodes {
		res.Codes[i] = Coded{Name: n.name, Probability: n.p, Code: string(n.code)}
	}
	if opts.Trace {
		res.Steps = e.steps
		SortSteps(res.Steps)
	}
	return res, nil
}

func newEngine(opts Options) *engine {
	if opts.ParallelThreshold <= 0 {
		opts.ParallelThreshold = DefaultParallelThreshold
	}
	if opts.MaxWorkers <= 0 {
		opts.MaxWorkers = runtime.GOMAXPROCS(0)
	}
	e := &engine{opts: opts}
	if opts.Parallel {
		e.sem = make(chan struct{}, opts.MaxWorkers)
	}
	return e
}

func (e *engine) partition(ctx context.Context, set []*node, depth int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	switch len(set) {
	case 0, 1:
		return nil
	case 2:
		slices.SortStableFunc(set, func(a, b *node) int { return cmp.Compare(a.p, b.p) })
		e.record(set[1:], set[:1], depth, false)
		set[0].code = append(set[0].code, '0')
		set[1].code = append(set[1].code, '1')
		return nil
	}

	slices.SortStableFunc(set, func(a, b *node) int { return cmp.Compare(b.p, a.p) })

	n := len(set)
	idx := splitIndex(set)
	clamped := false
	if idx < 1 || idx > n-1 {
		if !e.opts.Lenient {
			return errors.New(errors.ErrCodePartitionDegenerate,
				"split of %d symbols at prefix %q left a group empty (index %d)", n, string(set[0].code), idx)
		}
		idx = min(max(idx, 1), n-1)
		clamped = true
	}

	high, low := set[:idx], set[idx:]
	split := e.record(high, low, depth, clamped)
	if clamped && e.opts.OnDegenerate != nil {
		e.opts.OnDegenerate(split)
	}

	for _, nd := range high {
		nd.code = append(nd.code, '1')
	}
	for _, nd := range low {
		nd.code = append(nd.code, '0')
	}

	return e.descend(ctx, high, low, depth+1)
}

// splitIndex returns how many of the descending-sorted symbols the greedy
// walk consumes before the distance from half the total stops shrinking.
func splitIndex(set []*node) int {
	var total float64
	for _, nd := range set {
		total += nd.p
	}
	distance := func(x float64) float64 { return math.Abs(2*x - total) }

	var acc float64
	idx := 0
	for idx < len(set) {
		next := acc + set[idx].p
		if distance(next) >= distance(acc) {
			break
		}
		acc = next
		idx++
	}
	return idx
}

func (e *engine) descend(ctx context.Context, high, low []*node, depth int) error {
	if e.sem == nil || len(high) < e.opts.ParallelThreshold || !e.acquire() {
		if err := e.partition(ctx, high, depth); err != nil {
			return err
		}
		return e.partition(ctx, low, depth)
	}

	// Neither branch cancels the other; the high error wins to match the
	// sequential order.
	var g errgroup.Group
	g.Go(func() error {
		defer e.release()
		return e.partition(ctx, high, depth)
	})
	errLow := e.partition(ctx, low, depth)
	if err := g.Wait(); err != nil {
		return err
	}
	return errLow
}

func (e *engine) acquire() bool {
	select {
	case e.sem <- struct{}{}:
		return true
	default:
		return false
	}
}

func (e *engine) release() {
	<-e.sem
}

func (e *engine) record(high, low []*node, depth int, clamped bool) Split {
	s := Split{
		Prefix:  string(high[0].code),
		Depth:   depth,
		High:    make([]string, len(high)),
		Low:     make([]string, len(low)),
		Clamped: clamped,
	}
	for i, nd := range high {
		s.High[i] = nd.name
		s.HighSum += nd.p
	}
	for i, nd := range low {
		s.Low[i] = nd.name
		s.LowSum += nd.p
	}
	if e.opts.Trace {
		e.mu.Lock()
		e.steps = append(e.steps, s)
		e.mu.Unlock()
	}
	return s
}

var preorder = strings.NewReplacer("1", "a", "0", "b")

// SortSteps orders splits the way a sequential run visits them: a prefix
// before its extensions, high (1) branches before low (0) branches.
func SortSteps(steps []Split) {
	slices.SortStableFunc(steps, func(a, b Split) int {
		return strings.Compare(preorder.Replace(a.Prefix), preorder.Replace(b.Prefix))
	})
}
