package drift

import (
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Registry is the fixed mapping from sector name to the passive fund
// ticker tracking that sector. It is read-only for the lifetime of a
// computation, so several analyses can share one safely.
type Registry struct {
	sectors   []string          // declaration order, kept for stable reporting
	funds     map[string]string // sector -> fund ticker
	tickers   map[string]bool   // fund ticker set
	benchmark string
}

// NewRegistry builds a registry from sector/fund pairs in the given
// order and a broad-market benchmark ticker.
func NewRegistry(benchmark string, pairs ...[2]string) *Registry {
	r := &Registry{
		funds:     make(map[string]string, len(pairs)),
		tickers:   make(map[string]bool, len(pairs)),
		benchmark: benchmark,
	}
	for _, p := range pairs {
		sector, fund := p[0], p[1]
		if _, ok := r.funds[sector]; ok {
			continue
		}
		r.sectors = append(r.sectors, sector)
		r.funds[sector] = fund
		r.tickers[fund] = true
	}
	return r
}

// DefaultRegistry returns the Vanguard sector fund mapping with the
// S&P 500 as benchmark.
func DefaultRegistry() *Registry {
	return NewRegistry("^GSPC",
		[2]string{"Technology", "VGT"},
		[2]string{"Healthcare", "VHT"},
		[2]string{"Financials", "VFH"},
		[2]string{"Consumer_Discretionary", "VCR"},
		[2]string{"Communication_Services", "VOX"},
		[2]string{"Industrials", "VIS"},
		[2]string{"Consumer_Staples", "VDC"},
		[2]string{"Energy", "VDE"},
		[2]string{"Materials", "VAW"},
		[2]string{"Real_Estate", "VNQ"},
		[2]string{"Utilities", "VPU"},
	)
}

// Benchmark returns the broad-market benchmark ticker.
func (r *Registry) Benchmark() string { return r.benchmark }

// Sectors returns the sector names in declaration order.
func (r *Registry) Sectors() []string { return r.sectors }

// Fund returns the fund ticker for an exact sector name.
func (r *Registry) Fund(sector string) (string, bool) {
	fund, ok := r.funds[sector]
	return fund, ok
}

// IsFund reports whether the ticker is one of the registry's fund tickers.
func (r *Registry) IsFund(ticker string) bool { return r.tickers[ticker] }

// FundTickers returns all fund tickers in declaration order.
func (r *Registry) FundTickers() []string {
	tickers := make([]string, 0, len(r.sectors))
	for _, sector := range r.sectors {
		tickers = append(tickers, r.funds[sector])
	}
	return tickers
}

// A resolver attempts to map a ledger sector name to a registered
// sector. Resolvers are tried in order; precedence is the order of the
// resolvers slice, so each rule stays auditable on its own.
type resolver func(r *Registry, sector string) (string, bool)

var resolvers = []resolver{
	resolveExact,
	resolveNormalized,
	resolvePrefix,
}

// resolveExact matches the sector name as declared.
func resolveExact(r *Registry, sector string) (string, bool) {
	_, ok := r.funds[sector]
	return sector, ok
}

// resolveNormalized matches after folding underscores and spaces, so
// "Real Estate" finds "Real_Estate" and vice versa.
func resolveNormalized(r *Registry, sector string) (string, bool) {
	want := normalizeSector(sector)
	for _, s := range r.sectors {
		if normalizeSector(s) == want {
			return s, true
		}
	}
	return "", false
}

// resolvePrefix matches the sector's first underscore-delimited token
// against the start of a registered sector name, so "Consumer" or
// "Consumer_Disc" finds "Consumer_Discretionary".
func resolvePrefix(r *Registry, sector string) (string, bool) {
	first, _, _ := strings.Cut(sector, "_")
	if first == "" {
		return "", false
	}
	for _, s := range r.sectors {
		if strings.HasPrefix(s, first) {
			return s, true
		}
	}
	return "", false
}

// Resolve maps a ledger sector name to the fund ticker of a registered
// sector, trying exact, normalized and prefix matching in that order.
// It returns the matched sector, its fund ticker, and whether any rule
// resolved.
func (r *Registry) Resolve(sector string) (matched, fund string, ok bool) {
	for _, resolve := range resolvers {
		if s, found := resolve(r, sector); found {
			return s, r.funds[s], true
		}
	}
	return "", "", false
}

// registryFile is the on-disk YAML shape of a registry.
type registryFile struct {
	Benchmark string              `yaml:"benchmark"`
	Sectors   []map[string]string `yaml:"sectors"`
}

// DecodeRegistry reads a registry from YAML. Sectors are a list of
// single-entry maps so file order is preserved. An empty benchmark
// falls back to the default.
func DecodeRegistry(r io.Reader) (*Registry, error) {
	var file registryFile
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("cannot parse registry: %w", err)
	}
	if len(file.Sectors) == 0 {
		return nil, fmt.Errorf("registry declares no sectors")
	}
	if file.Benchmark == "" {
		file.Benchmark = DefaultRegistry().Benchmark()
	}
	pairs := make([][2]string, 0, len(file.Sectors))
	for i, entry := range file.Sectors {
		if len(entry) != 1 {
			return nil, fmt.Errorf("registry sector entry %d must be a single sector: fund pair", i+1)
		}
		for sector, fund := range entry {
			if fund == "" {
				return nil, fmt.Errorf("registry sector %q has no fund ticker", sector)
			}
			pairs = append(pairs, [2]string{sector, fund})
		}
	}
	return NewRegistry(file.Benchmark, pairs...), nil
}

// LoadRegistry reads a registry from a YAML file, or returns the
// default registry when path is empty.
func LoadRegistry(path string) (*Registry, error) {
	if path == "" {
		return DefaultRegistry(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open registry file: %w", err)
	}
	defer f.Close()
	reg, err := DecodeRegistry(f)
	if err != nil {
		return nil, fmt.Errorf("registry file %q: %w", path, err)
	}
	return reg, nil
}
