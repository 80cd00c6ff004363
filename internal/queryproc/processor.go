// Package queryproc implements the query processor: it walks a query.Query
// AST, normalizes terms per context via the schema's analyzers, dispatches
// to the context index, applies word/doc limits, and combines partial
// results via the intermediate algebra, checking for cancellation at each
// combinator boundary.
package queryproc

import (
	"context"

	apperrors "github.com/gcbaptista/huntdex/internal/errors"

	"github.com/gcbaptista/huntdex/fuzzy"
	"github.com/gcbaptista/huntdex/intermediate"
	"github.com/gcbaptista/huntdex/ix"
	"github.com/gcbaptista/huntdex/postings"
	"github.com/gcbaptista/huntdex/query"
	"github.com/gcbaptista/huntdex/schema"
)

// Config carries the per-query knobs: fuzzy expansion parameters and the
// word/doc limits. Optimize controls
// whether the query is rewritten via query.Optimize before evaluation (not
// required for correctness, only for canonical shape).
type Config struct {
	Fuzzy     fuzzy.Config
	WordLimit int
	DocLimit  int
	Optimize  bool
}

// Processor evaluates queries against a single context index and schema. It
// holds no per-query mutable state; Evaluate is safe to call concurrently
// against a consistent snapshot.
type Processor struct {
	Index  *ix.ContextIndex[postings.Occurrences]
	Schema *schema.Schema
	Fuzz   *fuzzy.Finder
}

// New returns a Processor over the given snapshot of index, schema, and
// fuzzy vocabulary.
func New(index *ix.ContextIndex[postings.Occurrences], sch *schema.Schema, fz *fuzzy.Finder) *Processor {
	return &Processor{Index: index, Schema: sch, Fuzz: fz}
}

// Evaluate runs q against p's snapshot, starting from the schema's default
// contexts. ctx carries cancellation, checked at combinator boundaries; it
// imposes no timeout of its own.
func (p *Processor) Evaluate(ctx context.Context, q query.Query, cfg Config) (intermediate.Intermediate, error) {
	if cfg.Optimize {
		q = query.Optimize(q)
	}
	return p.eval(ctx, q, p.Schema.DefaultContexts(), cfg)
}

func checkCancelled(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}

func (p *Processor) eval(ctx context.Context, q query.Query, active []string, cfg Config) (intermediate.Intermediate, error) {
	if err := checkCancelled(ctx); err != nil {
		return nil, err
	}
	switch n := q.(type) {
	case query.Word:
		if n.Case == query.CaseFuzzy {
			return p.evalFuzzyWord(ctx, n.Text, active, cfg)
		}
		return p.evalWord(ctx, n, active, cfg)
	case query.Phrase:
		return p.evalPhrase(ctx, n, active, cfg)
	case query.Context:
		return p.evalContext(ctx, n, cfg)
	case query.Binary:
		return p.evalBinary(ctx, n, active, cfg)
	case query.Range:
		return p.evalRange(ctx, n, active, cfg)
	case query.Boost:
		return p.evalBoost(ctx, n, active, cfg)
	default:
		return nil, apperrors.Internal("query: unsupported node type %T", q)
	}
}

// normalize runs a context's analyzer over term, if one is configured.
// Normalization failures are fatal to the whole query.
func normalize(cs schema.ContextSchema, cx, term string) (string, error) {
	if cs.Analyzer == nil {
		return term, nil
	}
	normalized, err := cs.Analyzer.Normalize(term)
	if err != nil {
		return "", apperrors.InvalidInput("query: term %q rejected by context %q: %v", term, cx, err)
	}
	return normalized, nil
}

func (p *Processor) evalWord(ctx context.Context, n query.Word, active []string, cfg Config) (intermediate.Intermediate, error) {
	mode := ix.PrefixCase
	if n.Case == query.CaseInsensitive {
		mode = ix.PrefixNoCase
	}

	pairs := make([]ix.NormalizedTerm, 0, len(active))
	weights := make(map[string]float64, len(active))
	for _, cx := range active {
		cs, ok := p.Schema.Get(cx)
		if !ok {
			return nil, apperrors.NotFound("query: context %q not found", cx)
		}
		term, err := normalize(cs, cx, n.Text)
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, ix.NormalizedTerm{Context: cx, Term: term})
		weights[cx] = cs.EffectiveWeight()
	}

	raw := p.Index.SearchWithCxsNormalized(mode, pairs)

	cxResults := make([]intermediate.CxRawResult, 0, len(active))
	for _, cx := range active {
		if err := checkCancelled(ctx); err != nil {
			return nil, err
		}
		rawWords := toRawWords(raw[cx])
		limited := limitRaw(rawWords, cfg.DocLimit, cfg.WordLimit)
		cxResults = append(cxResults, intermediate.CxRawResult{
			Context: cx, Weight: weights[cx], Terms: []string{n.Text}, Result: limited,
		})
	}
	return intermediate.FromListCxs(cxResults), nil
}

func (p *Processor) evalFuzzyWord(ctx context.Context, text string, active []string, cfg Config) (intermediate.Intermediate, error) {
	variants := []fuzzy.Variant{{Word: text, Distance: 0}}
	if p.Fuzz != nil {
		variants = p.Fuzz.Set(cfg.Fuzzy, text)
	}

	parts := make([]intermediate.Intermediate, 0, len(variants))
	for _, v := range variants {
		if err := checkCancelled(ctx); err != nil {
			return nil, err
		}
		part, err := p.evalWord(ctx, query.Word{Case: query.CaseInsensitive, Text: v.Word}, active, cfg)
		if err != nil {
			return nil, err
		}
		parts = append(parts, part)
	}
	return intermediate.Merges(parts), nil
}

func (p *Processor) evalContext(ctx context.Context, n query.Context, cfg Config) (intermediate.Intermediate, error) {
	for _, cx := range n.Contexts {
		if !p.Schema.Has(cx) {
			return nil, apperrors.NotFound("query: context %q does not exist", cx)
		}
	}
	return p.eval(ctx, n.Inner, n.Contexts, cfg)
}

func (p *Processor) evalBinary(ctx context.Context, n query.Binary, active []string, cfg Config) (intermediate.Intermediate, error) {
	left, err := p.eval(ctx, n.Left, active, cfg)
	if err != nil {
		return nil, err
	}
	if err := checkCancelled(ctx); err != nil {
		return nil, err
	}
	right, err := p.eval(ctx, n.Right, active, cfg)
	if err != nil {
		return nil, err
	}

	switch n.Op {
	case query.OpAnd:
		return intermediate.Intersection(left, right), nil
	case query.OpOr:
		return intermediate.Union(left, right), nil
	case query.OpAndNot:
		return intermediate.Difference(left, right), nil
	default:
		return nil, apperrors.Internal("query: unknown binary operator %v", n.Op)
	}
}

func (p *Processor) evalRange(ctx context.Context, n query.Range, active []string, cfg Config) (intermediate.Intermediate, error) {
	parts := make([]intermediate.Intermediate, 0, len(active))
	for _, cx := range active {
		if err := checkCancelled(ctx); err != nil {
			return nil, err
		}
		cs, ok := p.Schema.Get(cx)
		if !ok {
			return nil, apperrors.NotFound("query: context %q not found", cx)
		}

		lo, err := normalize(cs, cx, n.Lo)
		if err != nil {
			return nil, err
		}
		hi, err := normalize(cs, cx, n.Hi)
		if err != nil {
			return nil, err
		}
		if lo > hi {
			continue
		}

		entries := p.Index.LookupRangeCx(cx, lo, hi)
		limited := limitRaw(toRawWords(entries), cfg.DocLimit, cfg.WordLimit)
		parts = append(parts, intermediate.FromList([]string{n.Lo, n.Hi}, cx, cs.EffectiveWeight(), limited))
	}
	return intermediate.Merges(parts), nil
}

func (p *Processor) evalBoost(ctx context.Context, n query.Boost, active []string, cfg Config) (intermediate.Intermediate, error) {
	inner, err := p.eval(ctx, n.Inner, active, cfg)
	if err != nil {
		return nil, err
	}
	return intermediate.ScaleBoost(inner, n.Factor), nil
}

func toRawWords(entries []ix.Entry[string, postings.Occurrences]) []intermediate.RawWord {
	out := make([]intermediate.RawWord, len(entries))
	for i, e := range entries {
		out[i] = intermediate.RawWord{Word: e.Key, Occurrences: e.Value}
	}
	return out
}
