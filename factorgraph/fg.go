// SPDX-License-Identifier: MIT
// Package: vemap/factorgraph
//
// fg.go - libDAI .fg reader and writer.

package factorgraph

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/aschroede/vemap/factor"
)

// ReadFile loads a .fg file from disk.
func ReadFile(path string) (*Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("factorgraph: read %s: %w", path, err)
	}
	g, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("factorgraph: parse %s: %w", path, err)
	}

	return g, nil
}

// token is one whitespace-separated field with the line it came from.
type token struct {
	text string
	line int
}

// tokenizer walks the non-comment fields of a .fg stream.
type tokenizer struct {
	toks []token
	pos  int
}

func newTokenizer(r io.Reader) (*tokenizer, error) {
	t := &tokenizer{}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		for _, f := range strings.Fields(text) {
			t.toks = append(t.toks, token{text: f, line: line})
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	return t, nil
}

func (t *tokenizer) int(what string) (int, error) {
	if t.pos >= len(t.toks) {
		return 0, fmt.Errorf("%w: unexpected end of input reading %s", ErrSyntax, what)
	}
	tok := t.toks[t.pos]
	t.pos++
	n, err := strconv.Atoi(tok.text)
	if err != nil {
		return 0, fmt.Errorf("%w: line %d: %s %q is not an integer", ErrSyntax, tok.line, what, tok.text)
	}

	return n, nil
}

func (t *tokenizer) float(what string) (float64, error) {
	if t.pos >= len(t.toks) {
		return 0, fmt.Errorf("%w: unexpected end of input reading %s", ErrSyntax, what)
	}
	tok := t.toks[t.pos]
	t.pos++
	x, err := strconv.ParseFloat(tok.text, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: line %d: %s %q is not a number", ErrSyntax, tok.line, what, tok.text)
	}

	return x, nil
}

// Parse reads a factor graph in .fg format.
func Parse(r io.Reader) (*Graph, error) {
	t, err := newTokenizer(r)
	if err != nil {
		return nil, fmt.Errorf("factorgraph: Parse: %w", err)
	}

	nf, err := t.int("factor count")
	if err != nil {
		return nil, err
	}
	if nf < 0 {
		return nil, fmt.Errorf("%w: negative factor count %d", ErrSyntax, nf)
	}

	factors := make([]factor.Factor, 0, nf)
	for i := 0; i < nf; i++ {
		f, err := parseFactor(t, i)
		if err != nil {
			return nil, err
		}
		factors = append(factors, f)
	}
	if t.pos != len(t.toks) {
		return nil, fmt.Errorf("%w: line %d: trailing data after %d factors", ErrSyntax, t.toks[t.pos].line, nf)
	}

	return New(factors...)
}

// parseFactor reads one factor block and permutes its table from the listed
// variable order into label order.
func parseFactor(t *tokenizer, i int) (factor.Factor, error) {
	// 1) Scope header.
	k, err := t.int("variable count")
	if err != nil {
		return factor.Factor{}, err
	}
	if k < 0 {
		return factor.Factor{}, fmt.Errorf("%w: factor %d: negative variable count", ErrSyntax, i)
	}
	listed := make([]factor.Var, k)
	for j := range listed {
		if listed[j].Label, err = t.int("label"); err != nil {
			return factor.Factor{}, err
		}
	}
	for j := range listed {
		if listed[j].States, err = t.int("cardinality"); err != nil {
			return factor.Factor{}, err
		}
	}
	vs, err := factor.NewVarSet(listed...)
	if err != nil {
		return factor.Factor{}, fmt.Errorf("%w: factor %d: %v", ErrSyntax, i, err)
	}
	if vs.Len() != k {
		return factor.Factor{}, fmt.Errorf("%w: factor %d: repeated label", ErrSyntax, i)
	}
	n, ok := vs.NrStatesInt()
	if !ok {
		return factor.Factor{}, fmt.Errorf("factor %d: %w", i, factor.ErrTooLarge)
	}

	// 2) Sparse entries, indexed in listed order.
	nnz, err := t.int("entry count")
	if err != nil {
		return factor.Factor{}, err
	}
	p := make([]float64, n)
	for e := 0; e < nnz; e++ {
		idx, err := t.int("entry index")
		if err != nil {
			return factor.Factor{}, err
		}
		val, err := t.float("entry value")
		if err != nil {
			return factor.Factor{}, err
		}
		if idx < 0 || idx >= n {
			return factor.Factor{}, fmt.Errorf("%w: factor %d: index %d outside [0,%d)", ErrSyntax, i, idx, n)
		}
		p[sortedIndex(listed, vs, idx)] = val
	}

	return factor.NewWithValues(vs, p)
}

// sortedIndex converts a flat index over the listed variable order into a
// flat index over the label-sorted order of vs.
func sortedIndex(listed []factor.Var, vs factor.VarSet, idx int) int {
	states := make(map[int]int, len(listed))
	for _, v := range listed {
		states[v.Label] = idx % v.States
		idx /= v.States
	}
	out, _ := factor.CalcLinearState(vs, states) // states are in range by construction

	return out
}

// Write emits g in .fg format with variables listed in label order and
// only non-zero entries.
func (g *Graph) Write(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d\n", len(g.factors))
	for _, f := range g.factors {
		vs := f.Vars()
		bw.WriteString("\n")
		fmt.Fprintf(bw, "%d\n", vs.Len())
		bw.WriteString(joinInts(vs.Labels()))
		bw.WriteString("\n")
		cards := make([]int, vs.Len())
		for j := range cards {
			cards[j] = vs.At(j).States
		}
		bw.WriteString(joinInts(cards))
		bw.WriteString("\n")

		nnz := 0
		for j := 0; j < f.NrStates(); j++ {
			if f.Get(j) != 0 {
				nnz++
			}
		}
		fmt.Fprintf(bw, "%d\n", nnz)
		for j := 0; j < f.NrStates(); j++ {
			if x := f.Get(j); x != 0 {
				fmt.Fprintf(bw, "%d %s\n", j, strconv.FormatFloat(x, 'g', -1, 64))
			}
		}
	}

	return bw.Flush()
}

// WriteFile writes g to path in .fg format.
func (g *Graph) WriteFile(path string) error {
	fh, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("factorgraph: create %s: %w", path, err)
	}
	if err := g.Write(fh); err != nil {
		fh.Close()
		return fmt.Errorf("factorgraph: write %s: %w", path, err)
	}

	return fh.Close()
}

func joinInts(xs []int) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = strconv.Itoa(x)
	}

	return strings.Join(parts, " ")
}
