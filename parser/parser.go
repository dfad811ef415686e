// Package parser reads linear programs written as text:
//
//	min 2x1 + 3x2 - x3
//	x1 + x2 + x3 = 4
//	2x1 - x2 = 2
//	B = {1, 3}
//
// The first line is the objective, every following line up to the optional
// basis line is an equality constraint. Variables are x1..xn where n is the
// largest index used. Lines starting with '#' and blank lines are skipped.
package parser

import (
	"bufio"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"q.log/twophase/model"
)

var ErrSyntax = errors.New("parser: syntax error")

var termRe = regexp.MustCompile(`^([+-]?)(\d*\.?\d*(?:[eE][+-]?\d+)?)x(\d+)$`)

type term struct {
	coef  float64
	index int
}

type line struct {
	num  int
	text string
}

// ParseFile opens name and parses it.
func ParseFile(name string) (*model.Problem, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Parse(f)
}

// Parse reads a whole problem from r.
func Parse(r io.Reader) (*model.Problem, error) {
	var lines []line
	sc := bufio.NewScanner(r)
	for num := 1; sc.Scan(); num++ {
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		lines = append(lines, line{num: num, text: text})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, errors.Wrap(ErrSyntax, "empty input")
	}

	goal, err := parseGoal(lines[0])
	if err != nil {
		return nil, err
	}

	var (
		rows  [][]term
		rhs   []float64
		basis []int
	)
	for k, l := range lines[1:] {
		if strings.HasPrefix(l.text, "B") && strings.Contains(l.text, "=") && strings.Contains(l.text, "{") {
			if k != len(lines)-2 {
				return nil, errors.Wrapf(ErrSyntax, "line %d: basis must be the last line", l.num)
			}
			if basis, err = parseBasis(l); err != nil {
				return nil, err
			}
			break
		}

		terms, b, err := parseConstraint(l)
		if err != nil {
			return nil, err
		}
		rows = append(rows, terms)
		rhs = append(rhs, b)
	}
	if len(rows) == 0 {
		return nil, errors.Wrap(ErrSyntax, "no constraints")
	}

	n := maxIndex(goal)
	for _, r := range rows {
		n = max(n, maxIndex(r))
	}

	b, err := model.NewBuilder(len(rows), n)
	if err != nil {
		return nil, err
	}
	cost := make([]float64, n)
	for _, t := range goal {
		cost[t.index-1] = t.coef
	}
	a := make([]float64, len(rows)*n)
	for i, r := range rows {
		for _, t := range r {
			a[i*n+t.index-1] = t.coef
		}
	}
	if err := b.SetC(cost); err != nil {
		return nil, err
	}
	if err := b.SetA(a); err != nil {
		return nil, err
	}
	if err := b.SetB(rhs); err != nil {
		return nil, err
	}

	if basis != nil {
		if len(basis) != len(rows) {
			return nil, errors.Wrapf(ErrSyntax, "expected %d basis indices but got %d", len(rows), len(basis))
		}
		for _, idx := range basis {
			if idx > n {
				return nil, errors.Wrapf(ErrSyntax, "basis index %d in a problem with variables x1..x%d", idx, n)
			}
		}
		b.Basis = basis
	}

	return b.Build()
}

func parseGoal(l line) ([]term, error) {
	fields := strings.Fields(l.text)
	if fields[0] != "min" {
		return nil, errors.Wrapf(ErrSyntax, "line %d: objective must start with 'min' to be in standard form", l.num)
	}

	terms, err := parseTerms(l.num, fields[1:])
	if err != nil {
		return nil, err
	}
	if len(terms) == 0 {
		return nil, errors.Wrapf(ErrSyntax, "line %d: empty objective", l.num)
	}
	return terms, nil
}

func parseConstraint(l line) ([]term, float64, error) {
	lhs, rhs, ok := strings.Cut(l.text, "=")
	if !ok || strings.Contains(rhs, "=") {
		return nil, 0, errors.Wrapf(ErrSyntax, "line %d: constraint needs exactly one '='", l.num)
	}
	if strings.ContainsAny(lhs, "<>") || strings.ContainsAny(rhs, "<>") {
		return nil, 0, errors.Wrapf(ErrSyntax, "line %d: only equality constraints are supported", l.num)
	}

	terms, err := parseTerms(l.num, strings.Fields(lhs))
	if err != nil {
		return nil, 0, err
	}
	if len(terms) == 0 {
		return nil, 0, errors.Wrapf(ErrSyntax, "line %d: constraint has no terms", l.num)
	}

	b, err := strconv.ParseFloat(strings.TrimSpace(rhs), 64)
	if err != nil {
		return nil, 0, errors.Wrapf(ErrSyntax, "line %d: bad right-hand side %q", l.num, strings.TrimSpace(rhs))
	}
	return terms, b, nil
}

// parseTerms accepts both "2x1 +x2 -3x3" and "2x1 + x2 - 3x3".
func parseTerms(num int, fields []string) ([]term, error) {
	var (
		terms   []term
		pending string
	)
	seen := make(map[int]bool)

	for _, f := range fields {
		if f == "+" || f == "-" {
			if pending != "" {
				return nil, errors.Wrapf(ErrSyntax, "line %d: two signs in a row", num)
			}
			pending = f
			continue
		}

		t, err := parseTerm(pending + f)
		if err != nil {
			return nil, errors.Wrapf(ErrSyntax, "line %d: unknown token %q", num, f)
		}
		pending = ""
		if t.index < 1 {
			return nil, errors.Wrapf(ErrSyntax, "line %d: variable x%d out of bound", num, t.index)
		}
		if seen[t.index] {
			return nil, errors.Wrapf(ErrSyntax, "line %d: duplicate variable x%d", num, t.index)
		}
		seen[t.index] = true
		terms = append(terms, t)
	}
	if pending != "" {
		return nil, errors.Wrapf(ErrSyntax, "line %d: dangling %q", num, pending)
	}
	return terms, nil
}

func parseTerm(s string) (term, error) {
	m := termRe.FindStringSubmatch(s)
	if m == nil {
		return term{}, ErrSyntax
	}

	coef := 1.0
	if m[2] != "" {
		c, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			return term{}, err
		}
		coef = c
	}
	if m[1] == "-" {
		coef = -coef
	}

	idx, err := strconv.Atoi(m[3])
	if err != nil {
		return term{}, err
	}
	return term{coef: coef, index: idx}, nil
}

func parseBasis(l line) ([]int, error) {
	open := strings.IndexByte(l.text, '{')
	end := strings.IndexByte(l.text, '}')
	if open < 0 || end < open {
		return nil, errors.Wrapf(ErrSyntax, "line %d: basis must be written as B = {i, j, ...}", l.num)
	}

	var basis []int
	for _, tok := range strings.FieldsFunc(l.text[open+1:end], func(r rune) bool { return r == ',' || r == ' ' }) {
		idx, err := strconv.Atoi(strings.TrimPrefix(tok, "x"))
		if err != nil || idx < 1 {
			return nil, errors.Wrapf(ErrSyntax, "line %d: invalid basis index %q", l.num, tok)
		}
		basis = append(basis, idx)
	}
	return basis, nil
}

func maxIndex(terms []term) int {
	n := 0
	for _, t := range terms {
		n = max(n, t.index)
	}
	return n
}
