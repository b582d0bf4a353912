package evaluator

import "github.com/bawdo/sqlterm/nodes"

// parseWindow parses the parenthesised body of an OVER clause:
//
//	( [PARTITION BY expr {, expr}] [ORDER BY expr [ASC|DESC] {, ...}] )
func (p *parser) parseWindow() (*nodes.WindowDefinition, error) {
	if err := p.expectPunct("("); err != nil {
		return nil, err
	}
	w := nodes.NewWindowDefinition()

	if p.matchKeyword("PARTITION") {
		if err := p.expectKeyword("BY"); err != nil {
			return nil, err
		}
		for {
			expr, err := p.parseConcat()
			if err != nil {
				return nil, err
			}
			w.Partition(expr)
			if !p.matchPunct(",") {
				break
			}
		}
	}

	if p.matchKeyword("ORDER") {
		if err := p.expectKeyword("BY"); err != nil {
			return nil, err
		}
		for {
			expr, err := p.parseConcat()
			if err != nil {
				return nil, err
			}
			term := nodes.OrderBy(expr)
			switch {
			case p.matchKeyword("ASC"):
				term.Direction = nodes.Asc
			case p.matchKeyword("DESC"):
				term.Direction = nodes.Desc
			}
			w.Order(term)
			if !p.matchPunct(",") {
				break
			}
		}
	}

	if err := p.expectPunct(")"); err != nil {
		return nil, err
	}
	return w, nil
}
