package patgen

import (
	"strings"

	"github.com/alecthomas/participle/v2"
)

// quantifierBody is the grammar of the text between '{' and '}':
//
//	{3}  {2,5}  {,5}  {3,}  {2|4|6}  {1-3|8}
type quantifierBody struct {
	First *quantifierChoice   `parser:"@@?"`
	Comma bool                `parser:"( @','"`
	Max   *int                `parser:"  @Int? )?"`
	More  []*quantifierChoice `parser:"( '|' @@ )*"`
}

type quantifierChoice struct {
	From int  `parser:"@Int"`
	To   *int `parser:"( '-' @Int )?"`
}

var quantifierParser = participle.MustBuild[quantifierBody]()

// parseQuantifier interprets a quantifier body. It returns nil, nil for
// bodies that are not a valid quantifier; those are ignored by the tokenizer.
// Choice lists and single ranged choices are resolved to an exact count here,
// so src is consulted at tokenize time.
func parseQuantifier(body string, src Source) (*Quantifier, error) {
	if strings.TrimSpace(body) == "" {
		return nil, nil
	}
	q, err := quantifierParser.ParseString("", body)
	if err != nil {
		return nil, nil
	}

	if q.Comma {
		if len(q.More) != 0 || (q.First != nil && q.First.To != nil) {
			return nil, nil
		}
		lo := 0
		if q.First != nil {
			lo = q.First.From
		}
		hi := lo + InfiniteQuantifierMax
		if q.Max != nil {
			hi = *q.Max
		}
		if lo > hi {
			lo, hi = hi, lo
		}
		return &Quantifier{Min: lo, Max: hi}, nil
	}

	if q.First == nil {
		return nil, nil
	}
	choices := append([]*quantifierChoice{q.First}, q.More...)
	if len(choices) == 1 && choices[0].To == nil {
		return &Quantifier{Min: q.First.From, Max: q.First.From}, nil
	}

	i, err := src.Int(0, len(choices)-1)
	if err != nil {
		return nil, err
	}
	n, err := choices[i].draw(src)
	if err != nil {
		return nil, err
	}
	return &Quantifier{Min: n, Max: n}, nil
}

func (c *quantifierChoice) draw(src Source) (int, error) {
	if c.To == nil {
		return c.From, nil
	}
	lo, hi := c.From, *c.To
	if lo > hi {
		lo, hi = hi, lo
	}
	return src.Int(lo, hi)
}
