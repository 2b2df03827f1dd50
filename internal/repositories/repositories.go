package repositories

import (
	"fmt"
	"strings"

	"github.com/sbilibin2017/qa-resolver/internal/logger"
)

// logQuery logs a statement on one line with its args and outcome.
func logQuery(query string, args []any, err error) {
	logger.Log.Infow("query executed",
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"error", err,
	)
}

// patch accumulates SET clauses with positional args for partial
// updates. Only explicitly supplied fields are added; explicit nulls
// are passed through as NULL.
type patch struct {
	exprs []string
	args  []any
}

func (p *patch) set(col string, v any) {
	p.args = append(p.args, v)
	p.exprs = append(p.exprs, fmt.Sprintf("%s = $%d", col, len(p.args)))
}

// expr adds a raw clause with no argument, e.g. "updated_at = NOW()".
func (p *patch) expr(e string) {
	p.exprs = append(p.exprs, e)
}

func (p *patch) empty() bool {
	return len(p.exprs) == 0
}

func (p *patch) setClause() string {
	return strings.Join(p.exprs, ", ")
}
