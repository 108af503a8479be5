package pongo

import (
	"bytes"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/lmtNoLimit/ai-section-generator-app-sub001/pkg/filters"
)

var (
	errBreak    = errors.New("pongo: break outside of a loop")
	errContinue = errors.New("pongo: continue outside of a loop")

	registerTagsOnce sync.Once
)

// registerTags installs the Liquid control tags emitted by Translate. pongo2
// keeps tags in a process-wide registry, so this runs once.
func registerTags() {
	registerTagsOnce.Do(func() {
		_ = pongo2.RegisterTag("liquid_assign", parseAssign)
		_ = pongo2.RegisterTag("liquid_capture", parseCapture)
		_ = pongo2.RegisterTag("liquid_for", parseLoop("endliquid_for", false))
		_ = pongo2.RegisterTag("liquid_tablerow", parseLoop("endliquid_tablerow", true))
		_ = pongo2.RegisterTag("liquid_break", parseSignal(errBreak))
		_ = pongo2.RegisterTag("liquid_continue", parseSignal(errContinue))
		_ = pongo2.RegisterTag("liquid_cycle", parseCycle)
		_ = pongo2.RegisterTag("liquid_counter", parseCounter)
	})
}

// assign writes to the shared public context so values survive the child
// contexts loops create.
func assign(ctx *pongo2.ExecutionContext, name string, value any) {
	delete(ctx.Private, name)
	ctx.Public[name] = value
}

func write(w pongo2.TemplateWriter, s, sender string) *pongo2.Error {
	if _, err := w.WriteString(s); err != nil {
		return &pongo2.Error{Sender: sender, OrigError: err}
	}
	return nil
}

type assignNode struct {
	name  string
	value pongo2.IEvaluator
}

func parseAssign(_ *pongo2.Parser, _ *pongo2.Token, args *pongo2.Parser) (pongo2.INodeTag, *pongo2.Error) {
	name := args.MatchType(pongo2.TokenString)
	if name == nil {
		return nil, args.Error("assign needs a variable name", nil)
	}
	value, err := args.ParseExpression()
	if err != nil {
		return nil, err
	}
	if args.Remaining() > 0 {
		return nil, args.Error("malformed assign", nil)
	}
	return &assignNode{name: name.Val, value: value}, nil
}

func (n *assignNode) Execute(ctx *pongo2.ExecutionContext, _ pongo2.TemplateWriter) *pongo2.Error {
	value, err := n.value.Evaluate(ctx)
	if err != nil {
		return err
	}
	assign(ctx, n.name, value.Interface())
	return nil
}

type captureNode struct {
	name string
	body *pongo2.NodeWrapper
}

func parseCapture(doc *pongo2.Parser, _ *pongo2.Token, args *pongo2.Parser) (pongo2.INodeTag, *pongo2.Error) {
	name := args.MatchType(pongo2.TokenString)
	if name == nil {
		return nil, args.Error("capture needs a variable name", nil)
	}
	body, _, err := doc.WrapUntilTag("endliquid_capture")
	if err != nil {
		return nil, err
	}
	return &captureNode{name: name.Val, body: body}, nil
}

func (n *captureNode) Execute(ctx *pongo2.ExecutionContext, _ pongo2.TemplateWriter) *pongo2.Error {
	var buf bytes.Buffer
	if err := n.body.Execute(ctx, &buf); err != nil {
		return err
	}
	assign(ctx, n.name, buf.String())
	return nil
}

type loopNode struct {
	name       string
	collection pongo2.IEvaluator
	offset     pongo2.IEvaluator
	limit      pongo2.IEvaluator
	cols       pongo2.IEvaluator
	reversed   bool
	table      bool
	body       *pongo2.NodeWrapper
	empty      *pongo2.NodeWrapper
}

func parseLoop(end string, table bool) pongo2.TagParser {
	return func(doc *pongo2.Parser, _ *pongo2.Token, args *pongo2.Parser) (pongo2.INodeTag, *pongo2.Error) {
		name := args.MatchType(pongo2.TokenString)
		if name == nil {
			return nil, args.Error("loop needs a variable name", nil)
		}
		collection, err := args.ParseExpression()
		if err != nil {
			return nil, err
		}
		node := &loopNode{name: name.Val, collection: collection, table: table}
		for args.Remaining() > 0 {
			option := args.MatchType(pongo2.TokenIdentifier)
			if option == nil {
				return nil, args.Error("malformed loop arguments", nil)
			}
			if option.Val == "reversed" {
				node.reversed = true
				continue
			}
			value, err := args.ParseExpression()
			if err != nil {
				return nil, err
			}
			switch option.Val {
			case "offset":
				node.offset = value
			case "limit":
				node.limit = value
			case "cols":
				node.cols = value
			default:
				return nil, args.Error(fmt.Sprintf("unknown loop option %q", option.Val), option)
			}
		}

		body, _, err := doc.WrapUntilTag("else", end)
		if err != nil {
			return nil, err
		}
		node.body = body
		if body.Endtag == "else" {
			if node.empty, _, err = doc.WrapUntilTag(end); err != nil {
				return nil, err
			}
		}
		return node, nil
	}
}

func (n *loopNode) number(ctx *pongo2.ExecutionContext, expr pongo2.IEvaluator, fallback int) (int, *pongo2.Error) {
	if expr == nil {
		return fallback, nil
	}
	value, err := expr.Evaluate(ctx)
	if err != nil {
		return 0, err
	}
	if value.IsNil() {
		return fallback, nil
	}
	return int(filters.Number(value.Interface())), nil
}

func (n *loopNode) Execute(ctx *pongo2.ExecutionContext, w pongo2.TemplateWriter) *pongo2.Error {
	collection, err := n.collection.Evaluate(ctx)
	if err != nil {
		return err
	}
	offset, err := n.number(ctx, n.offset, 0)
	if err != nil {
		return err
	}
	limit, err := n.number(ctx, n.limit, -1)
	if err != nil {
		return err
	}

	items := window(iterate(collection.Interface()), offset, limit)
	if n.reversed {
		items = slices.Clone(items)
		slices.Reverse(items)
	}
	if len(items) == 0 {
		if n.empty != nil {
			return n.empty.Execute(ctx, w)
		}
		return nil
	}
	if n.table {
		return n.executeTable(ctx, w, items)
	}

	loopCtx := pongo2.NewChildExecutionContext(ctx)
	parent := ctx.Private["forloop"]
	for i, item := range items {
		loopCtx.Private[n.name] = item
		loopCtx.Private["forloop"] = loopInfo(i, len(items), parent)
		if err := n.body.Execute(loopCtx, w); err != nil {
			switch err.OrigError {
			case errBreak:
				return nil
			case errContinue:
				continue
			}
			return err
		}
	}
	return nil
}

func (n *loopNode) executeTable(ctx *pongo2.ExecutionContext, w pongo2.TemplateWriter, items []any) *pongo2.Error {
	cols, err := n.number(ctx, n.cols, len(items))
	if err != nil {
		return err
	}
	if cols <= 0 {
		cols = len(items)
	}

	const sender = "tag:liquid_tablerow"
	if err := write(w, `<tr class="row1">`+"\n", sender); err != nil {
		return err
	}
	loopCtx := pongo2.NewChildExecutionContext(ctx)
	for i, item := range items {
		col, row := i%cols, i/cols
		if col == 0 && i > 0 {
			if err := write(w, "</tr>\n<tr class=\"row"+strconv.Itoa(row+1)+`">`, sender); err != nil {
				return err
			}
		}
		info := loopInfo(i, len(items), nil)
		info["col"] = col + 1
		info["col0"] = col
		info["row"] = row + 1
		info["col_first"] = col == 0
		info["col_last"] = col == cols-1 || i == len(items)-1
		loopCtx.Private[n.name] = item
		loopCtx.Private["tablerowloop"] = info

		if err := write(w, `<td class="col`+strconv.Itoa(col+1)+`">`, sender); err != nil {
			return err
		}
		stop := false
		if err := n.body.Execute(loopCtx, w); err != nil {
			switch err.OrigError {
			case errBreak:
				stop = true
			case errContinue:
			default:
				return err
			}
		}
		if err := write(w, "</td>", sender); err != nil {
			return err
		}
		if stop {
			break
		}
	}
	return write(w, "</tr>\n", sender)
}

func loopInfo(i, length int, parent any) map[string]any {
	return map[string]any{
		"index":      i + 1,
		"index0":     i,
		"rindex":     length - i,
		"rindex0":    length - i - 1,
		"first":      i == 0,
		"last":       i == length-1,
		"length":     length,
		"parentloop": parent,
	}
}

type signalNode struct {
	err error
}

func parseSignal(err error) pongo2.TagParser {
	return func(_ *pongo2.Parser, _ *pongo2.Token, args *pongo2.Parser) (pongo2.INodeTag, *pongo2.Error) {
		if args.Remaining() > 0 {
			return nil, args.Error("no arguments allowed", nil)
		}
		return signalNode{err: err}, nil
	}
}

func (n signalNode) Execute(*pongo2.ExecutionContext, pongo2.TemplateWriter) *pongo2.Error {
	return &pongo2.Error{Sender: "tag:liquid_signal", OrigError: n.err}
}

type cycleNode struct {
	key    string
	values []pongo2.IEvaluator
}

func parseCycle(_ *pongo2.Parser, _ *pongo2.Token, args *pongo2.Parser) (pongo2.INodeTag, *pongo2.Error) {
	key := args.MatchType(pongo2.TokenString)
	if key == nil {
		return nil, args.Error("cycle needs a group key", nil)
	}
	node := &cycleNode{key: "\x00cycle:" + key.Val}
	for {
		value, err := args.ParseExpression()
		if err != nil {
			return nil, err
		}
		node.values = append(node.values, value)
		if args.Match(pongo2.TokenSymbol, ",") == nil {
			break
		}
	}
	if args.Remaining() > 0 {
		return nil, args.Error("malformed cycle", nil)
	}
	return node, nil
}

func (n *cycleNode) Execute(ctx *pongo2.ExecutionContext, w pongo2.TemplateWriter) *pongo2.Error {
	position, _ := ctx.Public[n.key].(int)
	ctx.Public[n.key] = position + 1
	value, err := n.values[position%len(n.values)].Evaluate(ctx)
	if err != nil {
		return err
	}
	return write(w, text(value.Interface()), "tag:liquid_cycle")
}

type counterNode struct {
	key  string
	step pongo2.IEvaluator
}

func parseCounter(_ *pongo2.Parser, _ *pongo2.Token, args *pongo2.Parser) (pongo2.INodeTag, *pongo2.Error) {
	name := args.MatchType(pongo2.TokenString)
	if name == nil {
		return nil, args.Error("counter needs a name", nil)
	}
	step, err := args.ParseExpression()
	if err != nil {
		return nil, err
	}
	return &counterNode{key: "\x00counter:" + name.Val, step: step}, nil
}

// Execute follows Liquid: increment prints then adds one starting at 0,
// decrement subtracts one then prints.
func (n *counterNode) Execute(ctx *pongo2.ExecutionContext, w pongo2.TemplateWriter) *pongo2.Error {
	step, err := n.step.Evaluate(ctx)
	if err != nil {
		return err
	}
	current, _ := ctx.Public[n.key].(int)
	if step.Integer() < 0 {
		current--
		ctx.Public[n.key] = current
	} else {
		ctx.Public[n.key] = current + 1
	}
	return write(w, strconv.Itoa(current), "tag:liquid_counter")
}
