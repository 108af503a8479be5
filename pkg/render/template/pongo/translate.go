package pongo

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrSyntax reports Liquid markup the translator cannot convert.
var ErrSyntax = errors.New("pongo: liquid syntax error")

// Translation is a Liquid template rewritten for pongo2. Literals holds the
// string constants referenced as liquid_literals.N.
type Translation struct {
	Source   string
	Literals []any
}

type segmentKind int

const (
	segText segmentKind = iota
	segOutput
	segTag
	segRaw
)

type segment struct {
	kind      segmentKind
	body      string
	owner     string
	line      int
	trimLeft  bool
	trimRight bool
}

// rawBlocks are tags whose body is never evaluated.
var rawBlocks = map[string]bool{
	"raw":        true,
	"comment":    true,
	"javascript": true,
	"stylesheet": true,
	"schema":     true,
}

type frame struct {
	tag      string
	subject  string
	branches int
}

type translator struct {
	out      strings.Builder
	stack    []frame
	lit      literals
	skipText bool
}

// Translate rewrites Liquid source into a pongo2 template that renders with
// the helpers and tags this package registers.
func Translate(src string) (Translation, error) {
	segments, err := scan(src)
	if err != nil {
		return Translation{}, err
	}
	applyTrim(segments)

	t := &translator{}
	t.out.WriteString("{% autoescape off %}")
	for _, seg := range segments {
		if err := t.segment(seg); err != nil {
			return Translation{}, fmt.Errorf("%w: line %d: %v", ErrSyntax, seg.line, err)
		}
	}
	if len(t.stack) > 0 {
		return Translation{}, fmt.Errorf("%w: unclosed {%% %s %%}", ErrSyntax, t.stack[len(t.stack)-1].tag)
	}
	t.out.WriteString("{% endautoescape %}")
	return Translation{Source: t.out.String(), Literals: t.lit.values}, nil
}

func scan(src string) ([]segment, error) {
	var segments []segment
	lines := &lineCounter{src: src, line: 1}
	pos := 0
	for pos < len(src) {
		start := nextDelimiter(src, pos)
		if start < 0 {
			segments = append(segments, segment{kind: segText, body: src[pos:], line: lines.at(pos)})
			break
		}
		if start > pos {
			segments = append(segments, segment{kind: segText, body: src[pos:start], line: lines.at(pos)})
		}

		isTag := src[start+1] == '%'
		closer := "}}"
		if isTag {
			closer = "%}"
		}
		end := closingDelimiter(src, start+2, closer)
		if end < 0 {
			return nil, fmt.Errorf("%w: line %d: unterminated %q", ErrSyntax, lines.at(start), src[start:start+2])
		}

		seg := segment{kind: segOutput, line: lines.at(start)}
		if isTag {
			seg.kind = segTag
		}
		inner := src[start+2 : end]
		if strings.HasPrefix(inner, "-") {
			seg.trimLeft = true
			inner = inner[1:]
		}
		if strings.HasSuffix(inner, "-") {
			seg.trimRight = true
			inner = inner[:len(inner)-1]
		}
		seg.body = strings.TrimSpace(inner)
		segments = append(segments, seg)
		pos = end + len(closer)

		if !isTag {
			continue
		}
		name, _ := splitTag(seg.body)
		if !rawBlocks[name] {
			continue
		}
		loc := endTagPattern(name).FindStringSubmatchIndex(src[pos:])
		if loc == nil {
			return nil, fmt.Errorf("%w: line %d: unclosed {%% %s %%}", ErrSyntax, seg.line, name)
		}
		segments = append(segments,
			segment{kind: segRaw, owner: name, body: src[pos : pos+loc[0]], line: lines.at(pos)},
			segment{
				kind:      segTag,
				body:      "end" + name,
				line:      lines.at(pos+loc[0]),
				trimLeft:  loc[3] > loc[2],
				trimRight: loc[5] > loc[4],
			},
		)
		pos += loc[1]
	}
	return segments, nil
}

func endTagPattern(name string) *regexp.Regexp {
	return regexp.MustCompile(`\{%(-?)\s*end` + regexp.QuoteMeta(name) + `\s*(-?)%\}`)
}

func nextDelimiter(src string, from int) int {
	for i := from; i+1 < len(src); i++ {
		if src[i] == '{' && (src[i+1] == '{' || src[i+1] == '%') {
			return i
		}
	}
	return -1
}

// closingDelimiter finds closer outside of quoted strings, falling back to the
// first plain occurrence when quotes are unbalanced.
func closingDelimiter(src string, from int, closer string) int {
	var quote byte
	for i := from; i < len(src); i++ {
		c := src[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case strings.HasPrefix(src[i:], closer):
			return i
		}
	}
	if idx := strings.Index(src[from:], closer); idx >= 0 {
		return from + idx
	}
	return -1
}

// lineCounter maps increasing byte offsets to 1-based line numbers.
type lineCounter struct {
	src  string
	pos  int
	line int
}

func (c *lineCounter) at(offset int) int {
	if offset > c.pos {
		c.line += strings.Count(c.src[c.pos:offset], "\n")
		c.pos = offset
	}
	return c.line
}

func applyTrim(segments []segment) {
	for i, seg := range segments {
		if seg.kind != segTag && seg.kind != segOutput {
			continue
		}
		if seg.trimLeft && i > 0 && segments[i-1].kind == segText {
			segments[i-1].body = strings.TrimRight(segments[i-1].body, " \t\r\n")
		}
		if seg.trimRight && i+1 < len(segments) && segments[i+1].kind == segText {
			segments[i+1].body = strings.TrimLeft(segments[i+1].body, " \t\r\n")
		}
	}
}

func splitTag(body string) (name, markup string) {
	body = strings.TrimSpace(body)
	if strings.HasPrefix(body, "#") {
		return "#", strings.TrimSpace(body[1:])
	}
	idx := strings.IndexAny(body, " \t\r\n")
	if idx < 0 {
		return body, ""
	}
	return body[:idx], strings.TrimSpace(body[idx+1:])
}

func (t *translator) segment(seg segment) error {
	switch seg.kind {
	case segText:
		if t.skipText {
			return nil
		}
		t.out.WriteString(escapeText(seg.body))
	case segRaw:
		switch seg.owner {
		case "raw", "javascript", "stylesheet":
			t.out.WriteString(escapeText(seg.body))
		}
	case segOutput:
		if seg.body == "" {
			return nil
		}
		return t.output(seg.body)
	case segTag:
		name, markup := splitTag(seg.body)
		return t.tag(name, markup)
	}
	return nil
}

func (t *translator) output(markup string) error {
	p, err := newExprParser(markup, &t.lit)
	if err != nil {
		return err
	}
	expr, err := p.filtered()
	if err != nil {
		return err
	}
	if err := p.end(); err != nil {
		return err
	}
	t.out.WriteString("{{ " + call("liquid_text", expr) + " }}")
	return nil
}

func (t *translator) emit(format string, args ...any) {
	t.out.WriteString("{% " + fmt.Sprintf(format, args...) + " %}")
}

func (t *translator) push(tag string) { t.stack = append(t.stack, frame{tag: tag}) }

func (t *translator) top() *frame {
	if len(t.stack) == 0 {
		return nil
	}
	return &t.stack[len(t.stack)-1]
}

func (t *translator) pop(tags ...string) error {
	top := t.top()
	if top == nil {
		return fmt.Errorf("unexpected end tag for %s", strings.Join(tags, "/"))
	}
	for _, tag := range tags {
		if top.tag == tag {
			t.stack = t.stack[:len(t.stack)-1]
			return nil
		}
	}
	return fmt.Errorf("{%% %s %%} is not closed", top.tag)
}

func (t *translator) tag(name, markup string) error {
	switch name {
	case "if", "unless", "elsif":
		p, err := newExprParser(markup, &t.lit)
		if err != nil {
			return err
		}
		cond, err := p.condition()
		if err != nil {
			return err
		}
		if err := p.end(); err != nil {
			return err
		}
		switch name {
		case "if":
			t.push(name)
			t.emit("if %s", cond)
		case "unless":
			t.push(name)
			t.emit("if not (%s)", cond)
		default:
			if top := t.top(); top == nil || (top.tag != "if" && top.tag != "unless") {
				return errors.New("elsif outside of if")
			}
			t.emit("elif %s", cond)
		}
	case "else":
		return t.elseTag()
	case "endif":
		if err := t.pop("if"); err != nil {
			return err
		}
		t.emit("endif")
	case "endunless":
		if err := t.pop("unless"); err != nil {
			return err
		}
		t.emit("endif")
	case "case":
		return t.caseTag(markup)
	case "when":
		return t.whenTag(markup)
	case "endcase":
		top := t.top()
		if err := t.pop("case"); err != nil {
			return err
		}
		t.skipText = false
		if top.branches > 0 {
			t.emit("endif")
		}
	case "for", "tablerow":
		return t.loopTag(name, markup)
	case "endfor":
		if err := t.pop("for"); err != nil {
			return err
		}
		t.emit("endliquid_for")
	case "endtablerow":
		if err := t.pop("tablerow"); err != nil {
			return err
		}
		t.emit("endliquid_tablerow")
	case "break", "continue":
		t.emit("liquid_%s", name)
	case "assign":
		return t.assignTag(markup)
	case "capture":
		p, err := newExprParser(markup, &t.lit)
		if err != nil {
			return err
		}
		target := p.next()
		if target.kind != tokIdent && target.kind != tokString {
			return errors.New("capture needs a variable name")
		}
		t.push(name)
		t.emit("liquid_capture %s", t.lit.quote(target.text))
	case "endcapture":
		if err := t.pop("capture"); err != nil {
			return err
		}
		t.emit("endliquid_capture")
	case "increment", "decrement":
		step := "1"
		if name == "decrement" {
			step = "-1"
		}
		t.emit("liquid_counter %s %s", t.lit.quote(strings.TrimSpace(markup)), step)
	case "cycle":
		return t.cycleTag(markup)
	case "echo":
		if markup == "" {
			return nil
		}
		return t.output(markup)
	case "liquid":
		return t.liquidTag(markup)
	case "style":
		t.push(name)
		t.out.WriteString("<style>")
	case "endstyle":
		if err := t.pop("style"); err != nil {
			return err
		}
		t.out.WriteString("</style>")
	case "form":
		t.push(name)
		t.out.WriteString(`<form method="post" class="shopify-form">`)
	case "endform":
		if err := t.pop("form"); err != nil {
			return err
		}
		t.out.WriteString("</form>")
	case "paginate":
		t.push(name)
	case "endpaginate":
		return t.pop("paginate")
	case "raw", "comment", "schema":
	case "endraw", "endcomment", "endschema":
	case "javascript":
		t.out.WriteString("<script>")
	case "endjavascript":
		t.out.WriteString("</script>")
	case "stylesheet":
		t.out.WriteString("<style>")
	case "endstylesheet":
		t.out.WriteString("</style>")
	case "render", "include", "section", "sections", "layout", "content_for", "#":
		// Snippets and layout sections do not exist in a standalone preview.
	default:
		// Unknown tags render nothing.
	}
	return nil
}

func (t *translator) elseTag() error {
	top := t.top()
	if top == nil {
		return errors.New("else outside of a block")
	}
	switch top.tag {
	case "if", "unless", "for", "tablerow":
		t.emit("else")
	case "case":
		if top.branches == 0 {
			t.emit("if false")
			top.branches++
		}
		t.skipText = false
		t.emit("else")
	default:
		return fmt.Errorf("else inside {%% %s %%}", top.tag)
	}
	return nil
}

func (t *translator) caseTag(markup string) error {
	p, err := newExprParser(markup, &t.lit)
	if err != nil {
		return err
	}
	subject, err := p.primary()
	if err != nil {
		return err
	}
	if err := p.end(); err != nil {
		return err
	}
	t.stack = append(t.stack, frame{tag: "case", subject: subject})
	t.skipText = true
	return nil
}

func (t *translator) whenTag(markup string) error {
	top := t.top()
	if top == nil || top.tag != "case" {
		return errors.New("when outside of case")
	}
	p, err := newExprParser(markup, &t.lit)
	if err != nil {
		return err
	}
	var conds []string
	for {
		value, err := p.primary()
		if err != nil {
			return err
		}
		conds = append(conds, call("liquid_compare", `"=="`, top.subject, value))
		if p.peek().kind == tokComma || p.isWord("or") {
			p.next()
			continue
		}
		break
	}
	if err := p.end(); err != nil {
		return err
	}
	keyword := "elif"
	if top.branches == 0 {
		keyword = "if"
	}
	top.branches++
	t.skipText = false
	t.emit("%s %s", keyword, strings.Join(conds, " or "))
	return nil
}

func (t *translator) loopTag(name, markup string) error {
	p, err := newExprParser(markup, &t.lit)
	if err != nil {
		return err
	}
	variable, err := p.expect(tokIdent, "loop variable")
	if err != nil {
		return err
	}
	if !p.isWord("in") {
		return p.errorf("expected 'in'")
	}
	p.next()
	collection, err := p.primary()
	if err != nil {
		return err
	}

	args := []string{t.lit.quote(variable.text), collection}
	for !p.done() {
		if p.peek().kind == tokComma {
			p.next()
			continue
		}
		option, err := p.expect(tokIdent, "loop option")
		if err != nil {
			return err
		}
		switch option.text {
		case "reversed":
			args = append(args, "reversed")
		case "limit", "offset", "cols":
			if _, err := p.expect(tokColon, "':'"); err != nil {
				return err
			}
			if option.text == "offset" && p.isWord("continue") {
				p.next()
				continue
			}
			value, err := p.primary()
			if err != nil {
				return err
			}
			args = append(args, option.text, value)
		default:
			return p.errorf("unknown loop option %q", option.text)
		}
	}
	t.push(name)
	tagName := "liquid_for"
	if name == "tablerow" {
		tagName = "liquid_tablerow"
	}
	t.emit("%s %s", tagName, strings.Join(args, " "))
	return nil
}

func (t *translator) assignTag(markup string) error {
	p, err := newExprParser(markup, &t.lit)
	if err != nil {
		return err
	}
	target, err := p.expect(tokIdent, "variable name")
	if err != nil {
		return err
	}
	if _, err := p.expect(tokAssign, "'='"); err != nil {
		return err
	}
	value, err := p.filtered()
	if err != nil {
		return err
	}
	if err := p.end(); err != nil {
		return err
	}
	t.emit("liquid_assign %s %s", t.lit.quote(target.text), value)
	return nil
}

func (t *translator) cycleTag(markup string) error {
	p, err := newExprParser(markup, &t.lit)
	if err != nil {
		return err
	}
	key := strings.Join(strings.Fields(markup), " ")
	if p.peekAt(1).kind == tokColon {
		group := p.next()
		p.next()
		key = group.text
	}
	var values []string
	for {
		value, err := p.primary()
		if err != nil {
			return err
		}
		values = append(values, value)
		if p.peek().kind != tokComma {
			break
		}
		p.next()
	}
	if err := p.end(); err != nil {
		return err
	}
	t.emit("liquid_cycle %s %s", t.lit.quote(key), strings.Join(values, ", "))
	return nil
}

// liquidTag expands {% liquid %}: one tag per line, without delimiters.
func (t *translator) liquidTag(markup string) error {
	inComment := false
	for _, line := range strings.Split(markup, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		name, rest := splitTag(line)
		if inComment {
			inComment = name != "endcomment"
			continue
		}
		if name == "comment" {
			inComment = true
			continue
		}
		if err := t.tag(name, rest); err != nil {
			return err
		}
	}
	return nil
}

// escapeText protects literal text from pongo2's own delimiters.
func escapeText(s string) string {
	if !strings.Contains(s, "{") {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '{' && i+1 == len(s) {
			b.WriteString(`{{ "{" }}`)
			continue
		}
		if s[i] == '{' && strings.IndexByte("{%#", s[i+1]) >= 0 {
			b.WriteString(`{{ "{` + string(s[i+1]) + `" }}`)
			i++
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
