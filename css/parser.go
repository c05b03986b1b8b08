package css

import (
	"bytes"
	"errors"
	"io"
	"slices"
	"strconv"
	"strings"
	"unicode"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
)

// Parser parses CSS stylesheets into structured rules.
type Parser struct {
	log *zap.Logger
}

// NewParser creates a new CSS parser.
func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log.Named("css-parser")}
}

// parseState is a single run of tdewolff parser over the input.
type parseState struct {
	owner  *Parser
	parser *css.Parser
	sheet  *Stylesheet
}

// Parse parses CSS text into a Stylesheet.
// The optional source parameter identifies what's being parsed (for debug logging).
func (p *Parser) Parse(data []byte, source ...string) *Stylesheet {
	sheet := &Stylesheet{
		Items:    make([]StylesheetItem, 0),
		Warnings: make([]string, 0),
	}

	if len(source) > 0 && source[0] != "" {
		p.log.Debug("Parsing CSS", zap.String("source", source[0]), zap.Int("bytes", len(data)))
	}

	st := &parseState{
		owner:  p,
		parser: css.NewParser(parse.NewInput(bytes.NewReader(data)), false),
		sheet:  sheet,
	}

	for {
		gt, data, ok := st.next()
		if !ok {
			return sheet
		}

		switch gt {
		case css.BeginAtRuleGrammar:
			atRule := string(data)
			prelude := joinTokens(st.parser.Values())
			switch atRule {
			case "@media":
				st.addBlock(BlockMedia, prelude, st.ruleList(false))
			case "@supports":
				st.addBlock(BlockSupports, prelude, st.ruleList(false))
			case "@keyframes", "@-webkit-keyframes":
				st.addBlock(BlockKeyframes, prelude, st.ruleList(true))
			case "@container":
				// unknown to tokenizer, block arrives as raw tokens
				st.addBlock(BlockContainer, prelude, st.rawRules())
			default:
				st.skipBlock()
				p.log.Debug("Skipping @-rule", zap.String("rule", atRule))
			}

		case css.AtRuleGrammar:
			// Simple @-rule without block (e.g., @import)
			atRule := string(data)
			if atRule == "@import" {
				if url := extractImportURL(st.parser.Values()); url != "" {
					sheet.Items = append(sheet.Items, StylesheetItem{Import: &url})
					p.log.Debug("Parsed @import", zap.String("url", url))
				}
			} else {
				p.log.Debug("Skipping @-rule", zap.String("rule", atRule))
			}

		case css.BeginRulesetGrammar:
			selectors := parseSelectors(data, st.parser.Values())
			decls := st.declarations()
			for _, s := range selectors {
				rule := Rule{Selector: parseSelector(s), Declarations: slices.Clone(decls)}
				sheet.Items = append(sheet.Items, StylesheetItem{Rule: &rule})
			}
		}
	}
}

// next returns next grammar skipping over recoverable parse errors which are
// recorded as warnings. It reports false at the end of input.
func (st *parseState) next() (css.GrammarType, []byte, bool) {
	for {
		gt, _, data := st.parser.Next()
		if gt != css.ErrorGrammar {
			return gt, data, true
		}
		if !st.parser.HasParseError() {
			if err := st.parser.Err(); err != nil && !errors.Is(err, io.EOF) {
				st.owner.log.Debug("CSS read error", zap.Error(err))
			}
			return gt, nil, false
		}
		err := st.parser.Err()
		st.owner.log.Debug("CSS parse error", zap.Error(err))
		st.sheet.Warnings = append(st.sheet.Warnings, err.Error())
	}
}

func (st *parseState) addBlock(kind BlockKind, prelude string, rules []Rule) {
	st.owner.log.Debug("Parsed block", zap.Stringer("kind", kind), zap.String("prelude", prelude), zap.Int("rules", len(rules)))
	st.sheet.Items = append(st.sheet.Items, StylesheetItem{
		Block: &Block{Kind: kind, Prelude: prelude, Rules: rules},
	})
}

// ruleList parses rules inside an at-rule block until its end. Selectors of
// keyframe blocks are frame offsets and are kept as is.
func (st *parseState) ruleList(frames bool) []Rule {
	var rules []Rule
	for {
		gt, data, ok := st.next()
		if !ok {
			return rules
		}
		switch gt {
		case css.EndAtRuleGrammar:
			return rules

		case css.BeginAtRuleGrammar:
			st.sheet.Warnings = append(st.sheet.Warnings, "nested "+string(data)+" is not supported")
			st.skipBlock()

		case css.BeginRulesetGrammar:
			selectors := parseSelectors(data, st.parser.Values())
			decls := st.declarations()
			for _, s := range selectors {
				sel := Selector{Raw: s}
				if !frames {
					sel = parseSelector(s)
				}
				rules = append(rules, Rule{Selector: sel, Declarations: slices.Clone(decls)})
			}
		}
	}
}

// rawRules collects raw tokens of a block tokenizer does not understand and
// parses them as a nested stylesheet.
func (st *parseState) rawRules() []Rule {
	var buf bytes.Buffer
	for {
		gt, data, ok := st.next()
		if !ok || gt == css.EndAtRuleGrammar {
			break
		}
		buf.Write(data)
	}
	nested := st.owner.Parse(buf.Bytes())
	st.sheet.Warnings = append(st.sheet.Warnings, nested.Warnings...)
	return nested.Rules()
}

// declarations parses property declarations until EndRulesetGrammar.
func (st *parseState) declarations() []Declaration {
	var decls []Declaration
	for {
		gt, data, ok := st.next()
		if !ok {
			return decls
		}

		switch gt {
		case css.EndRulesetGrammar:
			return decls

		case css.DeclarationGrammar:
			values := st.parser.Values()
			if len(values) > 0 {
				decls = append(decls, Declaration{Property: string(data), Value: parsePropertyValue(values)})
			}

		case css.CustomPropertyGrammar:
			var raw string
			if values := st.parser.Values(); len(values) > 0 {
				raw = strings.TrimSpace(string(values[0].Data))
			}
			decls = append(decls, Declaration{Property: string(data), Value: Value{Raw: raw}, Custom: true})
		}
	}
}

// skipBlock skips tokens until the matching end of an @-rule block.
func (st *parseState) skipBlock() {
	depth := 1
	for depth > 0 {
		gt, _, ok := st.next()
		if !ok {
			return
		}
		switch gt {
		case css.BeginAtRuleGrammar, css.BeginRulesetGrammar:
			depth++
		case css.EndAtRuleGrammar, css.EndRulesetGrammar:
			depth--
		}
	}
}

// extractImportURL extracts the URL from @import tokens.
// Handles: @import "url"; @import url("url"); @import url(url);
func extractImportURL(tokens []css.Token) string {
	for _, t := range tokens {
		switch t.TokenType {
		case css.StringToken:
			return unquote(string(t.Data))
		case css.URLToken:
			s := string(t.Data)
			s = strings.TrimPrefix(s, "url(")
			s = strings.TrimSuffix(s, ")")
			return unquote(s)
		}
	}
	return ""
}

// joinTokens renders token list back to text. Tokenizer drops whitespace
// after separators, it is restored so values read naturally.
func joinTokens(tokens []css.Token) string {
	var sb strings.Builder
	for i, t := range tokens {
		if t.TokenType == css.WhitespaceToken {
			if sb.Len() > 0 {
				sb.WriteByte(' ')
			}
			continue
		}
		sb.Write(t.Data)
		separator := t.TokenType == css.CommaToken || t.TokenType == css.ColonToken ||
			(t.TokenType == css.DelimToken && string(t.Data) == "/")
		if separator && i+1 < len(tokens) && tokens[i+1].TokenType != css.WhitespaceToken {
			sb.WriteByte(' ')
		}
	}
	return strings.TrimSpace(sb.String())
}

// parseSelectors extracts selector strings from token data.
func parseSelectors(data []byte, values []css.Token) []string {
	// Build full selector string from data and values
	var sb strings.Builder
	sb.Write(data)
	for _, v := range values {
		sb.Write(v.Data)
	}

	// Split by comma for grouped selectors
	var selectors []string
	for s := range strings.SplitSeq(sb.String(), ",") {
		s = strings.TrimSpace(s)
		if s != "" {
			selectors = append(selectors, s)
		}
	}
	return selectors
}

// parsePropertyValue converts CSS tokens to a Value.
func parsePropertyValue(tokens []css.Token) Value {
	if len(tokens) == 0 {
		return Value{}
	}

	val := Value{Raw: joinTokens(tokens)}

	// Handle single token cases
	if len(tokens) == 1 || (len(tokens) == 2 && tokens[1].TokenType == css.WhitespaceToken) {
		t := tokens[0]
		switch t.TokenType {
		case css.DimensionToken:
			val.Value, val.Unit = parseDimension(string(t.Data))
		case css.PercentageToken:
			val.Value, _ = strconv.ParseFloat(strings.TrimSuffix(string(t.Data), "%"), 64)
			val.Unit = "%"
		case css.NumberToken:
			val.Value, _ = strconv.ParseFloat(string(t.Data), 64)
		case css.IdentToken:
			val.Keyword = strings.ToLower(string(t.Data))
		case css.StringToken:
			val.Keyword = unquote(string(t.Data))
		case css.HashToken:
			// Color value
			val.Keyword = string(t.Data)
		}
		return val
	}

	// Functions (rgba(), url(), etc.) and multi-value properties are
	// stored as keyword with raw value
	val.Keyword = val.Raw
	return val
}

// parseDimension extracts numeric value and unit from dimension token.
func parseDimension(s string) (float64, string) {
	numEnd := 0
	for i, r := range s {
		if unicode.IsDigit(r) || r == '.' || r == '-' || r == '+' {
			numEnd = i + 1
		} else {
			break
		}
	}

	if numEnd == 0 {
		return 0, ""
	}

	num, _ := strconv.ParseFloat(s[:numEnd], 64)
	unit := strings.ToLower(s[numEnd:])
	return num, unit
}

// splitCompound returns index where the rightmost compound selector starts,
// combinators inside brackets and parentheses are ignored.
func splitCompound(s string) int {
	start, depth := 0, 0
	for i, r := range s {
		switch r {
		case '(', '[':
			depth++
		case ')', ']':
			depth--
		case ' ', '>', '+', '~':
			if depth == 0 {
				start = i + 1
			}
		}
	}
	return start
}

// parseSelector parses a single selector string into a Selector.
func parseSelector(raw string) Selector {
	sel := Selector{Raw: raw}

	compound := raw
	if i := splitCompound(raw); i > 0 {
		sel.Complex = true
		compound = strings.TrimSpace(raw[i:])
	}

	// pseudo part runs to the end of compound
	depth := 0
	for i, r := range compound {
		if r == '[' || r == '(' {
			depth++
		} else if r == ']' || r == ')' {
			depth--
		} else if r == ':' && depth == 0 {
			sel.Pseudo = compound[i:]
			compound = compound[:i]
			break
		}
	}

	// attribute conditions are not broken down
	for {
		open := strings.IndexByte(compound, '[')
		if open < 0 {
			break
		}
		end := strings.IndexByte(compound[open:], ']')
		if end < 0 {
			compound = compound[:open]
			break
		}
		compound = compound[:open] + compound[open+end+1:]
	}

	part, kind := strings.Builder{}, byte(0)
	flush := func() {
		if part.Len() == 0 {
			return
		}
		switch kind {
		case '.':
			sel.Classes = append(sel.Classes, part.String())
		case '#':
			sel.ID = part.String()
		default:
			sel.Element = strings.ToLower(part.String())
		}
		part.Reset()
	}
	for i := 0; i < len(compound); i++ {
		c := compound[i]
		if c == '.' || c == '#' {
			flush()
			kind = c
			continue
		}
		part.WriteByte(c)
	}
	flush()
	return sel
}

// unquote removes surrounding quotes from a string.
func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return s
	}
	if (s[0] == '"' && s[len(s)-1] == '"') ||
		(s[0] == '\'' && s[len(s)-1] == '\'') {
		return s[1 : len(s)-1]
	}
	return s
}
