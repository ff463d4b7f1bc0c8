// Package ast 提供电路网表解析的抽象语法树（AST）功能。
// 它能够解析包含元件定义、值设置命令和注释的电路网表文本，
// 并构建相应的语法树结构供后续处理使用。
//
// 网表格式：
//
//	# 注释
//	.value R 1k
//	v1 [-1,1] [0,0,10]
//	r1 [1,2] [%R]
package ast

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"
)

// 常量定义 - 用于词法分析和语法分析的关键字和符号
const (
	tokenValue             = ".value" // 值设置命令
	tokenNewline           = "\n"     // 换行符
	tokenSpace             = " "      // 空格
	tokenTab               = "\t"     // 制表符
	tokenCR                = "\r"     // 回车符
	tokenLBracket          = "["      // 左方括号
	tokenRBracket          = "]"      // 右方括号
	tokenComma             = ","      // 逗号分隔符
	tokenCommentHash       = "#"      // # 注释
	tokenCommentLine       = "//"     // // 行注释
	tokenCommentBlockStart = "/*"     // /* 块注释开始
	tokenCommentBlockEnd   = "*/"     // */ 块注释结束
)

// ElementNode 表示元件定义节点
type ElementNode struct {
	Type   string  // 元件类型，如 "v", "r", "c"
	ID     string  // 元件ID，如 "1"
	Pins   []Value // 引脚列表
	Values []Value // 值列表
	Line   int     // 行号
}

// CommentNode 表示注释节点
type CommentNode struct {
	Text string // 注释文本
	Line int    // 行号
}

// ParseTree 解析树
type ParseTree struct {
	ElementNodes []*ElementNode    // 元件列表
	CommentNodes []*CommentNode    // 注释列表
	ValueNodes   map[string]string // 变量列表
}

// String 解析树摘要，调试用
func (parseTree *ParseTree) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d 个元件, %d 个值设置, %d 个注释\n",
		len(parseTree.ElementNodes), len(parseTree.ValueNodes), len(parseTree.CommentNodes))
	for _, n := range parseTree.ElementNodes {
		fmt.Fprintf(&b, "%s%s (行号: %d) 引脚 %v 值 %v\n", n.Type, n.ID, n.Line, n.Pins, n.Values)
	}
	return b.String()
}

// parser 流式解析器，不先收集 tokens
type parser struct {
	scanner *bufio.Scanner
	line    int
	pending *string // 预读但未处理的 token
	tree    *ParseTree
}

// next 读取下一个 token
// 参数skipBlank: 跳过空格和制表符
func (p *parser) next(skipBlank bool) (string, bool) {
	for {
		var token string
		if p.pending != nil {
			token, p.pending = *p.pending, nil
		} else {
			if !p.scanner.Scan() {
				return "", false
			}
			token = p.scanner.Text()
		}
		if skipBlank && (token == tokenSpace || token == tokenTab || token == tokenCR) {
			continue
		}
		return token, true
	}
}

// errorf 生成带行号的错误信息
func (p *parser) errorf(format string, args ...any) error {
	return fmt.Errorf("第 %d 行: %s", p.line, fmt.Sprintf(format, args...))
}

// NewParseTree 生成网表解析树
func NewParseTree(r io.Reader) (*ParseTree, error) {
	scanner := bufio.NewScanner(r)
	scanner.Split(SplitTokens)
	p := &parser{
		scanner: scanner,
		line:    1,
		tree:    &ParseTree{ValueNodes: map[string]string{}},
	}
	for {
		token, ok := p.next(true)
		if !ok {
			break
		}
		switch {
		case token == tokenNewline:
			p.line++
		case p.comment(token):
		case token == tokenValue:
			if err := p.valueCommand(); err != nil {
				return nil, err
			}
		case isLetter(token[0]):
			if err := p.element(token); err != nil {
				return nil, err
			}
		default:
			return nil, p.errorf("无法识别的内容 %q", token)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("读取网表时出错: %w", err)
	}
	return p.tree, nil
}

// valueList 解析值列表，起始的 [ 已经读取
func (p *parser) valueList() ([]Value, error) {
	var values []Value
	for {
		token, ok := p.next(true)
		if !ok || token == tokenNewline {
			return nil, p.errorf("值列表缺少结束标记 ]")
		}
		// 如果遇到 ]，表示列表结束
		if token == tokenRBracket {
			return values, nil
		}
		if token == tokenComma {
			continue
		}
		// 处理变量（以 % 开头）
		value := Value{Value: token, Line: p.line}
		if token[0] == '%' {
			value.IsVar = true
			value.Value = token[1:]
		}
		values = append(values, value)
	}
}

// comment 解析注释 token
func (p *parser) comment(token string) bool {
	var text string
	switch {
	case strings.HasPrefix(token, tokenCommentHash):
		text = token[1:]
	case strings.HasPrefix(token, tokenCommentLine):
		text = token[2:]
	case strings.HasPrefix(token, tokenCommentBlockStart):
		text = strings.TrimSuffix(token[2:], tokenCommentBlockEnd)
		// 块注释可能跨行
		defer func() { p.line += strings.Count(token, tokenNewline) }()
	default:
		return false
	}
	p.tree.CommentNodes = append(p.tree.CommentNodes, &CommentNode{
		Text: strings.TrimSpace(text),
		Line: p.line,
	})
	return true
}

// valueCommand 解析 .value 命令
func (p *parser) valueCommand() error {
	name, ok := p.next(true)
	if !ok || name == tokenNewline {
		return p.errorf(".value 命令缺少名称")
	}
	value, ok := p.next(true)
	if !ok || value == tokenNewline {
		return p.errorf(".value 命令缺少值")
	}
	p.tree.ValueNodes[name] = value
	return nil
}

// element 解析元件定义
func (p *parser) element(elementType string) error {
	id, ok := p.next(true)
	if !ok || !isNumber(id) {
		return p.errorf("元件 %s 缺少数字 ID", elementType)
	}
	if token, ok := p.next(true); !ok || token != tokenLBracket {
		return p.errorf("缺少引脚列表开始标记 [")
	}
	pins, err := p.valueList()
	if err != nil {
		return err
	}
	// 可选的值列表
	var values []Value
	if token, ok := p.next(true); ok {
		if token == tokenLBracket {
			if values, err = p.valueList(); err != nil {
				return err
			}
		} else {
			p.pending = &token
		}
	}
	p.tree.ElementNodes = append(p.tree.ElementNodes, &ElementNode{
		Type:   elementType,
		ID:     id,
		Pins:   pins,
		Values: values,
		Line:   p.line,
	})
	return nil
}

// isLetter 检查是否是字母
func isLetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

// isNumber 检查字符串是否表示数字
func isNumber(s string) bool {
	if len(s) == 0 {
		return false
	}
	// 检查第一个字符，如果是数字或负号开头
	if s[0] == '-' || s[0] == '+' {
		if len(s) > 1 {
			return s[1] >= '0' && s[1] <= '9'
		}
		return false
	}
	return s[0] >= '0' && s[0] <= '9'
}

// isNumberChar 数字 token 中允许的字符，包括指数和单位前缀
func isNumberChar(c byte) bool {
	if c >= '0' && c <= '9' {
		return true
	}
	return strings.IndexByte(".eE+-", c) >= 0 || siPrefix[c] != 0
}

// SplitTokens 分割标识符
func SplitTokens(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	for i := range data {
		switch data[i] {
		case '#':
			if i != 0 {
				return i, data[:i], nil
			}
			return scanComment(data, atEOF)
		case '1', '2', '3', '4', '5', '6', '7', '8', '9', '0', '+', '-':
			if i != 0 {
				return i, data[:i], nil
			}
			for i < len(data) && isNumberChar(data[i]) {
				i++
			}
			if i == len(data) && !atEOF {
				return 0, nil, nil
			}
			return i, data[:i], nil
		case '/':
			if len(data) > i+1 {
				switch data[i+1] {
				case '*':
					if i != 0 {
						return i, data[:i], nil
					}
					if end := bytes.Index(data, []byte(tokenCommentBlockEnd)); end >= 0 {
						return end + 2, data[:end+2], nil
					}
					if !atEOF {
						return 0, nil, nil
					}
					return len(data), data, nil
				case '/':
					if i != 0 {
						return i, data[:i], nil
					}
					return scanComment(data, atEOF)
				}
			}
			return i + 1, data[0 : i+1], nil
		case ' ', '\t', '\r', '\n', ',', ']', '[':
			if i != 0 {
				return i, data[:i], nil
			}
			return i + 1, data[0 : i+1], nil
		}
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

// scanComment 行注释读到行尾，换行符留给下一个 token
func scanComment(data []byte, atEOF bool) (int, []byte, error) {
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		return i, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
