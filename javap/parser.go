// Copyright 2026 Oliver Eikemeier. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package javap

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"fillmore-labs.com/bloatedscope/bytecode"
)

// section is the part of a method listing currently being read.
type section uint8

const (
	sectionNone section = iota
	sectionCode
	sectionSwitch
	sectionExceptions
	sectionLines
	sectionLocals
	sectionSkip
)

var (
	classDecl   = regexp.MustCompile(`^(?:(?:public|protected|private|abstract|final|static|sealed|non-sealed|strictfp)\s+)*(?:class|interface|enum|record|@interface)\s+([\w.$]+)`)
	instruction = regexp.MustCompile(`^(\d+):\s+([a-z_0-9]+)\s*(.*)$`)
	switchCase  = regexp.MustCompile(`^(-?\d+|default):\s+(\d+)$`)
	exception   = regexp.MustCompile(`^(\d+)\s+(\d+)\s+(\d+)\s+(\S+(?:\s+\S+)?)$`)
	lineNumber  = regexp.MustCompile(`^line\s+(\d+):\s+(\d+)$`)
	localVar    = regexp.MustCompile(`^(\d+)\s+(\d+)\s+(\d+)\s+(\S+)\s+(\S+)$`)
	attribute   = regexp.MustCompile(`^[A-Z][A-Za-z]*(?: [a-z]+)*:`)
)

// Parse reads javap output and returns the classes it describes.
// Methods without code (abstract and native methods) are omitted.
func Parse(r io.Reader) ([]*bytecode.Class, error) {
	p := parser{scanner: bufio.NewScanner(r)}
	p.scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for p.scanner.Scan() {
		p.line++

		if err := p.parseLine(p.scanner.Text()); err != nil {
			return nil, &ParseError{Line: p.line, Err: err}
		}
	}

	if err := p.scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading javap output: %w", err)
	}

	if err := p.endClass(); err != nil {
		return nil, &ParseError{Line: p.line, Err: err}
	}

	return p.classes, nil
}

// ParseString is [Parse] for in-memory listings.
func ParseString(s string) ([]*bytecode.Class, error) {
	return Parse(strings.NewReader(s))
}

type parser struct {
	scanner *bufio.Scanner
	line    int

	classes []*bytecode.Class
	class   *bytecode.Class
	source  string

	method  *bytecode.Method
	decl    string
	section section
	pending *bytecode.Instruction // switch instruction waiting for its closing brace
}

func (p *parser) parseLine(text string) error {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}

	indent := len(text) - len(strings.TrimLeft(text, " \t"))

	if indent == 0 {
		return p.parseTopLevel(trimmed)
	}

	if p.class == nil {
		return nil
	}

	if p.section == sectionSwitch {
		return p.parseSwitchCase(trimmed)
	}

	if indent == 2 && strings.HasSuffix(trimmed, ";") && !strings.HasPrefix(trimmed, "#") {
		return p.startMember(trimmed)
	}

	if p.method == nil {
		return nil
	}

	switch {
	case strings.HasPrefix(trimmed, "descriptor:"):
		p.method.Descriptor = strings.TrimSpace(strings.TrimPrefix(trimmed, "descriptor:"))
		p.section = sectionNone

		return nil

	case strings.HasPrefix(trimmed, "flags:"):
		if strings.Contains(trimmed, "ACC_STATIC") {
			p.method.Static = true
		}

		return nil

	case trimmed == "Code:":
		p.section = sectionCode

		return nil

	case trimmed == "Exception table:":
		p.section = sectionExceptions

		return nil

	case trimmed == "LineNumberTable:":
		p.section = sectionLines

		return nil

	case trimmed == "LocalVariableTable:":
		p.section = sectionLocals

		return nil

	case attribute.MatchString(trimmed):
		p.section = sectionSkip

		return nil
	}

	switch p.section {
	case sectionCode:
		return p.parseInstruction(trimmed)

	case sectionExceptions:
		return p.parseException(trimmed)

	case sectionLines:
		return p.parseLineNumber(trimmed)

	case sectionLocals:
		return p.parseLocal(trimmed)

	default:
		return nil
	}
}

func (p *parser) parseTopLevel(trimmed string) error {
	switch {
	case strings.HasPrefix(trimmed, "Compiled from "):
		p.source = unquote(strings.TrimPrefix(trimmed, "Compiled from "))

	case strings.HasPrefix(trimmed, "SourceFile:"):
		if p.class != nil {
			p.class.Source = unquote(strings.TrimSpace(strings.TrimPrefix(trimmed, "SourceFile:")))
		} else if n := len(p.classes); n > 0 {
			p.classes[n-1].Source = unquote(strings.TrimSpace(strings.TrimPrefix(trimmed, "SourceFile:")))
		}

	case trimmed == "}":
		return p.endClass()

	default:
		m := classDecl.FindStringSubmatch(trimmed)
		if m == nil {
			return nil // Classfile, checksum, constant pool header, "{" etc.
		}

		if err := p.endClass(); err != nil {
			return err
		}

		p.class = &bytecode.Class{
			Name:   strings.ReplaceAll(m[1], ".", "/"),
			Source: p.source,
		}
	}

	return nil
}

func (p *parser) endClass() error {
	if err := p.endMethod(); err != nil {
		return err
	}

	if p.class != nil {
		p.classes = append(p.classes, p.class)
		p.class = nil
		p.source = ""
	}

	return nil
}

func (p *parser) startMember(decl string) error {
	if err := p.endMethod(); err != nil {
		return err
	}

	p.section = sectionNone

	if !strings.Contains(decl, "(") && decl != "static {};" {
		return nil // field
	}

	p.decl = decl
	p.method = &bytecode.Method{Class: p.class.Name}

	name, static := declaredName(decl, p.class.Name)
	p.method.Name = name
	p.method.Static = static

	return nil
}

func (p *parser) endMethod() error {
	m := p.method
	if m == nil {
		return nil
	}

	p.method, p.section, p.pending = nil, sectionNone, nil

	if m.Descriptor == "" {
		desc, err := descriptorOf(p.decl, m.Name)
		if err != nil {
			return err
		}

		m.Descriptor = desc
	}

	if len(m.Code) == 0 {
		return nil
	}

	for i := range m.Code[:len(m.Code)-1] {
		m.Code[i].Length = m.Code[i+1].PC - m.Code[i].PC
	}

	last := &m.Code[len(m.Code)-1]
	last.Length = encodedLength(last)
	m.Length = last.Next()

	p.class.Methods = append(p.class.Methods, m)

	return nil
}

// encodedLength computes the length of the final instruction, which has no successor to measure against.
func encodedLength(ins *bytecode.Instruction) int {
	switch ins.Op {
	case bytecode.Tableswitch:
		return padding(ins.PC) + 12 + 4*len(ins.SwitchOffsets)

	case bytecode.Lookupswitch:
		return padding(ins.PC) + 8 + 8*len(ins.SwitchOffsets)

	default:
		if n := ins.Op.Length(); n > 0 {
			return n
		}

		return 1
	}
}

// padding returns the opcode byte plus the alignment bytes of a switch at pc.
func padding(pc int) int {
	return 1 + (3 - pc%4)
}

func (p *parser) parseInstruction(trimmed string) error {
	m := instruction.FindStringSubmatch(trimmed)
	if m == nil {
		if strings.HasPrefix(trimmed, "stack=") {
			return nil
		}

		return fmt.Errorf("%w: unexpected code line %q", ErrSyntax, trimmed)
	}

	pc, _ := strconv.Atoi(m[1])

	op, ok := lookupMnemonic(m[2])
	if !ok {
		return fmt.Errorf("%w: unknown instruction %q", ErrSyntax, m[2])
	}

	ins := bytecode.Instruction{PC: pc, Op: op, Register: -1}

	operands, comment, _ := strings.Cut(m[3], "//")
	operands, comment = strings.TrimSpace(operands), strings.TrimSpace(comment)

	if err := p.decodeOperands(&ins, operands, comment); err != nil {
		return err
	}

	if op.IsSwitch() {
		p.pending = &ins
		p.section = sectionSwitch

		return nil
	}

	p.method.Code = append(p.method.Code, ins)

	return nil
}

// lookupMnemonic resolves javap mnemonics, folding wide forms like "iload_w" into their base opcode.
func lookupMnemonic(name string) (bytecode.Opcode, bool) {
	if op, ok := bytecode.Lookup(name); ok {
		return op, true
	}

	if base, ok := strings.CutSuffix(name, "_w"); ok {
		return bytecode.Lookup(base)
	}

	return 0, false
}

func (p *parser) decodeOperands(ins *bytecode.Instruction, operands, comment string) error {
	op := ins.Op

	switch {
	case op.IsLoad(), op.IsStore(), op == bytecode.Ret:
		if reg, ok := op.ImplicitRegister(); ok {
			ins.Register = reg

			return nil
		}

		reg, err := strconv.Atoi(operands)
		if err != nil {
			return fmt.Errorf("%w: bad register %q", ErrSyntax, operands)
		}

		ins.Register = reg

	case op == bytecode.Iinc:
		reg, inc, ok := strings.Cut(operands, ",")
		r, err1 := strconv.Atoi(strings.TrimSpace(reg))
		n, err2 := strconv.Atoi(strings.TrimSpace(inc))

		if !ok || err1 != nil || err2 != nil {
			return fmt.Errorf("%w: bad iinc operands %q", ErrSyntax, operands)
		}

		ins.Register, ins.Increment = r, n

	case op.HasTarget():
		target, err := strconv.Atoi(operands)
		if err != nil {
			return fmt.Errorf("%w: bad branch target %q", ErrSyntax, operands)
		}

		ins.Target = target

	case op == bytecode.Ldc, op == bytecode.LdcW, op == bytecode.Ldc2W:
		ins.Constant = constantType(comment, op)

	case op == bytecode.Getstatic, op == bytecode.Putstatic,
		op == bytecode.Getfield, op == bytecode.Putfield,
		op.IsInvoke():
		ref, err := p.memberRef(comment)
		if err != nil {
			return err
		}

		ins.Ref = ref

	case op == bytecode.Multianewarray:
		_, dims, _ := strings.Cut(operands, ",")

		n, err := strconv.Atoi(strings.TrimSpace(dims))
		if err != nil {
			return fmt.Errorf("%w: bad dimensions %q", ErrSyntax, operands)
		}

		ins.Dimensions = n
	}

	return nil
}

// memberRef decodes comments like "Method java/io/PrintStream.println:(I)V",
// "Field count:I" or "InvokeDynamic #0:run:()Ljava/lang/Runnable;".
func (p *parser) memberRef(comment string) (*bytecode.MemberRef, error) {
	kind, ref, ok := strings.Cut(comment, " ")
	if !ok {
		return nil, fmt.Errorf("%w: missing member reference", ErrSyntax)
	}

	if kind == "InvokeDynamic" {
		_, ref, _ = strings.Cut(ref, ":") // bootstrap method index
	}

	i := strings.LastIndexByte(ref, ':')
	if i < 0 {
		return nil, fmt.Errorf("%w: bad member reference %q", ErrSyntax, comment)
	}

	qualified, desc := strings.ReplaceAll(ref[:i], `"`, ""), ref[i+1:]

	owner, name := p.class.Name, qualified
	if kind == "InvokeDynamic" {
		owner = ""
	} else if j := strings.LastIndexByte(qualified, '.'); j >= 0 {
		owner, name = qualified[:j], qualified[j+1:]
	}

	return &bytecode.MemberRef{Class: owner, Name: name, Descriptor: desc}, nil
}

// constantType derives the type of an ldc constant from its comment, e.g. "int 100" or "String foo".
func constantType(comment string, op bytecode.Opcode) bytecode.Type {
	kind, _, _ := strings.Cut(comment, " ")

	switch kind {
	case "int":
		return bytecode.TypeInt

	case "float":
		return bytecode.TypeFloat

	case "long":
		return bytecode.TypeLong

	case "double":
		return bytecode.TypeDouble
	}

	if op == bytecode.Ldc2W {
		return bytecode.TypeLong
	}

	return bytecode.TypeRef
}

func (p *parser) parseSwitchCase(trimmed string) error {
	ins := p.pending

	if trimmed == "}" {
		p.method.Code = append(p.method.Code, *ins)
		p.pending, p.section = nil, sectionCode

		return nil
	}

	m := switchCase.FindStringSubmatch(trimmed)
	if m == nil {
		return fmt.Errorf("%w: unexpected switch line %q", ErrSyntax, trimmed)
	}

	target, _ := strconv.Atoi(m[2])

	if m[1] == "default" {
		ins.DefaultOffset = target - ins.PC
	} else {
		ins.SwitchOffsets = append(ins.SwitchOffsets, target-ins.PC)
	}

	return nil
}

func (p *parser) parseException(trimmed string) error {
	m := exception.FindStringSubmatch(trimmed)
	if m == nil {
		return nil // column header
	}

	start, _ := strconv.Atoi(m[1])
	end, _ := strconv.Atoi(m[2])
	handler, _ := strconv.Atoi(m[3])

	catchType := strings.TrimPrefix(m[4], "Class ")
	if catchType == "any" {
		catchType = ""
	}

	p.method.Exceptions = append(p.method.Exceptions, bytecode.ExceptionRange{
		Start: start, End: end, Handler: handler, CatchType: catchType,
	})

	return nil
}

func (p *parser) parseLineNumber(trimmed string) error {
	m := lineNumber.FindStringSubmatch(trimmed)
	if m == nil {
		return fmt.Errorf("%w: unexpected line number entry %q", ErrSyntax, trimmed)
	}

	line, _ := strconv.Atoi(m[1])
	pc, _ := strconv.Atoi(m[2])

	p.method.Lines = append(p.method.Lines, bytecode.LineNumber{PC: pc, Line: line})

	return nil
}

func (p *parser) parseLocal(trimmed string) error {
	m := localVar.FindStringSubmatch(trimmed)
	if m == nil {
		return nil // column header
	}

	start, _ := strconv.Atoi(m[1])
	length, _ := strconv.Atoi(m[2])
	slot, _ := strconv.Atoi(m[3])

	p.method.Locals = append(p.method.Locals, bytecode.LocalVariable{
		Start: start, Length: length, Slot: slot, Name: m[4], Signature: m[5],
	})

	return nil
}

func unquote(s string) string {
	if u, err := strconv.Unquote(s); err == nil {
		return u
	}

	return s
}
