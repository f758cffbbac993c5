package internal

import "fmt"

// Constants interns int, str and bool literals and hands out the labels
// of their prototype images in the data section. Interning keys on the
// literal value, so two equal literals share one label. Insertion order
// is recorded so the emitted pool is deterministic.
type Constants struct {
	intConstants map[int]Label
	intOrder     []int
	strConstants map[string]Label
	strOrder     []string

	FalseConstant Label
	TrueConstant  Label

	nextSuffix int
}

func NewConstants() *Constants {
	constants := &Constants{
		intConstants: map[int]Label{},
		strConstants: map[string]Label{},
	}
	constants.FalseConstant = constants.nextLabel()
	constants.TrueConstant = constants.nextLabel()
	return constants
}

func (constants *Constants) nextLabel() Label {
	label := Label(fmt.Sprintf("const_%d", constants.nextSuffix))
	constants.nextSuffix++
	return label
}

// GetIntConstant returns the label of the interned integer constant,
// creating it on first use.
func (constants *Constants) GetIntConstant(value int) Label {
	if label, ok := constants.intConstants[value]; ok {
		return label
	}
	label := constants.nextLabel()
	constants.intConstants[value] = label
	constants.intOrder = append(constants.intOrder, value)
	return label
}

// GetStrConstant returns the label of the interned string constant,
// creating it on first use.
func (constants *Constants) GetStrConstant(value string) Label {
	if label, ok := constants.strConstants[value]; ok {
		return label
	}
	label := constants.nextLabel()
	constants.strConstants[value] = label
	constants.strOrder = append(constants.strOrder, value)
	return label
}

// FromLiteral lowers a literal AST node to its constant label. `None`
// and non-literal nodes have no constant image and yield the empty
// label, which data emission turns into a zero word.
func (constants *Constants) FromLiteral(node Expr) Label {
	switch literal := node.(type) {
	case *IntegerLiteral:
		return constants.GetIntConstant(literal.Value)
	case *StringLiteral:
		return constants.GetStrConstant(literal.Value)
	case *BooleanLiteral:
		if literal.Value {
			return constants.TrueConstant
		}
		return constants.FalseConstant
	}
	return ""
}
