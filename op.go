package fixpoint

// An Op identifies the operation performed by an operation node.
type Op int8

const (
	opInvalid Op = iota

	// binary arithmetic
	OpAdd // +
	OpSub // -
	OpMul // *
	OpDiv // /

	// unary rounding
	OpCeil
	OpFloor

	// special forms - children[0] identifies the target cell,
	// children[1] is the body or argument
	OpNextLayer // iterate a self-referential body to a fixed point
	OpCall      // invoke a cell's clauses with an argument
	OpClause    // one registered (pattern, body) pair of a cell

	maxOp = OpClause

	binStart, binEnd = OpAdd, OpDiv
)

func (op Op) String() string { return opNames[op] }

// GoString is like String but quotes the arithmetic operators. Use
// Sprintf("%#v", op) when constructing error messages.
func (op Op) GoString() string {
	if op >= binStart && op <= binEnd {
		return "'" + opNames[op] + "'"
	}
	return opNames[op]
}

var opNames = [...]string{
	opInvalid: "invalid operation",

	OpAdd: "+",
	OpSub: "-",
	OpMul: "*",
	OpDiv: "/",

	OpCeil:  "ceil",
	OpFloor: "floor",

	OpNextLayer: "next-layer",
	OpCall:      "call",
	OpClause:    "clause",
}
