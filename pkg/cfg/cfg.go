// Package cfg models the control-flow graph of a single function.
//
// A Function is a set of named basic blocks connected by directed edges.
// regionviz never computes control-flow information itself: functions are
// decoded from the analysis interchange document (see the io package) and
// treated as read-only views for the duration of one render.
//
// Block and edge iteration order is declaration order, so all consumers
// produce deterministic output for the same document.
package cfg

import "errors"

var (
	// ErrInvalidBlockName is returned by [Function.AddBlock] when the block
	// name is empty. All blocks must have non-empty names.
	ErrInvalidBlockName = errors.New("block name must not be empty")

	// ErrDuplicateBlock is returned by [Function.AddBlock] when a block with
	// the same name already exists. Block names are unique per function.
	ErrDuplicateBlock = errors.New("duplicate block name")

	// ErrUnknownSourceBlock is returned by [Function.AddEdge] when the From
	// block does not exist in the function.
	ErrUnknownSourceBlock = errors.New("unknown source block")

	// ErrUnknownTargetBlock is returned by [Function.AddEdge] when the To
	// block does not exist in the function.
	ErrUnknownTargetBlock = errors.New("unknown target block")
)

// Block is a basic block: a named single-entry straight-line instruction
// sequence. Instrs holds the pre-rendered instruction lines used for
// detailed node labels; regionviz never interprets their contents.
type Block struct {
	Name   string
	Instrs []string
}

// Edge is a directed control-flow edge between two blocks of one function.
type Edge struct {
	From *Block
	To   *Block
}

// Function is a control-flow graph. The zero value is not usable - use
// New to create a Function and AddBlock/AddEdge to populate it.
//
// The first block added is the function's entry block, matching the
// convention of the interchange document. Function is not safe for
// concurrent mutation; rendering only reads it.
type Function struct {
	name   string
	blocks []*Block
	byName map[string]*Block
	edges  []Edge
	succs  map[*Block][]*Block
	preds  map[*Block][]*Block
}

// New creates an empty function with the given name.
func New(name string) *Function {
	return &Function{
		name:   name,
		byName: make(map[string]*Block),
		succs:  make(map[*Block][]*Block),
		preds:  make(map[*Block][]*Block),
	}
}

// Name returns the function name.
func (f *Function) Name() string { return f.name }

// AddBlock adds a named block and returns it.
// Returns ErrInvalidBlockName for an empty name or ErrDuplicateBlock if
// the name is already taken.
func (f *Function) AddBlock(name string, instrs []string) (*Block, error) {
	if name == "" {
		return nil, ErrInvalidBlockName
	}
	if _, exists := f.byName[name]; exists {
		return nil, ErrDuplicateBlock
	}
	b := &Block{Name: name, Instrs: instrs}
	f.blocks = append(f.blocks, b)
	f.byName[name] = b
	return b, nil
}

// AddEdge adds a directed control-flow edge between two existing blocks,
// identified by name. Returns ErrUnknownSourceBlock or ErrUnknownTargetBlock
// when an endpoint has not been declared.
func (f *Function) AddEdge(from, to string) error {
	src, ok := f.byName[from]
	if !ok {
		return ErrUnknownSourceBlock
	}
	dst, ok := f.byName[to]
	if !ok {
		return ErrUnknownTargetBlock
	}
	f.edges = append(f.edges, Edge{From: src, To: dst})
	f.succs[src] = append(f.succs[src], dst)
	f.preds[dst] = append(f.preds[dst], src)
	return nil
}

// Entry returns the function's entry block (the first block declared),
// or nil for an empty function.
func (f *Function) Entry() *Block {
	if len(f.blocks) == 0 {
		return nil
	}
	return f.blocks[0]
}

// Block returns the block with the given name and true, or nil and false
// if no such block exists.
func (f *Function) Block(name string) (*Block, bool) {
	b, ok := f.byName[name]
	return b, ok
}

// Blocks returns all blocks in declaration order.
// The returned slice must not be modified.
func (f *Function) Blocks() []*Block { return f.blocks }

// Edges returns all edges in declaration order.
// The returned slice must not be modified.
func (f *Function) Edges() []Edge { return f.edges }

// Succs returns the successor blocks of b in edge declaration order.
// Returns nil if b has no successors.
func (f *Function) Succs(b *Block) []*Block { return f.succs[b] }

// Preds returns the predecessor blocks of b in edge declaration order.
// Returns nil if b has no predecessors.
func (f *Function) Preds(b *Block) []*Block { return f.preds[b] }

// BlockCount returns the number of blocks in the function.
func (f *Function) BlockCount() int { return len(f.blocks) }

// EdgeCount returns the number of edges in the function.
func (f *Function) EdgeCount() int { return len(f.edges) }
