package tx

import (
	"github.com/gagliardetto/solana-go"
	computebudget "github.com/gagliardetto/solana-go/programs/compute-budget"
)

// Serialized cost of each compute-budget directive inside a packed message,
// including its share of the instruction envelope and program key.
const (
	unitLimitOverhead = 16
	unitPriceOverhead = 20
)

// PriorityConfig selects the optional priority directives prepended to every
// message of a transmission. Zero values disable a directive. Directives are
// applied identically to the whole batch so fee behavior is uniform.
type PriorityConfig struct {
	ComputeUnitLimit uint32 `json:"compute_unit_limit,omitempty"`
	// ComputeUnitPrice is a priority fee in micro-lamports per compute unit.
	ComputeUnitPrice uint64 `json:"compute_unit_price,omitempty"`
}

func (p PriorityConfig) Enabled() bool {
	return p.ComputeUnitLimit > 0 || p.ComputeUnitPrice > 0
}

// DynamicOverhead returns the per-message byte cost of the enabled directives.
// It feeds the planner's OverheadProfile so every frame budget shrinks uniformly.
func (p PriorityConfig) DynamicOverhead() int {
	overhead := 0
	if p.ComputeUnitLimit > 0 {
		overhead += unitLimitOverhead
	}
	if p.ComputeUnitPrice > 0 {
		overhead += unitPriceOverhead
	}
	return overhead
}

// Instructions returns the compute-budget instructions for the enabled
// directives, in the order they are prepended to a message.
func (p PriorityConfig) Instructions() []solana.Instruction {
	var instrs []solana.Instruction
	if p.ComputeUnitLimit > 0 {
		instrs = append(instrs, computebudget.NewSetComputeUnitLimitInstruction(p.ComputeUnitLimit).Build())
	}
	if p.ComputeUnitPrice > 0 {
		instrs = append(instrs, computebudget.NewSetComputeUnitPriceInstruction(p.ComputeUnitPrice).Build())
	}
	return instrs
}
