package cpu

// RegValue is a register and its value after a cycle.
type RegValue struct {
	Reg   CodeReg `json:"reg"`
	Value int32   `json:"value"`
}

// Record is the trace of one executed cycle.
type Record struct {
	Cycle    int         `json:"cycle"`
	Pc       uint32      `json:"pc"`      // Program counter before the cycle.
	NextPc   uint32      `json:"next_pc"` // Program counter after the cycle.
	Text     string      `json:"text"`
	Op       CodeOp      `json:"op"`
	Family   CodeFamily  `json:"family"`
	Operands [3]CodeReg  `json:"operands"` // Decoded operand registers.
	Monitors [3]RegValue `json:"monitors"` // Post-writeback register values.
	AluOut   int32       `json:"alu_out"`
	Label    string      `json:"label,omitempty"` // Branch label.

	MemAccess  bool   `json:"mem_access"`
	MemAddr    uint32 `json:"mem_addr"`
	Stored     bool   `json:"stored"`
	StoreValue int32  `json:"store_value"`
	Loaded     bool   `json:"loaded"`
	LoadValue  int32  `json:"load_value"`

	Control  Control  `json:"control"`
	AluClass AluClass `json:"alu_class"`

	Registers [REG_COUNT]int32 `json:"registers"`        // Register bank after the cycle.
	Memory    []MemoryEntry    `json:"memory,omitempty"` // Data memory after the cycle, when traced.
}

// Summary is the architectural state at the end of a run.
type Summary struct {
	Pc        uint32           `json:"pc"`
	Registers [REG_COUNT]int32 `json:"registers"`
	Memory    []MemoryEntry    `json:"memory"`
	Cycles    int              `json:"cycles"`
	State     CpuState         `json:"state"`
}

func (op CodeOp) MarshalText() ([]byte, error) {
	return []byte(op.String()), nil
}

func (family CodeFamily) MarshalText() ([]byte, error) {
	return []byte(family.String()), nil
}

func (reg CodeReg) MarshalText() ([]byte, error) {
	return []byte(reg.String()), nil
}

func (ac AluClass) MarshalText() ([]byte, error) {
	return []byte(ac.String()), nil
}

func (state CpuState) MarshalText() ([]byte, error) {
	return []byte(state.String()), nil
}
