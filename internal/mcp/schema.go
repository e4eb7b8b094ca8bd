package mcp

// SimulateInput defines the input for the cellwalk_simulate tool.
type SimulateInput struct {
	Cells              int     `json:"cells" jsonschema:"number of cells N in the line, greater than 0"`
	Particles          int     `json:"particles" jsonschema:"number of particles K, all starting in cell 0, greater than 0"`
	P                  float64 `json:"p" jsonschema:"threshold in [0, 1]; draws at or below p move left and draws above move right"`
	Policy             string  `json:"policy,omitempty" jsonschema:"grid synchronization: mutex (default) or unguarded"`
	Snapshots          int     `json:"snapshots,omitempty" jsonschema:"number of snapshots to take before stopping"`
	SnapshotIntervalMs int     `json:"snapshot_interval_ms,omitempty" jsonschema:"milliseconds between snapshots"`
	TickMs             int     `json:"tick_ms,omitempty" jsonschema:"milliseconds each particle sleeps between moves"`
}

// SimulateOutput defines the output for the cellwalk_simulate tool.
type SimulateOutput struct {
	Policy         string  `json:"policy" jsonschema:"policy the run used"`
	Initial        int     `json:"initial" jsonschema:"particle count at start"`
	Final          int     `json:"final" jsonschema:"particle count summed over all cells at the end"`
	Conserved      bool    `json:"conserved" jsonschema:"whether final equals initial"`
	Verdict        string  `json:"verdict" jsonschema:"human-readable conservation verdict"`
	Steps          int     `json:"steps" jsonschema:"number of snapshots actually taken"`
	WorkerFailures int     `json:"worker_failures" jsonschema:"number of particle workers that failed"`
	Interrupted    bool    `json:"interrupted" jsonschema:"whether the run was cancelled before finishing"`
	Snapshots      [][]int `json:"snapshots" jsonschema:"cell counts per snapshot in step order"`
	FinalCells     []int   `json:"final_cells" jsonschema:"cell counts after all workers stopped"`
}

// ValidateInput defines the input for the cellwalk_validate tool.
type ValidateInput struct {
	Cells     int     `json:"cells" jsonschema:"number of cells N"`
	Particles int     `json:"particles" jsonschema:"number of particles K"`
	P         float64 `json:"p" jsonschema:"move threshold p"`
	Policy    string  `json:"policy,omitempty" jsonschema:"grid synchronization: mutex or unguarded"`
}

// ValidateOutput defines the output for the cellwalk_validate tool.
type ValidateOutput struct {
	Valid bool   `json:"valid" jsonschema:"whether the parameters describe a runnable simulation"`
	Error string `json:"error,omitempty" jsonschema:"why the parameters were rejected"`
}
