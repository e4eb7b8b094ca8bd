// Package simulation drives a concurrent random walk of K particles over a
// line of N cells.
//
// A Controller owns the shared grid and spawns one particle worker per
// particle. While the workers move, the controller takes a snapshot of the
// grid every SnapshotInterval, then raises a single stop signal, joins the
// workers and checks that the particle total still equals K.
//
// The grid policy decides whether that check can fail. Under
// constants.PolicyMutex every move, snapshot and total runs inside one
// lock and the total is always conserved. Under constants.PolicyUnguarded
// the workers race on the counters and the total may drift.
//
// Usage:
//
//	c, err := simulation.NewController(simulation.Config{
//	    Cells:     3,
//	    Particles: 10,
//	    P:         0.5,
//	    Policy:    constants.PolicyMutex,
//	})
//	if err != nil {
//	    return err
//	}
//	res, err := c.Run(ctx, report.Text(os.Stdout))
package simulation
