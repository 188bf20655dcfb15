package main

import (
	"fmt"
	"math"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oxygene76/vector3/pkg/astronomy/nbody"
	"github.com/oxygene76/vector3/pkg/ops"
	"github.com/oxygene76/vector3/pkg/vector"
)

func applyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "apply <x,y,z> [step]...",
		Short: "Apply a sequence of operations to a vector",
		Long: `Apply operations to a vector in order and print the result.

Each step is one argument holding an operation name and its parameters:

  vector3 apply 4,5,1 "sub 1,1,1" normalize "multiplyScalar 10"

Run "vector3 ops" for the list of operations.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := vector.Parse(args[0])
			if err != nil {
				return err
			}
			steps, err := ops.ParseSteps(args[1:])
			if err != nil {
				return err
			}
			if err := ops.NewInterpreter(a.logger).Run(v, steps); err != nil {
				return err
			}
			return a.printer(cmd.OutOrStdout()).Vector(v)
		},
	}
}

func opsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ops",
		Short: "List the operations accepted by apply",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), strings.Join(ops.Names(), "\n"))
			return err
		},
	}
}

func measureCmd(a *app) *cobra.Command {
	var against string
	cmd := &cobra.Command{
		Use:   "measure <x,y,z>",
		Short: "Print lengths, and distance and angle to a second vector",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := vector.Parse(args[0])
			if err != nil {
				return err
			}
			var other *vector.Vector3
			if against != "" {
				if other, err = vector.Parse(against); err != nil {
					return err
				}
			}
			return a.printer(cmd.OutOrStdout()).Value(ops.Measure(v, other))
		},
	}
	cmd.Flags().StringVar(&against, "against", "", "second vector for dot, distance and angle")
	return cmd
}

type centroidResult struct {
	Count    int            `json:"count" yaml:"count"`
	Centroid vector.Vector3 `json:"centroid" yaml:"centroid"`
	Min      vector.Vector3 `json:"min" yaml:"min"`
	Max      vector.Vector3 `json:"max" yaml:"max"`
}

func centroidCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "centroid <x,y,z>...",
		Short: "Print the centroid and bounding box of a set of vectors",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			buf := vector.NewBuffer(0)
			for _, arg := range args {
				v, err := vector.Parse(arg)
				if err != nil {
					return err
				}
				buf.Append(v)
			}

			c, err := buf.Centroid()
			if err != nil {
				return err
			}
			lo, hi, err := buf.Bounds()
			if err != nil {
				return err
			}
			return a.printer(cmd.OutOrStdout()).Value(centroidResult{
				Count:    buf.Len(),
				Centroid: *c,
				Min:      *lo,
				Max:      *hi,
			})
		},
	}
}

type bodySummary struct {
	ID       string         `json:"id" yaml:"id"`
	Position vector.Vector3 `json:"position" yaml:"position"`
	Velocity vector.Vector3 `json:"velocity" yaml:"velocity"`
	Distance float64        `json:"distance" yaml:"distance"`
}

type simulationSummary struct {
	TimeDays    float64       `json:"time_days" yaml:"time_days"`
	EnergyDrift float64       `json:"energy_drift" yaml:"energy_drift"`
	Bodies      []bodySummary `json:"bodies" yaml:"bodies"`
}

func simulateCmd(a *app) *cobra.Command {
	var (
		duration  float64
		timestep  float64
		tolerance float64
		out       string
	)
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Integrate the configured bodies around a central mass",
		Long: `Build an n-body system from the orbital elements in the simulation section
of the config and integrate it with a leapfrog scheme. Snapshots are written as
JSON lines when a snapshot path is configured or --out is given.

With a positive tolerance (AU) the step size adapts: the timestep becomes the
largest step and is halved, down to 1/1024 of it, until two half steps agree
with one full step within the tolerance.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			sim := a.config.Simulation
			if cmd.Flags().Changed("duration") {
				sim.Duration = duration
			}
			if cmd.Flags().Changed("timestep") {
				sim.Timestep = timestep
			}
			if cmd.Flags().Changed("tolerance") {
				sim.Tolerance = tolerance
			}
			if out != "" {
				sim.SnapshotPath = out
			}
			if sim.Timestep <= 0 || sim.Duration < 0 || sim.Tolerance < 0 {
				return fmt.Errorf("timestep must be positive, duration and tolerance non-negative")
			}

			system := nbody.NewSystem(nbody.Body{ID: "central", Mass: sim.CentralMass})
			for _, b := range sim.Bodies {
				pos, vel := b.Elements.ToCartesian(system.G * (sim.CentralMass + b.Mass))
				system.Bodies = append(system.Bodies, nbody.Body{
					ID:       b.ID,
					Mass:     b.Mass,
					Position: *pos,
					Velocity: *vel,
				})
			}

			var sink nbody.SnapshotSink
			if sim.SnapshotPath != "" {
				w, openErr := nbody.CreateJSONLSnapshotFile(sim.SnapshotPath)
				if openErr != nil {
					return fmt.Errorf("failed to open snapshot file: %w", openErr)
				}
				defer func() {
					if closeErr := w.Close(); closeErr != nil && err == nil {
						err = fmt.Errorf("failed to write snapshot file: %w", closeErr)
					}
				}()
				sink = w
			}

			e0 := system.TotalEnergy()
			a.logger.Info("starting integration",
				"bodies", len(system.Bodies), "duration", sim.Duration, "timestep", sim.Timestep,
				"tolerance", sim.Tolerance)
			if sim.Tolerance > 0 {
				steps, err := system.IntegrateAdaptive(sim.Duration, sim.Timestep/1024, sim.Timestep,
					sim.Tolerance, sink, sim.SnapshotEvery)
				if err != nil {
					return err
				}
				a.logger.Debug("adaptive integration", "accepted_steps", steps)
			} else if err := system.Integrate(sim.Duration, sim.Timestep, sink, sim.SnapshotEvery); err != nil {
				return err
			}

			drift := 0.0
			if e0 != 0 {
				drift = math.Abs((system.TotalEnergy() - e0) / e0)
			}
			a.logger.Info("integration finished", "time_days", system.Time, "energy_drift", drift)

			summary := simulationSummary{TimeDays: system.Time, EnergyDrift: drift}
			central := &system.Bodies[0].Position
			for _, b := range system.Bodies[1:] {
				summary.Bodies = append(summary.Bodies, bodySummary{
					ID:       b.ID,
					Position: b.Position,
					Velocity: b.Velocity,
					Distance: b.Position.DistanceTo(central),
				})
			}
			return a.printer(cmd.OutOrStdout()).Value(summary)
		},
	}
	cmd.Flags().Float64Var(&duration, "duration", 0, "integration time in days (overrides config)")
	cmd.Flags().Float64Var(&timestep, "timestep", 0, "step size in days (overrides config)")
	cmd.Flags().Float64Var(&tolerance, "tolerance", 0, "adaptive step tolerance in AU, 0 for fixed steps (overrides config)")
	cmd.Flags().StringVar(&out, "out", "", "write JSONL snapshots to this file")
	return cmd
}
