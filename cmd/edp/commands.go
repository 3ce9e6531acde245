package main

import (
	"fmt"

	"github.com/lukaszgryglicki/edp/internal/chgcar"
	"github.com/lukaszgryglicki/edp/internal/edp"
	"github.com/lukaszgryglicki/edp/internal/elements"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type rootOpts struct {
	config    string
	input     string
	output    string
	logFormat string
	locpot    bool
	debug     bool
	noCharts  bool
}

func newRootCmd() *cobra.Command {
	o := &rootOpts{}
	root := &cobra.Command{
		Use:           "edp",
		Short:         "Plot electron density and potential grids of VASP CHGCAR/LOCPOT files",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return o.setupLogging()
		},
	}
	fs := root.PersistentFlags()
	fs.StringVarP(&o.config, "config", "c", "", "JSON or TOML config file")
	fs.StringVarP(&o.input, "input", "i", "", "CHGCAR or LOCPOT file (overrides config)")
	fs.StringVarP(&o.output, "output", "o", "", "output image (overrides config)")
	fs.BoolVar(&o.locpot, "locpot", false, "treat input as a potential file even if its name says otherwise")
	fs.BoolVar(&o.debug, "debug", false, "verbose debug output")
	fs.BoolVar(&o.noCharts, "no-charts", false, "skip PNG charts of 1D profiles")
	fs.StringVar(&o.logFormat, "log-format", "text", "log format: text or json")

	root.AddCommand(
		o.modeCmd(edp.ModePlane, "Contour plot of a planar cut", &planeFlags{}),
		o.modeCmd(edp.ModeLine, "Values along a line", &lineFlags{}),
		o.modeCmd(edp.ModeAverage, "Layer averages along one lattice axis", &averageFlags{}),
		o.modeCmd(edp.ModeSphere, "Spherical averages around a point or an atom", &sphereFlags{}),
		o.modeCmd(edp.ModeRaycast, "Volume rendering by ray casting", &raycastFlags{}),
		o.atomsCmd(),
		o.infoCmd(),
	)
	return root
}

func (o *rootOpts) setupLogging() error {
	if o.debug {
		edp.Debug = true
	}
	if edp.Debug {
		edp.Log.SetLevel(logrus.DebugLevel)
	} else {
		edp.Log.SetLevel(logrus.InfoLevel)
	}
	switch o.logFormat {
	case "text":
		edp.Log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case "json":
		edp.Log.SetFormatter(&logrus.JSONFormatter{})
	default:
		return fmt.Errorf("unknown log format %q, use text or json", o.logFormat)
	}
	return nil
}

// loadConfig reads --config when given and applies the global flag
// overrides.
func (o *rootOpts) loadConfig(fs *pflag.FlagSet) (*edp.Config, error) {
	cfg := edp.DefaultConfig()
	if o.config != "" {
		var err error
		if cfg, err = edp.LoadConfig(o.config); err != nil {
			return nil, err
		}
	}
	if fs.Changed("input") {
		cfg.Input = o.input
	}
	if fs.Changed("output") {
		cfg.Output = o.output
	}
	if fs.Changed("no-charts") {
		cfg.NoCharts = o.noCharts
	}
	return cfg, nil
}

func (o *rootOpts) loadField(cfg *edp.Config) (*edp.ScalarField, error) {
	isLocpot := o.locpot || chgcar.IsLocpotName(cfg.Input)
	edp.Log.Infof("Reading %s (locpot=%v)", cfg.Input, isLocpot)
	return chgcar.Load(cfg.Input, isLocpot, elements.Default())
}

// overrides binds mode specific flags and copies the ones the user set into
// the config.
type overrides interface {
	register(fs *pflag.FlagSet)
	apply(fs *pflag.FlagSet, cfg *edp.Config) error
}

func (o *rootOpts) modeCmd(mode, short string, ov overrides) *cobra.Command {
	cmd := &cobra.Command{
		Use:   mode,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := o.loadConfig(cmd.Flags())
			if err != nil {
				return err
			}
			if err := ov.apply(cmd.Flags(), cfg); err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			sf, err := o.loadField(cfg)
			if err != nil {
				return err
			}
			return edp.Run(cmd.Context(), mode, sf, cfg)
		},
	}
	ov.register(cmd.Flags())
	return cmd
}

func (o *rootOpts) atomsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "atoms",
		Short: "List atoms with fractional and Cartesian positions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := o.loadConfig(cmd.Flags())
			if err != nil {
				return err
			}
			sf, err := o.loadField(cfg)
			if err != nil {
				return err
			}
			return printAtoms(cmd.OutOrStdout(), sf, elements.Default())
		},
	}
}

func (o *rootOpts) infoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show lattice, volume, grid and value range",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := o.loadConfig(cmd.Flags())
			if err != nil {
				return err
			}
			sf, err := o.loadField(cfg)
			if err != nil {
				return err
			}
			printInfo(cmd.OutOrStdout(), sf)
			return nil
		},
	}
}
