package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"sharpbot/internal/adapters/provider"
	"sharpbot/internal/adapters/store"
	"sharpbot/internal/config"
	"sharpbot/internal/core/domain"
	"sharpbot/internal/core/service"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const outputSuffix = "_sharpened.png"

type options struct {
	in         string
	out        string
	configFile string
}

func newRootCommand() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:           "unsharp --in <image> [--out <image>]",
		Short:         "Sharpen an image with an unsharp mask",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := config.Load(opts.configFile, false); err != nil {
				return err
			}
			zerolog.SetGlobalLevel(config.LogLevel())

			for _, key := range []string{"radius", "strength"} {
				if err := viper.BindPFlag("unsharp."+key, cmd.Flags().Lookup(key)); err != nil {
					return fmt.Errorf("failed to bind flag %s: %w", key, err)
				}
			}

			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := run(cmd.Context(), opts.in, opts.out, domain.UnsharpParams{
				Radius:   viper.GetFloat64("unsharp.radius"),
				Strength: viper.GetFloat64("unsharp.strength"),
			})
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.in, "in", "", "input image (png, jpeg, gif, webp)")
	flags.StringVar(&opts.out, "out", "", "output png, defaults to <input>"+outputSuffix)
	flags.StringVar(&opts.configFile, "config", "", "config file, defaults to ./config.toml if present")
	flags.Float64("radius", domain.DefaultRadius, "blur radius, must be greater than 0")
	flags.Float64("strength", domain.DefaultStrength, "sharpening strength in percent, must not be negative")
	_ = cmd.MarkFlagRequired("in")

	return cmd
}

// run sharpens the image at in and writes the result to out, returning the path written.
func run(ctx context.Context, in, out string, params domain.UnsharpParams) (string, error) {
	if in == "" {
		return "", errors.New("missing input image")
	}

	if out == "" {
		out = defaultOutput(in)
	}

	node := service.NewUnsharpMask(provider.NewDisk(), store.NewDisk(filepath.Dir(out), false))

	result, err := node.Invoke(ctx, domain.UnsharpRequest{
		ImageID:  in,
		Params:   params,
		NodeID:   service.UnsharpMaskDescriptor.ID,
		Workflow: "cli",
		Name:     filepath.Base(out),
	})
	if err != nil {
		return "", err
	}

	path := filepath.Join(filepath.Dir(out), result.ImageName)

	log.Info().
		Str("in", in).
		Str("out", path).
		Int("width", result.Width).
		Int("height", result.Height).
		Msg("sharpened image")

	return path, nil
}

func defaultOutput(in string) string {
	return strings.TrimSuffix(in, filepath.Ext(in)) + outputSuffix
}
