package cmd

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var buildFlags struct {
	train          string
	dim            int
	metric         string
	nn             uint
	efConstruction uint
	threads        uint
	proxyDist      bool
	out            string
	progress       bool
}

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build an index from a training CSV and optionally save it",
	RunE: func(cmd *cobra.Command, args []string) error {
		idx, _, err := buildFromTrain(buildFlags.train, buildFlags.dim, buildFlags.metric,
			buildFlags.nn, buildFlags.efConstruction, buildFlags.threads, buildFlags.proxyDist, buildFlags.progress)
		if err != nil {
			return err
		}
		log.Info().Int("size", idx.Size()).Msg("index built")
		if buildFlags.out != "" {
			if err := idx.SaveIndex(buildFlags.out); err != nil {
				return err
			}
			log.Info().Str("path", buildFlags.out).Msg("index saved")
		}
		return nil
	},
}

func init() {
	f := buildCmd.Flags()
	f.StringVar(&buildFlags.train, "train", "", "path to a training CSV of vectors (required)")
	f.IntVar(&buildFlags.dim, "dim", 0, "vector dimension (required)")
	f.StringVar(&buildFlags.metric, "metric", "euclidean", "distance metric: euclidean, squared_euclidean, manhattan, cosine")
	f.UintVar(&buildFlags.nn, "nn", 10, "neighbors linked per inserted node")
	f.UintVar(&buildFlags.efConstruction, "ef-construction", 0, "construction frontier size (defaults to nn)")
	f.UintVar(&buildFlags.threads, "threads", 0, "parallel construction workers (defaults to NumCPU)")
	f.BoolVar(&buildFlags.proxyDist, "proxy-dist", false, "use the space's proxy distance while indexing")
	f.StringVar(&buildFlags.out, "out", "", "path to save the built index to")
	f.BoolVar(&buildFlags.progress, "progress", true, "show a progress bar while building")
	_ = buildCmd.MarkFlagRequired("train")
	_ = buildCmd.MarkFlagRequired("dim")
}
