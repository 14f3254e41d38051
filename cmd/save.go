package cmd

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var saveFlags struct {
	train          string
	dim            int
	metric         string
	nn             uint
	efConstruction uint
	threads        uint
	proxyDist      bool
	out            string
}

var saveCmd = &cobra.Command{
	Use:   "save",
	Short: "Build an index from a training CSV and write it to disk",
	RunE: func(cmd *cobra.Command, args []string) error {
		idx, _, err := buildFromTrain(saveFlags.train, saveFlags.dim, saveFlags.metric,
			saveFlags.nn, saveFlags.efConstruction, saveFlags.threads, saveFlags.proxyDist, true)
		if err != nil {
			return err
		}
		if err := idx.SaveIndex(saveFlags.out); err != nil {
			return err
		}
		log.Info().Str("path", saveFlags.out).Int("size", idx.Size()).Msg("index saved")
		return nil
	},
}

func init() {
	f := saveCmd.Flags()
	f.StringVar(&saveFlags.train, "train", "", "path to a training CSV of vectors (required)")
	f.IntVar(&saveFlags.dim, "dim", 0, "vector dimension (required)")
	f.StringVar(&saveFlags.metric, "metric", "euclidean", "distance metric")
	f.UintVar(&saveFlags.nn, "nn", 10, "neighbors linked per inserted node")
	f.UintVar(&saveFlags.efConstruction, "ef-construction", 0, "construction frontier size (defaults to nn)")
	f.UintVar(&saveFlags.threads, "threads", 0, "parallel construction workers (defaults to NumCPU)")
	f.BoolVar(&saveFlags.proxyDist, "proxy-dist", false, "use the space's proxy distance while indexing")
	f.StringVar(&saveFlags.out, "out", "", "path to write the index to (required)")
	_ = saveCmd.MarkFlagRequired("train")
	_ = saveCmd.MarkFlagRequired("dim")
	_ = saveCmd.MarkFlagRequired("out")
}
