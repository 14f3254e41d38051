package cmd

import (
	"fmt"

	"github.com/arcaneiq/swrand/internal/dataset"
	"github.com/arcaneiq/swrand/swrand"
	"github.com/arcaneiq/swrand/vecspace"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var loadFlags struct {
	train    string
	dim      int
	metric   string
	index    string
	query    string
	k        int
	efSearch uint
	algoType string
}

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Load a saved index and optionally run one query against it",
	RunE: func(cmd *cobra.Command, args []string) error {
		vectors, err := dataset.LoadVectors(loadFlags.train)
		if err != nil {
			return err
		}
		sp, err := vecspace.NewVectorSpace(loadFlags.dim, loadFlags.metric)
		if err != nil {
			return err
		}
		objects, err := toObjects(sp, vectors)
		if err != nil {
			return err
		}

		idx := swrand.NewIndex(sp)
		if err := idx.LoadIndex(loadFlags.index, objects); err != nil {
			return err
		}
		log.Info().Str("path", loadFlags.index).Int("size", idx.Size()).Msg("index loaded")

		if loadFlags.query == "" {
			return nil
		}
		if err := idx.SetQueryTimeParams(queryParams(loadFlags.efSearch, loadFlags.algoType)); err != nil {
			return err
		}
		vec, err := parseQueryVector(loadFlags.query)
		if err != nil {
			return err
		}
		probe, err := sp.NewVectorObject(-1, vec)
		if err != nil {
			return err
		}
		acc := vecspace.NewTopKAccumulator(probe, sp.Metric, loadFlags.k)
		if err := idx.Search(acc); err != nil {
			return err
		}
		fmt.Println(dataset.FormatNeighbors(acc.Results(), loadFlags.k))
		return nil
	},
}

func init() {
	f := loadCmd.Flags()
	f.StringVar(&loadFlags.train, "train", "", "path to the training CSV the index was built from (required)")
	f.IntVar(&loadFlags.dim, "dim", 0, "vector dimension (required)")
	f.StringVar(&loadFlags.metric, "metric", "euclidean", "distance metric")
	f.StringVar(&loadFlags.index, "index", "", "path to the saved index file (required)")
	f.StringVar(&loadFlags.query, "query", "", "comma-separated query vector; omit to only load and report size")
	f.IntVar(&loadFlags.k, "k", 10, "number of neighbors to return")
	f.UintVar(&loadFlags.efSearch, "ef-search", 0, "query frontier size (defaults to nn)")
	f.StringVar(&loadFlags.algoType, "algo", "old", "traversal algorithm: old or v1merge")
	_ = loadCmd.MarkFlagRequired("train")
	_ = loadCmd.MarkFlagRequired("dim")
	_ = loadCmd.MarkFlagRequired("index")
}
