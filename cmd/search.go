package cmd

import (
	"fmt"

	"github.com/arcaneiq/swrand/internal/dataset"
	"github.com/arcaneiq/swrand/vecspace"
	"github.com/spf13/cobra"
)

var searchFlags struct {
	train          string
	dim            int
	metric         string
	nn             uint
	efConstruction uint
	threads        uint
	query          string
	k              int
	efSearch       uint
	algoType       string
}

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Build an ephemeral index from a training CSV and run one query against it",
	RunE: func(cmd *cobra.Command, args []string) error {
		idx, _, err := buildFromTrain(searchFlags.train, searchFlags.dim, searchFlags.metric,
			searchFlags.nn, searchFlags.efConstruction, searchFlags.threads, false, false)
		if err != nil {
			return err
		}
		if err := idx.SetQueryTimeParams(queryParams(searchFlags.efSearch, searchFlags.algoType)); err != nil {
			return err
		}

		sp, err := vecspace.NewVectorSpace(searchFlags.dim, searchFlags.metric)
		if err != nil {
			return err
		}
		vec, err := parseQueryVector(searchFlags.query)
		if err != nil {
			return err
		}
		probe, err := sp.NewVectorObject(-1, vec)
		if err != nil {
			return err
		}
		acc := vecspace.NewTopKAccumulator(probe, sp.Metric, searchFlags.k)
		if err := idx.Search(acc); err != nil {
			return err
		}
		fmt.Println(dataset.FormatNeighbors(acc.Results(), searchFlags.k))
		return nil
	},
}

func init() {
	f := searchCmd.Flags()
	f.StringVar(&searchFlags.train, "train", "", "path to a training CSV of vectors (required)")
	f.IntVar(&searchFlags.dim, "dim", 0, "vector dimension (required)")
	f.StringVar(&searchFlags.metric, "metric", "euclidean", "distance metric")
	f.UintVar(&searchFlags.nn, "nn", 10, "neighbors linked per inserted node")
	f.UintVar(&searchFlags.efConstruction, "ef-construction", 0, "construction frontier size (defaults to nn)")
	f.UintVar(&searchFlags.threads, "threads", 0, "parallel construction workers (defaults to NumCPU)")
	f.StringVar(&searchFlags.query, "query", "", "comma-separated query vector, e.g. 0.1,0.2,0.3 (required)")
	f.IntVar(&searchFlags.k, "k", 10, "number of neighbors to return")
	f.UintVar(&searchFlags.efSearch, "ef-search", 0, "query frontier size (defaults to nn)")
	f.StringVar(&searchFlags.algoType, "algo", "old", "traversal algorithm: old or v1merge")
	_ = searchCmd.MarkFlagRequired("train")
	_ = searchCmd.MarkFlagRequired("dim")
	_ = searchCmd.MarkFlagRequired("query")
}
