package cmd

import (
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/arcaneiq/swrand/internal/dataset"
	"github.com/arcaneiq/swrand/vecspace"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var benchFlags struct {
	dir            string
	dim            int
	metric         string
	nn             uint
	efConstruction uint
	threads        uint
	efSearch       uint
	algoType       string
	k              int
	metricsAddr    string
}

// benchCmd runs CreateIndex over a dataset directory's train.csv, then
// queries every row of test.csv and reports recall@k against
// neighbors.csv.
var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Build an index from a dataset directory and report recall and latency",
	RunE: func(cmd *cobra.Command, args []string) error {
		if benchFlags.metricsAddr != "" {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			go func() {
				log.Info().Str("addr", benchFlags.metricsAddr).Msg("serving Prometheus metrics")
				if err := http.ListenAndServe(benchFlags.metricsAddr, mux); err != nil {
					log.Error().Err(err).Msg("metrics server failed")
				}
			}()
		}

		trainPath := filepath.Join(benchFlags.dir, "train.csv")
		idx, _, err := buildFromTrain(trainPath, benchFlags.dim, benchFlags.metric,
			benchFlags.nn, benchFlags.efConstruction, benchFlags.threads, false, true)
		if err != nil {
			return err
		}
		if err := idx.SetQueryTimeParams(queryParams(benchFlags.efSearch, benchFlags.algoType)); err != nil {
			return err
		}

		sp, err := vecspace.NewVectorSpace(benchFlags.dim, benchFlags.metric)
		if err != nil {
			return err
		}

		testVectors, err := dataset.LoadVectors(filepath.Join(benchFlags.dir, "test.csv"))
		if err != nil {
			return err
		}
		trueNeighbors, err := dataset.LoadIntRows(filepath.Join(benchFlags.dir, "neighbors.csv"))
		if err != nil {
			return err
		}

		var totalRecall float64
		start := time.Now()
		for i, vec := range testVectors {
			probe, err := sp.NewVectorObject(int64(-1-i), vec)
			if err != nil {
				return err
			}
			acc := vecspace.NewTopKAccumulator(probe, sp.Metric, benchFlags.k)
			if err := idx.Search(acc); err != nil {
				return err
			}
			groundTruth := trueNeighbors[i]
			if len(groundTruth) > benchFlags.k {
				groundTruth = groundTruth[:benchFlags.k]
			}
			totalRecall += dataset.RecallAtK(acc.Results(), groundTruth, benchFlags.k)
		}
		elapsed := time.Since(start)
		avgRecall := totalRecall / float64(len(testVectors))
		avgLatency := elapsed / time.Duration(len(testVectors))

		fmt.Printf("n=%d queries=%d algo=%s efSearch=%d recall@%d=%.4f avg_latency=%s\n",
			idx.Size(), len(testVectors), benchFlags.algoType, benchFlags.efSearch, benchFlags.k, avgRecall, avgLatency)
		return nil
	},
}

func init() {
	f := benchCmd.Flags()
	f.StringVar(&benchFlags.dir, "dir", "", "dataset directory containing train.csv, test.csv, neighbors.csv (required)")
	f.IntVar(&benchFlags.dim, "dim", 0, "vector dimension (required)")
	f.StringVar(&benchFlags.metric, "metric", "euclidean", "distance metric")
	f.UintVar(&benchFlags.nn, "nn", 10, "neighbors linked per inserted node")
	f.UintVar(&benchFlags.efConstruction, "ef-construction", 0, "construction frontier size (defaults to nn)")
	f.UintVar(&benchFlags.threads, "threads", 0, "parallel construction workers (defaults to NumCPU)")
	f.UintVar(&benchFlags.efSearch, "ef-search", 0, "query frontier size (defaults to nn)")
	f.StringVar(&benchFlags.algoType, "algo", "old", "traversal algorithm: old or v1merge")
	f.IntVar(&benchFlags.k, "k", 10, "number of neighbors to evaluate recall over")
	f.StringVar(&benchFlags.metricsAddr, "metrics-addr", "", "if set, serve Prometheus metrics at this address (e.g. :9090)")
	_ = benchCmd.MarkFlagRequired("dir")
	_ = benchCmd.MarkFlagRequired("dim")
}
