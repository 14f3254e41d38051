// Package dataset loads the CSV-based vector datasets the CLI drives the
// core with: a generic CSV reader plus recall-at-k computation against
// vecspace.Neighbor results.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/arcaneiq/swrand/vecspace"
	"github.com/rs/zerolog/log"
)

// LoadVectors reads float32 rows from path, one vector per line.
func LoadVectors(path string) ([][]float32, error) {
	return readCSV[float32](path)
}

// LoadIntRows reads int rows from path, used for ground-truth neighbor
// id lists.
func LoadIntRows(path string) ([][]int, error) {
	return readCSV[int](path)
}

// LoadFloatRows reads float64 rows from path, used for ground-truth
// distance lists.
func LoadFloatRows(path string) ([][]float64, error) {
	return readCSV[float64](path)
}

// readCSV is a generic CSV reader for int, float32, and float64 rows.
func readCSV[T int | float32 | float64](path string) ([][]T, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	var result [][]T
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read error in %s: %w", path, err)
		}
		row := make([]T, len(record))
		for i, val := range record {
			parsed, err := parseValue[T](val)
			if err != nil {
				return nil, fmt.Errorf("parse error at col %d in %s: %w", i, path, err)
			}
			row[i] = parsed
		}
		result = append(result, row)
	}
	log.Debug().Str("path", path).Int("rows", len(result)).Msg("loaded CSV rows")
	return result, nil
}

func parseValue[T int | float32 | float64](s string) (T, error) {
	s = strings.TrimSpace(s)
	var zero T
	switch any(zero).(type) {
	case int:
		v, err := strconv.Atoi(s)
		return any(v).(T), err
	case float32:
		v, err := strconv.ParseFloat(s, 32)
		return any(float32(v)).(T), err
	case float64:
		v, err := strconv.ParseFloat(s, 64)
		return any(v).(T), err
	default:
		return zero, fmt.Errorf("unsupported type %T", zero)
	}
}

// FormatNeighbors renders up to maxResults neighbors as "id=.. (dist=..)"
// tokens, for CLI output.
func FormatNeighbors(results []vecspace.Neighbor, maxResults int) string {
	limit := maxResults
	if len(results) < limit {
		limit = len(results)
	}
	var sb strings.Builder
	for i := 0; i < limit; i++ {
		fmt.Fprintf(&sb, "id=%d (dist=%.4f) ", results[i].ID, results[i].Distance)
	}
	return sb.String()
}

// RecallAtK is the fraction of groundTruth ids that appear among the
// first k predicted neighbors.
func RecallAtK(predicted []vecspace.Neighbor, groundTruth []int, k int) float64 {
	if k <= 0 || len(groundTruth) == 0 {
		return 0
	}
	limit := k
	if len(predicted) < limit {
		limit = len(predicted)
	}
	predSet := make(map[int64]struct{}, limit)
	for i := 0; i < limit; i++ {
		predSet[predicted[i].ID] = struct{}{}
	}
	correct := 0
	for _, id := range groundTruth {
		if _, ok := predSet[int64(id)]; ok {
			correct++
		}
	}
	return float64(correct) / float64(len(groundTruth))
}
