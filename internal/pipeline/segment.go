package pipeline

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"revscope/internal/model"
)

// Decision actions assigned to clusters ranked by monetary centroid,
// highest first. Clusters beyond the listed ranks reuse the last entry.
var decisionActions = []string{
	"Invest & Retain",
	"Grow",
	"Nurture",
	"Re-Engage",
}

// SegmentOptions controls the clustering procedure.
type SegmentOptions struct {
	Clusters int
	Seed     int64
	MaxIter  int
}

// SegmentCustomers clusters customers on min-max normalized RFM features
// using seeded k-means with k-means++ initialization. Every requested
// cluster comes back populated, and cluster labels are reassigned by
// descending monetary centroid, so identical input and configuration
// always produce identical segment tables.
func SegmentCustomers(features []model.RFMFeatures, opts SegmentOptions) ([]model.Segment, error) {
	if opts.Clusters < 2 {
		return nil, &model.ConfigurationError{
			Field:  "segmentation.clusters",
			Reason: fmt.Sprintf("must be at least 2, got %d", opts.Clusters),
		}
	}
	if len(features) < opts.Clusters {
		return nil, &model.ConfigurationError{
			Field:  "segmentation.clusters",
			Reason: fmt.Sprintf("%d clusters requested but only %d customers", opts.Clusters, len(features)),
		}
	}
	if opts.MaxIter <= 0 {
		opts.MaxIter = 100
	}

	points := normalize(features)
	assign := kmeans(points, opts.Clusters, opts.Seed, opts.MaxIter)

	// Gather members per raw cluster index.
	members := make([][]int, opts.Clusters)
	for i, c := range assign {
		members[c] = append(members[c], i)
	}

	segments := make([]model.Segment, 0, opts.Clusters)
	for _, idxs := range members {
		if len(idxs) == 0 {
			continue
		}
		var seg model.Segment
		for _, i := range idxs {
			f := features[i]
			seg.CustomerIDs = append(seg.CustomerIDs, f.CustomerID)
			seg.AvgRecency += float64(f.RecencyDays)
			seg.AvgFrequency += float64(f.Frequency)
			seg.TotalMonetary += f.Monetary
		}
		n := float64(len(idxs))
		seg.CustomerCount = len(idxs)
		seg.AvgRecency /= n
		seg.AvgFrequency /= n
		seg.AvgMonetary = seg.TotalMonetary / n
		segments = append(segments, seg)
	}

	// Relabel by descending monetary centroid for stable, meaningful labels.
	sort.Slice(segments, func(i, j int) bool {
		if segments[i].AvgMonetary != segments[j].AvgMonetary {
			return segments[i].AvgMonetary > segments[j].AvgMonetary
		}
		return segments[i].CustomerIDs[0] < segments[j].CustomerIDs[0]
	})
	for i := range segments {
		segments[i].Cluster = i
		action := i
		if action >= len(decisionActions) {
			action = len(decisionActions) - 1
		}
		segments[i].DecisionAction = decisionActions[action]
	}

	return segments, nil
}

// normalize min-max scales each RFM dimension into [0, 1].
func normalize(features []model.RFMFeatures) [][3]float64 {
	var (
		minV = [3]float64{math.MaxFloat64, math.MaxFloat64, math.MaxFloat64}
		maxV = [3]float64{-math.MaxFloat64, -math.MaxFloat64, -math.MaxFloat64}
	)
	raw := make([][3]float64, len(features))
	for i, f := range features {
		raw[i] = [3]float64{float64(f.RecencyDays), float64(f.Frequency), f.Monetary}
		for d := 0; d < 3; d++ {
			if raw[i][d] < minV[d] {
				minV[d] = raw[i][d]
			}
			if raw[i][d] > maxV[d] {
				maxV[d] = raw[i][d]
			}
		}
	}

	points := make([][3]float64, len(raw))
	for i, p := range raw {
		for d := 0; d < 3; d++ {
			span := maxV[d] - minV[d]
			if span == 0 {
				points[i][d] = 0
				continue
			}
			points[i][d] = (p[d] - minV[d]) / span
		}
	}
	return points
}

// kmeans runs Lloyd's algorithm with k-means++ seeding. All randomness
// flows from the given seed; ties resolve to the lowest centroid index.
func kmeans(points [][3]float64, k int, seed int64, maxIter int) []int {
	rng := rand.New(rand.NewSource(seed))
	centroids := seedCentroids(points, k, rng)
	assign := make([]int, len(points))

	for iter := 0; iter < maxIter; iter++ {
		moved := false
		for i, p := range points {
			best := 0
			bestDist := dist2(p, centroids[0])
			for c := 1; c < k; c++ {
				if d := dist2(p, centroids[c]); d < bestDist {
					best = c
					bestDist = d
				}
			}
			if assign[i] != best {
				assign[i] = best
				moved = true
			}
		}
		if !moved && iter > 0 {
			break
		}

		var (
			sums   = make([][3]float64, k)
			counts = make([]int, k)
		)
		for i, p := range points {
			c := assign[i]
			counts[c]++
			for d := 0; d < 3; d++ {
				sums[c][d] += p[d]
			}
		}
		for c := 0; c < k; c++ {
			if counts[c] == 0 {
				continue // empty cluster keeps its previous centroid
			}
			for d := 0; d < 3; d++ {
				centroids[c][d] = sums[c][d] / float64(counts[c])
			}
		}
	}

	fillEmptyClusters(points, centroids, assign, k)
	return assign
}

// fillEmptyClusters moves the point farthest from its own centroid
// into each empty cluster, so clustering always yields k populated
// segments when there are at least k points. Ties resolve to the
// lowest point index.
func fillEmptyClusters(points [][3]float64, centroids [][3]float64, assign []int, k int) {
	counts := make([]int, k)
	for _, c := range assign {
		counts[c]++
	}
	for c := 0; c < k; c++ {
		if counts[c] > 0 {
			continue
		}
		far, farDist := -1, -1.0
		for i, p := range points {
			if counts[assign[i]] <= 1 {
				continue
			}
			if d := dist2(p, centroids[assign[i]]); d > farDist {
				far, farDist = i, d
			}
		}
		if far < 0 {
			continue
		}
		counts[assign[far]]--
		assign[far] = c
		counts[c]++
		centroids[c] = points[far]
	}
}

// seedCentroids picks initial centroids with the k-means++ strategy.
func seedCentroids(points [][3]float64, k int, rng *rand.Rand) [][3]float64 {
	centroids := make([][3]float64, 0, k)
	centroids = append(centroids, points[rng.Intn(len(points))])

	for len(centroids) < k {
		weights := make([]float64, len(points))
		var total float64
		for i, p := range points {
			nearest := math.MaxFloat64
			for _, c := range centroids {
				if d := dist2(p, c); d < nearest {
					nearest = d
				}
			}
			weights[i] = nearest
			total += nearest
		}

		if total == 0 {
			// All remaining points coincide with a centroid.
			centroids = append(centroids, points[rng.Intn(len(points))])
			continue
		}

		target := rng.Float64() * total
		var acc float64
		chosen := len(points) - 1
		for i, w := range weights {
			acc += w
			if acc >= target {
				chosen = i
				break
			}
		}
		centroids = append(centroids, points[chosen])
	}

	return centroids
}

func dist2(a, b [3]float64) float64 {
	var sum float64
	for d := 0; d < 3; d++ {
		diff := a[d] - b[d]
		sum += diff * diff
	}
	return sum
}
