package service

import (
	"errors"
	"math"
	"math/rand"
	"sort"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"

	"github.com/mealcraft/wellness-backend/internal/types"
)

// Rating scale bounds and the cold-start fallback for the latent-factor
// model.
const (
	minRating     = 1.0
	maxRating     = 5.0
	defaultRating = 3.5

	// Truncation rank for the latent-factor model.
	defaultFactors = 50

	// Neighborhood size for the user-based model.
	defaultNeighbors = 20
)

// ErrNoRatings is returned when a model is trained on an empty record set.
var ErrNoRatings = errors.New("no rating records to train on")

// RatingPredictor is the shared contract of both collaborative models:
// a rating prediction in [1,5] for any (user, recipe) pair. Predictions
// never fail; unseen ids produce the documented fallback value.
type RatingPredictor interface {
	Predict(userID, recipeID int) float64
}

// ratingMatrix is a dense user-by-recipe matrix with zero meaning unrated.
type ratingMatrix struct {
	users   []int
	items   []int
	userIdx map[int]int
	itemIdx map[int]int
	data    [][]float64
}

// buildRatingMatrix pivots rating records into a dense matrix. When the same
// (user, recipe) pair appears twice the later record wins.
func buildRatingMatrix(records []types.RatingRecord) *ratingMatrix {
	userIdx := make(map[int]int)
	itemIdx := make(map[int]int)
	var users, items []int
	for _, rec := range records {
		if _, ok := userIdx[rec.UserID]; !ok {
			userIdx[rec.UserID] = 0
			users = append(users, rec.UserID)
		}
		if _, ok := itemIdx[rec.RecipeID]; !ok {
			itemIdx[rec.RecipeID] = 0
			items = append(items, rec.RecipeID)
		}
	}
	sort.Ints(users)
	sort.Ints(items)
	for i, u := range users {
		userIdx[u] = i
	}
	for j, it := range items {
		itemIdx[it] = j
	}

	data := make([][]float64, len(users))
	for i := range data {
		data[i] = make([]float64, len(items))
	}
	for _, rec := range records {
		data[userIdx[rec.UserID]][itemIdx[rec.RecipeID]] = rec.Rating
	}
	return &ratingMatrix{users: users, items: items, userIdx: userIdx, itemIdx: itemIdx, data: data}
}

// observedMean averages a user's non-zero ratings.
func observedMean(row []float64) float64 {
	sum, n := 0.0, 0
	for _, v := range row {
		if v != 0 {
			sum += v
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

func clipRating(v float64) float64 {
	if v < minRating {
		return minRating
	}
	if v > maxRating {
		return maxRating
	}
	return v
}

// LatentFactorModel is the SVD-based collaborative filter: a rank-k
// approximation of the mean-centered rating matrix. Fields are exported for
// gob serialization; the model is immutable after training.
type LatentFactorModel struct {
	U         [][]float64 // users × k
	Sigma     []float64   // k singular values
	Vt        [][]float64 // k × recipes
	UserMeans []float64
	UserIndex map[int]int
	ItemIndex map[int]int
}

// TrainLatentFactorModel fits the SVD model: ratings are centered by each
// user's observed mean, decomposed with a thin SVD, and truncated to the top
// k singular values.
func TrainLatentFactorModel(records []types.RatingRecord, k int) (*LatentFactorModel, error) {
	if len(records) == 0 {
		return nil, ErrNoRatings
	}
	if k <= 0 {
		k = defaultFactors
	}
	rm := buildRatingMatrix(records)
	m, n := len(rm.users), len(rm.items)

	means := make([]float64, m)
	centered := mat.NewDense(m, n, nil)
	for i := 0; i < m; i++ {
		means[i] = observedMean(rm.data[i])
		for j := 0; j < n; j++ {
			centered.Set(i, j, rm.data[i][j]-means[i])
		}
	}

	var svd mat.SVD
	if ok := svd.Factorize(centered, mat.SVDThin); !ok {
		return nil, errors.New("svd factorization did not converge")
	}
	values := svd.Values(nil)
	if k > len(values) {
		k = len(values)
	}
	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)

	model := &LatentFactorModel{
		U:         make([][]float64, m),
		Sigma:     append([]float64(nil), values[:k]...),
		Vt:        make([][]float64, k),
		UserMeans: means,
		UserIndex: rm.userIdx,
		ItemIndex: rm.itemIdx,
	}
	for i := 0; i < m; i++ {
		model.U[i] = make([]float64, k)
		for f := 0; f < k; f++ {
			model.U[i][f] = u.At(i, f)
		}
	}
	for f := 0; f < k; f++ {
		model.Vt[f] = make([]float64, n)
		for j := 0; j < n; j++ {
			model.Vt[f][j] = v.At(j, f)
		}
	}
	return model, nil
}

// Predict reconstructs the (user, recipe) cell of the low-rank matrix and
// re-adds the user mean, clipped to the rating scale. Unknown users or
// recipes get the neutral fallback, never an error.
func (m *LatentFactorModel) Predict(userID, recipeID int) float64 {
	i, okUser := m.UserIndex[userID]
	j, okItem := m.ItemIndex[recipeID]
	if !okUser || !okItem {
		return defaultRating
	}
	pred := 0.0
	for f := range m.Sigma {
		pred += m.U[i][f] * m.Sigma[f] * m.Vt[f][j]
	}
	pred += m.UserMeans[i]
	return clipRating(pred)
}

// NeighborhoodModel is the user-based k-NN collaborative filter over cosine
// similarity of rating vectors. Unrated entries are treated as zero when
// computing similarity, an accepted approximation. Immutable after training.
type NeighborhoodModel struct {
	Matrix     [][]float64 // users × recipes, zero = unrated
	Similarity [][]float64 // users × users cosine similarity
	UserIndex  map[int]int
	ItemIndex  map[int]int
	K          int
	GlobalMean float64
}

// TrainNeighborhoodModel builds the rating and user-similarity matrices and
// the global mean over observed ratings.
func TrainNeighborhoodModel(records []types.RatingRecord, k int) (*NeighborhoodModel, error) {
	if len(records) == 0 {
		return nil, ErrNoRatings
	}
	if k <= 0 {
		k = defaultNeighbors
	}
	rm := buildRatingMatrix(records)
	m := len(rm.users)

	norms := make([]float64, m)
	for i, row := range rm.data {
		s := 0.0
		for _, v := range row {
			s += v * v
		}
		norms[i] = math.Sqrt(s)
	}

	sim := make([][]float64, m)
	for i := range sim {
		sim[i] = make([]float64, m)
		for j := 0; j <= i; j++ {
			s := cosine(rm.data[i], rm.data[j], norms[i], norms[j])
			sim[i][j] = s
			sim[j][i] = s
		}
	}

	sum, n := 0.0, 0
	for _, row := range rm.data {
		for _, v := range row {
			if v != 0 {
				sum += v
				n++
			}
		}
	}
	globalMean := defaultRating
	if n > 0 {
		globalMean = sum / float64(n)
	}

	return &NeighborhoodModel{
		Matrix:     rm.data,
		Similarity: sim,
		UserIndex:  rm.userIdx,
		ItemIndex:  rm.itemIdx,
		K:          k,
		GlobalMean: globalMean,
	}, nil
}

func cosine(a, b []float64, normA, normB float64) float64 {
	if normA == 0 || normB == 0 {
		return 0
	}
	dot := 0.0
	for i := range a {
		dot += a[i] * b[i]
	}
	return dot / (normA * normB)
}

// Predict returns the similarity-weighted average rating of the k most
// similar users that actually rated the recipe, clipped to the rating scale.
// Unknown ids or an empty qualifying neighborhood fall back to the global
// mean.
func (m *NeighborhoodModel) Predict(userID, recipeID int) float64 {
	i, okUser := m.UserIndex[userID]
	j, okItem := m.ItemIndex[recipeID]
	if !okUser || !okItem {
		return m.GlobalMean
	}

	type neighbor struct {
		idx int
		sim float64
	}
	neighbors := make([]neighbor, 0, len(m.Similarity[i])-1)
	for idx, s := range m.Similarity[i] {
		if idx == i {
			continue
		}
		neighbors = append(neighbors, neighbor{idx: idx, sim: s})
	}
	sort.SliceStable(neighbors, func(a, b int) bool {
		return neighbors[a].sim > neighbors[b].sim
	})
	if len(neighbors) > m.K {
		neighbors = neighbors[:m.K]
	}

	var weightedSum, weightTotal float64
	for _, nb := range neighbors {
		if nb.sim <= 0 {
			continue
		}
		rating := m.Matrix[nb.idx][j]
		if rating == 0 {
			continue
		}
		weightedSum += nb.sim * rating
		weightTotal += nb.sim
	}
	if weightTotal == 0 {
		return m.GlobalMean
	}
	return clipRating(weightedSum / weightTotal)
}

// ModelMetrics holds held-out evaluation results for one model.
type ModelMetrics struct {
	RMSE float64
	MAE  float64
}

// EvaluateModel computes RMSE and MAE of a predictor over held-out records.
func EvaluateModel(p RatingPredictor, test []types.RatingRecord) ModelMetrics {
	if len(test) == 0 {
		return ModelMetrics{}
	}
	var sqSum, absSum float64
	for _, rec := range test {
		err := p.Predict(rec.UserID, rec.RecipeID) - rec.Rating
		sqSum += err * err
		absSum += math.Abs(err)
	}
	n := float64(len(test))
	return ModelMetrics{RMSE: math.Sqrt(sqSum / n), MAE: absSum / n}
}

// SplitRatings shuffles a copy of the records deterministically and splits
// off the given test fraction.
func SplitRatings(records []types.RatingRecord, testFraction float64, seed int64) (train, test []types.RatingRecord) {
	shuffled := append([]types.RatingRecord(nil), records...)
	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	cut := len(shuffled) - int(float64(len(shuffled))*testFraction)
	return shuffled[:cut], shuffled[cut:]
}

// Model names used for selection and in artifacts.
const (
	ModelSVD          = "svd"
	ModelNeighborhood = "neighborhood"
)

// TrainedModels bundles both trained collaborative filters, their held-out
// metrics and the name of the better one (lower RMSE).
type TrainedModels struct {
	SVD                 *LatentFactorModel
	Neighborhood        *NeighborhoodModel
	SVDMetrics          ModelMetrics
	NeighborhoodMetrics ModelMetrics
	Best                string
}

// BestPredictor returns the model selected at training time.
func (t *TrainedModels) BestPredictor() RatingPredictor {
	if t.Best == ModelNeighborhood {
		return t.Neighborhood
	}
	return t.SVD
}

// TrainAndSelect trains both collaborative filters on a deterministic 80/20
// split, evaluates them on the held-out fifth, and marks the one with lower
// RMSE as best. Both models are retained for comparison.
func TrainAndSelect(records []types.RatingRecord, logger *zap.Logger) (*TrainedModels, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(records) == 0 {
		return nil, ErrNoRatings
	}
	train, test := SplitRatings(records, 0.2, 42)
	if len(train) == 0 {
		return nil, ErrNoRatings
	}

	svd, err := TrainLatentFactorModel(train, defaultFactors)
	if err != nil {
		return nil, err
	}
	knn, err := TrainNeighborhoodModel(train, defaultNeighbors)
	if err != nil {
		return nil, err
	}

	models := &TrainedModels{
		SVD:                 svd,
		Neighborhood:        knn,
		SVDMetrics:          EvaluateModel(svd, test),
		NeighborhoodMetrics: EvaluateModel(knn, test),
	}
	models.Best = ModelSVD
	if models.NeighborhoodMetrics.RMSE < models.SVDMetrics.RMSE {
		models.Best = ModelNeighborhood
	}

	logger.Info("collaborative models trained",
		zap.Int("train_ratings", len(train)),
		zap.Int("test_ratings", len(test)),
		zap.Float64("svd_rmse", models.SVDMetrics.RMSE),
		zap.Float64("svd_mae", models.SVDMetrics.MAE),
		zap.Float64("neighborhood_rmse", models.NeighborhoodMetrics.RMSE),
		zap.Float64("neighborhood_mae", models.NeighborhoodMetrics.MAE),
		zap.String("best", models.Best))
	return models, nil
}
