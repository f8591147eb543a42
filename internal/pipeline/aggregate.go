package pipeline

import (
	"github.com/montanaflynn/stats"

	"go-review-pipeline/internal/errors"
	"go-review-pipeline/internal/model"
	"go-review-pipeline/pkg/utils"
)

// AverageRating returns the mean productRating of reviews. Every review must
// carry an integer rating (number or numeric string).
func AverageRating(reviews []model.Review) (float64, error) {
	if len(reviews) == 0 {
		return 0, errors.InvalidInput("cannot average an empty review set")
	}

	ratings := make(stats.Float64Data, 0, len(reviews))
	for i, rev := range reviews {
		raw, ok := rev.Rating()
		if !ok {
			return 0, errors.Newf(errors.CodeInvalidRating,
				"review %d: productRating is missing", i)
		}
		rating, ok := utils.ToInt(raw)
		if !ok {
			return 0, errors.Newf(errors.CodeInvalidRating,
				"review %d: productRating must be an integer, instead found %#v", i, raw)
		}
		ratings = append(ratings, float64(rating))
	}

	mean, err := stats.Mean(ratings)
	if err != nil {
		return 0, errors.Wrap(err, "average rating")
	}
	return mean, nil
}

// NewBundle builds the output bundle for reviews of a single product.
// The SKU comes from the first review.
func NewBundle(reviews []model.Review) (*model.ProductBundle, error) {
	if len(reviews) == 0 {
		return nil, errors.InvalidInput("cannot bundle an empty review set")
	}
	avg, err := AverageRating(reviews)
	if err != nil {
		return nil, err
	}
	return &model.ProductBundle{
		SKU:           model.SKUFor(reviews[0].ProductID()),
		Reviews:       reviews,
		ReviewAverage: avg,
	}, nil
}

// GroupByProduct groups reviews by productId, keeping input order inside
// each group. The average is recomputed over the whole group on every
// append so grouped and single-product averages always agree.
func GroupByProduct(reviews []model.Review) (map[string]*model.ProductBundle, error) {
	groups := make(map[string]*model.ProductBundle)
	for _, rev := range reviews {
		id := rev.ProductID()
		bundle, exists := groups[id]
		if !exists {
			bundle = &model.ProductBundle{SKU: model.SKUFor(id)}
			groups[id] = bundle
		}
		bundle.Reviews = append(bundle.Reviews, rev)

		avg, err := AverageRating(bundle.Reviews)
		if err != nil {
			return nil, errors.Wrapf(err, "product %q", id)
		}
		bundle.ReviewAverage = avg
	}
	return groups, nil
}
