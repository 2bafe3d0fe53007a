// Package review appends product reviews and keeps the derived rating
// aggregates consistent: a product's rating is the mean of its reviews,
// a seller's rating is the review-count-weighted mean across all of the
// seller's listings.
package review

import (
	"context"
	"time"

	"github.com/google/uuid"

	"pantry-backend/internal/errs"
	"pantry-backend/internal/model"
	"pantry-backend/internal/record"
)

type Aggregator struct {
	records record.Store
}

func NewAggregator(records record.Store) *Aggregator {
	return &Aggregator{records: records}
}

// Submit appends a review to the listing and recomputes the product and
// seller aggregates. Unauthenticated reviewers and the listing's own
// seller are rejected.
func (a *Aggregator) Submit(ctx context.Context, productID, reviewerID, reviewerName string, rating int, comment string) (model.Product, error) {
	if reviewerID == "" {
		return model.Product{}, errs.ErrForbidden
	}
	if rating < 1 || rating > 5 {
		return model.Product{}, errs.Validationf("rating must be between 1 and 5")
	}
	products, err := record.Load[model.Product](ctx, a.records, record.Products)
	if err != nil {
		return model.Product{}, err
	}
	idx := -1
	for i := range products {
		if products[i].ID == productID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return model.Product{}, errs.NotFoundf("product %s", productID)
	}
	if products[idx].SellerID == reviewerID {
		return model.Product{}, errs.ErrForbidden
	}

	products[idx].Reviews = append(products[idx].Reviews, model.Review{
		ID:        uuid.NewString(),
		UserID:    reviewerID,
		UserName:  reviewerName,
		Rating:    rating,
		Comment:   comment,
		CreatedAt: time.Now().UTC(),
	})

	sum := 0
	for _, r := range products[idx].Reviews {
		sum += r.Rating
	}
	products[idx].ReviewCount = len(products[idx].Reviews)
	products[idx].Rating = float64(sum) / float64(products[idx].ReviewCount)

	if err := record.Save(ctx, a.records, record.Products, products); err != nil {
		return model.Product{}, err
	}
	if err := a.recomputeSeller(ctx, products, products[idx].SellerID); err != nil {
		return model.Product{}, err
	}
	return products[idx], nil
}

// recomputeSeller rederives the seller's rating and review count from the
// seller's listings. A seller with no reviews is rated 0.
func (a *Aggregator) recomputeSeller(ctx context.Context, products []model.Product, sellerID string) error {
	sellers, err := record.Load[model.Seller](ctx, a.records, record.Sellers)
	if err != nil {
		return err
	}
	idx := -1
	for i := range sellers {
		if sellers[i].ID == sellerID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil
	}

	totalReviews := 0
	totalRating := 0.0
	for _, p := range products {
		if p.SellerID != sellerID {
			continue
		}
		totalReviews += p.ReviewCount
		totalRating += p.Rating * float64(p.ReviewCount)
	}
	if totalReviews > 0 {
		sellers[idx].Rating = totalRating / float64(totalReviews)
	} else {
		sellers[idx].Rating = 0
	}
	sellers[idx].ReviewCount = totalReviews

	return record.Save(ctx, a.records, record.Sellers, sellers)
}
