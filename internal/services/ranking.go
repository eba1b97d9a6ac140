package services

import (
	"launchpit/internal/models"

	"gorm.io/gorm"
)

// RankedProduct is one leaderboard entry.
type RankedProduct struct {
	ProductID uint `json:"product_id"`
	Upvotes   int  `json:"upvotes"`
	Rank      int  `json:"rank"`
}

// RankingService derives the leaderboard ordering from upvote counts. The
// computation runs on every request; at community-directory volumes this is
// cheap and keeps the ranks trivially consistent with the upvote rows.
type RankingService struct {
	db *gorm.DB
}

func NewRankingService(db *gorm.DB) *RankingService {
	return &RankingService{db: db}
}

// Rank orders all ACTIVE products by upvote count descending and assigns
// ranks. Every product tied at the maximum count shares rank 1; every other
// product takes its 1-based position in the sorted sequence. When two or more
// products tie at the top this leaves a gap: the product behind a two-way tie
// is rank 3 and no rank 2 exists. The gap is intentional ("tied for #1,
// nobody is #2") and pinned by TestRankGapWhenTiedAtTop.
func (s *RankingService) Rank() ([]RankedProduct, error) {
	type row struct {
		ID      uint
		Upvotes int
	}

	var rows []row
	err := s.db.Model(&models.Product{}).
		Select("products.id AS id, COUNT(upvotes.id) AS upvotes").
		Joins("LEFT JOIN upvotes ON upvotes.product_id = products.id").
		Where("products.status = ?", models.ProductStatusActive).
		Group("products.id").
		Order("upvotes DESC, products.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	ranked := make([]RankedProduct, 0, len(rows))
	if len(rows) == 0 {
		return ranked, nil
	}

	maxUpvotes := rows[0].Upvotes
	for i, r := range rows {
		rank := i + 1
		if r.Upvotes == maxUpvotes {
			rank = 1
		}
		ranked = append(ranked, RankedProduct{
			ProductID: r.ID,
			Upvotes:   r.Upvotes,
			Rank:      rank,
		})
	}
	return ranked, nil
}

// RankOf returns one product's rank from the current leaderboard, or 0 if the
// product is not ACTIVE.
func (s *RankingService) RankOf(productID uint) (int, error) {
	ranked, err := s.Rank()
	if err != nil {
		return 0, err
	}
	for _, r := range ranked {
		if r.ProductID == productID {
			return r.Rank, nil
		}
	}
	return 0, nil
}
