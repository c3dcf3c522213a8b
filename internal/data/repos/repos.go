package repos

import (
	"gorm.io/gorm"

	"github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/data/repos/reviews"
	"github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/data/repos/tenants"
	"github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/platform/logger"
)

type ReviewMemoryRepo = reviews.ReviewMemoryRepo
type FragmentUsageRepo = reviews.FragmentUsageRepo
type ReviewStore = reviews.Store

type ClientRepo = tenants.ClientRepo
type ClientTypeRepo = tenants.ClientTypeRepo
type QRTokenRepo = tenants.QRTokenRepo
type QRReviewLogRepo = tenants.QRReviewLogRepo
type RatingCount = tenants.RatingCount

var ErrConflict = tenants.ErrConflict

func NewReviewMemoryRepo(db *gorm.DB, baseLog *logger.Logger) ReviewMemoryRepo {
	return reviews.NewReviewMemoryRepo(db, baseLog)
}
func NewFragmentUsageRepo(db *gorm.DB, baseLog *logger.Logger) FragmentUsageRepo {
	return reviews.NewFragmentUsageRepo(db, baseLog)
}
func NewReviewStore(db *gorm.DB, baseLog *logger.Logger) *ReviewStore {
	return reviews.NewStore(db, baseLog)
}

func NewClientRepo(db *gorm.DB, baseLog *logger.Logger) ClientRepo {
	return tenants.NewClientRepo(db, baseLog)
}
func NewClientTypeRepo(db *gorm.DB, baseLog *logger.Logger) ClientTypeRepo {
	return tenants.NewClientTypeRepo(db, baseLog)
}
func NewQRTokenRepo(db *gorm.DB, baseLog *logger.Logger) QRTokenRepo {
	return tenants.NewQRTokenRepo(db, baseLog)
}
func NewQRReviewLogRepo(db *gorm.DB, baseLog *logger.Logger) QRReviewLogRepo {
	return tenants.NewQRReviewLogRepo(db, baseLog)
}
