package app

import (
	"gorm.io/gorm"

	"github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/data/repos"
	"github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/platform/logger"
)

type Repos struct {
	Client      repos.ClientRepo
	ClientType  repos.ClientTypeRepo
	QRToken     repos.QRTokenRepo
	QRReviewLog repos.QRReviewLogRepo
	ReviewStore *repos.ReviewStore
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Client:      repos.NewClientRepo(db, log),
		ClientType:  repos.NewClientTypeRepo(db, log),
		QRToken:     repos.NewQRTokenRepo(db, log),
		QRReviewLog: repos.NewQRReviewLogRepo(db, log),
		ReviewStore: repos.NewReviewStore(db, log),
	}
}
